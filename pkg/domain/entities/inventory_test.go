package entities

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInventorySnapshot_Validation(t *testing.T) {
	valid, err := NewInventorySnapshot("SKU-1", 100, 50, 120, 60, 10, 5)
	require.NoError(t, err, "Expected valid snapshot creation to succeed")
	assert.Equal(t, SKU("SKU-1"), valid.SKU)
	assert.Equal(t, 100.0, valid.FBAAvailable)

	testCases := []struct {
		name        string
		sku         SKU
		values      [6]float64
		expectError string
	}{
		{"empty sku", "", [6]float64{1, 1, 1, 1, 1, 1}, "sku cannot be empty"},
		{"negative fba available", "SKU", [6]float64{-1, 0, 0, 0, 0, 0}, "invalid argument: fba available cannot be negative, got -1"},
		{"negative awd inbound", "SKU", [6]float64{0, 0, 0, 0, 0, -3}, "invalid argument: awd inbound cannot be negative, got -3"},
		{"nan awd total", "SKU", [6]float64{0, 0, 0, math.NaN(), 0, 0}, "invalid argument: awd total must be finite, got NaN"},
		{"infinite fba total", "SKU", [6]float64{0, 0, math.Inf(1), 0, 0, 0}, "invalid argument: fba total must be finite, got +Inf"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			v := tc.values
			_, err := NewInventorySnapshot(tc.sku, v[0], v[1], v[2], v[3], v[4], v[5])
			require.Error(t, err)
			assert.EqualError(t, err, tc.expectError)
		})
	}
}

func TestInventorySnapshot_ValidationWrapsInvalidArgument(t *testing.T) {
	_, err := NewInventorySnapshot("SKU", 0, -1, 0, 0, 0, 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidArgument))

	// Total below available is the caller's responsibility
	_, err = NewInventorySnapshot("SKU", 10, 0, 5, 0, 0, 0)
	assert.NoError(t, err)
}

func TestStockStatus_String(t *testing.T) {
	assert.Equal(t, "in-stock", InStock.String())
	assert.Equal(t, "low-stock", LowStock.String())
	assert.Equal(t, "out-of-stock", OutOfStock.String())
	assert.Equal(t, "unknown", StockStatus(42).String())
}

func TestParseStockStatus(t *testing.T) {
	for _, status := range []StockStatus{InStock, LowStock, OutOfStock} {
		parsed, err := ParseStockStatus(status.String())
		require.NoError(t, err)
		assert.Equal(t, status, parsed)
	}

	parsed, err := ParseStockStatus(" Low-Stock ")
	require.NoError(t, err)
	assert.Equal(t, LowStock, parsed)

	_, err = ParseStockStatus("backordered")
	assert.EqualError(t, err, "invalid stock status: backordered (expected: in-stock, low-stock, or out-of-stock)")
}

func TestStockStatus_TextEncoding(t *testing.T) {
	text, err := OutOfStock.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "out-of-stock", string(text))

	var s StockStatus
	require.NoError(t, s.UnmarshalText([]byte("low-stock")))
	assert.Equal(t, LowStock, s)
	assert.Error(t, s.UnmarshalText([]byte("nope")))
}

func TestStockStatus_Severity(t *testing.T) {
	assert.Less(t, OutOfStock.Severity(), LowStock.Severity())
	assert.Less(t, LowStock.Severity(), InStock.Severity())
}

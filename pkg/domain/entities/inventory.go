package entities

import (
	"fmt"
	"strings"
)

// StockStatus represents the health classification of a product's stock
type StockStatus int

const (
	InStock StockStatus = iota
	LowStock
	OutOfStock
)

// String method for StockStatus enum
func (s StockStatus) String() string {
	switch s {
	case InStock:
		return "in-stock"
	case LowStock:
		return "low-stock"
	case OutOfStock:
		return "out-of-stock"
	default:
		return "unknown"
	}
}

// Severity orders statuses from most to least urgent
func (s StockStatus) Severity() int {
	switch s {
	case OutOfStock:
		return 0
	case LowStock:
		return 1
	default:
		return 2
	}
}

// MarshalText encodes the status using its dashed name
func (s StockStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a dashed status name
func (s *StockStatus) UnmarshalText(text []byte) error {
	status, err := ParseStockStatus(string(text))
	if err != nil {
		return err
	}
	*s = status
	return nil
}

// ParseStockStatus parses the dashed status name produced by String
func ParseStockStatus(s string) (StockStatus, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "in-stock":
		return InStock, nil
	case "low-stock":
		return LowStock, nil
	case "out-of-stock":
		return OutOfStock, nil
	default:
		return InStock, fmt.Errorf("invalid stock status: %s (expected: in-stock, low-stock, or out-of-stock)", s)
	}
}

// InventorySnapshot is a point-in-time stock count split across the FBA and
// AWD networks. Total counts are expected to be at least the available counts;
// that relationship is the caller's responsibility.
type InventorySnapshot struct {
	SKU          SKU     `json:"sku"`
	FBAAvailable float64 `json:"fba_available"`
	AWDAvailable float64 `json:"awd_available"`
	FBATotal     float64 `json:"fba_total"`
	AWDTotal     float64 `json:"awd_total"`
	FBAInbound   float64 `json:"fba_inbound"`
	AWDInbound   float64 `json:"awd_inbound"`
}

// NewInventorySnapshot creates a validated InventorySnapshot
func NewInventorySnapshot(sku SKU, fbaAvailable, awdAvailable, fbaTotal, awdTotal, fbaInbound, awdInbound float64) (*InventorySnapshot, error) {
	if string(sku) == "" {
		return nil, fmt.Errorf("sku cannot be empty")
	}

	snapshot := &InventorySnapshot{
		SKU:          sku,
		FBAAvailable: fbaAvailable,
		AWDAvailable: awdAvailable,
		FBATotal:     fbaTotal,
		AWDTotal:     awdTotal,
		FBAInbound:   fbaInbound,
		AWDInbound:   awdInbound,
	}
	if err := snapshot.Validate(); err != nil {
		return nil, err
	}
	return snapshot, nil
}

// Validate checks that every count is a non-negative finite number
func (s InventorySnapshot) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"fba available", s.FBAAvailable},
		{"awd available", s.AWDAvailable},
		{"fba total", s.FBATotal},
		{"awd total", s.AWDTotal},
		{"fba inbound", s.FBAInbound},
		{"awd inbound", s.AWDInbound},
	}
	for _, f := range fields {
		if err := ValidateUnits(f.name, f.value); err != nil {
			return err
		}
	}
	return nil
}

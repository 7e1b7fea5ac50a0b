package planning

import (
	"errors"
	"math"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsinha/stockplan/pkg/domain/entities"
)

func TestStrict_MatchesPermissiveOnValidInput(t *testing.T) {
	var strict Strict
	snapshot := entities.InventorySnapshot{
		SKU: "SKU-1", FBAAvailable: 100, AWDAvailable: 50,
		FBATotal: 120, AWDTotal: 60, FBAInbound: 10, AWDInbound: 5,
	}

	doi, err := strict.DaysOfInventory(500, 50)
	require.NoError(t, err)
	assert.Equal(t, DaysOfInventory(500, 50), doi)

	total, err := strict.TotalInventory(snapshot)
	require.NoError(t, err)
	assert.Equal(t, 180.0, total)

	available, err := strict.AvailableInventory(snapshot)
	require.NoError(t, err)
	assert.Equal(t, 150.0, available)

	inbound, err := strict.InboundInventory(snapshot)
	require.NoError(t, err)
	assert.Equal(t, 15.0, inbound)

	status, err := strict.ClassifyStock(30, entities.DefaultDOIThresholds())
	require.NoError(t, err)
	assert.Equal(t, entities.LowStock, status)

	units, err := strict.UnitsToMake(100, 50, entities.PlanningGoal{DOIGoal: 10, LeadTimeDays: 30})
	require.NoError(t, err)
	assert.Equal(t, 400.0, units)

	pallets, err := strict.PalletsRequired(101, 50)
	require.NoError(t, err)
	assert.Equal(t, 3.0, pallets)

	seq, err := strict.Smooth([]float64{1, 2, 3, 4, 5}, 3)
	require.NoError(t, err)
	assert.Equal(t, []float64{1.5, 2, 3, 4, 4.5}, slices.Collect(seq))

	growth, err := strict.GrowthRate(50, 0)
	require.NoError(t, err)
	assert.Equal(t, 0.0, growth)

	// Zero demand is valid input and keeps the zero-DOI policy
	doi, err = strict.DaysOfInventory(100, 0)
	require.NoError(t, err)
	assert.Equal(t, 0.0, doi)
}

func TestStrict_RejectsInvalidInput(t *testing.T) {
	var strict Strict

	testCases := []struct {
		name        string
		call        func() error
		expectError string
	}{
		{
			"negative inventory",
			func() error { _, err := strict.DaysOfInventory(-1, 10); return err },
			"invalid argument: inventory units cannot be negative, got -1",
		},
		{
			"nan demand",
			func() error { _, err := strict.DaysOfInventory(1, math.NaN()); return err },
			"invalid argument: daily demand must be finite, got NaN",
		},
		{
			"negative snapshot field",
			func() error {
				_, err := strict.TotalInventory(entities.InventorySnapshot{FBATotal: -3})
				return err
			},
			"invalid argument: fba total cannot be negative, got -3",
		},
		{
			"inverted thresholds",
			func() error {
				_, err := strict.ClassifyStock(30, entities.DOIThresholds{Low: 10, Critical: 45})
				return err
			},
			"invalid argument: critical threshold 45 cannot exceed low threshold 10",
		},
		{
			"infinite doi",
			func() error {
				_, err := strict.ClassifyStock(math.Inf(1), entities.DefaultDOIThresholds())
				return err
			},
			"invalid argument: doi must be finite, got +Inf",
		},
		{
			"negative doi goal",
			func() error {
				_, err := strict.UnitsToMake(0, 1, entities.PlanningGoal{DOIGoal: -1})
				return err
			},
			"invalid argument: doi goal cannot be negative, got -1",
		},
		{
			"zero pallet size",
			func() error { _, err := strict.PalletsRequired(10, 0); return err },
			"invalid argument: units per pallet must be positive, got 0",
		},
		{
			"zero window",
			func() error { _, err := strict.Smooth([]float64{1}, 0); return err },
			"invalid argument: window size must be positive, got 0",
		},
		{
			"non-finite observation",
			func() error { _, err := strict.Smooth([]float64{1, math.Inf(-1)}, 3); return err },
			"invalid argument: series[1] must be finite, got -Inf",
		},
		{
			"nan growth input",
			func() error { _, err := strict.GrowthRate(math.NaN(), 1); return err },
			"invalid argument: growth inputs must be finite, got NaN and 1",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.call()
			require.Error(t, err)
			assert.EqualError(t, err, tc.expectError)
			assert.True(t, errors.Is(err, entities.ErrInvalidArgument))
		})
	}
}

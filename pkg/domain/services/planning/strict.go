package planning

import (
	"fmt"
	"iter"

	"github.com/vsinha/stockplan/pkg/domain/entities"
)

// Strict runs the calculator with input validation. Each method fails with an
// error wrapping entities.ErrInvalidArgument when an input is negative, not
// finite, or otherwise outside the documented contract, and otherwise returns
// exactly what the permissive function returns.
type Strict struct{}

// DaysOfInventory validates its inputs and calls DaysOfInventory
func (Strict) DaysOfInventory(inventoryUnits, dailyDemand float64) (float64, error) {
	if err := entities.ValidateUnits("inventory units", inventoryUnits); err != nil {
		return 0, err
	}
	if err := entities.ValidateUnits("daily demand", dailyDemand); err != nil {
		return 0, err
	}
	return DaysOfInventory(inventoryUnits, dailyDemand), nil
}

// TotalInventory validates the snapshot and sums its totals
func (Strict) TotalInventory(s entities.InventorySnapshot) (float64, error) {
	if err := s.Validate(); err != nil {
		return 0, err
	}
	return TotalInventory(s.FBATotal, s.AWDTotal), nil
}

// AvailableInventory validates the snapshot and sums its available units
func (Strict) AvailableInventory(s entities.InventorySnapshot) (float64, error) {
	if err := s.Validate(); err != nil {
		return 0, err
	}
	return AvailableInventory(s.FBAAvailable, s.AWDAvailable), nil
}

// InboundInventory validates the snapshot and sums its inbound units
func (Strict) InboundInventory(s entities.InventorySnapshot) (float64, error) {
	if err := s.Validate(); err != nil {
		return 0, err
	}
	return InboundInventory(s.FBAInbound, s.AWDInbound), nil
}

// ClassifyStock rejects inverted or invalid thresholds and non-finite doi
func (Strict) ClassifyStock(doi float64, thresholds entities.DOIThresholds) (entities.StockStatus, error) {
	if !finite(doi) {
		return entities.OutOfStock, fmt.Errorf("%w: doi must be finite, got %v", entities.ErrInvalidArgument, doi)
	}
	if err := thresholds.Validate(); err != nil {
		return entities.OutOfStock, err
	}
	return ClassifyStock(doi, thresholds), nil
}

// UnitsToMake validates the inventory, demand and goal
func (Strict) UnitsToMake(currentInventory, forecastedDailyDemand float64, goal entities.PlanningGoal) (float64, error) {
	if err := entities.ValidateUnits("current inventory", currentInventory); err != nil {
		return 0, err
	}
	if err := entities.ValidateUnits("forecasted daily demand", forecastedDailyDemand); err != nil {
		return 0, err
	}
	if err := goal.Validate(); err != nil {
		return 0, err
	}
	return UnitsToMake(currentInventory, forecastedDailyDemand, goal.DOIGoal, goal.LeadTimeDays), nil
}

// PalletsRequired requires a positive pallet size
func (Strict) PalletsRequired(units, unitsPerPallet float64) (float64, error) {
	if err := entities.ValidateUnits("units", units); err != nil {
		return 0, err
	}
	if err := entities.ValidatePositive("units per pallet", unitsPerPallet); err != nil {
		return 0, err
	}
	return PalletsRequired(units, unitsPerPallet), nil
}

// Smooth requires a positive window and finite observations
func (Strict) Smooth(series []float64, windowSize int) (iter.Seq[float64], error) {
	if windowSize <= 0 {
		return nil, fmt.Errorf("%w: window size must be positive, got %d", entities.ErrInvalidArgument, windowSize)
	}
	for i, v := range series {
		if !finite(v) {
			return nil, fmt.Errorf("%w: series[%d] must be finite, got %v", entities.ErrInvalidArgument, i, v)
		}
	}
	return Smooth(series, windowSize), nil
}

// GrowthRate requires finite values; a zero previous value is still allowed
// and reports 0
func (Strict) GrowthRate(current, previous float64) (float64, error) {
	if !finite(current, previous) {
		return 0, fmt.Errorf("%w: growth inputs must be finite, got %v and %v",
			entities.ErrInvalidArgument, current, previous)
	}
	return GrowthRate(current, previous), nil
}

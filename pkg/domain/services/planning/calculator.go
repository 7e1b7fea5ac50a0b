package planning

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/vsinha/stockplan/pkg/domain/entities"
)

// DaysOfInventory returns how many days the inventory lasts at the given daily
// demand, rounded to the nearest whole day with halves rounded up (2.5 -> 3,
// -2.5 -> -2). Zero demand reports zero days, not infinity; callers must not
// read that as fully stocked.
func DaysOfInventory(inventoryUnits, dailyDemand float64) float64 {
	if dailyDemand == 0 {
		return 0
	}
	return roundQuotient(inventoryUnits, dailyDemand)
}

// TotalInventory sums the FBA and AWD on-hand totals
func TotalInventory(fbaTotal, awdTotal float64) float64 {
	return fbaTotal + awdTotal
}

// AvailableInventory sums the FBA and AWD sellable units
func AvailableInventory(fbaAvailable, awdAvailable float64) float64 {
	return fbaAvailable + awdAvailable
}

// InboundInventory sums the FBA and AWD units in transit
func InboundInventory(fbaInbound, awdInbound float64) float64 {
	return fbaInbound + awdInbound
}

// ClassifyStock maps days of inventory to a stock status. The first matching
// rule wins: doi <= 0 or doi <= Critical is out of stock, doi <= Low is low
// stock, anything above is in stock.
//
// thresholds.Critical must not exceed thresholds.Low. That is not checked
// here; with inverted thresholds the classification is no longer monotonic in
// doi.
func ClassifyStock(doi float64, thresholds entities.DOIThresholds) entities.StockStatus {
	switch {
	case doi <= 0:
		return entities.OutOfStock
	case doi <= thresholds.Critical:
		return entities.OutOfStock
	case doi <= thresholds.Low:
		return entities.LowStock
	default:
		return entities.InStock
	}
}

// TargetInventory is the stock level that covers doiGoal days of demand
func TargetInventory(forecastedDailyDemand, doiGoal float64) float64 {
	if !finite(forecastedDailyDemand, doiGoal) {
		return forecastedDailyDemand * doiGoal
	}
	return decimal.NewFromFloat(forecastedDailyDemand).
		Mul(decimal.NewFromFloat(doiGoal)).
		InexactFloat64()
}

// UnitsToMake returns the whole units needed to lift currentInventory to the
// target level, never less than zero.
//
// leadTimeDays is accepted but does not inflate the target yet.
func UnitsToMake(currentInventory, forecastedDailyDemand, doiGoal, leadTimeDays float64) float64 {
	if !finite(currentInventory, forecastedDailyDemand, doiGoal) {
		return math.Max(0, math.Ceil(forecastedDailyDemand*doiGoal-currentInventory))
	}

	needed := decimal.NewFromFloat(forecastedDailyDemand).
		Mul(decimal.NewFromFloat(doiGoal)).
		Sub(decimal.NewFromFloat(currentInventory)).
		Ceil()
	if needed.IsNegative() {
		return 0
	}
	return needed.InexactFloat64()
}

// PalletsRequired returns the whole pallets needed to ship units. A pallet
// size of zero or less yields 0.
func PalletsRequired(units, unitsPerPallet float64) float64 {
	if unitsPerPallet <= 0 {
		return 0
	}
	return ceilQuotient(units, unitsPerPallet)
}

// GrowthRate returns the percentage change from previous to current. A zero
// previous value reports 0, which cannot be told apart from no growth.
func GrowthRate(current, previous float64) float64 {
	if previous == 0 {
		return 0
	}
	if !finite(current, previous) {
		return (current - previous) / previous * 100
	}
	change := decimal.NewFromFloat(current).Sub(decimal.NewFromFloat(previous))
	return divide(change, decimal.NewFromFloat(previous)).
		Mul(decimal.NewFromInt(100)).
		InexactFloat64()
}

// AverageDailyDemand returns the mean of the series, or 0 when it is empty
func AverageDailyDemand(series []float64) float64 {
	if len(series) == 0 {
		return 0
	}
	var total float64
	for _, v := range series {
		total += v
	}
	return total / float64(len(series))
}

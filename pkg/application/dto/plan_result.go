package dto

import (
	"time"

	"github.com/vsinha/stockplan/pkg/domain/entities"
)

// PlanLine is the planning outcome for a single product
type PlanLine struct {
	SKU                entities.SKU               `json:"sku"`
	Name               string                     `json:"name"`
	AvailableInventory float64                    `json:"available_inventory"`
	TotalInventory     float64                    `json:"total_inventory"`
	InboundInventory   float64                    `json:"inbound_inventory"`
	DailyDemand        float64                    `json:"daily_demand"`
	DaysOfInventory    float64                    `json:"days_of_inventory"`
	Status             entities.StockStatus       `json:"status"`
	GrowthRate         float64                    `json:"growth_rate"`
	Goal               entities.PlanningGoal      `json:"goal"`
	Replenishment      entities.ReplenishmentLine `json:"replenishment"`
	ForecastStart      time.Time                  `json:"forecast_start"`
	Forecast           entities.TimeSeries        `json:"forecast"`
}

// PlanSummary aggregates a plan
type PlanSummary struct {
	Products         int     `json:"products"`
	InStock          int     `json:"in_stock"`
	LowStock         int     `json:"low_stock"`
	OutOfStock       int     `json:"out_of_stock"`
	TotalUnitsToMake float64 `json:"total_units_to_make"`
	TotalPallets     float64 `json:"total_pallets"`
}

// PlanResult contains the complete output of a planning run
type PlanResult struct {
	RunID       string                 `json:"run_id"`
	GeneratedAt time.Time              `json:"generated_at"`
	Thresholds  entities.DOIThresholds `json:"thresholds"`
	Lines       []PlanLine             `json:"lines"`
	Summary     PlanSummary            `json:"summary"`
}

// Add folds a line into the summary
func (s *PlanSummary) Add(line PlanLine) {
	s.Products++
	switch line.Status {
	case entities.OutOfStock:
		s.OutOfStock++
	case entities.LowStock:
		s.LowStock++
	default:
		s.InStock++
	}
	s.TotalUnitsToMake += line.Replenishment.UnitsToMake
	s.TotalPallets += line.Replenishment.Pallets
}

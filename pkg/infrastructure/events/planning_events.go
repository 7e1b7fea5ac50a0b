package events

import (
	"github.com/vsinha/stockplan/pkg/domain/entities"
)

const (
	StockOutEvent             = "stock.out"
	StockLowEvent             = "stock.low"
	ReplenishmentPlannedEvent = "replenishment.planned"
)

// StockAlert is raised for every product classified low or out of stock
type StockAlert struct {
	SKU        entities.SKU           `json:"sku"`
	Status     entities.StockStatus   `json:"status"`
	DOI        float64                `json:"doi"`
	Thresholds entities.DOIThresholds `json:"thresholds"`
}

// ReplenishmentPlanned is raised when a plan asks for production
type ReplenishmentPlanned struct {
	Line entities.ReplenishmentLine `json:"line"`
}

// NewStockAlertEvent returns nil for in-stock products
func NewStockAlertEvent(alert StockAlert) Event {
	switch alert.Status {
	case entities.OutOfStock:
		return NewEvent(StockOutEvent, string(alert.SKU), alert)
	case entities.LowStock:
		return NewEvent(StockLowEvent, string(alert.SKU), alert)
	default:
		return nil
	}
}

func NewReplenishmentPlannedEvent(line entities.ReplenishmentLine) Event {
	return NewEvent(ReplenishmentPlannedEvent, string(line.SKU), ReplenishmentPlanned{Line: line})
}

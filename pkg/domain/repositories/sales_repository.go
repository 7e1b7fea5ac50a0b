package repositories

import "github.com/vsinha/stockplan/pkg/domain/entities"

// SalesRepository provides access to daily sales history
type SalesRepository interface {
	GetHistory(sku entities.SKU) (*entities.SalesHistory, error)
	LoadHistory(histories []*entities.SalesHistory) error
}

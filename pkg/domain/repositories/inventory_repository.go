package repositories

import "github.com/vsinha/stockplan/pkg/domain/entities"

// InventoryRepository provides access to the latest inventory snapshot per product
type InventoryRepository interface {
	GetSnapshot(sku entities.SKU) (*entities.InventorySnapshot, error)
	GetAllSnapshots() ([]*entities.InventorySnapshot, error)
	LoadSnapshots(snapshots []*entities.InventorySnapshot) error
}

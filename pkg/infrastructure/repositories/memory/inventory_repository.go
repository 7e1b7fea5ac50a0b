package memory

import (
	"fmt"
	"sync"

	"github.com/vsinha/stockplan/pkg/domain/entities"
	"github.com/vsinha/stockplan/pkg/domain/repositories"
)

// InventoryRepository keeps the latest snapshot per SKU
type InventoryRepository struct {
	mu        sync.RWMutex
	order     []entities.SKU
	snapshots map[entities.SKU]entities.InventorySnapshot
}

// NewInventoryRepository creates a new in-memory inventory repository
func NewInventoryRepository() *InventoryRepository {
	return &InventoryRepository{
		snapshots: make(map[entities.SKU]entities.InventorySnapshot),
	}
}

// Verify interface compliance
var _ repositories.InventoryRepository = (*InventoryRepository)(nil)

// LoadSnapshots loads snapshots into the repository. A later snapshot for the
// same SKU replaces the earlier one.
func (r *InventoryRepository) LoadSnapshots(snapshots []*entities.InventorySnapshot) error {
	for _, snapshot := range snapshots {
		if snapshot.SKU == "" {
			return fmt.Errorf("snapshot sku cannot be empty")
		}
		r.AddSnapshot(*snapshot)
	}
	return nil
}

// AddSnapshot records a snapshot, replacing any previous one for the SKU
func (r *InventoryRepository) AddSnapshot(snapshot entities.InventorySnapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.snapshots[snapshot.SKU]; !exists {
		r.order = append(r.order, snapshot.SKU)
	}
	r.snapshots[snapshot.SKU] = snapshot
}

// GetSnapshot returns the latest snapshot for a SKU
func (r *InventoryRepository) GetSnapshot(sku entities.SKU) (*entities.InventorySnapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snapshot, exists := r.snapshots[sku]
	if !exists {
		return nil, fmt.Errorf("inventory snapshot %w: %s", repositories.ErrNotFound, sku)
	}
	return &snapshot, nil
}

// GetAllSnapshots returns the latest snapshot of every SKU in first-seen order
func (r *InventoryRepository) GetAllSnapshots() ([]*entities.InventorySnapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snapshots := make([]*entities.InventorySnapshot, 0, len(r.order))
	for _, sku := range r.order {
		snapshot := r.snapshots[sku]
		snapshots = append(snapshots, &snapshot)
	}
	return snapshots, nil
}

package memory

import (
	"fmt"
	"slices"
	"sync"

	"github.com/vsinha/stockplan/pkg/domain/entities"
	"github.com/vsinha/stockplan/pkg/domain/repositories"
)

// SalesRepository provides in-memory daily sales history
type SalesRepository struct {
	mu        sync.RWMutex
	histories map[entities.SKU]entities.SalesHistory
}

// NewSalesRepository creates a new in-memory sales repository
func NewSalesRepository() *SalesRepository {
	return &SalesRepository{
		histories: make(map[entities.SKU]entities.SalesHistory),
	}
}

// Verify interface compliance
var _ repositories.SalesRepository = (*SalesRepository)(nil)

// LoadHistory loads sales histories; each SKU may only be loaded once
func (r *SalesRepository) LoadHistory(histories []*entities.SalesHistory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, history := range histories {
		if _, exists := r.histories[history.SKU]; exists {
			return fmt.Errorf("sales history already exists: %s", history.SKU)
		}
		stored := *history
		stored.Daily = slices.Clone(history.Daily)
		r.histories[history.SKU] = stored
	}
	return nil
}

// GetHistory returns a copy of the sales history for a SKU
func (r *SalesRepository) GetHistory(sku entities.SKU) (*entities.SalesHistory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	history, exists := r.histories[sku]
	if !exists {
		return nil, fmt.Errorf("sales history %w: %s", repositories.ErrNotFound, sku)
	}
	history.Daily = slices.Clone(history.Daily)
	return &history, nil
}

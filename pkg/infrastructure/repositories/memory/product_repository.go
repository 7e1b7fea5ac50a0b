package memory

import (
	"fmt"
	"sync"

	"github.com/vsinha/stockplan/pkg/domain/entities"
	"github.com/vsinha/stockplan/pkg/domain/repositories"
)

// ProductRepository provides in-memory product storage in insertion order
type ProductRepository struct {
	mu          sync.RWMutex
	products    []entities.Product
	productsMap map[entities.SKU]int
}

// NewProductRepository creates a new in-memory product repository
func NewProductRepository(expectedProducts int) *ProductRepository {
	return &ProductRepository{
		products:    make([]entities.Product, 0, expectedProducts),
		productsMap: make(map[entities.SKU]int, expectedProducts),
	}
}

// Verify interface compliance
var _ repositories.ProductRepository = (*ProductRepository)(nil)

// LoadProducts loads products into the repository, stopping at the first duplicate
func (r *ProductRepository) LoadProducts(products []*entities.Product) error {
	for _, product := range products {
		if err := r.SaveProduct(product); err != nil {
			return err
		}
	}
	return nil
}

// SaveProduct adds a product; a SKU can only be saved once
func (r *ProductRepository) SaveProduct(product *entities.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.productsMap[product.SKU]; exists {
		return fmt.Errorf("product already exists: %s", product.SKU)
	}
	r.productsMap[product.SKU] = len(r.products)
	r.products = append(r.products, product.Clone())
	return nil
}

// GetProduct returns the catalog entry for a SKU
func (r *ProductRepository) GetProduct(sku entities.SKU) (*entities.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	index, exists := r.productsMap[sku]
	if !exists {
		return nil, fmt.Errorf("product %w: %s", repositories.ErrNotFound, sku)
	}
	product := r.products[index].Clone()
	return &product, nil
}

// GetAllProducts returns every product in insertion order
func (r *ProductRepository) GetAllProducts() ([]*entities.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	products := make([]*entities.Product, 0, len(r.products))
	for i := range r.products {
		product := r.products[i].Clone()
		products = append(products, &product)
	}
	return products, nil
}

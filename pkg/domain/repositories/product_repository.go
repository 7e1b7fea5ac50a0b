package repositories

import "github.com/vsinha/stockplan/pkg/domain/entities"

// ProductRepository provides access to the product catalog
type ProductRepository interface {
	GetProduct(sku entities.SKU) (*entities.Product, error)
	GetAllProducts() ([]*entities.Product, error)
	LoadProducts(products []*entities.Product) error
	SaveProduct(product *entities.Product) error
}

package memory

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsinha/stockplan/pkg/domain/entities"
	"github.com/vsinha/stockplan/pkg/domain/repositories"
)

func TestProductRepository_SaveProduct(t *testing.T) {
	repo := NewProductRepository(10)

	product := &entities.Product{
		SKU:            "TEST_SKU",
		Name:           "Test Product",
		UnitsPerPallet: 48,
		DOIGoal:        entities.Days(60),
		LeadTimeDays:   30,
	}

	require.NoError(t, repo.SaveProduct(product), "Failed to save product")

	retrieved, err := repo.GetProduct("TEST_SKU")
	require.NoError(t, err, "Failed to get product")
	assert.Equal(t, *product, *retrieved)

	// Mutating the returned copy must not change the stored product
	retrieved.Name = "Changed"
	again, err := repo.GetProduct("TEST_SKU")
	require.NoError(t, err)
	assert.Equal(t, "Test Product", again.Name)

	*retrieved.DOIGoal = 5
	again, err = repo.GetProduct("TEST_SKU")
	require.NoError(t, err)
	assert.Equal(t, 60.0, *again.DOIGoal)
}

func TestProductRepository_SaveProduct_Duplicate(t *testing.T) {
	repo := NewProductRepository(10)

	require.NoError(t, repo.SaveProduct(&entities.Product{SKU: "DUPLICATE", Name: "First"}))

	err := repo.SaveProduct(&entities.Product{SKU: "DUPLICATE", Name: "Second"})
	assert.EqualError(t, err, "product already exists: DUPLICATE")

	retrieved, err := repo.GetProduct("DUPLICATE")
	require.NoError(t, err)
	assert.Equal(t, "First", retrieved.Name)
}

func TestProductRepository_GetProduct_NotFound(t *testing.T) {
	repo := NewProductRepository(0)

	_, err := repo.GetProduct("MISSING")
	require.Error(t, err)
	assert.EqualError(t, err, "product not found: MISSING")
	assert.True(t, errors.Is(err, repositories.ErrNotFound))
}

func TestProductRepository_LoadProducts_KeepsOrder(t *testing.T) {
	repo := NewProductRepository(3)

	err := repo.LoadProducts([]*entities.Product{
		{SKU: "C", Name: "Charlie"},
		{SKU: "A", Name: "Alpha"},
		{SKU: "B", Name: "Bravo"},
	})
	require.NoError(t, err)

	all, err := repo.GetAllProducts()
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, entities.SKU("C"), all[0].SKU)
	assert.Equal(t, entities.SKU("A"), all[1].SKU)
	assert.Equal(t, entities.SKU("B"), all[2].SKU)
}

func TestProductRepository_LoadProducts_StopsOnDuplicate(t *testing.T) {
	repo := NewProductRepository(3)

	err := repo.LoadProducts([]*entities.Product{
		{SKU: "A", Name: "Alpha"},
		{SKU: "A", Name: "Again"},
	})
	assert.EqualError(t, err, "product already exists: A")
}

func TestProductRepository_ConcurrentReads(t *testing.T) {
	repo := NewProductRepository(1)
	require.NoError(t, repo.SaveProduct(&entities.Product{SKU: "A", Name: "Alpha"}))

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			product, err := repo.GetProduct("A")
			assert.NoError(t, err)
			assert.Equal(t, "Alpha", product.Name)
		}()
	}
	wg.Wait()
}

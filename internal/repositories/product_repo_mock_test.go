package repositories_test

import (
	"errors"
	"sync"
	"testing"

	"delivery/internal/models"
	"delivery/internal/repositories"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func seedProduct(t *testing.T, repo *repositories.MockProductRepository, id string, stock int) {
	t.Helper()
	err := repo.Create(&models.Product{
		ID:                id,
		Name:              "Product " + id,
		Price:             decimal.NewFromFloat(10.00),
		UnitOfMeasurement: models.UnitPieces,
		Weight:            decimal.NewFromFloat(1.00),
		Stock:             stock,
	})
	assert.NoError(t, err)
}

func TestMockProductRepository_DecrementStockBatch_AllOrNothing(t *testing.T) {
	repo := repositories.NewMockProductRepository()
	seedProduct(t, repo, "a", 10)
	seedProduct(t, repo, "b", 1)

	// "b" falls short, so "a" must not be touched either.
	err := repo.DecrementStockBatch(map[string]int{"a": 5, "b": 2})
	assert.True(t, errors.Is(err, repositories.ErrInsufficientStock))

	a, _ := repo.GetByID("a")
	b, _ := repo.GetByID("b")
	assert.Equal(t, 10, a.Stock)
	assert.Equal(t, 1, b.Stock)

	// A batch that fits is applied in full.
	err = repo.DecrementStockBatch(map[string]int{"a": 5, "b": 1})
	assert.NoError(t, err)
	a, _ = repo.GetByID("a")
	b, _ = repo.GetByID("b")
	assert.Equal(t, 5, a.Stock)
	assert.Equal(t, 0, b.Stock)
}

func TestMockProductRepository_DecrementStockBatch_NoOversellUnderConcurrency(t *testing.T) {
	repo := repositories.NewMockProductRepository()
	const stock = 50
	const checkouts = 200
	seedProduct(t, repo, "hot", stock)

	var wg sync.WaitGroup
	var succeeded int64
	var mu sync.Mutex

	for i := 0; i < checkouts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := repo.DecrementStockBatch(map[string]int{"hot": 1}); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	// Exactly the available units were sold and stock never went negative.
	product, err := repo.GetByID("hot")
	assert.NoError(t, err)
	assert.Equal(t, int64(stock), succeeded)
	assert.Equal(t, 0, product.Stock)
}

func TestMockProductRepository_IncrementStockBatch(t *testing.T) {
	repo := repositories.NewMockProductRepository()
	seedProduct(t, repo, "a", 3)

	assert.NoError(t, repo.DecrementStockBatch(map[string]int{"a": 3}))
	assert.NoError(t, repo.IncrementStockBatch(map[string]int{"a": 3}))

	a, _ := repo.GetByID("a")
	assert.Equal(t, 3, a.Stock)

	err := repo.IncrementStockBatch(map[string]int{"missing": 1})
	assert.Error(t, err)
}

package repositories

import (
	"errors"

	"delivery/internal/models"
)

// ErrInsufficientStock is returned by DecrementStockBatch when any product in
// the batch has less stock than requested. The whole batch is rolled back.
var ErrInsufficientStock = errors.New("insufficient stock")

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	GetAll() ([]models.Product, error)
	GetByID(id string) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id string) error
	// DecrementStockBatch atomically decrements stock for every product in the
	// map (product ID -> quantity). Either every decrement succeeds or none is
	// applied; no other caller may observe stale stock between the check and
	// the decrement.
	DecrementStockBatch(quantities map[string]int) error
	// IncrementStockBatch restores stock, used to compensate a failed commit.
	IncrementStockBatch(quantities map[string]int) error
}

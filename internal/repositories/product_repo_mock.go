package repositories

import (
	"fmt"
	"sync"

	"delivery/internal/models"

	"github.com/google/uuid"
)

// MockProductRepository is an in-memory implementation of ProductRepository.
type MockProductRepository struct {
	products map[string]models.Product
	mu       sync.RWMutex
}

// NewMockProductRepository creates a new instance of MockProductRepository.
func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{
		products: make(map[string]models.Product),
	}
}

// GetAll returns all products.
func (r *MockProductRepository) GetAll() ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	productList := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		productList = append(productList, p)
	}
	return productList, nil
}

// GetByID returns a product by its ID.
func (r *MockProductRepository) GetByID(id string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, fmt.Errorf("product with ID %s not found", id)
	}
	return &product, nil
}

// Create adds a new product.
func (r *MockProductRepository) Create(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	r.products[product.ID] = *product
	return nil
}

// Update modifies an existing product.
func (r *MockProductRepository) Update(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.products[product.ID]
	if !ok {
		return fmt.Errorf("product with ID %s not found for update", product.ID)
	}
	r.products[product.ID] = *product
	return nil
}

// Delete removes a product by its ID.
func (r *MockProductRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.products[id]
	if !ok {
		return fmt.Errorf("product with ID %s not found for deletion", id)
	}
	delete(r.products, id)
	return nil
}

// DecrementStockBatch validates the whole batch under one lock before
// applying any decrement, giving the same all-or-nothing guarantee as the
// GORM implementation's transaction.
func (r *MockProductRepository) DecrementStockBatch(quantities map[string]int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, qty := range quantities {
		product, ok := r.products[id]
		if !ok {
			return fmt.Errorf("product with ID %s not found", id)
		}
		if product.Stock < qty {
			return fmt.Errorf("product %s: %w", id, ErrInsufficientStock)
		}
	}
	for id, qty := range quantities {
		product := r.products[id]
		product.Stock -= qty
		r.products[id] = product
	}
	return nil
}

// IncrementStockBatch restores stock for every product in the batch.
func (r *MockProductRepository) IncrementStockBatch(quantities map[string]int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, qty := range quantities {
		product, ok := r.products[id]
		if !ok {
			return fmt.Errorf("product with ID %s not found", id)
		}
		product.Stock += qty
		r.products[id] = product
	}
	return nil
}

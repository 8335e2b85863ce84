package repositories

import (
	"fmt"
	"sync"

	"delivery/internal/models"

	"github.com/google/uuid"
)

// MockCartRepository is an in-memory implementation of CartRepository.
type MockCartRepository struct {
	items map[string]map[string]models.CartItem // userID -> productID -> item
	mu    sync.RWMutex
}

// NewMockCartRepository creates a new instance of MockCartRepository.
func NewMockCartRepository() *MockCartRepository {
	return &MockCartRepository{
		items: make(map[string]map[string]models.CartItem),
	}
}

// GetByUser returns all cart items of the given user.
func (r *MockCartRepository) GetByUser(userID string) ([]models.CartItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var itemList []models.CartItem
	for _, item := range r.items[userID] {
		itemList = append(itemList, item)
	}
	return itemList, nil
}

// GetItem returns the cart item of the user for the given product.
func (r *MockCartRepository) GetItem(userID, productID string) (*models.CartItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[userID][productID]
	if !ok {
		return nil, fmt.Errorf("cart item for product %s not found", productID)
	}
	return &item, nil
}

// Upsert creates the cart item or replaces the quantity of an existing one.
func (r *MockCartRepository) Upsert(item *models.CartItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	if r.items[item.UserID] == nil {
		r.items[item.UserID] = make(map[string]models.CartItem)
	}
	r.items[item.UserID][item.ProductID] = *item
	return nil
}

// Delete removes the cart item of the user for the given product.
func (r *MockCartRepository) Delete(userID, productID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[userID][productID]; !ok {
		return fmt.Errorf("cart item for product %s not found for deletion", productID)
	}
	delete(r.items[userID], productID)
	return nil
}

// Clear removes every cart item of the user.
func (r *MockCartRepository) Clear(userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items, userID)
	return nil
}

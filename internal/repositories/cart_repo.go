package repositories

import (
	"delivery/internal/models"
)

// CartRepository defines the interface for per-user cart data access.
type CartRepository interface {
	GetByUser(userID string) ([]models.CartItem, error)
	GetItem(userID, productID string) (*models.CartItem, error)
	// Upsert creates the cart item, or replaces the stored quantity when the
	// user already has the product in their cart.
	Upsert(item *models.CartItem) error
	Delete(userID, productID string) error
	// Clear removes every cart item of the user, called after checkout commits.
	Clear(userID string) error
}

package repositories

import (
	"delivery/internal/models"
)

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	GetAll() ([]models.Order, error)
	GetByClientID(clientID string) ([]models.Order, error)
	GetByID(id string) (*models.Order, error)
	Create(order *models.Order) error
	Update(order *models.Order) error
	UpdateStatus(id string, status string) error
	// Delete removes an order and its lines. Used to clean up a partially
	// committed order; completed orders are never deleted.
	Delete(id string) error
}

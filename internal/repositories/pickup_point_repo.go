package repositories

import (
	"delivery/internal/models"
)

// PickupPointRepository defines the interface for pickup point data access.
type PickupPointRepository interface {
	GetAll() ([]models.PickupPoint, error)
	GetByID(id string) (*models.PickupPoint, error)
	Create(point *models.PickupPoint) error
}

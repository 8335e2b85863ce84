package repositories

import (
	"fmt"

	"delivery/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMPickupPointRepository is a GORM implementation of PickupPointRepository.
type GORMPickupPointRepository struct {
	db *gorm.DB
}

// NewGORMPickupPointRepository creates a new instance of GORMPickupPointRepository.
func NewGORMPickupPointRepository(db *gorm.DB) *GORMPickupPointRepository {
	return &GORMPickupPointRepository{
		db: db,
	}
}

// GetAll retrieves all pickup points from the database.
func (r *GORMPickupPointRepository) GetAll() ([]models.PickupPoint, error) {
	var points []models.PickupPoint
	if err := r.db.Find(&points).Error; err != nil {
		return nil, fmt.Errorf("failed to get all pickup points: %w", err)
	}
	return points, nil
}

// GetByID retrieves a single pickup point by its ID.
func (r *GORMPickupPointRepository) GetByID(id string) (*models.PickupPoint, error) {
	var point models.PickupPoint
	if err := r.db.First(&point, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("pickup point with ID %s not found", id)
		}
		return nil, fmt.Errorf("failed to get pickup point by ID %s: %w", id, err)
	}
	return &point, nil
}

// Create creates a new pickup point in the database.
func (r *GORMPickupPointRepository) Create(point *models.PickupPoint) error {
	if point.ID == "" {
		point.ID = uuid.New().String()
	}
	if err := r.db.Create(point).Error; err != nil {
		return fmt.Errorf("failed to create pickup point: %w", err)
	}
	return nil
}

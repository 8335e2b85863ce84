package repositories

import (
	"fmt"
	"sync"

	"delivery/internal/models"

	"github.com/google/uuid"
)

// MockPickupPointRepository is an in-memory implementation of PickupPointRepository.
type MockPickupPointRepository struct {
	points map[string]models.PickupPoint
	mu     sync.RWMutex
}

// NewMockPickupPointRepository creates a new instance of MockPickupPointRepository.
func NewMockPickupPointRepository() *MockPickupPointRepository {
	return &MockPickupPointRepository{
		points: make(map[string]models.PickupPoint),
	}
}

// GetAll returns all pickup points.
func (r *MockPickupPointRepository) GetAll() ([]models.PickupPoint, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	pointList := make([]models.PickupPoint, 0, len(r.points))
	for _, p := range r.points {
		pointList = append(pointList, p)
	}
	return pointList, nil
}

// GetByID returns a pickup point by its ID.
func (r *MockPickupPointRepository) GetByID(id string) (*models.PickupPoint, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	point, ok := r.points[id]
	if !ok {
		return nil, fmt.Errorf("pickup point with ID %s not found", id)
	}
	return &point, nil
}

// Create adds a new pickup point.
func (r *MockPickupPointRepository) Create(point *models.PickupPoint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if point.ID == "" {
		point.ID = uuid.New().String()
	}
	r.points[point.ID] = *point
	return nil
}

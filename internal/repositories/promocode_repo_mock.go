package repositories

import (
	"fmt"
	"sync"
	"time"

	"delivery/internal/models"

	"github.com/google/uuid"
)

// MockPromoCodeRepository is an in-memory implementation of PromoCodeRepository.
type MockPromoCodeRepository struct {
	promos map[string]models.PromoCode // keyed by code
	mu     sync.RWMutex
}

// NewMockPromoCodeRepository creates a new instance of MockPromoCodeRepository.
func NewMockPromoCodeRepository() *MockPromoCodeRepository {
	return &MockPromoCodeRepository{
		promos: make(map[string]models.PromoCode),
	}
}

// GetByCode returns a promo code by its unique code string.
func (r *MockPromoCodeRepository) GetByCode(code string) (*models.PromoCode, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	promo, ok := r.promos[code]
	if !ok {
		return nil, fmt.Errorf("promo code %s not found", code)
	}
	return &promo, nil
}

// GetActive returns promo codes whose validity window has not yet closed.
func (r *MockPromoCodeRepository) GetActive(now time.Time) ([]models.PromoCode, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var promos []models.PromoCode
	for _, promo := range r.promos {
		if !promo.ValidTo.Before(now) {
			promos = append(promos, promo)
		}
	}
	return promos, nil
}

// GetArchived returns promo codes whose validity window has closed.
func (r *MockPromoCodeRepository) GetArchived(now time.Time) ([]models.PromoCode, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var promos []models.PromoCode
	for _, promo := range r.promos {
		if promo.ValidTo.Before(now) {
			promos = append(promos, promo)
		}
	}
	return promos, nil
}

// Create adds a new promo code.
func (r *MockPromoCodeRepository) Create(promo *models.PromoCode) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if promo.ID == "" {
		promo.ID = uuid.New().String()
	}
	if _, exists := r.promos[promo.Code]; exists {
		return fmt.Errorf("promo code %s already exists", promo.Code)
	}
	r.promos[promo.Code] = *promo
	return nil
}

package repositories

import (
	"time"

	"delivery/internal/models"
)

// PromoCodeRepository defines the interface for promo code data access.
type PromoCodeRepository interface {
	GetByCode(code string) (*models.PromoCode, error)
	// GetActive returns codes whose validity window has not yet closed at the
	// given moment; GetArchived returns the rest.
	GetActive(now time.Time) ([]models.PromoCode, error)
	GetArchived(now time.Time) ([]models.PromoCode, error)
	Create(promo *models.PromoCode) error
}

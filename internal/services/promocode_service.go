package services

import (
	"time"

	"delivery/internal/models"
	"delivery/internal/repositories"
)

// PromoCodeService handles business logic related to promo codes.
type PromoCodeService struct {
	repo repositories.PromoCodeRepository
	now  func() time.Time
}

// NewPromoCodeService creates a new PromoCodeService. A nil clock defaults to
// time.Now.
func NewPromoCodeService(repo repositories.PromoCodeRepository, clock func() time.Time) *PromoCodeService {
	if clock == nil {
		clock = time.Now
	}
	return &PromoCodeService{
		repo: repo,
		now:  clock,
	}
}

// GetActivePromoCodes retrieves promo codes whose validity window is still open.
func (s *PromoCodeService) GetActivePromoCodes() ([]models.PromoCode, error) {
	return s.repo.GetActive(s.now())
}

// GetArchivedPromoCodes retrieves promo codes whose validity window has closed.
func (s *PromoCodeService) GetArchivedPromoCodes() ([]models.PromoCode, error) {
	return s.repo.GetArchived(s.now())
}

// CreatePromoCode creates a new promo code.
func (s *PromoCodeService) CreatePromoCode(promo *models.PromoCode) error {
	return s.repo.Create(promo)
}

package repositories

import (
	"fmt"
	"time"

	"delivery/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMPromoCodeRepository is a GORM implementation of PromoCodeRepository.
type GORMPromoCodeRepository struct {
	db *gorm.DB
}

// NewGORMPromoCodeRepository creates a new instance of GORMPromoCodeRepository.
func NewGORMPromoCodeRepository(db *gorm.DB) *GORMPromoCodeRepository {
	return &GORMPromoCodeRepository{
		db: db,
	}
}

// GetByCode retrieves a promo code by its unique code string.
func (r *GORMPromoCodeRepository) GetByCode(code string) (*models.PromoCode, error) {
	var promo models.PromoCode
	if err := r.db.Preload("ApplicableProducts").First(&promo, "code = ?", code).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("promo code %s not found", code)
		}
		return nil, fmt.Errorf("failed to get promo code %s: %w", code, err)
	}
	return &promo, nil
}

// GetActive retrieves promo codes whose validity window has not yet closed.
func (r *GORMPromoCodeRepository) GetActive(now time.Time) ([]models.PromoCode, error) {
	var promos []models.PromoCode
	if err := r.db.Preload("ApplicableProducts").Find(&promos, "valid_to >= ?", now).Error; err != nil {
		return nil, fmt.Errorf("failed to get active promo codes: %w", err)
	}
	return promos, nil
}

// GetArchived retrieves promo codes whose validity window has closed.
func (r *GORMPromoCodeRepository) GetArchived(now time.Time) ([]models.PromoCode, error) {
	var promos []models.PromoCode
	if err := r.db.Preload("ApplicableProducts").Find(&promos, "valid_to < ?", now).Error; err != nil {
		return nil, fmt.Errorf("failed to get archived promo codes: %w", err)
	}
	return promos, nil
}

// Create creates a new promo code in the database.
func (r *GORMPromoCodeRepository) Create(promo *models.PromoCode) error {
	if promo.ID == "" {
		promo.ID = uuid.New().String()
	}
	if err := r.db.Create(promo).Error; err != nil {
		return fmt.Errorf("failed to create promo code: %w", err)
	}
	return nil
}

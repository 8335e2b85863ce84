package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PromoCode represents a discount token with a validity window and an
// optional product eligibility restriction.
type PromoCode struct {
	ID        string          `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Code      string          `json:"code" gorm:"uniqueIndex;type:varchar(50)" validate:"required,min=3,max=50"`
	Discount  decimal.Decimal `json:"discount" gorm:"type:decimal(5,2)"` // Percentage, 0-100
	ValidFrom time.Time       `json:"valid_from"`
	ValidTo   time.Time       `json:"valid_to"`
	Active    bool            `json:"active"`
	// Products the code applies to. Empty means the code applies to every product.
	ApplicableProducts []Product `json:"applicable_products,omitempty" gorm:"many2many:promocode_products"`
	gorm.Model
}

// Valid reports whether the promo code is usable at the given moment.
func (p *PromoCode) Valid(now time.Time) bool {
	return p.Active && !now.Before(p.ValidFrom) && !now.After(p.ValidTo)
}

// AppliesTo reports whether the discount applies to the given product.
// A code with no product restriction applies to everything.
func (p *PromoCode) AppliesTo(productID string) bool {
	if len(p.ApplicableProducts) == 0 {
		return true
	}
	for _, prod := range p.ApplicableProducts {
		if prod.ID == productID {
			return true
		}
	}
	return false
}

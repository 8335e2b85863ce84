package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Units of measurement a product can be sold in.
const (
	UnitPieces = "pieces"
	UnitKg     = "kg"
	UnitLiters = "liters"
)

// Product represents a product in the delivery shop catalog.
type Product struct {
	ID                string          `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name              string          `json:"name" validate:"required,min=3,max=200"`
	Description       string          `json:"description" validate:"omitempty,max=500"`
	Price             decimal.Decimal `json:"price" gorm:"type:decimal(10,2)"`
	UnitOfMeasurement string          `json:"unit_of_measurement" validate:"required,oneof=pieces kg liters"`
	Weight            decimal.Decimal `json:"weight" gorm:"type:decimal(10,2)"` // Weight per unit, in kg
	Stock             int             `json:"stock" validate:"gte=0"`
	gorm.Model                        // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

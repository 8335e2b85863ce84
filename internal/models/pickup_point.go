package models

import "gorm.io/gorm"

// PickupPoint represents a location where a client can collect a pickup order.
type PickupPoint struct {
	ID           string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name         string `json:"name" validate:"required,min=3,max=100"`
	Address      string `json:"address" validate:"required,max=200"`
	WorkingHours string `json:"working_hours" validate:"omitempty,max=100"` // e.g. "10:00-18:00"
	gorm.Model
}

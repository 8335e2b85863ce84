package models

import "gorm.io/gorm"

// CartItem represents one product in a user's persistent cart. A user holds
// at most one cart item per product; adding the same product again
// accumulates the quantity.
type CartItem struct {
	ID        string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID    string `json:"user_id" gorm:"type:varchar(36);uniqueIndex:idx_cart_user_product"`
	ProductID string `json:"product_id" gorm:"type:varchar(36);uniqueIndex:idx_cart_user_product"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
	gorm.Model
}

package services

import (
	"errors"
	"fmt"
)

// Checkout validation errors. Every one of them aborts checkout before any
// stock mutation or order creation; the request layer maps them to user-facing
// responses.
var (
	// ErrEmptyCart is returned when checkout is attempted with no cart lines.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrMissingPickupPoint is returned when a pickup order names no pickup point.
	ErrMissingPickupPoint = errors.New("pickup orders require a pickup point")

	// ErrMissingAddress is returned when a courier order has no delivery address.
	ErrMissingAddress = errors.New("courier orders require a delivery address")
)

// InsufficientStockError reports a cart line requesting more units than the
// product has in stock.
type InsufficientStockError struct {
	ProductID   string
	ProductName string
	Requested   int
	Available   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s (requested: %d, available: %d)",
		e.ProductName, e.Requested, e.Available)
}

// PromoCodeNotFoundError reports a promo code that does not exist.
type PromoCodeNotFoundError struct {
	Code string
}

func (e *PromoCodeNotFoundError) Error() string {
	return fmt.Sprintf("promo code %s not found", e.Code)
}

// PromoCodeInvalidError reports a promo code that exists but is inactive or
// outside its validity window.
type PromoCodeInvalidError struct {
	Code string
}

func (e *PromoCodeInvalidError) Error() string {
	return fmt.Sprintf("promo code %s is expired or inactive", e.Code)
}

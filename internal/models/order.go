package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order statuses. Delivered and Canceled are terminal: once an order
// reaches either, its status can no longer change.
const (
	StatusPending   = "Pending"
	StatusShipped   = "Shipped"
	StatusDelivered = "Delivered"
	StatusCanceled  = "Canceled"
)

// Delivery methods.
const (
	DeliveryPickup  = "pickup"
	DeliveryCourier = "courier"
)

// CartLine is a transient (product, quantity) pair handed to the checkout
// pricing engine. It exists only for the duration of checkout.
type CartLine struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

// OrderItem represents a single item within an order. Price is the effective
// unit price captured at order time (promo discount already applied); it is
// a snapshot, immutable once the order is committed, so historical orders are
// immune to later catalog price changes.
type OrderItem struct {
	ID        uint            `json:"-" gorm:"primaryKey;autoIncrement"`
	OrderID   string          `json:"-" gorm:"type:varchar(36);index"`
	ProductID string          `json:"product_id" gorm:"type:varchar(36)"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price" gorm:"type:decimal(14,6)"` // Sub-cent precision: rounding happens once, on the order total
}

// Order represents a client order.
type Order struct {
	ID              string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	ClientID        string          `json:"client_id" gorm:"type:varchar(36);index"`
	EmployeeID      string          `json:"employee_id,omitempty" gorm:"type:varchar(36)"` // Assigned handler, optional
	Items           []OrderItem     `json:"items" gorm:"foreignKey:OrderID"`
	Status          string          `json:"status"` // Pending, Shipped, Delivered, Canceled
	DeliveryMethod  string          `json:"delivery_method"`
	PickupPointID   string          `json:"pickup_point_id,omitempty" gorm:"type:varchar(36)"`
	DeliveryAddress string          `json:"delivery_address,omitempty"`
	DeliveryCost    decimal.Decimal `json:"delivery_cost" gorm:"type:decimal(10,2)"`
	PromoCode       string          `json:"promo_code,omitempty" gorm:"type:varchar(50)"`
	OrderedAt       time.Time       `json:"ordered_at"`
	DeliveredAt     *time.Time      `json:"delivered_at,omitempty"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// TotalCost is the derived order total: the sum of line snapshots plus the
// delivery cost, rounded to currency precision (two decimal places, half-up).
// It is recomputed from the order lines rather than stored.
func (o *Order) TotalCost() decimal.Decimal {
	total := o.DeliveryCost
	for _, item := range o.Items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total.Round(2)
}

// TerminalStatus reports whether the given status is absorbing.
func TerminalStatus(status string) bool {
	return status == StatusDelivered || status == StatusCanceled
}

package services

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"delivery/internal/models"
	"delivery/internal/repositories"

	"github.com/shopspring/decimal"
)

// EventPublisher publishes order lifecycle events for user-facing
// notification. Satisfied by the RabbitMQ client.
type EventPublisher interface {
	Publish(exchange, routingKey string, body []byte) error
}

// DeliveryFees holds the courier fee schedule: a flat base fee plus a
// per-kilogram fee over the total cart weight. Pickup orders are free.
type DeliveryFees struct {
	BaseFee  decimal.Decimal
	PerKgFee decimal.Decimal
}

// DefaultDeliveryFees returns the standard fee schedule (5.00 base, 2.00/kg).
func DefaultDeliveryFees() DeliveryFees {
	return DeliveryFees{
		BaseFee:  decimal.NewFromFloat(5.00),
		PerKgFee: decimal.NewFromFloat(2.00),
	}
}

// CheckoutService is the checkout pricing engine. It prices a cart (per-item
// effective prices, promo discount, delivery cost, grand total) and commits
// the priced cart into an order, reserving stock.
type CheckoutService struct {
	cartRepo    repositories.CartRepository
	productRepo repositories.ProductRepository
	promoRepo   repositories.PromoCodeRepository
	pickupRepo  repositories.PickupPointRepository
	orderRepo   repositories.OrderRepository
	publisher   EventPublisher
	fees        DeliveryFees
	now         func() time.Time // Clock collaborator, injectable for tests
}

// NewCheckoutService creates a new CheckoutService. A nil clock defaults to
// time.Now.
func NewCheckoutService(
	cartRepo repositories.CartRepository,
	productRepo repositories.ProductRepository,
	promoRepo repositories.PromoCodeRepository,
	pickupRepo repositories.PickupPointRepository,
	orderRepo repositories.OrderRepository,
	publisher EventPublisher,
	fees DeliveryFees,
	clock func() time.Time,
) *CheckoutService {
	if clock == nil {
		clock = time.Now
	}
	return &CheckoutService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		promoRepo:   promoRepo,
		pickupRepo:  pickupRepo,
		orderRepo:   orderRepo,
		publisher:   publisher,
		fees:        fees,
		now:         clock,
	}
}

// PriceCart computes the order lines, delivery cost and grand total for the
// given cart without committing anything. All validation happens here, before
// any mutation:
//
//   - the cart must be non-empty and every quantity positive;
//   - every line's product must have sufficient stock;
//   - pickup orders need a pickup point, courier orders a delivery address;
//   - a promo code, if given, must exist and be within its validity window.
//
// Each returned OrderItem captures the effective unit price (promo discount
// already applied). Rounding to currency precision happens once, on the grand
// total, rather than per line.
func (s *CheckoutService) PriceCart(lines []models.CartLine, deliveryMethod, pickupPointID, address, promoCode string) ([]models.OrderItem, decimal.Decimal, decimal.Decimal, error) {
	zero := decimal.Zero
	if len(lines) == 0 {
		return nil, zero, zero, ErrEmptyCart
	}

	// Resolve products and check stock for the whole cart up front.
	products := make(map[string]*models.Product, len(lines))
	for _, line := range lines {
		if line.Quantity <= 0 {
			return nil, zero, zero, fmt.Errorf("quantity for product %s must be positive", line.ProductID)
		}
		product, err := s.productRepo.GetByID(line.ProductID)
		if err != nil {
			return nil, zero, zero, fmt.Errorf("product %s not found: %w", line.ProductID, err)
		}
		if product.Stock < line.Quantity {
			return nil, zero, zero, &InsufficientStockError{
				ProductID:   product.ID,
				ProductName: product.Name,
				Requested:   line.Quantity,
				Available:   product.Stock,
			}
		}
		products[line.ProductID] = product
	}

	deliveryCost, err := s.deliveryCost(lines, products, deliveryMethod, pickupPointID, address)
	if err != nil {
		return nil, zero, zero, err
	}

	var promo *models.PromoCode
	if promoCode != "" {
		promo, err = s.promoRepo.GetByCode(promoCode)
		if err != nil {
			return nil, zero, zero, &PromoCodeNotFoundError{Code: promoCode}
		}
		if !promo.Valid(s.now()) {
			return nil, zero, zero, &PromoCodeInvalidError{Code: promoCode}
		}
	}

	// Price each line at its effective unit price. The discount factor stays
	// unrounded here; currency rounding is applied once to the grand total to
	// avoid compounding per-line rounding error.
	items := make([]models.OrderItem, 0, len(lines))
	total := decimal.Zero
	for _, line := range lines {
		product := products[line.ProductID]
		unitPrice := product.Price
		if promo != nil && promo.AppliesTo(product.ID) {
			factor := decimal.NewFromInt(1).Sub(promo.Discount.Div(decimal.NewFromInt(100)))
			unitPrice = product.Price.Mul(factor)
		}
		items = append(items, models.OrderItem{
			ProductID: product.ID,
			Quantity:  line.Quantity,
			Price:     unitPrice,
		})
		total = total.Add(unitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	// Round half-up to currency precision.
	total = total.Add(deliveryCost).Round(2)
	return items, deliveryCost, total, nil
}

// deliveryCost resolves the delivery method: pickup is free but requires an
// existing pickup point; courier requires an address and costs
// base fee + total weight x per-kg fee.
func (s *CheckoutService) deliveryCost(lines []models.CartLine, products map[string]*models.Product, method, pickupPointID, address string) (decimal.Decimal, error) {
	switch method {
	case models.DeliveryPickup:
		if pickupPointID == "" {
			return decimal.Zero, ErrMissingPickupPoint
		}
		if _, err := s.pickupRepo.GetByID(pickupPointID); err != nil {
			return decimal.Zero, ErrMissingPickupPoint
		}
		return decimal.Zero, nil
	case models.DeliveryCourier:
		if address == "" {
			return decimal.Zero, ErrMissingAddress
		}
		totalWeight := decimal.Zero
		for _, line := range lines {
			weight := products[line.ProductID].Weight.Mul(decimal.NewFromInt(int64(line.Quantity)))
			totalWeight = totalWeight.Add(weight)
		}
		return s.fees.BaseFee.Add(totalWeight.Mul(s.fees.PerKgFee)), nil
	default:
		return decimal.Zero, fmt.Errorf("unknown delivery method: %s", method)
	}
}

// Quote prices the user's current cart without committing it.
func (s *CheckoutService) Quote(userID, deliveryMethod, pickupPointID, address, promoCode string) ([]models.OrderItem, decimal.Decimal, decimal.Decimal, error) {
	lines, err := s.cartLines(userID)
	if err != nil {
		return nil, decimal.Zero, decimal.Zero, err
	}
	return s.PriceCart(lines, deliveryMethod, pickupPointID, address, promoCode)
}

// Checkout converts the user's cart into a committed, priced order. Stock is
// decremented atomically for the whole cart only after every validation in
// PriceCart has passed; if the order cannot be persisted afterwards the
// decrement is compensated, so no partial order is left behind. On success
// the cart is cleared and an order.created event is published.
func (s *CheckoutService) Checkout(clientID, deliveryMethod, pickupPointID, address, promoCode string) (*models.Order, error) {
	lines, err := s.cartLines(clientID)
	if err != nil {
		return nil, err
	}

	items, deliveryCost, total, err := s.PriceCart(lines, deliveryMethod, pickupPointID, address, promoCode)
	if err != nil {
		return nil, err
	}

	quantities := make(map[string]int, len(lines))
	for _, line := range lines {
		quantities[line.ProductID] = line.Quantity
	}
	// The batch decrement re-checks stock under the repository's own guard, so
	// a concurrent checkout between our check and this point cannot oversell.
	if err := s.productRepo.DecrementStockBatch(quantities); err != nil {
		return nil, fmt.Errorf("failed to reserve stock: %w", err)
	}

	order := &models.Order{
		ClientID:        clientID,
		Items:           items,
		Status:          models.StatusPending,
		DeliveryMethod:  deliveryMethod,
		PickupPointID:   pickupPointID,
		DeliveryAddress: address,
		DeliveryCost:    deliveryCost,
		PromoCode:       promoCode,
		OrderedAt:       s.now(),
	}
	if err := s.orderRepo.Create(order); err != nil {
		// Give the reserved stock back rather than leaving it dangling.
		if restoreErr := s.productRepo.IncrementStockBatch(quantities); restoreErr != nil {
			log.Printf("Failed to restore stock after aborted checkout: %v", restoreErr)
		}
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	if err := s.cartRepo.Clear(clientID); err != nil {
		// The order is committed; an uncleared cart is an annoyance, not a failure.
		log.Printf("Failed to clear cart for user %s after checkout: %v", clientID, err)
	}

	s.publishEvent("order.created", map[string]interface{}{
		"orderID": order.ID,
		"userID":  order.ClientID,
		"status":  order.Status,
		"total":   total.String(),
	})

	return order, nil
}

// cartLines loads the user's persistent cart as transient checkout lines.
func (s *CheckoutService) cartLines(userID string) ([]models.CartLine, error) {
	cartItems, err := s.cartRepo.GetByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart for user %s: %w", userID, err)
	}
	lines := make([]models.CartLine, 0, len(cartItems))
	for _, item := range cartItems {
		lines = append(lines, models.CartLine{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	return lines, nil
}

func (s *CheckoutService) publishEvent(routingKey string, payload map[string]interface{}) {
	if s.publisher == nil {
		log.Println("Event publisher is not initialized. Skipping message publication.")
		return
	}
	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", routingKey, err)
		return
	}
	if err := s.publisher.Publish("order", routingKey, body); err != nil {
		log.Printf("Warning: Failed to publish %s event: %v", routingKey, err)
	}
}

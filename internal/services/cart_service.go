package services

import (
	"fmt"

	"delivery/internal/models"
	"delivery/internal/repositories"

	"github.com/shopspring/decimal"
)

// CartView is a priced snapshot of a user's cart for display: each line with
// its current catalog price and the running total. Discounts and delivery
// cost are not applied here; that is the checkout engine's job.
type CartView struct {
	Items []CartViewItem  `json:"items"`
	Total decimal.Decimal `json:"total"`
}

// CartViewItem is a single cart line with its current line total.
type CartViewItem struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// CartService handles business logic for the per-user cart.
type CartService struct {
	cartRepo    repositories.CartRepository
	productRepo repositories.ProductRepository
}

// NewCartService creates a new CartService.
func NewCartService(cartRepo repositories.CartRepository, productRepo repositories.ProductRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// AddToCart adds the given quantity of a product to the user's cart,
// accumulating if the product is already there.
func (s *CartService) AddToCart(userID, productID string, quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("quantity must be positive")
	}
	if _, err := s.productRepo.GetByID(productID); err != nil {
		return fmt.Errorf("cannot add product %s to cart: %w", productID, err)
	}

	item, err := s.cartRepo.GetItem(userID, productID)
	if err != nil {
		item = &models.CartItem{UserID: userID, ProductID: productID, Quantity: quantity}
	} else {
		item.Quantity += quantity
	}
	return s.cartRepo.Upsert(item)
}

// UpdateQuantity replaces the stored quantity of a cart line. A quantity of
// zero removes the line.
func (s *CartService) UpdateQuantity(userID, productID string, quantity int) error {
	if quantity < 0 {
		return fmt.Errorf("quantity cannot be negative")
	}
	if quantity == 0 {
		return s.cartRepo.Delete(userID, productID)
	}

	item, err := s.cartRepo.GetItem(userID, productID)
	if err != nil {
		return fmt.Errorf("cannot update cart line for product %s: %w", productID, err)
	}
	item.Quantity = quantity
	return s.cartRepo.Upsert(item)
}

// RemoveFromCart removes a product from the user's cart.
func (s *CartService) RemoveFromCart(userID, productID string) error {
	return s.cartRepo.Delete(userID, productID)
}

// GetCart returns the user's cart with per-line totals at current catalog
// prices.
func (s *CartService) GetCart(userID string) (*CartView, error) {
	items, err := s.cartRepo.GetByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart for user %s: %w", userID, err)
	}

	view := &CartView{Items: make([]CartViewItem, 0, len(items)), Total: decimal.Zero}
	for _, item := range items {
		product, err := s.productRepo.GetByID(item.ProductID)
		if err != nil {
			return nil, fmt.Errorf("failed to price cart line for product %s: %w", item.ProductID, err)
		}
		lineTotal := product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		view.Items = append(view.Items, CartViewItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    item.Quantity,
			UnitPrice:   product.Price,
			LineTotal:   lineTotal,
		})
		view.Total = view.Total.Add(lineTotal)
	}
	return view, nil
}

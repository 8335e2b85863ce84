package handlers

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"delivery/internal/middleware"
	"delivery/internal/models"
	"delivery/internal/repositories"
	"delivery/internal/services"

	"github.com/gofiber/fiber/v2"
)

// checkoutRequest is the body of the checkout and quote endpoints.
type checkoutRequest struct {
	DeliveryMethod  string `json:"delivery_method"`
	PickupPointID   string `json:"pickup_point_id"`
	DeliveryAddress string `json:"delivery_address"`
	PromoCode       string `json:"promo_code"`
}

// OrderHandler handles HTTP requests for checkout and orders.
type OrderHandler struct {
	checkoutService *services.CheckoutService
	orderService    *services.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(checkoutService *services.CheckoutService, orderService *services.OrderService) *OrderHandler {
	return &OrderHandler{
		checkoutService: checkoutService,
		orderService:    orderService,
	}
}

// RegisterRoutes registers the checkout and order routes with the Fiber app.
// Everything requires authentication; the order panel routes (listing all
// orders, status updates, assignment) additionally require the employee role.
func (h *OrderHandler) RegisterRoutes(router fiber.Router, authService *services.AuthService) {
	checkoutRoutes := router.Group("/checkout", middleware.AuthRequired(authService))
	checkoutRoutes.Post("/", h.HandleCheckout)
	checkoutRoutes.Post("/quote", h.HandleQuote)

	orderRoutes := router.Group("/orders", middleware.AuthRequired(authService))
	orderRoutes.Get("/all", middleware.EmployeeOnly(), h.HandleGetAllOrders)
	orderRoutes.Get("/", h.HandleGetMyOrders)
	orderRoutes.Get("/:id", h.HandleGetOrderByID)
	orderRoutes.Patch("/:id/status", middleware.EmployeeOnly(), h.HandleUpdateOrderStatus)
	orderRoutes.Patch("/:id/assign", middleware.EmployeeOnly(), h.HandleAssignEmployee)
}

// HandleCheckout converts the user's cart into a committed order.
func (h *OrderHandler) HandleCheckout(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)

	var req checkoutRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing checkout request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	order, err := h.checkoutService.Checkout(userID, req.DeliveryMethod, req.PickupPointID, req.DeliveryAddress, req.PromoCode)
	if err != nil {
		log.Printf("Checkout failed for user %s: %v", userID, err)
		return checkoutErrorResponse(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"order":      order,
		"total_cost": order.TotalCost(),
	})
}

// HandleQuote prices the user's cart without committing it.
func (h *OrderHandler) HandleQuote(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)

	var req checkoutRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing quote request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	items, deliveryCost, total, err := h.checkoutService.Quote(userID, req.DeliveryMethod, req.PickupPointID, req.DeliveryAddress, req.PromoCode)
	if err != nil {
		log.Printf("Quote failed for user %s: %v", userID, err)
		return checkoutErrorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"items":         items,
		"delivery_cost": deliveryCost,
		"total_cost":    total,
	})
}

// checkoutErrorResponse maps the checkout error taxonomy to HTTP responses.
func checkoutErrorResponse(c *fiber.Ctx, err error) error {
	var stockErr *services.InsufficientStockError
	var promoNotFound *services.PromoCodeNotFoundError
	var promoInvalid *services.PromoCodeInvalidError

	switch {
	case errors.Is(err, services.ErrEmptyCart):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Your cart is empty.",
		})
	case errors.Is(err, services.ErrMissingPickupPoint):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Pickup orders require a valid pickup point.",
		})
	case errors.Is(err, services.ErrMissingAddress):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Courier orders require a delivery address.",
		})
	case errors.As(err, &stockErr):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message":   "Order failed due to insufficient stock.",
			"product":   stockErr.ProductName,
			"requested": stockErr.Requested,
			"available": stockErr.Available,
		})
	case errors.Is(err, repositories.ErrInsufficientStock):
		// Lost the race for the last units between pricing and commit.
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message": "Order failed due to insufficient stock.",
		})
	case errors.As(err, &promoNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": fmt.Sprintf("Promo code %s not found.", promoNotFound.Code),
		})
	case errors.As(err, &promoInvalid):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": fmt.Sprintf("Promo code %s is expired or inactive.", promoInvalid.Code),
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not process checkout",
			"error":   err.Error(),
		})
	}
}

// HandleGetMyOrders retrieves the authenticated user's orders.
func (h *OrderHandler) HandleGetMyOrders(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)
	orders, err := h.orderService.GetClientOrders(userID)
	if err != nil {
		log.Printf("Error getting orders for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve orders",
			"error":   err.Error(),
		})
	}
	return c.JSON(orders)
}

// HandleGetAllOrders retrieves all orders (order panel).
func (h *OrderHandler) HandleGetAllOrders(c *fiber.Ctx) error {
	orders, err := h.orderService.GetAllOrders()
	if err != nil {
		log.Printf("Error getting all orders: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve orders",
			"error":   err.Error(),
		})
	}
	return c.JSON(orders)
}

// HandleGetOrderByID retrieves a single order by its ID. Clients may only
// see their own orders; employees may see any.
func (h *OrderHandler) HandleGetOrderByID(c *fiber.Ctx) error {
	orderID := c.Params("id")
	order, err := h.orderService.GetOrderByID(orderID)
	if err != nil {
		log.Printf("Error getting order by ID %s: %v", orderID, err)
		if strings.Contains(err.Error(), "not found") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": fmt.Sprintf("Order with ID %s not found", orderID),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve order",
			"error":   err.Error(),
		})
	}

	userID, _ := c.Locals("user_id").(string)
	role, _ := c.Locals("role").(string)
	if role != models.RoleEmployee && order.ClientID != userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": "You may only view your own orders",
		})
	}

	return c.JSON(fiber.Map{
		"order":      order,
		"total_cost": order.TotalCost(),
	})
}

// HandleUpdateOrderStatus updates the status of an existing order.
func (h *OrderHandler) HandleUpdateOrderStatus(c *fiber.Ctx) error {
	orderID := c.Params("id")
	var updateData struct {
		Status string `json:"status"`
	}

	if err := c.BodyParser(&updateData); err != nil {
		log.Printf("Error parsing request body for status update: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body for status update",
			"error":   err.Error(),
		})
	}

	if updateData.Status == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Status is required for order status update.",
		})
	}

	err := h.orderService.UpdateOrderStatus(orderID, updateData.Status)
	if err != nil {
		log.Printf("Error updating order status for order %s: %v", orderID, err)
		switch {
		case strings.Contains(err.Error(), "not found"):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": fmt.Sprintf("Order update failed: %v", err.Error()),
			})
		case strings.Contains(err.Error(), "invalid order status"),
			strings.Contains(err.Error(), "cannot change status"):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": fmt.Sprintf("Order update failed: %v", err.Error()),
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Could not update order status",
				"error":   err.Error(),
			})
		}
	}

	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Order %s status updated successfully to %s", orderID, updateData.Status),
	})
}

// HandleAssignEmployee assigns an employee as the handler of an order.
func (h *OrderHandler) HandleAssignEmployee(c *fiber.Ctx) error {
	orderID := c.Params("id")
	var assignData struct {
		EmployeeID string `json:"employee_id"`
	}

	if err := c.BodyParser(&assignData); err != nil {
		log.Printf("Error parsing request body for assignment: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body for assignment",
			"error":   err.Error(),
		})
	}

	// Default to self-assignment when no employee is named.
	if assignData.EmployeeID == "" {
		assignData.EmployeeID, _ = c.Locals("user_id").(string)
	}

	if err := h.orderService.AssignEmployee(orderID, assignData.EmployeeID); err != nil {
		log.Printf("Error assigning order %s: %v", orderID, err)
		switch {
		case strings.Contains(err.Error(), "not found"):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": fmt.Sprintf("Assignment failed: %v", err.Error()),
			})
		case strings.Contains(err.Error(), "not an employee"):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": fmt.Sprintf("Assignment failed: %v", err.Error()),
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Could not assign order",
				"error":   err.Error(),
			})
		}
	}

	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Order %s assigned to employee %s", orderID, assignData.EmployeeID),
	})
}

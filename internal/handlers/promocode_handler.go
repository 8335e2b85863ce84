package handlers

import (
	"fmt"
	"log"
	"strings"

	"delivery/internal/middleware"
	"delivery/internal/models"
	"delivery/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// PromoCodeHandler handles HTTP requests for promo codes (order panel).
type PromoCodeHandler struct {
	service  *services.PromoCodeService
	validate *validator.Validate
}

// NewPromoCodeHandler creates a new PromoCodeHandler.
func NewPromoCodeHandler(service *services.PromoCodeService) *PromoCodeHandler {
	return &PromoCodeHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the promo code routes with the Fiber app. The
// whole group is restricted to employees.
func (h *PromoCodeHandler) RegisterRoutes(router fiber.Router, authService *services.AuthService) {
	promoRoutes := router.Group("/promocodes", middleware.AuthRequired(authService), middleware.EmployeeOnly())
	promoRoutes.Get("/", h.HandleGetPromoCodes)
	promoRoutes.Post("/", h.HandleCreatePromoCode)
}

// HandleGetPromoCodes lists active and archived promo codes.
func (h *PromoCodeHandler) HandleGetPromoCodes(c *fiber.Ctx) error {
	active, err := h.service.GetActivePromoCodes()
	if err != nil {
		log.Printf("Error getting active promo codes: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve promo codes",
			"error":   err.Error(),
		})
	}
	archived, err := h.service.GetArchivedPromoCodes()
	if err != nil {
		log.Printf("Error getting archived promo codes: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve promo codes",
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"active":   active,
		"archived": archived,
	})
}

// HandleCreatePromoCode creates a new promo code.
func (h *PromoCodeHandler) HandleCreatePromoCode(c *fiber.Ctx) error {
	var promo models.PromoCode
	if err := c.BodyParser(&promo); err != nil {
		log.Printf("Error parsing promo code request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(promo); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		errorMessages := make(map[string]string)
		for _, e := range validationErrors {
			errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  errorMessages,
		})
	}

	if err := h.service.CreatePromoCode(&promo); err != nil {
		log.Printf("Error creating promo code: %v", err)
		if strings.Contains(err.Error(), "already exists") {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"message": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create promo code",
			"error":   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(promo)
}

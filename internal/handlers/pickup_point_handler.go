package handlers

import (
	"log"

	"delivery/internal/repositories"

	"github.com/gofiber/fiber/v2"
)

// PickupPointHandler handles HTTP requests for pickup points.
type PickupPointHandler struct {
	repo repositories.PickupPointRepository
}

// NewPickupPointHandler creates a new PickupPointHandler.
func NewPickupPointHandler(repo repositories.PickupPointRepository) *PickupPointHandler {
	return &PickupPointHandler{
		repo: repo,
	}
}

// RegisterRoutes registers the pickup point routes. Listing is public so a
// client can choose a point before checkout.
func (h *PickupPointHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/pickup-points", h.HandleGetPickupPoints)
}

// HandleGetPickupPoints lists all pickup points.
func (h *PickupPointHandler) HandleGetPickupPoints(c *fiber.Ctx) error {
	points, err := h.repo.GetAll()
	if err != nil {
		log.Printf("Error getting pickup points: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve pickup points",
			"error":   err.Error(),
		})
	}
	return c.JSON(points)
}

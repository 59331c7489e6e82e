package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"nutricare/backend/models"
	"nutricare/backend/services"
)

// CheckupHandler handles HTTP requests for checkups scoped under a client.
type CheckupHandler struct {
	checkupService *services.CheckupService
}

// NewCheckupHandler creates a new CheckupHandler instance.
func NewCheckupHandler(checkupService *services.CheckupService) *CheckupHandler {
	return &CheckupHandler{
		checkupService: checkupService,
	}
}

// ListCheckups handles GET /api/clients/:id/checkups
func (h *CheckupHandler) ListCheckups(c *fiber.Ctx) error {
	checkups, err := h.checkupService.ListCheckups(c.Context(), c.Params("id"))
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(checkups)
}

// CreateCheckup handles POST /api/clients/:id/checkups
func (h *CheckupHandler) CreateCheckup(c *fiber.Ctx) error {
	var req models.CreateCheckupRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c, err)
	}

	checkup, err := h.checkupService.CreateCheckup(c.Context(), c.Params("id"), req)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(checkup)
}

// UpdateCheckup handles PATCH /api/clients/:id/checkups/:checkupId
func (h *CheckupHandler) UpdateCheckup(c *fiber.Ctx) error {
	var req models.UpdateCheckupRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c, err)
	}

	checkup, err := h.checkupService.UpdateCheckup(c.Context(), c.Params("id"), c.Params("checkupId"), req)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(checkup)
}

// DeleteCheckup handles DELETE /api/checkups/:id
// The delete route is keyed by checkup id alone, matching the client UI.
func (h *CheckupHandler) DeleteCheckup(c *fiber.Ctx) error {
	if err := h.checkupService.DeleteCheckup(c.Context(), c.Params("id")); err != nil {
		return respondServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// SetupCheckupRoutes registers the checkup routes behind the auth middleware.
func SetupCheckupRoutes(api fiber.Router, checkupService *services.CheckupService, authMiddleware fiber.Handler) {
	h := NewCheckupHandler(checkupService)

	api.Get("/clients/:id/checkups", authMiddleware, h.ListCheckups)
	api.Post("/clients/:id/checkups", authMiddleware, h.CreateCheckup)
	api.Patch("/clients/:id/checkups/:checkupId", authMiddleware, h.UpdateCheckup)
	api.Delete("/checkups/:id", authMiddleware, h.DeleteCheckup)

	log.Println("Checkup routes registered")
}

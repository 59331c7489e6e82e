package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"nutricare/backend/models"
	"nutricare/backend/services"
)

// ClientHandler handles HTTP requests for the client aggregate.
type ClientHandler struct {
	clientService *services.ClientService
}

// NewClientHandler creates a new ClientHandler instance.
func NewClientHandler(clientService *services.ClientService) *ClientHandler {
	return &ClientHandler{
		clientService: clientService,
	}
}

// ListClients handles GET /api/clients?search=<q>
func (h *ClientHandler) ListClients(c *fiber.Ctx) error {
	search := c.Query("search")

	clients, err := h.clientService.ListClients(c.Context(), search)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(clients)
}

// CreateClient handles POST /api/clients
func (h *ClientHandler) CreateClient(c *fiber.Ctx) error {
	var req models.CreateClientRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c, err)
	}

	client, err := h.clientService.CreateClient(c.Context(), req)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(client)
}

// GetClient handles GET /api/clients/:id
func (h *ClientHandler) GetClient(c *fiber.Ctx) error {
	client, err := h.clientService.GetClient(c.Context(), c.Params("id"))
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(client)
}

// UpdateClient handles PATCH /api/clients/:id
func (h *ClientHandler) UpdateClient(c *fiber.Ctx) error {
	var req models.UpdateClientRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c, err)
	}

	client, err := h.clientService.UpdateClient(c.Context(), c.Params("id"), req)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(client)
}

// DeleteClient handles DELETE /api/clients/:id
func (h *ClientHandler) DeleteClient(c *fiber.Ctx) error {
	if err := h.clientService.DeleteClient(c.Context(), c.Params("id")); err != nil {
		return respondServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// SetupClientRoutes registers the client CRUD routes. All of them are admin
// routes behind the auth middleware.
func SetupClientRoutes(api fiber.Router, clientService *services.ClientService, authMiddleware fiber.Handler) {
	h := NewClientHandler(clientService)

	api.Get("/clients", authMiddleware, h.ListClients)
	api.Post("/clients", authMiddleware, h.CreateClient)
	api.Get("/clients/:id", authMiddleware, h.GetClient)
	api.Patch("/clients/:id", authMiddleware, h.UpdateClient)
	api.Delete("/clients/:id", authMiddleware, h.DeleteClient)

	log.Println("Client routes registered")
}

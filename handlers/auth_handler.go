package handlers

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"nutricare/backend/models"
	"nutricare/backend/services"
)

// AuthHandler handles HTTP requests related to admin authentication.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler instance.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Login handles the POST /api/admin/login request.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req models.AdminLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c, err)
	}
	log.Printf("Received admin login request for email: %s", req.Email)

	loginResponse, err := h.authService.Login(c.Context(), req)
	if err != nil {
		if err.Error() == "invalid email or password" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"status":  "error",
				"message": err.Error(),
			})
		}
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"status":  "error",
				"message": err.Error(),
			})
		}
		log.Printf("Error during admin login: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Login failed due to an internal error",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "success",
		"data":   loginResponse,
	})
}

// SetupAuthRoutes registers the admin authentication route.
func SetupAuthRoutes(api fiber.Router, authService *services.AuthService) {
	h := NewAuthHandler(authService)
	api.Post("/admin/login", h.Login)
	log.Println("Auth routes registered")
}

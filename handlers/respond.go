package handlers

import (
	"errors"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"nutricare/backend/services"
)

// respondServiceError maps service errors onto HTTP statuses in one place so
// every handler reports the same taxonomy: validation 400, not-found 404,
// conflicts 409, oversized upload 413, everything else 500.
func respondServiceError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	message := "An internal error occurred"

	var validationErrors validator.ValidationErrors
	switch {
	case errors.Is(err, services.ErrNotFound):
		status = fiber.StatusNotFound
		message = err.Error()
	case errors.Is(err, services.ErrEmailExists):
		status = fiber.StatusConflict
		message = err.Error()
	case errors.Is(err, services.ErrInvalidTransition):
		status = fiber.StatusConflict
		message = err.Error()
	case errors.Is(err, services.ErrFileTooLarge):
		status = fiber.StatusRequestEntityTooLarge
		message = err.Error()
	case errors.As(err, &validationErrors):
		status = fiber.StatusBadRequest
		message = err.Error()
	case strings.HasPrefix(err.Error(), "invalid "):
		// Service-level validation that isn't a validator.ValidationErrors,
		// e.g. "invalid file data: file is empty".
		status = fiber.StatusBadRequest
		message = err.Error()
	default:
		log.Printf("Internal error surfaced to client: %v", err)
	}

	return c.Status(status).JSON(fiber.Map{
		"status":  "error",
		"message": message,
	})
}

// respondBadBody reports an unparseable request body.
func respondBadBody(c *fiber.Ctx, err error) error {
	log.Printf("Error parsing request body: %v", err)
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"status":  "error",
		"message": "Invalid request body",
		"details": err.Error(),
	})
}

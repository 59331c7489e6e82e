package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"nutricare/backend/models"
	"nutricare/backend/services"
)

// BookingHandler handles HTTP requests for booking requests. Submission is
// public (the marketing site's booking form posts here); everything else is
// admin-only.
type BookingHandler struct {
	bookingService *services.BookingService
}

// NewBookingHandler creates a new BookingHandler instance.
func NewBookingHandler(bookingService *services.BookingService) *BookingHandler {
	return &BookingHandler{
		bookingService: bookingService,
	}
}

// ListBookings handles GET /api/booking-requests
func (h *BookingHandler) ListBookings(c *fiber.Ctx) error {
	bookings, err := h.bookingService.ListBookings(c.Context())
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(bookings)
}

// CreateBooking handles POST /api/booking-requests (public)
func (h *BookingHandler) CreateBooking(c *fiber.Ctx) error {
	var req models.CreateBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c, err)
	}

	booking, err := h.bookingService.CreateBooking(c.Context(), req)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(booking)
}

// UpdateStatus handles PATCH /api/booking-requests/:id with body {status}.
// A confirmation response carries the provisioning outcome alongside the
// booking; a failed provisioning does not fail the request.
func (h *BookingHandler) UpdateStatus(c *fiber.Ctx) error {
	var req models.UpdateBookingStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c, err)
	}

	result, err := h.bookingService.UpdateStatus(c.Context(), c.Params("id"), req)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

// DeleteBooking handles DELETE /api/booking-requests/:id
func (h *BookingHandler) DeleteBooking(c *fiber.Ctx) error {
	if err := h.bookingService.DeleteBooking(c.Context(), c.Params("id")); err != nil {
		return respondServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// SetupBookingRoutes registers booking-request routes. Creation is public;
// listing and state changes require the admin session.
func SetupBookingRoutes(api fiber.Router, bookingService *services.BookingService, authMiddleware fiber.Handler) {
	h := NewBookingHandler(bookingService)

	api.Get("/booking-requests", authMiddleware, h.ListBookings)
	api.Post("/booking-requests", h.CreateBooking)
	api.Patch("/booking-requests/:id", authMiddleware, h.UpdateStatus)
	api.Delete("/booking-requests/:id", authMiddleware, h.DeleteBooking)

	log.Println("Booking routes registered")
}

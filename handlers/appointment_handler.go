package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"nutricare/backend/models"
	"nutricare/backend/services"
)

// AppointmentHandler handles HTTP requests for appointments.
type AppointmentHandler struct {
	appointmentService *services.AppointmentService
}

// NewAppointmentHandler creates a new AppointmentHandler instance.
func NewAppointmentHandler(appointmentService *services.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentService: appointmentService,
	}
}

// ListAppointments handles GET /api/appointments
func (h *AppointmentHandler) ListAppointments(c *fiber.Ctx) error {
	appointments, err := h.appointmentService.ListAppointments(c.Context())
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(appointments)
}

// CreateAppointment handles POST /api/appointments (public)
func (h *AppointmentHandler) CreateAppointment(c *fiber.Ctx) error {
	var req models.CreateAppointmentRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c, err)
	}

	appointment, err := h.appointmentService.CreateAppointment(c.Context(), req)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(appointment)
}

// DeleteAppointment handles DELETE /api/appointments/:id
func (h *AppointmentHandler) DeleteAppointment(c *fiber.Ctx) error {
	if err := h.appointmentService.DeleteAppointment(c.Context(), c.Params("id")); err != nil {
		return respondServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// SetupAppointmentRoutes registers appointment routes. Creation is public
// (the booking form's alternate path); listing and deletion are admin-only.
func SetupAppointmentRoutes(api fiber.Router, appointmentService *services.AppointmentService, authMiddleware fiber.Handler) {
	h := NewAppointmentHandler(appointmentService)

	api.Get("/appointments", authMiddleware, h.ListAppointments)
	api.Post("/appointments", h.CreateAppointment)
	api.Delete("/appointments/:id", authMiddleware, h.DeleteAppointment)

	log.Println("Appointment routes registered")
}

package handlers

import (
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"

	"nutricare/backend/models"
	"nutricare/backend/services"
)

// ExportHandler handles data export and the per-client PDF report.
type ExportHandler struct {
	exportService *services.ExportService
}

// NewExportHandler creates a new ExportHandler instance.
func NewExportHandler(exportService *services.ExportService) *ExportHandler {
	return &ExportHandler{
		exportService: exportService,
	}
}

// Export handles POST /api/export and responds with a CSV or JSON download.
func (h *ExportHandler) Export(c *fiber.Ctx) error {
	var req models.ExportRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c, err)
	}

	result, err := h.exportService.Export(c.Context(), req)
	if err != nil {
		return respondServiceError(c, err)
	}

	c.Set(fiber.HeaderContentType, result.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, result.FileName))
	return c.Status(fiber.StatusOK).Send(result.Data)
}

// ClientReport handles GET /api/clients/:id/report and responds with the
// client's medical record as a PDF download.
func (h *ExportHandler) ClientReport(c *fiber.Ctx) error {
	result, err := h.exportService.ClientReport(c.Context(), c.Params("id"))
	if err != nil {
		return respondServiceError(c, err)
	}

	c.Set(fiber.HeaderContentType, result.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, result.FileName))
	return c.Status(fiber.StatusOK).Send(result.Data)
}

// SetupExportRoutes registers the export routes behind the auth middleware.
func SetupExportRoutes(api fiber.Router, exportService *services.ExportService, authMiddleware fiber.Handler) {
	h := NewExportHandler(exportService)

	api.Post("/export", authMiddleware, h.Export)
	api.Get("/clients/:id/report", authMiddleware, h.ClientReport)

	log.Println("Export routes registered")
}

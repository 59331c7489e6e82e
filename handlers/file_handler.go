package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"nutricare/backend/services"
)

// FileHandler handles HTTP requests for uploaded client documents.
type FileHandler struct {
	fileService *services.FileService
}

// NewFileHandler creates a new FileHandler instance.
func NewFileHandler(fileService *services.FileService) *FileHandler {
	return &FileHandler{
		fileService: fileService,
	}
}

// ListFiles handles GET /api/clients/:id/files
func (h *FileHandler) ListFiles(c *fiber.Ctx) error {
	files, err := h.fileService.ListFiles(c.Context(), c.Params("id"))
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(files)
}

// UploadFile handles POST /api/clients/:id/files (multipart, field "file").
// The 10 MiB cap is enforced in the service from the multipart header size;
// the app-level body limit only exists so oversized requests can reach the
// handler and get a proper 413 instead of a connection error.
func (h *FileHandler) UploadFile(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		log.Printf("Upload request without file field: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "A file is required in the 'file' field",
		})
	}

	f, err := fileHeader.Open()
	if err != nil {
		log.Printf("Error opening uploaded file: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Could not read the uploaded file",
		})
	}
	defer f.Close()

	file, err := h.fileService.UploadFile(
		c.Context(),
		c.Params("id"),
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		fileHeader.Size,
		f,
	)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(file)
}

// DeleteFile handles DELETE /api/files/:id
func (h *FileHandler) DeleteFile(c *fiber.Ctx) error {
	if err := h.fileService.DeleteFile(c.Context(), c.Params("id")); err != nil {
		return respondServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// SetupFileRoutes registers the client-file routes behind the auth middleware.
func SetupFileRoutes(api fiber.Router, fileService *services.FileService, authMiddleware fiber.Handler) {
	h := NewFileHandler(fileService)

	api.Get("/clients/:id/files", authMiddleware, h.ListFiles)
	api.Post("/clients/:id/files", authMiddleware, h.UploadFile)
	api.Delete("/files/:id", authMiddleware, h.DeleteFile)

	log.Println("File routes registered")
}

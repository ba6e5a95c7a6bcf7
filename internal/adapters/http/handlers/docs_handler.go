package handlers

import (
	"errors"

	"washlab-backend/internal/core/domain"
	"washlab-backend/internal/core/services"
	"washlab-backend/internal/pkg/response"
	"washlab-backend/internal/pkg/storage"

	"github.com/gofiber/fiber/v2"
)

// DocsHandler handles document storage endpoints
type DocsHandler struct {
	uploader      storage.Uploader
	carbonService *services.CarbonService
}

// NewDocsHandler creates a new docs handler
func NewDocsHandler(uploader storage.Uploader, carbonService *services.CarbonService) *DocsHandler {
	return &DocsHandler{uploader: uploader, carbonService: carbonService}
}

// PinRequest represents a document pin request body
type PinRequest struct {
	PeriodID    uint   `json:"periodId"`
	FileURL     string `json:"fileUrl"`
	Description string `json:"description"`
}

// List handles folder listing
// @Summary List documents
// @Tags Docs
// @Produce json
// @Param path query string true "Folder path"
// @Success 200 {object} response.Response
// @Security BearerAuth
// @Router /docs/list [get]
func (h *DocsHandler) List(c *fiber.Ctx) error {
	path := c.Query("path")
	if path == "" {
		return response.BadRequest(c, "path is required")
	}

	objects, err := h.uploader.List(c.Context(), path, 1000)
	if err != nil {
		return response.InternalServerError(c, "Failed to list documents")
	}

	return response.Success(c, "Documents retrieved", fiber.Map{"documents": objects})
}

// Upload handles document upload
// @Summary Upload document
// @Tags Docs
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Document"
// @Param folder formData string false "Target folder"
// @Success 201 {object} response.Response
// @Security BearerAuth
// @Router /docs/upload [post]
func (h *DocsHandler) Upload(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return response.BadRequest(c, "file is required")
	}

	folder := c.FormValue("folder", "docs")

	src, err := file.Open()
	if err != nil {
		return response.InternalServerError(c, "Failed to read uploaded file")
	}
	defer src.Close()

	obj, err := h.uploader.Upload(c.Context(), folder, file.Filename,
		file.Header.Get("Content-Type"), src, file.Size)
	if err != nil {
		return response.InternalServerError(c, "Failed to store document")
	}

	return response.Created(c, "Document uploaded", fiber.Map{"document": obj})
}

// Pin handles pinning an uploaded document to a carbon period
// @Summary Pin document to carbon period
// @Tags Docs
// @Accept json
// @Produce json
// @Param body body PinRequest true "Pin data"
// @Success 201 {object} response.Response
// @Failure 404 {object} response.Response
// @Security BearerAuth
// @Router /docs/pin [post]
func (h *DocsHandler) Pin(c *fiber.Ctx) error {
	var req PinRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.PeriodID == 0 || req.FileURL == "" {
		return response.BadRequest(c, "periodId and fileUrl are required")
	}

	doc, err := h.carbonService.PinDocument(c.Context(), req.PeriodID, req.FileURL, req.Description)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrPeriodNotFound):
			return response.NotFound(c, "Carbon period not found")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "fileUrl is required")
		default:
			return response.InternalServerError(c, "Failed to pin document")
		}
	}

	return response.Created(c, "Document pinned", fiber.Map{"document": doc})
}

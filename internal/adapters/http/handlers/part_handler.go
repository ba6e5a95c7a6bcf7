package handlers

import (
	"errors"
	"strconv"

	"washlab-backend/internal/core/domain"
	"washlab-backend/internal/core/services"
	"washlab-backend/internal/pkg/pagination"
	"washlab-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// PartHandler handles spare part inventory endpoints
type PartHandler struct {
	partService *services.PartService
}

// NewPartHandler creates a new part handler
func NewPartHandler(partService *services.PartService) *PartHandler {
	return &PartHandler{partService: partService}
}

// AdjustStockRequest represents a signed stock adjustment
type AdjustStockRequest struct {
	Delta int `json:"delta"`
}

// Create handles part creation
// @Summary Create spare part
// @Tags Parts
// @Accept json
// @Produce json
// @Param body body services.CreatePartInput true "Part data"
// @Success 201 {object} response.Response
// @Failure 409 {object} response.Response
// @Security BearerAuth
// @Router /parts [post]
func (h *PartHandler) Create(c *fiber.Ctx) error {
	var input services.CreatePartInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	part, err := h.partService.Create(c.Context(), &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicateEntry):
			return response.Conflict(c, "Part number already exists")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Name, part number and a non-negative stock are required")
		default:
			return response.InternalServerError(c, "Failed to create part")
		}
	}

	return response.Created(c, "Part created", fiber.Map{"part": part})
}

// List handles part listing
// @Summary List spare parts
// @Tags Parts
// @Produce json
// @Param category query string false "Filter by category"
// @Success 200 {object} response.Response
// @Security BearerAuth
// @Router /parts [get]
func (h *PartHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	parts, total, err := h.partService.List(c.Context(), c.Query("category"), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list parts")
	}

	return response.Success(c, "Parts retrieved", fiber.Map{
		"parts": parts,
		"meta":  pagination.GetMeta(params, total),
	})
}

// Get handles single part retrieval
// @Summary Get spare part
// @Tags Parts
// @Produce json
// @Param id path int true "Part ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Security BearerAuth
// @Router /parts/{id} [get]
func (h *PartHandler) Get(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid part ID")
	}

	part, err := h.partService.GetByID(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, domain.ErrPartNotFound) {
			return response.NotFound(c, "Part not found")
		}
		return response.InternalServerError(c, "Failed to get part")
	}

	return response.Success(c, "Part retrieved", fiber.Map{"part": part})
}

// Update handles part updates
// @Summary Update spare part
// @Tags Parts
// @Accept json
// @Produce json
// @Param id path int true "Part ID"
// @Param body body services.UpdatePartInput true "Part update"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Security BearerAuth
// @Router /parts/{id} [put]
func (h *PartHandler) Update(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid part ID")
	}

	var input services.UpdatePartInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	part, err := h.partService.Update(c.Context(), uint(id), &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrPartNotFound):
			return response.NotFound(c, "Part not found")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Invalid part update")
		default:
			return response.InternalServerError(c, "Failed to update part")
		}
	}

	return response.Success(c, "Part updated", fiber.Map{"part": part})
}

// AdjustStock handles signed stock adjustments
// @Summary Adjust part stock
// @Tags Parts
// @Accept json
// @Produce json
// @Param id path int true "Part ID"
// @Param body body AdjustStockRequest true "Signed delta"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Security BearerAuth
// @Router /parts/{id}/stock [patch]
func (h *PartHandler) AdjustStock(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid part ID")
	}

	var req AdjustStockRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	part, err := h.partService.AdjustStock(c.Context(), uint(id), req.Delta)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrPartNotFound):
			return response.NotFound(c, "Part not found")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Adjustment would make stock negative")
		default:
			return response.InternalServerError(c, "Failed to adjust stock")
		}
	}

	return response.Success(c, "Stock adjusted", fiber.Map{"part": part})
}

// LowStock handles the low-stock report
// @Summary List low-stock parts
// @Tags Parts
// @Produce json
// @Param threshold query int false "Stock threshold (default 5)"
// @Success 200 {object} response.Response
// @Security BearerAuth
// @Router /parts/low-stock [get]
func (h *PartHandler) LowStock(c *fiber.Ctx) error {
	threshold := c.QueryInt("threshold", 5)
	if threshold < 0 {
		return response.BadRequest(c, "Invalid threshold")
	}

	parts, err := h.partService.ListLowStock(c.Context(), threshold)
	if err != nil {
		return response.InternalServerError(c, "Failed to list low-stock parts")
	}

	return response.Success(c, "Low-stock parts", fiber.Map{"parts": parts})
}

// Delete handles part deletion
// @Summary Delete spare part
// @Tags Parts
// @Produce json
// @Param id path int true "Part ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Security BearerAuth
// @Router /parts/{id} [delete]
func (h *PartHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid part ID")
	}

	if err := h.partService.Delete(c.Context(), uint(id)); err != nil {
		if errors.Is(err, domain.ErrPartNotFound) {
			return response.NotFound(c, "Part not found")
		}
		return response.InternalServerError(c, "Failed to delete part")
	}

	return response.Success(c, "Part deleted", nil)
}

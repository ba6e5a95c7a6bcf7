package handlers

import (
	"errors"
	"strconv"

	"washlab-backend/internal/core/domain"
	"washlab-backend/internal/core/services"
	"washlab-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// CarbonHandler handles carbon readiness endpoints
type CarbonHandler struct {
	carbonService *services.CarbonService
}

// NewCarbonHandler creates a new carbon handler
func NewCarbonHandler(carbonService *services.CarbonService) *CarbonHandler {
	return &CarbonHandler{carbonService: carbonService}
}

// CreatePeriod handles carbon period creation
// @Summary Create carbon period
// @Tags Carbon
// @Accept json
// @Produce json
// @Param body body services.CreateCarbonPeriodInput true "Period data"
// @Success 201 {object} response.Response
// @Security BearerAuth
// @Router /carbon/periods [post]
func (h *CarbonHandler) CreatePeriod(c *fiber.Ctx) error {
	var input services.CreateCarbonPeriodInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	period, err := h.carbonService.CreatePeriod(c.Context(), &input)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return response.BadRequest(c, "Name and a valid date range are required")
		}
		return response.InternalServerError(c, "Failed to create period")
	}

	return response.Created(c, "Carbon period created", fiber.Map{"period": period})
}

// ListPeriods handles carbon period listing
// @Summary List carbon periods
// @Tags Carbon
// @Produce json
// @Success 200 {object} response.Response
// @Security BearerAuth
// @Router /carbon/periods [get]
func (h *CarbonHandler) ListPeriods(c *fiber.Ctx) error {
	periods, err := h.carbonService.ListPeriods(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list periods")
	}

	return response.Success(c, "Carbon periods retrieved", fiber.Map{"periods": periods})
}

// SaveReadiness handles checklist submission
// @Summary Save readiness checklist
// @Tags Carbon
// @Accept json
// @Produce json
// @Param body body services.SaveReadinessInput true "Checklist data"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Security BearerAuth
// @Router /carbon/readiness [post]
func (h *CarbonHandler) SaveReadiness(c *fiber.Ctx) error {
	var input services.SaveReadinessInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	readiness, err := h.carbonService.SaveReadiness(c.Context(), &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAssetNotFound):
			return response.NotFound(c, "Asset not found")
		case errors.Is(err, domain.ErrPeriodNotFound):
			return response.NotFound(c, "Carbon period not found")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "assetId and carbonPeriodId are required")
		default:
			return response.InternalServerError(c, "Failed to save readiness")
		}
	}

	return response.Success(c, "Readiness saved", fiber.Map{"readiness": readiness})
}

// Readiness handles the readiness rollup
// @Summary Readiness report
// @Tags Carbon
// @Produce json
// @Param period_id query int true "Carbon period ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Security BearerAuth
// @Router /carbon/readiness [get]
func (h *CarbonHandler) Readiness(c *fiber.Ctx) error {
	periodID, err := strconv.ParseUint(c.Query("period_id", "0"), 10, 32)
	if err != nil || periodID == 0 {
		return response.BadRequest(c, "period_id is required")
	}

	report, err := h.carbonService.Readiness(c.Context(), uint(periodID))
	if err != nil {
		if errors.Is(err, domain.ErrPeriodNotFound) {
			return response.NotFound(c, "Carbon period not found")
		}
		return response.InternalServerError(c, "Failed to build readiness report")
	}

	return response.Success(c, "Readiness report", fiber.Map{"report": report})
}

// ExportEvidence handles the evidence archive download
// @Summary Export evidence archive
// @Tags Carbon
// @Produce application/zip
// @Param period_id query int true "Carbon period ID"
// @Success 200 {file} binary
// @Failure 404 {object} response.Response
// @Security BearerAuth
// @Router /carbon/evidence-export [get]
func (h *CarbonHandler) ExportEvidence(c *fiber.Ctx) error {
	periodID, err := strconv.ParseUint(c.Query("period_id", "0"), 10, 32)
	if err != nil || periodID == 0 {
		return response.BadRequest(c, "period_id is required")
	}

	archive, filename, err := h.carbonService.ExportEvidence(c.Context(), uint(periodID))
	if err != nil {
		if errors.Is(err, domain.ErrPeriodNotFound) {
			return response.NotFound(c, "Carbon period not found")
		}
		return response.InternalServerError(c, "Failed to build evidence archive")
	}

	c.Set(fiber.HeaderContentType, "application/zip")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(archive)
}

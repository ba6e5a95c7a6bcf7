package handlers

import (
	"errors"
	"strconv"
	"strings"

	"washlab-backend/internal/core/domain"
	"washlab-backend/internal/core/services"
	"washlab-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// FinanceHandler handles billing analytics endpoints
type FinanceHandler struct {
	financeService *services.FinanceService
}

// NewFinanceHandler creates a new finance handler
func NewFinanceHandler(financeService *services.FinanceService) *FinanceHandler {
	return &FinanceHandler{financeService: financeService}
}

// Summary handles the finance summary
// @Summary Finance summary
// @Tags Finance
// @Produce json
// @Param period query string false "last_month, this_month, or Nd"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Security BearerAuth
// @Router /finance/summary [get]
func (h *FinanceHandler) Summary(c *fiber.Ctx) error {
	summary, err := h.financeService.Summary(c.Context(), c.Query("period"))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidPeriod) {
			return response.BadRequest(c, "Invalid period, expected last_month, this_month or Nd")
		}
		return response.InternalServerError(c, "Failed to compute finance summary")
	}

	return response.Success(c, "Finance summary", fiber.Map{"summary": summary})
}

// Debtors handles the aging report
// @Summary Debtors aging report
// @Tags Finance
// @Produce json
// @Param bucket query string false "Comma-separated day boundaries, e.g. 30,60,90"
// @Success 200 {object} response.Response
// @Security BearerAuth
// @Router /finance/debtors [get]
func (h *FinanceHandler) Debtors(c *fiber.Ctx) error {
	var boundaries []int
	if v := c.Query("bucket"); v != "" {
		for _, part := range strings.Split(v, ",") {
			days, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil || days <= 0 {
				return response.BadRequest(c, "Invalid bucket boundaries")
			}
			boundaries = append(boundaries, days)
		}
	}

	report, err := h.financeService.Debtors(c.Context(), boundaries)
	if err != nil {
		return response.InternalServerError(c, "Failed to build debtors report")
	}

	return response.Success(c, "Debtors report", fiber.Map{"report": report})
}

// CreatePeriod handles billing period creation
// @Summary Create billing period
// @Tags Finance
// @Accept json
// @Produce json
// @Param body body services.CreatePeriodInput true "Period data"
// @Success 201 {object} response.Response
// @Failure 409 {object} response.Response
// @Security BearerAuth
// @Router /finance/periods [post]
func (h *FinanceHandler) CreatePeriod(c *fiber.Ctx) error {
	var input services.CreatePeriodInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	period, err := h.financeService.CreatePeriod(c.Context(), &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicateEntry):
			return response.Conflict(c, "Period name already exists")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Period name and a valid date range are required")
		default:
			return response.InternalServerError(c, "Failed to create period")
		}
	}

	return response.Created(c, "Period created", fiber.Map{"period": period})
}

// ListPeriods handles billing period listing
// @Summary List billing periods
// @Tags Finance
// @Produce json
// @Success 200 {object} response.Response
// @Security BearerAuth
// @Router /finance/periods [get]
func (h *FinanceHandler) ListPeriods(c *fiber.Ctx) error {
	periods, err := h.financeService.ListPeriods(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list periods")
	}

	return response.Success(c, "Periods retrieved", fiber.Map{"periods": periods})
}

// CreateSummary handles billing summary creation
// @Summary Create billing summary
// @Tags Finance
// @Accept json
// @Produce json
// @Param body body services.CreateSummaryInput true "Summary data"
// @Success 201 {object} response.Response
// @Failure 404 {object} response.Response
// @Security BearerAuth
// @Router /finance/summaries [post]
func (h *FinanceHandler) CreateSummary(c *fiber.Ctx) error {
	var input services.CreateSummaryInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	summary, err := h.financeService.CreateSummary(c.Context(), &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAssetNotFound):
			return response.NotFound(c, "Asset not found")
		case errors.Is(err, domain.ErrPeriodNotFound):
			return response.NotFound(c, "Billing period not found")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "assetId and billingPeriodId are required")
		default:
			return response.InternalServerError(c, "Failed to create summary")
		}
	}

	return response.Created(c, "Summary created", fiber.Map{"summary": summary})
}

// ListSummaries handles per-period summary listing
// @Summary List billing summaries
// @Tags Finance
// @Produce json
// @Param id path int true "Period ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Security BearerAuth
// @Router /finance/periods/{id}/summaries [get]
func (h *FinanceHandler) ListSummaries(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid period ID")
	}

	summaries, err := h.financeService.ListSummariesByPeriod(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, domain.ErrPeriodNotFound) {
			return response.NotFound(c, "Billing period not found")
		}
		return response.InternalServerError(c, "Failed to list summaries")
	}

	return response.Success(c, "Summaries retrieved", fiber.Map{"summaries": summaries})
}

package handlers

import (
	"errors"
	"strconv"

	"washlab-backend/internal/adapters/persistence/repositories"
	"washlab-backend/internal/core/domain"
	"washlab-backend/internal/core/services"
	"washlab-backend/internal/pkg/pagination"
	"washlab-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AlertHandler handles persisted county alert endpoints
type AlertHandler struct {
	alertService *services.AlertService
}

// NewAlertHandler creates a new alert handler
func NewAlertHandler(alertService *services.AlertService) *AlertHandler {
	return &AlertHandler{alertService: alertService}
}

// Create handles alert creation
// @Summary Create alert
// @Tags Alerts
// @Accept json
// @Produce json
// @Param body body services.CreateAlertInput true "Alert data"
// @Success 201 {object} response.Response
// @Security BearerAuth
// @Router /alerts [post]
func (h *AlertHandler) Create(c *fiber.Ctx) error {
	var input services.CreateAlertInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	alert, err := h.alertService.Create(c.Context(), &input)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return response.BadRequest(c, "Type, title and county are required")
		}
		return response.InternalServerError(c, "Failed to create alert")
	}

	return response.Created(c, "Alert created", fiber.Map{"alert": alert})
}

// List handles alert listing
// @Summary List alerts
// @Tags Alerts
// @Produce json
// @Param type query string false "Filter by type"
// @Param status query string false "Filter by status"
// @Param county query string false "Filter by county"
// @Success 200 {object} response.Response
// @Security BearerAuth
// @Router /alerts [get]
func (h *AlertHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)
	filter := repositories.AlertFilter{
		Type:   c.Query("type"),
		Status: c.Query("status"),
		County: c.Query("county"),
	}

	alerts, total, err := h.alertService.List(c.Context(), filter, params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list alerts")
	}

	return response.Success(c, "Alerts retrieved", fiber.Map{
		"alerts": alerts,
		"meta":   pagination.GetMeta(params, total),
	})
}

// Stats handles the alert dashboard rollup
// @Summary Alert stats
// @Tags Alerts
// @Produce json
// @Success 200 {object} response.Response
// @Security BearerAuth
// @Router /alerts/stats [get]
func (h *AlertHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.alertService.Stats(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to compute alert stats")
	}

	return response.Success(c, "Alert stats", fiber.Map{"stats": stats})
}

// Trend handles the 7-day alert trend
// @Summary Alert trend
// @Tags Alerts
// @Produce json
// @Param id path int true "Alert ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Security BearerAuth
// @Router /alerts/trend/{id} [get]
func (h *AlertHandler) Trend(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid alert ID")
	}

	trend, err := h.alertService.Trend(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return response.NotFound(c, "Alert not found")
		}
		return response.InternalServerError(c, "Failed to build alert trend")
	}

	return response.Success(c, "Alert trend", fiber.Map{"trend": trend})
}

// Resolve handles alert resolution
// @Summary Resolve alert
// @Tags Alerts
// @Produce json
// @Param id path int true "Alert ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Security BearerAuth
// @Router /alerts/{id}/resolve [patch]
func (h *AlertHandler) Resolve(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid alert ID")
	}

	alert, err := h.alertService.Resolve(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return response.NotFound(c, "Alert not found")
		}
		return response.InternalServerError(c, "Failed to resolve alert")
	}

	return response.Success(c, "Alert resolved", fiber.Map{"alert": alert})
}

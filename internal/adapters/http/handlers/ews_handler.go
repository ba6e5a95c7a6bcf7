package handlers

import (
	"errors"

	"washlab-backend/internal/core/domain"
	"washlab-backend/internal/core/services"
	"washlab-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// EWSHandler handles derived early-warning endpoints
type EWSHandler struct {
	ewsService *services.EWSService
}

// NewEWSHandler creates a new EWS handler
func NewEWSHandler(ewsService *services.EWSService) *EWSHandler {
	return &EWSHandler{ewsService: ewsService}
}

// ActionRequest represents an alert-to-ticket link request
type ActionRequest struct {
	AlertID string `json:"alertId"`
}

// Alerts handles derived alert listing
// @Summary Derived early-warning alerts
// @Tags EWS
// @Produce json
// @Success 200 {object} response.Response
// @Security BearerAuth
// @Router /ews/alerts [get]
func (h *EWSHandler) Alerts(c *fiber.Ctx) error {
	alerts, err := h.ewsService.Alerts(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to derive alerts")
	}

	return response.Success(c, "Derived alerts", fiber.Map{"alerts": alerts})
}

// Action handles linking a derived alert to a new ticket
// @Summary Link alert to ticket
// @Tags EWS
// @Accept json
// @Produce json
// @Param body body ActionRequest true "Alert to link"
// @Success 201 {object} response.Response
// @Failure 404 {object} response.Response
// @Security BearerAuth
// @Router /ews/actions [post]
func (h *EWSHandler) Action(c *fiber.Ctx) error {
	var req ActionRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.AlertID == "" {
		return response.BadRequest(c, "alertId is required")
	}

	createdBy, _ := c.Locals("name").(string)
	ticket, err := h.ewsService.LinkToTicket(c.Context(), req.AlertID, createdBy)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return response.NotFound(c, "Alert not found")
		}
		return response.InternalServerError(c, "Failed to create ticket from alert")
	}

	return response.Created(c, "Ticket created from alert", fiber.Map{"ticket": ticket})
}

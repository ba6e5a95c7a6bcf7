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

// TicketHandler handles maintenance ticket endpoints
type TicketHandler struct {
	ticketService *services.TicketService
}

// NewTicketHandler creates a new ticket handler
func NewTicketHandler(ticketService *services.TicketService) *TicketHandler {
	return &TicketHandler{ticketService: ticketService}
}

// Create handles ticket creation
// @Summary Create ticket
// @Tags Tickets
// @Accept json
// @Produce json
// @Param body body services.CreateTicketInput true "Ticket data"
// @Success 201 {object} response.Response
// @Failure 404 {object} response.Response
// @Security BearerAuth
// @Router /tickets [post]
func (h *TicketHandler) Create(c *fiber.Ctx) error {
	var input services.CreateTicketInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if input.CreatedBy == "" {
		if name, ok := c.Locals("name").(string); ok {
			input.CreatedBy = name
		}
	}

	ticket, err := h.ticketService.Create(c.Context(), &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "assetId and title are required")
		case errors.Is(err, domain.ErrAssetNotFound):
			return response.NotFound(c, "Asset not found")
		default:
			return response.InternalServerError(c, "Failed to create ticket")
		}
	}

	return response.Created(c, "Ticket created", fiber.Map{"ticket": ticket})
}

// List handles ticket listing
// @Summary List tickets
// @Tags Tickets
// @Produce json
// @Param asset_id query int false "Filter by asset"
// @Param status query string false "Filter by status"
// @Param priority query string false "Filter by priority"
// @Success 200 {object} response.Response
// @Security BearerAuth
// @Router /tickets [get]
func (h *TicketHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	assetID, _ := strconv.ParseUint(c.Query("asset_id", "0"), 10, 32)
	filter := repositories.TicketFilter{
		AssetID:  uint(assetID),
		Status:   c.Query("status"),
		Priority: c.Query("priority"),
		Category: c.Query("category"),
	}

	tickets, total, err := h.ticketService.List(c.Context(), filter, params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list tickets")
	}

	return response.Success(c, "Tickets retrieved", fiber.Map{
		"tickets": tickets,
		"meta":    pagination.GetMeta(params, total),
	})
}

// Get handles single ticket retrieval
// @Summary Get ticket
// @Tags Tickets
// @Produce json
// @Param id path int true "Ticket ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Security BearerAuth
// @Router /tickets/{id} [get]
func (h *TicketHandler) Get(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid ticket ID")
	}

	ticket, err := h.ticketService.GetByID(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, domain.ErrTicketNotFound) {
			return response.NotFound(c, "Ticket not found")
		}
		return response.InternalServerError(c, "Failed to get ticket")
	}

	return response.Success(c, "Ticket retrieved", fiber.Map{"ticket": ticket})
}

// Update handles ticket patches
// @Summary Update ticket
// @Tags Tickets
// @Accept json
// @Produce json
// @Param id path int true "Ticket ID"
// @Param body body services.UpdateTicketInput true "Fields to update"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Security BearerAuth
// @Router /tickets/{id} [patch]
func (h *TicketHandler) Update(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid ticket ID")
	}

	var input services.UpdateTicketInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	ticket, err := h.ticketService.Update(c.Context(), uint(id), &input)
	if err != nil {
		if errors.Is(err, domain.ErrTicketNotFound) {
			return response.NotFound(c, "Ticket not found")
		}
		return response.InternalServerError(c, "Failed to update ticket")
	}

	return response.Success(c, "Ticket updated", fiber.Map{"ticket": ticket})
}

// Stats handles ticket status counts
// @Summary Ticket stats
// @Tags Tickets
// @Produce json
// @Success 200 {object} response.Response
// @Security BearerAuth
// @Router /tickets/stats [get]
func (h *TicketHandler) Stats(c *fiber.Ctx) error {
	counts, err := h.ticketService.CountByStatus(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to compute ticket stats")
	}

	return response.Success(c, "Ticket stats", fiber.Map{"counts": counts})
}

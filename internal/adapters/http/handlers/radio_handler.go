package handlers

import (
	"washlab-backend/internal/core/services"
	"washlab-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// RadioHandler handles community radio status endpoints
type RadioHandler struct {
	radioService *services.RadioService
}

// NewRadioHandler creates a new radio handler
func NewRadioHandler(radioService *services.RadioService) *RadioHandler {
	return &RadioHandler{radioService: radioService}
}

// Stats handles the live listener count
// @Summary Radio listener stats
// @Tags Radio
// @Produce json
// @Success 200 {object} response.Response
// @Failure 500 {object} response.Response
// @Security BearerAuth
// @Router /radio/stats [get]
func (h *RadioHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.radioService.Stats(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Radio status page unreachable")
	}

	return response.Success(c, "Radio stats", fiber.Map{"stats": stats})
}

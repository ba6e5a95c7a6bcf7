package handlers

import (
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"washlab-backend/internal/adapters/persistence/models"
	"washlab-backend/internal/core/domain"
	"washlab-backend/internal/core/services"
	"washlab-backend/internal/pkg/pagination"
	"washlab-backend/internal/pkg/response"
	"washlab-backend/internal/pkg/storage"

	"github.com/gofiber/fiber/v2"
)

// HygieneHandler handles hygiene session endpoints
type HygieneHandler struct {
	hygieneService *services.HygieneService
	uploader       storage.Uploader
}

// NewHygieneHandler creates a new hygiene handler
func NewHygieneHandler(hygieneService *services.HygieneService, uploader storage.Uploader) *HygieneHandler {
	return &HygieneHandler{hygieneService: hygieneService, uploader: uploader}
}

// Create handles session submission. The request is multipart: participants
// and topicsCovered arrive as JSON-encoded form fields, photos as files.
// @Summary Record hygiene session
// @Tags Hygiene
// @Accept multipart/form-data
// @Produce json
// @Param trainerName formData string true "Trainer name"
// @Param participants formData string false "JSON {men,women,youth}"
// @Param topicsCovered formData string false "JSON array of topics"
// @Param photos formData file false "Session photos"
// @Success 201 {object} response.Response
// @Failure 404 {object} response.Response
// @Security BearerAuth
// @Router /hygiene/sessions [post]
func (h *HygieneHandler) Create(c *fiber.Ctx) error {
	assetID, _ := strconv.ParseUint(c.FormValue("assetId", "0"), 10, 32)

	input := &services.CreateSessionInput{
		AssetID:     uint(assetID),
		TrainerName: c.FormValue("trainerName"),
		Location:    c.FormValue("location"),
		Remarks:     c.FormValue("remarks"),
	}

	if input.TrainerName == "" {
		return response.BadRequest(c, "trainerName is required")
	}

	if v := c.FormValue("sessionDate"); v != "" {
		date, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return response.BadRequest(c, "Invalid sessionDate")
		}
		input.SessionDate = date
	}

	if v := c.FormValue("participants"); v != "" {
		var p models.Participants
		if err := json.Unmarshal([]byte(v), &p); err != nil {
			return response.BadRequest(c, "Invalid participants JSON")
		}
		input.Participants = p
	}

	if v := c.FormValue("topicsCovered"); v != "" {
		var topics []string
		if err := json.Unmarshal([]byte(v), &topics); err != nil {
			return response.BadRequest(c, "Invalid topicsCovered JSON")
		}
		input.TopicsCovered = topics
	}

	if form, err := c.MultipartForm(); err == nil {
		for _, file := range form.File["photos"] {
			src, err := file.Open()
			if err != nil {
				return response.InternalServerError(c, "Failed to read photo")
			}
			obj, err := h.uploader.Upload(c.Context(), "hygiene", file.Filename,
				file.Header.Get("Content-Type"), src, file.Size)
			src.Close()
			if err != nil {
				return response.InternalServerError(c, "Failed to store photo")
			}
			input.Photos = append(input.Photos, obj.URL)
		}
	}

	session, err := h.hygieneService.Create(c.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAssetNotFound):
			return response.NotFound(c, "Asset not found")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Invalid session data")
		default:
			return response.InternalServerError(c, "Failed to record session")
		}
	}

	return response.Created(c, "Session recorded", fiber.Map{"session": session})
}

// List handles session listing
// @Summary List hygiene sessions
// @Tags Hygiene
// @Produce json
// @Param asset_id query int false "Filter by asset"
// @Success 200 {object} response.Response
// @Security BearerAuth
// @Router /hygiene/sessions [get]
func (h *HygieneHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)
	assetID, _ := strconv.ParseUint(c.Query("asset_id", "0"), 10, 32)

	sessions, total, err := h.hygieneService.List(c.Context(), uint(assetID), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list sessions")
	}

	return response.Success(c, "Sessions retrieved", fiber.Map{
		"sessions": sessions,
		"meta":     pagination.GetMeta(params, total),
	})
}

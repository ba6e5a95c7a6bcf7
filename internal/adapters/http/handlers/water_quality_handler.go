package handlers

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"washlab-backend/internal/adapters/persistence/models"
	"washlab-backend/internal/core/domain"
	"washlab-backend/internal/core/services"
	"washlab-backend/internal/pkg/pagination"
	"washlab-backend/internal/pkg/response"
	"washlab-backend/internal/pkg/storage"

	"github.com/gofiber/fiber/v2"
)

// WaterQualityHandler handles lab sample endpoints
type WaterQualityHandler struct {
	waterService *services.WaterQualityService
	uploader     storage.Uploader
}

// NewWaterQualityHandler creates a new water quality handler
func NewWaterQualityHandler(waterService *services.WaterQualityService, uploader storage.Uploader) *WaterQualityHandler {
	return &WaterQualityHandler{waterService: waterService, uploader: uploader}
}

// Create handles sample submission. The request is multipart: lab parameters
// come as form fields and the optional lab report as a single file.
// @Summary Submit water sample
// @Tags WaterQuality
// @Accept multipart/form-data
// @Produce json
// @Param assetId formData int true "Asset ID"
// @Param eColiCount formData number false "E. coli CFU/100ml"
// @Param turbidity formData number false "Turbidity NTU"
// @Param chlorineResidual formData number false "Chlorine residual mg/L"
// @Param ph formData number false "pH"
// @Param report formData file false "Lab report"
// @Success 201 {object} response.Response
// @Failure 404 {object} response.Response
// @Security BearerAuth
// @Router /water-quality/samples [post]
func (h *WaterQualityHandler) Create(c *fiber.Ctx) error {
	assetID, err := strconv.ParseUint(c.FormValue("assetId", "0"), 10, 32)
	if err != nil || assetID == 0 {
		return response.BadRequest(c, "assetId is required")
	}

	params := models.SampleParameters{
		EColiCount:       formFloat(c, "eColiCount"),
		Turbidity:        formFloat(c, "turbidity"),
		ChlorineResidual: formFloat(c, "chlorineResidual"),
		PH:               formFloat(c, "ph"),
	}

	input := &services.CreateSampleInput{
		AssetID:     uint(assetID),
		CollectedBy: c.FormValue("collectedBy"),
		Parameters:  params,
		LabName:     c.FormValue("labName"),
	}

	if v := c.FormValue("sampleDate"); v != "" {
		date, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return response.BadRequest(c, "Invalid sampleDate")
		}
		input.SampleDate = date
	}

	if file, err := c.FormFile("report"); err == nil {
		src, err := file.Open()
		if err != nil {
			return response.InternalServerError(c, "Failed to read report file")
		}
		obj, err := h.uploader.Upload(c.Context(), "water-quality", file.Filename,
			file.Header.Get("Content-Type"), src, file.Size)
		src.Close()
		if err != nil {
			return response.InternalServerError(c, "Failed to store report file")
		}
		input.ReportFile = obj.URL
	}

	sample, err := h.waterService.Create(c.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAssetNotFound):
			return response.NotFound(c, "Asset not found")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Invalid sample data")
		default:
			return response.InternalServerError(c, "Failed to store sample")
		}
	}

	return response.Created(c, "Sample recorded", fiber.Map{"sample": sample})
}

// List handles sample listing
// @Summary List water samples
// @Tags WaterQuality
// @Produce json
// @Param asset_id query int false "Filter by asset"
// @Success 200 {object} response.Response
// @Security BearerAuth
// @Router /water-quality/samples [get]
func (h *WaterQualityHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)
	assetID, _ := strconv.ParseUint(c.Query("asset_id", "0"), 10, 32)

	samples, total, err := h.waterService.List(c.Context(), uint(assetID), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list samples")
	}

	return response.Success(c, "Samples retrieved", fiber.Map{
		"samples": samples,
		"meta":    pagination.GetMeta(params, total),
	})
}

// formFloat reads a float form field, defaulting to zero.
func formFloat(c *fiber.Ctx, key string) float64 {
	v, _ := strconv.ParseFloat(strings.TrimSpace(c.FormValue(key, "0")), 64)
	return v
}

package handlers

import (
	"errors"
	"strconv"
	"time"

	"washlab-backend/internal/core/domain"
	"washlab-backend/internal/core/services"
	"washlab-backend/internal/pkg/pagination"
	"washlab-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// TelemetryHandler handles telemetry ingestion and KPI endpoints
type TelemetryHandler struct {
	telemetryService *services.TelemetryService
}

// NewTelemetryHandler creates a new telemetry handler
func NewTelemetryHandler(telemetryService *services.TelemetryService) *TelemetryHandler {
	return &TelemetryHandler{telemetryService: telemetryService}
}

// Ingest handles telemetry ingestion
// @Summary Ingest telemetry
// @Tags Telemetry
// @Accept json
// @Produce json
// @Param body body services.IngestInput true "Sensor reading"
// @Success 201 {object} response.Response
// @Failure 404 {object} response.Response
// @Security BearerAuth
// @Router /ingest/telemetry [post]
func (h *TelemetryHandler) Ingest(c *fiber.Ctx) error {
	var input services.IngestInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	reading, err := h.telemetryService.Ingest(c.Context(), &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "assetId is required")
		case errors.Is(err, domain.ErrAssetNotFound):
			return response.NotFound(c, "Asset not found")
		default:
			return response.InternalServerError(c, "Failed to store reading")
		}
	}

	return response.Created(c, "Reading stored", fiber.Map{"reading": reading})
}

// ListByAsset handles per-asset reading listing
// @Summary List readings
// @Tags Telemetry
// @Produce json
// @Param id path int true "Asset ID"
// @Success 200 {object} response.Response
// @Security BearerAuth
// @Router /telemetry/{id} [get]
func (h *TelemetryHandler) ListByAsset(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid asset ID")
	}

	params := pagination.GetParams(c)
	readings, total, err := h.telemetryService.ListByAsset(c.Context(), uint(id), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list readings")
	}

	return response.Success(c, "Readings retrieved", fiber.Map{
		"readings": readings,
		"meta":     pagination.GetMeta(params, total),
	})
}

// NetworkKPIs handles network dashboard KPIs
// @Summary Network KPIs
// @Tags KPI
// @Produce json
// @Param period query string false "Window, e.g. 30d"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Security BearerAuth
// @Router /kpi/network [get]
func (h *TelemetryHandler) NetworkKPIs(c *fiber.Ctx) error {
	kpi, err := h.telemetryService.NetworkKPIs(c.Context(), c.Query("period"))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidPeriod) {
			return response.BadRequest(c, "Invalid period, expected forms like 30d")
		}
		return response.InternalServerError(c, "Failed to compute network KPIs")
	}

	return response.Success(c, "Network KPIs", fiber.Map{"kpi": kpi})
}

// HubKPIs handles per-asset dashboard KPIs
// @Summary Hub KPIs
// @Tags KPI
// @Produce json
// @Param id path int true "Asset ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Security BearerAuth
// @Router /kpi/hub/{id} [get]
func (h *TelemetryHandler) HubKPIs(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid asset ID")
	}

	kpi, err := h.telemetryService.HubKPIs(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, domain.ErrAssetNotFound) {
			return response.NotFound(c, "Asset not found")
		}
		return response.InternalServerError(c, "Failed to compute hub KPIs")
	}

	return response.Success(c, "Hub KPIs", fiber.Map{"kpi": kpi})
}

// TimeSeries handles bucketed time series retrieval
// @Summary Telemetry time series
// @Tags KPI
// @Produce json
// @Param id path int true "Asset ID"
// @Param from query string false "RFC3339 start"
// @Param to query string false "RFC3339 end"
// @Param bucket query string false "Bucket width, e.g. 5m"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Security BearerAuth
// @Router /ts/{id} [get]
func (h *TelemetryHandler) TimeSeries(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid asset ID")
	}

	var from, to time.Time
	if v := c.Query("from"); v != "" {
		from, err = time.Parse(time.RFC3339, v)
		if err != nil {
			return response.BadRequest(c, "Invalid from timestamp")
		}
	}
	if v := c.Query("to"); v != "" {
		to, err = time.Parse(time.RFC3339, v)
		if err != nil {
			return response.BadRequest(c, "Invalid to timestamp")
		}
	}

	bucket, err := time.ParseDuration(c.Query("bucket", "5m"))
	if err != nil {
		return response.BadRequest(c, "Invalid bucket duration")
	}

	series, err := h.telemetryService.TimeSeries(c.Context(), uint(id), from, to, bucket)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAssetNotFound):
			return response.NotFound(c, "Asset not found")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Invalid time range or bucket")
		default:
			return response.InternalServerError(c, "Failed to build time series")
		}
	}

	return response.Success(c, "Time series", fiber.Map{"series": series})
}

package handlers

import (
	"errors"
	"strconv"

	"washlab-backend/internal/adapters/persistence/repositories"
	"washlab-backend/internal/core/domain"
	"washlab-backend/internal/core/services"
	"washlab-backend/internal/pkg/pagination"
	"washlab-backend/internal/pkg/response"
	"washlab-backend/internal/pkg/storage"

	"github.com/gofiber/fiber/v2"
)

// AssetHandler handles water scheme asset endpoints
type AssetHandler struct {
	assetService *services.AssetService
	uploader     storage.Uploader
}

// NewAssetHandler creates a new asset handler
func NewAssetHandler(assetService *services.AssetService, uploader storage.Uploader) *AssetHandler {
	return &AssetHandler{assetService: assetService, uploader: uploader}
}

// Create handles asset creation
// @Summary Create asset
// @Tags Assets
// @Accept json
// @Produce json
// @Param body body services.CreateAssetInput true "Asset data"
// @Success 201 {object} response.Response
// @Failure 409 {object} response.Response
// @Security BearerAuth
// @Router /assets [post]
func (h *AssetHandler) Create(c *fiber.Ctx) error {
	var input services.CreateAssetInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	asset, err := h.assetService.Create(c.Context(), &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicateEntry):
			return response.Conflict(c, "Scheme code already exists")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Site name, scheme code and county are required")
		default:
			return response.InternalServerError(c, "Failed to create asset")
		}
	}

	return response.Created(c, "Asset created", fiber.Map{"asset": asset})
}

// List handles asset listing
// @Summary List assets
// @Tags Assets
// @Produce json
// @Param county query string false "Filter by county"
// @Param status query string false "Filter by status"
// @Param energy_source query string false "Filter by energy source"
// @Success 200 {object} response.Response
// @Security BearerAuth
// @Router /assets [get]
func (h *AssetHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)
	filter := repositories.AssetFilter{
		County:       c.Query("county"),
		Status:       c.Query("status"),
		EnergySource: c.Query("energy_source"),
	}

	assets, total, err := h.assetService.List(c.Context(), filter, params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list assets")
	}

	return response.Success(c, "Assets retrieved", fiber.Map{
		"assets": assets,
		"meta":   pagination.GetMeta(params, total),
	})
}

// Get handles single asset retrieval
// @Summary Get asset
// @Tags Assets
// @Produce json
// @Param id path int true "Asset ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Security BearerAuth
// @Router /assets/{id} [get]
func (h *AssetHandler) Get(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid asset ID")
	}

	asset, err := h.assetService.GetByID(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, domain.ErrAssetNotFound) {
			return response.NotFound(c, "Asset not found")
		}
		return response.InternalServerError(c, "Failed to get asset")
	}

	return response.Success(c, "Asset retrieved", fiber.Map{"asset": asset})
}

// Update handles asset updates
// @Summary Update asset
// @Tags Assets
// @Accept json
// @Produce json
// @Param id path int true "Asset ID"
// @Param body body services.UpdateAssetInput true "Fields to update"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Security BearerAuth
// @Router /assets/{id} [patch]
func (h *AssetHandler) Update(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid asset ID")
	}

	var input services.UpdateAssetInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	asset, err := h.assetService.Update(c.Context(), uint(id), &input)
	if err != nil {
		if errors.Is(err, domain.ErrAssetNotFound) {
			return response.NotFound(c, "Asset not found")
		}
		return response.InternalServerError(c, "Failed to update asset")
	}

	return response.Success(c, "Asset updated", fiber.Map{"asset": asset})
}

// UploadImages handles multipart image uploads for an asset
// @Summary Upload asset images
// @Tags Assets
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Asset ID"
// @Param images formData file true "Image files"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Security BearerAuth
// @Router /assets/{id}/images [post]
func (h *AssetHandler) UploadImages(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid asset ID")
	}

	form, err := c.MultipartForm()
	if err != nil {
		return response.BadRequest(c, "Invalid multipart form")
	}

	files := form.File["images"]
	if len(files) == 0 {
		return response.BadRequest(c, "At least one image is required")
	}

	urls := make([]string, 0, len(files))
	for _, file := range files {
		src, err := file.Open()
		if err != nil {
			return response.InternalServerError(c, "Failed to read uploaded file")
		}

		obj, err := h.uploader.Upload(c.Context(), "assets", file.Filename,
			file.Header.Get("Content-Type"), src, file.Size)
		src.Close()
		if err != nil {
			return response.InternalServerError(c, "Failed to store uploaded file")
		}
		urls = append(urls, obj.URL)
	}

	asset, err := h.assetService.AddImages(c.Context(), uint(id), urls)
	if err != nil {
		if errors.Is(err, domain.ErrAssetNotFound) {
			return response.NotFound(c, "Asset not found")
		}
		return response.InternalServerError(c, "Failed to attach images")
	}

	return response.Success(c, "Images uploaded", fiber.Map{"asset": asset})
}

// Delete handles asset deletion
// @Summary Delete asset
// @Tags Assets
// @Produce json
// @Param id path int true "Asset ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Security BearerAuth
// @Router /assets/{id} [delete]
func (h *AssetHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid asset ID")
	}

	if err := h.assetService.Delete(c.Context(), uint(id)); err != nil {
		if errors.Is(err, domain.ErrAssetNotFound) {
			return response.NotFound(c, "Asset not found")
		}
		return response.InternalServerError(c, "Failed to delete asset")
	}

	return response.Success(c, "Asset deleted", nil)
}

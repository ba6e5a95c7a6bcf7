package handlers

import (
	"errors"
	"strconv"

	"washlab-backend/internal/core/domain"
	"washlab-backend/internal/core/services"
	"washlab-backend/internal/pkg/pagination"
	"washlab-backend/internal/pkg/response"
	"washlab-backend/internal/pkg/storage"

	"github.com/gofiber/fiber/v2"
)

// TestimonialHandler handles community testimonial endpoints
type TestimonialHandler struct {
	testimonialService *services.TestimonialService
	uploader           storage.Uploader
}

// NewTestimonialHandler creates a new testimonial handler
func NewTestimonialHandler(testimonialService *services.TestimonialService, uploader storage.Uploader) *TestimonialHandler {
	return &TestimonialHandler{testimonialService: testimonialService, uploader: uploader}
}

// SetStatusRequest represents a moderation decision
type SetStatusRequest struct {
	Status string `json:"status"`
}

// Create handles testimonial submission
// @Summary Submit testimonial
// @Tags Testimonials
// @Accept json
// @Produce json
// @Param body body services.CreateTestimonialInput true "Testimonial data"
// @Success 201 {object} response.Response
// @Router /testimonials [post]
func (h *TestimonialHandler) Create(c *fiber.Ctx) error {
	var input services.CreateTestimonialInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	testimonial, err := h.testimonialService.Create(c.Context(), &input)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return response.BadRequest(c, "Name, comment and a rating between 0 and 5 are required")
		}
		return response.InternalServerError(c, "Failed to submit testimonial")
	}

	return response.Created(c, "Testimonial submitted for review", fiber.Map{"testimonial": testimonial})
}

// ListApproved handles the public approved feed
// @Summary List approved testimonials
// @Tags Testimonials
// @Produce json
// @Success 200 {object} response.Response
// @Router /testimonials/approved [get]
func (h *TestimonialHandler) ListApproved(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	testimonials, total, err := h.testimonialService.ListApproved(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list testimonials")
	}

	return response.Success(c, "Testimonials retrieved", fiber.Map{
		"testimonials": testimonials,
		"meta":         pagination.GetMeta(params, total),
	})
}

// List handles the moderation queue
// @Summary List testimonials
// @Tags Testimonials
// @Produce json
// @Param status query string false "Filter by status"
// @Success 200 {object} response.Response
// @Security BearerAuth
// @Router /testimonials/all [get]
func (h *TestimonialHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	testimonials, total, err := h.testimonialService.List(c.Context(), c.Query("status"), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list testimonials")
	}

	return response.Success(c, "Testimonials retrieved", fiber.Map{
		"testimonials": testimonials,
		"meta":         pagination.GetMeta(params, total),
	})
}

// SetStatus handles moderation decisions
// @Summary Moderate testimonial
// @Tags Testimonials
// @Accept json
// @Produce json
// @Param id path int true "Testimonial ID"
// @Param body body SetStatusRequest true "New status"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Security BearerAuth
// @Router /testimonials/{id}/status [patch]
func (h *TestimonialHandler) SetStatus(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid testimonial ID")
	}

	var req SetStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	testimonial, err := h.testimonialService.SetStatus(c.Context(), uint(id), req.Status)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return response.NotFound(c, "Testimonial not found")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Status must be pending, approved or rejected")
		default:
			return response.InternalServerError(c, "Failed to update testimonial")
		}
	}

	return response.Success(c, "Testimonial updated", fiber.Map{"testimonial": testimonial})
}

// UploadImages handles testimonial photo attachment
// @Summary Upload testimonial images
// @Tags Testimonials
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Testimonial ID"
// @Param images formData file true "Image files"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Security BearerAuth
// @Router /testimonials/{id}/images [post]
func (h *TestimonialHandler) UploadImages(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid testimonial ID")
	}

	form, err := c.MultipartForm()
	if err != nil {
		return response.BadRequest(c, "Invalid multipart form")
	}

	files := form.File["images"]
	if len(files) == 0 {
		return response.BadRequest(c, "At least one image is required")
	}

	var urls []string
	for _, file := range files {
		src, err := file.Open()
		if err != nil {
			return response.InternalServerError(c, "Failed to read uploaded image")
		}

		obj, err := h.uploader.Upload(c.Context(), "testimonials", file.Filename,
			file.Header.Get("Content-Type"), src, file.Size)
		src.Close()
		if err != nil {
			return response.InternalServerError(c, "Failed to store image")
		}
		urls = append(urls, obj.URL)
	}

	testimonial, err := h.testimonialService.AddImages(c.Context(), uint(id), urls)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return response.NotFound(c, "Testimonial not found")
		}
		return response.InternalServerError(c, "Failed to attach images")
	}

	return response.Success(c, "Images uploaded", fiber.Map{"testimonial": testimonial})
}

// Delete handles testimonial deletion
// @Summary Delete testimonial
// @Tags Testimonials
// @Produce json
// @Param id path int true "Testimonial ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Security BearerAuth
// @Router /testimonials/{id} [delete]
func (h *TestimonialHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid testimonial ID")
	}

	if err := h.testimonialService.Delete(c.Context(), uint(id)); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return response.NotFound(c, "Testimonial not found")
		}
		return response.InternalServerError(c, "Failed to delete testimonial")
	}

	return response.Success(c, "Testimonial deleted", nil)
}

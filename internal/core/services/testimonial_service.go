package services

import (
	"context"
	"errors"
	"log"

	"washlab-backend/internal/adapters/persistence/models"
	"washlab-backend/internal/adapters/persistence/repositories"
	"washlab-backend/internal/core/domain"

	"gorm.io/gorm"
)

// Testimonial statuses
const (
	TestimonialPending  = "pending"
	TestimonialApproved = "approved"
	TestimonialRejected = "rejected"
)

// TestimonialService handles community testimonial business logic
type TestimonialService struct {
	testimonialRepo repositories.TestimonialRepository
}

// NewTestimonialService creates a new testimonial service
func NewTestimonialService(testimonialRepo repositories.TestimonialRepository) *TestimonialService {
	return &TestimonialService{testimonialRepo: testimonialRepo}
}

// CreateTestimonialInput represents testimonial creation input
type CreateTestimonialInput struct {
	Name        string   `json:"name" validate:"required"`
	Email       string   `json:"email"`
	PackageName string   `json:"packageName"`
	Rating      int      `json:"rating"`
	Title       string   `json:"title"`
	Comment     string   `json:"comment" validate:"required"`
	Images      []string `json:"images"`
}

// Create records a testimonial in the pending state
func (s *TestimonialService) Create(ctx context.Context, input *CreateTestimonialInput) (*models.Testimonial, error) {
	if input.Name == "" || input.Comment == "" {
		return nil, domain.ErrInvalidInput
	}
	if input.Rating < 0 || input.Rating > 5 {
		return nil, domain.ErrInvalidInput
	}

	testimonial := &models.Testimonial{
		Name:        input.Name,
		Email:       input.Email,
		PackageName: input.PackageName,
		Rating:      input.Rating,
		Title:       input.Title,
		Comment:     input.Comment,
		Status:      TestimonialPending,
		Images:      input.Images,
	}

	if err := s.testimonialRepo.Create(ctx, testimonial); err != nil {
		return nil, err
	}

	log.Printf("✅ Testimonial received from %s", testimonial.Name)
	return testimonial, nil
}

// GetByID gets a testimonial by ID
func (s *TestimonialService) GetByID(ctx context.Context, id uint) (*models.Testimonial, error) {
	testimonial, err := s.testimonialRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return testimonial, nil
}

// List lists testimonials, optionally by status
func (s *TestimonialService) List(ctx context.Context, status string, offset, limit int) ([]*models.Testimonial, int64, error) {
	return s.testimonialRepo.List(ctx, status, offset, limit)
}

// ListApproved lists approved testimonials for the public site
func (s *TestimonialService) ListApproved(ctx context.Context, offset, limit int) ([]*models.Testimonial, int64, error) {
	return s.testimonialRepo.List(ctx, TestimonialApproved, offset, limit)
}

// SetStatus moderates a testimonial
func (s *TestimonialService) SetStatus(ctx context.Context, id uint, status string) (*models.Testimonial, error) {
	if status != TestimonialPending && status != TestimonialApproved && status != TestimonialRejected {
		return nil, domain.ErrInvalidInput
	}

	testimonial, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	testimonial.Status = status
	if err := s.testimonialRepo.Update(ctx, testimonial); err != nil {
		return nil, err
	}
	return testimonial, nil
}

// AddImages appends uploaded image URLs to a testimonial
func (s *TestimonialService) AddImages(ctx context.Context, id uint, urls []string) (*models.Testimonial, error) {
	testimonial, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	testimonial.Images = append(testimonial.Images, urls...)
	if err := s.testimonialRepo.Update(ctx, testimonial); err != nil {
		return nil, err
	}
	return testimonial, nil
}

// Delete soft deletes a testimonial
func (s *TestimonialService) Delete(ctx context.Context, id uint) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.testimonialRepo.Delete(ctx, id)
}

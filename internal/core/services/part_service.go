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

// PartService handles spare part inventory business logic
type PartService struct {
	partRepo repositories.PartRepository
}

// NewPartService creates a new part service
func NewPartService(partRepo repositories.PartRepository) *PartService {
	return &PartService{partRepo: partRepo}
}

// CreatePartInput represents part creation input
type CreatePartInput struct {
	Name        string  `json:"name" validate:"required"`
	PartNumber  string  `json:"partNumber" validate:"required"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Stock       int     `json:"stock"`
	Location    string  `json:"location"`
	Vendor      string  `json:"vendor"`
	PriceKES    float64 `json:"priceKES"`
}

// UpdatePartInput carries optional part fields
type UpdatePartInput struct {
	Name        *string  `json:"name"`
	Category    *string  `json:"category"`
	Description *string  `json:"description"`
	Location    *string  `json:"location"`
	Vendor      *string  `json:"vendor"`
	PriceKES    *float64 `json:"priceKES"`
	Status      *string  `json:"status"`
}

// Create creates a new part
func (s *PartService) Create(ctx context.Context, input *CreatePartInput) (*models.Part, error) {
	if input.Name == "" || input.PartNumber == "" {
		return nil, domain.ErrInvalidInput
	}
	if input.Stock < 0 {
		return nil, domain.ErrInvalidInput
	}

	exists, err := s.partRepo.ExistsByPartNumber(ctx, input.PartNumber)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicateEntry
	}

	part := &models.Part{
		Name:        input.Name,
		PartNumber:  input.PartNumber,
		Category:    input.Category,
		Description: input.Description,
		Stock:       input.Stock,
		Location:    input.Location,
		Vendor:      input.Vendor,
		PriceKES:    input.PriceKES,
		Status:      "available",
	}
	if part.Category == "" {
		part.Category = "other"
	}

	if err := s.partRepo.Create(ctx, part); err != nil {
		return nil, err
	}

	log.Printf("✅ Part added: %s (%s)", part.Name, part.PartNumber)
	return part, nil
}

// GetByID gets a part by ID
func (s *PartService) GetByID(ctx context.Context, id uint) (*models.Part, error) {
	part, err := s.partRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPartNotFound
		}
		return nil, err
	}
	return part, nil
}

// List lists parts, optionally by category
func (s *PartService) List(ctx context.Context, category string, offset, limit int) ([]*models.Part, int64, error) {
	return s.partRepo.List(ctx, category, offset, limit)
}

// Update patches a part's descriptive fields
func (s *PartService) Update(ctx context.Context, id uint, input *UpdatePartInput) (*models.Part, error) {
	part, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		part.Name = *input.Name
	}
	if input.Category != nil {
		part.Category = *input.Category
	}
	if input.Description != nil {
		part.Description = *input.Description
	}
	if input.Location != nil {
		part.Location = *input.Location
	}
	if input.Vendor != nil {
		part.Vendor = *input.Vendor
	}
	if input.PriceKES != nil {
		part.PriceKES = *input.PriceKES
	}
	if input.Status != nil {
		part.Status = *input.Status
	}

	if err := s.partRepo.Update(ctx, part); err != nil {
		return nil, err
	}
	return part, nil
}

// AdjustStock applies a signed delta to a part's stock. Stock never goes
// negative.
func (s *PartService) AdjustStock(ctx context.Context, id uint, delta int) (*models.Part, error) {
	part, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if part.Stock+delta < 0 {
		return nil, domain.ErrInvalidInput
	}
	part.Stock += delta

	if err := s.partRepo.Update(ctx, part); err != nil {
		return nil, err
	}

	log.Printf("✅ Stock adjusted: %s now %d", part.PartNumber, part.Stock)
	return part, nil
}

// Delete soft deletes a part
func (s *PartService) Delete(ctx context.Context, id uint) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.partRepo.Delete(ctx, id)
}

// ListLowStock lists parts at or below a threshold
func (s *PartService) ListLowStock(ctx context.Context, threshold int) ([]*models.Part, error) {
	return s.partRepo.ListLowStock(ctx, threshold)
}

package services

import (
	"context"
	"errors"
	"log"
	"time"

	"washlab-backend/internal/adapters/persistence/models"
	"washlab-backend/internal/adapters/persistence/repositories"
	"washlab-backend/internal/core/domain"

	"gorm.io/gorm"
)

// TicketService handles maintenance ticket business logic
type TicketService struct {
	ticketRepo repositories.TicketRepository
	assetRepo  repositories.AssetRepository
}

// NewTicketService creates a new ticket service
func NewTicketService(ticketRepo repositories.TicketRepository, assetRepo repositories.AssetRepository) *TicketService {
	return &TicketService{ticketRepo: ticketRepo, assetRepo: assetRepo}
}

// CreateTicketInput represents ticket creation input
type CreateTicketInput struct {
	AssetID     uint   `json:"assetId" validate:"required"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Priority    string `json:"priority"`
	CreatedBy   string `json:"createdBy"`
	AssignedTo  string `json:"assignedTo"`
}

// UpdateTicketInput carries optional ticket fields. Nil fields stay untouched.
type UpdateTicketInput struct {
	Status          *string `json:"status"`
	Priority        *string `json:"priority"`
	AssignedTo      *string `json:"assignedTo"`
	ResolutionNotes *string `json:"resolutionNotes"`
}

// Create creates a new ticket
func (s *TicketService) Create(ctx context.Context, input *CreateTicketInput) (*models.Ticket, error) {
	if input.AssetID == 0 || input.Title == "" {
		return nil, domain.ErrInvalidInput
	}

	if _, err := s.assetRepo.GetByID(ctx, input.AssetID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAssetNotFound
		}
		return nil, err
	}

	ticket := &models.Ticket{
		AssetID:     input.AssetID,
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		Priority:    input.Priority,
		Status:      domain.TicketOpen,
		CreatedBy:   input.CreatedBy,
		AssignedTo:  input.AssignedTo,
	}
	if ticket.Category == "" {
		ticket.Category = "mechanical"
	}
	if ticket.Priority == "" {
		ticket.Priority = "medium"
	}

	if err := s.ticketRepo.Create(ctx, ticket); err != nil {
		return nil, err
	}

	log.Printf("✅ Ticket created: #%d %s", ticket.ID, ticket.Title)
	return ticket, nil
}

// GetByID gets a ticket by ID
func (s *TicketService) GetByID(ctx context.Context, id uint) (*models.Ticket, error) {
	ticket, err := s.ticketRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTicketNotFound
		}
		return nil, err
	}
	return ticket, nil
}

// List lists tickets with filters and pagination
func (s *TicketService) List(ctx context.Context, filter repositories.TicketFilter, offset, limit int) ([]*models.Ticket, int64, error) {
	return s.ticketRepo.List(ctx, filter, offset, limit)
}

// Update patches a ticket. Moving into the closed status stamps closedAt;
// moving out of it clears the stamp.
func (s *TicketService) Update(ctx context.Context, id uint, input *UpdateTicketInput) (*models.Ticket, error) {
	ticket, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Status != nil {
		ticket.Status = *input.Status
		if ticket.Status == domain.TicketClosed {
			now := time.Now()
			ticket.ClosedAt = &now
		} else {
			ticket.ClosedAt = nil
		}
	}
	if input.Priority != nil {
		ticket.Priority = *input.Priority
	}
	if input.AssignedTo != nil {
		ticket.AssignedTo = *input.AssignedTo
	}
	if input.ResolutionNotes != nil {
		ticket.ResolutionNotes = *input.ResolutionNotes
	}

	if err := s.ticketRepo.Update(ctx, ticket); err != nil {
		return nil, err
	}
	return ticket, nil
}

// CountByStatus counts tickets grouped by status
func (s *TicketService) CountByStatus(ctx context.Context) (map[string]int64, error) {
	return s.ticketRepo.CountByStatus(ctx)
}

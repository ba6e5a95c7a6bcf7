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

// HygieneService handles hygiene training session business logic
type HygieneService struct {
	hygieneRepo repositories.HygieneRepository
	assetRepo   repositories.AssetRepository
}

// NewHygieneService creates a new hygiene service
func NewHygieneService(hygieneRepo repositories.HygieneRepository, assetRepo repositories.AssetRepository) *HygieneService {
	return &HygieneService{hygieneRepo: hygieneRepo, assetRepo: assetRepo}
}

// CreateSessionInput represents hygiene session creation input
type CreateSessionInput struct {
	AssetID       uint                `json:"assetId"`
	SessionDate   time.Time           `json:"sessionDate"`
	TrainerName   string              `json:"trainerName"`
	Location      string              `json:"location"`
	Participants  models.Participants `json:"participants"`
	TopicsCovered []string            `json:"topicsCovered"`
	Photos        []string            `json:"photos"`
	Remarks       string              `json:"remarks"`
}

// Create records a hygiene session
func (s *HygieneService) Create(ctx context.Context, input *CreateSessionInput) (*models.HygieneSession, error) {
	if input.TrainerName == "" {
		return nil, domain.ErrInvalidInput
	}

	if input.AssetID != 0 {
		if _, err := s.assetRepo.GetByID(ctx, input.AssetID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, domain.ErrAssetNotFound
			}
			return nil, err
		}
	}

	session := &models.HygieneSession{
		AssetID:       input.AssetID,
		SessionDate:   input.SessionDate,
		TrainerName:   input.TrainerName,
		Location:      input.Location,
		Participants:  input.Participants,
		TopicsCovered: input.TopicsCovered,
		Photos:        input.Photos,
		Remarks:       input.Remarks,
	}
	if session.SessionDate.IsZero() {
		session.SessionDate = time.Now()
	}

	if err := s.hygieneRepo.Create(ctx, session); err != nil {
		return nil, err
	}

	log.Printf("✅ Hygiene session recorded: %s (%s)", session.TrainerName, session.Location)
	return session, nil
}

// GetByID gets a session by ID
func (s *HygieneService) GetByID(ctx context.Context, id uint) (*models.HygieneSession, error) {
	session, err := s.hygieneRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return session, nil
}

// List lists sessions, optionally for one asset
func (s *HygieneService) List(ctx context.Context, assetID uint, offset, limit int) ([]*models.HygieneSession, int64, error) {
	return s.hygieneRepo.List(ctx, assetID, offset, limit)
}

// CountSince counts sessions held since a date
func (s *HygieneService) CountSince(ctx context.Context, assetID uint, since time.Time) (int64, error) {
	return s.hygieneRepo.CountSince(ctx, assetID, since)
}

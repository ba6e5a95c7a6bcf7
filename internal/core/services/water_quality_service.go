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

// WaterQualityService handles lab sample business logic
type WaterQualityService struct {
	sampleRepo repositories.WaterQualityRepository
	assetRepo  repositories.AssetRepository
}

// NewWaterQualityService creates a new water quality service
func NewWaterQualityService(sampleRepo repositories.WaterQualityRepository, assetRepo repositories.AssetRepository) *WaterQualityService {
	return &WaterQualityService{sampleRepo: sampleRepo, assetRepo: assetRepo}
}

// CreateSampleInput represents sample creation input
type CreateSampleInput struct {
	AssetID     uint                    `json:"assetId" validate:"required"`
	SampleDate  time.Time               `json:"sampleDate"`
	CollectedBy string                  `json:"collectedBy"`
	Parameters  models.SampleParameters `json:"parameters"`
	LabName     string                  `json:"labName"`
	ReportFile  string                  `json:"reportFile"`
}

// Create stores a sample with its derived result status
func (s *WaterQualityService) Create(ctx context.Context, input *CreateSampleInput) (*models.WaterQualitySample, error) {
	if input.AssetID == 0 {
		return nil, domain.ErrInvalidInput
	}

	if _, err := s.assetRepo.GetByID(ctx, input.AssetID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAssetNotFound
		}
		return nil, err
	}

	sample := &models.WaterQualitySample{
		AssetID:      input.AssetID,
		SampleDate:   input.SampleDate,
		CollectedBy:  input.CollectedBy,
		Parameters:   input.Parameters,
		ResultStatus: ClassifySample(input.Parameters),
		LabName:      input.LabName,
		ReportFile:   input.ReportFile,
	}
	if sample.SampleDate.IsZero() {
		sample.SampleDate = time.Now()
	}

	if err := s.sampleRepo.Create(ctx, sample); err != nil {
		return nil, err
	}

	log.Printf("✅ Water sample recorded: asset %d → %s", sample.AssetID, sample.ResultStatus)
	return sample, nil
}

// GetByID gets a sample by ID
func (s *WaterQualityService) GetByID(ctx context.Context, id uint) (*models.WaterQualitySample, error) {
	sample, err := s.sampleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return sample, nil
}

// List lists samples, optionally for one asset
func (s *WaterQualityService) List(ctx context.Context, assetID uint, offset, limit int) ([]*models.WaterQualitySample, int64, error) {
	return s.sampleRepo.List(ctx, assetID, offset, limit)
}

// PassRateSince returns the percentage of samples passing since a date.
// No samples yields zero.
func (s *WaterQualityService) PassRateSince(ctx context.Context, assetID uint, since time.Time) (float64, error) {
	counts, err := s.sampleRepo.CountByResultSince(ctx, assetID, since)
	if err != nil {
		return 0, err
	}

	var total int64
	for _, c := range counts {
		total += c
	}
	if total == 0 {
		return 0, nil
	}
	return float64(counts[domain.ResultPass]) / float64(total) * 100, nil
}

// ClassifySample derives a sample's result status from its parameters.
// Any e. coli, high turbidity, or low chlorine fails outright; moderately
// elevated turbidity warns; everything else passes.
func ClassifySample(p models.SampleParameters) string {
	if p.EColiCount > 0 || p.Turbidity > 5 || p.ChlorineResidual < 0.2 {
		return domain.ResultFail
	}
	if p.Turbidity > 3 && p.Turbidity <= 5 {
		return domain.ResultWarning
	}
	return domain.ResultPass
}

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

// AssetService handles water scheme asset business logic
type AssetService struct {
	assetRepo repositories.AssetRepository
}

// NewAssetService creates a new asset service
func NewAssetService(assetRepo repositories.AssetRepository) *AssetService {
	return &AssetService{assetRepo: assetRepo}
}

// CreateAssetInput represents asset creation input
type CreateAssetInput struct {
	SiteName         string     `json:"siteName" validate:"required"`
	SchemeCode       string     `json:"schemeCode" validate:"required"`
	GPS              models.GPS `json:"gps"`
	County           string     `json:"county" validate:"required"`
	SubCounty        string     `json:"subCounty"`
	Status           string     `json:"status"`
	EnergySource     string     `json:"energySource"`
	CapacityM3Day    float64    `json:"capacity_m3_day"`
	Operator         string     `json:"operator"`
	InstallationDate *time.Time `json:"installationDate"`
}

// UpdateAssetInput carries optional asset fields. Nil fields stay untouched.
type UpdateAssetInput struct {
	SiteName       *string     `json:"siteName"`
	GPS            *models.GPS `json:"gps"`
	County         *string     `json:"county"`
	SubCounty      *string     `json:"subCounty"`
	Status         *string     `json:"status"`
	EnergySource   *string     `json:"energySource"`
	CapacityM3Day  *float64    `json:"capacity_m3_day"`
	Operator       *string     `json:"operator"`
	LastInspection *time.Time  `json:"lastInspection"`
}

// Create creates a new asset
func (s *AssetService) Create(ctx context.Context, input *CreateAssetInput) (*models.Asset, error) {
	if input.SiteName == "" || input.SchemeCode == "" || input.County == "" {
		return nil, domain.ErrInvalidInput
	}

	exists, err := s.assetRepo.ExistsBySchemeCode(ctx, input.SchemeCode)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicateEntry
	}

	asset := &models.Asset{
		SiteName:         input.SiteName,
		SchemeCode:       input.SchemeCode,
		GPS:              input.GPS,
		County:           input.County,
		SubCounty:        input.SubCounty,
		Status:           input.Status,
		EnergySource:     input.EnergySource,
		CapacityM3Day:    input.CapacityM3Day,
		Operator:         input.Operator,
		InstallationDate: input.InstallationDate,
	}
	if asset.Status == "" {
		asset.Status = domain.AssetStatusActive
	}
	if asset.EnergySource == "" {
		asset.EnergySource = domain.EnergySolar
	}

	if err := s.assetRepo.Create(ctx, asset); err != nil {
		return nil, err
	}

	log.Printf("✅ Asset created: %s (%s)", asset.SiteName, asset.SchemeCode)
	return asset, nil
}

// GetByID gets an asset by ID
func (s *AssetService) GetByID(ctx context.Context, id uint) (*models.Asset, error) {
	asset, err := s.assetRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAssetNotFound
		}
		return nil, err
	}
	return asset, nil
}

// List lists assets with filters and pagination
func (s *AssetService) List(ctx context.Context, filter repositories.AssetFilter, offset, limit int) ([]*models.Asset, int64, error) {
	return s.assetRepo.List(ctx, filter, offset, limit)
}

// Update updates an asset's mutable fields
func (s *AssetService) Update(ctx context.Context, id uint, input *UpdateAssetInput) (*models.Asset, error) {
	asset, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.SiteName != nil {
		asset.SiteName = *input.SiteName
	}
	if input.GPS != nil {
		asset.GPS = *input.GPS
	}
	if input.County != nil {
		asset.County = *input.County
	}
	if input.SubCounty != nil {
		asset.SubCounty = *input.SubCounty
	}
	if input.Status != nil {
		asset.Status = *input.Status
	}
	if input.EnergySource != nil {
		asset.EnergySource = *input.EnergySource
	}
	if input.CapacityM3Day != nil {
		asset.CapacityM3Day = *input.CapacityM3Day
	}
	if input.Operator != nil {
		asset.Operator = *input.Operator
	}
	if input.LastInspection != nil {
		asset.LastInspection = input.LastInspection
	}

	if err := s.assetRepo.Update(ctx, asset); err != nil {
		return nil, err
	}
	return asset, nil
}

// AddImages appends uploaded image URLs to an asset
func (s *AssetService) AddImages(ctx context.Context, id uint, urls []string) (*models.Asset, error) {
	asset, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	asset.Images = append(asset.Images, urls...)
	if err := s.assetRepo.Update(ctx, asset); err != nil {
		return nil, err
	}
	return asset, nil
}

// Delete soft deletes an asset
func (s *AssetService) Delete(ctx context.Context, id uint) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.assetRepo.Delete(ctx, id)
}

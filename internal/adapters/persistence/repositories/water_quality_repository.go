package repositories

import (
	"context"
	"time"

	"washlab-backend/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// waterQualityRepository implements WaterQualityRepository interface
type waterQualityRepository struct {
	db *gorm.DB
}

// NewWaterQualityRepository creates a new water quality repository
func NewWaterQualityRepository(db *gorm.DB) WaterQualityRepository {
	return &waterQualityRepository{db: db}
}

// Create creates a new sample
func (r *waterQualityRepository) Create(ctx context.Context, sample *models.WaterQualitySample) error {
	return r.db.WithContext(ctx).Create(sample).Error
}

// GetByID gets a sample by ID with its asset
func (r *waterQualityRepository) GetByID(ctx context.Context, id uint) (*models.WaterQualitySample, error) {
	var sample models.WaterQualitySample
	err := r.db.WithContext(ctx).Preload("Asset").Where("id = ?", id).First(&sample).Error
	if err != nil {
		return nil, err
	}
	return &sample, nil
}

// Update updates a sample
func (r *waterQualityRepository) Update(ctx context.Context, sample *models.WaterQualitySample) error {
	return r.db.WithContext(ctx).Save(sample).Error
}

// List lists samples, optionally for one asset, newest first
func (r *waterQualityRepository) List(ctx context.Context, assetID uint, offset, limit int) ([]*models.WaterQualitySample, int64, error) {
	var samples []*models.WaterQualitySample
	var total int64

	query := r.db.WithContext(ctx).Model(&models.WaterQualitySample{})
	if assetID != 0 {
		query = query.Where("asset_id = ?", assetID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Preload("Asset").Order("sample_date DESC").Offset(offset).Limit(limit).Find(&samples).Error; err != nil {
		return nil, 0, err
	}

	return samples, total, nil
}

// CountByResultSince counts samples grouped by result status since a date.
// assetID 0 counts across all assets.
func (r *waterQualityRepository) CountByResultSince(ctx context.Context, assetID uint, since time.Time) (map[string]int64, error) {
	type row struct {
		ResultStatus string
		Count        int64
	}
	var rows []row

	query := r.db.WithContext(ctx).Model(&models.WaterQualitySample{}).
		Select("result_status, COUNT(*) as count").
		Where("sample_date >= ?", since)
	if assetID != 0 {
		query = query.Where("asset_id = ?", assetID)
	}

	if err := query.Group("result_status").Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, rw := range rows {
		counts[rw.ResultStatus] = rw.Count
	}
	return counts, nil
}

package repositories

import (
	"context"
	"time"

	"washlab-backend/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// telemetryRepository implements TelemetryRepository interface
type telemetryRepository struct {
	db *gorm.DB
}

// NewTelemetryRepository creates a new telemetry repository
func NewTelemetryRepository(db *gorm.DB) TelemetryRepository {
	return &telemetryRepository{db: db}
}

// Create stores one telemetry reading
func (r *telemetryRepository) Create(ctx context.Context, reading *models.Telemetry) error {
	return r.db.WithContext(ctx).Create(reading).Error
}

// ListByAsset lists readings for one asset, newest first
func (r *telemetryRepository) ListByAsset(ctx context.Context, assetID uint, since time.Time, offset, limit int) ([]*models.Telemetry, int64, error) {
	var readings []*models.Telemetry
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Telemetry{}).Where("asset_id = ?", assetID)
	if !since.IsZero() {
		query = query.Where("created_at >= ?", since)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&readings).Error; err != nil {
		return nil, 0, err
	}

	return readings, total, nil
}

// LatestByAsset gets the most recent reading for one asset
func (r *telemetryRepository) LatestByAsset(ctx context.Context, assetID uint) (*models.Telemetry, error) {
	var reading models.Telemetry
	err := r.db.WithContext(ctx).
		Where("asset_id = ?", assetID).
		Order("created_at DESC").
		First(&reading).Error
	if err != nil {
		return nil, err
	}
	return &reading, nil
}

// LatestPerAsset gets the most recent reading of every asset in one query
func (r *telemetryRepository) LatestPerAsset(ctx context.Context) ([]*models.Telemetry, error) {
	var readings []*models.Telemetry
	sub := r.db.Model(&models.Telemetry{}).
		Select("MAX(id)").
		Group("asset_id")
	err := r.db.WithContext(ctx).
		Preload("Asset").
		Where("id IN (?)", sub).
		Find(&readings).Error
	return readings, err
}

// ListSince lists all readings recorded at or after since
func (r *telemetryRepository) ListSince(ctx context.Context, since time.Time) ([]*models.Telemetry, error) {
	var readings []*models.Telemetry
	err := r.db.WithContext(ctx).
		Where("created_at >= ?", since).
		Order("created_at ASC").
		Find(&readings).Error
	return readings, err
}

// ListByAssetBetween lists readings for one asset inside a time window
func (r *telemetryRepository) ListByAssetBetween(ctx context.Context, assetID uint, from, to time.Time) ([]*models.Telemetry, error) {
	var readings []*models.Telemetry
	err := r.db.WithContext(ctx).
		Where("asset_id = ? AND created_at >= ? AND created_at < ?", assetID, from, to).
		Order("created_at ASC").
		Find(&readings).Error
	return readings, err
}

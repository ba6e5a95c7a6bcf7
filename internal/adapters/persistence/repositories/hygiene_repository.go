package repositories

import (
	"context"
	"time"

	"washlab-backend/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// hygieneRepository implements HygieneRepository interface
type hygieneRepository struct {
	db *gorm.DB
}

// NewHygieneRepository creates a new hygiene session repository
func NewHygieneRepository(db *gorm.DB) HygieneRepository {
	return &hygieneRepository{db: db}
}

// Create creates a new session
func (r *hygieneRepository) Create(ctx context.Context, session *models.HygieneSession) error {
	return r.db.WithContext(ctx).Create(session).Error
}

// GetByID gets a session by ID
func (r *hygieneRepository) GetByID(ctx context.Context, id uint) (*models.HygieneSession, error) {
	var session models.HygieneSession
	err := r.db.WithContext(ctx).Preload("Asset").Where("id = ?", id).First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// Update updates a session
func (r *hygieneRepository) Update(ctx context.Context, session *models.HygieneSession) error {
	return r.db.WithContext(ctx).Save(session).Error
}

// List lists sessions, optionally for one asset, newest first
func (r *hygieneRepository) List(ctx context.Context, assetID uint, offset, limit int) ([]*models.HygieneSession, int64, error) {
	var sessions []*models.HygieneSession
	var total int64

	query := r.db.WithContext(ctx).Model(&models.HygieneSession{})
	if assetID != 0 {
		query = query.Where("asset_id = ?", assetID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("session_date DESC").Offset(offset).Limit(limit).Find(&sessions).Error; err != nil {
		return nil, 0, err
	}

	return sessions, total, nil
}

// CountSince counts sessions held since a date. assetID 0 counts all assets.
func (r *hygieneRepository) CountSince(ctx context.Context, assetID uint, since time.Time) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.HygieneSession{}).Where("session_date >= ?", since)
	if assetID != 0 {
		query = query.Where("asset_id = ?", assetID)
	}
	err := query.Count(&count).Error
	return count, err
}

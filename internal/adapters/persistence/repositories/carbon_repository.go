package repositories

import (
	"context"

	"washlab-backend/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// carbonRepository implements CarbonRepository interface
type carbonRepository struct {
	db *gorm.DB
}

// NewCarbonRepository creates a new carbon repository
func NewCarbonRepository(db *gorm.DB) CarbonRepository {
	return &carbonRepository{db: db}
}

// CreatePeriod creates a carbon period
func (r *carbonRepository) CreatePeriod(ctx context.Context, period *models.CarbonPeriod) error {
	return r.db.WithContext(ctx).Create(period).Error
}

// GetPeriodByID gets a carbon period with its evidence documents
func (r *carbonRepository) GetPeriodByID(ctx context.Context, id uint) (*models.CarbonPeriod, error) {
	var period models.CarbonPeriod
	err := r.db.WithContext(ctx).Preload("Documents").Where("id = ?", id).First(&period).Error
	if err != nil {
		return nil, err
	}
	return &period, nil
}

// ListPeriods lists all carbon periods, newest first
func (r *carbonRepository) ListPeriods(ctx context.Context) ([]*models.CarbonPeriod, error) {
	var periods []*models.CarbonPeriod
	err := r.db.WithContext(ctx).Order("start_date DESC").Find(&periods).Error
	return periods, err
}

// AddDocument pins an evidence document to a period
func (r *carbonRepository) AddDocument(ctx context.Context, doc *models.CarbonDocument) error {
	return r.db.WithContext(ctx).Create(doc).Error
}

// ListDocuments lists a period's evidence documents
func (r *carbonRepository) ListDocuments(ctx context.Context, periodID uint) ([]*models.CarbonDocument, error) {
	var docs []*models.CarbonDocument
	err := r.db.WithContext(ctx).
		Where("carbon_period_id = ?", periodID).
		Order("pinned_at DESC").
		Find(&docs).Error
	return docs, err
}

// SaveReadiness creates or updates a readiness record
func (r *carbonRepository) SaveReadiness(ctx context.Context, readiness *models.CarbonReadiness) error {
	return r.db.WithContext(ctx).Save(readiness).Error
}

// GetReadiness gets one asset's readiness for one period
func (r *carbonRepository) GetReadiness(ctx context.Context, assetID, periodID uint) (*models.CarbonReadiness, error) {
	var readiness models.CarbonReadiness
	err := r.db.WithContext(ctx).
		Preload("Asset").
		Where("asset_id = ? AND carbon_period_id = ?", assetID, periodID).
		First(&readiness).Error
	if err != nil {
		return nil, err
	}
	return &readiness, nil
}

// ListReadinessByPeriod lists all readiness records for one period
func (r *carbonRepository) ListReadinessByPeriod(ctx context.Context, periodID uint) ([]*models.CarbonReadiness, error) {
	var records []*models.CarbonReadiness
	err := r.db.WithContext(ctx).
		Preload("Asset").
		Where("carbon_period_id = ?", periodID).
		Find(&records).Error
	return records, err
}

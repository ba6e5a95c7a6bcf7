package repositories

import (
	"context"
	"time"

	"washlab-backend/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// billingRepository implements BillingRepository interface
type billingRepository struct {
	db *gorm.DB
}

// NewBillingRepository creates a new billing repository
func NewBillingRepository(db *gorm.DB) BillingRepository {
	return &billingRepository{db: db}
}

// CreatePeriod creates a billing period
func (r *billingRepository) CreatePeriod(ctx context.Context, period *models.BillingPeriod) error {
	return r.db.WithContext(ctx).Create(period).Error
}

// GetPeriodByID gets a billing period by ID
func (r *billingRepository) GetPeriodByID(ctx context.Context, id uint) (*models.BillingPeriod, error) {
	var period models.BillingPeriod
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&period).Error
	if err != nil {
		return nil, err
	}
	return &period, nil
}

// GetPeriodByName gets a billing period by name
func (r *billingRepository) GetPeriodByName(ctx context.Context, name string) (*models.BillingPeriod, error) {
	var period models.BillingPeriod
	err := r.db.WithContext(ctx).Where("period_name = ?", name).First(&period).Error
	if err != nil {
		return nil, err
	}
	return &period, nil
}

// ListPeriods lists all billing periods, newest first
func (r *billingRepository) ListPeriods(ctx context.Context) ([]*models.BillingPeriod, error) {
	var periods []*models.BillingPeriod
	err := r.db.WithContext(ctx).Order("start_date DESC").Find(&periods).Error
	return periods, err
}

// CreateSummary creates a billing summary
func (r *billingRepository) CreateSummary(ctx context.Context, summary *models.BillingSummary) error {
	return r.db.WithContext(ctx).Create(summary).Error
}

// UpdateSummary updates a billing summary
func (r *billingRepository) UpdateSummary(ctx context.Context, summary *models.BillingSummary) error {
	return r.db.WithContext(ctx).Save(summary).Error
}

// GetSummary gets one asset's summary for one period
func (r *billingRepository) GetSummary(ctx context.Context, assetID, periodID uint) (*models.BillingSummary, error) {
	var summary models.BillingSummary
	err := r.db.WithContext(ctx).
		Preload("Asset").
		Preload("BillingPeriod").
		Where("asset_id = ? AND billing_period_id = ?", assetID, periodID).
		First(&summary).Error
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

// ListSummariesByPeriod lists all summaries for one period
func (r *billingRepository) ListSummariesByPeriod(ctx context.Context, periodID uint) ([]*models.BillingSummary, error) {
	var summaries []*models.BillingSummary
	err := r.db.WithContext(ctx).
		Preload("Asset").
		Where("billing_period_id = ?", periodID).
		Find(&summaries).Error
	return summaries, err
}

// ListSummariesOverlapping lists summaries whose period overlaps [from, to)
func (r *billingRepository) ListSummariesOverlapping(ctx context.Context, from, to time.Time) ([]*models.BillingSummary, error) {
	var summaries []*models.BillingSummary
	err := r.db.WithContext(ctx).
		Preload("Asset").
		Preload("BillingPeriod").
		Joins("JOIN billing_periods ON billing_periods.id = billing_summaries.billing_period_id").
		Where("billing_periods.start_date < ? AND billing_periods.end_date >= ?", to, from).
		Find(&summaries).Error
	return summaries, err
}

// ListDebtors lists summaries carrying arrears, highest first
func (r *billingRepository) ListDebtors(ctx context.Context) ([]*models.BillingSummary, error) {
	var summaries []*models.BillingSummary
	err := r.db.WithContext(ctx).
		Preload("Asset").
		Preload("BillingPeriod").
		Where("arrears_kes > 0").
		Order("arrears_kes DESC").
		Find(&summaries).Error
	return summaries, err
}

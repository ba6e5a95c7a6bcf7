package repositories

import (
	"context"

	"washlab-backend/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// assetRepository implements AssetRepository interface
type assetRepository struct {
	db *gorm.DB
}

// NewAssetRepository creates a new asset repository
func NewAssetRepository(db *gorm.DB) AssetRepository {
	return &assetRepository{db: db}
}

// Create creates a new asset
func (r *assetRepository) Create(ctx context.Context, asset *models.Asset) error {
	return r.db.WithContext(ctx).Create(asset).Error
}

// GetByID gets an asset by ID
func (r *assetRepository) GetByID(ctx context.Context, id uint) (*models.Asset, error) {
	var asset models.Asset
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&asset).Error
	if err != nil {
		return nil, err
	}
	return &asset, nil
}

// GetBySchemeCode gets an asset by scheme code
func (r *assetRepository) GetBySchemeCode(ctx context.Context, code string) (*models.Asset, error) {
	var asset models.Asset
	err := r.db.WithContext(ctx).Where("scheme_code = ?", code).First(&asset).Error
	if err != nil {
		return nil, err
	}
	return &asset, nil
}

// Update updates an asset
func (r *assetRepository) Update(ctx context.Context, asset *models.Asset) error {
	return r.db.WithContext(ctx).Save(asset).Error
}

// Delete soft deletes an asset
func (r *assetRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Asset{}, id).Error
}

// List lists assets with filters and pagination
func (r *assetRepository) List(ctx context.Context, filter AssetFilter, offset, limit int) ([]*models.Asset, int64, error) {
	var assets []*models.Asset
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Asset{})
	if filter.County != "" {
		query = query.Where("county = ?", filter.County)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.EnergySource != "" {
		query = query.Where("energy_source = ?", filter.EnergySource)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&assets).Error; err != nil {
		return nil, 0, err
	}

	return assets, total, nil
}

// ListAll lists all assets without pagination
func (r *assetRepository) ListAll(ctx context.Context) ([]*models.Asset, error) {
	var assets []*models.Asset
	err := r.db.WithContext(ctx).Find(&assets).Error
	return assets, err
}

// CountByStatus counts assets grouped by status
func (r *assetRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	type row struct {
		Status string
		Count  int64
	}
	var rows []row
	err := r.db.WithContext(ctx).Model(&models.Asset{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, rw := range rows {
		counts[rw.Status] = rw.Count
	}
	return counts, nil
}

// ExistsBySchemeCode checks if scheme code exists
func (r *assetRepository) ExistsBySchemeCode(ctx context.Context, code string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Asset{}).Where("scheme_code = ?", code).Count(&count).Error
	return count > 0, err
}

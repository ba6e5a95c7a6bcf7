package repositories

import (
	"context"

	"washlab-backend/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// partRepository implements PartRepository interface
type partRepository struct {
	db *gorm.DB
}

// NewPartRepository creates a new spare part repository
func NewPartRepository(db *gorm.DB) PartRepository {
	return &partRepository{db: db}
}

// Create creates a new part
func (r *partRepository) Create(ctx context.Context, part *models.Part) error {
	return r.db.WithContext(ctx).Create(part).Error
}

// GetByID gets a part by ID
func (r *partRepository) GetByID(ctx context.Context, id uint) (*models.Part, error) {
	var part models.Part
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&part).Error
	if err != nil {
		return nil, err
	}
	return &part, nil
}

// Update updates a part
func (r *partRepository) Update(ctx context.Context, part *models.Part) error {
	return r.db.WithContext(ctx).Save(part).Error
}

// Delete soft deletes a part
func (r *partRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Part{}, id).Error
}

// List lists parts, optionally by category, with pagination
func (r *partRepository) List(ctx context.Context, category string, offset, limit int) ([]*models.Part, int64, error) {
	var parts []*models.Part
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Part{})
	if category != "" {
		query = query.Where("category = ?", category)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("name ASC").Offset(offset).Limit(limit).Find(&parts).Error; err != nil {
		return nil, 0, err
	}

	return parts, total, nil
}

// ExistsByPartNumber checks if part number exists
func (r *partRepository) ExistsByPartNumber(ctx context.Context, number string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Part{}).Where("part_number = ?", number).Count(&count).Error
	return count > 0, err
}

// ListLowStock lists parts at or below a stock threshold
func (r *partRepository) ListLowStock(ctx context.Context, threshold int) ([]*models.Part, error) {
	var parts []*models.Part
	err := r.db.WithContext(ctx).
		Where("stock <= ?", threshold).
		Order("stock ASC").
		Find(&parts).Error
	return parts, err
}

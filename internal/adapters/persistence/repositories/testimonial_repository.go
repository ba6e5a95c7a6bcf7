package repositories

import (
	"context"

	"washlab-backend/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// testimonialRepository implements TestimonialRepository interface
type testimonialRepository struct {
	db *gorm.DB
}

// NewTestimonialRepository creates a new testimonial repository
func NewTestimonialRepository(db *gorm.DB) TestimonialRepository {
	return &testimonialRepository{db: db}
}

// Create creates a new testimonial
func (r *testimonialRepository) Create(ctx context.Context, testimonial *models.Testimonial) error {
	return r.db.WithContext(ctx).Create(testimonial).Error
}

// GetByID gets a testimonial by ID
func (r *testimonialRepository) GetByID(ctx context.Context, id uint) (*models.Testimonial, error) {
	var testimonial models.Testimonial
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&testimonial).Error
	if err != nil {
		return nil, err
	}
	return &testimonial, nil
}

// Update updates a testimonial
func (r *testimonialRepository) Update(ctx context.Context, testimonial *models.Testimonial) error {
	return r.db.WithContext(ctx).Save(testimonial).Error
}

// Delete soft deletes a testimonial
func (r *testimonialRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Testimonial{}, id).Error
}

// List lists testimonials, optionally by status, newest first
func (r *testimonialRepository) List(ctx context.Context, status string, offset, limit int) ([]*models.Testimonial, int64, error) {
	var testimonials []*models.Testimonial
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Testimonial{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&testimonials).Error; err != nil {
		return nil, 0, err
	}

	return testimonials, total, nil
}

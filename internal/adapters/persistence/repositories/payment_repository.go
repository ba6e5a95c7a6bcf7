package repositories

import (
	"context"

	"washlab-backend/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// paymentRepository implements PaymentRepository interface
type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new M-Pesa payment repository
func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

// Create creates a new payment record
func (r *paymentRepository) Create(ctx context.Context, payment *models.MpesaPayment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

// GetByCheckoutRequestID gets a payment by checkout request ID
func (r *paymentRepository) GetByCheckoutRequestID(ctx context.Context, checkoutRequestID string) (*models.MpesaPayment, error) {
	var payment models.MpesaPayment
	err := r.db.WithContext(ctx).Where("checkout_request_id = ?", checkoutRequestID).First(&payment).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

// Update updates a payment record
func (r *paymentRepository) Update(ctx context.Context, payment *models.MpesaPayment) error {
	return r.db.WithContext(ctx).Save(payment).Error
}

// List lists payments, optionally by status, newest first
func (r *paymentRepository) List(ctx context.Context, status string, offset, limit int) ([]*models.MpesaPayment, int64, error) {
	var payments []*models.MpesaPayment
	var total int64

	query := r.db.WithContext(ctx).Model(&models.MpesaPayment{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&payments).Error; err != nil {
		return nil, 0, err
	}

	return payments, total, nil
}

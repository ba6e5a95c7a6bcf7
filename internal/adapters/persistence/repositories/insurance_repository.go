package repositories

import (
	"context"

	"washlab-backend/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// insuranceRepository implements InsuranceRepository interface
type insuranceRepository struct {
	db *gorm.DB
}

// NewInsuranceRepository creates a new insurance repository
func NewInsuranceRepository(db *gorm.DB) InsuranceRepository {
	return &insuranceRepository{db: db}
}

// CreatePolicy creates a new policy
func (r *insuranceRepository) CreatePolicy(ctx context.Context, policy *models.InsurancePolicy) error {
	return r.db.WithContext(ctx).Create(policy).Error
}

// GetPolicyByID gets a policy by ID with its asset
func (r *insuranceRepository) GetPolicyByID(ctx context.Context, id uint) (*models.InsurancePolicy, error) {
	var policy models.InsurancePolicy
	err := r.db.WithContext(ctx).Preload("Asset").Where("id = ?", id).First(&policy).Error
	if err != nil {
		return nil, err
	}
	return &policy, nil
}

// UpdatePolicy updates a policy
func (r *insuranceRepository) UpdatePolicy(ctx context.Context, policy *models.InsurancePolicy) error {
	return r.db.WithContext(ctx).Save(policy).Error
}

// DeletePolicy soft deletes a policy
func (r *insuranceRepository) DeletePolicy(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.InsurancePolicy{}, id).Error
}

// ListPolicies lists policies with pagination
func (r *insuranceRepository) ListPolicies(ctx context.Context, offset, limit int) ([]*models.InsurancePolicy, int64, error) {
	var policies []*models.InsurancePolicy
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.InsurancePolicy{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).Preload("Asset").Order("created_at DESC").Offset(offset).Limit(limit).Find(&policies).Error; err != nil {
		return nil, 0, err
	}

	return policies, total, nil
}

// ExistsByPolicyNumber checks if policy number exists
func (r *insuranceRepository) ExistsByPolicyNumber(ctx context.Context, number string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.InsurancePolicy{}).Where("policy_number = ?", number).Count(&count).Error
	return count > 0, err
}

// CreateClaim creates a new claim
func (r *insuranceRepository) CreateClaim(ctx context.Context, claim *models.InsuranceClaim) error {
	return r.db.WithContext(ctx).Create(claim).Error
}

// GetClaimByID gets a claim by ID with its policy
func (r *insuranceRepository) GetClaimByID(ctx context.Context, id uint) (*models.InsuranceClaim, error) {
	var claim models.InsuranceClaim
	err := r.db.WithContext(ctx).Preload("Policy").Where("id = ?", id).First(&claim).Error
	if err != nil {
		return nil, err
	}
	return &claim, nil
}

// UpdateClaim updates a claim
func (r *insuranceRepository) UpdateClaim(ctx context.Context, claim *models.InsuranceClaim) error {
	return r.db.WithContext(ctx).Save(claim).Error
}

// ListClaimsByPolicy lists claims filed against one policy
func (r *insuranceRepository) ListClaimsByPolicy(ctx context.Context, policyID uint) ([]*models.InsuranceClaim, error) {
	var claims []*models.InsuranceClaim
	err := r.db.WithContext(ctx).
		Where("policy_id = ?", policyID).
		Order("claim_date DESC").
		Find(&claims).Error
	return claims, err
}

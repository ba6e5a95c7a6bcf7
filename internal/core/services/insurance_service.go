package services

import (
	"context"
	"errors"
	"log"
	"time"

	"washlab-backend/internal/adapters/persistence/models"
	"washlab-backend/internal/adapters/persistence/repositories"
	"washlab-backend/internal/core/domain"

	"gorm.io/gorm"
)

// Claim statuses
const (
	ClaimPending  = "pending"
	ClaimApproved = "approved"
	ClaimRejected = "rejected"
	ClaimSettled  = "settled"
)

// InsuranceService handles policy and claim business logic
type InsuranceService struct {
	insuranceRepo repositories.InsuranceRepository
	assetRepo     repositories.AssetRepository
}

// NewInsuranceService creates a new insurance service
func NewInsuranceService(insuranceRepo repositories.InsuranceRepository, assetRepo repositories.AssetRepository) *InsuranceService {
	return &InsuranceService{insuranceRepo: insuranceRepo, assetRepo: assetRepo}
}

// CreatePolicyInput represents policy creation input
type CreatePolicyInput struct {
	AssetID      uint       `json:"assetId"`
	Provider     string     `json:"provider" validate:"required"`
	PolicyNumber string     `json:"policyNumber" validate:"required"`
	CoverageType string     `json:"coverageType"`
	StartDate    *time.Time `json:"startDate"`
	EndDate      *time.Time `json:"endDate"`
	PremiumKES   float64    `json:"premiumKES"`
	Documents    []string   `json:"documents"`
}

// CreateClaimInput represents claim creation input
type CreateClaimInput struct {
	PolicyID      uint      `json:"policyId" validate:"required"`
	ClaimDate     time.Time `json:"claimDate"`
	AmountClaimed float64   `json:"amountClaimed" validate:"required"`
	Description   string    `json:"description"`
	Documents     []string  `json:"documents"`
}

// UpdateClaimInput carries optional claim fields
type UpdateClaimInput struct {
	Status        *string    `json:"status"`
	SettledAmount *float64   `json:"settledAmount"`
	SettledDate   *time.Time `json:"settledDate"`
}

// CreatePolicy creates a new policy
func (s *InsuranceService) CreatePolicy(ctx context.Context, input *CreatePolicyInput) (*models.InsurancePolicy, error) {
	if input.Provider == "" || input.PolicyNumber == "" {
		return nil, domain.ErrInvalidInput
	}

	exists, err := s.insuranceRepo.ExistsByPolicyNumber(ctx, input.PolicyNumber)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicateEntry
	}

	if input.AssetID != 0 {
		if _, err := s.assetRepo.GetByID(ctx, input.AssetID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, domain.ErrAssetNotFound
			}
			return nil, err
		}
	}

	policy := &models.InsurancePolicy{
		AssetID:      input.AssetID,
		Provider:     input.Provider,
		PolicyNumber: input.PolicyNumber,
		CoverageType: input.CoverageType,
		StartDate:    input.StartDate,
		EndDate:      input.EndDate,
		PremiumKES:   input.PremiumKES,
		Active:       true,
		Documents:    input.Documents,
	}
	if policy.CoverageType == "" {
		policy.CoverageType = "equipment"
	}

	if err := s.insuranceRepo.CreatePolicy(ctx, policy); err != nil {
		return nil, err
	}

	log.Printf("✅ Policy created: %s (%s)", policy.PolicyNumber, policy.Provider)
	return policy, nil
}

// GetPolicy gets a policy by ID
func (s *InsuranceService) GetPolicy(ctx context.Context, id uint) (*models.InsurancePolicy, error) {
	policy, err := s.insuranceRepo.GetPolicyByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPolicyNotFound
		}
		return nil, err
	}
	return policy, nil
}

// ListPolicies lists policies with pagination
func (s *InsuranceService) ListPolicies(ctx context.Context, offset, limit int) ([]*models.InsurancePolicy, int64, error) {
	return s.insuranceRepo.ListPolicies(ctx, offset, limit)
}

// DeletePolicy soft deletes a policy
func (s *InsuranceService) DeletePolicy(ctx context.Context, id uint) error {
	if _, err := s.GetPolicy(ctx, id); err != nil {
		return err
	}
	return s.insuranceRepo.DeletePolicy(ctx, id)
}

// CreateClaim files a claim against a policy
func (s *InsuranceService) CreateClaim(ctx context.Context, input *CreateClaimInput) (*models.InsuranceClaim, error) {
	if input.PolicyID == 0 || input.AmountClaimed <= 0 {
		return nil, domain.ErrInvalidInput
	}

	policy, err := s.GetPolicy(ctx, input.PolicyID)
	if err != nil {
		return nil, err
	}

	claim := &models.InsuranceClaim{
		PolicyID:      input.PolicyID,
		AssetID:       policy.AssetID,
		ClaimDate:     input.ClaimDate,
		AmountClaimed: input.AmountClaimed,
		Status:        ClaimPending,
		Description:   input.Description,
		Documents:     input.Documents,
	}
	if claim.ClaimDate.IsZero() {
		claim.ClaimDate = time.Now()
	}

	if err := s.insuranceRepo.CreateClaim(ctx, claim); err != nil {
		return nil, err
	}

	log.Printf("✅ Claim filed: policy %s, KES %.2f", policy.PolicyNumber, claim.AmountClaimed)
	return claim, nil
}

// ListClaims lists claims filed against one policy
func (s *InsuranceService) ListClaims(ctx context.Context, policyID uint) ([]*models.InsuranceClaim, error) {
	if _, err := s.GetPolicy(ctx, policyID); err != nil {
		return nil, err
	}
	return s.insuranceRepo.ListClaimsByPolicy(ctx, policyID)
}

// UpdateClaim patches a claim's status and settlement fields
func (s *InsuranceService) UpdateClaim(ctx context.Context, id uint, input *UpdateClaimInput) (*models.InsuranceClaim, error) {
	claim, err := s.insuranceRepo.GetClaimByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	if input.Status != nil {
		switch *input.Status {
		case ClaimPending, ClaimApproved, ClaimRejected, ClaimSettled:
			claim.Status = *input.Status
		default:
			return nil, domain.ErrInvalidInput
		}
	}
	if input.SettledAmount != nil {
		claim.SettledAmount = *input.SettledAmount
	}
	if input.SettledDate != nil {
		claim.SettledDate = input.SettledDate
	}

	if err := s.insuranceRepo.UpdateClaim(ctx, claim); err != nil {
		return nil, err
	}
	return claim, nil
}

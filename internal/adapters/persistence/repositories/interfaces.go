package repositories

import (
	"context"
	"time"

	"washlab-backend/internal/adapters/persistence/models"
)

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, offset, limit int) ([]*models.User, int64, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// AssetRepository defines asset repository interface
type AssetRepository interface {
	Create(ctx context.Context, asset *models.Asset) error
	GetByID(ctx context.Context, id uint) (*models.Asset, error)
	GetBySchemeCode(ctx context.Context, code string) (*models.Asset, error)
	Update(ctx context.Context, asset *models.Asset) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filter AssetFilter, offset, limit int) ([]*models.Asset, int64, error)
	ListAll(ctx context.Context) ([]*models.Asset, error)
	CountByStatus(ctx context.Context) (map[string]int64, error)
	ExistsBySchemeCode(ctx context.Context, code string) (bool, error)
}

// AssetFilter narrows asset listings.
type AssetFilter struct {
	County       string
	Status       string
	EnergySource string
}

// TelemetryRepository defines telemetry repository interface
type TelemetryRepository interface {
	Create(ctx context.Context, reading *models.Telemetry) error
	ListByAsset(ctx context.Context, assetID uint, since time.Time, offset, limit int) ([]*models.Telemetry, int64, error)
	LatestByAsset(ctx context.Context, assetID uint) (*models.Telemetry, error)
	LatestPerAsset(ctx context.Context) ([]*models.Telemetry, error)
	ListSince(ctx context.Context, since time.Time) ([]*models.Telemetry, error)
	ListByAssetBetween(ctx context.Context, assetID uint, from, to time.Time) ([]*models.Telemetry, error)
}

// TicketRepository defines ticket repository interface
type TicketRepository interface {
	Create(ctx context.Context, ticket *models.Ticket) error
	GetByID(ctx context.Context, id uint) (*models.Ticket, error)
	Update(ctx context.Context, ticket *models.Ticket) error
	List(ctx context.Context, filter TicketFilter, offset, limit int) ([]*models.Ticket, int64, error)
	CountByStatus(ctx context.Context) (map[string]int64, error)
	CountOpenByAsset(ctx context.Context, assetID uint) (int64, error)
}

// TicketFilter narrows ticket listings.
type TicketFilter struct {
	AssetID  uint
	Status   string
	Priority string
	Category string
}

// WaterQualityRepository defines water quality sample repository interface
type WaterQualityRepository interface {
	Create(ctx context.Context, sample *models.WaterQualitySample) error
	GetByID(ctx context.Context, id uint) (*models.WaterQualitySample, error)
	Update(ctx context.Context, sample *models.WaterQualitySample) error
	List(ctx context.Context, assetID uint, offset, limit int) ([]*models.WaterQualitySample, int64, error)
	CountByResultSince(ctx context.Context, assetID uint, since time.Time) (map[string]int64, error)
}

// HygieneRepository defines hygiene session repository interface
type HygieneRepository interface {
	Create(ctx context.Context, session *models.HygieneSession) error
	GetByID(ctx context.Context, id uint) (*models.HygieneSession, error)
	Update(ctx context.Context, session *models.HygieneSession) error
	List(ctx context.Context, assetID uint, offset, limit int) ([]*models.HygieneSession, int64, error)
	CountSince(ctx context.Context, assetID uint, since time.Time) (int64, error)
}

// BillingRepository defines billing period and summary repository interface
type BillingRepository interface {
	CreatePeriod(ctx context.Context, period *models.BillingPeriod) error
	GetPeriodByID(ctx context.Context, id uint) (*models.BillingPeriod, error)
	GetPeriodByName(ctx context.Context, name string) (*models.BillingPeriod, error)
	ListPeriods(ctx context.Context) ([]*models.BillingPeriod, error)
	CreateSummary(ctx context.Context, summary *models.BillingSummary) error
	UpdateSummary(ctx context.Context, summary *models.BillingSummary) error
	GetSummary(ctx context.Context, assetID, periodID uint) (*models.BillingSummary, error)
	ListSummariesByPeriod(ctx context.Context, periodID uint) ([]*models.BillingSummary, error)
	ListSummariesOverlapping(ctx context.Context, from, to time.Time) ([]*models.BillingSummary, error)
	ListDebtors(ctx context.Context) ([]*models.BillingSummary, error)
}

// CarbonRepository defines carbon period and readiness repository interface
type CarbonRepository interface {
	CreatePeriod(ctx context.Context, period *models.CarbonPeriod) error
	GetPeriodByID(ctx context.Context, id uint) (*models.CarbonPeriod, error)
	ListPeriods(ctx context.Context) ([]*models.CarbonPeriod, error)
	AddDocument(ctx context.Context, doc *models.CarbonDocument) error
	ListDocuments(ctx context.Context, periodID uint) ([]*models.CarbonDocument, error)
	SaveReadiness(ctx context.Context, readiness *models.CarbonReadiness) error
	GetReadiness(ctx context.Context, assetID, periodID uint) (*models.CarbonReadiness, error)
	ListReadinessByPeriod(ctx context.Context, periodID uint) ([]*models.CarbonReadiness, error)
}

// InsuranceRepository defines insurance policy and claim repository interface
type InsuranceRepository interface {
	CreatePolicy(ctx context.Context, policy *models.InsurancePolicy) error
	GetPolicyByID(ctx context.Context, id uint) (*models.InsurancePolicy, error)
	UpdatePolicy(ctx context.Context, policy *models.InsurancePolicy) error
	DeletePolicy(ctx context.Context, id uint) error
	ListPolicies(ctx context.Context, offset, limit int) ([]*models.InsurancePolicy, int64, error)
	ExistsByPolicyNumber(ctx context.Context, number string) (bool, error)
	CreateClaim(ctx context.Context, claim *models.InsuranceClaim) error
	GetClaimByID(ctx context.Context, id uint) (*models.InsuranceClaim, error)
	UpdateClaim(ctx context.Context, claim *models.InsuranceClaim) error
	ListClaimsByPolicy(ctx context.Context, policyID uint) ([]*models.InsuranceClaim, error)
}

// PartRepository defines spare part repository interface
type PartRepository interface {
	Create(ctx context.Context, part *models.Part) error
	GetByID(ctx context.Context, id uint) (*models.Part, error)
	Update(ctx context.Context, part *models.Part) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, category string, offset, limit int) ([]*models.Part, int64, error)
	ExistsByPartNumber(ctx context.Context, number string) (bool, error)
	ListLowStock(ctx context.Context, threshold int) ([]*models.Part, error)
}

// AlertRepository defines alert repository interface
type AlertRepository interface {
	Create(ctx context.Context, alert *models.Alert) error
	GetByID(ctx context.Context, id uint) (*models.Alert, error)
	Update(ctx context.Context, alert *models.Alert) error
	List(ctx context.Context, filter AlertFilter, offset, limit int) ([]*models.Alert, int64, error)
	CountByType(ctx context.Context) (map[string]int64, error)
	ListSince(ctx context.Context, since time.Time) ([]*models.Alert, error)
}

// AlertFilter narrows alert listings.
type AlertFilter struct {
	Type   string
	Status string
	County string
}

// TestimonialRepository defines testimonial repository interface
type TestimonialRepository interface {
	Create(ctx context.Context, testimonial *models.Testimonial) error
	GetByID(ctx context.Context, id uint) (*models.Testimonial, error)
	Update(ctx context.Context, testimonial *models.Testimonial) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, status string, offset, limit int) ([]*models.Testimonial, int64, error)
}

// PaymentRepository defines M-Pesa payment repository interface
type PaymentRepository interface {
	Create(ctx context.Context, payment *models.MpesaPayment) error
	GetByCheckoutRequestID(ctx context.Context, checkoutRequestID string) (*models.MpesaPayment, error)
	Update(ctx context.Context, payment *models.MpesaPayment) error
	List(ctx context.Context, status string, offset, limit int) ([]*models.MpesaPayment, int64, error)
}

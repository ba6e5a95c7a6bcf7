package models

import (
	"time"

	"gorm.io/gorm"
)

// ============================================================
// Billing & Finance
// ============================================================

// BillingPeriod represents one billing cycle, e.g. "2025-Jan".
type BillingPeriod struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	PeriodName string    `gorm:"size:50;not null" json:"periodName"`
	StartDate  time.Time `gorm:"not null" json:"startDate"`
	EndDate    time.Time `gorm:"not null" json:"endDate"`
	Status     string    `gorm:"size:10;default:'open'" json:"status"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (BillingPeriod) TableName() string {
	return "billing_periods"
}

// BillingSummary aggregates billing figures for one asset in one period.
type BillingSummary struct {
	ID                   uint      `gorm:"primaryKey" json:"id"`
	AssetID              uint      `gorm:"not null;index" json:"assetId"`
	BillingPeriodID      uint      `gorm:"not null;index" json:"billingPeriodId"`
	TotalBilledKES       float64   `gorm:"default:0" json:"totalBilledKES"`
	TotalCollectedKES    float64   `gorm:"default:0" json:"totalCollectedKES"`
	CollectionEfficiency float64   `gorm:"default:0" json:"collectionEfficiency"`
	ArrearsKES           float64   `gorm:"default:0" json:"arrearsKES"`
	OAndMCostKES         float64   `gorm:"column:o_and_m_cost_kes;default:0" json:"oAndMCostKES"`
	OverdueDays          int       `gorm:"default:0" json:"overdueDays"`
	Remarks              string    `gorm:"type:text" json:"remarks"`
	CreatedAt            time.Time `gorm:"autoCreateTime;index" json:"createdAt"`
	UpdatedAt            time.Time `gorm:"autoUpdateTime" json:"updatedAt"`

	Asset         *Asset         `gorm:"foreignKey:AssetID" json:"asset,omitempty"`
	BillingPeriod *BillingPeriod `gorm:"foreignKey:BillingPeriodID" json:"billingPeriod,omitempty"`
}

func (BillingSummary) TableName() string {
	return "billing_summaries"
}

// ============================================================
// Carbon Readiness
// ============================================================

// CarbonPeriod represents a carbon-credit monitoring/reporting period,
// e.g. "2024-H2".
type CarbonPeriod struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:50;not null" json:"name"`
	StartDate time.Time `gorm:"not null" json:"startDate"`
	EndDate   time.Time `gorm:"not null" json:"endDate"`
	Status    string    `gorm:"size:10;default:'active'" json:"status"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`

	Documents []CarbonDocument `gorm:"foreignKey:CarbonPeriodID" json:"documents,omitempty"`
}

func (CarbonPeriod) TableName() string {
	return "carbon_periods"
}

// CarbonDocument is an evidence file pinned to a carbon period.
type CarbonDocument struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	CarbonPeriodID uint      `gorm:"not null;index" json:"carbonPeriodId"`
	URL            string    `gorm:"size:500;not null" json:"url"`
	Description    string    `gorm:"size:255" json:"description"`
	PinnedAt       time.Time `gorm:"not null" json:"pinnedAt"`
}

func (CarbonDocument) TableName() string {
	return "carbon_documents"
}

// ReadinessChecklist is the embedded five-criteria checklist. Each satisfied
// criterion is worth 20 points of the readiness score.
type ReadinessChecklist struct {
	ProjectBoundary bool    `gorm:"default:false" json:"projectBoundary"`
	WaterQuality    float64 `gorm:"default:0" json:"waterQuality"`    // % passing samples
	HygieneSessions int     `gorm:"default:0" json:"hygieneSessions"` // sessions held
	DieselShare     float64 `gorm:"default:0" json:"dieselShare"`     // % energy from diesel
	BaselineSurveys int     `gorm:"default:0" json:"baselineSurveys"` // surveys completed
}

// CarbonReadiness tracks one asset's checklist for one carbon period.
type CarbonReadiness struct {
	ID             uint               `gorm:"primaryKey" json:"id"`
	AssetID        uint               `gorm:"not null;index" json:"assetId"`
	CarbonPeriodID uint               `gorm:"not null;index" json:"carbonPeriodId"`
	Checklist      ReadinessChecklist `gorm:"embedded;embeddedPrefix:checklist_" json:"checklist"`
	ReadinessScore int                `gorm:"default:0" json:"readinessScore"`
	Comments       string             `gorm:"type:text" json:"comments"`
	CreatedAt      time.Time          `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt      time.Time          `gorm:"autoUpdateTime" json:"updatedAt"`

	Asset        *Asset        `gorm:"foreignKey:AssetID" json:"asset,omitempty"`
	CarbonPeriod *CarbonPeriod `gorm:"foreignKey:CarbonPeriodID" json:"carbonPeriod,omitempty"`
}

func (CarbonReadiness) TableName() string {
	return "carbon_readiness"
}

// ============================================================
// Insurance & Spare Parts
// ============================================================

// InsurancePolicy covers an asset against equipment loss or liability.
type InsurancePolicy struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	AssetID      uint           `gorm:"index" json:"assetId"`
	Provider     string         `gorm:"size:150;not null" json:"provider"`
	PolicyNumber string         `gorm:"size:50;uniqueIndex;not null" json:"policyNumber"`
	CoverageType string         `gorm:"size:20;default:'equipment'" json:"coverageType"`
	StartDate    *time.Time     `json:"startDate"`
	EndDate      *time.Time     `json:"endDate"`
	PremiumKES   float64        `json:"premiumKES"`
	Active       bool           `gorm:"default:true" json:"active"`
	Documents    []string       `gorm:"serializer:json" json:"documents"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	Asset *Asset `gorm:"foreignKey:AssetID" json:"asset,omitempty"`
}

func (InsurancePolicy) TableName() string {
	return "insurance_policies"
}

// InsuranceClaim is a claim filed against a policy.
type InsuranceClaim struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	PolicyID      uint       `gorm:"not null;index" json:"policyId"`
	AssetID       uint       `gorm:"index" json:"assetId"`
	ClaimDate     time.Time  `gorm:"not null" json:"claimDate"`
	AmountClaimed float64    `gorm:"not null" json:"amountClaimed"`
	Status        string     `gorm:"size:10;default:'pending'" json:"status"`
	Description   string     `gorm:"type:text" json:"description"`
	Documents     []string   `gorm:"serializer:json" json:"documents"`
	SettledAmount float64    `json:"settledAmount"`
	SettledDate   *time.Time `json:"settledDate"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt     time.Time  `gorm:"autoUpdateTime" json:"updatedAt"`

	Policy *InsurancePolicy `gorm:"foreignKey:PolicyID" json:"policy,omitempty"`
	Asset  *Asset           `gorm:"foreignKey:AssetID" json:"asset,omitempty"`
}

func (InsuranceClaim) TableName() string {
	return "insurance_claims"
}

// Part represents a spare part in inventory.
type Part struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"size:150;not null" json:"name"`
	PartNumber  string         `gorm:"size:50;uniqueIndex" json:"partNumber"`
	Category    string         `gorm:"size:20;default:'other'" json:"category"`
	Description string         `gorm:"type:text" json:"description"`
	Stock       int            `gorm:"default:0" json:"stock"`
	Location    string         `gorm:"size:150" json:"location"`
	Vendor      string         `gorm:"size:150" json:"vendor"`
	PriceKES    float64        `gorm:"default:0" json:"priceKES"`
	Status      string         `gorm:"size:20;default:'available'" json:"status"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Part) TableName() string {
	return "parts"
}

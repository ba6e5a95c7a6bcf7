package models

import (
	"time"

	"gorm.io/gorm"
)

// ============================================================
// Auth & Users
// ============================================================

// User represents the users table. The password column always holds a bcrypt
// hash; the plaintext never touches the database or the logs.
type User struct {
	ID                      uint           `gorm:"primaryKey" json:"id"`
	FirstName               string         `gorm:"size:100;not null" json:"firstName"`
	LastName                string         `gorm:"size:100;not null" json:"lastName"`
	Email                   string         `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Password                string         `gorm:"size:255;not null" json:"-"`
	Role                    string         `gorm:"size:20;not null;default:'operator'" json:"role"`
	IsVerified              bool           `gorm:"default:false" json:"isVerified"`
	VerificationCode        string         `gorm:"size:6" json:"-"`
	VerificationCodeExpires *time.Time     `json:"-"`
	CreatedAt               time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt               time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
	DeletedAt               gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// UserResponse is the public projection of a user. Password hash and
// verification code never go on the wire.
type UserResponse struct {
	ID         uint      `json:"id"`
	FirstName  string    `json:"firstName"`
	LastName   string    `json:"lastName"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	IsVerified bool      `json:"isVerified"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:         u.ID,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		Email:      u.Email,
		Role:       u.Role,
		IsVerified: u.IsVerified,
		CreatedAt:  u.CreatedAt,
	}
}

// FullName returns the display name attached to authorized requests.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// HasCode reports whether an unconsumed verification code is on record.
func (u *User) HasCode() bool {
	return u.VerificationCode != "" && u.VerificationCodeExpires != nil
}

// ============================================================
// Assets & Telemetry
// ============================================================

// GPS is an embedded coordinate pair.
type GPS struct {
	Lat float64 `gorm:"column:gps_lat" json:"lat"`
	Lng float64 `gorm:"column:gps_lng" json:"lng"`
}

// Asset represents a physical water-supply installation (pump station,
// borehole, treatment plant).
type Asset struct {
	ID               uint           `gorm:"primaryKey" json:"id"`
	SiteName         string         `gorm:"size:150;not null" json:"siteName"`
	SchemeCode       string         `gorm:"size:50;uniqueIndex;not null" json:"schemeCode"`
	GPS              GPS            `gorm:"embedded" json:"gps"`
	County           string         `gorm:"size:100;not null" json:"county"`
	SubCounty        string         `gorm:"size:100" json:"subCounty"`
	Status           string         `gorm:"size:20;default:'active'" json:"status"`
	EnergySource     string         `gorm:"size:20;default:'solar'" json:"energySource"`
	CapacityM3Day    float64        `gorm:"default:0" json:"capacity_m3_day"`
	Operator         string         `gorm:"size:150" json:"operator"`
	InstallationDate *time.Time     `json:"installationDate"`
	LastInspection   *time.Time     `json:"lastInspection"`
	Images           []string       `gorm:"serializer:json" json:"images"`
	CreatedAt        time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt        time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Asset) TableName() string {
	return "assets"
}

// Telemetry represents one timestamped sensor reading for an asset.
type Telemetry struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	AssetID          uint      `gorm:"not null;index" json:"assetId"`
	FlowRate         float64   `gorm:"default:0" json:"flowRate"`         // L/s
	Pressure         float64   `gorm:"default:0" json:"pressure"`         // bar
	Turbidity        float64   `gorm:"default:0" json:"turbidity"`        // NTU
	ChlorineResidual float64   `gorm:"default:0" json:"chlorineResidual"` // mg/L
	EnergySource     string    `gorm:"size:20;default:'solar'" json:"energySource"`
	Voltage          float64   `json:"voltage"`
	RuntimeHours     float64   `json:"runtimeHours"`
	SignalStrength   float64   `json:"signalStrength"`
	CreatedAt        time.Time `gorm:"autoCreateTime;index" json:"createdAt"`

	Asset *Asset `gorm:"foreignKey:AssetID" json:"asset,omitempty"`
}

func (Telemetry) TableName() string {
	return "telemetry"
}

// ============================================================
// Maintenance Tickets
// ============================================================

// Ticket represents a maintenance/work order ticket.
type Ticket struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	AssetID         uint       `gorm:"not null;index" json:"assetId"`
	Title           string     `gorm:"size:200;not null" json:"title"`
	Description     string     `gorm:"type:text" json:"description"`
	Category        string     `gorm:"size:20;default:'mechanical'" json:"category"`
	Priority        string     `gorm:"size:20;default:'medium'" json:"priority"`
	Status          string     `gorm:"size:20;default:'open'" json:"status"`
	CreatedBy       string     `gorm:"size:150" json:"createdBy"`
	AssignedTo      string     `gorm:"size:150" json:"assignedTo"`
	ResolutionNotes string     `gorm:"type:text" json:"resolutionNotes"`
	ClosedAt        *time.Time `json:"closedAt"`
	CreatedAt       time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt       time.Time  `gorm:"autoUpdateTime" json:"updatedAt"`

	Asset *Asset `gorm:"foreignKey:AssetID" json:"asset,omitempty"`
}

func (Ticket) TableName() string {
	return "tickets"
}

// ============================================================
// Water Quality & Hygiene
// ============================================================

// SampleParameters is the embedded lab measurement set.
type SampleParameters struct {
	EColiCount       float64 `gorm:"column:e_coli_count;default:0" json:"eColiCount"`
	Turbidity        float64 `gorm:"default:0" json:"turbidity"`
	ChlorineResidual float64 `gorm:"default:0" json:"chlorineResidual"`
	PH               float64 `gorm:"column:ph;default:7" json:"ph"`
}

// WaterQualitySample represents one lab sample for an asset. ResultStatus is
// derived from the parameters at creation time.
type WaterQualitySample struct {
	ID           uint             `gorm:"primaryKey" json:"id"`
	AssetID      uint             `gorm:"not null;index" json:"assetId"`
	SampleDate   time.Time        `gorm:"not null" json:"sampleDate"`
	CollectedBy  string           `gorm:"size:150" json:"collectedBy"`
	Parameters   SampleParameters `gorm:"embedded" json:"parameters"`
	ResultStatus string           `gorm:"size:10;default:'pass'" json:"resultStatus"`
	LabName      string           `gorm:"size:150" json:"labName"`
	ReportFile   string           `gorm:"size:500" json:"reportFile"`
	CreatedAt    time.Time        `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time        `gorm:"autoUpdateTime" json:"updatedAt"`

	Asset *Asset `gorm:"foreignKey:AssetID" json:"asset,omitempty"`
}

func (WaterQualitySample) TableName() string {
	return "water_quality_samples"
}

// Participants is the embedded attendance breakdown of a hygiene session.
type Participants struct {
	Men   int `gorm:"default:0" json:"men"`
	Women int `gorm:"default:0" json:"women"`
	Youth int `gorm:"default:0" json:"youth"`
}

// HygieneSession represents a community hygiene training session.
type HygieneSession struct {
	ID            uint         `gorm:"primaryKey" json:"id"`
	AssetID       uint         `gorm:"index" json:"assetId"`
	SessionDate   time.Time    `gorm:"not null" json:"sessionDate"`
	TrainerName   string       `gorm:"size:150" json:"trainerName"`
	Location      string       `gorm:"size:200" json:"location"`
	Participants  Participants `gorm:"embedded;embeddedPrefix:participants_" json:"participants"`
	TopicsCovered []string     `gorm:"serializer:json" json:"topicsCovered"`
	Photos        []string     `gorm:"serializer:json" json:"photos"`
	Remarks       string       `gorm:"type:text" json:"remarks"`
	CreatedAt     time.Time    `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt     time.Time    `gorm:"autoUpdateTime" json:"updatedAt"`

	Asset *Asset `gorm:"foreignKey:AssetID" json:"asset,omitempty"`
}

func (HygieneSession) TableName() string {
	return "hygiene_sessions"
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate creates missing tables at startup.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Asset{},
		&Telemetry{},
		&Ticket{},
		&WaterQualitySample{},
		&HygieneSession{},
		&BillingPeriod{},
		&BillingSummary{},
		&CarbonPeriod{},
		&CarbonReadiness{},
		&CarbonDocument{},
		&InsurancePolicy{},
		&InsuranceClaim{},
		&Part{},
		&Alert{},
		&Testimonial{},
		&MpesaPayment{},
	)
}

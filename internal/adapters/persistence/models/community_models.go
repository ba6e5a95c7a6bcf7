package models

import (
	"time"

	"gorm.io/gorm"
)

// ============================================================
// Persisted Alerts
// ============================================================

// Alert is a persisted early-warning alert (drought, flood, quality).
type Alert struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Type      string    `gorm:"size:20;not null" json:"type"`
	Title     string    `gorm:"size:200;not null" json:"title"`
	Severity  string    `gorm:"size:20;not null" json:"severity"`
	Metric    string    `gorm:"size:100;not null" json:"metric"`
	County    string    `gorm:"size:100;not null" json:"county"`
	Duration  string    `gorm:"size:50" json:"duration"`
	Status    string    `gorm:"size:10;default:'Active'" json:"status"`
	GPS       GPS       `gorm:"embedded" json:"coordinates"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Alert) TableName() string {
	return "alerts"
}

// Alert types and statuses
const (
	AlertTypeDrought = "Drought"
	AlertTypeFlood   = "Flood"
	AlertTypeQuality = "Quality"

	AlertStatusActive   = "Active"
	AlertStatusResolved = "Resolved"
)

// ============================================================
// Testimonials
// ============================================================

// Testimonial is community feedback shown on the public site.
type Testimonial struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"size:150;not null" json:"name"`
	Email       string         `gorm:"size:100" json:"email"`
	PackageName string         `gorm:"size:150" json:"packageName"`
	Rating      int            `gorm:"default:0" json:"rating"`
	Title       string         `gorm:"size:200" json:"title"`
	Comment     string         `gorm:"type:text" json:"comment"`
	Status      string         `gorm:"size:10;default:'pending'" json:"status"`
	Images      []string       `gorm:"serializer:json" json:"images"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Testimonial) TableName() string {
	return "testimonials"
}

// ============================================================
// M-Pesa Payments
// ============================================================

// MpesaPayment tracks one STK push request and its asynchronous result.
type MpesaPayment struct {
	ID                uint       `gorm:"primaryKey" json:"id"`
	CheckoutRequestID string     `gorm:"size:100;uniqueIndex;not null" json:"checkoutRequestId"`
	MerchantRequestID string     `gorm:"size:100" json:"merchantRequestId"`
	PhoneNumber       string     `gorm:"size:20;not null" json:"phoneNumber"`
	Amount            float64    `gorm:"not null" json:"amount"`
	AccountRef        string     `gorm:"size:100" json:"accountRef"`
	Status            string     `gorm:"size:10;default:'pending'" json:"status"`
	ReceiptNumber     string     `gorm:"size:50" json:"receiptNumber"`
	ResultDesc        string     `gorm:"size:255" json:"resultDesc"`
	PaidAt            *time.Time `json:"paidAt"`
	CreatedAt         time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt         time.Time  `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (MpesaPayment) TableName() string {
	return "mpesa_payments"
}

// Payment statuses
const (
	PaymentPending = "pending"
	PaymentPaid    = "paid"
	PaymentFailed  = "failed"
)

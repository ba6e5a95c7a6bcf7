package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"washlab-backend/internal/adapters/persistence/models"
	"washlab-backend/internal/adapters/persistence/repositories"
	"washlab-backend/internal/core/domain"

	"gorm.io/gorm"
)

// FinanceService handles billing analytics business logic
type FinanceService struct {
	billingRepo repositories.BillingRepository
	assetRepo   repositories.AssetRepository
}

// NewFinanceService creates a new finance service
func NewFinanceService(billingRepo repositories.BillingRepository, assetRepo repositories.AssetRepository) *FinanceService {
	return &FinanceService{billingRepo: billingRepo, assetRepo: assetRepo}
}

// FinanceSummary aggregates billing figures over a window
type FinanceSummary struct {
	Period               string  `json:"period"`
	From                 string  `json:"from"`
	To                   string  `json:"to"`
	TotalBilledKES       float64 `json:"totalBilledKES"`
	TotalCollectedKES    float64 `json:"totalCollectedKES"`
	TotalArrearsKES      float64 `json:"totalArrearsKES"`
	TotalOAndMCostKES    float64 `json:"totalOAndMCostKES"`
	CollectionEfficiency float64 `json:"collectionEfficiency"`
	OAndMCoverage        float64 `json:"oAndMCoverage"`
	Summaries            int     `json:"summaries"`
}

// DebtorBucket is one aging band of outstanding arrears
type DebtorBucket struct {
	Label      string  `json:"label"`
	MaxDays    int     `json:"maxDays"`
	Count      int     `json:"count"`
	ArrearsKES float64 `json:"arrearsKES"`
}

// DebtorReport groups debtors by overdue age
type DebtorReport struct {
	Buckets      []DebtorBucket           `json:"buckets"`
	TotalArrears float64                  `json:"totalArrears"`
	Debtors      []*models.BillingSummary `json:"debtors"`
}

// CreatePeriodInput represents billing period creation input
type CreatePeriodInput struct {
	PeriodName string    `json:"periodName" validate:"required"`
	StartDate  time.Time `json:"startDate" validate:"required"`
	EndDate    time.Time `json:"endDate" validate:"required"`
}

// CreateSummaryInput represents billing summary creation input
type CreateSummaryInput struct {
	AssetID           uint    `json:"assetId" validate:"required"`
	BillingPeriodID   uint    `json:"billingPeriodId" validate:"required"`
	TotalBilledKES    float64 `json:"totalBilledKES"`
	TotalCollectedKES float64 `json:"totalCollectedKES"`
	ArrearsKES        float64 `json:"arrearsKES"`
	OAndMCostKES      float64 `json:"oAndMCostKES"`
	OverdueDays       int     `json:"overdueDays"`
	Remarks           string  `json:"remarks"`
}

// Summary computes billing totals over the requested window
func (s *FinanceService) Summary(ctx context.Context, period string) (*FinanceSummary, error) {
	from, to, err := ResolvePeriod(period, time.Now())
	if err != nil {
		return nil, err
	}

	summaries, err := s.billingRepo.ListSummariesOverlapping(ctx, from, to)
	if err != nil {
		return nil, err
	}

	out := &FinanceSummary{
		Period:    period,
		From:      from.Format("2006-01-02"),
		To:        to.Format("2006-01-02"),
		Summaries: len(summaries),
	}

	for _, b := range summaries {
		out.TotalBilledKES += b.TotalBilledKES
		out.TotalCollectedKES += b.TotalCollectedKES
		out.TotalArrearsKES += b.ArrearsKES
		out.TotalOAndMCostKES += b.OAndMCostKES
	}

	if out.TotalBilledKES > 0 {
		out.CollectionEfficiency = out.TotalCollectedKES / out.TotalBilledKES * 100
	}
	if out.TotalOAndMCostKES > 0 {
		out.OAndMCoverage = out.TotalCollectedKES / out.TotalOAndMCostKES * 100
	}

	return out, nil
}

// Debtors groups outstanding arrears into aging buckets. Bucket boundaries
// are cumulative day counts, e.g. 30,60,90 yields 0-30, 31-60, 61-90 and a
// trailing 90+ band.
func (s *FinanceService) Debtors(ctx context.Context, boundaries []int) (*DebtorReport, error) {
	if len(boundaries) == 0 {
		boundaries = []int{30, 60, 90}
	}
	sort.Ints(boundaries)

	debtors, err := s.billingRepo.ListDebtors(ctx)
	if err != nil {
		return nil, err
	}

	report := &DebtorReport{Debtors: debtors}
	for _, b := range boundaries {
		report.Buckets = append(report.Buckets, DebtorBucket{
			Label:   fmt.Sprintf("%d-%d days", b-30+1, b),
			MaxDays: b,
		})
	}
	overflow := DebtorBucket{
		Label:   fmt.Sprintf("%d+ days", boundaries[len(boundaries)-1]),
		MaxDays: -1,
	}

	for _, d := range debtors {
		report.TotalArrears += d.ArrearsKES
		placed := false
		for i, b := range boundaries {
			if d.OverdueDays > b-30 && d.OverdueDays <= b {
				report.Buckets[i].Count++
				report.Buckets[i].ArrearsKES += d.ArrearsKES
				placed = true
				break
			}
		}
		if !placed && d.OverdueDays > boundaries[len(boundaries)-1] {
			overflow.Count++
			overflow.ArrearsKES += d.ArrearsKES
		}
	}
	report.Buckets = append(report.Buckets, overflow)

	return report, nil
}

// CreatePeriod creates a billing period
func (s *FinanceService) CreatePeriod(ctx context.Context, input *CreatePeriodInput) (*models.BillingPeriod, error) {
	if input.PeriodName == "" || input.StartDate.IsZero() || input.EndDate.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	if !input.StartDate.Before(input.EndDate) {
		return nil, domain.ErrInvalidInput
	}

	if _, err := s.billingRepo.GetPeriodByName(ctx, input.PeriodName); err == nil {
		return nil, domain.ErrDuplicateEntry
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	period := &models.BillingPeriod{
		PeriodName: input.PeriodName,
		StartDate:  input.StartDate,
		EndDate:    input.EndDate,
		Status:     "open",
	}
	if err := s.billingRepo.CreatePeriod(ctx, period); err != nil {
		return nil, err
	}

	log.Printf("✅ Billing period created: %s", period.PeriodName)
	return period, nil
}

// ListPeriods lists billing periods
func (s *FinanceService) ListPeriods(ctx context.Context) ([]*models.BillingPeriod, error) {
	return s.billingRepo.ListPeriods(ctx)
}

// CreateSummary records one asset's billing figures for a period. The
// collection efficiency is derived, zero-guarded, at write time.
func (s *FinanceService) CreateSummary(ctx context.Context, input *CreateSummaryInput) (*models.BillingSummary, error) {
	if input.AssetID == 0 || input.BillingPeriodID == 0 {
		return nil, domain.ErrInvalidInput
	}

	if _, err := s.assetRepo.GetByID(ctx, input.AssetID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAssetNotFound
		}
		return nil, err
	}
	if _, err := s.billingRepo.GetPeriodByID(ctx, input.BillingPeriodID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPeriodNotFound
		}
		return nil, err
	}

	summary := &models.BillingSummary{
		AssetID:           input.AssetID,
		BillingPeriodID:   input.BillingPeriodID,
		TotalBilledKES:    input.TotalBilledKES,
		TotalCollectedKES: input.TotalCollectedKES,
		ArrearsKES:        input.ArrearsKES,
		OAndMCostKES:      input.OAndMCostKES,
		OverdueDays:       input.OverdueDays,
		Remarks:           input.Remarks,
	}
	if summary.TotalBilledKES > 0 {
		summary.CollectionEfficiency = summary.TotalCollectedKES / summary.TotalBilledKES * 100
	}

	if err := s.billingRepo.CreateSummary(ctx, summary); err != nil {
		return nil, err
	}
	return summary, nil
}

// ListSummariesByPeriod lists all summaries for one period
func (s *FinanceService) ListSummariesByPeriod(ctx context.Context, periodID uint) ([]*models.BillingSummary, error) {
	if _, err := s.billingRepo.GetPeriodByID(ctx, periodID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPeriodNotFound
		}
		return nil, err
	}
	return s.billingRepo.ListSummariesByPeriod(ctx, periodID)
}

// ResolvePeriod turns a period keyword into a half-open [from, to) window.
// Accepted forms: "last_month", "this_month", and "Nd" day windows.
func ResolvePeriod(period string, now time.Time) (time.Time, time.Time, error) {
	switch period {
	case "", "this_month":
		from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return from, now, nil
	case "last_month":
		thisMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		from := thisMonth.AddDate(0, -1, 0)
		return from, thisMonth, nil
	default:
		days, err := parseDayWindow(period, 0)
		if err != nil {
			return time.Time{}, time.Time{}, domain.ErrInvalidPeriod
		}
		return now.AddDate(0, 0, -days), now, nil
	}
}

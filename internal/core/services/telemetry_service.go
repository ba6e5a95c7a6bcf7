package services

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"washlab-backend/internal/adapters/persistence/models"
	"washlab-backend/internal/adapters/persistence/repositories"
	"washlab-backend/internal/core/domain"

	"gorm.io/gorm"
)

// TelemetryService handles sensor readings and network KPIs
type TelemetryService struct {
	telemetryRepo repositories.TelemetryRepository
	assetRepo     repositories.AssetRepository
	billingRepo   repositories.BillingRepository
}

// NewTelemetryService creates a new telemetry service
func NewTelemetryService(
	telemetryRepo repositories.TelemetryRepository,
	assetRepo repositories.AssetRepository,
	billingRepo repositories.BillingRepository,
) *TelemetryService {
	return &TelemetryService{
		telemetryRepo: telemetryRepo,
		assetRepo:     assetRepo,
		billingRepo:   billingRepo,
	}
}

// IngestInput represents one telemetry reading
type IngestInput struct {
	AssetID          uint    `json:"assetId" validate:"required"`
	FlowRate         float64 `json:"flowRate"`
	Pressure         float64 `json:"pressure"`
	Turbidity        float64 `json:"turbidity"`
	ChlorineResidual float64 `json:"chlorineResidual"`
	EnergySource     string  `json:"energySource"`
	Voltage          float64 `json:"voltage"`
	RuntimeHours     float64 `json:"runtimeHours"`
	SignalStrength   float64 `json:"signalStrength"`
}

// NetworkKPI aggregates the whole network over a window
type NetworkKPI struct {
	Period            string           `json:"period"`
	Readings          int              `json:"readings"`
	AvgFlowRate       float64          `json:"avgFlowRate"`
	AvgPressure       float64          `json:"avgPressure"`
	AvgTurbidity      float64          `json:"avgTurbidity"`
	AvgChlorine       float64          `json:"avgChlorine"`
	AssetCounts       map[string]int64 `json:"assetCounts"`
	TotalBilledKES    float64          `json:"totalBilledKES"`
	TotalCollectedKES float64          `json:"totalCollectedKES"`
}

// HubKPI is the latest state of one asset
type HubKPI struct {
	Asset         *models.Asset          `json:"asset"`
	LatestReading *models.Telemetry      `json:"latestReading"`
	LatestBilling *models.BillingSummary `json:"latestBilling"`
}

// TimeBucket is one point of a bucketed time series
type TimeBucket struct {
	Bucket       time.Time `json:"bucket"`
	Readings     int       `json:"readings"`
	AvgFlowRate  float64   `json:"avgFlowRate"`
	AvgPressure  float64   `json:"avgPressure"`
	AvgTurbidity float64   `json:"avgTurbidity"`
	AvgChlorine  float64   `json:"avgChlorine"`
}

// Ingest stores one telemetry reading after checking the asset exists
func (s *TelemetryService) Ingest(ctx context.Context, input *IngestInput) (*models.Telemetry, error) {
	if input.AssetID == 0 {
		return nil, domain.ErrInvalidInput
	}

	if _, err := s.assetRepo.GetByID(ctx, input.AssetID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAssetNotFound
		}
		return nil, err
	}

	reading := &models.Telemetry{
		AssetID:          input.AssetID,
		FlowRate:         input.FlowRate,
		Pressure:         input.Pressure,
		Turbidity:        input.Turbidity,
		ChlorineResidual: input.ChlorineResidual,
		EnergySource:     input.EnergySource,
		Voltage:          input.Voltage,
		RuntimeHours:     input.RuntimeHours,
		SignalStrength:   input.SignalStrength,
	}
	if reading.EnergySource == "" {
		reading.EnergySource = domain.EnergySolar
	}

	if err := s.telemetryRepo.Create(ctx, reading); err != nil {
		return nil, err
	}
	return reading, nil
}

// ListByAsset lists readings for one asset
func (s *TelemetryService) ListByAsset(ctx context.Context, assetID uint, offset, limit int) ([]*models.Telemetry, int64, error) {
	return s.telemetryRepo.ListByAsset(ctx, assetID, time.Time{}, offset, limit)
}

// NetworkKPIs computes network-wide averages and totals over a window.
// period accepts "Nd" day windows and defaults to 30 days.
func (s *TelemetryService) NetworkKPIs(ctx context.Context, period string) (*NetworkKPI, error) {
	days, err := parseDayWindow(period, 30)
	if err != nil {
		return nil, domain.ErrInvalidPeriod
	}

	since := time.Now().AddDate(0, 0, -days)
	readings, err := s.telemetryRepo.ListSince(ctx, since)
	if err != nil {
		return nil, err
	}

	kpi := &NetworkKPI{
		Period:   period,
		Readings: len(readings),
	}
	if kpi.Period == "" {
		kpi.Period = "30d"
	}

	for _, r := range readings {
		kpi.AvgFlowRate += r.FlowRate
		kpi.AvgPressure += r.Pressure
		kpi.AvgTurbidity += r.Turbidity
		kpi.AvgChlorine += r.ChlorineResidual
	}
	if n := float64(len(readings)); n > 0 {
		kpi.AvgFlowRate /= n
		kpi.AvgPressure /= n
		kpi.AvgTurbidity /= n
		kpi.AvgChlorine /= n
	}

	counts, err := s.assetRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	kpi.AssetCounts = counts

	summaries, err := s.billingRepo.ListSummariesOverlapping(ctx, since, time.Now())
	if err != nil {
		return nil, err
	}
	for _, b := range summaries {
		kpi.TotalBilledKES += b.TotalBilledKES
		kpi.TotalCollectedKES += b.TotalCollectedKES
	}

	return kpi, nil
}

// HubKPIs returns the latest reading and billing summary for one asset.
// Missing telemetry or billing leaves nil fields rather than failing.
func (s *TelemetryService) HubKPIs(ctx context.Context, assetID uint) (*HubKPI, error) {
	asset, err := s.assetRepo.GetByID(ctx, assetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAssetNotFound
		}
		return nil, err
	}

	kpi := &HubKPI{Asset: asset}

	reading, err := s.telemetryRepo.LatestByAsset(ctx, assetID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	kpi.LatestReading = reading

	periods, err := s.billingRepo.ListPeriods(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range periods {
		summary, err := s.billingRepo.GetSummary(ctx, assetID, p.ID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, err
		}
		kpi.LatestBilling = summary
		break
	}

	return kpi, nil
}

// TimeSeries buckets an asset's readings into fixed windows and averages
// each bucket. Empty buckets are skipped.
func (s *TelemetryService) TimeSeries(ctx context.Context, assetID uint, from, to time.Time, bucket time.Duration) ([]TimeBucket, error) {
	if bucket <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if to.IsZero() {
		to = time.Now()
	}
	if from.IsZero() {
		from = to.Add(-24 * time.Hour)
	}
	if !from.Before(to) {
		return nil, domain.ErrInvalidInput
	}

	if _, err := s.assetRepo.GetByID(ctx, assetID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAssetNotFound
		}
		return nil, err
	}

	readings, err := s.telemetryRepo.ListByAssetBetween(ctx, assetID, from, to)
	if err != nil {
		return nil, err
	}

	return bucketReadings(readings, from, bucket), nil
}

// bucketReadings folds readings into fixed-width windows anchored at from.
func bucketReadings(readings []*models.Telemetry, from time.Time, width time.Duration) []TimeBucket {
	buckets := make([]TimeBucket, 0)
	index := make(map[int64]int)

	for _, r := range readings {
		slot := int64(r.CreatedAt.Sub(from) / width)
		if slot < 0 {
			continue
		}
		i, ok := index[slot]
		if !ok {
			buckets = append(buckets, TimeBucket{Bucket: from.Add(time.Duration(slot) * width)})
			i = len(buckets) - 1
			index[slot] = i
		}
		b := &buckets[i]
		b.Readings++
		b.AvgFlowRate += r.FlowRate
		b.AvgPressure += r.Pressure
		b.AvgTurbidity += r.Turbidity
		b.AvgChlorine += r.ChlorineResidual
	}

	for i := range buckets {
		n := float64(buckets[i].Readings)
		buckets[i].AvgFlowRate /= n
		buckets[i].AvgPressure /= n
		buckets[i].AvgTurbidity /= n
		buckets[i].AvgChlorine /= n
	}

	return buckets
}

// parseDayWindow parses "Nd" day windows, falling back to def when empty.
func parseDayWindow(period string, def int) (int, error) {
	if period == "" {
		return def, nil
	}
	if !strings.HasSuffix(period, "d") {
		return 0, domain.ErrInvalidPeriod
	}
	days, err := strconv.Atoi(strings.TrimSuffix(period, "d"))
	if err != nil || days <= 0 {
		return 0, domain.ErrInvalidPeriod
	}
	return days, nil
}

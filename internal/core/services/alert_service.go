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

// chart color cycle for county distribution
var alertColors = []string{"#27348B", "#00B9F2", "#F59E0B", "#EF4444", "#22C55E"}

// AlertService handles persisted county alert business logic
type AlertService struct {
	alertRepo repositories.AlertRepository
}

// NewAlertService creates a new alert service
func NewAlertService(alertRepo repositories.AlertRepository) *AlertService {
	return &AlertService{alertRepo: alertRepo}
}

// CreateAlertInput represents alert creation input
type CreateAlertInput struct {
	Type     string     `json:"type" validate:"required"`
	Title    string     `json:"title" validate:"required"`
	Severity string     `json:"severity"`
	Metric   string     `json:"metric"`
	County   string     `json:"county" validate:"required"`
	Duration string     `json:"duration"`
	GPS      models.GPS `json:"coordinates"`
}

// CountySlice is one county's share of alerts for the distribution chart
type CountySlice struct {
	County string `json:"county"`
	Count  int64  `json:"count"`
	Color  string `json:"color"`
}

// AlertStats is the dashboard rollup
type AlertStats struct {
	ActiveCount          int64            `json:"activeCount"`
	TotalCount           int64            `json:"totalCount"`
	ByType               map[string]int64 `json:"byType"`
	CountyDistribution   []CountySlice    `json:"countyDistribution"`
	AvgResolutionHours   float64          `json:"avgResolutionHours"`
	ResolvedWithDuration int              `json:"resolvedWithDuration"`
}

// TrendPoint is one day of an alert's metric history
type TrendPoint struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// AlertTrend is a 7-day alert activity series for one county/type pair
type AlertTrend struct {
	Alert  *models.Alert `json:"alert"`
	Series []TrendPoint  `json:"series"`
}

// Create creates a new alert
func (s *AlertService) Create(ctx context.Context, input *CreateAlertInput) (*models.Alert, error) {
	if input.Type == "" || input.Title == "" || input.County == "" {
		return nil, domain.ErrInvalidInput
	}

	alert := &models.Alert{
		Type:     input.Type,
		Title:    input.Title,
		Severity: input.Severity,
		Metric:   input.Metric,
		County:   input.County,
		Duration: input.Duration,
		Status:   models.AlertStatusActive,
		GPS:      input.GPS,
	}
	if alert.Severity == "" {
		alert.Severity = "Warning"
	}

	if err := s.alertRepo.Create(ctx, alert); err != nil {
		return nil, err
	}

	log.Printf("✅ Alert created: %s (%s)", alert.Title, alert.County)
	return alert, nil
}

// GetByID gets an alert by ID
func (s *AlertService) GetByID(ctx context.Context, id uint) (*models.Alert, error) {
	alert, err := s.alertRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return alert, nil
}

// List lists alerts with filters and pagination
func (s *AlertService) List(ctx context.Context, filter repositories.AlertFilter, offset, limit int) ([]*models.Alert, int64, error) {
	return s.alertRepo.List(ctx, filter, offset, limit)
}

// Resolve marks an alert resolved
func (s *AlertService) Resolve(ctx context.Context, id uint) (*models.Alert, error) {
	alert, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	alert.Status = models.AlertStatusResolved
	if err := s.alertRepo.Update(ctx, alert); err != nil {
		return nil, err
	}
	return alert, nil
}

// Stats computes the dashboard rollup: active count, per-type counts, the
// county distribution with chart colors, and average resolution time of
// resolved alerts.
func (s *AlertService) Stats(ctx context.Context) (*AlertStats, error) {
	alerts, _, err := s.alertRepo.List(ctx, repositories.AlertFilter{}, 0, 1000)
	if err != nil {
		return nil, err
	}

	byType, err := s.alertRepo.CountByType(ctx)
	if err != nil {
		return nil, err
	}

	stats := &AlertStats{
		TotalCount: int64(len(alerts)),
		ByType:     byType,
	}

	counties := make(map[string]int64)
	countyOrder := make([]string, 0)
	var resolutionSum time.Duration

	for _, a := range alerts {
		if a.Status == models.AlertStatusActive {
			stats.ActiveCount++
		}
		if _, seen := counties[a.County]; !seen {
			countyOrder = append(countyOrder, a.County)
		}
		counties[a.County]++

		if a.Status == models.AlertStatusResolved && a.UpdatedAt.After(a.CreatedAt) {
			resolutionSum += a.UpdatedAt.Sub(a.CreatedAt)
			stats.ResolvedWithDuration++
		}
	}

	for i, county := range countyOrder {
		stats.CountyDistribution = append(stats.CountyDistribution, CountySlice{
			County: county,
			Count:  counties[county],
			Color:  alertColors[i%len(alertColors)],
		})
	}

	if stats.ResolvedWithDuration > 0 {
		stats.AvgResolutionHours = resolutionSum.Hours() / float64(stats.ResolvedWithDuration)
	}

	return stats, nil
}

// Trend builds a 7-day activity series of alerts sharing the given alert's
// county and type.
func (s *AlertService) Trend(ctx context.Context, id uint) (*AlertTrend, error) {
	alert, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	since := time.Now().AddDate(0, 0, -7)
	recent, err := s.alertRepo.ListSince(ctx, since)
	if err != nil {
		return nil, err
	}

	trend := &AlertTrend{Alert: alert}
	for day := 0; day < 7; day++ {
		date := since.AddDate(0, 0, day+1)
		point := TrendPoint{Date: date.Format("2006-01-02")}
		for _, a := range recent {
			if a.County == alert.County && a.Type == alert.Type &&
				a.CreatedAt.Format("2006-01-02") == point.Date {
				point.Count++
			}
		}
		trend.Series = append(trend.Series, point)
	}

	return trend, nil
}

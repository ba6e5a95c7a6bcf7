package services

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"washlab-backend/internal/adapters/persistence/models"
	"washlab-backend/internal/adapters/persistence/repositories"
	"washlab-backend/internal/core/domain"
)

// readings older than this are ignored when deriving alerts
const alertWindow = 24 * time.Hour

// rebuilt snapshots are served for this long before refreshing
const snapshotTTL = time.Minute

// EWS thresholds
const (
	turbidityAlertNTU    = 5.0
	turbidityCriticalNTU = 10.0
	chlorineFloorMgL     = 0.2
	flowAlertLPS         = 2.0
	flowCriticalLPS      = 1.0
)

// DerivedAlert is an in-memory early-warning alert computed from telemetry.
// It is never persisted; linking creates a ticket.
type DerivedAlert struct {
	ID        string    `json:"id"`
	AssetID   uint      `json:"assetId"`
	AssetName string    `json:"assetName"`
	County    string    `json:"county"`
	Type      string    `json:"type"`
	Metric    string    `json:"metric"`
	Value     float64   `json:"value"`
	Severity  string    `json:"severity"`
	ReadingAt time.Time `json:"readingAt"`
	TicketID  uint      `json:"ticketId,omitempty"`
}

// EWSService derives early-warning alerts from recent telemetry. The alert
// list is an immutable snapshot swapped wholesale under the mutex, so
// readers never observe a half-built list.
type EWSService struct {
	telemetryRepo repositories.TelemetryRepository
	ticketSvc     *TicketService

	mu       sync.RWMutex
	snapshot []DerivedAlert
	builtAt  time.Time
}

// NewEWSService creates a new early-warning service
func NewEWSService(telemetryRepo repositories.TelemetryRepository, ticketSvc *TicketService) *EWSService {
	return &EWSService{
		telemetryRepo: telemetryRepo,
		ticketSvc:     ticketSvc,
	}
}

// Alerts returns the current alert snapshot, rebuilding it when stale.
func (s *EWSService) Alerts(ctx context.Context) ([]DerivedAlert, error) {
	s.mu.RLock()
	fresh := time.Since(s.builtAt) < snapshotTTL
	snapshot := s.snapshot
	s.mu.RUnlock()

	if fresh {
		return snapshot, nil
	}
	return s.Refresh(ctx)
}

// Refresh rebuilds the alert list from the last 24 hours of telemetry and
// swaps it in. Linked ticket ids from the previous snapshot are carried
// over so a refresh does not lose the link.
func (s *EWSService) Refresh(ctx context.Context) ([]DerivedAlert, error) {
	readings, err := s.telemetryRepo.LatestPerAsset(ctx)
	if err != nil {
		return nil, err
	}

	cutoff := time.Now().Add(-alertWindow)
	next := make([]DerivedAlert, 0)
	for _, r := range readings {
		if r.CreatedAt.Before(cutoff) {
			continue
		}
		next = append(next, deriveAlerts(r)...)
	}

	s.mu.Lock()
	for i := range next {
		for _, prev := range s.snapshot {
			if prev.ID == next[i].ID && prev.TicketID != 0 {
				next[i].TicketID = prev.TicketID
			}
		}
	}
	s.snapshot = next
	s.builtAt = time.Now()
	s.mu.Unlock()

	return next, nil
}

// LinkToTicket opens a maintenance ticket for one derived alert and records
// the ticket id on the cached alert. Critical alerts open high-priority
// tickets.
func (s *EWSService) LinkToTicket(ctx context.Context, alertID, createdBy string) (*models.Ticket, error) {
	s.mu.RLock()
	var alert *DerivedAlert
	for i := range s.snapshot {
		if s.snapshot[i].ID == alertID {
			a := s.snapshot[i]
			alert = &a
			break
		}
	}
	s.mu.RUnlock()

	if alert == nil {
		return nil, domain.ErrNotFound
	}

	priority := "medium"
	if alert.Severity == domain.SeverityCritical {
		priority = "high"
	}

	ticket, err := s.ticketSvc.Create(ctx, &CreateTicketInput{
		AssetID:     alert.AssetID,
		Title:       fmt.Sprintf("[EWS] %s at %s", alert.Type, alert.AssetName),
		Description: fmt.Sprintf("Derived alert %s: %s = %.2f", alert.ID, alert.Metric, alert.Value),
		Category:    "sensor",
		Priority:    priority,
		CreatedBy:   createdBy,
	})
	if err != nil {
		return nil, err
	}

	// copy-on-write: rebuild the slice so in-flight readers keep the old one
	s.mu.Lock()
	next := make([]DerivedAlert, len(s.snapshot))
	copy(next, s.snapshot)
	for i := range next {
		if next[i].ID == alertID {
			next[i].TicketID = ticket.ID
		}
	}
	s.snapshot = next
	s.mu.Unlock()

	log.Printf("✅ Alert %s linked to ticket #%d", alertID, ticket.ID)
	return ticket, nil
}

// deriveAlerts classifies one reading against the thresholds. A reading can
// raise several alerts at once.
func deriveAlerts(r *models.Telemetry) []DerivedAlert {
	severity := domain.SeverityWarning
	if r.Turbidity > turbidityCriticalNTU || r.FlowRate < flowCriticalLPS {
		severity = domain.SeverityCritical
	}

	assetName := ""
	county := ""
	if r.Asset != nil {
		assetName = r.Asset.SiteName
		county = r.Asset.County
	}

	base := DerivedAlert{
		AssetID:   r.AssetID,
		AssetName: assetName,
		County:    county,
		Severity:  severity,
		ReadingAt: r.CreatedAt,
	}

	var alerts []DerivedAlert
	if r.Turbidity > turbidityAlertNTU {
		a := base
		a.ID = fmt.Sprintf("%d-turbidity", r.AssetID)
		a.Type = "Water Quality"
		a.Metric = "turbidity"
		a.Value = r.Turbidity
		alerts = append(alerts, a)
	}
	if r.ChlorineResidual < chlorineFloorMgL {
		a := base
		a.ID = fmt.Sprintf("%d-chlorine", r.AssetID)
		a.Type = "Low Chlorine"
		a.Metric = "chlorineResidual"
		a.Value = r.ChlorineResidual
		alerts = append(alerts, a)
	}
	if r.FlowRate < flowAlertLPS {
		a := base
		a.ID = fmt.Sprintf("%d-flow", r.AssetID)
		a.Type = "Low Flow"
		a.Metric = "flowRate"
		a.Value = r.FlowRate
		alerts = append(alerts, a)
	}

	return alerts
}

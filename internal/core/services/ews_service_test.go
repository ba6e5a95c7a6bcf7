package services

import (
	"context"
	"testing"
	"time"

	"washlab-backend/internal/adapters/persistence/models"
	"washlab-backend/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reading(assetID uint, flow, turbidity, chlorine float64, age time.Duration) *models.Telemetry {
	return &models.Telemetry{
		AssetID:          assetID,
		FlowRate:         flow,
		Turbidity:        turbidity,
		ChlorineResidual: chlorine,
		CreatedAt:        time.Now().Add(-age),
		Asset:            &models.Asset{ID: assetID, SiteName: "Hub", County: "Kitui"},
	}
}

func TestRefresh_DerivesAlerts(t *testing.T) {
	repo := &fakeTelemetryRepo{latest: []*models.Telemetry{
		reading(1, 3, 12, 0.5, time.Minute),   // turbidity only, critical
		reading(2, 1.5, 2, 0.1, time.Minute),  // chlorine + flow, warning
		reading(3, 3, 1, 0.5, time.Minute),    // healthy
		reading(4, 0.5, 20, 0.1, 25*time.Hour), // stale, ignored
	}}
	svc := NewEWSService(repo, nil)

	alerts, err := svc.Refresh(context.Background())
	require.NoError(t, err)
	require.Len(t, alerts, 3)

	byID := make(map[string]DerivedAlert)
	for _, a := range alerts {
		byID[a.ID] = a
	}

	turb, ok := byID["1-turbidity"]
	require.True(t, ok)
	assert.Equal(t, "Water Quality", turb.Type)
	assert.Equal(t, domain.SeverityCritical, turb.Severity)
	assert.Equal(t, 12.0, turb.Value)
	assert.Equal(t, "Kitui", turb.County)

	chlorine, ok := byID["2-chlorine"]
	require.True(t, ok)
	assert.Equal(t, "Low Chlorine", chlorine.Type)
	assert.Equal(t, domain.SeverityWarning, chlorine.Severity)

	flow, ok := byID["2-flow"]
	require.True(t, ok)
	assert.Equal(t, "Low Flow", flow.Type)

	_, stale := byID["4-turbidity"]
	assert.False(t, stale, "readings older than the window raise no alerts")
}

func TestRefresh_CriticalFlow(t *testing.T) {
	repo := &fakeTelemetryRepo{latest: []*models.Telemetry{
		reading(7, 0.5, 1, 0.5, time.Minute),
	}}
	svc := NewEWSService(repo, nil)

	alerts, err := svc.Refresh(context.Background())
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, "7-flow", alerts[0].ID)
	assert.Equal(t, domain.SeverityCritical, alerts[0].Severity)
}

func TestAlerts_ServesFreshSnapshot(t *testing.T) {
	repo := &fakeTelemetryRepo{latest: []*models.Telemetry{
		reading(1, 3, 12, 0.5, time.Minute),
	}}
	svc := NewEWSService(repo, nil)

	first, err := svc.Alerts(context.Background())
	require.NoError(t, err)
	require.Len(t, first, 1)

	// new data does not surface until the snapshot expires
	repo.latest = append(repo.latest, reading(2, 0.5, 1, 0.5, time.Minute))
	second, err := svc.Alerts(context.Background())
	require.NoError(t, err)
	assert.Len(t, second, 1)
}

func TestLinkToTicket(t *testing.T) {
	telemetryRepo := &fakeTelemetryRepo{latest: []*models.Telemetry{
		reading(1, 3, 12, 0.5, time.Minute),
	}}
	ticketRepo := &fakeTicketRepo{}
	assetRepo := newFakeAssetRepo(&models.Asset{ID: 1, SiteName: "Hub"})
	ticketSvc := NewTicketService(ticketRepo, assetRepo)
	svc := NewEWSService(telemetryRepo, ticketSvc)

	_, err := svc.Refresh(context.Background())
	require.NoError(t, err)

	ticket, err := svc.LinkToTicket(context.Background(), "1-turbidity", "Duty Officer")
	require.NoError(t, err)
	assert.Equal(t, "high", ticket.Priority, "critical alerts open high-priority tickets")
	assert.Equal(t, "sensor", ticket.Category)
	assert.Equal(t, "[EWS] Water Quality at Hub", ticket.Title)
	assert.Equal(t, "Duty Officer", ticket.CreatedBy)

	alerts, err := svc.Alerts(context.Background())
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, ticket.ID, alerts[0].TicketID)

	// a rebuild keeps the link
	refreshed, err := svc.Refresh(context.Background())
	require.NoError(t, err)
	require.Len(t, refreshed, 1)
	assert.Equal(t, ticket.ID, refreshed[0].TicketID)
}

func TestLinkToTicket_UnknownAlert(t *testing.T) {
	svc := NewEWSService(&fakeTelemetryRepo{}, nil)

	_, err := svc.LinkToTicket(context.Background(), "9-flow", "Duty Officer")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

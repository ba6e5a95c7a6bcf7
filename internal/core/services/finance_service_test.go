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

func TestResolvePeriod(t *testing.T) {
	now := time.Date(2026, time.March, 15, 10, 0, 0, 0, time.UTC)

	t.Run("default is this month", func(t *testing.T) {
		from, to, err := ResolvePeriod("", now)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC), from)
		assert.Equal(t, now, to)
	})

	t.Run("this_month", func(t *testing.T) {
		from, to, err := ResolvePeriod("this_month", now)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC), from)
		assert.Equal(t, now, to)
	})

	t.Run("last_month", func(t *testing.T) {
		from, to, err := ResolvePeriod("last_month", now)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC), from)
		assert.Equal(t, time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC), to)
	})

	t.Run("day window", func(t *testing.T) {
		from, to, err := ResolvePeriod("30d", now)
		require.NoError(t, err)
		assert.Equal(t, now.AddDate(0, 0, -30), from)
		assert.Equal(t, now, to)
	})

	t.Run("garbage rejected", func(t *testing.T) {
		_, _, err := ResolvePeriod("fortnight", now)
		assert.ErrorIs(t, err, domain.ErrInvalidPeriod)
	})
}

func TestSummary(t *testing.T) {
	repo := &fakeBillingRepo{summaries: []*models.BillingSummary{
		{TotalBilledKES: 60000, TotalCollectedKES: 45000, ArrearsKES: 15000, OAndMCostKES: 30000},
		{TotalBilledKES: 40000, TotalCollectedKES: 35000, ArrearsKES: 5000, OAndMCostKES: 20000},
	}}
	svc := NewFinanceService(repo, newFakeAssetRepo())

	summary, err := svc.Summary(context.Background(), "30d")
	require.NoError(t, err)
	assert.Equal(t, float64(100000), summary.TotalBilledKES)
	assert.Equal(t, float64(80000), summary.TotalCollectedKES)
	assert.InDelta(t, 80.0, summary.CollectionEfficiency, 0.01)
	assert.InDelta(t, 160.0, summary.OAndMCoverage, 0.01)
}

func TestSummary_ZeroGuards(t *testing.T) {
	svc := NewFinanceService(&fakeBillingRepo{}, newFakeAssetRepo())

	summary, err := svc.Summary(context.Background(), "this_month")
	require.NoError(t, err)
	assert.Zero(t, summary.CollectionEfficiency)
	assert.Zero(t, summary.OAndMCoverage)
}

func TestDebtors_Buckets(t *testing.T) {
	repo := &fakeBillingRepo{debtors: []*models.BillingSummary{
		{OverdueDays: 15, ArrearsKES: 1000},
		{OverdueDays: 30, ArrearsKES: 2000},
		{OverdueDays: 45, ArrearsKES: 3000},
		{OverdueDays: 90, ArrearsKES: 4000},
		{OverdueDays: 120, ArrearsKES: 5000},
	}}
	svc := NewFinanceService(repo, newFakeAssetRepo())

	report, err := svc.Debtors(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, report.Buckets, 4, "three default bands plus overflow")

	assert.Equal(t, "1-30 days", report.Buckets[0].Label)
	assert.Equal(t, 2, report.Buckets[0].Count)
	assert.Equal(t, float64(3000), report.Buckets[0].ArrearsKES)

	assert.Equal(t, "31-60 days", report.Buckets[1].Label)
	assert.Equal(t, 1, report.Buckets[1].Count)

	assert.Equal(t, "61-90 days", report.Buckets[2].Label)
	assert.Equal(t, 1, report.Buckets[2].Count)

	assert.Equal(t, "90+ days", report.Buckets[3].Label)
	assert.Equal(t, 1, report.Buckets[3].Count)
	assert.Equal(t, float64(5000), report.Buckets[3].ArrearsKES)

	assert.Equal(t, float64(15000), report.TotalArrears)
}

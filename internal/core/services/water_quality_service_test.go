package services

import (
	"context"
	"testing"

	"washlab-backend/internal/adapters/persistence/models"
	"washlab-backend/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifySample(t *testing.T) {
	tests := []struct {
		name   string
		params models.SampleParameters
		want   string
	}{
		{"any e. coli fails", models.SampleParameters{EColiCount: 1, Turbidity: 1, ChlorineResidual: 0.5}, domain.ResultFail},
		{"high turbidity fails", models.SampleParameters{Turbidity: 5.1, ChlorineResidual: 0.5}, domain.ResultFail},
		{"low chlorine fails", models.SampleParameters{Turbidity: 1, ChlorineResidual: 0.1}, domain.ResultFail},
		{"elevated turbidity warns", models.SampleParameters{Turbidity: 4, ChlorineResidual: 0.5}, domain.ResultWarning},
		{"turbidity boundary warns", models.SampleParameters{Turbidity: 5, ChlorineResidual: 0.5}, domain.ResultWarning},
		{"clean sample passes", models.SampleParameters{Turbidity: 2, ChlorineResidual: 0.5, PH: 7.1}, domain.ResultPass},
		{"chlorine floor passes", models.SampleParameters{Turbidity: 1, ChlorineResidual: 0.2}, domain.ResultPass},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifySample(tt.params))
		})
	}
}

func TestCreateSample_DerivesStatus(t *testing.T) {
	sampleRepo := &fakeSampleRepo{}
	assetRepo := newFakeAssetRepo(&models.Asset{ID: 1, SiteName: "Kiambere Hub"})
	svc := NewWaterQualityService(sampleRepo, assetRepo)

	sample, err := svc.Create(context.Background(), &CreateSampleInput{
		AssetID:     1,
		CollectedBy: "Lab Tech",
		Parameters:  models.SampleParameters{EColiCount: 3, Turbidity: 1, ChlorineResidual: 0.5},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ResultFail, sample.ResultStatus)
	assert.False(t, sample.SampleDate.IsZero(), "sample date defaults to now")
	require.Len(t, sampleRepo.created, 1)
}

func TestCreateSample_UnknownAsset(t *testing.T) {
	svc := NewWaterQualityService(&fakeSampleRepo{}, newFakeAssetRepo())

	_, err := svc.Create(context.Background(), &CreateSampleInput{AssetID: 99})
	assert.ErrorIs(t, err, domain.ErrAssetNotFound)
}

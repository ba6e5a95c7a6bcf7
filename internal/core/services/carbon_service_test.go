package services

import (
	"testing"

	"washlab-backend/internal/adapters/persistence/models"

	"github.com/stretchr/testify/assert"
)

func TestScore(t *testing.T) {
	tests := []struct {
		name      string
		checklist models.ReadinessChecklist
		want      int
	}{
		{
			"all criteria met",
			models.ReadinessChecklist{ProjectBoundary: true, WaterQuality: 95, HygieneSessions: 12, DieselShare: 8, BaselineSurveys: 5},
			100,
		},
		{
			"nothing met",
			models.ReadinessChecklist{WaterQuality: 50, HygieneSessions: 2, DieselShare: 40},
			0,
		},
		{
			"boundary values count",
			models.ReadinessChecklist{WaterQuality: 90, HygieneSessions: 10, DieselShare: 9.9, BaselineSurveys: 5},
			80,
		},
		{
			"diesel share at 10 misses",
			models.ReadinessChecklist{ProjectBoundary: true, DieselShare: 10},
			20,
		},
		{
			"surveys below threshold miss",
			models.ReadinessChecklist{ProjectBoundary: true, DieselShare: 5, BaselineSurveys: 4},
			40,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Score(tt.checklist))
		})
	}
}

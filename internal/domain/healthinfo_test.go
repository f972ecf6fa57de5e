package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGender_IsValid(t *testing.T) {
	assert.True(t, GenderMale.IsValid())
	assert.True(t, GenderFemale.IsValid())
	assert.True(t, GenderOther.IsValid())
	assert.False(t, Gender("unknown").IsValid())
	assert.False(t, Gender("").IsValid())
}

func TestHealthInfo_DailyIntakeGoalML(t *testing.T) {
	tests := []struct {
		name     string
		weightKG float64
		want     int
	}{
		{"average adult", 70, 2450},
		{"heavy adult", 100, 3500},
		{"light person floors at 1.5 litres", 30, 1500},
		{"boundary weight", 43, 1505},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := &HealthInfo{WeightKG: tt.weightKG}
			assert.Equal(t, tt.want, info.DailyIntakeGoalML())
		})
	}
}

package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riverlabs/aquacheck/internal/domain"
)

func TestAnalyzeLabel(t *testing.T) {
	raw := `Bisleri Mineral Water**
Calcium: 22.5 mg/L
Magnesium: 6,5 mg
Sodium 8 mg
TDS: 120 ppm
pH: 7.2`

	analysis := AnalyzeLabel(raw, domain.StandardWHO)

	assert.Equal(t, domain.BrandRecognized, analysis.Brand.Status)
	assert.Equal(t, "Bisleri", analysis.Brand.Matched.CanonicalName)

	assert.Equal(t, map[domain.ParameterKey]float64{
		domain.ParamCalcium:   22.5,
		domain.ParamMagnesium: 6.5,
		domain.ParamSodium:    8,
		domain.ParamTDS:       120,
		domain.ParamPH:        7.2,
	}, analysis.Readings)

	require.NotNil(t, analysis.Result.Overall)
	// Magnesium 6.5 sits below the WHO minimum of 10, a warning.
	assert.Equal(t, domain.OverallNeedsAttention, *analysis.Result.Overall)
	assert.Equal(t, domain.StatusLow, analysis.Result.PerParameter[domain.ParamMagnesium].Status)
}

func TestAnalyzeLabel_NoData(t *testing.T) {
	analysis := AnalyzeLabel("best before 12 months\nbatch 42", domain.StandardWHO)

	assert.Empty(t, analysis.Readings)
	assert.Empty(t, analysis.Result.PerParameter)
	assert.Nil(t, analysis.Result.Overall)
	assert.Equal(t, domain.BrandUnrecognized, analysis.Brand.Status)
}

func TestValidateReading(t *testing.T) {
	tests := []struct {
		name    string
		param   domain.ParameterKey
		value   float64
		wantErr bool
	}{
		{"valid reading", domain.ParamCalcium, 22.5, false},
		{"zero is allowed", domain.ParamSodium, 0, false},
		{"negative rejected", domain.ParamCalcium, -1, true},
		{"unknown parameter rejected", domain.ParameterKey("unobtainium"), 1, true},
		{"ph in scale", domain.ParamPH, 7, false},
		{"ph above scale rejected", domain.ParamPH, 14.5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateReading(tt.param, tt.value)

			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateReadings(t *testing.T) {
	assert.NoError(t, ValidateReadings(map[domain.ParameterKey]float64{
		domain.ParamCalcium: 20,
		domain.ParamPH:      7,
	}))

	err := ValidateReadings(map[domain.ParameterKey]float64{})
	require.Error(t, err)
	assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))

	err = ValidateReadings(map[domain.ParameterKey]float64{domain.ParamCalcium: -3})
	require.Error(t, err)
}

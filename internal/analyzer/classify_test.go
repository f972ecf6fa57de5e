package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riverlabs/aquacheck/internal/domain"
)

func TestClassify_BandRules(t *testing.T) {
	tests := []struct {
		name     string
		param    domain.ParameterKey
		value    float64
		std      domain.StandardID
		status   domain.ParameterStatus
		severity domain.Severity
	}{
		{"within band", domain.ParamCalcium, 50, domain.StandardWHO, domain.StatusOptimal, domain.SeverityNone},
		{"at minimum is optimal", domain.ParamCalcium, 20, domain.StandardWHO, domain.StatusOptimal, domain.SeverityNone},
		{"at maximum is optimal", domain.ParamCalcium, 200, domain.StandardWHO, domain.StatusOptimal, domain.SeverityNone},
		{"below minimum warns", domain.ParamCalcium, 10, domain.StandardWHO, domain.StatusLow, domain.SeverityWarning},
		{"above maximum is an issue", domain.ParamSodium, 600, domain.StandardWHO, domain.StatusHigh, domain.SeverityIssue},
		{"standards differ on limits", domain.ParamCalcium, 100, domain.StandardFSSAI, domain.StatusHigh, domain.SeverityIssue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Classify(map[domain.ParameterKey]float64{tt.param: tt.value}, tt.std)

			require.Contains(t, result.PerParameter, tt.param)
			verdict := result.PerParameter[tt.param]
			assert.Equal(t, tt.status, verdict.Status)
			assert.Equal(t, tt.severity, verdict.Severity)
			assert.Equal(t, tt.value, verdict.Value)
			assert.NotEmpty(t, verdict.Message)
		})
	}
}

func TestClassify_PHPartition(t *testing.T) {
	tests := []struct {
		name   string
		value  float64
		status domain.ParameterStatus
	}{
		{"acidic", 5.0, domain.StatusAcidic},
		{"lower boundary goes to the first containing range", 6.5, domain.StatusAcidic},
		{"neutral", 7.0, domain.StatusOptimal},
		{"upper boundary stays optimal", 8.5, domain.StatusOptimal},
		{"alkaline", 9.0, domain.StatusAlkaline},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Classify(map[domain.ParameterKey]float64{domain.ParamPH: tt.value}, domain.StandardWHO)

			verdict := result.PerParameter[domain.ParamPH]
			assert.Equal(t, tt.status, verdict.Status)
		})
	}
}

func TestClassify_PHOutsidePartition(t *testing.T) {
	result := Classify(map[domain.ParameterKey]float64{domain.ParamPH: 15}, domain.StandardWHO)

	verdict := result.PerParameter[domain.ParamPH]
	assert.Equal(t, domain.StatusUnknown, verdict.Status)
	assert.Equal(t, domain.SeverityNone, verdict.Severity)
}

func TestClassify_Overall(t *testing.T) {
	tests := []struct {
		name     string
		readings map[domain.ParameterKey]float64
		want     domain.OverallVerdict
	}{
		{
			"all optimal",
			map[domain.ParameterKey]float64{domain.ParamCalcium: 50, domain.ParamPH: 7.2},
			domain.OverallOptimal,
		},
		{
			"warning dominates optimal",
			map[domain.ParameterKey]float64{domain.ParamCalcium: 10, domain.ParamPH: 7.2},
			domain.OverallNeedsAttention,
		},
		{
			"issue dominates warning",
			map[domain.ParameterKey]float64{domain.ParamCalcium: 10, domain.ParamSodium: 600},
			domain.OverallUnsuitable,
		},
		{
			"alkaline ph is unsuitable",
			map[domain.ParameterKey]float64{domain.ParamPH: 9},
			domain.OverallUnsuitable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Classify(tt.readings, domain.StandardWHO)

			require.NotNil(t, result.Overall)
			assert.Equal(t, tt.want, *result.Overall)
		})
	}
}

func TestClassify_EmptyInput(t *testing.T) {
	result := Classify(map[domain.ParameterKey]float64{}, domain.StandardWHO)

	assert.Empty(t, result.PerParameter)
	assert.Nil(t, result.Overall, "no readings means no overall verdict, not Optimal")
}

func TestClassify_UnknownParameterSkipped(t *testing.T) {
	readings := map[domain.ParameterKey]float64{
		domain.ParameterKey("unobtainium"): 42,
		domain.ParamCalcium:                50,
	}

	result := Classify(readings, domain.StandardWHO)

	assert.Len(t, result.PerParameter, 1)
	assert.Contains(t, result.PerParameter, domain.ParamCalcium)
}

func TestClassify_DoesNotMutateInput(t *testing.T) {
	readings := map[domain.ParameterKey]float64{
		domain.ParamCalcium: 50,
		domain.ParamPH:      7.2,
	}

	whoResult := Classify(readings, domain.StandardWHO)
	fssaiResult := Classify(readings, domain.StandardFSSAI)

	assert.Equal(t, map[domain.ParameterKey]float64{
		domain.ParamCalcium: 50,
		domain.ParamPH:      7.2,
	}, readings)
	assert.Equal(t, domain.StandardWHO, whoResult.Standard)
	assert.Equal(t, domain.StandardFSSAI, fssaiResult.Standard)
}

func TestClassify_Deterministic(t *testing.T) {
	readings := map[domain.ParameterKey]float64{
		domain.ParamCalcium: 10,
		domain.ParamSodium:  600,
		domain.ParamPH:      7.2,
	}

	first := Classify(readings, domain.StandardWHO)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Classify(readings, domain.StandardWHO))
	}
}

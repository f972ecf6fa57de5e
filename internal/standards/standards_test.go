package standards

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riverlabs/aquacheck/internal/domain"
)

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate())
}

func TestRule(t *testing.T) {
	tests := []struct {
		name  string
		std   domain.StandardID
		param domain.ParameterKey
		found bool
	}{
		{"who calcium", domain.StandardWHO, domain.ParamCalcium, true},
		{"fssai calcium", domain.StandardFSSAI, domain.ParamCalcium, true},
		{"who ph", domain.StandardWHO, domain.ParamPH, true},
		{"extended parameter", domain.StandardWHO, domain.ParamTurbidity, true},
		{"unknown parameter", domain.StandardWHO, domain.ParameterKey("unobtainium"), false},
		{"unknown standard", domain.StandardID("eu"), domain.ParamCalcium, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := Rule(tt.std, tt.param)
			assert.Equal(t, tt.found, ok)
		})
	}
}

func TestRule_StandardsDiffer(t *testing.T) {
	who, ok := Rule(domain.StandardWHO, domain.ParamCalcium)
	require.True(t, ok)
	fssai, ok := Rule(domain.StandardFSSAI, domain.ParamCalcium)
	require.True(t, ok)

	assert.Equal(t, 200.0, who.Max)
	assert.Equal(t, 75.0, fssai.Max)
}

func TestRule_PHIsPartition(t *testing.T) {
	for _, std := range []domain.StandardID{domain.StandardWHO, domain.StandardFSSAI} {
		rule, ok := Rule(std, domain.ParamPH)
		require.True(t, ok)
		assert.True(t, rule.IsPartition())
		assert.Len(t, rule.Ranges, 3)
	}
}

func TestParameters(t *testing.T) {
	for _, std := range []domain.StandardID{domain.StandardWHO, domain.StandardFSSAI} {
		params := Parameters(std)
		assert.NotEmpty(t, params)

		// Sorted for deterministic iteration.
		for i := 1; i < len(params); i++ {
			assert.Less(t, params[i-1], params[i])
		}

		// Every rule for every listed parameter resolves.
		for _, p := range params {
			_, ok := Rule(std, p)
			assert.True(t, ok)
		}
	}
}

func TestParameters_UnknownStandard(t *testing.T) {
	assert.Nil(t, Parameters(domain.StandardID("eu")))
}

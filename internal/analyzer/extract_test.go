package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/riverlabs/aquacheck/internal/domain"
)

func TestExtract_SingleReadings(t *testing.T) {
	tests := []struct {
		name  string
		line  string
		param domain.ParameterKey
		want  float64
	}{
		{"labelled value", "calcium: 22.5 mg", domain.ParamCalcium, 22.5},
		{"uppercase input is matched after lowering", "CALCIUM 22.5", domain.ParamCalcium, 22.5},
		{"symbol alias", "na: 8", domain.ParamSodium, 8},
		{"comma decimal separator", "magnesium: 6,5", domain.ParamMagnesium, 6.5},
		{"ppm reads as mg", "tds: 120 ppm", domain.ParamTDS, 120},
		{"grams convert to mg", "bicarbonate: 0.3 g", domain.ParamBicarbonate, 300},
		{"micrograms convert to mg", "fluoride: 500 µg", domain.ParamFluoride, 0.5},
		{"ug spelling converts too", "fluoride: 500 ug", domain.ParamFluoride, 0.5},
		{"missing unit defaults to mg", "chloride 45", domain.ParamChloride, 45},
		{"ph has no unit conversion", "ph: 7.2", domain.ParamPH, 7.2},
		{"multi word alias", "total dissolved solids 250", domain.ParamTDS, 250},
		{"value before keyword", "120 mg tds", domain.ParamTDS, 120},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(tt.line)
			assert.Equal(t, map[domain.ParameterKey]float64{tt.param: tt.want}, got)
		})
	}
}

func TestExtract_FirstOccurrenceWins(t *testing.T) {
	got := Extract("calcium: 22.5\ncalcium: 40")
	assert.Equal(t, 22.5, got[domain.ParamCalcium])
}

func TestExtract_OneReadingPerLine(t *testing.T) {
	// Both keywords are on the line, but a line carries one numeric token
	// and the first matching parameter in scan order claims it.
	got := Extract("calcium and magnesium 15")
	assert.Equal(t, map[domain.ParameterKey]float64{domain.ParamCalcium: 15}, got)
}

func TestExtract_UnitPositionIsNotAKeyword(t *testing.T) {
	// "mg" directly after a number is the milligram unit, not magnesium.
	got := Extract("sodium 20 mg")
	assert.Equal(t, map[domain.ParameterKey]float64{domain.ParamSodium: 20}, got)
	assert.NotContains(t, got, domain.ParamMagnesium)

	// At the start of a line "mg" is a keyword again.
	got = Extract("mg 12")
	assert.Equal(t, map[domain.ParameterKey]float64{domain.ParamMagnesium: 12}, got)
}

func TestExtract_TokenBoundaries(t *testing.T) {
	// "ca" inside "bicarbonate" or "k" inside "milk" must not match.
	got := Extract("bicarbonate: 150")
	assert.Equal(t, map[domain.ParameterKey]float64{domain.ParamBicarbonate: 150}, got)

	got = Extract("milk solids 5")
	assert.Empty(t, got)
}

func TestExtract_KeywordWithoutValue(t *testing.T) {
	// A keyword line with no number records nothing; a later line may still
	// supply the value.
	got := Extract("calcium\ncalcium: 30")
	assert.Equal(t, map[domain.ParameterKey]float64{domain.ParamCalcium: 30}, got)
}

func TestExtract_NoData(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty input", ""},
		{"no keywords", "best before 12 months"},
		{"no numbers", "calcium magnesium sodium"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Empty(t, Extract(tt.input))
		})
	}
}

func TestExtract_FullLabel(t *testing.T) {
	label := Normalize(`Bisleri Mineral Water
Calcium: 22.5 mg
Magnesium: 6,5 mg
Sodium 8 mg
TDS: 120 ppm
pH: 7.2`)

	got := Extract(label)

	assert.Equal(t, map[domain.ParameterKey]float64{
		domain.ParamCalcium:   22.5,
		domain.ParamMagnesium: 6.5,
		domain.ParamSodium:    8,
		domain.ParamTDS:       120,
		domain.ParamPH:        7.2,
	}, got)
}

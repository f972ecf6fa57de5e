package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/unicode/norm"

	"github.com/riverlabs/aquacheck/internal/domain"
)

func TestCheckBrand_Recognized(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"canonical name", "Bisleri Mineral Water\nCalcium: 22.5", "Bisleri"},
		{"case insensitive", "BISLERI mineral water", "Bisleri"},
		{"name mid-text", "packaged by kinley bottlers", "Kinley"},
		{"devanagari name", "बिसलेरी पानी", "Bisleri"},
		{"two word name", "Rail Neer packaged drinking water", "Rail Neer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verdict := CheckBrand(tt.text)

			assert.Equal(t, domain.BrandRecognized, verdict.Status)
			assert.NotNil(t, verdict.Matched)
			assert.Equal(t, tt.want, verdict.Matched.CanonicalName)
			assert.Contains(t, verdict.Message, tt.want)
		})
	}
}

func TestCheckBrand_DevanagariComposition(t *testing.T) {
	// Matching must not depend on how the recognizer composed the
	// Devanagari text, so decompose the name before checking.
	decomposed := norm.NFD.String("बिसलेरी")

	verdict := CheckBrand(decomposed)

	assert.Equal(t, domain.BrandRecognized, verdict.Status)
	assert.Equal(t, "Bisleri", verdict.Matched.CanonicalName)
}

func TestCheckBrand_RegistryOrderBreaksTies(t *testing.T) {
	// Both brands occur; the earlier registry entry wins regardless of
	// position in the text.
	verdict := CheckBrand("kinley water bottled near the bisleri plant")

	assert.Equal(t, domain.BrandRecognized, verdict.Status)
	assert.Equal(t, "Bisleri", verdict.Matched.CanonicalName)
}

func TestCheckBrand_Unrecognized(t *testing.T) {
	verdict := CheckBrand("AquaPure Premium\nCalcium: 20 mg")

	assert.Equal(t, domain.BrandUnrecognized, verdict.Status)
	assert.Nil(t, verdict.Matched)
	assert.Equal(t, "AquaPure Premium", verdict.EvidenceLine)
	assert.Contains(t, verdict.Message, "counterfeit")
}

func TestCheckBrand_EvidenceLineSkipsShortLines(t *testing.T) {
	verdict := CheckBrand("ok\nXY\nSparkle Water Co")

	assert.Equal(t, domain.BrandUnrecognized, verdict.Status)
	assert.Equal(t, "Sparkle Water Co", verdict.EvidenceLine)
}

func TestCheckBrand_EmptyText(t *testing.T) {
	verdict := CheckBrand("")

	assert.Equal(t, domain.BrandUnrecognized, verdict.Status)
	assert.Empty(t, verdict.EvidenceLine)
}

func TestMatchBrandName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{"exact canonical", "Bisleri", "Bisleri", true},
		{"case folded", "bisleri", "Bisleri", true},
		{"surrounding whitespace", "  Kinley ", "Kinley", true},
		{"localized", "बिसलेरी", "Bisleri", true},
		{"substring is not a match", "Bisleri Mineral Water", "", false},
		{"unknown brand", "AquaPure", "", false},
		{"empty input", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry, ok := MatchBrandName(tt.input)

			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, entry.CanonicalName)
			}
		})
	}
}

func TestBrandRegistry_ReturnsCopy(t *testing.T) {
	reg := BrandRegistry()
	assert.NotEmpty(t, reg)

	reg[0].CanonicalName = "Tampered"

	fresh := BrandRegistry()
	assert.Equal(t, "Bisleri", fresh[0].CanonicalName)
}

package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty input", "", ""},
		{"plain text unchanged", "calcium: 22.5 mg", "calcium: 22.5 mg"},
		{"collapses spaces and tabs", "calcium \t  22.5", "calcium 22.5"},
		{"noise characters become separators", "calcium* 22.5 (mg)", "calcium 22.5 mg"},
		{"adjacent noise collapses to one space", "TDS **//** 120", "TDS 120"},
		{"preserves line breaks", "calcium: 22.5\nmagnesium: 6.5", "calcium: 22.5\nmagnesium: 6.5"},
		{"crlf becomes single newline", "ph: 7.2\r\ntds: 120", "ph: 7.2\ntds: 120"},
		{"whitespace run with newline is a newline", "calcium 20  \n  sodium 8", "calcium 20\nsodium 8"},
		{"trims leading and trailing whitespace", "  \n calcium 20 \n ", "calcium 20"},
		{"keeps percent comma hyphen colon", "na-k: 1,5 %", "na-k: 1,5 %"},
		{"keeps devanagari letters", "बिसलेरी mineral water", "बिसलेरी mineral water"},
		{"only noise yields empty", "***###", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"Calcium: 22.5 mg/L\nMagnesium – 6,5\n\npH* 7.2",
		"  TDS   120 ppm  \r\n  sodium 8 ",
		"बिसलेरी\nपानी 100%",
	}

	for _, input := range inputs {
		once := Normalize(input)
		assert.Equal(t, once, Normalize(once), "normalizing twice must equal normalizing once")
	}
}

// Package analyzer implements the label text analysis engine: text
// normalization, mineral extraction, brand authenticity checking and
// classification of readings against a regulatory standard.
//
// Every function in this package is pure and safe for concurrent use; none
// mutate their inputs or any shared state.
package analyzer

import (
	"strings"
	"unicode"
)

// Normalize strips recognition noise from raw label text.
//
// Characters outside the set {letters, digits, '.', ',', '-', ':', '%',
// whitespace} become a single space. Runs of whitespace collapse to one
// space, except that runs containing a line break collapse to a single
// newline so the extractor's per-line semantics survive normalization.
// Leading and trailing whitespace is trimmed. Normalize is total and
// idempotent; empty input yields empty output.
func Normalize(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))

	pendingSpace := false
	pendingNewline := false
	wrote := false

	flush := func() {
		if !wrote {
			pendingSpace, pendingNewline = false, false
			return
		}
		if pendingNewline {
			b.WriteByte('\n')
		} else if pendingSpace {
			b.WriteByte(' ')
		}
		pendingSpace, pendingNewline = false, false
	}

	for _, r := range raw {
		switch {
		case r == '\n' || r == '\r':
			pendingSpace = true
			pendingNewline = true
		case unicode.IsSpace(r):
			pendingSpace = true
		case allowedRune(r):
			flush()
			b.WriteRune(r)
			wrote = true
		default:
			// Noise character: counts as a separator.
			pendingSpace = true
		}
	}

	return b.String()
}

// allowedRune reports whether a rune survives normalization. Letters include
// non-Latin scripts so localized brand names pass through intact.
func allowedRune(r rune) bool {
	if unicode.IsLetter(r) || unicode.IsDigit(r) {
		return true
	}
	switch r {
	case '.', ',', '-', ':', '%':
		return true
	}
	return false
}

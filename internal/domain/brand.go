// Package domain contains core business types and interfaces.
//
// This file defines the brand-authenticity types used by the brand checker.
package domain

// =============================================================================
// Brand Status
// =============================================================================

// BrandStatus classifies a label's brand against the registry of known
// genuine bottled-water brands.
type BrandStatus string

const (
	// BrandRecognized indicates the text matched a registry entry.
	BrandRecognized BrandStatus = "recognized"

	// BrandUnrecognized indicates no registry entry matched; the label may be
	// fake or mislabelled.
	BrandUnrecognized BrandStatus = "unrecognized"
)

// String returns the string representation of the brand status.
func (s BrandStatus) String() string {
	return string(s)
}

// =============================================================================
// Brand Types
// =============================================================================

// BrandEntry is one known-genuine brand with its two language variants.
type BrandEntry struct {
	// CanonicalName is the Latin-script brand name, matched
	// case-insensitively.
	CanonicalName string `json:"canonical_name"`

	// LocalizedName is the Devanagari variant, matched as an exact substring.
	LocalizedName string `json:"localized_name"`
}

// BrandVerdict is the outcome of checking label text against the brand
// registry.
type BrandVerdict struct {
	Status BrandStatus `json:"status"`

	// Matched is the winning registry entry when Status is BrandRecognized.
	Matched *BrandEntry `json:"matched,omitempty"`

	// EvidenceLine is the first plausible brand-bearing line when no registry
	// entry matched. Empty when no such line exists.
	EvidenceLine string `json:"evidence_line,omitempty"`

	// Message is the human-readable explanation of the verdict.
	Message string `json:"message"`
}

// Recognized reports whether the verdict matched a registry brand.
func (v BrandVerdict) Recognized() bool {
	return v.Status == BrandRecognized
}

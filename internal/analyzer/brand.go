package analyzer

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/riverlabs/aquacheck/internal/domain"
)

// brandRegistry lists the packaged water brands the checker recognizes, in
// match priority order. Earlier entries win when a label mentions more than
// one brand. Localized names are stored in NFC so byte comparison works
// regardless of how the recognizer composed the Devanagari text.
var brandRegistry = []domain.BrandEntry{
	{CanonicalName: "Bisleri", LocalizedName: "बिसलेरी"},
	{CanonicalName: "Kinley", LocalizedName: "किंले"},
	{CanonicalName: "Aquafina", LocalizedName: "एक्वाफ़िना"},
	{CanonicalName: "Bailley", LocalizedName: "बेली"},
	{CanonicalName: "Himalayan", LocalizedName: "हिमालयन"},
	{CanonicalName: "Rail Neer", LocalizedName: "रेल नीर"},
	{CanonicalName: "Oxyrich", LocalizedName: "ऑक्सीरीच"},
	{CanonicalName: "Vedica", LocalizedName: "वेदिका"},
	{CanonicalName: "Bailey", LocalizedName: "बेली"},
	{CanonicalName: "Qua", LocalizedName: "क्वा"},
}

// BrandRegistry returns a copy of the recognized brand list, in priority
// order. Callers may not mutate the checker's view of the registry.
func BrandRegistry() []domain.BrandEntry {
	out := make([]domain.BrandEntry, len(brandRegistry))
	copy(out, brandRegistry)
	return out
}

// CheckBrand scans normalized label text for a known brand name.
//
// Canonical names match case-insensitively; localized names match after NFC
// normalization of both sides. The first registry entry found anywhere in the
// text wins. When nothing matches, the verdict carries an evidence line: the
// first line longer than two characters, which on real labels is usually the
// printed product name.
func CheckBrand(normalized string) domain.BrandVerdict {
	lower := strings.ToLower(normalized)
	nfc := norm.NFC.String(normalized)

	for i := range brandRegistry {
		entry := brandRegistry[i]
		if strings.Contains(lower, strings.ToLower(entry.CanonicalName)) ||
			strings.Contains(nfc, entry.LocalizedName) {
			return domain.BrandVerdict{
				Status:  domain.BrandRecognized,
				Matched: &entry,
				Message: "Brand '" + entry.CanonicalName + "' is a recognized packaged water brand.",
			}
		}
	}

	return domain.BrandVerdict{
		Status:       domain.BrandUnrecognized,
		EvidenceLine: evidenceLine(normalized),
		Message:      "Brand not recognized. The product may be counterfeit or unregistered.",
	}
}

// evidenceLine picks the line most likely to carry the unrecognized brand
// name: the first line with more than two characters.
func evidenceLine(normalized string) string {
	for _, line := range strings.Split(normalized, "\n") {
		line = strings.TrimSpace(line)
		if len([]rune(line)) > 2 {
			return line
		}
	}
	return ""
}

// MatchBrandName resolves a manually entered brand name against the
// registry. Unlike CheckBrand it requires the whole input to equal a
// registry name, not merely contain one.
func MatchBrandName(name string) (domain.BrandEntry, bool) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return domain.BrandEntry{}, false
	}
	nfc := norm.NFC.String(trimmed)
	for _, entry := range brandRegistry {
		if strings.EqualFold(trimmed, entry.CanonicalName) || nfc == entry.LocalizedName {
			return entry, true
		}
	}
	return domain.BrandEntry{}, false
}

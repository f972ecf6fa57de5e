// Package domain contains core business types and interfaces.
//
// This file defines the regulatory standard vocabulary: which guideline set a
// classification runs against and the per-parameter rule shapes.
package domain

import "fmt"

// =============================================================================
// Standard Identifiers
// =============================================================================

// StandardID names a regulatory/guideline rule set.
type StandardID string

const (
	// StandardWHO is the international guideline set
	// ("Guidelines for Drinking-water Quality", World Health Organization).
	StandardWHO StandardID = "who"

	// StandardFSSAI is the national guideline set
	// (FSSAI packaged-water regulations / IS 10500:2012).
	StandardFSSAI StandardID = "fssai"
)

// String returns the string representation of the standard identifier.
func (s StandardID) String() string {
	return string(s)
}

// IsValid returns true if the standard identifier is a recognized value.
func (s StandardID) IsValid() bool {
	switch s {
	case StandardWHO, StandardFSSAI:
		return true
	}
	return false
}

// =============================================================================
// Rules
// =============================================================================

// Range is one slice of a range-partition rule. Both bounds are inclusive.
type Range struct {
	Low      float64
	High     float64
	Status   ParameterStatus
	Severity Severity
}

// Contains reports whether v falls inside the range (inclusive both ends).
func (r Range) Contains(v float64) bool {
	return v >= r.Low && v <= r.High
}

// StandardRule is the acceptance rule for one (standard, parameter) pair.
//
// A rule is either a min/max band (Ranges empty: value below Min is Low,
// above Max is High, otherwise Optimal) or an ordered range partition
// (Ranges non-empty: the first range containing the value decides status and
// severity, used for qualitative gradings such as pH acidic/optimal/alkaline).
type StandardRule struct {
	Min    float64
	Max    float64
	Unit   string
	Impact string  // short description of what the parameter affects
	Ranges []Range // non-empty for range-partition rules
}

// IsPartition reports whether the rule is a range partition rather than a
// min/max band.
func (r StandardRule) IsPartition() bool {
	return len(r.Ranges) > 0
}

// ValidatePartition checks that a range-partition rule is well formed:
// ranges are ordered, mutually exclusive except for shared endpoints, and
// cover a contiguous domain. Malformed tables are a programming error and
// are rejected when the standards repository loads.
func (r StandardRule) ValidatePartition() error {
	if !r.IsPartition() {
		return nil
	}
	for i, rg := range r.Ranges {
		if rg.Low > rg.High {
			return fmt.Errorf("range %d: low %v above high %v", i, rg.Low, rg.High)
		}
		if i == 0 {
			continue
		}
		prev := r.Ranges[i-1]
		if rg.Low < prev.High {
			return fmt.Errorf("range %d: overlaps previous (starts %v before %v)", i, rg.Low, prev.High)
		}
		if rg.Low > prev.High {
			return fmt.Errorf("range %d: gap between %v and %v", i, prev.High, rg.Low)
		}
	}
	return nil
}

// Package domain contains core business types and interfaces.
//
// This file defines the classification result types: per-parameter verdicts,
// their severities and the aggregated drinkability verdict.
package domain

// =============================================================================
// Parameter Status
// =============================================================================

// ParameterStatus describes how a single reading relates to its rule.
type ParameterStatus string

const (
	// StatusOptimal indicates the value is within the recommended band or
	// the optimal slice of a range partition.
	StatusOptimal ParameterStatus = "Optimal"

	// StatusLow indicates the value is below a band rule's minimum.
	StatusLow ParameterStatus = "Low"

	// StatusHigh indicates the value exceeds a band rule's maximum.
	StatusHigh ParameterStatus = "High"

	// StatusAcidic and StatusAlkaline are the out-of-range slices of the pH
	// range partition.
	StatusAcidic   ParameterStatus = "Acidic"
	StatusAlkaline ParameterStatus = "Alkaline"

	// StatusUnknown indicates a range-partition rule had no slice containing
	// the value (value outside the covered domain).
	StatusUnknown ParameterStatus = "Unknown"
)

// String returns the string representation of the status.
func (s ParameterStatus) String() string {
	return string(s)
}

// =============================================================================
// Severity
// =============================================================================

// Severity is the ordinal weight a per-parameter deviation contributes to the
// overall verdict: none < warning < issue.
type Severity int

const (
	// SeverityNone marks a reading that complies with its rule, or a reading
	// the rule could not place (Unknown status is neutral).
	SeverityNone Severity = iota

	// SeverityWarning marks a soft deviation (e.g. below a recommended
	// minimum). Any warning downgrades the overall verdict to NeedsAttention.
	SeverityWarning

	// SeverityIssue marks a hard violation (e.g. above a recommended
	// maximum). Any issue makes the overall verdict Unsuitable.
	SeverityIssue
)

// String returns the string representation of the severity.
func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityIssue:
		return "issue"
	default:
		return "none"
	}
}

// =============================================================================
// Overall Verdict
// =============================================================================

// OverallVerdict is the aggregate drinkability classification.
type OverallVerdict string

const (
	// OverallOptimal: every evaluated parameter complied with its rule.
	OverallOptimal OverallVerdict = "Optimal"

	// OverallNeedsAttention: at least one warning, no issues.
	OverallNeedsAttention OverallVerdict = "NeedsAttention"

	// OverallUnsuitable: at least one issue-severity violation.
	OverallUnsuitable OverallVerdict = "Unsuitable"
)

// String returns the string representation of the overall verdict.
func (v OverallVerdict) String() string {
	return string(v)
}

// Message returns the human-readable summary for the overall verdict.
func (v OverallVerdict) Message() string {
	switch v {
	case OverallOptimal:
		return "Water is safe for drinking based on provided parameters."
	case OverallNeedsAttention:
		return "Some parameters are outside optimal ranges. Proceed with caution."
	case OverallUnsuitable:
		return "Water is not safe for drinking due to critical parameter violations."
	default:
		return ""
	}
}

// =============================================================================
// Analysis Result
// =============================================================================

// ParameterVerdict is the classification of a single reading against the
// selected standard.
type ParameterVerdict struct {
	Value    float64         `json:"value"`
	Unit     string          `json:"unit"`
	Status   ParameterStatus `json:"status"`
	Severity Severity        `json:"severity"`
	Message  string          `json:"message"`
	Impact   string          `json:"impact,omitempty"`
}

// AnalysisResult is the outcome of classifying a set of readings against one
// standard. Created fresh per invocation and never mutated afterwards.
//
// Overall is nil when nothing was evaluated (empty readings, or no reading
// had a rule in the selected standard); callers must distinguish that from
// an Optimal verdict.
type AnalysisResult struct {
	Standard     StandardID                        `json:"standard"`
	PerParameter map[ParameterKey]ParameterVerdict `json:"per_parameter"`
	Overall      *OverallVerdict                   `json:"overall,omitempty"`
}

// Evaluated returns the number of readings that were matched against a rule.
func (r *AnalysisResult) Evaluated() int {
	return len(r.PerParameter)
}

// HasOverall reports whether an overall verdict exists.
func (r *AnalysisResult) HasOverall() bool {
	return r.Overall != nil
}

package analyzer

import (
	"fmt"

	"github.com/riverlabs/aquacheck/internal/domain"
	"github.com/riverlabs/aquacheck/internal/standards"
)

// Classify evaluates a set of readings against one regulatory standard.
//
// Readings with no rule in the selected standard are skipped, not failed.
// Band rules grade Low (warning) below the minimum, High (issue) above the
// maximum and Optimal in between; range-partition rules take the status and
// severity of the first range containing the value, or Unknown with neutral
// severity when no range does. The overall verdict aggregates the worst
// severity seen: any issue makes the water Unsuitable, otherwise any warning
// means NeedsAttention, otherwise Optimal. When nothing was evaluated the
// result has no overall verdict at all.
//
// The readings map is never mutated and the result is freshly allocated, so
// the same readings can be classified against both standards concurrently.
func Classify(readings map[domain.ParameterKey]float64, std domain.StandardID) domain.AnalysisResult {
	result := domain.AnalysisResult{
		Standard:     std,
		PerParameter: make(map[domain.ParameterKey]domain.ParameterVerdict),
	}

	worst := domain.SeverityNone
	for param, value := range readings {
		rule, ok := standards.Rule(std, param)
		if !ok {
			continue
		}
		verdict := classifyOne(value, rule)
		result.PerParameter[param] = verdict
		if verdict.Severity > worst {
			worst = verdict.Severity
		}
	}

	if len(result.PerParameter) == 0 {
		return result
	}

	overall := domain.OverallOptimal
	switch worst {
	case domain.SeverityIssue:
		overall = domain.OverallUnsuitable
	case domain.SeverityWarning:
		overall = domain.OverallNeedsAttention
	}
	result.Overall = &overall
	return result
}

// classifyOne grades a single value against its rule.
func classifyOne(value float64, rule domain.StandardRule) domain.ParameterVerdict {
	v := domain.ParameterVerdict{
		Value:  value,
		Unit:   rule.Unit,
		Impact: rule.Impact,
	}

	if rule.IsPartition() {
		for _, rg := range rule.Ranges {
			if rg.Contains(value) {
				v.Status = rg.Status
				v.Severity = rg.Severity
				v.Message = partitionMessage(rg.Status)
				return v
			}
		}
		// Value outside the covered domain. Neutral: it neither confirms
		// compliance nor counts as a violation.
		v.Status = domain.StatusUnknown
		v.Severity = domain.SeverityNone
		v.Message = "Value is outside the range covered by this standard."
		return v
	}

	switch {
	case value < rule.Min:
		v.Status = domain.StatusLow
		v.Severity = domain.SeverityWarning
		v.Message = fmt.Sprintf("Below recommended minimum (%g %s).", rule.Min, rule.Unit)
	case value > rule.Max:
		v.Status = domain.StatusHigh
		v.Severity = domain.SeverityIssue
		v.Message = fmt.Sprintf("Exceeds recommended maximum (%g %s).", rule.Max, rule.Unit)
	default:
		v.Status = domain.StatusOptimal
		v.Severity = domain.SeverityNone
		v.Message = "Within recommended range."
	}
	return v
}

func partitionMessage(status domain.ParameterStatus) string {
	switch status {
	case domain.StatusOptimal:
		return "Within recommended range."
	case domain.StatusAcidic:
		return "Water is acidic. May corrode pipes and affect taste."
	case domain.StatusAlkaline:
		return "Water is alkaline. May taste bitter and indicate contamination."
	default:
		return "Outside recommended range."
	}
}

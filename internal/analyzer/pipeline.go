package analyzer

import (
	"fmt"

	"github.com/riverlabs/aquacheck/internal/domain"
)

// LabelAnalysis is the combined output of the full label pipeline.
type LabelAnalysis struct {
	NormalizedText string                          `json:"normalized_text"`
	Readings       map[domain.ParameterKey]float64 `json:"readings"`
	Brand          domain.BrandVerdict             `json:"brand"`
	Result         domain.AnalysisResult           `json:"result"`
}

// AnalyzeLabel runs the whole pipeline on raw recognized text: normalize,
// extract readings, check the brand and classify against the standard.
//
// AnalyzeLabel never returns an error. Text from which nothing could be
// extracted produces a result with zero evaluated parameters and no overall
// verdict; callers decide whether that is worth reporting to the user.
func AnalyzeLabel(raw string, std domain.StandardID) LabelAnalysis {
	normalized := Normalize(raw)
	readings := Extract(normalized)
	return LabelAnalysis{
		NormalizedText: normalized,
		Readings:       readings,
		Brand:          CheckBrand(normalized),
		Result:         Classify(readings, std),
	}
}

// ValidateReading checks a manually entered reading before classification.
// Values must be non-negative, and pH must sit on the 0 to 14 scale.
func ValidateReading(param domain.ParameterKey, value float64) error {
	const op = "analyzer.validate_reading"
	if !param.IsValid() {
		return domain.Invalid(op, fmt.Sprintf("unknown parameter %q", param))
	}
	if value < 0 {
		return domain.Invalid(op, fmt.Sprintf("%s must not be negative", param.DisplayName()))
	}
	if param == domain.ParamPH && value > 14 {
		return domain.Invalid(op, "pH must be between 0 and 14")
	}
	return nil
}

// ValidateReadings validates a full set of manual readings and requires at
// least one of them.
func ValidateReadings(readings map[domain.ParameterKey]float64) error {
	const op = "analyzer.validate_readings"
	if len(readings) == 0 {
		return domain.Invalid(op, "at least one reading is required")
	}
	for param, value := range readings {
		if err := ValidateReading(param, value); err != nil {
			return err
		}
	}
	return nil
}

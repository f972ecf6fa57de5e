// Package domain contains core business types and interfaces.
//
// This file defines the water-quality parameter vocabulary shared by the
// extractor, the standards repository and the classifier.
package domain

// =============================================================================
// Parameter Keys
// =============================================================================

// ParameterKey identifies a single measurable water-quality attribute.
type ParameterKey string

// Label parameters: the minerals and properties printed on bottled-water
// labels and recoverable by the extractor.
const (
	ParamCalcium     ParameterKey = "calcium"
	ParamMagnesium   ParameterKey = "magnesium"
	ParamPotassium   ParameterKey = "potassium"
	ParamSodium      ParameterKey = "sodium"
	ParamBicarbonate ParameterKey = "bicarbonate"
	ParamChloride    ParameterKey = "chloride"
	ParamSulphate    ParameterKey = "sulphate"
	ParamNitrate     ParameterKey = "nitrate"
	ParamFluoride    ParameterKey = "fluoride"
	ParamTDS         ParameterKey = "tds"
	ParamPH          ParameterKey = "ph"
)

// Extended parameters: the measurements entered through the standalone
// water-quality form and fed to the potability scorer. Not extracted from
// labels.
const (
	ParamHardness        ParameterKey = "hardness"
	ParamSolids          ParameterKey = "solids"
	ParamChloramines     ParameterKey = "chloramines"
	ParamSulfate         ParameterKey = "sulfate"
	ParamConductivity    ParameterKey = "conductivity"
	ParamOrganicCarbon   ParameterKey = "organic_carbon"
	ParamTrihalomethanes ParameterKey = "trihalomethanes"
	ParamTurbidity       ParameterKey = "turbidity"
)

// String returns the string representation of the parameter key.
func (p ParameterKey) String() string {
	return string(p)
}

// IsValid returns true if the parameter key is a recognized value.
func (p ParameterKey) IsValid() bool {
	switch p {
	case ParamCalcium, ParamMagnesium, ParamPotassium, ParamSodium,
		ParamBicarbonate, ParamChloride, ParamSulphate, ParamNitrate,
		ParamFluoride, ParamTDS, ParamPH,
		ParamHardness, ParamSolids, ParamChloramines, ParamSulfate,
		ParamConductivity, ParamOrganicCarbon, ParamTrihalomethanes,
		ParamTurbidity:
		return true
	}
	return false
}

// LabelParameters lists the parameters the extractor can recover from label
// text, in extraction scan order.
func LabelParameters() []ParameterKey {
	return []ParameterKey{
		ParamCalcium, ParamMagnesium, ParamPotassium, ParamSodium,
		ParamBicarbonate, ParamChloride, ParamSulphate, ParamNitrate,
		ParamFluoride, ParamTDS, ParamPH,
	}
}

// FormParameters lists the extended parameters accepted by the standalone
// water-quality form and the potability scorer.
func FormParameters() []ParameterKey {
	return []ParameterKey{
		ParamPH, ParamHardness, ParamSolids, ParamChloramines, ParamSulfate,
		ParamConductivity, ParamOrganicCarbon, ParamTrihalomethanes,
		ParamTurbidity,
	}
}

// =============================================================================
// Canonical Units
// =============================================================================

// Unit tokens after normalization. Every parameter has exactly one canonical
// unit family; mineral concentrations are always reported in mg/L.
const (
	UnitMilligrams   = "mg/L"
	UnitMicrosiemens = "µS/cm"
	UnitNTU          = "NTU"
	UnitPH           = "pH units"
)

// CanonicalUnit returns the unit a parameter's values are reported in once
// extraction and unit normalization are done.
func (p ParameterKey) CanonicalUnit() string {
	switch p {
	case ParamPH:
		return UnitPH
	case ParamConductivity:
		return UnitMicrosiemens
	case ParamTurbidity:
		return UnitNTU
	default:
		return UnitMilligrams
	}
}

// DisplayName returns the human-readable name for a parameter
// (e.g. "organic_carbon" -> "Organic Carbon", "ph" -> "pH").
func (p ParameterKey) DisplayName() string {
	switch p {
	case ParamPH:
		return "pH"
	case ParamTDS:
		return "TDS"
	case ParamOrganicCarbon:
		return "Organic Carbon"
	case ParamTrihalomethanes:
		return "Trihalomethanes"
	default:
		s := string(p)
		if s == "" {
			return s
		}
		return string(s[0]-'a'+'A') + s[1:]
	}
}

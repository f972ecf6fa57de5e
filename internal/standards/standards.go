// Package standards holds the regulatory rule tables used to classify water
// quality readings.
//
// Two guideline sets are supported: WHO ("Guidelines for Drinking-water
// Quality") and FSSAI (packaged drinking water regulations, aligned with
// IS 10500:2012). The tables are immutable compile-time data loaded once at
// process start; there is no mutation API and no locking concern. Malformed
// range partitions are rejected at init time rather than papered over by
// first-match tie-breaks during evaluation.
package standards

import (
	"fmt"
	"sort"

	"github.com/riverlabs/aquacheck/internal/domain"
)

// phPartition is the qualitative pH grading shared by both standards.
// Slices share endpoints and the first containing slice wins, so a reading
// sitting exactly on a boundary grades with the lower slice: 6.5 is Acidic,
// 8.5 is Optimal.
func phPartition() []domain.Range {
	return []domain.Range{
		{Low: 0, High: 6.5, Status: domain.StatusAcidic, Severity: domain.SeverityIssue},
		{Low: 6.5, High: 8.5, Status: domain.StatusOptimal, Severity: domain.SeverityNone},
		{Low: 8.5, High: 14, Status: domain.StatusAlkaline, Severity: domain.SeverityIssue},
	}
}

var tables = map[domain.StandardID]map[domain.ParameterKey]domain.StandardRule{
	domain.StandardWHO: {
		// Label parameters
		domain.ParamPH:          {Unit: domain.UnitPH, Impact: "Affects taste and corrosivity", Ranges: phPartition()},
		domain.ParamCalcium:     {Min: 20, Max: 200, Unit: domain.UnitMilligrams, Impact: "Bone health and taste"},
		domain.ParamMagnesium:   {Min: 10, Max: 100, Unit: domain.UnitMilligrams, Impact: "Cardiovascular health"},
		domain.ParamPotassium:   {Min: 0, Max: 12, Unit: domain.UnitMilligrams, Impact: "Electrolyte balance"},
		domain.ParamSodium:      {Min: 0, Max: 200, Unit: domain.UnitMilligrams, Impact: "Blood pressure at high levels"},
		domain.ParamBicarbonate: {Min: 30, Max: 600, Unit: domain.UnitMilligrams, Impact: "Buffering and taste"},
		domain.ParamChloride:    {Min: 0, Max: 250, Unit: domain.UnitMilligrams, Impact: "Salty taste above limit"},
		domain.ParamSulphate:    {Min: 0, Max: 250, Unit: domain.UnitMilligrams, Impact: "Laxative effect at high levels"},
		domain.ParamNitrate:     {Min: 0, Max: 50, Unit: domain.UnitMilligrams, Impact: "Risk to infants above limit"},
		domain.ParamFluoride:    {Min: 0, Max: 1.5, Unit: domain.UnitMilligrams, Impact: "Dental health; fluorosis above limit"},
		domain.ParamTDS:         {Min: 50, Max: 1000, Unit: domain.UnitMilligrams, Impact: "Taste and health"},

		// Extended form parameters
		domain.ParamHardness:        {Min: 60, Max: 500, Unit: domain.UnitMilligrams, Impact: "Affects taste and scaling"},
		domain.ParamSolids:          {Min: 50, Max: 1000, Unit: domain.UnitMilligrams, Impact: "Taste and health"},
		domain.ParamChloramines:     {Min: 0, Max: 4, Unit: domain.UnitMilligrams, Impact: "Disinfectant safety"},
		domain.ParamSulfate:         {Min: 0, Max: 250, Unit: domain.UnitMilligrams, Impact: "Laxative effect at high levels"},
		domain.ParamConductivity:    {Min: 100, Max: 2000, Unit: domain.UnitMicrosiemens, Impact: "Indicates dissolved ions"},
		domain.ParamOrganicCarbon:   {Min: 0, Max: 10, Unit: domain.UnitMilligrams, Impact: "Organic contamination"},
		domain.ParamTrihalomethanes: {Min: 0, Max: 0.1, Unit: domain.UnitMilligrams, Impact: "Potential carcinogen"},
		domain.ParamTurbidity:       {Min: 0, Max: 5, Unit: domain.UnitNTU, Impact: "Affects clarity and safety"},
	},
	domain.StandardFSSAI: {
		// Label parameters
		domain.ParamPH:          {Unit: domain.UnitPH, Impact: "Affects taste and corrosivity", Ranges: phPartition()},
		domain.ParamCalcium:     {Min: 0, Max: 75, Unit: domain.UnitMilligrams, Impact: "Bone health and taste"},
		domain.ParamMagnesium:   {Min: 0, Max: 30, Unit: domain.UnitMilligrams, Impact: "Cardiovascular health"},
		domain.ParamPotassium:   {Min: 0, Max: 12, Unit: domain.UnitMilligrams, Impact: "Electrolyte balance"},
		domain.ParamSodium:      {Min: 0, Max: 200, Unit: domain.UnitMilligrams, Impact: "Blood pressure at high levels"},
		domain.ParamBicarbonate: {Min: 30, Max: 500, Unit: domain.UnitMilligrams, Impact: "Buffering and taste"},
		domain.ParamChloride:    {Min: 0, Max: 250, Unit: domain.UnitMilligrams, Impact: "Salty taste above limit"},
		domain.ParamSulphate:    {Min: 0, Max: 200, Unit: domain.UnitMilligrams, Impact: "Laxative effect at high levels"},
		domain.ParamNitrate:     {Min: 0, Max: 45, Unit: domain.UnitMilligrams, Impact: "Risk to infants above limit"},
		domain.ParamFluoride:    {Min: 0, Max: 1.0, Unit: domain.UnitMilligrams, Impact: "Dental health; fluorosis above limit"},
		domain.ParamTDS:         {Min: 0, Max: 500, Unit: domain.UnitMilligrams, Impact: "Taste and health"},

		// Extended form parameters
		domain.ParamHardness:        {Min: 30, Max: 200, Unit: domain.UnitMilligrams, Impact: "Affects taste and scaling"},
		domain.ParamSolids:          {Min: 30, Max: 500, Unit: domain.UnitMilligrams, Impact: "Taste and health"},
		domain.ParamChloramines:     {Min: 0, Max: 4, Unit: domain.UnitMilligrams, Impact: "Disinfectant safety"},
		domain.ParamSulfate:         {Min: 0, Max: 200, Unit: domain.UnitMilligrams, Impact: "Laxative effect at high levels"},
		domain.ParamConductivity:    {Min: 50, Max: 1000, Unit: domain.UnitMicrosiemens, Impact: "Indicates dissolved ions"},
		domain.ParamOrganicCarbon:   {Min: 0, Max: 10, Unit: domain.UnitMilligrams, Impact: "Organic contamination"},
		domain.ParamTrihalomethanes: {Min: 0, Max: 0.1, Unit: domain.UnitMilligrams, Impact: "Potential carcinogen"},
		domain.ParamTurbidity:       {Min: 0, Max: 1, Unit: domain.UnitNTU, Impact: "Affects clarity and safety"},
	},
}

func init() {
	if err := Validate(); err != nil {
		panic(fmt.Sprintf("standards: malformed rule table: %v", err))
	}
}

// Rule returns the rule for a (standard, parameter) pair. The second return
// value is false when the parameter has no rule in that standard; such
// readings are excluded from classification rather than treated as errors.
func Rule(std domain.StandardID, param domain.ParameterKey) (domain.StandardRule, bool) {
	table, ok := tables[std]
	if !ok {
		return domain.StandardRule{}, false
	}
	rule, ok := table[param]
	return rule, ok
}

// Parameters returns the parameters covered by a standard, sorted by key for
// deterministic iteration.
func Parameters(std domain.StandardID) []domain.ParameterKey {
	table, ok := tables[std]
	if !ok {
		return nil
	}
	keys := make([]domain.ParameterKey, 0, len(table))
	for k := range table {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Validate checks every range-partition rule for ordering, overlap and gaps.
// Called from init; exported so tests can exercise it directly.
func Validate() error {
	for std, table := range tables {
		for param, rule := range table {
			if err := rule.ValidatePartition(); err != nil {
				return fmt.Errorf("%s/%s: %w", std, param, err)
			}
		}
	}
	return nil
}

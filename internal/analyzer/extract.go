package analyzer

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/riverlabs/aquacheck/internal/domain"
)

// parameterAliases maps each label parameter to its keyword aliases, in match
// priority order. The extractor scans parameters in domain.LabelParameters()
// order; within a line, the first parameter with a matching alias claims the
// line's numeric token.
var parameterAliases = map[domain.ParameterKey][]string{
	domain.ParamCalcium:     {"calcium", "ca", "calc"},
	domain.ParamMagnesium:   {"magnesium", "mg"},
	domain.ParamPotassium:   {"potassium", "k"},
	domain.ParamSodium:      {"sodium", "na"},
	domain.ParamBicarbonate: {"bicarbonate", "hco3"},
	domain.ParamChloride:    {"chloride", "cl"},
	domain.ParamSulphate:    {"sulphate", "sulfate", "so4"},
	domain.ParamNitrate:     {"nitrate", "no3"},
	domain.ParamFluoride:    {"fluoride", "f"},
	domain.ParamTDS:         {"tds", "total dissolved solids"},
	domain.ParamPH:          {"ph"},
}

// Recognized unit tokens following a numeric value. Anything else (or no
// token at all) is treated as the default mg.
var unitTokens = map[string]bool{
	"mg": true, "ppm": true, "g": true, "µg": true, "ug": true,
	"ml": true, "l": true, "units": true,
}

// Extract scans normalized label text line by line and returns a mapping from
// parameter to numeric value for every parameter it could recover.
//
// Matching is case-insensitive. A line contributes at most one reading: its
// first numeric token goes to the first parameter (in scan order) with an
// alias on the line. A keyword with no numeric token on its line records
// nothing; the parameter may still be captured by a later line, but once a
// parameter has a value, later lines never overwrite it.
//
// Unit handling: g multiplies the value by 1000 and µg/ug divide it by 1000
// (both report as mg); ppm is taken as mg for everything except pH; a missing
// unit defaults to mg. Extract never fails: unparseable text yields an empty
// map, which callers must treat as "no data extracted".
func Extract(normalized string) map[domain.ParameterKey]float64 {
	out := make(map[domain.ParameterKey]float64)

	for _, line := range strings.Split(normalized, "\n") {
		line = strings.ToLower(strings.TrimSpace(line))
		if line == "" {
			continue
		}

		value, unit, ok := firstNumericToken(line)
		if !ok {
			continue
		}

	params:
		for _, param := range domain.LabelParameters() {
			for _, alias := range parameterAliases[param] {
				if !matchKeyword(line, alias) {
					continue
				}
				if _, seen := out[param]; !seen {
					out[param] = normalizeUnit(param, value, unit)
				}
				// First keyword match wins the line.
				break params
			}
		}
	}

	return out
}

// matchKeyword reports whether alias occurs in line as a whole token
// (bounded by non-alphanumeric runes). Short symbol aliases that directly
// follow a number are unit tokens, not keywords: "sodium 20 mg" must not
// read as magnesium.
func matchKeyword(line, alias string) bool {
	from := 0
	for {
		i := strings.Index(line[from:], alias)
		if i < 0 {
			return false
		}
		i += from
		if tokenBounded(line, i, len(alias)) && !followsNumber(line, i, alias) {
			return true
		}
		from = i + 1
	}
}

// tokenBounded checks that line[i:i+n] is not embedded in a longer
// letter/digit token.
func tokenBounded(line string, i, n int) bool {
	if i > 0 {
		prev, _ := utf8.DecodeLastRuneInString(line[:i])
		if unicode.IsLetter(prev) || unicode.IsDigit(prev) {
			return false
		}
	}
	if rest := line[i+n:]; rest != "" {
		next, _ := utf8.DecodeRuneInString(rest)
		if unicode.IsLetter(next) || unicode.IsDigit(next) {
			return false
		}
	}
	return true
}

// followsNumber reports whether a short alias sits in unit position: the
// nearest preceding non-space rune is a digit.
func followsNumber(line string, i int, alias string) bool {
	if len(alias) > 3 {
		return false
	}
	for j := i; j > 0; {
		r, size := utf8.DecodeLastRuneInString(line[:j])
		if r == ' ' {
			j -= size
			continue
		}
		return unicode.IsDigit(r)
	}
	return false
}

// firstNumericToken finds the first number on the line and any unit token
// immediately following it. A comma is accepted as decimal separator.
func firstNumericToken(line string) (float64, string, bool) {
	for i := 0; i < len(line); i++ {
		if line[i] < '0' || line[i] > '9' {
			continue
		}
		// Integer part.
		j := i
		for j < len(line) && line[j] >= '0' && line[j] <= '9' {
			j++
		}
		// Optional fractional part: (.|,)digits
		if j+1 < len(line) && (line[j] == '.' || line[j] == ',') &&
			line[j+1] >= '0' && line[j+1] <= '9' {
			j += 2
			for j < len(line) && line[j] >= '0' && line[j] <= '9' {
				j++
			}
		}

		num := strings.ReplaceAll(line[i:j], ",", ".")
		value, err := strconv.ParseFloat(num, 64)
		if err != nil {
			return 0, "", false
		}

		return value, unitAfter(line[j:]), true
	}
	return 0, "", false
}

// unitAfter reads an optional unit token from the text following a number.
func unitAfter(rest string) string {
	rest = strings.TrimLeft(rest, " ")
	end := 0
	for _, r := range rest {
		if !unicode.IsLetter(r) {
			break
		}
		end += len(string(r))
	}
	token := rest[:end]
	if unitTokens[token] {
		return token
	}
	return ""
}

// normalizeUnit converts an extracted value to the parameter's canonical
// unit family.
func normalizeUnit(param domain.ParameterKey, value float64, unit string) float64 {
	if param == domain.ParamPH {
		// pH is unitless; the raw value stands.
		return value
	}
	switch unit {
	case "g":
		return value * 1000
	case "µg", "ug":
		return value / 1000
	default:
		// mg, ppm, missing or irrelevant tokens all read as mg.
		return value
	}
}

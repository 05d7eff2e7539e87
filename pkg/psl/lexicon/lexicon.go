// Package lexicon holds the fixed vocabularies used by both the validator and
// the metrics calculator: unit-bearing number detection, unit aliases, and
// risk-indicating keywords. Keeping them in one place keeps L-03 warnings and
// HRR penalties counting the same things.
package lexicon

import (
	"regexp"
	"strings"
)

// Units is the canonical unit vocabulary.
var Units = []string{"usd", "min", "g", "kg", "kcal", "°C", "mm", "cm"}

// unitNumberPattern matches a number followed by a canonical unit, e.g. "600g", "45 min", "4°C".
var unitNumberPattern = regexp.MustCompile(`(?i)\b\d+\.?\d*\s*(?:usd|min|g|kg|kcal|°C|mm|cm)\b`)

// UnitAliases maps non-canonical unit spellings to their canonical unit.
var UnitAliases = map[string]string{
	"minute":      "min",
	"minutes":     "min",
	"mins":        "min",
	"gram":        "g",
	"grams":       "g",
	"gr":          "g",
	"kilogram":    "kg",
	"kilograms":   "kg",
	"kilo":        "kg",
	"kilos":       "kg",
	"calories":    "kcal",
	"cal":         "kcal",
	"dollar":      "usd",
	"dollars":     "usd",
	"$":           "usd",
	"celsius":     "°C",
	"degc":        "°C",
	"c":           "°C",
	"millimeter":  "mm",
	"millimeters": "mm",
	"centimeter":  "cm",
	"centimeters": "cm",
}

// aliasPattern matches a number followed by a unit alias, or a "$" prefix amount.
// Longer alternatives are listed first so "minutes" wins over "min".
var aliasPattern = regexp.MustCompile(`(?i)(\$\s*\d+\.?\d*)|\b\d+\.?\d*\s*(minutes|minute|mins|grams|gram|gr|kilograms|kilogram|kilos|kilo|calories|cal|dollars|dollar|celsius|degc|millimeters|millimeter|centimeters|centimeter)\b|\d+\.?\d*\s*°?\s*(c)\b`)

// RiskKeywords are lower-case stems that indicate hazardous content.
var RiskKeywords = []string{"allerg", "danger", "risk", "safe", "toxic", "harm", "warn"}

// HasUnitNumber reports whether text contains a number with a canonical unit.
func HasUnitNumber(text string) bool {
	return unitNumberPattern.MatchString(text)
}

// UnitNumbers returns every number-with-unit token found in text.
func UnitNumbers(text string) []string {
	return unitNumberPattern.FindAllString(text, -1)
}

// IsCanonicalUnit reports whether unit is in the canonical vocabulary (case-insensitive).
func IsCanonicalUnit(unit string) bool {
	for _, u := range Units {
		if strings.EqualFold(unit, u) {
			return true
		}
	}
	return false
}

// CanonicalUnit returns the canonical spelling for an alias and whether the
// alias is known.
func CanonicalUnit(alias string) (string, bool) {
	canonical, ok := UnitAliases[strings.ToLower(strings.TrimSpace(alias))]
	return canonical, ok
}

// AliasMatch is a non-canonical unit occurrence.
type AliasMatch struct {
	Text      string // Matched text, e.g. "20 minutes"
	Alias     string // Alias as written, e.g. "minutes"
	Canonical string // Canonical unit, e.g. "min"
}

// FindUnitAliases returns non-canonical unit usages in text, in order of appearance.
func FindUnitAliases(text string) []AliasMatch {
	var matches []AliasMatch
	for _, m := range aliasPattern.FindAllStringSubmatch(text, -1) {
		switch {
		case m[1] != "":
			matches = append(matches, AliasMatch{Text: m[0], Alias: "$", Canonical: "usd"})
		case m[2] != "":
			canonical, _ := CanonicalUnit(m[2])
			matches = append(matches, AliasMatch{Text: m[0], Alias: m[2], Canonical: canonical})
		case m[3] != "":
			// "4°C" is canonical; only a bare "4 C" / "4c" is an alias.
			if strings.Contains(m[0], "°") {
				continue
			}
			matches = append(matches, AliasMatch{Text: m[0], Alias: m[3], Canonical: "°C"})
		}
	}
	return matches
}

// HasRisk reports whether text contains any risk keyword (case-insensitive substring).
func HasRisk(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range RiskKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

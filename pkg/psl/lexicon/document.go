package lexicon

import "mercator-hq/psl/pkg/psl/ast"

// Finding is a section item matched by a document scan.
type Finding struct {
	Section string
	Item    string
}

// UnitNumbersOutsideFact returns every item outside [FACT] that contains a
// unit-bearing number, one finding per item, in document order.
func UnitNumbersOutsideFact(doc *ast.Document) []Finding {
	var findings []Finding
	for _, entry := range doc.Sections.Entries() {
		if entry.Tag == ast.TagFact {
			continue
		}
		for _, item := range entry.Items {
			if HasUnitNumber(item) {
				findings = append(findings, Finding{Section: entry.Tag, Item: item})
			}
		}
	}
	return findings
}

// RiskFindings returns the header constraint strings and section items that
// contain risk language. [3C] is skipped since "safe: yes" is not a hazard.
// Constraint findings have an empty Section.
func RiskFindings(doc *ast.Document) []Finding {
	var findings []Finding
	for _, raw := range doc.RawConstraints {
		if HasRisk(raw) {
			findings = append(findings, Finding{Item: raw})
		}
	}
	for _, entry := range doc.Sections.Entries() {
		if entry.Tag == ast.Tag3C {
			continue
		}
		for _, item := range entry.Items {
			if HasRisk(item) {
				findings = append(findings, Finding{Section: entry.Tag, Item: item})
			}
		}
	}
	return findings
}

// DocumentHasRisk reports whether any constraint or item carries risk language.
func DocumentHasRisk(doc *ast.Document) bool {
	return len(RiskFindings(doc)) > 0
}

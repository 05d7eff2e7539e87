package validator

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
	"unicode"

	"mercator-hq/psl/pkg/psl/ast"
	pslErrors "mercator-hq/psl/pkg/psl/errors"
	"mercator-hq/psl/pkg/psl/lexicon"
	"mercator-hq/psl/pkg/psl/parser"
)

// Rule IDs.
const (
	RuleOrder            = "L-01"
	RulePairing          = "L-02"
	RuleUnitNumbers      = "L-03"
	RuleUnitAliases      = "L-04"
	RuleConstraintSyntax = "L-05"
	RuleTraceability     = "L-06"
	RuleThreeC           = "L-07"
	RuleSafety           = "L-08"
	RuleDuplicates       = "L-09"
	RuleClarity          = "L-10"
)

// DefaultClarityMaxWords is the word limit used by the default L-10 rule.
const DefaultClarityMaxWords = 25

// maxSentences is the number of sentences an item may hold before L-10 fires.
const maxSentences = 2

// traceStemLength is the prefix length used to match a constraint name
// against checklist words, so "serves" is traced by "servings".
const traceStemLength = 4

// threeCKeys are the flags a structured [3C] section must state.
var threeCKeys = []string{"clear", "cheap", "safe"}

// sentenceEnd splits text on terminal punctuation followed by whitespace or end of text.
var sentenceEnd = regexp.MustCompile(`[.!?]+(?:\s+|$)`)

// DefaultRules returns L-01 through L-10 in order.
func DefaultRules() []Rule {
	return []Rule{
		OrderRule(),
		PairingRule(),
		UnitNumberRule(),
		UnitAliasRule(),
		ConstraintSyntaxRule(),
		TraceabilityRule(),
		ThreeCRule(),
		SafetyRule(),
		DuplicateRule(),
		ClarityRule(DefaultClarityMaxWords),
	}
}

// OrderRule returns L-01: known sections must follow the canonical order.
func OrderRule() Rule {
	return Rule{
		ID:          RuleOrder,
		Description: "Known sections appear in canonical order",
		Check: func(doc *ast.Document) []pslErrors.Issue {
			actual := doc.KnownTags()

			present := make(map[string]bool, len(actual))
			for _, tag := range actual {
				present[tag] = true
			}
			var expected []string
			for _, tag := range ast.CanonicalOrder {
				if present[tag] {
					expected = append(expected, tag)
				}
			}

			if slices.Equal(actual, expected) {
				return nil
			}
			return []pslErrors.Issue{{
				Rule:       RuleOrder,
				Level:      pslErrors.LevelError,
				Message:    fmt.Sprintf("Section order violation. Expected: %v, Got: %v", expected, actual),
				Suggestion: pslErrors.SuggestOrder(expected),
			}}
		},
	}
}

// PairingRule returns L-02: every hypothesis needs a rollback.
func PairingRule() Rule {
	return Rule{
		ID:          RulePairing,
		Description: "HYP and ROLLBACK have the same number of items",
		Check: func(doc *ast.Document) []pslErrors.Issue {
			hyp := doc.Sections.Count(ast.TagHyp)
			rollback := doc.Sections.Count(ast.TagRollback)
			if hyp == rollback {
				return nil
			}
			return []pslErrors.Issue{{
				Rule:       RulePairing,
				Level:      pslErrors.LevelError,
				Message:    fmt.Sprintf("HYP/ROLLBACK count mismatch. HYP: %d, ROLLBACK: %d", hyp, rollback),
				Suggestion: "Add one [ROLLBACK] item for each [HYP] item",
			}}
		},
	}
}

// UnitNumberRule returns L-03: measured quantities belong in [FACT].
func UnitNumberRule() Rule {
	return Rule{
		ID:          RuleUnitNumbers,
		Description: "Unit-bearing numbers appear only in [FACT]",
		Check: func(doc *ast.Document) []pslErrors.Issue {
			var issues []pslErrors.Issue
			for _, f := range lexicon.UnitNumbersOutsideFact(doc) {
				issues = append(issues, pslErrors.Issue{
					Rule:    RuleUnitNumbers,
					Level:   pslErrors.LevelWarning,
					Message: fmt.Sprintf("Number found in [%s]: %s", f.Section, f.Item),
					Section: f.Section,
				})
			}
			return issues
		},
	}
}

// UnitAliasRule returns L-04: units must use canonical spellings.
func UnitAliasRule() Rule {
	return Rule{
		ID:          RuleUnitAliases,
		Description: "Units use canonical spellings",
		Check: func(doc *ast.Document) []pslErrors.Issue {
			var issues []pslErrors.Issue

			for _, c := range doc.Constraints {
				if !c.HasUnit() || lexicon.IsCanonicalUnit(c.Unit) {
					continue
				}
				if canonical, ok := lexicon.CanonicalUnit(c.Unit); ok {
					issues = append(issues, pslErrors.Issue{
						Rule:       RuleUnitAliases,
						Level:      pslErrors.LevelWarning,
						Message:    fmt.Sprintf("Non-canonical unit %q in constraint %s", c.Unit, c.Raw),
						Suggestion: fmt.Sprintf("Use %q", canonical),
					})
				}
			}

			for _, entry := range doc.Sections.Entries() {
				for _, item := range entry.Items {
					for _, m := range lexicon.FindUnitAliases(item) {
						issues = append(issues, pslErrors.Issue{
							Rule:       RuleUnitAliases,
							Level:      pslErrors.LevelWarning,
							Message:    fmt.Sprintf("Non-canonical unit %q in [%s]: %s", m.Alias, entry.Tag, item),
							Section:    entry.Tag,
							Suggestion: fmt.Sprintf("Write %q using %q", m.Text, m.Canonical),
						})
					}
				}
			}

			return issues
		},
	}
}

// ConstraintSyntaxRule returns L-05: header constraints must be parseable.
func ConstraintSyntaxRule() Rule {
	return Rule{
		ID:          RuleConstraintSyntax,
		Description: "Header constraints have the form name<op>number[unit]",
		Check: func(doc *ast.Document) []pslErrors.Issue {
			var issues []pslErrors.Issue
			for _, raw := range doc.RawConstraints {
				if _, ok := parser.ParseConstraint(raw); ok {
					continue
				}
				issues = append(issues, pslErrors.Issue{
					Rule:       RuleConstraintSyntax,
					Level:      pslErrors.LevelWarning,
					Message:    fmt.Sprintf("Constraint %q cannot be parsed and is ignored", raw),
					Suggestion: "Use name<op>number[unit], e.g. time<=90min",
				})
			}
			return issues
		},
	}
}

// TraceabilityRule returns L-06: each constraint is checked by a checklist item.
func TraceabilityRule() Rule {
	return Rule{
		ID:          RuleTraceability,
		Description: "Every constraint is traced by a [CHECKLIST] item",
		Check: func(doc *ast.Document) []pslErrors.Issue {
			if !doc.HasConstraints() {
				return nil
			}

			checklist := doc.Sections.Get(ast.TagChecklist)
			if len(checklist) == 0 {
				return []pslErrors.Issue{{
					Rule:       RuleTraceability,
					Level:      pslErrors.LevelWarning,
					Message:    fmt.Sprintf("No [CHECKLIST] items trace %d constraint(s)", len(doc.Constraints)),
					Section:    ast.TagChecklist,
					Suggestion: "Add a [CHECKLIST] item for each header constraint",
				}}
			}

			words := make(map[string]bool)
			for _, item := range checklist {
				for _, w := range splitWords(item) {
					words[w] = true
				}
			}

			var issues []pslErrors.Issue
			for _, c := range doc.Constraints {
				if traced(c.Name, words) {
					continue
				}
				issues = append(issues, pslErrors.Issue{
					Rule:       RuleTraceability,
					Level:      pslErrors.LevelWarning,
					Message:    fmt.Sprintf("Constraint %s is not traced by any [CHECKLIST] item", c.Raw),
					Section:    ast.TagChecklist,
					Suggestion: fmt.Sprintf("Mention %q in a checklist item", c.Name),
				})
			}
			return issues
		},
	}
}

// ThreeCRule returns L-07: [3C] must exist, be structured and state all flags.
func ThreeCRule() Rule {
	return Rule{
		ID:          RuleThreeC,
		Description: "[3C] is present, structured and names clear, cheap and safe",
		Check: func(doc *ast.Document) []pslErrors.Issue {
			if !doc.Sections.Has(ast.Tag3C) {
				return []pslErrors.Issue{{
					Rule:       RuleThreeC,
					Level:      pslErrors.LevelError,
					Message:    "Missing [3C] section",
					Section:    ast.Tag3C,
					Suggestion: "Add [3C] with a line like: clear: yes cheap: yes safe: yes",
				}}
			}

			if !doc.HasThreeC() {
				return []pslErrors.Issue{{
					Rule:       RuleThreeC,
					Level:      pslErrors.LevelError,
					Message:    "[3C] section has no key: value flags",
					Section:    ast.Tag3C,
					Suggestion: "Write the flags as plain lines, not list items: clear: yes",
				}}
			}

			text := strings.ToLower(strings.Join(doc.Sections.Get(ast.Tag3C), " "))
			var issues []pslErrors.Issue
			for _, key := range threeCKeys {
				if strings.Contains(text, key+":") {
					continue
				}
				issues = append(issues, pslErrors.Issue{
					Rule:       RuleThreeC,
					Level:      pslErrors.LevelWarning,
					Message:    fmt.Sprintf("[3C] does not state %q", key),
					Section:    ast.Tag3C,
					Suggestion: fmt.Sprintf("Add %s: yes or %s: no", key, key),
				})
			}
			return issues
		},
	}
}

// SafetyRule returns L-08: risk language requires safety notes.
func SafetyRule() Rule {
	return Rule{
		ID:          RuleSafety,
		Description: "Risk language is covered by a non-empty [SAFETY] section",
		Check: func(doc *ast.Document) []pslErrors.Issue {
			if doc.Sections.Count(ast.TagSafety) > 0 {
				return nil
			}
			findings := lexicon.RiskFindings(doc)
			if len(findings) == 0 {
				return nil
			}

			where := "constraints"
			if findings[0].Section != "" {
				where = "[" + findings[0].Section + "]"
			}
			return []pslErrors.Issue{{
				Rule:       RuleSafety,
				Level:      pslErrors.LevelError,
				Message:    fmt.Sprintf("Risk language in %s (%q) without a [SAFETY] section", where, findings[0].Item),
				Section:    ast.TagSafety,
				Suggestion: "Add a [SAFETY] section describing the hazard and its mitigation",
			}}
		},
	}
}

// DuplicateRule returns L-09: no repeated items within a section.
func DuplicateRule() Rule {
	return Rule{
		ID:          RuleDuplicates,
		Description: "Items are not repeated within a section",
		Check: func(doc *ast.Document) []pslErrors.Issue {
			var issues []pslErrors.Issue
			for _, entry := range doc.Sections.Entries() {
				seen := make(map[string]bool, len(entry.Items))
				for _, item := range entry.Items {
					key := normalizeItem(item)
					if key == "" {
						continue
					}
					if seen[key] {
						issues = append(issues, pslErrors.Issue{
							Rule:    RuleDuplicates,
							Level:   pslErrors.LevelWarning,
							Message: fmt.Sprintf("Duplicate item in [%s]: %s", entry.Tag, item),
							Section: entry.Tag,
						})
						continue
					}
					seen[key] = true
				}
			}
			return issues
		},
	}
}

// ClarityRule returns L-10 with the given word limit per item.
// [GLOSS] is exempt since it holds free text.
func ClarityRule(maxWords int) Rule {
	if maxWords <= 0 {
		maxWords = DefaultClarityMaxWords
	}
	return Rule{
		ID:          RuleClarity,
		Description: fmt.Sprintf("Items have at most %d words and %d sentences", maxWords, maxSentences),
		Check: func(doc *ast.Document) []pslErrors.Issue {
			var issues []pslErrors.Issue
			for _, entry := range doc.Sections.Entries() {
				if entry.Tag == ast.TagGloss {
					continue
				}
				for _, item := range entry.Items {
					if n := len(strings.Fields(item)); n > maxWords {
						issues = append(issues, pslErrors.Issue{
							Rule:       RuleClarity,
							Level:      pslErrors.LevelWarning,
							Message:    fmt.Sprintf("Item in [%s] has %d words (max %d): %s", entry.Tag, n, maxWords, item),
							Section:    entry.Tag,
							Suggestion: "Split the item into shorter steps",
						})
					}
					if n := countSentences(item); n > maxSentences {
						issues = append(issues, pslErrors.Issue{
							Rule:       RuleClarity,
							Level:      pslErrors.LevelWarning,
							Message:    fmt.Sprintf("Item in [%s] has %d sentences (max %d): %s", entry.Tag, n, maxSentences, item),
							Section:    entry.Tag,
							Suggestion: "Use one item per instruction",
						})
					}
				}
			}
			return issues
		},
	}
}

// traced reports whether any checklist word starts with the constraint's stem.
func traced(name string, words map[string]bool) bool {
	stem := strings.ToLower(name)
	if len(stem) > traceStemLength {
		stem = stem[:traceStemLength]
	}
	for w := range words {
		if strings.HasPrefix(w, stem) {
			return true
		}
	}
	return false
}

// splitWords returns the lower-case alphanumeric words of text.
func splitWords(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// normalizeItem lower-cases an item and collapses whitespace.
func normalizeItem(item string) string {
	return strings.Join(strings.Fields(strings.ToLower(item)), " ")
}

// countSentences counts non-empty segments between sentence terminators.
func countSentences(text string) int {
	n := 0
	for _, part := range sentenceEnd.Split(text, -1) {
		if strings.TrimSpace(part) != "" {
			n++
		}
	}
	return n
}

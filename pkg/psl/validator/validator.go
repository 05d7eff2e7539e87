package validator

import (
	"mercator-hq/psl/pkg/psl/ast"
	pslErrors "mercator-hq/psl/pkg/psl/errors"
)

// Rule is a single named check over a parsed document.
// Check must be a pure function: no I/O, no mutation of doc, and the same
// document always yields the same issues in the same order.
type Rule struct {
	ID          string
	Description string
	Check       func(doc *ast.Document) []pslErrors.Issue
}

// Validator runs a fixed list of rules in order.
// Rules are independent: one rule's issues never suppress another's.
type Validator struct {
	rules []Rule
}

// NewValidator creates a validator with the given rules.
// With no arguments it uses DefaultRules.
func NewValidator(rules ...Rule) *Validator {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	return &Validator{rules: rules}
}

// Rules returns the configured rules in run order.
func (v *Validator) Rules() []Rule {
	out := make([]Rule, len(v.rules))
	copy(out, v.rules)
	return out
}

// Validate runs every rule and returns the accumulated issues.
// The result is never nil.
func (v *Validator) Validate(doc *ast.Document) []pslErrors.Issue {
	issues := pslErrors.NewIssueList()
	if doc == nil {
		return issues.Issues()
	}

	for _, rule := range v.rules {
		issues.Append(rule.Check(doc)...)
	}

	return issues.Issues()
}

// ValidateRule runs only the rule with the given ID.
// It returns false if no such rule is configured.
func (v *Validator) ValidateRule(id string, doc *ast.Document) ([]pslErrors.Issue, bool) {
	for _, rule := range v.rules {
		if rule.ID == id {
			if doc == nil {
				return []pslErrors.Issue{}, true
			}
			return rule.Check(doc), true
		}
	}
	return nil, false
}

// Validate runs the default rules on doc.
func Validate(doc *ast.Document) []pslErrors.Issue {
	return NewValidator().Validate(doc)
}

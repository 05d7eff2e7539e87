package main

import (
	"mercator-hq/psl/pkg/config"
	"mercator-hq/psl/pkg/psl"
	"mercator-hq/psl/pkg/psl/parser"
	"mercator-hq/psl/pkg/psl/validator"
)

// newParser builds a parser from the lint configuration.
func newParser(cfg config.LintConfig) *parser.Parser {
	return parser.NewParser().
		WithMaxFileSize(cfg.MaxFileSize).
		WithContinueAfter3C(cfg.ContinueAfter3C)
}

// newValidator builds the default rule set with the configured clarity limit.
func newValidator(cfg config.LintConfig) *validator.Validator {
	rules := validator.DefaultRules()
	for i, rule := range rules {
		if rule.ID == validator.RuleClarity {
			rules[i] = validator.ClarityRule(cfg.ClarityMaxWords)
		}
	}
	return validator.NewValidator(rules...)
}

// newAssessor builds an assessor from the lint configuration.
func newAssessor(cfg config.LintConfig) *psl.Assessor {
	return psl.NewAssessor().
		WithParser(newParser(cfg)).
		WithValidator(newValidator(cfg))
}

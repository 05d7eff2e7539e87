// Package validator checks parsed PSL documents against the L-rules.
//
// Each rule is a pure function from *ast.Document to zero or more issues.
// Rules are collected in a registry and run in order; none of them
// short-circuits another, so a single run reports every problem at once.
//
//	L-01  known sections appear in canonical order           error
//	L-02  HYP and ROLLBACK have the same number of items     error
//	L-03  unit-bearing numbers outside [FACT]                warning
//	L-04  non-canonical unit spellings (minutes, $, grams)   warning
//	L-05  header constraints that cannot be parsed           warning
//	L-06  constraints traced by a [CHECKLIST] item           warning
//	L-07  [3C] present, structured and complete              error/warning
//	L-08  risk language requires a non-empty [SAFETY]        error
//	L-09  duplicate items within a section                   warning
//	L-10  overly long or multi-sentence items                warning
//
// Custom rule sets can be built by passing rules to NewValidator:
//
//	v := validator.NewValidator(validator.OrderRule(), validator.ClarityRule(40))
//	issues := v.Validate(doc)
package validator

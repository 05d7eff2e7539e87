package parser

import (
	"regexp"
	"strconv"
	"strings"

	"mercator-hq/psl/pkg/psl/ast"
)

// constraintPattern matches "name <op> number [unit]", e.g. "time<=90min" or "repeatability >= 0.9".
var constraintPattern = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_\-]*)\s*(<=|>=|<|>|=)\s*(-?\d+(?:\.\d+)?)\s*(\S.*)?$`)

// ParseConstraint converts a raw header constraint into an ast.Constraint.
// It returns false when the string does not have a numeric right-hand side
// (e.g. "tools=basic"); such constraints are dropped by the parser.
func ParseConstraint(raw string) (ast.Constraint, bool) {
	text := strings.TrimSpace(raw)
	m := constraintPattern.FindStringSubmatch(text)
	if m == nil {
		return ast.Constraint{}, false
	}

	value, err := strconv.ParseFloat(m[3], 64)
	if err != nil {
		return ast.Constraint{}, false
	}

	op := ast.Operator(m[2])
	if !op.Valid() {
		return ast.Constraint{}, false
	}

	return ast.Constraint{
		Name:     m[1],
		Operator: op,
		Value:    value,
		Unit:     strings.TrimSpace(m[4]),
		Raw:      text,
	}, true
}

// ParseConstraints parses every raw constraint, keeping the parseable ones in order.
func ParseConstraints(raws []string) []ast.Constraint {
	constraints := make([]ast.Constraint, 0, len(raws))
	for _, raw := range raws {
		if c, ok := ParseConstraint(raw); ok {
			constraints = append(constraints, c)
		}
	}
	return constraints
}

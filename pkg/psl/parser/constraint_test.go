package parser

import (
	"testing"

	"mercator-hq/psl/pkg/psl/ast"
)

func TestParseConstraint(t *testing.T) {
	tests := []struct {
		raw   string
		ok    bool
		name  string
		op    ast.Operator
		value float64
		unit  string
	}{
		{"time<=90min", true, "time", ast.OperatorLessEqual, 90, "min"},
		{"budget <= 12 usd", true, "budget", ast.OperatorLessEqual, 12, "usd"},
		{"serves=6", true, "serves", ast.OperatorEqual, 6, ""},
		{"repeatability>=0.9", true, "repeatability", ast.OperatorGreaterEqual, 0.9, ""},
		{"temp>-5°C", true, "temp", ast.OperatorGreaterThan, -5, "°C"},
		{"weight<2.5kg", true, "weight", ast.OperatorLessThan, 2.5, "kg"},
		{"tools=basic", false, "", "", 0, ""},
		{"no operator here", false, "", "", 0, ""},
		{"<=90min", false, "", "", 0, ""},
		{"", false, "", "", 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			c, ok := ParseConstraint(tt.raw)
			if ok != tt.ok {
				t.Fatalf("ParseConstraint(%q) ok = %v, want %v", tt.raw, ok, tt.ok)
			}
			if !ok {
				return
			}
			if c.Name != tt.name || c.Operator != tt.op || c.Value != tt.value || c.Unit != tt.unit {
				t.Errorf("ParseConstraint(%q) = %+v", tt.raw, c)
			}
			if c.Raw != tt.raw {
				t.Errorf("Raw = %q, want %q", c.Raw, tt.raw)
			}
		})
	}
}

func TestParseConstraints_DropsUnparseable(t *testing.T) {
	got := ParseConstraints([]string{"time<=10min", "tools=basic", "cost<5usd"})
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Name != "time" || got[1].Name != "cost" {
		t.Errorf("order = %s, %s", got[0].Name, got[1].Name)
	}
}

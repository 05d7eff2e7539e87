package ast

import (
	"encoding/json"
	"testing"
)

func TestOperator_Compare(t *testing.T) {
	tests := []struct {
		op     Operator
		actual float64
		bound  float64
		want   bool
	}{
		{OperatorLessEqual, 5, 10, true},
		{OperatorLessEqual, 10, 10, true},
		{OperatorLessEqual, 15, 10, false},
		{OperatorGreaterEqual, 0.95, 0.9, true},
		{OperatorGreaterEqual, 0.8, 0.9, false},
		{OperatorLessThan, 10, 10, false},
		{OperatorGreaterThan, 11, 10, true},
		{OperatorEqual, 6, 6, true},
		{OperatorEqual, 5, 6, false},
		{Operator("~="), 6, 6, false},
	}

	for _, tt := range tests {
		if got := tt.op.Compare(tt.actual, tt.bound); got != tt.want {
			t.Errorf("%g %s %g = %v, want %v", tt.actual, tt.op, tt.bound, got, tt.want)
		}
	}
}

func TestOperator_Valid(t *testing.T) {
	for _, op := range Operators {
		if !op.Valid() {
			t.Errorf("Operator %q should be valid", op)
		}
	}
	if Operator("==").Valid() {
		t.Error("Operator \"==\" should not be valid")
	}
}

func TestConstraint_String(t *testing.T) {
	c := Constraint{Name: "time", Operator: OperatorLessEqual, Value: 90, Unit: "min"}
	if got := c.String(); got != "time<=90min" {
		t.Errorf("String() = %q, want %q", got, "time<=90min")
	}
	if !c.Satisfied(85) {
		t.Error("Satisfied(85) = false, want true")
	}
}

func TestSections_PreservesOrderAndMerges(t *testing.T) {
	s := NewSections(
		SectionEntry{Tag: TagHyp, Items: []string{"h1"}},
		SectionEntry{Tag: TagFact, Items: []string{"f1"}},
		SectionEntry{Tag: TagHyp, Items: []string{"h2"}},
	)

	tags := s.Tags()
	if len(tags) != 2 || tags[0] != TagHyp || tags[1] != TagFact {
		t.Fatalf("Tags() = %v, want [HYP FACT]", tags)
	}
	if s.Count(TagHyp) != 2 {
		t.Errorf("Count(HYP) = %d, want 2", s.Count(TagHyp))
	}
	if s.Count(TagRollback) != 0 || s.Has(TagRollback) {
		t.Error("absent section should have zero items and Has() = false")
	}

	// Tags returns a copy
	tags[0] = "MUTATED"
	if s.Tags()[0] != TagHyp {
		t.Error("Tags() must not expose internal order slice")
	}
}

func TestSections_ZeroValue(t *testing.T) {
	var s Sections
	if s.Len() != 0 || s.Has(TagFact) || s.Get(TagFact) != nil {
		t.Error("zero Sections should be empty")
	}
}

func TestSections_JSONKeepsOrder(t *testing.T) {
	s := NewSections(
		SectionEntry{Tag: TagRollback, Items: []string{"r"}},
		SectionEntry{Tag: TagFact, Items: []string{"f"}},
	)

	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("Marshal() failed: %v", err)
	}
	want := `[{"tag":"ROLLBACK","items":["r"]},{"tag":"FACT","items":["f"]}]`
	if string(data) != want {
		t.Errorf("Marshal() = %s, want %s", data, want)
	}

	var decoded Sections
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() failed: %v", err)
	}
	if decoded.Tags()[0] != TagRollback {
		t.Errorf("decoded order = %v, want ROLLBACK first", decoded.Tags())
	}
}

func TestDocument_KnownAndUnknownTags(t *testing.T) {
	doc := &Document{
		Sections: NewSections(
			SectionEntry{Tag: TagFact, Items: []string{"a"}},
			SectionEntry{Tag: "NOTES", Items: []string{"b"}},
			SectionEntry{Tag: TagHyp, Items: []string{"c"}},
		),
	}

	known := doc.KnownTags()
	if len(known) != 2 || known[0] != TagFact || known[1] != TagHyp {
		t.Errorf("KnownTags() = %v, want [FACT HYP]", known)
	}
	unknown := doc.UnknownTags()
	if len(unknown) != 1 || unknown[0] != "NOTES" {
		t.Errorf("UnknownTags() = %v, want [NOTES]", unknown)
	}
}

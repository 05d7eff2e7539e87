package parser

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"mercator-hq/psl/pkg/psl/ast"
	pslErrors "mercator-hq/psl/pkg/psl/errors"
)

const testdataDir = "../../../internal/psl/testdata"

func TestParser_ParseFile_Borscht(t *testing.T) {
	parser := NewParser()
	doc, err := parser.ParseFile(testdataDir + "/valid/borscht.psl")
	if err != nil {
		t.Fatalf("ParseFile() failed: %v", err)
	}

	// Header
	if doc.Version != "0.1" {
		t.Errorf("Version = %q, want %q", doc.Version, "0.1")
	}
	if doc.Context != "kitchen" {
		t.Errorf("Context = %q, want %q", doc.Context, "kitchen")
	}
	if doc.Skill != "novice" {
		t.Errorf("Skill = %q, want %q", doc.Skill, "novice")
	}
	if doc.Resources != nil {
		t.Errorf("Resources = %v, want nil", doc.Resources)
	}
	if !strings.HasSuffix(doc.SourceFile, "borscht.psl") {
		t.Errorf("SourceFile = %q", doc.SourceFile)
	}

	// Constraints
	if len(doc.Constraints) != 4 {
		t.Fatalf("len(Constraints) = %d, want 4", len(doc.Constraints))
	}
	time := doc.GetConstraint("time")
	if time == nil {
		t.Fatal("time constraint missing")
	}
	if time.Operator != ast.OperatorLessEqual || time.Value != 90 || time.Unit != "min" {
		t.Errorf("time = %+v, want <= 90 min", *time)
	}
	if serves := doc.GetConstraint("serves"); serves == nil || serves.HasUnit() {
		t.Errorf("serves = %+v, want unitless", serves)
	}

	// Sections: the scan stops after [3C], so GLOSS is not present
	wantTags := []string{"FACT", "TECHNIQUE", "HYP", "ROLLBACK", "SAFETY", "CHECKLIST", "3C"}
	if got := doc.Sections.Tags(); !reflect.DeepEqual(got, wantTags) {
		t.Errorf("Tags() = %v, want %v", got, wantTags)
	}
	if got := doc.Sections.Count(ast.TagFact); got != 4 {
		t.Errorf("FACT count = %d, want 4", got)
	}
	if doc.Sections.Count(ast.TagHyp) != 1 || doc.Sections.Count(ast.TagRollback) != 1 {
		t.Errorf("HYP/ROLLBACK counts = %d/%d, want 1/1",
			doc.Sections.Count(ast.TagHyp), doc.Sections.Count(ast.TagRollback))
	}
	if got := doc.Sections.Get(ast.TagHyp)[0]; got != "Bake beetroot 45 min instead of stewing for richer flavor." {
		t.Errorf("HYP item = %q", got)
	}

	// 3C
	if doc.ThreeC == nil {
		t.Fatal("ThreeC is nil")
	}
	if *doc.ThreeC != (ast.ThreeC{Clear: true, Cheap: true, Safe: true}) {
		t.Errorf("ThreeC = %+v, want all true", *doc.ThreeC)
	}
	if doc.Gloss != "" {
		t.Errorf("Gloss = %q, want empty", doc.Gloss)
	}
}

func TestParser_ContinueAfter3C(t *testing.T) {
	parser := NewParser().WithContinueAfter3C(true)
	doc, err := parser.ParseFile(testdataDir + "/valid/borscht.psl")
	if err != nil {
		t.Fatalf("ParseFile() failed: %v", err)
	}

	tags := doc.Sections.Tags()
	if tags[len(tags)-1] != ast.TagGloss {
		t.Errorf("last tag = %q, want GLOSS", tags[len(tags)-1])
	}
	want := "Ritual delivering stable taste: order, timing, acidity control."
	if doc.Gloss != want {
		t.Errorf("Gloss = %q, want %q", doc.Gloss, want)
	}
	if got := doc.Sections.Get(ast.Tag3C); !reflect.DeepEqual(got, []string{"clear: yes cheap: yes safe: yes"}) {
		t.Errorf("3C items = %v", got)
	}
}

func TestParser_ParseFile_Shelf(t *testing.T) {
	doc, err := NewParser().ParseFile(testdataDir + "/valid/shelf.psl")
	if err != nil {
		t.Fatalf("ParseFile() failed: %v", err)
	}

	wantResources := []string{"pine board", "wood screws", "wall anchors", "drill"}
	if !reflect.DeepEqual(doc.Resources, wantResources) {
		t.Errorf("Resources = %v, want %v", doc.Resources, wantResources)
	}
	if doc.ThreeC == nil || !doc.ThreeC.Clear || !doc.ThreeC.Cheap || !doc.ThreeC.Safe {
		t.Errorf("ThreeC = %+v, want all true", doc.ThreeC)
	}
	if got := doc.Sections.Count(ast.Tag3C); got != 3 {
		t.Errorf("3C count = %d, want 3", got)
	}
}

func TestParser_ParseFile_Unsafe(t *testing.T) {
	doc, err := NewParser().ParseFile(testdataDir + "/invalid/unsafe.psl")
	if err != nil {
		t.Fatalf("ParseFile() failed: %v", err)
	}

	if len(doc.Constraints) != 1 {
		t.Errorf("len(Constraints) = %d, want 1", len(doc.Constraints))
	}
	if len(doc.RawConstraints) != 2 {
		t.Errorf("len(RawConstraints) = %d, want 2", len(doc.RawConstraints))
	}
	// "- clear: yes" is a list item, so 3C stays unstructured
	if doc.ThreeC != nil {
		t.Errorf("ThreeC = %+v, want nil", doc.ThreeC)
	}
	if !doc.Sections.Has(ast.Tag3C) {
		t.Error("3C section missing")
	}
	if doc.Sections.Has(ast.TagSafety) {
		t.Error("unexpected SAFETY section")
	}
}

func TestParser_NoSections(t *testing.T) {
	inputs := []string{
		"",
		"!psl v0.1\ncontext: notes",
		"just some prose\nwith two lines",
		"- a list item before any tag\n1) another",
	}

	for _, input := range inputs {
		doc := Parse(input)
		if doc.Sections.Len() != 0 {
			t.Errorf("Parse(%q) sections = %v, want none", input, doc.Sections.Tags())
		}
		if doc.ThreeC != nil {
			t.Errorf("Parse(%q) ThreeC = %+v, want nil", input, doc.ThreeC)
		}
		if doc.Gloss != "" {
			t.Errorf("Parse(%q) Gloss = %q, want empty", input, doc.Gloss)
		}
	}
}

func TestParser_ParseFile_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := NewParser().ParseFile(filepath.Join(t.TempDir(), "missing.psl"))
		var pslErr *pslErrors.Error
		if !errors.As(err, &pslErr) {
			t.Fatalf("err = %v, want *errors.Error", err)
		}
		if pslErr.Type != pslErrors.ErrorTypeIO {
			t.Errorf("Type = %q, want %q", pslErr.Type, pslErrors.ErrorTypeIO)
		}
	})

	t.Run("file too large", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "big.psl")
		if err := os.WriteFile(path, []byte(strings.Repeat("x", 64)), 0o644); err != nil {
			t.Fatal(err)
		}
		_, err := NewParser().WithMaxFileSize(32).ParseFile(path)
		var pslErr *pslErrors.Error
		if !errors.As(err, &pslErr) {
			t.Fatalf("err = %v, want *errors.Error", err)
		}
		if pslErr.Type != pslErrors.ErrorTypeLimit {
			t.Errorf("Type = %q, want %q", pslErr.Type, pslErrors.ErrorTypeLimit)
		}
	})

	t.Run("bytes too large", func(t *testing.T) {
		if _, err := NewParser().WithMaxFileSize(4).ParseBytes([]byte("[FACT]\n- x"), "mem"); err == nil {
			t.Error("ParseBytes() succeeded, want size error")
		}
	})
}

func TestParser_CRLF(t *testing.T) {
	doc := Parse("context: kitchen\r\n[FACT]\r\n- one\r\n- two\r\n")
	if doc.Context != "kitchen" {
		t.Errorf("Context = %q", doc.Context)
	}
	if got := doc.Sections.Get(ast.TagFact); !reflect.DeepEqual(got, []string{"one", "two"}) {
		t.Errorf("FACT = %v", got)
	}
}

func TestParse_GlossListItems(t *testing.T) {
	doc := Parse("!psl v0.1\n[FACT]\n- a\n[GLOSS]\n- borscht: beet soup\n- smetana: sour cream\n")

	if doc.Gloss != "borscht: beet soup smetana: sour cream" {
		t.Errorf("Gloss = %q", doc.Gloss)
	}
	if got := doc.Sections.Count(ast.TagGloss); got != 2 {
		t.Errorf("GLOSS count = %d, want 2", got)
	}
}

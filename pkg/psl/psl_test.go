package psl

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mercator-hq/psl/pkg/psl/ast"
	pslErrors "mercator-hq/psl/pkg/psl/errors"
	"mercator-hq/psl/pkg/psl/metrics"
	"mercator-hq/psl/pkg/psl/validator"
	"mercator-hq/psl/pkg/telemetry/tracing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

const testdataDir = "../../internal/psl/testdata"

func readFixture(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(testdataDir, name))
	if err != nil {
		t.Fatalf("ReadFile(%q) failed: %v", name, err)
	}
	return string(data)
}

func TestAssessQuality_Borscht(t *testing.T) {
	text := readFixture(t, "valid/borscht.psl")

	t.Run("without results", func(t *testing.T) {
		result := AssessQuality(text, nil)
		if result.Failed() {
			t.Fatalf("assessment failed: %s", result.Error)
		}
		if result.Metrics.PSLCoverage != 1.0 {
			t.Errorf("PSLCoverage = %v, want 1.0", result.Metrics.PSLCoverage)
		}
		if result.QualityScore != 0.58 {
			t.Errorf("QualityScore = %v, want 0.58", result.QualityScore)
		}
		if result.QualityLevel != metrics.LevelFair {
			t.Errorf("QualityLevel = %q, want FAIR", result.QualityLevel)
		}
		if result.IssuesCount != len(result.Issues) || result.IssuesCount != 4 {
			t.Errorf("IssuesCount = %d, len(Issues) = %d, want 4", result.IssuesCount, len(result.Issues))
		}
		if result.Document == nil {
			t.Error("Document is nil")
		}
	})

	t.Run("with results", func(t *testing.T) {
		results := map[string]float64{"time": 85, "budget": 10, "serves": 6, "repeatability": 0.95}
		result := AssessQuality(text, results)
		if result.Metrics.CSR != 1.0 {
			t.Errorf("CSR = %v, want 1.0", result.Metrics.CSR)
		}
		if result.QualityLevel != metrics.LevelGood {
			t.Errorf("QualityLevel = %q, want GOOD", result.QualityLevel)
		}
	})
}

func TestAssessQuality_ArbitraryText(t *testing.T) {
	inputs := []string{
		"",
		"[",
		"]]][[[",
		"[3C]",
		"[3C]\n:",
		"constraints: ;;;; <= ; =5",
		strings.Repeat("[FACT]\n- x\n", 100),
		"\x00\xff binary junk",
	}

	for _, input := range inputs {
		result := AssessQuality(input, map[string]float64{"x": 1})
		if result.Failed() {
			t.Errorf("AssessQuality(%q) failed: %s", input, result.Error)
		}
	}
}

func TestAssessor_RecoversPanics(t *testing.T) {
	boom := validator.Rule{
		ID: "X-01",
		Check: func(doc *ast.Document) []pslErrors.Issue {
			panic("rule exploded")
		},
	}

	result := NewAssessor().WithValidator(validator.NewValidator(boom)).Assess(context.Background(), "[FACT]\n- a", nil)
	if !result.Failed() {
		t.Fatal("assessment did not fail")
	}
	if !strings.Contains(result.Error, "rule exploded") {
		t.Errorf("Error = %q", result.Error)
	}
	if result.QualityScore != 0 || result.Document != nil {
		t.Errorf("failed assessment carries data: %+v", result)
	}
}

func TestAssessor_AssessFile(t *testing.T) {
	a := NewAssessor()

	result := a.AssessFile(context.Background(), filepath.Join(testdataDir, "valid/shelf.psl"), nil)
	if result.Failed() {
		t.Fatalf("AssessFile() failed: %s", result.Error)
	}
	if result.IssuesCount != 0 {
		t.Errorf("IssuesCount = %d, want 0: %v", result.IssuesCount, result.Issues)
	}

	missing := a.AssessFile(context.Background(), filepath.Join(t.TempDir(), "missing.psl"), nil)
	if !missing.Failed() || missing.Error == "" {
		t.Errorf("missing file assessment = %+v, want failure", missing)
	}
}

func TestAssessment_JSON(t *testing.T) {
	result := AssessQuality("constraints: time<=10min\n[FACT]\n- a", map[string]float64{"time": 5})

	data, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("Marshal() failed: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() failed: %v", err)
	}
	for _, key := range []string{"metrics", "quality_score", "issues_count", "issues", "quality_level", "document"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("JSON missing key %q", key)
		}
	}
	m := decoded["metrics"].(map[string]any)
	if m["csr"] != 1.0 {
		t.Errorf("metrics.csr = %v, want 1", m["csr"])
	}
}

func TestCalculateAllMetrics(t *testing.T) {
	doc := Parse("constraints: time<=10min")
	if got := CalculateAllMetrics(doc, map[string]float64{"time": 15}).CSR; got != 0.0 {
		t.Errorf("CSR = %v, want 0", got)
	}
	if got := CalculateAllMetrics(doc, map[string]float64{"time": 5}).CSR; got != 1.0 {
		t.Errorf("CSR = %v, want 1", got)
	}
	if issues := Validate(doc); len(issues) == 0 {
		t.Error("Validate() found no issues in a document without sections")
	}
}

func newRecordingAssessor(t *testing.T) (*Assessor, *tracetest.SpanRecorder) {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { provider.Shutdown(context.Background()) })
	return NewAssessor().WithTracer(provider.Tracer(tracing.InstrumentationName)), recorder
}

func TestAssessor_Spans(t *testing.T) {
	a, recorder := newRecordingAssessor(t)

	path := filepath.Join(testdataDir, "valid/borscht.psl")
	result := a.AssessFile(context.Background(), path, nil)
	if result.Failed() {
		t.Fatalf("AssessFile() failed: %s", result.Error)
	}

	spans := recorder.Ended()
	names := make([]string, len(spans))
	for i, s := range spans {
		names[i] = s.Name()
	}
	want := []string{tracing.SpanParse, tracing.SpanValidate, tracing.SpanScore, tracing.SpanAssess}
	if strings.Join(names, ",") != strings.Join(want, ",") {
		t.Fatalf("span names = %v, want %v", names, want)
	}

	root := spans[3]
	for _, child := range spans[:3] {
		if child.Parent().SpanID() != root.SpanContext().SpanID() {
			t.Errorf("%s is not a child of %s", child.Name(), root.Name())
		}
	}

	attrs := map[attribute.Key]attribute.Value{}
	for _, kv := range root.Attributes() {
		attrs[kv.Key] = kv.Value
	}
	if got := attrs[tracing.AttrSourceFile].AsString(); got != path {
		t.Errorf("%s = %q, want %q", tracing.AttrSourceFile, got, path)
	}
	if got := attrs[tracing.AttrQualityLevel].AsString(); got != string(metrics.LevelFair) {
		t.Errorf("%s = %q, want FAIR", tracing.AttrQualityLevel, got)
	}

	for _, kv := range spans[1].Attributes() {
		if kv.Key == tracing.AttrIssues && kv.Value.AsInt64() != int64(result.IssuesCount) {
			t.Errorf("validate span issues = %d, want %d", kv.Value.AsInt64(), result.IssuesCount)
		}
	}
}

func TestAssessor_SpansOnFailure(t *testing.T) {
	a, recorder := newRecordingAssessor(t)

	result := a.AssessFile(context.Background(), filepath.Join(t.TempDir(), "missing.psl"), nil)
	if !result.Failed() {
		t.Fatal("assessment of a missing file did not fail")
	}

	spans := recorder.Ended()
	if len(spans) != 2 {
		t.Fatalf("ended spans = %d, want parse and assess only", len(spans))
	}
	for _, s := range spans {
		if s.Status().Code != codes.Error {
			t.Errorf("%s status = %v, want Error", s.Name(), s.Status().Code)
		}
	}
}

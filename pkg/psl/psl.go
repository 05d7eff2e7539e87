package psl

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"mercator-hq/psl/pkg/psl/ast"
	pslErrors "mercator-hq/psl/pkg/psl/errors"
	"mercator-hq/psl/pkg/psl/metrics"
	"mercator-hq/psl/pkg/psl/parser"
	"mercator-hq/psl/pkg/psl/validator"
	"mercator-hq/psl/pkg/telemetry/tracing"
)

// Assessment is the end-to-end result of parsing, validating and scoring a document.
// When the assessment fails, QualityLevel is metrics.LevelError and Error holds the reason.
type Assessment struct {
	Metrics      metrics.Scores       `json:"metrics"`
	QualityScore float64              `json:"quality_score"`
	IssuesCount  int                  `json:"issues_count"`
	Issues       []pslErrors.Issue    `json:"issues"`
	QualityLevel metrics.QualityLevel `json:"quality_level"`
	Document     *ast.Document        `json:"document,omitempty"`
	Error        string               `json:"error,omitempty"`
}

// Failed returns true if the assessment could not be completed.
func (a Assessment) Failed() bool {
	return a.QualityLevel == metrics.LevelError
}

// Assessor runs the full parse, validate and score pipeline.
type Assessor struct {
	parser     *parser.Parser
	validator  *validator.Validator
	calculator *metrics.Calculator
	tracer     trace.Tracer
}

// NewAssessor creates an assessor with default parser, rules and calculator.
// Spans go to the global OpenTelemetry tracer provider until WithTracer is used.
func NewAssessor() *Assessor {
	return &Assessor{
		parser:     parser.NewParser(),
		validator:  validator.NewValidator(),
		calculator: metrics.NewCalculator(),
		tracer:     otel.Tracer(tracing.InstrumentationName),
	}
}

// WithParser sets the parser used by the assessor.
func (a *Assessor) WithParser(p *parser.Parser) *Assessor {
	a.parser = p
	return a
}

// WithValidator sets the validator used by the assessor.
func (a *Assessor) WithValidator(v *validator.Validator) *Assessor {
	a.validator = v
	return a
}

// WithTracer sets the tracer that receives one span per pipeline stage.
func (a *Assessor) WithTracer(t trace.Tracer) *Assessor {
	a.tracer = t
	return a
}

// Assess parses text and assesses the resulting document.
func (a *Assessor) Assess(ctx context.Context, text string, results map[string]float64) Assessment {
	return a.run(ctx, "", func() (*ast.Document, error) { return a.parser.Parse(text), nil }, results)
}

// AssessFile reads and assesses a PSL file. Unreadable or oversize files
// produce a failed assessment rather than an error.
func (a *Assessor) AssessFile(ctx context.Context, path string, results map[string]float64) Assessment {
	return a.run(ctx, path, func() (*ast.Document, error) { return a.parser.ParseFile(path) }, results)
}

// AssessDocument validates and scores an already parsed document.
func (a *Assessor) AssessDocument(ctx context.Context, doc *ast.Document, results map[string]float64) Assessment {
	var source string
	if doc != nil {
		source = doc.SourceFile
	}
	return a.run(ctx, source, func() (*ast.Document, error) { return doc, nil }, results)
}

// run executes the pipeline, converting any panic into a failed assessment.
func (a *Assessor) run(ctx context.Context, source string, load func() (*ast.Document, error), results map[string]float64) (assessment Assessment) {
	ctx, span := a.tracer.Start(ctx, tracing.SpanAssess)
	if source != "" {
		span.SetAttributes(attribute.String(tracing.AttrSourceFile, source))
	}
	defer func() {
		if r := recover(); r != nil {
			assessment = failed(fmt.Sprintf("assessment failed: %v", r))
		}
		tracing.SetQualityAttributes(span, string(assessment.QualityLevel), assessment.QualityScore)
		if assessment.Failed() {
			tracing.SetFailure(span, assessment.Error)
		}
		span.End()
	}()

	var doc *ast.Document
	var err error
	a.stage(ctx, tracing.SpanParse, func(span trace.Span) {
		doc, err = load()
		if err != nil {
			tracing.RecordError(span, err)
			return
		}
		if doc != nil {
			tracing.SetDocumentAttributes(span, doc.Sections.Len())
		}
	})
	if err != nil {
		return failed(err.Error())
	}
	if doc == nil {
		return failed("no document to assess")
	}

	var issues []pslErrors.Issue
	a.stage(ctx, tracing.SpanValidate, func(span trace.Span) {
		issues = a.validator.Validate(doc)
		tracing.SetIssueAttributes(span, len(issues), pslErrors.CountLevel(issues, pslErrors.LevelError))
	})

	var scores metrics.Scores
	var score float64
	a.stage(ctx, tracing.SpanScore, func(span trace.Span) {
		span.SetAttributes(attribute.Bool(tracing.AttrHasResults, len(results) > 0))
		scores = a.calculator.CalculateAll(doc, results)
		score = metrics.QualityScore(scores)
	})

	return Assessment{
		Metrics:      scores,
		QualityScore: score,
		IssuesCount:  len(issues),
		Issues:       issues,
		QualityLevel: metrics.Level(score),
		Document:     doc,
	}
}

// stage runs fn inside a child span of ctx. The span ends even if fn panics.
func (a *Assessor) stage(ctx context.Context, name string, fn func(trace.Span)) {
	_, span := a.tracer.Start(ctx, name)
	defer span.End()
	fn(span)
}

func failed(reason string) Assessment {
	return Assessment{
		Issues:       []pslErrors.Issue{},
		QualityLevel: metrics.LevelError,
		Error:        reason,
	}
}

// Parse parses PSL text with default settings. It never fails.
func Parse(text string) *ast.Document {
	return parser.Parse(text)
}

// ParseFile parses a PSL file with default settings.
func ParseFile(path string) (*ast.Document, error) {
	return parser.NewParser().ParseFile(path)
}

// Validate runs the default L-rules on a parsed document.
func Validate(doc *ast.Document) []pslErrors.Issue {
	return validator.Validate(doc)
}

// CalculateAllMetrics computes the four acceptance metrics.
// results may be nil when no execution data is available.
func CalculateAllMetrics(doc *ast.Document, results map[string]float64) metrics.Scores {
	return metrics.NewCalculator().CalculateAll(doc, results)
}

// AssessQuality parses, validates and scores text in one call.
// It never panics; failures are reported with QualityLevel ERROR.
func AssessQuality(text string, results map[string]float64) Assessment {
	return NewAssessor().Assess(context.Background(), text, results)
}

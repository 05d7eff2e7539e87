package tracing

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Span names for the assessment pipeline.
const (
	SpanAssess   = "psl.assess"
	SpanParse    = "psl.parse"
	SpanValidate = "psl.validate"
	SpanScore    = "psl.score"
)

// Attribute keys set on assessment spans.
const (
	AttrSourceFile   = "psl.source.file"
	AttrSections     = "psl.sections"
	AttrIssues       = "psl.issues.count"
	AttrIssueErrors  = "psl.issues.errors"
	AttrHasResults   = "psl.results.present"
	AttrQualityScore = "psl.quality.score"
	AttrQualityLevel = "psl.quality.level"
)

// SetDocumentAttributes records the shape of a parsed document.
func SetDocumentAttributes(span trace.Span, sections int) {
	span.SetAttributes(attribute.Int(AttrSections, sections))
}

// SetIssueAttributes records validator output.
func SetIssueAttributes(span trace.Span, total, errors int) {
	span.SetAttributes(
		attribute.Int(AttrIssues, total),
		attribute.Int(AttrIssueErrors, errors),
	)
}

// SetQualityAttributes records the final score and level.
func SetQualityAttributes(span trace.Span, level string, score float64) {
	span.SetAttributes(
		attribute.String(AttrQualityLevel, level),
		attribute.Float64(AttrQualityScore, score),
	)
}

// RecordError records err on span and marks the span as failed.
func RecordError(span trace.Span, err error) {
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// SetFailure marks span as failed without an error value.
func SetFailure(span trace.Span, reason string) {
	span.SetStatus(codes.Error, reason)
}

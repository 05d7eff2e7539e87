// Package tracing records OpenTelemetry spans for PSL assessments.
//
// Each assessment is one trace: a psl.assess span with psl.parse,
// psl.validate and psl.score children. Spans carry the source file, the
// issue count and the resulting quality level.
//
// # Configuration
//
//	telemetry:
//	  tracing:
//	    enabled: true
//	    exporter: otlp          # or "none"
//	    endpoint: localhost:4317
//	    sampler: ratio          # always, never, ratio
//	    sample_ratio: 0.1
//
// # Usage
//
//	t, err := tracing.New(&cfg.Telemetry.Tracing)
//	if err != nil {
//	    return err
//	}
//	defer t.Shutdown(context.Background())
//
//	assessor := psl.NewAssessor().WithTracer(t.Tracer())
//
// A disabled Tracer hands out noop spans.
package tracing

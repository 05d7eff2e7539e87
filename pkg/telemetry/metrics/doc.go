// Package metrics provides Prometheus metrics for PSL assessment.
//
// # Metrics Categories
//
//   - Assessment Metrics: Assessments by quality level, issues by rule,
//     quality score distribution, acceptance metric values and duration
//   - History Metrics: History writes and records pruned by retention
//   - Watch Metrics: File system events and number of watched documents
//
// # Usage
//
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//
//	start := time.Now()
//	a := assessor.AssessFile(ctx, "recipe.psl", nil)
//	collector.RecordAssessment(a, time.Since(start))
//
//	http.Handle("/metrics", collector.Handler())
//
// Every collector owns its own registry, so several collectors can live in
// one process (as in tests) without registration conflicts.
package metrics

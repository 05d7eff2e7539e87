package metrics

import (
	"time"

	"mercator-hq/psl/pkg/config"
	"mercator-hq/psl/pkg/psl"

	"github.com/prometheus/client_golang/prometheus"
)

// AssessmentMetrics tracks document assessments.
//
// Metrics:
//   - psl_assess_assessments_total: Assessments by quality level
//   - psl_assess_issues_total: Issues by rule ID and severity
//   - psl_assess_quality_score: Quality score distribution
//   - psl_assess_metric_value: Last value of each acceptance metric
//   - psl_assess_duration_seconds: Time taken to assess a document
type AssessmentMetrics struct {
	assessmentsTotal *prometheus.CounterVec
	issuesTotal      *prometheus.CounterVec
	qualityScore     prometheus.Histogram
	metricValue      *prometheus.GaugeVec
	duration         prometheus.Histogram
}

// NewAssessmentMetrics creates and registers assessment metrics.
func NewAssessmentMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *AssessmentMetrics {
	am := &AssessmentMetrics{
		assessmentsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "assessments_total",
				Help:      "Total number of PSL documents assessed",
			},
			[]string{"level"},
		),

		issuesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "issues_total",
				Help:      "Total number of lint issues reported",
			},
			[]string{"rule", "severity"},
		),

		qualityScore: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "quality_score",
				Help:      "Distribution of document quality scores",
				// Bucket edges follow the quality level thresholds.
				Buckets: []float64{0.5, 0.7, 0.85, 1.0},
			},
		),

		metricValue: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "metric_value",
				Help:      "Value of each acceptance metric for the last assessed document",
			},
			[]string{"metric"},
		),

		duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "duration_seconds",
				Help:      "Time taken to assess a document in seconds",
				Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
			},
		),
	}

	registry.MustRegister(
		am.assessmentsTotal,
		am.issuesTotal,
		am.qualityScore,
		am.metricValue,
		am.duration,
	)

	return am
}

// Record records one assessment. Failed assessments only count toward
// assessments_total with level "ERROR".
func (am *AssessmentMetrics) Record(a psl.Assessment, duration time.Duration) {
	am.assessmentsTotal.WithLabelValues(string(a.QualityLevel)).Inc()
	am.duration.Observe(duration.Seconds())

	if a.Failed() {
		return
	}

	for _, issue := range a.Issues {
		am.issuesTotal.WithLabelValues(issue.Rule, string(issue.Level)).Inc()
	}

	am.qualityScore.Observe(a.QualityScore)
	am.metricValue.WithLabelValues("csr").Set(a.Metrics.CSR)
	am.metricValue.WithLabelValues("hrr").Set(a.Metrics.HRR)
	am.metricValue.WithLabelValues("psl_coverage").Set(a.Metrics.PSLCoverage)
	am.metricValue.WithLabelValues("three_c_score").Set(a.Metrics.ThreeCScore)
}

package metrics

import (
	"time"

	"mercator-hq/psl/pkg/config"
	"mercator-hq/psl/pkg/psl"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector owns the Prometheus registry and the metric groups recorded by
// the assessment pipeline, the history store and the watcher.
//
// All Record methods are no-ops when metrics are disabled, so callers never
// need to check the configuration themselves.
type Collector struct {
	config   *config.MetricsConfig
	registry *prometheus.Registry

	assessmentMetrics *AssessmentMetrics
	historyMetrics    *HistoryMetrics
	watchMetrics      *WatchMetrics
}

// NewCollector creates a new metrics collector with the specified configuration
// and Prometheus registry. If registry is nil, a fresh registry is created.
//
// Example:
//
//	cfg := &config.MetricsConfig{
//		Enabled:   true,
//		Namespace: "psl",
//		Subsystem: "assess",
//	}
//	collector := metrics.NewCollector(cfg, nil)
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	if cfg.Namespace == "" {
		cfg.Namespace = config.DefaultMetricsNamespace
	}
	if cfg.Subsystem == "" {
		cfg.Subsystem = config.DefaultMetricsSubsystem
	}

	return &Collector{
		config:            cfg,
		registry:          registry,
		assessmentMetrics: NewAssessmentMetrics(cfg, registry),
		historyMetrics:    NewHistoryMetrics(cfg, registry),
		watchMetrics:      NewWatchMetrics(cfg, registry),
	}
}

// RecordAssessment records a completed assessment and how long it took.
//
// Example:
//
//	start := time.Now()
//	a := assessor.AssessFile(ctx, path, nil)
//	collector.RecordAssessment(a, time.Since(start))
func (c *Collector) RecordAssessment(a psl.Assessment, duration time.Duration) {
	if !c.config.Enabled {
		return
	}

	c.assessmentMetrics.Record(a, duration)
}

// RecordHistoryWrite records an attempted history write.
func (c *Collector) RecordHistoryWrite(err error) {
	if !c.config.Enabled {
		return
	}

	c.historyMetrics.RecordWrite(err)
}

// RecordPruned records history records removed by retention.
func (c *Collector) RecordPruned(count int64) {
	if !c.config.Enabled {
		return
	}

	c.historyMetrics.RecordPruned(count)
}

// RecordWatchEvent records a file system event seen by the watcher.
// op is the event operation, e.g. "write" or "create".
func (c *Collector) RecordWatchEvent(op string) {
	if !c.config.Enabled {
		return
	}

	c.watchMetrics.RecordEvent(op)
}

// SetWatchedDocuments sets the number of documents currently watched.
func (c *Collector) SetWatchedDocuments(n int) {
	if !c.config.Enabled {
		return
	}

	c.watchMetrics.SetWatched(n)
}

// Registry returns the Prometheus registry used by the collector.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

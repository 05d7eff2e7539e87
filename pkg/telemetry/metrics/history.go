package metrics

import (
	"mercator-hq/psl/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// HistoryMetrics tracks the assessment history store.
type HistoryMetrics struct {
	writesTotal *prometheus.CounterVec
	prunedTotal prometheus.Counter
}

// NewHistoryMetrics creates and registers history metrics.
func NewHistoryMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *HistoryMetrics {
	hm := &HistoryMetrics{
		writesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: "history",
				Name:      "writes_total",
				Help:      "Total number of history writes by status",
			},
			[]string{"status"},
		),

		prunedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: "history",
				Name:      "pruned_total",
				Help:      "Total number of history records removed by retention",
			},
		),
	}

	registry.MustRegister(hm.writesTotal, hm.prunedTotal)

	return hm
}

// RecordWrite records a history write with status "success" or "error".
func (hm *HistoryMetrics) RecordWrite(err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	hm.writesTotal.WithLabelValues(status).Inc()
}

// RecordPruned adds count to the pruned records counter.
func (hm *HistoryMetrics) RecordPruned(count int64) {
	if count > 0 {
		hm.prunedTotal.Add(float64(count))
	}
}

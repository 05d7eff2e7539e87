package metrics

import (
	"mercator-hq/psl/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// WatchMetrics tracks file watching.
type WatchMetrics struct {
	eventsTotal *prometheus.CounterVec
	watched     prometheus.Gauge
}

// NewWatchMetrics creates and registers watch metrics.
func NewWatchMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *WatchMetrics {
	wm := &WatchMetrics{
		eventsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: "watch",
				Name:      "events_total",
				Help:      "Total number of file system events handled",
			},
			[]string{"op"},
		),

		watched: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: "watch",
				Name:      "documents",
				Help:      "Number of PSL documents currently watched",
			},
		),
	}

	registry.MustRegister(wm.eventsTotal, wm.watched)

	return wm
}

// RecordEvent increments the event counter for op.
func (wm *WatchMetrics) RecordEvent(op string) {
	wm.eventsTotal.WithLabelValues(op).Inc()
}

// SetWatched sets the watched documents gauge.
func (wm *WatchMetrics) SetWatched(n int) {
	wm.watched.Set(float64(n))
}

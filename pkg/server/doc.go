// Package server serves the Prometheus metrics endpoint used by watch mode.
//
// The server exposes two routes:
//
//	<metrics path>  Prometheus exposition (default /metrics)
//	/health         liveness probe, always "ok"
//
// Start blocks until its context is cancelled and then shuts the server down
// gracefully:
//
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//	srv := server.NewServer(&cfg.Telemetry.Metrics, collector.Handler())
//	go func() {
//	    if err := srv.Start(ctx); err != nil {
//	        slog.Error("metrics server failed", "error", err)
//	    }
//	}()
package server

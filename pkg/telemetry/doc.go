// Package telemetry groups the observability packages of the PSL toolkit.
//
//   - logging: slog-based structured logging for the CLI and watch mode
//   - metrics: Prometheus metrics for assessments, history and watching
//
// # Usage
//
//	cfg := config.GetConfig()
//
//	logger, err := logging.New(logging.Config{
//		Level:  cfg.Telemetry.Logging.Level,
//		Format: cfg.Telemetry.Logging.Format,
//	})
//	if err != nil {
//		return err
//	}
//	logger.SetDefault()
//
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
package telemetry

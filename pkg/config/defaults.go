package config

import "time"

// Default values for configuration fields.
const (
	// Lint defaults
	DefaultLintStrict          = false
	DefaultLintMaxFileSize     = int64(1048576) // 1MB
	DefaultLintContinueAfter3C = false
	DefaultLintClarityMaxWords = 25
	DefaultLintConcurrency     = 4

	// History defaults
	DefaultHistoryEnabled      = false
	DefaultHistoryDriver       = "sqlite"
	DefaultHistoryPath         = "data/psl-history.db"
	DefaultHistoryBusyTimeout  = 5 * time.Second
	DefaultHistoryMaxOpenConns = 4
	DefaultRetentionDays       = 90
	DefaultRetentionSchedule   = "0 3 * * *"
	DefaultRetentionMaxRecords = int64(0)

	// Watch defaults
	DefaultWatchPath      = "."
	DefaultWatchDebounce  = 100 * time.Millisecond
	DefaultWatchRecursive = true

	// Telemetry defaults
	DefaultLogLevel             = "info"
	DefaultLogFormat            = "console"
	DefaultMetricsEnabled       = false
	DefaultMetricsListenAddress = "127.0.0.1:9090"
	DefaultMetricsPath          = "/metrics"
	DefaultMetricsNamespace     = "psl"
	DefaultMetricsSubsystem     = "assess"
	DefaultTracingEnabled       = false
	DefaultTracingServiceName   = "psl"
	DefaultTracingExporter      = "otlp"
	DefaultTracingEndpoint      = "localhost:4317"
	DefaultTracingInsecure      = true
	DefaultTracingTimeout       = 10 * time.Second
	DefaultTracingSampler       = "always"
	DefaultTracingSampleRatio   = 1.0
)

// DefaultExtensions are the file extensions treated as PSL documents.
var DefaultExtensions = []string{".psl"}

// ApplyDefaults fills zero-valued fields with their defaults.
// Boolean fields whose default is true are only set on a zero Config by
// NewDefaultConfig, since false is indistinguishable from unset.
func ApplyDefaults(cfg *Config) {
	// Lint defaults
	if len(cfg.Lint.Extensions) == 0 {
		cfg.Lint.Extensions = append([]string(nil), DefaultExtensions...)
	}
	if cfg.Lint.MaxFileSize == 0 {
		cfg.Lint.MaxFileSize = DefaultLintMaxFileSize
	}
	if cfg.Lint.ClarityMaxWords == 0 {
		cfg.Lint.ClarityMaxWords = DefaultLintClarityMaxWords
	}
	if cfg.Lint.Concurrency == 0 {
		cfg.Lint.Concurrency = DefaultLintConcurrency
	}

	// History defaults
	if cfg.History.Driver == "" {
		cfg.History.Driver = DefaultHistoryDriver
	}
	if cfg.History.Path == "" {
		cfg.History.Path = DefaultHistoryPath
	}
	if cfg.History.BusyTimeout == 0 {
		cfg.History.BusyTimeout = DefaultHistoryBusyTimeout
	}
	if cfg.History.MaxOpenConns == 0 {
		cfg.History.MaxOpenConns = DefaultHistoryMaxOpenConns
	}
	if cfg.History.Retention.Days == 0 {
		cfg.History.Retention.Days = DefaultRetentionDays
	}
	if cfg.History.Retention.Schedule == "" {
		cfg.History.Retention.Schedule = DefaultRetentionSchedule
	}

	// Watch defaults
	if cfg.Watch.Path == "" {
		cfg.Watch.Path = DefaultWatchPath
	}
	if cfg.Watch.Debounce == 0 {
		cfg.Watch.Debounce = DefaultWatchDebounce
	}

	// Telemetry defaults
	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLogLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLogFormat
	}
	if cfg.Telemetry.Metrics.ListenAddress == "" {
		cfg.Telemetry.Metrics.ListenAddress = DefaultMetricsListenAddress
	}
	if cfg.Telemetry.Metrics.Path == "" {
		cfg.Telemetry.Metrics.Path = DefaultMetricsPath
	}
	if cfg.Telemetry.Metrics.Namespace == "" {
		cfg.Telemetry.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Telemetry.Metrics.Subsystem == "" {
		cfg.Telemetry.Metrics.Subsystem = DefaultMetricsSubsystem
	}
	if cfg.Telemetry.Tracing.ServiceName == "" {
		cfg.Telemetry.Tracing.ServiceName = DefaultTracingServiceName
	}
	if cfg.Telemetry.Tracing.Exporter == "" {
		cfg.Telemetry.Tracing.Exporter = DefaultTracingExporter
	}
	if cfg.Telemetry.Tracing.Endpoint == "" {
		cfg.Telemetry.Tracing.Endpoint = DefaultTracingEndpoint
	}
	if cfg.Telemetry.Tracing.Timeout == 0 {
		cfg.Telemetry.Tracing.Timeout = DefaultTracingTimeout
	}
	if cfg.Telemetry.Tracing.Sampler == "" {
		cfg.Telemetry.Tracing.Sampler = DefaultTracingSampler
	}
}

// NewDefaultConfig returns a configuration with every field at its default.
func NewDefaultConfig() *Config {
	cfg := &Config{
		Lint: LintConfig{
			Strict:          DefaultLintStrict,
			ContinueAfter3C: DefaultLintContinueAfter3C,
		},
		History: HistoryConfig{
			Enabled: DefaultHistoryEnabled,
			Retention: RetentionConfig{
				MaxRecords: DefaultRetentionMaxRecords,
			},
		},
		Watch: WatchConfig{
			Recursive: DefaultWatchRecursive,
		},
		Telemetry: TelemetryConfig{
			Metrics: MetricsConfig{
				Enabled: DefaultMetricsEnabled,
			},
			Tracing: TracingConfig{
				Enabled:     DefaultTracingEnabled,
				Insecure:    DefaultTracingInsecure,
				SampleRatio: DefaultTracingSampleRatio,
			},
		},
	}
	ApplyDefaults(cfg)
	return cfg
}

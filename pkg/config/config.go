package config

import "time"

// Config is the root configuration structure for the PSL toolkit.
// It contains the lint pipeline settings, assessment history storage,
// watch mode, and telemetry.
type Config struct {
	// Lint contains parser and validator settings used by lint, assess and watch.
	Lint LintConfig `yaml:"lint"`

	// History contains configuration for storing assessment records
	// including backend selection and retention.
	History HistoryConfig `yaml:"history"`

	// Watch contains configuration for watch mode.
	Watch WatchConfig `yaml:"watch"`

	// Telemetry contains logging and metrics configuration.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// LintConfig contains settings for parsing and validating PSL documents.
type LintConfig struct {
	// Strict treats warnings as failures.
	// Default: false
	Strict bool `yaml:"strict"`

	// Extensions are the file extensions considered PSL documents when
	// scanning directories.
	// Default: [".psl"]
	Extensions []string `yaml:"extensions" validate:"min=1,dive,startswith=."`

	// Patterns are doublestar globs (e.g. "docs/**/*.psl") linted when no
	// files are given on the command line.
	// Default: []
	Patterns []string `yaml:"patterns" validate:"dive,required"`

	// MaxFileSize is the largest document the parser accepts, in bytes.
	// Default: 1048576 (1MB)
	MaxFileSize int64 `yaml:"max_file_size" validate:"gt=0"`

	// ContinueAfter3C keeps scanning sections after the [3C] block.
	// Default: false
	ContinueAfter3C bool `yaml:"continue_after_3c"`

	// ClarityMaxWords is the L-10 word limit per item.
	// Default: 25
	ClarityMaxWords int `yaml:"clarity_max_words" validate:"gt=0"`

	// Concurrency is the number of files linted in parallel.
	// Default: 4
	Concurrency int `yaml:"concurrency" validate:"gte=1,lte=256"`
}

// HistoryConfig contains configuration for assessment history storage.
type HistoryConfig struct {
	// Enabled controls whether assessments are recorded.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Driver selects the storage backend.
	// Options: "sqlite" (pure Go), "sqlite3" (cgo), "memory"
	// Default: "sqlite"
	Driver string `yaml:"driver" validate:"oneof=sqlite sqlite3 memory"`

	// Path is the database file for the SQLite drivers.
	// Default: "data/psl-history.db"
	Path string `yaml:"path"`

	// BusyTimeout is how long SQLite waits on a locked database.
	// Default: 5s
	BusyTimeout time.Duration `yaml:"busy_timeout" validate:"gte=0"`

	// MaxOpenConns limits open database connections.
	// Default: 4
	MaxOpenConns int `yaml:"max_open_conns" validate:"gte=0"`

	// Retention controls pruning of old records.
	Retention RetentionConfig `yaml:"retention"`
}

// RetentionConfig contains history retention policy configuration.
type RetentionConfig struct {
	// Days is the number of days to keep records (0 = keep forever).
	// Default: 90
	Days int `yaml:"days" validate:"gte=0"`

	// Schedule is the cron expression for pruning.
	// Default: "0 3 * * *" (daily at 3 AM)
	Schedule string `yaml:"schedule"`

	// MaxRecords caps the number of stored records (0 = unlimited).
	// Default: 0
	MaxRecords int64 `yaml:"max_records" validate:"gte=0"`
}

// WatchConfig contains configuration for watch mode.
type WatchConfig struct {
	// Path is the directory watched for document changes.
	// Default: "."
	Path string `yaml:"path" validate:"required"`

	// Debounce delays re-assessment until changes settle.
	// Default: 100ms
	Debounce time.Duration `yaml:"debounce" validate:"gte=0"`

	// Recursive also watches subdirectories.
	// Default: true
	Recursive bool `yaml:"recursive"`
}

// TelemetryConfig contains configuration for observability.
type TelemetryConfig struct {
	// Logging contains logging configuration.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics contains Prometheus metrics configuration.
	Metrics MetricsConfig `yaml:"metrics"`

	// Tracing contains OpenTelemetry tracing configuration.
	Tracing TracingConfig `yaml:"tracing"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level to emit.
	// Options: "debug", "info", "warn", "error"
	// Default: "info"
	Level string `yaml:"level" validate:"oneof=debug info warn error"`

	// Format controls the log output format.
	// Options: "json", "text", "console"
	// Default: "console"
	Format string `yaml:"format" validate:"oneof=json text console"`

	// AddSource includes file and line number in log entries.
	// Default: false
	AddSource bool `yaml:"add_source"`
}

// MetricsConfig contains Prometheus metrics configuration.
type MetricsConfig struct {
	// Enabled controls whether the metrics endpoint is served in watch mode.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// ListenAddress is the address for the metrics HTTP server.
	// Default: "127.0.0.1:9090"
	ListenAddress string `yaml:"listen_address"`

	// Path is the HTTP path for the metrics endpoint.
	// Default: "/metrics"
	Path string `yaml:"path"`

	// Namespace is the metric name prefix.
	// Default: "psl"
	Namespace string `yaml:"namespace"`

	// Subsystem is the metric subsystem name.
	// Default: "assess"
	Subsystem string `yaml:"subsystem"`
}

// TracingConfig contains OpenTelemetry tracing configuration.
// Each assessment in watch mode becomes a trace with one span per stage.
type TracingConfig struct {
	// Enabled controls whether assessment spans are recorded.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// ServiceName is reported as the service.name resource attribute.
	// Default: "psl"
	ServiceName string `yaml:"service_name"`

	// Exporter selects where spans go.
	// Options: "otlp", "none"
	// Default: "otlp"
	Exporter string `yaml:"exporter" validate:"oneof=otlp none"`

	// Endpoint is the OTLP gRPC collector address.
	// Default: "localhost:4317"
	Endpoint string `yaml:"endpoint"`

	// Insecure disables TLS for the OTLP connection.
	// Default: true
	Insecure bool `yaml:"insecure"`

	// Timeout bounds each OTLP export.
	// Default: 10s
	Timeout time.Duration `yaml:"timeout" validate:"gte=0"`

	// Sampler is the sampling strategy.
	// Options: "always", "never", "ratio"
	// Default: "always"
	Sampler string `yaml:"sampler" validate:"oneof=always never ratio"`

	// SampleRatio is the fraction of traces kept by the "ratio" sampler.
	// Default: 1.0
	SampleRatio float64 `yaml:"sample_ratio" validate:"gte=0,lte=1"`
}

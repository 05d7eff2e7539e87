package config

import (
	"reflect"
	"testing"
)

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	if err := Validate(cfg); err != nil {
		t.Fatalf("default config is invalid: %v", err)
	}

	if !reflect.DeepEqual(cfg.Lint.Extensions, []string{".psl"}) {
		t.Errorf("Lint.Extensions = %v, want [.psl]", cfg.Lint.Extensions)
	}
	if cfg.Lint.MaxFileSize != DefaultLintMaxFileSize {
		t.Errorf("Lint.MaxFileSize = %d, want %d", cfg.Lint.MaxFileSize, DefaultLintMaxFileSize)
	}
	if cfg.History.Driver != "sqlite" {
		t.Errorf("History.Driver = %q, want sqlite", cfg.History.Driver)
	}
	if cfg.History.Retention.Schedule != DefaultRetentionSchedule {
		t.Errorf("Retention.Schedule = %q", cfg.History.Retention.Schedule)
	}
	if !cfg.Watch.Recursive {
		t.Error("Watch.Recursive = false, want true")
	}
	if cfg.Telemetry.Metrics.Path != "/metrics" {
		t.Errorf("Metrics.Path = %q", cfg.Telemetry.Metrics.Path)
	}
	if tr := cfg.Telemetry.Tracing; tr.Enabled || tr.Sampler != "always" || tr.SampleRatio != 1.0 || !tr.Insecure {
		t.Errorf("Tracing = %+v, want disabled always sampler with ratio 1 over insecure otlp", tr)
	}
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := &Config{
		Lint:    LintConfig{Concurrency: 16, Extensions: []string{".proc"}},
		History: HistoryConfig{Driver: "memory"},
	}

	ApplyDefaults(cfg)

	if cfg.Lint.Concurrency != 16 {
		t.Errorf("Concurrency = %d, want 16", cfg.Lint.Concurrency)
	}
	if !reflect.DeepEqual(cfg.Lint.Extensions, []string{".proc"}) {
		t.Errorf("Extensions = %v", cfg.Lint.Extensions)
	}
	if cfg.History.Driver != "memory" {
		t.Errorf("Driver = %q, want memory", cfg.History.Driver)
	}
	if cfg.Lint.ClarityMaxWords != DefaultLintClarityMaxWords {
		t.Errorf("ClarityMaxWords = %d, want default", cfg.Lint.ClarityMaxWords)
	}
}

func TestApplyDefaults_DoesNotShareExtensions(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)
	cfg.Lint.Extensions[0] = ".changed"

	if DefaultExtensions[0] != ".psl" {
		t.Errorf("DefaultExtensions mutated: %v", DefaultExtensions)
	}
}

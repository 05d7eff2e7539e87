package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"mercator-hq/psl/pkg/cli"
	"mercator-hq/psl/pkg/config"
	"mercator-hq/psl/pkg/psl/parser"
)

const testdataDir = "../../internal/psl/testdata"

func resetLintFlags() {
	lintFlags.dir = ""
	lintFlags.patterns = nil
	lintFlags.strict = false
	lintFlags.format = "text"
	lintFlags.progress = false
}

func lint(t *testing.T, cfg *config.Config, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := runLint(context.Background(), &out, cfg, cli.NopProgress{}, args)
	return out.String(), err
}

func TestLintValidFile(t *testing.T) {
	resetLintFlags()
	lintFlags.strict = true

	out, err := lint(t, config.NewDefaultConfig(), filepath.Join(testdataDir, "valid/shelf.psl"))
	if err != nil {
		t.Fatalf("runLint() with valid file returned error: %v\n%s", err, out)
	}
	if !strings.Contains(out, "1 file(s), 0 error(s), 0 warning(s)") {
		t.Errorf("summary missing from output:\n%s", out)
	}
}

func TestLintInvalidFile(t *testing.T) {
	resetLintFlags()

	out, err := lint(t, config.NewDefaultConfig(), filepath.Join(testdataDir, "invalid/unsafe.psl"))
	if !errors.Is(err, cli.ErrValidationFailed) {
		t.Fatalf("runLint() error = %v, want ErrValidationFailed", err)
	}
	if cli.ExitCode(err) != 1 {
		t.Errorf("ExitCode() = %d, want 1", cli.ExitCode(err))
	}
	if !strings.Contains(out, "L-08") {
		t.Errorf("expected missing [SAFETY] issue in output:\n%s", out)
	}
}

func TestLintNonexistentFile(t *testing.T) {
	resetLintFlags()
	lintFlags.format = "json"

	out, err := lint(t, config.NewDefaultConfig(), "testdata/nonexistent.psl")
	if !errors.Is(err, cli.ErrValidationFailed) {
		t.Fatalf("runLint() error = %v, want ErrValidationFailed", err)
	}

	var report cli.LintReport
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if len(report.Files) != 1 || report.Files[0].Error == "" {
		t.Errorf("expected one file with a read error, got %+v", report.Files)
	}
	if report.Errors != 1 {
		t.Errorf("Errors = %d, want 1", report.Errors)
	}
}

func TestLintNoFiles(t *testing.T) {
	resetLintFlags()

	_, err := lint(t, config.NewDefaultConfig())
	var cfgErr *cli.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("runLint() error = %v, want ConfigError", err)
	}
	if cli.ExitCode(err) != 2 {
		t.Errorf("ExitCode() = %d, want 2", cli.ExitCode(err))
	}
}

func TestLintUnsupportedFormat(t *testing.T) {
	resetLintFlags()
	lintFlags.format = "xml"

	if _, err := lint(t, config.NewDefaultConfig(), filepath.Join(testdataDir, "valid/shelf.psl")); err == nil {
		t.Error("runLint() with unsupported format should return error")
	}
}

func TestLintDirectory(t *testing.T) {
	resetLintFlags()
	lintFlags.dir = filepath.Join(testdataDir, "valid")
	lintFlags.format = "json"

	out, err := lint(t, config.NewDefaultConfig())
	if err != nil {
		t.Fatalf("runLint() returned error: %v\n%s", err, out)
	}

	var report cli.LintReport
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if len(report.Files) != 2 {
		t.Fatalf("len(Files) = %d, want 2", len(report.Files))
	}
	if filepath.Base(report.Files[0].File) != "borscht.psl" || filepath.Base(report.Files[1].File) != "shelf.psl" {
		t.Errorf("files not in lexical order: %s, %s", report.Files[0].File, report.Files[1].File)
	}
}

func TestCollectFiles(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		dir       string
		patterns  []string
		config    []string
		wantFiles int
	}{
		{
			name:      "recursive pattern",
			patterns:  []string{filepath.Join(testdataDir, "**", "*.psl")},
			wantFiles: 5,
		},
		{
			name:      "config patterns when nothing else is given",
			config:    []string{filepath.Join(testdataDir, "valid", "*.psl")},
			wantFiles: 2,
		},
		{
			name:      "config patterns ignored with explicit files",
			args:      []string{filepath.Join(testdataDir, "valid", "shelf.psl")},
			config:    []string{filepath.Join(testdataDir, "**", "*.psl")},
			wantFiles: 1,
		},
		{
			name:      "directory walk is recursive",
			dir:       testdataDir,
			wantFiles: 5,
		},
		{
			name:      "overlapping selections are deduplicated",
			args:      []string{filepath.Join(testdataDir, "valid", "shelf.psl")},
			patterns:  []string{filepath.Join(testdataDir, "valid", "*.psl"), filepath.Join(testdataDir, "**", "shelf.psl")},
			wantFiles: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.NewDefaultConfig()
			cfg.Lint.Patterns = tt.config

			got, err := collectFiles(tt.args, tt.dir, tt.patterns, cfg.Lint)
			if err != nil {
				t.Fatalf("collectFiles() error = %v", err)
			}
			if len(got) != tt.wantFiles {
				t.Errorf("collectFiles() = %v, want %d files", got, tt.wantFiles)
			}
		})
	}
}

func TestLintCSV(t *testing.T) {
	resetLintFlags()
	lintFlags.format = "csv"

	out, err := lint(t, config.NewDefaultConfig(), filepath.Join(testdataDir, "invalid/unsafe.psl"))
	if !errors.Is(err, cli.ErrValidationFailed) {
		t.Fatalf("runLint() error = %v, want ErrValidationFailed", err)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if lines[0] != "file,rule,level,section,message" {
		t.Errorf("header = %q", lines[0])
	}
	if len(lines) < 2 {
		t.Fatalf("expected issue rows, got:\n%s", out)
	}
}

func TestLintStrict(t *testing.T) {
	borscht := filepath.Join(testdataDir, "valid/borscht.psl")

	t.Run("warnings pass without strict", func(t *testing.T) {
		resetLintFlags()
		if out, err := lint(t, config.NewDefaultConfig(), borscht); err != nil {
			t.Errorf("runLint() error = %v\n%s", err, out)
		}
	})

	t.Run("strict flag", func(t *testing.T) {
		resetLintFlags()
		lintFlags.strict = true
		out, err := lint(t, config.NewDefaultConfig(), borscht)
		if !errors.Is(err, cli.ErrValidationFailed) {
			t.Errorf("runLint() error = %v, want ErrValidationFailed", err)
		}
		if !strings.Contains(out, "Strict mode enabled") {
			t.Errorf("expected strict note in output:\n%s", out)
		}
	})

	t.Run("strict config", func(t *testing.T) {
		resetLintFlags()
		cfg := config.NewDefaultConfig()
		cfg.Lint.Strict = true
		if _, err := lint(t, cfg, borscht); !errors.Is(err, cli.ErrValidationFailed) {
			t.Errorf("runLint() error = %v, want ErrValidationFailed", err)
		}
	})
}

func TestUnknownTagNotes(t *testing.T) {
	doc := parser.Parse("!psl v0.1\ngoal: notes\n\n[FACTS]\n- one\n\n[ZZZZZZZZ]\n- two\n")

	notes := unknownTagNotes(doc)
	if len(notes) != 2 {
		t.Fatalf("unknownTagNotes() = %v, want 2 notes", notes)
	}
	if !strings.Contains(notes[0], "[FACTS]") || !strings.Contains(notes[0], "Did you mean [FACT]?") {
		t.Errorf("notes[0] = %q, want suggestion for [FACT]", notes[0])
	}
	if strings.Contains(notes[1], "Did you mean") {
		t.Errorf("notes[1] = %q, want no suggestion", notes[1])
	}
}

func TestLintProgress(t *testing.T) {
	resetLintFlags()

	var out, progressOut bytes.Buffer
	progress := cli.NewProgressReporter(&progressOut)
	err := runLint(context.Background(), &out, config.NewDefaultConfig(), progress,
		[]string{filepath.Join(testdataDir, "valid/shelf.psl"), filepath.Join(testdataDir, "valid/borscht.psl")})
	if err != nil {
		t.Fatalf("runLint() returned error: %v", err)
	}
	if progress.Current() != 2 {
		t.Errorf("progress.Current() = %d, want 2", progress.Current())
	}
}

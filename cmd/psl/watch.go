package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/trace"

	"mercator-hq/psl/pkg/cli"
	"mercator-hq/psl/pkg/config"
	"mercator-hq/psl/pkg/history"
	"mercator-hq/psl/pkg/history/retention"
	"mercator-hq/psl/pkg/history/storage"
	"mercator-hq/psl/pkg/psl"
	"mercator-hq/psl/pkg/server"
	"mercator-hq/psl/pkg/telemetry/metrics"
	"mercator-hq/psl/pkg/telemetry/tracing"
	"mercator-hq/psl/pkg/watch"
)

var watchFlags struct {
	dir string
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-assess PSL documents as they change",
	Long: `Watch a directory and re-assess PSL documents whenever they change.

Every document is assessed once at startup. After that each create or
write is assessed again once the file has been quiet for watch.debounce.
Results are logged, recorded in history when history.enabled is set and
exported on the metrics endpoint when telemetry.metrics.enabled is set.
With telemetry.tracing.enabled each assessment is exported as a trace.

When started with --config, edits to the configuration file reload the
lint settings without restarting. A file that fails validation is
ignored and the previous settings stay in effect.

Examples:
  # Watch the current directory
  psl watch

  # Watch a procedures directory with JSON logs
  psl watch --dir procedures/ --log-format json`,
	RunE: watchDocuments,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringVarP(&watchFlags.dir, "dir", "d", "", "directory to watch (default: watch.path)")
}

func watchDocuments(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	parent := context.Background()
	if cmd != nil {
		parent = cmd.Context()
	}
	ctx, cancel := cli.SetupSignalHandler(parent)
	defer cancel()

	return runWatch(ctx, cfg)
}

// watchSession holds everything a watch run reports to.
type watchSession struct {
	collector *metrics.Collector
	recorder  *history.Recorder
	tracer    trace.Tracer
	logger    *slog.Logger

	mu        sync.Mutex
	assessor  *psl.Assessor
	documents map[string]bool
}

// runWatch assesses documents under the watch path until ctx is done.
func runWatch(ctx context.Context, cfg *config.Config) error {
	// Cancelled on return so the metrics server and scheduler stop with us.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	logger := slog.Default().With("component", "cmd.watch")

	path := cfg.Watch.Path
	if watchFlags.dir != "" {
		path = watchFlags.dir
	}

	w, err := watch.New(&watch.Config{
		Path:       path,
		Debounce:   cfg.Watch.Debounce,
		Extensions: cfg.Lint.Extensions,
		Recursive:  cfg.Watch.Recursive,
		SkipHidden: true,
	})
	if err != nil {
		return cli.NewCommandError("watch", err)
	}
	defer w.Stop()

	tracer, err := tracing.New(&cfg.Telemetry.Tracing)
	if err != nil {
		return cli.NewCommandError("watch", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), server.DefaultShutdownTimeout)
		defer cancel()
		if err := tracer.Shutdown(shutdownCtx); err != nil {
			logger.Warn("failed to flush traces", "error", err)
		}
	}()

	session := &watchSession{
		assessor:  newAssessor(cfg.Lint).WithTracer(tracer.Tracer()),
		collector: metrics.NewCollector(&cfg.Telemetry.Metrics, nil),
		tracer:    tracer.Tracer(),
		logger:    logger,
		documents: make(map[string]bool),
	}

	if cfg.Telemetry.Metrics.Enabled {
		srv := server.NewServer(&cfg.Telemetry.Metrics, session.collector.Handler())
		go func() {
			if err := srv.Start(ctx); err != nil {
				logger.Error("metrics server failed", "error", err)
			}
		}()
	}

	if cfg.History.Enabled {
		store, err := storage.Open(cfg.History)
		if err != nil {
			return cli.NewCommandError("watch", err)
		}
		defer func() {
			if err := store.Close(); err != nil {
				logger.Warn("failed to close history storage", "error", err)
			}
		}()
		session.recorder = history.NewRecorder(store)

		pruner := retention.NewPruner(store, retention.FromConfig(cfg.History.Retention)).
			WithObserver(session.collector)
		scheduler := retention.NewScheduler(pruner)
		if err := scheduler.Start(ctx); err != nil {
			return cli.NewCommandError("watch", err)
		}
		defer scheduler.Stop()
	}

	if cfgFile != "" {
		if err := session.watchConfig(ctx, cfgFile, cfg.Watch.Debounce); err != nil {
			return cli.NewCommandError("watch", err)
		}
	}

	documents, err := w.Documents()
	if err != nil {
		return cli.NewCommandError("watch", fmt.Errorf("failed to list documents in %s: %w", path, err))
	}
	for _, doc := range documents {
		session.assess(ctx, doc)
	}

	logger.Info("initial assessment complete",
		"path", path,
		"documents", len(documents),
		"debounce", cfg.Watch.Debounce,
	)

	if err := w.Watch(ctx, func(ev watch.Event) { session.handle(ctx, ev) }); err != nil && !errors.Is(err, context.Canceled) {
		return cli.NewCommandError("watch", err)
	}

	logger.Info("watch stopped")
	return nil
}

// handle reacts to one debounced document change.
func (s *watchSession) handle(ctx context.Context, ev watch.Event) {
	s.collector.RecordWatchEvent(string(ev.Op))

	switch ev.Op {
	case watch.OpRemove, watch.OpRename:
		s.mu.Lock()
		delete(s.documents, ev.Path)
		s.collector.SetWatchedDocuments(len(s.documents))
		s.mu.Unlock()
		s.logger.Info("document removed", "path", ev.Path, "op", ev.Op)
	default:
		s.assess(ctx, ev.Path)
	}
}

// assess scores one document and reports the result to the log, the
// metrics collector and history.
func (s *watchSession) assess(ctx context.Context, path string) {
	s.mu.Lock()
	assessor := s.assessor
	s.mu.Unlock()

	start := time.Now()
	a := assessor.AssessFile(ctx, path, nil)
	duration := time.Since(start)

	s.mu.Lock()
	s.documents[path] = true
	s.collector.SetWatchedDocuments(len(s.documents))
	s.mu.Unlock()

	s.collector.RecordAssessment(a, duration)

	if a.Failed() {
		s.logger.Warn("assessment failed", "path", path, "error", a.Error)
	} else {
		s.logger.Info("document assessed",
			"path", path,
			"quality_level", a.QualityLevel,
			"quality_score", a.QualityScore,
			"issues", a.IssuesCount,
			"duration", duration,
		)
	}

	if s.recorder == nil {
		return
	}
	_, err := s.recorder.Record(ctx, path, a)
	if err != nil {
		s.logger.Warn("failed to record assessment", "path", path, "error", err)
	}
	s.collector.RecordHistoryWrite(err)
}

// watchConfig reloads the configuration whenever path changes, until ctx
// is done.
func (s *watchSession) watchConfig(ctx context.Context, path string, debounce time.Duration) error {
	w, err := watch.New(&watch.Config{
		Path:       path,
		Debounce:   debounce,
		Extensions: []string{filepath.Ext(path)},
	})
	if err != nil {
		return fmt.Errorf("failed to watch configuration %s: %w", path, err)
	}

	go func() {
		err := w.Watch(ctx, func(ev watch.Event) {
			if ev.Op == watch.OpCreate || ev.Op == watch.OpWrite {
				s.reloadConfig(path)
			}
		})
		if err != nil {
			s.logger.Warn("configuration watch stopped", "path", path, "error", err)
		}
	}()

	return nil
}

// reloadConfig re-reads path and rebuilds the assessor from its lint
// section. A file that fails to load keeps the current assessor.
func (s *watchSession) reloadConfig(path string) error {
	if err := config.ReloadConfig(path); err != nil {
		s.logger.Warn("configuration reload failed, keeping previous settings", "path", path, "error", err)
		return err
	}

	lint := config.GetConfig().Lint
	assessor := newAssessor(lint).WithTracer(s.tracer)

	s.mu.Lock()
	s.assessor = assessor
	s.mu.Unlock()

	s.logger.Info("configuration reloaded",
		"path", path,
		"clarity_max_words", lint.ClarityMaxWords,
		"continue_after_3c", lint.ContinueAfter3C,
	)
	return nil
}

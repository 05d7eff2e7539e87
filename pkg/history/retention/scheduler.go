package retention

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Run is the outcome of one pruning pass.
type Run struct {
	Started  time.Time
	Duration time.Duration
	Deleted  int64
	Err      error
}

// Scheduler prunes history on the retention cron schedule. Passes never
// overlap: a tick that fires while the previous pass is still deleting is
// skipped.
type Scheduler struct {
	pruner *Pruner
	logger *slog.Logger

	mu       sync.Mutex
	cron     *cron.Cron
	schedule cron.Schedule
	last     *Run
}

// NewScheduler creates a scheduler for pruner. Nothing runs until Start.
func NewScheduler(pruner *Pruner) *Scheduler {
	return &Scheduler{
		pruner: pruner,
		logger: slog.Default().With("component", "history.scheduler"),
	}
}

// Start schedules pruning on the pruner's PruneSchedule until ctx is done
// or Stop is called. An empty schedule leaves pruning to `psl history prune`.
func (s *Scheduler) Start(ctx context.Context) error {
	cfg := s.pruner.Config()
	if cfg.PruneSchedule == "" {
		s.logger.Info("history pruning not scheduled")
		return nil
	}

	schedule, err := cron.ParseStandard(cfg.PruneSchedule)
	if err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", cfg.PruneSchedule, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron != nil {
		return errors.New("retention scheduler already started")
	}

	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	c.Schedule(schedule, cron.FuncJob(func() { s.RunNow(ctx) }))
	c.Start()

	s.cron = c
	s.schedule = schedule
	context.AfterFunc(ctx, s.Stop)

	s.logger.Info("retention scheduler started",
		"schedule", cfg.PruneSchedule,
		"next_run", schedule.Next(time.Now()),
		"retention_days", cfg.RetentionDays,
		"max_records", cfg.MaxRecords,
	)
	return nil
}

// RunNow runs one pruning pass and keeps its outcome for LastRun.
func (s *Scheduler) RunNow(ctx context.Context) Run {
	run := Run{Started: time.Now()}
	run.Deleted, run.Err = s.pruner.Prune(ctx)
	run.Duration = time.Since(run.Started)

	s.mu.Lock()
	s.last = &run
	s.mu.Unlock()

	if run.Err != nil {
		s.logger.Error("history pruning failed", "error", run.Err)
	} else {
		s.logger.Debug("history pruning completed", "deleted_count", run.Deleted, "duration", run.Duration)
	}
	return run
}

// Stop cancels future passes and waits for a pass in progress to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	c := s.cron
	s.cron = nil
	s.schedule = nil
	s.mu.Unlock()

	if c == nil {
		return
	}
	// RunNow takes s.mu, so wait without holding it.
	<-c.Stop().Done()
	s.logger.Info("retention scheduler stopped")
}

// IsRunning returns true while passes are scheduled.
func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.cron != nil
}

// NextRun returns when the next pass is due, or false if nothing is scheduled.
func (s *Scheduler) NextRun() (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.schedule == nil {
		return time.Time{}, false
	}
	return s.schedule.Next(time.Now()), true
}

// LastRun returns the most recent pass, or false if none has run.
func (s *Scheduler) LastRun() (Run, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.last == nil {
		return Run{}, false
	}
	return *s.last, true
}

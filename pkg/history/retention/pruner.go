package retention

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"mercator-hq/psl/pkg/config"
	"mercator-hq/psl/pkg/history"
)

// Config contains retention policy configuration.
type Config struct {
	// RetentionDays is the number of days to keep records (0 = keep forever).
	RetentionDays int

	// PruneSchedule is a standard five-field cron expression. Empty disables
	// scheduled pruning.
	PruneSchedule string

	// MaxRecords caps the number of stored records (0 = unlimited).
	MaxRecords int64
}

// DefaultConfig returns the default retention configuration.
func DefaultConfig() *Config {
	return &Config{
		RetentionDays: config.DefaultRetentionDays,
		PruneSchedule: config.DefaultRetentionSchedule,
		MaxRecords:    config.DefaultRetentionMaxRecords,
	}
}

// FromConfig converts the history.retention config section.
func FromConfig(cfg config.RetentionConfig) *Config {
	return &Config{
		RetentionDays: cfg.Days,
		PruneSchedule: cfg.Schedule,
		MaxRecords:    cfg.MaxRecords,
	}
}

// Observer is notified of every pruning run that deleted records.
type Observer interface {
	RecordPruned(count int64)
}

// Pruner deletes history records that fall outside the retention policy.
type Pruner struct {
	storage  history.Storage
	config   *Config
	logger   *slog.Logger
	observer Observer
	now      func() time.Time
}

// NewPruner creates a pruner for storage. A nil config means DefaultConfig.
func NewPruner(storage history.Storage, config *Config) *Pruner {
	if config == nil {
		config = DefaultConfig()
	}

	return &Pruner{
		storage: storage,
		config:  config,
		logger:  slog.Default().With("component", "history.retention"),
		now:     time.Now,
	}
}

// WithObserver sets the observer told about deleted records.
func (p *Pruner) WithObserver(o Observer) *Pruner {
	p.observer = o
	return p
}

// Config returns the pruner's retention policy.
func (p *Pruner) Config() *Config {
	return p.config
}

// Prune applies the age limit and then the record cap, returning the total
// number of records deleted.
func (p *Pruner) Prune(ctx context.Context) (int64, error) {
	var totalDeleted int64

	if p.config.RetentionDays > 0 {
		deleted, err := p.pruneByAge(ctx)
		if err != nil {
			return totalDeleted, fmt.Errorf("prune by age failed: %w", err)
		}
		totalDeleted += deleted
	}

	if p.config.MaxRecords > 0 {
		deleted, err := p.pruneByCount(ctx)
		if err != nil {
			return totalDeleted, fmt.Errorf("prune by count failed: %w", err)
		}
		totalDeleted += deleted
	}

	if totalDeleted == 0 {
		p.logger.Debug("no records pruned",
			"retention_days", p.config.RetentionDays,
			"max_records", p.config.MaxRecords,
		)
		return 0, nil
	}

	p.logger.Info("history pruning completed",
		"total_deleted", totalDeleted,
		"retention_days", p.config.RetentionDays,
		"max_records", p.config.MaxRecords,
	)

	if p.observer != nil {
		p.observer.RecordPruned(totalDeleted)
	}

	return totalDeleted, nil
}

// pruneByAge deletes records older than the retention period.
func (p *Pruner) pruneByAge(ctx context.Context) (int64, error) {
	cutoff := p.now().AddDate(0, 0, -p.config.RetentionDays)

	p.logger.Debug("pruning by age",
		"cutoff_time", cutoff,
		"retention_days", p.config.RetentionDays,
	)

	deleted, err := p.storage.Delete(ctx, &history.Query{Until: &cutoff})
	if err != nil {
		return 0, history.NewRetentionError(p.config.RetentionDays, err)
	}

	return deleted, nil
}

// pruneByCount deletes the oldest records beyond MaxRecords. Records that
// share the cutoff timestamp are deleted together.
func (p *Pruner) pruneByCount(ctx context.Context) (int64, error) {
	count, err := p.storage.Count(ctx, &history.Query{})
	if err != nil {
		return 0, fmt.Errorf("failed to count records: %w", err)
	}

	if count <= p.config.MaxRecords {
		p.logger.Debug("record count within limit",
			"current", count,
			"max", p.config.MaxRecords,
		)
		return 0, nil
	}

	// The newest record that must go sits right after the MaxRecords
	// newest ones.
	victims, err := p.storage.Query(ctx, &history.Query{
		Offset: int(p.config.MaxRecords),
		Limit:  1,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to query records: %w", err)
	}
	if len(victims) == 0 {
		return 0, nil
	}

	cutoff := victims[0].AssessedAt

	p.logger.Info("record count exceeds limit, pruning oldest",
		"current_count", count,
		"max_records", p.config.MaxRecords,
		"cutoff_time", cutoff,
	)

	deleted, err := p.storage.Delete(ctx, &history.Query{Until: &cutoff})
	if err != nil {
		return 0, fmt.Errorf("delete failed: %w", err)
	}

	return deleted, nil
}

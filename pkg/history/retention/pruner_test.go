package retention

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"mercator-hq/psl/pkg/config"
	"mercator-hq/psl/pkg/history"
	"mercator-hq/psl/pkg/history/storage"
)

var now = time.Date(2026, 6, 1, 3, 0, 0, 0, time.UTC)

type countingObserver struct {
	total int64
	calls int
}

func (o *countingObserver) RecordPruned(count int64) {
	o.total += count
	o.calls++
}

type failingStorage struct {
	*storage.MemoryStorage
}

func (failingStorage) Delete(context.Context, *history.Query) (int64, error) {
	return 0, errors.New("disk full")
}

// seed stores one record per age, in days before now.
func seed(t *testing.T, s history.Storage, ages ...int) {
	t.Helper()
	for i, age := range ages {
		r := &history.Record{
			ID:           fmt.Sprintf("r%d", i),
			Path:         "a.psl",
			AssessedAt:   now.AddDate(0, 0, -age),
			QualityLevel: "GOOD",
		}
		if err := s.Store(context.Background(), r); err != nil {
			t.Fatalf("Store() error = %v", err)
		}
	}
}

func newTestPruner(s history.Storage, cfg *Config) *Pruner {
	p := NewPruner(s, cfg)
	p.now = func() time.Time { return now }
	return p
}

func TestPruner_Prune(t *testing.T) {
	tests := []struct {
		name          string
		config        Config
		ages          []int
		wantDeleted   int64
		wantRemaining int64
	}{
		{
			name:          "by age",
			config:        Config{RetentionDays: 30},
			ages:          []int{1, 10, 31, 90},
			wantDeleted:   2,
			wantRemaining: 2,
		},
		{
			name:          "keep forever",
			config:        Config{},
			ages:          []int{1, 400},
			wantDeleted:   0,
			wantRemaining: 2,
		},
		{
			name:          "by count",
			config:        Config{MaxRecords: 2},
			ages:          []int{1, 2, 3, 4, 5},
			wantDeleted:   3,
			wantRemaining: 2,
		},
		{
			name:          "count within limit",
			config:        Config{MaxRecords: 10},
			ages:          []int{1, 2},
			wantDeleted:   0,
			wantRemaining: 2,
		},
		{
			name:          "age then count",
			config:        Config{RetentionDays: 7, MaxRecords: 1},
			ages:          []int{1, 2, 30},
			wantDeleted:   2,
			wantRemaining: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := storage.NewMemoryStorage()
			seed(t, s, tt.ages...)

			observer := &countingObserver{}
			pruner := newTestPruner(s, &tt.config).WithObserver(observer)

			deleted, err := pruner.Prune(context.Background())
			if err != nil {
				t.Fatalf("Prune() error = %v", err)
			}
			if deleted != tt.wantDeleted {
				t.Errorf("Prune() deleted %d, want %d", deleted, tt.wantDeleted)
			}

			remaining, _ := s.Count(context.Background(), &history.Query{})
			if remaining != tt.wantRemaining {
				t.Errorf("remaining = %d, want %d", remaining, tt.wantRemaining)
			}

			if observer.total != tt.wantDeleted {
				t.Errorf("observer total = %d, want %d", observer.total, tt.wantDeleted)
			}
			if tt.wantDeleted == 0 && observer.calls != 0 {
				t.Errorf("observer called %d times for empty prune", observer.calls)
			}
		})
	}
}

func TestPruner_KeepsNewest(t *testing.T) {
	s := storage.NewMemoryStorage()
	seed(t, s, 5, 1, 3)

	if _, err := newTestPruner(s, &Config{MaxRecords: 1}).Prune(context.Background()); err != nil {
		t.Fatalf("Prune() error = %v", err)
	}

	records, _ := s.Query(context.Background(), &history.Query{})
	if len(records) != 1 || records[0].ID != "r1" {
		t.Errorf("kept %+v, want only r1", records)
	}
}

func TestPruner_StorageError(t *testing.T) {
	s := failingStorage{storage.NewMemoryStorage()}
	seed(t, s, 100)

	_, err := newTestPruner(s, &Config{RetentionDays: 30}).Prune(context.Background())

	var retentionErr *history.RetentionError
	if !errors.As(err, &retentionErr) {
		t.Fatalf("expected RetentionError, got %v", err)
	}
	if retentionErr.RetentionDays != 30 {
		t.Errorf("RetentionDays = %d, want 30", retentionErr.RetentionDays)
	}
}

func TestFromConfig(t *testing.T) {
	cfg := FromConfig(config.RetentionConfig{Days: 14, Schedule: "0 * * * *", MaxRecords: 500})

	if cfg.RetentionDays != 14 || cfg.PruneSchedule != "0 * * * *" || cfg.MaxRecords != 500 {
		t.Errorf("FromConfig() = %+v", cfg)
	}

	if got := NewPruner(nil, nil).Config(); got.RetentionDays != config.DefaultRetentionDays {
		t.Errorf("default RetentionDays = %d, want %d", got.RetentionDays, config.DefaultRetentionDays)
	}
}

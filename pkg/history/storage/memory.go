package storage

import (
	"context"
	"slices"
	"strings"
	"sync"

	"mercator-hq/psl/pkg/history"
)

// MemoryStorage implements history.Storage in memory.
// Records are lost when the process exits; it backs the "memory" driver
// and tests.
type MemoryStorage struct {
	records map[string]*history.Record
	mu      sync.RWMutex
}

// NewMemoryStorage creates a new in-memory storage backend.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		records: make(map[string]*history.Record),
	}
}

// Store persists a copy of the record.
func (s *MemoryStorage) Store(ctx context.Context, record *history.Record) error {
	if err := ctx.Err(); err != nil {
		return history.NewStorageError(DriverMemory, "store", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[record.ID] = copyRecord(record)
	return nil
}

// Query returns copies of the matching records, sorted and paginated.
func (s *MemoryStorage) Query(ctx context.Context, query *history.Query) ([]*history.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, history.NewStorageError(DriverMemory, "query", err)
	}

	s.mu.RLock()
	results := []*history.Record{}
	for _, record := range s.records {
		if query.Matches(record) {
			results = append(results, copyRecord(record))
		}
	}
	s.mu.RUnlock()

	slices.SortFunc(results, func(a, b *history.Record) int {
		c := a.AssessedAt.Compare(b.AssessedAt)
		if c == 0 {
			c = strings.Compare(a.ID, b.ID)
		}
		if query.Ascending {
			return c
		}
		return -c
	})

	start := min(query.Offset, len(results))
	limit := query.Limit
	if limit <= 0 {
		limit = history.DefaultQueryLimit
	}
	end := min(start+limit, len(results))

	return results[start:end], nil
}

// Count returns the number of matching records.
func (s *MemoryStorage) Count(ctx context.Context, query *history.Query) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, history.NewStorageError(DriverMemory, "count", err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int64
	for _, record := range s.records {
		if query.Matches(record) {
			count++
		}
	}
	return count, nil
}

// Delete removes matching records.
func (s *MemoryStorage) Delete(ctx context.Context, query *history.Query) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, history.NewStorageError(DriverMemory, "delete", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var deleted int64
	for id, record := range s.records {
		if query.Matches(record) {
			delete(s.records, id)
			deleted++
		}
	}
	return deleted, nil
}

// Close is a no-op.
func (s *MemoryStorage) Close() error {
	return nil
}

func copyRecord(r *history.Record) *history.Record {
	c := *r
	c.Issues = slices.Clone(r.Issues)
	return &c
}

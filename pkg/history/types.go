package history

import (
	"context"
	"time"

	pslErrors "mercator-hq/psl/pkg/psl/errors"
)

// Record is a stored assessment of one PSL document at one point in time.
// Records are immutable once stored.
type Record struct {
	// Identity
	ID   string `json:"id"`   // UUID v4
	Path string `json:"path"` // Document path as given to the assessor

	// Timestamps
	AssessedAt time.Time `json:"assessed_at"`

	// Header
	Version string `json:"version,omitempty"`
	Goal    string `json:"goal,omitempty"`

	// Scores
	QualityScore float64 `json:"quality_score"`
	QualityLevel string  `json:"quality_level"`
	CSR          float64 `json:"csr"`
	HRR          float64 `json:"hrr"`
	PSLCoverage  float64 `json:"psl_coverage"`
	ThreeCScore  float64 `json:"three_c_score"`

	// Issues
	IssuesCount  int               `json:"issues_count"`
	ErrorCount   int               `json:"error_count"`
	WarningCount int               `json:"warning_count"`
	Issues       []pslErrors.Issue `json:"issues"`

	// Error is set when the assessment failed.
	Error string `json:"error,omitempty"`
}

// Query defines filter parameters for history records.
type Query struct {
	// Time range
	Since *time.Time `json:"since,omitempty"` // Inclusive lower bound on AssessedAt
	Until *time.Time `json:"until,omitempty"` // Inclusive upper bound on AssessedAt

	// Filters
	Path  string `json:"path,omitempty"`  // Exact document path
	Level string `json:"level,omitempty"` // Quality level, e.g. "GOOD"

	// Pagination
	Limit  int `json:"limit,omitempty"`  // Max records to return (0 = backend default)
	Offset int `json:"offset,omitempty"` // Skip N records

	// Sorting by AssessedAt. Newest first unless Ascending is set.
	Ascending bool `json:"ascending,omitempty"`
}

// DefaultQueryLimit is used when Query.Limit is zero.
const DefaultQueryLimit = 100

// Storage defines the interface for history storage backends.
// Implementations must be safe for concurrent use.
type Storage interface {
	// Store persists a record.
	Store(ctx context.Context, record *Record) error

	// Query returns records matching the filters, newest first by default.
	// Returns an empty slice if no records match.
	Query(ctx context.Context, query *Query) ([]*Record, error)

	// Count returns the number of records matching the filters.
	// Pagination fields are ignored.
	Count(ctx context.Context, query *Query) (int64, error)

	// Delete removes records matching the filters and returns how many were
	// removed. Pagination fields are ignored.
	Delete(ctx context.Context, query *Query) (int64, error)

	// Close releases any resources held by the backend.
	Close() error
}

// Matches reports whether a record satisfies the query filters.
// Backends that filter in memory use it.
func (q *Query) Matches(r *Record) bool {
	if q.Since != nil && r.AssessedAt.Before(*q.Since) {
		return false
	}
	if q.Until != nil && r.AssessedAt.After(*q.Until) {
		return false
	}
	if q.Path != "" && r.Path != q.Path {
		return false
	}
	if q.Level != "" && r.QualityLevel != q.Level {
		return false
	}
	return true
}

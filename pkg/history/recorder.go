package history

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"mercator-hq/psl/pkg/psl"
	pslErrors "mercator-hq/psl/pkg/psl/errors"
)

// Recorder turns assessments into history records and stores them.
type Recorder struct {
	storage Storage
	logger  *slog.Logger
	now     func() time.Time
}

// NewRecorder creates a recorder writing to storage.
func NewRecorder(storage Storage) *Recorder {
	return &Recorder{
		storage: storage,
		logger:  slog.Default().With("component", "history.recorder"),
		now:     time.Now,
	}
}

// Record stores the assessment of the document at path and returns the
// stored record.
func (r *Recorder) Record(ctx context.Context, path string, a psl.Assessment) (*Record, error) {
	if r.storage == nil {
		return nil, NewRecorderError(path, errors.New("no storage configured"))
	}

	record := NewRecord(path, a, r.now())

	if err := r.storage.Store(ctx, record); err != nil {
		r.logger.Error("failed to store assessment",
			"path", path,
			"error", err,
		)
		return nil, NewRecorderError(path, err)
	}

	r.logger.Debug("assessment recorded",
		"id", record.ID,
		"path", path,
		"quality_level", record.QualityLevel,
	)

	return record, nil
}

// NewRecord builds a record from an assessment with a fresh UUID.
func NewRecord(path string, a psl.Assessment, at time.Time) *Record {
	issues := a.Issues
	if issues == nil {
		issues = []pslErrors.Issue{}
	}

	record := &Record{
		ID:           uuid.New().String(),
		Path:         path,
		AssessedAt:   at.UTC(),
		QualityScore: a.QualityScore,
		QualityLevel: string(a.QualityLevel),
		CSR:          a.Metrics.CSR,
		HRR:          a.Metrics.HRR,
		PSLCoverage:  a.Metrics.PSLCoverage,
		ThreeCScore:  a.Metrics.ThreeCScore,
		IssuesCount:  len(issues),
		ErrorCount:   pslErrors.CountLevel(issues, pslErrors.LevelError),
		WarningCount: pslErrors.CountLevel(issues, pslErrors.LevelWarning),
		Issues:       issues,
		Error:        a.Error,
	}

	if a.Document != nil {
		record.Version = a.Document.Version
		record.Goal = a.Document.Goal
	}

	return record
}

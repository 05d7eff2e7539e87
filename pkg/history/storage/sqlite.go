package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	_ "modernc.org/sqlite"

	"mercator-hq/psl/pkg/history"
)

// SQLiteConfig contains configuration for the SQLite storage backend.
type SQLiteConfig struct {
	// Driver is the database/sql driver name: DriverSQLite (modernc.org/sqlite,
	// pure Go) or DriverSQLite3 (mattn/go-sqlite3, requires cgo).
	// Default: DriverSQLite
	Driver string

	// Path is the database file path.
	Path string

	// MaxOpenConns is the maximum number of open connections to the database.
	// Default: 4
	MaxOpenConns int

	// WALMode enables Write-Ahead Logging mode for better concurrency.
	// Default: true
	WALMode bool

	// BusyTimeout is the duration to wait when the database is locked.
	// Default: 5 seconds
	BusyTimeout time.Duration
}

// DefaultSQLiteConfig returns the default SQLite configuration.
func DefaultSQLiteConfig() *SQLiteConfig {
	return &SQLiteConfig{
		Driver:       DriverSQLite,
		Path:         "data/psl-history.db",
		MaxOpenConns: 4,
		WALMode:      true,
		BusyTimeout:  5 * time.Second,
	}
}

// SQLiteStorage implements history.Storage using SQLite.
type SQLiteStorage struct {
	db     *sql.DB
	config *SQLiteConfig
	logger *slog.Logger
}

// NewSQLiteStorage opens the database, enables WAL mode if configured and
// creates the schema.
func NewSQLiteStorage(config *SQLiteConfig) (*SQLiteStorage, error) {
	if config == nil {
		config = DefaultSQLiteConfig()
	}
	if config.Driver == "" {
		config.Driver = DriverSQLite
	}

	logger := slog.Default().With("component", "history.storage.sqlite", "driver", config.Driver)

	if dir := filepath.Dir(config.Path); config.Path != ":memory:" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, history.NewStorageError(config.Driver, "create_dir", err)
		}
	}

	db, err := sql.Open(config.Driver, config.Path)
	if err != nil {
		return nil, history.NewStorageError(config.Driver, "open", err)
	}

	if config.MaxOpenConns > 0 {
		db.SetMaxOpenConns(config.MaxOpenConns)
	}

	s := &SQLiteStorage{
		db:     db,
		config: config,
		logger: logger,
	}

	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("SQLite storage initialized",
		"path", config.Path,
		"wal_mode", config.WALMode,
		"max_open_conns", config.MaxOpenConns,
	)

	return s, nil
}

// initialize sets pragmas and creates the schema.
func (s *SQLiteStorage) initialize() error {
	// Set busy timeout first so the WAL switch waits on a locked file.
	_, err := s.db.Exec(fmt.Sprintf("PRAGMA busy_timeout=%d;", s.config.BusyTimeout.Milliseconds()))
	if err != nil {
		return s.storageError("set_busy_timeout", err)
	}

	if s.config.WALMode {
		if _, err := s.db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
			return s.storageError("enable_wal", err)
		}
		s.logger.Debug("WAL mode enabled")
	}

	if _, err := s.db.Exec(Schema); err != nil {
		return s.storageError("create_schema", err)
	}

	if _, err := s.db.Exec(InsertSchemaVersion, SchemaVersion); err != nil {
		return s.storageError("insert_schema_version", err)
	}

	var version int
	err = s.db.QueryRow(GetSchemaVersion).Scan(&version)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return s.storageError("get_schema_version", err)
	}

	if version != SchemaVersion {
		return s.storageError("schema_version_mismatch",
			fmt.Errorf("expected schema version %d, got %d", SchemaVersion, version))
	}

	s.logger.Debug("schema version verified", "version", version)

	return nil
}

// Store persists a record.
func (s *SQLiteStorage) Store(ctx context.Context, record *history.Record) error {
	issues, err := json.Marshal(record.Issues)
	if err != nil {
		return s.storageError("store", err)
	}

	var errorVal any
	if record.Error != "" {
		errorVal = record.Error
	}

	_, err = s.db.ExecContext(ctx,
		"INSERT INTO assessments ("+columns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		record.ID, record.Path, record.AssessedAt.UnixNano(), record.Version, record.Goal,
		record.QualityScore, record.QualityLevel, record.CSR, record.HRR, record.PSLCoverage, record.ThreeCScore,
		record.IssuesCount, record.ErrorCount, record.WarningCount, string(issues), errorVal,
	)
	if err != nil {
		return s.storageError("store", err)
	}

	return nil
}

// Query retrieves records matching the query filters.
func (s *SQLiteStorage) Query(ctx context.Context, query *history.Query) ([]*history.Record, error) {
	whereClause, args := buildWhereClause(query)

	sqlQuery := "SELECT " + columns + " FROM assessments"
	if whereClause != "" {
		sqlQuery += " WHERE " + whereClause
	}

	sortOrder := "DESC"
	if query.Ascending {
		sortOrder = "ASC"
	}
	sqlQuery += fmt.Sprintf(" ORDER BY assessed_at %s, id %s", sortOrder, sortOrder)

	limit := history.DefaultQueryLimit
	if query.Limit > 0 {
		limit = query.Limit
	}
	sqlQuery += " LIMIT ? OFFSET ?"
	args = append(args, limit, max(query.Offset, 0))

	rows, err := s.db.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, s.storageError("query", err)
	}
	defer rows.Close()

	records := []*history.Record{}
	for rows.Next() {
		record, err := scanRow(rows)
		if err != nil {
			return nil, s.storageError("scan", err)
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, s.storageError("query", err)
	}

	return records, nil
}

// Count returns the number of records matching the query filters.
func (s *SQLiteStorage) Count(ctx context.Context, query *history.Query) (int64, error) {
	whereClause, args := buildWhereClause(query)

	sqlQuery := "SELECT COUNT(*) FROM assessments"
	if whereClause != "" {
		sqlQuery += " WHERE " + whereClause
	}

	var count int64
	if err := s.db.QueryRowContext(ctx, sqlQuery, args...).Scan(&count); err != nil {
		return 0, s.storageError("count", err)
	}

	return count, nil
}

// Delete removes records matching the query filters.
func (s *SQLiteStorage) Delete(ctx context.Context, query *history.Query) (int64, error) {
	whereClause, args := buildWhereClause(query)

	sqlQuery := "DELETE FROM assessments"
	if whereClause != "" {
		sqlQuery += " WHERE " + whereClause
	}

	result, err := s.db.ExecContext(ctx, sqlQuery, args...)
	if err != nil {
		return 0, s.storageError("delete", err)
	}

	count, err := result.RowsAffected()
	if err != nil {
		return 0, s.storageError("delete", err)
	}

	return count, nil
}

// Close closes the database.
func (s *SQLiteStorage) Close() error {
	if err := s.db.Close(); err != nil {
		return s.storageError("close", err)
	}

	s.logger.Info("SQLite storage closed")
	return nil
}

func (s *SQLiteStorage) storageError(operation string, err error) error {
	return history.NewStorageError(s.config.Driver, operation, err)
}

// buildWhereClause builds a SQL WHERE clause (without the keyword) and its
// arguments from the query filters.
func buildWhereClause(query *history.Query) (string, []any) {
	var conditions []string
	var args []any

	if query.Since != nil {
		conditions = append(conditions, "assessed_at >= ?")
		args = append(args, query.Since.UnixNano())
	}
	if query.Until != nil {
		conditions = append(conditions, "assessed_at <= ?")
		args = append(args, query.Until.UnixNano())
	}
	if query.Path != "" {
		conditions = append(conditions, "path = ?")
		args = append(args, query.Path)
	}
	if query.Level != "" {
		conditions = append(conditions, "quality_level = ?")
		args = append(args, query.Level)
	}

	return strings.Join(conditions, " AND "), args
}

// scanRow scans a database row into a Record.
func scanRow(rows *sql.Rows) (*history.Record, error) {
	var record history.Record
	var assessedAt int64
	var version, goal, errorVal sql.NullString
	var issues string

	err := rows.Scan(
		&record.ID, &record.Path, &assessedAt, &version, &goal,
		&record.QualityScore, &record.QualityLevel, &record.CSR, &record.HRR, &record.PSLCoverage, &record.ThreeCScore,
		&record.IssuesCount, &record.ErrorCount, &record.WarningCount, &issues, &errorVal,
	)
	if err != nil {
		return nil, err
	}

	record.AssessedAt = time.Unix(0, assessedAt).UTC()
	record.Version = version.String
	record.Goal = goal.String
	record.Error = errorVal.String

	if err := json.Unmarshal([]byte(issues), &record.Issues); err != nil {
		return nil, fmt.Errorf("decode issues for %s: %w", record.ID, err)
	}

	return &record, nil
}

package storage

// SchemaVersion is the current database schema version.
const SchemaVersion = 1

// Schema contains the SQL statements to create the history database schema.
// assessed_at is stored as Unix nanoseconds so both SQLite drivers read
// it back identically.
const Schema = `
CREATE TABLE IF NOT EXISTS assessments (
    id TEXT PRIMARY KEY,
    path TEXT NOT NULL,
    assessed_at INTEGER NOT NULL,

    version TEXT,
    goal TEXT,

    quality_score REAL NOT NULL,
    quality_level TEXT NOT NULL,
    csr REAL NOT NULL,
    hrr REAL NOT NULL,
    psl_coverage REAL NOT NULL,
    three_c_score REAL NOT NULL,

    issues_count INTEGER NOT NULL,
    error_count INTEGER NOT NULL,
    warning_count INTEGER NOT NULL,
    issues TEXT NOT NULL,

    error TEXT
);

CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY,
    applied_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_assessments_assessed_at ON assessments(assessed_at);
CREATE INDEX IF NOT EXISTS idx_assessments_path ON assessments(path);
CREATE INDEX IF NOT EXISTS idx_assessments_quality_level ON assessments(quality_level);
`

// InsertSchemaVersion inserts the schema version into the schema_version table.
const InsertSchemaVersion = `
INSERT INTO schema_version (version, applied_at)
VALUES (?, datetime('now'))
ON CONFLICT(version) DO NOTHING;
`

// GetSchemaVersion retrieves the current schema version from the database.
const GetSchemaVersion = `
SELECT version FROM schema_version ORDER BY version DESC LIMIT 1;
`

const columns = `id, path, assessed_at, version, goal,
    quality_score, quality_level, csr, hrr, psl_coverage, three_c_score,
    issues_count, error_count, warning_count, issues, error`

// Package storage provides history.Storage backends.
//
// Three drivers are available, selected by history.driver in the config:
//
//   - sqlite: SQLite through modernc.org/sqlite (pure Go, the default)
//   - sqlite3: SQLite through github.com/mattn/go-sqlite3 (requires cgo)
//   - memory: an in-process map, used by tests and one-off runs
//
// Both SQLite drivers share the schema in sqlite_schema.go.
package storage

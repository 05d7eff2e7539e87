package storage

import (
	"fmt"

	"mercator-hq/psl/pkg/config"
	"mercator-hq/psl/pkg/history"
)

// Storage driver names accepted in history.driver.
const (
	DriverSQLite  = "sqlite"  // modernc.org/sqlite, pure Go
	DriverSQLite3 = "sqlite3" // github.com/mattn/go-sqlite3, cgo
	DriverMemory  = "memory"
)

// Open creates the storage backend selected by cfg.Driver.
func Open(cfg config.HistoryConfig) (history.Storage, error) {
	switch cfg.Driver {
	case DriverMemory:
		return NewMemoryStorage(), nil
	case DriverSQLite, DriverSQLite3, "":
		return NewSQLiteStorage(&SQLiteConfig{
			Driver:       cfg.Driver,
			Path:         cfg.Path,
			MaxOpenConns: cfg.MaxOpenConns,
			WALMode:      true,
			BusyTimeout:  cfg.BusyTimeout,
		})
	default:
		return nil, history.NewStorageError(cfg.Driver, "open",
			fmt.Errorf("unknown driver %q (want %s, %s or %s)", cfg.Driver, DriverSQLite, DriverSQLite3, DriverMemory))
	}
}

// Package config provides configuration management for the PSL toolkit.
//
// Configuration is read from an optional YAML file, completed with defaults,
// overridden by PSL_* environment variables and validated. Validation uses
// go-playground/validator struct tags for per-field rules plus a few
// cross-field checks, and reports every problem at once:
//
//	configuration validation failed with 2 errors:
//	  - history.driver: must be one of: sqlite, sqlite3, memory
//	  - history.retention.schedule: invalid cron expression: ...
//
// # Environment Variable Overrides
//
// Variables follow the convention PSL_SECTION_FIELD:
//
//   - PSL_LINT_STRICT overrides lint.strict
//   - PSL_HISTORY_DRIVER overrides history.driver
//   - PSL_TELEMETRY_LOGGING_LEVEL overrides telemetry.logging.level
//
// A .env file in the working directory is loaded first; variables already
// present in the environment win.
//
// # Example Configuration
//
//	lint:
//	  strict: true
//	  patterns: ["procedures/**/*.psl"]
//
//	history:
//	  enabled: true
//	  driver: sqlite
//	  path: data/psl-history.db
//	  retention:
//	    days: 30
//
//	telemetry:
//	  logging:
//	    level: debug
//	    format: text
//
// # Singleton
//
//	if err := config.Initialize("psl.yaml"); err != nil {
//	    log.Fatal(err)
//	}
//	cfg := config.GetConfig()
package config

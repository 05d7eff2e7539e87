// Package logging configures structured logging for the PSL toolkit.
//
// It wraps log/slog with three output formats: json for machines, text
// (logfmt) for log files, and console, which is text without timestamps
// for interactive CLI use. Components obtain their logger with
//
//	logger := slog.Default().With("component", "history.sqlite")
//
// after the CLI has called New(...).SetDefault().
//
// Document and run identifiers can be carried on a context and are added
// to entries logged with InfoContext and ErrorContext.
package logging

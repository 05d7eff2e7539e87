package logging

import "context"

// Context keys for common log fields.
type contextKey string

const (
	// DocumentKey is the context key for the PSL document path being processed.
	DocumentKey contextKey = "document"

	// RunIDKey is the context key for a lint or watch run identifier.
	RunIDKey contextKey = "run_id"
)

// WithDocument adds a document path to the context.
func WithDocument(ctx context.Context, path string) context.Context {
	return context.WithValue(ctx, DocumentKey, path)
}

// GetDocument retrieves the document path from the context.
func GetDocument(ctx context.Context) string {
	if path, ok := ctx.Value(DocumentKey).(string); ok {
		return path
	}
	return ""
}

// WithRunID adds a run identifier to the context.
func WithRunID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RunIDKey, id)
}

// GetRunID retrieves the run identifier from the context.
func GetRunID(ctx context.Context) string {
	if id, ok := ctx.Value(RunIDKey).(string); ok {
		return id
	}
	return ""
}

// extractContextFields returns key/value pairs for every known field set in ctx.
func extractContextFields(ctx context.Context) []any {
	var fields []any
	if id := GetRunID(ctx); id != "" {
		fields = append(fields, string(RunIDKey), id)
	}
	if path := GetDocument(ctx); path != "" {
		fields = append(fields, string(DocumentKey), path)
	}
	return fields
}

package errors

import (
	"fmt"
	"strings"
)

// ErrorType categorizes a failure that prevents a document from being read.
type ErrorType string

const (
	ErrorTypeIO       ErrorType = "io"       // File access error
	ErrorTypeLimit    ErrorType = "limit"    // Input exceeds a configured size limit
	ErrorTypeInternal ErrorType = "internal" // Unexpected failure inside the pipeline
)

// Error represents a failure with an optional source file and suggestion.
type Error struct {
	Type       ErrorType // Category of error
	Message    string    // Error message
	File       string    // Source file (optional)
	Suggestion string    // Suggested fix (optional)
	Cause      error     // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("[%s] %s", e.Type, e.Message))

	if e.File != "" {
		sb.WriteString(fmt.Sprintf("\n  --> %s", e.File))
	}

	if e.Suggestion != "" {
		sb.WriteString(fmt.Sprintf("\n  = suggestion: %s", e.Suggestion))
	}

	return sb.String()
}

// Unwrap returns the underlying cause error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// ErrorList represents a collection of errors, e.g. from linting many files.
type ErrorList struct {
	Errors []*Error
}

// NewErrorList creates a new empty error list.
func NewErrorList() *ErrorList {
	return &ErrorList{
		Errors: make([]*Error, 0),
	}
}

// Add appends an error to the list.
func (el *ErrorList) Add(err *Error) {
	el.Errors = append(el.Errors, err)
}

// HasErrors returns true if the error list contains any errors.
func (el *ErrorList) HasErrors() bool {
	return len(el.Errors) > 0
}

// Count returns the number of errors in the list.
func (el *ErrorList) Count() int {
	return len(el.Errors)
}

// Error implements the error interface.
func (el *ErrorList) Error() string {
	if !el.HasErrors() {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d error(s):\n\n", el.Count()))

	for i, err := range el.Errors {
		sb.WriteString(fmt.Sprintf("Error %d:\n", i+1))
		sb.WriteString(err.Error())
		sb.WriteString("\n")
	}

	return sb.String()
}

// ToError returns nil if the error list is empty, otherwise returns the error list itself.
func (el *ErrorList) ToError() error {
	if !el.HasErrors() {
		return nil
	}
	return el
}

package errors

import "fmt"

// Level is the severity of a validation issue.
type Level string

const (
	LevelError   Level = "error"
	LevelWarning Level = "warning"
)

// Issue is a single rule violation found by the validator.
// Issues are values: once produced they are never modified.
type Issue struct {
	Rule       string `json:"rule"`                 // Rule ID, e.g. "L-03"
	Level      Level  `json:"level"`                // error or warning
	Message    string `json:"message"`              // Human-readable description
	Section    string `json:"section,omitempty"`    // Section the issue refers to (optional)
	Suggestion string `json:"suggestion,omitempty"` // Suggested fix (optional)
}

// String returns the issue as "L-01 error: message".
func (i Issue) String() string {
	return fmt.Sprintf("%s %s: %s", i.Rule, i.Level, i.Message)
}

// IsError returns true for error-level issues.
func (i Issue) IsError() bool {
	return i.Level == LevelError
}

// IssueList accumulates issues in the order they are reported.
type IssueList struct {
	issues []Issue
}

// NewIssueList creates a new empty issue list.
func NewIssueList() *IssueList {
	return &IssueList{
		issues: make([]Issue, 0),
	}
}

// Append adds fully-formed issues to the list.
func (il *IssueList) Append(issues ...Issue) {
	il.issues = append(il.issues, issues...)
}

// Issues returns a copy of the accumulated issues.
func (il *IssueList) Issues() []Issue {
	out := make([]Issue, len(il.issues))
	copy(out, il.issues)
	return out
}

// Count returns the number of issues.
func (il *IssueList) Count() int {
	return len(il.issues)
}

// HasErrors returns true if any issue is error-level.
func (il *IssueList) HasErrors() bool {
	return CountLevel(il.issues, LevelError) > 0
}

// CountLevel returns the number of issues with the given level.
func CountLevel(issues []Issue, level Level) int {
	n := 0
	for _, issue := range issues {
		if issue.Level == level {
			n++
		}
	}
	return n
}

// ByRule returns all issues reported by the given rule.
func ByRule(issues []Issue, rule string) []Issue {
	var result []Issue
	for _, issue := range issues {
		if issue.Rule == rule {
			result = append(result, issue)
		}
	}
	return result
}

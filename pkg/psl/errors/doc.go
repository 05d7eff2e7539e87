// Package errors provides issue and error types for PSL parsing and validation.
//
// Validation never fails with a Go error: rule violations are reported as
// leveled Issue values. Error is reserved for conditions that prevent a
// document from being read at all (for example an unreadable or oversized file).
//
// # Issue Levels
//
// LevelError: Structural or pairing violation (section order, HYP/ROLLBACK mismatch)
//
// LevelWarning: Content that weakens the document (numbers outside FACT, duplicates)
//
// # Basic Usage
//
// Accumulate issues:
//
//	issues := errors.NewIssueList()
//	issues.Append(errors.Issue{
//	    Rule:    "L-02",
//	    Level:   errors.LevelError,
//	    Message: "HYP/ROLLBACK count mismatch. HYP: 2, ROLLBACK: 1",
//	})
//
//	if issues.HasErrors() {
//	    fmt.Println(issues.Count(), "issue(s)")
//	}
//
// # Suggestions
//
// SuggestTag uses Levenshtein distance to propose the closest known section tag
// for a typo:
//
//	errors.SuggestTag("FCT", ast.CanonicalOrder)
//	// Returns: "Did you mean [FACT]?"
package errors

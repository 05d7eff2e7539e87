package cli

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"mercator-hq/psl/pkg/history"
	"mercator-hq/psl/pkg/psl"
	pslErrors "mercator-hq/psl/pkg/psl/errors"
	"mercator-hq/psl/pkg/psl/metrics"
)

// FileReport is the lint result for one document.
type FileReport struct {
	File   string            `json:"file"`
	Valid  bool              `json:"valid"`
	Issues []pslErrors.Issue `json:"issues"`
	Notes  []string          `json:"notes,omitempty"`
	Error  string            `json:"error,omitempty"`
}

// Errors returns the number of error-level issues, counting a read failure
// as one error.
func (r FileReport) Errors() int {
	n := pslErrors.CountLevel(r.Issues, pslErrors.LevelError)
	if r.Error != "" {
		n++
	}
	return n
}

// Warnings returns the number of warning-level issues.
func (r FileReport) Warnings() int {
	return pslErrors.CountLevel(r.Issues, pslErrors.LevelWarning)
}

// LintReport is the result of linting a set of documents.
type LintReport struct {
	Files    []FileReport `json:"files"`
	Errors   int          `json:"errors"`
	Warnings int          `json:"warnings"`
	Strict   bool         `json:"strict"`
}

// NewLintReport totals the file reports. In strict mode a file with
// warnings is not valid.
func NewLintReport(files []FileReport, strict bool) *LintReport {
	r := &LintReport{Files: files, Strict: strict}
	for i := range r.Files {
		f := &r.Files[i]
		errs, warns := f.Errors(), f.Warnings()
		f.Valid = errs == 0 && (!strict || warns == 0)
		r.Errors += errs
		r.Warnings += warns
	}
	return r
}

// Failed reports whether the lint run should fail.
func (r *LintReport) Failed() bool {
	return r.Errors > 0 || (r.Strict && r.Warnings > 0)
}

// RenderText implements TextRenderer.
func (r *LintReport) RenderText(w io.Writer, s *Styles) error {
	for _, f := range r.Files {
		fmt.Fprintln(w, s.File.Render(f.File))

		if f.Error != "" {
			fmt.Fprintf(w, "  %s %s\n", s.Error.Render("✗"), f.Error)
		}
		for _, issue := range f.Issues {
			fmt.Fprintf(w, "  %s\n", s.Issue(issue))
		}
		for _, note := range f.Notes {
			fmt.Fprintf(w, "  %s\n", s.Note.Render("note: "+note))
		}
		if f.Error == "" && len(f.Issues) == 0 {
			fmt.Fprintf(w, "  %s\n", s.OK.Render("✓ no issues"))
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, s.Title.Render("Summary:"))
	fmt.Fprintf(w, "  %d file(s), %d error(s), %d warning(s)\n", len(r.Files), r.Errors, r.Warnings)
	if r.Strict && r.Warnings > 0 {
		fmt.Fprintln(w, "  Strict mode enabled: treating warnings as errors")
	}
	return nil
}

// Header implements Tabular.
func (r *LintReport) Header() []string {
	return []string{"file", "rule", "level", "section", "message"}
}

// Rows implements Tabular with one row per issue.
func (r *LintReport) Rows() [][]string {
	var rows [][]string
	for _, f := range r.Files {
		if f.Error != "" {
			rows = append(rows, []string{f.File, "", string(pslErrors.LevelError), "", f.Error})
		}
		for _, issue := range f.Issues {
			rows = append(rows, []string{f.File, issue.Rule, string(issue.Level), issue.Section, issue.Message})
		}
	}
	return rows
}

// AssessmentReport is the result of assessing one document.
type AssessmentReport struct {
	File string `json:"file"`
	psl.Assessment
	RecordID string `json:"record_id,omitempty"`
}

// RenderText implements TextRenderer.
func (r *AssessmentReport) RenderText(w io.Writer, s *Styles) error {
	fmt.Fprintln(w, s.File.Render(r.File))

	if r.Failed() {
		fmt.Fprintf(w, "  Quality: %s\n", s.Level(r.QualityLevel))
		fmt.Fprintf(w, "  %s %s\n", s.Error.Render("✗"), r.Error)
		return nil
	}

	fmt.Fprintf(w, "  Quality: %s (%.4f)\n", s.Level(r.QualityLevel), r.QualityScore)
	fmt.Fprintf(w, "  %s\n", s.Muted.Render(fmt.Sprintf("CSR %.2f  HRR %.2f  Coverage %.2f  3C %.2f",
		r.Metrics.CSR, r.Metrics.HRR, r.Metrics.PSLCoverage, r.Metrics.ThreeCScore)))

	if r.IssuesCount > 0 {
		fmt.Fprintf(w, "  Issues (%d):\n", r.IssuesCount)
		for _, issue := range r.Issues {
			fmt.Fprintf(w, "    %s\n", s.Issue(issue))
		}
	} else {
		fmt.Fprintf(w, "  %s\n", s.OK.Render("✓ no issues"))
	}

	if r.RecordID != "" {
		fmt.Fprintf(w, "  %s\n", s.Muted.Render("recorded as "+r.RecordID))
	}
	return nil
}

// HistoryReport lists stored assessment records.
type HistoryReport struct {
	Records []*history.Record `json:"records"`
}

// RenderText implements TextRenderer.
func (r *HistoryReport) RenderText(w io.Writer, s *Styles) error {
	if len(r.Records) == 0 {
		fmt.Fprintln(w, s.Muted.Render("no history records"))
		return nil
	}

	for _, rec := range r.Records {
		fmt.Fprintf(w, "%s  %s  %s  %s\n",
			s.Muted.Render(rec.AssessedAt.Local().Format(time.DateTime)),
			s.Level(metrics.QualityLevel(rec.QualityLevel)),
			fmt.Sprintf("%.4f", rec.QualityScore),
			rec.Path,
		)
		if rec.Error != "" {
			fmt.Fprintf(w, "    %s %s\n", s.Error.Render("✗"), rec.Error)
		} else if rec.IssuesCount > 0 {
			fmt.Fprintf(w, "    %d error(s), %d warning(s)\n", rec.ErrorCount, rec.WarningCount)
		}
	}
	return nil
}

// Header implements Tabular.
func (r *HistoryReport) Header() []string {
	return []string{"id", "assessed_at", "path", "quality_level", "quality_score",
		"csr", "hrr", "psl_coverage", "three_c_score", "errors", "warnings"}
}

// Rows implements Tabular.
func (r *HistoryReport) Rows() [][]string {
	rows := make([][]string, 0, len(r.Records))
	for _, rec := range r.Records {
		rows = append(rows, []string{
			rec.ID,
			rec.AssessedAt.Format(time.RFC3339),
			rec.Path,
			rec.QualityLevel,
			formatFloat(rec.QualityScore),
			formatFloat(rec.CSR),
			formatFloat(rec.HRR),
			formatFloat(rec.PSLCoverage),
			formatFloat(rec.ThreeCScore),
			strconv.Itoa(rec.ErrorCount),
			strconv.Itoa(rec.WarningCount),
		})
	}
	return rows
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

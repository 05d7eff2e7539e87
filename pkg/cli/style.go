package cli

import (
	"io"

	"github.com/charmbracelet/lipgloss"

	pslErrors "mercator-hq/psl/pkg/psl/errors"
	"mercator-hq/psl/pkg/psl/metrics"
)

// Styles holds the lipgloss styles used by text reports. Styles are bound
// to a renderer for the output writer, so colors are dropped automatically
// when the writer is not a terminal.
type Styles struct {
	Title   lipgloss.Style
	File    lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	OK      lipgloss.Style
	Muted   lipgloss.Style
	Note    lipgloss.Style

	levels map[metrics.QualityLevel]lipgloss.Style
}

// NewStyles creates the report styles for w.
func NewStyles(w io.Writer) *Styles {
	r := lipgloss.NewRenderer(w)

	return &Styles{
		Title:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF")),
		File:    r.NewStyle().Bold(true),
		Error:   r.NewStyle().Foreground(lipgloss.Color("#FF6B6B")),
		Warning: r.NewStyle().Foreground(lipgloss.Color("#F5A623")),
		OK:      r.NewStyle().Foreground(lipgloss.Color("#4CAF50")),
		Muted:   r.NewStyle().Foreground(lipgloss.Color("#888888")),
		Note:    r.NewStyle().Italic(true).Foreground(lipgloss.Color("#AAAAAA")),
		levels: map[metrics.QualityLevel]lipgloss.Style{
			metrics.LevelExcellent: r.NewStyle().Bold(true).Foreground(lipgloss.Color("#4CAF50")),
			metrics.LevelGood:      r.NewStyle().Bold(true).Foreground(lipgloss.Color("#8BC34A")),
			metrics.LevelFair:      r.NewStyle().Bold(true).Foreground(lipgloss.Color("#F5A623")),
			metrics.LevelPoor:      r.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6B6B")),
			metrics.LevelError:     r.NewStyle().Bold(true).Foreground(lipgloss.Color("#D0021B")),
		},
	}
}

// Level renders a quality level in its color.
func (s *Styles) Level(level metrics.QualityLevel) string {
	if style, ok := s.levels[level]; ok {
		return style.Render(string(level))
	}
	return string(level)
}

// Issue renders one issue as "✗ L-01 [SECTION] message".
func (s *Styles) Issue(issue pslErrors.Issue) string {
	marker, style := "⚠", s.Warning
	if issue.IsError() {
		marker, style = "✗", s.Error
	}

	line := style.Render(marker + " " + issue.Rule)
	if issue.Section != "" {
		line += " " + s.Muted.Render("["+issue.Section+"]")
	}
	line += " " + issue.Message
	if issue.Suggestion != "" {
		line += " " + s.Note.Render("("+issue.Suggestion+")")
	}
	return line
}

package parser

import (
	"strings"

	"mercator-hq/psl/pkg/psl/ast"
)

// scanState is the section scanner's cursor state.
type scanState int

const (
	stateNoSection scanState = iota // before the first tag line
	stateInSection                  // accumulating items for the current tag
	stateDone                       // scanning stopped after [3C]
)

// String returns the state name for debugging and tests.
func (s scanState) String() string {
	switch s {
	case stateNoSection:
		return "no-section"
	case stateInSection:
		return "in-section"
	case stateDone:
		return "done"
	default:
		return "unknown"
	}
}

// SectionResult is the output of the section parser.
type SectionResult struct {
	Sections ast.Sections
	ThreeC   *ast.ThreeC // nil unless [3C] contained a key: value line
	Gloss    string      // [GLOSS] lines and list items joined by a space
	HasGloss bool
}

// sectionScanner walks body lines one at a time. Transitions are made through
// open, flush and finish so each can be exercised on its own.
type sectionScanner struct {
	state           scanState
	current         string
	items           []string
	entries         []ast.SectionEntry
	threeC          *ast.ThreeC
	gloss           []string
	hasGloss        bool
	continueAfter3C bool
}

func newSectionScanner(continueAfter3C bool) *sectionScanner {
	return &sectionScanner{state: stateNoSection, continueAfter3C: continueAfter3C}
}

// open closes the current section, if any, and starts a new one.
func (s *sectionScanner) open(tag string) {
	if s.state == stateInSection {
		s.flush()
	}
	s.current = tag
	s.items = nil
	s.state = stateInSection
	if tag == ast.TagGloss {
		s.hasGloss = true
	}
}

// flush commits the accumulated items under the current tag. An empty
// section closed by a following tag is still recorded.
func (s *sectionScanner) flush() {
	items := s.items
	if items == nil {
		items = []string{}
	}
	s.entries = append(s.entries, ast.SectionEntry{Tag: s.current, Items: items})
	s.items = nil
}

// finish commits the section still open at end of input if it has items.
func (s *sectionScanner) finish() SectionResult {
	if s.state == stateInSection && len(s.items) > 0 {
		s.flush()
	}
	return SectionResult{
		Sections: ast.NewSections(s.entries...),
		ThreeC:   s.threeC,
		Gloss:    strings.Join(s.gloss, " "),
		HasGloss: s.hasGloss,
	}
}

// scan runs the state machine over all body lines.
func (s *sectionScanner) scan(lines []string) SectionResult {
	for i := 0; i < len(lines) && s.state != stateDone; i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}

		if tag, ok := parseTagLine(line); ok {
			s.open(tag)
			continue
		}

		if s.state != stateInSection {
			continue
		}

		if item, ok := stripListMarker(line); ok {
			s.items = append(s.items, item)
			if s.current == ast.TagGloss {
				s.gloss = append(s.gloss, item)
			}
			continue
		}

		switch {
		case s.current == ast.Tag3C && strings.Contains(line, ":"):
			i = s.parseThreeCBlock(lines, i)
		case s.current == ast.TagGloss:
			s.gloss = append(s.gloss, line)
			s.items = append(s.items, line)
		}
	}

	return s.finish()
}

// parseThreeCBlock handles the first key: value line in [3C] at index start.
// It returns the index of the last line consumed.
func (s *sectionScanner) parseThreeCBlock(lines []string, start int) int {
	end := start
	for end < len(lines) {
		if _, ok := parseTagLine(strings.TrimSpace(lines[end])); ok {
			break
		}
		end++
	}

	for _, raw := range lines[start:end] {
		if line := strings.TrimSpace(raw); line != "" {
			s.items = append(s.items, line)
		}
	}

	if s.continueAfter3C {
		s.threeC = ParseThreeC(strings.Join(lines[start:end], "\n"))
		s.flush()
		s.state = stateNoSection
		return end - 1
	}

	// The flag sub-parse sees everything from this line onward, including
	// any sections that follow, and scanning stops here.
	s.threeC = ParseThreeC(strings.Join(lines[start:], "\n"))
	s.flush()
	s.state = stateDone
	return len(lines)
}

// ParseSections parses the body text (from the first tag line onward).
// When continueAfter3C is false, scanning stops after the [3C] flags are read.
func ParseSections(body string, continueAfter3C bool) SectionResult {
	return newSectionScanner(continueAfter3C).scan(strings.Split(body, "\n"))
}

// ParseThreeC reads the clear/cheap/safe flags from 3C text. Matching is a
// case-insensitive substring search for "clear: yes" and so on.
func ParseThreeC(text string) *ast.ThreeC {
	lower := strings.ToLower(text)
	return &ast.ThreeC{
		Clear: strings.Contains(lower, "clear: yes"),
		Cheap: strings.Contains(lower, "cheap: yes"),
		Safe:  strings.Contains(lower, "safe: yes"),
	}
}

// parseTagLine returns the tag of a "[TAG]" or "[TAG: note]" line.
func parseTagLine(line string) (string, bool) {
	if len(line) < 2 || line[0] != '[' || line[len(line)-1] != ']' {
		return "", false
	}
	inner := line[1 : len(line)-1]
	tag, _, _ := strings.Cut(inner, ":")
	return strings.TrimSpace(tag), true
}

// stripListMarker removes a leading "-" or "1)".."9)" marker.
func stripListMarker(line string) (string, bool) {
	if strings.HasPrefix(line, "-") {
		return strings.TrimSpace(line[1:]), true
	}
	if len(line) >= 2 && line[0] >= '1' && line[0] <= '9' && line[1] == ')' {
		return strings.TrimSpace(line[2:]), true
	}
	return "", false
}

package parser

import "strings"

// Header field names as they appear in the PSL preamble.
const (
	FieldVersion     = "version"
	FieldContext     = "context"
	FieldGoal        = "goal"
	FieldConstraints = "constraints"
	FieldResources   = "resources"
	FieldSkill       = "skill"
)

// Header is the key-value result of parsing the preamble.
// Fields that never appeared are reported absent by Has.
type Header struct {
	Version     string
	Context     string
	Goal        string
	Constraints []string // Raw constraint strings in source order
	Resources   []string
	Skill       string

	seen map[string]bool
}

// Has returns true if the header contained the given field.
func (h *Header) Has(field string) bool {
	return h.seen[field]
}

// ParseHeader parses the lines before the first section tag.
// Lines are matched by case-sensitive prefix; unknown lines are ignored so
// that newer header fields do not break older parsers. It never fails.
func ParseHeader(text string) Header {
	h := Header{seen: make(map[string]bool)}

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		switch {
		case strings.HasPrefix(line, "!psl"):
			h.Version = parseVersion(line)
			h.seen[FieldVersion] = true
		case strings.HasPrefix(line, "context:"):
			h.Context = fieldValue(line)
			h.seen[FieldContext] = true
		case strings.HasPrefix(line, "goal:"):
			h.Goal = fieldValue(line)
			h.seen[FieldGoal] = true
		case strings.HasPrefix(line, "constraints:"):
			h.Constraints = splitList(fieldValue(line), ";")
			h.seen[FieldConstraints] = true
		case strings.HasPrefix(line, "resources:"):
			h.Resources = parseResources(fieldValue(line))
			h.seen[FieldResources] = true
		case strings.HasPrefix(line, "skill:"):
			h.Skill = fieldValue(line)
			h.seen[FieldSkill] = true
		}
	}

	return h
}

// parseVersion returns the text after the last "v" in a "!psl v0.1" line.
func parseVersion(line string) string {
	idx := strings.LastIndex(line, "v")
	if idx < 0 {
		return ""
	}
	return strings.TrimSpace(line[idx+1:])
}

// fieldValue returns the text after the first colon, trimmed.
func fieldValue(line string) string {
	_, value, _ := strings.Cut(line, ":")
	return strings.TrimSpace(value)
}

// parseResources strips an optional enclosing [...] and splits on commas.
func parseResources(value string) []string {
	if strings.HasPrefix(value, "[") && strings.HasSuffix(value, "]") && len(value) >= 2 {
		value = value[1 : len(value)-1]
	}
	return splitList(value, ",")
}

// splitList splits on sep, trims each part and drops empties.
func splitList(value, sep string) []string {
	parts := make([]string, 0)
	for _, part := range strings.Split(value, sep) {
		if p := strings.TrimSpace(part); p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

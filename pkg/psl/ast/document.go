package ast

// ThreeC holds the Clear/Cheap/Safe acceptance flags from the [3C] section.
type ThreeC struct {
	Clear bool `json:"clear"`
	Cheap bool `json:"cheap"`
	Safe  bool `json:"safe"`
}

// Document represents a parsed PSL document.
// Header fields that were missing from the source are left empty.
type Document struct {
	// Header
	Version        string       `json:"version"`
	Context        string       `json:"context"`
	Goal           string       `json:"goal"`
	Constraints    []Constraint `json:"constraints"`
	RawConstraints []string     `json:"raw_constraints,omitempty"` // Includes strings that failed to parse
	Resources      []string     `json:"resources,omitempty"`       // nil when the header has no resources line
	Skill          string       `json:"skill,omitempty"`

	// Body
	Sections Sections `json:"sections"`
	ThreeC   *ThreeC  `json:"three_c,omitempty"` // nil unless [3C] was parsed into flags
	Gloss    string   `json:"gloss,omitempty"`

	// Source tracking
	SourceFile string `json:"source_file,omitempty"`
}

// HasThreeC returns true if the document carries structured 3C flags.
func (d *Document) HasThreeC() bool {
	return d.ThreeC != nil
}

// HasConstraints returns true if at least one constraint was parsed.
func (d *Document) HasConstraints() bool {
	return len(d.Constraints) > 0
}

// GetConstraint returns the first constraint with the given name, or nil.
func (d *Document) GetConstraint(name string) *Constraint {
	for i := range d.Constraints {
		if d.Constraints[i].Name == name {
			return &d.Constraints[i]
		}
	}
	return nil
}

// KnownTags returns the document's section tags restricted to the fixed
// vocabulary, in insertion order.
func (d *Document) KnownTags() []string {
	var tags []string
	for _, tag := range d.Sections.Tags() {
		if IsKnownTag(tag) {
			tags = append(tags, tag)
		}
	}
	return tags
}

// UnknownTags returns section tags outside the fixed vocabulary.
func (d *Document) UnknownTags() []string {
	var tags []string
	for _, tag := range d.Sections.Tags() {
		if !IsKnownTag(tag) {
			tags = append(tags, tag)
		}
	}
	return tags
}

package ast

import "encoding/json"

// Sections is an ordered mapping from section tag to list items.
// Iteration order is the order in which sections were first opened.
// The zero value is an empty mapping.
type Sections struct {
	order []string
	items map[string][]string
}

// SectionEntry is one tag with its items, used for ordered encoding.
type SectionEntry struct {
	Tag   string   `json:"tag"`
	Items []string `json:"items"`
}

// NewSections builds a Sections value from ordered entries. Entries with a
// repeated tag are merged into the first occurrence.
func NewSections(entries ...SectionEntry) Sections {
	s := Sections{items: make(map[string][]string, len(entries))}
	for _, e := range entries {
		if _, ok := s.items[e.Tag]; !ok {
			s.order = append(s.order, e.Tag)
		}
		s.items[e.Tag] = append(s.items[e.Tag], e.Items...)
	}
	return s
}

// Tags returns section tags in insertion order.
func (s Sections) Tags() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Get returns the items of a section, or nil if the section is absent.
// The returned slice must not be modified.
func (s Sections) Get(tag string) []string {
	return s.items[tag]
}

// Has returns true if the section was present in the document.
func (s Sections) Has(tag string) bool {
	_, ok := s.items[tag]
	return ok
}

// Count returns the number of items in a section; absent sections count as zero.
func (s Sections) Count(tag string) int {
	return len(s.items[tag])
}

// Len returns the number of sections.
func (s Sections) Len() int {
	return len(s.order)
}

// Entries returns all sections in insertion order.
func (s Sections) Entries() []SectionEntry {
	entries := make([]SectionEntry, 0, len(s.order))
	for _, tag := range s.order {
		entries = append(entries, SectionEntry{Tag: tag, Items: s.items[tag]})
	}
	return entries
}

// MarshalJSON encodes the sections as an ordered array of {tag, items}.
func (s Sections) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Entries())
}

// UnmarshalJSON decodes the ordered array produced by MarshalJSON.
func (s *Sections) UnmarshalJSON(data []byte) error {
	var entries []SectionEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return err
	}
	*s = NewSections(entries...)
	return nil
}

package ast

// Tag is an upper-case section label such as FACT or ROLLBACK.
type Tag = string

const (
	TagFact        Tag = "FACT"
	TagTechnique   Tag = "TECHNIQUE"
	TagHyp         Tag = "HYP"
	TagRollback    Tag = "ROLLBACK"
	TagSafety      Tag = "SAFETY"
	TagAssumptions Tag = "ASSUMPTIONS"
	TagChecklist   Tag = "CHECKLIST"
	Tag3C          Tag = "3C"
	TagGloss       Tag = "GLOSS"
)

// CanonicalOrder is the order in which known sections must appear.
var CanonicalOrder = []Tag{
	TagFact,
	TagTechnique,
	TagHyp,
	TagRollback,
	TagSafety,
	TagAssumptions,
	TagChecklist,
	Tag3C,
	TagGloss,
}

// MandatoryTags are the sections counted by PSL coverage.
var MandatoryTags = []Tag{
	TagFact,
	TagTechnique,
	TagHyp,
	TagRollback,
	TagSafety,
	TagChecklist,
	Tag3C,
}

// IsKnownTag returns true if tag belongs to the fixed section vocabulary.
func IsKnownTag(tag string) bool {
	for _, known := range CanonicalOrder {
		if tag == known {
			return true
		}
	}
	return false
}

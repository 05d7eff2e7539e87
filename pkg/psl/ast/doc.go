// Package ast provides the document model for the Procedure Specification Language (PSL).
//
// A PSL document is a plain-text procedure description made of a fixed-format
// header followed by bracket-tagged sections:
//
//	!psl v0.1
//	context: kitchen
//	goal: transform basic borscht into a family masterpiece
//	constraints: time<=90min; budget<=12usd; serves=6
//	skill: novice
//
//	[FACT]
//	- Broth: beef brisket 600g, 70-80 min.
//	[HYP]
//	- Bake beetroot instead of stewing.
//	[ROLLBACK]
//	- Return to stewing if the taste is earthy.
//	[3C]
//	clear: yes cheap: yes safe: yes
//
// # Core Types
//
// Document: Root node holding header fields, constraints, sections, 3C flags and gloss
//
// Constraint: Parsed header constraint (name, operator, value, optional unit)
//
// Sections: Ordered, read-only mapping from section tag to list items
//
// ThreeC: The Clear/Cheap/Safe acceptance triad
//
// # Basic Usage
//
//	doc := parser.NewParser().Parse(text)
//	for _, tag := range doc.Sections.Tags() {
//	    fmt.Println(tag, len(doc.Sections.Get(tag)))
//	}
//	if doc.HasThreeC() {
//	    fmt.Println("clear:", doc.ThreeC.Clear)
//	}
//
// # Immutability
//
// Documents are assembled once by the parser and must be treated as read-only
// afterwards. The validator and the metrics calculator inspect the same value
// concurrently without copying it.
package ast

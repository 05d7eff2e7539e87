// Package parser turns PSL text into an ast.Document.
//
// Parsing happens in two stages. The header (every line before the first
// line starting with "[") is matched line by line against known prefixes
// such as "context:" and "constraints:". The body is scanned by a small
// state machine that opens a section on each "[TAG]" line and collects
// list items ("- item", "1) item") until the next tag.
//
// The [3C] section is special: its first "key: value" line is read as the
// clear/cheap/safe flags and, by default, scanning stops there. Use
// WithContinueAfter3C to keep reading sections that follow it.
//
// # Basic Usage
//
//	p := parser.NewParser()
//	doc, err := p.ParseFile("borscht.psl")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(doc.Sections.Tags())
//
// Parse never fails on text input; gaps are reported later by the validator
// and the metrics calculator.
package parser

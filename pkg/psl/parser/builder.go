package parser

import "mercator-hq/psl/pkg/psl/ast"

// builder assembles a Document from the header and section parse results.
// The Document is produced in one step and never mutated afterwards.
type builder struct {
	sourceFile string
}

// newBuilder creates a new builder for the given source file.
func newBuilder(sourceFile string) *builder {
	return &builder{sourceFile: sourceFile}
}

// buildDocument combines the header and body results into a Document.
func (b *builder) buildDocument(header Header, body SectionResult) *ast.Document {
	doc := &ast.Document{
		Version:     header.Version,
		Context:     header.Context,
		Goal:        header.Goal,
		Constraints: ParseConstraints(header.Constraints),
		Skill:       header.Skill,
		Sections:    body.Sections,
		ThreeC:      body.ThreeC,
		SourceFile:  b.sourceFile,
	}

	if len(header.Constraints) > 0 {
		doc.RawConstraints = append([]string(nil), header.Constraints...)
	}

	if header.Has(FieldResources) {
		doc.Resources = append([]string{}, header.Resources...)
	}

	if body.HasGloss {
		doc.Gloss = body.Gloss
	}

	return doc
}

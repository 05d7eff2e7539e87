// Package psl provides the PSL (procedure specification language) toolkit:
// a parser, a rule-based validator and an acceptance metrics calculator for
// structured plain-text procedure documents.
//
// A PSL document has a header followed by bracket-tagged sections:
//
//	!psl v0.1
//	context: kitchen
//	goal: repeatable borscht
//	constraints: time<=90min; budget<=12usd
//
//	[FACT]
//	- Broth: beef brisket 600g, 70-80 min.
//	[HYP]
//	- Bake beetroot 45 min instead of stewing.
//	[ROLLBACK]
//	- Return to stewing.
//	[3C]
//	clear: yes cheap: yes safe: yes
//
// # Basic Usage
//
//	result := psl.AssessQuality(text, map[string]float64{"time": 85, "budget": 10})
//	if result.Failed() {
//	    log.Fatal(result.Error)
//	}
//	fmt.Println(result.QualityLevel, result.Metrics.CSR)
//
// # Packages
//
//   - ast: document model
//   - parser: header and section parsing
//   - validator: L-01..L-10 rules
//   - metrics: CSR, HRR, coverage and 3C scores
//   - lexicon: shared unit and risk vocabularies
//   - errors: issue and error types
//   - execution: loading observed results from YAML or JSON
package psl

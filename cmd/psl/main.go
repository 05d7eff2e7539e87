// psl lints and scores PSL procedure documents.
//
// PSL documents are plain-text procedures with a short header (goal,
// constraints, resources) followed by tagged sections such as [FACT],
// [SAFETY] and [3C]. The psl command checks them against the L-01..L-10
// lint rules and computes their acceptance metrics and quality level.
//
// Usage:
//
//	# Lint every document under a directory
//	psl lint --dir procedures/
//
//	# Lint with a glob, treating warnings as errors
//	psl lint --pattern 'procedures/**/*.psl' --strict
//
//	# Assess one document with execution results and record it
//	psl assess borscht.psl --exec results.yaml --record
//
//	# Re-assess documents as they change and serve metrics
//	psl watch --dir procedures/
//
//	# Show recorded assessments
//	psl history list --path borscht.psl
package main

import "os"

func main() {
	os.Exit(Execute())
}

package metrics

import (
	"math"

	"mercator-hq/psl/pkg/psl/ast"
	"mercator-hq/psl/pkg/psl/lexicon"
)

// HRR penalties.
const (
	UnitNumberPenalty    = 0.1  // per item with a unit-bearing number outside [FACT]
	PairingPenalty       = 0.2  // HYP and ROLLBACK counts differ
	MissingSafetyPenalty = 0.15 // risk language without a [SAFETY] section
)

// 3C weights. They sum to 1.0.
const (
	ClearWeight = 0.34
	CheapWeight = 0.33
	SafeWeight  = 0.33
)

// Scores holds the four acceptance metrics, each in [0.0, 1.0].
type Scores struct {
	CSR         float64 `json:"csr"`           // Constraint Satisfaction Rate
	HRR         float64 `json:"hrr"`           // Hallucination Rejection Rate
	PSLCoverage float64 `json:"psl_coverage"`  // Fraction of mandatory sections present
	ThreeCScore float64 `json:"three_c_score"` // Weighted Clear/Cheap/Safe flags
}

// Calculator computes acceptance metrics for parsed documents.
// It holds no state and is safe for concurrent use.
type Calculator struct{}

// NewCalculator creates a new metrics calculator.
func NewCalculator() *Calculator {
	return &Calculator{}
}

// CalculateAll computes every metric. results maps constraint names to
// observed values; nil means no execution data is available.
func (c *Calculator) CalculateAll(doc *ast.Document, results map[string]float64) Scores {
	return Scores{
		CSR:         c.CSR(doc, results),
		HRR:         c.HRR(doc),
		PSLCoverage: c.Coverage(doc),
		ThreeCScore: c.ThreeCScore(doc),
	}
}

// CSR returns the fraction of constraints satisfied by the observed results.
// A document without constraints scores 1.0; with constraints but no
// results it scores 0.0. Constraints missing from results count as unsatisfied.
func (c *Calculator) CSR(doc *ast.Document, results map[string]float64) float64 {
	if len(doc.Constraints) == 0 {
		return 1.0
	}
	if len(results) == 0 {
		return 0.0
	}

	satisfied := 0
	for _, constraint := range doc.Constraints {
		actual, ok := results[constraint.Name]
		if !ok {
			continue
		}
		if constraint.Satisfied(actual) {
			satisfied++
		}
	}

	return clamp(float64(satisfied) / float64(len(doc.Constraints)))
}

// HRR starts at 1.0 and subtracts penalties for unsupported numbers,
// unpaired hypotheses and unmitigated risks.
func (c *Calculator) HRR(doc *ast.Document) float64 {
	penalties := float64(len(lexicon.UnitNumbersOutsideFact(doc))) * UnitNumberPenalty

	if doc.Sections.Count(ast.TagHyp) != doc.Sections.Count(ast.TagRollback) {
		penalties += PairingPenalty
	}

	if !doc.Sections.Has(ast.TagSafety) && lexicon.DocumentHasRisk(doc) {
		penalties += MissingSafetyPenalty
	}

	return clamp(round2(1.0 - penalties))
}

// Coverage returns the fraction of mandatory sections present. [3C] counts
// only when it was parsed into flags.
func (c *Calculator) Coverage(doc *ast.Document) float64 {
	present := 0
	for _, tag := range ast.MandatoryTags {
		if tag == ast.Tag3C {
			if doc.HasThreeC() {
				present++
			}
			continue
		}
		if doc.Sections.Has(tag) {
			present++
		}
	}
	return float64(present) / float64(len(ast.MandatoryTags))
}

// ThreeCScore returns the weighted sum of the 3C flags, or 0.0 without flags.
func (c *Calculator) ThreeCScore(doc *ast.Document) float64 {
	if !doc.HasThreeC() {
		return 0.0
	}

	score := 0.0
	if doc.ThreeC.Clear {
		score += ClearWeight
	}
	if doc.ThreeC.Cheap {
		score += CheapWeight
	}
	if doc.ThreeC.Safe {
		score += SafeWeight
	}
	return clamp(round2(score))
}

// round2 removes float noise from sums of two-decimal constants.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func clamp(v float64) float64 {
	return math.Max(0.0, math.Min(1.0, v))
}

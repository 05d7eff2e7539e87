package metrics

import (
	"math"
	"strings"
)

// QualityLevel is the categorical rating derived from the quality score.
type QualityLevel string

const (
	LevelExcellent QualityLevel = "EXCELLENT"
	LevelGood      QualityLevel = "GOOD"
	LevelFair      QualityLevel = "FAIR"
	LevelPoor      QualityLevel = "POOR"
	LevelError     QualityLevel = "ERROR" // Assessment failed
)

// Level thresholds, inclusive.
const (
	ExcellentThreshold = 0.9
	GoodThreshold      = 0.7
	FairThreshold      = 0.5
)

// Weights are the contributions of each metric to the quality score.
type Weights struct {
	CSR         float64
	HRR         float64
	PSLCoverage float64
	ThreeCScore float64
}

// DefaultWeights sum to 1.0.
var DefaultWeights = Weights{
	CSR:         0.3,
	HRR:         0.4,
	PSLCoverage: 0.2,
	ThreeCScore: 0.1,
}

// QualityScore returns the weighted sum of the scores using DefaultWeights.
func QualityScore(s Scores) float64 {
	return DefaultWeights.Score(s)
}

// scoreNoise is the float error removed from weighted sums. It is far below
// any score difference that can change a level, so 0.3+0.4+0.2+0.1 is 1.0
// while 0.89997 stays below the EXCELLENT threshold.
const scoreNoise = 1e9

// Score returns the weighted sum of the scores. Only binary float noise is
// removed; the sum is not rounded for display.
func (w Weights) Score(s Scores) float64 {
	sum := s.CSR*w.CSR + s.HRR*w.HRR + s.PSLCoverage*w.PSLCoverage + s.ThreeCScore*w.ThreeCScore
	return math.Round(sum*scoreNoise) / scoreNoise
}

// Level classifies a quality score.
func Level(score float64) QualityLevel {
	switch {
	case score >= ExcellentThreshold:
		return LevelExcellent
	case score >= GoodThreshold:
		return LevelGood
	case score >= FairThreshold:
		return LevelFair
	default:
		return LevelPoor
	}
}

// Levels lists the levels from best to worst, excluding LevelError.
var Levels = []QualityLevel{LevelExcellent, LevelGood, LevelFair, LevelPoor}

// ParseLevel converts a level name (any case) to a QualityLevel.
func ParseLevel(name string) (QualityLevel, bool) {
	if strings.EqualFold(name, string(LevelError)) {
		return LevelError, true
	}
	for _, l := range Levels {
		if strings.EqualFold(name, string(l)) {
			return l, true
		}
	}
	return "", false
}

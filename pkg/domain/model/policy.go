package model

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/themis/pkg/domain/types"
)

// ScoringPolicy is a classification strategy tied to a scoring polarity.
// The two polarities use independent threshold schemes; a schema variant
// selects its policy at configuration time instead of branching per call.
type ScoringPolicy interface {
	Mode() types.ScoringMode

	// Percentage converts the summed risk weights of answered questions
	// into the polarity's percentage score
	Percentage(totalWeight, answered int) float64

	// Classify maps an overall percentage to a classification level
	Classify(percentage float64) types.Level

	// ClassifyCategory maps a per-category average risk to a level
	ClassifyCategory(averageRisk float64) types.Level

	// CategoryPercentage converts a per-category average risk into the
	// polarity's percentage scale for presentation
	CategoryPercentage(averageRisk float64) float64

	BestLevel() types.Level
	MiddleLevel() types.Level
	WorstLevel() types.Level
}

// PolicyFor returns the scoring policy for the given mode
func PolicyFor(mode types.ScoringMode) (ScoringPolicy, error) {
	switch mode {
	case types.ScoringModeRisk:
		return riskPolicy{}, nil
	case types.ScoringModeReadiness:
		return readinessPolicy{}, nil
	default:
		return nil, goerr.New("unknown scoring mode", goerr.V("mode", mode))
	}
}

// riskPolicy reports raw risk: higher percentage is worse. The overall
// thresholds are deliberately asymmetric (25/60), with the boundary values
// falling into the less severe bucket.
type riskPolicy struct{}

func (riskPolicy) Mode() types.ScoringMode {
	return types.ScoringModeRisk
}

func (riskPolicy) Percentage(totalWeight, answered int) float64 {
	return float64(totalWeight) / float64(answered*int(types.MaxRiskWeight)) * 100
}

func (riskPolicy) Classify(percentage float64) types.Level {
	switch {
	case percentage <= 25:
		return types.LevelLow
	case percentage <= 60:
		return types.LevelMedium
	default:
		return types.LevelHigh
	}
}

// ClassifyCategory keeps the per-category breakpoints of the original
// assessment (0.5 and 1.5 on the 0..2 average scale), which do not line up
// with the overall 25/60 percentage thresholds.
func (riskPolicy) ClassifyCategory(averageRisk float64) types.Level {
	switch {
	case averageRisk <= 0.5:
		return types.LevelLow
	case averageRisk <= 1.5:
		return types.LevelMedium
	default:
		return types.LevelHigh
	}
}

func (riskPolicy) CategoryPercentage(averageRisk float64) float64 {
	return averageRisk / float64(types.MaxRiskWeight) * 100
}

func (riskPolicy) BestLevel() types.Level   { return types.LevelLow }
func (riskPolicy) MiddleLevel() types.Level { return types.LevelMedium }
func (riskPolicy) WorstLevel() types.Level  { return types.LevelHigh }

// readinessPolicy reports inverted risk: higher percentage is better, with
// symmetric thresholds at 50 and 75. Boundary values fall into the higher
// readiness bucket.
type readinessPolicy struct{}

func (readinessPolicy) Mode() types.ScoringMode {
	return types.ScoringModeReadiness
}

func (readinessPolicy) Percentage(totalWeight, answered int) float64 {
	max := answered * int(types.MaxRiskWeight)
	return float64(max-totalWeight) / float64(max) * 100
}

func (p readinessPolicy) Classify(percentage float64) types.Level {
	switch {
	case percentage >= 75:
		return types.LevelAdvanced
	case percentage >= 50:
		return types.LevelDeveloping
	default:
		return types.LevelBasic
	}
}

func (p readinessPolicy) ClassifyCategory(averageRisk float64) types.Level {
	return p.Classify(p.CategoryPercentage(averageRisk))
}

func (readinessPolicy) CategoryPercentage(averageRisk float64) float64 {
	max := float64(types.MaxRiskWeight)
	return (max - averageRisk) / max * 100
}

func (readinessPolicy) BestLevel() types.Level   { return types.LevelAdvanced }
func (readinessPolicy) MiddleLevel() types.Level { return types.LevelDeveloping }
func (readinessPolicy) WorstLevel() types.Level  { return types.LevelBasic }

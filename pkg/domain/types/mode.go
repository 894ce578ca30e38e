package types

import "fmt"

// ScoringMode represents the polarity of an assessment variant. Risk mode
// reports raw risk (higher is worse), readiness mode reports inverted risk
// (higher is better).
type ScoringMode string

const (
	ScoringModeRisk      ScoringMode = "risk"
	ScoringModeReadiness ScoringMode = "readiness"
)

// AllScoringModes returns all valid scoring modes
func AllScoringModes() []ScoringMode {
	return []ScoringMode{
		ScoringModeRisk,
		ScoringModeReadiness,
	}
}

// IsValid checks if the scoring mode is valid
func (m ScoringMode) IsValid() bool {
	switch m {
	case ScoringModeRisk, ScoringModeReadiness:
		return true
	default:
		return false
	}
}

// String returns the string representation of the scoring mode
func (m ScoringMode) String() string {
	return string(m)
}

// ParseScoringMode parses a string into a ScoringMode
func ParseScoringMode(s string) (ScoringMode, error) {
	mode := ScoringMode(s)
	if !mode.IsValid() {
		return "", fmt.Errorf("invalid scoring mode: %s", s)
	}
	return mode, nil
}

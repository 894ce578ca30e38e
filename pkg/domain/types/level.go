package types

import "fmt"

// Level represents a discrete classification bucket derived from a
// percentage score. Risk scoring uses LOW/MEDIUM/HIGH, readiness scoring
// uses BASIC/DEVELOPING/ADVANCED.
type Level string

const (
	LevelLow    Level = "LOW"
	LevelMedium Level = "MEDIUM"
	LevelHigh   Level = "HIGH"

	LevelBasic      Level = "BASIC"
	LevelDeveloping Level = "DEVELOPING"
	LevelAdvanced   Level = "ADVANCED"
)

// AllLevels returns all valid classification levels
func AllLevels() []Level {
	return []Level{
		LevelLow,
		LevelMedium,
		LevelHigh,
		LevelBasic,
		LevelDeveloping,
		LevelAdvanced,
	}
}

// IsValid checks if the level is valid
func (l Level) IsValid() bool {
	switch l {
	case LevelLow,
		LevelMedium,
		LevelHigh,
		LevelBasic,
		LevelDeveloping,
		LevelAdvanced:
		return true
	default:
		return false
	}
}

// String returns the string representation of the level
func (l Level) String() string {
	return string(l)
}

// ParseLevel parses a string into a Level
func ParseLevel(s string) (Level, error) {
	level := Level(s)
	if !level.IsValid() {
		return "", fmt.Errorf("invalid classification level: %s", s)
	}
	return level, nil
}

package types

import (
	"github.com/m-mizutani/goerr/v2"
)

// RiskWeight represents the risk attached to a selected answer option.
// 0 is best practice, 2 is weakest practice.
type RiskWeight int

const (
	// MaxRiskWeight is the worst risk weight an option can carry
	MaxRiskWeight RiskWeight = 2
)

// Validate checks if the RiskWeight is within the allowed range
func (w RiskWeight) Validate() error {
	if w < 0 || w > MaxRiskWeight {
		return goerr.Wrap(ErrInvalidWeight, "risk weight out of range", goerr.V("weight", int(w)))
	}
	return nil
}

// Int returns the integer value of the RiskWeight
func (w RiskWeight) Int() int {
	return int(w)
}

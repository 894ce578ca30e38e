package types

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors shared across the assessment core.
//
// ErrInvalidIndex and ErrInvalidWeight indicate integration defects: a
// correctly wired presentation layer never produces them. ErrRejectedTransition
// is ordinary control flow; callers should disable the control instead of
// attempting the transition. ErrNoResponses signals that no result is defined
// yet, not a fault.
var (
	ErrInvalidIndex       = goerr.New("category or question index out of schema bounds")
	ErrInvalidWeight      = goerr.New("risk weight out of allowed range")
	ErrNoResponses        = goerr.New("no responses recorded yet")
	ErrRejectedTransition = goerr.New("navigation transition rejected")
	ErrSessionNotFound    = goerr.New("session not found")
)

package types

import (
	"regexp"

	"github.com/m-mizutani/goerr/v2"
)

// TenetID represents a unique identifier for an assessment tenet
type TenetID string

var idPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// Validate checks if the TenetID is valid
func (t TenetID) Validate() error {
	if t == "" {
		return goerr.New("tenet ID cannot be empty")
	}
	if !idPattern.MatchString(string(t)) {
		return goerr.New("tenet ID must be lowercase alphanumeric with hyphens", goerr.V("id", t))
	}
	return nil
}

// String returns the string representation of TenetID
func (t TenetID) String() string {
	return string(t)
}

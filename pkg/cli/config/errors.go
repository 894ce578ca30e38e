package config

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for configuration validation
var (
	ErrInvalidConfig     = goerr.New("invalid configuration")
	ErrDuplicateTenetID  = goerr.New("duplicate tenet ID")
	ErrMissingName       = goerr.New("name is required")
	ErrMissingQuestions  = goerr.New("category requires at least one question")
	ErrMissingOptions    = goerr.New("question requires at least two options")
	ErrInvalidRiskWeight = goerr.New("option risk weight out of range")
	ErrInvalidMode       = goerr.New("invalid scoring mode")
	ErrUnknownTenet      = goerr.New("recommendation references unknown tenet")
	ErrInvalidLevel      = goerr.New("priority note references invalid level")
)

// Context keys for error values
const (
	ConfigPathKey    = "config_path"
	TenetIDKey       = "tenet_id"
	CategoryIndexKey = "category_index"
	QuestionIndexKey = "question_index"
	OptionIndexKey   = "option_index"
)

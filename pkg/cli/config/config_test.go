package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/themis/pkg/cli/config"
	"github.com/secmon-lab/themis/pkg/domain/types"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "assessment.toml")
	gt.NoError(t, os.WriteFile(path, []byte(body), 0600))
	return path
}

const minimalConfig = `
name = "Minimal Assessment"
mode = "risk"

[[category]]
id = "governance"
name = "Governance"

[[category.question]]
text = "Do you review AI tooling decisions?"

[[category.question.option]]
text = "Yes, formally"
risk = 0

[[category.question.option]]
text = "No"
risk = 2
`

func TestLoadAssessmentConfig(t *testing.T) {
	t.Run("minimal config without recommendations", func(t *testing.T) {
		cfg, err := config.LoadAssessmentConfig(writeConfig(t, minimalConfig))
		gt.NoError(t, err).Required()

		schema := cfg.ToSchema()
		gt.Value(t, schema.Name).Equal("Minimal Assessment")
		gt.Value(t, schema.Mode).Equal(types.ScoringModeRisk)
		gt.Value(t, schema.CategoryCount()).Equal(1)
		gt.Value(t, schema.TotalQuestions()).Equal(1)

		gt.Value(t, cfg.ToRecommendationTable()).Nil()
	})

	t.Run("config with recommendation tables", func(t *testing.T) {
		cfg, err := config.LoadAssessmentConfig(writeConfig(t, minimalConfig+`
[recommendation]

[recommendation.priority_note]
HIGH = "act now"

[[recommendation.guidance]]
title = "Review governance"
description = "Set up a review board"
sources = "NIST AI RMF GOVERN"

[[recommendation.tenet]]
id = "governance"

[recommendation.tenet.immediate]
focus = "Oversight"
standards = "EU AI Act Article 14"

[[recommendation.tenet.immediate.control]]
name = "Governance Controls"
items = ["Establish decision authority"]
`))
		gt.NoError(t, err).Required()

		table := cfg.ToRecommendationTable()
		gt.Value(t, table).NotNil().Required()
		gt.Array(t, table.Guidance).Length(1)
		gt.Value(t, table.PriorityNotes[types.LevelHigh]).Equal("act now")

		actions, ok := table.Tenets["governance"]
		gt.Bool(t, ok).True()
		gt.Value(t, actions.Immediate).NotNil().Required()
		gt.Value(t, actions.Immediate.Focus).Equal("Oversight")
		gt.Array(t, actions.Immediate.Controls).Length(1)
		gt.Value(t, actions.Recommended).Nil()
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := config.LoadAssessmentConfig(filepath.Join(t.TempDir(), "absent.toml"))
		gt.Error(t, err)
	})

	t.Run("malformed TOML", func(t *testing.T) {
		_, err := config.LoadAssessmentConfig(writeConfig(t, "name = [broken"))
		gt.Error(t, err)
	})
}

func TestAssessmentConfigValidation(t *testing.T) {
	testCases := map[string]struct {
		body   string
		expect error
	}{
		"unknown scoring mode": {
			body: `
name = "Bad Mode"
mode = "maturity"

[[category]]
id = "governance"
name = "Governance"

[[category.question]]
text = "q"

[[category.question.option]]
text = "a"
risk = 0

[[category.question.option]]
text = "b"
risk = 1
`,
			expect: config.ErrInvalidMode,
		},
		"duplicate tenet ID": {
			body: `
name = "Duplicate"
mode = "risk"

[[category]]
id = "governance"
name = "Governance"

[[category.question]]
text = "q"

[[category.question.option]]
text = "a"
risk = 0

[[category.question.option]]
text = "b"
risk = 1

[[category]]
id = "governance"
name = "Governance Again"

[[category.question]]
text = "q"

[[category.question.option]]
text = "a"
risk = 0

[[category.question.option]]
text = "b"
risk = 1
`,
			expect: config.ErrDuplicateTenetID,
		},
		"category without questions": {
			body: `
name = "No Questions"
mode = "risk"

[[category]]
id = "governance"
name = "Governance"
`,
			expect: config.ErrMissingQuestions,
		},
		"question with a single option": {
			body: `
name = "One Option"
mode = "risk"

[[category]]
id = "governance"
name = "Governance"

[[category.question]]
text = "q"

[[category.question.option]]
text = "a"
risk = 0
`,
			expect: config.ErrMissingOptions,
		},
		"risk weight out of range": {
			body: `
name = "Bad Weight"
mode = "risk"

[[category]]
id = "governance"
name = "Governance"

[[category.question]]
text = "q"

[[category.question.option]]
text = "a"
risk = 0

[[category.question.option]]
text = "b"
risk = 3
`,
			expect: config.ErrInvalidRiskWeight,
		},
		"recommendation for unknown tenet": {
			body: minimalConfig + `
[recommendation]

[[recommendation.tenet]]
id = "absent"
`,
			expect: config.ErrUnknownTenet,
		},
		"priority note with unknown level": {
			body: minimalConfig + `
[recommendation]

[recommendation.priority_note]
CRITICAL = "?"
`,
			expect: config.ErrInvalidLevel,
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			_, err := config.LoadAssessmentConfig(writeConfig(t, tc.body))
			gt.Error(t, err)
			gt.Bool(t, errors.Is(err, tc.expect)).True()
		})
	}
}

func TestShippedConfigs(t *testing.T) {
	t.Run("ai-risk", func(t *testing.T) {
		cfg, err := config.LoadAssessmentConfig(filepath.Join("..", "..", "..", "configs", "ai-risk.toml"))
		gt.NoError(t, err).Required()

		schema := cfg.ToSchema()
		gt.Value(t, schema.Mode).Equal(types.ScoringModeRisk)
		gt.Value(t, schema.CategoryCount()).Equal(5)
		gt.Value(t, schema.TotalQuestions()).Equal(10)

		table := cfg.ToRecommendationTable()
		gt.Value(t, table).NotNil().Required()
		gt.Array(t, table.Guidance).Length(6)
		gt.Value(t, len(table.PriorityNotes)).Equal(2)
	})

	t.Run("responsible-ai", func(t *testing.T) {
		cfg, err := config.LoadAssessmentConfig(filepath.Join("..", "..", "..", "configs", "responsible-ai.toml"))
		gt.NoError(t, err).Required()

		schema := cfg.ToSchema()
		gt.Value(t, schema.Mode).Equal(types.ScoringModeReadiness)
		gt.Value(t, schema.CategoryCount()).Equal(5)
		gt.Value(t, schema.TotalQuestions()).Equal(10)

		table := cfg.ToRecommendationTable()
		gt.Value(t, table).NotNil().Required()
		gt.Value(t, len(table.Tenets)).Equal(5)
		for _, id := range []types.TenetID{"fairness", "privacy", "security", "transparency", "accountability"} {
			actions, ok := table.Tenets[id]
			gt.Bool(t, ok).True()
			gt.Value(t, actions.Immediate).NotNil()
			gt.Value(t, actions.Recommended).NotNil()
		}
	})
}

package model

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/themis/pkg/domain/types"
)

// Option is a single answer choice carrying a risk weight
type Option struct {
	Text   string
	Weight types.RiskWeight
}

// Question is an ordered list of options presented to the respondent
type Question struct {
	Text    string
	Options []Option
}

// Category is one assessed tenet with its ordered questions
type Category struct {
	ID          types.TenetID
	Name        string
	Description string
	Summary     string
	Questions   []Question
}

// Schema is the immutable question table an assessment variant runs
// against. It is loaded once at startup and never mutated afterwards.
type Schema struct {
	Name       string
	Mode       types.ScoringMode
	Categories []Category
}

// CategoryCount returns the number of categories in the schema
func (s *Schema) CategoryCount() int {
	return len(s.Categories)
}

// TotalQuestions returns the number of questions across all categories
func (s *Schema) TotalQuestions() int {
	total := 0
	for _, c := range s.Categories {
		total += len(c.Questions)
	}
	return total
}

// ValidateRef checks that (categoryIdx, questionIdx) addresses a question
// that exists in the schema
func (s *Schema) ValidateRef(categoryIdx, questionIdx int) error {
	if categoryIdx < 0 || categoryIdx >= len(s.Categories) {
		return goerr.Wrap(types.ErrInvalidIndex, "category index out of bounds",
			goerr.V("category", categoryIdx),
			goerr.V("categories", len(s.Categories)),
		)
	}
	if questionIdx < 0 || questionIdx >= len(s.Categories[categoryIdx].Questions) {
		return goerr.Wrap(types.ErrInvalidIndex, "question index out of bounds",
			goerr.V("category", categoryIdx),
			goerr.V("question", questionIdx),
			goerr.V("questions", len(s.Categories[categoryIdx].Questions)),
		)
	}
	return nil
}

// OptionWeight resolves the risk weight of an option by position
func (s *Schema) OptionWeight(categoryIdx, questionIdx, optionIdx int) (types.RiskWeight, error) {
	if err := s.ValidateRef(categoryIdx, questionIdx); err != nil {
		return 0, err
	}
	opts := s.Categories[categoryIdx].Questions[questionIdx].Options
	if optionIdx < 0 || optionIdx >= len(opts) {
		return 0, goerr.Wrap(types.ErrInvalidIndex, "option index out of bounds",
			goerr.V("category", categoryIdx),
			goerr.V("question", questionIdx),
			goerr.V("option", optionIdx),
			goerr.V("options", len(opts)),
		)
	}
	return opts[optionIdx].Weight, nil
}

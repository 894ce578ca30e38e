package model

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/themis/pkg/domain/types"
)

// QuestionKey addresses a single question within a schema
type QuestionKey struct {
	Category int
	Question int
}

// ResponseSet maps answered questions to the risk weight of the selected
// option. Recording the same key again overwrites the previous selection.
type ResponseSet map[QuestionKey]types.RiskWeight

// Clone returns a copy of the response set
func (r ResponseSet) Clone() ResponseSet {
	cloned := make(ResponseSet, len(r))
	for k, v := range r {
		cloned[k] = v
	}
	return cloned
}

// Session holds the state of one assessment walkthrough: the recorded
// answers, the active category, and whether the respondent has reached the
// result view. A session belongs to exactly one caller; all mutations are
// validate-then-apply, so a rejected operation leaves the state untouched.
type Session struct {
	ID              string
	Responses       ResponseSet
	CurrentCategory int
	Completed       bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewSession creates an empty session positioned at the first category
func NewSession(id string) *Session {
	return &Session{
		ID:        id,
		Responses: make(ResponseSet),
	}
}

// Clone returns a deep copy of the session
func (s *Session) Clone() *Session {
	return &Session{
		ID:              s.ID,
		Responses:       s.Responses.Clone(),
		CurrentCategory: s.CurrentCategory,
		Completed:       s.Completed,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

// Record inserts or overwrites the answer for (categoryIdx, questionIdx).
// It fails with ErrInvalidIndex if the indices fall outside the schema and
// ErrInvalidWeight if the weight is not in the allowed range.
func (s *Session) Record(schema *Schema, categoryIdx, questionIdx int, weight types.RiskWeight) error {
	if err := schema.ValidateRef(categoryIdx, questionIdx); err != nil {
		return err
	}
	if err := weight.Validate(); err != nil {
		return err
	}
	s.Responses[QuestionKey{Category: categoryIdx, Question: questionIdx}] = weight
	return nil
}

// IsCategoryComplete reports whether every question in the category has a
// recorded answer
func (s *Session) IsCategoryComplete(schema *Schema, categoryIdx int) bool {
	if categoryIdx < 0 || categoryIdx >= len(schema.Categories) {
		return false
	}
	for q := range schema.Categories[categoryIdx].Questions {
		if _, ok := s.Responses[QuestionKey{Category: categoryIdx, Question: q}]; !ok {
			return false
		}
	}
	return true
}

// AllComplete reports whether every question across the whole schema has a
// recorded answer
func (s *Session) AllComplete(schema *Schema) bool {
	for c := range schema.Categories {
		if !s.IsCategoryComplete(schema, c) {
			return false
		}
	}
	return true
}

// TotalAnswered returns the count of distinct questions answered
func (s *Session) TotalAnswered() int {
	return len(s.Responses)
}

// CanAdvance reports whether Next would succeed, without applying it. The
// presentation layer uses this to enable or disable the forward control.
func (s *Session) CanAdvance(schema *Schema) bool {
	if s.Completed {
		return false
	}
	if !s.IsCategoryComplete(schema, s.CurrentCategory) {
		return false
	}
	if s.CurrentCategory == len(schema.Categories)-1 {
		return s.AllComplete(schema)
	}
	return true
}

// CanRetreat reports whether Previous would succeed
func (s *Session) CanRetreat() bool {
	return !s.Completed && s.CurrentCategory > 0
}

// Next moves to the following category. The transition requires the current
// category to be fully answered; from the last category it additionally
// requires every category in the schema to be complete, and marks the
// session completed instead of advancing the index. A failed precondition
// returns ErrRejectedTransition and changes nothing.
func (s *Session) Next(schema *Schema) error {
	if s.Completed {
		return goerr.Wrap(types.ErrRejectedTransition, "assessment already complete")
	}
	if !s.IsCategoryComplete(schema, s.CurrentCategory) {
		return goerr.Wrap(types.ErrRejectedTransition, "current category has unanswered questions",
			goerr.V("category", s.CurrentCategory),
		)
	}
	if s.CurrentCategory == len(schema.Categories)-1 {
		if !s.AllComplete(schema) {
			return goerr.Wrap(types.ErrRejectedTransition, "assessment has unanswered questions",
				goerr.V("answered", s.TotalAnswered()),
				goerr.V("total", schema.TotalQuestions()),
			)
		}
		s.Completed = true
		return nil
	}
	s.CurrentCategory++
	return nil
}

// Previous moves back one category. Backward navigation never validates
// completeness, but is rejected at the first category.
func (s *Session) Previous() error {
	if s.Completed {
		return goerr.Wrap(types.ErrRejectedTransition, "assessment already complete")
	}
	if s.CurrentCategory == 0 {
		return goerr.Wrap(types.ErrRejectedTransition, "already at the first category")
	}
	s.CurrentCategory--
	return nil
}

// Restart clears the session back to its initial state: no responses, first
// category active, not complete. It is allowed from any state.
func (s *Session) Restart() {
	s.Responses = make(ResponseSet)
	s.CurrentCategory = 0
	s.Completed = false
}

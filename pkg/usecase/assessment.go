package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/themis/pkg/domain/interfaces"
	"github.com/secmon-lab/themis/pkg/domain/model"
	"github.com/secmon-lab/themis/pkg/domain/types"
)

// AssessmentUseCase drives assessment sessions: answer recording, paging
// through categories, and result derivation. All scoring is delegated to
// the pure functions in the model package; this layer only owns session
// lifecycle and persistence.
type AssessmentUseCase struct {
	repo            interfaces.Repository
	schema          *model.Schema
	recommendations *model.RecommendationTable
}

func NewAssessmentUseCase(repo interfaces.Repository, schema *model.Schema, recommendations *model.RecommendationTable) *AssessmentUseCase {
	return &AssessmentUseCase{
		repo:            repo,
		schema:          schema,
		recommendations: recommendations,
	}
}

// Schema returns the question schema this use case runs against
func (uc *AssessmentUseCase) Schema() *model.Schema {
	return uc.schema
}

// Start creates a new empty session
func (uc *AssessmentUseCase) Start(ctx context.Context) (*model.Session, error) {
	session := model.NewSession(uuid.NewString())

	created, err := uc.repo.Session().Create(ctx, session)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create session")
	}
	return created, nil
}

// Get returns the session with the given ID
func (uc *AssessmentUseCase) Get(ctx context.Context, id string) (*model.Session, error) {
	session, err := uc.repo.Session().Get(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get session")
	}
	return session, nil
}

// Answer records the option selected for a question. The selection is
// resolved to its risk weight through the schema, then recorded through the
// session's validate-then-apply contract.
func (uc *AssessmentUseCase) Answer(ctx context.Context, id string, categoryIdx, questionIdx, optionIdx int) (*model.Session, error) {
	weight, err := uc.schema.OptionWeight(categoryIdx, questionIdx, optionIdx)
	if err != nil {
		return nil, err
	}
	return uc.mutate(ctx, id, func(session *model.Session) error {
		return session.Record(uc.schema, categoryIdx, questionIdx, weight)
	})
}

// Advance applies the Next transition
func (uc *AssessmentUseCase) Advance(ctx context.Context, id string) (*model.Session, error) {
	return uc.mutate(ctx, id, func(session *model.Session) error {
		return session.Next(uc.schema)
	})
}

// Retreat applies the Previous transition
func (uc *AssessmentUseCase) Retreat(ctx context.Context, id string) (*model.Session, error) {
	return uc.mutate(ctx, id, func(session *model.Session) error {
		return session.Previous()
	})
}

// Restart clears the session back to its initial state
func (uc *AssessmentUseCase) Restart(ctx context.Context, id string) (*model.Session, error) {
	return uc.mutate(ctx, id, func(session *model.Session) error {
		session.Restart()
		return nil
	})
}

func (uc *AssessmentUseCase) mutate(ctx context.Context, id string, fn func(*model.Session) error) (*model.Session, error) {
	session, err := uc.repo.Session().Get(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get session")
	}

	if err := fn(session); err != nil {
		return nil, err
	}

	updated, err := uc.repo.Session().Put(ctx, session)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to save session")
	}
	return updated, nil
}

// CategoryProgress is the per-category completeness view
type CategoryProgress struct {
	Index     int
	TenetID   types.TenetID
	Name      string
	Questions int
	Answered  int
	Complete  bool
}

// Progress is the presentation-facing view of a session's state, including
// the allowed-transition flags that gate the navigation controls.
type Progress struct {
	SessionID       string
	CurrentCategory int
	Completed       bool
	Answered        int
	Total           int
	CanAdvance      bool
	CanRetreat      bool
	Categories      []CategoryProgress
}

// Progress reports how far a session has come
func (uc *AssessmentUseCase) Progress(ctx context.Context, id string) (*Progress, error) {
	session, err := uc.repo.Session().Get(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get session")
	}
	return uc.progressOf(session), nil
}

func (uc *AssessmentUseCase) progressOf(session *model.Session) *Progress {
	progress := &Progress{
		SessionID:       session.ID,
		CurrentCategory: session.CurrentCategory,
		Completed:       session.Completed,
		Answered:        session.TotalAnswered(),
		Total:           uc.schema.TotalQuestions(),
		CanAdvance:      session.CanAdvance(uc.schema),
		CanRetreat:      session.CanRetreat(),
		Categories:      make([]CategoryProgress, len(uc.schema.Categories)),
	}

	for i, category := range uc.schema.Categories {
		answered := 0
		for q := range category.Questions {
			if _, ok := session.Responses[model.QuestionKey{Category: i, Question: q}]; ok {
				answered++
			}
		}
		progress.Categories[i] = CategoryProgress{
			Index:     i,
			TenetID:   category.ID,
			Name:      category.Name,
			Questions: len(category.Questions),
			Answered:  answered,
			Complete:  answered == len(category.Questions),
		}
	}

	return progress
}

// AssessmentResult bundles the derived score with the selected guidance
type AssessmentResult struct {
	Result *model.OverallResult
	Plan   *model.ActionPlan
}

// Result scores the session and selects applicable recommendations. It
// passes through ErrNoResponses when nothing has been answered yet.
func (uc *AssessmentUseCase) Result(ctx context.Context, id string) (*AssessmentResult, error) {
	session, err := uc.repo.Session().Get(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get session")
	}

	result, err := model.Score(uc.schema, session.Responses)
	if err != nil {
		return nil, err
	}

	policy, err := model.PolicyFor(uc.schema.Mode)
	if err != nil {
		return nil, err
	}

	return &AssessmentResult{
		Result: result,
		Plan:   model.SelectActions(uc.recommendations, result, policy),
	}, nil
}

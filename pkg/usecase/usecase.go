package usecase

import (
	"github.com/secmon-lab/themis/pkg/domain/interfaces"
	"github.com/secmon-lab/themis/pkg/domain/model"
)

type UseCases struct {
	repo            interfaces.Repository
	schema          *model.Schema
	recommendations *model.RecommendationTable
	Assessment      *AssessmentUseCase
}

type Option func(*UseCases)

func WithRecommendations(table *model.RecommendationTable) Option {
	return func(uc *UseCases) {
		uc.recommendations = table
	}
}

func New(repo interfaces.Repository, schema *model.Schema, opts ...Option) *UseCases {
	uc := &UseCases{
		repo:   repo,
		schema: schema,
	}

	for _, opt := range opts {
		opt(uc)
	}

	uc.Assessment = NewAssessmentUseCase(repo, schema, uc.recommendations)

	return uc
}

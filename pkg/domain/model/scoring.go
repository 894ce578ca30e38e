package model

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/themis/pkg/domain/types"
)

// CategoryScore is the derived score of one category. It is computed on
// demand and never stored.
type CategoryScore struct {
	CategoryIndex int
	TenetID       types.TenetID
	Name          string
	AverageRisk   float64
	Percentage    float64
	Level         types.Level
}

// OverallResult is the derived outcome of a whole assessment
type OverallResult struct {
	Mode       types.ScoringMode
	Percentage float64
	Level      types.Level
	Answered   int
	Categories []CategoryScore
}

// CategoryAverage returns the arithmetic mean risk of a category's
// questions. Unanswered questions count as risk 0 and the divisor is the
// full question count, matching the original assessment's calculation. This
// understates risk for partially answered categories; see DESIGN.md.
func CategoryAverage(schema *Schema, responses ResponseSet, categoryIdx int) (float64, error) {
	if categoryIdx < 0 || categoryIdx >= len(schema.Categories) {
		return 0, goerr.Wrap(types.ErrInvalidIndex, "category index out of bounds",
			goerr.V("category", categoryIdx),
		)
	}
	questions := schema.Categories[categoryIdx].Questions
	if len(questions) == 0 {
		return 0, nil
	}

	total := 0
	for q := range questions {
		if w, ok := responses[QuestionKey{Category: categoryIdx, Question: q}]; ok {
			total += w.Int()
		}
	}
	return float64(total) / float64(len(questions)), nil
}

// OverallPercentage computes the polarity-specific percentage over all
// recorded answers. It returns ErrNoResponses when nothing has been
// answered yet; callers must treat that as "no result to display", not as a
// fault.
func OverallPercentage(responses ResponseSet, policy ScoringPolicy) (float64, error) {
	if len(responses) == 0 {
		return 0, goerr.Wrap(types.ErrNoResponses, "cannot score an empty response set")
	}

	total := 0
	for _, w := range responses {
		total += w.Int()
	}
	return policy.Percentage(total, len(responses)), nil
}

// Score derives the full result for a response set: the overall percentage
// and level plus one CategoryScore per schema category, in schema order.
// Scoring is a pure function of the schema and the responses.
func Score(schema *Schema, responses ResponseSet) (*OverallResult, error) {
	policy, err := PolicyFor(schema.Mode)
	if err != nil {
		return nil, err
	}

	percentage, err := OverallPercentage(responses, policy)
	if err != nil {
		return nil, err
	}

	result := &OverallResult{
		Mode:       schema.Mode,
		Percentage: percentage,
		Level:      policy.Classify(percentage),
		Answered:   len(responses),
		Categories: make([]CategoryScore, len(schema.Categories)),
	}

	for i, category := range schema.Categories {
		avg, err := CategoryAverage(schema, responses, i)
		if err != nil {
			return nil, err
		}
		result.Categories[i] = CategoryScore{
			CategoryIndex: i,
			TenetID:       category.ID,
			Name:          category.Name,
			AverageRisk:   avg,
			Percentage:    policy.CategoryPercentage(avg),
			Level:         policy.ClassifyCategory(avg),
		}
	}

	return result, nil
}

package model

import (
	"github.com/secmon-lab/themis/pkg/domain/types"
)

// Guidance is one overall recommendation entry with its regulatory sources
type Guidance struct {
	Title       string
	Description string
	Sources     string
}

// ControlActions groups concrete steps under a control family name
type ControlActions struct {
	Name  string
	Items []string
}

// ActionTemplate is the static guidance attached to one tenet at one
// severity bucket
type ActionTemplate struct {
	Focus     string
	Controls  []ControlActions
	Standards string
}

// TenetActions holds the per-bucket templates for one tenet. Either entry
// may be nil when the table carries no guidance for that bucket.
type TenetActions struct {
	Immediate   *ActionTemplate
	Recommended *ActionTemplate
}

// RecommendationTable is the declarative guidance content: loaded once at
// startup, immutable for the process lifetime, joined to scores only at
// selection time via tenet ID.
type RecommendationTable struct {
	Guidance      []Guidance
	PriorityNotes map[types.Level]string
	Tenets        map[types.TenetID]TenetActions
}

// Action is a selected per-tenet action with its applicability flag
type Action struct {
	TenetID   types.TenetID
	Name      string
	Priority  types.ActionPriority
	Focus     string
	Controls  []ControlActions
	Standards string
}

// ActionPlan is the outcome of recommendation selection for one result
type ActionPlan struct {
	OverallLevel types.Level
	PriorityNote string
	Guidance     []Guidance
	Actions      []Action
}

// SelectActions filters the static table against a scored result. Overall
// guidance applies whenever the overall level is not the best bucket.
// Tenets at the worst bucket yield immediate actions, tenets at the middle
// bucket yield recommended actions, and nothing is selected when every
// tenet sits at the best bucket.
func SelectActions(table *RecommendationTable, result *OverallResult, policy ScoringPolicy) *ActionPlan {
	plan := &ActionPlan{OverallLevel: result.Level}
	if table == nil {
		return plan
	}

	if result.Level != policy.BestLevel() {
		plan.Guidance = table.Guidance
		plan.PriorityNote = table.PriorityNotes[result.Level]
	}

	for _, cs := range result.Categories {
		actions, ok := table.Tenets[cs.TenetID]
		if !ok {
			continue
		}

		var tmpl *ActionTemplate
		var priority types.ActionPriority
		switch cs.Level {
		case policy.WorstLevel():
			tmpl = actions.Immediate
			priority = types.ActionPriorityImmediate
		case policy.MiddleLevel():
			tmpl = actions.Recommended
			priority = types.ActionPriorityRecommended
		default:
			continue
		}
		if tmpl == nil {
			continue
		}

		plan.Actions = append(plan.Actions, Action{
			TenetID:   cs.TenetID,
			Name:      cs.Name,
			Priority:  priority,
			Focus:     tmpl.Focus,
			Controls:  tmpl.Controls,
			Standards: tmpl.Standards,
		})
	}

	return plan
}

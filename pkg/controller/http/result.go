package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/secmon-lab/themis/pkg/domain/model"
	"github.com/secmon-lab/themis/pkg/usecase"
	"github.com/secmon-lab/themis/pkg/utils/errutil"
)

type schemaResponse struct {
	Name       string                   `json:"name"`
	Mode       string                   `json:"mode"`
	Categories []schemaCategoryResponse `json:"categories"`
}

type schemaCategoryResponse struct {
	TenetID     string                   `json:"tenet_id"`
	Name        string                   `json:"name"`
	Description string                   `json:"description"`
	Summary     string                   `json:"summary,omitempty"`
	Questions   []schemaQuestionResponse `json:"questions"`
}

type schemaQuestionResponse struct {
	Text    string   `json:"text"`
	Options []string `json:"options"`
}

// schemaHandler serves the question table for the presentation layer. Risk
// weights stay server-side; clients submit option positions.
func schemaHandler(uc *usecase.AssessmentUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		schema := uc.Schema()
		resp := schemaResponse{
			Name:       schema.Name,
			Mode:       schema.Mode.String(),
			Categories: make([]schemaCategoryResponse, len(schema.Categories)),
		}
		for i, cat := range schema.Categories {
			questions := make([]schemaQuestionResponse, len(cat.Questions))
			for qi, q := range cat.Questions {
				options := make([]string, len(q.Options))
				for oi, opt := range q.Options {
					options[oi] = opt.Text
				}
				questions[qi] = schemaQuestionResponse{
					Text:    q.Text,
					Options: options,
				}
			}
			resp.Categories[i] = schemaCategoryResponse{
				TenetID:     cat.ID.String(),
				Name:        cat.Name,
				Description: cat.Description,
				Summary:     cat.Summary,
				Questions:   questions,
			}
		}

		writeJSON(w, r, http.StatusOK, resp)
	}
}

type resultResponse struct {
	Mode       string                  `json:"mode"`
	Percentage float64                 `json:"percentage"`
	Level      string                  `json:"level"`
	Answered   int                     `json:"answered"`
	Categories []categoryScoreResponse `json:"categories"`
	Plan       actionPlanResponse      `json:"plan"`
}

type categoryScoreResponse struct {
	Index       int     `json:"index"`
	TenetID     string  `json:"tenet_id"`
	Name        string  `json:"name"`
	AverageRisk float64 `json:"average_risk"`
	Percentage  float64 `json:"percentage"`
	Level       string  `json:"level"`
}

type actionPlanResponse struct {
	PriorityNote string             `json:"priority_note,omitempty"`
	Guidance     []guidanceResponse `json:"guidance,omitempty"`
	Actions      []actionResponse   `json:"actions,omitempty"`
}

type guidanceResponse struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Sources     string `json:"sources"`
}

type actionResponse struct {
	TenetID   string            `json:"tenet_id"`
	Name      string            `json:"name"`
	Priority  string            `json:"priority"`
	Focus     string            `json:"focus"`
	Controls  []controlResponse `json:"controls,omitempty"`
	Standards string            `json:"standards,omitempty"`
}

type controlResponse struct {
	Name  string   `json:"name"`
	Items []string `json:"items"`
}

func resultHandler(uc *usecase.AssessmentUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := uc.Result(r.Context(), chi.URLParam(r, "sessionID"))
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err, statusFromError(err))
			return
		}

		writeJSON(w, r, http.StatusOK, toResultResponse(res))
	}
}

func toResultResponse(res *usecase.AssessmentResult) resultResponse {
	resp := resultResponse{
		Mode:       res.Result.Mode.String(),
		Percentage: res.Result.Percentage,
		Level:      res.Result.Level.String(),
		Answered:   res.Result.Answered,
		Categories: make([]categoryScoreResponse, len(res.Result.Categories)),
	}
	for i, cs := range res.Result.Categories {
		resp.Categories[i] = categoryScoreResponse{
			Index:       cs.CategoryIndex,
			TenetID:     cs.TenetID.String(),
			Name:        cs.Name,
			AverageRisk: cs.AverageRisk,
			Percentage:  cs.Percentage,
			Level:       cs.Level.String(),
		}
	}
	resp.Plan = toActionPlanResponse(res.Plan)
	return resp
}

func toActionPlanResponse(plan *model.ActionPlan) actionPlanResponse {
	resp := actionPlanResponse{
		PriorityNote: plan.PriorityNote,
	}
	for _, g := range plan.Guidance {
		resp.Guidance = append(resp.Guidance, guidanceResponse{
			Title:       g.Title,
			Description: g.Description,
			Sources:     g.Sources,
		})
	}
	for _, a := range plan.Actions {
		action := actionResponse{
			TenetID:   a.TenetID.String(),
			Name:      a.Name,
			Priority:  a.Priority.String(),
			Focus:     a.Focus,
			Standards: a.Standards,
		}
		for _, c := range a.Controls {
			action.Controls = append(action.Controls, controlResponse{
				Name:  c.Name,
				Items: c.Items,
			})
		}
		resp.Actions = append(resp.Actions, action)
	}
	return resp
}

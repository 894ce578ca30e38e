package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/themis/pkg/domain/model"
	"github.com/secmon-lab/themis/pkg/domain/types"
	"github.com/secmon-lab/themis/pkg/usecase"
	"github.com/secmon-lab/themis/pkg/utils/errutil"
)

// statusFromError maps domain errors onto HTTP status codes. Rejected
// transitions and not-yet-scorable sessions are expected outcomes, reported
// as conflicts rather than server faults.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, types.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, types.ErrInvalidIndex), errors.Is(err, types.ErrInvalidWeight):
		return http.StatusBadRequest
	case errors.Is(err, types.ErrRejectedTransition), errors.Is(err, types.ErrNoResponses):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

type sessionResponse struct {
	ID              string `json:"id"`
	CurrentCategory int    `json:"current_category"`
	Completed       bool   `json:"completed"`
	Answered        int    `json:"answered"`
	Total           int    `json:"total"`
	CanAdvance      bool   `json:"can_advance"`
	CanRetreat      bool   `json:"can_retreat"`

	Categories []categoryProgressResponse `json:"categories"`
}

type categoryProgressResponse struct {
	Index     int    `json:"index"`
	TenetID   string `json:"tenet_id"`
	Name      string `json:"name"`
	Questions int    `json:"questions"`
	Answered  int    `json:"answered"`
	Complete  bool   `json:"complete"`
}

func toSessionResponse(p *usecase.Progress) sessionResponse {
	resp := sessionResponse{
		ID:              p.SessionID,
		CurrentCategory: p.CurrentCategory,
		Completed:       p.Completed,
		Answered:        p.Answered,
		Total:           p.Total,
		CanAdvance:      p.CanAdvance,
		CanRetreat:      p.CanRetreat,
		Categories:      make([]categoryProgressResponse, len(p.Categories)),
	}
	for i, c := range p.Categories {
		resp.Categories[i] = categoryProgressResponse{
			Index:     c.Index,
			TenetID:   c.TenetID.String(),
			Name:      c.Name,
			Questions: c.Questions,
			Answered:  c.Answered,
			Complete:  c.Complete,
		}
	}
	return resp
}

func createSessionHandler(uc *usecase.AssessmentUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := uc.Start(r.Context())
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err, statusFromError(err))
			return
		}

		progress, err := uc.Progress(r.Context(), session.ID)
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err, statusFromError(err))
			return
		}
		writeJSON(w, r, http.StatusCreated, toSessionResponse(progress))
	}
}

func getSessionHandler(uc *usecase.AssessmentUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		progress, err := uc.Progress(r.Context(), chi.URLParam(r, "sessionID"))
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err, statusFromError(err))
			return
		}
		writeJSON(w, r, http.StatusOK, toSessionResponse(progress))
	}
}

type answerRequest struct {
	Category int `json:"category"`
	Question int `json:"question"`
	Option   int `json:"option"`
}

func putAnswerHandler(uc *usecase.AssessmentUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req answerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "failed to decode answer request"), http.StatusBadRequest)
			return
		}

		_, err := uc.Answer(r.Context(), chi.URLParam(r, "sessionID"), req.Category, req.Question, req.Option)
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err, statusFromError(err))
			return
		}

		progress, err := uc.Progress(r.Context(), chi.URLParam(r, "sessionID"))
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err, statusFromError(err))
			return
		}
		writeJSON(w, r, http.StatusOK, toSessionResponse(progress))
	}
}

// transitionHandler serves the Next/Previous/Restart navigation endpoints
func transitionHandler(transition func(ctx context.Context, id string) (*model.Session, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := transition(r.Context(), chi.URLParam(r, "sessionID"))
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err, statusFromError(err))
			return
		}

		writeJSON(w, r, http.StatusOK, map[string]any{
			"id":               session.ID,
			"current_category": session.CurrentCategory,
			"completed":        session.Completed,
		})
	}
}

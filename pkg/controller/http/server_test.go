package http_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m-mizutani/gt"

	httpctrl "github.com/secmon-lab/themis/pkg/controller/http"
	"github.com/secmon-lab/themis/pkg/domain/model"
	"github.com/secmon-lab/themis/pkg/domain/types"
	"github.com/secmon-lab/themis/pkg/repository/memory"
	"github.com/secmon-lab/themis/pkg/usecase"
)

func testSchema() *model.Schema {
	options := []model.Option{
		{Text: "strong controls", Weight: 0},
		{Text: "partial controls", Weight: 1},
		{Text: "no controls", Weight: 2},
	}

	return &model.Schema{
		Name: "Test Assessment",
		Mode: types.ScoringModeRisk,
		Categories: []model.Category{
			{
				ID:   "governance",
				Name: "Governance",
				Questions: []model.Question{
					{Text: "q1", Options: options},
					{Text: "q2", Options: options},
				},
			},
			{
				ID:   "security",
				Name: "Security",
				Questions: []model.Question{
					{Text: "q3", Options: options},
				},
			},
		},
	}
}

func setupServer() *httpctrl.Server {
	table := &model.RecommendationTable{
		Guidance: []model.Guidance{
			{Title: "Improve governance", Description: "Set up a review board"},
		},
		PriorityNotes: map[types.Level]string{
			types.LevelHigh:   "act now",
			types.LevelMedium: "plan this quarter",
		},
		Tenets: map[types.TenetID]model.TenetActions{
			"governance": {
				Immediate: &model.ActionTemplate{
					Focus:     "governance now",
					Standards: "EU AI Act Article 14",
					Controls: []model.ControlActions{
						{Name: "Governance Controls", Items: []string{"Establish decision authority"}},
					},
				},
			},
		},
	}

	uc := usecase.New(memory.New(), testSchema(), usecase.WithRecommendations(table))
	return httpctrl.New(uc)
}

type sessionBody struct {
	ID              string `json:"id"`
	CurrentCategory int    `json:"current_category"`
	Completed       bool   `json:"completed"`
	Answered        int    `json:"answered"`
	Total           int    `json:"total"`
	CanAdvance      bool   `json:"can_advance"`
	CanRetreat      bool   `json:"can_retreat"`
}

func createSession(t *testing.T, srv *httpctrl.Server) sessionBody {
	t.Helper()
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/sessions", nil))
	gt.Value(t, rec.Code).Equal(http.StatusCreated)

	var body sessionBody
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body)).Required()
	return body
}

func putAnswer(t *testing.T, srv *httpctrl.Server, sessionID string, category, question, option int) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(map[string]int{
		"category": category,
		"question": question,
		"option":   option,
	})
	gt.NoError(t, err).Required()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut,
		fmt.Sprintf("/api/sessions/%s/answers", sessionID), bytes.NewReader(payload))
	srv.ServeHTTP(rec, req)
	return rec
}

func postTransition(t *testing.T, srv *httpctrl.Server, sessionID, transition string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost,
		fmt.Sprintf("/api/sessions/%s/%s", sessionID, transition), nil)
	srv.ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoint(t *testing.T) {
	srv := setupServer()

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	gt.Value(t, rec.Code).Equal(http.StatusOK)
	gt.Value(t, rec.Body.String()).Equal("OK")
}

func TestSchemaEndpoint(t *testing.T) {
	srv := setupServer()

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/schema", nil))
	gt.Value(t, rec.Code).Equal(http.StatusOK)

	var body struct {
		Name       string `json:"name"`
		Mode       string `json:"mode"`
		Categories []struct {
			TenetID   string `json:"tenet_id"`
			Questions []struct {
				Text    string   `json:"text"`
				Options []string `json:"options"`
			} `json:"questions"`
		} `json:"categories"`
	}
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body)).Required()
	gt.Value(t, body.Name).Equal("Test Assessment")
	gt.Value(t, body.Mode).Equal("risk")
	gt.Array(t, body.Categories).Length(2).Required()
	gt.Value(t, body.Categories[0].TenetID).Equal("governance")
	gt.Array(t, body.Categories[0].Questions[0].Options).Length(3)

	// Risk weights must not appear in the schema payload.
	gt.Bool(t, bytes.Contains(rec.Body.Bytes(), []byte("risk_weight"))).False()
}

func TestSessionLifecycle(t *testing.T) {
	srv := setupServer()

	session := createSession(t, srv)
	gt.Value(t, session.CurrentCategory).Equal(0)
	gt.Value(t, session.Total).Equal(3)
	gt.Bool(t, session.CanAdvance).False()
	gt.Bool(t, session.CanRetreat).False()

	rec := putAnswer(t, srv, session.ID, 0, 0, 2)
	gt.Value(t, rec.Code).Equal(http.StatusOK)

	var updated sessionBody
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated)).Required()
	gt.Value(t, updated.Answered).Equal(1)
	gt.Bool(t, updated.CanAdvance).False()

	rec = putAnswer(t, srv, session.ID, 0, 1, 1)
	gt.Value(t, rec.Code).Equal(http.StatusOK)
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated)).Required()
	gt.Bool(t, updated.CanAdvance).True()

	rec = postTransition(t, srv, session.ID, "next")
	gt.Value(t, rec.Code).Equal(http.StatusOK)

	rec = putAnswer(t, srv, session.ID, 1, 0, 0)
	gt.Value(t, rec.Code).Equal(http.StatusOK)

	rec = postTransition(t, srv, session.ID, "next")
	gt.Value(t, rec.Code).Equal(http.StatusOK)

	var transitioned struct {
		Completed bool `json:"completed"`
	}
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &transitioned)).Required()
	gt.Bool(t, transitioned.Completed).True()

	// GET reflects the stored state.
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/sessions/"+session.ID+"/", nil))
	gt.Value(t, rec.Code).Equal(http.StatusOK)
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated)).Required()
	gt.Bool(t, updated.Completed).True()
	gt.Value(t, updated.Answered).Equal(3)
}

func TestResultEndpoint(t *testing.T) {
	srv := setupServer()
	session := createSession(t, srv)

	// Weights 2, 2, 0: high risk overall, with the governance category at
	// the worst bucket.
	putAnswer(t, srv, session.ID, 0, 0, 2)
	putAnswer(t, srv, session.ID, 0, 1, 2)
	putAnswer(t, srv, session.ID, 1, 0, 0)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/sessions/"+session.ID+"/result", nil))
	gt.Value(t, rec.Code).Equal(http.StatusOK)

	var body struct {
		Mode       string  `json:"mode"`
		Percentage float64 `json:"percentage"`
		Level      string  `json:"level"`
		Categories []struct {
			TenetID string `json:"tenet_id"`
			Level   string `json:"level"`
		} `json:"categories"`
		Plan struct {
			PriorityNote string `json:"priority_note"`
			Guidance     []struct {
				Title string `json:"title"`
			} `json:"guidance"`
			Actions []struct {
				TenetID  string `json:"tenet_id"`
				Priority string `json:"priority"`
				Focus    string `json:"focus"`
			} `json:"actions"`
		} `json:"plan"`
	}
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body)).Required()

	gt.Value(t, body.Mode).Equal("risk")
	gt.Value(t, body.Level).Equal("HIGH")
	gt.Array(t, body.Categories).Length(2).Required()
	gt.Value(t, body.Categories[0].Level).Equal("HIGH")
	gt.Value(t, body.Plan.PriorityNote).Equal("act now")
	gt.Array(t, body.Plan.Guidance).Length(1)
	gt.Array(t, body.Plan.Actions).Length(1).Required()
	gt.Value(t, body.Plan.Actions[0].Priority).Equal("immediate")
	gt.Value(t, body.Plan.Actions[0].Focus).Equal("governance now")
}

func TestErrorStatusMapping(t *testing.T) {
	srv := setupServer()

	t.Run("unknown session is 404", func(t *testing.T) {
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/sessions/missing/", nil))
		gt.Value(t, rec.Code).Equal(http.StatusNotFound)
	})

	t.Run("invalid answer indices are 400", func(t *testing.T) {
		session := createSession(t, srv)

		rec := putAnswer(t, srv, session.ID, 9, 0, 0)
		gt.Value(t, rec.Code).Equal(http.StatusBadRequest)

		rec = putAnswer(t, srv, session.ID, 0, 0, 9)
		gt.Value(t, rec.Code).Equal(http.StatusBadRequest)
	})

	t.Run("malformed answer body is 400", func(t *testing.T) {
		session := createSession(t, srv)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut,
			"/api/sessions/"+session.ID+"/answers", bytes.NewReader([]byte("{broken")))
		srv.ServeHTTP(rec, req)
		gt.Value(t, rec.Code).Equal(http.StatusBadRequest)
	})

	t.Run("rejected transition is 409", func(t *testing.T) {
		session := createSession(t, srv)

		rec := postTransition(t, srv, session.ID, "next")
		gt.Value(t, rec.Code).Equal(http.StatusConflict)

		rec = postTransition(t, srv, session.ID, "previous")
		gt.Value(t, rec.Code).Equal(http.StatusConflict)
	})

	t.Run("result of an untouched session is 409", func(t *testing.T) {
		session := createSession(t, srv)

		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/sessions/"+session.ID+"/result", nil))
		gt.Value(t, rec.Code).Equal(http.StatusConflict)
	})
}

func TestRestartEndpoint(t *testing.T) {
	srv := setupServer()
	session := createSession(t, srv)

	putAnswer(t, srv, session.ID, 0, 0, 1)
	putAnswer(t, srv, session.ID, 0, 1, 1)
	postTransition(t, srv, session.ID, "next")

	rec := postTransition(t, srv, session.ID, "restart")
	gt.Value(t, rec.Code).Equal(http.StatusOK)

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/sessions/"+session.ID+"/", nil))

	var body sessionBody
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body)).Required()
	gt.Value(t, body.Answered).Equal(0)
	gt.Value(t, body.CurrentCategory).Equal(0)
	gt.Bool(t, body.Completed).False()
}

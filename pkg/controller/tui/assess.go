package tui

import (
	"context"

	tea "charm.land/bubbletea/v2"
	"github.com/m-mizutani/goerr/v2"

	"github.com/secmon-lab/themis/pkg/domain/model"
	"github.com/secmon-lab/themis/pkg/usecase"
)

// Model is the root Bubble Tea model for the interactive assessment. It
// pages through categories one question at a time and delegates every state
// change to the assessment use case, so the terminal flow obeys the same
// transition rules as the HTTP API: forward paging requires a complete
// category, backward paging is always available above the first question,
// and the result view offers a restart.
type Model struct {
	ctx     context.Context
	uc      *usecase.AssessmentUseCase
	schema  *model.Schema
	session *model.Session

	question int // index within the current category
	cursor   int // highlighted option
	width    int

	result   *usecase.AssessmentResult
	err      error
	quitting bool
}

// NewModel starts a fresh session and positions the view at the first
// question
func NewModel(ctx context.Context, uc *usecase.AssessmentUseCase) (Model, error) {
	session, err := uc.Start(ctx)
	if err != nil {
		return Model{}, err
	}
	return Model{
		ctx:     ctx,
		uc:      uc,
		schema:  uc.Schema(),
		session: session,
	}, nil
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if m.err != nil {
			m.quitting = true
			return m, tea.Quit
		}
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
		if m.result != nil {
			return m.updateResult(msg)
		}
		return m.updateQuestion(msg)
	}
	return m, nil
}

func (m Model) updateResult(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "r":
		session, err := m.uc.Restart(m.ctx, m.session.ID)
		if err != nil {
			return m.fail(err)
		}
		m.session = session
		m.result = nil
		m.question = 0
		m.cursor = 0
	case "q", "enter", "esc":
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) updateQuestion(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.currentQuestion().Options)-1 {
			m.cursor++
		}
	case "enter":
		return m.answer()
	case "left", "esc":
		return m.back()
	}
	return m, nil
}

// answer records the highlighted option and moves forward: to the next
// question within the category, or through the Next transition when the
// category page is done. Completing the last category switches to the
// result view.
func (m Model) answer() (tea.Model, tea.Cmd) {
	session, err := m.uc.Answer(m.ctx, m.session.ID, m.session.CurrentCategory, m.question, m.cursor)
	if err != nil {
		return m.fail(err)
	}
	m.session = session

	if m.question+1 < len(m.schema.Categories[m.session.CurrentCategory].Questions) {
		m.question++
		m.cursor = m.recordedOption()
		return m, nil
	}

	session, err = m.uc.Advance(m.ctx, m.session.ID)
	if err != nil {
		return m.fail(err)
	}
	m.session = session

	if m.session.Completed {
		result, err := m.uc.Result(m.ctx, m.session.ID)
		if err != nil {
			return m.fail(err)
		}
		m.result = result
		return m, nil
	}

	m.question = 0
	m.cursor = m.recordedOption()
	return m, nil
}

// back steps to the previous question, crossing into the previous category
// through the Previous transition when needed. At the very first question
// it is a no-op.
func (m Model) back() (tea.Model, tea.Cmd) {
	if m.question > 0 {
		m.question--
		m.cursor = m.recordedOption()
		return m, nil
	}
	if !m.session.CanRetreat() {
		return m, nil
	}

	session, err := m.uc.Retreat(m.ctx, m.session.ID)
	if err != nil {
		return m.fail(err)
	}
	m.session = session
	m.question = len(m.schema.Categories[m.session.CurrentCategory].Questions) - 1
	m.cursor = m.recordedOption()
	return m, nil
}

// recordedOption returns the option position of the answer already recorded
// for the current question, so revisited questions show the earlier choice
func (m Model) recordedOption() int {
	key := model.QuestionKey{Category: m.session.CurrentCategory, Question: m.question}
	weight, ok := m.session.Responses[key]
	if !ok {
		return 0
	}
	for i, option := range m.currentQuestion().Options {
		if option.Weight == weight {
			return i
		}
	}
	return 0
}

func (m Model) currentQuestion() model.Question {
	return m.schema.Categories[m.session.CurrentCategory].Questions[m.question]
}

func (m Model) fail(err error) (tea.Model, tea.Cmd) {
	m.err = err
	m.quitting = true
	return m, tea.Quit
}

// Run starts the interactive assessment and blocks until the respondent
// quits. A nil result without an error means the walkthrough was abandoned
// before reaching the result view.
func Run(ctx context.Context, uc *usecase.AssessmentUseCase) (*usecase.AssessmentResult, error) {
	m, err := NewModel(ctx, uc)
	if err != nil {
		return nil, err
	}

	final, err := tea.NewProgram(m).Run()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to run terminal assessment")
	}

	fm, ok := final.(Model)
	if !ok {
		return nil, nil
	}
	if fm.err != nil {
		return nil, fm.err
	}
	return fm.result, nil
}

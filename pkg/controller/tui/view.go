package tui

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/secmon-lab/themis/pkg/domain/types"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#22D3EE"))
	categoryStyle = lipgloss.NewStyle().Bold(true)
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#94A3B8"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#8B5CF6"))
	hintStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#94A3B8")).Italic(true)

	goodStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#22C55E"))
	midStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#EAB308"))
	badStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F43F5E"))
)

func levelStyle(level types.Level) lipgloss.Style {
	switch level {
	case types.LevelLow, types.LevelAdvanced:
		return goodStyle
	case types.LevelMedium, types.LevelDeveloping:
		return midStyle
	default:
		return badStyle
	}
}

func (m Model) View() tea.View {
	v := tea.NewView("")
	switch {
	case m.err != nil:
		v.SetContent(m.viewError())
	case m.result != nil:
		v.SetContent(m.viewResult())
	default:
		v.SetContent(m.viewQuestion())
	}
	return v
}

func (m Model) viewQuestion() string {
	category := m.schema.Categories[m.session.CurrentCategory]
	question := category.Questions[m.question]

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.schema.Name) + "\n\n")
	b.WriteString(categoryStyle.Render(fmt.Sprintf("[%d/%d] %s",
		m.session.CurrentCategory+1, m.schema.CategoryCount(), category.Name)) + "\n")
	if category.Description != "" {
		b.WriteString(dimStyle.Render(category.Description) + "\n")
	}
	b.WriteString("\n")

	text := fmt.Sprintf("Q%d: %s", m.question+1, question.Text)
	if m.width > 0 {
		text = lipgloss.NewStyle().Width(m.width).Render(text)
	}
	b.WriteString(text + "\n\n")

	for i, option := range question.Options {
		line := fmt.Sprintf("%d) %s", i+1, option.Text)
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("▸ "+line) + "\n")
		} else {
			b.WriteString("  " + line + "\n")
		}
	}

	b.WriteString("\n" + hintStyle.Render(fmt.Sprintf(
		"%d/%d answered · ↑↓ select · enter answer · esc back · ctrl+c quit",
		m.session.TotalAnswered(), m.schema.TotalQuestions())) + "\n")
	return b.String()
}

func (m Model) viewResult() string {
	overall := m.result.Result

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.schema.Name) + "\n\n")

	label := "Overall risk"
	if overall.Mode == types.ScoringModeReadiness {
		label = "Overall readiness"
	}
	b.WriteString(fmt.Sprintf("%s: %s (%.1f%%)\n\n",
		label, levelStyle(overall.Level).Render(string(overall.Level)), overall.Percentage))

	for _, cs := range overall.Categories {
		b.WriteString(fmt.Sprintf("  %-40s %s %.1f%%\n",
			cs.Name, levelStyle(cs.Level).Render(fmt.Sprintf("%-12s", cs.Level)), cs.Percentage))
	}

	if m.result.Plan.PriorityNote != "" {
		b.WriteString("\n" + m.result.Plan.PriorityNote + "\n")
	}

	b.WriteString("\n" + hintStyle.Render("r retake the assessment · q quit") + "\n")
	return b.String()
}

func (m Model) viewError() string {
	return badStyle.Render("assessment failed") + "\n" + m.err.Error() + "\n"
}

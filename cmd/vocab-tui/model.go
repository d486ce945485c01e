package main

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"

	"vocabtrainer/internal/session"
)

type mode int

const (
	modeCard mode = iota
	modeSummary
)

const progressWidth = 30

// Model is the bubbletea model over a session manager.
type Model struct {
	trainer *session.Manager
	mode    mode
	cursor  int // position in summaryOrder while in modeSummary
	width   int
	height  int
	quit    bool
}

func NewModel(trainer *session.Manager) Model {
	m := Model{trainer: trainer, width: 80, height: 24}
	if trainer.IsComplete() {
		m.mode = modeSummary
	}
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quit = true
			return m, tea.Quit
		case "tab":
			m.toggleSummary()
			return m, nil
		case "r":
			m.trainer.Reset()
			m.mode = modeCard
			return m, nil
		case "n", "right":
			if m.trainer.Advance(session.Next) {
				m.openSummary()
			}
			return m, nil
		case "p", "left":
			m.trainer.Advance(session.Previous)
			m.mode = modeCard
			return m, nil
		}

		if m.mode == modeSummary {
			return m.updateSummary(msg)
		}
		return m.updateCard(msg)
	}
	return m, nil
}

func (m Model) updateCard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	outcome, ok := map[string]session.Status{
		"c": session.StatusCorrect,
		"x": session.StatusIncorrect,
		"s": session.StatusSkipped,
	}[msg.String()]
	if ok && m.trainer.Mark(m.trainer.Current(), outcome) {
		m.openSummary()
	}
	return m, nil
}

func (m Model) updateSummary(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	order := m.summaryOrder()
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(order)-1 {
			m.cursor++
		}
	case "enter":
		if len(order) > 0 {
			m.trainer.JumpTo(order[m.cursor])
			m.mode = modeCard
		}
	}
	return m, nil
}

func (m *Model) toggleSummary() {
	if m.mode == modeSummary {
		m.mode = modeCard
		return
	}
	m.openSummary()
}

func (m *Model) openSummary() {
	m.mode = modeSummary
	m.cursor = 0
}

// summaryOrder flattens the groups in the order the summary lists them.
func (m Model) summaryOrder() []string {
	g := m.trainer.Groups()
	return lo.Flatten([][]string{g.Correct, g.Incorrect, g.NotAnswered})
}

func (m Model) View() string {
	if m.quit {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Vocab Trainer") + dimStyle.Render(fmt.Sprintf("  %d words", m.trainer.Len())) + "\n")
	b.WriteString(renderProgress(m.trainer.ProgressPercent()) + "\n")

	if m.trainer.Len() == 0 {
		b.WriteString(dimStyle.Render("No words loaded.") + "\n")
		return b.String()
	}

	if m.mode == modeSummary {
		b.WriteString(m.viewSummary())
	} else {
		b.WriteString(m.viewCard())
	}

	b.WriteString("\n" + dimStyle.Render(m.helpLine()))
	return b.String()
}

func (m Model) viewCard() string {
	word := m.trainer.Current()
	status := m.trainer.Status(word)
	var b strings.Builder
	b.WriteString(dimStyle.Render(fmt.Sprintf("%d / %d", m.trainer.Index()+1, m.trainer.Len())) + "\n")
	b.WriteString(wordStyle.Render(styleFor(status).Render(word)) + "\n")
	if status != session.StatusUnset {
		b.WriteString(dimStyle.Render("marked "+string(status)) + "\n")
	}
	return b.String()
}

func (m Model) viewSummary() string {
	g := m.trainer.Groups()
	title := "Summary"
	if m.trainer.IsComplete() {
		title = "All words answered"
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(title) + "\n")

	i := 0
	section := func(name string, words []string, style func(string) string) {
		b.WriteString(fmt.Sprintf("\n%s (%d)\n", name, len(words)))
		for _, w := range words {
			if i == m.cursor {
				b.WriteString(selectedStyle.Render(w) + "\n")
			} else {
				b.WriteString(normalStyle.Render(style(w)) + "\n")
			}
			i++
		}
	}
	section("Correct", g.Correct, func(s string) string { return correctStyle.Render(s) })
	section("Incorrect", g.Incorrect, func(s string) string { return incorrectStyle.Render(s) })
	section("Not answered", g.NotAnswered, func(s string) string { return skippedStyle.Render(s) })
	return b.String()
}

func (m Model) helpLine() string {
	if m.mode == modeSummary {
		return "↑/↓ select · enter jump · tab cards · r reset · q quit"
	}
	return "c correct · x incorrect · s skip · p/← prev · n/→ next · tab summary · r reset · q quit"
}

func renderProgress(percent int) string {
	filled := percent * progressWidth / 100
	return progressFilled.Render(strings.Repeat("█", filled)) +
		progressEmpty.Render(strings.Repeat("░", progressWidth-filled)) +
		fmt.Sprintf(" %d%%", percent)
}

func styleFor(s session.Status) lipgloss.Style {
	switch s {
	case session.StatusCorrect:
		return correctStyle
	case session.StatusIncorrect:
		return incorrectStyle
	case session.StatusSkipped:
		return skippedStyle
	default:
		return normalStyle
	}
}

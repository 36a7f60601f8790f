package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/LetsLearntocodeforfun/Apollo-Running-sub000/internal/cli/formatter"
	"github.com/LetsLearntocodeforfun/Apollo-Running-sub000/internal/domain"
	tea "github.com/charmbracelet/bubbletea"
)

// reviewModel steps through the active recommendations one card at a
// time. Number keys choose an option on the current card, d dismisses
// it, arrows move between cards.
type reviewModel struct {
	app  *App
	recs []*domain.Recommendation

	cursor   int
	resolved map[string]string // rec ID -> outcome line
	errMsg   string
	quitting bool
}

// actionDoneMsg reports the result of an accept or dismiss.
type actionDoneMsg struct {
	recID   string
	outcome string
	err     error
}

func newReviewModel(app *App, recs []*domain.Recommendation) reviewModel {
	return reviewModel{
		app:      app,
		recs:     recs,
		resolved: make(map[string]string),
	}
}

func (m reviewModel) Init() tea.Cmd {
	return nil
}

func (m reviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case actionDoneMsg:
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.errMsg = ""
		m.resolved[msg.recID] = msg.outcome
		if m.allResolved() {
			m.quitting = true
			return m, tea.Quit
		}
		m.advance()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "left", "h", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "right", "l", "j", "tab":
			if m.cursor < len(m.recs)-1 {
				m.cursor++
			}
		case "d":
			rec := m.current()
			if _, done := m.resolved[rec.ID]; done {
				return m, nil
			}
			if !rec.Dismissible {
				m.errMsg = "this card needs a decision; pick an option"
				return m, nil
			}
			return m, m.dismissCmd(rec)
		case "1", "2", "3":
			rec := m.current()
			if _, done := m.resolved[rec.ID]; done {
				return m, nil
			}
			idx := int(msg.String()[0] - '1')
			if idx >= len(rec.Options) {
				return m, nil
			}
			return m, m.acceptCmd(rec, rec.Options[idx].Key)
		}
	}
	return m, nil
}

func (m reviewModel) View() string {
	if m.quitting {
		var b strings.Builder
		for _, rec := range m.recs {
			if outcome, ok := m.resolved[rec.ID]; ok {
				b.WriteString(fmt.Sprintf("%s %s\n", formatter.StyleGreen.Render("✓"), outcome))
			}
		}
		return b.String()
	}

	rec := m.current()
	var b strings.Builder

	b.WriteString(formatter.Dim(fmt.Sprintf("Reviewing %d of %d", m.cursor+1, len(m.recs))))
	b.WriteString("\n")
	b.WriteString(formatter.FormatRecommendation(rec, time.Now()))
	b.WriteString("\n")

	if outcome, ok := m.resolved[rec.ID]; ok {
		b.WriteString(formatter.StyleGreen.Render("✓ " + outcome))
	} else {
		hints := []string{}
		for i, opt := range rec.Options {
			hints = append(hints, fmt.Sprintf("%d %s", i+1, opt.Label))
		}
		if rec.Dismissible {
			hints = append(hints, "d dismiss")
		}
		hints = append(hints, "←/→ move", "q quit")
		b.WriteString(formatter.Dim(strings.Join(hints, "  ·  ")))
	}
	if m.errMsg != "" {
		b.WriteString("\n" + formatter.StyleRed.Render(m.errMsg))
	}
	b.WriteString("\n")
	return b.String()
}

func (m *reviewModel) current() *domain.Recommendation {
	return m.recs[m.cursor]
}

func (m *reviewModel) allResolved() bool {
	return len(m.resolved) == len(m.recs)
}

// advance moves the cursor to the next unresolved card, if any.
func (m *reviewModel) advance() {
	for i := range m.recs {
		idx := (m.cursor + 1 + i) % len(m.recs)
		if _, done := m.resolved[m.recs[idx].ID]; !done {
			m.cursor = idx
			return
		}
	}
}

func (m reviewModel) acceptCmd(rec *domain.Recommendation, key string) tea.Cmd {
	return func() tea.Msg {
		mod, err := m.app.Advisor.Accept(context.Background(), rec.ID, key)
		if err != nil {
			return actionDoneMsg{recID: rec.ID, err: err}
		}
		outcome := fmt.Sprintf("%s: acknowledged", rec.Title)
		if mod != nil {
			outcome = fmt.Sprintf("%s: %s", rec.Title, mod.Description)
		}
		return actionDoneMsg{recID: rec.ID, outcome: outcome}
	}
}

func (m reviewModel) dismissCmd(rec *domain.Recommendation) tea.Cmd {
	return func() tea.Msg {
		if err := m.app.Advisor.Dismiss(context.Background(), rec.ID); err != nil {
			return actionDoneMsg{recID: rec.ID, err: err}
		}
		return actionDoneMsg{recID: rec.ID, outcome: fmt.Sprintf("%s: dismissed", rec.Title)}
	}
}

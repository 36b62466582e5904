package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Smith-Tools/smith-validation/pkg/model"
)

type modelT struct {
	violations []model.Violation
	cursor     int
}

func initialModel(vs []model.Violation) modelT { return modelT{violations: vs} }

func (m modelT) Init() tea.Cmd { return nil }

func (m modelT) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.violations)-1 {
				m.cursor++
			}
		}
	}
	return m, nil
}

func (m modelT) View() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Violations (%d), q to quit\n\n", len(m.violations))
	for i, v := range m.violations {
		marker := "  "
		if i == m.cursor {
			marker = "> "
		}
		fmt.Fprintf(&b, "%s%s [%s] %s:%d %s\n", marker, v.RuleID, v.Severity, v.File, v.Line, v.Message)
	}
	if len(m.violations) > 0 {
		v := m.violations[m.cursor]
		if v.Recommendation != "" {
			fmt.Fprintf(&b, "\n%s\n", v.Recommendation)
		}
	}
	return b.String()
}

// Run launches an interactive list view over the violations.
func Run(vs []model.Violation) error {
	p := tea.NewProgram(initialModel(vs))
	_, err := p.Run()
	return err
}

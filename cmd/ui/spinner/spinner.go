// Package spinner shows a minimal progress spinner while the repository
// scan runs.
package spinner

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var accentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFB454"))

// Model is a bubbletea model wrapping bubbles' spinner.
type Model struct {
	spinner  spinner.Model
	message  string
	quitting bool
}

// New creates a spinner model with the given status message.
func New(message string) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = accentStyle
	return Model{spinner: s, message: message}
}

func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if s := msg.String(); s == "q" || s == "esc" || s == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	default:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
}

func (m Model) View() string {
	str := fmt.Sprintf("%s %s", m.spinner.View(), m.message)
	if m.quitting {
		return str + "\n"
	}
	return str
}

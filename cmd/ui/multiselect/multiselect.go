// Package multiselect implements the technology picker: a checkbox list
// with confidence-based preselection.
package multiselect

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle    = lipgloss.NewStyle().Background(lipgloss.Color("#FFB454")).Foreground(lipgloss.Color("#030303")).Bold(true).Padding(0, 1, 0)
	focusedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFB454")).Bold(true)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("170")).Bold(true)
	descStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// Choice is one selectable entry.
type Choice struct {
	Label    string
	Desc     string
	Selected bool // preselected
}

type model struct {
	title    string
	choices  []Choice
	cursor   int
	selected map[int]struct{}
	done     bool
	aborted  bool
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch keyMsg.String() {
	case "ctrl+c", "q", "esc":
		m.aborted = true
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.choices)-1 {
			m.cursor++
		}
	case " ":
		if _, ok := m.selected[m.cursor]; ok {
			delete(m.selected, m.cursor)
		} else {
			m.selected[m.cursor] = struct{}{}
		}
	case "a":
		for i := range m.choices {
			m.selected[i] = struct{}{}
		}
	case "n":
		m.selected = make(map[int]struct{})
	case "enter":
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m model) View() string {
	var s strings.Builder
	s.WriteString(titleStyle.Render(m.title))
	s.WriteString("\n\n")

	for i, choice := range m.choices {
		cursor := " "
		label := choice.Label
		if m.cursor == i {
			cursor = focusedStyle.Render(">")
			label = focusedStyle.Render(label)
		}
		checked := " "
		if _, ok := m.selected[i]; ok {
			checked = selectedStyle.Render("x")
			if m.cursor != i {
				label = selectedStyle.Render(choice.Label)
			}
		}
		fmt.Fprintf(&s, "%s [%s] %s  %s\n", cursor, checked, label, descStyle.Render(choice.Desc))
	}

	s.WriteString("\n")
	s.WriteString(helpStyle.Render("space: toggle · a: all · n: none · enter: confirm · q: quit"))
	s.WriteString("\n")
	return s.String()
}

// Run shows the picker and returns the indices of the chosen entries in
// display order. It returns nil indices (and nil error) when the user aborts.
func Run(title string, choices []Choice) ([]int, error) {
	m := model{
		title:    title,
		choices:  choices,
		selected: make(map[int]struct{}),
	}
	for i, c := range choices {
		if c.Selected {
			m.selected[i] = struct{}{}
		}
	}

	final, err := tea.NewProgram(m).Run()
	if err != nil {
		return nil, fmt.Errorf("technology selection failed: %w", err)
	}
	fm := final.(model)
	if fm.aborted {
		return nil, nil
	}

	picked := make([]int, 0, len(fm.selected))
	for i := range choices {
		if _, ok := fm.selected[i]; ok {
			picked = append(picked, i)
		}
	}
	return picked, nil
}

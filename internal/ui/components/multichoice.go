package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studymate/internal/ui/theme"
)

var optionLabels = []string{"A", "B", "C", "D", "E", "F"}

// MultiChoice is a multiple-choice selector component. Options can be
// picked with the arrows and Enter, or directly with 1-4 or a-d.
type MultiChoice struct {
	Question     string
	Options      []string
	CorrectIndex int
	Selected     int
	Submitted    bool
	ChosenIndex  int
}

// NewMultiChoice creates a new multiple-choice component.
func NewMultiChoice(question string, options []string, correctIndex int) MultiChoice {
	return MultiChoice{
		Question:     question,
		Options:      options,
		CorrectIndex: correctIndex,
		ChosenIndex:  -1,
	}
}

// Init returns nil.
func (m MultiChoice) Init() tea.Cmd {
	return nil
}

// Update handles keyboard navigation and selection.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.Submitted {
		return m, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
	case "enter":
		m.choose(m.Selected)
	default:
		if i, ok := shortcutIndex(key); ok && i < len(m.Options) {
			m.Selected = i
			m.choose(i)
		}
	}

	return m, nil
}

func shortcutIndex(key string) (int, bool) {
	if len(key) != 1 {
		return 0, false
	}
	c := key[0]
	switch {
	case c >= '1' && c <= '9':
		return int(c - '1'), true
	case c >= 'a' && c <= 'f':
		return int(c - 'a'), true
	}
	return 0, false
}

func (m *MultiChoice) choose(i int) {
	m.Submitted = true
	m.ChosenIndex = i
}

// View renders the multiple-choice component.
func (m MultiChoice) View() string {
	var b strings.Builder
	if m.Question != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(m.Question))
		b.WriteString("\n\n")
	}

	for i, opt := range m.Options {
		label := fmt.Sprint(i + 1)
		if i < len(optionLabels) {
			label = optionLabels[i]
		}
		prefix := "  "
		if i == m.Selected && !m.Submitted {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%s)  %s", prefix, label, opt)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		switch {
		case m.Submitted && i == m.CorrectIndex:
			style = theme.Correct
		case m.Submitted && i == m.ChosenIndex:
			style = theme.Incorrect
		case m.Submitted:
			style = theme.Dim
		case i == m.Selected:
			style = theme.Selected
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	return b.String()
}

// IsCorrect returns true if the user chose the correct answer.
func (m MultiChoice) IsCorrect() bool {
	return m.Submitted && m.ChosenIndex == m.CorrectIndex
}

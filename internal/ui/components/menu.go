package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studymate/internal/ui/theme"
)

// MenuItem represents a single item in a navigation menu.
type MenuItem struct {
	Label    string
	Detail   string
	Action   func() tea.Cmd
	Disabled bool
}

// Menu is a vertical navigation menu. Number keys 1-9 jump to and
// activate an item.
type Menu struct {
	Items    []MenuItem
	Selected int
	Numbered bool
}

// NewMenu creates a new menu with the given items.
func NewMenu(items []MenuItem) Menu {
	selected := 0
	for i, item := range items {
		if !item.Disabled {
			selected = i
			break
		}
	}
	return Menu{
		Items:    items,
		Selected: selected,
	}
}

// Init returns nil (no initial command).
func (m Menu) Init() tea.Cmd {
	return nil
}

// Update handles keyboard navigation.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		for i := m.Selected - 1; i >= 0; i-- {
			if !m.Items[i].Disabled {
				m.Selected = i
				break
			}
		}
	case "down", "j":
		for i := m.Selected + 1; i < len(m.Items); i++ {
			if !m.Items[i].Disabled {
				m.Selected = i
				break
			}
		}
	case "enter":
		return m, m.activate()
	default:
		if m.Numbered && len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			i := int(key[0] - '1')
			if i < len(m.Items) && !m.Items[i].Disabled {
				m.Selected = i
				return m, m.activate()
			}
		}
	}

	return m, nil
}

func (m Menu) activate() tea.Cmd {
	if m.Selected < 0 || m.Selected >= len(m.Items) {
		return nil
	}
	item := m.Items[m.Selected]
	if item.Action == nil || item.Disabled {
		return nil
	}
	return item.Action()
}

// View renders the menu.
func (m Menu) View() string {
	var b strings.Builder
	for i, item := range m.Items {
		label := item.Label
		if m.Numbered && i < 9 {
			label = fmt.Sprintf("%d. %s", i+1, label)
		}
		switch {
		case item.Disabled:
			b.WriteString(theme.Dim.Render("    " + label))
		case i == m.Selected:
			b.WriteString(lipgloss.NewStyle().
				Foreground(theme.Primary).
				Bold(true).
				Render("  ▸ " + label))
		default:
			b.WriteString(lipgloss.NewStyle().
				Foreground(theme.Text).
				Render("    " + label))
		}
		if item.Detail != "" {
			b.WriteString("  " + theme.Dim.Render(item.Detail))
		}
		b.WriteString("\n")
	}
	return b.String()
}

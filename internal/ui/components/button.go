package components

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/studymate/internal/ui/theme"
)

// Button fires OnPress on enter while Active. An inactive button shows
// Pending next to its label, e.g. why it cannot be pressed yet.
type Button struct {
	Label   string
	Pending string
	Active  bool
	OnPress func() tea.Cmd
}

// NewButton creates a new button.
func NewButton(label string, active bool, onPress func() tea.Cmd) Button {
	return Button{Label: label, Active: active, OnPress: onPress}
}

func (b Button) Update(msg tea.Msg) (Button, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || !b.Active || b.OnPress == nil {
		return b, nil
	}
	if kmsg.String() == "enter" {
		return b, b.OnPress()
	}
	return b, nil
}

func (b Button) View() string {
	if b.Active {
		return theme.ButtonActive.Render("▸ " + b.Label + "  (Enter)")
	}
	label := "▸ " + b.Label
	if b.Pending != "" {
		label += "  " + b.Pending
	}
	return theme.ButtonInactive.Render(label)
}

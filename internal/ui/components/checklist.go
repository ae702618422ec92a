package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/studymate/internal/ui/theme"
)

// CheckList lets the user toggle any number of options with space.
type CheckList struct {
	Options  []string
	Cursor   int
	selected map[string]bool
}

// NewCheckList creates a list with the given options pre-checked.
func NewCheckList(options, checked []string) CheckList {
	sel := make(map[string]bool, len(checked))
	for _, c := range checked {
		sel[c] = true
	}
	return CheckList{Options: options, selected: sel}
}

// Update moves the cursor and toggles the option under it.
func (c CheckList) Update(msg tea.Msg) (CheckList, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}
	switch kmsg.String() {
	case "up", "k":
		if c.Cursor > 0 {
			c.Cursor--
		}
	case "down", "j":
		if c.Cursor < len(c.Options)-1 {
			c.Cursor++
		}
	case "space", " ", "x":
		if c.Cursor < len(c.Options) {
			opt := c.Options[c.Cursor]
			c.selected[opt] = !c.selected[opt]
		}
	}
	return c, nil
}

// Checked returns the checked options in display order.
func (c CheckList) Checked() []string {
	var out []string
	for _, o := range c.Options {
		if c.selected[o] {
			out = append(out, o)
		}
	}
	return out
}

// View renders the list.
func (c CheckList) View() string {
	var b strings.Builder
	for i, o := range c.Options {
		box := "[ ]"
		if c.selected[o] {
			box = "[x]"
		}
		line := box + " " + o
		if i == c.Cursor {
			b.WriteString(theme.Selected.Render("▸ " + line))
		} else {
			b.WriteString(theme.Unselected.Render("  " + line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

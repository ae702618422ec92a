package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studymate/internal/ui/theme"
)

// ContentWidth returns the inner width used by centered panels.
func ContentWidth(frameWidth int) int {
	w := frameWidth - 6
	if w > 72 {
		w = 72
	}
	if w < 20 {
		w = 20
	}
	return w
}

// Panel renders content in a rounded, titled box and centers it in the
// given area.
func Panel(title, content string, width, height int) string {
	cw := ContentWidth(width)
	body := content
	if title != "" {
		body = theme.Heading.Render(title) + "\n\n" + content
	}
	box := theme.Panel.Width(cw).Render(body)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}

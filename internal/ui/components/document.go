package components

import (
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studymate/internal/ui/theme"
)

// Document is a scrollable block of wrapped text, used for generated
// roadmaps, study plans and lesson text.
type Document struct {
	vp    viewport.Model
	text  string
	width int
}

// NewDocument creates an empty document.
func NewDocument() Document {
	return Document{vp: viewport.New()}
}

// SetText replaces the content and scrolls back to the top.
func (d *Document) SetText(text string) {
	d.text = text
	d.render()
	d.vp.GotoTop()
}

// Text returns the raw content.
func (d Document) Text() string { return d.text }

// Resize sets the visible area. Content is re-wrapped when the width
// changes.
func (d *Document) Resize(width, height int) {
	if width < 10 {
		width = 10
	}
	if height < 1 {
		height = 1
	}
	d.vp.SetHeight(height)
	if width != d.width {
		d.width = width
		d.vp.SetWidth(width)
		d.render()
	}
}

func (d *Document) render() {
	w := d.width
	if w <= 0 {
		w = 60
	}
	d.vp.SetContent(lipgloss.NewStyle().Width(w).Foreground(theme.Text).Render(d.text))
}

// Update handles scrolling keys.
func (d Document) Update(msg tea.Msg) (Document, tea.Cmd) {
	var cmd tea.Cmd
	d.vp, cmd = d.vp.Update(msg)
	return d, cmd
}

// View renders the visible part.
func (d Document) View() string {
	return d.vp.View()
}

// ScrollPercent reports how far the view is scrolled, 0 to 1.
func (d Document) ScrollPercent() float64 {
	return d.vp.ScrollPercent()
}

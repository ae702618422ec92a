package days

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studymate/internal/router"
	"github.com/abhisek/studymate/internal/screen"
	"github.com/abhisek/studymate/internal/screens/roadmap"
	"github.com/abhisek/studymate/internal/services"
	"github.com/abhisek/studymate/internal/syllabus"
	"github.com/abhisek/studymate/internal/ui/components"
	"github.com/abhisek/studymate/internal/ui/layout"
	"github.com/abhisek/studymate/internal/ui/theme"
)

// DaysScreen picks how many days the roadmap should span.
type DaysScreen struct {
	svc     *services.Services
	subject string
	chapter string
	days    int
}

var _ screen.Screen = (*DaysScreen)(nil)
var _ screen.KeyHintProvider = (*DaysScreen)(nil)

// New starts the picker at the default day count.
func New(svc *services.Services, subject, chapter string) *DaysScreen {
	return &DaysScreen{svc: svc, subject: subject, chapter: chapter, days: syllabus.DefaultDays}
}

func (s *DaysScreen) Init() tea.Cmd { return nil }

func (s *DaysScreen) Title() string { return s.chapter }

func (s *DaysScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "←→", Description: "Days"},
		{Key: "Enter", Description: "Build roadmap"},
		{Key: "Esc", Description: "Back"},
	}
}

// Days returns the current selection.
func (s *DaysScreen) Days() int { return s.days }

func (s *DaysScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "left", "h", "down", "j", "-":
		s.days = syllabus.ClampDays(s.days - 1)
	case "right", "l", "up", "k", "+", "=":
		s.days = syllabus.ClampDays(s.days + 1)
	case "enter":
		next := roadmap.New(s.svc, s.subject, s.chapter, s.days)
		return s, func() tea.Msg { return router.PushScreenMsg{Screen: next} }
	}
	return s, nil
}

func (s *DaysScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString(theme.Dim.Render(s.subject + "  ·  " + s.chapter))
	b.WriteString("\n\n")

	left, right := "◀", "▶"
	if s.days <= syllabus.MinDays {
		left = " "
	}
	if s.days >= syllabus.MaxDays {
		right = " "
	}
	value := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(fmt.Sprintf("%d days", s.days))
	b.WriteString(theme.Dim.Render(left) + "   " + value + "   " + theme.Dim.Render(right))
	b.WriteString("\n\n")
	b.WriteString(theme.Hint.Render(fmt.Sprintf("Between %d and %d days", syllabus.MinDays, syllabus.MaxDays)))

	return components.Panel("How many days do you have?", b.String(), width, height)
}

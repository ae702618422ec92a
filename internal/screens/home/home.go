package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studymate/internal/profile"
	"github.com/abhisek/studymate/internal/progress"
	"github.com/abhisek/studymate/internal/router"
	"github.com/abhisek/studymate/internal/screen"
	"github.com/abhisek/studymate/internal/screens/chapters"
	"github.com/abhisek/studymate/internal/screens/profilesetup"
	progressscreen "github.com/abhisek/studymate/internal/screens/progress"
	"github.com/abhisek/studymate/internal/screens/studyplan"
	"github.com/abhisek/studymate/internal/services"
	"github.com/abhisek/studymate/internal/syllabus"
	"github.com/abhisek/studymate/internal/ui/components"
	"github.com/abhisek/studymate/internal/ui/layout"
	"github.com/abhisek/studymate/internal/ui/theme"
)

type statsLoadedMsg struct {
	Stats progress.Stats
	Err   error
}

// HomeScreen is the dashboard: one entry per subject plus the study
// plan, progress and profile screens.
type HomeScreen struct {
	svc      *services.Services
	profile  profile.Profile
	subjects []string
	menu     components.Menu
	stats    *progress.Stats
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(svc *services.Services) *HomeScreen {
	h := &HomeScreen{svc: svc}
	h.rebuild()
	return h
}

// Subjects returns the subject entries, preferred subjects first falling
// back to the exam's subject list.
func Subjects(p profile.Profile) []string {
	if len(p.PreferredSubjects) > 0 {
		return p.PreferredSubjects
	}
	return syllabus.SubjectsForExam(p.ExamType)
}

func (h *HomeScreen) rebuild() {
	h.profile = h.svc.Profiles.Current()
	h.subjects = Subjects(h.profile)

	items := make([]components.MenuItem, 0, len(h.subjects)+4)
	for _, subject := range h.subjects {
		items = append(items, components.MenuItem{
			Label: subject,
			Action: push(func() screen.Screen {
				return chapters.New(h.svc, subject)
			}),
		})
	}
	items = append(items,
		components.MenuItem{Label: "Study plan", Detail: "exam timeline", Action: push(func() screen.Screen {
			return studyplan.New(h.svc)
		})},
		components.MenuItem{Label: "My progress", Action: push(func() screen.Screen {
			return progressscreen.New(h.svc)
		})},
		components.MenuItem{Label: "Edit profile", Action: push(func() screen.Screen {
			return profilesetup.New(h.svc, nil)
		})},
		components.MenuItem{Label: "Quit", Action: func() tea.Cmd { return tea.Quit }},
	)

	selected := h.menu.Selected
	h.menu = components.NewMenu(items)
	h.menu.Numbered = true
	if selected < len(items) {
		h.menu.Selected = selected
	}
}

func push(build func() screen.Screen) func() tea.Cmd {
	return func() tea.Cmd {
		s := build()
		return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.loadStats()
}

func (h *HomeScreen) loadStats() tea.Cmd {
	rec := h.svc.Recorder
	if rec == nil {
		return nil
	}
	userID := h.svc.Profiles.UserID()
	return func() tea.Msg {
		stats, err := rec.Overview(context.Background(), userID)
		return statsLoadedMsg{Stats: stats, Err: err}
	}
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "1-9", Description: "Jump"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case statsLoadedMsg:
		if msg.Err != nil {
			h.svc.Logger().Warn("progress overview unavailable", "error", msg.Err)
			return h, nil
		}
		h.stats = &msg.Stats
		return h, nil

	case screen.RefreshMsg:
		h.rebuild()
		return h, h.loadStats()
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	var b strings.Builder

	name := h.profile.FullName
	if name == "" {
		name = "there"
	}
	b.WriteString(theme.Heading.Render(fmt.Sprintf("Hi %s!", name)))
	b.WriteString("\n")
	b.WriteString(theme.Dim.Render(fmt.Sprintf("Class %d  ·  %s  ·  %s learner",
		h.profile.GradeLevel, h.profile.ExamType, h.profile.LearningStyle)))
	b.WriteString("\n\n")

	if h.stats != nil && h.stats.TopicsCompleted > 0 {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Render(fmt.Sprintf(
			"%d chapters done  ·  avg quiz %d%%  ·  %d this week",
			h.stats.TopicsCompleted, h.stats.AverageQuizScore, h.stats.RecentActivity)))
		b.WriteString("\n\n")
	}

	b.WriteString(theme.Dim.Render("Pick a subject to study"))
	b.WriteString("\n\n")
	b.WriteString(h.menu.View())

	return components.Panel("", b.String(), width, height)
}

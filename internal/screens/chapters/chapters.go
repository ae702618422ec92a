package chapters

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/studymate/internal/router"
	"github.com/abhisek/studymate/internal/screen"
	"github.com/abhisek/studymate/internal/screens/days"
	"github.com/abhisek/studymate/internal/services"
	"github.com/abhisek/studymate/internal/syllabus"
	"github.com/abhisek/studymate/internal/ui/components"
	"github.com/abhisek/studymate/internal/ui/layout"
	"github.com/abhisek/studymate/internal/ui/theme"
)

type chaptersLoadedMsg struct {
	Chapters []syllabus.Chapter
	Source   syllabus.Source
}

// ChaptersScreen lists the chapters of one subject for the learner's class.
type ChaptersScreen struct {
	svc      *services.Services
	subject  string
	class    string
	chapters []syllabus.Chapter
	source   syllabus.Source
	menu     components.Menu
	loaded   bool
}

var _ screen.Screen = (*ChaptersScreen)(nil)
var _ screen.KeyHintProvider = (*ChaptersScreen)(nil)

// New creates the chapter picker for subject.
func New(svc *services.Services, subject string) *ChaptersScreen {
	return &ChaptersScreen{
		svc:     svc,
		subject: subject,
		class:   svc.Profiles.Current().Class(),
	}
}

func (s *ChaptersScreen) Init() tea.Cmd {
	catalog, class, subject := s.svc.Catalog, s.class, s.subject
	return func() tea.Msg {
		chs, src := catalog.Chapters(context.Background(), class, subject)
		return chaptersLoadedMsg{Chapters: chs, Source: src}
	}
}

func (s *ChaptersScreen) Title() string {
	return s.subject
}

func (s *ChaptersScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Choose"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *ChaptersScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(chaptersLoadedMsg); ok {
		s.loaded = true
		s.chapters = msg.Chapters
		s.source = msg.Source
		items := make([]components.MenuItem, len(msg.Chapters))
		for i, ch := range msg.Chapters {
			items[i] = components.MenuItem{
				Label:  fmt.Sprintf("%2d. %s", ch.Order, ch.Name),
				Action: s.choose(ch),
			}
		}
		s.menu = components.NewMenu(items)
		return s, nil
	}

	if !s.loaded {
		return s, nil
	}
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *ChaptersScreen) choose(ch syllabus.Chapter) func() tea.Cmd {
	return func() tea.Cmd {
		next := days.New(s.svc, s.subject, ch.Name)
		return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
	}
}

func (s *ChaptersScreen) View(width, height int) string {
	if !s.loaded {
		return layout.Centered(width, theme.Dim, "\n\n  Loading chapters...")
	}
	if len(s.chapters) == 0 {
		return layout.Centered(width, theme.Hint, "\n\n  No chapters found for "+s.subject)
	}

	var b strings.Builder
	b.WriteString(theme.Dim.Render("Class " + s.class))
	if s.source == syllabus.SourceFallback {
		b.WriteString(theme.Dim.Render("  ·  built-in chapter list"))
	}
	b.WriteString("\n\n")
	b.WriteString(s.menu.View())
	return components.Panel("Choose a chapter", b.String(), width, height)
}

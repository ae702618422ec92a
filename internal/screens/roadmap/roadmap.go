package roadmap

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/studymate/internal/router"
	"github.com/abhisek/studymate/internal/screen"
	sessionscreen "github.com/abhisek/studymate/internal/screens/session"
	"github.com/abhisek/studymate/internal/services"
	"github.com/abhisek/studymate/internal/session"
	"github.com/abhisek/studymate/internal/ui/components"
	"github.com/abhisek/studymate/internal/ui/layout"
	"github.com/abhisek/studymate/internal/ui/theme"
)

type roadmapReadyMsg struct {
	Text string
	Err  error
}

type dotsTickMsg time.Time

// RoadmapScreen generates and shows a day-wise plan for one chapter,
// with a button to start the learning session.
type RoadmapScreen struct {
	svc     *services.Services
	subject string
	chapter string
	days    int

	ctx    context.Context
	cancel context.CancelFunc

	doc    components.Document
	start  components.Button
	ready  bool
	dots   int
	errMsg string
}

var _ screen.Screen = (*RoadmapScreen)(nil)
var _ screen.KeyHintProvider = (*RoadmapScreen)(nil)
var _ screen.Closer = (*RoadmapScreen)(nil)

// New creates the screen; generation starts in Init.
func New(svc *services.Services, subject, chapter string, days int) *RoadmapScreen {
	ctx, cancel := context.WithCancel(context.Background())
	s := &RoadmapScreen{
		svc:     svc,
		subject: subject,
		chapter: chapter,
		days:    days,
		ctx:     ctx,
		cancel:  cancel,
		doc:     components.NewDocument(),
	}
	s.start = components.NewButton("Start learning", false, s.startLearning)
	return s
}

func (s *RoadmapScreen) Init() tea.Cmd {
	gen := s.svc.Lessons
	p := s.svc.Profiles.Current()
	ctx, subject, chapter, days := s.ctx, s.subject, s.chapter, s.days
	return tea.Batch(
		func() tea.Msg {
			text, err := gen.Roadmap(ctx, subject, chapter, days, p)
			return roadmapReadyMsg{Text: text, Err: err}
		},
		dotsTick(),
	)
}

func dotsTick() tea.Cmd {
	return tea.Tick(300*time.Millisecond, func(t time.Time) tea.Msg { return dotsTickMsg(t) })
}

// Close stops a generation still in flight.
func (s *RoadmapScreen) Close() {
	s.cancel()
}

func (s *RoadmapScreen) Title() string {
	return fmt.Sprintf("%d-day roadmap", s.days)
}

func (s *RoadmapScreen) KeyHints() []layout.KeyHint {
	if !s.ready {
		return []layout.KeyHint{{Key: "Esc", Description: "Cancel"}}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Enter", Description: "Start learning"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *RoadmapScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case roadmapReadyMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.ready = true
		s.doc.SetText(msg.Text)
		s.start.Active = true
		return s, nil

	case dotsTickMsg:
		if s.ready || s.errMsg != "" {
			return s, nil
		}
		s.dots = (s.dots + 1) % 4
		return s, dotsTick()

	case tea.KeyMsg:
		if !s.ready {
			return s, nil
		}
		if msg.String() == "enter" {
			var cmd tea.Cmd
			s.start, cmd = s.start.Update(msg)
			return s, cmd
		}
	}

	var cmd tea.Cmd
	s.doc, cmd = s.doc.Update(msg)
	return s, cmd
}

func (s *RoadmapScreen) startLearning() tea.Cmd {
	sess, err := s.svc.NewSession(session.Params{
		Subject: s.subject,
		Chapter: s.chapter,
		Roadmap: s.doc.Text(),
	})
	if err != nil {
		s.errMsg = err.Error()
		return nil
	}
	next := sessionscreen.New(s.svc, sess)
	return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
}

func (s *RoadmapScreen) View(width, height int) string {
	if s.errMsg != "" {
		return layout.Centered(width, theme.Incorrect, "\n\n  "+s.errMsg)
	}
	if !s.ready {
		return layout.Centered(width, theme.Dim,
			fmt.Sprintf("\n\n\n  Building your %d-day roadmap for %s%s", s.days, s.chapter, strings.Repeat(".", s.dots)))
	}

	cw := components.ContentWidth(width)
	s.doc.Resize(cw-6, max(height-12, 3))

	var b strings.Builder
	b.WriteString(theme.Dim.Render(s.subject + "  ·  " + s.chapter))
	b.WriteString("\n\n")
	b.WriteString(s.doc.View())
	b.WriteString("\n\n")
	b.WriteString(s.start.View())
	return components.Panel("Your roadmap", b.String(), width, height)
}

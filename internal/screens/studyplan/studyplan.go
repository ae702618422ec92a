package studyplan

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/studymate/internal/profile"
	"github.com/abhisek/studymate/internal/router"
	"github.com/abhisek/studymate/internal/screen"
	"github.com/abhisek/studymate/internal/services"
	"github.com/abhisek/studymate/internal/syllabus"
	"github.com/abhisek/studymate/internal/ui/components"
	"github.com/abhisek/studymate/internal/ui/layout"
	"github.com/abhisek/studymate/internal/ui/theme"
)

type planReadyMsg struct {
	Text string
	Err  error
}

type dotsTickMsg time.Time

type phase int

const (
	phasePick phase = iota
	phaseGenerating
	phaseReady
)

// StudyPlanScreen builds a long-horizon plan for the learner's exam.
type StudyPlanScreen struct {
	svc *services.Services

	ctx    context.Context
	cancel context.CancelFunc

	phase     phase
	exam      string
	menu      components.Menu
	timeframe syllabus.Timeframe
	doc       components.Document
	dots      int
	errMsg    string
}

var _ screen.Screen = (*StudyPlanScreen)(nil)
var _ screen.KeyHintProvider = (*StudyPlanScreen)(nil)
var _ screen.Closer = (*StudyPlanScreen)(nil)

// New creates the screen with the profile's exam preselected.
func New(svc *services.Services) *StudyPlanScreen {
	ctx, cancel := context.WithCancel(context.Background())
	s := &StudyPlanScreen{
		svc:    svc,
		ctx:    ctx,
		cancel: cancel,
		exam:   svc.Profiles.Current().ExamType,
		doc:    components.NewDocument(),
	}
	if s.exam == "" {
		s.exam = profile.ExamBoards
	}

	items := make([]components.MenuItem, 0, len(syllabus.Timeframes))
	selected := 0
	for i, tf := range syllabus.Timeframes {
		items = append(items, components.MenuItem{
			Label:  tf.Label,
			Detail: fmt.Sprintf("%s · %d days", tf.Subtitle, tf.Days),
			Action: func() tea.Cmd { return s.generate(tf) },
		})
		if tf.Key == syllabus.DefaultTimeframe {
			selected = i
		}
	}
	s.menu = components.NewMenu(items)
	s.menu.Selected = selected
	s.menu.Numbered = true
	return s
}

func (s *StudyPlanScreen) Init() tea.Cmd {
	return nil
}

// Close stops a generation still in flight.
func (s *StudyPlanScreen) Close() {
	s.cancel()
}

func (s *StudyPlanScreen) Title() string {
	return "Study Plan"
}

func (s *StudyPlanScreen) KeyHints() []layout.KeyHint {
	switch s.phase {
	case phasePick:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Timeframe"},
			{Key: "E", Description: "Change exam"},
			{Key: "Enter", Description: "Build plan"},
			{Key: "Esc", Description: "Back"},
		}
	case phaseReady:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Scroll"},
			{Key: "R", Description: "Pick again"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{{Key: "Esc", Description: "Cancel"}}
}

func (s *StudyPlanScreen) generate(tf syllabus.Timeframe) tea.Cmd {
	s.phase = phaseGenerating
	s.timeframe = tf
	s.errMsg = ""
	gen := s.svc.Lessons
	p := s.svc.Profiles.Current()
	ctx, exam := s.ctx, s.exam
	return tea.Batch(
		func() tea.Msg {
			text, err := gen.StudyPlan(ctx, exam, tf, p)
			return planReadyMsg{Text: text, Err: err}
		},
		dotsTick(),
	)
}

func dotsTick() tea.Cmd {
	return tea.Tick(300*time.Millisecond, func(t time.Time) tea.Msg { return dotsTickMsg(t) })
}

// nextExam cycles through the supported exams.
func nextExam(current string) string {
	for i, e := range profile.Exams {
		if e == current {
			return profile.Exams[(i+1)%len(profile.Exams)]
		}
	}
	return profile.Exams[0]
}

func (s *StudyPlanScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case planReadyMsg:
		if s.phase != phaseGenerating {
			return s, nil
		}
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			s.phase = phasePick
			return s, nil
		}
		s.doc.SetText(msg.Text)
		s.phase = phaseReady
		return s, nil

	case dotsTickMsg:
		if s.phase != phaseGenerating {
			return s, nil
		}
		s.dots = (s.dots + 1) % 4
		return s, dotsTick()

	case tea.KeyMsg:
		switch s.phase {
		case phasePick:
			if msg.String() == "e" {
				s.exam = nextExam(s.exam)
				return s, nil
			}
			var cmd tea.Cmd
			s.menu, cmd = s.menu.Update(msg)
			return s, cmd
		case phaseReady:
			if msg.String() == "r" {
				s.phase = phasePick
				return s, nil
			}
			var cmd tea.Cmd
			s.doc, cmd = s.doc.Update(msg)
			return s, cmd
		}
		if msg.String() == "esc" {
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *StudyPlanScreen) View(width, height int) string {
	switch s.phase {
	case phaseGenerating:
		return layout.Centered(width, theme.Dim, fmt.Sprintf("\n\n\n  Building your %s plan for %s%s",
			strings.ToLower(s.timeframe.Label), s.exam, strings.Repeat(".", s.dots)))

	case phaseReady:
		cw := components.ContentWidth(width)
		s.doc.Resize(cw-6, max(height-10, 3))
		body := theme.Dim.Render(fmt.Sprintf("%s  ·  %s (%d days)", s.exam, s.timeframe.Label, s.timeframe.Days)) +
			"\n\n" + s.doc.View()
		return components.Panel("Your study plan", body, width, height)
	}

	var b strings.Builder
	b.WriteString(theme.Dim.Render("Exam: "))
	b.WriteString(theme.Badge.Render(s.exam))
	b.WriteString("\n\n")
	b.WriteString(theme.Dim.Render("How long do you have?"))
	b.WriteString("\n\n")
	b.WriteString(s.menu.View())
	if s.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(theme.Incorrect.Render(s.errMsg))
	}
	return components.Panel("Plan your preparation", b.String(), width, height)
}

// Package profilesetup collects the learner profile: name, class, target
// exam, learning style and preferred subjects.
package profilesetup

import (
	"context"
	"fmt"
	"strconv"
	"strings"

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

type step int

const (
	stepName step = iota
	stepGrade
	stepExam
	stepStyle
	stepSubjects
)

var stepTitles = map[step]string{
	stepName:     "What should we call you?",
	stepGrade:    "Which class are you in?",
	stepExam:     "What are you preparing for?",
	stepStyle:    "How do you like to learn?",
	stepSubjects: "Which subjects do you want to study?",
}

var styleDetails = map[string]string{
	profile.StyleVisual: "diagrams and examples",
	profile.StyleAudio:  "lessons read aloud",
	profile.StyleText:   "reading at your pace",
}

type savedMsg struct {
	Profile profile.Profile
	Err     error
}

// SetupScreen walks through the profile fields one at a time.
type SetupScreen struct {
	svc   *services.Services
	next  func() screen.Screen
	draft profile.Profile
	step  step

	name     components.TextInput
	choice   components.Menu
	subjects components.CheckList
	saving   bool
	errMsg   string
}

var _ screen.Screen = (*SetupScreen)(nil)
var _ screen.KeyHintProvider = (*SetupScreen)(nil)

// New creates the setup screen prefilled from the current profile. When
// next is set the screen is replaced by next() after saving (first run);
// otherwise it pops back.
func New(svc *services.Services, next func() screen.Screen) *SetupScreen {
	s := &SetupScreen{
		svc:   svc,
		next:  next,
		draft: svc.Profiles.Current(),
	}
	s.name = components.NewTextInput("Your name", s.draft.FullName, 40)
	return s
}

func (s *SetupScreen) Init() tea.Cmd {
	return s.name.Init()
}

func (s *SetupScreen) Title() string {
	if s.next != nil {
		return "Welcome"
	}
	return "Profile"
}

func (s *SetupScreen) KeyHints() []layout.KeyHint {
	switch s.step {
	case stepName:
		return []layout.KeyHint{{Key: "Enter", Description: "Next"}}
	case stepSubjects:
		return []layout.KeyHint{
			{Key: "Space", Description: "Toggle"},
			{Key: "Enter", Description: "Save"},
			{Key: "Tab", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Choose"},
		{Key: "Enter", Description: "Next"},
		{Key: "Tab", Description: "Back"},
	}
}

type choseMsg struct{ value string }

func chose(v string) func() tea.Cmd {
	return func() tea.Cmd {
		return func() tea.Msg { return choseMsg{value: v} }
	}
}

func (s *SetupScreen) enter(st step) tea.Cmd {
	s.step = st
	s.errMsg = ""
	switch st {
	case stepName:
		return s.name.Init()
	case stepGrade:
		items := make([]components.MenuItem, len(profile.Grades))
		for i, g := range profile.Grades {
			items[i] = components.MenuItem{Label: fmt.Sprintf("Class %d", g), Action: chose(strconv.Itoa(g))}
		}
		s.choice = menuAt(items, strconv.Itoa(s.draft.GradeLevel), func(i int) string { return strconv.Itoa(profile.Grades[i]) })
	case stepExam:
		items := make([]components.MenuItem, len(profile.Exams))
		for i, e := range profile.Exams {
			items[i] = components.MenuItem{Label: e, Action: chose(e)}
		}
		s.choice = menuAt(items, s.draft.ExamType, func(i int) string { return profile.Exams[i] })
	case stepStyle:
		items := make([]components.MenuItem, len(profile.Styles))
		for i, st := range profile.Styles {
			items[i] = components.MenuItem{Label: strings.ToUpper(st[:1]) + st[1:], Detail: styleDetails[st], Action: chose(st)}
		}
		s.choice = menuAt(items, s.draft.LearningStyle, func(i int) string { return profile.Styles[i] })
	case stepSubjects:
		options := syllabus.SubjectsForExam(s.draft.ExamType)
		for _, p := range s.draft.PreferredSubjects {
			if !containsFold(options, p) {
				options = append(options, p)
			}
		}
		s.subjects = components.NewCheckList(options, s.draft.PreferredSubjects)
	}
	return nil
}

func menuAt(items []components.MenuItem, current string, value func(int) string) components.Menu {
	m := components.NewMenu(items)
	for i := range items {
		if value(i) == current {
			m.Selected = i
		}
	}
	return m
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}

func (s *SetupScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case savedMsg:
		s.saving = false
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		if s.next != nil {
			next := s.next()
			return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
		}
		return s, tea.Sequence(
			func() tea.Msg { return router.PopScreenMsg{} },
			func() tea.Msg { return screen.RefreshMsg{} },
		)

	case choseMsg:
		return s, s.apply(msg.value)

	case tea.KeyMsg:
		if s.saving {
			return s, nil
		}
		switch msg.String() {
		case "tab", "shift+tab":
			if s.step > stepName {
				return s, s.enter(s.step - 1)
			}
			return s, nil
		case "enter":
			switch s.step {
			case stepName:
				if s.name.Value() == "" {
					s.name.SetError("please enter your name")
					return s, nil
				}
				s.draft.FullName = s.name.Value()
				return s, s.enter(stepGrade)
			case stepSubjects:
				s.draft.PreferredSubjects = s.subjects.Checked()
				return s, s.save()
			}
		}
	}

	var cmd tea.Cmd
	switch s.step {
	case stepName:
		s.name, cmd = s.name.Update(msg)
	case stepSubjects:
		s.subjects, cmd = s.subjects.Update(msg)
	default:
		s.choice, cmd = s.choice.Update(msg)
	}
	return s, cmd
}

func (s *SetupScreen) apply(value string) tea.Cmd {
	switch s.step {
	case stepGrade:
		g, _ := strconv.Atoi(value)
		s.draft.GradeLevel = g
		return s.enter(stepExam)
	case stepExam:
		s.draft.ExamType = value
		return s.enter(stepStyle)
	case stepStyle:
		s.draft.LearningStyle = value
		return s.enter(stepSubjects)
	}
	return nil
}

func (s *SetupScreen) save() tea.Cmd {
	s.saving = true
	draft := s.draft
	prov := s.svc.Profiles
	return func() tea.Msg {
		p, err := prov.Update(context.Background(), draft)
		return savedMsg{Profile: p, Err: err}
	}
}

// Draft returns the profile as edited so far.
func (s *SetupScreen) Draft() profile.Profile {
	return s.draft
}

func (s *SetupScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString(theme.Dim.Render(fmt.Sprintf("Step %d of %d", int(s.step)+1, int(stepSubjects)+1)))
	b.WriteString("\n\n")

	switch s.step {
	case stepName:
		b.WriteString(s.name.View())
	case stepSubjects:
		b.WriteString(s.subjects.View())
		if len(s.subjects.Checked()) == 0 {
			b.WriteString("\n")
			b.WriteString(theme.Hint.Render("None picked: your exam's subjects will be shown."))
		}
	default:
		b.WriteString(s.choice.View())
	}

	if s.saving {
		b.WriteString("\n\n" + theme.Dim.Render("Saving..."))
	}
	if s.errMsg != "" {
		b.WriteString("\n\n" + theme.Incorrect.Render(s.errMsg))
	}
	return components.Panel(stepTitles[s.step], b.String(), width, height)
}

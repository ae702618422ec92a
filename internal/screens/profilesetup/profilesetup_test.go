package profilesetup

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/studymate/internal/profile"
	"github.com/abhisek/studymate/internal/router"
	"github.com/abhisek/studymate/internal/screen"
	"github.com/abhisek/studymate/internal/services"
)

type stubScreen struct{}

func (s *stubScreen) Init() tea.Cmd                           { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return "home" }
func (s *stubScreen) Title() string                           { return "Home" }

func key(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

var enterKey = tea.KeyPressMsg{Code: tea.KeyEnter}

// send delivers msg and follows any single-message command the screen
// returns, the way the program loop would.
func send(s *SetupScreen, msg tea.Msg) tea.Msg {
	_, cmd := s.Update(msg)
	for cmd != nil {
		out := cmd()
		switch out.(type) {
		case choseMsg, savedMsg:
			_, cmd = s.Update(out)
		default:
			return out
		}
	}
	return nil
}

func newSetup(name string, next func() screen.Screen) (*SetupScreen, *profile.Provider) {
	p := profile.Default("u-1")
	p.FullName = name
	prov := profile.NewStatic(p)
	return New(&services.Services{Profiles: prov}, next), prov
}

func TestSetup_NameRequired(t *testing.T) {
	s, _ := newSetup("", nil)
	send(s, enterKey)
	if s.step != stepName {
		t.Errorf("step = %v, want to stay on name", s.step)
	}
}

func TestSetup_FullFlowFirstRun(t *testing.T) {
	s, prov := newSetup("Asha", func() screen.Screen { return &stubScreen{} })
	if s.Title() != "Welcome" {
		t.Errorf("Title() = %q, want Welcome on first run", s.Title())
	}

	send(s, enterKey) // name
	if s.step != stepGrade {
		t.Fatalf("step = %v, want grade", s.step)
	}
	send(s, tea.KeyPressMsg{Code: tea.KeyDown})
	send(s, enterKey) // class 12
	if s.Draft().GradeLevel != 12 {
		t.Errorf("grade = %d, want 12", s.Draft().GradeLevel)
	}

	send(s, tea.KeyPressMsg{Code: tea.KeyDown})
	send(s, tea.KeyPressMsg{Code: tea.KeyDown})
	send(s, enterKey) // JEE
	if s.Draft().ExamType != profile.ExamJEE {
		t.Errorf("exam = %q, want JEE", s.Draft().ExamType)
	}

	send(s, tea.KeyPressMsg{Code: tea.KeyUp})
	send(s, enterKey) // audio
	if s.Draft().LearningStyle != profile.StyleAudio {
		t.Errorf("style = %q, want audio", s.Draft().LearningStyle)
	}
	if s.step != stepSubjects {
		t.Fatalf("step = %v, want subjects", s.step)
	}

	send(s, tea.KeyPressMsg{Code: tea.KeySpace})
	out := send(s, enterKey)
	replace, ok := out.(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg after saving, got %T", out)
	}
	if replace.Screen.Title() != "Home" {
		t.Errorf("replaced with %q, want Home", replace.Screen.Title())
	}

	saved := prov.Current()
	if saved.FullName != "Asha" || saved.GradeLevel != 12 || saved.ExamType != profile.ExamJEE {
		t.Errorf("saved profile = %+v", saved)
	}
	if len(saved.PreferredSubjects) != 1 {
		t.Errorf("subjects = %v, want the first one checked", saved.PreferredSubjects)
	}
}

func TestSetup_TabGoesBack(t *testing.T) {
	s, _ := newSetup("Asha", nil)
	send(s, enterKey)
	send(s, tea.KeyPressMsg{Code: tea.KeyTab})
	if s.step != stepName {
		t.Errorf("step = %v, want name after tab", s.step)
	}
}

func TestSetup_EditPopsBack(t *testing.T) {
	s, _ := newSetup("Asha", nil)
	if s.Title() != "Profile" {
		t.Errorf("Title() = %q, want Profile when editing", s.Title())
	}
	for i := 0; i < 4; i++ {
		send(s, enterKey)
	}
	if s.step != stepSubjects {
		t.Fatalf("step = %v, want subjects", s.step)
	}
	if !strings.Contains(s.View(100, 30), "Step 5 of 5") {
		t.Error("expected the step counter")
	}
	if out := send(s, enterKey); out == nil {
		t.Error("expected a navigation command after saving")
	}
}

func TestSetup_TypingName(t *testing.T) {
	s, _ := newSetup("", nil)
	for _, r := range "Ravi" {
		send(s, key(r))
	}
	send(s, enterKey)
	if s.Draft().FullName != "Ravi" {
		t.Errorf("name = %q, want Ravi", s.Draft().FullName)
	}
}

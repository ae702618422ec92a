package session

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/studymate/internal/lessons"
	"github.com/abhisek/studymate/internal/profile"
	"github.com/abhisek/studymate/internal/router"
	"github.com/abhisek/studymate/internal/screen"
	"github.com/abhisek/studymate/internal/services"
	sess "github.com/abhisek/studymate/internal/session"
)

// mockGenerator implements sess.Generator for testing.
type mockGenerator struct {
	cardErr error
}

func (m *mockGenerator) ChunkedContent(_ context.Context, topic string, chunk int, _ profile.Profile) (string, error) {
	return "Lesson about " + topic, nil
}

func (m *mockGenerator) Flashcard(_ context.Context, _, concept string) (lessons.Flashcard, error) {
	if m.cardErr != nil {
		return lessons.Flashcard{}, m.cardErr
	}
	return lessons.Flashcard{Front: "What is " + concept + "?", Back: "The answer"}, nil
}

func (m *mockGenerator) Quiz(_ context.Context, _, _ string) (lessons.Quiz, error) {
	return lessons.Quiz{
		Question:     "What is 2+2?",
		Options:      []string{"3", "4", "5", "6"},
		CorrectIndex: 1,
		Explanation:  "Two and two make four.",
	}, nil
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func testSessionScreen(t *testing.T, gen *mockGenerator, chunks int) *SessionScreen {
	t.Helper()
	prof := profile.Default("u-1")
	state, err := sess.New(
		sess.Params{UserID: "u-1", Subject: "Physics", Chapter: "Motion", TotalChunks: chunks},
		sess.Deps{Generator: gen, Profile: profile.NewStatic(prof)},
	)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	s := New(&services.Services{}, state)
	t.Cleanup(s.Close)
	return s
}

// run executes cmd and feeds its message back into the screen. Batches
// are unwrapped and ticks are skipped.
func run(t *testing.T, s *SessionScreen, cmd tea.Cmd) tea.Msg {
	t.Helper()
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var last tea.Msg
		for _, c := range batch {
			if c == nil {
				continue
			}
			m := c()
			if _, tick := m.(loadingTickMsg); tick {
				continue
			}
			last = m
			next, more := s.Update(m)
			s = next.(*SessionScreen)
			if more != nil {
				if r := run(t, s, more); r != nil {
					last = r
				}
			}
		}
		return last
	}
	if _, tick := msg.(loadingTickMsg); tick {
		return nil
	}
	next, more := s.Update(msg)
	s = next.(*SessionScreen)
	if r := run(t, s, more); r != nil {
		return r
	}
	return msg
}

func press(t *testing.T, s *SessionScreen, msg tea.KeyPressMsg) tea.Cmd {
	t.Helper()
	_, cmd := s.Update(msg)
	return cmd
}

func started(t *testing.T, s *SessionScreen) {
	t.Helper()
	run(t, s, s.load())
	if s.artifact == nil {
		t.Fatal("expected an artifact after load")
	}
}

func TestSessionScreen_Title(t *testing.T) {
	s := testSessionScreen(t, &mockGenerator{}, 1)
	if got := s.Title(); got != "Physics · Motion" {
		t.Errorf("Title() = %q", got)
	}
}

func TestSessionScreen_View_Loading(t *testing.T) {
	s := testSessionScreen(t, &mockGenerator{}, 1)
	s.loading = true
	view := s.View(100, 40)
	if !strings.Contains(view, "Preparing your lesson") {
		t.Errorf("loading view missing indicator:\n%s", view)
	}
	if !strings.Contains(view, "Chunk 1 of 1") {
		t.Errorf("loading view missing chunk label:\n%s", view)
	}
}

func TestSessionScreen_ContentShown(t *testing.T) {
	s := testSessionScreen(t, &mockGenerator{}, 1)
	started(t, s)

	if s.artifact.Step != sess.StepContent {
		t.Fatalf("step = %v, want content", s.artifact.Step)
	}
	view := s.View(100, 40)
	if !strings.Contains(view, "Lesson about Physics - Motion") {
		t.Errorf("content missing from view:\n%s", view)
	}
}

func TestSessionScreen_FeedbackSchedulesAdvance(t *testing.T) {
	s := testSessionScreen(t, &mockGenerator{}, 1)
	started(t, s)

	cmd := press(t, s, keyPress('u'))
	if cmd == nil {
		t.Fatal("expected auto-advance tick")
	}
	if s.feedback != sess.FeedbackUnderstood {
		t.Errorf("feedback = %q", s.feedback)
	}
	// A second reaction is ignored.
	if press(t, s, keyPress('c')) != nil {
		t.Error("second feedback should not schedule another advance")
	}

	// Stale tokens do nothing.
	if _, c := s.Update(autoAdvanceMsg{Token: s.autoToken - 1}); c != nil {
		t.Error("stale auto-advance should be ignored")
	}

	_, c := s.Update(autoAdvanceMsg{Token: s.autoToken})
	if c == nil {
		t.Fatal("current auto-advance should advance")
	}
	run(t, s, c)
	if s.artifact == nil || s.artifact.Step != sess.StepFlashcard {
		t.Fatalf("expected flashcard after auto-advance, got %+v", s.artifact)
	}
}

func TestSessionScreen_EnterCancelsPendingAutoAdvance(t *testing.T) {
	s := testSessionScreen(t, &mockGenerator{}, 1)
	started(t, s)

	press(t, s, keyPress('u'))
	token := s.autoToken
	run(t, s, press(t, s, specialKey(tea.KeyEnter)))

	if _, c := s.Update(autoAdvanceMsg{Token: token}); c != nil {
		t.Error("auto-advance from the previous step should be ignored")
	}
	if s.artifact.Step != sess.StepFlashcard {
		t.Errorf("step = %v, want flashcard", s.artifact.Step)
	}
}

func TestSessionScreen_Flashcard(t *testing.T) {
	s := testSessionScreen(t, &mockGenerator{}, 1)
	started(t, s)
	run(t, s, press(t, s, specialKey(tea.KeyEnter)))

	if press(t, s, keyPress('1')) != nil {
		t.Error("confidence should need the card flipped first")
	}
	press(t, s, specialKey(tea.KeySpace))
	if !s.flipped {
		t.Fatal("space should flip the card")
	}
	if !strings.Contains(s.View(100, 40), "The answer") {
		t.Error("flipped card should show the back")
	}
	if press(t, s, keyPress('3')) == nil {
		t.Fatal("confidence should schedule an advance")
	}
	if s.feedback != sess.ConfidenceHard {
		t.Errorf("feedback = %q, want hard", s.feedback)
	}
}

func TestSessionScreen_QuizToSummary(t *testing.T) {
	s := testSessionScreen(t, &mockGenerator{}, 1)
	started(t, s)
	run(t, s, press(t, s, specialKey(tea.KeyEnter)))
	run(t, s, press(t, s, specialKey(tea.KeyEnter)))

	if s.artifact.Step != sess.StepQuiz {
		t.Fatalf("step = %v, want quiz", s.artifact.Step)
	}
	press(t, s, keyPress('b'))
	if !s.answered || !s.correct {
		t.Fatalf("answered=%v correct=%v, want both true", s.answered, s.correct)
	}
	if !strings.Contains(s.View(100, 40), "Two and two make four.") {
		t.Error("explanation should be shown after answering")
	}

	msg := run(t, s, press(t, s, specialKey(tea.KeyEnter)))
	replace, ok := msg.(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", msg)
	}
	if replace.Screen == nil {
		t.Fatal("expected a summary screen")
	}
	if got := s.state.Summary().Score; got == nil || *got != 100 {
		t.Errorf("score = %v, want 100", got)
	}
}

func TestSessionScreen_GenerationErrorRetryAndSkip(t *testing.T) {
	gen := &mockGenerator{cardErr: errors.New("offline")}
	s := testSessionScreen(t, gen, 1)
	started(t, s)
	run(t, s, press(t, s, specialKey(tea.KeyEnter)))

	if s.errMsg == "" {
		t.Fatal("expected an error message for the failed flashcard")
	}
	hints := s.KeyHints()
	if len(hints) == 0 || hints[0].Key != "R" {
		t.Errorf("expected retry hint first, got %+v", hints)
	}

	run(t, s, press(t, s, keyPress('r')))
	if s.errMsg == "" {
		t.Error("retry against a failing generator should fail again")
	}

	gen.cardErr = nil
	run(t, s, press(t, s, keyPress('n')))
	if s.errMsg != "" {
		t.Errorf("skip should clear the error, got %q", s.errMsg)
	}
	if s.artifact == nil || s.artifact.Step != sess.StepQuiz {
		t.Errorf("skip should move on to the quiz, got %+v", s.artifact)
	}
}

func TestSessionScreen_VoiceToggle(t *testing.T) {
	s := testSessionScreen(t, &mockGenerator{}, 1)
	started(t, s)

	if s.state.State().VoiceEnabled {
		t.Fatal("text learners start with voice off")
	}
	press(t, s, keyPress('v'))
	if !s.state.State().VoiceEnabled {
		t.Error("v should enable voice")
	}
	if !strings.Contains(s.View(100, 40), "Voice on") {
		t.Error("header should show voice on")
	}
	if s.artifact == nil || s.artifact.Step != sess.StepContent {
		t.Error("toggling voice should keep the current step")
	}
}

func TestSessionScreen_CloseIsIdempotent(t *testing.T) {
	s := testSessionScreen(t, &mockGenerator{}, 1)
	var _ screen.Closer = s
	s.Close()
	s.Close()

	run(t, s, s.load())
	if s.artifact != nil {
		t.Error("a closed session should not produce artifacts")
	}
	if s.errMsg != "" {
		t.Errorf("closing is not an error, got %q", s.errMsg)
	}
}

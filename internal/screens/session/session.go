package session

import (
	"context"
	"errors"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/studymate/internal/router"
	"github.com/abhisek/studymate/internal/screen"
	"github.com/abhisek/studymate/internal/screens/summary"
	"github.com/abhisek/studymate/internal/services"
	sess "github.com/abhisek/studymate/internal/session"
	"github.com/abhisek/studymate/internal/ui/components"
	"github.com/abhisek/studymate/internal/ui/layout"
)

// AutoAdvanceDelay is how long feedback stays on screen before the
// lesson and flashcard steps move on by themselves.
const AutoAdvanceDelay = 1500 * time.Millisecond

// SessionScreen drives a learning session: lesson text, flashcard and
// quiz for each chunk, then the summary.
type SessionScreen struct {
	svc   *services.Services
	state *sess.Session

	artifact *sess.Artifact
	loading  bool
	busy     bool // an Advance is in flight
	errMsg   string
	dots     int

	doc      components.Document
	feedback sess.Feedback
	flipped  bool
	quiz     components.MultiChoice
	answered bool
	correct  bool

	autoToken int
	closed    bool
}

var _ screen.Screen = (*SessionScreen)(nil)
var _ screen.KeyHintProvider = (*SessionScreen)(nil)
var _ screen.Closer = (*SessionScreen)(nil)

// New wraps a started session. The screen owns it and closes it when it
// leaves the stack.
func New(svc *services.Services, state *sess.Session) *SessionScreen {
	return &SessionScreen{
		svc:   svc,
		state: state,
		doc:   components.NewDocument(),
	}
}

func (s *SessionScreen) Init() tea.Cmd {
	return tea.Batch(s.load(), loadingTick())
}

func (s *SessionScreen) Title() string {
	p := s.state.Params()
	return p.Subject + " · " + p.Chapter
}

// Close ends the session, which also stops any narration.
func (s *SessionScreen) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.state.Close()
}

func (s *SessionScreen) KeyHints() []layout.KeyHint {
	if s.errMsg != "" {
		return []layout.KeyHint{
			{Key: "R", Description: "Retry"},
			{Key: "N", Description: "Skip"},
			{Key: "Esc", Description: "Leave"},
		}
	}
	voice := layout.KeyHint{Key: "V", Description: "Voice on"}
	if s.state.State().VoiceEnabled {
		voice.Description = "Voice off"
	}
	if s.artifact == nil {
		return []layout.KeyHint{voice, {Key: "Esc", Description: "Leave"}}
	}
	switch s.artifact.Step {
	case sess.StepContent:
		return []layout.KeyHint{
			{Key: "U", Description: "Got it"},
			{Key: "C", Description: "Confused"},
			{Key: "P", Description: "Play audio"},
			{Key: "Enter", Description: "Next"},
			voice,
		}
	case sess.StepFlashcard:
		if !s.flipped {
			return []layout.KeyHint{{Key: "Space", Description: "Flip"}, {Key: "Enter", Description: "Next"}, voice}
		}
		return []layout.KeyHint{
			{Key: "1", Description: "Easy"},
			{Key: "2", Description: "Medium"},
			{Key: "3", Description: "Hard"},
			{Key: "Enter", Description: "Next"},
			voice,
		}
	case sess.StepQuiz:
		if s.answered {
			return []layout.KeyHint{{Key: "Enter", Description: "Continue"}, voice}
		}
		return []layout.KeyHint{{Key: "A-D", Description: "Answer"}, {Key: "↑↓", Description: "Choose"}, voice}
	}
	return nil
}

func (s *SessionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case artifactReadyMsg:
		return s.handleArtifact(msg)

	case advancedMsg:
		return s.handleAdvanced(msg)

	case autoAdvanceMsg:
		if msg.Token != s.autoToken || s.busy || s.artifact == nil {
			return s, nil
		}
		return s, s.advance()

	case loadingTickMsg:
		if !s.loading {
			return s, nil
		}
		s.dots = (s.dots + 1) % 4
		return s, loadingTick()

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *SessionScreen) handleArtifact(msg artifactReadyMsg) (screen.Screen, tea.Cmd) {
	s.loading = false
	if msg.Err != nil {
		if errors.Is(msg.Err, sess.ErrClosed) {
			return s, nil
		}
		s.errMsg = "Couldn't prepare this step. Press R to retry or N to skip."
		s.svc.Logger().Warn("session step failed", "error", msg.Err)
		return s, nil
	}

	art := msg.Artifact
	s.artifact = &art
	s.errMsg = ""
	s.feedback = ""
	s.flipped = false
	s.answered = false
	s.correct = false
	switch art.Step {
	case sess.StepContent:
		s.doc.SetText(art.Content)
	case sess.StepQuiz:
		s.quiz = components.NewMultiChoice(art.Quiz.Question, art.Quiz.Options, art.Quiz.CorrectIndex)
	}
	return s, nil
}

func (s *SessionScreen) handleAdvanced(msg advancedMsg) (screen.Screen, tea.Cmd) {
	s.busy = false
	if msg.Err != nil {
		s.svc.Logger().Warn("advance failed", "error", msg.Err)
		return s, nil
	}
	if msg.Step == sess.StepComplete {
		next := summary.New(s.state.Summary())
		return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
	}
	return s, tea.Batch(s.load(), loadingTick())
}

func (s *SessionScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if key == "v" {
		s.state.ToggleVoice()
		return s, nil
	}
	if s.busy || s.loading {
		return s, nil
	}

	if s.errMsg != "" {
		switch key {
		case "r":
			s.errMsg = ""
			return s, tea.Batch(s.load(), loadingTick())
		case "n":
			s.errMsg = ""
			return s, s.advance()
		}
		return s, nil
	}

	if s.artifact == nil {
		return s, nil
	}

	switch s.artifact.Step {
	case sess.StepContent:
		switch key {
		case "u":
			return s, s.giveFeedback(sess.FeedbackUnderstood)
		case "c":
			return s, s.giveFeedback(sess.FeedbackConfused)
		case "p":
			s.state.Replay()
			return s, nil
		case "enter", "n":
			return s, s.advance()
		}
		var cmd tea.Cmd
		s.doc, cmd = s.doc.Update(msg)
		return s, cmd

	case sess.StepFlashcard:
		switch key {
		case "space", " ", "f":
			s.flipped = !s.flipped
			return s, nil
		case "enter", "n":
			return s, s.advance()
		}
		if s.flipped {
			switch key {
			case "1", "e":
				return s, s.giveFeedback(sess.ConfidenceEasy)
			case "2", "m":
				return s, s.giveFeedback(sess.ConfidenceMedium)
			case "3", "h":
				return s, s.giveFeedback(sess.ConfidenceHard)
			}
		}
		return s, nil

	case sess.StepQuiz:
		if s.answered {
			if key == "enter" || key == "n" {
				return s, s.advance()
			}
			return s, nil
		}
		s.quiz, _ = s.quiz.Update(msg)
		if s.quiz.Submitted {
			correct, err := s.state.AnswerQuiz(s.quiz.ChosenIndex)
			if err != nil {
				s.svc.Logger().Warn("answer not recorded", "error", err)
			}
			s.answered = true
			s.correct = correct
		}
		return s, nil
	}
	return s, nil
}

// giveFeedback records the reaction once and schedules the auto-advance.
func (s *SessionScreen) giveFeedback(kind sess.Feedback) tea.Cmd {
	if s.feedback != "" {
		return nil
	}
	if err := s.state.RecordFeedback(kind); err != nil {
		s.svc.Logger().Warn("feedback not recorded", "error", err)
		return nil
	}
	s.feedback = kind
	s.autoToken++
	token := s.autoToken
	return tea.Tick(AutoAdvanceDelay, func(time.Time) tea.Msg {
		return autoAdvanceMsg{Token: token}
	})
}

func (s *SessionScreen) load() tea.Cmd {
	s.loading = true
	state := s.state
	return func() tea.Msg {
		art, err := state.Load(context.Background())
		return artifactReadyMsg{Artifact: art, Err: err}
	}
}

func (s *SessionScreen) advance() tea.Cmd {
	s.busy = true
	s.autoToken++
	s.artifact = nil
	state := s.state
	return func() tea.Msg {
		step, err := state.Advance(context.Background())
		return advancedMsg{Step: step, Err: err}
	}
}

func loadingTick() tea.Cmd {
	return tea.Tick(300*time.Millisecond, func(t time.Time) tea.Msg {
		return loadingTickMsg(t)
	})
}

// Package session drives one learning session through its chunks: lesson
// text, then a flashcard, then a quiz, repeated until the chapter is done.
package session

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/studymate/internal/lessons"
	"github.com/abhisek/studymate/internal/llm"
	"github.com/abhisek/studymate/internal/logger"
	"github.com/abhisek/studymate/internal/narration"
	"github.com/abhisek/studymate/internal/profile"
	"github.com/abhisek/studymate/internal/progress"
	"github.com/abhisek/studymate/internal/store"
)

var (
	ErrLoadInFlight     = errors.New("session: load already in flight")
	ErrComplete         = errors.New("session: already complete")
	ErrGenerationFailed = errors.New("session: generation failed")
	ErrClosed           = errors.New("session: closed")
	ErrNoQuiz           = errors.New("session: no quiz loaded")
	ErrAlreadyAnswered  = errors.New("session: quiz already answered")
	ErrChoiceRange      = errors.New("session: choice out of range")
)

// DefaultNarrationDelay is the pause between showing lesson text and
// starting to read it aloud.
const DefaultNarrationDelay = 500 * time.Millisecond

const quizDifficulty = lessons.DifficultyMedium

// writeTimeout bounds each background store write.
const writeTimeout = 5 * time.Second

// Generator produces the study material for each step.
type Generator interface {
	ChunkedContent(ctx context.Context, topic string, chunkIndex int, p profile.Profile) (string, error)
	Flashcard(ctx context.Context, topic, concept string) (lessons.Flashcard, error)
	Quiz(ctx context.Context, topic, difficulty string) (lessons.Quiz, error)
}

// Narrator reads text aloud, blocking until done or ctx is cancelled.
type Narrator interface {
	Narrate(ctx context.Context, text string) error
}

// Recorder persists a finished session.
type Recorder interface {
	RecordCompletion(ctx context.Context, c progress.Completion) error
}

// InteractionRecorder stores learner interactions.
type InteractionRecorder interface {
	Append(ctx context.Context, in store.Interaction) error
}

// Params describe what is being studied.
type Params struct {
	// UserID overrides the profile's user id when set.
	UserID  string
	Subject string
	Chapter string
	Roadmap string

	TotalChunks    int
	NarrationDelay time.Duration
}

// Deps are the collaborators a session uses. Generator and Profile are
// required; the rest may be nil.
type Deps struct {
	Generator    Generator
	Profile      profile.Source
	Narrator     Narrator
	Recorder     Recorder
	Interactions InteractionRecorder
	Log          *logger.Logger
	Clock        func() time.Time
}

// Artifact is the material for the current step. Exactly one of
// Content, Flashcard or Quiz is set.
type Artifact struct {
	Step      Step
	Chunk     int
	Content   string
	Flashcard *lessons.Flashcard
	Quiz      *lessons.Quiz

	// Fallback is set when Content is the built-in welcome text because
	// generation failed.
	Fallback bool
}

// Session is a single pass through a chapter. All methods are safe for
// concurrent use.
type Session struct {
	id     string
	params Params
	deps   Deps
	log    *logger.Logger

	ctx         context.Context
	cancel      context.CancelFunc
	narrations  *narration.Tasks
	unsubscribe func()
	writes      sync.WaitGroup

	mu           sync.Mutex
	state        State
	profile      profile.Profile
	loading      bool
	artifact     *Artifact
	quizAnswered bool
	answered     int
	correct      int
	finishedAt   time.Time
	closed       bool
}

// New starts a session at chunk 0, step content. Voice starts enabled
// when the learner prefers audio.
func New(params Params, deps Deps) (*Session, error) {
	if deps.Generator == nil {
		return nil, fmt.Errorf("session: generator is required")
	}
	if deps.Profile == nil {
		return nil, fmt.Errorf("session: profile source is required")
	}
	if params.Subject == "" || params.Chapter == "" {
		return nil, fmt.Errorf("session: subject and chapter are required")
	}
	if params.TotalChunks <= 0 {
		params.TotalChunks = DefaultTotalChunks
	}
	if params.NarrationDelay <= 0 {
		params.NarrationDelay = DefaultNarrationDelay
	}
	if deps.Clock == nil {
		deps.Clock = time.Now
	}

	id := uuid.NewString()
	ctx, cancel := context.WithCancel(context.Background())
	prof := deps.Profile.Current()

	s := &Session{
		id:         id,
		params:     params,
		deps:       deps,
		log:        logger.OrNop(deps.Log).With("session_id", id, "subject", params.Subject),
		ctx:        ctx,
		cancel:     cancel,
		narrations: narration.NewTasks(ctx),
		profile:    prof,
		state: State{
			Step:         StepContent,
			TotalChunks:  params.TotalChunks,
			VoiceEnabled: prof.PrefersAudio(),
			StartedAt:    deps.Clock(),
		},
	}
	s.unsubscribe = deps.Profile.Subscribe(s.onProfileChange)

	s.log.Info("session started", "chapter", params.Chapter, "chunks", params.TotalChunks, "voice", s.state.VoiceEnabled)
	return s, nil
}

func (s *Session) onProfileChange(p profile.Profile) {
	s.mu.Lock()
	s.profile = p
	s.mu.Unlock()
}

// ID returns the session's unique id.
func (s *Session) ID() string { return s.id }

// Topic is "{subject} - {chapter}", the topic every generator call uses.
func (s *Session) Topic() string {
	return s.params.Subject + " - " + s.params.Chapter
}

// Params returns what the session was started with.
func (s *Session) Params() Params { return s.params }

// State returns a snapshot of the current position.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Progress returns the completion percentage.
func (s *Session) Progress() int {
	return s.State().Progress()
}

// Loading reports whether a Load is in flight.
func (s *Session) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Artifact returns the material loaded for the current step, if any.
func (s *Session) Artifact() (Artifact, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.artifact == nil {
		return Artifact{}, false
	}
	return *s.artifact, true
}

func concept(chunk int) string {
	return fmt.Sprintf("Chunk %d concepts", chunk+1)
}

func (s *Session) fallbackContent() string {
	return fmt.Sprintf("Welcome to %s!\n\nThis is an important topic that will help you understand the fundamental concepts. Let's break it down step by step.\n\nAre you ready to learn something amazing?", s.Topic())
}

// Load generates the material for the current step. It never changes the
// step. Content failures yield the fallback welcome text; flashcard and
// quiz failures leave the step without material and return
// ErrGenerationFailed.
func (s *Session) Load(ctx context.Context) (Artifact, error) {
	s.mu.Lock()
	switch {
	case s.closed:
		s.mu.Unlock()
		return Artifact{}, ErrClosed
	case s.state.Step == StepComplete:
		s.mu.Unlock()
		return Artifact{}, ErrComplete
	case s.loading:
		s.mu.Unlock()
		return Artifact{}, ErrLoadInFlight
	}
	s.loading = true
	st := s.state
	prof := s.profile
	s.mu.Unlock()

	ctx, cancel := context.WithCancel(llm.WithSession(ctx, s.id))
	defer cancel()
	stop := context.AfterFunc(s.ctx, cancel)
	defer stop()

	art := Artifact{Step: st.Step, Chunk: st.Chunk}
	var genErr error
	topic := s.Topic()

	switch st.Step {
	case StepContent:
		text, err := s.deps.Generator.ChunkedContent(ctx, topic, st.Chunk, prof)
		if err != nil || text == "" {
			s.log.Warn("content generation failed, using fallback", "chunk", st.Chunk, "error", err)
			text = s.fallbackContent()
			art.Fallback = true
		}
		art.Content = text
	case StepFlashcard:
		card, err := s.deps.Generator.Flashcard(ctx, topic, concept(st.Chunk))
		if err != nil {
			genErr = err
		} else {
			art.Flashcard = &card
		}
	case StepQuiz:
		quiz, err := s.deps.Generator.Quiz(ctx, topic, quizDifficulty)
		if err != nil {
			genErr = err
		} else {
			art.Quiz = &quiz
		}
	}

	s.mu.Lock()
	s.loading = false
	if genErr != nil {
		s.artifact = nil
		s.mu.Unlock()
		s.log.Error("generation failed", "step", st.Step.String(), "chunk", st.Chunk, "error", genErr)
		return Artifact{}, fmt.Errorf("%w: %s: %v", ErrGenerationFailed, st.Step, genErr)
	}
	s.artifact = &art
	if st.Step == StepQuiz {
		s.quizAnswered = false
	}
	voice := s.state.VoiceEnabled
	closed := s.closed
	s.mu.Unlock()

	if art.Step == StepContent && voice && !closed {
		s.scheduleNarration(art.Content, s.params.NarrationDelay)
	}
	return art, nil
}

func (s *Session) scheduleNarration(text string, delay time.Duration) {
	if s.deps.Narrator == nil {
		return
	}
	s.narrations.After(delay, func(ctx context.Context) {
		if err := s.deps.Narrator.Narrate(ctx, text); err != nil && ctx.Err() == nil {
			s.log.Warn("narration failed", "error", err)
		}
	})
}

// Replay reads the current lesson text aloud now, regardless of the
// voice setting. It reports false when there is no lesson text loaded.
func (s *Session) Replay() bool {
	s.mu.Lock()
	art := s.artifact
	closed := s.closed
	s.mu.Unlock()
	if closed || art == nil || art.Step != StepContent {
		return false
	}
	s.narrations.CancelPending()
	s.scheduleNarration(art.Content, 0)
	return true
}

// Advance moves to the next step. Entering complete records the session
// in the background; a failed write is logged and does not undo the
// transition.
func (s *Session) Advance(ctx context.Context) (Step, error) {
	s.mu.Lock()
	switch {
	case s.closed:
		step := s.state.Step
		s.mu.Unlock()
		return step, ErrClosed
	case s.loading:
		step := s.state.Step
		s.mu.Unlock()
		return step, ErrLoadInFlight
	}
	next, ok := s.state.next()
	if !ok {
		s.mu.Unlock()
		return StepComplete, ErrComplete
	}
	s.state = next
	s.artifact = nil
	s.quizAnswered = false
	record := next.Step == StepComplete && s.deps.Recorder != nil
	if next.Step == StepComplete {
		s.finishedAt = s.deps.Clock()
	}
	completion := s.completionLocked()
	if record {
		s.writes.Add(1)
	}
	s.mu.Unlock()

	// Narration belongs to the step being left.
	s.narrations.CancelPending()

	s.log.Debug("advanced", "step", next.Step.String(), "chunk", next.Chunk, "progress", next.Progress())
	if next.Step == StepComplete {
		s.log.Info("session complete", "score", scoreField(completion.QuizScore))
	}
	if record {
		go s.recordCompletion(context.WithoutCancel(ctx), completion)
	}
	return next.Step, nil
}

// recordCompletion runs off the caller's goroutine so a slow backend never
// holds the summary back. Close waits for it.
func (s *Session) recordCompletion(ctx context.Context, c progress.Completion) {
	defer s.writes.Done()
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	if err := s.deps.Recorder.RecordCompletion(ctx, c); err != nil {
		s.log.Warn("completion not fully saved", "error", err)
	}
}

func (s *Session) completionLocked() progress.Completion {
	userID := s.params.UserID
	if userID == "" {
		userID = s.profile.UserID
	}
	return progress.Completion{
		UserID:      userID,
		Subject:     s.params.Subject,
		Chapter:     s.params.Chapter,
		Roadmap:     s.params.Roadmap,
		TotalChunks: s.state.TotalChunks,
		QuizScore:   s.scoreLocked(),
		StartedAt:   s.state.StartedAt,
		FinishedAt:  s.finishedAt,
	}
}

// ToggleVoice flips narration and returns the new setting.
func (s *Session) ToggleVoice() bool {
	s.mu.Lock()
	on := !s.state.VoiceEnabled
	s.mu.Unlock()
	s.SetVoice(on)
	return on
}

// SetVoice turns narration on or off. Turning it off stops pending and
// running narration. Step and chunk are never affected.
func (s *Session) SetVoice(on bool) {
	s.mu.Lock()
	s.state.VoiceEnabled = on
	s.mu.Unlock()
	if !on {
		s.narrations.CancelPending()
	}
}

// AnswerQuiz records the learner's choice for the current quiz. Each quiz
// counts once toward the score.
func (s *Session) AnswerQuiz(choice int) (bool, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return false, ErrClosed
	}
	if s.state.Step != StepQuiz || s.artifact == nil || s.artifact.Quiz == nil {
		s.mu.Unlock()
		return false, ErrNoQuiz
	}
	if s.quizAnswered {
		s.mu.Unlock()
		return false, ErrAlreadyAnswered
	}
	quiz := *s.artifact.Quiz
	if choice < 0 || choice >= len(quiz.Options) {
		s.mu.Unlock()
		return false, ErrChoiceRange
	}
	correct := quiz.IsCorrect(choice)
	s.quizAnswered = true
	s.answered++
	if correct {
		s.correct++
	}
	chunk := s.state.Chunk
	s.mu.Unlock()

	s.recordInteraction(store.Interaction{
		Type:       store.InteractionAnswer,
		Subtopic:   concept(chunk),
		Content:    quiz.Options[choice],
		AIResponse: quiz.Explanation,
		Context: map[string]any{
			"chunk":         chunk,
			"question":      quiz.Question,
			"choice":        choice,
			"correct_index": quiz.CorrectIndex,
			"correct":       correct,
			"source":        string(quiz.Source),
		},
	})
	return correct, nil
}

// Feedback is a learner reaction to lesson text or a flashcard.
type Feedback string

const (
	FeedbackUnderstood Feedback = "understood"
	FeedbackConfused   Feedback = "confused"

	ConfidenceEasy   Feedback = "easy"
	ConfidenceMedium Feedback = "medium"
	ConfidenceHard   Feedback = "hard"
)

// Step returns the step a feedback kind applies to.
func (f Feedback) Step() (Step, bool) {
	switch f {
	case FeedbackUnderstood, FeedbackConfused:
		return StepContent, true
	case ConfidenceEasy, ConfidenceMedium, ConfidenceHard:
		return StepFlashcard, true
	}
	return 0, false
}

// RecordFeedback stores the learner's reaction to the current step.
// Storage is best-effort.
func (s *Session) RecordFeedback(kind Feedback) error {
	want, ok := kind.Step()
	if !ok {
		return fmt.Errorf("session: unknown feedback %q", kind)
	}
	s.mu.Lock()
	st := s.state
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return ErrClosed
	}
	if st.Step != want {
		return fmt.Errorf("session: %s feedback during %s step", kind, st.Step)
	}

	s.recordInteraction(store.Interaction{
		Type:     store.InteractionFeedback,
		Subtopic: concept(st.Chunk),
		Content:  string(kind),
		Context: map[string]any{
			"chunk": st.Chunk,
			"step":  st.Step.String(),
		},
	})
	return nil
}

func (s *Session) recordInteraction(in store.Interaction) {
	if s.deps.Interactions == nil {
		return
	}
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	in.UserID = s.params.UserID
	if in.UserID == "" {
		in.UserID = s.profile.UserID
	}
	// Added under the lock so Close never starts waiting before it.
	s.writes.Add(1)
	s.mu.Unlock()
	in.Subject = s.params.Subject
	in.Topic = s.Topic()
	in.CreatedAt = s.deps.Clock()
	if in.Context != nil {
		in.Context["session_id"] = s.id
	}

	go func() {
		defer s.writes.Done()
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		defer cancel()
		if err := s.deps.Interactions.Append(ctx, in); err != nil {
			s.log.Warn("record interaction failed", "type", in.Type, "error", err)
		}
	}()
}

// QuizScore is round(100 × correct / answered), or nil before any quiz
// has been answered.
func (s *Session) QuizScore() *int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scoreLocked()
}

func (s *Session) scoreLocked() *int {
	if s.answered == 0 {
		return nil
	}
	score := int(math.Round(100 * float64(s.correct) / float64(s.answered)))
	return &score
}

// Close ends the session: it stops listening for profile changes,
// cancels all narration and waits for pending writes.
// Close is idempotent.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()

	s.unsubscribe()
	s.narrations.Close()
	s.cancel()
	s.writes.Wait()
	s.log.Debug("session closed")
}

func scoreField(score *int) any {
	if score == nil {
		return "none"
	}
	return *score
}

package session

import (
	"math"
	"time"
)

// Step is a stage of a chunk.
type Step int

const (
	StepContent Step = iota
	StepFlashcard
	StepQuiz
	StepComplete
)

func (s Step) String() string {
	switch s {
	case StepContent:
		return "content"
	case StepFlashcard:
		return "flashcard"
	case StepQuiz:
		return "quiz"
	case StepComplete:
		return "complete"
	}
	return "unknown"
}

// Label is the step name shown to the learner.
func (s Step) Label() string {
	switch s {
	case StepFlashcard:
		return "Review"
	case StepQuiz:
		return "Practice"
	}
	return "Learning"
}

// DefaultTotalChunks is the number of content/flashcard/quiz rounds.
const DefaultTotalChunks = 5

// stepsPerChunk is content + flashcard + quiz.
const stepsPerChunk = 3

// State is a snapshot of a session's position.
type State struct {
	Step         Step
	Chunk        int
	TotalChunks  int
	VoiceEnabled bool
	StartedAt    time.Time
}

// next returns the state after one step. complete has no successor.
func (s State) next() (State, bool) {
	switch s.Step {
	case StepContent:
		s.Step = StepFlashcard
	case StepFlashcard:
		s.Step = StepQuiz
	case StepQuiz:
		if s.Chunk < s.TotalChunks-1 {
			s.Chunk++
			s.Step = StepContent
		} else {
			s.Step = StepComplete
		}
	default:
		return s, false
	}
	return s, true
}

// Progress is the percentage of steps done, 100 once complete.
func (s State) Progress() int {
	if s.Step == StepComplete {
		return 100
	}
	if s.TotalChunks <= 0 {
		return 0
	}
	done := s.Chunk*stepsPerChunk + int(s.Step)
	return int(math.Round(100 * float64(done) / float64(s.TotalChunks*stepsPerChunk)))
}

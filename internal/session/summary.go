package session

import "time"

// Summary holds the data displayed on the completion screen.
type Summary struct {
	Subject        string
	Chapter        string
	Duration       time.Duration
	ChunksLearned  int
	QuizzesTaken   int
	QuizzesCorrect int
	// Score is nil when no quiz was answered.
	Score *int
}

// Summary describes the session so far.
func (s *Session) Summary() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	chunks := s.state.Chunk
	if s.state.Step == StepComplete {
		chunks = s.state.TotalChunks
	}
	end := s.finishedAt
	if end.IsZero() {
		end = s.deps.Clock()
	}
	return Summary{
		Subject:        s.params.Subject,
		Chapter:        s.params.Chapter,
		Duration:       end.Sub(s.state.StartedAt),
		ChunksLearned:  chunks,
		QuizzesTaken:   s.answered,
		QuizzesCorrect: s.correct,
		Score:          s.scoreLocked(),
	}
}

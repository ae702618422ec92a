package session

import (
	"time"

	sess "github.com/abhisek/studymate/internal/session"
)

// artifactReadyMsg is sent when the material for a step has been generated.
type artifactReadyMsg struct {
	Artifact sess.Artifact
	Err      error
}

// advancedMsg is sent after the session moved to its next step.
type advancedMsg struct {
	Step sess.Step
	Err  error
}

// autoAdvanceMsg fires AutoAdvanceDelay after feedback was given. Token
// ties it to the step it was scheduled for.
type autoAdvanceMsg struct {
	Token int
}

// loadingTickMsg animates the loading indicator.
type loadingTickMsg time.Time

// Package services bundles the long-lived dependencies that screens and
// commands share.
package services

import (
	"fmt"

	"github.com/abhisek/studymate/internal/lessons"
	"github.com/abhisek/studymate/internal/llm"
	"github.com/abhisek/studymate/internal/logger"
	"github.com/abhisek/studymate/internal/profile"
	"github.com/abhisek/studymate/internal/progress"
	"github.com/abhisek/studymate/internal/session"
	"github.com/abhisek/studymate/internal/store"
	"github.com/abhisek/studymate/internal/syllabus"
	"github.com/abhisek/studymate/internal/tts"
)

// Services is built once at startup. Any field except Profiles, Catalog
// and Lessons may be nil.
type Services struct {
	Profiles     *profile.Provider
	Catalog      *syllabus.Catalog
	Lessons      *lessons.Generator
	Recorder     *progress.Recorder
	Interactions store.InteractionRepo
	Narrator     session.Narrator
	Log          *logger.Logger

	Chat  llm.Availability
	Voice tts.Availability
}

// Logger returns Log, or a no-op logger.
func (s *Services) Logger() *logger.Logger {
	return logger.OrNop(s.Log)
}

// Status is the short mode indicator shown in the header.
func (s *Services) Status() string {
	ai := "AI: live"
	if !s.Chat.Available {
		ai = "AI: demo"
	}
	voice := "Voice: cloud"
	if !s.Voice.Available {
		voice = "Voice: local"
	}
	return ai + "  " + voice
}

// NewSession starts a learning session wired to the shared services.
func (s *Services) NewSession(p session.Params) (*session.Session, error) {
	if s.Lessons == nil || s.Profiles == nil {
		return nil, fmt.Errorf("services: lessons and profiles are required")
	}
	deps := session.Deps{
		Generator: s.Lessons,
		Profile:   s.Profiles,
		Narrator:  s.Narrator,
		Log:       s.Log,
	}
	if s.Recorder != nil {
		deps.Recorder = s.Recorder
	}
	if s.Interactions != nil {
		deps.Interactions = s.Interactions
	}
	if p.UserID == "" {
		p.UserID = s.Profiles.UserID()
	}
	return session.New(p, deps)
}

package services

import (
	"testing"

	"github.com/abhisek/studymate/internal/lessons"
	"github.com/abhisek/studymate/internal/llm"
	"github.com/abhisek/studymate/internal/profile"
	"github.com/abhisek/studymate/internal/session"
	"github.com/abhisek/studymate/internal/syllabus"
	"github.com/abhisek/studymate/internal/tts"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus(t *testing.T) {
	s := &Services{Chat: llm.Unavailable("no key"), Voice: tts.Available()}
	assert.Equal(t, "AI: demo  Voice: cloud", s.Status())

	s = &Services{Chat: llm.Available(), Voice: tts.Unavailable("no key")}
	assert.Equal(t, "AI: live  Voice: local", s.Status())
}

func TestNewSessionWithoutOptionalDeps(t *testing.T) {
	gw := llm.NewGateway(nil, "test", llm.Config{}, nil)
	s := &Services{
		Profiles: profile.NewStatic(profile.Default("u-1")),
		Catalog:  syllabus.NewCatalog(nil, nil),
		Lessons:  lessons.NewGenerator(gw, lessons.DefaultConfig(), nil),
	}

	sess, err := s.NewSession(session.Params{Subject: "Physics", Chapter: "Units and Measurements"})
	require.NoError(t, err)
	defer sess.Close()

	assert.Equal(t, "u-1", sess.Params().UserID)
	assert.Equal(t, session.StepContent, sess.State().Step)
}

func TestNewSessionRequiresLessons(t *testing.T) {
	_, err := (&Services{}).NewSession(session.Params{Subject: "Physics", Chapter: "Units"})
	assert.Error(t, err)
}

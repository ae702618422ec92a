package roadmap

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/studymate/internal/lessons"
	"github.com/abhisek/studymate/internal/llm"
	"github.com/abhisek/studymate/internal/profile"
	"github.com/abhisek/studymate/internal/router"
	"github.com/abhisek/studymate/internal/services"
)

type fixedChat struct {
	text string
}

func (f fixedChat) Complete(ctx context.Context, req llm.Request) llm.Completion {
	return llm.Completion{Text: f.text, Model: "fixed"}
}

func newRoadmap(text string) *RoadmapScreen {
	svc := &services.Services{
		Profiles: profile.NewStatic(profile.Default("u-1")),
		Lessons:  lessons.NewGenerator(fixedChat{text: text}, lessons.DefaultConfig(), nil),
	}
	return New(svc, "Physics", "Kinematics", 5)
}

// generate runs the generation half of Init, skipping the dots ticker.
func generate(t *testing.T, s *RoadmapScreen) {
	t.Helper()
	batch, ok := s.Init()().(tea.BatchMsg)
	if !ok || len(batch) == 0 {
		t.Fatal("expected Init to batch the generation with the ticker")
	}
	s.Update(batch[0]())
}

func TestRoadmap_LoadingThenReady(t *testing.T) {
	s := newRoadmap("Day 1: displacement\nDay 2: velocity")
	if s.Title() != "5-day roadmap" {
		t.Errorf("Title() = %q", s.Title())
	}
	if !strings.Contains(s.View(100, 30), "Building your 5-day roadmap for Kinematics") {
		t.Error("expected loading text")
	}

	generate(t, s)
	if !s.ready {
		t.Fatal("expected ready after generation")
	}
	view := s.View(100, 30)
	if !strings.Contains(view, "Day 1: displacement") {
		t.Error("roadmap text should be shown")
	}
	if !strings.Contains(view, "Start learning") {
		t.Error("start button should be shown")
	}
}

func TestRoadmap_EnterIgnoredWhileLoading(t *testing.T) {
	s := newRoadmap("Day 1")
	if _, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter}); cmd != nil {
		t.Error("enter should do nothing before the roadmap is ready")
	}
}

func TestRoadmap_StartPushesSession(t *testing.T) {
	s := newRoadmap("Day 1: displacement")
	generate(t, s)

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected push command")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatal("expected PushScreenMsg")
	}
	if push.Screen.Title() != "Physics · Kinematics" {
		t.Errorf("pushed %q, want the session screen", push.Screen.Title())
	}
}

func TestRoadmap_CloseCancelsGeneration(t *testing.T) {
	s := newRoadmap("Day 1")
	s.Close()
	generate(t, s)
	if s.ready {
		t.Error("a cancelled generation should not mark the roadmap ready")
	}
	if s.errMsg == "" {
		t.Error("expected the cancellation error to be reported")
	}
}

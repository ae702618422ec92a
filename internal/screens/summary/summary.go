package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studymate/internal/router"
	"github.com/abhisek/studymate/internal/screen"
	"github.com/abhisek/studymate/internal/session"
	"github.com/abhisek/studymate/internal/ui/components"
	"github.com/abhisek/studymate/internal/ui/layout"
	"github.com/abhisek/studymate/internal/ui/theme"
)

// SummaryScreen displays the session summary.
type SummaryScreen struct {
	summary session.Summary
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)
var _ screen.BackHandler = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(summary session.Summary) *SummaryScreen {
	return &SummaryScreen{summary: summary}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Session Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Home"},
		{Key: "Esc", Description: "Home"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, s.HandleBack()
		}
	}
	return s, nil
}

// HandleBack returns to home, which reloads its stats.
func (s *SummaryScreen) HandleBack() tea.Cmd {
	return tea.Sequence(
		func() tea.Msg { return router.PopToRootMsg{} },
		func() tea.Msg { return screen.RefreshMsg{} },
	)
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	center := func(st lipgloss.Style, text string) string {
		return layout.Centered(components.ContentWidth(width)-4, st, text)
	}

	var b strings.Builder
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true), "Session complete!"))
	b.WriteString("\n\n")
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Text), sum.Subject+"  ·  "+sum.Chapter))
	b.WriteString("\n\n")

	mins := int(sum.Duration.Minutes())
	secs := int(sum.Duration.Seconds()) % 60
	b.WriteString(center(theme.Dim, fmt.Sprintf("Duration: %d:%02d", mins, secs)))
	b.WriteString("\n\n")

	stats := fmt.Sprintf("Chunks: %d      Quizzes: %d      Correct: %d",
		sum.ChunksLearned, sum.QuizzesTaken, sum.QuizzesCorrect)
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Text), stats))
	b.WriteString("\n\n")

	b.WriteString(center(scoreStyle(sum.Score), scoreText(sum.Score)))
	return components.Panel("", b.String(), width, height)
}

func scoreText(score *int) string {
	if score == nil {
		return "No quiz answered"
	}
	return fmt.Sprintf("Score: %d%%", *score)
}

func scoreStyle(score *int) lipgloss.Style {
	switch {
	case score == nil:
		return theme.Dim
	case *score >= 70:
		return theme.Correct
	case *score >= 40:
		return lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	}
	return theme.Incorrect
}

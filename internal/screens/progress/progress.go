package progress

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studymate/internal/progress"
	"github.com/abhisek/studymate/internal/router"
	"github.com/abhisek/studymate/internal/screen"
	"github.com/abhisek/studymate/internal/services"
	"github.com/abhisek/studymate/internal/store"
	"github.com/abhisek/studymate/internal/ui/components"
	"github.com/abhisek/studymate/internal/ui/layout"
	"github.com/abhisek/studymate/internal/ui/theme"
)

// visibleRecords caps how many completions are listed at once.
const visibleRecords = 10

type progressLoadedMsg struct {
	Stats progress.Stats
	Err   error
}

// ProgressScreen shows the learner's completion stats and recent chapters.
type ProgressScreen struct {
	svc      *services.Services
	stats    progress.Stats
	selected int
	offset   int
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*ProgressScreen)(nil)
var _ screen.KeyHintProvider = (*ProgressScreen)(nil)

// New creates a new ProgressScreen.
func New(svc *services.Services) *ProgressScreen {
	return &ProgressScreen{svc: svc}
}

func (s *ProgressScreen) Init() tea.Cmd {
	rec := s.svc.Recorder
	if rec == nil {
		return func() tea.Msg { return progressLoadedMsg{Err: fmt.Errorf("progress is not being saved")} }
	}
	userID := s.svc.Profiles.UserID()
	return func() tea.Msg {
		stats, err := rec.Overview(context.Background(), userID)
		return progressLoadedMsg{Stats: stats, Err: err}
	}
}

func (s *ProgressScreen) Title() string {
	return "My Progress"
}

func (s *ProgressScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *ProgressScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case progressLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.stats = msg.Stats
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.stats.Records)-1 {
				s.selected++
			}
		}
		switch {
		case s.selected < s.offset:
			s.offset = s.selected
		case s.selected >= s.offset+visibleRecords:
			s.offset = s.selected - visibleRecords + 1
		}
	}
	return s, nil
}

func (s *ProgressScreen) View(width, height int) string {
	if s.errMsg != "" {
		return layout.Centered(width, theme.Incorrect, "\n\n  Error: "+s.errMsg)
	}
	if !s.loaded {
		return layout.Centered(width, theme.Dim, "\n\n  Loading progress...")
	}

	st := s.stats
	var b strings.Builder
	b.WriteString(statTiles(st))
	b.WriteString("\n\n")

	if len(st.Records) == 0 {
		b.WriteString(theme.Dim.Italic(true).Render("No chapters finished yet. Start a session from home!"))
		return components.Panel("My progress", b.String(), width, height)
	}

	b.WriteString(theme.Dim.Render("Recent chapters"))
	b.WriteString("\n")
	end := min(s.offset+visibleRecords, len(st.Records))
	for i := s.offset; i < end; i++ {
		line := recordLine(st.Records[i])
		style := lipgloss.NewStyle().Foreground(theme.Text)
		prefix := "  "
		if i == s.selected {
			style = theme.Selected
			prefix = "▸ "
		}
		b.WriteString(style.Render(prefix + line))
		b.WriteString("\n")
	}
	if len(st.Records) > visibleRecords {
		b.WriteString(theme.Dim.Render(fmt.Sprintf("  %d-%d of %d", s.offset+1, end, len(st.Records))))
	}
	return components.Panel("My progress", b.String(), width, height)
}

func statTiles(st progress.Stats) string {
	tile := func(value, label string) string {
		return theme.Card.Width(14).Align(lipgloss.Center).Render(
			lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(value) + "\n" +
				theme.Dim.Render(label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		tile(fmt.Sprint(st.TopicsCompleted), "chapters"),
		tile(fmt.Sprintf("%d%%", st.AverageQuizScore), "avg score"),
		tile(fmt.Sprint(st.RecentActivity), "this week"),
		tile(fmt.Sprintf("%dm", st.TotalTimeMinutes), "studied"),
	)
}

func recordLine(r store.ProgressRecord) string {
	score := "no quiz"
	if r.QuizScore != nil {
		score = fmt.Sprintf("%d%%", *r.QuizScore)
	}
	return fmt.Sprintf("%s  %s · %s  %s", r.CompletedAt.Format("Jan 02"), r.Subject, r.Topic, score)
}

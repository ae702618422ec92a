package session

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	sess "github.com/abhisek/studymate/internal/session"
	"github.com/abhisek/studymate/internal/ui/components"
	"github.com/abhisek/studymate/internal/ui/theme"
)

func (s *SessionScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	st := s.state.State()

	var b strings.Builder
	b.WriteString(s.renderStatus(st, cw-4))
	b.WriteString("\n")
	b.WriteString(theme.Dim.Render(strings.Repeat("─", max(cw-4, 0))))
	b.WriteString("\n\n")

	switch {
	case s.errMsg != "":
		b.WriteString(theme.Incorrect.Render(s.errMsg))
	case s.loading || s.busy || s.artifact == nil:
		b.WriteString(theme.Dim.Render(loadingText(st.Step) + strings.Repeat(".", s.dots)))
	default:
		b.WriteString(s.renderStep(cw-6, height))
	}

	return components.Panel(s.state.Topic(), b.String(), width, height)
}

// renderStatus is the progress line above every step.
func (s *SessionScreen) renderStatus(st sess.State, width int) string {
	label := fmt.Sprintf("Chunk %d of %d · %s", st.Chunk+1, st.TotalChunks, st.Step.Label())
	voice := theme.Dim.Render("Voice off")
	if st.VoiceEnabled {
		voice = lipgloss.NewStyle().Foreground(theme.Secondary).Render("Voice on")
	}

	line := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(label)
	if gap := width - lipgloss.Width(line) - lipgloss.Width(voice); gap > 0 {
		line += strings.Repeat(" ", gap) + voice
	} else {
		line += "  " + voice
	}

	bar := components.NewProgressBar("", s.state.Progress(), true, width)
	return line + "\n" + bar.View()
}

func loadingText(step sess.Step) string {
	switch step {
	case sess.StepFlashcard:
		return "Making a flashcard"
	case sess.StepQuiz:
		return "Writing a practice question"
	}
	return "Preparing your lesson"
}

func (s *SessionScreen) renderStep(width, height int) string {
	switch s.artifact.Step {
	case sess.StepContent:
		return s.renderContent(width, height)
	case sess.StepFlashcard:
		return s.renderFlashcard(width)
	case sess.StepQuiz:
		return s.renderQuiz()
	}
	return ""
}

func (s *SessionScreen) renderContent(width, height int) string {
	s.doc.Resize(width, max(height-16, 3))

	var b strings.Builder
	b.WriteString(s.doc.View())
	b.WriteString("\n\n")
	switch s.feedback {
	case sess.FeedbackUnderstood:
		b.WriteString(theme.Correct.Render("Great! Moving on..."))
	case sess.FeedbackConfused:
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Render("No worries, the flashcard will go over it again..."))
	default:
		b.WriteString(theme.Hint.Render("Did that make sense? U: got it   C: confused"))
	}
	return b.String()
}

func (s *SessionScreen) renderFlashcard(width int) string {
	card := s.artifact.Flashcard
	if card == nil {
		return ""
	}

	face := card.Front
	caption := "Question"
	if s.flipped {
		face = card.Back
		caption = "Answer"
	}

	box := theme.Card.Width(max(width-4, 10)).Align(lipgloss.Center).Render(
		theme.Dim.Render(caption) + "\n\n" +
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(face))

	var b strings.Builder
	b.WriteString(box)
	b.WriteString("\n\n")
	switch {
	case s.feedback != "":
		b.WriteString(theme.Correct.Render(fmt.Sprintf("Marked as %s. Moving on...", s.feedback)))
	case s.flipped:
		b.WriteString(theme.Hint.Render("How well did you know it?  1: easy   2: medium   3: hard"))
	default:
		b.WriteString(theme.Hint.Render("Press space to flip the card"))
	}
	return b.String()
}

func (s *SessionScreen) renderQuiz() string {
	var b strings.Builder
	b.WriteString(s.quiz.View())
	if !s.answered {
		return b.String()
	}

	b.WriteString("\n")
	if s.correct {
		b.WriteString(theme.Correct.Render("Correct!"))
	} else {
		b.WriteString(theme.Incorrect.Render("Not quite."))
	}
	if q := s.artifact.Quiz; q != nil && q.Explanation != "" {
		b.WriteString("\n")
		b.WriteString(theme.Body.Render(q.Explanation))
	}
	b.WriteString("\n\n")
	b.WriteString(theme.Hint.Render("Press Enter to continue"))
	return b.String()
}


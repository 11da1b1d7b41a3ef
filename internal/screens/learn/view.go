package learn

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/learnpath/internal/content"
	"github.com/abhisek/learnpath/internal/learning"
	"github.com/abhisek/learnpath/internal/ui/components"
	"github.com/abhisek/learnpath/internal/ui/theme"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

func (s *LearnScreen) View(width, height int) string {
	if s.confirmQuit {
		return renderQuitConfirm(width)
	}

	inner := max(width-4, 20)
	var sections []string
	sections = append(sections, s.renderInfoLine(inner))

	switch {
	case s.ending:
		sections = append(sections, s.renderBusy("Wrapping up your session..."))
	case s.state.Phase == learning.PhaseIdle:
		if s.busy {
			sections = append(sections, s.renderBusy("Preparing your session..."))
		}
	case s.state.Phase == learning.PhaseAwaitingContent:
		if s.busy {
			sections = append(sections, s.renderBusy("Generating your next lesson..."))
		}
	default:
		if s.state.Lesson != nil {
			sections = append(sections, renderLesson(s.state.Concept, s.state.Lesson, inner))
		}
		sections = append(sections, s.renderExercise(inner))
		if s.state.Phase == learning.PhaseAwaitingFeedback {
			sections = append(sections, s.renderBusy("Checking your answer..."))
		}
		if s.state.Phase == learning.PhaseFeedbackShown {
			sections = append(sections, s.renderFeedback(inner))
		}
	}

	if s.state.Notice != "" && !s.busy {
		retry := "Press r to retry or Esc to leave."
		if s.state.Phase == learning.PhaseContentReady {
			retry = "Press Enter to try again."
		}
		sections = append(sections, theme.Notice.Render(s.state.Notice)+"\n"+theme.Hint.Render(retry))
	}

	return lipgloss.NewStyle().Padding(0, 2).MaxHeight(height).Render(strings.Join(sections, "\n\n"))
}

func (s *LearnScreen) renderInfoLine(width int) string {
	left := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
	label := "New session"
	if s.state.SessionID != 0 {
		label = fmt.Sprintf("Session #%d", s.state.SessionID)
	}
	if s.state.Concept != "" {
		label += " · " + s.state.Concept
	}
	infoLeft := left.Render(label)

	infoRight := lipgloss.NewStyle().Foreground(theme.TextDim).Render(
		fmt.Sprintf("%s %d/%d", lipgloss.NewStyle().Foreground(theme.Success).Render("✓"), s.state.CorrectCount, s.state.Answered))

	line := infoLeft
	if pad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight); pad > 0 {
		line += strings.Repeat(" ", pad) + infoRight
	}

	bar := components.NewProgressBar("Progress", s.state.CompletionRate(), true, width)
	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", width))
	return line + "\n" + bar.View() + "\n" + divider
}

func (s *LearnScreen) renderBusy(label string) string {
	frame := spinnerFrames[s.spinner%len(spinnerFrames)]
	return lipgloss.NewStyle().Foreground(theme.TextDim).Render(
		lipgloss.NewStyle().Foreground(theme.Primary).Render(frame) + " " + label)
}

func renderLesson(concept string, l *content.Lesson, width int) string {
	var b strings.Builder
	b.WriteString(theme.CardTitle.Render(l.Title))
	if l.Title == "" {
		b.WriteString(theme.CardTitle.Render(concept))
	}
	b.WriteString("\n\n")
	b.WriteString(theme.Body.Render(l.Content))

	list := func(heading string, items []string, bullet string) {
		if len(items) == 0 {
			return
		}
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(heading))
		for _, it := range items {
			b.WriteString("\n")
			b.WriteString(theme.Body.Render("  " + bullet + " " + it))
		}
	}
	list("Objectives", l.LearningObjectives, "•")
	list("Examples", l.Examples, "•")
	list("Key takeaways", l.KeyTakeaways, "✓")

	if l.NextSteps != "" {
		b.WriteString("\n\n")
		b.WriteString(theme.Hint.Render("Next: " + l.NextSteps))
	}
	return theme.Card.Width(width).Render(b.String())
}

func (s *LearnScreen) renderExercise(width int) string {
	if s.state.Exercise == nil {
		return ""
	}
	title := theme.CardTitle.Render("Exercise")
	if s.usesTextInput() {
		q := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Width(width).Render(s.state.Exercise.Question)
		return title + "\n" + q + "\n\n" + s.input.View()
	}
	return title + "\n" + s.choice.View(width)
}

func (s *LearnScreen) renderFeedback(width int) string {
	var b strings.Builder
	if s.state.Correct {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Success).Bold(true).Render("Correct!"))
	} else {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Bold(true).Render("Not quite"))
		if s.state.Exercise != nil {
			b.WriteString("  ")
			b.WriteString(theme.Hint.Render("Correct answer: " + s.state.Exercise.CorrectAnswer))
		}
	}
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Width(width).Render(s.state.Feedback))
	if s.state.Exercise != nil && s.state.Exercise.Explanation != "" {
		b.WriteString("\n\n")
		b.WriteString(theme.Hint.Width(width).Render(s.state.Exercise.Explanation))
	}
	b.WriteString("\n\n")
	b.WriteString(theme.Hint.Render("Press Enter for the next concept, Esc to end the session."))
	return b.String()
}

func renderQuitConfirm(width int) string {
	center := func(str string, style lipgloss.Style) string {
		return style.Width(width).Align(lipgloss.Center).Render(str)
	}
	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(center("End this session?", lipgloss.NewStyle().Foreground(theme.Text).Bold(true)))
	b.WriteString("\n")
	b.WriteString(center("Your progress will be saved.", lipgloss.NewStyle().Foreground(theme.TextDim)))
	b.WriteString("\n\n")
	b.WriteString(center("[Y] Yes, end session", lipgloss.NewStyle().Foreground(theme.Success)))
	b.WriteString("\n")
	b.WriteString(center("[N] No, keep going", lipgloss.NewStyle().Foreground(theme.Primary)))
	return b.String()
}

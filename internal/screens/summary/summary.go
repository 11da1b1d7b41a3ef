package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/learnpath/internal/learning"
	"github.com/abhisek/learnpath/internal/router"
	"github.com/abhisek/learnpath/internal/screen"
	"github.com/abhisek/learnpath/internal/ui/components"
	"github.com/abhisek/learnpath/internal/ui/layout"
	"github.com/abhisek/learnpath/internal/ui/theme"
)

// SummaryScreen displays the result of a finished learning session.
type SummaryScreen struct {
	state learning.State
	home  func() screen.Screen
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)
var _ screen.BackHandler = (*SummaryScreen)(nil)

// New creates a SummaryScreen for a final session state. home builds the
// screen shown when the learner leaves the summary.
func New(state learning.State, home func() screen.Screen) *SummaryScreen {
	return &SummaryScreen{state: state, home: home}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Session Summary"
}

func (s *SummaryScreen) HandlesBack() bool { return true }

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Continue"},
		{Key: "Esc", Description: "Dashboard"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			// Rebuild the dashboard so it reloads the finished session.
			return s, router.ResetCmd(s.home())
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	st := s.state
	center := func(str string, style lipgloss.Style) string {
		return style.Width(width).Align(lipgloss.Center).Render(str)
	}

	var b strings.Builder

	b.WriteString(center("Session complete!", lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)))
	b.WriteString("\n\n")

	if st.SessionID != 0 {
		b.WriteString(center(fmt.Sprintf("Session #%d", st.SessionID), lipgloss.NewStyle().Foreground(theme.TextDim)))
		b.WriteString("\n\n")
	}

	bar := components.NewProgressBar("Progress", st.CompletionRate(), true, min(width-8, 60))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
	b.WriteString("\n\n")

	accuracy := "—"
	if st.Answered > 0 {
		accuracy = fmt.Sprintf("%.0f%%", float64(st.CorrectCount)/float64(st.Answered)*100)
	}
	statsLine := fmt.Sprintf("Concepts: %d        Answered: %d        Correct: %d        Accuracy: %s",
		len(st.Covered), st.Answered, st.CorrectCount, accuracy)
	b.WriteString(center(statsLine, lipgloss.NewStyle().Foreground(theme.Text)))
	b.WriteString("\n\n")

	if len(st.Covered) == 0 {
		return b.String()
	}

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", max(min(width-8, 60), 0)))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("Concepts covered")))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	for _, c := range st.Covered {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.Text).Render("  • "+c)))
		b.WriteString("\n")
	}

	return b.String()
}

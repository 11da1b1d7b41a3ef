package history

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/learnpath/internal/router"
	"github.com/abhisek/learnpath/internal/screen"
	"github.com/abhisek/learnpath/internal/store"
	"github.com/abhisek/learnpath/internal/ui/layout"
	"github.com/abhisek/learnpath/internal/ui/theme"
)

// answerLimit bounds how far back the history reaches.
const answerLimit = 200

// AnswerSource reads the local answer log. store.EventRepo satisfies it.
type AnswerSource interface {
	RecentAnswers(ctx context.Context, learnerID int64, limit int) ([]store.AnswerRecord, error)
}

// sessionGroup is the answers given within one learning session.
type sessionGroup struct {
	SessionID int64
	Started   time.Time
	Answers   []store.AnswerRecord
	Correct   int
}

type historyLoadedMsg struct {
	Groups []sessionGroup
	Err    error
}

// HistoryScreen lists past sessions practiced on this machine; Enter
// expands a session into its answers.
type HistoryScreen struct {
	source    AnswerSource
	learnerID int64
	groups    []sessionGroup
	selected  int
	expanded  map[int]bool
	loaded    bool
	errMsg    string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(source AnswerSource, learnerID int64) *HistoryScreen {
	return &HistoryScreen{
		source:    source,
		learnerID: learnerID,
		expanded:  make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return func() tea.Msg {
		records, err := s.source.RecentAnswers(context.Background(), s.learnerID, answerLimit)
		if err != nil {
			return historyLoadedMsg{Err: err}
		}
		return historyLoadedMsg{Groups: groupBySession(records)}
	}
}

// groupBySession keeps the most recent session first. records must be
// ordered most recent first.
func groupBySession(records []store.AnswerRecord) []sessionGroup {
	var groups []sessionGroup
	index := make(map[int64]int)
	for _, rec := range records {
		i, ok := index[rec.SessionID]
		if !ok {
			i = len(groups)
			index[rec.SessionID] = i
			groups = append(groups, sessionGroup{SessionID: rec.SessionID})
		}
		g := &groups[i]
		g.Answers = append(g.Answers, rec)
		g.Started = rec.Timestamp
		if rec.Correct {
			g.Correct++
		}
	}
	return groups
}

func (s *HistoryScreen) Title() string {
	return "Practice History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.groups = msg.Groups
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, router.PopCmd()
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.groups)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
			return s, nil
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.groups) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  Nothing practiced on this machine yet.")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, g := range s.groups {
		accuracy := float64(g.Correct) / float64(len(g.Answers)) * 100

		prefix := "  "
		if i == s.selected {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%sSession #%d  %s  %d answered  %.0f%% correct",
			prefix, g.SessionID, g.Started.Local().Format("Jan 02, 2006 15:04"), len(g.Answers), accuracy)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			for _, a := range g.Answers {
				mark, markStyle := "✓", theme.Correct
				if !a.Correct {
					mark, markStyle = "✗", theme.Incorrect
				}
				detail := fmt.Sprintf("    %s %s: answered %s", mark, a.Concept, a.LearnerAnswer)
				if !a.Correct {
					detail += fmt.Sprintf(" (expected %s)", a.CorrectAnswer)
				}
				b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, markStyle.Render(detail)))
				b.WriteString("\n")
			}
		}
	}

	return b.String()
}

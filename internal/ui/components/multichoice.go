package components

import (
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/learnpath/internal/content"
	"github.com/abhisek/learnpath/internal/ui/theme"
)

// MultiChoice shows an exercise's options and lets the learner pick one
// with the arrows or its number. Options are expected as "A) ..." lines.
type MultiChoice struct {
	Question   string
	Options    []string
	Selected   int
	Submitted  bool
	CorrectKey string
}

// NewMultiChoice creates a new multiple-choice component.
func NewMultiChoice(question string, options []string) MultiChoice {
	return MultiChoice{
		Question: question,
		Options:  options,
	}
}

// Update handles keyboard navigation. Choosing an option does not submit;
// the owning screen calls ChosenKey on Enter.
func (m MultiChoice) Update(msg tea.Msg) MultiChoice {
	if m.Submitted {
		return m
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
	default:
		if n, err := strconv.Atoi(key); err == nil && n >= 1 && n <= len(m.Options) {
			m.Selected = n - 1
		}
	}

	return m
}

// ChosenKey returns the answer key of the selected option.
func (m MultiChoice) ChosenKey() string {
	if m.Selected < 0 || m.Selected >= len(m.Options) {
		return ""
	}
	return content.OptionKey(m.Options[m.Selected])
}

// Reveal freezes the selection and highlights the correct option.
func (m MultiChoice) Reveal(correctKey string) MultiChoice {
	m.Submitted = true
	m.CorrectKey = correctKey
	return m
}

// View renders the question and options.
func (m MultiChoice) View(width int) string {
	questionStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	if width > 0 {
		questionStyle = questionStyle.Width(width)
	}

	var b strings.Builder
	b.WriteString(questionStyle.Render(m.Question))
	b.WriteString("\n\n")

	for i, opt := range m.Options {
		prefix := "  "
		if i == m.Selected && !m.Submitted {
			prefix = "▸ "
		}
		line := prefix + strconv.Itoa(i+1) + ". " + opt
		key := content.OptionKey(opt)

		var style lipgloss.Style
		switch {
		case m.Submitted && strings.EqualFold(key, m.CorrectKey):
			style = theme.Correct
		case m.Submitted && i == m.Selected:
			style = theme.Incorrect
		case m.Submitted:
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		case i == m.Selected:
			style = theme.Selected
		default:
			style = theme.Unselected
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	return b.String()
}

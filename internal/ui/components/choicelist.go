package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/learnpath/internal/ui/theme"
)

// Choice is one entry of a ChoiceList.
type Choice struct {
	Value       string
	Label       string
	Description string
}

// ChoiceList renders a list of choices with a cursor. It only moves the
// cursor; the owning screen decides what selecting or toggling means and
// passes the current selection to View.
type ChoiceList struct {
	Choices []Choice
	Cursor  int
	Multi   bool
}

// NewChoiceList creates a list with the cursor on the first entry.
func NewChoiceList(choices []Choice, multi bool) ChoiceList {
	return ChoiceList{Choices: choices, Multi: multi}
}

// MoveTo places the cursor on the entry with the given value, if present.
func (c ChoiceList) MoveTo(value string) ChoiceList {
	for i, ch := range c.Choices {
		if ch.Value == value {
			c.Cursor = i
		}
	}
	return c
}

// Current returns the entry under the cursor.
func (c ChoiceList) Current() (Choice, bool) {
	if c.Cursor < 0 || c.Cursor >= len(c.Choices) {
		return Choice{}, false
	}
	return c.Choices[c.Cursor], true
}

// Update moves the cursor on up/down.
func (c ChoiceList) Update(msg tea.Msg) ChoiceList {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c
	}
	switch kmsg.String() {
	case "up", "k":
		if c.Cursor > 0 {
			c.Cursor--
		}
	case "down", "j":
		if c.Cursor < len(c.Choices)-1 {
			c.Cursor++
		}
	}
	return c
}

// View renders the list. selected reports whether a value is chosen.
func (c ChoiceList) View(selected func(value string) bool, width int) string {
	descStyle := lipgloss.NewStyle().Foreground(theme.TextDim).PaddingLeft(8)
	if width > 10 {
		descStyle = descStyle.Width(width - 2)
	}

	var b strings.Builder
	for i, ch := range c.Choices {
		marker := "( )"
		if c.Multi {
			marker = "[ ]"
		}
		if selected != nil && selected(ch.Value) {
			if c.Multi {
				marker = "[x]"
			} else {
				marker = "(•)"
			}
		}

		cursor := "  "
		style := theme.Unselected
		if i == c.Cursor {
			cursor = "▸ "
			style = theme.Selected
		}
		b.WriteString(style.Render(cursor + marker + " " + ch.Label))
		b.WriteString("\n")
		if ch.Description != "" {
			b.WriteString(descStyle.Render(ch.Description))
			b.WriteString("\n")
		}
	}
	return b.String()
}

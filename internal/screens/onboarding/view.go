package onboarding

import (
	"fmt"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"

	ob "github.com/abhisek/learnpath/internal/onboarding"
	"github.com/abhisek/learnpath/internal/ui/components"
	"github.com/abhisek/learnpath/internal/ui/theme"
)

var stepTitles = [ob.Steps]string{
	"Tell us about yourself",
	"Choose your learning track",
	"What do you want to achieve?",
	"How do you like to learn?",
}

func (s *OnboardingScreen) View(width, height int) string {
	inner := min(width-4, 80)
	var b strings.Builder

	step := s.state.Step
	b.WriteString(theme.CardTitle.Render(fmt.Sprintf("Step %d of %d", step, ob.Steps)))
	b.WriteString("  ")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(stepTitles[step-1]))
	b.WriteString("\n")
	b.WriteString(components.NewProgressBar("", s.state.Progress(), true, inner).View())
	b.WriteString("\n\n")

	switch step {
	case 1:
		b.WriteString(s.name.View())
		b.WriteString("\n\n")
		b.WriteString(s.email.View())
	case 2:
		b.WriteString(s.niches.View(func(v string) bool { return v == string(s.state.Form.Niche) }, inner))
	case 3:
		b.WriteString(s.goals.View(s.state.Form.HasGoal, inner))
		b.WriteString("\n")
		b.WriteString(s.custom.View())
	case 4:
		b.WriteString(s.viewPreferences(inner))
	}

	if s.state.Submitting {
		b.WriteString("\n\n")
		b.WriteString(theme.Hint.Render("Creating your profile..."))
	}

	body := b.String()
	if s.state.Notice != "" {
		notice := theme.Notice.Width(inner).Render(s.state.Notice + "\n\nPress any key to go back and try again.")
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, notice)
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(body)
}

func (s *OnboardingScreen) viewPreferences(width int) string {
	form := s.state.Form
	section := func(idx int, title string, list components.ChoiceList, selected func(string) bool) string {
		style := lipgloss.NewStyle().Foreground(theme.TextDim)
		if idx == s.section {
			style = theme.Selected
			list.Cursor = max(list.Cursor, 0)
		} else {
			list.Cursor = -1
		}
		return style.Render(title) + "\n" + list.View(selected, width)
	}

	parts := []string{
		section(sectionStyle, "Preferred learning style", s.styles, func(v string) bool { return v == string(form.Style) }),
		section(sectionLevel, "Experience level", s.levels, func(v string) bool { return v == string(form.Level) }),
		section(sectionTime, "Weekly time available", s.times, func(v string) bool { return v == strconv.Itoa(form.WeeklyMinutes) }),
	}
	return strings.Join(parts, "\n")
}

package dashboard

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/learnpath/internal/learner"
	"github.com/abhisek/learnpath/internal/ui/theme"
)

func (d *DashboardScreen) View(width, height int) string {
	inner := max(width-4, 20)
	var sections []string

	greeting := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).
		Render(fmt.Sprintf("Welcome back, %s", d.account.Username))
	track := theme.Hint.Render(fmt.Sprintf("%s · %s · %s",
		d.profile.TargetNiche.Name(), d.profile.ExperienceLevel.Name(), d.profile.PreferredLearningStyle.Name()))
	sections = append(sections, greeting+"  "+track)

	if d.loading {
		sections = append(sections, theme.Hint.Render("Loading your progress..."))
	} else {
		sections = append(sections, d.renderStats(inner))
	}

	left := d.renderGoals() + "\n" + d.renderRecent()
	right := d.renderGaps() + "\n" + d.menu.View()
	colWidth := inner/2 - 1
	columns := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(colWidth).Render(left),
		"  ",
		lipgloss.NewStyle().Width(colWidth).Render(right),
	)
	sections = append(sections, columns)

	if d.notice != "" {
		sections = append(sections, theme.Notice.Render(d.notice))
	}
	if d.quickBusy {
		sections = append(sections, theme.Hint.Render("Generating a quick lesson..."))
	} else if d.quickLesson != nil {
		sections = append(sections, renderQuickLesson(d.quickConcept, d.quickLesson.Title, d.quickLesson.Content, d.quickLesson.KeyTakeaways, inner))
	}

	return lipgloss.NewStyle().Padding(1, 2).MaxHeight(height).Render(strings.Join(sections, "\n\n"))
}

func (d *DashboardScreen) renderStats(width int) string {
	st := d.data.Stats
	cards := []struct{ label, value string }{
		{"Sessions", fmt.Sprintf("%d", st.TotalSessions)},
		{"Time spent", formatMinutes(st.TotalTimeSpentMinutes)},
		{"Completion", fmt.Sprintf("%d%%", st.CompletionRatePercent)},
		{"Streak", fmt.Sprintf("%d days", st.CurrentStreak)},
	}
	if d.stats != nil && d.stats.Answered > 0 {
		cards = append(cards, struct{ label, value string }{
			"Practice accuracy", fmt.Sprintf("%.0f%%", d.stats.Accuracy()*100),
		})
	}

	cardWidth := max(width/len(cards)-2, 12)
	rendered := make([]string, 0, len(cards))
	for _, c := range cards {
		rendered = append(rendered, theme.Card.Width(cardWidth).Padding(0, 1).Render(
			theme.Stat.Render(c.value)+"\n"+theme.Hint.Render(c.label)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (d *DashboardScreen) renderGoals() string {
	var b strings.Builder
	b.WriteString(theme.CardTitle.Render("Your goals"))
	b.WriteString("\n")
	if len(d.profile.LearningGoals) == 0 {
		b.WriteString(theme.Hint.Render("  No goals set"))
		b.WriteString("\n")
	}
	for _, g := range d.profile.LearningGoals {
		// Goal progress has no data source yet.
		b.WriteString(theme.Body.Render("  • "+g) + theme.Hint.Render("  —"))
		b.WriteString("\n")
	}
	return b.String()
}

func (d *DashboardScreen) renderRecent() string {
	var b strings.Builder
	b.WriteString(theme.CardTitle.Render("Recent sessions"))
	b.WriteString("\n")
	if d.data.SessionsErr != nil {
		b.WriteString(theme.Hint.Render("  Sessions unavailable right now"))
		b.WriteString("\n")
		return b.String()
	}
	if len(d.data.Recent) == 0 {
		b.WriteString(theme.Hint.Render("  No sessions yet. Start learning!"))
		b.WriteString("\n")
	}
	for _, s := range d.data.Recent {
		b.WriteString(theme.Body.Render("  " + formatSession(s)))
		b.WriteString("\n")
	}
	return b.String()
}

func (d *DashboardScreen) renderGaps() string {
	var b strings.Builder
	b.WriteString(theme.CardTitle.Render("Focus areas"))
	b.WriteString("\n")
	if len(d.data.KnowledgeGaps) == 0 {
		b.WriteString(theme.Hint.Render("  No knowledge gaps detected"))
		b.WriteString("\n")
	}
	for _, g := range d.data.KnowledgeGaps {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Render("  ! ") + theme.Body.Render(g))
		b.WriteString("\n")
	}
	return b.String()
}

func renderQuickLesson(concept, title, body string, takeaways []string, width int) string {
	var b strings.Builder
	b.WriteString(theme.CardTitle.Render("Quick lesson: " + concept))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(title))
	b.WriteString("\n")
	b.WriteString(theme.Body.Render(body))
	for _, t := range takeaways {
		b.WriteString("\n")
		b.WriteString(theme.Body.Render("  ✓ " + t))
	}
	return theme.Card.Width(width).Render(b.String())
}

// formatSession renders "Mar 4 · 25 min · 80%" for a session row.
func formatSession(s learner.SessionRecord) string {
	date := "unknown date"
	if t, ok := s.StartedAt(); ok {
		date = t.Format("Jan 2 15:04")
	}
	if s.SessionEnd == "" && s.DurationMinutes == nil {
		return fmt.Sprintf("%s · in progress", date)
	}
	return fmt.Sprintf("%s · %s · %d%%", date, formatMinutes(s.Minutes()), int(s.Completion()*100+0.5))
}

func formatMinutes(m int) string {
	if m < 60 {
		return fmt.Sprintf("%d min", m)
	}
	return fmt.Sprintf("%dh %02dm", m/60, m%60)
}

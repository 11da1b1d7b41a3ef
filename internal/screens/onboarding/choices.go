package onboarding

import (
	"fmt"
	"strconv"

	"github.com/abhisek/learnpath/internal/learner"
	"github.com/abhisek/learnpath/internal/ui/components"
)

func nicheChoices() []components.Choice {
	out := make([]components.Choice, 0, len(learner.Niches))
	for _, n := range learner.Niches {
		out = append(out, components.Choice{Value: string(n), Label: n.Name(), Description: n.Description()})
	}
	return out
}

func goalChoices(n learner.Niche) []components.Choice {
	goals := learner.Goals(n)
	out := make([]components.Choice, 0, len(goals))
	for _, g := range goals {
		out = append(out, components.Choice{Value: g, Label: g})
	}
	return out
}

func styleChoices() []components.Choice {
	out := make([]components.Choice, 0, len(learner.LearningStyles))
	for _, s := range learner.LearningStyles {
		out = append(out, components.Choice{Value: string(s), Label: s.Name(), Description: s.Description()})
	}
	return out
}

func levelChoices() []components.Choice {
	out := make([]components.Choice, 0, len(learner.ExperienceLevels))
	for _, l := range learner.ExperienceLevels {
		out = append(out, components.Choice{Value: string(l), Label: l.Name(), Description: l.Description()})
	}
	return out
}

func timeChoices() []components.Choice {
	out := make([]components.Choice, 0, len(learner.WeeklyMinuteOptions))
	for _, m := range learner.WeeklyMinuteOptions {
		out = append(out, components.Choice{Value: strconv.Itoa(m), Label: formatWeekly(m)})
	}
	return out
}

// formatWeekly renders weekly minutes as "2 hours/week" or "2.5 hours/week".
func formatWeekly(minutes int) string {
	if minutes%60 == 0 {
		h := minutes / 60
		if h == 1 {
			return "1 hour/week"
		}
		return fmt.Sprintf("%d hours/week", h)
	}
	return fmt.Sprintf("%.1f hours/week", float64(minutes)/60)
}

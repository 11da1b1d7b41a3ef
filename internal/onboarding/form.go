// Package onboarding implements the four-step sign-up wizard: the form
// value, the per-step validator, the reducer that moves between steps, and
// the submitter that creates the account and learner profile.
package onboarding

import (
	"slices"
	"strings"

	"github.com/abhisek/learnpath/internal/learner"
)

// Steps is the number of wizard steps.
const Steps = 4

// Form holds everything the learner entered during onboarding.
type Form struct {
	Name          string
	Email         string
	Niche         learner.Niche
	Goals         []string // toggle order, no duplicates
	CustomGoal    string
	Style         learner.LearningStyle
	Level         learner.ExperienceLevel
	WeeklyMinutes int
}

// NewForm returns an empty form with the default weekly time.
func NewForm() Form {
	return Form{WeeklyMinutes: learner.DefaultWeeklyMinutes}
}

// HasGoal reports whether goal is currently selected.
func (f Form) HasGoal(goal string) bool {
	return slices.Contains(f.Goals, goal)
}

// clone returns a copy of f that shares no mutable state with it.
func (f Form) clone() Form {
	f.Goals = slices.Clone(f.Goals)
	return f
}

// FinalGoals is the goal list sent to the backend: the selected catalog
// goals followed by the trimmed custom goal, if any.
func FinalGoals(f Form) []string {
	out := slices.Clone(f.Goals)
	if out == nil {
		out = []string{}
	}
	if custom := strings.TrimSpace(f.CustomGoal); custom != "" && !slices.Contains(out, custom) {
		out = append(out, custom)
	}
	return out
}

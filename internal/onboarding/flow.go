package onboarding

import (
	"slices"

	"github.com/abhisek/learnpath/internal/learner"
)

// State is the wizard's full state. Values are never mutated in place;
// Reduce returns a new State.
type State struct {
	Step       int
	Form       Form
	Submitting bool
	Notice     string
}

// NewState returns the initial wizard state: step 1, empty form.
func NewState() State {
	return State{Step: 1, Form: NewForm()}
}

// Progress returns the completed fraction of the wizard (step / Steps).
func (s State) Progress() float64 {
	return float64(s.Step) / Steps
}

// Action is an input to Reduce.
type Action interface {
	action()
}

type (
	SetName          struct{ Value string }
	SetEmail         struct{ Value string }
	SelectNiche      struct{ Niche learner.Niche }
	ToggleGoal       struct{ Goal string }
	SetCustomGoal    struct{ Value string }
	SelectStyle      struct{ Style learner.LearningStyle }
	SelectLevel      struct{ Level learner.ExperienceLevel }
	SetWeeklyMinutes struct{ Minutes int }
	Next             struct{}
	Prev             struct{}
	SubmitStarted    struct{}
	SubmitFailed     struct{ Err error }
	SubmitSucceeded  struct{}
	DismissNotice    struct{}
)

func (SetName) action()          {}
func (SetEmail) action()         {}
func (SelectNiche) action()      {}
func (ToggleGoal) action()       {}
func (SetCustomGoal) action()    {}
func (SelectStyle) action()      {}
func (SelectLevel) action()      {}
func (SetWeeklyMinutes) action() {}
func (Next) action()             {}
func (Prev) action()             {}
func (SubmitStarted) action()    {}
func (SubmitFailed) action()     {}
func (SubmitSucceeded) action()  {}
func (DismissNotice) action()    {}

// Reduce applies a to s and returns the resulting state. While a
// submission is in flight only its outcome is accepted.
func Reduce(s State, a Action) State {
	next := s
	next.Form = s.Form.clone()

	if s.Submitting {
		switch a := a.(type) {
		case SubmitFailed:
			next.Submitting = false
			next.Notice = noticeFor(a.Err)
		case SubmitSucceeded:
			next.Submitting = false
			next.Notice = ""
		}
		return next
	}

	switch a := a.(type) {
	case SetName:
		next.Form.Name = a.Value
	case SetEmail:
		next.Form.Email = a.Value
	case SelectNiche:
		if a.Niche != s.Form.Niche {
			next.Form.Niche = a.Niche
			next.Form.Goals = slices.DeleteFunc(next.Form.Goals, func(g string) bool {
				return !learner.IsCatalogGoal(a.Niche, g)
			})
		}
	case ToggleGoal:
		if i := slices.Index(next.Form.Goals, a.Goal); i >= 0 {
			next.Form.Goals = slices.Delete(next.Form.Goals, i, i+1)
		} else if a.Goal != "" {
			next.Form.Goals = append(next.Form.Goals, a.Goal)
		}
	case SetCustomGoal:
		next.Form.CustomGoal = a.Value
	case SelectStyle:
		next.Form.Style = a.Style
	case SelectLevel:
		next.Form.Level = a.Level
	case SetWeeklyMinutes:
		if learner.ValidWeeklyMinutes(a.Minutes) {
			next.Form.WeeklyMinutes = a.Minutes
		}
	case Next:
		if s.Step < Steps && CanAdvance(s.Step, s.Form) {
			next.Step++
		}
	case Prev:
		if s.Step > 1 {
			next.Step--
		}
	case SubmitStarted:
		if s.Step == Steps && CanSubmit(s.Form) {
			next.Submitting = true
			next.Notice = ""
		}
	case DismissNotice:
		next.Notice = ""
	}
	return next
}

func noticeFor(err error) string {
	if err == nil {
		return "Something went wrong. Please try again."
	}
	return "Could not create your profile: " + err.Error()
}

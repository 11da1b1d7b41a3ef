package onboarding

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/learnpath/internal/learner"
)

func reduceAll(s State, actions ...Action) State {
	for _, a := range actions {
		s = Reduce(s, a)
	}
	return s
}

func completedState() State {
	return reduceAll(NewState(),
		SetName{"Ana"}, SetEmail{"a@x.io"}, Next{},
		SelectNiche{learner.NicheTechCareer}, Next{},
		ToggleGoal{"Learn Python Programming"}, Next{},
		SelectStyle{learner.StyleVisual}, SelectLevel{learner.LevelBeginner},
	)
}

func TestNewState(t *testing.T) {
	s := NewState()
	assert.Equal(t, 1, s.Step)
	assert.Equal(t, learner.DefaultWeeklyMinutes, s.Form.WeeklyMinutes)
	assert.InDelta(t, 0.25, s.Progress(), 1e-9)
}

func TestNextBlockedWhenInvalid(t *testing.T) {
	s := Reduce(NewState(), Next{})
	assert.Equal(t, 1, s.Step)

	s = reduceAll(s, SetName{"Ana"}, Next{})
	assert.Equal(t, 1, s.Step, "email still missing")

	s = reduceAll(s, SetEmail{"a@x.io"}, Next{})
	assert.Equal(t, 2, s.Step)

	s = Reduce(s, Next{})
	assert.Equal(t, 2, s.Step, "niche not chosen")
}

func TestPrevAlwaysAllowed(t *testing.T) {
	s := completedState()
	require.Equal(t, 4, s.Step)

	// Invalidate the form; Prev must still work.
	s = reduceAll(s, SetName{""}, SetEmail{""})
	for want := 3; want >= 1; want-- {
		s = Reduce(s, Prev{})
		assert.Equal(t, want, s.Step)
	}
	s = Reduce(s, Prev{})
	assert.Equal(t, 1, s.Step)
}

func TestNextStopsAtLastStep(t *testing.T) {
	s := Reduce(completedState(), Next{})
	assert.Equal(t, 4, s.Step)
}

func TestReduceDoesNotMutateInput(t *testing.T) {
	before := reduceAll(NewState(), SelectNiche{learner.NicheTechCareer}, ToggleGoal{"Get AWS Certification"})
	snapshot := append([]string(nil), before.Form.Goals...)

	after := reduceAll(before, ToggleGoal{"Learn AI/ML Engineering"}, ToggleGoal{"Get AWS Certification"})

	assert.Equal(t, snapshot, before.Form.Goals)
	assert.Equal(t, []string{"Learn AI/ML Engineering"}, after.Form.Goals)
}

func TestToggleGoalPreservesOrder(t *testing.T) {
	s := reduceAll(NewState(),
		ToggleGoal{"b"}, ToggleGoal{"a"}, ToggleGoal{"c"}, ToggleGoal{"a"}, ToggleGoal{"a"},
	)
	assert.Equal(t, []string{"b", "c", "a"}, s.Form.Goals)
}

func TestChangingNicheDropsForeignGoals(t *testing.T) {
	s := reduceAll(NewState(),
		SelectNiche{learner.NicheTechCareer},
		ToggleGoal{"Learn Python Programming"},
		SetCustomGoal{"my own"},
		SelectNiche{learner.NicheCreatorBusiness},
	)
	assert.Empty(t, s.Form.Goals)
	assert.Equal(t, "my own", s.Form.CustomGoal)

	s = reduceAll(s, ToggleGoal{"Build Personal Brand"}, SelectNiche{learner.NicheCreatorBusiness})
	assert.Equal(t, []string{"Build Personal Brand"}, s.Form.Goals)
}

func TestSetWeeklyMinutesRejectsUnknown(t *testing.T) {
	s := Reduce(NewState(), SetWeeklyMinutes{600})
	assert.Equal(t, 600, s.Form.WeeklyMinutes)
	s = Reduce(s, SetWeeklyMinutes{7})
	assert.Equal(t, 600, s.Form.WeeklyMinutes)
}

func TestSubmitLifecycle(t *testing.T) {
	s := Reduce(NewState(), SubmitStarted{})
	assert.False(t, s.Submitting, "cannot submit before step 4")

	s = Reduce(completedState(), SubmitStarted{})
	require.True(t, s.Submitting)

	// Input is ignored while submitting.
	frozen := reduceAll(s, SetName{"Bob"}, Prev{}, ToggleGoal{"x"}, SubmitStarted{})
	assert.Equal(t, s, frozen)

	failed := Reduce(s, SubmitFailed{Err: errors.New("boom")})
	assert.False(t, failed.Submitting)
	assert.Equal(t, 4, failed.Step)
	assert.Equal(t, s.Form, failed.Form)
	assert.Contains(t, failed.Notice, "boom")

	dismissed := Reduce(failed, DismissNotice{})
	assert.Empty(t, dismissed.Notice)

	ok := Reduce(s, SubmitSucceeded{})
	assert.False(t, ok.Submitting)
	assert.Empty(t, ok.Notice)
}

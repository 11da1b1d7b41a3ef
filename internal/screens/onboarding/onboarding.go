package onboarding

import (
	"context"
	"strconv"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/learnpath/internal/learner"
	ob "github.com/abhisek/learnpath/internal/onboarding"
	"github.com/abhisek/learnpath/internal/router"
	"github.com/abhisek/learnpath/internal/screen"
	"github.com/abhisek/learnpath/internal/ui/components"
	"github.com/abhisek/learnpath/internal/ui/layout"
)

// Submitter creates the account and learner profile.
type Submitter interface {
	Submit(ctx context.Context, f ob.Form) (ob.Result, error)
}

// SessionSaver persists the signed-in identities.
type SessionSaver interface {
	Save(ctx context.Context, acct learner.Account, profile learner.Profile) error
}

// DashboardFactory builds the screen shown after onboarding.
type DashboardFactory func(learner.Account, learner.Profile) screen.Screen

// Step-4 sections cycled with Tab.
const (
	sectionStyle = iota
	sectionLevel
	sectionTime
	sectionCount
)

// OnboardingScreen walks the learner through the four sign-up steps.
type OnboardingScreen struct {
	state     ob.State
	submitter Submitter
	sessions  SessionSaver
	dashboard DashboardFactory
	logger    *zap.Logger

	name   components.TextInput
	email  components.TextInput
	custom components.TextInput

	niches components.ChoiceList
	goals  components.ChoiceList
	styles components.ChoiceList
	levels components.ChoiceList
	times  components.ChoiceList

	// step-local focus
	emailFocused  bool
	customFocused bool
	section       int
}

var _ screen.Screen = (*OnboardingScreen)(nil)
var _ screen.KeyHintProvider = (*OnboardingScreen)(nil)
var _ screen.BackHandler = (*OnboardingScreen)(nil)

// New creates the onboarding screen.
func New(submitter Submitter, sessions SessionSaver, dashboard DashboardFactory, logger *zap.Logger) *OnboardingScreen {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &OnboardingScreen{
		state:     ob.NewState(),
		submitter: submitter,
		sessions:  sessions,
		dashboard: dashboard,
		logger:    logger,
		name:      components.NewTextInput("Name", "Your name", 80),
		email:     components.NewTextInput("Email", "you@example.com", 120),
		custom:    components.NewTextInput("Custom goal", "Or describe your own goal", 120),
		niches:    components.NewChoiceList(nicheChoices(), false),
		styles:    components.NewChoiceList(styleChoices(), false),
		levels:    components.NewChoiceList(levelChoices(), false),
		times:     components.NewChoiceList(timeChoices(), false),
	}
	s.times = s.times.MoveTo(strconv.Itoa(learner.DefaultWeeklyMinutes))
	return s
}

func (s *OnboardingScreen) Init() tea.Cmd {
	return s.name.Focus()
}

func (s *OnboardingScreen) Title() string {
	return "Create your learning path"
}

// HandlesBack keeps Esc from leaving the wizard; Shift+Tab steps back.
func (s *OnboardingScreen) HandlesBack() bool {
	return true
}

// State returns the current wizard state.
func (s *OnboardingScreen) State() ob.State {
	return s.state
}

func (s *OnboardingScreen) KeyHints() []layout.KeyHint {
	if s.state.Notice != "" {
		return []layout.KeyHint{{Key: "any key", Description: "Dismiss"}}
	}
	if s.state.Submitting {
		return []layout.KeyHint{{Key: "", Description: "Creating your profile..."}}
	}
	var hints []layout.KeyHint
	switch s.state.Step {
	case 1:
		hints = append(hints, layout.KeyHint{Key: "Tab", Description: "Next field"})
	case 2:
		hints = append(hints, layout.KeyHint{Key: "↑↓", Description: "Move"}, layout.KeyHint{Key: "Space", Description: "Select"})
	case 3:
		hints = append(hints, layout.KeyHint{Key: "↑↓", Description: "Move"}, layout.KeyHint{Key: "Space", Description: "Toggle"})
	case 4:
		hints = append(hints, layout.KeyHint{Key: "Tab", Description: "Next section"}, layout.KeyHint{Key: "Space", Description: "Select"})
	}
	if s.state.Step > 1 {
		hints = append(hints, layout.KeyHint{Key: "Shift+Tab", Description: "Back"})
	}
	if s.state.Step < ob.Steps {
		hints = append(hints, layout.KeyHint{Key: "Enter", Description: dimIf("Next", !ob.CanAdvance(s.state.Step, s.state.Form))})
	} else {
		hints = append(hints, layout.KeyHint{Key: "Enter", Description: dimIf("Create profile", !ob.CanSubmit(s.state.Form))})
	}
	return hints
}

func dimIf(label string, blocked bool) string {
	if blocked {
		return label + " (complete this step)"
	}
	return label
}

func (s *OnboardingScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case submitDoneMsg:
		return s.handleSubmitDone(msg)
	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}

	// Cursor blink and other input messages.
	return s, s.updateFocusedInput(msg)
}

func (s *OnboardingScreen) dispatch(a ob.Action) {
	s.state = ob.Reduce(s.state, a)
}

func (s *OnboardingScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	if s.state.Submitting {
		return s, nil
	}
	if s.state.Notice != "" {
		s.dispatch(ob.DismissNotice{})
		return s, nil
	}

	switch msg.String() {
	case "shift+tab":
		return s, s.prev()
	}

	switch s.state.Step {
	case 1:
		return s, s.keyIdentity(msg)
	case 2:
		return s, s.keyNiche(msg)
	case 3:
		return s, s.keyGoals(msg)
	case 4:
		return s, s.keyPreferences(msg)
	}
	return s, nil
}

func (s *OnboardingScreen) next() tea.Cmd {
	before := s.state.Step
	s.dispatch(ob.Next{})
	if s.state.Step == before {
		return nil
	}
	return s.enterStep()
}

func (s *OnboardingScreen) prev() tea.Cmd {
	before := s.state.Step
	s.dispatch(ob.Prev{})
	if s.state.Step == before {
		return nil
	}
	return s.enterStep()
}

// enterStep resets focus for the current step.
func (s *OnboardingScreen) enterStep() tea.Cmd {
	s.name.Blur()
	s.email.Blur()
	s.custom.Blur()
	s.customFocused = false
	s.section = sectionStyle

	switch s.state.Step {
	case 1:
		if s.emailFocused {
			return s.email.Focus()
		}
		return s.name.Focus()
	case 2:
		s.niches = s.niches.MoveTo(string(s.state.Form.Niche))
	case 3:
		s.goals = components.NewChoiceList(goalChoices(s.state.Form.Niche), true)
	}
	return nil
}

func (s *OnboardingScreen) keyIdentity(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "tab", "down", "up":
		s.emailFocused = !s.emailFocused
		return s.enterStep()
	case "enter":
		if !s.emailFocused {
			s.emailFocused = true
			return s.enterStep()
		}
		return s.next()
	}
	return s.updateFocusedInput(msg)
}

func (s *OnboardingScreen) keyNiche(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "space", " ":
		s.selectNiche()
		return nil
	case "enter", "tab":
		if !s.state.Form.Niche.Valid() {
			s.selectNiche()
		}
		return s.next()
	}
	s.niches = s.niches.Update(msg)
	return nil
}

func (s *OnboardingScreen) selectNiche() {
	if c, ok := s.niches.Current(); ok {
		s.dispatch(ob.SelectNiche{Niche: learner.ParseNiche(c.Value)})
	}
}

func (s *OnboardingScreen) keyGoals(msg tea.KeyPressMsg) tea.Cmd {
	key := msg.String()
	switch key {
	case "enter", "tab":
		return s.next()
	}

	if s.customFocused {
		if key == "up" {
			s.customFocused = false
			s.custom.Blur()
			return nil
		}
		return s.updateFocusedInput(msg)
	}

	switch key {
	case "space", " ":
		if c, ok := s.goals.Current(); ok {
			s.dispatch(ob.ToggleGoal{Goal: c.Value})
		}
		return nil
	case "down", "j":
		if s.goals.Cursor >= len(s.goals.Choices)-1 {
			s.customFocused = true
			return s.custom.Focus()
		}
	}
	s.goals = s.goals.Update(msg)
	return nil
}

func (s *OnboardingScreen) keyPreferences(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "tab":
		s.section = (s.section + 1) % sectionCount
		return nil
	case "space", " ":
		s.selectPreference()
		return nil
	case "enter":
		return s.submit()
	}

	switch s.section {
	case sectionStyle:
		s.styles = s.styles.Update(msg)
	case sectionLevel:
		s.levels = s.levels.Update(msg)
	case sectionTime:
		s.times = s.times.Update(msg)
	}
	return nil
}

func (s *OnboardingScreen) selectPreference() {
	switch s.section {
	case sectionStyle:
		if c, ok := s.styles.Current(); ok {
			s.dispatch(ob.SelectStyle{Style: learner.ParseLearningStyle(c.Value)})
		}
	case sectionLevel:
		if c, ok := s.levels.Current(); ok {
			s.dispatch(ob.SelectLevel{Level: learner.ParseExperienceLevel(c.Value)})
		}
	case sectionTime:
		if c, ok := s.times.Current(); ok {
			if m, err := strconv.Atoi(c.Value); err == nil {
				s.dispatch(ob.SetWeeklyMinutes{Minutes: m})
			}
		}
	}
}

// updateFocusedInput forwards msg to the focused text input and mirrors
// its value into the form.
func (s *OnboardingScreen) updateFocusedInput(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch {
	case s.state.Step == 1 && !s.emailFocused:
		s.name, cmd = s.name.Update(msg)
		if s.name.Value() != s.state.Form.Name {
			s.dispatch(ob.SetName{Value: s.name.Value()})
		}
	case s.state.Step == 1 && s.emailFocused:
		s.email, cmd = s.email.Update(msg)
		if s.email.Value() != s.state.Form.Email {
			s.dispatch(ob.SetEmail{Value: s.email.Value()})
		}
	case s.state.Step == 3 && s.customFocused:
		s.custom, cmd = s.custom.Update(msg)
		if s.custom.Value() != s.state.Form.CustomGoal {
			s.dispatch(ob.SetCustomGoal{Value: s.custom.Value()})
		}
	}
	return cmd
}

func (s *OnboardingScreen) submit() tea.Cmd {
	s.dispatch(ob.SubmitStarted{})
	if !s.state.Submitting {
		return nil
	}

	form := s.state.Form
	return func() tea.Msg {
		// Each backend call carries its own timeout.
		ctx := context.Background()
		res, err := s.submitter.Submit(ctx, form)
		if err != nil {
			return submitDoneMsg{Err: err}
		}
		if err := s.sessions.Save(ctx, res.Account, res.Learner); err != nil {
			// The profile exists on the backend; only the local sign-in is lost.
			s.logger.Error("save session failed", zap.Error(err))
		}
		return submitDoneMsg{Result: res}
	}
}

func (s *OnboardingScreen) handleSubmitDone(msg submitDoneMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.dispatch(ob.SubmitFailed{Err: msg.Err})
		return s, nil
	}
	s.dispatch(ob.SubmitSucceeded{})
	return s, router.ResetCmd(s.dashboard(msg.Result.Account, msg.Result.Learner))
}

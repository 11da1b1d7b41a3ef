package learn

import (
	"context"
	"errors"
	"time"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/learnpath/internal/learning"
	"github.com/abhisek/learnpath/internal/router"
	"github.com/abhisek/learnpath/internal/screen"
	"github.com/abhisek/learnpath/internal/screens/summary"
	"github.com/abhisek/learnpath/internal/ui/components"
	"github.com/abhisek/learnpath/internal/ui/layout"
)

const spinnerInterval = 120 * time.Millisecond

// Runner is the session driver the screen talks to. *learning.Runner
// satisfies it.
type Runner interface {
	Snapshot() learning.State
	Start(ctx context.Context, sessionID int64) error
	GenerateNext(ctx context.Context) error
	SubmitAnswer(ctx context.Context, answer string) error
	Continue(ctx context.Context) error
	End(ctx context.Context) learning.State
}

// LearnScreen runs one interactive learning session.
type LearnScreen struct {
	runner    Runner
	sessionID int64
	home      func() screen.Screen
	logger    *zap.Logger

	state       learning.State
	busy        bool
	ending      bool
	confirmQuit bool
	spinner     int
	ticking     bool

	choice components.MultiChoice
	input  components.TextInput
}

var _ screen.Screen = (*LearnScreen)(nil)
var _ screen.KeyHintProvider = (*LearnScreen)(nil)
var _ screen.BackHandler = (*LearnScreen)(nil)

// New creates a learning screen. sessionID 0 opens a new session, any
// other value resumes it. home builds the screen shown after the summary.
func New(runner Runner, sessionID int64, home func() screen.Screen, logger *zap.Logger) *LearnScreen {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LearnScreen{
		runner:    runner,
		sessionID: sessionID,
		home:      home,
		logger:    logger,
		state:     runner.Snapshot(),
	}
}

func (s *LearnScreen) Init() tea.Cmd {
	return s.startSession()
}

func (s *LearnScreen) Title() string {
	return "Learning Session"
}

func (s *LearnScreen) HandlesBack() bool { return true }

func (s *LearnScreen) KeyHints() []layout.KeyHint {
	if s.confirmQuit {
		return []layout.KeyHint{
			{Key: "Y", Description: "End session"},
			{Key: "N", Description: "Keep going"},
		}
	}
	hints := []layout.KeyHint{}
	switch {
	case s.busy:
	case s.state.Phase == learning.PhaseIdle, s.state.Phase == learning.PhaseAwaitingContent:
		hints = append(hints, layout.KeyHint{Key: "r", Description: "Retry"})
	case s.state.Phase == learning.PhaseContentReady:
		if !s.usesTextInput() {
			hints = append(hints, layout.KeyHint{Key: "↑↓", Description: "Choose"})
		}
		hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Submit"})
	case s.state.Phase == learning.PhaseFeedbackShown:
		hints = append(hints, layout.KeyHint{Key: "Enter/c", Description: "Next concept"})
	}
	endKey := "Esc"
	if s.canEndWithKey() {
		endKey = "e/Esc"
	}
	return append(hints, layout.KeyHint{Key: endKey, Description: "End session"})
}

func (s *LearnScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case startedMsg:
		s.refresh()
		if msg.Err != nil {
			s.busy = false
			return s, nil
		}
		return s, s.generate()

	case contentMsg:
		s.busy = false
		s.refresh()
		if msg.Err == nil {
			s.prepareAnswer()
		}
		return s, s.focusCmd()

	case feedbackMsg:
		s.busy = false
		s.refresh()
		if msg.Err == nil && s.state.Exercise != nil {
			s.choice = s.choice.Reveal(s.state.Exercise.CorrectAnswer)
			s.input.Blur()
		}
		return s, nil

	case endedMsg:
		s.busy = false
		s.state = msg.State
		return s, router.ReplaceCmd(summary.New(msg.State, s.home))

	case spinnerTickMsg:
		if !s.busy {
			s.ticking = false
			return s, nil
		}
		s.spinner++
		return s, spinnerTick()

	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}

	if s.usesTextInput() && s.state.Phase == learning.PhaseContentReady && !s.busy {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *LearnScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.ending {
		return s, nil
	}

	if s.confirmQuit {
		switch key {
		case "y", "Y":
			s.confirmQuit = false
			return s, s.end()
		case "n", "N", "esc":
			s.confirmQuit = false
		}
		return s, nil
	}

	if key == "esc" {
		if s.state.Phase == learning.PhaseIdle && !s.busy {
			// Nothing was opened on the backend.
			return s, router.PopCmd()
		}
		s.confirmQuit = true
		return s, nil
	}

	if s.busy {
		return s, nil
	}

	if key == "e" && s.canEndWithKey() {
		s.confirmQuit = true
		return s, nil
	}

	switch s.state.Phase {
	case learning.PhaseIdle:
		if key == "r" {
			return s, s.startSession()
		}

	case learning.PhaseAwaitingContent:
		if key == "r" {
			return s, s.generate()
		}

	case learning.PhaseContentReady:
		if key == "enter" {
			return s, s.submit()
		}
		if s.usesTextInput() {
			var cmd tea.Cmd
			s.input, cmd = s.input.Update(msg)
			return s, cmd
		}
		s.choice = s.choice.Update(msg)

	case learning.PhaseFeedbackShown:
		switch key {
		case "enter", "c":
			return s, s.next()
		}
	}
	return s, nil
}

// canEndWithKey reports whether "e" ends the session: a session is open
// and no text input would take the keystroke.
func (s *LearnScreen) canEndWithKey() bool {
	switch s.state.Phase {
	case learning.PhaseAwaitingContent, learning.PhaseFeedbackShown:
		return true
	case learning.PhaseContentReady:
		return !s.usesTextInput()
	}
	return false
}

func (s *LearnScreen) refresh() {
	s.state = s.runner.Snapshot()
}

// prepareAnswer resets the answer widgets for the freshly loaded exercise.
func (s *LearnScreen) prepareAnswer() {
	ex := s.state.Exercise
	if ex == nil {
		return
	}
	s.choice = components.NewMultiChoice(ex.Question, ex.Options)
	s.input = components.NewTextInput("Your answer", "Type your answer...", 200)
}

// usesTextInput reports whether the exercise has no options to choose from.
func (s *LearnScreen) usesTextInput() bool {
	return s.state.Exercise != nil && len(s.state.Exercise.Options) == 0
}

func (s *LearnScreen) focusCmd() tea.Cmd {
	if s.usesTextInput() && s.state.Phase == learning.PhaseContentReady {
		return s.input.Focus()
	}
	return nil
}

func (s *LearnScreen) answer() string {
	if s.usesTextInput() {
		return s.input.Value()
	}
	return s.choice.ChosenKey()
}

func (s *LearnScreen) startSession() tea.Cmd {
	runner, id := s.runner, s.sessionID
	return tea.Batch(func() tea.Msg {
		return startedMsg{Err: runner.Start(context.Background(), id)}
	}, s.setBusy())
}

func (s *LearnScreen) generate() tea.Cmd {
	runner := s.runner
	return tea.Batch(func() tea.Msg {
		return contentMsg{Err: runner.GenerateNext(context.Background())}
	}, s.setBusy())
}

func (s *LearnScreen) submit() tea.Cmd {
	answer := s.answer()
	if answer == "" {
		return nil
	}
	runner := s.runner
	return tea.Batch(func() tea.Msg {
		return feedbackMsg{Err: runner.SubmitAnswer(context.Background(), answer)}
	}, s.setBusy())
}

func (s *LearnScreen) next() tea.Cmd {
	runner, logger := s.runner, s.logger
	return tea.Batch(func() tea.Msg {
		err := runner.Continue(context.Background())
		if errors.Is(err, learning.ErrWrongPhase) {
			logger.Debug("continue ignored", zap.Error(err))
		}
		return contentMsg{Err: err}
	}, s.setBusy())
}

func (s *LearnScreen) end() tea.Cmd {
	s.ending = true
	runner := s.runner
	return tea.Batch(func() tea.Msg {
		return endedMsg{State: runner.End(context.Background())}
	}, s.setBusy())
}

// setBusy marks an operation in flight and starts the spinner unless a
// tick is already pending.
func (s *LearnScreen) setBusy() tea.Cmd {
	s.busy = true
	if s.ticking {
		return nil
	}
	s.ticking = true
	return spinnerTick()
}

func spinnerTick() tea.Cmd {
	return tea.Tick(spinnerInterval, func(t time.Time) tea.Msg {
		return spinnerTickMsg(t)
	})
}

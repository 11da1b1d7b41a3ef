package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/learnpath/internal/router"
	"github.com/abhisek/learnpath/internal/screen"
	"github.com/abhisek/learnpath/internal/ui/layout"
	"github.com/abhisek/learnpath/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	phase1End    = 500 * time.Millisecond
	phase2End    = 1500 * time.Millisecond
	totalDur     = 2500 * time.Millisecond
)

// features are revealed one by one under the banner.
var features = []string{
	"Personalized lessons generated for your goals",
	"Practice exercises with instant feedback",
	"Track sessions, time spent and knowledge gaps",
}

type tickMsg time.Time

// WelcomeScreen is the landing screen shown to signed-out users. Any key
// starts onboarding; q quits.
type WelcomeScreen struct {
	onboardingFactory func() screen.Screen
	elapsed           time.Duration
	transitioned      bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)
var _ screen.KeyHintProvider = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that moves to the screen produced by onboardingFactory.
func New(onboardingFactory func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{
		onboardingFactory: onboardingFactory,
	}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "any key", Description: "Get started"},
		{Key: "q", Description: "Quit"},
	}
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if w.elapsed >= totalDur {
			return w, nil
		}
		w.elapsed += tickInterval
		if w.elapsed >= totalDur {
			return w, nil
		}
		return w, tick()

	case tea.KeyPressMsg:
		if msg.String() == "q" {
			return w, tea.Quit
		}
		return w, w.transition()
	}

	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	return router.ReplaceCmd(w.onboardingFactory())
}

// visibleFeatures returns how many feature lines are revealed so far.
func (w *WelcomeScreen) visibleFeatures() int {
	if w.elapsed < phase1End {
		return 0
	}
	step := (phase2End - phase1End) / time.Duration(len(features))
	n := int((w.elapsed-phase1End)/step) + 1
	return min(n, len(features))
}

func (w *WelcomeScreen) View(width, height int) string {
	sections := []string{RenderBanner(width), ""}

	tagline := lipgloss.NewStyle().
		Foreground(theme.Text).
		Bold(true).
		Render("Your AI-guided learning path")
	sections = append(sections, tagline, "")

	bullet := lipgloss.NewStyle().Foreground(theme.Secondary).Render("✓ ")
	for _, f := range features[:w.visibleFeatures()] {
		sections = append(sections, bullet+theme.Body.Render(f))
	}

	if w.elapsed >= phase2End {
		sections = append(sections, "", theme.Hint.Render("press any key to get started"))
	}

	content := strings.Join(sections, "\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

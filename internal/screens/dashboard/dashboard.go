package dashboard

import (
	"context"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/learnpath/internal/content"
	dash "github.com/abhisek/learnpath/internal/dashboard"
	"github.com/abhisek/learnpath/internal/learner"
	"github.com/abhisek/learnpath/internal/router"
	"github.com/abhisek/learnpath/internal/screen"
	"github.com/abhisek/learnpath/internal/store"
	"github.com/abhisek/learnpath/internal/ui/components"
	"github.com/abhisek/learnpath/internal/ui/layout"
)

// Loader is the dashboard data source.
type Loader interface {
	Load(ctx context.Context, learnerID int64) dash.Data
	QuickLesson(ctx context.Context, learnerID int64, concept string) (*content.Lesson, error)
}

// StatsSource reports locally recorded practice. It may be nil.
type StatsSource interface {
	AnswerStats(ctx context.Context, learnerID int64) (store.AnswerStats, error)
}

// LearnFactory builds a learning screen; sessionID 0 starts a new session.
type LearnFactory func(sessionID int64) screen.Screen

type dataLoadedMsg struct {
	Data  dash.Data
	Local *store.AnswerStats
}

type quickLessonMsg struct {
	Concept string
	Lesson  *content.Lesson
	Err     error
}

// DashboardScreen is the signed-in home screen.
type DashboardScreen struct {
	account learner.Account
	profile learner.Profile

	loader  Loader
	local   StatsSource
	learn   LearnFactory
	history func() screen.Screen
	logout  func() tea.Cmd
	logger  *zap.Logger

	loading bool
	data    dash.Data
	stats   *store.AnswerStats
	menu    components.Menu

	quickConcept string
	quickLesson  *content.Lesson
	quickBusy    bool
	quickCount   int
	notice       string
}

var _ screen.Screen = (*DashboardScreen)(nil)
var _ screen.KeyHintProvider = (*DashboardScreen)(nil)
var _ screen.UserProvider = (*DashboardScreen)(nil)

// New creates a dashboard for the signed-in learner. local and history
// may be nil.
func New(acct learner.Account, profile learner.Profile, loader Loader, local StatsSource, learn LearnFactory, history func() screen.Screen, logout func() tea.Cmd, logger *zap.Logger) *DashboardScreen {
	if logger == nil {
		logger = zap.NewNop()
	}
	d := &DashboardScreen{
		account: acct,
		profile: profile,
		loader:  loader,
		local:   local,
		learn:   learn,
		history: history,
		logout:  logout,
		logger:  logger,
		loading: true,
	}
	d.menu = components.NewMenu(d.menuItems())
	return d
}

func (d *DashboardScreen) Init() tea.Cmd {
	return d.load()
}

func (d *DashboardScreen) Title() string {
	return "Dashboard"
}

func (d *DashboardScreen) User() string {
	return d.account.Username
}

func (d *DashboardScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "r", Description: "Refresh"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// resumable returns the most recent session if it has not been ended.
func (d *DashboardScreen) resumable() (learner.SessionRecord, bool) {
	if len(d.data.Recent) == 0 {
		return learner.SessionRecord{}, false
	}
	last := d.data.Recent[0]
	return last, last.SessionEnd == ""
}

func (d *DashboardScreen) menuItems() []components.MenuItem {
	last, canResume := d.resumable()
	return []components.MenuItem{
		{Label: "Start learning", Hint: "new session", Action: func() tea.Cmd {
			return router.PushCmd(d.learn(0))
		}},
		{Label: "Resume last session", Disabled: !canResume, Action: func() tea.Cmd {
			return router.PushCmd(d.learn(last.ID))
		}},
		{Label: "Quick lesson", Hint: "a short lesson right here", Action: d.startQuickLesson},
		{Label: "Practice history", Disabled: d.history == nil, Action: func() tea.Cmd {
			return router.PushCmd(d.history())
		}},
		{Label: "Refresh", Action: d.load},
		{Label: "Log out", Action: d.logout},
		{Label: "Quit", Action: func() tea.Cmd { return tea.Quit }},
	}
}

func (d *DashboardScreen) rebuildMenu() {
	selected := d.menu.Selected
	d.menu = components.NewMenu(d.menuItems())
	if selected < len(d.menu.Items) && !d.menu.Items[selected].Disabled {
		d.menu.Selected = selected
	}
}

func (d *DashboardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case dataLoadedMsg:
		d.loading = false
		d.data = msg.Data
		d.stats = msg.Local
		d.rebuildMenu()
		return d, nil

	case quickLessonMsg:
		d.quickBusy = false
		if msg.Err != nil {
			d.notice = "Could not generate a lesson: " + msg.Err.Error()
			return d, nil
		}
		d.notice = ""
		d.quickConcept = msg.Concept
		d.quickLesson = msg.Lesson
		return d, nil

	case tea.KeyPressMsg:
		if msg.String() == "r" {
			return d, d.load()
		}
		var cmd tea.Cmd
		d.menu, cmd = d.menu.Update(msg)
		return d, cmd
	}
	return d, nil
}

func (d *DashboardScreen) load() tea.Cmd {
	d.loading = true
	learnerID := d.profile.ID
	return func() tea.Msg {
		ctx := context.Background()
		msg := dataLoadedMsg{Data: d.loader.Load(ctx, learnerID)}
		if d.local != nil {
			st, err := d.local.AnswerStats(ctx, learnerID)
			if err != nil {
				d.logger.Warn("load local stats failed", zap.Error(err))
			} else {
				msg.Local = &st
			}
		}
		return msg
	}
}

// nextQuickConcept prefers the learner's knowledge gaps, then cycles
// through the niche's concepts.
func (d *DashboardScreen) nextQuickConcept() string {
	pool := d.data.KnowledgeGaps
	if len(pool) == 0 {
		pool = learner.Concepts(d.profile.TargetNiche)
	}
	c := pool[d.quickCount%len(pool)]
	d.quickCount++
	return c
}

func (d *DashboardScreen) startQuickLesson() tea.Cmd {
	if d.quickBusy {
		return nil
	}
	d.quickBusy = true
	d.notice = ""
	concept := d.nextQuickConcept()
	learnerID := d.profile.ID
	return func() tea.Msg {
		lesson, err := d.loader.QuickLesson(context.Background(), learnerID, concept)
		return quickLessonMsg{Concept: concept, Lesson: lesson, Err: err}
	}
}

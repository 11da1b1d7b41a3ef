package app

import (
	"context"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/learnpath/internal/api"
	"github.com/abhisek/learnpath/internal/dashboard"
	"github.com/abhisek/learnpath/internal/learner"
	"github.com/abhisek/learnpath/internal/learning"
	ob "github.com/abhisek/learnpath/internal/onboarding"
	"github.com/abhisek/learnpath/internal/router"
	"github.com/abhisek/learnpath/internal/screen"
	dashscreen "github.com/abhisek/learnpath/internal/screens/dashboard"
	"github.com/abhisek/learnpath/internal/screens/history"
	"github.com/abhisek/learnpath/internal/screens/learn"
	"github.com/abhisek/learnpath/internal/screens/onboarding"
	"github.com/abhisek/learnpath/internal/screens/welcome"
	"github.com/abhisek/learnpath/internal/store"
)

// factory builds screens with their dependencies wired in. Screens only
// know the constructors they are handed, never each other.
type factory struct {
	client *api.Client
	store  *store.Store
	loader *dashboard.Loader
	logger *zap.Logger
}

func newFactory(opts Options) *factory {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &factory{
		client: opts.Client,
		store:  opts.Store,
		loader: dashboard.NewLoader(opts.Client, logger.Named("dashboard")),
		logger: logger,
	}
}

func (f *factory) welcome() screen.Screen {
	return welcome.New(f.onboarding)
}

func (f *factory) onboarding() screen.Screen {
	submitter := &ob.Submitter{Backend: f.client, Logger: f.logger.Named("onboarding")}
	return onboarding.New(submitter, f.store.Sessions(), f.dashboard, f.logger.Named("onboarding"))
}

func (f *factory) dashboard(acct learner.Account, profile learner.Profile) screen.Screen {
	learnFactory := func(sessionID int64) screen.Screen {
		return f.learn(acct, profile, sessionID)
	}
	historyFactory := func() screen.Screen {
		return history.New(f.store.Events(), profile.ID)
	}
	return dashscreen.New(acct, profile, f.loader, f.store.Events(), learnFactory, historyFactory, f.logout, f.logger.Named("dashboard"))
}

func (f *factory) learn(acct learner.Account, profile learner.Profile, sessionID int64) screen.Screen {
	logger := f.logger.Named("learning").With(zap.Int64("learner_id", profile.ID))
	svc := learning.NewService(f.client, learning.WithLogger(logger))
	runner := learning.NewRunner(svc, profile, f.store.Events(), logger)
	home := func() screen.Screen { return f.dashboard(acct, profile) }
	return learn.New(runner, sessionID, home, logger)
}

// logout forgets the saved identities and returns to the welcome screen.
func (f *factory) logout() tea.Cmd {
	return func() tea.Msg {
		if err := f.store.Sessions().Clear(context.Background()); err != nil {
			f.logger.Warn("clear saved identities failed", zap.Error(err))
		} else {
			f.logger.Info("logged out")
		}
		return router.ResetScreenMsg{Screen: f.welcome()}
	}
}

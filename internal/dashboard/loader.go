package dashboard

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/abhisek/learnpath/internal/api"
	"github.com/abhisek/learnpath/internal/content"
	"github.com/abhisek/learnpath/internal/learner"
)

// Backend is the subset of the API client the dashboard reads from.
type Backend interface {
	ListSessions(ctx context.Context, learnerID int64) ([]learner.SessionRecord, error)
	KnowledgeGaps(ctx context.Context, learnerID int64) ([]string, error)
	GenerateContent(ctx context.Context, learnerID int64, req api.GenerateRequest) (*api.GeneratedContent, error)
}

// Data is everything the dashboard renders.
type Data struct {
	Recent        []learner.SessionRecord
	Stats         Stats
	KnowledgeGaps []string

	// SessionsErr and GapsErr record fetch failures; the matching fields
	// are left empty.
	SessionsErr error
	GapsErr     error
}

// Loader fetches dashboard data.
type Loader struct {
	backend Backend
	logger  *zap.Logger
}

// NewLoader creates a Loader.
func NewLoader(b Backend, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{backend: b, logger: logger}
}

// Load fetches sessions and knowledge gaps concurrently. Failures are
// logged and leave their part of Data empty; Load itself never fails.
func (l *Loader) Load(ctx context.Context, learnerID int64) Data {
	var (
		sessions    []learner.SessionRecord
		gaps        []string
		sessionsErr error
		gapsErr     error
	)

	var g errgroup.Group
	g.Go(func() error {
		sessions, sessionsErr = l.backend.ListSessions(ctx, learnerID)
		return nil
	})
	g.Go(func() error {
		gaps, gapsErr = l.backend.KnowledgeGaps(ctx, learnerID)
		return nil
	})
	_ = g.Wait()

	log := l.logger.With(zap.Int64("learner_id", learnerID))
	if sessionsErr != nil {
		log.Warn("load sessions failed", zap.Error(sessionsErr))
		sessions = nil
	}
	if gapsErr != nil {
		log.Warn("load knowledge gaps failed", zap.Error(gapsErr))
		gaps = nil
	}
	if gaps == nil {
		gaps = []string{}
	}

	return Data{
		Recent:        Recent(sessions),
		Stats:         DeriveStats(sessions),
		KnowledgeGaps: gaps,
		SessionsErr:   sessionsErr,
		GapsErr:       gapsErr,
	}
}

// QuickLesson generates a single lesson on concept for inline display.
func (l *Loader) QuickLesson(ctx context.Context, learnerID int64, concept string) (*content.Lesson, error) {
	gc, err := l.backend.GenerateContent(ctx, learnerID, api.GenerateRequest{
		Concept:     concept,
		ContentType: content.TypeLesson,
	})
	if err != nil {
		l.logger.Warn("quick lesson failed", zap.String("concept", concept), zap.Error(err))
		return nil, fmt.Errorf("quick lesson: %w", err)
	}
	lesson, err := content.DecodeLesson(gc.GeneratedContent)
	if err != nil {
		return nil, fmt.Errorf("quick lesson: %w", err)
	}
	return lesson, nil
}

package learning

import (
	"context"
	"fmt"
	"math/rand/v2"

	"go.uber.org/zap"

	"github.com/abhisek/learnpath/internal/api"
	"github.com/abhisek/learnpath/internal/content"
	"github.com/abhisek/learnpath/internal/learner"
)

// Backend is the subset of the API client a session needs.
type Backend interface {
	StartSession(ctx context.Context, learnerID int64) (*learner.SessionRecord, error)
	ListSessions(ctx context.Context, learnerID int64) ([]learner.SessionRecord, error)
	EndSession(ctx context.Context, learnerID, sessionID int64, completionRate float64) error
	GenerateContent(ctx context.Context, learnerID int64, req api.GenerateRequest) (*api.GeneratedContent, error)
	Feedback(ctx context.Context, learnerID int64, req api.FeedbackRequest) (string, error)
}

// Content is one generated lesson + exercise pair.
type Content struct {
	Concept  string
	Lesson   *content.Lesson
	Exercise *content.Exercise
}

// Service performs the network side of a session.
type Service struct {
	backend Backend
	logger  *zap.Logger
	intn    func(n int) int
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithIntn replaces the random source used to pick concepts.
func WithIntn(f func(n int) int) ServiceOption {
	return func(s *Service) { s.intn = f }
}

// WithLogger sets the service logger.
func WithLogger(l *zap.Logger) ServiceOption {
	return func(s *Service) { s.logger = l }
}

// NewService creates a Service.
func NewService(b Backend, opts ...ServiceOption) *Service {
	s := &Service{backend: b, logger: zap.NewNop(), intn: rand.IntN}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start opens a new session when sessionID is 0; otherwise it resumes the
// existing session, which must belong to the learner.
func (s *Service) Start(ctx context.Context, learnerID, sessionID int64) (learner.SessionRecord, error) {
	if sessionID == 0 {
		rec, err := s.backend.StartSession(ctx, learnerID)
		if err != nil {
			return learner.SessionRecord{}, fmt.Errorf("start session: %w", err)
		}
		return *rec, nil
	}

	sessions, err := s.backend.ListSessions(ctx, learnerID)
	if err != nil {
		return learner.SessionRecord{}, fmt.Errorf("resume session: %w", err)
	}
	for _, rec := range sessions {
		if rec.ID == sessionID {
			return rec, nil
		}
	}
	return learner.SessionRecord{}, fmt.Errorf("resume session %d: %w", sessionID, ErrSessionNotFound)
}

// PickConcept chooses a concept uniformly from the niche's list.
func (s *Service) PickConcept(n learner.Niche) string {
	concepts := learner.Concepts(n)
	return concepts[s.intn(len(concepts))]
}

// Generate requests a lesson and then a multiple-choice exercise for
// concept. Both payloads are schema-checked.
func (s *Service) Generate(ctx context.Context, learnerID int64, concept string) (Content, error) {
	gl, err := s.backend.GenerateContent(ctx, learnerID, api.GenerateRequest{
		Concept:     concept,
		ContentType: content.TypeLesson,
	})
	if err != nil {
		return Content{}, fmt.Errorf("generate lesson: %w", err)
	}
	lesson, err := content.DecodeLesson(gl.GeneratedContent)
	if err != nil {
		return Content{}, fmt.Errorf("generate lesson: %w", err)
	}

	ge, err := s.backend.GenerateContent(ctx, learnerID, api.GenerateRequest{
		Concept:      concept,
		ContentType:  content.TypeExercise,
		ExerciseType: content.ExerciseMultipleChoice,
	})
	if err != nil {
		return Content{}, fmt.Errorf("generate exercise: %w", err)
	}
	ex, err := content.DecodeExercise(ge.GeneratedContent)
	if err != nil {
		return Content{}, fmt.Errorf("generate exercise: %w", err)
	}

	return Content{Concept: concept, Lesson: lesson, Exercise: ex}, nil
}

// Feedback asks the backend to assess answer against ex.
func (s *Service) Feedback(ctx context.Context, learnerID int64, concept string, ex *content.Exercise, answer string) (string, error) {
	fb, err := s.backend.Feedback(ctx, learnerID, api.FeedbackRequest{
		LearnerAnswer: answer,
		CorrectAnswer: ex.CorrectAnswer,
		Concept:       concept,
	})
	if err != nil {
		return "", fmt.Errorf("feedback: %w", err)
	}
	return fb, nil
}

// End reports the session's completion rate. Failures are logged only.
func (s *Service) End(ctx context.Context, learnerID, sessionID int64, completionRate float64) {
	if sessionID == 0 {
		return
	}
	if err := s.backend.EndSession(ctx, learnerID, sessionID, completionRate); err != nil {
		s.logger.Warn("end session failed",
			zap.Int64("learner_id", learnerID),
			zap.Int64("session_id", sessionID),
			zap.Error(err))
	}
}

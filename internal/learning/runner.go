package learning

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/abhisek/learnpath/internal/learner"
	"github.com/abhisek/learnpath/internal/store"
)

// Recorder receives session activity for the local log. store.EventRepo
// satisfies it.
type Recorder interface {
	AppendSessionEvent(ctx context.Context, data store.SessionEventData) error
	AppendAnswerEvent(ctx context.Context, data store.AnswerEventData) error
}

// Runner drives one session. Network calls happen outside the lock, so
// Snapshot never blocks on the backend.
type Runner struct {
	svc      *Service
	recorder Recorder
	logger   *zap.Logger
	niche    learner.Niche

	mu    sync.Mutex
	state State
}

// NewRunner creates a Runner for the learner. recorder may be nil.
func NewRunner(svc *Service, profile learner.Profile, recorder Recorder, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		svc:      svc,
		recorder: recorder,
		logger:   logger,
		niche:    profile.TargetNiche,
		state:    State{LearnerID: profile.ID},
	}
}

// Snapshot returns a copy of the current state.
func (r *Runner) Snapshot() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state.Clone()
}

// Start opens (sessionID 0) or resumes a session.
func (r *Runner) Start(ctx context.Context, sessionID int64) error {
	r.mu.Lock()
	if r.state.Phase != PhaseIdle {
		r.mu.Unlock()
		return ErrWrongPhase
	}
	learnerID := r.state.LearnerID
	r.mu.Unlock()

	rec, err := r.svc.Start(ctx, learnerID, sessionID)
	if err != nil {
		r.mu.Lock()
		r.state.Notice = "Could not start a session: " + err.Error()
		r.mu.Unlock()
		return err
	}

	r.mu.Lock()
	if r.state.Phase != PhaseIdle {
		// Ended while the request was in flight; close what was opened.
		r.mu.Unlock()
		r.svc.End(ctx, learnerID, rec.ID, 0)
		return ErrWrongPhase
	}
	Started(&r.state, rec.ID)
	r.mu.Unlock()

	action := store.ActionStart
	if sessionID != 0 {
		action = store.ActionResume
	}
	r.record(ctx, func(rc Recorder) error {
		return rc.AppendSessionEvent(ctx, store.SessionEventData{
			LearnerID: learnerID,
			SessionID: rec.ID,
			Action:    action,
		})
	})
	return nil
}

// GenerateNext picks a concept and loads a lesson + exercise for it.
func (r *Runner) GenerateNext(ctx context.Context) error {
	r.mu.Lock()
	if r.state.Phase != PhaseAwaitingContent {
		r.mu.Unlock()
		return ErrWrongPhase
	}
	learnerID := r.state.LearnerID
	r.state.Notice = ""
	r.mu.Unlock()

	concept := r.svc.PickConcept(r.niche)
	c, err := r.svc.Generate(ctx, learnerID, concept)

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state.Phase != PhaseAwaitingContent {
		// Ended while the request was in flight.
		return ErrWrongPhase
	}
	if err != nil {
		ContentFailed(&r.state, err)
		return err
	}
	ContentLoaded(&r.state, c.Concept, c.Lesson, c.Exercise)
	return nil
}

// SubmitAnswer sends the learner's answer and shows the feedback.
func (r *Runner) SubmitAnswer(ctx context.Context, answer string) error {
	r.mu.Lock()
	if err := BeginAnswer(&r.state, answer); err != nil {
		r.mu.Unlock()
		return err
	}
	st := r.state.Clone()
	r.mu.Unlock()

	fb, err := r.svc.Feedback(ctx, st.LearnerID, st.Concept, st.Exercise, st.Answer)

	r.mu.Lock()
	if r.state.Phase != PhaseAwaitingFeedback {
		r.mu.Unlock()
		return ErrWrongPhase
	}
	if err != nil {
		FeedbackFailed(&r.state, err)
		r.mu.Unlock()
		return err
	}
	FeedbackReceived(&r.state, fb)
	correct := r.state.Correct
	r.mu.Unlock()

	r.record(ctx, func(rc Recorder) error {
		return rc.AppendAnswerEvent(ctx, store.AnswerEventData{
			LearnerID:     st.LearnerID,
			SessionID:     st.SessionID,
			Concept:       st.Concept,
			Question:      st.Exercise.Question,
			LearnerAnswer: st.Answer,
			CorrectAnswer: st.Exercise.CorrectAnswer,
			Correct:       correct,
		})
	})
	return nil
}

// Continue clears the shown content and loads the next batch.
func (r *Runner) Continue(ctx context.Context) error {
	r.mu.Lock()
	err := Continue(&r.state)
	r.mu.Unlock()
	if err != nil {
		return err
	}
	return r.GenerateNext(ctx)
}

// End closes the session locally and reports completion to the backend on
// a best-effort basis. It returns the final state.
func (r *Runner) End(ctx context.Context) State {
	r.mu.Lock()
	if r.state.Phase == PhaseEnded {
		st := r.state.Clone()
		r.mu.Unlock()
		return st
	}
	End(&r.state)
	st := r.state.Clone()
	r.mu.Unlock()

	if st.SessionID == 0 {
		return st
	}
	r.svc.End(ctx, st.LearnerID, st.SessionID, st.CompletionRate())
	r.record(ctx, func(rc Recorder) error {
		return rc.AppendSessionEvent(ctx, store.SessionEventData{
			LearnerID: st.LearnerID,
			SessionID: st.SessionID,
			Action:    store.ActionEnd,
			Progress:  st.Progress,
			Concepts:  st.Covered,
		})
	})
	return st
}

func (r *Runner) record(ctx context.Context, fn func(Recorder) error) {
	if r.recorder == nil {
		return
	}
	if err := fn(r.recorder); err != nil {
		r.logger.Warn("record activity failed", zap.Error(err))
	}
}

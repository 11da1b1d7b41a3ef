package learning

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/learnpath/internal/api"
	"github.com/abhisek/learnpath/internal/content"
	"github.com/abhisek/learnpath/internal/learner"
	"github.com/abhisek/learnpath/internal/store"
)

type endCall struct {
	learnerID, sessionID int64
	rate                 float64
}

type fakeBackend struct {
	mu          sync.Mutex
	sessions    []learner.SessionRecord
	startErr    error
	generateErr error
	feedbackErr error
	endErr      error
	badExercise bool

	requests []api.GenerateRequest
	feedback []api.FeedbackRequest
	ends     []endCall
}

func (f *fakeBackend) StartSession(_ context.Context, learnerID int64) (*learner.SessionRecord, error) {
	if f.startErr != nil {
		return nil, f.startErr
	}
	return &learner.SessionRecord{ID: 42, LearnerID: learnerID}, nil
}

func (f *fakeBackend) ListSessions(context.Context, int64) ([]learner.SessionRecord, error) {
	return f.sessions, nil
}

func (f *fakeBackend) EndSession(_ context.Context, learnerID, sessionID int64, rate float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ends = append(f.ends, endCall{learnerID, sessionID, rate})
	return f.endErr
}

func (f *fakeBackend) GenerateContent(_ context.Context, _ int64, req api.GenerateRequest) (*api.GeneratedContent, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()
	if f.generateErr != nil {
		return nil, f.generateErr
	}
	var payload any
	switch req.ContentType {
	case content.TypeLesson:
		payload = content.Lesson{Title: req.Concept + " basics", Content: "..."}
	case content.TypeExercise:
		if f.badExercise {
			payload = map[string]string{"question": "missing answer"}
		} else {
			payload = content.Exercise{Question: "Pick B", Options: []string{"A) no", "B) yes"}, CorrectAnswer: "B"}
		}
	}
	raw, _ := json.Marshal(payload)
	return &api.GeneratedContent{Concept: req.Concept, ContentType: req.ContentType, GeneratedContent: raw}, nil
}

func (f *fakeBackend) Feedback(_ context.Context, _ int64, req api.FeedbackRequest) (string, error) {
	f.mu.Lock()
	f.feedback = append(f.feedback, req)
	f.mu.Unlock()
	if f.feedbackErr != nil {
		return "", f.feedbackErr
	}
	return "feedback for " + req.LearnerAnswer, nil
}

func first(int) int { return 0 }

func newRunner(t *testing.T, fb *fakeBackend, rec Recorder) *Runner {
	t.Helper()
	svc := NewService(fb, WithIntn(first))
	profile := learner.Profile{ID: 7, TargetNiche: learner.NicheCreatorBusiness}
	return NewRunner(svc, profile, rec, nil)
}

func TestRunner_FullSession(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "runner.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	fb := &fakeBackend{}
	r := newRunner(t, fb, st.Events())
	ctx := context.Background()

	require.NoError(t, r.Start(ctx, 0))
	assert.Equal(t, PhaseAwaitingContent, r.Snapshot().Phase)
	assert.Equal(t, int64(42), r.Snapshot().SessionID)

	require.NoError(t, r.GenerateNext(ctx))
	snap := r.Snapshot()
	assert.Equal(t, PhaseContentReady, snap.Phase)
	assert.Equal(t, "Content Marketing Strategy", snap.Concept)
	require.Len(t, fb.requests, 2)
	assert.Equal(t, content.TypeLesson, fb.requests[0].ContentType)
	assert.Equal(t, content.TypeExercise, fb.requests[1].ContentType)
	assert.Equal(t, content.ExerciseMultipleChoice, fb.requests[1].ExerciseType)

	require.NoError(t, r.SubmitAnswer(ctx, "B"))
	snap = r.Snapshot()
	assert.Equal(t, PhaseFeedbackShown, snap.Phase)
	assert.Equal(t, 20, snap.Progress)
	assert.True(t, snap.Correct)
	assert.Equal(t, api.FeedbackRequest{LearnerAnswer: "B", CorrectAnswer: "B", Concept: "Content Marketing Strategy"}, fb.feedback[0])

	require.NoError(t, r.Continue(ctx))
	require.NoError(t, r.SubmitAnswer(ctx, "A"))
	assert.Equal(t, 40, r.Snapshot().Progress)

	final := r.End(ctx)
	assert.Equal(t, PhaseEnded, final.Phase)
	require.Len(t, fb.ends, 1)
	assert.Equal(t, endCall{7, 42, 0.4}, fb.ends[0])
	assert.Equal(t, []string{"Content Marketing Strategy", "Content Marketing Strategy"}, final.Covered)

	// Ending twice does not report again.
	r.End(ctx)
	assert.Len(t, fb.ends, 1)

	stats, err := st.Events().AnswerStats(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, store.AnswerStats{Answered: 2, Correct: 1}, stats)
}

func TestRunner_ProgressClampsAfterSixAnswers(t *testing.T) {
	r := newRunner(t, &fakeBackend{}, nil)
	ctx := context.Background()
	require.NoError(t, r.Start(ctx, 0))
	require.NoError(t, r.GenerateNext(ctx))

	for i := 0; i < 6; i++ {
		require.NoError(t, r.SubmitAnswer(ctx, "B"))
		want := min((i+1)*ProgressStep, MaxProgress)
		assert.Equal(t, want, r.Snapshot().Progress)
		require.NoError(t, r.Continue(ctx))
	}
	assert.Equal(t, 100, r.Snapshot().Progress)
}

func TestRunner_Resume(t *testing.T) {
	fb := &fakeBackend{sessions: []learner.SessionRecord{{ID: 9}, {ID: 5}}}
	r := newRunner(t, fb, nil)
	require.NoError(t, r.Start(context.Background(), 5))
	assert.Equal(t, int64(5), r.Snapshot().SessionID)

	r = newRunner(t, fb, nil)
	err := r.Start(context.Background(), 99)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.Equal(t, PhaseIdle, r.Snapshot().Phase)
	assert.NotEmpty(t, r.Snapshot().Notice)
}

func TestRunner_GenerateFailureStaysAwaiting(t *testing.T) {
	fb := &fakeBackend{generateErr: &api.NetworkError{Op: "generate lesson", Err: errors.New("down")}}
	r := newRunner(t, fb, nil)
	ctx := context.Background()
	require.NoError(t, r.Start(ctx, 0))

	err := r.GenerateNext(ctx)
	assert.True(t, api.IsNetwork(err))
	snap := r.Snapshot()
	assert.Equal(t, PhaseAwaitingContent, snap.Phase)
	assert.NotEmpty(t, snap.Notice)

	fb.generateErr = nil
	require.NoError(t, r.GenerateNext(ctx))
	assert.Empty(t, r.Snapshot().Notice)
}

func TestRunner_InvalidExercise(t *testing.T) {
	r := newRunner(t, &fakeBackend{badExercise: true}, nil)
	ctx := context.Background()
	require.NoError(t, r.Start(ctx, 0))

	err := r.GenerateNext(ctx)
	var invalid *content.InvalidError
	assert.ErrorAs(t, err, &invalid)
	assert.Equal(t, PhaseAwaitingContent, r.Snapshot().Phase)
}

func TestRunner_FeedbackFailure(t *testing.T) {
	fb := &fakeBackend{feedbackErr: &api.RejectedError{Op: "feedback", StatusCode: 500}}
	r := newRunner(t, fb, nil)
	ctx := context.Background()
	require.NoError(t, r.Start(ctx, 0))
	require.NoError(t, r.GenerateNext(ctx))

	err := r.SubmitAnswer(ctx, "B")
	assert.True(t, api.IsRejected(err))
	snap := r.Snapshot()
	assert.Equal(t, PhaseContentReady, snap.Phase)
	assert.Zero(t, snap.Progress)

	assert.ErrorIs(t, r.SubmitAnswer(ctx, ""), ErrEmptyAnswer)
}

func TestRunner_EndFailureIsBestEffort(t *testing.T) {
	fb := &fakeBackend{endErr: errors.New("offline")}
	r := newRunner(t, fb, nil)
	ctx := context.Background()
	require.NoError(t, r.Start(ctx, 0))

	final := r.End(ctx)
	assert.Equal(t, PhaseEnded, final.Phase)
	assert.Len(t, fb.ends, 1)
}

func TestRunner_EndBeforeStartSkipsBackend(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "runner.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	fb := &fakeBackend{}
	r := newRunner(t, fb, st.Events())
	final := r.End(context.Background())
	assert.Equal(t, PhaseEnded, final.Phase)
	assert.Empty(t, fb.ends)

	var n int
	require.NoError(t, st.DB().QueryRow(`SELECT COUNT(*) FROM session_events`).Scan(&n))
	assert.Zero(t, n, "no session was opened, so nothing is logged")
}

func TestPickConceptFallsBack(t *testing.T) {
	svc := NewService(&fakeBackend{}, WithIntn(func(n int) int { return n - 1 }))
	assert.Equal(t, "Version Control", svc.PickConcept(learner.NicheUnset))
	assert.Equal(t, "Monetization Strategies", svc.PickConcept(learner.NicheCreatorBusiness))
}

type blockingStart struct {
	*fakeBackend
	entered chan struct{}
	release chan struct{}
}

func (b *blockingStart) StartSession(ctx context.Context, learnerID int64) (*learner.SessionRecord, error) {
	close(b.entered)
	<-b.release
	return b.fakeBackend.StartSession(ctx, learnerID)
}

func TestRunner_EndDuringStartClosesSession(t *testing.T) {
	fb := &fakeBackend{}
	bs := &blockingStart{fakeBackend: fb, entered: make(chan struct{}), release: make(chan struct{})}
	r := NewRunner(NewService(bs, WithIntn(first)), learner.Profile{ID: 7}, nil, nil)

	done := make(chan error, 1)
	go func() { done <- r.Start(context.Background(), 0) }()
	<-bs.entered

	final := r.End(context.Background())
	assert.Equal(t, PhaseEnded, final.Phase)
	close(bs.release)

	assert.ErrorIs(t, <-done, ErrWrongPhase)
	assert.Equal(t, PhaseEnded, r.Snapshot().Phase)
	require.Len(t, fb.ends, 1)
	assert.Equal(t, endCall{7, 42, 0}, fb.ends[0])
}

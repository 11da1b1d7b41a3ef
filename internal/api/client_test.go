package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/learnpath/internal/content"
	"github.com/abhisek/learnpath/internal/learner"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(srv.URL + "/api/")
}

func TestCreateAccount(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/users", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))

		var req CreateAccountRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Ana", req.Username)
		assert.Equal(t, "a@x.io", req.Email)

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":7,"username":"Ana","email":"a@x.io"}`))
	})

	acct, err := c.CreateAccount(context.Background(), CreateAccountRequest{Username: "Ana", Email: "a@x.io"})
	require.NoError(t, err)
	assert.Equal(t, learner.Account{ID: 7, Username: "Ana", Email: "a@x.io"}, *acct)
}

func TestCreateLearnerWireNames(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.EqualValues(t, 7, body["user_id"])
		assert.Equal(t, "tech_career", body["target_niche"])
		assert.Equal(t, []any{"Learn Python"}, body["learning_goals"])
		assert.Equal(t, "visual", body["preferred_learning_style"])
		assert.Equal(t, "beginner", body["experience_level"])
		assert.EqualValues(t, 300, body["time_availability"])
		_, _ = w.Write([]byte(`{"id":3,"user_id":7,"target_niche":"tech_career"}`))
	})

	p, err := c.CreateLearner(context.Background(), CreateLearnerRequest{
		UserID:                 7,
		TargetNiche:            learner.NicheTechCareer,
		LearningGoals:          []string{"Learn Python"},
		PreferredLearningStyle: learner.StyleVisual,
		ExperienceLevel:        learner.LevelBeginner,
		TimeAvailability:       300,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), p.ID)
	assert.Equal(t, int64(7), p.UserID)
}

func TestRejectedCarriesServerMessage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"error":"email already registered"}`))
	})

	_, err := c.CreateAccount(context.Background(), CreateAccountRequest{Username: "a", Email: "b"})
	require.Error(t, err)
	assert.True(t, IsRejected(err))
	assert.False(t, IsNetwork(err))

	var re *RejectedError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, http.StatusConflict, re.StatusCode)
	assert.Equal(t, "email already registered", re.Message)
	assert.Contains(t, err.Error(), "email already registered")
}

func TestMalformedSuccessBodyIsRejected(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	})

	_, err := c.ListSessions(context.Background(), 1)
	require.Error(t, err)
	assert.True(t, IsRejected(err))
}

func TestNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := New(url)
	_, err := c.KnowledgeGaps(context.Background(), 1)
	require.Error(t, err)
	assert.True(t, IsNetwork(err))
	assert.False(t, IsRejected(err))
}

func TestTimeoutIsNetworkError(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(func() {
		close(release)
		srv.Close()
	})

	c := New(srv.URL, WithTimeout(20*time.Millisecond))
	_, err := c.StartSession(context.Background(), 1)
	require.Error(t, err)
	assert.True(t, IsNetwork(err))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestSessionsEndpoints(t *testing.T) {
	var ended map[string]float64
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/learners/4/sessions":
			_, _ = w.Write([]byte(`[{"id":2,"learner_id":4,"duration_minutes":15,"completion_rate":0.5},{"id":1,"learner_id":4}]`))
		case r.Method == http.MethodPost && r.URL.Path == "/api/learners/4/sessions":
			_, _ = w.Write([]byte(`{"id":3,"learner_id":4,"session_start":"2024-05-01T10:00:00"}`))
		case r.Method == http.MethodPost && r.URL.Path == "/api/learners/4/sessions/3/end":
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&ended))
			w.WriteHeader(http.StatusNoContent)
		default:
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	})
	ctx := context.Background()

	sessions, err := c.ListSessions(ctx, 4)
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, 15, sessions[0].Minutes())
	assert.Nil(t, sessions[1].DurationMinutes)

	s, err := c.StartSession(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, int64(3), s.ID)

	require.NoError(t, c.EndSession(ctx, 4, 3, 0.6))
	assert.InDelta(t, 0.6, ended["completion_rate"], 1e-9)
}

func TestGenerateContentAndFeedback(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/learners/4/generate-content":
			var req GenerateRequest
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, content.TypeExercise, req.ContentType)
			assert.Equal(t, content.ExerciseMultipleChoice, req.ExerciseType)
			_, _ = w.Write([]byte(`{"concept":"APIs","generated_content":{"question":"Q?","options":["A) x","B) y"],"correct_answer":"B"}}`))
		case "/api/learners/4/feedback":
			var req FeedbackRequest
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, FeedbackRequest{LearnerAnswer: "A", CorrectAnswer: "B", Concept: "APIs"}, req)
			_, _ = w.Write([]byte(`{"feedback":"Not quite."}`))
		}
	})
	ctx := context.Background()

	gc, err := c.GenerateContent(ctx, 4, GenerateRequest{
		Concept:      "APIs",
		ContentType:  content.TypeExercise,
		ExerciseType: content.ExerciseMultipleChoice,
	})
	require.NoError(t, err)
	assert.Equal(t, content.TypeExercise, gc.ContentType, "falls back to the requested type")

	ex, err := content.DecodeExercise(gc.GeneratedContent)
	require.NoError(t, err)
	assert.Equal(t, "B", ex.CorrectAnswer)

	fb, err := c.Feedback(ctx, 4, FeedbackRequest{LearnerAnswer: "A", CorrectAnswer: "B", Concept: "APIs"})
	require.NoError(t, err)
	assert.Equal(t, "Not quite.", fb)
}

func TestKnowledgeGaps(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"knowledge_gaps":["Recursion","SQL joins"]}`))
	})

	gaps, err := c.KnowledgeGaps(context.Background(), 9)
	require.NoError(t, err)
	assert.Equal(t, []string{"Recursion", "SQL joins"}, gaps)
}

package learning

import (
	"errors"
	"testing"

	"github.com/abhisek/learnpath/internal/content"
)

func readyState() *State {
	s := &State{LearnerID: 1}
	Started(s, 10)
	ContentLoaded(s, "API Design", &content.Lesson{Title: "REST"}, &content.Exercise{
		Question:      "Which verb is idempotent?",
		Options:       []string{"A) POST", "B) PUT"},
		CorrectAnswer: "B",
	})
	return s
}

func TestProgressIncrementsAndClamps(t *testing.T) {
	s := readyState()
	want := []int{20, 40, 60, 80, 100, 100}
	for i, w := range want {
		if err := BeginAnswer(s, "B"); err != nil {
			t.Fatalf("submission %d: %v", i+1, err)
		}
		FeedbackReceived(s, "ok")
		if s.Progress != w {
			t.Errorf("after submission %d progress = %d, want %d", i+1, s.Progress, w)
		}
		if err := Continue(s); err != nil {
			t.Fatalf("continue %d: %v", i+1, err)
		}
		ContentLoaded(s, "API Design", &content.Lesson{Title: "REST"}, &content.Exercise{Question: "q", CorrectAnswer: "A"})
	}
	if s.Answered != 6 {
		t.Errorf("answered = %d, want 6", s.Answered)
	}
}

func TestBeginAnswerGuards(t *testing.T) {
	s := &State{}
	if err := BeginAnswer(s, "A"); !errors.Is(err, ErrWrongPhase) {
		t.Errorf("idle: err = %v, want ErrWrongPhase", err)
	}

	s = readyState()
	s.Exercise = nil
	if err := BeginAnswer(s, "A"); !errors.Is(err, ErrNoExercise) {
		t.Errorf("no exercise: err = %v, want ErrNoExercise", err)
	}

	s = readyState()
	if err := BeginAnswer(s, "   "); !errors.Is(err, ErrEmptyAnswer) {
		t.Errorf("blank: err = %v, want ErrEmptyAnswer", err)
	}
	if s.Phase != PhaseContentReady {
		t.Errorf("phase = %v, want content ready", s.Phase)
	}
}

func TestFeedbackMarksCorrectness(t *testing.T) {
	s := readyState()
	_ = BeginAnswer(s, " b ")
	FeedbackReceived(s, "Right!")
	if !s.Correct || s.CorrectCount != 1 {
		t.Errorf("expected correct answer, got correct=%v count=%d", s.Correct, s.CorrectCount)
	}
	if s.Phase != PhaseFeedbackShown {
		t.Errorf("phase = %v, want feedback shown", s.Phase)
	}

	s = readyState()
	_ = BeginAnswer(s, "A")
	FeedbackReceived(s, "Not quite.")
	if s.Correct {
		t.Error("expected incorrect answer")
	}
}

func TestFeedbackFailedReturnsToContent(t *testing.T) {
	s := readyState()
	_ = BeginAnswer(s, "A")
	FeedbackFailed(s, errors.New("timeout"))
	if s.Phase != PhaseContentReady {
		t.Errorf("phase = %v, want content ready", s.Phase)
	}
	if s.Progress != 0 {
		t.Errorf("progress = %d, want 0", s.Progress)
	}
	if s.Notice == "" {
		t.Error("expected a notice")
	}
}

func TestContinueClearsContent(t *testing.T) {
	s := readyState()
	if err := Continue(s); !errors.Is(err, ErrWrongPhase) {
		t.Fatalf("continue before feedback: err = %v", err)
	}
	_ = BeginAnswer(s, "B")
	FeedbackReceived(s, "Good")
	if err := Continue(s); err != nil {
		t.Fatal(err)
	}
	if s.Lesson != nil || s.Exercise != nil || s.Answer != "" || s.Feedback != "" {
		t.Errorf("content not cleared: %+v", s)
	}
	if s.Phase != PhaseAwaitingContent {
		t.Errorf("phase = %v, want awaiting content", s.Phase)
	}
	if len(s.Covered) != 1 || s.Covered[0] != "API Design" {
		t.Errorf("covered = %v", s.Covered)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	s := readyState()
	c := s.Clone()
	c.Covered[0] = "changed"
	c.Exercise.Options[0] = "changed"
	c.Lesson.Title = "changed"
	if s.Covered[0] != "API Design" || s.Exercise.Options[0] != "A) POST" || s.Lesson.Title != "REST" {
		t.Error("clone shares memory with original")
	}
}

func TestCompletionRate(t *testing.T) {
	s := &State{Progress: 60}
	if got := s.CompletionRate(); got != 0.6 {
		t.Errorf("CompletionRate = %v, want 0.6", got)
	}
}

// Package learning runs an interactive learning session: generate a lesson
// and exercise for a concept, collect the learner's answer, show feedback,
// and repeat until the learner ends the session.
package learning

import (
	"errors"
	"slices"
	"strings"

	"github.com/abhisek/learnpath/internal/content"
)

// ProgressStep is how much one answered exercise adds to session progress.
const ProgressStep = 20

// MaxProgress is the progress ceiling.
const MaxProgress = 100

var (
	ErrNoExercise      = errors.New("learning: no exercise loaded")
	ErrEmptyAnswer     = errors.New("learning: answer is empty")
	ErrSessionNotFound = errors.New("learning: session not found")
	ErrWrongPhase      = errors.New("learning: not allowed in current phase")
)

// Phase is the session's position in its lifecycle.
type Phase int

const (
	PhaseIdle             Phase = iota // Not started
	PhaseAwaitingContent               // Waiting for a lesson + exercise
	PhaseContentReady                  // Lesson and exercise shown
	PhaseAwaitingFeedback              // Answer submitted, waiting for feedback
	PhaseFeedbackShown                 // Feedback shown
	PhaseEnded                         // Session closed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseAwaitingContent:
		return "awaiting content"
	case PhaseContentReady:
		return "content ready"
	case PhaseAwaitingFeedback:
		return "awaiting feedback"
	case PhaseFeedbackShown:
		return "feedback shown"
	case PhaseEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// State is the runtime state of one learning session.
type State struct {
	LearnerID int64
	SessionID int64
	Phase     Phase

	Concept  string
	Lesson   *content.Lesson
	Exercise *content.Exercise
	Answer   string
	Feedback string
	Correct  bool

	// Progress is a client-side counter in [0, MaxProgress].
	Progress int

	// Covered lists concepts in the order content was generated for them.
	Covered []string

	Answered     int
	CorrectCount int

	// Notice is a user-visible message for the last failed step.
	Notice string
}

// Clone returns a deep copy safe to read from another goroutine.
func (s *State) Clone() State {
	c := *s
	c.Covered = slices.Clone(s.Covered)
	if s.Lesson != nil {
		l := *s.Lesson
		c.Lesson = &l
	}
	if s.Exercise != nil {
		e := *s.Exercise
		e.Options = slices.Clone(s.Exercise.Options)
		c.Exercise = &e
	}
	return c
}

// CompletionRate is Progress as a fraction in [0, 1].
func (s *State) CompletionRate() float64 {
	return float64(s.Progress) / MaxProgress
}

// Started records the backend session and waits for content.
func Started(s *State, sessionID int64) {
	s.SessionID = sessionID
	s.Phase = PhaseAwaitingContent
	s.Notice = ""
}

// ContentLoaded installs a freshly generated lesson and exercise.
func ContentLoaded(s *State, concept string, lesson *content.Lesson, ex *content.Exercise) {
	s.Concept = concept
	s.Lesson = lesson
	s.Exercise = ex
	s.Answer = ""
	s.Feedback = ""
	s.Correct = false
	s.Notice = ""
	s.Covered = append(s.Covered, concept)
	s.Phase = PhaseContentReady
}

// ContentFailed keeps the session waiting for content and shows err.
func ContentFailed(s *State, err error) {
	s.Phase = PhaseAwaitingContent
	s.Notice = "Could not load content: " + err.Error()
}

// BeginAnswer validates answer and moves to AwaitingFeedback.
func BeginAnswer(s *State, answer string) error {
	if s.Phase != PhaseContentReady {
		return ErrWrongPhase
	}
	if s.Exercise == nil {
		return ErrNoExercise
	}
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return ErrEmptyAnswer
	}
	s.Answer = answer
	s.Notice = ""
	s.Phase = PhaseAwaitingFeedback
	return nil
}

// FeedbackReceived shows feedback and advances progress by ProgressStep,
// clamped to MaxProgress.
func FeedbackReceived(s *State, feedback string) {
	s.Feedback = feedback
	s.Correct = s.Exercise != nil && s.Exercise.IsCorrect(s.Answer)
	s.Answered++
	if s.Correct {
		s.CorrectCount++
	}
	s.Progress = min(s.Progress+ProgressStep, MaxProgress)
	s.Phase = PhaseFeedbackShown
}

// FeedbackFailed returns to ContentReady so the learner can retry.
func FeedbackFailed(s *State, err error) {
	s.Phase = PhaseContentReady
	s.Notice = "Could not get feedback: " + err.Error()
}

// Continue clears the current content and waits for the next batch.
func Continue(s *State) error {
	if s.Phase != PhaseFeedbackShown {
		return ErrWrongPhase
	}
	s.Concept = ""
	s.Lesson = nil
	s.Exercise = nil
	s.Answer = ""
	s.Feedback = ""
	s.Correct = false
	s.Notice = ""
	s.Phase = PhaseAwaitingContent
	return nil
}

// End closes the session. It is valid from any phase.
func End(s *State) {
	s.Phase = PhaseEnded
}

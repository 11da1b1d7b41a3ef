package learn

import (
	"time"

	"github.com/abhisek/learnpath/internal/learning"
)

// startedMsg is sent when the session has been opened or resumed.
type startedMsg struct {
	Err error
}

// contentMsg is sent when a lesson and exercise request completes.
type contentMsg struct {
	Err error
}

// feedbackMsg is sent when the feedback request for an answer completes.
type feedbackMsg struct {
	Err error
}

// endedMsg carries the final state once the session is closed.
type endedMsg struct {
	State learning.State
}

// spinnerTickMsg animates the loading indicator.
type spinnerTickMsg time.Time

package onboarding

import ob "github.com/abhisek/learnpath/internal/onboarding"

// submitDoneMsg is sent when the account + learner creation finishes.
type submitDoneMsg struct {
	Result ob.Result
	Err    error
}

package onboarding

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/abhisek/learnpath/internal/api"
	"github.com/abhisek/learnpath/internal/learner"
)

// ErrNotReady is returned by Submit when the form fails the final step's
// validation.
var ErrNotReady = errors.New("onboarding: form is incomplete")

// Backend is the subset of the API client used to finish onboarding.
type Backend interface {
	CreateAccount(ctx context.Context, req api.CreateAccountRequest) (*learner.Account, error)
	CreateLearner(ctx context.Context, req api.CreateLearnerRequest) (*learner.Profile, error)
}

// Result holds the identities created by a successful submission.
type Result struct {
	Account learner.Account
	Learner learner.Profile
}

// Submitter runs the account + learner creation sequence.
type Submitter struct {
	Backend Backend
	Logger  *zap.Logger
}

// Submit creates the account and then the learner profile. A failure in
// either call aborts the sequence; an account created before a learner
// failure is not rolled back.
func (s *Submitter) Submit(ctx context.Context, f Form) (Result, error) {
	if !CanSubmit(f) {
		return Result{}, ErrNotReady
	}
	log := s.Logger
	if log == nil {
		log = zap.NewNop()
	}

	acct, err := s.Backend.CreateAccount(ctx, api.CreateAccountRequest{
		Username: f.Name,
		Email:    f.Email,
	})
	if err != nil {
		log.Warn("create account failed", zap.Error(err))
		return Result{}, fmt.Errorf("create account: %w", err)
	}

	profile, err := s.Backend.CreateLearner(ctx, api.CreateLearnerRequest{
		UserID:                 acct.ID,
		TargetNiche:            f.Niche,
		LearningGoals:          FinalGoals(f),
		PreferredLearningStyle: f.Style,
		ExperienceLevel:        f.Level,
		TimeAvailability:       f.WeeklyMinutes,
	})
	if err != nil {
		log.Warn("create learner failed; account left in place",
			zap.Int64("user_id", acct.ID), zap.Error(err))
		return Result{}, fmt.Errorf("create learner profile: %w", err)
	}

	log.Info("onboarding complete", zap.Int64("user_id", acct.ID), zap.Int64("learner_id", profile.ID))
	return Result{Account: *acct, Learner: *profile}, nil
}

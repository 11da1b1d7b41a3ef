package learner

import "time"

// Account is the platform user created at the end of onboarding.
type Account struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Profile is the learner profile tied 1:1 to an Account.
type Profile struct {
	ID                     int64           `json:"id"`
	UserID                 int64           `json:"user_id"`
	TargetNiche            Niche           `json:"target_niche"`
	LearningGoals          []string        `json:"learning_goals"`
	PreferredLearningStyle LearningStyle   `json:"preferred_learning_style"`
	ExperienceLevel        ExperienceLevel `json:"experience_level"`
	TimeAvailability       int             `json:"time_availability"`
}

// SessionRecord is a learning session as reported by the backend.
// Duration and completion stay nil until the session is ended.
type SessionRecord struct {
	ID              int64    `json:"id"`
	LearnerID       int64    `json:"learner_id"`
	SessionStart    string   `json:"session_start,omitempty"`
	SessionEnd      string   `json:"session_end,omitempty"`
	DurationMinutes *int     `json:"duration_minutes,omitempty"`
	CompletionRate  *float64 `json:"completion_rate,omitempty"`
}

// timestampLayouts covers the ISO-8601 variants the backend emits
// (naive UTC with optional fractional seconds, or RFC 3339).
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
}

// StartedAt parses SessionStart. ok is false when it is missing or malformed.
func (s SessionRecord) StartedAt() (t time.Time, ok bool) {
	if s.SessionStart == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s.SessionStart); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Minutes returns DurationMinutes, treating missing as zero.
func (s SessionRecord) Minutes() int {
	if s.DurationMinutes == nil {
		return 0
	}
	return *s.DurationMinutes
}

// Completion returns CompletionRate, treating missing as zero.
func (s SessionRecord) Completion() float64 {
	if s.CompletionRate == nil {
		return 0
	}
	return *s.CompletionRate
}

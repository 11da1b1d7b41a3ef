// Package dashboard assembles the data shown on the learner's home screen.
package dashboard

import (
	"math"

	"github.com/abhisek/learnpath/internal/learner"
)

// RecentLimit caps how many sessions the dashboard lists.
const RecentLimit = 5

// Stats summarizes a learner's sessions.
type Stats struct {
	TotalSessions         int
	TotalTimeSpentMinutes int
	CompletionRatePercent int

	// CurrentStreak is not computed by the platform yet and is always 0.
	CurrentStreak int
}

// DeriveStats computes Stats over every session. Missing durations and
// completion rates count as zero.
func DeriveStats(sessions []learner.SessionRecord) Stats {
	if len(sessions) == 0 {
		return Stats{}
	}
	var minutes int
	var completion float64
	for _, s := range sessions {
		minutes += s.Minutes()
		completion += s.Completion()
	}
	return Stats{
		TotalSessions:         len(sessions),
		TotalTimeSpentMinutes: minutes,
		CompletionRatePercent: int(math.Round(100 * completion / float64(len(sessions)))),
	}
}

// Recent returns at most RecentLimit sessions, keeping server order
// (most recent first).
func Recent(sessions []learner.SessionRecord) []learner.SessionRecord {
	if len(sessions) > RecentLimit {
		sessions = sessions[:RecentLimit]
	}
	return append([]learner.SessionRecord(nil), sessions...)
}

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

// Session actions recorded in the activity log.
const (
	ActionStart  = "start"
	ActionResume = "resume"
	ActionEnd    = "end"
)

// SessionEventData captures a learning session lifecycle change.
type SessionEventData struct {
	LearnerID int64
	SessionID int64
	Action    string
	Progress  int
	Concepts  []string
}

// AnswerEventData captures one submitted exercise answer.
type AnswerEventData struct {
	LearnerID     int64
	SessionID     int64
	Concept       string
	Question      string
	LearnerAnswer string
	CorrectAnswer string
	Correct       bool
}

// AnswerRecord is a stored answer event.
type AnswerRecord struct {
	Sequence  int64
	Timestamp time.Time
	AnswerEventData
}

// AnswerStats aggregates locally recorded answers for a learner.
type AnswerStats struct {
	Answered int
	Correct  int
}

// Accuracy returns Correct / Answered, or 0 when nothing was answered.
func (a AnswerStats) Accuracy() float64 {
	if a.Answered == 0 {
		return 0
	}
	return float64(a.Correct) / float64(a.Answered)
}

// EventRepo provides append access to the local activity log.
type EventRepo interface {
	AppendSessionEvent(ctx context.Context, data SessionEventData) error
	AppendAnswerEvent(ctx context.Context, data AnswerEventData) error

	// AnswerStats summarizes every answer recorded for the learner.
	AnswerStats(ctx context.Context, learnerID int64) (AnswerStats, error)

	// RecentConcepts returns distinct concepts answered by the learner,
	// most recent first.
	RecentConcepts(ctx context.Context, learnerID int64, limit int) ([]string, error)

	// RecentAnswers returns the learner's answers, most recent first.
	RecentAnswers(ctx context.Context, learnerID int64, limit int) ([]AnswerRecord, error)
}

// sequenceCounter hands out one monotonic sequence shared by every event
// table, so session and answer events can be ordered against each other.
// The mutex serializes within the process; RETURNING makes the increment
// atomic at the database level.
type sequenceCounter struct {
	mu sync.Mutex
	db *sql.DB
}

// newSequenceCounter creates a counter and ensures the tracking table exists.
func newSequenceCounter(db *sql.DB) (*sequenceCounter, error) {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS global_sequence (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		next_val INTEGER NOT NULL DEFAULT 1
	)`)
	if err != nil {
		return nil, fmt.Errorf("create sequence table: %w", err)
	}

	_, err = db.Exec(`INSERT OR IGNORE INTO global_sequence (id, next_val) VALUES (1, 1)`)
	if err != nil {
		return nil, fmt.Errorf("seed sequence: %w", err)
	}

	return &sequenceCounter{db: db}, nil
}

// Next atomically returns the next sequence number and increments the counter.
func (sc *sequenceCounter) Next(ctx context.Context) (int64, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	var seq int64
	err := sc.db.QueryRowContext(ctx,
		`UPDATE global_sequence SET next_val = next_val + 1 WHERE id = 1 RETURNING next_val - 1`,
	).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return seq, nil
}

type eventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return err
	}
	concepts := data.Concepts
	if concepts == nil {
		concepts = []string{}
	}
	conceptsJSON, err := json.Marshal(concepts)
	if err != nil {
		return fmt.Errorf("marshal concepts: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO session_events (sequence, timestamp, learner_id, session_id, action, progress, concepts)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		seqNum, time.Now().UTC(), data.LearnerID, data.SessionID, data.Action, data.Progress, string(conceptsJSON),
	)
	if err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendAnswerEvent(ctx context.Context, data AnswerEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO answer_events (sequence, timestamp, learner_id, session_id, concept, question, learner_answer, correct_answer, correct)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		seqNum, time.Now().UTC(), data.LearnerID, data.SessionID, data.Concept,
		data.Question, data.LearnerAnswer, data.CorrectAnswer, data.Correct,
	)
	if err != nil {
		return fmt.Errorf("save answer event: %w", err)
	}
	return nil
}

func (r *eventRepo) AnswerStats(ctx context.Context, learnerID int64) (AnswerStats, error) {
	var st AnswerStats
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(CASE WHEN correct THEN 1 ELSE 0 END), 0)
		 FROM answer_events WHERE learner_id = ?`, learnerID,
	).Scan(&st.Answered, &st.Correct)
	if err != nil {
		return AnswerStats{}, fmt.Errorf("query answer stats: %w", err)
	}
	return st, nil
}

func (r *eventRepo) RecentConcepts(ctx context.Context, learnerID int64, limit int) ([]string, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT concept FROM answer_events WHERE learner_id = ?
		 GROUP BY concept ORDER BY MAX(sequence) DESC LIMIT ?`, learnerID, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent concepts: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("scan concept: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *eventRepo) RecentAnswers(ctx context.Context, learnerID int64, limit int) ([]AnswerRecord, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT sequence, timestamp, learner_id, session_id, concept, question, learner_answer, correct_answer, correct
		 FROM answer_events WHERE learner_id = ? ORDER BY sequence DESC LIMIT ?`, learnerID, limit)
	if err != nil {
		return nil, fmt.Errorf("query answers: %w", err)
	}
	defer rows.Close()

	var out []AnswerRecord
	for rows.Next() {
		var rec AnswerRecord
		if err := rows.Scan(&rec.Sequence, &rec.Timestamp, &rec.LearnerID, &rec.SessionID, &rec.Concept,
			&rec.Question, &rec.LearnerAnswer, &rec.CorrectAnswer, &rec.Correct); err != nil {
			return nil, fmt.Errorf("scan answer: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

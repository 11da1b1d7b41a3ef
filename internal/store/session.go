package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/abhisek/learnpath/internal/learner"
)

// Durable keys for the signed-in identities.
const (
	KeyCurrentUser    = "currentUser"
	KeyCurrentLearner = "currentLearner"
)

// SessionStore keeps the current account and learner profile across
// restarts. It is the only writer of those keys.
type SessionStore struct {
	db     *sql.DB
	logger *zap.Logger
}

// Save stores both identities in a single transaction.
func (s *SessionStore) Save(ctx context.Context, acct learner.Account, profile learner.Profile) error {
	acctJSON, err := json.Marshal(acct)
	if err != nil {
		return fmt.Errorf("marshal account: %w", err)
	}
	profileJSON, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("marshal learner: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	const upsert = `INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`
	if _, err := tx.ExecContext(ctx, upsert, KeyCurrentUser, string(acctJSON)); err != nil {
		return fmt.Errorf("save %s: %w", KeyCurrentUser, err)
	}
	if _, err := tx.ExecContext(ctx, upsert, KeyCurrentLearner, string(profileJSON)); err != nil {
		return fmt.Errorf("save %s: %w", KeyCurrentLearner, err)
	}
	return tx.Commit()
}

// Load returns the stored identities. Either result is nil when its entry
// is absent or unreadable; only database failures are returned as errors.
func (s *SessionStore) Load(ctx context.Context) (*learner.Account, *learner.Profile, error) {
	var acct learner.Account
	okAcct, err := s.get(ctx, KeyCurrentUser, &acct)
	if err != nil {
		return nil, nil, err
	}
	var profile learner.Profile
	okProfile, err := s.get(ctx, KeyCurrentLearner, &profile)
	if err != nil {
		return nil, nil, err
	}

	var a *learner.Account
	if okAcct {
		a = &acct
	}
	var p *learner.Profile
	if okProfile {
		p = &profile
	}
	return a, p, nil
}

// Clear removes both identities.
func (s *SessionStore) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key IN (?, ?)`, KeyCurrentUser, KeyCurrentLearner)
	if err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (s *SessionStore) get(ctx context.Context, key string, dst any) (bool, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load %s: %w", key, err)
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		s.logger.Warn("ignoring malformed stored entry", zap.String("key", key), zap.Error(err))
		return false, nil
	}
	return true, nil
}

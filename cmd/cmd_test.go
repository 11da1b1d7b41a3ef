package cmd

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/learnpath/internal/config"
	"github.com/abhisek/learnpath/internal/dashboard"
	"github.com/abhisek/learnpath/internal/learner"
	"github.com/abhisek/learnpath/internal/store"
)

func TestBindFlagsOverrideConfig(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("PORT", "")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("db", "", "")
	fs.String("api", "", "")
	fs.String("log-level", "", "")
	vp := viper.New()
	require.NoError(t, bindFlags(vp, fs))
	require.NoError(t, fs.Parse([]string{"--api", "https://api.example.com", "--db", "/tmp/x.db"}))

	cfg, err := config.Load(vp, "")
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com", cfg.API.BaseURL)
	assert.Equal(t, "/tmp/x.db", cfg.Store.Path)
	assert.Equal(t, "info", cfg.Log.Level, "unset flags keep the default")
}

func TestPrintStats(t *testing.T) {
	var buf bytes.Buffer
	printStats(&buf,
		learner.Account{Username: "ana", Email: "ana@example.com"},
		learner.Profile{TargetNiche: learner.NicheTechCareer},
		dashboard.Data{
			Stats:         dashboard.Stats{TotalSessions: 3, TotalTimeSpentMinutes: 75, CompletionRatePercent: 67},
			KnowledgeGaps: []string{"SQL", "Git"},
		},
		store.AnswerStats{Answered: 4, Correct: 3},
		[]string{"Interviewing"},
	)

	out := buf.String()
	assert.Contains(t, out, "ana (ana@example.com)")
	assert.Contains(t, out, "75 min")
	assert.Contains(t, out, "67%")
	assert.Contains(t, out, "SQL, Git")
	assert.Contains(t, out, "75%")
	assert.Contains(t, out, "Interviewing")
}

func TestPrintStatsSessionsUnavailable(t *testing.T) {
	var buf bytes.Buffer
	printStats(&buf, learner.Account{Username: "ana"}, learner.Profile{},
		dashboard.Data{SessionsErr: errors.New("timeout")}, store.AnswerStats{}, nil)

	out := buf.String()
	assert.Contains(t, out, "Sessions: unavailable (timeout)")
	assert.NotContains(t, out, "Accuracy")
}

func TestSignOutClearsDamagedIdentity(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "logout.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	ctx := context.Background()

	sessions := st.Sessions()
	require.NoError(t, sessions.Save(ctx,
		learner.Account{ID: 1, Username: "ana"},
		learner.Profile{ID: 2, UserID: 1, TargetNiche: learner.NicheTechCareer}))
	_, err = st.DB().Exec(`UPDATE kv SET value = '{' WHERE key = ?`, store.KeyCurrentUser)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, signOut(ctx, sessions, &buf))
	assert.Equal(t, "Cleared a stale learner profile.\n", buf.String())

	var n int
	require.NoError(t, st.DB().QueryRow(`SELECT COUNT(*) FROM kv`).Scan(&n))
	assert.Zero(t, n)

	buf.Reset()
	require.NoError(t, signOut(ctx, sessions, &buf))
	assert.Equal(t, "Not signed in.\n", buf.String())
}

func TestSignOutNamesAccount(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "logout.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	ctx := context.Background()

	require.NoError(t, st.Sessions().Save(ctx, learner.Account{ID: 1, Username: "ana"}, learner.Profile{ID: 2, UserID: 1}))

	var buf bytes.Buffer
	require.NoError(t, signOut(ctx, st.Sessions(), &buf))
	assert.Equal(t, "Signed out ana.\n", buf.String())
	acct, profile, err := st.Sessions().Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, acct)
	assert.Nil(t, profile)
}

package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/abhisek/learnpath/internal/store"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the signed-in learner on this machine",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := setup()
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()

		st, err := openStore(cfg, log)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := signOut(cmd.Context(), st.Sessions(), cmd.OutOrStdout()); err != nil {
			return err
		}
		log.Info("logged out from cli")
		return nil
	},
}

// signOut clears both stored identities, including a half-readable pair
// left behind by a damaged entry.
func signOut(ctx context.Context, sessions *store.SessionStore, w io.Writer) error {
	acct, profile, err := sessions.Load(ctx)
	if err != nil {
		return fmt.Errorf("load identities: %w", err)
	}
	if err := sessions.Clear(ctx); err != nil {
		return fmt.Errorf("clear identities: %w", err)
	}
	switch {
	case acct != nil:
		fmt.Fprintf(w, "Signed out %s.\n", acct.Username)
	case profile != nil:
		fmt.Fprintln(w, "Cleared a stale learner profile.")
	default:
		fmt.Fprintln(w, "Not signed in.")
	}
	return nil
}

package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/learnpath/internal/dashboard"
	"github.com/abhisek/learnpath/internal/learner"
	"github.com/abhisek/learnpath/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics",
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

		ctx := cmd.Context()
		acct, profile, err := st.Sessions().Load(ctx)
		if err != nil {
			return fmt.Errorf("load identities: %w", err)
		}
		out := cmd.OutOrStdout()
		if acct == nil || profile == nil {
			fmt.Fprintln(out, "Not signed in. Run learnpath to get started.")
			return nil
		}

		data := dashboard.NewLoader(newClient(cfg, log), log.Named("dashboard")).Load(ctx, profile.ID)
		local, err := st.Events().AnswerStats(ctx, profile.ID)
		if err != nil {
			return err
		}
		concepts, err := st.Events().RecentConcepts(ctx, profile.ID, 5)
		if err != nil {
			return err
		}

		printStats(out, *acct, *profile, data, local, concepts)
		return nil
	},
}

func printStats(w io.Writer, acct learner.Account, profile learner.Profile, data dashboard.Data, local store.AnswerStats, concepts []string) {
	fmt.Fprintf(w, "%s (%s)\n", acct.Username, acct.Email)
	fmt.Fprintf(w, "Track: %s · %s · %s\n\n",
		profile.TargetNiche.Name(), profile.ExperienceLevel.Name(), profile.PreferredLearningStyle.Name())

	if data.SessionsErr != nil {
		fmt.Fprintf(w, "Sessions: unavailable (%v)\n", data.SessionsErr)
	} else {
		s := data.Stats
		fmt.Fprintf(w, "%-16s %d\n", "Sessions", s.TotalSessions)
		fmt.Fprintf(w, "%-16s %d min\n", "Time spent", s.TotalTimeSpentMinutes)
		fmt.Fprintf(w, "%-16s %d%%\n", "Completion", s.CompletionRatePercent)
		fmt.Fprintf(w, "%-16s %d days\n", "Streak", s.CurrentStreak)
	}

	if len(data.KnowledgeGaps) > 0 {
		fmt.Fprintf(w, "%-16s %s\n", "Focus areas", strings.Join(data.KnowledgeGaps, ", "))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Practice on this machine")
	fmt.Fprintln(w, strings.Repeat("─", 40))
	fmt.Fprintf(w, "%-16s %d\n", "Answered", local.Answered)
	fmt.Fprintf(w, "%-16s %d\n", "Correct", local.Correct)
	if local.Answered > 0 {
		fmt.Fprintf(w, "%-16s %.0f%%\n", "Accuracy", local.Accuracy()*100)
	}
	if len(concepts) > 0 {
		fmt.Fprintf(w, "%-16s %s\n", "Recent concepts", strings.Join(concepts, ", "))
	}
}

package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/learnpath/internal/api"
	"github.com/abhisek/learnpath/internal/app"
	"github.com/abhisek/learnpath/internal/config"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
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

	log.Info("starting", zap.String("version", version), zap.String("api", cfg.API.BaseURL))
	return app.Run(cmd.Context(), app.Options{
		Client: newClient(cfg, log),
		Store:  st,
		Logger: log,
	})
}

func newClient(cfg config.Config, log *zap.Logger) *api.Client {
	return api.New(cfg.API.BaseURL,
		api.WithTimeout(cfg.API.Timeout),
		api.WithLogger(log.Named("api")),
	)
}

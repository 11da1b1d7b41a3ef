package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/learnpath/internal/logger"
	"github.com/abhisek/learnpath/internal/staticsrv"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the compiled web client",
	Long:  "Serve the web client's build directory over HTTP, falling back to index.html for client-side routes. Metrics are exposed on /metrics.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		log, err := logger.New(cfg.Log, true)
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		defer func() { _ = log.Sync() }()

		srv, err := staticsrv.New(cfg.Server, log.Named("http"))
		if err != nil {
			log.Error("cannot serve", zap.Error(err))
			return err
		}
		return srv.Run(cmd.Context())
	},
}

func init() {
	serveCmd.Flags().String("port", "", "Listen port (overrides PORT and LEARNPATH_SERVER_PORT)")
	serveCmd.Flags().String("build-dir", "", "Directory containing index.html and assets")
	cobra.CheckErr(v.BindPFlag("server.port", serveCmd.Flags().Lookup("port")))
	cobra.CheckErr(v.BindPFlag("server.build_dir", serveCmd.Flags().Lookup("build-dir")))
}

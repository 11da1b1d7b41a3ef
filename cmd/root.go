package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/abhisek/learnpath/internal/config"
	"github.com/abhisek/learnpath/internal/logger"
	"github.com/abhisek/learnpath/internal/store"
)

var (
	cfgFile string
	v       = viper.New()
)

var rootCmd = &cobra.Command{
	Use:          "learnpath",
	Short:        "Personalized learning paths in your terminal",
	Long:         "Learnpath: onboard as a learner, then study generated lessons and exercises tailored to your niche and goals.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "Config file (default ./learnpath.yaml, then $XDG_CONFIG_HOME/learnpath/learnpath.yaml)")
	pf.String("db", "", "Path to SQLite database file (overrides LEARNPATH_STORE_PATH)")
	pf.String("api", "", "Backend base URL (overrides LEARNPATH_API_BASE_URL)")
	pf.String("log-level", "", "Log level: debug, info, warn or error")
	cobra.CheckErr(bindFlags(v, pf))

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(versionCmd)
}

// bindFlags maps persistent flags onto their configuration keys.
func bindFlags(vp *viper.Viper, fs *pflag.FlagSet) error {
	for key, flag := range map[string]string{
		"store.path":   "db",
		"api.base_url": "api",
		"log.level":    "log-level",
	} {
		if err := vp.BindPFlag(key, fs.Lookup(flag)); err != nil {
			return fmt.Errorf("bind --%s: %w", flag, err)
		}
	}
	return nil
}

func loadConfig() (config.Config, error) {
	cfg, err := config.Load(v, cfgFile)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// resolveDBPath returns the configured database path (flag, env or config
// file), falling back to the default XDG path.
func resolveDBPath(cfg config.Config) (string, error) {
	if p := cfg.Store.Path; p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

func openStore(cfg config.Config, log *zap.Logger) (*store.Store, error) {
	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath, store.WithLogger(log.Named("store")))
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}

// setup loads configuration and builds the file logger shared by the
// terminal commands.
func setup() (config.Config, *zap.Logger, error) {
	cfg, err := loadConfig()
	if err != nil {
		return config.Config{}, nil, err
	}
	log, err := logger.New(cfg.Log, false)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("init logger: %w", err)
	}
	return cfg, log, nil
}

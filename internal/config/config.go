package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g.
// LEARNPATH_API_BASE_URL.
const EnvPrefix = "LEARNPATH"

// Config holds all learnpath configuration.
type Config struct {
	API    APIConfig    `mapstructure:"api"`
	Store  StoreConfig  `mapstructure:"store"`
	Server ServerConfig `mapstructure:"server"`
	Log    LogConfig    `mapstructure:"log"`
}

// APIConfig points the client at the learning platform backend.
type APIConfig struct {
	BaseURL string `mapstructure:"base_url"`

	// Timeout bounds every backend call. Expiry is reported the same
	// way as a transport failure.
	Timeout time.Duration `mapstructure:"timeout"`
}

// StoreConfig locates the local session database.
type StoreConfig struct {
	// Path of the SQLite file. Empty means the XDG default.
	Path string `mapstructure:"path"`
}

// ServerConfig configures `learnpath serve`.
type ServerConfig struct {
	Port     string `mapstructure:"port"`
	BuildDir string `mapstructure:"build_dir"`
	Mode     string `mapstructure:"mode"` // debug | release
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"` // empty means $XDG_STATE_HOME/learnpath/learnpath.log
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("api.base_url", "http://localhost:5001/api")
	v.SetDefault("api.timeout", 30*time.Second)
	v.SetDefault("store.path", "")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.build_dir", "build")
	v.SetDefault("server.mode", "release")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
}

// Load resolves configuration from defaults, an optional YAML file,
// LEARNPATH_* environment variables and any flags already bound to v.
// configFile may be empty, in which case learnpath.yaml is looked up in
// the working directory and the XDG config directory.
func Load(v *viper.Viper, configFile string) (Config, error) {
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// The deployment platform hands the listen port over as plain PORT.
	_ = v.BindEnv("server.port", EnvPrefix+"_SERVER_PORT", "PORT")

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", configFile, err)
		}
	} else {
		v.SetConfigName("learnpath")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := configDir(); err == nil {
			v.AddConfigPath(dir)
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the values that would otherwise fail late.
func (c Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("api.base_url %q is not an absolute URL", c.API.BaseURL)
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be positive, got %s", c.API.Timeout)
	}
	if c.Server.Port == "" {
		return errors.New("server.port is required")
	}
	switch c.Server.Mode {
	case "debug", "release":
	default:
		return fmt.Errorf("unknown server.mode: %q", c.Server.Mode)
	}
	return nil
}

// configDir returns $XDG_CONFIG_HOME/learnpath, falling back to
// ~/.config/learnpath.
func configDir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "learnpath"), nil
}

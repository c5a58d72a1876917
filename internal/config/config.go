package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// DefaultBaseURL is the public API endpoint.
const DefaultBaseURL = "https://api.clockify.me/api/v1"

// Config holds environment-driven configuration. Fields are read from
// CLOCKIFY_<NAME>, e.g. CLOCKIFY_BASE_URL.
type Config struct {
	APIKey      string        `split_words:"true"`
	BaseURL     string        `split_words:"true" default:"https://api.clockify.me/api/v1"`
	Timeout     time.Duration `default:"30s"`
	MinInterval time.Duration `split_words:"true" default:"100ms"`
	ConfigDir   string        `split_words:"true"` // default: <user config dir>/clockify-cli
	Debug       bool
	// MySQLDSN falls back to the unprefixed MYSQL_DSN.
	// e.g., user:pass@tcp(host:3306)/dbname?parseTime=true&multiStatements=true
	MySQLDSN string `envconfig:"MYSQL_DSN"`
}

// Load reads configuration from environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("clockify", &cfg); err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}

	u, err := url.Parse(cfg.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return cfg, errors.New("CLOCKIFY_BASE_URL must be an absolute URL")
	}
	if cfg.Timeout <= 0 {
		return cfg, errors.New("CLOCKIFY_TIMEOUT must be positive")
	}
	if cfg.MinInterval < 0 {
		return cfg, errors.New("CLOCKIFY_MIN_INTERVAL must not be negative")
	}

	if cfg.ConfigDir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return cfg, fmt.Errorf("config: locate config dir: %w", err)
		}
		cfg.ConfigDir = filepath.Join(base, "clockify-cli")
	}
	return cfg, nil
}

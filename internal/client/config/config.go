// Package config loads runtime settings for the wisatacli client.
//
// Sources are layered, later ones winning: built-in defaults, environment
// variables, an optional JSON file (-c/-config), command-line flags.
package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds runtime settings for the client.
type Config struct {
	// BackendURL is the base URL of the dashboard backend.
	BackendURL string `env:"WISATA_BACKEND_URL"`

	// DatabasePath is the local sqlite file holding persisted credentials.
	DatabasePath string `env:"WISATA_DB_PATH"`

	// RequestTimeout bounds every API call.
	RequestTimeout time.Duration `env:"WISATA_REQUEST_TIMEOUT"`

	// OnlineCheckInterval is how often the client probes session liveness.
	OnlineCheckInterval time.Duration `env:"WISATA_ONLINE_CHECK_INTERVAL"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BackendURL = "http://localhost:8000"
	c.DatabasePath = "wisata.db"
	c.RequestTimeout = 15 * time.Second
	c.OnlineCheckInterval = 30 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from the environment, JSON (if present) and command-line flags (if
// present). Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}

// parseEnv overlays Config with values from the process environment.
func parseEnv(cfg *Config) {
	if err := env.Parse(cfg); err != nil {
		panic(err)
	}
}

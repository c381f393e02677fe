package config

import "time"

// Config holds runtime settings for the storefront CLI.
//
// Fields:
//   - APIBaseURL: root of the backend API, without the /api/v1 suffix.
//   - RequestTimeout: per-request HTTP timeout.
//   - SessionDBPath: SQLite file the session record is persisted in.
//   - Ephemeral: keep the session in memory only (nothing written to disk).
type Config struct {
	APIBaseURL     string
	RequestTimeout time.Duration
	SessionDBPath  string
	Ephemeral      bool
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:8000"
	c.RequestTimeout = 30 * time.Second
	c.SessionDBPath = "session.db"
	c.Ephemeral = false
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}

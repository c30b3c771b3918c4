package config

import "time"

// Config holds runtime settings for the libhub CLI.
//
// Fields:
//   - ServerBaseURL: base URL of the libhub HTTP API.
//   - SessionDBPath: SQLite file the session is persisted in.
//   - RequestTimeout: upper bound for a single API call.
type Config struct {
	ServerBaseURL  string
	SessionDBPath  string
	RequestTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://127.0.0.1:5000"
	c.SessionDBPath = "libhub-session.db"
	c.RequestTimeout = 10 * time.Second
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

package config

import "time"

// Config holds runtime settings for the Sawari CLI.
//
// Fields:
//   - ServerBaseURL: base URL of the account backend HTTP API.
//   - OnlineCheckInterval: how often the client probes backend reachability.
//   - PrefsDBPath: path of the local preferences SQLite database.
type Config struct {
	ServerBaseURL       string
	OnlineCheckInterval time.Duration
	PrefsDBPath         string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://127.0.0.1:8080"
	c.OnlineCheckInterval = 3 * time.Second
	c.PrefsDBPath = "sawari.db"
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

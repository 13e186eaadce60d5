package config

import "time"

// Config holds runtime settings shared by the terminal and web consoles.
//
// Fields:
//   - BackendURL: base URL of the REST backend; parsed once at startup.
//   - RequestTimeout: per-request timeout of the backend client.
//   - WebAddr: listen address of the web console.
//   - SessionSecret: HMAC key signing browsing-session cookies. Empty means a
//     random secret is generated per process.
//   - SessionTTL: idle lifetime of a web browsing session.
//   - CacheDSN: SQLite DSN of the persistent snapshot cache; empty keeps
//     snapshots in memory.
//   - LogLevel / LogFormat: slog level name and "text" or "json".
type Config struct {
	BackendURL     string
	RequestTimeout time.Duration
	WebAddr        string
	SessionSecret  string
	SessionTTL     time.Duration
	CacheDSN       string
	LogLevel       string
	LogFormat      string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BackendURL = "http://127.0.0.1:8080/api"
	c.RequestTimeout = 10 * time.Second
	c.WebAddr = "127.0.0.1:8090"
	c.SessionSecret = ""
	c.SessionTTL = 12 * time.Hour
	c.CacheDSN = ""
	c.LogLevel = "info"
	c.LogFormat = "text"
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

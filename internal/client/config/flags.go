package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/myhealth/internal/flagx"
)

// parseFlags populates cfg from the short command-line flags listed in the
// package documentation. os.Args is filtered through flagx.FilterArgs first so
// that -c/-config and unknown flags do not break parsing. Invalid values panic.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-b", "-t", "-a", "-s", "-e", "-d", "-v", "-f"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.BackendURL, "b", cfg.BackendURL, "base URL of the REST backend")
	requestTimeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "backend request timeout (in seconds)")
	fs.StringVar(&cfg.WebAddr, "a", cfg.WebAddr, "web console listen address")
	fs.StringVar(&cfg.SessionSecret, "s", cfg.SessionSecret, "browsing-session signing secret")
	sessionTTL := fs.Int("e", int(cfg.SessionTTL.Minutes()), "browsing-session idle TTL (in minutes)")
	fs.StringVar(&cfg.CacheDSN, "d", cfg.CacheDSN, "SQLite DSN of the snapshot cache")
	fs.StringVar(&cfg.LogLevel, "v", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.LogFormat, "f", cfg.LogFormat, "log format (text or json)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*requestTimeout) * time.Second
	cfg.SessionTTL = time.Duration(*sessionTTL) * time.Minute
}

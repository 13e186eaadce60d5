// Package config loads runtime configuration for the myhealth consoles.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-b string   base URL of the REST backend
//	-t int      backend request timeout (seconds)
//	-a string   web console listen address
//	-s string   browsing-session signing secret
//	-e int      browsing-session idle TTL (minutes)
//	-d string   SQLite DSN of the snapshot cache (empty = in memory)
//	-v string   log level (debug, info, warn, error)
//	-f string   log format (text, json)
//
// # JSON schema
//
// Durations accept Go duration strings or integer nanoseconds:
//
//	{
//	  "backend_url": "http://127.0.0.1:8080/api",
//	  "request_timeout": "10s",
//	  "web_addr": "127.0.0.1:8090",
//	  "session_secret": "change-me",
//	  "session_ttl": "12h",
//	  "cache_dsn": "file:console.db",
//	  "log_level": "info",
//	  "log_format": "text"
//	}
//
// Keys missing from the file keep their previous value.
package config

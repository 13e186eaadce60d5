package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/myhealth/internal/flagx"
	"github.com/dmitrijs2005/myhealth/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer fields
// tell "absent" apart from "zero" so a partial file only overrides what it
// names.
type JsonConfig struct {
	BackendURL     *string         `json:"backend_url"`
	RequestTimeout *timex.Duration `json:"request_timeout"`
	WebAddr        *string         `json:"web_addr"`
	SessionSecret  *string         `json:"session_secret"`
	SessionTTL     *timex.Duration `json:"session_ttl"`
	CacheDSN       *string         `json:"cache_dsn"`
	LogLevel       *string         `json:"log_level"`
	LogFormat      *string         `json:"log_format"`
}

// parseJson overlays cfg with values loaded from the JSON file named by -c or
// -config. Without either flag it does nothing. Read or decode errors panic:
// the console cannot start with a config file it was told to use but cannot
// read.
func parseJson(cfg *Config) {
	path := flagx.ConfigFile()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	jc.apply(cfg)
}

func (jc *JsonConfig) apply(cfg *Config) {
	setString(&cfg.BackendURL, jc.BackendURL)
	setString(&cfg.WebAddr, jc.WebAddr)
	setString(&cfg.SessionSecret, jc.SessionSecret)
	setString(&cfg.CacheDSN, jc.CacheDSN)
	setString(&cfg.LogLevel, jc.LogLevel)
	setString(&cfg.LogFormat, jc.LogFormat)

	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.SessionTTL != nil {
		cfg.SessionTTL = jc.SessionTTL.Duration
	}
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

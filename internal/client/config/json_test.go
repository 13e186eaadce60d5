package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, data map[string]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.json")
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	t.Run("overrides only named keys", func(t *testing.T) {
		path := writeTempJSON(t, map[string]any{
			"backend_url":     "http://backend:9000",
			"request_timeout": "4s",
			"session_ttl":     "30m",
			"cache_dsn":       "file:snap.db",
		})
		os.Args = []string{"bin", "-config", path}

		cfg := &Config{}
		cfg.LoadDefaults()
		parseJson(cfg)

		assert.Equal(t, "http://backend:9000", cfg.BackendURL)
		assert.Equal(t, 4*time.Second, cfg.RequestTimeout)
		assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
		assert.Equal(t, "file:snap.db", cfg.CacheDSN)
		assert.Equal(t, "127.0.0.1:8090", cfg.WebAddr, "absent key keeps default")
		assert.Equal(t, "info", cfg.LogLevel)
	})

	t.Run("no flag, no changes", func(t *testing.T) {
		os.Args = []string{"bin"}

		cfg := &Config{BackendURL: "keep", RequestTimeout: 42 * time.Second}
		parseJson(cfg)

		assert.Equal(t, "keep", cfg.BackendURL)
		assert.Equal(t, 42*time.Second, cfg.RequestTimeout)
	})

	t.Run("invalid JSON panics", func(t *testing.T) {
		bad := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ not json`), 0o600))
		os.Args = []string{"bin", "-c", bad}

		require.Panics(t, func() { parseJson(&Config{}) })
	})

	t.Run("missing file panics", func(t *testing.T) {
		os.Args = []string{"bin", "-c", filepath.Join(t.TempDir(), "absent.json")}

		require.Panics(t, func() { parseJson(&Config{}) })
	})
}

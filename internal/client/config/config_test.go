package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "http://127.0.0.1:8080/api", c.BackendURL)
	assert.Equal(t, 10*time.Second, c.RequestTimeout)
	assert.Equal(t, "127.0.0.1:8090", c.WebAddr)
	assert.Equal(t, 12*time.Hour, c.SessionTTL)
	assert.Empty(t, c.CacheDSN)
	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, "text", c.LogFormat)
}

func TestLoadConfig_UsesDefaultsWithoutArgs(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"bin"}

	cfg := LoadConfig()

	require.NotNil(t, cfg)
	assert.Equal(t, "http://127.0.0.1:8080/api", cfg.BackendURL)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
}

package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nwgraph.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestLoad_FileAndDefaults(t *testing.T) {
	path := writeFile(t, `
backend:
  url: https://nw.example.com/api
  timeout: 3s
log:
  level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://nw.example.com/api", cfg.Backend.URL)
	assert.Equal(t, 3*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, "nwgraph", cfg.Backend.UserAgent, "default kept")
	assert.Equal(t, ":8080", cfg.Server.ListenAddr)
	assert.Equal(t, 30*time.Minute, cfg.Server.SessionIdleTimeout)
	assert.Equal(t, "json", cfg.Log.Format)

	lvl, err := cfg.Log.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, lvl)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeFile(t, "backend:\n  url: https://file.example.com\n")
	t.Setenv(EnvBackendURL, "https://env.example.com")
	t.Setenv(EnvListenAddr, "127.0.0.1:9000")
	t.Setenv(EnvLogFormat, "text")
	t.Setenv(EnvRequestTimeout, "750ms")
	t.Setenv(EnvSessionIdle, "0s")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://env.example.com", cfg.Backend.URL)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.ListenAddr)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, 750*time.Millisecond, cfg.Backend.Timeout)
	assert.Zero(t, cfg.Server.SessionIdleTimeout)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		require.ErrorIs(t, err, os.ErrNotExist)
	})
	t.Run("bad yaml", func(t *testing.T) {
		_, err := Load(writeFile(t, "backend: [unclosed"))
		require.Error(t, err)
	})
	t.Run("bad timeout env", func(t *testing.T) {
		t.Setenv(EnvBackendURL, "https://nw.example.com")
		t.Setenv(EnvRequestTimeout, "soon")
		_, err := Load("")
		require.ErrorIs(t, err, ErrInvalid)
	})
	t.Run("bad idle env", func(t *testing.T) {
		t.Setenv(EnvBackendURL, "https://nw.example.com")
		t.Setenv(EnvSessionIdle, "forever")
		_, err := Load("")
		require.ErrorIs(t, err, ErrInvalid)
	})
}

func TestValidate(t *testing.T) {
	valid := Default()
	valid.Backend.URL = "http://localhost:8081"
	require.NoError(t, valid.Validate())

	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no backend", func(c *Config) { c.Backend.URL = " " }},
		{"relative backend", func(c *Config) { c.Backend.URL = "/api" }},
		{"zero timeout", func(c *Config) { c.Backend.Timeout = 0 }},
		{"no listen addr", func(c *Config) { c.Server.ListenAddr = "" }},
		{"negative idle timeout", func(c *Config) { c.Server.SessionIdleTimeout = -time.Second }},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid
			tc.mutate(&cfg)
			require.ErrorIs(t, cfg.Validate(), ErrInvalid)
		})
	}
}

func TestApplyEnv_Unset(t *testing.T) {
	cfg := Default()
	require.NoError(t, applyEnv(&cfg, func(string) (string, bool) { return "", false }))
	assert.Equal(t, Default(), cfg)
}

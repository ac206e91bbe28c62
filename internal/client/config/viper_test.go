package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempConfig(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func Test_parseViper(t *testing.T) {
	t.Run("loads from json", func(t *testing.T) {
		path := writeTempConfig(t, "cli.json", `{"server_url":"http://www.example:9000","online_check_interval":"10s"}`)
		cfg := &Config{}
		cfg.LoadDefaults()

		require.NoError(t, parseViper(cfg, []string{"-config", path}))
		assert.Equal(t, "http://www.example:9000", cfg.ServerURL)
		assert.Equal(t, 10*time.Second, cfg.OnlineCheckInterval)
		assert.Equal(t, "pdstore-session.db", cfg.SessionFile)
	})

	t.Run("no file and no env keeps values", func(t *testing.T) {
		cfg := &Config{ServerURL: "http://defaults:1234", OnlineCheckInterval: 42 * time.Second}

		require.NoError(t, parseViper(cfg, nil))
		assert.Equal(t, "http://defaults:1234", cfg.ServerURL)
		assert.Equal(t, 42*time.Second, cfg.OnlineCheckInterval)
	})

	t.Run("env overrides file", func(t *testing.T) {
		path := writeTempConfig(t, "cli.yaml", "request_timeout: 5s\n")
		t.Setenv("PDSCLI_REQUEST_TIMEOUT", "1s")
		cfg := &Config{}
		cfg.LoadDefaults()

		require.NoError(t, parseViper(cfg, []string{"-c", path}))
		assert.Equal(t, time.Second, cfg.RequestTimeout)
	})

	t.Run("invalid file", func(t *testing.T) {
		bad := writeTempConfig(t, "bad.json", `{ this is not valid json`)
		cfg := &Config{}

		require.Error(t, parseViper(cfg, []string{"-c", bad}))
	})
}

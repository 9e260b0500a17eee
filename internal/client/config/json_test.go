package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cli.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestParseJson(t *testing.T) {
	t.Run("overrides from file", func(t *testing.T) {
		path := writeConfigFile(t, `{
			"server_endpoint_addr": "http://todo.example:9000",
			"online_check_interval": "10s",
			"request_timeout": 3000000000
		}`)

		cfg := &Config{}
		require.NoError(t, parseJson(cfg, []string{"-config", path}))

		assert.Equal(t, "http://todo.example:9000", cfg.ServerEndpointAddr)
		assert.Equal(t, 10*time.Second, cfg.OnlineCheckInterval)
		assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
	})

	t.Run("no flag means no changes", func(t *testing.T) {
		cfg := &Config{ServerEndpointAddr: "defaults:1234", OnlineCheckInterval: 42 * time.Second}
		require.NoError(t, parseJson(cfg, []string{"-a", "other:1"}))

		assert.Equal(t, "defaults:1234", cfg.ServerEndpointAddr)
		assert.Equal(t, 42*time.Second, cfg.OnlineCheckInterval)
	})

	t.Run("partial file keeps other fields", func(t *testing.T) {
		path := writeConfigFile(t, `{"online_check_interval": "2s"}`)

		cfg := &Config{ServerEndpointAddr: "defaults:1234", RequestTimeout: time.Second}
		require.NoError(t, parseJson(cfg, []string{"-c", path}))

		assert.Equal(t, "defaults:1234", cfg.ServerEndpointAddr)
		assert.Equal(t, 2*time.Second, cfg.OnlineCheckInterval)
		assert.Equal(t, time.Second, cfg.RequestTimeout)
	})

	t.Run("invalid JSON", func(t *testing.T) {
		path := writeConfigFile(t, `{ this is not valid json`)

		err := parseJson(&Config{}, []string{"-c", path})
		assert.ErrorContains(t, err, "decode client config")
	})
}

func TestLoadConfig_FileThenFlags(t *testing.T) {
	path := writeConfigFile(t, `{"server_endpoint_addr": "file.example:1", "request_timeout": "7s"}`)

	cfg, err := LoadConfig([]string{"-c", path, "-a", "https://flag.example/"})
	require.NoError(t, err)

	assert.Equal(t, "https://flag.example", cfg.ServerEndpointAddr)
	assert.Equal(t, 7*time.Second, cfg.RequestTimeout)
}

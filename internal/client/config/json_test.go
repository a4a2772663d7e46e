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

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	if name == "" {
		name = "cfg.json"
	}
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJSON(t *testing.T) {
	dir := t.TempDir()
	path := writeTempJSON(t, dir, "flag.json", map[string]any{
		"backend_url":                 "https://shop.example",
		"request_timeout":             "10s",
		"auto_logout_on_unauthorized": true,
		"store_driver":                "redis",
		"redis_addr":                  "cache:6379",
		"store_namespace":             "laptop",
	})

	t.Run("loads from -config", func(t *testing.T) {
		cfg := &Config{}
		cfg.LoadDefaults()
		require.NoError(t, parseJSON(cfg, []string{"-config", path}))

		assert.Equal(t, "https://shop.example", cfg.BackendURL)
		assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
		assert.True(t, cfg.AutoLogoutOnUnauthorized)
		assert.Equal(t, DriverRedis, cfg.StoreDriver)
		assert.Equal(t, "cache:6379", cfg.RedisAddr)
		assert.Equal(t, "laptop", cfg.StoreNamespace)
		assert.Equal(t, "/api", cfg.APIPath, "absent fields keep their value")
		assert.Equal(t, "eduroot.db", cfg.StorePath)
	})

	t.Run("integer nanoseconds", func(t *testing.T) {
		p := writeTempJSON(t, dir, "ns.json", map[string]any{"request_timeout": int64(2 * time.Second)})
		cfg := &Config{}
		require.NoError(t, parseJSON(cfg, []string{"-c", p}))
		assert.Equal(t, 2*time.Second, cfg.RequestTimeout)
	})

	t.Run("no flag → no changes", func(t *testing.T) {
		cfg := &Config{BackendURL: "http://defaults:1234", RequestTimeout: 42 * time.Second}
		require.NoError(t, parseJSON(cfg, nil))

		assert.Equal(t, "http://defaults:1234", cfg.BackendURL)
		assert.Equal(t, 42*time.Second, cfg.RequestTimeout)
	})

	t.Run("invalid JSON → error", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))

		assert.Error(t, parseJSON(&Config{}, []string{"-config", bad}))
	})

	t.Run("missing file → error", func(t *testing.T) {
		assert.Error(t, parseJSON(&Config{}, []string{"-c", filepath.Join(dir, "nope.json")}))
	})
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("HOME", dir)
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "memory", cfg.Storage.Driver)
	assert.Equal(t, "memory", cfg.Cache.Driver)
	assert.Equal(t, time.Hour, cfg.Cache.TTL)
	assert.Equal(t, 360, cfg.Planner.CapMonths)
	assert.Equal(t, int32(2), cfg.Planner.Precision)
	assert.False(t, cfg.AI.Enabled)
}

func TestLoad_FileAndEnvironment(t *testing.T) {
	dir := chdirTemp(t)
	path := filepath.Join(dir, "planner.yaml")
	content := `
log:
  level: debug
storage:
  driver: sqlite
  sqlite_path: /tmp/debts.db
planner:
  precision: 0
cache:
  ttl: 5m
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("DEBTPLAN_PLANNER_CAP_MONTHS", "120")
	t.Setenv("GEMINI_API_KEY", "secret")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "sqlite", cfg.Storage.Driver)
	assert.Equal(t, "/tmp/debts.db", cfg.Storage.SQLitePath)
	assert.Equal(t, int32(0), cfg.Planner.Precision)
	assert.Equal(t, 120, cfg.Planner.CapMonths)
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, "secret", cfg.AI.APIKey)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	chdirTemp(t)
	_, err := Load("/nonexistent/config.yaml")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	chdirTemp(t)

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "bad log format", mutate: func(c *Config) { c.Log.Format = "xml" }},
		{name: "unknown storage", mutate: func(c *Config) { c.Storage.Driver = "mongo" }},
		{name: "postgres without dsn", mutate: func(c *Config) { c.Storage.Driver = "postgres" }},
		{name: "unknown cache", mutate: func(c *Config) { c.Cache.Driver = "memcached" }},
		{name: "zero cap", mutate: func(c *Config) { c.Planner.CapMonths = 0 }},
		{name: "negative precision", mutate: func(c *Config) { c.Planner.Precision = -1 }},
		{name: "ai without key", mutate: func(c *Config) { c.AI.Enabled = true; c.AI.APIKey = "" }},
		{name: "zero burst", mutate: func(c *Config) { c.RateLimit.Burst = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load("")
			require.NoError(t, err)
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoadEnv(t *testing.T) {
	dir := chdirTemp(t)
	path := filepath.Join(dir, "custom.env")
	require.NoError(t, os.WriteFile(path, []byte("DEBTPLAN_TEST_VALUE=loaded\n"), 0o600))

	t.Setenv("ENV_FILE", path)
	t.Setenv("DEBTPLAN_TEST_VALUE", "")
	require.NoError(t, os.Unsetenv("DEBTPLAN_TEST_VALUE"))

	require.NoError(t, LoadEnv())
	assert.Equal(t, "loaded", os.Getenv("DEBTPLAN_TEST_VALUE"))
	require.NoError(t, os.Unsetenv("DEBTPLAN_TEST_VALUE"))
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/runfit/internal/infra/dataset"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))
	_, err := Load()
	require.Error(t, err)

	cfg := defaultConfig()
	require.NoError(t, cfg.Validate())
	require.Equal(t, ":8080", cfg.HTTP.Address)
	require.Equal(t, dataset.DefaultSheets, cfg.Dataset.Sheets)
	require.Equal(t, 60*time.Second, cfg.Dataset.FetchTimeout)
	require.Equal(t, dataset.DefaultFallbackFiles, cfg.Dataset.FallbackFiles)

	cfg.Dataset.FallbackFiles[0] = "changed.xlsx"
	require.NotEqual(t, "changed.xlsx", dataset.DefaultFallbackFiles[0])
}

func TestLoadFromFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
http:
  address: ":9000"
dataset:
  file: catalog.xlsx
  sqlite:
    path: local.sqlite
`), 0o644))
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("DATA_URL", " https://example.com/data.xlsx ")
	t.Setenv("DATA_SHEETS", "Sheet1, Data")
	t.Setenv("DATA_CACHE_TTL", "15m")
	t.Setenv("HTTP_RATE_LIMIT_ENABLED", "false")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":9000", cfg.HTTP.Address)
	require.Equal(t, "catalog.xlsx", cfg.Dataset.File)
	require.Equal(t, "local.sqlite", cfg.Dataset.SQLite.Path)
	require.Equal(t, "https://example.com/data.xlsx", cfg.Dataset.URL)
	require.Equal(t, []string{"Sheet1", "Data"}, cfg.Dataset.Sheets)
	require.Equal(t, 15*time.Minute, cfg.Dataset.Cache.TTL)
	require.False(t, cfg.HTTP.RateLimit.Enabled)
}

func TestPortOverride(t *testing.T) {
	cfg := defaultConfig()
	t.Setenv("PORT", "7860")
	applyEnvOverrides(cfg)
	require.Equal(t, ":7860", cfg.HTTP.Address)

	t.Setenv("HTTP_ADDRESS", "127.0.0.1:8000")
	applyEnvOverrides(cfg)
	require.Equal(t, "127.0.0.1:8000", cfg.HTTP.Address)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"empty address", func(c *Config) { c.HTTP.Address = "" }, "http.address"},
		{"bad format", func(c *Config) { c.Dataset.Format = "parquet" }, "dataset.format"},
		{"long delimiter", func(c *Config) { c.Dataset.Delimiter = ";;" }, "dataset.delimiter"},
		{"cache without addr", func(c *Config) { c.Dataset.Cache.Enabled = true }, "dataset.cache.addr"},
		{"object without endpoint", func(c *Config) {
			c.Dataset.ObjectStore.Bucket = "b"
			c.Dataset.ObjectStore.Key = "k"
		}, "dataset.objectStore.endpoint"},
		{"postgres without table", func(c *Config) { c.Dataset.Postgres.DSN = "postgres://x" }, "dataset.postgres.table"},
		{"zero burst", func(c *Config) { c.HTTP.RateLimit.Burst = 0 }, "http.rateLimit.burst"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := defaultConfig()
			tc.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			require.Contains(t, err.Error(), tc.want)
		})
	}
}

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/yanqian/runfit/internal/infra/dataset"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	Dataset DatasetConfig `yaml:"dataset"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address        string          `yaml:"address"`
	ReadTimeout    time.Duration   `yaml:"readTimeout"`
	WriteTimeout   time.Duration   `yaml:"writeTimeout"`
	AllowedOrigins []string        `yaml:"allowedOrigins"`
	RateLimit      RateLimitConfig `yaml:"rateLimit"`
	Retry          RetryConfig     `yaml:"retry"`
}

// RateLimitConfig drives the request limiting middleware.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requestsPerMinute"`
	Burst             int  `yaml:"burst"`
}

// RetryConfig configures best-effort replays of side-effect free POST routes.
type RetryConfig struct {
	Enabled     bool          `yaml:"enabled"`
	MaxAttempts int           `yaml:"maxAttempts"`
	BaseBackoff time.Duration `yaml:"baseBackoff"`
	Paths       []string      `yaml:"paths"`
}

// DatasetConfig locates the product catalog. The first configured source in
// the order url, objectStore, postgres, sqlite, file/fallbackFiles is used.
type DatasetConfig struct {
	URL           string            `yaml:"url"`
	File          string            `yaml:"file"`
	FallbackFiles []string          `yaml:"fallbackFiles"`
	Format        string            `yaml:"format"`
	Sheets        []string          `yaml:"sheets"`
	Delimiter     string            `yaml:"delimiter"`
	FetchTimeout  time.Duration     `yaml:"fetchTimeout"`
	Cache         CacheConfig       `yaml:"cache"`
	ObjectStore   ObjectStoreConfig `yaml:"objectStore"`
	Postgres      PostgresConfig    `yaml:"postgres"`
	SQLite        SQLiteConfig      `yaml:"sqlite"`
}

// CacheConfig contains connection information for the download cache.
type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Addr    string        `yaml:"addr"`
	TTL     time.Duration `yaml:"ttl"`
	Prefix  string        `yaml:"prefix"`
}

// ObjectStoreConfig points at a workbook in S3-compatible storage.
type ObjectStoreConfig struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"accessKey"`
	SecretKey string `yaml:"secretKey"`
	Bucket    string `yaml:"bucket"`
	Key       string `yaml:"key"`
	Region    string `yaml:"region"`
}

// PostgresConfig contains DSN and pooling settings.
type PostgresConfig struct {
	DSN      string `yaml:"dsn"`
	Table    string `yaml:"table"`
	MaxConns int32  `yaml:"maxConns"`
}

// SQLiteConfig points at a local database file.
type SQLiteConfig struct {
	Path  string `yaml:"path"`
	Table string `yaml:"table"`
}

// Load reads configuration from a YAML file and environment variables.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("PORT"); v != "" {
		cfg.HTTP.Address = ":" + strings.TrimPrefix(v, ":")
	}
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("HTTP_ALLOWED_ORIGINS"); v != "" {
		cfg.HTTP.AllowedOrigins = splitList(v)
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_ENABLED"); v != "" {
		cfg.HTTP.RateLimit.Enabled = parseBool(v)
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_RPM"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.RequestsPerMinute = parsed
		}
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_BURST"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.Burst = parsed
		}
	}
	if v := os.Getenv("HTTP_RETRY_ENABLED"); v != "" {
		cfg.HTTP.Retry.Enabled = parseBool(v)
	}
	if v := os.Getenv("HTTP_RETRY_MAX_ATTEMPTS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.Retry.MaxAttempts = parsed
		}
	}
	if v := os.Getenv("HTTP_RETRY_BASE_BACKOFF"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.HTTP.Retry.BaseBackoff = parsed
		}
	}
	if v := os.Getenv("DATA_URL"); v != "" {
		cfg.Dataset.URL = strings.TrimSpace(v)
	}
	if v := os.Getenv("DATA_FILE"); v != "" {
		cfg.Dataset.File = strings.TrimSpace(v)
	}
	if v := os.Getenv("DATA_FORMAT"); v != "" {
		cfg.Dataset.Format = v
	}
	if v := os.Getenv("DATA_SHEETS"); v != "" {
		cfg.Dataset.Sheets = splitList(v)
	}
	if v := os.Getenv("DATA_FETCH_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Dataset.FetchTimeout = parsed
		}
	}
	if v := os.Getenv("DATA_CACHE_ENABLED"); v != "" {
		cfg.Dataset.Cache.Enabled = parseBool(v)
	}
	if v := os.Getenv("DATA_CACHE_ADDR"); v != "" {
		cfg.Dataset.Cache.Addr = v
	}
	if v := os.Getenv("DATA_CACHE_TTL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Dataset.Cache.TTL = parsed
		}
	}
	if v := os.Getenv("DATA_OBJECT_ENDPOINT"); v != "" {
		cfg.Dataset.ObjectStore.Endpoint = v
	}
	if v := os.Getenv("DATA_OBJECT_ACCESS_KEY"); v != "" {
		cfg.Dataset.ObjectStore.AccessKey = v
	}
	if v := os.Getenv("DATA_OBJECT_SECRET_KEY"); v != "" {
		cfg.Dataset.ObjectStore.SecretKey = v
	}
	if v := os.Getenv("DATA_OBJECT_BUCKET"); v != "" {
		cfg.Dataset.ObjectStore.Bucket = v
	}
	if v := os.Getenv("DATA_OBJECT_KEY"); v != "" {
		cfg.Dataset.ObjectStore.Key = v
	}
	if v := os.Getenv("DATA_OBJECT_REGION"); v != "" {
		cfg.Dataset.ObjectStore.Region = v
	}
	if v := os.Getenv("DATA_POSTGRES_DSN"); v != "" {
		cfg.Dataset.Postgres.DSN = v
	}
	if v := os.Getenv("DATA_POSTGRES_TABLE"); v != "" {
		cfg.Dataset.Postgres.Table = v
	}
	if v := os.Getenv("DATA_SQLITE_PATH"); v != "" {
		cfg.Dataset.SQLite.Path = v
	}
	if v := os.Getenv("DATA_SQLITE_TABLE"); v != "" {
		cfg.Dataset.SQLite.Table = v
	}
}

func parseBool(v string) bool {
	return v == "1" || strings.EqualFold(v, "true")
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:        ":8080",
			ReadTimeout:    5 * time.Second,
			WriteTimeout:   5 * time.Second,
			AllowedOrigins: []string{"*"},
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 120,
				Burst:             30,
			},
			Retry: RetryConfig{
				Enabled:     true,
				MaxAttempts: 2,
				BaseBackoff: 100 * time.Millisecond,
				Paths:       []string{"/api/v1/recommendations"},
			},
		},
		Dataset: DatasetConfig{
			FallbackFiles: append([]string(nil), dataset.DefaultFallbackFiles...),
			Sheets:        append([]string(nil), dataset.DefaultSheets...),
			Delimiter:     ",",
			FetchTimeout:  60 * time.Second,
			Cache: CacheConfig{
				Enabled: false,
				TTL:     time.Hour,
				Prefix:  "runfit:dataset",
			},
			Postgres: PostgresConfig{
				MaxConns: 2,
			},
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if c.HTTP.RateLimit.Enabled {
		if c.HTTP.RateLimit.RequestsPerMinute <= 0 {
			return errors.New("http.rateLimit.requestsPerMinute must be positive")
		}
		if c.HTTP.RateLimit.Burst <= 0 {
			return errors.New("http.rateLimit.burst must be positive")
		}
	}
	if c.HTTP.Retry.Enabled {
		if c.HTTP.Retry.MaxAttempts <= 0 {
			return errors.New("http.retry.maxAttempts must be positive")
		}
		if c.HTTP.Retry.BaseBackoff <= 0 {
			return errors.New("http.retry.baseBackoff must be positive")
		}
	}
	switch strings.ToLower(strings.TrimSpace(c.Dataset.Format)) {
	case "", "auto", "xlsx", "excel", "xlsm", "csv":
	default:
		return fmt.Errorf("dataset.format %q is not supported", c.Dataset.Format)
	}
	if len([]rune(c.Dataset.Delimiter)) > 1 {
		return errors.New("dataset.delimiter must be a single character")
	}
	if c.Dataset.FetchTimeout < 0 {
		return errors.New("dataset.fetchTimeout cannot be negative")
	}
	if c.Dataset.Cache.Enabled && strings.TrimSpace(c.Dataset.Cache.Addr) == "" {
		return errors.New("dataset.cache.addr cannot be empty when the cache is enabled")
	}
	if c.Dataset.Cache.TTL < 0 {
		return errors.New("dataset.cache.ttl cannot be negative")
	}
	if obj := c.Dataset.ObjectStore; obj.Bucket != "" && obj.Key != "" && strings.TrimSpace(obj.Endpoint) == "" {
		return errors.New("dataset.objectStore.endpoint cannot be empty when bucket and key are set")
	}
	if strings.TrimSpace(c.Dataset.Postgres.DSN) != "" && strings.TrimSpace(c.Dataset.Postgres.Table) == "" {
		return errors.New("dataset.postgres.table cannot be empty when dsn is set")
	}
	return nil
}

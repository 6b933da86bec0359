package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/runfit/internal/domain/catalog"
	"github.com/yanqian/runfit/internal/infra/config"
	"github.com/yanqian/runfit/internal/infra/dataset"
	apperrors "github.com/yanqian/runfit/pkg/errors"
)

func provideParseOptions(cfg *config.Config) (dataset.ParseOptions, error) {
	format, err := dataset.ParseFormat(cfg.Dataset.Format)
	if err != nil {
		return dataset.ParseOptions{}, err
	}
	opts := dataset.ParseOptions{
		Format: format,
		Sheets: cfg.Dataset.Sheets,
	}
	if d := []rune(cfg.Dataset.Delimiter); len(d) == 1 {
		opts.Delimiter = d[0]
	}
	return opts, nil
}

func provideDatasetOptions(cfg *config.Config) dataset.Options {
	obj := cfg.Dataset.ObjectStore
	return dataset.Options{
		URL:           cfg.Dataset.URL,
		File:          cfg.Dataset.File,
		FallbackFiles: cfg.Dataset.FallbackFiles,
		ObjectStore: dataset.ObjectStoreConfig{
			Endpoint:  obj.Endpoint,
			AccessKey: obj.AccessKey,
			SecretKey: obj.SecretKey,
			Bucket:    obj.Bucket,
			Key:       obj.Key,
			Region:    obj.Region,
		},
		PostgresDSN:   cfg.Dataset.Postgres.DSN,
		PostgresTable: cfg.Dataset.Postgres.Table,
		SQLitePath:    cfg.Dataset.SQLite.Path,
		SQLiteTable:   cfg.Dataset.SQLite.Table,
	}
}

// provideBlobCache returns nil when download caching is disabled.
func provideBlobCache(cfg *config.Config, logger *slog.Logger) dataset.BlobCache {
	if !cfg.Dataset.Cache.Enabled {
		return nil
	}
	opt, err := buildValkeyOptions(cfg.Dataset.Cache.Addr)
	if err != nil {
		logger.Error("invalid valkey configuration, falling back to memory cache", "error", err)
		return dataset.NewMemoryCache()
	}
	client, err := valkey.NewClient(opt)
	if err != nil {
		logger.Error("failed to create valkey client, falling back to memory cache", "error", err)
		return dataset.NewMemoryCache()
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		logger.Error("valkey ping failed, falling back to memory cache", "error", err)
		client.Close()
		return dataset.NewMemoryCache()
	}
	logger.Info("dataset valkey cache enabled", "addr", cfg.Dataset.Cache.Addr)
	return dataset.NewValkeyCache(client, cfg.Dataset.Cache.Prefix)
}

func buildValkeyOptions(addr string) (valkey.ClientOption, error) {
	if strings.Contains(addr, "://") {
		return valkey.ParseURL(addr)
	}
	return valkey.ClientOption{InitAddress: []string{addr}}, nil
}

func provideDatasetLoader(cfg *config.Config, opts dataset.Options, parse dataset.ParseOptions, cache dataset.BlobCache, logger *slog.Logger) (dataset.Loader, error) {
	source := dataset.SelectSource(opts)
	logger.Info("dataset source selected", "source", source)
	switch source {
	case dataset.SourceURL:
		return dataset.NewHTTPLoader(opts.URL, cfg.Dataset.FetchTimeout, parse, cache, cfg.Dataset.Cache.TTL, logger), nil
	case dataset.SourceObject:
		return dataset.NewObjectLoader(opts.ObjectStore, parse, logger)
	case dataset.SourcePostgres:
		pool, err := openPostgres(cfg.Dataset.Postgres)
		if err != nil {
			return nil, err
		}
		return dataset.NewPostgresLoader(pool, opts.PostgresTable, logger), nil
	case dataset.SourceSQLite:
		return dataset.NewSQLiteLoader(opts.SQLitePath, opts.SQLiteTable, logger), nil
	default:
		return dataset.NewFileLoader(dataset.FileCandidates(opts), parse), nil
	}
}

func openPostgres(cfg config.PostgresConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(strings.TrimSpace(cfg.DSN))
	if err != nil {
		return nil, fmt.Errorf("invalid postgres dsn: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolConfig.MaxConns = cfg.MaxConns
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		return nil, fmt.Errorf("init postgres pool: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres ping: %w", err)
	}
	return pool, nil
}

// provideSnapshot loads the catalog once; the snapshot is immutable afterwards.
func provideSnapshot(cfg *config.Config, loader dataset.Loader, logger *slog.Logger) (*catalog.Snapshot, error) {
	timeout := cfg.Dataset.FetchTimeout
	if timeout <= 0 {
		timeout = time.Minute
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if closer, ok := loader.(io.Closer); ok {
		defer func() {
			if err := closer.Close(); err != nil {
				logger.Warn("close dataset source failed", "source", loader.Describe(), "error", err)
			}
		}()
	}

	ds, err := loader.Load(ctx)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeDatasetError, "load dataset from "+loader.Describe(), err)
	}
	snap := catalog.NewSnapshot(ds, loader.Describe())
	if absent := snap.Schema.Absent(); len(absent) > 0 {
		logger.Warn("catalog fields not found, rows will not match their filters", "fields", absent)
	}
	if len(snap.Schema.Output) < len(catalog.OutputLetters) {
		logger.Warn("some output columns are out of range", "resolved", snap.Schema.Output)
	}
	logger.Info("catalog snapshot ready", "snapshot", snap.ID, "source", snap.Source, "rows", ds.Len(), "columns", len(ds.Columns))
	return snap, nil
}

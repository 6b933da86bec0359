package dataset

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/yanqian/runfit/internal/domain/catalog"
)

// ObjectStoreConfig addresses a workbook held in an S3-compatible bucket.
type ObjectStoreConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Key       string
	Region    string
}

// ObjectLoader reads the dataset from S3-compatible storage (R2, MinIO, S3).
type ObjectLoader struct {
	client   *minio.Client
	bucket   string
	key      string
	parse    ParseOptions
	maxBytes int64
	logger   *slog.Logger
}

// NewObjectLoader constructs the loader.
func NewObjectLoader(cfg ObjectStoreConfig, parse ParseOptions, logger *slog.Logger) (*ObjectLoader, error) {
	if logger == nil {
		logger = slog.Default()
	}
	cleanEndpoint := sanitizeEndpoint(cfg.Endpoint)
	useSSL := !strings.HasPrefix(strings.ToLower(strings.TrimSpace(cfg.Endpoint)), "http://")
	client, err := minio.New(cleanEndpoint, &minio.Options{
		Creds:        credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure:       useSSL,
		Region:       cfg.Region,
		BucketLookup: minio.BucketLookupPath,
	})
	if err != nil {
		return nil, fmt.Errorf("init object store client: %w", err)
	}
	return &ObjectLoader{
		client:   client,
		bucket:   cfg.Bucket,
		key:      cfg.Key,
		parse:    parse,
		maxBytes: maxDownloadBytes,
		logger:   logger.With("component", "dataset.object"),
	}, nil
}

// Describe implements Loader.
func (l *ObjectLoader) Describe() string {
	return fmt.Sprintf("object:%s/%s", l.bucket, l.key)
}

// Load implements Loader.
func (l *ObjectLoader) Load(ctx context.Context) (catalog.Dataset, error) {
	obj, err := l.client.GetObject(ctx, l.bucket, l.key, minio.GetObjectOptions{})
	if err != nil {
		return catalog.Dataset{}, fmt.Errorf("get object: %w", err)
	}
	defer obj.Close()
	// GetObject is lazy; Stat surfaces a missing key before reading.
	info, err := obj.Stat()
	if err != nil {
		return catalog.Dataset{}, fmt.Errorf("stat object: %w", err)
	}
	data, err := readLimited(obj, l.maxBytes)
	if err != nil {
		return catalog.Dataset{}, fmt.Errorf("read object: %w", err)
	}
	l.logger.Info("dataset object fetched", "bucket", l.bucket, "key", l.key, "bytes", len(data), "etag", info.ETag)
	ds, err := Parse(l.key, data, l.parse)
	if err != nil {
		return catalog.Dataset{}, fmt.Errorf("parse object %s: %w", l.key, err)
	}
	return ds, nil
}

func sanitizeEndpoint(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return raw
	}
	raw = strings.TrimPrefix(strings.TrimPrefix(raw, "https://"), "http://")
	if i := strings.Index(raw, "/"); i >= 0 {
		raw = raw[:i]
	}
	return raw
}

var _ Loader = (*ObjectLoader)(nil)

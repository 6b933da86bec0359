package dataset

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/yanqian/runfit/internal/domain/catalog"
)

const (
	defaultFetchTimeout = 60 * time.Second
	maxDownloadBytes    = 64 << 20
)

// HTTPLoader downloads the dataset from a URL.
type HTTPLoader struct {
	url        string
	parse      ParseOptions
	httpClient *http.Client
	cache      BlobCache
	cacheTTL   time.Duration
	maxBytes   int64
	logger     *slog.Logger
}

// NewHTTPLoader builds a loader for rawURL. Share links from cloud drives are
// rewritten to direct downloads. cache may be nil.
func NewHTTPLoader(rawURL string, timeout time.Duration, parse ParseOptions, cache BlobCache, cacheTTL time.Duration, logger *slog.Logger) *HTTPLoader {
	if timeout <= 0 {
		timeout = defaultFetchTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &HTTPLoader{
		url:   RewriteCloudLink(rawURL),
		parse: parse,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		cache:    cache,
		cacheTTL: cacheTTL,
		maxBytes: maxDownloadBytes,
		logger:   logger.With("component", "dataset.http"),
	}
}

// Describe implements Loader.
func (l *HTTPLoader) Describe() string {
	return "url:" + l.url
}

// Load implements Loader.
func (l *HTTPLoader) Load(ctx context.Context) (catalog.Dataset, error) {
	body, err := l.fetch(ctx)
	if err != nil {
		return catalog.Dataset{}, err
	}
	ds, err := Parse(nameFromURL(l.url), body, l.parse)
	if err != nil {
		return catalog.Dataset{}, fmt.Errorf("parse downloaded dataset: %w", err)
	}
	return ds, nil
}

func (l *HTTPLoader) fetch(ctx context.Context) ([]byte, error) {
	if l.cache != nil {
		data, ok, err := l.cache.Get(ctx, l.url)
		if err != nil {
			l.logger.Warn("dataset cache read failed", "error", err)
		} else if ok {
			l.logger.Info("dataset served from cache", "bytes", len(data))
			return data, nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build dataset request: %w", err)
	}
	resp, err := l.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("dataset request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, fmt.Errorf("dataset request error: status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(payload)))
	}

	body, err := readLimited(resp.Body, l.maxBytes)
	if err != nil {
		return nil, fmt.Errorf("read dataset response: %w", err)
	}
	l.logger.Info("dataset downloaded", "bytes", len(body))

	if l.cache != nil {
		if err := l.cache.Set(ctx, l.url, body, l.cacheTTL); err != nil {
			l.logger.Warn("dataset cache write failed", "error", err)
		}
	}
	return body, nil
}

var _ Loader = (*HTTPLoader)(nil)

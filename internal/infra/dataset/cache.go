package dataset

import (
	"context"
	"sync"
	"time"
)

// BlobCache keeps downloaded dataset bytes between process restarts.
type BlobCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
}

type blobRecord struct {
	data      []byte
	expiresAt time.Time
}

// MemoryCache is an in-memory BlobCache for tests/dev.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]blobRecord
	now     func() time.Time
}

// NewMemoryCache constructs a cache backed by process memory.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]blobRecord),
		now:     time.Now,
	}
}

// Get implements BlobCache.
func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.RLock()
	record, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if c.hasExpired(record.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return nil, false, nil
	}
	return append([]byte(nil), record.data...), true, nil
}

// Set stores data with optional TTL.
func (c *MemoryCache) Set(_ context.Context, key string, data []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	exp := time.Time{}
	if ttl > 0 {
		exp = c.now().Add(ttl)
	}
	c.entries[key] = blobRecord{
		data:      append([]byte(nil), data...),
		expiresAt: exp,
	}
	return nil
}

func (c *MemoryCache) hasExpired(ts time.Time) bool {
	if ts.IsZero() {
		return false
	}
	return ts.Before(c.now())
}

var _ BlobCache = (*MemoryCache)(nil)

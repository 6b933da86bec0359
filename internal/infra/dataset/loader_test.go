package dataset

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestHTTPLoaderCachesDownload(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte("Kod,1\nA-1,Erkek\n"))
	}))
	defer srv.Close()

	cache := NewMemoryCache()
	loader := NewHTTPLoader(srv.URL+"/catalog.csv", time.Second, ParseOptions{}, cache, time.Minute, discardLogger())

	ds, err := loader.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, ds.Len())

	ds, err = loader.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, ds.Len())
	require.Equal(t, int32(1), hits.Load())
}

func TestHTTPLoaderStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	loader := NewHTTPLoader(srv.URL+"/catalog.csv", time.Second, ParseOptions{}, nil, 0, discardLogger())
	_, err := loader.Load(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "status=404")
}

func TestHTTPLoaderRejectsOversizedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("Kod,1\nA-1,Erkek\nA-2,Kadin\n"))
	}))
	defer srv.Close()

	cache := NewMemoryCache()
	loader := NewHTTPLoader(srv.URL+"/catalog.csv", time.Second, ParseOptions{}, cache, time.Minute, discardLogger())
	loader.maxBytes = 10

	_, err := loader.Load(context.Background())
	require.ErrorIs(t, err, ErrTooLarge)
	_, ok, err := cache.Get(context.Background(), srv.URL+"/catalog.csv")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestReadLimited(t *testing.T) {
	data, err := readLimited(strings.NewReader("abcd"), 4)
	require.NoError(t, err)
	require.Equal(t, "abcd", string(data))

	_, err = readLimited(strings.NewReader("abcde"), 4)
	require.ErrorIs(t, err, ErrTooLarge)
}

func TestHTTPLoaderRewritesShareLink(t *testing.T) {
	loader := NewHTTPLoader("https://www.dropbox.com/s/k/data.xlsx?dl=0", 0, ParseOptions{}, nil, 0, nil)
	require.Equal(t, "url:https://www.dropbox.com/s/k/data.xlsx?raw=1", loader.Describe())
}

func TestFileLoaderUsesFirstExisting(t *testing.T) {
	dir := t.TempDir()
	second := filepath.Join(dir, "second.csv")
	require.NoError(t, os.WriteFile(second, []byte("Kod\nB-1\n"), 0o644))

	loader := NewFileLoader([]string{filepath.Join(dir, "missing.csv"), " ", second}, ParseOptions{})
	ds, err := loader.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, "B-1", ds.Value(0, 0))
}

func TestFileLoaderNotFound(t *testing.T) {
	loader := NewFileLoader([]string{filepath.Join(t.TempDir(), "none.xlsx")}, ParseOptions{})
	_, err := loader.Load(context.Background())
	require.True(t, errors.Is(err, ErrNotFound))
}

func TestSQLiteLoader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.sqlite")
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	_, err = db.Exec(`CREATE TABLE shoes ("Kod" TEXT, "1" TEXT, "6" REAL)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO shoes VALUES ('A-1', 'Erkek', 1.2), ('A-2', NULL, NULL)`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	ds, err := NewSQLiteLoader(path, "", discardLogger()).Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"Kod", "1", "6"}, ds.Columns)
	require.Equal(t, 2, ds.Len())
	require.Equal(t, "Erkek", ds.Value(0, 1))
	require.Equal(t, 1.2, ds.Value(0, 2))
	require.Nil(t, ds.Value(1, 1))
}

func TestSQLiteLoaderEmptyDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.sqlite")
	_, err := NewSQLiteLoader(path, "", discardLogger()).Load(context.Background())
	require.Error(t, err)
}

func TestMemoryCacheTTL(t *testing.T) {
	cache := NewMemoryCache()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "k", []byte("v"), time.Minute))
	require.NoError(t, cache.Set(ctx, "forever", []byte("f"), 0))

	data, ok, err := cache.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []byte("v"), data)

	now = now.Add(2 * time.Minute)
	_, ok, err = cache.Get(ctx, "k")
	require.NoError(t, err)
	require.False(t, ok)

	_, ok, err = cache.Get(ctx, "forever")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestSelectSource(t *testing.T) {
	cases := []struct {
		name string
		opts Options
		want Source
	}{
		{"url wins", Options{URL: "https://x", PostgresDSN: "postgres://", File: "a.xlsx"}, SourceURL},
		{"object needs key", Options{ObjectStore: ObjectStoreConfig{Bucket: "b"}, SQLitePath: "db"}, SourceSQLite},
		{"object", Options{ObjectStore: ObjectStoreConfig{Bucket: "b", Key: "k.xlsx"}, PostgresDSN: "postgres://"}, SourceObject},
		{"postgres", Options{PostgresDSN: "postgres://", SQLitePath: "db"}, SourcePostgres},
		{"file", Options{File: "a.xlsx"}, SourceFile},
		{"nothing", Options{}, SourceFile},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, SelectSource(tc.opts))
		})
	}
}

func TestFileCandidates(t *testing.T) {
	require.Equal(t, append([]string{"own.xlsx"}, DefaultFallbackFiles...), FileCandidates(Options{File: " own.xlsx "}))
	require.Equal(t, []string{"x.csv"}, FileCandidates(Options{FallbackFiles: []string{"x.csv"}}))
}

func TestSanitizeEndpoint(t *testing.T) {
	require.Equal(t, "acc.r2.cloudflarestorage.com", sanitizeEndpoint("https://acc.r2.cloudflarestorage.com/bucket"))
	require.Equal(t, "localhost:9000", sanitizeEndpoint("http://localhost:9000"))
	require.Equal(t, "", sanitizeEndpoint(" "))
}

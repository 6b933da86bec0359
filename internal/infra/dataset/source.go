package dataset

import "strings"

// Source identifies which backend a configuration selects.
type Source string

const (
	SourceURL      Source = "url"
	SourceObject   Source = "object"
	SourcePostgres Source = "postgres"
	SourceSQLite   Source = "sqlite"
	SourceFile     Source = "file"
)

// Options is the acquisition configuration as seen by this package.
type Options struct {
	URL           string
	File          string
	FallbackFiles []string
	ObjectStore   ObjectStoreConfig
	PostgresDSN   string
	PostgresTable string
	SQLitePath    string
	SQLiteTable   string
}

// SelectSource returns the highest priority source that is configured.
// Local files are the last resort and always selected when nothing else is.
func SelectSource(opts Options) Source {
	switch {
	case strings.TrimSpace(opts.URL) != "":
		return SourceURL
	case strings.TrimSpace(opts.ObjectStore.Bucket) != "" && strings.TrimSpace(opts.ObjectStore.Key) != "":
		return SourceObject
	case strings.TrimSpace(opts.PostgresDSN) != "":
		return SourcePostgres
	case strings.TrimSpace(opts.SQLitePath) != "":
		return SourceSQLite
	default:
		return SourceFile
	}
}

// FileCandidates lists the explicit file first, then the fallback names.
func FileCandidates(opts Options) []string {
	fallback := opts.FallbackFiles
	if len(fallback) == 0 {
		fallback = DefaultFallbackFiles
	}
	out := make([]string, 0, len(fallback)+1)
	if f := strings.TrimSpace(opts.File); f != "" {
		out = append(out, f)
	}
	return append(out, fallback...)
}

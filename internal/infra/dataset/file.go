package dataset

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/yanqian/runfit/internal/domain/catalog"
)

// DefaultFallbackFiles are tried in the working directory when nothing else
// is configured.
var DefaultFallbackFiles = []string{
	"Kod _n_ son grlsz.xlsx",
	"Kod _n_ son.xlsx",
	"Kod Önü son.xlsx",
	"data.xlsx",
}

// FileLoader reads the first existing file among its candidates.
type FileLoader struct {
	paths []string
	parse ParseOptions
}

// NewFileLoader builds a loader over candidate paths, tried in order.
func NewFileLoader(paths []string, parse ParseOptions) *FileLoader {
	clean := make([]string, 0, len(paths))
	for _, p := range paths {
		if p = strings.TrimSpace(p); p != "" {
			clean = append(clean, p)
		}
	}
	return &FileLoader{paths: clean, parse: parse}
}

// Describe implements Loader.
func (l *FileLoader) Describe() string {
	return "file:" + strings.Join(l.paths, ",")
}

// Load implements Loader.
func (l *FileLoader) Load(_ context.Context) (catalog.Dataset, error) {
	for _, p := range l.paths {
		data, err := os.ReadFile(p)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return catalog.Dataset{}, fmt.Errorf("read %s: %w", p, err)
		}
		ds, err := Parse(p, data, l.parse)
		if err != nil {
			return catalog.Dataset{}, fmt.Errorf("parse %s: %w", p, err)
		}
		return ds, nil
	}
	return catalog.Dataset{}, ErrNotFound
}

var _ Loader = (*FileLoader)(nil)

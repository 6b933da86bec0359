package dataset

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/yanqian/runfit/internal/domain/catalog"
)

// ErrNotFound is returned when no configured source yields a dataset.
var ErrNotFound = errors.New("dataset not found: set DATA_URL or DATA_FILE or place the workbook in the working directory")

// ErrTooLarge is returned when a remote dataset exceeds the download limit.
var ErrTooLarge = errors.New("dataset exceeds download limit")

// Loader fetches the catalog table from one source.
type Loader interface {
	Load(ctx context.Context) (catalog.Dataset, error)
	Describe() string
}

// readLimited reads r fully, failing with ErrTooLarge instead of truncating
// when more than limit bytes are available.
func readLimited(r io.Reader, limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrTooLarge, limit)
	}
	return data, nil
}

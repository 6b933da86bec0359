package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/yanqian/runfit/pkg/util"
)

// Snapshot is the immutable catalog state shared by every query: the loaded
// dataset, its resolved schema and the normalized view built from them.
type Snapshot struct {
	ID       string
	Source   string
	LoadedAt time.Time
	Dataset  Dataset
	Schema   Schema
	View     *View
}

// NewSnapshot resolves the default field sources and output letters against
// ds and builds the normalized view.
func NewSnapshot(ds Dataset, source string) *Snapshot {
	schema := ResolveSchema(ds.Columns, DefaultFieldSources(), OutputLetters)
	return &Snapshot{
		ID:       uuid.NewString(),
		Source:   source,
		LoadedAt: util.NowUTC(),
		Dataset:  ds,
		Schema:   schema,
		View:     BuildView(ds, schema),
	}
}

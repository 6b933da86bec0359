package advisor

import (
	"github.com/yanqian/runfit/internal/domain/catalog"
	"github.com/yanqian/runfit/pkg/metrics"
)

// Request carries the raw survey answers from the transport.
type Request struct {
	Gender    string `json:"gender"`
	Surface   string `json:"surface"`
	Goal      string `json:"goal"`
	Frequency string `json:"frequency"`
	Distance  string `json:"distance"`
	Injury    string `json:"injury"`
	Pronation string `json:"pronation"`
}

// Response is serialized back to API consumers.
type Response struct {
	Total    int                `json:"total"`
	Columns  []string           `json:"columns"`
	Rows     []Row              `json:"rows"`
	Answers  Answers            `json:"answers"`
	Message  string             `json:"message,omitempty"`
	Snapshot string             `json:"snapshot"`
	Metrics  metrics.QueryUsage `json:"metrics"`
}

// CatalogInfo describes the loaded snapshot.
type CatalogInfo struct {
	Snapshot      string                  `json:"snapshot"`
	Source        string                  `json:"source"`
	LoadedAt      string                  `json:"loadedAt"`
	Rows          int                     `json:"rows"`
	Columns       []string                `json:"columns"`
	OutputColumns []string                `json:"outputColumns"`
	Fields        []catalog.ResolvedField `json:"fields"`
}

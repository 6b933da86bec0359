package advisor

import (
	"context"
	"log/slog"
	"time"

	"github.com/yanqian/runfit/internal/domain/catalog"
	"github.com/yanqian/runfit/pkg/metrics"
	"github.com/yanqian/runfit/pkg/util"
)

// EmptyResultMessage is shown when no product matches the answers.
const EmptyResultMessage = "Sonuç bulunamadı. Seçimleri değiştirip tekrar deneyin."

// Service exposes survey based shoe recommendations.
type Service interface {
	Recommend(ctx context.Context, req Request) (Response, error)
	Survey() []Question
	Catalog() CatalogInfo
}

type service struct {
	snapshot *catalog.Snapshot
	logger   *slog.Logger
	now      func() time.Time
}

// NewService wires the advisor over a loaded catalog snapshot.
func NewService(snapshot *catalog.Snapshot, logger *slog.Logger) Service {
	return &service{
		snapshot: snapshot,
		logger:   logger.With("component", "advisor.service"),
		now:      time.Now,
	}
}

func (s *service) Recommend(ctx context.Context, req Request) (Response, error) {
	answers, err := ParseAnswers(req)
	if err != nil {
		return Response{}, err
	}

	start := s.now()
	preds := Predicates(answers)
	result := run(s.snapshot.View, preds, s.snapshot.Schema.Output)
	usage := metrics.QueryUsage{
		RowsScanned: s.snapshot.View.Len(),
		RowsMatched: result.Total,
		Predicates:  len(preds),
		DurationUs:  s.now().Sub(start).Microseconds(),
	}
	s.logger.InfoContext(ctx, "recommendation computed",
		"snapshot", s.snapshot.ID,
		"answers", answers,
		"matched", result.Total,
		"scanned", usage.RowsScanned,
		"selectivity", usage.Selectivity(),
		"duration_us", usage.DurationUs,
	)

	resp := Response{
		Total:    result.Total,
		Columns:  result.Columns,
		Rows:     result.Rows,
		Answers:  answers,
		Snapshot: s.snapshot.ID,
		Metrics:  usage,
	}
	if result.Total == 0 {
		resp.Message = EmptyResultMessage
	}
	return resp, nil
}

func (s *service) Survey() []Question {
	return Survey()
}

func (s *service) Catalog() CatalogInfo {
	snap := s.snapshot
	return CatalogInfo{
		Snapshot:      snap.ID,
		Source:        snap.Source,
		LoadedAt:      util.FormatRFC3339(snap.LoadedAt),
		Rows:          snap.Dataset.Len(),
		Columns:       snap.Dataset.Columns,
		OutputColumns: snap.Schema.Output,
		Fields:        snap.Schema.Fields,
	}
}

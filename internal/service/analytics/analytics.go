package analytics

import (
	"context"
	"fmt"
	"time"

	"logistics/internal/entities"
	"logistics/internal/service/filters"
)

type Analytics struct {
	repository Repository
	loc        *time.Location
}

// New. loc задаёт зону, в которой берётся дата прибытия для дневной статистики.
func New(repository Repository, loc *time.Location) *Analytics {
	if loc == nil {
		loc = time.UTC
	}
	return &Analytics{
		repository: repository,
		loc:        loc,
	}
}

// GetAnalytics строит отчёт по доставкам под фильтром. Любая ошибка по пути
// оборачивается в ErrAggregationFailed, частичный отчёт не возвращается.
func (a *Analytics) GetAnalytics(ctx context.Context, params filters.Params) (*entities.AnalyticsReport, error) {
	filter := filters.ComposeAnalytics(params)
	agg := NewAggregator(a.loc)

	if err := a.repository.ScanAnalyticsRecords(ctx, filter, agg.Add); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAggregationFailed, err)
	}

	return agg.Report(), nil
}

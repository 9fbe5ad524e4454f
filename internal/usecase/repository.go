package usecase

import (
	"context"

	"github.com/hsm-textlab/workbench/internal/domain"
)

// PlotCacheRepository хранит последний график каждого кластеризатора.
// GetPlot возвращает e.ErrPlotNotCached при промахе.
type PlotCacheRepository interface {
	SavePlot(ctx context.Context, session *PlotSession) error
	GetPlot(ctx context.Context, clusterer string) (*PlotSession, error)
	DeletePlot(ctx context.Context, clusterer string) error
}

// LabelJournalRepository - журнал отправленных разметок.
type LabelJournalRepository interface {
	Record(ctx context.Context, submission *LabelSubmission) error
	History(ctx context.Context, clusterer string, limit int) ([]LabelSubmission, error)
}

// PlotObjectRepository - объектное хранилище отрисованных графиков.
type PlotObjectRepository interface {
	Upload(ctx context.Context, object *domain.PlotObject) (string, error)
	Delete(ctx context.Context, bucket, key string) error
}

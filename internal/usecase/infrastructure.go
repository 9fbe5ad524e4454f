package usecase

import (
	"context"

	"github.com/hsm-textlab/workbench/internal/domain"
)

// FilterGateway - вызовы бэкенда, нужные странице фильтров.
type FilterGateway interface {
	AvailableFilters(ctx context.Context) ([]domain.NamedItem, error)
	LoadFilter(ctx context.Context, name string) (*domain.FilterSettings, error)
	SaveFilter(ctx context.Context, record *domain.FilterSettings) error
	RemoveFilter(ctx context.Context, name string) error
	PreviewSample(ctx context.Context, name string) (*domain.FilterPreview, error)
	ApplyFilter(ctx context.Context, name string) error
	FilterGraph(ctx context.Context) (*domain.Graph, error)
}

// ClustererGateway - вызовы бэкенда, нужные странице кластеризатора.
type ClustererGateway interface {
	ListClusterers(ctx context.Context, pattern string) ([]domain.NamedItem, error)
	LoadClusterer(ctx context.Context, name string) (*domain.ClustererSettings, error)
	SaveClusterer(ctx context.Context, record *domain.ClustererSettings) error
	UpdateClusterPreview(ctx context.Context, name string, n int, method string) ([]domain.PlotPoint, error)
	SaveLabels(ctx context.Context, name, labels string) error
	ClearLabels(ctx context.Context, name string) error
	ExamplesURL(name string, n int) string
	ViewExamples(ctx context.Context, name string, n int) (string, error)
}

// PlotExporter сохраняет отрисованный график во внешнее хранилище.
type PlotExporter interface {
	Export(ctx context.Context, req *ExportPlotReq) (*ExportPlotRes, error)
}

// LabelEventPublisher публикует события об изменении разметки.
type LabelEventPublisher interface {
	PublishLabelEvent(ctx context.Context, event *LabelEvent) error
}

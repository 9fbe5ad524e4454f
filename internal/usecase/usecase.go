package usecase

import (
	"context"
	"io"

	"github.com/hsm-textlab/workbench/internal/domain"
	"github.com/hsm-textlab/workbench/internal/form"
	"github.com/hsm-textlab/workbench/internal/plot"
)

type FilterUC interface {
	Form() *form.Panel
	Fields() (map[string]any, error)
	New() error
	LoadCurrent(ctx context.Context, n Notifier) error
	Save(ctx context.Context, n Notifier) error
	RemoveCurrent(ctx context.Context, n Notifier) error
	PreviewSample(ctx context.Context, n Notifier) (*domain.FilterPreview, error)
	Preview() *domain.FilterPreview
	Apply(ctx context.Context, n Notifier) error
	Graph(ctx context.Context, n Notifier) (*domain.Graph, error)
	Available(ctx context.Context) ([]domain.NamedItem, error)
}

type ClustererUC interface {
	Form() *form.Panel
	Fields() (map[string]any, error)
	List(ctx context.Context, pattern string) ([]domain.NamedItem, error)
	LoadCurrent(ctx context.Context, n Notifier) error
	Save(ctx context.Context, n Notifier) error
	UpdatePreview(ctx context.Context, n Notifier) error
	ClickPoint(ctx context.Context, idx int, p Prompter) (bool, error)
	Relabel(ctx context.Context, idx int, label string) error
	HoverPoint(idx int) (string, error)
	Unhover()
	Hovered() string
	ShowUnknown(ctx context.Context)
	HideUnknown(ctx context.Context)
	Markers() []plot.Marker
	SaveLabels(ctx context.Context, n Notifier) error
	ClearLabels(ctx context.Context, d ConfirmNotifier) (bool, error)
	LabelHistory(ctx context.Context) ([]LabelSubmission, error)
	ExamplesURL() (string, error)
	ViewExamples(ctx context.Context) (string, error)
	RenderPlot(w io.Writer) error
	DiscardPlot(ctx context.Context) error
	ExportPlot(ctx context.Context) (*ExportPlotRes, error)
}

var (
	_ FilterUC    = (*FilterUseCase)(nil)
	_ ClustererUC = (*ClustererUseCase)(nil)
)

package usecase

import (
	"context"

	"github.com/hsm-textlab/workbench/pkg/e"
)

// Заглушки для необязательных хранилищ: используются, когда хранилище не настроено.

type NopPlotCache struct{}

func (NopPlotCache) SavePlot(context.Context, *PlotSession) error { return nil }
func (NopPlotCache) GetPlot(context.Context, string) (*PlotSession, error) {
	return nil, e.ErrPlotNotCached
}
func (NopPlotCache) DeletePlot(context.Context, string) error { return nil }

type NopLabelJournal struct{}

func (NopLabelJournal) Record(context.Context, *LabelSubmission) error { return nil }
func (NopLabelJournal) History(context.Context, string, int) ([]LabelSubmission, error) {
	return nil, nil
}

type NopPlotExporter struct{}

func (NopPlotExporter) Export(context.Context, *ExportPlotReq) (*ExportPlotRes, error) {
	return nil, e.ErrExportDisabled
}

type NopEventPublisher struct{}

func (NopEventPublisher) PublishLabelEvent(context.Context, *LabelEvent) error { return nil }

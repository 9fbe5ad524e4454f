package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/hsm-textlab/workbench/internal/domain"
	"github.com/hsm-textlab/workbench/internal/form"
	"github.com/hsm-textlab/workbench/pkg/e"
	"github.com/hsm-textlab/workbench/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clustererFixture struct {
	uc       *ClustererUseCase
	gw       *fakeGateway
	cache    *memPlotCache
	journal  *memJournal
	events   *memPublisher
	exporter *memExporter
}

func newClustererFixture(t *testing.T) *clustererFixture {
	t.Helper()

	f := &clustererFixture{
		gw: &fakeGateway{points: []domain.PlotPoint{
			{X: 0, Y: 0, Label: domain.UnknownLabel, Document: "d1", Idx: 0},
			{X: 1, Y: 1, Label: "A", Document: "d2", Idx: 1},
		}},
		cache:    newMemPlotCache(),
		journal:  &memJournal{},
		events:   &memPublisher{},
		exporter: &memExporter{},
	}
	f.uc = NewClustererUC(f.gw, f.cache, f.journal, f.exporter, f.events, logger.NewNop(), 500, "FastICA")
	setWidget(t, f.uc.Form(), "clusterer_name", "news")
	return f
}

func (f *clustererFixture) update(t *testing.T) {
	t.Helper()
	require.NoError(t, f.uc.UpdatePreview(context.Background(), &fakeDialog{}))
}

func TestClustererUpdatePreviewDefaults(t *testing.T) {
	f := newClustererFixture(t)
	d := &fakeDialog{}

	require.NoError(t, f.uc.UpdatePreview(context.Background(), d))
	assert.Equal(t, []string{MsgUpdated}, d.alerts)
	assert.Equal(t, 500, f.gw.updateN)
	assert.Equal(t, "FastICA", f.gw.method)
	assert.Len(t, f.uc.Markers(), 2)

	cached, ok := f.cache.sessions["news"]
	require.True(t, ok)
	assert.Equal(t, 500, cached.SampleSize)
}

func TestClustererUpdatePreviewFormValues(t *testing.T) {
	f := newClustererFixture(t)
	setWidget(t, f.uc.Form(), form.PreviewSampleSize, "50")
	setWidget(t, f.uc.Form(), form.DimensionalityReduction, "PCA")

	f.update(t)
	assert.Equal(t, 50, f.gw.updateN)
	assert.Equal(t, "PCA", f.gw.method)
}

func TestClustererUpdatePreviewInvalidSize(t *testing.T) {
	f := newClustererFixture(t)
	setWidget(t, f.uc.Form(), form.PreviewSampleSize, "lots")

	d := &fakeDialog{}
	err := f.uc.UpdatePreview(context.Background(), d)
	assert.ErrorIs(t, err, e.ErrInvalidSampleSize)
	assert.Empty(t, f.gw.calls)
	assert.Len(t, d.alerts, 1)
}

func TestClustererUpdateFailKeepsPlot(t *testing.T) {
	f := newClustererFixture(t)
	f.update(t)

	f.gw.err = &domain.FailError{Op: "update", Message: "no such segment"}
	d := &fakeDialog{}
	require.Error(t, f.uc.UpdatePreview(context.Background(), d))
	assert.Equal(t, []string{"no such segment"}, d.alerts)
	assert.Len(t, f.uc.Markers(), 2)
}

func TestClustererLoadCurrentFail(t *testing.T) {
	f := newClustererFixture(t)
	setWidget(t, f.uc.Form(), "segment_name", "kept")
	f.gw.err = &domain.FailError{Op: "load", Message: "not found"}

	d := &fakeDialog{}
	require.Error(t, f.uc.LoadCurrent(context.Background(), d))
	assert.Equal(t, []string{"not found"}, d.alerts)

	fields, err := f.uc.Fields()
	require.NoError(t, err)
	assert.Equal(t, "kept", fields["segment_name"])
}

func TestClustererLoadCurrentRestoresCachedPlot(t *testing.T) {
	f := newClustererFixture(t)
	f.gw.clusterer = &domain.ClustererSettings{ClustererName: "news", SegmentName: "seg"}
	f.cache.sessions["news"] = PlotSession{
		Clusterer:   "news",
		Points:      f.gw.points,
		HideUnknown: true,
	}

	require.NoError(t, f.uc.LoadCurrent(context.Background(), &fakeDialog{}))

	markers := f.uc.Markers()
	require.Len(t, markers, 2)
	assert.False(t, markers[0].Visible)
	assert.True(t, markers[1].Visible)

	fields, err := f.uc.Fields()
	require.NoError(t, err)
	assert.Equal(t, "seg", fields["segment_name"])
}

func TestClustererLoadOtherClustererDropsPlot(t *testing.T) {
	f := newClustererFixture(t)
	f.update(t)
	require.Len(t, f.uc.Markers(), 2)

	setWidget(t, f.uc.Form(), "clusterer_name", "sports")
	f.gw.clusterer = &domain.ClustererSettings{ClustererName: "sports"}
	require.NoError(t, f.uc.LoadCurrent(context.Background(), &fakeDialog{}))
	assert.Empty(t, f.uc.Markers())

	require.NoError(t, f.uc.SaveLabels(context.Background(), &fakeDialog{}))
	assert.Equal(t, "sports", f.gw.lastName)
	assert.JSONEq(t, `{}`, f.gw.labels)
}

func TestClustererClickPoint(t *testing.T) {
	f := newClustererFixture(t)
	f.update(t)
	saves := f.cache.saves

	d := &fakeDialog{answer: "B", answerOK: true}
	changed, err := f.uc.ClickPoint(context.Background(), 0, d)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, []string{"Enter label for d1"}, d.asked)
	assert.Equal(t, "B", f.uc.Markers()[0].Point.Label)
	assert.Equal(t, saves+1, f.cache.saves)

	changed, err = f.uc.ClickPoint(context.Background(), 1, &fakeDialog{})
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, "A", f.uc.Markers()[1].Point.Label)
}

func TestClustererClickWithoutPlot(t *testing.T) {
	f := newClustererFixture(t)

	_, err := f.uc.ClickPoint(context.Background(), 0, &fakeDialog{})
	assert.ErrorIs(t, err, e.ErrNoPlot)
	assert.ErrorIs(t, f.uc.Relabel(context.Background(), 0, "x"), e.ErrNoPlot)
}

func TestClustererHoverAndVisibility(t *testing.T) {
	f := newClustererFixture(t)
	f.update(t)

	doc, err := f.uc.HoverPoint(1)
	require.NoError(t, err)
	assert.Equal(t, "d2", doc)
	assert.Equal(t, "d2", f.uc.Hovered())
	f.uc.Unhover()
	assert.Empty(t, f.uc.Hovered())

	f.uc.HideUnknown(context.Background())
	assert.False(t, f.uc.Markers()[0].Visible)
	assert.True(t, f.cache.sessions["news"].HideUnknown)

	f.uc.ShowUnknown(context.Background())
	assert.True(t, f.uc.Markers()[0].Visible)
}

func TestClustererSaveLabels(t *testing.T) {
	f := newClustererFixture(t)
	f.update(t)

	d := &fakeDialog{}
	require.NoError(t, f.uc.SaveLabels(context.Background(), d))
	assert.Equal(t, []string{MsgSaved}, d.alerts)

	var sent map[string]string
	require.NoError(t, json.Unmarshal([]byte(f.gw.labels), &sent))
	assert.Equal(t, map[string]string{"d2": "A"}, sent)

	require.Len(t, f.journal.entries, 1)
	assert.Equal(t, domain.LabelMap{"d2": "A"}, f.journal.entries[0].Labels)
	assert.False(t, f.journal.entries[0].Cleared)

	require.Len(t, f.events.events, 1)
	assert.Equal(t, EventLabelsSaved, f.events.events[0].Type)
	assert.Equal(t, 1, f.events.events[0].Total)

	history, err := f.uc.LabelHistory(context.Background())
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestClustererSaveLabelsFail(t *testing.T) {
	f := newClustererFixture(t)
	f.update(t)
	f.gw.err = &domain.FailError{Op: "save_labels", Message: "locked"}

	d := &fakeDialog{}
	require.Error(t, f.uc.SaveLabels(context.Background(), d))
	assert.Equal(t, []string{"locked"}, d.alerts)
	assert.Empty(t, f.journal.entries)
	assert.Empty(t, f.events.events)
}

func TestClustererClearLabelsDeclined(t *testing.T) {
	f := newClustererFixture(t)

	d := &fakeDialog{confirm: false}
	cleared, err := f.uc.ClearLabels(context.Background(), d)
	require.NoError(t, err)
	assert.False(t, cleared)
	assert.Equal(t, []string{MsgConfirmClear}, d.asked)
	assert.Empty(t, f.gw.calls)
	assert.Empty(t, d.alerts)
}

func TestClustererClearLabels(t *testing.T) {
	f := newClustererFixture(t)

	d := &fakeDialog{confirm: true}
	cleared, err := f.uc.ClearLabels(context.Background(), d)
	require.NoError(t, err)
	assert.True(t, cleared)
	assert.Equal(t, []string{"ClearLabels"}, f.gw.calls)
	assert.Equal(t, []string{MsgCleared}, d.alerts)

	require.Len(t, f.journal.entries, 1)
	assert.True(t, f.journal.entries[0].Cleared)
	require.Len(t, f.events.events, 1)
	assert.Equal(t, EventLabelsCleared, f.events.events[0].Type)
}

func TestClustererTransportErrorAlert(t *testing.T) {
	f := newClustererFixture(t)
	f.gw.err = e.Wrap("Gateway.SaveClusterer", e.ErrTransport)

	d := &fakeDialog{}
	err := f.uc.Save(context.Background(), d)
	require.Error(t, err)

	var fail *domain.FailError
	assert.False(t, errors.As(err, &fail))
	require.Len(t, d.alerts, 1)
	assert.Contains(t, d.alerts[0], "Gateway.SaveClusterer")
}

func TestClustererRenderAndExport(t *testing.T) {
	f := newClustererFixture(t)

	var buf bytes.Buffer
	require.NoError(t, f.uc.RenderPlot(&buf))
	assert.Zero(t, buf.Len())

	_, err := f.uc.ExportPlot(context.Background())
	assert.ErrorIs(t, err, e.ErrNoPlot)

	f.update(t)
	require.NoError(t, f.uc.RenderPlot(&buf))
	assert.Contains(t, buf.String(), "<svg")

	res, err := f.uc.ExportPlot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "news/plot.svg", res.Key)
	assert.Equal(t, "news", f.exporter.req.Clusterer)
}

func TestClustererDiscardPlot(t *testing.T) {
	f := newClustererFixture(t)
	f.update(t)
	require.Contains(t, f.cache.sessions, "news")

	require.NoError(t, f.uc.DiscardPlot(context.Background()))
	assert.Empty(t, f.uc.Markers())
	assert.NotContains(t, f.cache.sessions, "news")

	var buf bytes.Buffer
	require.NoError(t, f.uc.RenderPlot(&buf))
	assert.Zero(t, buf.Len())
}

func TestClustererExamplesURL(t *testing.T) {
	f := newClustererFixture(t)

	u, err := f.uc.ExamplesURL()
	require.NoError(t, err)
	assert.Contains(t, u, "name=news")

	html, err := f.uc.ViewExamples(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "<html/>", html)
}

func TestNopStores(t *testing.T) {
	_, err := NopPlotCache{}.GetPlot(context.Background(), "x")
	assert.ErrorIs(t, err, e.ErrPlotNotCached)

	_, err = NopPlotExporter{}.Export(context.Background(), &ExportPlotReq{})
	assert.ErrorIs(t, err, e.ErrExportDisabled)
}

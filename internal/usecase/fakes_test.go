package usecase

import (
	"context"
	"sync"

	"github.com/hsm-textlab/workbench/internal/domain"
)

type fakeDialog struct {
	mu       sync.Mutex
	alerts   []string
	confirm  bool
	asked    []string
	answer   string
	answerOK bool
}

func (d *fakeDialog) Alert(message string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.alerts = append(d.alerts, message)
}

func (d *fakeDialog) Confirm(message string) bool {
	d.asked = append(d.asked, message)
	return d.confirm
}

func (d *fakeDialog) Prompt(message, def string) (string, bool) {
	d.asked = append(d.asked, message)
	return d.answer, d.answerOK
}

// fakeGateway отвечает заранее заданными значениями и запоминает вызовы.
type fakeGateway struct {
	err error

	filter    *domain.FilterSettings
	clusterer *domain.ClustererSettings
	preview   *domain.FilterPreview
	graph     *domain.Graph
	items     []domain.NamedItem
	points    []domain.PlotPoint

	calls       []string
	lastName    string
	savedFilter *domain.FilterSettings
	savedClust  *domain.ClustererSettings
	updateN     int
	method      string
	labels      string
}

func (g *fakeGateway) record(call, name string) error {
	g.calls = append(g.calls, call)
	g.lastName = name
	return g.err
}

func (g *fakeGateway) AvailableFilters(context.Context) ([]domain.NamedItem, error) {
	return g.items, g.record("AvailableFilters", "")
}

func (g *fakeGateway) LoadFilter(_ context.Context, name string) (*domain.FilterSettings, error) {
	if err := g.record("LoadFilter", name); err != nil {
		return nil, err
	}
	return g.filter, nil
}

func (g *fakeGateway) SaveFilter(_ context.Context, record *domain.FilterSettings) error {
	g.savedFilter = record
	return g.record("SaveFilter", record.FilterName)
}

func (g *fakeGateway) RemoveFilter(_ context.Context, name string) error {
	return g.record("RemoveFilter", name)
}

func (g *fakeGateway) PreviewSample(_ context.Context, name string) (*domain.FilterPreview, error) {
	if err := g.record("PreviewSample", name); err != nil {
		return nil, err
	}
	return g.preview, nil
}

func (g *fakeGateway) ApplyFilter(_ context.Context, name string) error {
	return g.record("ApplyFilter", name)
}

func (g *fakeGateway) FilterGraph(context.Context) (*domain.Graph, error) {
	if err := g.record("FilterGraph", ""); err != nil {
		return nil, err
	}
	return g.graph, nil
}

func (g *fakeGateway) ListClusterers(_ context.Context, pattern string) ([]domain.NamedItem, error) {
	return g.items, g.record("ListClusterers", pattern)
}

func (g *fakeGateway) LoadClusterer(_ context.Context, name string) (*domain.ClustererSettings, error) {
	if err := g.record("LoadClusterer", name); err != nil {
		return nil, err
	}
	return g.clusterer, nil
}

func (g *fakeGateway) SaveClusterer(_ context.Context, record *domain.ClustererSettings) error {
	g.savedClust = record
	return g.record("SaveClusterer", record.ClustererName)
}

func (g *fakeGateway) UpdateClusterPreview(_ context.Context, name string, n int, method string) ([]domain.PlotPoint, error) {
	g.updateN, g.method = n, method
	if err := g.record("UpdateClusterPreview", name); err != nil {
		return nil, err
	}
	return g.points, nil
}

func (g *fakeGateway) SaveLabels(_ context.Context, name, labels string) error {
	g.labels = labels
	return g.record("SaveLabels", name)
}

func (g *fakeGateway) ClearLabels(_ context.Context, name string) error {
	return g.record("ClearLabels", name)
}

func (g *fakeGateway) ExamplesURL(name string, n int) string {
	return "http://backend/clusterer/view_examples?name=" + name
}

func (g *fakeGateway) ViewExamples(_ context.Context, name string, n int) (string, error) {
	return "<html/>", g.record("ViewExamples", name)
}

type memPlotCache struct {
	sessions map[string]PlotSession
	saves    int
}

func newMemPlotCache() *memPlotCache {
	return &memPlotCache{sessions: map[string]PlotSession{}}
}

func (m *memPlotCache) SavePlot(_ context.Context, s *PlotSession) error {
	m.sessions[s.Clusterer] = *s
	m.saves++
	return nil
}

func (m *memPlotCache) GetPlot(_ context.Context, clusterer string) (*PlotSession, error) {
	s, ok := m.sessions[clusterer]
	if !ok {
		return NopPlotCache{}.GetPlot(context.Background(), clusterer)
	}
	return &s, nil
}

func (m *memPlotCache) DeletePlot(_ context.Context, clusterer string) error {
	delete(m.sessions, clusterer)
	return nil
}

type memJournal struct {
	entries []LabelSubmission
}

func (m *memJournal) Record(_ context.Context, s *LabelSubmission) error {
	m.entries = append(m.entries, *s)
	return nil
}

func (m *memJournal) History(_ context.Context, clusterer string, limit int) ([]LabelSubmission, error) {
	var out []LabelSubmission
	for _, s := range m.entries {
		if s.Clusterer == clusterer {
			out = append(out, s)
		}
	}
	return out, nil
}

type memPublisher struct {
	events []LabelEvent
}

func (m *memPublisher) PublishLabelEvent(_ context.Context, ev *LabelEvent) error {
	m.events = append(m.events, *ev)
	return nil
}

type memExporter struct {
	req *ExportPlotReq
}

func (m *memExporter) Export(_ context.Context, req *ExportPlotReq) (*ExportPlotRes, error) {
	m.req = req
	return &ExportPlotRes{Bucket: "plots", Key: req.Clusterer + "/plot.svg", Size: int64(len(req.SVG))}, nil
}

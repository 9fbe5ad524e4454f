package textlab

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/hsm-textlab/workbench/internal/domain"
	"github.com/hsm-textlab/workbench/internal/settings"
	"github.com/hsm-textlab/workbench/pkg/e"
)

const allClusterers = "*"

// AvailableFilters возвращает список сохраненных фильтров.
func (g *Gateway) AvailableFilters(ctx context.Context) ([]domain.NamedItem, error) {
	const op = "Gateway.AvailableFilters"

	data, err := g.callLenient(ctx, op, http.MethodGet, "filter/available_filters", nil)
	if err != nil {
		return nil, err
	}

	items := []domain.NamedItem{}
	if err := decode(op, data, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// ListClusterers возвращает кластеризаторы, имя которых подходит под шаблон ("*" - любая подстрока).
func (g *Gateway) ListClusterers(ctx context.Context, pattern string) ([]domain.NamedItem, error) {
	const op = "Gateway.ListClusterers"

	if pattern == "" {
		pattern = allClusterers
	}

	data, err := g.callLenient(ctx, op, http.MethodGet, "clusterer", url.Values{"name": {pattern}})
	if err != nil {
		return nil, err
	}

	items := []domain.NamedItem{}
	if err := decode(op, data, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// LoadFilter загружает фильтр и дополняет отсутствующие поля значениями по умолчанию.
func (g *Gateway) LoadFilter(ctx context.Context, name string) (*domain.FilterSettings, error) {
	record, err := g.load(ctx, "Gateway.LoadFilter", "filter/load", domain.KindFilter, name)
	if err != nil {
		return nil, err
	}
	return record.(*domain.FilterSettings), nil
}

// LoadClusterer загружает кластеризатор и дополняет отсутствующие поля значениями по умолчанию.
func (g *Gateway) LoadClusterer(ctx context.Context, name string) (*domain.ClustererSettings, error) {
	record, err := g.load(ctx, "Gateway.LoadClusterer", "clusterer/load", domain.KindClusterer, name)
	if err != nil {
		return nil, err
	}
	return record.(*domain.ClustererSettings), nil
}

func (g *Gateway) load(ctx context.Context, op, path string, kind domain.Kind, name string) (domain.Record, error) {
	data, err := g.call(ctx, op, http.MethodGet, path, url.Values{"name": {name}})
	if err != nil {
		return nil, err
	}

	partial := map[string]any{}
	if err := decode(op, data, &partial); err != nil {
		return nil, err
	}

	return settings.Decode(kind, partial)
}

// SaveFilter отправляет запись фильтра целиком.
func (g *Gateway) SaveFilter(ctx context.Context, record *domain.FilterSettings) error {
	_, err := g.call(ctx, "Gateway.SaveFilter", http.MethodPost, "filter/save_filter", settings.Values(record))
	return err
}

// SaveClusterer отправляет запись кластеризатора целиком.
func (g *Gateway) SaveClusterer(ctx context.Context, record *domain.ClustererSettings) error {
	_, err := g.call(ctx, "Gateway.SaveClusterer", http.MethodPost, "clusterer/save", settings.Values(record))
	return err
}

func (g *Gateway) RemoveFilter(ctx context.Context, name string) error {
	_, err := g.call(ctx, "Gateway.RemoveFilter", http.MethodGet, "filter/remove", url.Values{"name": {name}})
	return err
}

// PreviewSample возвращает HTML-фрагменты предпросмотра по стадиям фильтра.
func (g *Gateway) PreviewSample(ctx context.Context, name string) (*domain.FilterPreview, error) {
	const op = "Gateway.PreviewSample"

	data, err := g.call(ctx, op, http.MethodGet, "filter/preview_sample", url.Values{"name": {name}})
	if err != nil {
		return nil, err
	}

	var preview domain.FilterPreview
	if err := decode(op, data, &preview); err != nil {
		return nil, err
	}
	return &preview, nil
}

// ApplyFilter запускает фильтр над всеми входными сегментами.
func (g *Gateway) ApplyFilter(ctx context.Context, name string) error {
	_, err := g.call(ctx, "Gateway.ApplyFilter", http.MethodGet, "filter/apply_filter", url.Values{"name": {name}})
	return err
}

// FilterGraph возвращает граф зависимостей фильтров и сегментов.
func (g *Gateway) FilterGraph(ctx context.Context) (*domain.Graph, error) {
	const op = "Gateway.FilterGraph"

	data, err := g.callLenient(ctx, op, http.MethodGet, "filter/graph", nil)
	if err != nil {
		return nil, err
	}

	graph := domain.Graph{Nodes: []domain.GraphNode{}, Links: []domain.GraphLink{}}
	if err := decode(op, data, &graph); err != nil {
		return nil, err
	}
	return &graph, nil
}

// UpdateClusterPreview пересчитывает проекцию n документов и возвращает точки.
// Idx точки равен ее позиции в ответе, пустая метка заменяется на "unknown".
func (g *Gateway) UpdateClusterPreview(ctx context.Context, name string, n int, method string) ([]domain.PlotPoint, error) {
	const op = "Gateway.UpdateClusterPreview"

	if n <= 0 {
		return nil, e.Wrap(op, e.ErrInvalidSampleSize)
	}

	params := url.Values{
		"name":   {name},
		"n":      {strconv.Itoa(n)},
		"method": {method},
	}
	data, err := g.call(ctx, op, http.MethodPost, "clusterer/update", params)
	if err != nil {
		return nil, err
	}

	points := []domain.PlotPoint{}
	if err := decode(op, data, &points); err != nil {
		return nil, err
	}

	for i := range points {
		points[i].Idx = i
		if points[i].Label == "" {
			points[i].Label = domain.UnknownLabel
		}
	}
	return points, nil
}

// SaveLabels отправляет карту меток, сериализованную в JSON-строку.
func (g *Gateway) SaveLabels(ctx context.Context, name, labels string) error {
	params := url.Values{
		"name":   {name},
		"labels": {labels},
	}
	_, err := g.call(ctx, "Gateway.SaveLabels", http.MethodPost, "clusterer/save_labels", params)
	return err
}

// ClearLabels удаляет все метки кластеризатора.
func (g *Gateway) ClearLabels(ctx context.Context, name string) error {
	_, err := g.call(ctx, "Gateway.ClearLabels", http.MethodPost, "clusterer/clear_labels", url.Values{"name": {name}})
	return err
}

// ExamplesURL - адрес страницы с примерами документов кластеризатора.
func (g *Gateway) ExamplesURL(name string, n int) string {
	params := url.Values{
		"name": {name},
		"n":    {strconv.Itoa(n)},
	}
	return g.endpoint("clusterer/view_examples") + "?" + params.Encode()
}

// ViewExamples возвращает HTML страницы с примерами. Ответ не является JSON.
func (g *Gateway) ViewExamples(ctx context.Context, name string, n int) (string, error) {
	params := url.Values{
		"name": {name},
		"n":    {strconv.Itoa(n)},
	}
	body, err := g.fetch(ctx, "Gateway.ViewExamples", http.MethodGet, "clusterer/view_examples", params)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

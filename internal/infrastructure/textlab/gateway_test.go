package textlab

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/hsm-textlab/workbench/internal/domain"
	"github.com/hsm-textlab/workbench/pkg/e"
	"github.com/hsm-textlab/workbench/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type recorded struct {
	method      string
	path        string
	query       url.Values
	form        url.Values
	contentType string
}

// newBackend поднимает фейковый бэкенд, который отвечает body и запоминает последний запрос.
func newBackend(t *testing.T, status int, body string) (*Gateway, *recorded) {
	t.Helper()

	rec := &recorded{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.method = r.Method
		rec.path = r.URL.Path
		rec.query = r.URL.Query()
		rec.contentType = r.Header.Get("Content-Type")
		if r.Method == http.MethodPost {
			raw, _ := io.ReadAll(r.Body)
			rec.form, _ = url.ParseQuery(string(raw))
		}

		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)

	return NewGateway(srv.URL+"/", srv.Client(), 0, logger.NewNop()), rec
}

func TestAvailableFiltersRawList(t *testing.T) {
	g, rec := newBackend(t, http.StatusOK, `[{"name":"a","id":"a"},{"name":"b","id":"b"}]`)

	items, err := g.AvailableFilters(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.NamedItem{{Name: "a", ID: "a"}, {Name: "b", ID: "b"}}, items)
	assert.Equal(t, http.MethodGet, rec.method)
	assert.Equal(t, "/filter/available_filters", rec.path)
}

func TestAvailableFiltersEnvelope(t *testing.T) {
	g, _ := newBackend(t, http.StatusOK, `{"result":"OK","data":[{"name":"a","id":"a"}]}`)

	items, err := g.AvailableFilters(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.NamedItem{{Name: "a", ID: "a"}}, items)
}

func TestListClusterers(t *testing.T) {
	g, rec := newBackend(t, http.StatusOK, `[{"name":"news","id":"news"}]`)

	items, err := g.ListClusterers(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, "/clusterer", rec.path)
	assert.Equal(t, "*", rec.query.Get("name"))
}

func TestListClusterersEmptyBody(t *testing.T) {
	g, _ := newBackend(t, http.StatusOK, "")

	items, err := g.ListClusterers(context.Background(), "n*")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestLoadFilterMergesDefaults(t *testing.T) {
	g, rec := newBackend(t, http.StatusOK,
		`{"result":"OK","data":{"filter_name":"f1","creates_segment":true,"container_includes":false,"extra":"x"}}`)

	f, err := g.LoadFilter(context.Background(), "f1")
	require.NoError(t, err)
	assert.Equal(t, "f1", rec.query.Get("name"))
	assert.Equal(t, "/filter/load", rec.path)

	assert.Equal(t, "f1", f.FilterName)
	assert.True(t, f.CreatesSegment)
	assert.False(t, f.ContainerIncludes)
	assert.True(t, f.ContainerKeepSource)
	assert.Empty(t, f.SegmentName)
}

func TestLoadClustererFail(t *testing.T) {
	g, _ := newBackend(t, http.StatusOK, `{"result":"FAIL","error":"not found"}`)

	c, err := g.LoadClusterer(context.Background(), "missing")
	require.Error(t, err)
	assert.Nil(t, c)

	var fail *domain.FailError
	require.True(t, errors.As(err, &fail))
	assert.Equal(t, "not found", fail.Message)
}

func TestSaveFilterPostsForm(t *testing.T) {
	g, rec := newBackend(t, http.StatusOK, `{"result":"OK"}`)

	f := domain.NewFilterSettings()
	f.FilterName = "f1"
	f.SegmentName = "seg"

	require.NoError(t, g.SaveFilter(context.Background(), f))
	assert.Equal(t, http.MethodPost, rec.method)
	assert.Equal(t, "/filter/save_filter", rec.path)
	assert.Equal(t, formContentType, rec.contentType)
	assert.Equal(t, "f1", rec.form.Get("filter_name"))
	assert.Equal(t, "seg", rec.form.Get("segment_name"))
	assert.Equal(t, "false", rec.form.Get("creates_segment"))
	assert.Equal(t, "true", rec.form.Get("container_includes"))
	assert.Equal(t, "true", rec.form.Get("container_keep_source"))
	assert.Len(t, rec.form, 21)
}

func TestSaveClustererFail(t *testing.T) {
	g, rec := newBackend(t, http.StatusOK, `{"result":"FAIL","error":"no such dictionary"}`)

	c := domain.NewClustererSettings()
	c.ClustererName = "news"
	err := g.SaveClusterer(context.Background(), c)

	var fail *domain.FailError
	require.ErrorAs(t, err, &fail)
	assert.Equal(t, "no such dictionary", fail.Message)
	assert.Equal(t, "news", rec.form.Get("clusterer_name"))
}

func TestApplyFilterEmptyBody(t *testing.T) {
	g, rec := newBackend(t, http.StatusOK, "")

	require.NoError(t, g.ApplyFilter(context.Background(), "f1"))
	assert.Equal(t, "/filter/apply_filter", rec.path)
}

func TestRemoveFilter(t *testing.T) {
	g, rec := newBackend(t, http.StatusOK, `{"result":"OK"}`)

	require.NoError(t, g.RemoveFilter(context.Background(), "f1"))
	assert.Equal(t, http.MethodGet, rec.method)
	assert.Equal(t, "f1", rec.query.Get("name"))
}

func TestPreviewSample(t *testing.T) {
	g, _ := newBackend(t, http.StatusOK,
		`{"result":"OK","data":{"source":"<b>s</b>","container":"c","mixin":"m","splitter":"sp","output":"o"}}`)

	p, err := g.PreviewSample(context.Background(), "f1")
	require.NoError(t, err)
	assert.Equal(t, &domain.FilterPreview{Basic: "<b>s</b>", Container: "c", Mixin: "m", Splitter: "sp", Output: "o"}, p)
}

func TestFilterGraphRaw(t *testing.T) {
	g, _ := newBackend(t, http.StatusOK,
		`{"nodes":[{"name":"f","group":1},{"name":"s","group":2}],"links":[{"source":1,"target":0,"value":1}]}`)

	graph, err := g.FilterGraph(context.Background())
	require.NoError(t, err)
	assert.Len(t, graph.Nodes, 2)
	assert.Equal(t, []domain.GraphLink{{Source: 1, Target: 0, Value: 1}}, graph.Links)
}

func TestUpdateClusterPreviewNormalises(t *testing.T) {
	g, rec := newBackend(t, http.StatusOK,
		`{"result":"OK","data":[{"x":1,"y":2,"document":"d1"},{"x":3,"y":4,"document":"d2","label":"A","idx":7}]}`)

	points, err := g.UpdateClusterPreview(context.Background(), "news", 500, "FastICA")
	require.NoError(t, err)
	assert.Equal(t, []domain.PlotPoint{
		{X: 1, Y: 2, Document: "d1", Label: domain.UnknownLabel, Idx: 0},
		{X: 3, Y: 4, Document: "d2", Label: "A", Idx: 1},
	}, points)

	assert.Equal(t, "/clusterer/update", rec.path)
	assert.Equal(t, "500", rec.form.Get("n"))
	assert.Equal(t, "FastICA", rec.form.Get("method"))
}

func TestUpdateClusterPreviewInvalidSize(t *testing.T) {
	g, _ := newBackend(t, http.StatusOK, `{"result":"OK","data":[]}`)

	_, err := g.UpdateClusterPreview(context.Background(), "news", 0, "FastICA")
	assert.ErrorIs(t, err, e.ErrInvalidSampleSize)
}

func TestSaveAndClearLabels(t *testing.T) {
	g, rec := newBackend(t, http.StatusOK, `{"result":"OK"}`)

	require.NoError(t, g.SaveLabels(context.Background(), "news", `{"d2":"A"}`))
	assert.Equal(t, "/clusterer/save_labels", rec.path)
	assert.Equal(t, `{"d2":"A"}`, rec.form.Get("labels"))

	require.NoError(t, g.ClearLabels(context.Background(), "news"))
	assert.Equal(t, "/clusterer/clear_labels", rec.path)
	assert.Equal(t, "news", rec.form.Get("name"))
}

func TestViewExamples(t *testing.T) {
	g, rec := newBackend(t, http.StatusOK, "<html>examples</html>")

	html, err := g.ViewExamples(context.Background(), "news", 20)
	require.NoError(t, err)
	assert.Equal(t, "<html>examples</html>", html)
	assert.Equal(t, "20", rec.query.Get("n"))

	assert.Equal(t, g.BaseURL()+"/clusterer/view_examples?n=20&name=news", g.ExamplesURL("news", 20))
}

func TestErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{name: "bad status", status: http.StatusInternalServerError, body: "boom", want: e.ErrBadStatus},
		{name: "malformed", status: http.StatusOK, body: "{not json", want: e.ErrMalformedResponse},
		{name: "unknown result", status: http.StatusOK, body: `{"result":"MAYBE"}`, want: e.ErrUnknownResult},
		{name: "bad payload", status: http.StatusOK, body: `{"result":"OK","data":"oops"}`, want: e.ErrMalformedResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, _ := newBackend(t, tt.status, tt.body)

			_, err := g.PreviewSample(context.Background(), "f1")
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)

			var fail *domain.FailError
			assert.False(t, errors.As(err, &fail))
		})
	}
}

func TestTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL
	srv.Close()

	g := NewGateway(addr, nil, 0, logger.NewNop())
	err := g.ApplyFilter(context.Background(), "f1")
	assert.ErrorIs(t, err, e.ErrTransport)
}

func TestTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
		fmt.Fprint(w, `{"result":"OK"}`)
	}))
	defer srv.Close()

	g := NewGateway(srv.URL, srv.Client(), 20*time.Millisecond, logger.NewNop())
	err := g.RemoveFilter(context.Background(), "f1")
	assert.ErrorIs(t, err, e.ErrTransport)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

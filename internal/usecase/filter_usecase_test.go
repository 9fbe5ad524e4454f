package usecase

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/hsm-textlab/workbench/internal/domain"
	"github.com/hsm-textlab/workbench/internal/form"
	"github.com/hsm-textlab/workbench/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setWidget(t *testing.T, f form.Form, id, value string) {
	t.Helper()
	w, ok := f.Widget(id)
	require.True(t, ok, id)
	w.SetValue(value)
}

func TestFilterNewResetsForm(t *testing.T) {
	uc := NewFilterUC(&fakeGateway{}, logger.NewNop())
	setWidget(t, uc.Form(), "segment_name", "seg")

	require.NoError(t, uc.New())

	fields, err := uc.Fields()
	require.NoError(t, err)
	assert.Equal(t, "", fields["segment_name"])
	assert.Equal(t, true, fields["container_includes"])
	assert.Equal(t, false, fields["creates_segment"])
}

func TestFilterLoadCurrent(t *testing.T) {
	loaded := domain.NewFilterSettings()
	loaded.FilterName = "f1"
	loaded.SegmentName = "seg"
	loaded.CreatesSegment = true

	gw := &fakeGateway{filter: loaded}
	uc := NewFilterUC(gw, logger.NewNop())
	setWidget(t, uc.Form(), "filter_name", "f1")

	d := &fakeDialog{}
	require.NoError(t, uc.LoadCurrent(context.Background(), d))
	assert.Equal(t, "f1", gw.lastName)
	assert.Empty(t, d.alerts)

	record, err := form.CollectFromForm(uc.Form(), domain.KindFilter)
	require.NoError(t, err)
	if diff := cmp.Diff(loaded, record); diff != "" {
		t.Errorf("form mismatch (-want +got):\n%s", diff)
	}
}

func TestFilterLoadCurrentFailLeavesForm(t *testing.T) {
	gw := &fakeGateway{err: &domain.FailError{Op: "load", Message: "not found"}}
	uc := NewFilterUC(gw, logger.NewNop())
	setWidget(t, uc.Form(), "filter_name", "missing")
	setWidget(t, uc.Form(), "segment_name", "kept")

	d := &fakeDialog{}
	err := uc.LoadCurrent(context.Background(), d)
	require.Error(t, err)
	assert.Equal(t, []string{"not found"}, d.alerts)

	v, err := form.Value(uc.Form(), "segment_name")
	require.NoError(t, err)
	assert.Equal(t, "kept", v)
}

func TestFilterSave(t *testing.T) {
	gw := &fakeGateway{}
	uc := NewFilterUC(gw, logger.NewNop())
	require.NoError(t, uc.New())
	setWidget(t, uc.Form(), "filter_name", "f1")
	setWidget(t, uc.Form(), "mixin_name", "m")

	d := &fakeDialog{}
	require.NoError(t, uc.Save(context.Background(), d))
	assert.Equal(t, []string{MsgSaved}, d.alerts)
	require.NotNil(t, gw.savedFilter)
	assert.Equal(t, "m", gw.savedFilter.MixinName)
	assert.True(t, gw.savedFilter.ContainerKeepSource)
}

func TestFilterSaveFail(t *testing.T) {
	gw := &fakeGateway{err: &domain.FailError{Op: "save", Message: "bad regex"}}
	uc := NewFilterUC(gw, logger.NewNop())

	d := &fakeDialog{}
	require.Error(t, uc.Save(context.Background(), d))
	assert.Equal(t, []string{"bad regex"}, d.alerts)
}

func TestFilterRemoveApplyPreview(t *testing.T) {
	gw := &fakeGateway{preview: &domain.FilterPreview{Basic: "b", Output: "o"}}
	uc := NewFilterUC(gw, logger.NewNop())
	setWidget(t, uc.Form(), "filter_name", "f1")
	d := &fakeDialog{}

	require.NoError(t, uc.RemoveCurrent(context.Background(), d))
	assert.Equal(t, []string{MsgRemoved}, d.alerts)

	require.NoError(t, uc.Apply(context.Background(), d))
	assert.Equal(t, []string{MsgRemoved}, d.alerts)

	assert.Nil(t, uc.Preview())
	p, err := uc.PreviewSample(context.Background(), d)
	require.NoError(t, err)
	assert.Equal(t, "b", p.Basic)
	assert.Equal(t, p, uc.Preview())

	assert.Equal(t, []string{"RemoveFilter", "ApplyFilter", "PreviewSample"}, gw.calls)
}

func TestFilterPreviewFailKeepsPrevious(t *testing.T) {
	gw := &fakeGateway{preview: &domain.FilterPreview{Basic: "first"}}
	uc := NewFilterUC(gw, logger.NewNop())
	d := &fakeDialog{}

	_, err := uc.PreviewSample(context.Background(), d)
	require.NoError(t, err)

	gw.err = &domain.FailError{Op: "preview", Message: "no segments"}
	_, err = uc.PreviewSample(context.Background(), d)
	require.Error(t, err)
	assert.Equal(t, "first", uc.Preview().Basic)
	assert.Equal(t, []string{"no segments"}, d.alerts)
}

func TestFilterGraphAndAvailable(t *testing.T) {
	gw := &fakeGateway{
		graph: &domain.Graph{Nodes: []domain.GraphNode{{Name: "f", Group: 1}}},
		items: []domain.NamedItem{{Name: "f", ID: "f"}},
	}
	uc := NewFilterUC(gw, logger.NewNop())

	g, err := uc.Graph(context.Background(), &fakeDialog{})
	require.NoError(t, err)
	assert.Len(t, g.Nodes, 1)

	items, err := uc.Available(context.Background())
	require.NoError(t, err)
	assert.Equal(t, gw.items, items)
}

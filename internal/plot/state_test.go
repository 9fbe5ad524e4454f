package plot

import (
	"bytes"
	"strings"
	"testing"

	"github.com/hsm-textlab/workbench/internal/domain"
	"github.com/hsm-textlab/workbench/pkg/e"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPrompter struct {
	answer  string
	ok      bool
	message string
	def     string
}

func (p *stubPrompter) Prompt(message, def string) (string, bool) {
	p.message, p.def = message, def
	return p.answer, p.ok
}

func samplePoints() []domain.PlotPoint {
	return []domain.PlotPoint{
		{X: 0.3, Y: 1, Label: "sport", Document: "d1", Idx: 0},
		{X: 9.7, Y: 2, Label: domain.UnknownLabel, Document: "d2", Idx: 1},
		{X: 5, Y: 3, Label: "politics", Document: "d3", Idx: 2},
		{X: 6, Y: 4, Label: "sport", Document: "d4", Idx: 3},
	}
}

func TestNewStateCopiesPoints(t *testing.T) {
	points := samplePoints()
	s := NewState(points)

	require.NoError(t, s.Relabel(0, "news"))
	assert.Equal(t, "sport", points[0].Label)
	assert.Equal(t, "news", s.Points()[0].Label)
}

func TestClick(t *testing.T) {
	s := NewState(samplePoints())
	p := &stubPrompter{answer: "economy", ok: true}

	changed, err := s.Click(1, p)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, "Enter label for d2", p.message)
	assert.Equal(t, domain.UnknownLabel, p.def)

	got := s.Points()
	assert.Equal(t, "economy", got[1].Label)
	for i, pt := range samplePoints() {
		if i == 1 {
			continue
		}
		assert.Equal(t, pt, got[i])
	}
}

func TestClickCancel(t *testing.T) {
	s := NewState(samplePoints())
	rev := s.Revision()

	changed, err := s.Click(0, &stubPrompter{answer: "ignored", ok: false})
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, samplePoints(), s.Points())
	assert.Equal(t, rev, s.Revision())
}

func TestClickOutOfRange(t *testing.T) {
	s := NewState(samplePoints())

	_, err := s.Click(10, &stubPrompter{ok: true})
	assert.ErrorIs(t, err, e.ErrPointNotFound)
	assert.ErrorIs(t, s.Relabel(-1, "x"), e.ErrPointNotFound)
}

func TestVisibility(t *testing.T) {
	s := NewState(samplePoints())
	for i := range s.Len() {
		assert.True(t, s.Visible(i))
	}

	s.HideUnknown()
	assert.True(t, s.UnknownHidden())
	assert.True(t, s.Visible(0))
	assert.False(t, s.Visible(1))
	assert.True(t, s.Visible(2))

	// Разметка скрытой точки делает ее видимой.
	require.NoError(t, s.Relabel(1, "sport"))
	assert.True(t, s.Visible(1))

	s.ShowUnknown()
	assert.False(t, s.UnknownHidden())
	assert.Equal(t, 4, s.Len())
}

func TestHover(t *testing.T) {
	s := NewState(samplePoints())

	doc, err := s.Hover(2)
	require.NoError(t, err)
	assert.Equal(t, "d3", doc)
	assert.Equal(t, "d3", s.Hovered())

	s.Unhover()
	assert.Empty(t, s.Hovered())

	_, err = s.Hover(42)
	assert.ErrorIs(t, err, e.ErrPointNotFound)
}

func TestMarkersColorByFirstAppearance(t *testing.T) {
	s := NewState(samplePoints())
	s.HideUnknown()

	markers := s.Markers()
	require.Len(t, markers, 4)

	assert.Equal(t, "#1f77b4", markers[0].Color)
	assert.Equal(t, "#ff7f0e", markers[1].Color)
	assert.Equal(t, "#2ca02c", markers[2].Color)
	assert.Equal(t, markers[0].Color, markers[3].Color)
	assert.False(t, markers[1].Visible)
	assert.True(t, markers[3].Visible)
}

func TestPaletteWraps(t *testing.T) {
	c := newColorScale()
	first := c.color("l0")
	for i := 1; i < len(category10); i++ {
		c.color(string(rune('a' + i)))
	}
	assert.Equal(t, first, c.color("wrapped"))
}

func TestRenderEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewState(nil).Render(&buf))
	assert.Zero(t, buf.Len())
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	s := NewState(samplePoints())
	require.NoError(t, s.Render(&buf))

	svg := buf.String()
	assert.Contains(t, svg, "<svg")
	assert.Contains(t, svg, "1st component")
	assert.Contains(t, svg, "2nd component")
	assert.Contains(t, svg, "sport")
	assert.Contains(t, svg, "politics")
	assert.Contains(t, svg, domain.UnknownLabel)
}

func TestRenderHiddenUnknown(t *testing.T) {
	var shown, hidden bytes.Buffer
	s := NewState(samplePoints())
	require.NoError(t, s.Render(&shown))

	s.HideUnknown()
	require.NoError(t, s.Render(&hidden))

	assert.Less(t, strings.Count(hidden.String(), "<circle"), strings.Count(shown.String(), "<circle"))
	// Легенда по-прежнему перечисляет все метки.
	assert.Contains(t, hidden.String(), domain.UnknownLabel)
}

func TestRenderAllHidden(t *testing.T) {
	var buf bytes.Buffer
	s := NewState([]domain.PlotPoint{
		{X: 1, Y: 1, Label: domain.UnknownLabel, Document: "d1", Idx: 0},
		{X: 4, Y: 2, Label: domain.UnknownLabel, Document: "d2", Idx: 1},
	})
	s.HideUnknown()
	require.NoError(t, s.Render(&buf))

	svg := buf.String()
	assert.Contains(t, svg, "<svg")
	assert.Contains(t, svg, "1st component")
	assert.NotContains(t, svg, "<circle")
	assert.Contains(t, svg, domain.UnknownLabel)

	s.ShowUnknown()
	buf.Reset()
	require.NoError(t, s.Render(&buf))
	assert.Equal(t, 2, strings.Count(buf.String(), "<circle"))
}

package plot

import (
	"testing"

	"github.com/hsm-textlab/workbench/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNice(t *testing.T) {
	tests := []struct {
		name             string
		min, max         float64
		wantMin, wantMax float64
	}{
		{name: "unit steps", min: 0.3, max: 9.7, wantMin: 0, wantMax: 10},
		{name: "tenths", min: 0.12, max: 0.87, wantMin: 0.1, wantMax: 0.9},
		{name: "negative", min: -3.2, max: 4.1, wantMin: -4, wantMax: 5},
		{name: "large", min: 12, max: 87, wantMin: 10, wantMax: 90},
		{name: "degenerate", min: 2, max: 2, wantMin: 1.5, wantMax: 2.5},
		{name: "reversed", min: 9.7, max: 0.3, wantMin: 0, wantMax: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotMin, gotMax := Nice(tt.min, tt.max)
			assert.InDelta(t, tt.wantMin, gotMin, 1e-9)
			assert.InDelta(t, tt.wantMax, gotMax, 1e-9)
		})
	}
}

func TestDomain(t *testing.T) {
	_, ok := Domain(nil)
	assert.False(t, ok)

	ext, ok := Domain([]domain.PlotPoint{
		{X: 0.3, Y: -0.42},
		{X: 9.7, Y: 0.9},
		{X: 4, Y: 0.1},
	})
	require.True(t, ok)
	assert.InDelta(t, 0, ext.XMin, 1e-9)
	assert.InDelta(t, 10, ext.XMax, 1e-9)
	assert.InDelta(t, -0.6, ext.YMin, 1e-9)
	assert.InDelta(t, 1, ext.YMax, 1e-9)
}

func TestDomainSinglePoint(t *testing.T) {
	ext, ok := Domain([]domain.PlotPoint{{X: 1, Y: 1}})
	require.True(t, ok)
	assert.Less(t, ext.XMin, ext.XMax)
	assert.Less(t, ext.YMin, ext.YMax)
}

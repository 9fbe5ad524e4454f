package plot

import (
	"math"

	"github.com/hsm-textlab/workbench/internal/domain"
)

// tickCount - число делений, под которое подбирается «круглый» шаг оси.
const tickCount = 10

// Extent - области значений осей X и Y.
type Extent struct {
	XMin, XMax float64
	YMin, YMax float64
}

// Domain вычисляет min/max по X и Y для всех точек и округляет границы до круглых чисел.
// Для пустого набора возвращает false: масштаб не определен.
func Domain(points []domain.PlotPoint) (Extent, bool) {
	if len(points) == 0 {
		return Extent{}, false
	}

	ext := Extent{
		XMin: points[0].X, XMax: points[0].X,
		YMin: points[0].Y, YMax: points[0].Y,
	}
	for _, p := range points[1:] {
		ext.XMin = math.Min(ext.XMin, p.X)
		ext.XMax = math.Max(ext.XMax, p.X)
		ext.YMin = math.Min(ext.YMin, p.Y)
		ext.YMax = math.Max(ext.YMax, p.Y)
	}

	ext.XMin, ext.XMax = Nice(ext.XMin, ext.XMax)
	ext.YMin, ext.YMax = Nice(ext.YMin, ext.YMax)
	return ext, true
}

// Nice расширяет [min, max] до границ, кратных шагу делений (как linear.nice() в d3 v3).
// Вырожденный интервал сначала расширяется на 0.5 в обе стороны.
func Nice(min, max float64) (float64, float64) {
	if max < min {
		min, max = max, min
	}
	if max == min {
		min, max = min-0.5, max+0.5
	}

	// d3 применяет округление дважды: после первого шаг может укрупниться.
	for range 2 {
		step := tickStep(min, max, tickCount)
		if step <= 0 || math.IsInf(step, 0) || math.IsNaN(step) {
			break
		}
		min = math.Floor(min/step) * step
		max = math.Ceil(max/step) * step
	}

	return min, max
}

func tickStep(min, max float64, m int) float64 {
	span := max - min
	step := math.Pow(10, math.Floor(math.Log10(span/float64(m))))
	errRatio := float64(m) / span * step

	switch {
	case errRatio <= .15:
		step *= 10
	case errRatio <= .35:
		step *= 5
	case errRatio <= .75:
		step *= 2
	}

	return step
}

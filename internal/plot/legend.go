package plot

import (
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	legendSwatch   = 18
	legendRowStep  = 20
	legendTextGap  = 6
	legendFontSize = 10
)

// legend рисует в правом верхнем углу области графика цветной квадрат и подпись для каждой метки.
func legend(colors *colorScale) chart.Renderable {
	return func(r chart.Renderer, canvas chart.Box, defaults chart.Style) {
		if font := defaults.GetFont(); font != nil {
			r.SetFont(font)
		}
		r.SetFontSize(legendFontSize)
		r.SetFontColor(drawing.ColorBlack)

		right := canvas.Right
		for i, label := range colors.order {
			top := canvas.Top + i*legendRowStep
			color := colors.color(label)

			r.SetFillColor(color)
			r.SetStrokeColor(color)
			r.SetStrokeWidth(0)
			r.MoveTo(right-legendSwatch, top)
			r.LineTo(right, top)
			r.LineTo(right, top+legendSwatch)
			r.LineTo(right-legendSwatch, top+legendSwatch)
			r.LineTo(right-legendSwatch, top)
			r.Close()
			r.Fill()

			tb := r.MeasureText(label)
			x := right - legendSwatch - legendTextGap - tb.Width()
			y := top + legendSwatch/2 + tb.Height()/2
			r.Text(label, x, y)
		}
	}
}

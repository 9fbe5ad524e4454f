package plot

import (
	"fmt"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

// category10 - категориальная палитра d3.
var category10 = []drawing.Color{
	{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff},
	{R: 0xff, G: 0x7f, B: 0x0e, A: 0xff},
	{R: 0x2c, G: 0xa0, B: 0x2c, A: 0xff},
	{R: 0xd6, G: 0x27, B: 0x28, A: 0xff},
	{R: 0x94, G: 0x67, B: 0xbd, A: 0xff},
	{R: 0x8c, G: 0x56, B: 0x4b, A: 0xff},
	{R: 0xe3, G: 0x77, B: 0xc2, A: 0xff},
	{R: 0x7f, G: 0x7f, B: 0x7f, A: 0xff},
	{R: 0xbc, G: 0xbd, B: 0x22, A: 0xff},
	{R: 0x17, G: 0xbe, B: 0xcf, A: 0xff},
}

// colorScale назначает цвет каждой метке в порядке первого появления; палитра повторяется по кругу.
type colorScale struct {
	order []string
	index map[string]int
}

func newColorScale() *colorScale {
	return &colorScale{index: map[string]int{}}
}

func (c *colorScale) color(label string) drawing.Color {
	i, ok := c.index[label]
	if !ok {
		i = len(c.order)
		c.index[label] = i
		c.order = append(c.order, label)
	}
	return category10[i%len(category10)]
}

func hex(c drawing.Color) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

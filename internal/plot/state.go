package plot

import (
	"fmt"
	"io"

	"github.com/hsm-textlab/workbench/internal/domain"
	"github.com/hsm-textlab/workbench/pkg/e"
	"github.com/jimlawless/whereami"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	Width  = 800
	Height = 600

	dotWidth = 5

	xAxisName = "1st component"
	yAxisName = "2nd component"
)

// Prompter запрашивает у пользователя строку. ok=false означает отмену.
type Prompter interface {
	Prompt(message, def string) (answer string, ok bool)
}

// Marker - представление одной точки для консоли.
type Marker struct {
	Point   domain.PlotPoint `json:"point"`
	Color   string           `json:"color"`
	Visible bool             `json:"visible"`
}

// State - текущее состояние графика кластеризатора.
// Не потокобезопасен: владелец обязан сериализовать доступ.
type State struct {
	points      []domain.PlotPoint
	hideUnknown bool
	hovered     string
	revision    int
}

// NewState копирует набор точек. Метки и видимость меняются только через методы State.
func NewState(points []domain.PlotPoint) *State {
	cp := make([]domain.PlotPoint, len(points))
	copy(cp, points)
	return &State{points: cp}
}

// Points возвращает копию точек с текущими метками.
func (s *State) Points() []domain.PlotPoint {
	cp := make([]domain.PlotPoint, len(s.points))
	copy(cp, s.points)
	return cp
}

func (s *State) Len() int {
	return len(s.points)
}

// Revision увеличивается при каждом изменении, требующем перерисовки.
func (s *State) Revision() int {
	return s.revision
}

func (s *State) point(idx int) (*domain.PlotPoint, error) {
	if idx < 0 || idx >= len(s.points) {
		return nil, e.Wrap(fmt.Sprintf("point %d", idx), e.ErrPointNotFound)
	}
	return &s.points[idx], nil
}

// Click запрашивает новую метку для точки idx. При отмене ничего не меняется и возвращается false.
func (s *State) Click(idx int, p Prompter) (bool, error) {
	pt, err := s.point(idx)
	if err != nil {
		return false, err
	}

	label, ok := p.Prompt("Enter label for "+pt.Document, pt.Label)
	if !ok {
		return false, nil
	}

	if err := s.Relabel(idx, label); err != nil {
		return false, err
	}
	return true, nil
}

// Relabel меняет метку одной точки.
func (s *State) Relabel(idx int, label string) error {
	pt, err := s.point(idx)
	if err != nil {
		return err
	}

	pt.Label = label
	s.revision++
	return nil
}

// ShowUnknown делает видимыми все точки.
func (s *State) ShowUnknown() {
	s.hideUnknown = false
	s.revision++
}

// HideUnknown скрывает неразмеченные точки.
func (s *State) HideUnknown() {
	s.hideUnknown = true
	s.revision++
}

func (s *State) UnknownHidden() bool {
	return s.hideUnknown
}

// Visible сообщает, отображается ли точка с индексом idx.
func (s *State) Visible(idx int) bool {
	if idx < 0 || idx >= len(s.points) {
		return false
	}
	return !(s.hideUnknown && s.points[idx].IsUnknown())
}

// Hover запоминает и возвращает документ точки под курсором.
func (s *State) Hover(idx int) (string, error) {
	pt, err := s.point(idx)
	if err != nil {
		return "", err
	}
	s.hovered = pt.Document
	return s.hovered, nil
}

func (s *State) Unhover() {
	s.hovered = ""
}

// Hovered - документ, показанный в боковой панели, или пустая строка.
func (s *State) Hovered() string {
	return s.hovered
}

// Markers возвращает точку, цвет и видимость для каждой точки в исходном порядке.
func (s *State) Markers() []Marker {
	colors := newColorScale()
	markers := make([]Marker, len(s.points))
	for i, p := range s.points {
		markers[i] = Marker{
			Point:   p,
			Color:   hex(colors.color(p.Label)),
			Visible: s.Visible(i),
		}
	}
	return markers
}

// Render рисует точечную диаграмму в SVG. Для пустого набора ничего не пишет.
// Легенда перечисляет все метки, включая метки скрытых точек.
func (s *State) Render(w io.Writer) error {
	const op = "plot.Render"

	ext, ok := Domain(s.points)
	if !ok {
		return nil
	}

	colors := newColorScale()
	byLabel := map[string]*chart.ContinuousSeries{}

	// Серия по углам области ничего не рисует, но держит оси, даже если все точки скрыты.
	// Hidden ставить нельзя: go-chart не рисует график без видимых серий.
	series := []chart.Series{
		chart.ContinuousSeries{
			Style: chart.Style{
				StrokeWidth: chart.Disabled,
				StrokeColor: drawing.ColorTransparent,
				DotWidth:    0,
				DotColor:    drawing.ColorTransparent,
			},
			XValues: []float64{ext.XMin, ext.XMax},
			YValues: []float64{ext.YMin, ext.YMax},
		},
	}

	var drawn []string
	for i, p := range s.points {
		color := colors.color(p.Label)
		if !s.Visible(i) {
			continue
		}

		cs, ok := byLabel[p.Label]
		if !ok {
			cs = &chart.ContinuousSeries{
				Name: p.Label,
				Style: chart.Style{
					StrokeWidth: chart.Disabled,
					DotWidth:    dotWidth,
					DotColor:    color,
				},
			}
			byLabel[p.Label] = cs
			drawn = append(drawn, p.Label)
		}
		cs.XValues = append(cs.XValues, p.X)
		cs.YValues = append(cs.YValues, p.Y)
	}

	for _, label := range drawn {
		series = append(series, *byLabel[label])
	}

	graph := chart.Chart{
		Width:  Width,
		Height: Height,
		Background: chart.Style{
			Padding: chart.Box{Top: 20, Right: 20, Bottom: 30, Left: 40},
		},
		XAxis: chart.XAxis{
			Name:  xAxisName,
			Range: &chart.ContinuousRange{Min: ext.XMin, Max: ext.XMax},
		},
		YAxis: chart.YAxis{
			Name:  yAxisName,
			Range: &chart.ContinuousRange{Min: ext.YMin, Max: ext.YMax},
		},
		Series:   series,
		Elements: []chart.Renderable{legend(colors)},
	}

	if err := graph.Render(chart.SVG, w); err != nil {
		return e.Wrap(fmt.Sprintf("%s: %s", op, whereami.WhereAmI()), err)
	}
	return nil
}

package chart

import (
	"math"

	"github.com/pkg/errors"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/BayerSe/expected-shortfall-backtesting/pkg/style"
)

var (
	_ chart.Series         = &LineSeries{}
	_ chart.ValuesProvider = &LineSeries{}
	_ chart.Series         = &VerticalLine{}
)

const (
	DefaultLineWidth  = 1.5
	DefaultMarkerSize = 4.0
)

// DashArray is the dash pattern of dashed lines.
var DashArray = []float64{5, 3}

// LineSeries is a polyline with optional markers. An empty Name keeps the series out of
// the legend.
type LineSeries struct {
	Name    string
	XValues []float64
	YValues []float64

	Color  drawing.Color
	Width  float64
	Dashed bool

	// NoLine draws the markers only.
	NoLine bool

	Marker     style.Marker
	MarkerSize float64

	// ShowMarkers draws a marker on every point unless MarkAt limits them.
	ShowMarkers bool
	MarkAt      []int
}

// NewMarkedLine is the line of a backtest drawn with its registered style.
func NewMarkedLine(name string, xs, ys []float64, s style.Style) *LineSeries {
	return &LineSeries{
		Name:        name,
		XValues:     xs,
		YValues:     ys,
		Color:       s.Color,
		Marker:      s.Marker,
		ShowMarkers: true,
	}
}

func (s *LineSeries) GetName() string {
	return s.Name
}

func (s *LineSeries) GetYAxis() chart.YAxisType {
	return chart.YAxisPrimary
}

func (s *LineSeries) GetStyle() chart.Style {
	return chart.Style{StrokeColor: s.Color, StrokeWidth: s.lineWidth(), StrokeDashArray: s.dashArray()}
}

func (s *LineSeries) Len() int {
	return len(s.XValues)
}

func (s *LineSeries) GetValues(i int) (float64, float64) {
	return s.XValues[i], s.YValues[i]
}

func (s *LineSeries) Validate() error {
	if len(s.XValues) == 0 {
		return errors.Errorf("line %q has no points", s.Name)
	}
	if len(s.XValues) != len(s.YValues) {
		return errors.Errorf("line %q has %d x values and %d y values", s.Name, len(s.XValues), len(s.YValues))
	}
	return nil
}

func (s *LineSeries) lineWidth() float64 {
	if s.Width > 0 {
		return s.Width
	}
	return DefaultLineWidth
}

func (s *LineSeries) markerSize() float64 {
	if s.MarkerSize > 0 {
		return s.MarkerSize
	}
	return DefaultMarkerSize
}

func (s *LineSeries) dashArray() []float64 {
	if s.Dashed {
		return DashArray
	}
	return nil
}

func (s *LineSeries) markerIndices() []int {
	if !s.ShowMarkers && !s.NoLine {
		return nil
	}
	if s.MarkAt != nil {
		return s.MarkAt
	}

	all := make([]int, len(s.XValues))
	for i := range all {
		all[i] = i
	}
	return all
}

func (s *LineSeries) Render(r chart.Renderer, canvasBox chart.Box, xrange, yrange chart.Range, _ chart.Style) {
	project := func(i int) (int, int, bool) {
		x, y := s.XValues[i], s.YValues[i]
		if math.IsNaN(x) || math.IsNaN(y) {
			return 0, 0, false
		}
		return canvasBox.Left + xrange.Translate(x), canvasBox.Bottom - yrange.Translate(y), true
	}

	if !s.NoLine {
		r.SetFillColor(drawing.ColorTransparent)
		r.SetStrokeColor(s.Color)
		r.SetStrokeWidth(s.lineWidth())
		r.SetStrokeDashArray(s.dashArray())

		open := false
		for i := range s.XValues {
			x, y, ok := project(i)
			if !ok {
				// gaps break the line
				open = false
				continue
			}
			if !open {
				r.MoveTo(x, y)
				open = true
				continue
			}
			r.LineTo(x, y)
		}
		r.Stroke()
	}

	for _, i := range s.markerIndices() {
		if i < 0 || i >= len(s.XValues) {
			continue
		}
		x, y, ok := project(i)
		if !ok {
			continue
		}
		drawMarker(r, s.Marker, x, y, s.markerSize(), s.Color)
	}
}

// VerticalLine marks a position on the x axis over the full height of the canvas.
type VerticalLine struct {
	X      float64
	Color  drawing.Color
	Width  float64
	Dashed bool
}

func (v *VerticalLine) GetName() string {
	return ""
}

func (v *VerticalLine) GetYAxis() chart.YAxisType {
	return chart.YAxisPrimary
}

func (v *VerticalLine) GetStyle() chart.Style {
	return chart.Style{StrokeColor: v.Color, StrokeWidth: v.Width}
}

func (v *VerticalLine) Validate() error {
	return nil
}

func (v *VerticalLine) Render(r chart.Renderer, canvasBox chart.Box, xrange, _ chart.Range, _ chart.Style) {
	width := v.Width
	if width <= 0 {
		width = 1
	}

	x := canvasBox.Left + xrange.Translate(v.X)
	r.SetFillColor(drawing.ColorTransparent)
	r.SetStrokeColor(v.Color)
	r.SetStrokeWidth(width)
	if v.Dashed {
		r.SetStrokeDashArray(DashArray)
	} else {
		r.SetStrokeDashArray(nil)
	}

	r.MoveTo(x, canvasBox.Top)
	r.LineTo(x, canvasBox.Bottom)
	r.Stroke()
}

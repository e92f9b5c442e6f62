package chart

import (
	"math"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/BayerSe/expected-shortfall-backtesting/pkg/style"
)

const markerEdgeWidth = 0.5

// drawMarker fills the marker outline at (x, y) in canvas pixels with a thin black edge.
func drawMarker(r chart.Renderer, m style.Marker, x, y int, size float64, color drawing.Color) {
	r.SetFillColor(color)
	r.SetStrokeColor(style.Black)
	r.SetStrokeWidth(markerEdgeWidth)
	r.SetStrokeDashArray(nil)

	vertices := m.Vertices()
	if len(vertices) == 0 {
		r.Circle(size*0.8, x, y)
		return
	}

	for i, v := range vertices {
		px := x + int(math.Round(v[0]*size))
		py := y - int(math.Round(v[1]*size))
		if i == 0 {
			r.MoveTo(px, py)
			continue
		}
		r.LineTo(px, py)
	}
	r.Close()
	r.FillStroke()
}

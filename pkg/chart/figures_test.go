package chart

import (
	"math"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BayerSe/expected-shortfall-backtesting/pkg/style"
)

func TestROCChart(t *testing.T) {
	canvas, err := ROCChart(ROCOptions{
		Lines: []ROCLine{
			{
				Label:  "Str. ESR (m)",
				X:      []float64{0.01, 0.2, 0.4, 0.6, 0.8, 0.95},
				Y:      []float64{0.3, 0.6, 0.8, 0.9, 0.95, 0.99},
				Style:  style.Style{Color: style.Deep[0], Marker: style.MarkerSquare},
				MarkAt: []int{1, 2, 3, 4},
			},
			{
				Label: "ER",
				X:     []float64{0.01, 0.5, 0.95},
				Y:     []float64{0.1, 0.7, 0.97},
				Style: style.Style{Color: style.Deep[6], Marker: style.MarkerTriangleDown},
			},
		},
	})
	require.NoError(t, err)

	svg, err := canvas.SVG()
	require.NoError(t, err)

	out := string(svg)
	assert.True(t, strings.HasPrefix(out, "<svg"))
	assert.Contains(t, out, "Empirical Size of the Test")
	assert.Contains(t, out, "Empirical Power of the Test")
	assert.Contains(t, out, "Str. ESR (m)")
	assert.Contains(t, out, ">ER<")
}

func TestROCChart_NoLines(t *testing.T) {
	_, err := ROCChart(ROCOptions{})
	assert.True(t, errors.Is(err, ErrNoSeries))
}

func TestPointPlot(t *testing.T) {
	canvas, err := PointPlot(PointPlotOptions{
		XLabel:     "Degrees of freedom of the Student-$t$",
		YLabel:     "Rejection Rate",
		Categories: []string{"3", "5", "10", "1000000"},
		Series: []PointSeries{
			{Label: "General CC", Values: []float64{0.9, 0.5, 0.1, 0.05}, Style: style.Style{Color: style.Deep[3], Marker: style.MarkerTriangleLeft}},
			{Label: "ER", Values: []float64{0.8, math.NaN(), 0.2, 0.06}, Style: style.Style{Color: style.Deep[6], Marker: style.MarkerTriangleDown}},
		},
		Reference:  2,
		TickLabels: map[int]string{3: "∞"},
	})
	require.NoError(t, err)

	svg, err := canvas.SVG()
	require.NoError(t, err)

	out := string(svg)
	assert.Contains(t, out, "Rejection Rate")
	assert.Contains(t, out, "General CC")
	assert.Contains(t, out, "∞")
	assert.NotContains(t, out, "1000000")
}

func TestPointPlot_HideAlternateTicks(t *testing.T) {
	canvas, err := PointPlot(PointPlotOptions{
		Categories:         []string{"0.03", "0.04", "0.05", "0.06"},
		Series:             []PointSeries{{Label: "ER", Values: []float64{0.1, 0.2, 0.3, 0.4}}},
		Reference:          -1,
		HideAlternateTicks: true,
		InvertX:            true,
	})
	require.NoError(t, err)

	svg, err := canvas.SVG()
	require.NoError(t, err)

	out := string(svg)
	assert.NotContains(t, out, ">0.03<")
	assert.Contains(t, out, ">0.04<")
	assert.NotContains(t, out, ">0.05<")
	assert.Contains(t, out, ">0.06<")
}

func TestPointPlot_Validation(t *testing.T) {
	_, err := PointPlot(PointPlotOptions{
		Categories: []string{"250", "500"},
		Series:     []PointSeries{{Label: "ER", Values: []float64{0.1}}},
	})
	assert.Error(t, err)

	_, err = PointPlot(PointPlotOptions{
		Categories: []string{"250"},
		Series:     []PointSeries{{Label: "ER", Values: []float64{math.NaN()}}},
	})
	assert.True(t, errors.Is(err, ErrNoSeries))
}

func TestLinePlot(t *testing.T) {
	xs := []float64{1, 2, 3, 4, 5}
	canvas, err := LinePlot(LinePlotOptions{
		XLabel: "Observation Number",
		YLabel: "Return and ES",
		Lines: []Line{
			{Label: "3", X: xs, Y: []float64{-2, -2.1, -2.2, -2.1, -2}, Color: style.Black},
			{Label: "5 (true)", X: xs, Y: []float64{-1.8, -1.9, -2, -1.9, -1.8}, Color: style.Gray, Dashed: true},
			{Label: "1000000", X: xs, Y: []float64{-1.6, -1.7, -1.8, -1.7, -1.6}, Color: style.LightGray},
		},
		DotsX:        xs,
		DotsY:        []float64{0.5, -1, 2, 0.1, -0.3},
		LegendTitle:  "Degrees of freedom of the Student-$t$",
		LegendRename: map[int]string{2: "∞"},
	})
	require.NoError(t, err)

	svg, err := canvas.SVG()
	require.NoError(t, err)

	out := string(svg)
	assert.Contains(t, out, "Observation Number")
	assert.Contains(t, out, "5 (true)")
	assert.Contains(t, out, "∞")
	assert.NotContains(t, out, ">1000000<")
}

func TestLegend_SkipsUnnamedSeries(t *testing.T) {
	canvas, err := ROCChart(ROCOptions{
		Lines: []ROCLine{{Label: "ER", X: []float64{0, 1}, Y: []float64{0, 1}}},
	})
	require.NoError(t, err)

	legend := &Legend{}
	entries := legend.entries(canvas.Series)
	require.Len(t, entries, 1)
	assert.Equal(t, "ER", entries[0].label)
}

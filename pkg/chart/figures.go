package chart

import (
	"math"

	"github.com/pkg/errors"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/BayerSe/expected-shortfall-backtesting/pkg/style"
)

var ErrNoSeries = errors.New("figure has no series")

// ROCLine is the size-power curve of one backtest.
type ROCLine struct {
	Label  string
	X, Y   []float64
	Style  style.Style
	MarkAt []int
}

type ROCOptions struct {
	Title         string
	Width, Height int
	Lines         []ROCLine
}

// ROCChart draws empirical power against empirical size on the unit square together
// with the diagonal of a test without power.
func ROCChart(opts ROCOptions) (*Canvas, error) {
	if len(opts.Lines) == 0 {
		return nil, ErrNoSeries
	}

	c := NewCanvas(opts.Title, opts.Width, opts.Height)
	unit := LinearTicks(0, 1, 0.2, "%.1f")
	c.SetXAxis("Empirical Size of the Test", Range{Min: 0, Max: 1}, unit)
	c.SetYAxis("Empirical Power of the Test", Range{Min: 0, Max: 1}, unit, true)

	for _, l := range opts.Lines {
		s := NewMarkedLine(l.Label, l.X, l.Y, l.Style)
		s.MarkAt = l.MarkAt
		if s.MarkAt == nil {
			s.MarkAt = []int{}
		}
		c.Add(s)
	}

	c.Add(&LineSeries{
		XValues: []float64{0, 1},
		YValues: []float64{0, 1},
		Color:   style.Black,
		Width:   1,
	})

	c.SetLegend(&Legend{Position: LegendLowerRight})
	return c, nil
}

// PointSeries holds one value per category; NaN leaves the category out.
type PointSeries struct {
	Label  string
	Values []float64
	Style  style.Style
}

type PointPlotOptions struct {
	Title         string
	Width, Height int

	XLabel, YLabel string
	Categories     []string
	Series         []PointSeries

	// Reference draws a gray vertical line at the category index; negative disables it.
	Reference int

	InvertX bool

	// TickLabels replaces the tick label at a category index.
	TickLabels map[int]string

	// HideAlternateTicks blanks the labels of the even category indices.
	HideAlternateTicks bool

	LegendPosition LegendPosition

	// YBins is the maximum number of y tick intervals.
	YBins int
}

// PointPlot draws one marker-and-line series per test over a categorical x axis.
func PointPlot(opts PointPlotOptions) (*Canvas, error) {
	if len(opts.Series) == 0 {
		return nil, ErrNoSeries
	}
	if len(opts.Categories) == 0 {
		return nil, errors.New("point plot has no categories")
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, s := range opts.Series {
		if len(s.Values) != len(opts.Categories) {
			return nil, errors.Errorf("series %q has %d values for %d categories", s.Label, len(s.Values), len(opts.Categories))
		}
		for _, v := range s.Values {
			if math.IsNaN(v) {
				continue
			}
			lo, hi = math.Min(lo, v), math.Max(hi, v)
		}
	}
	if math.IsInf(lo, 1) {
		return nil, errors.Wrap(ErrNoSeries, "every value is missing")
	}

	c := NewCanvas(opts.Title, opts.Width, opts.Height)

	ticks := CategoryTicks(opts.Categories)
	for i, label := range opts.TickLabels {
		if i >= 0 && i < len(ticks) {
			ticks[i].Label = label
		}
	}
	if opts.HideAlternateTicks {
		for i := 0; i < len(ticks); i += 2 {
			ticks[i].Label = ""
		}
	}

	xr := CategoryRange(len(opts.Categories))
	xr.Descending = opts.InvertX
	c.SetXAxis(opts.XLabel, xr, ticks)

	bins := opts.YBins
	if bins <= 0 {
		bins = 6
	}
	yr, yticks := NiceTicks(lo, hi, bins)
	c.SetYAxis(opts.YLabel, yr, yticks, true)

	if opts.Reference >= 0 && opts.Reference < len(opts.Categories) {
		c.Add(&VerticalLine{X: float64(opts.Reference), Color: style.Gray, Width: 1})
	}

	xs := make([]float64, len(opts.Categories))
	for i := range xs {
		xs[i] = float64(i)
	}
	for _, s := range opts.Series {
		c.Add(NewMarkedLine(s.Label, xs, s.Values, s.Style))
	}

	position := opts.LegendPosition
	if position == LegendBest {
		var points [][2]float64
		for _, s := range opts.Series {
			for i, v := range s.Values {
				if math.IsNaN(v) {
					continue
				}
				x := (float64(i) + 0.5) / float64(len(opts.Categories))
				if opts.InvertX {
					x = 1 - x
				}
				points = append(points, [2]float64{x, (v - yr.Min) / (yr.Max - yr.Min)})
			}
		}
		position = bestPosition(points)
	}

	c.SetLegend(&Legend{Position: position})
	return c, nil
}

// Line is a plain line of a LinePlot.
type Line struct {
	Label  string
	X, Y   []float64
	Color  drawing.Color
	Dashed bool
}

type LinePlotOptions struct {
	Title         string
	Width, Height int

	XLabel, YLabel string
	YRange         Range

	Lines []Line

	// Dots are drawn as small black points without a legend entry.
	DotsX, DotsY []float64

	LegendTitle   string
	LegendColumns int
	LegendRename  map[int]string
}

// LinePlot draws time series, for example expected shortfall paths over the
// observation number, with an optional scatter of the underlying returns.
func LinePlot(opts LinePlotOptions) (*Canvas, error) {
	if len(opts.Lines) == 0 {
		return nil, ErrNoSeries
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, l := range opts.Lines {
		for _, x := range l.X {
			lo, hi = math.Min(lo, x), math.Max(hi, x)
		}
	}
	for _, x := range opts.DotsX {
		lo, hi = math.Min(lo, x), math.Max(hi, x)
	}
	if math.IsInf(lo, 1) {
		return nil, errors.Wrap(ErrNoSeries, "lines have no points")
	}

	c := NewCanvas(opts.Title, opts.Width, opts.Height)

	xr, xticks := NiceTicks(lo, hi, 5)
	c.SetXAxis(opts.XLabel, xr, xticks)

	yr := opts.YRange
	if yr.Max <= yr.Min {
		yr = Range{Min: -4, Max: 4}
	}
	_, yticks := NiceTicks(yr.Min, yr.Max, 4)
	c.SetYAxis(opts.YLabel, yr, yticks, true)

	for _, l := range opts.Lines {
		c.Add(&LineSeries{
			Name:    l.Label,
			XValues: l.X,
			YValues: l.Y,
			Color:   l.Color,
			Width:   1.2,
			Dashed:  l.Dashed,
		})
	}

	if len(opts.DotsX) > 0 {
		c.Add(&LineSeries{
			XValues:    opts.DotsX,
			YValues:    opts.DotsY,
			Color:      style.Black,
			NoLine:     true,
			Marker:     style.MarkerCircle,
			MarkerSize: 1.5,
		})
	}

	c.SetLegend(&Legend{
		Position: LegendUpperLeft,
		Title:    opts.LegendTitle,
		Columns:  opts.LegendColumns,
		Rename:   opts.LegendRename,
	})
	return c, nil
}

package chart

import (
	"fmt"
	"math"

	"github.com/wcharczuk/go-chart/v2"
)

// Range is the visible extent of an axis.
type Range struct {
	Min, Max   float64
	Descending bool
}

// tickRange is a continuous range that also provides the axis ticks, so the ticks do not
// stretch the range to their own extent.
type tickRange struct {
	chart.ContinuousRange

	ticks []chart.Tick
}

var _ chart.TicksProvider = &tickRange{}

func newTickRange(r Range, ticks []chart.Tick) *tickRange {
	return &tickRange{
		ContinuousRange: chart.ContinuousRange{Min: r.Min, Max: r.Max, Descending: r.Descending},
		ticks:           ticks,
	}
}

func (r *tickRange) GetTicks(_ chart.Renderer, _ chart.Style, vf chart.ValueFormatter) []chart.Tick {
	if len(r.ticks) > 0 {
		return r.ticks
	}

	if vf == nil {
		vf = chart.FloatValueFormatter
	}
	return []chart.Tick{{Value: r.Min, Label: vf(r.Min)}, {Value: r.Max, Label: vf(r.Max)}}
}

// LinearTicks places ticks every step from min to max inclusive.
func LinearTicks(min, max, step float64, format string) []chart.Tick {
	if step <= 0 || max < min {
		return nil
	}

	var ticks []chart.Tick
	n := int(math.Floor((max-min)/step + 1e-9))
	for i := 0; i <= n; i++ {
		v := min + float64(i)*step
		ticks = append(ticks, chart.Tick{Value: v, Label: fmt.Sprintf(format, v)})
	}
	return ticks
}

// CategoryTicks labels the positions 0..n-1 of a categorical axis.
func CategoryTicks(labels []string) []chart.Tick {
	ticks := make([]chart.Tick, len(labels))
	for i, label := range labels {
		ticks[i] = chart.Tick{Value: float64(i), Label: label}
	}
	return ticks
}

// CategoryRange is the extent of a categorical axis with n categories, padded by half a
// category on both sides.
func CategoryRange(n int) Range {
	return Range{Min: -0.5, Max: float64(n) - 0.5}
}

var niceSteps = []float64{1, 2, 2.5, 5, 10}

// NiceTicks chooses at most maxBins intervals with a step of 1, 2, 2.5 or 5 times a power
// of ten that cover [min, max], and returns the covering range with its ticks.
func NiceTicks(min, max float64, maxBins int) (Range, []chart.Tick) {
	if maxBins < 1 {
		maxBins = 1
	}
	if max < min {
		min, max = max, min
	}
	if max == min {
		min, max = min-0.5, max+0.5
	}

	raw := (max - min) / float64(maxBins)
	magnitude := math.Pow(10, math.Floor(math.Log10(raw)))

	step := niceSteps[len(niceSteps)-1] * magnitude
	for _, s := range niceSteps {
		if s*magnitude >= raw-1e-12 {
			step = s * magnitude
			break
		}
	}

	lo := math.Floor(min/step+1e-9) * step
	hi := math.Ceil(max/step-1e-9) * step

	decimals := 0
	if step < 1 {
		decimals = int(math.Ceil(-math.Log10(step) - 1e-9))
		if math.Abs(step*math.Pow(10, float64(decimals))-math.Round(step*math.Pow(10, float64(decimals)))) > 1e-9 {
			decimals++
		}
	}

	return Range{Min: lo, Max: hi}, LinearTicks(lo, hi, step, fmt.Sprintf("%%.%df", decimals))
}

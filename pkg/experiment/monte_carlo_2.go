package experiment

import (
	"context"
	"math"
	"strconv"

	"github.com/pkg/errors"

	"github.com/BayerSe/expected-shortfall-backtesting/pkg/chart"
	"github.com/BayerSe/expected-shortfall-backtesting/pkg/datasource/csvsource"
	"github.com/BayerSe/expected-shortfall-backtesting/pkg/mapping"
	"github.com/BayerSe/expected-shortfall-backtesting/pkg/report"
	"github.com/BayerSe/expected-shortfall-backtesting/pkg/types"
)

const MonteCarlo2ID = "mc2"

const (
	twoSidedRow = "Two-Sided"
	oneSidedRow = "One-Sided"
)

// MonteCarlo2 writes the power curves over the swept parameters of the second study and
// its size table.
type MonteCarlo2 struct {
	env *Environment
}

func NewMonteCarlo2(env *Environment) *MonteCarlo2 {
	return &MonteCarlo2{env: env}
}

func (j *MonteCarlo2) ID() string {
	return MonteCarlo2ID
}

func (j *MonteCarlo2) load(rel string) ([]types.PowerRecord, error) {
	c := j.env.Config
	records, err := csvsource.ReadPowerRecords(c.InputPath(rel), j.env.Registry)
	if err != nil {
		return nil, err
	}

	out := records[:0]
	for _, r := range records {
		// NaN never passes
		if !(r.Alpha1 >= c.MonteCarlo2.MinAlpha1) {
			continue
		}
		r.Shape = math.Trunc(r.Shape)
		out = append(out, r)
	}

	log.Debugf("%s: kept %d of %d records", rel, len(out), len(records))
	return out, nil
}

func (j *MonteCarlo2) Run(ctx context.Context) error {
	c := j.env.Config
	records, err := j.load(c.MonteCarlo2.Input)
	if err != nil {
		return err
	}

	for _, oneSided := range []bool{false, true} {
		for _, sw := range Sweeps {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := j.writePowerCurve(records, sw, oneSided); err != nil {
				return errors.Wrapf(err, "power curve of set %d", sw.Set)
			}
		}
	}

	raw, err := j.load(c.MonteCarlo2.RawInput)
	if err != nil {
		return err
	}

	tbl, err := PowerSizeTable(raw, c.MonteCarlo2.SizeModelIndex)
	if err != nil {
		return err
	}
	j.env.print(tbl, "Size, monte carlo 2")
	return j.env.writeLaTeX(join("monte_carlo_2", "size.txt"), tbl, report.LaTeXOptions{})
}

// PowerCurve averages the rejection rates of every backtest per value of the swept
// parameter. Backtests without any record are left out.
func PowerCurve(records []types.PowerRecord, sw Sweep, oneSided bool, backtests []string) ([]float64, map[string][]float64) {
	var subset []types.PowerRecord
	var params []float64
	for _, r := range records {
		if r.Set != sw.Set || r.OneSided != oneSided {
			continue
		}
		subset = append(subset, r)
		params = append(params, r.Get(sw.Parameter))
	}

	categories := uniqueSorted(params)
	sums := make(map[string][]float64)
	counts := make(map[string][]int)
	for _, backtest := range backtests {
		sums[backtest] = make([]float64, len(categories))
		counts[backtest] = make([]int, len(categories))
	}

	for _, r := range subset {
		sum, ok := sums[r.Backtest]
		if !ok {
			continue
		}
		i := indexOf(categories, r.Get(sw.Parameter))
		if i < 0 || math.IsNaN(r.Value) {
			continue
		}
		sum[i] += r.Value
		counts[r.Backtest][i]++
	}

	values := make(map[string][]float64)
	for _, backtest := range backtests {
		var n int
		mean := nanSlice(len(categories))
		for i, c := range counts[backtest] {
			if c > 0 {
				mean[i] = sums[backtest][i] / float64(c)
				n += c
			}
		}
		if n > 0 {
			values[backtest] = mean
		}
	}
	return categories, values
}

func (j *MonteCarlo2) writePowerCurve(records []types.PowerRecord, sw Sweep, oneSided bool) error {
	backtests := mapping.FigureTests()
	suffix := "_2s.svg"
	if oneSided {
		backtests = mapping.OneSidedFigureTests()
		suffix = "_1s.svg"
	}

	categories, values := PowerCurve(records, sw, oneSided, backtests)
	if len(categories) == 0 {
		log.Warnf("set %d has no %s records, skipping its power curve", sw.Set, sidedness(oneSided))
		return nil
	}

	styles, err := j.env.Registry.Styles(backtests)
	if err != nil {
		return err
	}

	var lines []chart.PointSeries
	for i, backtest := range backtests {
		v, ok := values[backtest]
		if !ok {
			log.Warnf("set %d: no %s records of %s", sw.Set, sidedness(oneSided), backtest)
			continue
		}
		lines = append(lines, chart.PointSeries{Label: backtest, Values: v, Style: styles[i]})
	}

	labels := make([]string, len(categories))
	for i, v := range categories {
		labels[i] = formatValue(v, sw.Integer)
	}

	opts := chart.PointPlotOptions{
		XLabel:             sw.XLabel,
		YLabel:             "Rejection Rate",
		Categories:         labels,
		Series:             lines,
		Reference:          sw.TrueIndex,
		InvertX:            sw.InvertX,
		HideAlternateTicks: sw.HideAlternateTicks,
		LegendPosition:     chart.LegendBest,
	}
	opts.Width, opts.Height = j.env.figureSize(1, 1)
	if sw.InfinityLast {
		opts.TickLabels = map[int]string{len(labels) - 1: infinity}
	}

	canvas, err := chart.PointPlot(opts)
	if err != nil {
		return err
	}
	return j.env.writeSVG(join("monte_carlo_2", "rejection_rates", strconv.Itoa(sw.Set)+suffix), canvas)
}

func sidedness(oneSided bool) string {
	if oneSided {
		return "one-sided"
	}
	return "two-sided"
}

// PowerSizeTable pivots the rejection rates at the calibrated grid point into one row
// per sidedness.
func PowerSizeTable(records []types.PowerRecord, modelIndex int) (*report.Table, error) {
	pivot := report.NewPivot(mapping.PowerSizeTableTests())
	pivot.AddRow(twoSidedRow)
	pivot.AddRow(oneSidedRow)

	for _, r := range records {
		if r.ModelIndex != modelIndex {
			continue
		}

		row := twoSidedRow
		if r.OneSided {
			row = oneSidedRow
		}
		if err := pivot.Set(row, r.Backtest, r.Value); err != nil {
			return nil, errors.Wrap(err, "size table")
		}
	}

	return pivot.Table(report.LeadingColumn{Name: "sides", Values: pivot.Rows()})
}

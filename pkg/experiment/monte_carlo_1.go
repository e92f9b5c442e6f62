package experiment

import (
	"context"
	"math"
	"sort"
	"strconv"

	"github.com/pkg/errors"

	"github.com/BayerSe/expected-shortfall-backtesting/pkg/artifact"
	"github.com/BayerSe/expected-shortfall-backtesting/pkg/chart"
	"github.com/BayerSe/expected-shortfall-backtesting/pkg/datasource/csvsource"
	"github.com/BayerSe/expected-shortfall-backtesting/pkg/mapping"
	"github.com/BayerSe/expected-shortfall-backtesting/pkg/report"
	"github.com/BayerSe/expected-shortfall-backtesting/pkg/roc"
	"github.com/BayerSe/expected-shortfall-backtesting/pkg/types"
)

const MonteCarlo1ID = "mc1"

// MonteCarlo1 writes the size tables, the size-power curves and the partial AUC figures
// of the first study, one directory per null model.
type MonteCarlo1 struct {
	env *Environment
}

func NewMonteCarlo1(env *Environment) *MonteCarlo1 {
	return &MonteCarlo1{env: env}
}

func (j *MonteCarlo1) ID() string {
	return MonteCarlo1ID
}

func (j *MonteCarlo1) Run(ctx context.Context) error {
	c := j.env.Config
	rates, err := csvsource.ReadRejectionRates(c.InputPath(c.MonteCarlo1.Input), j.env.Registry)
	if err != nil {
		return err
	}

	for _, nullModel := range nullModels(rates) {
		if err := ctx.Err(); err != nil {
			return err
		}

		log.Infof("monte carlo 1: null model %s", nullModel)
		subset := types.FilterRejectionRates(rates, types.RejectionRateFilter{NullModel: nullModel})
		if err := j.writeSizeTables(nullModel, subset); err != nil {
			return err
		}
		if err := j.writeROCCharts(ctx, nullModel, subset); err != nil {
			return err
		}
		if err := j.writePartialAUC(nullModel, subset); err != nil {
			return err
		}
	}
	return nil
}

func (j *MonteCarlo1) dir(nullModel string) string {
	return join("monte_carlo_1", nullModel)
}

// nullModels returns the null models in the order of their first appearance.
func nullModels(rates []types.RejectionRate) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, r := range rates {
		if _, ok := seen[r.NullModel]; ok {
			continue
		}
		seen[r.NullModel] = struct{}{}
		out = append(out, r.NullModel)
	}
	return out
}

func sampleSizes(rates []types.RejectionRate) []int {
	seen := make(map[int]struct{})
	var out []int
	for _, r := range rates {
		if _, ok := seen[r.SampleSize]; ok {
			continue
		}
		seen[r.SampleSize] = struct{}{}
		out = append(out, r.SampleSize)
	}
	sort.Ints(out)
	return out
}

// SizeTable pivots the two-sided rejection rates of the reference model at one
// significance level into sample size rows and backtest columns.
func SizeTable(rates []types.RejectionRate, referenceModel string, sigLev float64, dgp string) (*report.Table, error) {
	subset := types.FilterRejectionRates(rates, types.RejectionRateFilter{
		Model:  referenceModel,
		SigLev: sigLev,
	})

	pivot := report.NewPivot(mapping.SizeTableTests())
	for _, r := range subset {
		if err := pivot.Set(strconv.Itoa(r.SampleSize), r.Backtest, r.RejRate); err != nil {
			return nil, errors.Wrapf(err, "size table at %v", sigLev)
		}
	}
	pivot.SortRows(report.NumericLess)

	rows := pivot.Rows()
	dgpColumn := make([]string, len(rows))
	if len(rows) > 0 {
		dgpColumn[len(rows)/2] = dgp
	}

	return pivot.Table(
		report.LeadingColumn{Name: "dgp", Values: dgpColumn},
		report.LeadingColumn{Name: "sample", Values: rows},
	)
}

func (j *MonteCarlo1) writeSizeTables(nullModel string, rates []types.RejectionRate) error {
	c := j.env.Config
	dgp, err := j.env.Registry.DGPName(nullModel)
	if err != nil {
		return err
	}

	for _, sigLev := range c.MonteCarlo1.SignificanceLevels {
		tbl, err := SizeTable(rates, c.MonteCarlo1.ReferenceModel, sigLev, dgp)
		if err != nil {
			return err
		}

		p := join(j.dir(nullModel), "size_"+formatValue(sigLev, false)+".txt")
		if err := j.env.writeLaTeX(p, tbl, report.LaTeXOptions{CommentHeader: true}); err != nil {
			return err
		}
	}
	return nil
}

// series collects the two-sided observations of one backtest and model.
func series(rates []types.RejectionRate, sampleSize int, model, backtest string) roc.Series {
	subset := types.FilterRejectionRates(rates, types.RejectionRateFilter{
		SampleSize: sampleSize,
		Model:      model,
		Backtest:   backtest,
	})

	out := make(roc.Series, 0, len(subset))
	for _, r := range subset {
		out = append(out, roc.Observation{SigLev: r.SigLev, Rate: r.RejRate})
	}
	return out
}

func (j *MonteCarlo1) curve(rates []types.RejectionRate, sampleSize int, backtest string, options ...roc.Option) (roc.Curve, error) {
	c := j.env.Config
	if c.StrictMonotonicity {
		options = append(options, roc.WithStrictMonotonicity())
	}

	ref := series(rates, sampleSize, c.MonteCarlo1.ReferenceModel, backtest)
	alt := series(rates, sampleSize, c.MonteCarlo1.AlternativeModel, backtest)
	curve, err := roc.Build(ref, alt, options...)
	if err != nil {
		return nil, errors.Wrapf(err, "%s at sample size %d", backtest, sampleSize)
	}
	return curve, nil
}

// ROCLines builds the anchored size-power curves of the figure tests.
func (j *MonteCarlo1) ROCLines(rates []types.RejectionRate, sampleSize int) ([]chart.ROCLine, error) {
	anchors := j.env.Config.Anchors
	tests := mapping.FigureTests()
	styles, err := j.env.Registry.Styles(tests)
	if err != nil {
		return nil, err
	}

	lines := make([]chart.ROCLine, 0, len(tests))
	for i, backtest := range tests {
		curve, err := j.curve(rates, sampleSize, backtest, roc.WithAnchors(anchors...))
		if err != nil {
			return nil, err
		}

		lines = append(lines, chart.ROCLine{
			Label:  backtest,
			X:      curve.XValues(),
			Y:      curve.YValues(),
			Style:  styles[i],
			MarkAt: curve.MarkerIndices(anchors),
		})
	}
	return lines, nil
}

func (j *MonteCarlo1) writeROCCharts(ctx context.Context, nullModel string, rates []types.RejectionRate) error {
	twoSided := types.FilterRejectionRates(rates, types.RejectionRateFilter{OneSided: false})
	width, height := j.env.figureSize(1, 1)

	for _, sampleSize := range j.env.Config.MonteCarlo1.SampleSizes {
		if err := ctx.Err(); err != nil {
			return err
		}

		subset := types.FilterRejectionRates(twoSided, types.RejectionRateFilter{SampleSize: sampleSize})
		if len(subset) == 0 {
			log.Warnf("%s has no rejection rates at sample size %d, skipping the size-power curve", nullModel, sampleSize)
			continue
		}

		lines, err := j.ROCLines(subset, sampleSize)
		if err != nil {
			return errors.Wrap(err, nullModel)
		}

		canvas, err := chart.ROCChart(chart.ROCOptions{Width: width, Height: height, Lines: lines})
		if err != nil {
			return err
		}

		p := join(j.dir(nullModel), "roc_"+strconv.Itoa(sampleSize)+".svg")
		if err := j.env.writeSVG(p, canvas); err != nil {
			return err
		}
	}
	return nil
}

// PartialAUC computes the partial area under the unanchored size-power curve of every
// figure test at every sample size. Rows are sample sizes, columns backtests.
func (j *MonteCarlo1) PartialAUC(rates []types.RejectionRate) (*report.Pivot, error) {
	window := j.env.Config.PAUC
	twoSided := types.FilterRejectionRates(rates, types.RejectionRateFilter{OneSided: false})

	pivot := report.NewPivot(mapping.FigureTests())
	for _, sampleSize := range sampleSizes(twoSided) {
		row := strconv.Itoa(sampleSize)
		pivot.AddRow(row)
		for _, backtest := range mapping.FigureTests() {
			curve, err := j.curve(twoSided, sampleSize, backtest)
			if err != nil {
				return nil, err
			}

			value, err := roc.PartialAUC(curve, window.Lower, window.Upper)
			if errors.Is(err, roc.ErrInsufficientPoints) {
				log.WithError(err).Warnf("no partial AUC for %s at sample size %d", backtest, sampleSize)
				value = math.NaN()
			} else if err != nil {
				return nil, err
			}

			if err := pivot.Set(row, backtest, value); err != nil {
				return nil, err
			}
		}
	}
	return pivot, nil
}

func (j *MonteCarlo1) writePartialAUC(nullModel string, rates []types.RejectionRate) error {
	pivot, err := j.PartialAUC(rates)
	if err != nil {
		return errors.Wrap(err, nullModel)
	}

	tbl, err := pivot.Table()
	if err != nil {
		return err
	}

	dir := j.dir(nullModel)
	if err := artifact.WriteTSV(j.env.Store, join(dir, "pauc.tsv"), append([]string{"sample_size"}, tbl.Columns...), tsvRows(tbl)); err != nil {
		return err
	}
	j.env.print(tbl, "Partial AUC, "+nullModel)

	styles, err := j.env.Registry.Styles(tbl.Columns)
	if err != nil {
		return err
	}

	points := make([]chart.PointSeries, len(tbl.Columns))
	for k, backtest := range tbl.Columns {
		values := make([]float64, len(tbl.Rows))
		for i := range tbl.Rows {
			values[i] = math.NaN()
			if cell := tbl.Cells[i][k]; cell.Valid {
				values[i] = cell.Value
			}
		}
		points[k] = chart.PointSeries{Label: backtest, Values: values, Style: styles[k]}
	}

	width, height := j.env.figureSize(1, 1)
	canvas, err := chart.PointPlot(chart.PointPlotOptions{
		Width:          width,
		Height:         height,
		XLabel:         "Sample Size",
		YLabel:         "Partial Area Under the Curve",
		Categories:     tbl.Rows,
		Series:         points,
		Reference:      -1,
		LegendPosition: chart.LegendBest,
	})
	if err != nil {
		return err
	}
	return j.env.writeSVG(join(dir, "pauc.svg"), canvas)
}

// tsvRows keeps full precision, missing cells stay empty.
func tsvRows(tbl *report.Table) [][]string {
	rows := make([][]string, len(tbl.Rows))
	for i, name := range tbl.Rows {
		row := []string{name}
		for _, cell := range tbl.Cells[i] {
			if !cell.Valid {
				row = append(row, "")
				continue
			}
			row = append(row, strconv.FormatFloat(cell.Value, 'f', -1, 64))
		}
		rows[i] = row
	}
	return rows
}

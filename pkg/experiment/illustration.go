package experiment

import (
	"context"
	"math"
	"sort"
	"strconv"

	"github.com/pkg/errors"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/BayerSe/expected-shortfall-backtesting/pkg/chart"
	"github.com/BayerSe/expected-shortfall-backtesting/pkg/datasource/csvsource"
	"github.com/BayerSe/expected-shortfall-backtesting/pkg/types"
)

const IllustrationID = "illustration"

const (
	pointReturn    = "r"
	pointVaR       = "q"
	pointShortfall = "e"
)

// returns of this ARCH parameter are scattered behind every illustration
const illustrationAlpha1 = 0.1

var illustrationLines = []struct {
	color  drawing.Color
	dashed bool
}{
	{color: drawing.ColorFromHex("466c9a")},
	{color: drawing.ColorFromHex("000000"), dashed: true},
	{color: drawing.ColorFromHex("b7d0ee")},
}

// Illustration draws simulated expected shortfall paths for three values of every swept
// parameter.
type Illustration struct {
	env *Environment
}

func NewIllustration(env *Environment) *Illustration {
	return &Illustration{env: env}
}

func (j *Illustration) ID() string {
	return IllustrationID
}

func (j *Illustration) load() ([]types.IllustrationPoint, error) {
	c := j.env.Config
	points, err := csvsource.ReadIllustrationPoints(c.InputPath(c.Illustration.Input))
	if err != nil {
		return nil, err
	}

	out := points[:0]
	for _, p := range points {
		if p.Variable > c.Illustration.MaxObservation {
			continue
		}
		p.Shape = math.Trunc(p.Shape)
		p.Tau *= 100
		out = append(out, p)
	}
	return out, nil
}

func (j *Illustration) Run(ctx context.Context) error {
	points, err := j.load()
	if err != nil {
		return err
	}

	dotsX, dotsY := Returns(points)
	for _, sw := range Sweeps {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := j.write(points, sw, pointShortfall, dotsX, dotsY); err != nil {
			return errors.Wrapf(err, "illustration of set %d", sw.Set)
		}
	}
	return nil
}

// Returns selects the returns simulated with the calibrated ARCH parameter, ordered by
// observation number.
func Returns(points []types.IllustrationPoint) ([]float64, []float64) {
	var selected []types.IllustrationPoint
	for _, p := range points {
		if p.Type == pointReturn && p.Set == 1 && types.FloatEqual(p.Alpha1, illustrationAlpha1) {
			selected = append(selected, p)
		}
	}
	sort.SliceStable(selected, func(i, k int) bool { return selected[i].Variable < selected[k].Variable })

	xs := make([]float64, len(selected))
	ys := make([]float64, len(selected))
	for i, p := range selected {
		xs[i] = float64(p.Variable)
		ys[i] = p.Value
	}
	return xs, ys
}

// IllustrationLines pivots the paths of one type and set by parameter value and keeps
// the values nearest to the targets of the sweep.
func IllustrationLines(points []types.IllustrationPoint, sw Sweep, pointType string) ([]chart.Line, error) {
	var subset []types.IllustrationPoint
	var params []float64
	variables := make(map[int]struct{})
	for _, p := range points {
		if p.Type != pointType || p.Set != sw.Set {
			continue
		}
		param := p.Get(sw.Parameter)
		if math.IsNaN(param) {
			continue
		}
		subset = append(subset, p)
		params = append(params, param)
		variables[p.Variable] = struct{}{}
	}

	columns := uniqueSorted(params)
	if len(columns) == 0 {
		return nil, errors.Errorf("no %q points", pointType)
	}

	index := make([]int, 0, len(variables))
	for v := range variables {
		index = append(index, v)
	}
	sort.Ints(index)
	rowOf := make(map[int]int, len(index))
	xs := make([]float64, len(index))
	for i, v := range index {
		rowOf[v] = i
		xs[i] = float64(v)
	}

	values := make([][]float64, len(columns))
	seen := make([][]bool, len(columns))
	for k := range columns {
		values[k] = nanSlice(len(index))
		seen[k] = make([]bool, len(index))
	}
	for _, p := range subset {
		k, i := indexOf(columns, p.Get(sw.Parameter)), rowOf[p.Variable]
		if seen[k][i] {
			return nil, errors.Errorf("duplicate point at observation %d for %s = %v", p.Variable, sw.Parameter, columns[k])
		}
		seen[k][i] = true
		values[k][i] = p.Value
	}

	lines := make([]chart.Line, len(sw.Targets))
	for n, target := range sw.Targets {
		k := nearest(columns, target)
		label := formatValue(columns[k], sw.Integer)
		if n == 1 {
			label += " (true)"
		}

		style := illustrationLines[n%len(illustrationLines)]
		lines[n] = chart.Line{
			Label:  label,
			X:      xs,
			Y:      values[k],
			Color:  style.color,
			Dashed: style.dashed,
		}
	}
	return lines, nil
}

func (j *Illustration) write(points []types.IllustrationPoint, sw Sweep, pointType string, dotsX, dotsY []float64) error {
	lines, err := IllustrationLines(points, sw, pointType)
	if err != nil {
		return err
	}

	ylabel := "Return and ES"
	if pointType == pointVaR {
		ylabel = "VaR"
	}

	opts := chart.LinePlotOptions{
		XLabel:        "Observation Number",
		YLabel:        ylabel,
		YRange:        chart.Range{Min: -4, Max: 4},
		Lines:         lines,
		DotsX:         dotsX,
		DotsY:         dotsY,
		LegendTitle:   sw.LegendTitle,
		LegendColumns: 4,
	}
	opts.Width, opts.Height = j.env.figureSize(1, 0.75)
	if sw.InfinityLast {
		opts.LegendRename = map[int]string{len(lines) - 1: infinity}
	}

	canvas, err := chart.LinePlot(opts)
	if err != nil {
		return err
	}
	return j.env.writeSVG(join("monte_carlo_2", "example_series", strconv.Itoa(sw.Set)+"_"+pointType+".svg"), canvas)
}

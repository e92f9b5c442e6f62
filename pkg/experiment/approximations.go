package experiment

import (
	"context"
	"math"
	"path/filepath"
	"strconv"

	"github.com/pkg/errors"

	"github.com/BayerSe/expected-shortfall-backtesting/pkg/chart"
	"github.com/BayerSe/expected-shortfall-backtesting/pkg/datasource/csvsource"
	"github.com/BayerSe/expected-shortfall-backtesting/pkg/density"
	"github.com/BayerSe/expected-shortfall-backtesting/pkg/types"
)

const ApproximationsID = "approximations"

const (
	modelStrict    = "Strict"
	modelAuxiliary = "Auxiliary"

	equationQuantile  = "Q"
	equationShortfall = "ES"

	parameterIntercept = "Intercept"
	parameterSlope     = "Slope"
)

// Approximations checks the asymptotic approximations of the ESR backtests: the c-factor
// series, the densities of the regression estimates and of the test statistics.
type Approximations struct {
	env *Environment
}

func NewApproximations(env *Environment) *Approximations {
	return &Approximations{env: env}
}

func (j *Approximations) ID() string {
	return ApproximationsID
}

type approximationInputs struct {
	estimates  []types.ParameterEstimate
	statistics []types.TestStatistic
	cFactor    *csvsource.Frame
}

func (j *Approximations) load() (*approximationInputs, error) {
	c := j.env.Config
	dir := c.InputPath(c.Approximations.Dir)

	estimates, err := csvsource.ReadParameterEstimates(filepath.Join(dir, "parameter_estimates.csv"))
	if err != nil {
		return nil, err
	}

	statistics, err := csvsource.ReadTestStatistics(filepath.Join(dir, "test_statistics.csv"))
	if err != nil {
		return nil, err
	}

	cFactor, err := csvsource.ReadFrame(filepath.Join(dir, "c-factor.csv"))
	if err != nil {
		return nil, err
	}

	return &approximationInputs{estimates: estimates, statistics: statistics, cFactor: cFactor}, nil
}

func (j *Approximations) Run(ctx context.Context) error {
	in, err := j.load()
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	rows, err := j.Panels(in)
	if err != nil {
		return err
	}

	c := j.env.Config.Approximations
	pdf, err := chart.Grid(rows, chart.GridOptions{Width: c.Width, Height: c.Height})
	if err != nil {
		return err
	}
	return j.env.Store.WriteFile(join("monte_carlo_check_approximations", "check_approximations.pdf"), pdf)
}

// Panels lays out one column per phi: the c-factor series, the densities of β and γ and
// the density of the test statistic.
func (j *Approximations) Panels(in *approximationInputs) ([][]*chart.Panel, error) {
	c := j.env.Config.Approximations
	rows := make([][]*chart.Panel, 4)

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, phi := range c.Phis {
		values, err := in.cFactor.Floats(phi, c.CFactorRows)
		if err != nil {
			return nil, err
		}

		xs := make([]float64, len(values))
		for i, v := range values {
			xs[i] = float64(i)
			if !math.IsNaN(v) {
				lo, hi = math.Min(lo, v), math.Max(hi, v)
			}
		}

		p := chart.NewPanel("c-factor, φ = " + phi)
		p.Lines = []chart.PanelLine{{X: xs, Y: values, Color: chart.PanelBlack}}
		rows[0] = append(rows[0], p)
	}
	for _, p := range rows[0] {
		p.YMin, p.YMax = lo*0.98, hi*1.02
	}

	statHigh := 0.0
	for _, phiText := range c.Phis {
		phi, err := strconv.ParseFloat(phiText, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "phi %q", phiText)
		}

		for k, equation := range []string{equationQuantile, equationShortfall} {
			title := "Density of β, φ = " + phiText
			if equation == equationShortfall {
				title = "Density of γ, φ = " + phiText
			}

			p := chart.NewPanel(title)
			for _, model := range []string{modelStrict, modelAuxiliary} {
				for _, parameter := range []string{parameterIntercept, parameterSlope} {
					line, err := densityLine(estimateValues(in.estimates, equation, model, parameter, phi), model)
					if err != nil {
						return nil, errors.Wrapf(err, "%s %s %s at phi %s", equation, model, parameter, phiText)
					}
					p.Lines = append(p.Lines, line)
				}
			}

			p.VLines = []float64{0, 1}
			p.Texts = []chart.PanelText{
				{X: -0.04, Y: 3, Text: parameterIntercept, Right: true},
				{X: 1.04, Y: 3, Text: parameterSlope},
			}
			p.XMin, p.XMax = -0.9, 1.9
			p.YMin, p.YMax = 0, 4
			rows[1+k] = append(rows[1+k], p)
		}

		p := chart.NewPanel("Density of T, φ = " + phiText)
		for _, model := range []string{modelStrict, modelAuxiliary} {
			line, err := densityLine(statisticValues(in.statistics, model, phi), model)
			if err != nil {
				return nil, errors.Wrapf(err, "test statistic %s at phi %s", model, phiText)
			}
			for _, y := range line.Y {
				statHigh = math.Max(statHigh, y)
			}
			p.Lines = append(p.Lines, line)
		}
		rows[3] = append(rows[3], p)
	}

	// the densities of T share their y axis
	for _, p := range rows[3] {
		p.YMin, p.YMax = 0, statHigh*1.05
	}
	return rows, nil
}

func densityLine(sample []float64, model string) (chart.PanelLine, error) {
	est, err := density.Gaussian(sample, density.DefaultGridSize, density.DefaultCut)
	if err != nil {
		return chart.PanelLine{}, err
	}

	line := chart.PanelLine{X: est.X, Y: est.Density, Color: chart.PanelBlack}
	if model == modelAuxiliary {
		line.Color = chart.PanelGreen
		line.Dashed = true
	}
	return line, nil
}

func estimateValues(estimates []types.ParameterEstimate, equation, model, parameter string, phi float64) []float64 {
	var out []float64
	for _, e := range estimates {
		if e.Equation == equation && e.Model == model && e.Parameter == parameter && types.FloatEqual(e.Phi, phi) {
			out = append(out, e.Value)
		}
	}
	return out
}

func statisticValues(statistics []types.TestStatistic, model string, phi float64) []float64 {
	var out []float64
	for _, s := range statistics {
		if s.Model == model && types.FloatEqual(s.Phi, phi) {
			out = append(out, s.Value)
		}
	}
	return out
}

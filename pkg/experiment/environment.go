// Package experiment holds the jobs that turn the Monte Carlo results into figures and
// LaTeX tables.
package experiment

import (
	"context"
	"io"
	"path"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/BayerSe/expected-shortfall-backtesting/pkg/artifact"
	"github.com/BayerSe/expected-shortfall-backtesting/pkg/chart"
	"github.com/BayerSe/expected-shortfall-backtesting/pkg/config"
	"github.com/BayerSe/expected-shortfall-backtesting/pkg/mapping"
	"github.com/BayerSe/expected-shortfall-backtesting/pkg/report"
)

var log = logrus.WithField("component", "experiment")

// Environment is shared read-only by all jobs.
type Environment struct {
	Config   *config.Config
	Registry *mapping.Registry
	Store    artifact.Store

	// Console receives the summary tables; nil disables them.
	Console io.Writer
}

func NewEnvironment(c *config.Config, store artifact.Store) *Environment {
	return &Environment{
		Config:   c,
		Registry: mapping.Default,
		Store:    store,
	}
}

// Job reads one input data set and writes its artifacts. Jobs write disjoint paths.
type Job interface {
	ID() string
	Run(ctx context.Context) error
}

// Jobs returns every job in a fixed order.
func Jobs(env *Environment) []Job {
	return []Job{
		NewMonteCarlo1(env),
		NewMonteCarlo2(env),
		NewIllustration(env),
		NewApproximations(env),
	}
}

// Lookup finds a job by its id.
func Lookup(env *Environment, id string) (Job, error) {
	for _, job := range Jobs(env) {
		if job.ID() == id {
			return job, nil
		}
	}
	return nil, errors.Errorf("unknown job %q", id)
}

func (env *Environment) writeSVG(p string, canvas *chart.Canvas) error {
	svg, err := canvas.SVG()
	if err != nil {
		return errors.Wrapf(err, "can not render %s", p)
	}
	return env.Store.WriteFile(p, svg)
}

func (env *Environment) writeLaTeX(p string, tbl *report.Table, opts report.LaTeXOptions) error {
	tbl.Placeholder = env.Config.Placeholder
	return env.Store.WriteFile(p, []byte(tbl.LaTeX(opts)))
}

func (env *Environment) print(tbl *report.Table, title string) {
	if env.Console == nil {
		return
	}
	tbl.Print(env.Console, title)
}

func (env *Environment) figureSize(widthScale, heightScale float64) (int, int) {
	return int(float64(env.Config.Figure.Width) * widthScale), int(float64(env.Config.Figure.Height) * heightScale)
}

func join(elem ...string) string {
	return path.Join(elem...)
}

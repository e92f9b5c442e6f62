// Package density estimates densities of simulated estimates and test statistics.
package density

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

var ErrDegenerateSample = errors.New("degenerate sample")

const (
	DefaultGridSize = 100
	DefaultCut      = 3
)

// Estimate is a density evaluated on an even grid.
type Estimate struct {
	X         []float64
	Density   []float64
	Bandwidth float64
}

// ScottBandwidth is Scott's rule of thumb, n^(-1/5) times the sample standard deviation.
func ScottBandwidth(sample []float64) float64 {
	n := float64(len(sample))
	return math.Pow(n, -0.2) * stat.StdDev(sample, nil)
}

// Gaussian estimates the density of sample with a gaussian kernel and Scott's bandwidth.
// The grid spans the sample extended by cut bandwidths on both sides.
func Gaussian(sample []float64, gridSize int, cut float64) (*Estimate, error) {
	var clean []float64
	for _, v := range sample {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			clean = append(clean, v)
		}
	}

	if len(clean) < 2 {
		return nil, errors.Wrapf(ErrDegenerateSample, "%d finite observation(s)", len(clean))
	}

	bw := ScottBandwidth(clean)
	if bw <= 0 || math.IsNaN(bw) {
		return nil, errors.Wrap(ErrDegenerateSample, "zero variance")
	}

	if gridSize < 2 {
		gridSize = DefaultGridSize
	}

	lo := floats.Min(clean) - cut*bw
	hi := floats.Max(clean) + cut*bw
	grid := floats.Span(make([]float64, gridSize), lo, hi)

	kernel := distuv.Normal{Mu: 0, Sigma: bw}
	density := make([]float64, gridSize)
	for i, x := range grid {
		var sum float64
		for _, v := range clean {
			sum += kernel.Prob(x - v)
		}
		density[i] = sum / float64(len(clean))
	}

	return &Estimate{X: grid, Density: density, Bandwidth: bw}, nil
}

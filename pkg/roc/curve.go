package roc

import (
	"math"
	"sort"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("component", "roc")

var (
	ErrMissingData           = errors.New("missing data")
	ErrInvalidRate           = errors.New("invalid rejection rate")
	ErrDuplicateLevel        = errors.New("duplicate significance level")
	ErrNonMonotonicReference = errors.New("reference rejection rate is not monotonic in the significance level")
)

// DefaultAnchors are inserted into every plotted curve so the markers of all curves sit at
// the same sizes.
var DefaultAnchors = []float64{0.2, 0.4, 0.6, 0.8}

// Observation is the rejection rate of a test at a nominal significance level.
type Observation struct {
	SigLev float64
	Rate   float64
}

type Series []Observation

func (s Series) sorted() Series {
	out := make(Series, len(s))
	copy(out, s)
	sort.SliceStable(out, func(i, j int) bool { return out[i].SigLev < out[j].SigLev })
	return out
}

// observed drops the levels without a rejection rate.
func (s Series) observed() Series {
	out := make(Series, 0, len(s))
	for _, o := range s {
		if math.IsNaN(o.Rate) {
			continue
		}
		out = append(out, o)
	}
	return out
}

func (s Series) validate(name string) error {
	if len(s) == 0 {
		return errors.Wrapf(ErrMissingData, "empty %s series", name)
	}

	for i, o := range s {
		if math.IsNaN(o.SigLev) || math.IsInf(o.SigLev, 0) || math.IsInf(o.Rate, 0) {
			return errors.Wrapf(ErrInvalidRate, "%s series at %v: %v", name, o.SigLev, o.Rate)
		}
		if i > 0 && s[i-1].SigLev == o.SigLev {
			return errors.Wrapf(ErrDuplicateLevel, "%s series at %v", name, o.SigLev)
		}
	}
	return nil
}

// monotonic reports whether the rates of a series sorted by level never decrease.
func (s Series) monotonic() bool {
	for i := 1; i < len(s); i++ {
		if s[i].Rate < s[i-1].Rate {
			return false
		}
	}
	return true
}

// Point is a point of a size-power curve: X is the empirical size, Y the empirical power.
type Point struct {
	X float64
	Y float64
}

// Curve is a size-power curve with strictly increasing X.
type Curve []Point

func (c Curve) XValues() []float64 {
	xs := make([]float64, len(c))
	for i, p := range c {
		xs[i] = p.X
	}
	return xs
}

func (c Curve) YValues() []float64 {
	ys := make([]float64, len(c))
	for i, p := range c {
		ys[i] = p.Y
	}
	return ys
}

// At interpolates the curve linearly at x. Below the first point the first value is
// used, above the last point the last value.
func (c Curve) At(x float64) float64 {
	if len(c) == 0 {
		return math.NaN()
	}
	return interpolate(c.XValues(), c.YValues(), x)
}

// MarkerIndices returns for every x the index of the nearest curve point.
func (c Curve) MarkerIndices(xs []float64) []int {
	if len(c) == 0 {
		return nil
	}

	indices := make([]int, len(xs))
	for i, x := range xs {
		best := 0
		for j, p := range c {
			if math.Abs(p.X-x) < math.Abs(c[best].X-x) {
				best = j
			}
		}
		indices[i] = best
	}
	return indices
}

type buildOptions struct {
	anchors []float64
	strict  bool
}

type Option func(o *buildOptions)

// WithAnchors inserts the given sizes into the curve.
func WithAnchors(xs ...float64) Option {
	return func(o *buildOptions) {
		o.anchors = append(o.anchors, xs...)
	}
}

// WithStrictMonotonicity rejects reference series whose rejection rate decreases with
// the significance level.
func WithStrictMonotonicity() Option {
	return func(o *buildOptions) {
		o.strict = true
	}
}

// Build pairs the reference (null) series with the alternative series into a size-power
// curve. For every significance level of the reference series, the observed reference
// rejection rate becomes the x coordinate (the empirical size) and the alternative
// rejection rate at the same level the y coordinate (the empirical power).
//
// The alternative series is evaluated at the reference levels by linear interpolation in
// the significance level; levels before its first observation are back-filled with its
// first rate and levels after its last observation carry its last rate. Levels with a
// missing (NaN) rate are dropped first, so gaps in the alternative series are filled the
// same way.
func Build(reference, alternative Series, options ...Option) (Curve, error) {
	var o buildOptions
	for _, option := range options {
		option(&o)
	}

	ref := reference.observed().sorted()
	alt := alternative.observed().sorted()
	if err := ref.validate("reference"); err != nil {
		return nil, err
	}
	if err := alt.validate("alternative"); err != nil {
		return nil, err
	}

	if !ref.monotonic() {
		if o.strict {
			return nil, ErrNonMonotonicReference
		}
		log.Warnf("reference rejection rate decreases with the significance level, the curve is built from the observed sizes")
	}

	altLevels := make([]float64, len(alt))
	altRates := make([]float64, len(alt))
	for i, obs := range alt {
		altLevels[i] = obs.SigLev
		altRates[i] = obs.Rate
	}

	points := make(Curve, 0, len(ref)+len(o.anchors))
	for _, obs := range ref {
		points = append(points, Point{
			X: obs.Rate,
			Y: interpolate(altLevels, altRates, obs.SigLev),
		})
	}

	curve := normalize(points)
	if len(o.anchors) > 0 {
		curve = Anchored(curve, o.anchors)
	}
	return curve, nil
}

// Anchored returns a copy of the curve with the anchor sizes inserted, their power
// interpolated linearly between the neighboring points.
func Anchored(c Curve, anchors []float64) Curve {
	out := make(Curve, len(c), len(c)+len(anchors))
	copy(out, c)
	if len(c) == 0 {
		return out
	}

	xs := c.XValues()
	for _, a := range anchors {
		i := sort.SearchFloat64s(xs, a)
		if i < len(xs) && xs[i] == a {
			continue
		}
		out = append(out, Point{X: a, Y: c.At(a)})
	}
	return normalize(out)
}

// normalize sorts the points by size and keeps the highest power among equal sizes.
func normalize(points Curve) Curve {
	sort.SliceStable(points, func(i, j int) bool {
		if points[i].X == points[j].X {
			return points[i].Y < points[j].Y
		}
		return points[i].X < points[j].X
	})

	out := points[:0]
	for _, p := range points {
		if n := len(out); n > 0 && out[n-1].X == p.X {
			out[n-1] = p
			continue
		}
		out = append(out, p)
	}
	return out
}

// interpolate evaluates the piecewise linear function through (xs, ys) at x, holding the
// boundary values constant outside of [xs[0], xs[n-1]]. xs must be strictly increasing.
func interpolate(xs, ys []float64, x float64) float64 {
	n := len(xs)
	if x <= xs[0] {
		return ys[0]
	}
	if x >= xs[n-1] {
		return ys[n-1]
	}

	i := sort.SearchFloat64s(xs, x)
	if xs[i] == x {
		return ys[i]
	}

	x0, x1 := xs[i-1], xs[i]
	y0, y1 := ys[i-1], ys[i]
	return y0 + (y1-y0)*(x-x0)/(x1-x0)
}

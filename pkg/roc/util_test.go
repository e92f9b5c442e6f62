package roc

import "math"

func nan() float64 { return math.NaN() }

func isNaN(v float64) bool { return math.IsNaN(v) }

func roundCurve(c Curve) Curve {
	out := make(Curve, len(c))
	for i, p := range c {
		out[i] = Point{X: math.Round(p.X*1e9) / 1e9, Y: math.Round(p.Y*1e9) / 1e9}
	}
	return out
}

package roc

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/integrate"
)

var (
	ErrInvalidWindow      = errors.New("invalid integration window")
	ErrInsufficientPoints = errors.New("insufficient points in integration window")
)

// PartialAUC integrates the curve over the sizes in [lower, upper] with the trapezoidal
// rule and divides by the window width, which yields the average power over the window.
func PartialAUC(c Curve, lower, upper float64) (float64, error) {
	if !(upper > lower) {
		return 0, errors.Wrapf(ErrInvalidWindow, "[%v, %v]", lower, upper)
	}

	var xs, ys []float64
	for _, p := range c {
		if lower <= p.X && p.X <= upper {
			xs = append(xs, p.X)
			ys = append(ys, p.Y)
		}
	}

	if len(xs) < 2 {
		return 0, errors.Wrapf(ErrInsufficientPoints, "%d point(s) in [%v, %v]", len(xs), lower, upper)
	}

	return integrate.Trapezoidal(xs, ys) / (upper - lower), nil
}

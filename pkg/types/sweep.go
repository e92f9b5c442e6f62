package types

import "math"

const floatTolerance = 1e-9

// FloatEqual compares parameter values read from csv files.
func FloatEqual(a, b float64) bool {
	return math.Abs(a-b) <= floatTolerance*math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}

// SweepParameter is a data generating process parameter varied in the second study.
type SweepParameter string

const (
	SweepARCH        SweepParameter = "alpha1"
	SweepGARCH       SweepParameter = "beta1"
	SweepUncVar      SweepParameter = "unc_var"
	SweepPersistence SweepParameter = "persistence"
	SweepShape       SweepParameter = "shape"
	SweepProbability SweepParameter = "tau"
)

// SweepValues holds the parameters of one data generating process.
type SweepValues struct {
	Alpha1      float64 `json:"alpha1"`
	Beta1       float64 `json:"beta1"`
	UncVar      float64 `json:"uncVar"`
	Persistence float64 `json:"persistence"`
	Shape       float64 `json:"shape"`
	Tau         float64 `json:"tau"`
}

func (v SweepValues) Get(p SweepParameter) float64 {
	switch p {
	case SweepARCH:
		return v.Alpha1
	case SweepGARCH:
		return v.Beta1
	case SweepUncVar:
		return v.UncVar
	case SweepPersistence:
		return v.Persistence
	case SweepShape:
		return v.Shape
	case SweepProbability:
		return v.Tau
	}
	return math.NaN()
}

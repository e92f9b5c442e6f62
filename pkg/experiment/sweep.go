package experiment

import "github.com/BayerSe/expected-shortfall-backtesting/pkg/types"

// Sweep describes one set of the second study: the parameter that is varied and how
// its figures are labeled.
type Sweep struct {
	Set       int
	Parameter types.SweepParameter

	XLabel      string
	LegendTitle string

	// TrueIndex is the category of the calibrated parameter value.
	TrueIndex int

	// Targets are the parameter values of the illustration, the calibrated one second.
	Targets []float64

	Integer            bool
	InvertX            bool
	InfinityLast       bool
	HideAlternateTicks bool
}

var Sweeps = []Sweep{
	{
		Set:                1,
		Parameter:          types.SweepARCH,
		XLabel:             "ARCH parameter",
		LegendTitle:        "ARCH parameter",
		TrueIndex:          7,
		Targets:            []float64{0.2, 0.1, 0.03},
		HideAlternateTicks: true,
	},
	{
		Set:         2,
		Parameter:   types.SweepUncVar,
		XLabel:      "Unconditional variance",
		LegendTitle: "Unconditional Variance",
		TrueIndex:   4,
		Targets:     []float64{0.001, 0.2, 0.5},
		InvertX:     true,
	},
	{
		Set:                3,
		Parameter:          types.SweepPersistence,
		XLabel:             "Persistence",
		LegendTitle:        "Persistence",
		TrueIndex:          5,
		Targets:            []float64{0.9, 0.95, 0.9999},
		HideAlternateTicks: true,
	},
	{
		Set:          4,
		Parameter:    types.SweepShape,
		XLabel:       "Degrees of freedom of the Student-t",
		LegendTitle:  "Degrees of freedom of the Student-t",
		TrueIndex:    2,
		Targets:      []float64{3, 5, 1000000},
		Integer:      true,
		InfinityLast: true,
	},
	{
		Set:         5,
		Parameter:   types.SweepProbability,
		XLabel:      "Probability Level (in %)",
		LegendTitle: "Probability Level (in %)",
		TrueIndex:   4,
		Targets:     []float64{0.5, 2.5, 5},
	},
}

const infinity = "∞"

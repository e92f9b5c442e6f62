package types

// PowerRecord is one rejection rate of the second Monte Carlo study, where Set selects
// the parameter that is varied and ModelIndex the grid point.
type PowerRecord struct {
	SweepValues

	Set        int     `json:"set"`
	ModelIndex int     `json:"modelIndex"`
	OneSided   bool    `json:"oneSided"`
	Backtest   string  `json:"backtest"`
	Value      float64 `json:"value"`
}

// IllustrationPoint is one observation of a simulated example path. Type is "r" for
// returns, "q" for the value at risk and "e" for the expected shortfall.
type IllustrationPoint struct {
	SweepValues

	Type     string  `json:"type"`
	Set      int     `json:"set"`
	Variable int     `json:"variable"`
	Value    float64 `json:"value"`
}

// ParameterEstimate is an estimate of the quantile (Q) or expected shortfall (ES) equation
// of the strict or auxiliary ESR regression.
type ParameterEstimate struct {
	Equation  string  `json:"equation"`
	Model     string  `json:"model"`
	Parameter string  `json:"parameter"`
	Phi       float64 `json:"phi"`
	Value     float64 `json:"value"`
}

type TestStatistic struct {
	Model string  `json:"model"`
	Phi   float64 `json:"phi"`
	Value float64 `json:"value"`
}

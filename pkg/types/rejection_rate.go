package types

// RejectionRate is one cell of the first Monte Carlo study: the fraction of trials in
// which Backtest rejected at significance level SigLev when the forecasts of Model were
// evaluated on data of NullModel with SampleSize observations.
type RejectionRate struct {
	NullModel  string  `json:"nullModel"`
	SampleSize int     `json:"sampleSize"`
	Model      string  `json:"model"`
	Backtest   string  `json:"backtest"`
	OneSided   bool    `json:"oneSided"`
	SigLev     float64 `json:"sigLev"`
	RejRate    float64 `json:"rejRate"`
}

// RejectionRateFilter selects rejection rates. Zero fields match everything except
// OneSided, which always has to match.
type RejectionRateFilter struct {
	NullModel  string
	SampleSize int
	Model      string
	Backtest   string
	OneSided   bool
	SigLev     float64
}

func (f RejectionRateFilter) Match(r RejectionRate) bool {
	if f.NullModel != "" && f.NullModel != r.NullModel {
		return false
	}
	if f.SampleSize != 0 && f.SampleSize != r.SampleSize {
		return false
	}
	if f.Model != "" && f.Model != r.Model {
		return false
	}
	if f.Backtest != "" && f.Backtest != r.Backtest {
		return false
	}
	if f.SigLev != 0 && !FloatEqual(f.SigLev, r.SigLev) {
		return false
	}
	return f.OneSided == r.OneSided
}

func FilterRejectionRates(rates []RejectionRate, f RejectionRateFilter) []RejectionRate {
	var out []RejectionRate
	for _, r := range rates {
		if f.Match(r) {
			out = append(out, r)
		}
	}
	return out
}

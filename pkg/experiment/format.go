package experiment

import (
	"math"
	"sort"
	"strconv"

	"github.com/BayerSe/expected-shortfall-backtesting/pkg/types"
)

// formatValue prints parameter values the way they appear in the input files: the
// shortest representation, with a trailing ".0" for integral floats.
func formatValue(v float64, integer bool) string {
	if integer {
		return strconv.FormatInt(int64(v), 10)
	}

	s := strconv.FormatFloat(v, 'f', -1, 64)
	if v == math.Trunc(v) && !math.IsInf(v, 0) {
		s += ".0"
	}
	return s
}

// uniqueSorted returns the distinct values in ascending order.
func uniqueSorted(values []float64) []float64 {
	var out []float64
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	for _, v := range sorted {
		if math.IsNaN(v) {
			continue
		}
		if n := len(out); n > 0 && types.FloatEqual(out[n-1], v) {
			continue
		}
		out = append(out, v)
	}
	return out
}

// nearest returns the index of the value closest to target, the first one on ties.
func nearest(values []float64, target float64) int {
	best := -1
	for i, v := range values {
		if best < 0 || math.Abs(v-target) < math.Abs(values[best]-target) {
			best = i
		}
	}
	return best
}

func indexOf(values []float64, v float64) int {
	for i, x := range values {
		if types.FloatEqual(x, v) {
			return i
		}
	}
	return -1
}

func nanSlice(n int) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = math.NaN()
	}
	return s
}

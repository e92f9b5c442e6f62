package experiment

import (
	"bytes"
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BayerSe/expected-shortfall-backtesting/pkg/chart"
	"github.com/BayerSe/expected-shortfall-backtesting/pkg/density"
	"github.com/BayerSe/expected-shortfall-backtesting/pkg/types"
)

func TestApproximations_Panels(t *testing.T) {
	env, _ := newTestEnvironment(t)
	job := NewApproximations(env)

	in, err := job.load()
	require.NoError(t, err)

	rows, err := job.Panels(in)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	for _, row := range rows {
		require.Len(t, row, 3)
	}

	assert.Equal(t, "c-factor, φ = 0.1", rows[0][1].Title)
	assert.Equal(t, "Density of β, φ = 0", rows[1][0].Title)
	assert.Equal(t, "Density of γ, φ = 0.5", rows[2][2].Title)
	assert.Equal(t, "Density of T, φ = 0.1", rows[3][1].Title)

	// the c-factor panels share the range of all three series
	for _, p := range rows[0] {
		assert.InDelta(t, 1.0*0.98, p.YMin, 1e-9)
		assert.InDelta(t, 1.2*1.02, p.YMax, 1e-9)
		require.Len(t, p.Lines, 1)
		assert.Len(t, p.Lines[0].Y, 10)
	}

	beta := rows[1][0]
	require.Len(t, beta.Lines, 4)
	assert.Equal(t, chart.PanelBlack, beta.Lines[0].Color)
	assert.False(t, beta.Lines[0].Dashed)
	assert.Equal(t, chart.PanelGreen, beta.Lines[2].Color)
	assert.True(t, beta.Lines[2].Dashed)
	assert.Equal(t, []float64{0, 1}, beta.VLines)
	assert.Equal(t, 4.0, beta.YMax)

	high := rows[3][0].YMax
	assert.Greater(t, high, 0.0)
	for _, p := range rows[3] {
		assert.Equal(t, high, p.YMax)
		assert.Len(t, p.Lines, 2)
	}
}

func TestApproximations_Run(t *testing.T) {
	env, written := newTestEnvironment(t)
	require.NoError(t, NewApproximations(env).Run(context.Background()))

	pdf := written.get("monte_carlo_check_approximations/check_approximations.pdf")
	assert.True(t, bytes.HasPrefix([]byte(pdf), []byte("%PDF")))
}

func TestApproximations_MissingPhi(t *testing.T) {
	env, _ := newTestEnvironment(t)
	env.Config.Approximations.Phis = []string{"0.3"}

	err := NewApproximations(env).Run(context.Background())
	require.Error(t, err)
}

func TestDensityLine(t *testing.T) {
	_, err := densityLine([]float64{1}, modelStrict)
	assert.True(t, errors.Is(err, density.ErrDegenerateSample))

	line, err := densityLine([]float64{0.9, 1, 1.1, 1.3}, modelAuxiliary)
	require.NoError(t, err)
	assert.True(t, line.Dashed)
	assert.Len(t, line.X, density.DefaultGridSize)
}

func TestEstimateValues(t *testing.T) {
	estimates := []types.ParameterEstimate{
		{Equation: "Q", Model: "Strict", Parameter: "Slope", Phi: 0.1, Value: 1},
		{Equation: "Q", Model: "Strict", Parameter: "Slope", Phi: 0.5, Value: 2},
		{Equation: "ES", Model: "Strict", Parameter: "Slope", Phi: 0.1, Value: 3},
		{Equation: "Q", Model: "Strict", Parameter: "Slope", Phi: 0.1, Value: 4},
	}
	assert.Equal(t, []float64{1, 4}, estimateValues(estimates, "Q", "Strict", "Slope", 0.1))
}

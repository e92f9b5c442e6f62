package roc

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func identity(lower, upper float64, n int) Curve {
	c := make(Curve, n+1)
	for i := 0; i <= n; i++ {
		x := lower + (upper-lower)*float64(i)/float64(n)
		if i == n {
			x = upper
		}
		c[i] = Point{X: x, Y: x}
	}
	return c
}

func TestPartialAUC_Identity(t *testing.T) {
	lower, upper := 0.01, 0.1
	c := append(Curve{{X: 0, Y: 0}}, identity(lower, upper, 9)...)
	c = append(c, Point{X: 1, Y: 1})

	pauc, err := PartialAUC(c, lower, upper)
	require.NoError(t, err)
	assert.InDelta(t, 0.5*(upper+lower), pauc, 1e-12)
}

func TestPartialAUC_WidthInvariantForLinearCurves(t *testing.T) {
	var values []float64
	for _, halfWidth := range []float64{0.01, 0.02, 0.04} {
		lower, upper := 0.05-halfWidth, 0.05+halfWidth
		curve := append(identity(lower, upper, 10), Point{X: 1, Y: 1})
		pauc, err := PartialAUC(curve, lower, upper)
		require.NoError(t, err)
		values = append(values, pauc)
	}

	for _, v := range values {
		assert.InDelta(t, 0.05, v, 1e-9)
	}

	flat := Curve{{X: 0, Y: 0.7}, {X: 0.5, Y: 0.7}, {X: 1, Y: 0.7}}
	for _, upper := range []float64{0.5, 1} {
		pauc, err := PartialAUC(flat, 0, upper)
		require.NoError(t, err)
		assert.InDelta(t, 0.7, pauc, 1e-12)
	}
}

func TestPartialAUC_Failures(t *testing.T) {
	c := Curve{{X: 0.005, Y: 0.1}, {X: 0.05, Y: 0.5}, {X: 0.2, Y: 0.8}}

	_, err := PartialAUC(c, 0.01, 0.1)
	assert.True(t, errors.Is(err, ErrInsufficientPoints))

	_, err = PartialAUC(nil, 0.01, 0.1)
	assert.True(t, errors.Is(err, ErrInsufficientPoints))

	_, err = PartialAUC(c, 0.1, 0.1)
	assert.True(t, errors.Is(err, ErrInvalidWindow))

	_, err = PartialAUC(c, 0.2, 0.1)
	assert.True(t, errors.Is(err, ErrInvalidWindow))
}

func TestPartialAUC_IsNotAreaOfWholeWindow(t *testing.T) {
	// only the part of the window covered by points is integrated
	c := Curve{{X: 0.02, Y: 1}, {X: 0.06, Y: 1}}
	pauc, err := PartialAUC(c, 0.01, 0.1)
	require.NoError(t, err)
	assert.InDelta(t, 0.04/0.09, pauc, 1e-12)
}

package roc

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func series(pairs ...float64) Series {
	var s Series
	for i := 0; i+1 < len(pairs); i += 2 {
		s = append(s, Observation{SigLev: pairs[i], Rate: pairs[i+1]})
	}
	return s
}

func TestBuild_InvertsReferenceIntoSize(t *testing.T) {
	ref := series(0.01, 0.02, 0.05, 0.06, 0.10, 0.12)
	alt := series(0.01, 0.30, 0.05, 0.50, 0.10, 0.70)

	curve, err := Build(ref, alt)
	require.NoError(t, err)
	assert.Equal(t, Curve{
		{X: 0.02, Y: 0.30},
		{X: 0.06, Y: 0.50},
		{X: 0.12, Y: 0.70},
	}, curve)
}

func TestBuild_InputOrderDoesNotMatter(t *testing.T) {
	ref := series(0.10, 0.12, 0.01, 0.02, 0.05, 0.06)
	alt := series(0.05, 0.50, 0.10, 0.70, 0.01, 0.30)

	curve, err := Build(ref, alt)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.02, 0.06, 0.12}, curve.XValues())
	assert.Equal(t, []float64{0.30, 0.50, 0.70}, curve.YValues())
}

func TestBuild_InterpolatesAndBackFills(t *testing.T) {
	// the alternative is observed at different levels than the reference
	ref := series(0.01, 0.01, 0.03, 0.04, 0.07, 0.08, 0.20, 0.25)
	alt := series(0.02, 0.20, 0.04, 0.40, 0.10, 0.60)

	curve, err := Build(ref, alt)
	require.NoError(t, err)
	require.Len(t, curve, 4)

	// below the first alternative level: back-filled
	assert.InDelta(t, 0.20, curve[0].Y, 1e-12)
	// between 0.02 and 0.04
	assert.InDelta(t, 0.30, curve[1].Y, 1e-12)
	// between 0.04 and 0.10
	assert.InDelta(t, 0.50, curve[2].Y, 1e-12)
	// above the last alternative level: last value carried
	assert.InDelta(t, 0.60, curve[3].Y, 1e-12)

	assert.Equal(t, []float64{0.01, 0.04, 0.08, 0.25}, curve.XValues())
}

func TestBuild_DomainIsReferenceUnionAnchors(t *testing.T) {
	ref := series(0.01, 0.015, 0.05, 0.07, 0.1, 0.11, 0.5, 0.45, 0.9, 0.93)
	alt := series(0.02, 0.2, 0.3, 0.6, 0.95, 0.99)

	curve, err := Build(ref, alt, WithAnchors(DefaultAnchors...))
	require.NoError(t, err)
	assert.Equal(t, []float64{0.015, 0.07, 0.11, 0.2, 0.4, 0.45, 0.6, 0.8, 0.93}, curve.XValues())

	xs := curve.XValues()
	for i := 1; i < len(xs); i++ {
		assert.Greater(t, xs[i], xs[i-1])
	}

	for i, y := range curve.YValues() {
		assert.GreaterOrEqual(t, y, 0.2, "point %d", i)
		assert.LessOrEqual(t, y, 0.99, "point %d", i)
	}
}

func TestBuild_EqualSizesKeepHighestPower(t *testing.T) {
	ref := series(0.001, 0.0, 0.005, 0.0, 0.01, 0.01)
	alt := series(0.001, 0.1, 0.005, 0.2, 0.01, 0.3)

	curve, err := Build(ref, alt)
	require.NoError(t, err)
	assert.Equal(t, Curve{{X: 0, Y: 0.2}, {X: 0.01, Y: 0.3}}, curve)
}

func TestBuild_Failures(t *testing.T) {
	tests := []struct {
		name    string
		ref     Series
		alt     Series
		options []Option
		err     error
	}{
		{name: "empty reference", ref: nil, alt: series(0.05, 0.5), err: ErrMissingData},
		{name: "empty alternative", ref: series(0.05, 0.05), alt: Series{}, err: ErrMissingData},
		{name: "duplicate level", ref: series(0.05, 0.05, 0.05, 0.06), alt: series(0.05, 0.5), err: ErrDuplicateLevel},
		{name: "only missing rates", ref: series(0.05, 0.05), alt: Series{{SigLev: 0.05, Rate: nan()}}, err: ErrMissingData},
		{name: "nan level", ref: series(0.05, 0.05), alt: Series{{SigLev: nan(), Rate: 0.5}}, err: ErrInvalidRate},
		{name: "infinite rate", ref: series(0.05, 0.05), alt: series(0.05, math.Inf(1)), err: ErrInvalidRate},
		{
			name:    "non monotonic strict",
			ref:     series(0.01, 0.05, 0.05, 0.02),
			alt:     series(0.01, 0.5, 0.05, 0.6),
			options: []Option{WithStrictMonotonicity()},
			err:     ErrNonMonotonicReference,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(tt.ref, tt.alt, tt.options...)
			assert.True(t, errors.Is(err, tt.err), "got %v", err)
		})
	}
}

func TestBuild_MissingRatesAreFilled(t *testing.T) {
	ref := series(0.01, 0.01, 0.05, 0.05, 0.10, 0.10)

	t.Run("leading gap is back-filled", func(t *testing.T) {
		alt := Series{{SigLev: 0.01, Rate: nan()}, {SigLev: 0.05, Rate: 0.3}, {SigLev: 0.10, Rate: 0.5}}
		curve, err := Build(ref, alt)
		require.NoError(t, err)
		assert.Equal(t, []float64{0.01, 0.05, 0.10}, curve.XValues())
		assert.Equal(t, []float64{0.3, 0.3, 0.5}, curve.YValues())
	})

	t.Run("interior gap is interpolated", func(t *testing.T) {
		alt := Series{{SigLev: 0.01, Rate: 0.2}, {SigLev: 0.05, Rate: nan()}, {SigLev: 0.09, Rate: 0.6}, {SigLev: 0.10, Rate: 0.7}}
		curve, err := Build(ref, alt)
		require.NoError(t, err)
		require.Len(t, curve, 3)
		assert.InDelta(t, 0.4, curve[1].Y, 1e-12)
	})

	t.Run("missing reference level is skipped", func(t *testing.T) {
		r := Series{{SigLev: 0.01, Rate: 0.01}, {SigLev: 0.05, Rate: nan()}, {SigLev: 0.10, Rate: 0.10}}
		curve, err := Build(r, series(0.01, 0.2, 0.10, 0.6))
		require.NoError(t, err)
		assert.Equal(t, []float64{0.01, 0.10}, curve.XValues())
	})
}

func TestBuild_NonMonotonicToleratedByDefault(t *testing.T) {
	curve, err := Build(series(0.01, 0.05, 0.05, 0.02), series(0.01, 0.5, 0.05, 0.6))
	require.NoError(t, err)
	assert.Equal(t, Curve{{X: 0.02, Y: 0.6}, {X: 0.05, Y: 0.5}}, curve)
}

func TestAnchored(t *testing.T) {
	c := Curve{{X: 0.1, Y: 0.2}, {X: 0.3, Y: 0.6}, {X: 0.4, Y: 0.7}}

	anchored := Anchored(c, []float64{0.05, 0.2, 0.4, 0.6})
	assert.Equal(t, Curve{
		{X: 0.05, Y: 0.2},
		{X: 0.1, Y: 0.2},
		{X: 0.2, Y: 0.4},
		{X: 0.3, Y: 0.6},
		{X: 0.4, Y: 0.7},
		{X: 0.6, Y: 0.7},
	}, roundCurve(anchored))

	// the input is left untouched
	assert.Len(t, c, 3)
	assert.Empty(t, Anchored(nil, DefaultAnchors))
}

func TestCurve_MarkerIndices(t *testing.T) {
	c := Curve{{X: 0.01}, {X: 0.19}, {X: 0.2}, {X: 0.41}, {X: 0.7}, {X: 0.95}}
	assert.Equal(t, []int{2, 3, 4, 4}, c.MarkerIndices([]float64{0.2, 0.4, 0.6, 0.8}))
	assert.Nil(t, Curve(nil).MarkerIndices(DefaultAnchors))
}

func TestCurve_At(t *testing.T) {
	c := Curve{{X: 0, Y: 0}, {X: 1, Y: 1}}
	assert.InDelta(t, 0.25, c.At(0.25), 1e-12)
	assert.Equal(t, 1.0, c.At(2))
	assert.Equal(t, 0.0, c.At(-1))
	assert.True(t, isNaN(Curve(nil).At(0.5)))
}

package chart

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_bestPosition(t *testing.T) {
	tests := []struct {
		name   string
		points [][2]float64
		want   LegendPosition
	}{
		{name: "empty", want: LegendUpperRight},
		{
			name:   "rising line leaves upper left free",
			points: [][2]float64{{0.1, 0.1}, {0.3, 0.3}, {0.6, 0.6}, {0.9, 0.9}, {0.8, 0.2}},
			want:   LegendUpperLeft,
		},
		{
			name:   "high values everywhere",
			points: [][2]float64{{0.1, 0.9}, {0.3, 0.8}, {0.6, 0.8}, {0.9, 0.9}, {0.2, 0.2}},
			want:   LegendLowerRight,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, bestPosition(tt.points))
		})
	}
}

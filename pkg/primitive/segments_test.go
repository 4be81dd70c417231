package primitive

import (
	"math"
	"testing"
)

func TestArcSegmentCount(t *testing.T) {
	const eps = 1e-9
	tests := []struct {
		theta float64
		want  int
	}{
		{0.1, 1},
		{math.Pi / 2, 1},
		{math.Pi/2 + eps, 2},
		{math.Pi, 2},
		{math.Pi + eps, 3},
		{3 * math.Pi / 2, 3},
		{3*math.Pi/2 + eps, 4},
		{2 * math.Pi, 4},
	}
	for _, tt := range tests {
		if got := arcSegmentCount(tt.theta); got != tt.want {
			t.Errorf("arcSegmentCount(%v) = %d, want %d", tt.theta, got, tt.want)
		}
	}
}

func TestArcKnots(t *testing.T) {
	tests := []struct {
		n    int
		want []float64
	}{
		{1, []float64{0, 0, 0, 1, 1, 1}},
		{2, []float64{0, 0, 0, 0.5, 0.5, 1, 1, 1}},
		{4, []float64{0, 0, 0, 0.25, 0.25, 0.5, 0.5, 0.75, 0.75, 1, 1, 1}},
	}
	for _, tt := range tests {
		got := arcKnots(tt.n)
		diff(t, tt.want, got)
		if len(got) != 2*tt.n+4 {
			t.Errorf("arcKnots(%d) has %d knots, want %d", tt.n, len(got), 2*tt.n+4)
		}
	}
}

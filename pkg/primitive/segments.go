package primitive

import "math"

// arcSegmentBound maps an upper bound on an arc's angular span to the
// number of rational quadratic segments used to represent it. Each segment
// then spans at most a quarter turn, which keeps every middle weight
// cos(dθ/2) in (0, 1].
type arcSegmentBound struct {
	maxSpan  float64
	segments int
}

// arcSegmentTable is ordered by maxSpan; the first bound not exceeded wins.
var arcSegmentTable = []arcSegmentBound{
	{maxSpan: math.Pi / 2, segments: 1},
	{maxSpan: math.Pi, segments: 2},
	{maxSpan: 3 * math.Pi / 2, segments: 3},
	{maxSpan: math.Inf(1), segments: 4},
}

// arcSegmentCount returns how many segments an arc spanning theta radians
// is split into.
func arcSegmentCount(theta float64) int {
	for _, b := range arcSegmentTable {
		if theta <= b.maxSpan {
			return b.segments
		}
	}
	return arcSegmentTable[len(arcSegmentTable)-1].segments
}

// arcKnots returns the clamped quadratic knot vector for n stitched
// segments: triple end knots and a double knot at every joint i/n.
func arcKnots(n int) []float64 {
	knots := make([]float64, 0, 2*n+4)
	knots = append(knots, 0, 0, 0)
	for i := 1; i < n; i++ {
		k := float64(i) / float64(n)
		knots = append(knots, k, k)
	}
	return append(knots, 1, 1, 1)
}

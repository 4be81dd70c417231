package primitive

import (
	"github.com/chazu/nurbs/pkg/nurbs"
	"github.com/chazu/nurbs/pkg/vecmath"
)

// PolylineCurve builds the degree-1 curve through points, parametrized by
// normalized cumulative chord length so the domain is [0, 1]. All weights
// are 1.
func (b *Builder) PolylineCurve(points []vecmath.Point) (*nurbs.CurveData, error) {
	const op = "polyline"

	if len(points) < 2 {
		return nil, nurbs.InvalidArgument(op, "need at least 2 points, got %d", len(points))
	}
	if err := checkPoints(op, points...); err != nil {
		return nil, err
	}

	// knots: 0, 0, c1, c2, ..., L, L before normalization.
	knots := make([]float64, len(points)+2)
	var total float64
	for i := 1; i < len(points); i++ {
		total += vecmath.Distance(points[i-1], points[i])
		knots[i+1] = total
	}
	knots[len(knots)-1] = total
	if !isFinite(total) {
		return nil, nurbs.NumericDegeneracy(op, "total chord length overflows")
	}
	if total <= b.tol() {
		return nil, nurbs.InvalidArgument(op, "points have zero total length")
	}
	for i := range knots {
		knots[i] /= total
	}
	// Pin the end exactly; the division may leave it one ulp off.
	knots[len(knots)-2], knots[len(knots)-1] = 1, 1

	weights := make([]float64, len(points))
	for i := range weights {
		weights[i] = 1
	}
	return nurbs.NewCurve(1, knots, points, weights), nil
}

// Line builds the straight segment from p0 to p1.
func (b *Builder) Line(p0, p1 vecmath.Point) (*nurbs.CurveData, error) {
	return b.PolylineCurve([]vecmath.Point{p0, p1})
}

// BezierCurve builds a single-span rational Bézier curve of degree
// len(points)-1. A nil weights slice gives a polynomial curve.
func (b *Builder) BezierCurve(points []vecmath.Point, weights []float64) (*nurbs.CurveData, error) {
	const op = "bezier"

	if len(points) < 2 {
		return nil, nurbs.InvalidArgument(op, "need at least 2 points, got %d", len(points))
	}
	if err := checkPoints(op, points...); err != nil {
		return nil, err
	}
	if weights == nil {
		weights = make([]float64, len(points))
		for i := range weights {
			weights[i] = 1
		}
	}
	if len(weights) != len(points) {
		return nil, nurbs.InvalidArgument(op, "%d weights for %d points", len(weights), len(points))
	}
	for i, w := range weights {
		if !isFinite(w) || w <= 0 {
			return nil, nurbs.InvalidArgument(op, "weight %d is %v, must be positive", i, w)
		}
	}

	degree := len(points) - 1
	knots := make([]float64, 2*(degree+1))
	for i := degree + 1; i < len(knots); i++ {
		knots[i] = 1
	}
	return nurbs.NewCurve(degree, knots, points, weights), nil
}

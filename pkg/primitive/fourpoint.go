package primitive

import (
	"github.com/chazu/nurbs/pkg/nurbs"
	"github.com/chazu/nurbs/pkg/vecmath"
)

// FourPointSurface builds the bilinear patch with corners p1, p2, p3, p4
// given counter-clockwise, represented at the requested degree in both
// directions. U runs from p1 to p2, V from p1 to p4.
func (b *Builder) FourPointSurface(p1, p2, p3, p4 vecmath.Point, degree int) (*nurbs.SurfaceData, error) {
	const op = "four-point"

	if err := checkPoints(op, p1, p2, p3, p4); err != nil {
		return nil, err
	}
	if degree < 1 {
		return nil, nurbs.InvalidArgument(op, "degree %d must be at least 1", degree)
	}

	d := float64(degree)
	points := vecmath.Zeros2(degree+1, degree+1)
	weights := make([][]float64, degree+1)
	for i := range points {
		s := float64(i) / d
		near := vecmath.Lerp(p1, p2, s)
		far := vecmath.Lerp(p4, p3, s)
		weights[i] = make([]float64, degree+1)
		for j := range points[i] {
			points[i][j] = vecmath.Lerp(near, far, float64(j)/d)
			weights[i][j] = 1
		}
	}

	knots := make([]float64, 2*(degree+1))
	for i := degree + 1; i < len(knots); i++ {
		knots[i] = 1
	}
	return nurbs.NewSurface(degree, degree, knots, knots, points, weights), nil
}

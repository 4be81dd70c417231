package primitive

import (
	"math"
	"testing"

	"github.com/chazu/nurbs/pkg/nurbs"
	"github.com/chazu/nurbs/pkg/vecmath"
)

func TestFourPointSurface(t *testing.T) {
	p1, p2, p3, p4 := origin, xAxis, vecmath.Pt(1, 1, 1), yAxis
	bilinear := func(u, v float64) vecmath.Point {
		return vecmath.Lerp(vecmath.Lerp(p1, p2, u), vecmath.Lerp(p4, p3, u), v)
	}

	for _, degree := range []int{1, 2, 3} {
		s := mustSurface(t)(FourPointSurface(p1, p2, p3, p4, degree))
		if s.Rows() != degree+1 || s.Cols() != degree+1 {
			t.Fatalf("degree %d: grid %dx%d", degree, s.Rows(), s.Cols())
		}
		for _, u := range samples(5) {
			for _, v := range samples(5) {
				diff(t, bilinear(u, v), s.Point(u, v), approx)
			}
		}
	}
}

func TestFourPointSurfaceErrors(t *testing.T) {
	_, err := FourPointSurface(origin, xAxis, yAxis, zAxis, 0)
	wantErr(t, err, "four-point", nurbs.ErrInvalidArgument)
	_, err = FourPointSurface(origin, xAxis, yAxis, vecmath.Pt(0, 0, math.Inf(1)), 2)
	wantErr(t, err, "four-point", nurbs.ErrInvalidArgument)
}

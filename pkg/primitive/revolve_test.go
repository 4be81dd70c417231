package primitive

import (
	"math"
	"testing"

	"github.com/chazu/nurbs/pkg/nurbs"
	"github.com/chazu/nurbs/pkg/vecmath"
)

func TestRevolvedSurfaceCylinder(t *testing.T) {
	profile := mustCurve(t)(Line(vecmath.Pt(1, 0, 0), vecmath.Pt(1, 0, 1)))
	s := mustSurface(t)(RevolvedSurface(profile, origin, zAxis, 2*math.Pi))

	if s.DegreeU != 2 || s.DegreeV != 1 {
		t.Errorf("degrees = (%d, %d), want (2, 1)", s.DegreeU, s.DegreeV)
	}
	diff(t, nurbs.KnotVector(arcKnots(4)), s.KnotsU)
	diff(t, profile.Knots, s.KnotsV)
	if s.Rows() != 9 || s.Cols() != 2 {
		t.Fatalf("grid %dx%d, want 9x2", s.Rows(), s.Cols())
	}

	for _, u := range samples(32) {
		for _, v := range samples(4) {
			p := s.Point(u, v)
			if r := math.Hypot(p.X, p.Y); math.Abs(r-1) > 1e-9 {
				t.Errorf("Point(%v, %v) at radius %v, want 1", u, v, r)
			}
			if math.Abs(p.Z-v) > 1e-9 {
				t.Errorf("Point(%v, %v).Z = %v, want %v", u, v, p.Z, v)
			}
		}
	}
	diff(t, vecmath.Pt(0, 1, 0.5), s.Point(0.25, 0.5), approx)
}

func TestRevolvedSurfacePartial(t *testing.T) {
	profile := mustCurve(t)(Line(vecmath.Pt(2, 0, 0), vecmath.Pt(3, 0, 0)))
	s := mustSurface(t)(RevolvedSurface(profile, origin, zAxis, math.Pi/2))

	if s.Rows() != 3 {
		t.Fatalf("%d rows, want 3", s.Rows())
	}
	diff(t, [][]float64{{1, 1}, {math.Sqrt2 / 2, math.Sqrt2 / 2}, {1, 1}}, s.Weights(), approx)
	diff(t, [][]vecmath.Point{
		{{X: 2}, {X: 3}},
		{{X: 2, Y: 2}, {X: 3, Y: 3}},
		{{Y: 2}, {Y: 3}},
	}, s.Points(), approx)
}

func TestRevolvedSurfaceAxisPoint(t *testing.T) {
	// A profile starting on the axis gives a disc whose centre column
	// collapses onto the axis.
	profile := mustCurve(t)(Line(vecmath.Pt(0, 0, 1), vecmath.Pt(2, 0, 1)))
	s := mustSurface(t)(RevolvedSurface(profile, origin, zAxis, 2*math.Pi))

	for i, row := range s.Points() {
		diff(t, vecmath.Pt(0, 0, 1), row[0], approx)
		want := 1.0
		if i%2 == 1 {
			want = math.Sqrt2 / 2
		}
		if w := s.ControlPoints[i][0].W; math.Abs(w-want) > 1e-12 {
			t.Errorf("row %d axis weight = %v, want %v", i, w, want)
		}
	}
	for _, u := range samples(16) {
		for _, v := range samples(4) {
			p := s.Point(u, v)
			if r := math.Hypot(p.X, p.Y); math.Abs(r-2*v) > 1e-9 {
				t.Errorf("Point(%v, %v) at radius %v, want %v", u, v, r, 2*v)
			}
		}
	}
}

func TestRevolvedSurfaceWeightedProfile(t *testing.T) {
	// Revolving a quarter circle in the XZ plane about Z gives an eighth
	// of a sphere when turned through π/2.
	quarter := mustCurve(t)(Arc(origin, xAxis, zAxis, 1, 0, math.Pi/2))
	s := mustSurface(t)(RevolvedSurface(quarter, origin, zAxis, math.Pi/2))

	wm := math.Sqrt2 / 2
	diff(t, [][]float64{{1, wm, 1}, {wm, wm * wm, wm}, {1, wm, 1}}, s.Weights(), approx)
	for _, u := range samples(8) {
		for _, v := range samples(8) {
			if r := vecmath.Norm(s.Point(u, v)); math.Abs(r-1) > 1e-9 {
				t.Errorf("Point(%v, %v) at radius %v, want 1", u, v, r)
			}
		}
	}
}

func TestRevolvedSurfaceErrors(t *testing.T) {
	profile := mustCurve(t)(Line(xAxis, vecmath.Pt(1, 0, 1)))
	tests := []struct {
		name    string
		profile *nurbs.CurveData
		axis    vecmath.Point
		theta   float64
	}{
		{"nil profile", nil, zAxis, math.Pi},
		{"zero axis", profile, origin, math.Pi},
		{"zero angle", profile, zAxis, 0},
		{"negative angle", profile, zAxis, -1},
		{"beyond full turn", profile, zAxis, 7},
		{"nan angle", profile, zAxis, math.NaN()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := RevolvedSurface(tt.profile, origin, tt.axis, tt.theta)
			wantErr(t, err, "revolve", nurbs.ErrInvalidArgument)
		})
	}
}

func TestSphericalSurface(t *testing.T) {
	center := vecmath.Pt(1, 2, 3)
	s := mustSurface(t)(SphericalSurface(center, zAxis, xAxis, 2))

	if s.Rows() != 9 || s.Cols() != 5 {
		t.Fatalf("grid %dx%d, want 9x5", s.Rows(), s.Cols())
	}
	for _, u := range samples(16) {
		for _, v := range samples(16) {
			p := s.Point(u, v)
			if r := vecmath.Distance(center, p); math.Abs(r-2) > 1e-9 {
				t.Errorf("Point(%v, %v) = %v at distance %v, want 2", u, v, p, r)
			}
		}
	}
	diff(t, vecmath.Pt(1, 2, 1), s.Point(0.3, 0), approx)
	diff(t, vecmath.Pt(1, 2, 5), s.Point(0.7, 1), approx)
	diff(t, vecmath.Pt(3, 2, 3), s.Point(0, 0.5), approx)

	_, err := SphericalSurface(center, zAxis, xAxis, 0)
	wantErr(t, err, "ellipse-arc", nurbs.ErrInvalidArgument)
}

func TestConicalSurface(t *testing.T) {
	s := mustSurface(t)(ConicalSurface(zAxis, xAxis, origin, 2, 1))

	for _, u := range samples(16) {
		for _, v := range samples(8) {
			p := s.Point(u, v)
			if want := (2 - p.Z) / 2; math.Abs(math.Hypot(p.X, p.Y)-want) > 1e-9 {
				t.Errorf("Point(%v, %v) = %v off the cone", u, v, p)
			}
		}
	}
	diff(t, vecmath.Pt(0, 0, 2), s.Point(0.6, 0), approx)
	diff(t, vecmath.Pt(1, 0, 0), s.Point(0, 1), approx)

	_, err := ConicalSurface(zAxis, xAxis, origin, 0, 1)
	wantErr(t, err, "cone", nurbs.ErrInvalidArgument)
	_, err = ConicalSurface(origin, xAxis, origin, 1, 1)
	wantErr(t, err, "cone", nurbs.ErrInvalidArgument)
}

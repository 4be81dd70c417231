package nurbs

import (
	"errors"
	"math"
	"testing"

	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// bilinearPatch is the unit square in the XY plane lifted to z = 1 at (1, 1).
func bilinearPatch() *SurfaceData {
	return NewSurface(1, 1,
		[]float64{0, 0, 1, 1},
		[]float64{0, 0, 1, 1},
		[][]v3.Vec{
			{{}, {Y: 1}},
			{{X: 1}, {X: 1, Y: 1, Z: 1}},
		},
		[][]float64{{1, 1}, {1, 1}},
	)
}

func TestSurfacePointBilinear(t *testing.T) {
	s := bilinearPatch()
	if err := s.Validate(DefaultOptions()); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	tests := []struct {
		u, v float64
		want v3.Vec
	}{
		{0, 0, v3.Vec{}},
		{1, 0, v3.Vec{X: 1}},
		{0, 1, v3.Vec{Y: 1}},
		{1, 1, v3.Vec{X: 1, Y: 1, Z: 1}},
		{0.5, 0.5, v3.Vec{X: 0.5, Y: 0.5, Z: 0.25}},
	}
	for _, tt := range tests {
		diff(t, tt.want, s.Point(tt.u, tt.v), approx)
	}
}

func TestSurfacePointRational(t *testing.T) {
	// Quarter cylinder: the quarter circle swept linearly along z.
	circle := quarterCircle()
	s := &SurfaceData{
		DegreeU: 1,
		DegreeV: 2,
		KnotsU:  KnotVector{0, 0, 1, 1},
		KnotsV:  circle.Knots.Clone(),
		ControlPoints: [][]HomoPoint{
			circle.ControlPoints,
			circle.Transform(sdf.Translate3d(v3.Vec{Z: 2})).ControlPoints,
		},
	}
	if err := s.Validate(DefaultOptions()); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	for _, u := range []float64{0, 0.3, 1} {
		for _, v := range []float64{0, 0.4, 1} {
			p := s.Point(u, v)
			if r := math.Hypot(p.X, p.Y); math.Abs(r-1) > 1e-12 {
				t.Errorf("Point(%v, %v) = %v off the cylinder (r = %v)", u, v, p, r)
			}
			if math.Abs(p.Z-2*u) > 1e-12 {
				t.Errorf("Point(%v, %v).Z = %v, want %v", u, v, p.Z, 2*u)
			}
		}
	}
}

func TestSurfaceValidate(t *testing.T) {
	ragged := bilinearPatch()
	ragged.ControlPoints[1] = ragged.ControlPoints[1][:1]

	badKnotsU := bilinearPatch()
	badKnotsU.KnotsU = KnotVector{0, 0, 0, 1, 1}

	badKnotsV := bilinearPatch()
	badKnotsV.KnotsV = KnotVector{0, 1, 1, 1}

	negWeight := bilinearPatch()
	negWeight.ControlPoints[0][1].W = -1

	tests := []struct {
		name string
		s    *SurfaceData
	}{
		{"nil", nil},
		{"negative degree", &SurfaceData{DegreeU: -1}},
		{"empty grid", &SurfaceData{DegreeU: 1, DegreeV: 1}},
		{"ragged", ragged},
		{"u knot count", badKnotsU},
		{"v knots unclamped", badKnotsV},
		{"negative weight", negWeight},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.s.Validate(DefaultOptions()); !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("Validate() = %v, want ErrInvalidArgument", err)
			}
		})
	}
}

func TestSurfaceTransform(t *testing.T) {
	s := bilinearPatch()
	m := sdf.Translate3d(v3.Vec{X: 10, Y: -1, Z: 3})
	moved := s.Transform(m)

	for _, u := range []float64{0, 0.25, 0.5, 1} {
		for _, v := range []float64{0, 0.5, 0.9} {
			diff(t, m.MulPosition(s.Point(u, v)), moved.Point(u, v), approx)
		}
	}
	diff(t, s.Weights(), moved.Weights())
	if s.ControlPoints[0][0].Vec != (v3.Vec{}) {
		t.Error("Transform modified the original surface")
	}
}

func TestCurveTransformRotation(t *testing.T) {
	c := quarterCircle()
	rotated := c.Transform(sdf.RotateZ(math.Pi / 2))
	// The first quadrant arc becomes the second quadrant arc.
	diff(t, v3.Vec{Y: 1}, rotated.Point(0), approx)
	diff(t, v3.Vec{X: -1}, rotated.Point(1), approx)
	diff(t, v3.Vec{X: -math.Sqrt2 / 2, Y: math.Sqrt2 / 2}, rotated.Point(0.5), approx)
}

func TestSurfaceDims(t *testing.T) {
	s := bilinearPatch()
	if s.Rows() != 2 || s.Cols() != 2 {
		t.Errorf("dims = %dx%d, want 2x2", s.Rows(), s.Cols())
	}
	if (&SurfaceData{}).Cols() != 0 {
		t.Error("Cols() of empty surface != 0")
	}
	diff(t, [][]v3.Vec{{{}, {Y: 1}}, {{X: 1}, {X: 1, Y: 1, Z: 1}}}, s.Points(), approx)
}

package exact

import (
	"errors"
	"math"
	"testing"

	"github.com/chazu/nurbs/pkg/kernel"
	"github.com/chazu/nurbs/pkg/nurbs"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

var (
	origin = v3.Vec{}
	xAxis  = v3.Vec{X: 1}
	yAxis  = v3.Vec{Y: 1}
	zAxis  = v3.Vec{Z: 1}
)

func newKernel() *Kernel {
	return New(nurbs.DefaultOptions())
}

func mustShape(t *testing.T) func(kernel.Shape, error) kernel.Shape {
	return func(s kernel.Shape, err error) kernel.Shape {
		t.Helper()
		if err != nil {
			t.Fatalf("construction failed: %v", err)
		}
		if s.IsEmpty() {
			t.Fatal("shape is empty")
		}
		opts := nurbs.DefaultOptions()
		if s.Curve != nil {
			if err := s.Curve.Validate(opts); err != nil {
				t.Fatalf("invalid curve: %v", err)
			}
		}
		if s.Surface != nil {
			if err := s.Surface.Validate(opts); err != nil {
				t.Fatalf("invalid surface: %v", err)
			}
		}
		return s
	}
}

func TestCircle(t *testing.T) {
	k := newKernel()
	s := mustShape(t)(k.EllipseArc(origin, xAxis, yAxis, 10, 10, 0, 2*math.Pi))
	if !s.IsCurve() {
		t.Fatal("expected a curve")
	}
	if got := s.ControlPointCount(); got != 9 {
		t.Errorf("control points = %d, want 9", got)
	}
	min, max := s.BoundingBox()
	want := [3]float64{10, 10, 0}
	for i := range 3 {
		if math.Abs(min[i]+want[i]) > 1e-9 || math.Abs(max[i]-want[i]) > 1e-9 {
			t.Errorf("box = %v, %v", min, max)
		}
	}
}

func TestExtrudeCircle(t *testing.T) {
	k := newKernel()
	c := mustShape(t)(k.EllipseArc(origin, xAxis, yAxis, 10, 10, 0, 2*math.Pi))
	s := mustShape(t)(k.Extrude(c, zAxis, 50))
	if s.IsCurve() {
		t.Fatal("expected a surface")
	}
	_, max := s.BoundingBox()
	if max[2] != 50 {
		t.Errorf("top = %v, want 50", max[2])
	}
}

func TestSurfaceInputsMustBeCurves(t *testing.T) {
	k := newKernel()
	cyl := mustShape(t)(k.Cylinder(origin, zAxis, xAxis, 5, 1))
	cyl.Name = "drum"
	line := mustShape(t)(k.Polyline([]v3.Vec{origin, xAxis}))

	tests := []struct {
		name string
		fn   func() (kernel.Shape, error)
	}{
		{"extrude", func() (kernel.Shape, error) { return k.Extrude(cyl, zAxis, 1) }},
		{"sweep profile", func() (kernel.Shape, error) { return k.Sweep(cyl, line) }},
		{"sweep rail", func() (kernel.Shape, error) { return k.Sweep(line, kernel.Shape{}) }},
		{"revolve", func() (kernel.Shape, error) { return k.Revolve(cyl, origin, zAxis, 1) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.fn()
			if !errors.Is(err, nurbs.ErrInvalidArgument) {
				t.Fatalf("err = %v, want invalid argument", err)
			}
		})
	}
}

func TestQuadrics(t *testing.T) {
	k := newKernel()

	sphere := mustShape(t)(k.Sphere(origin, zAxis, xAxis, 2))
	min, max := sphere.BoundingBox()
	for i := range 3 {
		if math.Abs(min[i]+2) > 1e-9 || math.Abs(max[i]-2) > 1e-9 {
			t.Errorf("sphere box axis %d = %v..%v, want -2..2", i, min[i], max[i])
		}
	}

	cone := mustShape(t)(k.Cone(origin, zAxis, xAxis, 3, 1))
	if _, max := cone.BoundingBox(); math.Abs(max[2]-3) > 1e-9 {
		t.Errorf("cone apex height = %v, want 3", max[2])
	}

	patch := mustShape(t)(k.Patch([4]v3.Vec{origin, xAxis, {X: 1, Y: 1}, yAxis}, 2))
	if got := patch.ControlPointCount(); got != 9 {
		t.Errorf("patch control points = %d, want 9", got)
	}
}

func TestBezierAndSweep(t *testing.T) {
	k := newKernel()
	w := math.Sqrt2 / 2
	quarter := mustShape(t)(k.Bezier([]v3.Vec{xAxis, {X: 1, Y: 1}, yAxis}, []float64{1, w, 1}))
	rail := mustShape(t)(k.Polyline([]v3.Vec{origin, {Z: 4}}))
	s := mustShape(t)(k.Sweep(quarter, rail))
	if s.Surface.Rows() != 2 || s.Surface.Cols() != 3 {
		t.Errorf("grid = %dx%d, want 2x3", s.Surface.Rows(), s.Surface.Cols())
	}
}

func TestConstructionErrorsPropagate(t *testing.T) {
	k := newKernel()
	_, err := k.EllipseArc(origin, xAxis, xAxis, 1, 1, 0, 1)
	if !errors.Is(err, nurbs.ErrInvalidArgument) {
		t.Errorf("err = %v, want invalid argument", err)
	}
	_, err = k.Polyline([]v3.Vec{origin})
	if err == nil {
		t.Error("single-point polyline should fail")
	}
}

func TestTranslate(t *testing.T) {
	k := newKernel()
	line := mustShape(t)(k.Polyline([]v3.Vec{origin, {X: 10}}))
	moved := k.Translate(line, 5, 0, 0)
	min, max := moved.BoundingBox()
	if min[0] != 5 || max[0] != 15 {
		t.Errorf("translated X range = %v..%v, want 5..15", min[0], max[0])
	}
}

func TestRotate(t *testing.T) {
	k := newKernel()
	line := mustShape(t)(k.Polyline([]v3.Vec{origin, {X: 100}}))

	// A segment along X rotated 90 degrees around Z should extend along Y instead.
	rotated := k.Rotate(line, 0, 0, 90)
	min, max := rotated.BoundingBox()

	const tol = 1e-9
	if math.Abs(max[0]-min[0]) > tol {
		t.Errorf("rotated X extent = %f, expected 0", max[0]-min[0])
	}
	if math.Abs(max[1]-min[1]-100) > tol {
		t.Errorf("rotated Y extent = %f, expected 100", max[1]-min[1])
	}
}

func TestRotatePreservesWeights(t *testing.T) {
	k := newKernel()
	arc := mustShape(t)(k.EllipseArc(origin, xAxis, yAxis, 1, 1, 0, math.Pi/2))
	rotated := k.Rotate(arc, 45, 30, 0)
	for i, hp := range rotated.Curve.ControlPoints {
		if hp.W != arc.Curve.ControlPoints[i].W {
			t.Errorf("weight %d = %v, want %v", i, hp.W, arc.Curve.ControlPoints[i].W)
		}
	}
	p := rotated.Curve.Point(0.5)
	if r := p.Length(); math.Abs(r-1) > 1e-9 {
		t.Errorf("rotated midpoint radius = %v, want 1", r)
	}
}

package primitive

import (
	"errors"
	"testing"

	"github.com/chazu/nurbs/pkg/nurbs"
	"github.com/chazu/nurbs/pkg/vecmath"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

var approx = cmpopts.EquateApprox(0, 1e-9)

// samples returns n+1 evenly spaced parameters covering [0, 1].
func samples(n int) []float64 {
	us := make([]float64, n+1)
	for i := range us {
		us[i] = float64(i) / float64(n)
	}
	return us
}

// mustCurve returns a checker for a constructor's results, so calls read
// mustCurve(t)(Arc(...)).
func mustCurve(t *testing.T) func(*nurbs.CurveData, error) *nurbs.CurveData {
	return func(c *nurbs.CurveData, err error) *nurbs.CurveData {
		t.Helper()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := c.Validate(nurbs.DefaultOptions()); err != nil {
			t.Fatalf("constructed curve does not validate: %v", err)
		}
		return c
	}
}

func mustSurface(t *testing.T) func(*nurbs.SurfaceData, error) *nurbs.SurfaceData {
	return func(s *nurbs.SurfaceData, err error) *nurbs.SurfaceData {
		t.Helper()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := s.Validate(nurbs.DefaultOptions()); err != nil {
			t.Fatalf("constructed surface does not validate: %v", err)
		}
		return s
	}
}

// wantErr checks that err is a *nurbs.Error of the given kind raised by op.
func wantErr(t *testing.T, err error, op string, kind error) {
	t.Helper()
	if !errors.Is(err, kind) {
		t.Fatalf("error = %v, want kind %v", err, kind)
	}
	var e *nurbs.Error
	if !errors.As(err, &e) {
		t.Fatalf("error %v is not a *nurbs.Error", err)
	}
	if e.Op != op {
		t.Errorf("error op = %q, want %q", e.Op, op)
	}
}

var (
	origin = vecmath.Pt(0, 0, 0)
	xAxis  = vecmath.Pt(1, 0, 0)
	yAxis  = vecmath.Pt(0, 1, 0)
	zAxis  = vecmath.Pt(0, 0, 1)
)

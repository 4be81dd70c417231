package kernel

import (
	"math"

	"github.com/chazu/nurbs/pkg/nurbs"
	"github.com/deadsy/sdfx/sdf"
)

// Shape is a constructed curve or surface. At most one of Curve and
// Surface is set; neither means the shape is empty.
type Shape struct {
	Name    string             `json:"name"` // which design graph node this came from
	Curve   *nurbs.CurveData   `json:"curve,omitempty"`
	Surface *nurbs.SurfaceData `json:"surface,omitempty"`
}

// CurveShape wraps c.
func CurveShape(c *nurbs.CurveData) Shape { return Shape{Curve: c} }

// SurfaceShape wraps s.
func SurfaceShape(s *nurbs.SurfaceData) Shape { return Shape{Surface: s} }

// IsCurve reports whether the shape holds a curve.
func (s Shape) IsCurve() bool { return s.Curve != nil }

// IsEmpty returns true if the shape has no geometry.
func (s Shape) IsEmpty() bool { return s.Curve == nil && s.Surface == nil }

// ControlPointCount returns the number of control points.
func (s Shape) ControlPointCount() int {
	switch {
	case s.Curve != nil:
		return len(s.Curve.ControlPoints)
	case s.Surface != nil:
		return s.Surface.Rows() * s.Surface.Cols()
	}
	return 0
}

// BoundingBox returns the axis-aligned box of the Cartesian control points.
// Positive weights keep the geometry inside it. An empty shape returns
// zero boxes.
func (s Shape) BoundingBox() (min, max [3]float64) {
	var hps []nurbs.HomoPoint
	switch {
	case s.Curve != nil:
		hps = s.Curve.ControlPoints
	case s.Surface != nil:
		for _, row := range s.Surface.ControlPoints {
			hps = append(hps, row...)
		}
	}
	if len(hps) == 0 {
		return min, max
	}

	for i := range 3 {
		min[i], max[i] = math.Inf(1), math.Inf(-1)
	}
	for _, hp := range hps {
		p := hp.Dehomogenize()
		for i, c := range [3]float64{p.X, p.Y, p.Z} {
			min[i] = math.Min(min[i], c)
			max[i] = math.Max(max[i], c)
		}
	}
	return min, max
}

// Transform returns a copy of s with the affine map m applied.
func (s Shape) Transform(m sdf.M44) Shape {
	out := Shape{Name: s.Name}
	if s.Curve != nil {
		out.Curve = s.Curve.Transform(m)
	}
	if s.Surface != nil {
		out.Surface = s.Surface.Transform(m)
	}
	return out
}

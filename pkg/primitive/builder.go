package primitive

import (
	"math"

	"github.com/chazu/nurbs/pkg/nurbs"
	"github.com/chazu/nurbs/pkg/vecmath"
)

// Builder constructs primitives using a fixed set of options.
type Builder struct {
	opts nurbs.Options
}

// NewBuilder returns a Builder using opts.
func NewBuilder(opts nurbs.Options) *Builder {
	return &Builder{opts: opts}
}

// DefaultBuilder uses nurbs.DefaultOptions. The package-level constructors
// delegate to it.
var DefaultBuilder = NewBuilder(nurbs.DefaultOptions())

// Options returns the options the builder was created with.
func (b *Builder) Options() nurbs.Options {
	return b.opts
}

func (b *Builder) tol() float64 {
	return b.opts.Tol()
}

func isFinite(fs ...float64) bool {
	for _, f := range fs {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}

// checkCurve validates an input curve on behalf of op.
func (b *Builder) checkCurve(op, role string, c *nurbs.CurveData) error {
	if c == nil {
		return nurbs.InvalidArgument(op, "%s is nil", role)
	}
	if len(c.ControlPoints) == 0 {
		return nurbs.InvalidArgument(op, "%s has no control points", role)
	}
	if err := c.Validate(b.opts); err != nil {
		return nurbs.InvalidArgument(op, "%s: %v", role, err)
	}
	return nil
}

// checkPoints rejects non-finite input points.
func checkPoints(op string, pts ...vecmath.Point) error {
	for i, p := range pts {
		if !vecmath.IsFinite(p) {
			return nurbs.InvalidArgument(op, "point %d (%v) is not finite", i, p)
		}
	}
	return nil
}

// Package-level constructors using DefaultBuilder.

// Sweep1Surface calls DefaultBuilder.Sweep1Surface.
func Sweep1Surface(profile, rail *nurbs.CurveData) (*nurbs.SurfaceData, error) {
	return DefaultBuilder.Sweep1Surface(profile, rail)
}

// EllipseArc calls DefaultBuilder.EllipseArc.
func EllipseArc(center, xaxis, yaxis vecmath.Point, xradius, yradius, startAngle, endAngle float64) (*nurbs.CurveData, error) {
	return DefaultBuilder.EllipseArc(center, xaxis, yaxis, xradius, yradius, startAngle, endAngle)
}

// Ellipse calls DefaultBuilder.Ellipse.
func Ellipse(center, xaxis, yaxis vecmath.Point, xradius, yradius float64) (*nurbs.CurveData, error) {
	return DefaultBuilder.Ellipse(center, xaxis, yaxis, xradius, yradius)
}

// Arc calls DefaultBuilder.Arc.
func Arc(center, xaxis, yaxis vecmath.Point, radius, startAngle, endAngle float64) (*nurbs.CurveData, error) {
	return DefaultBuilder.Arc(center, xaxis, yaxis, radius, startAngle, endAngle)
}

// Circle calls DefaultBuilder.Circle.
func Circle(center, xaxis, yaxis vecmath.Point, radius float64) (*nurbs.CurveData, error) {
	return DefaultBuilder.Circle(center, xaxis, yaxis, radius)
}

// PolylineCurve calls DefaultBuilder.PolylineCurve.
func PolylineCurve(points []vecmath.Point) (*nurbs.CurveData, error) {
	return DefaultBuilder.PolylineCurve(points)
}

// Line calls DefaultBuilder.Line.
func Line(p0, p1 vecmath.Point) (*nurbs.CurveData, error) {
	return DefaultBuilder.Line(p0, p1)
}

// BezierCurve calls DefaultBuilder.BezierCurve.
func BezierCurve(points []vecmath.Point, weights []float64) (*nurbs.CurveData, error) {
	return DefaultBuilder.BezierCurve(points, weights)
}

// ExtrudedSurface calls DefaultBuilder.ExtrudedSurface.
func ExtrudedSurface(axis vecmath.Point, length float64, profile *nurbs.CurveData) (*nurbs.SurfaceData, error) {
	return DefaultBuilder.ExtrudedSurface(axis, length, profile)
}

// CylindricalSurface calls DefaultBuilder.CylindricalSurface.
func CylindricalSurface(axis, xaxis, base vecmath.Point, height, radius float64) (*nurbs.SurfaceData, error) {
	return DefaultBuilder.CylindricalSurface(axis, xaxis, base, height, radius)
}

// FourPointSurface calls DefaultBuilder.FourPointSurface.
func FourPointSurface(p1, p2, p3, p4 vecmath.Point, degree int) (*nurbs.SurfaceData, error) {
	return DefaultBuilder.FourPointSurface(p1, p2, p3, p4, degree)
}

// RevolvedSurface calls DefaultBuilder.RevolvedSurface.
func RevolvedSurface(profile *nurbs.CurveData, center, axis vecmath.Point, theta float64) (*nurbs.SurfaceData, error) {
	return DefaultBuilder.RevolvedSurface(profile, center, axis, theta)
}

// ConicalSurface calls DefaultBuilder.ConicalSurface.
func ConicalSurface(axis, xaxis, base vecmath.Point, height, radius float64) (*nurbs.SurfaceData, error) {
	return DefaultBuilder.ConicalSurface(axis, xaxis, base, height, radius)
}

// SphericalSurface calls DefaultBuilder.SphericalSurface.
func SphericalSurface(center, axis, xaxis vecmath.Point, radius float64) (*nurbs.SurfaceData, error) {
	return DefaultBuilder.SphericalSurface(center, axis, xaxis, radius)
}

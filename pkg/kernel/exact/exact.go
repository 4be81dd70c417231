// Package exact implements the kernel.Kernel interface with the exact
// rational constructions of package primitive.
package exact

import (
	"fmt"
	"math"

	"github.com/chazu/nurbs/pkg/kernel"
	"github.com/chazu/nurbs/pkg/nurbs"
	"github.com/chazu/nurbs/pkg/primitive"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Compile-time interface check.
var _ kernel.Kernel = (*Kernel)(nil)

// Kernel implements kernel.Kernel on a primitive.Builder.
type Kernel struct {
	b *primitive.Builder
}

// New returns a Kernel constructing with the given options.
func New(opts nurbs.Options) *Kernel {
	return &Kernel{b: primitive.NewBuilder(opts)}
}

// Options returns the options the kernel constructs with.
func (k *Kernel) Options() nurbs.Options {
	return k.b.Options()
}

func curve(c *nurbs.CurveData, err error) (kernel.Shape, error) {
	if err != nil {
		return kernel.Shape{}, err
	}
	return kernel.CurveShape(c), nil
}

func surface(s *nurbs.SurfaceData, err error) (kernel.Shape, error) {
	if err != nil {
		return kernel.Shape{}, err
	}
	return kernel.SurfaceShape(s), nil
}

// curveOf extracts the curve a surface construction consumes.
func curveOf(op, role string, s kernel.Shape) (*nurbs.CurveData, error) {
	if !s.IsCurve() {
		return nil, nurbs.InvalidArgument(op, "%s %s is not a curve", role, describe(s))
	}
	return s.Curve, nil
}

func describe(s kernel.Shape) string {
	if s.Name != "" {
		return fmt.Sprintf("%q", s.Name)
	}
	if s.Surface != nil {
		return "(surface)"
	}
	return "(empty)"
}

// Polyline builds a degree-1 curve through points.
func (k *Kernel) Polyline(points []v3.Vec) (kernel.Shape, error) {
	return curve(k.b.PolylineCurve(points))
}

// EllipseArc builds an elliptical arc; equal radii give a circular arc.
func (k *Kernel) EllipseArc(center, xaxis, yaxis v3.Vec, xradius, yradius, start, end float64) (kernel.Shape, error) {
	return curve(k.b.EllipseArc(center, xaxis, yaxis, xradius, yradius, start, end))
}

// Bezier builds a rational Bézier curve. Nil weights mean all ones.
func (k *Kernel) Bezier(points []v3.Vec, weights []float64) (kernel.Shape, error) {
	return curve(k.b.BezierCurve(points, weights))
}

// Extrude translates profile along axis·length.
func (k *Kernel) Extrude(profile kernel.Shape, axis v3.Vec, length float64) (kernel.Shape, error) {
	c, err := curveOf("extrude", "profile", profile)
	if err != nil {
		return kernel.Shape{}, err
	}
	return surface(k.b.ExtrudedSurface(axis, length, c))
}

// Sweep translates profile along rail.
func (k *Kernel) Sweep(profile, rail kernel.Shape) (kernel.Shape, error) {
	p, err := curveOf("sweep", "profile", profile)
	if err != nil {
		return kernel.Shape{}, err
	}
	r, err := curveOf("sweep", "rail", rail)
	if err != nil {
		return kernel.Shape{}, err
	}
	return surface(k.b.Sweep1Surface(p, r))
}

// Revolve rotates profile by angle radians about the axis through center.
func (k *Kernel) Revolve(profile kernel.Shape, center, axis v3.Vec, angle float64) (kernel.Shape, error) {
	c, err := curveOf("revolve", "profile", profile)
	if err != nil {
		return kernel.Shape{}, err
	}
	return surface(k.b.RevolvedSurface(c, center, axis, angle))
}

func (k *Kernel) Cylinder(base, axis, xaxis v3.Vec, height, radius float64) (kernel.Shape, error) {
	return surface(k.b.CylindricalSurface(axis, xaxis, base, height, radius))
}

func (k *Kernel) Sphere(center, axis, xaxis v3.Vec, radius float64) (kernel.Shape, error) {
	return surface(k.b.SphericalSurface(center, axis, xaxis, radius))
}

func (k *Kernel) Cone(base, axis, xaxis v3.Vec, height, radius float64) (kernel.Shape, error) {
	return surface(k.b.ConicalSurface(axis, xaxis, base, height, radius))
}

// Patch builds the bilinear patch over corners at the given degree.
func (k *Kernel) Patch(corners [4]v3.Vec, degree int) (kernel.Shape, error) {
	return surface(k.b.FourPointSurface(corners[0], corners[1], corners[2], corners[3], degree))
}

// Translate moves a shape by (x, y, z).
func (k *Kernel) Translate(s kernel.Shape, x, y, z float64) kernel.Shape {
	return s.Transform(sdf.Translate3d(v3.Vec{X: x, Y: y, Z: z}))
}

// Rotate rotates a shape by Euler angles (degrees) around X, Y, Z axes.
func (k *Kernel) Rotate(s kernel.Shape, x, y, z float64) kernel.Shape {
	xRad := x * math.Pi / 180.0
	yRad := y * math.Pi / 180.0
	zRad := z * math.Pi / 180.0

	m := sdf.RotateZ(zRad).Mul(sdf.RotateY(yRad)).Mul(sdf.RotateX(xRad))
	return s.Transform(m)
}

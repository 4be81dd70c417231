// Package kernel defines the abstract construction kernel interface.
// Implementations build exact rational B-spline curves and surfaces behind
// this interface, so the graph resolver does not depend on how a primitive
// is represented.
package kernel

import v3 "github.com/deadsy/sdfx/vec/v3"

// Kernel is the abstract construction kernel interface.
// Surface constructors that take a Shape require it to be a curve.
type Kernel interface {
	// Curves
	Polyline(points []v3.Vec) (Shape, error)
	EllipseArc(center, xaxis, yaxis v3.Vec, xradius, yradius, start, end float64) (Shape, error)
	Bezier(points []v3.Vec, weights []float64) (Shape, error)

	// Surfaces
	Extrude(profile Shape, axis v3.Vec, length float64) (Shape, error)
	Sweep(profile, rail Shape) (Shape, error)
	Revolve(profile Shape, center, axis v3.Vec, angle float64) (Shape, error)
	Cylinder(base, axis, xaxis v3.Vec, height, radius float64) (Shape, error)
	Sphere(center, axis, xaxis v3.Vec, radius float64) (Shape, error)
	Cone(base, axis, xaxis v3.Vec, height, radius float64) (Shape, error)
	Patch(corners [4]v3.Vec, degree int) (Shape, error)

	// Transforms
	Translate(s Shape, x, y, z float64) Shape
	Rotate(s Shape, x, y, z float64) Shape // Euler angles in degrees
}

// Package primitive constructs exact rational B-spline primitives: arcs and
// ellipses, polylines, extrusions, translational sweeps and revolutions.
//
// Each constructor validates its geometric input before allocating and
// either returns a complete record that passes Validate or a *nurbs.Error.
// Constructors are pure; a Builder only carries the tolerance and is safe
// for concurrent use.
package primitive

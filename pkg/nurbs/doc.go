// Package nurbs defines the rational B-spline records produced by the
// primitive constructors: homogeneous control points, knot vectors, curve
// and surface data, and the rational evaluation used to sample them.
//
// A CurveData or SurfaceData is a complete, self-describing NURBS: its
// parameter domain is given by the first and last knots. Records are
// treated as immutable once built.
package nurbs

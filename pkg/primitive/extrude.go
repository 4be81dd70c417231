package primitive

import (
	"github.com/chazu/nurbs/pkg/nurbs"
	"github.com/chazu/nurbs/pkg/vecmath"
)

// ExtrudedSurface translates profile along length·axis. The U direction is
// a single quadratic Bézier span whose rows are the profile itself, the
// profile moved by half the translation, and the profile moved by all of
// it. Each column keeps the profile weight in all three rows, so the
// surface is linear in U: at parameter u it is the profile translated by
// u·length·axis. The axis is used as given.
func (b *Builder) ExtrudedSurface(axis vecmath.Point, length float64, profile *nurbs.CurveData) (*nurbs.SurfaceData, error) {
	const op = "extrude"

	if err := b.checkCurve(op, "profile", profile); err != nil {
		return nil, err
	}
	if err := checkPoints(op, axis); err != nil {
		return nil, err
	}
	if vecmath.Norm(axis) <= b.tol() {
		return nil, nurbs.InvalidArgument(op, "zero-length axis")
	}
	if !isFinite(length) {
		return nil, nurbs.InvalidArgument(op, "non-finite length %v", length)
	}

	translation := vecmath.Scale(axis, length)
	half := vecmath.Scale(translation, 0.5)

	grid := make([][]nurbs.HomoPoint, 3)
	for i := range grid {
		grid[i] = make([]nurbs.HomoPoint, len(profile.ControlPoints))
	}
	for j, hp := range profile.ControlPoints {
		p := hp.Dehomogenize()
		grid[0][j] = hp
		grid[1][j] = nurbs.Homogenize(p.Add(half), hp.W)
		grid[2][j] = nurbs.Homogenize(p.Add(translation), hp.W)
	}

	return &nurbs.SurfaceData{
		DegreeU:       2,
		DegreeV:       profile.Degree,
		KnotsU:        nurbs.KnotVector{0, 0, 0, 1, 1, 1},
		KnotsV:        profile.Knots.Clone(),
		ControlPoints: grid,
	}, nil
}

// CylindricalSurface builds the side of a cylinder: the circle of radius
// about base in the plane spanned by xaxis and axis×xaxis, extruded by
// height along axis.
func (b *Builder) CylindricalSurface(axis, xaxis, base vecmath.Point, height, radius float64) (*nurbs.SurfaceData, error) {
	const op = "cylinder"

	if err := checkPoints(op, axis, xaxis, base); err != nil {
		return nil, err
	}
	yaxis := vecmath.Cross(axis, xaxis)
	circle, err := b.Circle(base, xaxis, yaxis, radius)
	if err != nil {
		return nil, err
	}
	return b.ExtrudedSurface(axis, height, circle)
}

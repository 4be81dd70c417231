package primitive

import (
	"math"

	"github.com/chazu/nurbs/pkg/nurbs"
	"github.com/chazu/nurbs/pkg/vecmath"
)

// RevolvedSurface rotates profile by theta radians about the axis through
// center. Every profile control point traces an exact circular arc built
// like Arc, so the U direction uses the same segment split and knots. The
// profile supplies the V degree and knots.
func (b *Builder) RevolvedSurface(profile *nurbs.CurveData, center, axis vecmath.Point, theta float64) (*nurbs.SurfaceData, error) {
	const op = "revolve"

	if err := b.checkCurve(op, "profile", profile); err != nil {
		return nil, err
	}
	if err := checkPoints(op, center, axis); err != nil {
		return nil, err
	}
	axisN, err := vecmath.Normalize(axis, b.tol())
	if err != nil {
		return nil, nurbs.InvalidArgument(op, "axis %v: %v", axis, err)
	}
	if !isFinite(theta) || theta <= b.tol() || theta > 2*math.Pi+b.tol() {
		return nil, nurbs.InvalidArgument(op, "angle %v must be in (0, 2π]", theta)
	}

	n := arcSegmentCount(theta)
	wm := math.Cos(theta / float64(n) / 2)
	rows := 2*n + 1

	grid := make([][]nurbs.HomoPoint, rows)
	for i := range grid {
		grid[i] = make([]nurbs.HomoPoint, len(profile.ControlPoints))
	}

	for j, hp := range profile.ControlPoints {
		p := hp.Dehomogenize()
		// o is the foot of p on the axis; x points from the axis to p.
		o := center.Add(axisN.MulScalar(p.Sub(center).Dot(axisN)))
		x := p.Sub(o)
		r := x.Length()

		if r <= b.tol() {
			for i := range rows {
				w := 1.0
				if i%2 == 1 {
					w = wm
				}
				grid[i][j] = nurbs.Homogenize(o, w*hp.W)
			}
			continue
		}

		x = x.MulScalar(1 / r)
		frame := arcFrame{center: o, x: x, y: axisN.Cross(x), xradius: r, yradius: r}
		points, weights, err := b.controlNet(op, frame, 0, theta, n)
		if err != nil {
			return nil, err
		}
		for i := range rows {
			grid[i][j] = nurbs.Homogenize(points[i], weights[i]*hp.W)
		}
	}

	return &nurbs.SurfaceData{
		DegreeU:       2,
		DegreeV:       profile.Degree,
		KnotsU:        arcKnots(n),
		KnotsV:        profile.Knots.Clone(),
		ControlPoints: grid,
	}, nil
}

// SphericalSurface builds a sphere by revolving a half circle from -axis to
// axis, bulging toward xaxis, a full turn about axis.
func (b *Builder) SphericalSurface(center, axis, xaxis vecmath.Point, radius float64) (*nurbs.SurfaceData, error) {
	const op = "sphere"

	if err := checkPoints(op, center, axis, xaxis); err != nil {
		return nil, err
	}
	meridian, err := b.Arc(center, axis.MulScalar(-1), xaxis, radius, 0, math.Pi)
	if err != nil {
		return nil, err
	}
	return b.RevolvedSurface(meridian, center, axis, 2*math.Pi)
}

// ConicalSurface builds the side of a cone with its base circle of radius
// about base and its apex height along axis.
func (b *Builder) ConicalSurface(axis, xaxis, base vecmath.Point, height, radius float64) (*nurbs.SurfaceData, error) {
	const op = "cone"

	if err := checkPoints(op, axis, xaxis, base); err != nil {
		return nil, err
	}
	if !isFinite(height, radius) || height <= 0 || radius <= 0 {
		return nil, nurbs.InvalidArgument(op, "height %v and radius %v must be positive", height, radius)
	}
	axisN, err := vecmath.Normalize(axis, b.tol())
	if err != nil {
		return nil, nurbs.InvalidArgument(op, "axis %v: %v", axis, err)
	}
	xaxisN, err := vecmath.Normalize(xaxis, b.tol())
	if err != nil {
		return nil, nurbs.InvalidArgument(op, "x axis %v: %v", xaxis, err)
	}
	apex := base.Add(axisN.MulScalar(height))
	rim := base.Add(xaxisN.MulScalar(radius))
	generatrix, err := b.Line(apex, rim)
	if err != nil {
		return nil, err
	}
	return b.RevolvedSurface(generatrix, base, axisN, 2*math.Pi)
}

package primitive

import (
	"errors"
	"math"

	"github.com/chazu/nurbs/pkg/intersect"
	"github.com/chazu/nurbs/pkg/nurbs"
	"github.com/chazu/nurbs/pkg/vecmath"
)

// arcFrame is an ellipse in 3D: a center, two orthonormal axes and the
// radius along each.
type arcFrame struct {
	center, x, y     vecmath.Point
	xradius, yradius float64
}

func (f arcFrame) point(angle float64) vecmath.Point {
	sin, cos := math.Sincos(angle)
	return f.center.
		Add(f.x.MulScalar(f.xradius * cos)).
		Add(f.y.MulScalar(f.yradius * sin))
}

// tangent is the derivative of point with respect to angle.
func (f arcFrame) tangent(angle float64) vecmath.Point {
	sin, cos := math.Sincos(angle)
	return f.y.MulScalar(f.yradius * cos).Sub(f.x.MulScalar(f.xradius * sin))
}

// controlNet builds the 2n+1 control points and weights of an arc from
// start sweeping theta radians, split into n equal rational quadratic
// segments. Neighbouring segments share their end point.
func (b *Builder) controlNet(op string, f arcFrame, start, theta float64, n int) ([]vecmath.Point, []float64, error) {
	dtheta := theta / float64(n)
	w1 := math.Cos(dtheta / 2)

	points := vecmath.Zeros(2*n + 1)
	weights := make([]float64, 2*n+1)

	angle := start
	p0, t0 := f.point(angle), f.tangent(angle)
	points[0], weights[0] = p0, 1

	for i := 1; i <= n; i++ {
		angle = start + float64(i)*dtheta
		p2, t2 := f.point(angle), f.tangent(angle)

		t0n, err := vecmath.Normalize(t0, b.tol())
		if err != nil {
			return nil, nil, nurbs.InvalidArgument(op, "segment %d: start tangent: %v", i, err)
		}
		t2n, err := vecmath.Normalize(t2, b.tol())
		if err != nil {
			return nil, nil, nurbs.InvalidArgument(op, "segment %d: end tangent: %v", i, err)
		}
		inter, err := intersect.Rays(p0, t0n, p2, t2n, b.tol())
		if err != nil {
			if errors.Is(err, intersect.ErrParallel) || errors.Is(err, intersect.ErrDegenerate) {
				return nil, nil, nurbs.InvalidArgument(op, "segment %d: %v", i, err)
			}
			return nil, nil, err
		}
		p1 := p0.Add(t0n.MulScalar(inter.U0))
		if !vecmath.IsFinite(p1) || !vecmath.IsFinite(p2) {
			return nil, nil, nurbs.NumericDegeneracy(op, "segment %d: non-finite control point", i)
		}

		points[2*i-1], weights[2*i-1] = p1, w1
		points[2*i], weights[2*i] = p2, 1

		p0, t0 = p2, t2
	}
	return points, weights, nil
}

// checkAxes normalizes a pair of in-plane axes and checks that they are
// perpendicular. Perpendicularity is tested against the square root of
// the tolerance since it compares unit vectors.
func (b *Builder) checkAxes(op string, xaxis, yaxis vecmath.Point) (vecmath.Point, vecmath.Point, error) {
	x, err := vecmath.Normalize(xaxis, b.tol())
	if err != nil {
		return x, x, nurbs.InvalidArgument(op, "x axis %v: %v", xaxis, err)
	}
	y, err := vecmath.Normalize(yaxis, b.tol())
	if err != nil {
		return x, y, nurbs.InvalidArgument(op, "y axis %v: %v", yaxis, err)
	}
	if d := math.Abs(x.Dot(y)); d > math.Sqrt(b.tol()) {
		return x, y, nurbs.InvalidArgument(op, "axes %v and %v are not perpendicular (cos = %g)", xaxis, yaxis, d)
	}
	return x, y, nil
}

// EllipseArc builds the exact rational quadratic representation of the
// elliptical arc center + xradius·cos(θ)·xaxis + yradius·sin(θ)·yaxis for
// θ from startAngle to endAngle. An endAngle below startAngle selects the
// full ellipse starting at startAngle. The axes are normalized and must be
// perpendicular; the arc is split into one to four segments of at most a
// quarter turn each.
func (b *Builder) EllipseArc(center, xaxis, yaxis vecmath.Point, xradius, yradius, startAngle, endAngle float64) (*nurbs.CurveData, error) {
	const op = "ellipse-arc"

	if err := checkPoints(op, center, xaxis, yaxis); err != nil {
		return nil, err
	}
	if !isFinite(xradius, yradius, startAngle, endAngle) {
		return nil, nurbs.InvalidArgument(op, "non-finite radius or angle")
	}
	if xradius <= 0 || yradius <= 0 {
		return nil, nurbs.InvalidArgument(op, "radii (%v, %v) must be positive", xradius, yradius)
	}
	if startAngle < 0 {
		return nil, nurbs.InvalidArgument(op, "start angle %v is negative", startAngle)
	}
	x, y, err := b.checkAxes(op, xaxis, yaxis)
	if err != nil {
		return nil, err
	}

	if endAngle < startAngle {
		endAngle = startAngle + 2*math.Pi
	}
	theta := endAngle - startAngle
	if theta <= b.tol() {
		return nil, nurbs.InvalidArgument(op, "empty sweep from %v to %v", startAngle, endAngle)
	}
	if theta > 2*math.Pi+b.tol() {
		return nil, nurbs.InvalidArgument(op, "sweep %v exceeds a full turn", theta)
	}

	n := arcSegmentCount(theta)
	frame := arcFrame{center: center, x: x, y: y, xradius: xradius, yradius: yradius}
	points, weights, err := b.controlNet(op, frame, startAngle, theta, n)
	if err != nil {
		return nil, err
	}
	return nurbs.NewCurve(2, arcKnots(n), points, weights), nil
}

// Ellipse builds the full ellipse with the given axes and radii.
func (b *Builder) Ellipse(center, xaxis, yaxis vecmath.Point, xradius, yradius float64) (*nurbs.CurveData, error) {
	return b.EllipseArc(center, xaxis, yaxis, xradius, yradius, 0, 2*math.Pi)
}

// Arc builds a circular arc; it is EllipseArc with equal radii.
func (b *Builder) Arc(center, xaxis, yaxis vecmath.Point, radius, startAngle, endAngle float64) (*nurbs.CurveData, error) {
	return b.EllipseArc(center, xaxis, yaxis, radius, radius, startAngle, endAngle)
}

// Circle builds the full circle of the given radius.
func (b *Builder) Circle(center, xaxis, yaxis vecmath.Point, radius float64) (*nurbs.CurveData, error) {
	return b.Arc(center, xaxis, yaxis, radius, 0, 2*math.Pi)
}

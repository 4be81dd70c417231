package primitive

import (
	"github.com/chazu/nurbs/pkg/nurbs"
	"github.com/chazu/nurbs/pkg/vecmath"
)

// Sweep1Surface translates profile along rail without rotating it. Row i
// of the control grid is the profile moved by rail(u_i) - rail(start),
// where u_i steps uniformly through the rail's domain once per rail
// control point, first sample at the start and last at the end. Row i's
// weights are the profile weights times the weight of rail control point
// i. The surface takes its U degree and knots from the rail and its V
// degree and knots from the profile.
//
// The rail's control polygon stands in for its shape: row i pairs the
// curve sample at u_i with control point i's weight, which is exact for
// straight uniform rails and distorts rails whose polygon is a poor proxy.
func (b *Builder) Sweep1Surface(profile, rail *nurbs.CurveData) (*nurbs.SurfaceData, error) {
	const op = "sweep"

	if err := b.checkCurve(op, "profile", profile); err != nil {
		return nil, err
	}
	if err := b.checkCurve(op, "rail", rail); err != nil {
		return nil, err
	}
	n := len(rail.ControlPoints)
	if n < 2 {
		return nil, nurbs.InvalidArgument(op, "rail needs at least 2 control points, got %d", n)
	}

	start, end := rail.Domain()
	railStart := rail.Point(start)
	span := 1 / float64(n-1)
	railWeights := rail.Weights()
	profilePoints := profile.Points()

	grid := make([][]nurbs.HomoPoint, n)
	for i := range grid {
		u := start + float64(i)*span*(end-start)
		offset := rail.Point(u).Sub(railStart)
		if !vecmath.IsFinite(offset) {
			return nil, nurbs.NumericDegeneracy(op, "rail sample %d at u=%v is not finite", i, u)
		}

		row := make([]nurbs.HomoPoint, len(profilePoints))
		for j, p := range profilePoints {
			row[j] = nurbs.Homogenize(p.Add(offset), profile.ControlPoints[j].W*railWeights[i])
		}
		grid[i] = row
	}

	return &nurbs.SurfaceData{
		DegreeU:       rail.Degree,
		DegreeV:       profile.Degree,
		KnotsU:        rail.Knots.Clone(),
		KnotsV:        profile.Knots.Clone(),
		ControlPoints: grid,
	}, nil
}

package nurbs

import (
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// BasisFunctions returns the degree+1 non-vanishing B-spline basis
// functions at u for the given knot span (Piegl & Tiller A2.2).
func BasisFunctions(span int, u float64, degree int, knots KnotVector) []float64 {
	n := make([]float64, degree+1)
	left := make([]float64, degree+1)
	right := make([]float64, degree+1)
	n[0] = 1

	for j := 1; j <= degree; j++ {
		left[j] = u - knots[span+1-j]
		right[j] = knots[span+j] - u
		saved := 0.0
		for r := 0; r < j; r++ {
			temp := n[r] / (right[r+1] + left[j-r])
			n[r] = saved + right[r+1]*temp
			saved = left[j-r] * temp
		}
		n[j] = saved
	}
	return n
}

func clampParam(kv KnotVector, u float64) float64 {
	start, end := kv.Domain()
	return min(max(u, start), end)
}

// HomogeneousPoint evaluates the curve in homogeneous space at u. u is
// clamped to the curve's domain.
func (c *CurveData) HomogeneousPoint(u float64) HomoPoint {
	u = clampParam(c.Knots, u)
	span := c.Knots.Span(c.Degree, u)
	basis := BasisFunctions(span, u, c.Degree, c.Knots)

	var hp HomoPoint
	for j, b := range basis {
		hp = hp.Add(c.ControlPoints[span-c.Degree+j].Scale(b))
	}
	return hp
}

// Point evaluates the rational curve at u.
func (c *CurveData) Point(u float64) v3.Vec {
	return c.HomogeneousPoint(u).Dehomogenize()
}

// HomogeneousPoint evaluates the surface in homogeneous space at (u, v).
// Both parameters are clamped to their domains.
func (s *SurfaceData) HomogeneousPoint(u, v float64) HomoPoint {
	u = clampParam(s.KnotsU, u)
	v = clampParam(s.KnotsV, v)
	spanU := s.KnotsU.Span(s.DegreeU, u)
	spanV := s.KnotsV.Span(s.DegreeV, v)
	basisU := BasisFunctions(spanU, u, s.DegreeU, s.KnotsU)
	basisV := BasisFunctions(spanV, v, s.DegreeV, s.KnotsV)

	var hp HomoPoint
	for k, bu := range basisU {
		row := s.ControlPoints[spanU-s.DegreeU+k]
		for l, bv := range basisV {
			hp = hp.Add(row[spanV-s.DegreeV+l].Scale(bu * bv))
		}
	}
	return hp
}

// Point evaluates the rational surface at (u, v).
func (s *SurfaceData) Point(u, v float64) v3.Vec {
	return s.HomogeneousPoint(u, v).Dehomogenize()
}

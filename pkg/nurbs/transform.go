package nurbs

import "github.com/deadsy/sdfx/sdf"

// Transform returns a copy of c with m applied to every control point.
// Weights are kept, which is exact for affine m.
func (c *CurveData) Transform(m sdf.M44) *CurveData {
	out := c.Clone()
	for i, hp := range out.ControlPoints {
		out.ControlPoints[i] = transformHomoPoint(m, hp)
	}
	return out
}

// Transform returns a copy of s with m applied to every control point.
func (s *SurfaceData) Transform(m sdf.M44) *SurfaceData {
	out := s.Clone()
	for _, row := range out.ControlPoints {
		for j, hp := range row {
			row[j] = transformHomoPoint(m, hp)
		}
	}
	return out
}

func transformHomoPoint(m sdf.M44, hp HomoPoint) HomoPoint {
	return Homogenize(m.MulPosition(hp.Dehomogenize()), hp.W)
}

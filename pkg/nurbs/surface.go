package nurbs

import v3 "github.com/deadsy/sdfx/vec/v3"

// SurfaceData is a tensor-product rational B-spline surface. ControlPoints
// is indexed [u][v]: one row per U control point.
// Invariants: len(KnotsU) == rows + DegreeU + 1 and
// len(KnotsV) == cols + DegreeV + 1.
type SurfaceData struct {
	DegreeU       int           `json:"degreeU"`
	DegreeV       int           `json:"degreeV"`
	KnotsU        KnotVector    `json:"knotsU"`
	KnotsV        KnotVector    `json:"knotsV"`
	ControlPoints [][]HomoPoint `json:"controlPoints"`
}

// NewSurface builds a SurfaceData from separate point and weight grids. The
// inputs are copied.
func NewSurface(degreeU, degreeV int, knotsU, knotsV []float64, points [][]v3.Vec, weights [][]float64) *SurfaceData {
	return &SurfaceData{
		DegreeU:       degreeU,
		DegreeV:       degreeV,
		KnotsU:        KnotVector(knotsU).Clone(),
		KnotsV:        KnotVector(knotsV).Clone(),
		ControlPoints: Homogenize2d(points, weights),
	}
}

// Rows returns the number of control points in the U direction.
func (s *SurfaceData) Rows() int { return len(s.ControlPoints) }

// Cols returns the number of control points in the V direction.
func (s *SurfaceData) Cols() int {
	if len(s.ControlPoints) == 0 {
		return 0
	}
	return len(s.ControlPoints[0])
}

// Points returns the Cartesian control grid.
func (s *SurfaceData) Points() [][]v3.Vec {
	return Dehomogenize2d(s.ControlPoints)
}

// Weights returns the weight grid.
func (s *SurfaceData) Weights() [][]float64 {
	return Weights2d(s.ControlPoints)
}

// Clone returns a deep copy of s.
func (s *SurfaceData) Clone() *SurfaceData {
	grid := make([][]HomoPoint, len(s.ControlPoints))
	for i, row := range s.ControlPoints {
		grid[i] = append([]HomoPoint(nil), row...)
	}
	return &SurfaceData{
		DegreeU:       s.DegreeU,
		DegreeV:       s.DegreeV,
		KnotsU:        s.KnotsU.Clone(),
		KnotsV:        s.KnotsV.Clone(),
		ControlPoints: grid,
	}
}

// Validate checks the structural invariants of both directions and the
// rectangular shape of the grid.
func (s *SurfaceData) Validate(opts Options) error {
	const op = "validate-surface"
	if s == nil {
		return InvalidArgument(op, "nil surface")
	}
	if s.DegreeU < 0 || s.DegreeV < 0 {
		return InvalidArgument(op, "negative degree (%d, %d)", s.DegreeU, s.DegreeV)
	}
	rows, cols := s.Rows(), s.Cols()
	if rows < s.DegreeU+1 || cols < s.DegreeV+1 {
		return InvalidArgument(op, "%dx%d grid cannot carry degrees (%d, %d)", rows, cols, s.DegreeU, s.DegreeV)
	}
	for i, row := range s.ControlPoints {
		if len(row) != cols {
			return InvalidArgument(op, "row %d has %d columns, want %d", i, len(row), cols)
		}
	}
	if want := rows + s.DegreeU + 1; len(s.KnotsU) != want {
		return InvalidArgument(op, "have %d U knots, want %d", len(s.KnotsU), want)
	}
	if want := cols + s.DegreeV + 1; len(s.KnotsV) != want {
		return InvalidArgument(op, "have %d V knots, want %d", len(s.KnotsV), want)
	}
	if err := validateKnots(op, s.KnotsU, s.DegreeU, opts.Tol()); err != nil {
		return err
	}
	if err := validateKnots(op, s.KnotsV, s.DegreeV, opts.Tol()); err != nil {
		return err
	}
	for _, row := range s.ControlPoints {
		if err := validateHomoPoints(op, row); err != nil {
			return err
		}
	}
	return nil
}

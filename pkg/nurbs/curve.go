package nurbs

import (
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// CurveData is a rational B-spline curve.
// Invariant: len(Knots) == len(ControlPoints) + Degree + 1.
type CurveData struct {
	Degree        int         `json:"degree"`
	Knots         KnotVector  `json:"knots"`
	ControlPoints []HomoPoint `json:"controlPoints"`
}

// NewCurve builds a CurveData from separate point and weight slices. The
// inputs are copied.
func NewCurve(degree int, knots []float64, points []v3.Vec, weights []float64) *CurveData {
	return &CurveData{
		Degree:        degree,
		Knots:         KnotVector(knots).Clone(),
		ControlPoints: Homogenize1d(points, weights),
	}
}

// Points returns the Cartesian control points.
func (c *CurveData) Points() []v3.Vec {
	return Dehomogenize1d(c.ControlPoints)
}

// Weights returns the control point weights.
func (c *CurveData) Weights() []float64 {
	return Weights1d(c.ControlPoints)
}

// Domain returns the parameter interval of the curve.
func (c *CurveData) Domain() (start, end float64) {
	return c.Knots.Domain()
}

// Clone returns a deep copy of c.
func (c *CurveData) Clone() *CurveData {
	return &CurveData{
		Degree:        c.Degree,
		Knots:         c.Knots.Clone(),
		ControlPoints: append([]HomoPoint(nil), c.ControlPoints...),
	}
}

// Validate checks the structural invariants evaluators rely on: knot count,
// non-decreasing clamped knots, finite coordinates and positive weights.
func (c *CurveData) Validate(opts Options) error {
	const op = "validate-curve"
	if c == nil {
		return InvalidArgument(op, "nil curve")
	}
	if c.Degree < 0 {
		return InvalidArgument(op, "negative degree %d", c.Degree)
	}
	if len(c.ControlPoints) < c.Degree+1 {
		return InvalidArgument(op, "%d control points cannot carry degree %d", len(c.ControlPoints), c.Degree)
	}
	if want := len(c.ControlPoints) + c.Degree + 1; len(c.Knots) != want {
		return InvalidArgument(op, "have %d knots, want %d", len(c.Knots), want)
	}
	if err := validateKnots(op, c.Knots, c.Degree, opts.Tol()); err != nil {
		return err
	}
	return validateHomoPoints(op, c.ControlPoints)
}

func validateKnots(op string, kv KnotVector, degree int, tol float64) error {
	for _, k := range kv {
		if math.IsNaN(k) || math.IsInf(k, 0) {
			return NumericDegeneracy(op, "non-finite knot %v", k)
		}
	}
	if !kv.IsNonDecreasing(tol) {
		return InvalidArgument(op, "knots are not non-decreasing")
	}
	if !kv.IsClamped(degree, tol) {
		return InvalidArgument(op, "knots are not clamped for degree %d", degree)
	}
	if start, end := kv.Domain(); end-start <= tol {
		return InvalidArgument(op, "empty parameter domain [%v, %v]", start, end)
	}
	return nil
}

func validateHomoPoints(op string, hps []HomoPoint) error {
	for i, hp := range hps {
		if !hp.IsFinite() {
			return NumericDegeneracy(op, "control point %d is not finite", i)
		}
		if hp.W <= 0 {
			return InvalidArgument(op, "control point %d has non-positive weight %v", i, hp.W)
		}
	}
	return nil
}

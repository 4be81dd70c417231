package nurbs

import (
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// HomoPoint is a control point in homogeneous form: the position scaled by
// its weight, with the weight carried alongside. A point p with weight w is
// stored as (p·w, w).
type HomoPoint struct {
	Vec v3.Vec  `json:"vec"` // position premultiplied by W
	W   float64 `json:"w"`
}

// Homogenize returns the homogeneous form of p with weight w.
func Homogenize(p v3.Vec, w float64) HomoPoint {
	return HomoPoint{Vec: p.MulScalar(w), W: w}
}

// Dehomogenize returns the Cartesian position of hp.
func (hp HomoPoint) Dehomogenize() v3.Vec {
	return hp.Vec.MulScalar(1 / hp.W)
}

// Add returns the component-wise sum of hp and o, weights included.
func (hp HomoPoint) Add(o HomoPoint) HomoPoint {
	return HomoPoint{Vec: hp.Vec.Add(o.Vec), W: hp.W + o.W}
}

// Scale returns hp with every component, weight included, multiplied by k.
func (hp HomoPoint) Scale(k float64) HomoPoint {
	return HomoPoint{Vec: hp.Vec.MulScalar(k), W: hp.W * k}
}

// IsFinite reports whether all four components are finite.
func (hp HomoPoint) IsFinite() bool {
	for _, f := range [4]float64{hp.Vec.X, hp.Vec.Y, hp.Vec.Z, hp.W} {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}

// Homogenize1d pairs points with weights. The slices must have equal length.
func Homogenize1d(points []v3.Vec, weights []float64) []HomoPoint {
	hps := make([]HomoPoint, len(points))
	for i, p := range points {
		hps[i] = Homogenize(p, weights[i])
	}
	return hps
}

// Homogenize2d is Homogenize1d applied row by row.
func Homogenize2d(points [][]v3.Vec, weights [][]float64) [][]HomoPoint {
	hps := make([][]HomoPoint, len(points))
	for i := range points {
		hps[i] = Homogenize1d(points[i], weights[i])
	}
	return hps
}

// Dehomogenize1d returns the Cartesian positions of hps.
func Dehomogenize1d(hps []HomoPoint) []v3.Vec {
	points := make([]v3.Vec, len(hps))
	for i, hp := range hps {
		points[i] = hp.Dehomogenize()
	}
	return points
}

// Dehomogenize2d is Dehomogenize1d applied row by row.
func Dehomogenize2d(hps [][]HomoPoint) [][]v3.Vec {
	points := make([][]v3.Vec, len(hps))
	for i := range hps {
		points[i] = Dehomogenize1d(hps[i])
	}
	return points
}

// Weights1d returns the weights of hps.
func Weights1d(hps []HomoPoint) []float64 {
	weights := make([]float64, len(hps))
	for i, hp := range hps {
		weights[i] = hp.W
	}
	return weights
}

// Weights2d is Weights1d applied row by row.
func Weights2d(hps [][]HomoPoint) [][]float64 {
	weights := make([][]float64, len(hps))
	for i := range hps {
		weights[i] = Weights1d(hps[i])
	}
	return weights
}

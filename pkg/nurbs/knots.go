package nurbs

import "math"

// KnotVector is a non-decreasing sequence of parameter values.
type KnotVector []float64

// Clone returns a copy of kv.
func (kv KnotVector) Clone() KnotVector {
	return append(KnotVector(nil), kv...)
}

// Domain returns the first and last knot.
func (kv KnotVector) Domain() (start, end float64) {
	return kv[0], kv[len(kv)-1]
}

// IsNonDecreasing reports whether no knot is smaller than its predecessor
// by more than tol.
func (kv KnotVector) IsNonDecreasing(tol float64) bool {
	for i := 1; i < len(kv); i++ {
		if kv[i] < kv[i-1]-tol {
			return false
		}
	}
	return true
}

// IsClamped reports whether the first and last values each repeat at least
// degree+1 times.
func (kv KnotVector) IsClamped(degree int, tol float64) bool {
	if len(kv) < 2*(degree+1) {
		return false
	}
	first, last := kv.Domain()
	for i := 0; i <= degree; i++ {
		if math.Abs(kv[i]-first) > tol || math.Abs(kv[len(kv)-1-i]-last) > tol {
			return false
		}
	}
	return true
}

// Span returns the index of the knot span containing u for a B-spline of
// the given degree (Piegl & Tiller A2.1). u is clamped to the domain.
func (kv KnotVector) Span(degree int, u float64) int {
	n := len(kv) - degree - 2
	if u >= kv[n+1] {
		return n
	}
	if u <= kv[degree] {
		return degree
	}

	low, high := degree, n+1
	mid := (low + high) / 2
	for u < kv[mid] || u >= kv[mid+1] {
		if u < kv[mid] {
			high = mid
		} else {
			low = mid
		}
		mid = (low + high) / 2
	}
	return mid
}

// KnotMultiplicity is a distinct knot value and how often it repeats.
type KnotMultiplicity struct {
	Knot float64
	Mult int
}

// Multiplicities groups equal (within tol) consecutive knots.
func (kv KnotVector) Multiplicities(tol float64) []KnotMultiplicity {
	if len(kv) == 0 {
		return nil
	}
	mults := []KnotMultiplicity{{Knot: kv[0]}}
	cur := 0
	for _, k := range kv {
		if math.Abs(k-mults[cur].Knot) > tol {
			mults = append(mults, KnotMultiplicity{Knot: k})
			cur++
		}
		mults[cur].Mult++
	}
	return mults
}

// Package intersect locates the closest approach of two rays. The arc and
// revolution constructors use it to place the middle control point of each
// rational quadratic segment.
package intersect

import (
	"errors"
	"math"

	"github.com/chazu/nurbs/pkg/vecmath"
)

var (
	// ErrParallel is returned when the two ray directions are parallel
	// within the tolerance, so no unique closest approach exists.
	ErrParallel = errors.New("intersect: rays are parallel")
	// ErrDegenerate is returned when a ray direction has zero length.
	ErrDegenerate = errors.New("intersect: zero-length ray direction")
)

// RayIntersection is the closest approach of two rays a0 + U0·a1 and
// b0 + U1·b1. For coplanar rays Point0 and Point1 coincide.
type RayIntersection struct {
	U0, U1         float64
	Point0, Point1 vecmath.Point
}

// Rays finds the parameters at which the rays a0 + t·a1 and b0 + w·b1 come
// closest. The directions need not be unit length.
func Rays(a0, a1, b0, b1 vecmath.Point, tol float64) (RayIntersection, error) {
	daa := a1.Dot(a1)
	dbb := b1.Dot(b1)
	if daa <= tol*tol || dbb <= tol*tol {
		return RayIntersection{}, ErrDegenerate
	}

	dab := a1.Dot(b1)
	dab0 := a1.Dot(b0)
	daa0 := a1.Dot(a0)
	dbb0 := b1.Dot(b0)
	dba0 := b1.Dot(a0)

	div := daa*dbb - dab*dab
	// Scale-free test: div is |a1|²|b1|²·sin²θ.
	if math.Abs(div) <= tol*daa*dbb {
		return RayIntersection{}, ErrParallel
	}

	num := dab*(dab0-daa0) - daa*(dbb0-dba0)
	w := num / div
	t := (dab0 - daa0 + w*dab) / daa

	return RayIntersection{
		U0:     t,
		U1:     w,
		Point0: a0.Add(a1.MulScalar(t)),
		Point1: b0.Add(b1.MulScalar(w)),
	}, nil
}

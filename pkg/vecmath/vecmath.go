// Package vecmath provides the point and vector arithmetic used by the
// constructors. Points are sdfx v3.Vec values; this package adds the
// tolerance-checked operations sdfx leaves to the caller.
package vecmath

import (
	"errors"
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// ErrZeroLength is returned by Normalize for vectors whose length does not
// exceed the tolerance.
var ErrZeroLength = errors.New("vecmath: zero-length vector")

// Point is a position or direction in 3D space.
type Point = v3.Vec

// Pt returns the point (x, y, z).
func Pt(x, y, z float64) Point {
	return Point{X: x, Y: y, Z: z}
}

// Add returns a+b.
func Add(a, b Point) Point { return a.Add(b) }

// Sub returns a-b.
func Sub(a, b Point) Point { return a.Sub(b) }

// Scale returns a scaled by k.
func Scale(a Point, k float64) Point { return a.MulScalar(k) }

// Dot returns the dot product of a and b.
func Dot(a, b Point) float64 { return a.Dot(b) }

// Cross returns the cross product of a and b.
func Cross(a, b Point) Point { return a.Cross(b) }

// Norm returns the Euclidean length of a.
func Norm(a Point) float64 { return a.Length() }

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Point) float64 { return b.Sub(a).Length() }

// Normalize returns a unit vector in the direction of a. Vectors no longer
// than tol fail with ErrZeroLength instead of producing NaN components.
func Normalize(a Point, tol float64) (Point, error) {
	n := a.Length()
	if n <= tol || !IsFinite(a) {
		return Point{}, ErrZeroLength
	}
	return a.MulScalar(1 / n), nil
}

// IsFinite reports whether every component of a is neither NaN nor infinite.
func IsFinite(a Point) bool {
	return isFinite(a.X) && isFinite(a.Y) && isFinite(a.Z)
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Zeros returns n zero points.
func Zeros(n int) []Point {
	return make([]Point, n)
}

// Zeros2 returns a rows×cols grid of zero points.
func Zeros2(rows, cols int) [][]Point {
	grid := make([][]Point, rows)
	for i := range grid {
		grid[i] = make([]Point, cols)
	}
	return grid
}

// Equal reports whether a and b are within tol of each other in every
// component.
func Equal(a, b Point, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol &&
		math.Abs(a.Y-b.Y) <= tol &&
		math.Abs(a.Z-b.Z) <= tol
}

// Lerp returns a + t·(b-a).
func Lerp(a, b Point, t float64) Point {
	return a.Add(b.Sub(a).MulScalar(t))
}

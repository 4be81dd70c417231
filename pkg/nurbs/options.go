package nurbs

// DefaultTolerance is the zero threshold used for lengths, norms and knot
// comparisons when no other tolerance is configured.
const DefaultTolerance = 1e-10

// Options configures construction and validation.
type Options struct {
	// Tolerance is the threshold below which lengths count as zero and
	// knot values count as equal. Non-positive values select
	// DefaultTolerance.
	Tolerance float64
}

// DefaultOptions returns Options with DefaultTolerance.
func DefaultOptions() Options {
	return Options{Tolerance: DefaultTolerance}
}

// Tol returns the effective tolerance.
func (o Options) Tol() float64 {
	if o.Tolerance <= 0 {
		return DefaultTolerance
	}
	return o.Tolerance
}

package nurbs

import (
	"errors"
	"fmt"
)

// Error kinds. Every *Error unwraps to exactly one of these.
var (
	// ErrInvalidArgument marks malformed or degenerate geometric input.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrNumericDegeneracy marks an intermediate result that is not finite.
	ErrNumericDegeneracy = errors.New("numeric degeneracy")
)

// Error describes a failed construction or validation.
type Error struct {
	Op   string // constructor or check that failed, e.g. "ellipse-arc"
	Kind error  // ErrInvalidArgument or ErrNumericDegeneracy
	Msg  string
}

func (e *Error) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("%v: %s", e.Kind, e.Msg)
	}
	return fmt.Sprintf("%s: %v: %s", e.Op, e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Kind }

// InvalidArgument returns an *Error of kind ErrInvalidArgument.
func InvalidArgument(op, format string, args ...any) error {
	return &Error{Op: op, Kind: ErrInvalidArgument, Msg: fmt.Sprintf(format, args...)}
}

// NumericDegeneracy returns an *Error of kind ErrNumericDegeneracy.
func NumericDegeneracy(op, format string, args ...any) error {
	return &Error{Op: op, Kind: ErrNumericDegeneracy, Msg: fmt.Sprintf(format, args...)}
}

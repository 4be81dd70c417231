package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chazu/nurbs/pkg/graph"
)

// EvalTimeout is the limit for a single evaluation when Engine.Timeout is
// not set.
const EvalTimeout = 5 * time.Second

var (
	// ErrTimeout is returned when a script runs past the engine's timeout.
	ErrTimeout = errors.New("evaluation timed out")
	// ErrSuperseded is returned for a result that arrives after a newer
	// evaluation has started.
	ErrSuperseded = errors.New("evaluation superseded by newer request")
)

// evalResult carries one evaluation outcome from the worker goroutine.
type evalResult struct {
	graph  *graph.DesignGraph
	errors []EvalError
	err    error
}

func (e *Engine) timeout() time.Duration {
	if e.Timeout > 0 {
		return e.Timeout
	}
	return EvalTimeout
}

// current reports whether gen is still the newest evaluation.
func (e *Engine) current(gen uint64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return gen == e.generation
}

// wait returns the outcome of evaluation gen from ch. When ctx ends first
// the worker is abandoned; it finishes in the background and its result
// is dropped with the channel.
func (e *Engine) wait(ctx context.Context, ch <-chan evalResult, gen uint64) (*graph.DesignGraph, []EvalError, error) {
	select {
	case res := <-ch:
		if !e.current(gen) {
			return nil, nil, ErrSuperseded
		}
		return res.graph, res.errors, res.err

	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, nil, fmt.Errorf("%w after %s", ErrTimeout, e.timeout())
		}
		return nil, nil, fmt.Errorf("evaluation cancelled: %w", ctx.Err())
	}
}

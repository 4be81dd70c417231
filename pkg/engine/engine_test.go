package engine

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/chazu/nurbs/pkg/graph"
)

func TestEvaluateEmptyString(t *testing.T) {
	eng := NewEngine()

	for _, src := range []string{"", "   \n\t  \n  "} {
		g, evalErrs, err := eng.Evaluate(src)
		if err != nil {
			t.Fatalf("unexpected fatal error: %v", err)
		}
		if len(evalErrs) > 0 {
			t.Fatalf("unexpected eval errors: %v", evalErrs)
		}
		if g == nil {
			t.Fatal("expected non-nil graph")
		}
		if g.NodeCount() != 0 {
			t.Errorf("expected empty graph, got %d nodes", g.NodeCount())
		}
	}
}

func TestEvaluatePlainLisp(t *testing.T) {
	eng := NewEngine()

	source := `
(def x 10)
(def y 20)
(+ x y)
`
	g, evalErrs, err := eng.Evaluate(source)
	if err != nil {
		t.Fatalf("unexpected fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("unexpected eval errors: %v", evalErrs)
	}
	if g == nil {
		t.Fatal("expected non-nil graph")
	}
	if g.NodeCount() != 0 {
		t.Errorf("expected empty graph, got %d nodes", g.NodeCount())
	}
}

func TestEvaluateSyntaxError(t *testing.T) {
	eng := NewEngine()

	// Unmatched paren is a parse error.
	g, evalErrs, err := eng.Evaluate("(circle :radius 1")
	if err != nil {
		t.Fatalf("expected non-fatal eval error, got fatal: %v", err)
	}
	if g != nil {
		t.Fatal("expected nil graph on syntax error")
	}
	if len(evalErrs) == 0 {
		t.Fatal("expected at least one eval error for syntax error")
	}
	if evalErrs[0].Message == "" {
		t.Error("eval error message should not be empty")
	}
}

func TestEvaluateUndefinedSymbol(t *testing.T) {
	eng := NewEngine()

	g, evalErrs, err := eng.Evaluate("(extrude undefined-profile :length 1)")
	if err != nil {
		t.Fatalf("expected non-fatal eval error, got fatal: %v", err)
	}
	if g != nil {
		t.Fatal("expected nil graph on eval error")
	}
	if len(evalErrs) == 0 {
		t.Fatal("expected at least one eval error for undefined symbol")
	}
}

func TestEvaluateSyntaxErrorHasLineInfo(t *testing.T) {
	eng := NewEngine()

	source := "(circle :radius 1)\n(circle :radius"
	_, evalErrs, err := eng.Evaluate(source)
	if err != nil {
		t.Fatalf("expected non-fatal eval error, got fatal: %v", err)
	}
	if len(evalErrs) == 0 {
		t.Fatal("expected at least one eval error")
	}

	// Line info depends on the zygomys error format.
	e := evalErrs[0]
	if e.Message == "" {
		t.Error("eval error message should not be empty")
	}
	t.Logf("line=%d, message=%q", e.Line, e.Message)
}

func TestEvalErrorImplementsError(t *testing.T) {
	e := EvalError{Line: 5, Message: "something went wrong"}
	s := e.Error()
	if !strings.Contains(s, "line 5") {
		t.Errorf("Error() should contain line info, got: %s", s)
	}
	if !strings.Contains(s, "something went wrong") {
		t.Errorf("Error() should contain message, got: %s", s)
	}

	e2 := EvalError{Message: "no location"}
	if s2 := e2.Error(); strings.Contains(s2, "line") {
		t.Errorf("Error() with no line should not contain 'line', got: %s", s2)
	}
}

func TestEvaluateDeterministic(t *testing.T) {
	eng := NewEngine()
	src := `(extrude (circle :radius 2) :length 5)`

	first, _, err := eng.Evaluate(src)
	if err != nil {
		t.Fatal(err)
	}
	for i := range 4 {
		g, evalErrs, err := eng.Evaluate(src)
		if err != nil {
			t.Fatalf("iteration %d: unexpected fatal error: %v", i, err)
		}
		if len(evalErrs) > 0 {
			t.Fatalf("iteration %d: unexpected eval errors: %v", i, evalErrs)
		}
		if len(g.Roots) != 1 || g.Roots[0] != first.Roots[0] {
			t.Errorf("iteration %d: roots %v, want %v", i, g.Roots, first.Roots)
		}
		if g.Version <= first.Version {
			t.Errorf("iteration %d: version %d not after %d", i, g.Version, first.Version)
		}
	}
}

// blockingEngine returns an engine whose evaluations wait until release
// is closed.
func blockingEngine(timeout time.Duration) (eng *Engine, release chan struct{}) {
	release = make(chan struct{})
	eng = NewEngine()
	eng.Timeout = timeout
	eng.eval = func(string) (*graph.DesignGraph, []EvalError, error) {
		<-release
		return graph.New(), nil, nil
	}
	return eng, release
}

func TestEvaluateTimeout(t *testing.T) {
	eng, release := blockingEngine(20 * time.Millisecond)
	defer close(release)

	start := time.Now()
	g, evalErrs, err := eng.Evaluate(`(circle :radius 1)`)
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("expected ErrTimeout, got %v", err)
	}
	if !strings.Contains(err.Error(), "timed out after 20ms") {
		t.Errorf("error %q should name the limit", err)
	}
	if g != nil || evalErrs != nil {
		t.Errorf("timeout returned graph %v, errors %v", g, evalErrs)
	}
	if elapsed := time.Since(start); elapsed > EvalTimeout {
		t.Errorf("took %s, engine timeout was ignored", elapsed)
	}
}

func TestEvaluateDefaultTimeout(t *testing.T) {
	if got := NewEngine().timeout(); got != EvalTimeout {
		t.Errorf("NewEngine timeout = %s, want %s", got, EvalTimeout)
	}
	if got := (&Engine{}).timeout(); got != EvalTimeout {
		t.Errorf("zero Engine timeout = %s, want %s", got, EvalTimeout)
	}
}

func TestEvaluateContextCancel(t *testing.T) {
	eng, release := blockingEngine(time.Minute)
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := eng.EvaluateContext(ctx, `(circle :radius 1)`)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if errors.Is(err, ErrTimeout) {
		t.Errorf("cancellation reported as timeout: %v", err)
	}
}

func TestEvaluateAfterTimeout(t *testing.T) {
	// A hung script must not poison later evaluations on the same engine.
	eng, release := blockingEngine(10 * time.Millisecond)
	if _, _, err := eng.Evaluate("x"); !errors.Is(err, ErrTimeout) {
		t.Fatalf("expected ErrTimeout, got %v", err)
	}
	close(release)

	eng.eval = nil
	eng.Timeout = EvalTimeout
	g, evalErrs, err := eng.Evaluate(`(circle :radius 1)`)
	if err != nil || len(evalErrs) > 0 {
		t.Fatalf("unexpected failure: %v %v", err, evalErrs)
	}
	if g.Version != 2 {
		t.Errorf("Version = %d, want 2", g.Version)
	}
}

func TestEvaluateGenerationDiscardsStale(t *testing.T) {
	eng := NewEngine()
	eng.generation = 2

	ch := make(chan evalResult, 1)
	ch <- evalResult{graph: graph.New()}

	_, _, err := eng.wait(context.Background(), ch, 1)
	if !errors.Is(err, ErrSuperseded) {
		t.Fatalf("expected ErrSuperseded, got %v", err)
	}
}

func TestEvaluateUnknownKeyword(t *testing.T) {
	g, evalErrs, err := NewEngine().Evaluate("(defshape \"a\"\n  (circle :radius 1 :centre (vec3 0 0 0)))")
	if err != nil {
		t.Fatalf("unexpected fatal error: %v", err)
	}
	if g != nil {
		t.Error("expected no graph")
	}
	if len(evalErrs) != 1 {
		t.Fatalf("expected 1 eval error, got %v", evalErrs)
	}
	if e := evalErrs[0]; e.Line != 2 || !strings.Contains(e.Message, "circle: unknown keyword :centre") {
		t.Errorf("error = %+v", e)
	}
}

func TestParseZygomysError(t *testing.T) {
	tests := []struct {
		name     string
		msg      string
		wantLine int
		wantMsg  string
	}{
		{
			name:     "error on line format",
			msg:      "Error on line 5: unexpected token\n",
			wantLine: 5,
			wantMsg:  "unexpected token",
		},
		{
			name:     "no line info",
			msg:      "arc: radius: required",
			wantLine: 0,
			wantMsg:  "arc: radius: required",
		},
		{
			name:     "line format lowercase",
			msg:      "error on line 12: missing paren",
			wantLine: 12,
			wantMsg:  "missing paren",
		},
		{
			name:     "short line format",
			msg:      "line 3: bad token",
			wantLine: 3,
			wantMsg:  "bad token",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := parseZygomysError(errString(tt.msg))
			if len(errs) == 0 {
				t.Fatal("expected at least one error")
			}
			e := errs[0]
			if e.Line != tt.wantLine {
				t.Errorf("line = %d, want %d", e.Line, tt.wantLine)
			}
			if !strings.Contains(e.Message, tt.wantMsg) {
				t.Errorf("message = %q, want containing %q", e.Message, tt.wantMsg)
			}
		})
	}
}

func TestCheck(t *testing.T) {
	eng := NewEngine()

	t.Run("valid", func(t *testing.T) {
		res, err := eng.Check(`(extrude (circle :radius 2) :length 5)`)
		if err != nil {
			t.Fatal(err)
		}
		if len(res.Errors) > 0 {
			t.Fatalf("unexpected errors: %v", res.Errors)
		}
		if res.Graph == nil {
			t.Fatal("expected graph")
		}
	})

	t.Run("geometry error", func(t *testing.T) {
		res, err := eng.Check(`(circle :radius -1)`)
		if err != nil {
			t.Fatal(err)
		}
		if len(res.Errors) == 0 {
			t.Fatal("expected a validation error")
		}
		if res.Graph != nil {
			t.Error("graph should be withheld when validation fails")
		}
	})

	t.Run("warning", func(t *testing.T) {
		res, err := eng.Check(`(extrude (line (vec3 0 0 0) (vec3 1 0 0)) :axis (vec3 0 0 2) :length 1)`)
		if err != nil {
			t.Fatal(err)
		}
		if len(res.Errors) > 0 {
			t.Fatalf("unexpected errors: %v", res.Errors)
		}
		if len(res.Warnings) == 0 {
			t.Fatal("expected a non-unit axis warning")
		}
		if res.Warnings[0].String() == "" {
			t.Error("empty warning text")
		}
	})

	t.Run("eval error", func(t *testing.T) {
		res, err := eng.Check(`(arc :center (vec3 0 0 0))`)
		if err != nil {
			t.Fatal(err)
		}
		if len(res.Errors) == 0 || !strings.Contains(res.Errors[0].Message, "radius") {
			t.Fatalf("errors = %v, want missing radius", res.Errors)
		}
	})
}

// errString is a simple error type for testing.
type errString string

func (e errString) Error() string { return string(e) }

package main

import (
	"log"
	"time"

	"github.com/chazu/nurbs/pkg/engine"
	"github.com/chazu/nurbs/pkg/kernel"
	"github.com/chazu/nurbs/pkg/kernel/exact"
	"github.com/chazu/nurbs/pkg/nurbs"
	"github.com/chazu/nurbs/pkg/resolve"
)

// App runs the script pipeline: evaluate, validate, resolve.
type App struct {
	engine *engine.Engine

	// Tolerance overrides the script's (tolerance ...) when positive.
	Tolerance float64
	// Timeout bounds script evaluation when positive.
	Timeout time.Duration
	// Log receives per-shape resolve output when set.
	Log *log.Logger
}

// ShapeData is the JSON record of one resolved shape. Control points are
// Cartesian with the weight appended: [x, y, z, w].
type ShapeData struct {
	Name  string `json:"name"`
	Kind  string `json:"kind"` // "curve" or "surface"
	Color string `json:"color"`

	Degree        int          `json:"degree,omitempty"`
	Knots         []float64    `json:"knots,omitempty"`
	ControlPoints [][4]float64 `json:"controlPoints,omitempty"`

	DegreeU     int            `json:"degreeU,omitempty"`
	DegreeV     int            `json:"degreeV,omitempty"`
	KnotsU      []float64      `json:"knotsU,omitempty"`
	KnotsV      []float64      `json:"knotsV,omitempty"`
	ControlGrid [][][4]float64 `json:"controlGrid,omitempty"`

	BoundsMin [3]float64 `json:"boundsMin"`
	BoundsMax [3]float64 `json:"boundsMax"`
}

// EvalErrorData is a JSON-serializable error or warning.
type EvalErrorData struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Message string `json:"message"`
}

// Result is the full output of one run.
type Result struct {
	Shapes   []ShapeData     `json:"shapes"`
	Errors   []EvalErrorData `json:"errors"`
	Warnings []EvalErrorData `json:"warnings"`
}

// NewApp creates a new App with a fresh engine.
func NewApp() *App {
	return &App{engine: engine.NewEngine()}
}

// Evaluate takes script source and returns the resolved shapes and any
// errors. Shapes are only returned when there are no errors.
func (a *App) Evaluate(source string) Result {
	result := Result{
		Shapes:   []ShapeData{},
		Errors:   []EvalErrorData{},
		Warnings: []EvalErrorData{},
	}

	// Step 1: Evaluate the script into a validated design graph.
	if a.Timeout > 0 {
		a.engine.Timeout = a.Timeout
	}
	checked, err := a.engine.Check(source)
	if err != nil {
		// Fatal error (panic, timeout, etc.)
		result.Errors = append(result.Errors, EvalErrorData{Message: err.Error()})
		return result
	}
	for _, w := range checked.Warnings {
		result.Warnings = append(result.Warnings, EvalErrorData{Line: w.Line, Col: w.Col, Message: w.String()})
	}
	if len(checked.Errors) > 0 {
		for _, e := range checked.Errors {
			result.Errors = append(result.Errors, EvalErrorData{Line: e.Line, Col: e.Col, Message: e.Message})
		}
		return result
	}
	g := checked.Graph

	// Step 2: Resolve the graph into curves and surfaces.
	tol := g.Defaults.Tolerance
	if a.Tolerance > 0 {
		tol = a.Tolerance
	}
	r := &resolve.Resolver{
		Kernel: exact.New(nurbs.Options{Tolerance: tol}),
		Log:    a.Log,
	}
	shapes, err := r.Resolve(g)
	if err != nil {
		result.Errors = append(result.Errors, EvalErrorData{Message: err.Error()})
		return result
	}

	// Step 3: Convert shapes to records.
	colors := shapeColors(len(shapes))
	for i, s := range shapes {
		result.Shapes = append(result.Shapes, shapeData(s, colors[i]))
	}
	return result
}

func homo(hp nurbs.HomoPoint) [4]float64 {
	p := hp.Dehomogenize()
	return [4]float64{p.X, p.Y, p.Z, hp.W}
}

func shapeData(s kernel.Shape, color string) ShapeData {
	d := ShapeData{Name: s.Name, Color: color}
	d.BoundsMin, d.BoundsMax = s.BoundingBox()

	switch {
	case s.Curve != nil:
		c := s.Curve
		d.Kind = "curve"
		d.Degree = c.Degree
		d.Knots = c.Knots
		for _, hp := range c.ControlPoints {
			d.ControlPoints = append(d.ControlPoints, homo(hp))
		}
	case s.Surface != nil:
		sf := s.Surface
		d.Kind = "surface"
		d.DegreeU, d.DegreeV = sf.DegreeU, sf.DegreeV
		d.KnotsU, d.KnotsV = sf.KnotsU, sf.KnotsV
		for _, row := range sf.ControlPoints {
			rec := make([][4]float64, len(row))
			for j, hp := range row {
				rec[j] = homo(hp)
			}
			d.ControlGrid = append(d.ControlGrid, rec)
		}
	}
	return d
}

package engine

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/chazu/nurbs/pkg/graph"
	zygo "github.com/glycerine/zygomys/zygo"
)

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpNodeRef wraps a graph.NodeID so it can be passed between builtins.
type sexpNodeRef struct {
	id   graph.NodeID
	name string // human-readable name for error messages
}

func (n *sexpNodeRef) SexpString(ps *zygo.PrintState) string {
	if n.name != "" {
		return fmt.Sprintf("(shape %q)", n.name)
	}
	return fmt.Sprintf("(noderef %s)", n.id.Short())
}

func (n *sexpNodeRef) Type() *zygo.RegisteredType { return nil }

// sexpVec3 wraps a graph.Vec3.
type sexpVec3 struct {
	vec graph.Vec3
}

func (v *sexpVec3) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(vec3 %g %g %g)", v.vec.X, v.vec.Y, v.vec.Z)
}

func (v *sexpVec3) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// isKW checks if a Sexp is a preprocessed keyword string.
// Returns the keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if !ok {
			result.positional = append(result.positional, args[i])
			i++
			continue
		}
		if i+1 < len(args) {
			result.kw[name] = args[i+1]
			i += 2
		} else {
			result.kw[name] = zygo.SexpNull
			i++
		}
	}
	return result
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

func toNodeRef(s zygo.Sexp) (graph.NodeID, error) {
	if ref, ok := s.(*sexpNodeRef); ok {
		return ref.id, nil
	}
	return graph.NodeID{}, fmt.Errorf("expected shape reference, got %T (%s)", s, s.SexpString(nil))
}

func toVec3(s zygo.Sexp) (graph.Vec3, error) {
	if v, ok := s.(*sexpVec3); ok {
		return v.vec, nil
	}
	return graph.Vec3{}, fmt.Errorf("expected vec3, got %T (%s)", s, s.SexpString(nil))
}

// sexpListToSlice converts a SexpPair (Lisp list) or SexpArray to a Go slice.
func sexpListToSlice(s zygo.Sexp) ([]zygo.Sexp, error) {
	switch v := s.(type) {
	case *zygo.SexpPair:
		return zygo.ListToArray(v)
	case *zygo.SexpArray:
		return v.Val, nil
	case *zygo.SexpSentinel:
		if v == zygo.SexpNull {
			return nil, nil
		}
	}
	return nil, fmt.Errorf("expected list or array, got %T", s)
}

func toVec3List(items []zygo.Sexp) ([]graph.Vec3, error) {
	pts := make([]graph.Vec3, len(items))
	for i, item := range items {
		v, err := toVec3(item)
		if err != nil {
			return nil, fmt.Errorf("point %d: %w", i, err)
		}
		pts[i] = v
	}
	return pts, nil
}

// points accepts either a sequence of vec3 values or a single list of them.
func points(items []zygo.Sexp) ([]graph.Vec3, error) {
	if len(items) == 1 {
		if _, ok := items[0].(*sexpVec3); !ok {
			list, err := sexpListToSlice(items[0])
			if err != nil {
				return nil, err
			}
			items = list
		}
	}
	return toVec3List(items)
}

// ---------------------------------------------------------------------------
// Per-form argument access
// ---------------------------------------------------------------------------

var errRequired = errors.New("required")

// formArgs is the parsed argument list of one form. Accessors return a
// fallback value on failure and keep the first error for err.
type formArgs struct {
	kwArgs
	form  string
	first error
}

func newFormArgs(form string, raw []zygo.Sexp) *formArgs {
	return &formArgs{kwArgs: parseArgs(raw), form: form}
}

func (a *formArgs) fail(key string, err error) {
	if a.first == nil {
		a.first = fmt.Errorf("%s: %s: %w", a.form, key, err)
	}
}

func (a *formArgs) err() error { return a.first }

func (a *formArgs) num(key string, def float64) float64 {
	v, ok := a.kw[key]
	if !ok {
		return def
	}
	f, err := toFloat64(v)
	if err != nil {
		a.fail(key, err)
		return def
	}
	return f
}

func (a *formArgs) mustNum(key string) float64 {
	if _, ok := a.kw[key]; !ok {
		a.fail(key, errRequired)
		return 0
	}
	return a.num(key, 0)
}

func (a *formArgs) count(key string, def int) int {
	v, ok := a.kw[key]
	if !ok {
		return def
	}
	i, ok := v.(*zygo.SexpInt)
	if !ok {
		a.fail(key, fmt.Errorf("expected integer, got %T (%s)", v, v.SexpString(nil)))
		return def
	}
	return int(i.Val)
}

func (a *formArgs) vec(key string, def graph.Vec3) graph.Vec3 {
	v, ok := a.kw[key]
	if !ok {
		return def
	}
	vec, err := toVec3(v)
	if err != nil {
		a.fail(key, err)
		return def
	}
	return vec
}

// ref returns positional argument i as a shape reference.
func (a *formArgs) ref(i int, role string) graph.NodeID {
	if i >= len(a.positional) {
		a.fail(role, errRequired)
		return graph.NodeID{}
	}
	id, err := toNodeRef(a.positional[i])
	if err != nil {
		a.fail(role, err)
	}
	return id
}

// ---------------------------------------------------------------------------
// Graph construction
// ---------------------------------------------------------------------------

// builder accumulates the nodes created by one evaluation.
type builder struct {
	g        *graph.DesignGraph
	seq      int
	order    []graph.NodeID
	consumed map[graph.NodeID]bool
}

func newBuilder(g *graph.DesignGraph) *builder {
	return &builder{g: g, consumed: make(map[graph.NodeID]bool)}
}

// add creates a node. Named nodes derive their ID from the name, anonymous
// ones from their position in the script.
func (b *builder) add(form string, kind graph.NodeKind, name string, children []graph.NodeID, data graph.NodeData) *sexpNodeRef {
	b.seq++
	path := fmt.Sprintf("%s/%d", form, b.seq)
	if name != "" {
		path = form + "/" + name
	}
	id := graph.NewNodeID(path)
	b.g.AddNode(&graph.Node{
		ID:       id,
		Kind:     kind,
		Name:     name,
		Source:   graph.SourceRef{Form: form, Seq: b.seq},
		Children: children,
		Data:     data,
	})
	b.order = append(b.order, id)
	for _, c := range children {
		b.consumed[c] = true
	}
	for _, r := range graph.References(data) {
		b.consumed[r] = true
	}
	return &sexpNodeRef{id: id, name: name}
}

func (b *builder) primitive(form string, data graph.NodeData) *sexpNodeRef {
	return b.add(form, graph.NodePrimitive, "", nil, data)
}

// name attaches a user-visible name to an existing node.
func (b *builder) name(id graph.NodeID, name string) error {
	n := b.g.Get(id)
	if n == nil {
		return fmt.Errorf("unknown shape %s", id.Short())
	}
	if n.Name != "" {
		return fmt.Errorf("shape is already named %q", n.Name)
	}
	if b.g.Lookup(name) != nil {
		return fmt.Errorf("duplicate shape name %q", name)
	}
	n.Name = name
	b.g.NameIndex[name] = id
	return nil
}

// finish registers every node nothing else consumed as a root, in
// creation order.
func (b *builder) finish() {
	for _, id := range b.order {
		if !b.consumed[id] {
			b.g.AddRoot(id)
		}
	}
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

var (
	origin = graph.Vec3{}
	unitX  = graph.Vec3{X: 1}
	unitY  = graph.Vec3{Y: 1}
	unitZ  = graph.Vec3{Z: 1}
)

// fn adapts a builtin body to the zygomys calling convention.
func fn(form string, body func(a *formArgs) (zygo.Sexp, error)) zygo.ZlispUserFunction {
	return func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		a := newFormArgs(form, args)
		res, err := body(a)
		if err == nil {
			err = a.err()
		}
		if err != nil {
			return zygo.SexpNull, err
		}
		return res, nil
	}
}

// registerBuiltins installs the shape DSL into a zygomys environment. The
// builtins populate b's graph during evaluation.
//
// Source code must be preprocessed with preprocessSource() before evaluation so
// that :keyword tokens are converted to recognizable string literals.
func registerBuiltins(env *zygo.Zlisp, b *builder) {

	// (vec3 1 2 3)
	env.AddFunction("vec3", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("vec3 requires exactly 3 arguments, got %d", len(args))
		}
		var c [3]float64
		for i, arg := range args {
			f, err := toFloat64(arg)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("vec3: %c: %w", "xyz"[i], err)
			}
			c[i] = f
		}
		return &sexpVec3{vec: graph.Vec3{X: c[0], Y: c[1], Z: c[2]}}, nil
	})

	// (radians 90)
	env.AddFunction("radians", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("radians requires exactly 1 argument, got %d", len(args))
		}
		deg, err := toFloat64(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("radians: %w", err)
		}
		return &zygo.SexpFloat{Val: deg * math.Pi / 180}, nil
	})

	// (tolerance 1e-8)
	env.AddFunction("tolerance", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("tolerance requires exactly 1 argument, got %d", len(args))
		}
		t, err := toFloat64(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("tolerance: %w", err)
		}
		if !(t > 0) {
			return zygo.SexpNull, fmt.Errorf("tolerance: %v is not positive", t)
		}
		b.g.Defaults.Tolerance = t
		return zygo.SexpNull, nil
	})

	// -----------------------------------------------------------------------
	// Curves
	// -----------------------------------------------------------------------

	// (polyline (vec3 0 0 0) (vec3 1 0 0) ...) or (polyline (list ...))
	env.AddFunction("polyline", fn("polyline", func(a *formArgs) (zygo.Sexp, error) {
		pts, err := points(a.positional)
		if err != nil {
			return nil, fmt.Errorf("polyline: %w", err)
		}
		return b.primitive("polyline", graph.PolylineData{Points: pts}), nil
	}))

	// (line (vec3 0 0 0) (vec3 1 0 0))
	env.AddFunction("line", fn("line", func(a *formArgs) (zygo.Sexp, error) {
		if len(a.positional) != 2 {
			return nil, fmt.Errorf("line requires 2 points, got %d", len(a.positional))
		}
		pts, err := toVec3List(a.positional)
		if err != nil {
			return nil, fmt.Errorf("line: %w", err)
		}
		return b.primitive("line", graph.PolylineData{Points: pts}), nil
	}))

	// (arc :center c :xaxis x :yaxis y :radius r :start 0 :end 1.57)
	env.AddFunction("arc", fn("arc", func(a *formArgs) (zygo.Sexp, error) {
		r := a.mustNum("radius")
		return b.primitive("arc", graph.ArcData{
			Center:  a.vec("center", origin),
			XAxis:   a.vec("xaxis", unitX),
			YAxis:   a.vec("yaxis", unitY),
			XRadius: r,
			YRadius: r,
			Start:   a.num("start", 0),
			End:     a.num("end", 2*math.Pi),
		}), nil
	}))

	// (ellipse-arc :center c :xradius 2 :yradius 1 :start 0 :end 3.14)
	env.AddFunction("ellipse_arc", fn("ellipse-arc", func(a *formArgs) (zygo.Sexp, error) {
		return b.primitive("ellipse-arc", graph.ArcData{
			Center:  a.vec("center", origin),
			XAxis:   a.vec("xaxis", unitX),
			YAxis:   a.vec("yaxis", unitY),
			XRadius: a.mustNum("xradius"),
			YRadius: a.mustNum("yradius"),
			Start:   a.num("start", 0),
			End:     a.num("end", 2*math.Pi),
		}), nil
	}))

	// (circle :center c :radius r)
	env.AddFunction("circle", fn("circle", func(a *formArgs) (zygo.Sexp, error) {
		r := a.mustNum("radius")
		return b.primitive("circle", graph.ArcData{
			Center:  a.vec("center", origin),
			XAxis:   a.vec("xaxis", unitX),
			YAxis:   a.vec("yaxis", unitY),
			XRadius: r,
			YRadius: r,
			End:     2 * math.Pi,
		}), nil
	}))

	// (ellipse :center c :xradius 2 :yradius 1)
	env.AddFunction("ellipse", fn("ellipse", func(a *formArgs) (zygo.Sexp, error) {
		return b.primitive("ellipse", graph.ArcData{
			Center:  a.vec("center", origin),
			XAxis:   a.vec("xaxis", unitX),
			YAxis:   a.vec("yaxis", unitY),
			XRadius: a.mustNum("xradius"),
			YRadius: a.mustNum("yradius"),
			End:     2 * math.Pi,
		}), nil
	}))

	// (bezier (list p0 p1 p2) :weights (list 1 0.7 1))
	env.AddFunction("bezier", fn("bezier", func(a *formArgs) (zygo.Sexp, error) {
		pts, err := points(a.positional)
		if err != nil {
			return nil, fmt.Errorf("bezier: %w", err)
		}
		bd := graph.BezierData{Points: pts}
		if v, ok := a.kw["weights"]; ok {
			items, err := sexpListToSlice(v)
			if err != nil {
				return nil, fmt.Errorf("bezier: weights: %w", err)
			}
			for i, item := range items {
				w, err := toFloat64(item)
				if err != nil {
					return nil, fmt.Errorf("bezier: weight %d: %w", i, err)
				}
				bd.Weights = append(bd.Weights, w)
			}
		}
		return b.primitive("bezier", bd), nil
	}))

	// -----------------------------------------------------------------------
	// Surfaces
	// -----------------------------------------------------------------------

	// (extrude profile :axis (vec3 0 0 1) :length 10)
	env.AddFunction("extrude", fn("extrude", func(a *formArgs) (zygo.Sexp, error) {
		return b.primitive("extrude", graph.ExtrudeData{
			Profile: a.ref(0, "profile"),
			Axis:    a.vec("axis", unitZ),
			Length:  a.mustNum("length"),
		}), nil
	}))

	// (sweep profile rail)
	env.AddFunction("sweep", fn("sweep", func(a *formArgs) (zygo.Sexp, error) {
		return b.primitive("sweep", graph.SweepData{
			Profile: a.ref(0, "profile"),
			Rail:    a.ref(1, "rail"),
		}), nil
	}))

	// (revolve profile :center c :axis (vec3 0 0 1) :angle 3.14)
	env.AddFunction("revolve", fn("revolve", func(a *formArgs) (zygo.Sexp, error) {
		return b.primitive("revolve", graph.RevolveData{
			Profile: a.ref(0, "profile"),
			Center:  a.vec("center", origin),
			Axis:    a.vec("axis", unitZ),
			Angle:   a.num("angle", 2*math.Pi),
		}), nil
	}))

	// (cylinder :base b :axis a :height 10 :radius 2)
	env.AddFunction("cylinder", fn("cylinder", func(a *formArgs) (zygo.Sexp, error) {
		return b.primitive("cylinder", graph.CylinderData{
			Base:   a.vec("base", origin),
			Axis:   a.vec("axis", unitZ),
			XAxis:  a.vec("xaxis", unitX),
			Height: a.mustNum("height"),
			Radius: a.mustNum("radius"),
		}), nil
	}))

	// (sphere :center c :radius 5)
	env.AddFunction("sphere", fn("sphere", func(a *formArgs) (zygo.Sexp, error) {
		return b.primitive("sphere", graph.SphereData{
			Center: a.vec("center", origin),
			Axis:   a.vec("axis", unitZ),
			XAxis:  a.vec("xaxis", unitX),
			Radius: a.mustNum("radius"),
		}), nil
	}))

	// (cone :base b :height 10 :radius 3)
	env.AddFunction("cone", fn("cone", func(a *formArgs) (zygo.Sexp, error) {
		return b.primitive("cone", graph.ConeData{
			Base:   a.vec("base", origin),
			Axis:   a.vec("axis", unitZ),
			XAxis:  a.vec("xaxis", unitX),
			Height: a.mustNum("height"),
			Radius: a.mustNum("radius"),
		}), nil
	}))

	// (patch p1 p2 p3 p4 :degree 2)
	env.AddFunction("patch", fn("patch", func(a *formArgs) (zygo.Sexp, error) {
		if len(a.positional) != 4 {
			return nil, fmt.Errorf("patch requires 4 corners, got %d", len(a.positional))
		}
		pts, err := toVec3List(a.positional)
		if err != nil {
			return nil, fmt.Errorf("patch: %w", err)
		}
		pd := graph.PatchData{Degree: a.count("degree", 1)}
		copy(pd.Corners[:], pts)
		return b.primitive("patch", pd), nil
	}))

	// -----------------------------------------------------------------------
	// Naming, placement and grouping
	// -----------------------------------------------------------------------

	// (defshape "name" (arc ...))
	env.AddFunction("defshape", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("defshape requires a name and a shape expression")
		}
		shapeName, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("defshape: name: %w", err)
		}
		if shapeName == "" {
			return zygo.SexpNull, fmt.Errorf("defshape: name: empty")
		}
		id, err := toNodeRef(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("defshape %q: %w", shapeName, err)
		}
		if err := b.name(id, shapeName); err != nil {
			return zygo.SexpNull, fmt.Errorf("defshape: %w", err)
		}
		return &sexpNodeRef{id: id, name: shapeName}, nil
	})

	// (shape "name")
	env.AddFunction("shape", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("shape requires a name argument")
		}
		shapeName, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("shape: name: %w", err)
		}
		n := b.g.Lookup(shapeName)
		if n == nil {
			return zygo.SexpNull, fmt.Errorf("shape: no shape named %q", shapeName)
		}
		return &sexpNodeRef{id: n.ID, name: shapeName}, nil
	})

	// (place (shape "rim") :at (vec3 0 0 5) :rotate (vec3 0 0 90))
	env.AddFunction("place", fn("place", func(a *formArgs) (zygo.Sexp, error) {
		child := a.ref(0, "shape")
		td := graph.TransformData{}
		if _, ok := a.kw["at"]; ok {
			v := a.vec("at", origin)
			td.Translation = &v
		}
		if _, ok := a.kw["rotate"]; ok {
			v := a.vec("rotate", origin)
			td.Rotation = &v
		}
		return b.add("place", graph.NodeTransform, "", []graph.NodeID{child}, td), nil
	}))

	// (group "name" ref ... :description "text")
	env.AddFunction("group", fn("group", func(a *formArgs) (zygo.Sexp, error) {
		if len(a.positional) < 1 {
			return nil, fmt.Errorf("group requires a name argument")
		}
		groupName, err := toString(a.positional[0])
		if err != nil {
			return nil, fmt.Errorf("group: name: %w", err)
		}
		if b.g.Lookup(groupName) != nil {
			return nil, fmt.Errorf("group: duplicate name %q", groupName)
		}
		gd := graph.GroupData{}
		if v, ok := a.kw["description"]; ok {
			if gd.Description, err = toString(v); err != nil {
				return nil, fmt.Errorf("group: description: %w", err)
			}
		}
		var children []graph.NodeID
		for i := 1; i < len(a.positional); i++ {
			id, err := toNodeRef(a.positional[i])
			if err != nil {
				return nil, fmt.Errorf("group: child %d: %w", i, err)
			}
			children = append(children, id)
		}
		return b.add("group", graph.NodeGroup, groupName, children, gd), nil
	}))
}

// Package resolve walks a design graph and builds exact curves and surfaces
// using a construction kernel. One shape is produced per primitive reached
// from a root.
package resolve

import (
	"fmt"
	"log"

	"github.com/chazu/nurbs/pkg/graph"
	"github.com/chazu/nurbs/pkg/kernel"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// frame is one placement: rotation about the origin, then translation.
type frame struct {
	translation graph.Vec3
	rotation    graph.Vec3 // Euler angles in degrees
}

func frameOf(td graph.TransformData) frame {
	var f frame
	if td.Translation != nil {
		f.translation = *td.Translation
	}
	if td.Rotation != nil {
		f.rotation = *td.Rotation
	}
	return f
}

// apply places s in the parent's coordinates.
func (f frame) apply(k kernel.Kernel, s kernel.Shape) kernel.Shape {
	if r := f.rotation; !r.IsZero() {
		s = k.Rotate(s, r.X, r.Y, r.Z)
	}
	if t := f.translation; !t.IsZero() {
		s = k.Translate(s, t.X, t.Y, t.Z)
	}
	return s
}

// transformStack accumulates spatial transforms during graph traversal.
type transformStack struct {
	frames []frame
}

func (ts *transformStack) push(f frame) {
	ts.frames = append(ts.frames, f)
}

func (ts *transformStack) pop() {
	if len(ts.frames) > 0 {
		ts.frames = ts.frames[:len(ts.frames)-1]
	}
}

// apply maps s from the innermost frame out to world coordinates.
func (ts *transformStack) apply(k kernel.Kernel, s kernel.Shape) kernel.Shape {
	for i := len(ts.frames) - 1; i >= 0; i-- {
		s = ts.frames[i].apply(k, s)
	}
	return s
}

// Resolver builds the shapes of a design graph with Kernel. Log, when set,
// receives one line per constructed shape.
type Resolver struct {
	Kernel kernel.Kernel
	Log    *log.Logger
}

// Resolve walks g with k and no logging.
func Resolve(g *graph.DesignGraph, k kernel.Kernel) ([]kernel.Shape, error) {
	return (&Resolver{Kernel: k}).Resolve(g)
}

// walk is the state of a single Resolve call.
type walk struct {
	g        *graph.DesignGraph
	k        kernel.Kernel
	log      *log.Logger
	ts       transformStack
	memo     map[graph.NodeID]kernel.Shape
	building map[graph.NodeID]bool
}

// Resolve walks the design graph depth-first from each root and returns one
// shape per primitive reached, in world coordinates. Profiles and rails are
// built in their own frame and shared between the surfaces that use them.
// The resolver is read-only and never mutates the graph.
func (r *Resolver) Resolve(g *graph.DesignGraph) ([]kernel.Shape, error) {
	if g == nil {
		return nil, nil
	}

	w := &walk{
		g:        g,
		k:        r.Kernel,
		log:      r.Log,
		memo:     make(map[graph.NodeID]kernel.Shape),
		building: make(map[graph.NodeID]bool),
	}

	var shapes []kernel.Shape
	for _, rootID := range g.Roots {
		root := g.Get(rootID)
		if root == nil {
			continue
		}
		collected, err := w.walkNode(root)
		if err != nil {
			return nil, fmt.Errorf("resolve: error walking root %s: %w", rootID.Short(), err)
		}
		shapes = append(shapes, collected...)
	}

	return shapes, nil
}

func (w *walk) logf(format string, args ...any) {
	if w.log != nil {
		w.log.Printf(format, args...)
	}
}

// walkNode recursively traverses a node and its children, collecting shapes.
func (w *walk) walkNode(n *graph.Node) ([]kernel.Shape, error) {
	switch n.Kind {
	case graph.NodePrimitive:
		return w.handlePrimitive(n)

	case graph.NodeTransform:
		return w.handleTransform(n)

	case graph.NodeGroup:
		return w.handleGroup(n)

	default:
		return nil, fmt.Errorf("unknown node kind: %v", n.Kind)
	}
}

// handlePrimitive builds a primitive and places it with the accumulated
// transforms.
func (w *walk) handlePrimitive(n *graph.Node) ([]kernel.Shape, error) {
	s, err := w.shape(n.ID)
	if err != nil {
		return nil, err
	}
	s = w.ts.apply(w.k, s)
	s.Name = n.DisplayName()

	kind, _ := graph.Kind(n.Data)
	w.logf("%s %s: %d control points", kind, s.Name, s.ControlPointCount())
	return []kernel.Shape{s}, nil
}

// handleTransform pushes the transform, recurses into children, then pops.
func (w *walk) handleTransform(n *graph.Node) ([]kernel.Shape, error) {
	td, ok := n.Data.(graph.TransformData)
	if !ok {
		return nil, fmt.Errorf("transform node %s has unexpected data type %T", n.ID.Short(), n.Data)
	}

	w.ts.push(frameOf(td))
	defer w.ts.pop()

	var shapes []kernel.Shape
	for _, child := range w.g.Children(n) {
		collected, err := w.walkNode(child)
		if err != nil {
			return nil, err
		}
		shapes = append(shapes, collected...)
	}
	return shapes, nil
}

// handleGroup recurses into children transparently.
func (w *walk) handleGroup(n *graph.Node) ([]kernel.Shape, error) {
	var shapes []kernel.Shape
	for _, child := range w.g.Children(n) {
		collected, err := w.walkNode(child)
		if err != nil {
			return nil, err
		}
		shapes = append(shapes, collected...)
	}
	return shapes, nil
}

// shape returns the node's geometry in its own frame. A placement of a
// single shape counts as that shape moved.
func (w *walk) shape(id graph.NodeID) (kernel.Shape, error) {
	if s, ok := w.memo[id]; ok {
		return s, nil
	}
	n := w.g.Get(id)
	if n == nil {
		return kernel.Shape{}, fmt.Errorf("missing node %s", id.Short())
	}
	if w.building[id] {
		return kernel.Shape{}, fmt.Errorf("node %s depends on itself", n.DisplayName())
	}
	w.building[id] = true
	defer delete(w.building, id)

	var (
		s   kernel.Shape
		err error
	)
	switch n.Kind {
	case graph.NodePrimitive:
		s, err = w.construct(n)
	case graph.NodeTransform:
		td, ok := n.Data.(graph.TransformData)
		if !ok {
			err = fmt.Errorf("transform node has unexpected data type %T", n.Data)
			break
		}
		if len(n.Children) != 1 {
			err = fmt.Errorf("placement of %d shapes is not a single shape", len(n.Children))
			break
		}
		if s, err = w.shape(n.Children[0]); err == nil {
			s = frameOf(td).apply(w.k, s)
		}
	default:
		err = fmt.Errorf("%s node is not a single shape", n.Kind)
	}
	if err != nil {
		return kernel.Shape{}, fmt.Errorf("node %s: %w", n.DisplayName(), err)
	}

	s.Name = n.DisplayName()
	w.memo[id] = s
	return s, nil
}

// construct calls the kernel for one primitive node.
func (w *walk) construct(n *graph.Node) (kernel.Shape, error) {
	k := w.k
	switch d := n.Data.(type) {
	case graph.PolylineData:
		return k.Polyline(graph.V3s(d.Points))

	case graph.ArcData:
		return k.EllipseArc(d.Center.V3(), d.XAxis.V3(), d.YAxis.V3(), d.XRadius, d.YRadius, d.Start, d.End)

	case graph.BezierData:
		return k.Bezier(graph.V3s(d.Points), d.Weights)

	case graph.ExtrudeData:
		profile, err := w.shape(d.Profile)
		if err != nil {
			return kernel.Shape{}, err
		}
		return k.Extrude(profile, d.Axis.V3(), d.Length)

	case graph.SweepData:
		profile, err := w.shape(d.Profile)
		if err != nil {
			return kernel.Shape{}, err
		}
		rail, err := w.shape(d.Rail)
		if err != nil {
			return kernel.Shape{}, err
		}
		return k.Sweep(profile, rail)

	case graph.RevolveData:
		profile, err := w.shape(d.Profile)
		if err != nil {
			return kernel.Shape{}, err
		}
		return k.Revolve(profile, d.Center.V3(), d.Axis.V3(), d.Angle)

	case graph.CylinderData:
		return k.Cylinder(d.Base.V3(), d.Axis.V3(), d.XAxis.V3(), d.Height, d.Radius)

	case graph.SphereData:
		return k.Sphere(d.Center.V3(), d.Axis.V3(), d.XAxis.V3(), d.Radius)

	case graph.ConeData:
		return k.Cone(d.Base.V3(), d.Axis.V3(), d.XAxis.V3(), d.Height, d.Radius)

	case graph.PatchData:
		var corners [4]v3.Vec
		for i, c := range d.Corners {
			corners[i] = c.V3()
		}
		return k.Patch(corners, d.Degree)

	default:
		return kernel.Shape{}, fmt.Errorf("primitive node %s has unsupported data type %T", n.ID.Short(), n.Data)
	}
}

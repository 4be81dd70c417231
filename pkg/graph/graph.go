package graph

import "fmt"

// DefaultTolerance is the geometric tolerance used when a script does not
// set one.
const DefaultTolerance = 1e-10

// GlobalDefaults contains graph-wide default settings.
type GlobalDefaults struct {
	Tolerance float64 `json:"tolerance"` // zero-length and perpendicularity threshold
	Units     string  `json:"units"`     // advisory; coordinates are unitless
}

// DesignGraph is the top-level immutable data structure produced by script
// evaluation. It is never mutated in place; each evaluation produces a new
// graph.
type DesignGraph struct {
	Nodes     map[NodeID]*Node  `json:"nodes"`
	Roots     []NodeID          `json:"roots"`
	NameIndex map[string]NodeID `json:"name_index"`
	Defaults  GlobalDefaults    `json:"defaults"`
	Version   uint64            `json:"version"`
}

// New creates an empty DesignGraph with default settings.
func New() *DesignGraph {
	return &DesignGraph{
		Nodes:     make(map[NodeID]*Node),
		NameIndex: make(map[string]NodeID),
		Defaults: GlobalDefaults{
			Tolerance: DefaultTolerance,
			Units:     "mm",
		},
	}
}

// AddNode adds a node to the graph. It does not check for duplicates.
func (g *DesignGraph) AddNode(n *Node) {
	g.Nodes[n.ID] = n
	if n.Name != "" {
		g.NameIndex[n.Name] = n.ID
	}
}

// AddRoot registers a node ID as a root of the graph.
func (g *DesignGraph) AddRoot(id NodeID) {
	g.Roots = append(g.Roots, id)
}

// Lookup returns the node with the given user-assigned name, or nil.
func (g *DesignGraph) Lookup(name string) *Node {
	id, ok := g.NameIndex[name]
	if !ok {
		return nil
	}
	return g.Nodes[id]
}

// MustLookup returns the node with the given name, or panics.
func (g *DesignGraph) MustLookup(name string) *Node {
	n := g.Lookup(name)
	if n == nil {
		panic(fmt.Sprintf("graph: no node named %q", name))
	}
	return n
}

// Get returns the node with the given ID, or nil.
func (g *DesignGraph) Get(id NodeID) *Node {
	return g.Nodes[id]
}

// Primitives returns all primitive nodes in the graph.
func (g *DesignGraph) Primitives() []*Node {
	var prims []*Node
	for _, n := range g.Nodes {
		if n.Kind == NodePrimitive {
			prims = append(prims, n)
		}
	}
	return prims
}

// Children returns the child nodes of the given node.
func (g *DesignGraph) Children(n *Node) []*Node {
	children := make([]*Node, 0, len(n.Children))
	for _, cid := range n.Children {
		if c := g.Nodes[cid]; c != nil {
			children = append(children, c)
		}
	}
	return children
}

// edges returns every ID n depends on: its children and its data
// references.
func edges(n *Node) []NodeID {
	refs := References(n.Data)
	if len(refs) == 0 {
		return n.Children
	}
	out := make([]NodeID, 0, len(n.Children)+len(refs))
	out = append(out, n.Children...)
	return append(out, refs...)
}

// ProducesCurve reports whether the node with the given ID resolves to a
// single curve: a curve primitive, or a placement of exactly one node that
// produces a curve.
func (g *DesignGraph) ProducesCurve(id NodeID) bool {
	seen := make(map[NodeID]bool)
	for {
		if seen[id] {
			return false
		}
		seen[id] = true

		n := g.Nodes[id]
		if n == nil {
			return false
		}
		switch n.Kind {
		case NodePrimitive:
			k, ok := Kind(n.Data)
			return ok && IsCurveKind(k)
		case NodeTransform:
			if len(n.Children) != 1 {
				return false
			}
			id = n.Children[0]
		default:
			return false
		}
	}
}

// NodeCount returns the total number of nodes.
func (g *DesignGraph) NodeCount() int {
	return len(g.Nodes)
}

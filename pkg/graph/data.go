package graph

// ---------------------------------------------------------------------------
// Primitives
// ---------------------------------------------------------------------------

// PrimitiveKind distinguishes between primitive constructions.
type PrimitiveKind int

const (
	PrimPolyline  PrimitiveKind = iota // degree-1 curve through points
	PrimArc                            // circular or elliptical arc
	PrimBezier                         // single-span rational Bézier
	PrimExtrude                        // profile translated along an axis
	PrimSweep                          // profile translated along a rail
	PrimRevolve                        // profile rotated about an axis
	PrimCylinder                       // circle extruded along its normal
	PrimSphere                         // half circle revolved a full turn
	PrimCone                           // line revolved a full turn
	PrimPatch                          // bilinear four-point patch
)

func (k PrimitiveKind) String() string {
	switch k {
	case PrimPolyline:
		return "polyline"
	case PrimArc:
		return "arc"
	case PrimBezier:
		return "bezier"
	case PrimExtrude:
		return "extrude"
	case PrimSweep:
		return "sweep"
	case PrimRevolve:
		return "revolve"
	case PrimCylinder:
		return "cylinder"
	case PrimSphere:
		return "sphere"
	case PrimCone:
		return "cone"
	case PrimPatch:
		return "patch"
	default:
		return "unknown"
	}
}

// PolylineData is a polyline through Points.
type PolylineData struct {
	Points []Vec3 `json:"points"`
}

func (PolylineData) nodeData() {}

// ArcData is an elliptical arc; circular when XRadius == YRadius. Angles
// are in radians. End < Start means the full ellipse from Start.
type ArcData struct {
	Center  Vec3    `json:"center"`
	XAxis   Vec3    `json:"x_axis"`
	YAxis   Vec3    `json:"y_axis"`
	XRadius float64 `json:"x_radius"`
	YRadius float64 `json:"y_radius"`
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
}

func (ArcData) nodeData() {}

// BezierData is a rational Bézier curve. Nil Weights means all ones.
type BezierData struct {
	Points  []Vec3    `json:"points"`
	Weights []float64 `json:"weights,omitempty"`
}

func (BezierData) nodeData() {}

// ExtrudeData translates the curve produced by Profile along Axis·Length.
type ExtrudeData struct {
	Profile NodeID  `json:"profile"`
	Axis    Vec3    `json:"axis"`
	Length  float64 `json:"length"`
}

func (ExtrudeData) nodeData() {}

// SweepData translates Profile along Rail.
type SweepData struct {
	Profile NodeID `json:"profile"`
	Rail    NodeID `json:"rail"`
}

func (SweepData) nodeData() {}

// RevolveData rotates Profile by Angle radians about the axis through
// Center.
type RevolveData struct {
	Profile NodeID  `json:"profile"`
	Center  Vec3    `json:"center"`
	Axis    Vec3    `json:"axis"`
	Angle   float64 `json:"angle"`
}

func (RevolveData) nodeData() {}

// CylinderData is the side of a cylinder standing on Base.
type CylinderData struct {
	Base   Vec3    `json:"base"`
	Axis   Vec3    `json:"axis"`
	XAxis  Vec3    `json:"x_axis"`
	Height float64 `json:"height"`
	Radius float64 `json:"radius"`
}

func (CylinderData) nodeData() {}

// SphereData is a sphere whose poles lie along Axis.
type SphereData struct {
	Center Vec3    `json:"center"`
	Axis   Vec3    `json:"axis"`
	XAxis  Vec3    `json:"x_axis"`
	Radius float64 `json:"radius"`
}

func (SphereData) nodeData() {}

// ConeData is the side of a cone with its base circle on Base and apex
// Height along Axis.
type ConeData struct {
	Base   Vec3    `json:"base"`
	Axis   Vec3    `json:"axis"`
	XAxis  Vec3    `json:"x_axis"`
	Height float64 `json:"height"`
	Radius float64 `json:"radius"`
}

func (ConeData) nodeData() {}

// PatchData is a bilinear patch with corners in counter-clockwise order.
type PatchData struct {
	Corners [4]Vec3 `json:"corners"`
	Degree  int     `json:"degree"`
}

func (PatchData) nodeData() {}

// ---------------------------------------------------------------------------
// Transform
// ---------------------------------------------------------------------------

// TransformData represents a spatial transformation applied to a child node.
// Created by the (place ...) form.
type TransformData struct {
	Translation *Vec3 `json:"translation,omitempty"`
	Rotation    *Vec3 `json:"rotation,omitempty"` // Euler angles in degrees
}

func (TransformData) nodeData() {}

// ---------------------------------------------------------------------------
// Group
// ---------------------------------------------------------------------------

// GroupData represents a logical grouping.
// Created by the (group ...) form.
type GroupData struct {
	Description string `json:"description,omitempty"`
}

func (GroupData) nodeData() {}

// ---------------------------------------------------------------------------
// Classification
// ---------------------------------------------------------------------------

// Kind returns the primitive kind of a primitive payload, and false for
// transform and group payloads.
func Kind(d NodeData) (PrimitiveKind, bool) {
	switch d.(type) {
	case PolylineData:
		return PrimPolyline, true
	case ArcData:
		return PrimArc, true
	case BezierData:
		return PrimBezier, true
	case ExtrudeData:
		return PrimExtrude, true
	case SweepData:
		return PrimSweep, true
	case RevolveData:
		return PrimRevolve, true
	case CylinderData:
		return PrimCylinder, true
	case SphereData:
		return PrimSphere, true
	case ConeData:
		return PrimCone, true
	case PatchData:
		return PrimPatch, true
	default:
		return 0, false
	}
}

// IsCurveKind reports whether primitives of kind k produce curves rather
// than surfaces.
func IsCurveKind(k PrimitiveKind) bool {
	switch k {
	case PrimPolyline, PrimArc, PrimBezier:
		return true
	default:
		return false
	}
}

// References returns the IDs a payload refers to outside of a node's
// Children: the profiles and rails consumed by surface constructions.
func References(d NodeData) []NodeID {
	switch d := d.(type) {
	case ExtrudeData:
		return []NodeID{d.Profile}
	case SweepData:
		return []NodeID{d.Profile, d.Rail}
	case RevolveData:
		return []NodeID{d.Profile}
	default:
		return nil
	}
}

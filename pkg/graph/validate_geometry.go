package graph

import (
	"fmt"
	"math"
)

// ---------------------------------------------------------------------------
// Tier 2: Geometric validation (errors + warnings)
// ---------------------------------------------------------------------------

// validateGeometry runs all Tier 2 geometric checks.
// Returns errors (blocking) and warnings (advisory) separately.
func validateGeometry(g *DesignGraph) ([]ValidationError, []ValidationWarning) {
	var errs []ValidationError
	var warnings []ValidationWarning

	for _, node := range g.Nodes {
		for _, msg := range geometryErrors(node.Data) {
			errs = append(errs, ValidationError{
				NodeID:   node.ID,
				Message:  msg,
				Severity: SeverityError,
			})
		}
	}

	warnings = append(warnings, validateExtrusions(g)...)

	return errs, warnings
}

// geometryErrors returns the blocking problems with a single payload.
func geometryErrors(d NodeData) []string {
	var msgs []string
	positive := func(what string, v float64) {
		if !(v > 0) || math.IsInf(v, 0) {
			msgs = append(msgs, fmt.Sprintf("%s is %.4g, must be positive", what, v))
		}
	}
	nonZero := func(what string, v Vec3) {
		if v.Length() == 0 {
			msgs = append(msgs, fmt.Sprintf("%s is zero", what))
		}
	}

	switch d := d.(type) {
	case PolylineData:
		if len(d.Points) < 2 {
			msgs = append(msgs, fmt.Sprintf("polyline has %d points, needs at least 2", len(d.Points)))
			break
		}
		var total float64
		for i := 1; i < len(d.Points); i++ {
			total += d.Points[i].Add(d.Points[i-1].Scale(-1)).Length()
		}
		if total == 0 {
			msgs = append(msgs, "polyline has zero length")
		}

	case ArcData:
		positive("x radius", d.XRadius)
		positive("y radius", d.YRadius)
		nonZero("x axis", d.XAxis)
		nonZero("y axis", d.YAxis)
		if d.Start < 0 {
			msgs = append(msgs, fmt.Sprintf("start angle %.4g is negative", d.Start))
		}

	case BezierData:
		if len(d.Points) < 2 {
			msgs = append(msgs, fmt.Sprintf("bezier has %d points, needs at least 2", len(d.Points)))
		}
		if d.Weights != nil && len(d.Weights) != len(d.Points) {
			msgs = append(msgs, fmt.Sprintf("bezier has %d weights for %d points", len(d.Weights), len(d.Points)))
		}
		for i, w := range d.Weights {
			positive(fmt.Sprintf("weight %d", i), w)
		}

	case ExtrudeData:
		nonZero("extrusion axis", d.Axis)

	case RevolveData:
		nonZero("revolution axis", d.Axis)
		if !(d.Angle > 0) || d.Angle > 2*math.Pi {
			msgs = append(msgs, fmt.Sprintf("revolution angle %.4g must be in (0, 2π]", d.Angle))
		}

	case CylinderData:
		nonZero("axis", d.Axis)
		nonZero("x axis", d.XAxis)
		positive("height", d.Height)
		positive("radius", d.Radius)

	case SphereData:
		nonZero("axis", d.Axis)
		nonZero("x axis", d.XAxis)
		positive("radius", d.Radius)

	case ConeData:
		nonZero("axis", d.Axis)
		nonZero("x axis", d.XAxis)
		positive("height", d.Height)
		positive("radius", d.Radius)

	case PatchData:
		if d.Degree < 1 {
			msgs = append(msgs, fmt.Sprintf("patch degree %d must be at least 1", d.Degree))
		}
	}

	return msgs
}

// validateExtrusions warns about extrusions that are legal but probably
// not what was meant: zero length gives a flat surface, and a non-unit
// axis scales the distance travelled.
func validateExtrusions(g *DesignGraph) []ValidationWarning {
	var warnings []ValidationWarning

	for _, node := range g.Nodes {
		ed, ok := node.Data.(ExtrudeData)
		if !ok {
			continue
		}
		if ed.Length == 0 {
			warnings = append(warnings, ValidationWarning{
				NodeID:  node.ID,
				Message: "extrusion length is zero; the surface is degenerate",
			})
		}
		if l := ed.Axis.Length(); l != 0 && math.Abs(l-1) > 1e-9 {
			warnings = append(warnings, ValidationWarning{
				NodeID: node.ID,
				Message: fmt.Sprintf(
					"extrusion axis %s has length %.4g; the profile travels %.4g, not %.4g",
					ed.Axis, l, l*ed.Length, ed.Length,
				),
			})
		}
	}

	return warnings
}

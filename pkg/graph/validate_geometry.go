package graph

import "fmt"

// ---------------------------------------------------------------------------
// Tier 2: Geometric validation (errors + warnings)
// ---------------------------------------------------------------------------

// validateGeometry runs all Tier 2 geometric checks.
// Returns errors (blocking) and warnings (advisory) separately.
func validateGeometry(g *SceneGraph) ([]ValidationError, []ValidationWarning) {
	var errs []ValidationError
	var warnings []ValidationWarning

	errs = append(errs, validatePositiveDimensions(g)...)
	warnings = append(warnings, validateSegments(g)...)

	return errs, warnings
}

// validatePositiveDimensions checks that every box has positive X, Y, Z and
// every cylinder a positive height and radius.
func validatePositiveDimensions(g *SceneGraph) []ValidationError {
	var errs []ValidationError

	positive := func(node *Node, what string, v float64) {
		if v <= 0 {
			errs = append(errs, ValidationError{
				NodeID:   node.ID,
				Message:  fmt.Sprintf("%s is %.4f, must be positive", what, v),
				Severity: SeverityError,
			})
		}
	}

	for _, node := range g.Nodes {
		switch d := node.Data.(type) {
		case BoxData:
			positive(node, "box dimension X", d.Dimensions.X)
			positive(node, "box dimension Y", d.Dimensions.Y)
			positive(node, "box dimension Z", d.Dimensions.Z)
		case CylinderData:
			positive(node, "cylinder height", d.Height)
			positive(node, "cylinder radius", d.Radius)
		}
	}

	return errs
}

// validateSegments warns about cylinders too coarse to enclose any volume;
// faceted kernels clamp them to a triangle.
func validateSegments(g *SceneGraph) []ValidationWarning {
	var warnings []ValidationWarning
	for _, node := range g.Nodes {
		if d, ok := node.Data.(CylinderData); ok && d.Segments < 3 {
			warnings = append(warnings, ValidationWarning{
				NodeID:  node.ID,
				Message: fmt.Sprintf("cylinder has %d segments, at least 3 are used", d.Segments),
			})
		}
	}
	return warnings
}

// ---------------------------------------------------------------------------
// Tier 3: Material warnings
// ---------------------------------------------------------------------------

// validateMaterial warns about solids that carry no material when the graph
// has no default either; the exporter will fall back to its own default.
func validateMaterial(g *SceneGraph) []ValidationWarning {
	if g.Defaults.Material != "" {
		return nil
	}
	var warnings []ValidationWarning
	for _, node := range g.Nodes {
		if d, ok := node.Data.(SolidData); ok && d.Material == "" {
			warnings = append(warnings, ValidationWarning{
				NodeID:  node.ID,
				Message: fmt.Sprintf("solid %q has no material", node.Name),
			})
		}
	}
	return warnings
}

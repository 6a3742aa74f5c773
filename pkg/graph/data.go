package graph

// ---------------------------------------------------------------------------
// Primitives
// ---------------------------------------------------------------------------

// PrimitiveKind distinguishes between primitive shapes.
type PrimitiveKind int

const (
	PrimBox      PrimitiveKind = iota // rectangular solid, min corner at origin
	PrimCylinder                      // cylinder, base centred on origin, axis +Z
)

// DefaultSegments is the polygon count used for cylinders when none is given.
const DefaultSegments = 32

// BoxData is a rectangular primitive.
type BoxData struct {
	Dimensions Vec3 `json:"dimensions"` // x, y, z extents in mm
}

func (BoxData) nodeData() {}

// CylinderData is a cylindrical primitive.
type CylinderData struct {
	Height   float64 `json:"height"`   // mm
	Radius   float64 `json:"radius"`   // mm
	Segments int     `json:"segments"` // polygon count for faceted kernels
}

func (CylinderData) nodeData() {}

// ---------------------------------------------------------------------------
// Transform
// ---------------------------------------------------------------------------

// TransformData represents a spatial transformation applied to a child node.
// Created by the (place ...) form. Rotation is applied before translation.
type TransformData struct {
	Translation *Vec3 `json:"translation,omitempty"`
	Rotation    *Vec3 `json:"rotation,omitempty"` // Euler angles in degrees
}

func (TransformData) nodeData() {}

// ---------------------------------------------------------------------------
// Boolean
// ---------------------------------------------------------------------------

// BooleanOp enumerates constructive operations.
type BooleanOp int

const (
	OpUnion BooleanOp = iota
	OpDifference
	OpIntersection
)

func (op BooleanOp) String() string {
	switch op {
	case OpUnion:
		return "union"
	case OpDifference:
		return "difference"
	case OpIntersection:
		return "intersection"
	default:
		return "unknown"
	}
}

// BooleanData combines exactly two child shapes.
type BooleanData struct {
	Op BooleanOp `json:"op"`
}

func (BooleanData) nodeData() {}

// ---------------------------------------------------------------------------
// Solid
// ---------------------------------------------------------------------------

// SolidData marks an exported solid. Its single child is the shape.
// An empty Material means the exporter's default applies.
type SolidData struct {
	Material string `json:"material,omitempty"`
}

func (SolidData) nodeData() {}

// ---------------------------------------------------------------------------
// Group
// ---------------------------------------------------------------------------

// GroupData represents a logical grouping (scene, subassembly).
// Created by the (scene ...) form.
type GroupData struct {
	Description string `json:"description,omitempty"`
}

func (GroupData) nodeData() {}

// Package kernel defines the abstract geometry kernel interface.
// Implementations (brep, sdfx, manifold) own the boundary representation of a solid
// and expose it as per-face triangulations; the rest of the exporter only
// consumes those triangulations and never builds geometry itself.
package kernel

import "github.com/go-gl/mathgl/mgl64"

// Solid is an opaque handle to a geometry kernel solid.
// Implementations wrap their internal representation.
type Solid interface {
	// BoundingBox returns the axis-aligned bounding box computed from the
	// kernel's native geometry, not from a tessellation of it.
	BoundingBox() (min, max mgl64.Vec3)

	// Faces returns the solid's faces in kernel-defined order.
	Faces() []Face
}

// Kernel is the abstract geometry kernel interface.
type Kernel interface {
	// Primitives
	Box(x, y, z float64) Solid
	Cylinder(height, radius float64, segments int) Solid

	// Transforms
	Translate(s Solid, x, y, z float64) Solid
	Rotate(s Solid, x, y, z float64) Solid // Euler angles in degrees
}

// Booleans is implemented by kernels that support constructive operations.
type Booleans interface {
	Union(a, b Solid) Solid
	Difference(a, b Solid) Solid
	Intersection(a, b Solid) Solid
}

// Emptier is implemented by solids that can hold no geometry at all, such
// as an imported object without a mesh.
type Emptier interface {
	// Empty reports whether the solid has no geometric extent. Its
	// BoundingBox is then meaningless.
	Empty() bool
}

// IsEmpty reports whether s is known to have no geometric extent.
func IsEmpty(s Solid) bool {
	e, ok := s.(Emptier)
	return ok && e.Empty()
}

// NamedSolid is a solid together with the name and material label the
// caller assigned to it for export.
type NamedSolid struct {
	Solid    Solid
	Name     string
	Material string
}

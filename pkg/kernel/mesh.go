package kernel

import "github.com/go-gl/mathgl/mgl64"

// Mesh is the deduplicated triangle mesh of a single solid.
// Triangle indices refer to this mesh's own vertex list and are wound
// counter-clockwise as seen from outside the solid.
type Mesh struct {
	Vertices  []mgl64.Vec3
	Triangles [][3]uint32
	Name      string // which solid this came from
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Triangles)
}

// IsEmpty returns true if the mesh has no geometry.
func (m *Mesh) IsEmpty() bool {
	return len(m.Triangles) == 0
}

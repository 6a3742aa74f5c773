// Package brep implements kernel.Kernel as a small polyhedral boundary
// representation. Every solid is a list of planar or ruled faces, each with
// its own triangulation in face-local space and a placement chain. Placement
// matrices for the axis-aligned faces are exact 0/1 permutations, so corners
// shared between faces come out bit-identical.
package brep

import (
	"fmt"
	"math"

	"github.com/chazu/gdmlexport/pkg/kernel"
	"github.com/go-gl/mathgl/mgl64"
)

// Compile-time interface check.
var (
	_ kernel.Kernel  = (*BrepKernel)(nil)
	_ kernel.Emptier = (*Solid)(nil)
)

// MinSegments is the smallest polygon used to approximate a circle.
const MinSegments = 3

// Solid is a boundary-represented solid. Faces are stored in the solid's
// own frame; placement holds the transforms applied to the whole solid.
type Solid struct {
	faces     []kernel.Face
	placement kernel.Location
	min, max  mgl64.Vec3
	empty     bool // no nodes; min and max are unset
}

// NewSolid builds a solid from already-triangulated faces. The bounding box
// is the extent of the placed nodes; a solid without nodes is Empty.
func NewSolid(faces []kernel.Face) *Solid {
	s := &Solid{faces: faces, empty: true}
	for _, f := range faces {
		for _, n := range f.Nodes {
			p := f.Location.Apply(n)
			if s.empty {
				s.min, s.max = p, p
				s.empty = false
				continue
			}
			for i := 0; i < 3; i++ {
				s.min[i] = math.Min(s.min[i], p[i])
				s.max[i] = math.Max(s.max[i], p[i])
			}
		}
	}
	return s
}

// BoundingBox returns the box computed from the solid's defining geometry.
func (s *Solid) BoundingBox() (min, max mgl64.Vec3) {
	return s.min, s.max
}

// Empty reports whether the solid has no nodes and so no extent.
func (s *Solid) Empty() bool {
	return s.empty
}

// Faces returns the faces with the solid's placement appended to each
// face location.
func (s *Solid) Faces() []kernel.Face {
	out := make([]kernel.Face, len(s.faces))
	for i, f := range s.faces {
		loc := make(kernel.Location, 0, len(f.Location)+len(s.placement))
		loc = append(loc, f.Location...)
		loc = append(loc, s.placement...)
		f.Location = loc
		out[i] = f
	}
	return out
}

// transformed returns a copy of s with m applied after its placement.
func (s *Solid) transformed(m mgl64.Mat4) *Solid {
	out := &Solid{
		faces:     s.faces,
		placement: s.placement.Then(m),
		empty:     s.empty,
	}
	if s.empty {
		return out
	}
	first := true
	for _, c := range corners(s.min, s.max) {
		p := m.Mul4x1(c.Vec4(1)).Vec3()
		if first {
			out.min, out.max = p, p
			first = false
			continue
		}
		for i := 0; i < 3; i++ {
			out.min[i] = math.Min(out.min[i], p[i])
			out.max[i] = math.Max(out.max[i], p[i])
		}
	}
	return out
}

func corners(min, max mgl64.Vec3) [8]mgl64.Vec3 {
	var cs [8]mgl64.Vec3
	for i := 0; i < 8; i++ {
		for axis := 0; axis < 3; axis++ {
			if i&(1<<axis) != 0 {
				cs[i][axis] = max[axis]
			} else {
				cs[i][axis] = min[axis]
			}
		}
	}
	return cs
}

// BrepKernel implements kernel.Kernel with polyhedral solids.
type BrepKernel struct{}

// New returns a new BrepKernel.
func New() *BrepKernel {
	return &BrepKernel{}
}

func unwrap(s kernel.Solid) *Solid {
	b, ok := s.(*Solid)
	if !ok {
		panic(fmt.Sprintf("brep: solid of type %T was not created by this kernel", s))
	}
	return b
}

// rect returns a face-local rectangle in the XY plane, wound CCW about +Z.
func rect(a, b float64) ([]mgl64.Vec3, [][3]int) {
	nodes := []mgl64.Vec3{{0, 0, 0}, {a, 0, 0}, {a, b, 0}, {0, b, 0}}
	return nodes, [][3]int{{0, 1, 2}, {0, 2, 3}}
}

// axis placements: local X, Y, Z map to the given solid axes.
var (
	planeXY = mgl64.Ident4()
	planeYZ = mgl64.Mat4FromCols(
		mgl64.Vec4{0, 1, 0, 0},
		mgl64.Vec4{0, 0, 1, 0},
		mgl64.Vec4{1, 0, 0, 0},
		mgl64.Vec4{0, 0, 0, 1},
	)
	planeZX = mgl64.Mat4FromCols(
		mgl64.Vec4{0, 0, 1, 0},
		mgl64.Vec4{1, 0, 0, 0},
		mgl64.Vec4{0, 1, 0, 0},
		mgl64.Vec4{0, 0, 0, 1},
	)
)

// Box creates a box with its minimum corner at the origin. The three faces
// on the minimum planes share their plane orientation with the opposite
// face and are flagged Reversed.
func (k *BrepKernel) Box(x, y, z float64) kernel.Solid {
	if x < 0 || y < 0 || z < 0 {
		panic(fmt.Sprintf("brep.Box: negative dimension (%g, %g, %g)", x, y, z))
	}
	face := func(a, b float64, plane mgl64.Mat4, offset mgl64.Vec3, reversed bool) kernel.Face {
		nodes, tris := rect(a, b)
		loc := kernel.Location{plane}
		if offset != (mgl64.Vec3{}) {
			loc = loc.Then(mgl64.Translate3D(offset[0], offset[1], offset[2]))
		}
		return kernel.Face{Nodes: nodes, Triangles: tris, Location: loc, Reversed: reversed}
	}

	return &Solid{
		faces: []kernel.Face{
			face(x, y, planeXY, mgl64.Vec3{}, true),
			face(x, y, planeXY, mgl64.Vec3{0, 0, z}, false),
			face(y, z, planeYZ, mgl64.Vec3{}, true),
			face(y, z, planeYZ, mgl64.Vec3{x, 0, 0}, false),
			face(z, x, planeZX, mgl64.Vec3{}, true),
			face(z, x, planeZX, mgl64.Vec3{0, y, 0}, false),
		},
		max: mgl64.Vec3{x, y, z},
	}
}

// Cylinder creates a prism approximating a cylinder: base centred on the
// origin, axis along +Z. The bounding box is that of the true cylinder.
func (k *BrepKernel) Cylinder(height, radius float64, segments int) kernel.Solid {
	if height < 0 || radius < 0 {
		panic(fmt.Sprintf("brep.Cylinder: negative dimension (h=%g, r=%g)", height, radius))
	}
	if segments < MinSegments {
		segments = MinSegments
	}

	ring := make([]mgl64.Vec3, segments)
	for i := range ring {
		theta := 2 * math.Pi * float64(i) / float64(segments)
		ring[i] = mgl64.Vec3{radius * math.Cos(theta), radius * math.Sin(theta), 0}
	}

	// Caps: centre node followed by the ring, fanned CCW about +Z.
	capNodes := append([]mgl64.Vec3{{0, 0, 0}}, ring...)
	capTris := make([][3]int, segments)
	for i := 0; i < segments; i++ {
		capTris[i] = [3]int{0, i + 1, (i+1)%segments + 1}
	}

	// Lateral: bottom ring then top ring.
	side := make([]mgl64.Vec3, 0, 2*segments)
	side = append(side, ring...)
	for _, p := range ring {
		side = append(side, mgl64.Vec3{p[0], p[1], height})
	}
	sideTris := make([][3]int, 0, 2*segments)
	for i := 0; i < segments; i++ {
		j := (i + 1) % segments
		sideTris = append(sideTris,
			[3]int{i, j, segments + j},
			[3]int{i, segments + j, segments + i},
		)
	}

	return &Solid{
		faces: []kernel.Face{
			{Nodes: capNodes, Triangles: capTris, Reversed: true},
			{Nodes: capNodes, Triangles: capTris, Location: kernel.Location{mgl64.Translate3D(0, 0, height)}},
			{Nodes: side, Triangles: sideTris},
		},
		min: mgl64.Vec3{-radius, -radius, 0},
		max: mgl64.Vec3{radius, radius, height},
	}
}

// Translate moves a solid by (x, y, z).
func (k *BrepKernel) Translate(s kernel.Solid, x, y, z float64) kernel.Solid {
	return unwrap(s).transformed(mgl64.Translate3D(x, y, z))
}

// Rotate rotates a solid by Euler angles (degrees) around X, Y, Z axes,
// applied X first.
func (k *BrepKernel) Rotate(s kernel.Solid, x, y, z float64) kernel.Solid {
	m := mgl64.HomogRotate3DZ(mgl64.DegToRad(z)).
		Mul4(mgl64.HomogRotate3DY(mgl64.DegToRad(y))).
		Mul4(mgl64.HomogRotate3DX(mgl64.DegToRad(x)))
	return unwrap(s).transformed(m)
}

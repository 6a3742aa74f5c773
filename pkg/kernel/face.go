package kernel

import "github.com/go-gl/mathgl/mgl64"

// Face is one triangulated boundary face of a solid.
//
// Nodes are in face-local space; Location places them in the solid's frame.
// Triangles index into Nodes and are wound counter-clockwise about the
// face's own (local) normal. Reversed is set when the face's orientation is
// opposite to the solid's outward direction.
type Face struct {
	Nodes     []mgl64.Vec3
	Triangles [][3]int
	Location  Location
	Reversed  bool
}

// Triangulated reports whether the kernel produced a triangulation for
// this face.
func (f Face) Triangulated() bool {
	return len(f.Nodes) > 0 && len(f.Triangles) > 0
}

// Location is a chain of placement matrices applied innermost first.
// Keeping the chain instead of a single product keeps points that are
// bit-identical after the inner placements bit-identical after the outer
// ones, regardless of which face they came from.
type Location []mgl64.Mat4

// Identity is the empty location.
var Identity Location

// Apply maps a face-local point through every matrix in the chain.
func (l Location) Apply(p mgl64.Vec3) mgl64.Vec3 {
	for _, m := range l {
		p = m.Mul4x1(p.Vec4(1)).Vec3()
	}
	return p
}

// Then returns a new location that applies m after l.
func (l Location) Then(m mgl64.Mat4) Location {
	out := make(Location, len(l), len(l)+1)
	copy(out, l)
	return append(out, m)
}

// Mirrored reports whether the chain flips handedness.
func (l Location) Mirrored() bool {
	mirrored := false
	for _, m := range l {
		if m.Mat3().Det() < 0 {
			mirrored = !mirrored
		}
	}
	return mirrored
}

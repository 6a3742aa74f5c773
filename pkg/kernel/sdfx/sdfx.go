// Package sdfx implements the kernel.Kernel interface using the
// github.com/deadsy/sdfx SDF-based CAD library.
//
// SDF solids have no native faces. Faces() runs marching cubes and returns
// the result as one triangle-soup face; the mesh assembler merges the
// repeated corners.
package sdfx

import (
	"fmt"
	"math"

	"github.com/chazu/gdmlexport/pkg/kernel"
	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/go-gl/mathgl/mgl64"
)

// Compile-time interface checks.
var (
	_ kernel.Kernel   = (*SdfxKernel)(nil)
	_ kernel.Booleans = (*SdfxKernel)(nil)
)

// DefaultMeshCells controls marching cubes tessellation resolution.
const DefaultMeshCells = 200

// sdfxSolid wraps an sdf.SDF3 to implement kernel.Solid.
type sdfxSolid struct {
	s     sdf.SDF3
	cells int
}

// BoundingBox returns the axis-aligned bounding box of the SDF.
func (s *sdfxSolid) BoundingBox() (min, max mgl64.Vec3) {
	bb := s.s.BoundingBox()
	return toVec(bb.Min), toVec(bb.Max)
}

// Faces tessellates the SDF with marching cubes. Every triangle carries its
// own three nodes.
func (s *sdfxSolid) Faces() []kernel.Face {
	triangles := render.ToTriangles(s.s, render.NewMarchingCubesUniform(s.cells))
	if len(triangles) == 0 {
		return nil
	}

	face := kernel.Face{
		Nodes:     make([]mgl64.Vec3, 0, len(triangles)*3),
		Triangles: make([][3]int, 0, len(triangles)),
	}
	for i, tri := range triangles {
		for j := 0; j < 3; j++ {
			face.Nodes = append(face.Nodes, toVec(tri[j]))
		}
		face.Triangles = append(face.Triangles, [3]int{i * 3, i*3 + 1, i*3 + 2})
	}
	return []kernel.Face{face}
}

func toVec(v v3.Vec) mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

// SdfxKernel implements kernel.Kernel using sdfx.
type SdfxKernel struct {
	cells int
}

// New returns a new SdfxKernel using DefaultMeshCells.
func New() *SdfxKernel {
	return &SdfxKernel{cells: DefaultMeshCells}
}

// NewWithResolution returns a kernel whose solids are tessellated with the
// given number of marching-cubes cells along the longest axis.
func NewWithResolution(cells int) *SdfxKernel {
	if cells <= 0 {
		cells = DefaultMeshCells
	}
	return &SdfxKernel{cells: cells}
}

// Resolution returns the marching-cubes cell count.
func (k *SdfxKernel) Resolution() int {
	return k.cells
}

// unwrap extracts the underlying sdf.SDF3 from a kernel.Solid.
func unwrap(s kernel.Solid) sdf.SDF3 {
	w, ok := s.(*sdfxSolid)
	if !ok {
		panic(fmt.Sprintf("sdfx: solid of type %T was not created by this kernel", s))
	}
	return w.s
}

// wrap creates a kernel.Solid from an sdf.SDF3.
func (k *SdfxKernel) wrap(s sdf.SDF3) kernel.Solid {
	return &sdfxSolid{s: s, cells: k.cells}
}

// Box creates a box with the given dimensions. The resulting solid has its
// minimum corner at the origin (0,0,0) so that placement translations work
// intuitively: (place :at (vec3 10 0 0)) puts the box's corner at x=10.
// sdf.Box3D centers the box at the origin, so we translate by half-dimensions.
func (k *SdfxKernel) Box(x, y, z float64) kernel.Solid {
	s, err := sdf.Box3D(v3.Vec{X: x, Y: y, Z: z}, 0)
	if err != nil {
		panic(fmt.Sprintf("sdfx.Box3D: %v", err))
	}
	m := sdf.Translate3d(v3.Vec{X: x / 2, Y: y / 2, Z: z / 2})
	return k.wrap(sdf.Transform3D(s, m))
}

// Cylinder creates a cylinder with the given height and radius, its base
// centred on the origin and its axis along +Z.
// The segments parameter is ignored since SDF represents smooth surfaces.
func (k *SdfxKernel) Cylinder(height, radius float64, segments int) kernel.Solid {
	s, err := sdf.Cylinder3D(height, radius, 0)
	if err != nil {
		panic(fmt.Sprintf("sdfx.Cylinder3D: %v", err))
	}
	m := sdf.Translate3d(v3.Vec{X: 0, Y: 0, Z: height / 2})
	return k.wrap(sdf.Transform3D(s, m))
}

// Union returns the union of two solids.
func (k *SdfxKernel) Union(a, b kernel.Solid) kernel.Solid {
	return k.wrap(sdf.Union3D(unwrap(a), unwrap(b)))
}

// Difference returns the difference a - b.
func (k *SdfxKernel) Difference(a, b kernel.Solid) kernel.Solid {
	return k.wrap(sdf.Difference3D(unwrap(a), unwrap(b)))
}

// Intersection returns the intersection of two solids.
func (k *SdfxKernel) Intersection(a, b kernel.Solid) kernel.Solid {
	return k.wrap(sdf.Intersect3D(unwrap(a), unwrap(b)))
}

// Translate moves a solid by (x, y, z).
func (k *SdfxKernel) Translate(s kernel.Solid, x, y, z float64) kernel.Solid {
	m := sdf.Translate3d(v3.Vec{X: x, Y: y, Z: z})
	return k.wrap(sdf.Transform3D(unwrap(s), m))
}

// Rotate rotates a solid by Euler angles (degrees) around X, Y, Z axes.
func (k *SdfxKernel) Rotate(s kernel.Solid, x, y, z float64) kernel.Solid {
	xRad := x * math.Pi / 180.0
	yRad := y * math.Pi / 180.0
	zRad := z * math.Pi / 180.0

	m := sdf.RotateZ(zRad).Mul(sdf.RotateY(yRad)).Mul(sdf.RotateX(xRad))
	return k.wrap(sdf.Transform3D(unwrap(s), m))
}

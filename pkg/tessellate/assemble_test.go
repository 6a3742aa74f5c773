package tessellate_test

import (
	"errors"
	"math"
	"testing"

	"github.com/chazu/gdmlexport/pkg/kernel"
	"github.com/chazu/gdmlexport/pkg/kernel/brep"
	"github.com/chazu/gdmlexport/pkg/kernel/sdfx"
	"github.com/chazu/gdmlexport/pkg/tessellate"
	"github.com/go-gl/mathgl/mgl64"
)

// checkIndices fails the test if any triangle index is outside the mesh.
func checkIndices(t *testing.T, m *kernel.Mesh) {
	t.Helper()
	for i, tri := range m.Triangles {
		for _, idx := range tri {
			if int(idx) >= len(m.Vertices) {
				t.Fatalf("triangle %d index %d >= vertex count %d", i, idx, len(m.Vertices))
			}
		}
	}
}

// checkOutward fails the test if any triangle of a convex mesh faces
// toward the mesh centre.
func checkOutward(t *testing.T, m *kernel.Mesh, centre mgl64.Vec3) {
	t.Helper()
	for i, tri := range m.Triangles {
		a, b, c := m.Vertices[tri[0]], m.Vertices[tri[1]], m.Vertices[tri[2]]
		n := b.Sub(a).Cross(c.Sub(a))
		mid := a.Add(b).Add(c).Mul(1.0 / 3)
		if n.Dot(mid.Sub(centre)) <= 0 {
			t.Errorf("triangle %d (%v %v %v) is wound inward", i, a, b, c)
		}
	}
}

func TestAssembleUnitCube(t *testing.T) {
	cube := brep.New().Box(1, 1, 1)
	m, st, err := tessellate.AssembleWithStats(cube)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if m.VertexCount() != 8 {
		t.Errorf("vertices = %d, want 8", m.VertexCount())
	}
	if m.TriangleCount() != 12 {
		t.Errorf("triangles = %d, want 12", m.TriangleCount())
	}
	if st.Faces != 6 || st.SkippedFaces != 0 {
		t.Errorf("stats faces = %d skipped = %d, want 6 and 0", st.Faces, st.SkippedFaces)
	}
	if st.InputNodes != 24 {
		t.Errorf("input nodes = %d, want 24", st.InputNodes)
	}
	if st.Vertices != m.VertexCount() || st.Triangles != m.TriangleCount() {
		t.Errorf("stats %+v disagree with mesh counts", st)
	}
	checkIndices(t, m)
	checkOutward(t, m, mgl64.Vec3{0.5, 0.5, 0.5})
}

func TestAssembleSharedEdge(t *testing.T) {
	// Two triangles of a unit square, each its own face.
	s := brep.NewSolid([]kernel.Face{
		{
			Nodes:     []mgl64.Vec3{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}},
			Triangles: [][3]int{{0, 1, 2}},
		},
		{
			Nodes:     []mgl64.Vec3{{0, 0, 0}, {1, 1, 0}, {0, 1, 0}},
			Triangles: [][3]int{{0, 1, 2}},
		},
	})
	m, err := tessellate.Assemble(s)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if m.VertexCount() >= 6 {
		t.Fatalf("vertices = %d, want fewer than the naive 6", m.VertexCount())
	}
	if m.VertexCount() != 4 {
		t.Errorf("vertices = %d, want 4", m.VertexCount())
	}
	// The diagonal (0,0,0)-(1,1,0) must be the same index pair in both.
	first, second := m.Triangles[0], m.Triangles[1]
	if first[0] != second[0] || first[2] != second[1] {
		t.Errorf("shared edge not shared: %v and %v", first, second)
	}
	checkIndices(t, m)
}

func TestAssembleReversedFaceSwapsWinding(t *testing.T) {
	nodes := []mgl64.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}
	tests := []struct {
		name     string
		reversed bool
		want     [3]uint32
	}{
		{"forward", false, [3]uint32{0, 1, 2}},
		{"reversed", true, [3]uint32{0, 2, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := brep.NewSolid([]kernel.Face{{
				Nodes:     nodes,
				Triangles: [][3]int{{0, 1, 2}},
				Reversed:  tt.reversed,
			}})
			m, err := tessellate.Assemble(s)
			if err != nil {
				t.Fatalf("Assemble: %v", err)
			}
			if m.Triangles[0] != tt.want {
				t.Errorf("triangle = %v, want %v", m.Triangles[0], tt.want)
			}
		})
	}
}

func TestAssembleOffsetsLaterFaces(t *testing.T) {
	// Disjoint faces: the second face's indices start after the first's.
	s := brep.NewSolid([]kernel.Face{
		{
			Nodes:     []mgl64.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
			Triangles: [][3]int{{0, 1, 2}},
		},
		{
			Nodes:     []mgl64.Vec3{{5, 0, 0}, {6, 0, 0}, {5, 1, 0}},
			Triangles: [][3]int{{0, 1, 2}},
			Reversed:  true,
		},
	})
	m, err := tessellate.Assemble(s)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if got, want := m.Triangles[1], [3]uint32{3, 5, 4}; got != want {
		t.Errorf("second face triangle = %v, want %v", got, want)
	}
}

func TestAssembleAppliesLocation(t *testing.T) {
	s := brep.NewSolid([]kernel.Face{{
		Nodes:     []mgl64.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		Triangles: [][3]int{{0, 1, 2}},
		Location:  kernel.Location{mgl64.Translate3D(10, 20, 30)},
	}})
	m, err := tessellate.Assemble(s)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if m.Vertices[1] != (mgl64.Vec3{11, 20, 30}) {
		t.Errorf("vertex 1 = %v, want [11 20 30]", m.Vertices[1])
	}
}

func TestAssembleSkipsUntriangulatedFaces(t *testing.T) {
	s := brep.NewSolid([]kernel.Face{
		{},
		{
			Nodes:     []mgl64.Vec3{{0, 0, 0}, {1, 0, 0}},
			Triangles: [][3]int{{0, 1, 2}},
		},
		{
			Nodes:     []mgl64.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
			Triangles: [][3]int{{0, 1, 2}},
		},
	})
	m, st, err := tessellate.AssembleWithStats(s)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if st.SkippedFaces != 2 {
		t.Errorf("skipped = %d, want 2", st.SkippedFaces)
	}
	if m.VertexCount() != 3 || m.TriangleCount() != 1 {
		t.Errorf("mesh = %d vertices / %d triangles, want 3 / 1", m.VertexCount(), m.TriangleCount())
	}
}

func TestAssembleDegenerateSolid(t *testing.T) {
	m, err := tessellate.Assemble(brep.NewSolid([]kernel.Face{{}}))
	if err != nil {
		t.Fatalf("degenerate solid should not be an error: %v", err)
	}
	if !m.IsEmpty() || m.VertexCount() != 0 {
		t.Errorf("mesh = %+v, want empty", m)
	}
}

func TestAssembleNilSolid(t *testing.T) {
	_, err := tessellate.Assemble(nil)
	if !errors.Is(err, tessellate.ErrNilSolid) {
		t.Errorf("err = %v, want ErrNilSolid", err)
	}
}

func TestAssembleTransformedBox(t *testing.T) {
	k := brep.New()
	s := k.Translate(k.Rotate(k.Box(4, 2, 1), 30, 45, 60), -7, 3, 11)
	m, err := tessellate.Assemble(s)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if m.VertexCount() != 8 {
		t.Errorf("vertices = %d, want 8", m.VertexCount())
	}
	checkIndices(t, m)

	var centre mgl64.Vec3
	for _, v := range m.Vertices {
		centre = centre.Add(v)
	}
	checkOutward(t, m, centre.Mul(1.0/8))
}

func TestAssembleCylinder(t *testing.T) {
	m, err := tessellate.Assemble(brep.New().Cylinder(10, 3, 24))
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if m.VertexCount() != 2*24+2 {
		t.Errorf("vertices = %d, want %d", m.VertexCount(), 2*24+2)
	}
	if m.TriangleCount() != 4*24 {
		t.Errorf("triangles = %d, want %d", m.TriangleCount(), 4*24)
	}
	checkOutward(t, m, mgl64.Vec3{0, 0, 5})
}

func TestAssembleTriangleSoup(t *testing.T) {
	m, st, err := tessellate.AssembleWithStats(sdfx.NewWithResolution(20).Box(10, 10, 10))
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if m.IsEmpty() {
		t.Fatal("marching cubes box produced an empty mesh")
	}
	if m.VertexCount() >= st.InputNodes {
		t.Errorf("vertices = %d, want fewer than %d soup nodes", m.VertexCount(), st.InputNodes)
	}
	checkIndices(t, m)
}

func TestAssembleKeepsSignedZerosApart(t *testing.T) {
	negZero := math.Copysign(0, -1)
	face := kernel.Face{
		Nodes: []mgl64.Vec3{
			{0, 0, 0}, {1, 0, 0}, {0, 1, 0},
			{negZero, 0, 0}, {1, 0, 0}, {0, 0, 1},
		},
		Triangles: [][3]int{{0, 1, 2}, {3, 4, 5}},
	}
	m, err := tessellate.Assemble(brep.NewSolid([]kernel.Face{face}))
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	// (1,0,0) is shared; the two origins differ in the sign bit.
	if m.VertexCount() != 5 {
		t.Fatalf("vertices = %d, want 5", m.VertexCount())
	}
	if m.Triangles[0][0] == m.Triangles[1][0] {
		t.Error("+0 and -0 origins were merged")
	}
	if m.Triangles[0][1] != m.Triangles[1][1] {
		t.Error("identical nodes were not merged")
	}
	checkIndices(t, m)
}

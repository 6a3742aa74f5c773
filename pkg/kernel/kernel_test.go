package kernel

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

// --- Mesh helper method tests ---

func TestMeshVertexCount(t *testing.T) {
	tests := []struct {
		name     string
		vertices []mgl64.Vec3
		want     int
	}{
		{"empty", nil, 0},
		{"one vertex", []mgl64.Vec3{{1, 2, 3}}, 1},
		{"four vertices", []mgl64.Vec3{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}}, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &Mesh{Vertices: tt.vertices}
			if got := m.VertexCount(); got != tt.want {
				t.Errorf("VertexCount() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMeshTriangleCount(t *testing.T) {
	tests := []struct {
		name      string
		triangles [][3]uint32
		want      int
	}{
		{"empty", nil, 0},
		{"one triangle", [][3]uint32{{0, 1, 2}}, 1},
		{"two triangles", [][3]uint32{{0, 1, 2}, {2, 3, 0}}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &Mesh{Triangles: tt.triangles}
			if got := m.TriangleCount(); got != tt.want {
				t.Errorf("TriangleCount() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMeshIsEmpty(t *testing.T) {
	t.Run("empty mesh", func(t *testing.T) {
		m := &Mesh{}
		if !m.IsEmpty() {
			t.Error("IsEmpty() = false for empty mesh, want true")
		}
	})
	t.Run("vertices without triangles", func(t *testing.T) {
		m := &Mesh{Vertices: []mgl64.Vec3{{1, 2, 3}}}
		if !m.IsEmpty() {
			t.Error("IsEmpty() = false for mesh without triangles, want true")
		}
	})
	t.Run("non-empty mesh", func(t *testing.T) {
		m := &Mesh{
			Vertices:  []mgl64.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
			Triangles: [][3]uint32{{0, 1, 2}},
		}
		if m.IsEmpty() {
			t.Error("IsEmpty() = true for non-empty mesh, want false")
		}
	})
}

// --- Location tests ---

func TestLocationApplyIdentity(t *testing.T) {
	p := mgl64.Vec3{1.5, -2.25, 3}
	if got := Identity.Apply(p); got != p {
		t.Errorf("Identity.Apply(%v) = %v", p, got)
	}
}

func TestLocationApplyOrder(t *testing.T) {
	// Scale first, then translate: (1,1,1) -> (2,2,2) -> (12,2,2).
	loc := Location{mgl64.Scale3D(2, 2, 2)}.Then(mgl64.Translate3D(10, 0, 0))
	got := loc.Apply(mgl64.Vec3{1, 1, 1})
	want := mgl64.Vec3{12, 2, 2}
	if got != want {
		t.Errorf("Apply = %v, want %v", got, want)
	}
}

func TestLocationThenDoesNotAlias(t *testing.T) {
	base := make(Location, 1, 4)
	base[0] = mgl64.Translate3D(1, 0, 0)
	a := base.Then(mgl64.Translate3D(0, 1, 0))
	b := base.Then(mgl64.Translate3D(0, 0, 1))
	if a.Apply(mgl64.Vec3{}) != (mgl64.Vec3{1, 1, 0}) {
		t.Errorf("a.Apply = %v", a.Apply(mgl64.Vec3{}))
	}
	if b.Apply(mgl64.Vec3{}) != (mgl64.Vec3{1, 0, 1}) {
		t.Errorf("b.Apply = %v", b.Apply(mgl64.Vec3{}))
	}
}

func TestLocationMirrored(t *testing.T) {
	tests := []struct {
		name string
		loc  Location
		want bool
	}{
		{"identity", Identity, false},
		{"translation", Location{mgl64.Translate3D(1, 2, 3)}, false},
		{"mirror x", Location{mgl64.Scale3D(-1, 1, 1)}, true},
		{"double mirror", Location{mgl64.Scale3D(-1, 1, 1), mgl64.Scale3D(1, -1, 1)}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.loc.Mirrored(); got != tt.want {
				t.Errorf("Mirrored() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFaceTriangulated(t *testing.T) {
	if (Face{}).Triangulated() {
		t.Error("zero Face reports Triangulated() = true")
	}
	f := Face{
		Nodes:     []mgl64.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		Triangles: [][3]int{{0, 1, 2}},
	}
	if !f.Triangulated() {
		t.Error("triangulated Face reports Triangulated() = false")
	}
}

// --- Compile-time interface check with a stub kernel ---

// stubSolid is a minimal Solid implementation for testing.
type stubSolid struct {
	minBB, maxBB mgl64.Vec3
}

func (s *stubSolid) BoundingBox() (min, max mgl64.Vec3) {
	return s.minBB, s.maxBB
}

func (s *stubSolid) Faces() []Face { return nil }

// stubKernel is a minimal Kernel implementation that proves the interface
// is satisfiable.
type stubKernel struct{}

func (k *stubKernel) Box(x, y, z float64) Solid {
	return &stubSolid{maxBB: mgl64.Vec3{x, y, z}}
}

func (k *stubKernel) Cylinder(height, radius float64, _ int) Solid {
	return &stubSolid{
		minBB: mgl64.Vec3{-radius, -radius, 0},
		maxBB: mgl64.Vec3{radius, radius, height},
	}
}

func (k *stubKernel) Translate(s Solid, _, _, _ float64) Solid { return s }
func (k *stubKernel) Rotate(s Solid, _, _, _ float64) Solid    { return s }

var _ Solid = (*stubSolid)(nil)
var _ Kernel = (*stubKernel)(nil)

func TestStubKernelBoxBoundingBox(t *testing.T) {
	var k Kernel = &stubKernel{}
	s := k.Box(10, 20, 30)
	min, max := s.BoundingBox()
	if min != (mgl64.Vec3{0, 0, 0}) {
		t.Errorf("Box min = %v, want [0 0 0]", min)
	}
	if max != (mgl64.Vec3{10, 20, 30}) {
		t.Errorf("Box max = %v, want [10 20 30]", max)
	}
}

type emptySolid struct{ *stubSolid }

func (emptySolid) Empty() bool { return true }

func TestIsEmpty(t *testing.T) {
	if IsEmpty(&stubSolid{}) {
		t.Error("solid without Empty method reported empty")
	}
	if !IsEmpty(emptySolid{&stubSolid{}}) {
		t.Error("solid reporting Empty() = true not treated as empty")
	}
}

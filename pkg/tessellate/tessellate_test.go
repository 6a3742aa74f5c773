package tessellate_test

import (
	"math"
	"strings"
	"testing"

	"github.com/chazu/gdmlexport/pkg/graph"
	"github.com/chazu/gdmlexport/pkg/kernel"
	"github.com/chazu/gdmlexport/pkg/kernel/brep"
	"github.com/chazu/gdmlexport/pkg/kernel/sdfx"
	"github.com/chazu/gdmlexport/pkg/tessellate"
	"github.com/go-gl/mathgl/mgl64"
)

// newKernel returns a fresh polyhedral kernel for testing.
func newKernel() kernel.Kernel {
	return brep.New()
}

func vec(x, y, z float64) *graph.Vec3 {
	return &graph.Vec3{X: x, Y: y, Z: z}
}

func TestSolidsNilGraph(t *testing.T) {
	solids, err := tessellate.Solids(nil, newKernel())
	if err != nil || solids != nil {
		t.Fatalf("Solids(nil) = %v, %v; want nil, nil", solids, err)
	}
}

func TestSolidsSingleBox(t *testing.T) {
	b := graph.NewBuilder()
	b.Solid("plate", b.Box(100, 50, 5), "ALUMINUM")

	solids, err := tessellate.Solids(b.Graph(), newKernel())
	if err != nil {
		t.Fatalf("Solids: %v", err)
	}
	if len(solids) != 1 {
		t.Fatalf("got %d solids, want 1", len(solids))
	}
	s := solids[0]
	if s.Name != "plate" || s.Material != "ALUMINUM" {
		t.Errorf("solid = %q/%q, want plate/ALUMINUM", s.Name, s.Material)
	}
	min, max := s.Solid.BoundingBox()
	if min != (mgl64.Vec3{}) || max != (mgl64.Vec3{100, 50, 5}) {
		t.Errorf("bbox = %v..%v", min, max)
	}
}

func TestSolidsPlacementTranslation(t *testing.T) {
	b := graph.NewBuilder()
	plate, _ := b.Solid("plate", b.Box(10, 10, 10), "")
	b.Group("scene", b.Place(b.Place(plate, vec(1, 2, 3), nil), vec(10, 20, 30), nil))

	solids, err := tessellate.Solids(b.Graph(), newKernel())
	if err != nil {
		t.Fatalf("Solids: %v", err)
	}
	min, _ := solids[0].Solid.BoundingBox()
	if min != (mgl64.Vec3{11, 22, 33}) {
		t.Errorf("min = %v, want [11 22 33]", min)
	}
}

func TestSolidsRotationBeforeTranslation(t *testing.T) {
	b := graph.NewBuilder()
	rod, _ := b.Solid("rod", b.Box(100, 10, 10), "")
	b.Group("scene", b.Place(rod, vec(50, 0, 0), vec(0, 0, 90)))

	solids, err := tessellate.Solids(b.Graph(), newKernel())
	if err != nil {
		t.Fatalf("Solids: %v", err)
	}
	min, max := solids[0].Solid.BoundingBox()
	const tol = 1e-9
	// Rotated about the origin into +Y, then shifted along X.
	if math.Abs(min[0]-40) > tol || math.Abs(max[0]-50) > tol {
		t.Errorf("X range = [%f, %f], want [40, 50]", min[0], max[0])
	}
	if math.Abs(min[1]) > tol || math.Abs(max[1]-100) > tol {
		t.Errorf("Y range = [%f, %f], want [0, 100]", min[1], max[1])
	}
}

func TestSolidsRepeatedPlacementNames(t *testing.T) {
	b := graph.NewBuilder()
	leg, _ := b.Solid("leg", b.Box(5, 5, 50), "")
	b.Solid("leg_2", b.Box(1, 1, 1), "")
	b.Group("table",
		b.Place(leg, vec(0, 0, 0), nil),
		b.Place(leg, vec(100, 0, 0), nil),
		b.Place(leg, vec(200, 0, 0), nil),
	)

	solids, err := tessellate.Solids(b.Graph(), newKernel())
	if err != nil {
		t.Fatalf("Solids: %v", err)
	}
	var names []string
	for _, s := range solids {
		names = append(names, s.Name)
	}
	if got := strings.Join(names, ","); got != "leg,leg_3,leg_4" {
		t.Errorf("names = %s, want leg,leg_3,leg_4", got)
	}
}

func TestSolidsDefaultMaterial(t *testing.T) {
	b := graph.NewBuilder()
	b.SetDefaultMaterial("VACUUM")
	b.Solid("bare", b.Box(1, 1, 1), "")
	b.Solid("tagged", b.Box(1, 1, 1), "ALUMINUM")

	solids, err := tessellate.Solids(b.Graph(), newKernel())
	if err != nil {
		t.Fatalf("Solids: %v", err)
	}
	if solids[0].Material != "VACUUM" || solids[1].Material != "ALUMINUM" {
		t.Errorf("materials = %q, %q", solids[0].Material, solids[1].Material)
	}
}

func TestSolidsShapeTransform(t *testing.T) {
	b := graph.NewBuilder()
	b.Solid("lifted", b.Place(b.Box(1, 1, 1), vec(0, 0, 5), nil), "")

	solids, err := tessellate.Solids(b.Graph(), newKernel())
	if err != nil {
		t.Fatalf("Solids: %v", err)
	}
	min, _ := solids[0].Solid.BoundingBox()
	if min[2] != 5 {
		t.Errorf("min z = %f, want 5", min[2])
	}
}

func TestSolidsBooleanNeedsSupport(t *testing.T) {
	b := graph.NewBuilder()
	b.Solid("cut", b.Boolean(graph.OpDifference, b.Box(10, 10, 10), b.Cylinder(20, 2, 8)), "")

	_, err := tessellate.Solids(b.Graph(), newKernel())
	if err == nil || !strings.Contains(err.Error(), "boolean support") {
		t.Fatalf("err = %v, want boolean support error", err)
	}
}

func TestSolidsBooleanWithSdfx(t *testing.T) {
	b := graph.NewBuilder()
	hole := b.Place(b.Cylinder(20, 2, 0), vec(5, 5, -5), nil)
	b.Solid("cut", b.Boolean(graph.OpDifference, b.Box(10, 10, 10), hole), "")

	solids, err := tessellate.Solids(b.Graph(), sdfx.NewWithResolution(20))
	if err != nil {
		t.Fatalf("Solids: %v", err)
	}
	m, err := tessellate.Assemble(solids[0].Solid)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if m.IsEmpty() {
		t.Error("difference produced an empty mesh")
	}
}

func TestSolidsShapeOutsideSolid(t *testing.T) {
	b := graph.NewBuilder()
	b.Group("scene", b.Box(1, 1, 1))

	_, err := tessellate.Solids(b.Graph(), newKernel())
	if err == nil || !strings.Contains(err.Error(), "not part of any solid") {
		t.Fatalf("err = %v, want shape outside solid error", err)
	}
}

func TestSolidsDoesNotMutateGraph(t *testing.T) {
	b := graph.NewBuilder()
	plate, _ := b.Solid("plate", b.Box(1, 1, 1), "")
	b.Group("scene", b.Place(plate, vec(1, 1, 1), nil))
	g := b.Graph()
	before := g.NodeCount()

	if _, err := tessellate.Solids(g, newKernel()); err != nil {
		t.Fatalf("Solids: %v", err)
	}
	if g.NodeCount() != before || len(g.Roots) != 1 {
		t.Error("Solids mutated the graph")
	}
}

package tessellate

import (
	"errors"
	"math"

	"github.com/chazu/gdmlexport/pkg/kernel"
	"github.com/go-gl/mathgl/mgl64"
)

// ErrNilSolid is returned when Assemble is handed no solid at all.
var ErrNilSolid = errors.New("tessellate: nil solid")

// Stats describes one assembly pass. It is informational only.
type Stats struct {
	Faces        int // faces reported by the kernel
	SkippedFaces int // faces without a usable triangulation
	InputNodes   int // face nodes before deduplication
	Vertices     int // unique vertices in the mesh
	Triangles    int // triangles in the mesh
}

// Assemble merges the per-face triangulations of s into one mesh.
//
// Face nodes are placed by their face location and deduplicated by the bit
// patterns of their coordinates, so faces meeting at a seam share vertex
// indices only when the kernel produced bit-identical points there. -0 and
// +0 are distinct. Triangles of reversed
// faces have their second and third index swapped so that every triangle is
// wound counter-clockwise seen from outside. Faces the kernel could not
// triangulate are skipped; a solid made only of such faces yields an empty
// mesh, not an error.
func Assemble(s kernel.Solid) (*kernel.Mesh, error) {
	m, _, err := AssembleWithStats(s)
	return m, err
}

// AssembleWithStats is Assemble plus diagnostics about the pass.
func AssembleWithStats(s kernel.Solid) (*kernel.Mesh, Stats, error) {
	var st Stats
	if s == nil {
		return nil, st, ErrNilSolid
	}

	mesh := &kernel.Mesh{}
	index := make(map[vertexKey]uint32)

	for _, f := range s.Faces() {
		st.Faces++
		if !f.Triangulated() || !inRange(f) {
			st.SkippedFaces++
			continue
		}
		st.InputNodes += len(f.Nodes)

		// Face-local node index -> mesh vertex index.
		local := make([]uint32, len(f.Nodes))
		for i, n := range f.Nodes {
			p := f.Location.Apply(n)
			key := keyOf(p)
			idx, ok := index[key]
			if !ok {
				idx = uint32(len(mesh.Vertices))
				index[key] = idx
				mesh.Vertices = append(mesh.Vertices, p)
			}
			local[i] = idx
		}

		for _, t := range f.Triangles {
			tri := [3]uint32{local[t[0]], local[t[1]], local[t[2]]}
			if f.Reversed {
				tri[1], tri[2] = tri[2], tri[1]
			}
			mesh.Triangles = append(mesh.Triangles, tri)
		}
	}

	st.Vertices = len(mesh.Vertices)
	st.Triangles = len(mesh.Triangles)
	return mesh, st, nil
}

// inRange reports whether every triangle index refers to a node of f.
// vertexKey is the bit pattern of a position. Float comparison would merge
// -0 with +0.
type vertexKey [3]uint64

func keyOf(p mgl64.Vec3) vertexKey {
	return vertexKey{math.Float64bits(p[0]), math.Float64bits(p[1]), math.Float64bits(p[2])}
}

func inRange(f kernel.Face) bool {
	for _, t := range f.Triangles {
		for _, i := range t {
			if i < 0 || i >= len(f.Nodes) {
				return false
			}
		}
	}
	return true
}

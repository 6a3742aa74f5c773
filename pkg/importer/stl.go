package importer

import (
	"fmt"
	"strings"

	"github.com/chazu/gdmlexport/pkg/kernel"
	"github.com/chazu/gdmlexport/pkg/kernel/brep"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hschendel/stl"
)

// facet is the triangulation shared by every single-triangle face.
var facet = [][3]int{{0, 1, 2}}

func loadSTL(path string, opts Options) ([]kernel.NamedSolid, error) {
	s, err := stl.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("importer: read stl %s: %w", path, err)
	}
	return []kernel.NamedSolid{{Solid: fromSTL(s), Name: stlName(s, 0)}}, nil
}

// fromSTL turns every facet into a face of its own. Facet corners are
// widened from float32, so corners shared in the file stay identical.
func fromSTL(s *stl.Solid) *brep.Solid {
	faces := make([]kernel.Face, 0, len(s.Triangles))
	for _, t := range s.Triangles {
		faces = append(faces, kernel.Face{
			Nodes: []mgl64.Vec3{
				stlVec(t.Vertices[0]),
				stlVec(t.Vertices[1]),
				stlVec(t.Vertices[2]),
			},
			Triangles: facet,
		})
	}
	return brep.NewSolid(faces)
}

func stlVec(v stl.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{float64(v[0]), float64(v[1]), float64(v[2])}
}

// stlName returns the solid name from the file header, or the index when
// the header carries none.
func stlName(s *stl.Solid, index int) string {
	if name := strings.TrimSpace(s.Name); name != "" {
		return name
	}
	return fmt.Sprint(index)
}

package importer

import (
	"fmt"
	"strconv"

	"github.com/chazu/gdmlexport/pkg/kernel"
	"github.com/chazu/gdmlexport/pkg/kernel/brep"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hpinc/go3mf"
	"github.com/sirupsen/logrus"
)

func load3MF(path string, opts Options) ([]kernel.NamedSolid, error) {
	r, err := go3mf.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("importer: open 3mf %s: %w", path, err)
	}
	defer r.Close()

	var model go3mf.Model
	if err := r.Decode(&model); err != nil {
		return nil, fmt.Errorf("importer: decode 3mf %s: %w", path, err)
	}
	return fromModel(&model, opts.logger())
}

// fromModel returns one solid per build item. The item's object mesh
// becomes a single face placed by the item transform.
func fromModel(m *go3mf.Model, log logrus.FieldLogger) ([]kernel.NamedSolid, error) {
	objects := make(map[uint32]*go3mf.Object, len(m.Resources.Objects))
	for _, o := range m.Resources.Objects {
		objects[o.ID] = o
	}

	out := make([]kernel.NamedSolid, 0, len(m.Build.Items))
	for i, item := range m.Build.Items {
		obj, ok := objects[item.ObjectID]
		if !ok {
			return nil, fmt.Errorf("importer: build item %d references unknown object %d", i, item.ObjectID)
		}

		name := obj.Name
		if name == "" {
			name = strconv.Itoa(i)
		}

		if obj.Mesh == nil {
			log.WithFields(logrus.Fields{"object": obj.ID, "solid": name}).
				Warn("object has no mesh, exporting an empty solid")
			out = append(out, kernel.NamedSolid{Solid: brep.NewSolid(nil), Name: name})
			continue
		}

		out = append(out, kernel.NamedSolid{
			Solid: brep.NewSolid([]kernel.Face{meshFace(obj.Mesh, item.Transform)}),
			Name:  name,
		})
	}
	return out, nil
}

func meshFace(mesh *go3mf.Mesh, transform go3mf.Matrix) kernel.Face {
	f := kernel.Face{
		Nodes:     make([]mgl64.Vec3, len(mesh.Vertices.Vertex)),
		Triangles: make([][3]int, len(mesh.Triangles.Triangle)),
	}
	for i, v := range mesh.Vertices.Vertex {
		f.Nodes[i] = mgl64.Vec3{float64(v[0]), float64(v[1]), float64(v[2])}
	}
	for i, t := range mesh.Triangles.Triangle {
		f.Triangles[i] = [3]int{int(t.V1), int(t.V2), int(t.V3)}
	}

	if m, ok := placement(transform); ok {
		f.Location = kernel.Location{m}
		f.Reversed = m.Mat3().Det() < 0
	}
	return f
}

// placement converts a 3MF item transform. The 3MF matrix stores the
// translation in elements 12 to 14 and transforms row vectors, which is
// the same memory layout as a column-major mgl64.Mat4 acting on column
// vectors. A zero matrix means no transform.
func placement(t go3mf.Matrix) (mgl64.Mat4, bool) {
	if t == (go3mf.Matrix{}) {
		return mgl64.Mat4{}, false
	}
	var m mgl64.Mat4
	for i, v := range t {
		m[i] = float64(v)
	}
	if m == mgl64.Ident4() {
		return m, false
	}
	return m, true
}

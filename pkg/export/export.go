// Package export drives a GDML session over a list of named solids:
// intro, then one assemble-and-add per solid, then extro.
package export

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/chazu/gdmlexport/pkg/bounds"
	"github.com/chazu/gdmlexport/pkg/gdml"
	"github.com/chazu/gdmlexport/pkg/kernel"
	"github.com/chazu/gdmlexport/pkg/tessellate"
	"github.com/sirupsen/logrus"
)

// SolidReport describes one exported solid.
type SolidReport struct {
	Name         string // as emitted, after sanitizing
	Material     string // as requested by the caller
	Vertices     int
	Triangles    int
	SkippedFaces int
}

// Report summarizes an export.
type Report struct {
	Solids    []SolidReport
	Bounds    bounds.Box // scene extent without the world margin
	Vertices  int
	Triangles int
}

// WriteTo prints one line per solid followed by the totals.
func (r Report) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, s := range r.Solids {
		n, err := fmt.Fprintf(w, "%6d vertices, %6d triangles <- %s\n", s.Vertices, s.Triangles, s.Name)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	size := r.Bounds.Size()
	n, err := fmt.Fprintf(w, "%d solids, %d vertices, %d triangles, extent %g x %g x %g mm\n",
		len(r.Solids), r.Vertices, r.Triangles, size[0], size[1], size[2])
	total += int64(n)
	return total, err
}

// Run writes every solid through w, which must be freshly created. On
// failure the session is left open for the caller to abandon.
func Run(w *gdml.Writer, solids []kernel.NamedSolid, log logrus.FieldLogger) (Report, error) {
	var r Report

	if err := w.WriteIntro(); err != nil {
		return r, err
	}

	for i, ns := range solids {
		mesh, st, err := tessellate.AssembleWithStats(ns.Solid)
		if err != nil {
			return r, fmt.Errorf("export: solid %d (%s): %w", i, ns.Name, err)
		}
		if st.SkippedFaces > 0 {
			log.WithFields(logrus.Fields{
				"solid":   ns.Name,
				"skipped": st.SkippedFaces,
				"faces":   st.Faces,
			}).Warn("faces without triangulation skipped")
		}
		if mesh.IsEmpty() {
			log.WithField("solid", ns.Name).Warn("solid has no triangles")
		}

		mesh.Name = gdml.Sanitize(ns.Name)
		if err := w.AddSolid(ns.Solid, mesh, ns.Name, ns.Material); err != nil {
			return r, fmt.Errorf("export: solid %d (%s): %w", i, ns.Name, err)
		}

		r.Solids = append(r.Solids, SolidReport{
			Name:         mesh.Name,
			Material:     ns.Material,
			Vertices:     mesh.VertexCount(),
			Triangles:    mesh.TriangleCount(),
			SkippedFaces: st.SkippedFaces,
		})
		r.Vertices += mesh.VertexCount()
		r.Triangles += mesh.TriangleCount()
	}

	if b, err := w.Bounds(); err == nil {
		r.Bounds = b
	}
	if err := w.WriteExtro(); err != nil {
		return r, err
	}
	return r, nil
}

// ToFile exports solids to path. When the export fails the session is
// abandoned and the partial file removed.
func ToFile(path string, solids []kernel.NamedSolid, log logrus.FieldLogger, opts ...gdml.Option) (Report, error) {
	w, err := gdml.Create(path, append([]gdml.Option{gdml.WithLogger(log)}, opts...)...)
	if err != nil {
		return Report{}, err
	}

	r, err := Run(w, solids, log)
	if err != nil {
		abandonErr := w.Abandon()
		if rmErr := os.Remove(path); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
			log.WithError(rmErr).WithField("path", path).Warn("could not remove partial output")
		}
		if abandonErr != nil {
			log.WithError(abandonErr).Debug("abandon failed")
		}
		return r, err
	}

	log.WithFields(logrus.Fields{
		"path":      path,
		"solids":    len(r.Solids),
		"vertices":  r.Vertices,
		"triangles": r.Triangles,
	}).Info("export complete")
	return r, nil
}

// Inspect assembles every solid and accumulates the scene bounds without
// producing output. It applies the same naming rules as an export.
func Inspect(solids []kernel.NamedSolid, log logrus.FieldLogger) (Report, error) {
	return Run(gdml.NewWriter(io.Discard, gdml.WithLogger(log)), solids, log)
}

// Package importer reads source files into named solids ready for export.
//
// Supported inputs are STL meshes, 3MF packages and scene scripts. The
// loader is selected by file extension.
package importer

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/chazu/gdmlexport/pkg/kernel"
	"github.com/chazu/gdmlexport/pkg/kernel/brep"
	"github.com/chazu/gdmlexport/pkg/kernel/manifold"
	"github.com/chazu/gdmlexport/pkg/kernel/sdfx"
	"github.com/sirupsen/logrus"
)

// ErrUnsupportedFormat is returned for files with an unknown extension.
var ErrUnsupportedFormat = errors.New("importer: unsupported format")

// ErrUnknownKernel is returned by NewKernel for an unknown backend name.
var ErrUnknownKernel = errors.New("importer: unknown kernel")

// Kernel backend names.
const (
	KernelBrep     = "brep"
	KernelSdfx     = "sdfx"
	KernelManifold = "manifold"
)

// Kernels lists the backend names accepted by NewKernel.
var Kernels = []string{KernelBrep, KernelSdfx, KernelManifold}

// Options controls how inputs are turned into solids.
type Options struct {
	Kernel   kernel.Kernel      // scene scripts only; nil selects brep
	Material string             // for solids that name none
	Timeout  time.Duration      // script evaluation limit; zero selects the engine default
	Log      logrus.FieldLogger // nil discards
}

func (o Options) logger() logrus.FieldLogger {
	if o.Log != nil {
		return o.Log
	}
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

type loader func(path string, opts Options) ([]kernel.NamedSolid, error)

var loaders = map[string]loader{
	".stl": loadSTL,
	".3mf": load3MF,
	".lgn": loadScript,
	".zy":  loadScript,
}

// Formats returns the supported file extensions in sorted order.
func Formats() []string {
	exts := make([]string, 0, len(loaders))
	for ext := range loaders {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// Supported reports whether path has a known extension.
func Supported(path string) bool {
	_, ok := loaders[strings.ToLower(filepath.Ext(path))]
	return ok
}

// Load reads path and returns its solids in source order. Solids without a
// material receive opts.Material.
func Load(path string, opts Options) ([]kernel.NamedSolid, error) {
	ext := strings.ToLower(filepath.Ext(path))
	load, ok := loaders[ext]
	if !ok {
		return nil, fmt.Errorf("%w: %q (want one of %s)", ErrUnsupportedFormat, ext, strings.Join(Formats(), ", "))
	}

	solids, err := load(path, opts)
	if err != nil {
		return nil, err
	}
	for i := range solids {
		if solids[i].Material == "" {
			solids[i].Material = opts.Material
		}
	}

	opts.logger().WithFields(logrus.Fields{
		"path":   path,
		"format": strings.TrimPrefix(ext, "."),
		"solids": len(solids),
	}).Debug("input loaded")
	return solids, nil
}

// NewKernel returns the geometry backend with the given name. Resolution
// is the marching-cubes cell count for sdfx and is ignored by the others.
// The manifold backend fails unless the binary was built with its tag.
func NewKernel(name string, resolution int) (kernel.Kernel, error) {
	switch strings.ToLower(name) {
	case "", KernelBrep:
		return brep.New(), nil
	case KernelSdfx:
		return sdfx.NewWithResolution(resolution), nil
	case KernelManifold:
		return manifold.New()
	}
	return nil, fmt.Errorf("%w: %q (want one of %s)", ErrUnknownKernel, name, strings.Join(Kernels, ", "))
}

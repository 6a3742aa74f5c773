package importer

import (
	"fmt"
	"os"

	"github.com/chazu/gdmlexport/pkg/engine"
	"github.com/chazu/gdmlexport/pkg/graph"
	"github.com/chazu/gdmlexport/pkg/kernel"
	"github.com/chazu/gdmlexport/pkg/kernel/brep"
	"github.com/chazu/gdmlexport/pkg/tessellate"
	"github.com/sirupsen/logrus"
)

func loadScript(path string, opts Options) ([]kernel.NamedSolid, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("importer: read script: %w", err)
	}
	g, err := EvaluateScript(string(src), opts)
	if err != nil {
		return nil, fmt.Errorf("importer: %s: %w", path, err)
	}

	k := opts.Kernel
	if k == nil {
		k = brep.New()
	}
	return tessellate.Solids(g, k)
}

// EvaluateScript evaluates scene script source and validates the result.
// Validation warnings are logged; validation errors fail the call.
func EvaluateScript(src string, opts Options) (*graph.SceneGraph, error) {
	log := opts.logger()

	g, evalErrs, err := engine.NewEngine(engine.WithTimeout(opts.Timeout)).Evaluate(src)
	if err != nil {
		return nil, err
	}
	if len(evalErrs) > 0 {
		return nil, engine.Errors(evalErrs)
	}

	// The configured material stands in for a script without its own default.
	if g.Defaults.Material == "" {
		g.Defaults.Material = opts.Material
	}

	res := graph.ValidateAll(g)
	for _, w := range res.Warnings {
		log.WithFields(logrus.Fields{"node": w.NodeID.Short()}).Warn(w.Message)
	}
	if err := res.Err(); err != nil {
		return nil, fmt.Errorf("invalid scene: %w", err)
	}
	return g, nil
}

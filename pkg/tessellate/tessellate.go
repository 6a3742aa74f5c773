// Package tessellate turns kernel solids into deduplicated triangle meshes
// and walks scene graphs to produce the named solids handed to the
// exporter.
package tessellate

import (
	"fmt"
	"strconv"

	"github.com/chazu/gdmlexport/pkg/graph"
	"github.com/chazu/gdmlexport/pkg/kernel"
)

// transformStack accumulates spatial transforms during graph traversal.
// The top of the stack is the innermost placement.
type transformStack struct {
	transforms []graph.TransformData
}

func newTransformStack() *transformStack {
	return &transformStack{}
}

func (ts *transformStack) push(td graph.TransformData) {
	ts.transforms = append(ts.transforms, td)
}

func (ts *transformStack) pop() {
	if len(ts.transforms) > 0 {
		ts.transforms = ts.transforms[:len(ts.transforms)-1]
	}
}

// apply places s by every transform on the stack, innermost first.
func (ts *transformStack) apply(k kernel.Kernel, s kernel.Solid) kernel.Solid {
	for i := len(ts.transforms) - 1; i >= 0; i-- {
		s = applyTransform(k, s, ts.transforms[i])
	}
	return s
}

// applyTransform rotates, then translates.
func applyTransform(k kernel.Kernel, s kernel.Solid, td graph.TransformData) kernel.Solid {
	if td.Rotation != nil && !td.Rotation.IsZero() {
		r := *td.Rotation
		s = k.Rotate(s, r.X, r.Y, r.Z)
	}
	if td.Translation != nil && !td.Translation.IsZero() {
		t := *td.Translation
		s = k.Translate(s, t.X, t.Y, t.Z)
	}
	return s
}

// walker carries the state of one Solids traversal.
type walker struct {
	g    *graph.SceneGraph
	k    kernel.Kernel
	ts   *transformStack
	used map[string]bool
	out  []kernel.NamedSolid
}

// Solids walks the scene graph and builds one named solid per solid
// placement using the provided geometry kernel. A solid reached through
// more than one placement is emitted once per placement, the later ones
// named name_2, name_3 and so on. The walker is read-only and never
// mutates the graph.
func Solids(g *graph.SceneGraph, k kernel.Kernel) ([]kernel.NamedSolid, error) {
	if g == nil {
		return nil, nil
	}

	w := &walker{
		g:    g,
		k:    k,
		ts:   newTransformStack(),
		used: make(map[string]bool),
	}
	for name, id := range g.NameIndex {
		if n := g.Get(id); n != nil && n.Kind == graph.NodeSolid {
			w.used[name] = true
		}
	}

	for _, rootID := range g.Roots {
		root := g.Get(rootID)
		if root == nil {
			continue
		}
		if err := w.walkNode(root); err != nil {
			return nil, fmt.Errorf("tessellate: error walking root %s: %w", rootID.Short(), err)
		}
	}

	return w.out, nil
}

// walkNode recursively traverses placement nodes, collecting solids.
func (w *walker) walkNode(n *graph.Node) error {
	switch n.Kind {
	case graph.NodeSolid:
		return w.handleSolid(n)

	case graph.NodeTransform:
		td, ok := n.Data.(graph.TransformData)
		if !ok {
			return fmt.Errorf("transform node %s has unexpected data type %T", n.ID.Short(), n.Data)
		}
		w.ts.push(td)
		defer w.ts.pop()
		return w.walkChildren(n)

	case graph.NodeGroup:
		return w.walkChildren(n)

	case graph.NodePrimitive, graph.NodeBoolean:
		return fmt.Errorf("%s node %s is not part of any solid", n.Kind, n.ID.Short())

	default:
		return fmt.Errorf("unknown node kind: %v", n.Kind)
	}
}

func (w *walker) walkChildren(n *graph.Node) error {
	for _, child := range w.g.Children(n) {
		if err := w.walkNode(child); err != nil {
			return err
		}
	}
	return nil
}

// handleSolid builds the solid's shape, places it, and records it.
func (w *walker) handleSolid(n *graph.Node) error {
	children := w.g.Children(n)
	if len(children) != 1 {
		return fmt.Errorf("solid %q has %d shapes, want 1", n.Name, len(children))
	}
	s, err := buildShape(w.g, w.k, children[0])
	if err != nil {
		return fmt.Errorf("solid %q: %w", n.Name, err)
	}
	s = w.ts.apply(w.k, s)

	material := w.g.Defaults.Material
	if sd, ok := n.Data.(graph.SolidData); ok && sd.Material != "" {
		material = sd.Material
	}

	w.out = append(w.out, kernel.NamedSolid{
		Solid:    s,
		Name:     w.placementName(n.Name),
		Material: material,
	})
	return nil
}

// placementName returns name for the first placement of a solid and the
// first free name_N after that.
func (w *walker) placementName(name string) string {
	for _, prev := range w.out {
		if prev.Name == name {
			for i := 2; ; i++ {
				candidate := name + "_" + strconv.Itoa(i)
				if !w.used[candidate] {
					w.used[candidate] = true
					return candidate
				}
			}
		}
	}
	return name
}

// buildShape creates kernel geometry for a shape subtree.
func buildShape(g *graph.SceneGraph, k kernel.Kernel, n *graph.Node) (kernel.Solid, error) {
	switch data := n.Data.(type) {
	case graph.BoxData:
		return k.Box(data.Dimensions.X, data.Dimensions.Y, data.Dimensions.Z), nil

	case graph.CylinderData:
		return k.Cylinder(data.Height, data.Radius, data.Segments), nil

	case graph.TransformData:
		children := g.Children(n)
		if len(children) != 1 {
			return nil, fmt.Errorf("transform node %s has %d children, want 1", n.ID.Short(), len(children))
		}
		s, err := buildShape(g, k, children[0])
		if err != nil {
			return nil, err
		}
		return applyTransform(k, s, data), nil

	case graph.BooleanData:
		b, ok := k.(kernel.Booleans)
		if !ok {
			return nil, fmt.Errorf("%s requires a kernel with boolean support", data.Op)
		}
		children := g.Children(n)
		if len(children) != 2 {
			return nil, fmt.Errorf("%s node %s has %d operands, want 2", data.Op, n.ID.Short(), len(children))
		}
		a, err := buildShape(g, k, children[0])
		if err != nil {
			return nil, err
		}
		c, err := buildShape(g, k, children[1])
		if err != nil {
			return nil, err
		}
		switch data.Op {
		case graph.OpUnion:
			return b.Union(a, c), nil
		case graph.OpDifference:
			return b.Difference(a, c), nil
		case graph.OpIntersection:
			return b.Intersection(a, c), nil
		}
		return nil, fmt.Errorf("unknown boolean operation %v", data.Op)

	default:
		return nil, fmt.Errorf("%s node %s cannot be used as a shape", n.Kind, n.ID.Short())
	}
}

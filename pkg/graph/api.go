package graph

import "fmt"

// Builder constructs a SceneGraph node by node. It is used by the script
// engine and by importers that build scenes programmatically.
type Builder struct {
	g      *SceneGraph
	seq    int
	solids []NodeID // definition order
}

// NewBuilder returns a builder over an empty graph.
func NewBuilder() *Builder {
	return &Builder{g: New()}
}

// nextID returns a fresh ID for an anonymous node of the given kind.
func (b *Builder) nextID(kind string) NodeID {
	b.seq++
	return NewNodeID(fmt.Sprintf("%s/_anon_%d", kind, b.seq))
}

// Get returns the node with the given ID, or nil.
func (b *Builder) Get(id NodeID) *Node {
	return b.g.Get(id)
}

// Lookup returns the solid or group with the given name, or nil.
func (b *Builder) Lookup(name string) *Node {
	return b.g.Lookup(name)
}

// Box adds a box primitive.
func (b *Builder) Box(x, y, z float64) NodeID {
	id := b.nextID("box")
	b.g.AddNode(&Node{
		ID:   id,
		Kind: NodePrimitive,
		Data: BoxData{Dimensions: Vec3{x, y, z}},
	})
	return id
}

// Cylinder adds a cylinder primitive. Segments <= 0 selects DefaultSegments.
func (b *Builder) Cylinder(height, radius float64, segments int) NodeID {
	if segments <= 0 {
		segments = DefaultSegments
	}
	id := b.nextID("cylinder")
	b.g.AddNode(&Node{
		ID:   id,
		Kind: NodePrimitive,
		Data: CylinderData{Height: height, Radius: radius, Segments: segments},
	})
	return id
}

// Place wraps child in a transform. Nil vectors leave that part of the
// transform unset.
func (b *Builder) Place(child NodeID, at, rotate *Vec3) NodeID {
	id := b.nextID("place")
	b.g.AddNode(&Node{
		ID:       id,
		Kind:     NodeTransform,
		Children: []NodeID{child},
		Data:     TransformData{Translation: at, Rotation: rotate},
	})
	return id
}

// Boolean adds a constructive operation over two shapes.
func (b *Builder) Boolean(op BooleanOp, a, c NodeID) NodeID {
	id := b.nextID(op.String())
	b.g.AddNode(&Node{
		ID:       id,
		Kind:     NodeBoolean,
		Children: []NodeID{a, c},
		Data:     BooleanData{Op: op},
	})
	return id
}

// Solid defines a named solid whose geometry is shape. Names must be unique
// and non-empty.
func (b *Builder) Solid(name string, shape NodeID, material string) (NodeID, error) {
	if name == "" {
		return ZeroID, fmt.Errorf("graph: solid name must not be empty")
	}
	if b.g.Lookup(name) != nil {
		return ZeroID, fmt.Errorf("graph: name %q is already defined", name)
	}
	id := NewNodeID("defsolid/" + name)
	b.g.AddNode(&Node{
		ID:       id,
		Kind:     NodeSolid,
		Name:     name,
		Children: []NodeID{shape},
		Data:     SolidData{Material: material},
	})
	b.solids = append(b.solids, id)
	return id, nil
}

// Group adds a named group and registers it as a root.
func (b *Builder) Group(name string, children ...NodeID) (NodeID, error) {
	if name != "" && b.g.Lookup(name) != nil {
		return ZeroID, fmt.Errorf("graph: name %q is already defined", name)
	}
	id := NewNodeID("scene/" + name)
	if name == "" {
		id = b.nextID("scene")
	}
	b.g.AddNode(&Node{
		ID:       id,
		Kind:     NodeGroup,
		Name:     name,
		Children: children,
		Data:     GroupData{},
	})
	b.g.AddRoot(id)
	return id, nil
}

// SetDefaultMaterial sets the material for solids that name none.
func (b *Builder) SetDefaultMaterial(material string) {
	b.g.Defaults.Material = material
}

// Graph finishes construction. When no group was declared, every solid is
// a root in definition order. The builder must not be used afterwards.
func (b *Builder) Graph() *SceneGraph {
	if len(b.g.Roots) == 0 {
		for _, id := range b.solids {
			b.g.AddRoot(id)
		}
	}
	return b.g
}

package graph

// NodeKind enumerates the types of nodes in the scene graph.
type NodeKind int

const (
	NodePrimitive NodeKind = iota // geometric primitive (box, cylinder)
	NodeTransform                 // spatial transformation (place)
	NodeBoolean                   // constructive operation on two shapes
	NodeSolid                     // named, exported solid with a material
	NodeGroup                     // logical grouping (scene)
)

func (k NodeKind) String() string {
	switch k {
	case NodePrimitive:
		return "primitive"
	case NodeTransform:
		return "transform"
	case NodeBoolean:
		return "boolean"
	case NodeSolid:
		return "solid"
	case NodeGroup:
		return "group"
	default:
		return "unknown"
	}
}

// IsShape reports whether nodes of this kind describe geometry that can be
// the body of a solid or an operand of a boolean.
func (k NodeKind) IsShape() bool {
	return k == NodePrimitive || k == NodeBoolean || k == NodeTransform
}

// Node is the fundamental element of the scene graph.
type Node struct {
	ID       NodeID   `json:"id"`
	Kind     NodeKind `json:"kind"`
	Name     string   `json:"name,omitempty"`
	Children []NodeID `json:"children,omitempty"`
	Data     NodeData `json:"data"`
}

// NodeData is the interface for kind-specific node payloads.
type NodeData interface {
	nodeData() // marker method restricting implementations to this package
}

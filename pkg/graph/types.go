package graph

import "math"

// Kind classifies a node. The values are part of the wire format.
type Kind int

// Node kinds.
const (
	KindFile           Kind = 1
	KindTag            Kind = 2
	KindUnresolvedFile Kind = 3
)

// String returns a lowercase name for the kind.
func (k Kind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindTag:
		return "tag"
	case KindUnresolvedFile:
		return "unresolved"
	default:
		return "unknown"
	}
}

// =============================================================================
// Graph - Wire Format
// =============================================================================

// Graph is the canonical serialization format for node-link graphs.
// Used for API responses, storage, caching and files.
type Graph struct {
	Nodes []Node `json:"nodes" bson:"nodes"`
	Links []Link `json:"links" bson:"links"`
}

// Link connects two nodes by id.
type Link struct {
	Source int `json:"source" bson:"source"`
	Target int `json:"target" bson:"target"`
}

// =============================================================================
// Node
// =============================================================================

// Node is a graph vertex. ID, Name, Kind and Val travel on the wire; the
// remaining fields are live simulation state.
type Node struct {
	ID   int     `json:"id" bson:"id"`
	Name string  `json:"name" bson:"name"`
	Kind Kind    `json:"kind" bson:"kind"`
	Val  float64 `json:"val" bson:"val"`

	// World position, written by the simulation every tick.
	X, Y float64 `json:"-" bson:"-"`
	// Velocity.
	VX, VY float64 `json:"-" bson:"-"`

	// FX, FY hold the pinned position while Pinned is set. The simulation
	// must place the node there instead of integrating it.
	FX, FY float64 `json:"-" bson:"-"`
	Pinned bool    `json:"-" bson:"-"`
}

// Weight returns the radius weight, or 0 for a malformed node
// (zero, negative, NaN or infinite Val).
func (n *Node) Weight() float64 {
	if n == nil || !(n.Val > 0) || math.IsInf(n.Val, 0) {
		return 0
	}
	return n.Val
}

// Pin fixes the node at (x, y) until Unpin is called.
func (n *Node) Pin(x, y float64) {
	n.FX, n.FY = x, y
	n.Pinned = true
}

// Unpin hands the node back to the simulation.
func (n *Node) Unpin() {
	n.FX, n.FY = 0, 0
	n.Pinned = false
}

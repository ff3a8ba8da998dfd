package graph

// ResolvedLink is a link whose endpoints point at live nodes.
type ResolvedLink struct {
	Source *Node
	Target *Node
}

// Data is the live data set shared by the simulation, the interaction
// controller and the renderer. Nodes are stored by pointer so that position
// and pin writes are visible to every reader.
//
// A nil *Data is valid and behaves as an empty set.
type Data struct {
	Nodes []*Node
	Links []ResolvedLink

	index map[int]*Node
}

// Resolve builds the live set from a wire graph. Node values are copied,
// so the source Graph is never mutated. When ids collide the first node
// wins; links with an endpoint that does not resolve are dropped.
func Resolve(g Graph) *Data {
	d := &Data{
		Nodes: make([]*Node, 0, len(g.Nodes)),
		Links: make([]ResolvedLink, 0, len(g.Links)),
		index: make(map[int]*Node, len(g.Nodes)),
	}
	for i := range g.Nodes {
		n := g.Nodes[i]
		if _, dup := d.index[n.ID]; dup {
			continue
		}
		d.Nodes = append(d.Nodes, &n)
		d.index[n.ID] = &n
	}
	for _, l := range g.Links {
		s, okS := d.index[l.Source]
		t, okT := d.index[l.Target]
		if !okS || !okT {
			continue
		}
		d.Links = append(d.Links, ResolvedLink{Source: s, Target: t})
	}
	return d
}

// Node looks up a live node by id.
func (d *Data) Node(id int) (*Node, bool) {
	if d == nil {
		return nil, false
	}
	n, ok := d.index[id]
	return n, ok
}

// NodeList returns the nodes, or nil for a nil set.
func (d *Data) NodeList() []*Node {
	if d == nil {
		return nil
	}
	return d.Nodes
}

// LinkList returns the links, or nil for a nil set.
func (d *Data) LinkList() []ResolvedLink {
	if d == nil {
		return nil
	}
	return d.Links
}

// Len returns the number of nodes.
func (d *Data) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Nodes)
}

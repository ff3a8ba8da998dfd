package graph

import (
	"bufio"
	"io"
	"strings"

	errs "github.com/matzehuels/spiderweb/pkg/errors"
)

// Builder assembles a Graph from name-based references, the way a notes
// index sees them: a file links to other files or tags by name, and a
// referenced name that was never defined is an unresolved file.
//
// Ids are assigned in first-seen order and are stable for the lifetime of
// the Builder.
type Builder struct {
	ids     map[string]int
	nodes   []Node
	defined map[int]bool
	links   map[Link]bool
	order   []Link
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	return &Builder{
		ids:     make(map[string]int),
		defined: make(map[int]bool),
		links:   make(map[Link]bool),
	}
}

// StoreAndGetID returns the id for name, registering a new node of the
// given kind if the name has not been seen yet.
func (b *Builder) StoreAndGetID(name string, kind Kind) int {
	if id, ok := b.ids[name]; ok {
		return id
	}
	id := len(b.nodes)
	b.ids[name] = id
	b.nodes = append(b.nodes, Node{ID: id, Name: name, Kind: kind})
	return id
}

// ID returns the id registered for name.
func (b *Builder) ID(name string) (int, bool) {
	id, ok := b.ids[name]
	return id, ok
}

// Define marks name as an existing file.
func (b *Builder) Define(name string) int {
	id := b.StoreAndGetID(name, KindFile)
	b.defined[id] = true
	return id
}

// Link records a reference from one name to another. Names starting with
// '#' are tags. Duplicate references collapse into one link.
func (b *Builder) Link(from, to string) {
	src := b.Define(from)
	dst := b.StoreAndGetID(to, kindForName(to))
	l := Link{Source: src, Target: dst}
	if b.links[l] {
		return
	}
	b.links[l] = true
	b.order = append(b.order, l)
}

// Build returns the assembled graph. File nodes that were referenced but
// never defined become unresolved, and node sizes follow connection counts.
func (b *Builder) Build() Graph {
	g := NewGraph()
	for _, n := range b.nodes {
		if n.Kind == KindFile && !b.defined[n.ID] {
			n.Kind = KindUnresolvedFile
		}
		g.Nodes = append(g.Nodes, n)
	}
	g.Links = append(g.Links, b.order...)
	return Normalize(g)
}

func kindForName(name string) Kind {
	if strings.HasPrefix(name, "#") {
		return KindTag
	}
	return KindFile
}

// ReadEdgeList builds a graph from a plain-text reference list. Each line
// holds one reference, either "from -> to" or "from<TAB>to". A line with a
// single name defines a file without links. Blank lines and lines starting
// with "//" are skipped.
func ReadEdgeList(r io.Reader) (Graph, error) {
	b := NewBuilder()
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}

		from, to, ok := splitEdge(line)
		switch {
		case !ok:
			b.Define(line)
		case from == "" || to == "":
			return Graph{}, errs.New(errs.ErrCodeInvalidFormat, "line %d: empty endpoint in %q", lineNo, line)
		default:
			b.Link(from, to)
		}
	}
	if err := sc.Err(); err != nil {
		return Graph{}, errs.Wrap(errs.ErrCodeInvalidFormat, err, "read edge list")
	}
	return b.Build(), nil
}

func splitEdge(line string) (from, to string, ok bool) {
	if a, b, found := strings.Cut(line, "->"); found {
		return strings.TrimSpace(a), strings.TrimSpace(b), true
	}
	if a, b, found := strings.Cut(line, "\t"); found {
		return strings.TrimSpace(a), strings.TrimSpace(b), true
	}
	return "", "", false
}

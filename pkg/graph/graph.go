package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	errs "github.com/matzehuels/spiderweb/pkg/errors"
)

// =============================================================================
// Graph Serialization API
// =============================================================================

// MarshalGraph converts a Graph to indented JSON bytes.
func MarshalGraph(g Graph) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeGraphTo(g, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalGraph deserializes JSON bytes to a Graph.
// Nil node or link arrays decode as empty slices.
func UnmarshalGraph(data []byte) (Graph, error) {
	var g Graph
	if err := json.Unmarshal(data, &g); err != nil {
		return Graph{}, errs.Wrap(errs.ErrCodeInvalidGraph, err, "decode graph")
	}
	return g.orEmpty(), nil
}

// WriteGraphFile writes a Graph to a JSON file.
// The file is created with 0644 permissions.
func WriteGraphFile(g Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return writeGraphTo(g, f)
}

// WriteGraph writes a Graph as JSON to an io.Writer.
func WriteGraph(g Graph, w io.Writer) error {
	return writeGraphTo(g, w)
}

// ReadGraphFile reads a JSON file and returns the decoded Graph.
func ReadGraphFile(path string) (Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Graph{}, errs.Wrap(errs.ErrCodeFileNotFound, err, "open %s", path)
		}
		return Graph{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadGraph(f)
}

// ReadGraph decodes a JSON graph from an io.Reader.
func ReadGraph(r io.Reader) (Graph, error) {
	var g Graph
	if err := json.NewDecoder(r).Decode(&g); err != nil {
		return Graph{}, errs.Wrap(errs.ErrCodeInvalidGraph, err, "decode graph")
	}
	return g.orEmpty(), nil
}

// NewGraph returns an empty graph with non-nil slices, so it encodes as
// {"nodes":[],"links":[]} rather than nulls.
func NewGraph() Graph {
	return Graph{
		Nodes: []Node{},
		Links: []Link{},
	}
}

// =============================================================================
// Validation & Normalization
// =============================================================================

// Validate checks the invariants a data set must hold before it is served:
// node ids are unique and every link references a known node.
// Node weights are not checked; malformed weights render as radius zero.
func Validate(g Graph) error {
	seen := make(map[int]bool, len(g.Nodes))
	for _, n := range g.Nodes {
		if seen[n.ID] {
			return errs.New(errs.ErrCodeInvalidGraph, "duplicate node id %d", n.ID)
		}
		seen[n.ID] = true
	}
	for _, l := range g.Links {
		if !seen[l.Source] {
			return errs.New(errs.ErrCodeInvalidGraph, "link source %d not found", l.Source)
		}
		if !seen[l.Target] {
			return errs.New(errs.ErrCodeInvalidGraph, "link target %d not found", l.Target)
		}
	}
	return nil
}

// Normalize assigns a size to every node without a valid Val, derived from
// its number of distinct outgoing connections (see [SizeFor]).
// Nodes that already carry a positive Val are left untouched.
func Normalize(g Graph) Graph {
	out := Graph{
		Nodes: make([]Node, len(g.Nodes)),
		Links: append([]Link{}, g.Links...),
	}
	copy(out.Nodes, g.Nodes)

	conns := connections(g.Links)
	minCon, maxCon := connectionRange(out.Nodes, conns)
	for i := range out.Nodes {
		if out.Nodes[i].Weight() > 0 {
			continue
		}
		out.Nodes[i].Val = float64(SizeFor(conns[out.Nodes[i].ID], maxCon, minCon))
	}
	return out
}

// SizeFor maps a connection count onto the 3..6 node size scale.
// Sparsely connected nodes (fewer than 5) are always size 3; the rest are
// bucketed by their position between the least and most connected node.
func SizeFor(connections, maxCon, minCon int) int {
	if connections < 5 {
		return 3
	}
	if maxCon <= minCon {
		return 6
	}

	normal := (connections - minCon) * 100 / (maxCon - minCon)
	switch {
	case normal < 50:
		return 4
	case normal < 75:
		return 5
	default:
		return 6
	}
}

// =============================================================================
// Internal Implementation
// =============================================================================

func writeGraphTo(g Graph, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(g.orEmpty()); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

func (g Graph) orEmpty() Graph {
	if g.Nodes == nil {
		g.Nodes = []Node{}
	}
	if g.Links == nil {
		g.Links = []Link{}
	}
	return g
}

// connections counts distinct targets per source id.
func connections(links []Link) map[int]int {
	targets := make(map[int]map[int]bool)
	for _, l := range links {
		if targets[l.Source] == nil {
			targets[l.Source] = make(map[int]bool)
		}
		targets[l.Source][l.Target] = true
	}
	out := make(map[int]int, len(targets))
	for id, t := range targets {
		out[id] = len(t)
	}
	return out
}

func connectionRange(nodes []Node, conns map[int]int) (minCon, maxCon int) {
	if len(nodes) == 0 {
		return 0, 0
	}
	minCon = conns[nodes[0].ID]
	for _, n := range nodes {
		c := conns[n.ID]
		minCon = min(minCon, c)
		maxCon = max(maxCon, c)
	}
	return minCon, maxCon
}

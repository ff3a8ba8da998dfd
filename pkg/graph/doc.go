// Package graph provides the data model and wire format for node-link graphs.
//
// A graph is a set of nodes (notes, tags and unresolved references) and the
// links between them. The package sits at the boundary between the wire
// format served by the graph server and the live state the simulation and
// renderer share:
//
//   - [Graph], [Node], [Link]: serialization types (JSON and BSON)
//   - [Data], [ResolvedLink]: the live set, links resolved to node pointers
//   - [Builder]: assembles a Graph from name-based references
//
// # Graph Serialization
//
// Graphs use the node-link JSON format of the graph server:
//
//	{
//	  "nodes": [{"id": 0, "name": "index", "kind": 1, "val": 4}],
//	  "links": [{"source": 0, "target": 1}]
//	}
//
// Common operations:
//
//	g, _ := graph.ReadGraphFile("graph.json")
//	graph.WriteGraphFile(g, "output.json")
//	data := graph.Resolve(g)
//
// # Node Kinds
//
// Kinds are a closed set with stable wire values:
//
//	graph.KindFile            // 1: a note that exists
//	graph.KindTag             // 2: a tag
//	graph.KindUnresolvedFile  // 3: a reference to a note that does not exist
//
// # Live Positions
//
// Node positions (X, Y), velocities and pins are never serialized. They are
// owned by the simulation, overridden by drag pins and read by the
// renderer, all on one goroutine.
package graph

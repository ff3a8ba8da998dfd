// Package nodelink exports whole graphs as static node-link diagrams.
//
// # Usage
//
// Convert a graph to DOT, then render to SVG:
//
//	dot := nodelink.ToDOT(g, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// The DOT source can also be saved and processed with external Graphviz
// tools.
//
// # Styling
//
// Node kinds follow the interactive view: files are filled with the
// palette's secondary color, tags use the shared tag color and unresolved
// files are dashed and pale. Node size grows with the node's weight.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering; no Graphviz installation is needed.
package nodelink

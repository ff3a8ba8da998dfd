package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/spiderweb/pkg/graph"
	"github.com/matzehuels/spiderweb/pkg/render"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds the node id, kind and weight to labels.
	Detailed bool
	// Palette colors the diagram. The zero value selects render.Dark().
	Palette *render.Palette
}

// ToDOT converts a graph to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG].
func ToDOT(g graph.Graph, opts Options) string {
	p := render.Dark()
	if opts.Palette != nil {
		p = *opts.Palette
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  overlap=false;\n")
	fmt.Fprintf(&buf, "  bgcolor=%q;\n", p.Background.Color.Hex())
	fmt.Fprintf(&buf, "  node [shape=circle, style=filled, fontsize=10, fontcolor=%q, color=%q];\n",
		p.Tertiary.Color.Hex(), p.Background.Color.Hex())
	fmt.Fprintf(&buf, "  edge [color=%q, arrowsize=0.4, penwidth=0.6];\n", p.Tertiary.Color.Hex())
	buf.WriteString("\n")

	for _, n := range g.Nodes {
		attrs := fmtAttrs(n, fmtLabel(n, opts.Detailed), p)
		fmt.Fprintf(&buf, "  %d [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, l := range g.Links {
		fmt.Fprintf(&buf, "  %d -> %d;\n", l.Source, l.Target)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n graph.Node, detailed bool) string {
	if !detailed {
		return n.Name
	}
	return fmt.Sprintf("%s\nid: %d\nkind: %s\nval: %g", n.Name, n.ID, n.Kind, n.Val)
}

func fmtAttrs(n graph.Node, label string, p render.Palette) []string {
	size := 0.2
	if w := n.Weight(); w > 0 {
		size = 0.1 * w
	}
	attrs := []string{
		fmt.Sprintf("label=%q", label),
		fmt.Sprintf("width=%.2f", size),
	}
	switch n.Kind {
	case graph.KindTag:
		attrs = append(attrs, fmt.Sprintf("fillcolor=%q", render.TagColor.HexA()))
	case graph.KindUnresolvedFile:
		attrs = append(attrs,
			"style=\"filled,dashed\"",
			fmt.Sprintf("fillcolor=%q", p.Secondary.Fade(render.UnresolvedAlpha).Over(p.Background).HexA()))
	default:
		attrs = append(attrs, fmt.Sprintf("fillcolor=%q", p.Secondary.HexA()))
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-sized svg header with a plain
// viewBox so the image scales with its container.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	header := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(header))
}

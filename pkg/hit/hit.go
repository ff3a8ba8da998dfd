// Package hit finds the node under a point.
//
// Nodes are scanned in reverse draw order so the topmost node wins when
// hit areas overlap. The scan is linear; it is meant for graphs of
// hundreds to a few thousand nodes redrawn every frame.
package hit

import (
	"github.com/matzehuels/spiderweb/pkg/graph"
	"github.com/matzehuels/spiderweb/pkg/view"
)

// Radius returns the hit radius multiplier for a view scale and an extra
// magnification (the controller uses 2 for clicks and drags).
func Radius(scale, multiplier float64) float64 {
	return view.SafeScale(scale) * multiplier
}

// Find returns the topmost node whose circle contains p, or nil.
//
// p is in world space. A node is hit when the squared distance from p to
// its position is strictly less than (radius * weight)². Nodes with a
// malformed Val get weight 1 so the radius alone defines their area.
func Find(nodes []*graph.Node, p view.Point, radius float64) *graph.Node {
	for i := len(nodes) - 1; i >= 0; i-- {
		n := nodes[i]
		if n == nil {
			continue
		}
		if contains(n, p, radius) {
			return n
		}
	}
	return nil
}

func contains(n *graph.Node, p view.Point, radius float64) bool {
	w := n.Weight()
	if w == 0 {
		w = 1
	}
	r := radius * w
	dx, dy := p.X-n.X, p.Y-n.Y
	return dx*dx+dy*dy < r*r
}

package render

import (
	"math"

	"github.com/matzehuels/spiderweb/pkg/graph"
)

// UnresolvedAlpha caps the opacity of unresolved file nodes.
const UnresolvedAlpha = 0.2

// NodeFill returns the fill for a node that is neither hovered nor a
// neighbor of the hovered node, given the current focus alpha.
// Unknown kinds are drawn as files.
func NodeFill(k graph.Kind, p Palette, alpha float64) Color {
	switch k {
	case graph.KindTag:
		return TagColor.Fade(alpha)
	case graph.KindUnresolvedFile:
		return p.Secondary.Fade(math.Min(alpha, UnresolvedAlpha))
	default:
		return p.Secondary.Fade(alpha)
	}
}

// TextStyle returns the label color and font size multiplier at the given
// zoom. Above till the label is fully opaque and the multiplier is 0,
// meaning the default size. Between from and till both ramp linearly:
// opacity 0..1 and size 0.5..1.
func TextStyle(c Color, scale, from, till float64) (Color, float64) {
	if scale > till {
		return c, 0
	}
	perc := 0.0
	if till > from {
		perc = (scale - from) / (till - from)
	}
	perc = math.Max(0, math.Min(1, perc))
	return c.Fade(perc), perc*0.5 + 0.5
}

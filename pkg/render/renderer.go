package render

import (
	"math"

	"github.com/matzehuels/spiderweb/pkg/graph"
	"github.com/matzehuels/spiderweb/pkg/hover"
	"github.com/matzehuels/spiderweb/pkg/view"
)

// Default frame settings.
const (
	DefaultFontSize       = 18.0
	DefaultFadeFrom       = 2.0
	DefaultFadeTill       = 5.0
	DefaultLabelThreshold = 5.0
	DefaultLinkWidth      = 0.4
	DefaultHalo           = 2.0
)

// Option configures a Renderer.
type Option func(*Renderer)

// WithFontSize sets the label font size in surface units. It also sets
// the gap between a node and its label.
func WithFontSize(px float64) Option { return func(r *Renderer) { r.fontSize = px } }

// WithLabelThreshold sets the zoom above which non-hovered labels appear.
func WithLabelThreshold(k float64) Option { return func(r *Renderer) { r.labelThreshold = k } }

// WithFade sets the zoom range over which labels fade in.
func WithFade(from, till float64) Option {
	return func(r *Renderer) { r.fadeFrom, r.fadeTill = from, till }
}

// WithLinkWidth sets the stroke width of unfocused links.
func WithLinkWidth(w float64) Option { return func(r *Renderer) { r.linkWidth = w } }

// WithHalo sets how far the hover halo extends beyond the node radius.
func WithHalo(px float64) Option { return func(r *Renderer) { r.halo = px } }

// Renderer draws graph frames. It holds no per-frame state and can be
// reused across frames and surfaces.
type Renderer struct {
	fontSize       float64
	labelThreshold float64
	fadeFrom       float64
	fadeTill       float64
	linkWidth      float64
	halo           float64
}

// New creates a Renderer with default settings.
func New(opts ...Option) *Renderer {
	r := &Renderer{
		fontSize:       DefaultFontSize,
		labelThreshold: DefaultLabelThreshold,
		fadeFrom:       DefaultFadeFrom,
		fadeTill:       DefaultFadeTill,
		linkWidth:      DefaultLinkWidth,
		halo:           DefaultHalo,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// FrameStats counts what a frame drew.
type FrameStats struct {
	Links  int
	Nodes  int
	Labels int
}

type label struct {
	text string
	x, y float64
}

// DrawFrame clears s and draws links, nodes and labels.
//
// The hovered node gets an accent halo and its label is drawn last so it
// sits above every other label. Its neighbors keep full color while the
// rest fades with h.Alpha. A zero Snapshot draws without any focus.
// A nil surface draws nothing; nil data draws an empty frame.
func (r *Renderer) DrawFrame(s Surface, d *graph.Data, t view.Transform, h hover.Snapshot, p Palette) FrameStats {
	var stats FrameStats
	if s == nil {
		return stats
	}
	s.Clear(p.Background)

	alpha := h.Alpha
	if alpha == 0 && !h.Hovered {
		alpha = 1
	}

	for _, l := range d.LinkList() {
		if l.Source == nil || l.Target == nil {
			continue
		}
		a := t.Project(view.Point{X: l.Source.X, Y: l.Source.Y})
		b := t.Project(view.Point{X: l.Target.X, Y: l.Target.Y})
		if h.IsHovered(l.Source.ID) || h.IsHovered(l.Target.ID) {
			s.Line(a.X, a.Y, b.X, b.Y, math.Max(1, r.linkWidth), p.Primary)
		} else {
			s.Line(a.X, a.Y, b.X, b.Y, r.linkWidth, p.Tertiary.Fade(alpha))
		}
		stats.Links++
	}

	safe := view.SafeScale(t.K)
	var hovered *label
	for _, n := range d.NodeList() {
		if n == nil {
			continue
		}
		c := t.Project(view.Point{X: n.X, Y: n.Y})
		radius := safe * n.Weight()

		switch {
		case h.IsHovered(n.ID):
			s.Circle(c.X, c.Y, radius+r.halo, p.Accent)
			s.Circle(c.X, c.Y, radius, p.Primary)
			hovered = &label{n.Name, c.X, c.Y + radius + r.fontSize}
		case h.IsNeighbor(n.ID):
			s.Circle(c.X, c.Y, radius, p.Secondary)
		default:
			s.Circle(c.X, c.Y, radius, NodeFill(n.Kind, p, alpha))
		}
		stats.Nodes++

		if t.K > r.labelThreshold && !h.IsHovered(n.ID) {
			col, mul := TextStyle(p.Tertiary, t.K, r.fadeFrom, r.fadeTill)
			size := r.fontSize
			if mul > 0 {
				size = math.Ceil(r.fontSize * mul)
			}
			s.Text(n.Name, c.X, c.Y+radius+r.fontSize, size, col)
			stats.Labels++
		}
	}

	if hovered != nil {
		s.Text(hovered.text, hovered.x, hovered.y, r.fontSize, p.Accent)
		stats.Labels++
	}
	return stats
}

// Package interact turns pointer input into operations on the view.
//
// The [Controller] owns the pan/zoom [view.Transform] and translates
// screen-space pointer events into world-space hit tests, node pinning,
// panning and zooming. It never draws and never blocks; the caller feeds
// events from whatever host delivers them (a terminal, a test).
//
// Events arrive through [Controller.Handle], or through the individual
// gesture methods when the host already recognises gestures.
package interact

import (
	"math"

	"github.com/matzehuels/spiderweb/pkg/graph"
	"github.com/matzehuels/spiderweb/pkg/hit"
	"github.com/matzehuels/spiderweb/pkg/hover"
	"github.com/matzehuels/spiderweb/pkg/view"
)

// Simulation is the part of the force simulation a drag needs.
type Simulation interface {
	// Reheat keeps the simulation running towards the given alpha target.
	Reheat(target float64)
	// Cool lets the simulation settle (alpha target 0).
	Cool()
}

// OpenFunc is called with the id of a clicked node.
type OpenFunc func(id int)

// EventType identifies a pointer event.
type EventType int

// Pointer events.
const (
	PointerMove EventType = iota
	PointerDown
	PointerUp
	Wheel
)

// Event is a pointer event in screen coordinates.
// For Wheel events Delta is the number of notches, positive to zoom in.
type Event struct {
	Type  EventType
	Point view.Point
	Delta float64
}

// Options tune the gestures.
type Options struct {
	// Magnify multiplies the hit radius for clicks, hover and drags.
	Magnify float64
	// DeadZone is the screen distance a press may travel and still count
	// as a click.
	DeadZone float64
	// DragAlpha is the alpha target held while a node is dragged.
	DragAlpha float64
	// WheelFactor is the zoom factor applied per wheel notch.
	WheelFactor float64
}

// DefaultOptions returns the standard gesture tuning.
func DefaultOptions() Options {
	return Options{
		Magnify:     2,
		DeadZone:    3,
		DragAlpha:   0.3,
		WheelFactor: 1.25,
	}
}

type drag struct {
	active bool
	node   *graph.Node // nil when panning
	offset view.Point
	start  view.Point
	last   view.Point
	moved  bool
}

// Controller maps pointer input onto the transform, the hover animator
// and the simulation. It is not safe for concurrent use.
type Controller struct {
	opts Options
	tr   view.Transform
	data *graph.Data
	anim *hover.Animator
	sim  Simulation
	open OpenFunc
	drag drag
}

// New creates a Controller. anim, sim and open may be nil.
func New(opts Options, anim *hover.Animator, sim Simulation, open OpenFunc) *Controller {
	def := DefaultOptions()
	if opts.Magnify <= 0 {
		opts.Magnify = def.Magnify
	}
	if opts.DeadZone < 0 {
		opts.DeadZone = 0
	}
	if opts.DragAlpha <= 0 {
		opts.DragAlpha = def.DragAlpha
	}
	if opts.WheelFactor <= 1 {
		opts.WheelFactor = def.WheelFactor
	}
	return &Controller{
		opts: opts,
		tr:   view.Identity(),
		anim: anim,
		sim:  sim,
		open: open,
	}
}

// SetData swaps the live data set. Any drag in progress is dropped and
// hover is reset.
func (c *Controller) SetData(d *graph.Data) {
	c.cancelDrag()
	c.data = d
	if c.anim != nil {
		c.anim.Reset()
	}
}

// SetSimulation replaces the simulation that drags reheat.
func (c *Controller) SetSimulation(sim Simulation) {
	c.sim = sim
}

// Transform returns the current pan/zoom.
func (c *Controller) Transform() view.Transform {
	return c.tr
}

// SetTransform replaces the pan/zoom.
func (c *Controller) SetTransform(t view.Transform) {
	if t.K <= 0 {
		t.K = 1
	}
	c.tr = t
}

// Dragging reports whether a press is in progress, and the dragged node
// if the press started on one.
func (c *Controller) Dragging() (*graph.Node, bool) {
	return c.drag.node, c.drag.active
}

// Handle dispatches a raw pointer event.
func (c *Controller) Handle(ev Event) {
	switch ev.Type {
	case PointerMove:
		if c.drag.active {
			c.DragMove(ev.Point)
		}
		c.Hover(ev.Point)
	case PointerDown:
		c.DragStart(ev.Point)
	case PointerUp:
		if !c.drag.active {
			return
		}
		click := !c.drag.moved
		c.DragEnd()
		if click {
			c.Click(ev.Point)
		}
	case Wheel:
		if ev.Delta != 0 {
			c.Zoom(math.Pow(c.opts.WheelFactor, ev.Delta), ev.Point)
		}
	}
}

// Click opens the node under the screen point, if any, and returns it.
func (c *Controller) Click(screen view.Point) *graph.Node {
	n := c.find(screen)
	if n != nil && c.open != nil {
		c.open(n.ID)
	}
	return n
}

// Hover points the animator at the node under the screen point, or clears
// hover when there is none.
func (c *Controller) Hover(screen view.Point) *graph.Node {
	n := c.find(screen)
	if c.anim != nil {
		c.anim.SetHovered(n, c.data.LinkList())
	}
	return n
}

// DragStart begins a press. On a node, the node is pinned where it is and
// the simulation is reheated; elsewhere the press pans the view.
func (c *Controller) DragStart(screen view.Point) {
	if c.drag.active {
		c.DragEnd()
	}
	c.drag = drag{active: true, start: screen, last: screen}

	n := c.find(screen)
	if n == nil {
		return
	}
	w := c.tr.Invert(screen)
	c.drag.node = n
	c.drag.offset = view.Point{X: n.X - w.X, Y: n.Y - w.Y}
	n.Pin(n.X, n.Y)
	if c.sim != nil {
		c.sim.Reheat(c.opts.DragAlpha)
	}
}

// DragMove follows the pointer: the dragged node is pinned at the pointer
// plus the grab offset, or the view pans by the pointer delta.
func (c *Controller) DragMove(screen view.Point) {
	if !c.drag.active {
		return
	}
	if !c.drag.moved {
		d := screen.Sub(c.drag.start)
		if math.Hypot(d.X, d.Y) > c.opts.DeadZone {
			c.drag.moved = true
		}
	}

	if n := c.drag.node; n != nil {
		p := c.tr.Invert(screen).Add(c.drag.offset)
		n.Pin(p.X, p.Y)
	} else {
		d := screen.Sub(c.drag.last)
		c.tr.Pan(d.X, d.Y)
	}
	c.drag.last = screen
}

// DragEnd releases the press and unpins the dragged node.
func (c *Controller) DragEnd() {
	if !c.drag.active {
		return
	}
	if n := c.drag.node; n != nil {
		n.Unpin()
		if c.sim != nil {
			c.sim.Cool()
		}
	}
	c.drag = drag{}
}

// Zoom scales the view by factor around the screen point.
func (c *Controller) Zoom(factor float64, screen view.Point) {
	c.tr.ZoomAt(factor, screen)
}

// Pan shifts the view by a screen delta.
func (c *Controller) Pan(dx, dy float64) {
	c.tr.Pan(dx, dy)
}

func (c *Controller) find(screen view.Point) *graph.Node {
	w := c.tr.Invert(screen)
	return hit.Find(c.data.NodeList(), w, hit.Radius(c.tr.K, c.opts.Magnify))
}

func (c *Controller) cancelDrag() {
	if n := c.drag.node; n != nil {
		n.Unpin()
	}
	c.drag = drag{}
}

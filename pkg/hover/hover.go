// Package hover animates the focus effect shown while a node is hovered.
//
// While a node stays hovered, everything else fades from full opacity down
// to [FloorAlpha] over the focus duration. When hover ends the fade runs
// backwards at the same rate. The Animator is driven by frame deltas, so
// tests can feed synthetic time instead of sleeping.
package hover

import (
	"time"

	"github.com/matzehuels/spiderweb/pkg/graph"
)

const (
	// DefaultDuration is how long a full fade takes.
	DefaultDuration = 700 * time.Millisecond
	// FloorAlpha is the opacity unfocused elements settle at.
	FloorAlpha = 0.2
)

// State is the phase of the focus animation.
type State int

// Animation phases.
const (
	Idle State = iota
	TransitioningIn
	TransitioningOut
	Focused
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case TransitioningIn:
		return "transitioning-in"
	case TransitioningOut:
		return "transitioning-out"
	case Focused:
		return "focused"
	default:
		return "unknown"
	}
}

// Snapshot is the per-frame view of the animation handed to the renderer.
// Neighbors is shared with the Animator and must be treated as read-only.
type Snapshot struct {
	HoveredID int
	Hovered   bool
	Neighbors map[int]struct{}
	Alpha     float64
}

// IsHovered reports whether id is the hovered node.
func (s Snapshot) IsHovered(id int) bool {
	return s.Hovered && s.HoveredID == id
}

// IsNeighbor reports whether id is linked to the hovered node.
func (s Snapshot) IsNeighbor(id int) bool {
	_, ok := s.Neighbors[id]
	return ok
}

// Animator tracks the hovered node, its neighbors and the fade progress.
// It is not safe for concurrent use; the render loop owns it.
type Animator struct {
	duration  time.Duration
	hovered   *graph.Node
	neighbors map[int]struct{}
	elapsed   time.Duration
}

// New creates an Animator. A non-positive duration selects DefaultDuration.
func New(duration time.Duration) *Animator {
	if duration <= 0 {
		duration = DefaultDuration
	}
	return &Animator{duration: duration}
}

// SetHovered updates the hovered node. When the node changes, the
// neighbor set is rebuilt from links. Passing nil ends hover; the old
// neighbor set is kept until the fade-out completes.
func (a *Animator) SetHovered(n *graph.Node, links []graph.ResolvedLink) {
	if n == nil {
		a.hovered = nil
		return
	}
	if a.hovered != nil && a.hovered.ID == n.ID {
		a.hovered = n
		return
	}
	a.hovered = n
	a.neighbors = neighborsOf(n.ID, links)
}

// Hovered returns the hovered node, or nil.
func (a *Animator) Hovered() *graph.Node {
	return a.hovered
}

// Advance moves the animation forward by dt of frame time.
// Negative deltas are ignored.
func (a *Animator) Advance(dt time.Duration) {
	if dt <= 0 {
		return
	}
	if a.hovered != nil {
		a.elapsed = min(a.elapsed+dt, a.duration)
		return
	}
	a.elapsed = max(a.elapsed-dt, 0)
	if a.elapsed == 0 {
		a.neighbors = nil
	}
}

// Alpha returns the opacity for unfocused elements: 1 with no focus,
// falling linearly to FloorAlpha at full focus.
func (a *Animator) Alpha() float64 {
	frac := float64(a.elapsed) / float64(a.duration)
	return FloorAlpha + (1-FloorAlpha)*(1-frac)
}

// State derives the animation phase.
func (a *Animator) State() State {
	switch {
	case a.hovered != nil && a.elapsed >= a.duration:
		return Focused
	case a.hovered != nil:
		return TransitioningIn
	case a.elapsed > 0:
		return TransitioningOut
	default:
		return Idle
	}
}

// Snapshot captures the state the renderer needs for one frame.
func (a *Animator) Snapshot() Snapshot {
	s := Snapshot{Neighbors: a.neighbors, Alpha: a.Alpha()}
	if a.hovered != nil {
		s.Hovered = true
		s.HoveredID = a.hovered.ID
	}
	return s
}

// Reset drops hover and snaps back to Idle.
func (a *Animator) Reset() {
	a.hovered = nil
	a.neighbors = nil
	a.elapsed = 0
}

func neighborsOf(id int, links []graph.ResolvedLink) map[int]struct{} {
	out := make(map[int]struct{})
	for _, l := range links {
		if l.Source == nil || l.Target == nil {
			continue
		}
		switch id {
		case l.Source.ID:
			out[l.Target.ID] = struct{}{}
		case l.Target.ID:
			out[l.Source.ID] = struct{}{}
		}
	}
	return out
}

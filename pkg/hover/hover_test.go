package hover

import (
	"math"
	"testing"
	"time"

	"github.com/matzehuels/spiderweb/pkg/graph"
)

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func fixture() (a, b, c *graph.Node, links []graph.ResolvedLink) {
	a = &graph.Node{ID: 1, Name: "a"}
	b = &graph.Node{ID: 2, Name: "b"}
	c = &graph.Node{ID: 3, Name: "c"}
	links = []graph.ResolvedLink{
		{Source: a, Target: b},
		{Source: c, Target: a},
	}
	return a, b, c, links
}

func TestFocusReachesFloor(t *testing.T) {
	a, _, _, links := fixture()
	an := New(0)
	an.SetHovered(a, links)

	for range 70 {
		an.Advance(10 * time.Millisecond)
	}
	if !near(an.Alpha(), FloorAlpha) {
		t.Errorf("alpha = %v, want %v", an.Alpha(), FloorAlpha)
	}
	if an.State() != Focused {
		t.Errorf("state = %v, want focused", an.State())
	}

	// stays at the floor while hover persists
	an.Advance(time.Second)
	if !near(an.Alpha(), FloorAlpha) {
		t.Errorf("alpha after extra time = %v", an.Alpha())
	}
}

func TestFadeOutHalfway(t *testing.T) {
	a, _, _, links := fixture()
	an := New(DefaultDuration)
	an.SetHovered(a, links)
	an.Advance(DefaultDuration)

	an.SetHovered(nil, links)
	an.Advance(350 * time.Millisecond)

	if !near(an.Alpha(), 0.6) {
		t.Errorf("alpha = %v, want 0.6", an.Alpha())
	}
	if an.State() != TransitioningOut {
		t.Errorf("state = %v, want transitioning-out", an.State())
	}

	an.Advance(350 * time.Millisecond)
	if !near(an.Alpha(), 1) || an.State() != Idle {
		t.Errorf("alpha = %v state = %v, want 1 idle", an.Alpha(), an.State())
	}
}

func TestAlphaMonotonic(t *testing.T) {
	a, _, _, links := fixture()
	an := New(0)
	an.SetHovered(a, links)

	prev := an.Alpha()
	for range 100 {
		an.Advance(13 * time.Millisecond)
		got := an.Alpha()
		if got > prev+1e-12 || got < FloorAlpha-1e-12 {
			t.Fatalf("alpha rose or broke floor while hovered: %v -> %v", prev, got)
		}
		prev = got
	}

	an.SetHovered(nil, nil)
	for range 100 {
		an.Advance(13 * time.Millisecond)
		got := an.Alpha()
		if got < prev-1e-12 || got > 1+1e-12 {
			t.Fatalf("alpha fell while recovering: %v -> %v", prev, got)
		}
		prev = got
	}
	if !near(prev, 1) {
		t.Errorf("alpha did not recover: %v", prev)
	}
}

func TestAdvanceIgnoresNegativeDelta(t *testing.T) {
	a, _, _, links := fixture()
	an := New(0)
	an.SetHovered(a, links)
	an.Advance(100 * time.Millisecond)
	before := an.Alpha()
	an.Advance(-50 * time.Millisecond)
	if an.Alpha() != before {
		t.Errorf("negative delta changed alpha: %v -> %v", before, an.Alpha())
	}
}

func TestStates(t *testing.T) {
	a, _, _, links := fixture()
	an := New(0)
	if an.State() != Idle {
		t.Errorf("initial state = %v", an.State())
	}
	an.SetHovered(a, links)
	if an.State() != TransitioningIn {
		t.Errorf("after hover = %v", an.State())
	}
	an.Advance(time.Millisecond)
	if an.State() != TransitioningIn {
		t.Errorf("mid fade = %v", an.State())
	}
	an.Reset()
	if an.State() != Idle || an.Alpha() != 1 {
		t.Errorf("after reset = %v alpha %v", an.State(), an.Alpha())
	}
}

func TestNeighbors(t *testing.T) {
	a, b, c, links := fixture()
	an := New(0)

	an.SetHovered(a, links)
	s := an.Snapshot()
	if !s.IsHovered(a.ID) || !s.IsNeighbor(b.ID) || !s.IsNeighbor(c.ID) {
		t.Errorf("snapshot for a = %+v", s)
	}
	if s.IsNeighbor(a.ID) {
		t.Error("hovered node should not be its own neighbor")
	}

	// switching directly to another node rebuilds the set
	an.SetHovered(b, links)
	s = an.Snapshot()
	if !s.IsHovered(b.ID) || !s.IsNeighbor(a.ID) || s.IsNeighbor(c.ID) {
		t.Errorf("snapshot for b = %+v", s)
	}
}

func TestNeighborsClearedWhenIdle(t *testing.T) {
	a, b, _, links := fixture()
	an := New(100 * time.Millisecond)
	an.SetHovered(a, links)
	an.Advance(100 * time.Millisecond)
	an.SetHovered(nil, links)

	an.Advance(50 * time.Millisecond)
	if !an.Snapshot().IsNeighbor(b.ID) {
		t.Error("neighbors should survive the fade-out")
	}
	an.Advance(50 * time.Millisecond)
	if an.Snapshot().IsNeighbor(b.ID) {
		t.Error("neighbors should clear once idle")
	}
	if an.Snapshot().Hovered {
		t.Error("snapshot should report no hover")
	}
}

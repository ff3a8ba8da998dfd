package loop

import (
	"strings"
	"testing"
	"time"
)

func TestFrameDelta(t *testing.T) {
	l := New(60)
	if l.Interval() != time.Second/60 {
		t.Errorf("interval = %v", l.Interval())
	}
	if cmd := l.Start(); cmd == nil {
		t.Fatal("Start should return a tick command")
	}

	t0 := time.Unix(100, 0)
	dt, next, ok := l.Frame(FrameMsg{At: t0, Gen: 1})
	if !ok || next == nil || dt != 0 {
		t.Fatalf("first frame = %v, %v, %v", dt, next != nil, ok)
	}

	dt, _, ok = l.Frame(FrameMsg{At: t0.Add(16 * time.Millisecond), Gen: 1})
	if !ok || dt != 16*time.Millisecond {
		t.Errorf("second frame dt = %v, ok = %v", dt, ok)
	}

	// clock going backwards yields no delta
	dt, _, _ = l.Frame(FrameMsg{At: t0, Gen: 1})
	if dt != 0 {
		t.Errorf("backwards dt = %v", dt)
	}
	if l.Frames() != 3 {
		t.Errorf("frames = %d, want 3", l.Frames())
	}
}

func TestStaleGenerationDropped(t *testing.T) {
	l := New(0)
	l.Start()
	l.Start()
	if _, next, ok := l.Frame(FrameMsg{At: time.Now(), Gen: 1}); ok || next != nil {
		t.Error("tick from the first Start should be dropped")
	}
	if _, _, ok := l.Frame(FrameMsg{At: time.Now(), Gen: 2}); !ok {
		t.Error("current tick should be accepted")
	}
}

func TestStopOrder(t *testing.T) {
	l := New(30)
	l.Start()

	var order []string
	bus := NewBus[ResizeEvent]()
	bus.Subscribe(func(ResizeEvent) {})
	l.Own(closerFunc(func() error {
		order = append(order, "close")
		if l.Running() {
			t.Error("scheduling should stop before subscriptions close")
		}
		return nil
	}))
	l.Own(bus)
	l.OnStop(func() {
		order = append(order, "sim")
		if bus.Len() != 0 {
			t.Error("subscriptions should be gone before the simulation stops")
		}
	})

	l.Stop()
	if got := strings.Join(order, ","); got != "close,sim" {
		t.Errorf("order = %s", got)
	}
	if _, next, ok := l.Frame(FrameMsg{At: time.Now(), Gen: 1}); ok || next != nil {
		t.Error("no frames after Stop")
	}

	l.Stop()
	if len(order) != 2 {
		t.Error("second Stop should be a no-op")
	}
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

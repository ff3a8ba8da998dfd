// Package loop drives the interactive view: one frame per display tick,
// plus the input subscriptions that feed it.
//
// The loop is built for bubbletea's single-goroutine update model. Ticks
// arrive as [FrameMsg] values through the program's message queue, so the
// frame handler, pointer handlers and the simulation all run on the same
// goroutine and share node state without locks.
//
// Teardown order is fixed: scheduling stops first, then every owned
// subscription bus is closed, then OnStop hooks run (the simulation stops
// there).
package loop

import (
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DefaultFPS is the refresh rate used when none is configured.
const DefaultFPS = 60

// FrameMsg is delivered once per refresh tick.
type FrameMsg struct {
	At  time.Time
	Gen int
}

// Loop schedules frames. It is not safe for concurrent use; call it from
// the bubbletea Update method.
type Loop struct {
	interval time.Duration
	gen      int
	running  bool
	last     time.Time
	frames   int

	owned  []io.Closer
	onStop []func()
}

// New creates a stopped loop ticking fps times per second.
func New(fps int) *Loop {
	if fps <= 0 {
		fps = DefaultFPS
	}
	return &Loop{interval: time.Second / time.Duration(fps)}
}

// Interval returns the time between ticks.
func (l *Loop) Interval() time.Duration {
	return l.interval
}

// Running reports whether frames are being scheduled.
func (l *Loop) Running() bool {
	return l.running
}

// Frames returns how many frames have been accepted since Start.
func (l *Loop) Frames() int {
	return l.frames
}

// Start begins scheduling and returns the command for the first tick.
// Ticks from an earlier Start are ignored from now on.
func (l *Loop) Start() tea.Cmd {
	l.gen++
	l.running = true
	l.last = time.Time{}
	l.frames = 0
	return l.tick()
}

// Frame accepts a tick. It returns the time since the previous frame
// (zero for the first one) and the command for the next tick. ok is false
// for ticks of a stopped or restarted loop; such ticks must not draw.
func (l *Loop) Frame(msg FrameMsg) (dt time.Duration, next tea.Cmd, ok bool) {
	if !l.running || msg.Gen != l.gen {
		return 0, nil, false
	}
	if !l.last.IsZero() && msg.At.After(l.last) {
		dt = msg.At.Sub(l.last)
	}
	l.last = msg.At
	l.frames++
	return dt, l.tick(), true
}

// Own registers a closer released by Stop, before the OnStop hooks.
func (l *Loop) Own(c io.Closer) {
	l.owned = append(l.owned, c)
}

// OnStop registers fn to run last during Stop.
func (l *Loop) OnStop(fn func()) {
	l.onStop = append(l.onStop, fn)
}

// Stop ends scheduling, closes owned subscriptions and runs the OnStop
// hooks. Calling Stop again is a no-op.
func (l *Loop) Stop() {
	if !l.running && l.owned == nil && l.onStop == nil {
		return
	}
	l.running = false
	l.gen++

	owned, hooks := l.owned, l.onStop
	l.owned, l.onStop = nil, nil
	for _, c := range owned {
		_ = c.Close()
	}
	for _, fn := range hooks {
		fn()
	}
}

func (l *Loop) tick() tea.Cmd {
	gen := l.gen
	return tea.Tick(l.interval, func(t time.Time) tea.Msg {
		return FrameMsg{At: t, Gen: gen}
	})
}

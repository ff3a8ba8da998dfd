// Package tui is the interactive terminal viewer.
//
// [Model] wires the pieces together on bubbletea's update goroutine:
// frame ticks from [loop.Loop] step the simulation, advance the hover fade
// and redraw the braille canvas; mouse and resize messages are published
// on subscription buses that the controller and the canvas listen on.
// Quitting stops the loop, which closes the buses and stops the simulation.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/spiderweb/pkg/graph"
	"github.com/matzehuels/spiderweb/pkg/hover"
	"github.com/matzehuels/spiderweb/pkg/interact"
	"github.com/matzehuels/spiderweb/pkg/loop"
	"github.com/matzehuels/spiderweb/pkg/observability"
	"github.com/matzehuels/spiderweb/pkg/render"
	"github.com/matzehuels/spiderweb/pkg/render/term"
	"github.com/matzehuels/spiderweb/pkg/sim"
	"github.com/matzehuels/spiderweb/pkg/view"
)

// keyZoom is the zoom factor per +/- key press; keyPan the pan step in dots.
const (
	keyZoom = 1.25
	keyPan  = 8.0
)

// Config holds everything the viewer needs.
type Config struct {
	Graph    graph.Graph
	Palette  render.Palette
	Sim      sim.Config
	FPS      int
	Magnify  float64
	Renderer []render.Option

	// Open is called when a node is clicked. It runs off the update
	// goroutine and may block.
	Open func(ctx context.Context, id int) error
	// Reload fetches a fresh graph (the "R" key). Optional.
	Reload func(ctx context.Context) (graph.Graph, error)

	Logger *log.Logger
}

type openedMsg struct {
	id  int
	err error
}

type reloadedMsg struct {
	g   graph.Graph
	err error
}

// Model is the bubbletea model of the viewer.
type Model struct {
	ctx    context.Context
	cfg    Config
	logger *log.Logger

	data     *graph.Data
	sim      *sim.Simulation
	anim     *hover.Animator
	ctrl     *interact.Controller
	renderer *render.Renderer
	canvas   *term.Canvas
	palette  render.Palette

	loop    *loop.Loop
	pointer *loop.Bus[interact.Event]
	resize  *loop.Bus[loop.ResizeEvent]

	width, height int
	sized         bool
	pending       []int
	ticks         int
	settled       bool
	frame         string
	status        string
	quitting      bool
}

// New builds a viewer for cfg.Graph.
func New(ctx context.Context, cfg Config) *Model {
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	m := &Model{
		ctx:      ctx,
		cfg:      cfg,
		logger:   cfg.Logger,
		anim:     hover.New(hover.DefaultDuration),
		renderer: render.New(cfg.Renderer...),
		canvas:   term.New(0, 0),
		palette:  cfg.Palette,
		loop:     loop.New(cfg.FPS),
		pointer:  loop.NewBus[interact.Event](),
		resize:   loop.NewBus[loop.ResizeEvent](),
	}
	m.data = graph.Resolve(graph.Normalize(cfg.Graph))
	m.sim = sim.New(m.data, cfg.Sim)

	opts := interact.DefaultOptions()
	if cfg.Magnify > 0 {
		opts.Magnify = cfg.Magnify
	}
	m.ctrl = interact.New(opts, m.anim, m.sim, m.queueOpen)
	m.ctrl.SetData(m.data)

	m.pointer.Subscribe(m.ctrl.Handle)
	m.resize.Subscribe(m.onResize)

	m.loop.Own(m.pointer)
	m.loop.Own(m.resize)
	m.loop.OnStop(m.sim.Stop)
	return m
}

// Init starts the frame loop.
func (m *Model) Init() tea.Cmd {
	return m.loop.Start()
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loop.FrameMsg:
		return m, m.onFrame(msg)

	case tea.WindowSizeMsg:
		m.resize.Publish(loop.ResizeEvent{Width: msg.Width, Height: msg.Height})
		return m, nil

	case tea.MouseMsg:
		if ev, ok := pointerEvent(msg); ok {
			m.pointer.Publish(ev)
		}
		return m, m.flushOpens()

	case tea.KeyMsg:
		return m, m.onKey(msg)

	case openedMsg:
		observability.Render().OnOpen(m.ctx, msg.id, msg.err)
		if msg.err != nil {
			m.logger.Warn("open failed", "node", msg.id, "err", msg.err)
			m.status = fmt.Sprintf("open failed: %v", msg.err)
		} else if n, ok := m.data.Node(msg.id); ok {
			m.status = "opened " + n.Name
		}
		return m, nil

	case reloadedMsg:
		if msg.err != nil {
			m.logger.Warn("reload failed", "err", msg.err)
			m.status = fmt.Sprintf("reload failed: %v", msg.err)
			return m, nil
		}
		m.SetGraph(msg.g)
		m.status = fmt.Sprintf("reloaded %d nodes", len(m.data.NodeList()))
		return m, nil
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.sized {
		return "loading…"
	}
	return m.frame + "\n" + m.statusLine()
}

// SetGraph replaces the data set. Hover, drags and layout start over.
func (m *Model) SetGraph(g graph.Graph) {
	m.data = graph.Resolve(graph.Normalize(g))
	m.sim.SetData(m.data)
	m.ctrl.SetData(m.data)
	m.ticks = 0
	m.settled = false
}

// Data returns the live data set.
func (m *Model) Data() *graph.Data { return m.data }

// Transform returns the current view transform.
func (m *Model) Transform() view.Transform { return m.ctrl.Transform() }

// Stopped reports whether the loop has been torn down.
func (m *Model) Stopped() bool { return !m.loop.Running() }

// Close tears the viewer down: frame scheduling stops, the input
// subscriptions are closed and the simulation stops. It is safe to call
// more than once, and the caller should defer it after New so that a
// program ended by context cancellation is torn down as well.
func (m *Model) Close() {
	m.loop.Stop()
}

// =============================================================================
// Frame
// =============================================================================

func (m *Model) onFrame(msg loop.FrameMsg) tea.Cmd {
	if m.ctx.Err() != nil {
		m.Close()
		return nil
	}
	dt, next, ok := m.loop.Frame(msg)
	if !ok {
		return nil
	}

	if m.sim.Step() {
		m.ticks++
	} else if !m.settled && m.ticks > 0 {
		m.settled = true
		observability.Render().OnSettled(m.ctx, m.ticks)
		m.logger.Debug("layout settled", "ticks", m.ticks)
	}
	m.anim.Advance(dt)
	m.draw()
	return next
}

func (m *Model) draw() {
	if !m.sized {
		return
	}
	start := time.Now()
	stats := m.renderer.DrawFrame(m.canvas, m.data, m.ctrl.Transform(), m.anim.Snapshot(), m.palette)
	m.frame = m.canvas.String()
	observability.Render().OnFrame(m.ctx, stats.Nodes, stats.Links, time.Since(start))
}

// =============================================================================
// Input
// =============================================================================

func (m *Model) onResize(ev loop.ResizeEvent) {
	rows := max(ev.Height-1, 0) // status line
	oldW, oldH := m.canvas.Size()
	m.canvas.Resize(ev.Width, rows)
	w, h := m.canvas.Size()
	m.width, m.height = ev.Width, ev.Height

	if !m.sized {
		m.sized = true
		m.ctrl.SetTransform(view.Center(view.Point{X: w / 2, Y: h / 2}, 1))
		return
	}
	t := m.ctrl.Transform()
	t.Pan((w-oldW)/2, (h-oldH)/2)
	m.ctrl.SetTransform(t)
}

func pointerEvent(msg tea.MouseMsg) (interact.Event, bool) {
	p := term.CellToDot(msg.X, msg.Y)
	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		return interact.Event{Type: interact.Wheel, Point: p, Delta: 1}, true
	case msg.Button == tea.MouseButtonWheelDown:
		return interact.Event{Type: interact.Wheel, Point: p, Delta: -1}, true
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		return interact.Event{Type: interact.PointerDown, Point: p}, true
	case msg.Action == tea.MouseActionRelease:
		return interact.Event{Type: interact.PointerUp, Point: p}, true
	case msg.Action == tea.MouseActionMotion:
		return interact.Event{Type: interact.PointerMove, Point: p}, true
	}
	return interact.Event{}, false
}

func (m *Model) onKey(msg tea.KeyMsg) tea.Cmd {
	w, h := m.canvas.Size()
	mid := view.Point{X: w / 2, Y: h / 2}

	switch msg.String() {
	case "q", "ctrl+c", "esc":
		m.quitting = true
		m.Close()
		return tea.Quit
	case "+", "=":
		m.ctrl.Zoom(keyZoom, mid)
	case "-", "_":
		m.ctrl.Zoom(1/keyZoom, mid)
	case "left", "h":
		m.ctrl.Pan(keyPan, 0)
	case "right", "l":
		m.ctrl.Pan(-keyPan, 0)
	case "up", "k":
		m.ctrl.Pan(0, keyPan)
	case "down", "j":
		m.ctrl.Pan(0, -keyPan)
	case "0":
		m.ctrl.SetTransform(view.Center(mid, 1))
	case "r":
		m.sim.SetAlpha(1)
		m.sim.Reheat(0)
		m.settled = false
	case "R":
		if m.cfg.Reload != nil {
			m.status = "reloading…"
			return m.reload()
		}
	}
	return nil
}

// =============================================================================
// Node open
// =============================================================================

// queueOpen is the controller's OpenFunc. It runs inside Update, so the
// request is deferred to a command instead of blocking the frame.
func (m *Model) queueOpen(id int) {
	m.pending = append(m.pending, id)
}

func (m *Model) flushOpens() tea.Cmd {
	if len(m.pending) == 0 || m.cfg.Open == nil {
		m.pending = m.pending[:0]
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(m.pending))
	for _, id := range m.pending {
		cmds = append(cmds, func() tea.Msg {
			return openedMsg{id: id, err: m.cfg.Open(m.ctx, id)}
		})
	}
	m.pending = m.pending[:0]
	return tea.Batch(cmds...)
}

func (m *Model) reload() tea.Cmd {
	fetch := m.cfg.Reload
	ctx := m.ctx
	return func() tea.Msg {
		g, err := fetch(ctx)
		return reloadedMsg{g: g, err: err}
	}
}

// =============================================================================
// Status line
// =============================================================================

var (
	statusStyle = lipgloss.NewStyle().Faint(true)
	focusStyle  = lipgloss.NewStyle().Bold(true)
)

func (m *Model) statusLine() string {
	var parts []string
	if n := m.anim.Hovered(); n != nil {
		parts = append(parts, focusStyle.Render(n.Name)+" "+statusStyle.Render(n.Kind.String()))
	}
	t := m.ctrl.Transform()
	parts = append(parts, statusStyle.Render(fmt.Sprintf("%d nodes  %d links  zoom %.2f",
		len(m.data.NodeList()), len(m.data.LinkList()), t.K)))
	if m.status != "" {
		parts = append(parts, m.status)
	} else {
		parts = append(parts, statusStyle.Render("+/- zoom  arrows pan  0 reset  r reheat  q quit"))
	}
	line := strings.Join(parts, statusStyle.Render("  │  "))
	if m.width > 0 {
		line = lipgloss.NewStyle().MaxWidth(m.width).Render(line)
	}
	return line
}

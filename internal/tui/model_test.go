package tui

import (
	"context"
	"io"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/spiderweb/pkg/graph"
	"github.com/matzehuels/spiderweb/pkg/loop"
	"github.com/matzehuels/spiderweb/pkg/render"
	"github.com/matzehuels/spiderweb/pkg/sim"
	"github.com/matzehuels/spiderweb/pkg/view"
)

func testGraph() graph.Graph {
	return graph.Graph{
		Nodes: []graph.Node{
			{ID: 1, Name: "index", Kind: graph.KindFile},
			{ID: 2, Name: "todo", Kind: graph.KindTag},
			{ID: 3, Name: "roadmap", Kind: graph.KindUnresolvedFile},
		},
		Links: []graph.Link{{Source: 1, Target: 2}, {Source: 1, Target: 3}},
	}
}

func newTestModel(t *testing.T, cfg Config) *Model {
	t.Helper()
	return newTestModelContext(t, context.Background(), cfg)
}

func newTestModelContext(t *testing.T, ctx context.Context, cfg Config) *Model {
	t.Helper()
	if cfg.Graph.Nodes == nil {
		cfg.Graph = testGraph()
	}
	cfg.Palette = render.Dark()
	cfg.Sim = sim.DefaultConfig()
	cfg.Logger = log.New(io.Discard)
	m := New(ctx, cfg)
	m.Update(tea.WindowSizeMsg{Width: 40, Height: 11})
	return m
}

// run executes cmd and returns the messages it produces, expanding batches.
func run(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, run(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func TestFrameDraws(t *testing.T) {
	m := newTestModel(t, Config{})

	msgs := run(m.Init())
	if len(msgs) != 1 {
		t.Fatalf("Init produced %d messages", len(msgs))
	}
	frame, ok := msgs[0].(loop.FrameMsg)
	if !ok {
		t.Fatalf("Init produced %T, want loop.FrameMsg", msgs[0])
	}

	_, next := m.Update(frame)
	if next == nil {
		t.Error("a running loop must schedule the next frame")
	}

	out := m.View()
	if !strings.ContainsFunc(out, func(r rune) bool { return r > 0x2800 && r <= 0x28ff }) {
		t.Error("frame has no braille dots")
	}
	if !strings.Contains(out, "3 nodes") || !strings.Contains(out, "2 links") {
		t.Errorf("status line missing counts:\n%s", out)
	}
}

func TestQuitTearsDown(t *testing.T) {
	m := newTestModel(t, Config{})
	m.Init()

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("quit should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("quit command should be tea.Quit")
	}
	if !m.Stopped() {
		t.Error("loop still running after quit")
	}
	if m.pointer.Len() != 0 || m.resize.Len() != 0 {
		t.Errorf("subscriptions left: pointer=%d resize=%d", m.pointer.Len(), m.resize.Len())
	}
	if m.sim.Active() {
		t.Error("simulation still active after quit")
	}
	if m.View() != "" {
		t.Error("quitting view should be empty")
	}
}

func assertTornDown(t *testing.T, m *Model) {
	t.Helper()
	if !m.Stopped() {
		t.Error("loop still running")
	}
	if m.pointer.Len() != 0 || m.resize.Len() != 0 {
		t.Errorf("subscriptions left: pointer=%d resize=%d", m.pointer.Len(), m.resize.Len())
	}
	if m.sim.Active() {
		t.Error("simulation still active")
	}
}

func TestCancelledContextTearsDown(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	m := newTestModelContext(t, ctx, Config{})
	start := m.Init()
	if m.Stopped() {
		t.Fatal("loop should run after Init")
	}

	cancel()
	msg := start()
	if _, cmd := m.Update(msg); cmd != nil {
		t.Error("frame after cancellation should not schedule another tick")
	}
	assertTornDown(t, m)

	m.Close()
	assertTornDown(t, m)
}

func TestCloseAfterProgramKilled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	m := newTestModelContext(t, ctx, Config{})
	cancel()

	p := tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithInput(nil),
		tea.WithOutput(io.Discard),
		tea.WithoutSignalHandler(),
	)
	if _, err := p.Run(); err == nil {
		t.Error("Run() with a cancelled context should fail")
	}
	m.Close()
	assertTornDown(t, m)
}

func TestClickOpensNode(t *testing.T) {
	var mu sync.Mutex
	var opened []int
	m := newTestModel(t, Config{
		Open: func(_ context.Context, id int) error {
			mu.Lock()
			defer mu.Unlock()
			opened = append(opened, id)
			return nil
		},
	})

	n, _ := m.Data().Node(1)
	p := m.Transform().Project(view.Point{X: n.X, Y: n.Y})
	col, row := int(p.X)/2, int(p.Y)/4

	m.Update(tea.MouseMsg{X: col, Y: row, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	_, cmd := m.Update(tea.MouseMsg{X: col, Y: row, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})

	msgs := run(cmd)
	if len(opened) != 1 || opened[0] != 1 {
		t.Fatalf("opened = %v, want [1]", opened)
	}
	for _, msg := range msgs {
		m.Update(msg)
	}
	if m.status != "opened index" {
		t.Errorf("status = %q", m.status)
	}
}

func TestKeys(t *testing.T) {
	m := newTestModel(t, Config{})
	start := m.Transform()

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'+'}})
	if k := m.Transform().K; k != 1.25 {
		t.Errorf("zoom in: K = %v, want 1.25", k)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	if m.Transform().X == start.X {
		t.Error("left arrow should pan")
	}

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'0'}})
	if got := m.Transform(); got != start {
		t.Errorf("reset = %+v, want %+v", got, start)
	}
}

func TestResizeKeepsCenter(t *testing.T) {
	m := newTestModel(t, Config{})
	before := m.Transform()

	m.Update(tea.WindowSizeMsg{Width: 60, Height: 11})
	after := m.Transform()

	// 20 more columns = 40 more dots; the origin moves by half of that.
	if after.X-before.X != 20 || after.Y != before.Y {
		t.Errorf("transform %+v -> %+v", before, after)
	}
}

func TestReload(t *testing.T) {
	m := newTestModel(t, Config{
		Reload: func(context.Context) (graph.Graph, error) {
			return graph.Graph{Nodes: []graph.Node{{ID: 9, Name: "solo", Kind: graph.KindFile, Val: 4}}}, nil
		},
	})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'R'}})
	for _, msg := range run(cmd) {
		m.Update(msg)
	}
	if got := len(m.Data().NodeList()); got != 1 {
		t.Fatalf("nodes after reload = %d, want 1", got)
	}
	if _, ok := m.Data().Node(9); !ok {
		t.Error("reloaded node missing")
	}
}

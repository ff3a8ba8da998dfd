package term

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/spiderweb/pkg/graph"
	"github.com/matzehuels/spiderweb/pkg/hover"
	"github.com/matzehuels/spiderweb/pkg/render"
	"github.com/matzehuels/spiderweb/pkg/view"
)

var (
	black = render.MustHex("#000000")
	white = render.MustHex("#ffffff")
)

func TestCellToDot(t *testing.T) {
	p := CellToDot(3, 2)
	if p.X != 7 || p.Y != 10 {
		t.Errorf("CellToDot(3, 2) = %v, want (7, 10)", p)
	}
}

func TestDotGlyphs(t *testing.T) {
	tests := []struct {
		name string
		dots [][2]float64
		want rune
	}{
		{"TopLeft", [][2]float64{{0, 0}}, '⠁'},
		{"BottomRight", [][2]float64{{1, 3}}, '⢀'},
		{"LeftColumn", [][2]float64{{0, 0}, {0, 1}, {0, 2}, {0, 3}}, '⡇'},
		{"Full", [][2]float64{{0, 0}, {0, 1}, {0, 2}, {0, 3}, {1, 0}, {1, 1}, {1, 2}, {1, 3}}, '⣿'},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(1, 1)
			c.Clear(black)
			for _, d := range tt.dots {
				c.Circle(d[0]+0.5, d[1]+0.5, 0, white)
			}
			if got := []rune(c.Lines()[0])[0]; got != tt.want {
				t.Errorf("glyph = %q (%U), want %q", got, got, tt.want)
			}
		})
	}
}

func TestLine(t *testing.T) {
	c := New(4, 1)
	c.Clear(black)
	c.Line(0, 0, 7, 0, 1, white)
	for x := range 8 {
		if !c.Dot(x, 0) {
			t.Errorf("dot (%d, 0) not lit", x)
		}
	}
	if c.Dot(0, 1) {
		t.Error("line bled into the next dot row")
	}
}

func TestLineClipped(t *testing.T) {
	c := New(2, 2)
	c.Clear(black)
	c.Line(-1e9, 3, 1e9, 3, 1, white)
	if !c.Dot(0, 3) || !c.Dot(3, 3) {
		t.Error("clipped line should cross the canvas")
	}
	c.Line(math.NaN(), 0, 1, 1, 1, white)
	c.Line(-10, -10, -5, -5, 1, white)
}

func TestCircle(t *testing.T) {
	c := New(10, 5)
	c.Clear(black)
	c.Circle(10, 10, 3, white)
	if !c.Dot(10, 10) {
		t.Error("center not lit")
	}
	if c.Dot(10, 15) || c.Dot(4, 10) {
		t.Error("dots outside the radius lit")
	}

	c.Circle(1e6, 1e6, 2, white)
	c.Circle(5, 5, math.Inf(1), white)
}

func TestTextCentered(t *testing.T) {
	c := New(10, 2)
	c.Clear(black)
	// dot x 10 is cell 5; "abcd" spans cells 3..6
	c.Text("abcd", 10, 5, 18, white)

	line := c.Lines()[1]
	if got := strings.TrimSpace(line); got != "abcd" {
		t.Errorf("row = %q", line)
	}
	if strings.Index(line, "abcd") != 3 {
		t.Errorf("text starts at %d, want 3", strings.Index(line, "abcd"))
	}
}

func TestTextWideRunes(t *testing.T) {
	c := New(6, 1)
	c.Clear(black)
	c.Text("日本", 6, 1, 0, white)
	line := c.Lines()[0]
	if !strings.Contains(line, "日本") {
		t.Errorf("row = %q", line)
	}
	if w := len([]rune(line)); w != 4 {
		t.Errorf("row has %d runes, want 4 (2 wide + 2 blank)", w)
	}
}

func TestTextOffCanvas(t *testing.T) {
	c := New(4, 1)
	c.Clear(black)
	c.Text("hello world", 4, 2, 0, white)
	c.Text("x", 4, 100, 0, white)
	if len([]rune(c.Lines()[0])) != 4 {
		t.Error("overflowing text must not widen the row")
	}
}

func TestClearResets(t *testing.T) {
	c := New(2, 1)
	c.Clear(black)
	c.Circle(1, 1, 1, white)
	c.Text("x", 1, 1, 0, white)
	c.Clear(black)
	if got := c.Lines()[0]; got != "  " {
		t.Errorf("after clear = %q", got)
	}
}

func TestStringHasOneRowPerCellRow(t *testing.T) {
	c := New(3, 3)
	c.Clear(render.Dark().Background)
	c.Circle(2, 2, 1, render.Dark().Secondary)
	if got := strings.Count(c.String(), "\n"); got != 2 {
		t.Errorf("newlines = %d, want 2", got)
	}
}

func TestDrawFrameOnCanvas(t *testing.T) {
	d := graph.Resolve(graph.Graph{
		Nodes: []graph.Node{{ID: 1, Name: "a", Val: 1, X: 0, Y: 0}, {ID: 2, Name: "b", Val: 1, X: 10, Y: 0}},
		Links: []graph.Link{{Source: 1, Target: 2}},
	})
	c := New(20, 10)
	w, h := c.Size()
	tr := view.Center(view.Point{X: w / 2, Y: h / 2}, 1)

	stats := render.New(render.WithFontSize(DotsY)).DrawFrame(c, d, tr, hover.Snapshot{}, render.Dark())
	if stats.Nodes != 2 || stats.Links != 1 {
		t.Errorf("stats = %+v", stats)
	}
	if !c.Dot(20, 20) || !c.Dot(30, 20) || !c.Dot(25, 20) {
		t.Error("nodes and the link between them should be lit")
	}
}

func TestHugeDiscStaysOnCanvas(t *testing.T) {
	d := graph.Resolve(graph.Graph{
		Nodes: []graph.Node{{ID: 1, Name: "index", Val: 20000}},
	})
	c := New(80, 24)
	w, h := c.Size()
	tr := view.Center(view.Point{X: w / 2, Y: h / 2}, 1)

	start := time.Now()
	render.New().DrawFrame(c, d, tr, hover.Snapshot{}, render.Dark())
	if took := time.Since(start); took > time.Second {
		t.Errorf("frame with one huge node took %v", took)
	}
	for _, p := range [][2]int{{0, 0}, {int(w) - 1, 0}, {0, int(h) - 1}, {int(w) - 1, int(h) - 1}} {
		if !c.Dot(p[0], p[1]) {
			t.Errorf("dot %v not covered by the disc", p)
		}
	}
}

func TestDiscPartlyOffCanvas(t *testing.T) {
	c := New(10, 5)
	c.Clear(black)
	c.Circle(-2, 10, 5, white)
	if !c.Dot(0, 10) || !c.Dot(2, 10) {
		t.Error("visible part of the disc not lit")
	}
	if c.Dot(5, 10) {
		t.Error("dot beyond the radius lit")
	}
}

// Package term draws frames into a terminal using braille characters.
//
// Each terminal cell holds a 2x4 grid of dots, so a Canvas of cols x rows
// cells is a surface of (cols*2) x (rows*4) dots. Colors are tracked per
// cell: the last primitive to touch a cell sets its foreground. Text is an
// overlay that replaces the braille glyphs it covers.
//
// Terminals have no alpha channel, so every color is composited over the
// background passed to Clear before it is stored.
package term

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/matzehuels/spiderweb/pkg/render"
	"github.com/matzehuels/spiderweb/pkg/view"
)

// Dots per cell.
const (
	DotsX = 2
	DotsY = 4
)

const brailleBase = 0x2800

// dotBits maps a dot position within a cell to its braille bit.
var dotBits = [DotsY][DotsX]uint8{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// continuation marks a cell covered by the right half of a wide rune.
const continuation = -1

// CellToDot maps a terminal cell to the dot at its center.
func CellToDot(col, row int) view.Point {
	return view.Point{X: float64(col*DotsX + 1), Y: float64(row*DotsY + 2)}
}

// Canvas is a braille surface. The zero value is an empty 0x0 canvas.
type Canvas struct {
	cols, rows int
	bits       []uint8
	fg         []render.Color
	text       []rune
	textFg     []render.Color
	bg         render.Color
}

// New creates a canvas of cols x rows cells.
func New(cols, rows int) *Canvas {
	c := &Canvas{}
	c.Resize(cols, rows)
	return c
}

// Resize changes the canvas size and clears it.
func (c *Canvas) Resize(cols, rows int) {
	c.cols, c.rows = max(cols, 0), max(rows, 0)
	n := c.cols * c.rows
	c.bits = make([]uint8, n)
	c.fg = make([]render.Color, n)
	c.text = make([]rune, n)
	c.textFg = make([]render.Color, n)
}

// Cells returns the size in cells.
func (c *Canvas) Cells() (cols, rows int) {
	return c.cols, c.rows
}

// Size returns the size in dots.
func (c *Canvas) Size() (w, h float64) {
	return float64(c.cols * DotsX), float64(c.rows * DotsY)
}

// Clear implements render.Surface.
func (c *Canvas) Clear(bg render.Color) {
	c.bg = render.Opaque(bg.Color)
	clear(c.bits)
	clear(c.fg)
	clear(c.text)
	clear(c.textFg)
}

// Line implements render.Surface. Width is ignored: dots are the finest
// stroke a terminal can show.
func (c *Canvas) Line(x1, y1, x2, y2, _ float64, col render.Color) {
	w, h := c.Size()
	x1, y1, x2, y2, ok := clipLine(x1, y1, x2, y2, -1, -1, w+1, h+1)
	if !ok {
		return
	}
	ink := col.Over(c.bg)
	steps := int(math.Ceil(math.Max(math.Abs(x2-x1), math.Abs(y2-y1))))
	if steps == 0 {
		c.set(x1, y1, ink)
		return
	}
	dx, dy := (x2-x1)/float64(steps), (y2-y1)/float64(steps)
	for i := 0; i <= steps; i++ {
		c.set(x1+dx*float64(i), y1+dy*float64(i), ink)
	}
}

// Circle implements render.Surface. Discs smaller than a dot still light
// the dot under their center so that tiny nodes stay visible.
func (c *Canvas) Circle(x, y, r float64, col render.Color) {
	if !finite(x) || !finite(y) || !finite(r) || r < 0 {
		return
	}
	w, h := c.Size()
	if x+r < 0 || y+r < 0 || x-r >= w || y-r >= h {
		return
	}
	ink := col.Over(c.bg)
	if r < 0.5 {
		c.set(x, y, ink)
		return
	}
	// Only dots on the canvas are visited, however large the disc.
	x0, x1 := math.Max(0, math.Floor(x-r)), math.Min(w-1, math.Ceil(x+r))
	y0, y1 := math.Max(0, math.Floor(y-r)), math.Min(h-1, math.Ceil(y+r))
	r2 := r * r
	for py := y0; py <= y1; py++ {
		for px := x0; px <= x1; px++ {
			dx, dy := px+0.5-x, py+0.5-y
			if dx*dx+dy*dy <= r2 {
				c.set(px, py, ink)
			}
		}
	}
}

// Text implements render.Surface. The string is centered on the cell that
// contains (x, y); size is ignored.
func (c *Canvas) Text(s string, x, y, _ float64, col render.Color) {
	if s == "" || !finite(x) || !finite(y) {
		return
	}
	row := int(math.Floor(y / DotsY))
	if row < 0 || row >= c.rows {
		return
	}
	width := runewidth.StringWidth(s)
	cx := int(math.Floor(x/DotsX)) - width/2
	ink := col.Over(c.bg)
	for _, r := range s {
		rw := runewidth.RuneWidth(r)
		if rw == 0 {
			continue
		}
		if cx >= 0 && cx+rw <= c.cols {
			i := row*c.cols + cx
			c.text[i] = r
			c.textFg[i] = ink
			if rw == 2 {
				c.text[i+1] = continuation
			}
		}
		cx += rw
	}
}

// Dot reports whether the dot at (x, y) is lit.
func (c *Canvas) Dot(x, y int) bool {
	i, bit, ok := c.locate(float64(x), float64(y))
	return ok && c.bits[i]&bit != 0
}

// Lines returns the canvas as plain rows without colors.
func (c *Canvas) Lines() []string {
	out := make([]string, c.rows)
	var sb strings.Builder
	for row := range c.rows {
		sb.Reset()
		for col := range c.cols {
			if r, ok := c.glyph(row*c.cols + col); ok {
				sb.WriteRune(r)
			}
		}
		out[row] = sb.String()
	}
	return out
}

// String renders the canvas with colors. Adjacent cells of the same color
// share one styled run.
func (c *Canvas) String() string {
	bg := lipgloss.Color(c.bg.Color.Hex())
	var out strings.Builder
	var run strings.Builder
	for row := range c.rows {
		if row > 0 {
			out.WriteByte('\n')
		}
		var cur string
		flush := func() {
			if run.Len() == 0 {
				return
			}
			style := lipgloss.NewStyle().Background(bg)
			if cur != "" {
				style = style.Foreground(lipgloss.Color(cur))
			}
			out.WriteString(style.Render(run.String()))
			run.Reset()
		}
		for col := range c.cols {
			i := row*c.cols + col
			r, ok := c.glyph(i)
			if !ok {
				continue
			}
			fg := c.fgHex(i)
			if fg != cur {
				flush()
				cur = fg
			}
			run.WriteRune(r)
		}
		flush()
	}
	return out.String()
}

func (c *Canvas) glyph(i int) (rune, bool) {
	switch t := c.text[i]; {
	case t == continuation:
		return 0, false
	case t != 0:
		return t, true
	case c.bits[i] == 0:
		return ' ', true
	default:
		return rune(brailleBase + int(c.bits[i])), true
	}
}

func (c *Canvas) fgHex(i int) string {
	switch {
	case c.text[i] > 0:
		return c.textFg[i].Color.Hex()
	case c.bits[i] != 0:
		return c.fg[i].Color.Hex()
	default:
		return ""
	}
}

func (c *Canvas) set(x, y float64, col render.Color) {
	i, bit, ok := c.locate(x, y)
	if !ok {
		return
	}
	c.bits[i] |= bit
	c.fg[i] = col
}

func (c *Canvas) locate(x, y float64) (int, uint8, bool) {
	if !finite(x) || !finite(y) {
		return 0, 0, false
	}
	px, py := int(math.Floor(x)), int(math.Floor(y))
	if px < 0 || py < 0 || px >= c.cols*DotsX || py >= c.rows*DotsY {
		return 0, 0, false
	}
	i := (py/DotsY)*c.cols + px/DotsX
	return i, dotBits[py%DotsY][px%DotsX], true
}

// clipLine clips a segment to a rectangle (Liang-Barsky).
func clipLine(x1, y1, x2, y2, minX, minY, maxX, maxY float64) (float64, float64, float64, float64, bool) {
	if !finite(x1) || !finite(y1) || !finite(x2) || !finite(y2) {
		return 0, 0, 0, 0, false
	}
	t0, t1 := 0.0, 1.0
	dx, dy := x2-x1, y2-y1
	edges := [4][2]float64{
		{-dx, x1 - minX},
		{dx, maxX - x1},
		{-dy, y1 - minY},
		{dy, maxY - y1},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return 0, 0, 0, 0, false
			}
			t0 = math.Max(t0, r)
		} else {
			if r < t0 {
				return 0, 0, 0, 0, false
			}
			t1 = math.Min(t1, r)
		}
	}
	return x1 + t0*dx, y1 + t0*dy, x1 + t1*dx, y1 + t1*dy, true
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

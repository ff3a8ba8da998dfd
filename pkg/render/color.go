package render

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is an RGB color with straight (non-premultiplied) alpha.
type Color struct {
	colorful.Color
	A float64
}

// Opaque wraps a colorful.Color with full alpha.
func Opaque(c colorful.Color) Color {
	return Color{Color: c, A: 1}
}

// ParseHex parses "#rgb", "#rrggbb" or "#rrggbbaa".
func ParseHex(s string) (Color, error) {
	a := 1.0
	if len(s) == 9 && strings.HasPrefix(s, "#") {
		v, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("parse alpha %q: %w", s, err)
		}
		a = float64(v) / 255
		s = s[:7]
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	return Color{Color: c, A: a}, nil
}

// MustHex is like ParseHex but panics on malformed input.
// Use it for compile-time color constants only.
func MustHex(s string) Color {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Fade multiplies the alpha by a, clamped to [0, 1].
func (c Color) Fade(a float64) Color {
	if math.IsNaN(a) {
		a = 0
	}
	c.A *= math.Max(0, math.Min(1, a))
	return c
}

// Over composites c over an opaque background and returns an opaque color.
func (c Color) Over(bg Color) Color {
	return Opaque(bg.Color.BlendRgb(c.Color, c.A).Clamped())
}

// HexA returns "#rrggbbaa", with the alpha byte floored.
func (c Color) HexA() string {
	a := int(math.Floor(math.Max(0, math.Min(1, c.A)) * 255))
	return fmt.Sprintf("%s%02x", c.Color.Clamped().Hex(), a)
}

// RGBA implements color.Color with the alpha channel applied.
func (c Color) RGBA() (r, g, b, a uint32) {
	return c.NRGBA().RGBA()
}

// NRGBA converts to the standard library's straight-alpha color.
func (c Color) NRGBA() color.NRGBA {
	r, g, b := c.Color.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(math.Floor(math.Max(0, math.Min(1, c.A)) * 255))}
}

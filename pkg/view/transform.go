package view

import "math"

// Zoom bounds applied by every scale-changing operation.
const (
	MinScale = 0.1
	MaxScale = 12.0
)

// Point is a 2D position in either world or screen space.
type Point struct {
	X, Y float64
}

// Add returns p+q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns p-q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

func (p Point) valid() bool { return finite(p.X) && finite(p.Y) }

// Transform is a pan/zoom: translate (X, Y) and uniform scale K.
// The zero value is not usable; start from [Identity].
type Transform struct {
	X, Y float64
	K    float64
}

// Identity is the transform with no translation and unit scale.
func Identity() Transform {
	return Transform{K: 1}
}

// Project maps a world point to the screen.
func (t Transform) Project(p Point) Point {
	return Point{p.X*t.K + t.X, p.Y*t.K + t.Y}
}

// Invert maps a screen point back to world space.
func (t Transform) Invert(p Point) Point {
	k := t.K
	if k == 0 {
		k = 1
	}
	return Point{(p.X - t.X) / k, (p.Y - t.Y) / k}
}

// ZoomAt multiplies the scale by factor, keeping the world point under
// anchor fixed on screen. Non-positive or non-finite factors are ignored.
func (t *Transform) ZoomAt(factor float64, anchor Point) {
	if !(factor > 0) || !finite(factor) {
		return
	}
	t.ScaleTo(t.K*factor, anchor)
}

// ScaleTo sets the scale to k (clamped to [MinScale, MaxScale]), keeping
// the world point under anchor fixed on screen.
func (t *Transform) ScaleTo(k float64, anchor Point) {
	if !finite(k) || !anchor.valid() {
		return
	}
	k = clamp(k, MinScale, MaxScale)
	w := t.Invert(anchor)
	// single assignment so readers never see a half-updated transform
	*t = Transform{
		X: anchor.X - w.X*k,
		Y: anchor.Y - w.Y*k,
		K: k,
	}
}

// Pan shifts the translation by (dx, dy) screen units.
func (t *Transform) Pan(dx, dy float64) {
	if !finite(dx) || !finite(dy) {
		return
	}
	t.X += dx
	t.Y += dy
}

// Center returns a transform of scale k that puts the world origin at the
// screen point c.
func Center(c Point, k float64) Transform {
	t := Transform{X: c.X, Y: c.Y, K: 1}
	t.ScaleTo(k, c)
	return t
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

package view

import "math"

// Bounds of the visual size multiplier.
const (
	minSafeScale = 0.01
	maxSafeScale = 2.5
)

// ease is the timing curve behind SafeScale: fast growth for small zooms,
// flattening out towards scale 1.
var ease = newBezier(0.03, 0.65, 1, 0.42)

// SafeScale maps a zoom factor to the multiplier used for node radii and
// label sizes. Inputs outside [0, 1] are clamped before easing, so every
// zoom of 1 or more yields 2. The result is always within [0.01, 2.5];
// NaN yields the lower bound.
func SafeScale(s float64) float64 {
	if math.IsNaN(s) {
		return minSafeScale
	}
	return clamp(ease.at(clamp(s, 0, 1))*2, minSafeScale, maxSafeScale)
}

// bezier is a CSS-style cubic timing curve from (0,0) to (1,1) with two
// control points.
type bezier struct {
	cx, bx, ax float64
	cy, by, ay float64
}

func newBezier(x1, y1, x2, y2 float64) bezier {
	var b bezier
	b.cx = 3 * x1
	b.bx = 3*(x2-x1) - b.cx
	b.ax = 1 - b.cx - b.bx
	b.cy = 3 * y1
	b.by = 3*(y2-y1) - b.cy
	b.ay = 1 - b.cy - b.by
	return b
}

func (b bezier) sampleX(t float64) float64 { return ((b.ax*t+b.bx)*t + b.cx) * t }
func (b bezier) sampleY(t float64) float64 { return ((b.ay*t+b.by)*t + b.cy) * t }
func (b bezier) slopeX(t float64) float64  { return (3*b.ax*t+2*b.bx)*t + b.cx }

// at returns the curve's y for x in [0, 1].
func (b bezier) at(x float64) float64 {
	return b.sampleY(b.solveT(x))
}

// solveT finds t with sampleX(t) == x: a few Newton steps, then bisection
// if the slope is too flat to converge.
func (b bezier) solveT(x float64) float64 {
	const eps = 1e-7

	t := x
	for range 8 {
		dx := b.sampleX(t) - x
		if math.Abs(dx) < eps {
			return t
		}
		d := b.slopeX(t)
		if math.Abs(d) < 1e-6 {
			break
		}
		t -= dx / d
		if t < 0 || t > 1 {
			break
		}
	}

	lo, hi := 0.0, 1.0
	t = x
	for range 64 {
		v := b.sampleX(t)
		if math.Abs(v-x) < eps {
			return t
		}
		if v < x {
			lo = t
		} else {
			hi = t
		}
		t = (lo + hi) / 2
	}
	return t
}

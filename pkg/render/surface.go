package render

// Surface is a 2D drawing target in screen coordinates.
// Implementations must tolerate coordinates outside their bounds.
type Surface interface {
	// Clear fills the whole surface with bg.
	Clear(bg Color)
	// Line strokes a segment.
	Line(x1, y1, x2, y2, width float64, c Color)
	// Circle fills a disc.
	Circle(x, y, r float64, c Color)
	// Text draws a single line of text centered on (x, y).
	Text(s string, x, y, size float64, c Color)
}

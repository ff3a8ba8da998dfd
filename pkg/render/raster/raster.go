// Package raster draws frames into an RGBA image for PNG snapshots.
//
// Drawing goes through gg for antialiased strokes and fills. Labels use
// the embedded Go Regular font, so snapshots look the same on every
// machine and need no system fonts.
package raster

import (
	"fmt"
	"image"
	"io"
	"math"
	"os"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/matzehuels/spiderweb/pkg/render"
)

// Surface is a render.Surface backed by an in-memory image.
type Surface struct {
	dc    *gg.Context
	font  *opentype.Font
	faces map[float64]font.Face
}

// New creates a width x height surface.
func New(width, height int) (*Surface, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid size %dx%d", width, height)
	}
	fnt, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	return &Surface{
		dc:    gg.NewContext(width, height),
		font:  fnt,
		faces: make(map[float64]font.Face),
	}, nil
}

// Size returns the surface size in pixels.
func (s *Surface) Size() (w, h float64) {
	return float64(s.dc.Width()), float64(s.dc.Height())
}

// Clear implements render.Surface.
func (s *Surface) Clear(bg render.Color) {
	s.dc.SetColor(bg)
	s.dc.Clear()
}

// Line implements render.Surface.
func (s *Surface) Line(x1, y1, x2, y2, width float64, c render.Color) {
	if !finite(x1, y1, x2, y2, width) {
		return
	}
	s.dc.SetColor(c)
	s.dc.SetLineWidth(width)
	s.dc.DrawLine(x1, y1, x2, y2)
	s.dc.Stroke()
}

// Circle implements render.Surface.
func (s *Surface) Circle(x, y, r float64, c render.Color) {
	if !finite(x, y, r) || r <= 0 {
		return
	}
	s.dc.SetColor(c)
	s.dc.DrawCircle(x, y, r)
	s.dc.Fill()
}

// Text implements render.Surface.
func (s *Surface) Text(str string, x, y, size float64, c render.Color) {
	if str == "" || !finite(x, y, size) || size <= 0 {
		return
	}
	face, err := s.face(size)
	if err != nil {
		return
	}
	s.dc.SetFontFace(face)
	s.dc.SetColor(c)
	s.dc.DrawStringAnchored(str, x, y, 0.5, 0.5)
}

// Image returns the drawn image.
func (s *Surface) Image() image.Image {
	return s.dc.Image()
}

// EncodePNG writes the image as PNG.
func (s *Surface) EncodePNG(w io.Writer) error {
	if err := s.dc.EncodePNG(w); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// SavePNG writes the image to a PNG file.
func (s *Surface) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return s.EncodePNG(f)
}

// Close releases the cached font faces.
func (s *Surface) Close() error {
	for size, f := range s.faces {
		f.Close()
		delete(s.faces, size)
	}
	return nil
}

func (s *Surface) face(size float64) (font.Face, error) {
	if f, ok := s.faces[size]; ok {
		return f, nil
	}
	f, err := opentype.NewFace(s.font, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, err
	}
	s.faces[size] = f
	return f, nil
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

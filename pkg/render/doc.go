// Package render draws frames of the interactive graph view.
//
// # Overview
//
// A frame is drawn by [Renderer.DrawFrame] onto any [Surface]. The renderer
// owns the visual policy: link and node colors, hover emphasis, the focus
// fade and label visibility. Surfaces only know how to put lines, discs and
// text somewhere:
//
//   - [term]: a braille canvas for terminals (2x4 dots per cell)
//   - [raster]: an antialiased RGBA image, encoded as PNG
//
// Static exports of the whole graph (DOT, SVG) live in [nodelink].
//
// # Colors
//
// [Color] carries an alpha channel on top of a go-colorful color. Raster
// surfaces blend it natively; terminals cannot, so the term canvas
// composites it over the palette background first.
//
// [Palette] holds the five theme colors, with [Dark] and [Light] variants
// picked once from the terminal's background via [PaletteFor].
//
// [term]: github.com/matzehuels/spiderweb/pkg/render/term
// [raster]: github.com/matzehuels/spiderweb/pkg/render/raster
// [nodelink]: github.com/matzehuels/spiderweb/pkg/render/nodelink
package render

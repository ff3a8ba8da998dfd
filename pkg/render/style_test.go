package render

import (
	"math"
	"testing"

	"github.com/matzehuels/spiderweb/pkg/graph"
)

func TestTextStyle(t *testing.T) {
	base := MustHex("#888888")
	tests := []struct {
		name      string
		scale     float64
		wantAlpha float64
		wantMul   float64
	}{
		{"AboveTill", 6, 1, 0},
		{"AtTill", 5, 1, 1},
		{"Midway", 3.5, 0.5, 0.75},
		{"AtFrom", 2, 0, 0.5},
		{"BelowFrom", 1, 0, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, mul := TextStyle(base, tt.scale, 2, 5)
			if math.Abs(c.A-tt.wantAlpha) > 1e-9 {
				t.Errorf("alpha = %v, want %v", c.A, tt.wantAlpha)
			}
			if math.Abs(mul-tt.wantMul) > 1e-9 {
				t.Errorf("mul = %v, want %v", mul, tt.wantMul)
			}
		})
	}
}

func TestNodeFill(t *testing.T) {
	p := Dark()
	tests := []struct {
		name  string
		kind  graph.Kind
		alpha float64
		want  Color
	}{
		{"File", graph.KindFile, 0.5, p.Secondary.Fade(0.5)},
		{"Tag", graph.KindTag, 0.5, TagColor.Fade(0.5)},
		{"UnresolvedCapped", graph.KindUnresolvedFile, 1, p.Secondary.Fade(0.2)},
		{"UnresolvedBelowCap", graph.KindUnresolvedFile, 0.1, p.Secondary.Fade(0.1)},
		{"UnknownAsFile", graph.Kind(42), 1, p.Secondary},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NodeFill(tt.kind, p, tt.alpha); !sameColor(got, tt.want) {
				t.Errorf("NodeFill = %s, want %s", got.HexA(), tt.want.HexA())
			}
		})
	}
}

func TestColor(t *testing.T) {
	c := MustHex("#777777")
	if got := c.Fade(0.5).HexA(); got != "#7777777f" {
		t.Errorf("HexA = %q, want #7777777f", got)
	}
	if got := c.HexA(); got != "#777777ff" {
		t.Errorf("HexA = %q, want #777777ff", got)
	}

	parsed, err := ParseHex("#0b849480")
	if err != nil {
		t.Fatalf("ParseHex: %v", err)
	}
	if math.Abs(parsed.A-128.0/255) > 1e-9 {
		t.Errorf("alpha = %v", parsed.A)
	}
	if _, err := ParseHex("nope"); err == nil {
		t.Error("expected error for malformed color")
	}

	if got := c.Fade(2).A; got != 1 {
		t.Errorf("Fade(2) alpha = %v, want clamp to 1", got)
	}
	if got := c.Fade(math.NaN()).A; got != 0 {
		t.Errorf("Fade(NaN) alpha = %v, want 0", got)
	}
}

func TestColorOver(t *testing.T) {
	white := MustHex("#ffffff")
	black := MustHex("#000000")

	got := white.Fade(0.5).Over(black)
	if got.A != 1 {
		t.Errorf("composite alpha = %v, want 1", got.A)
	}
	if math.Abs(got.R-0.5) > 1e-9 {
		t.Errorf("composite red = %v, want 0.5", got.R)
	}
	if !sameColor(white.Over(black), white) {
		t.Error("opaque color should cover the background")
	}

	nrgba := white.Fade(0.5).NRGBA()
	if nrgba.A != 127 || nrgba.R != 255 {
		t.Errorf("NRGBA = %+v", nrgba)
	}
}

func TestPaletteFor(t *testing.T) {
	if PaletteFor(true).Name != "dark" || PaletteFor(false).Name != "light" {
		t.Error("PaletteFor picked the wrong theme")
	}
	if PaletteByName("light", true).Name != "light" {
		t.Error("explicit theme should win")
	}
	if PaletteByName("auto", true).Name != "dark" {
		t.Error("auto should follow the dark flag")
	}
	if !sameColor(Dark().Accent, Light().Accent) {
		t.Error("accent is shared by both palettes")
	}
}

package render

// Palette is a color theme.
type Palette struct {
	Name       string
	Background Color // surface clear color
	Primary    Color // hovered node fill, hovered links
	Secondary  Color // node fill
	Tertiary   Color // links and labels
	Accent     Color // hover halo and hovered label
}

// TagColor is used for tag nodes in every palette.
var TagColor = MustHex("#f08a5a")

// Dark returns the palette for dark backgrounds.
func Dark() Palette {
	return Palette{
		Name:       "dark",
		Background: MustHex("#1c202a"),
		Primary:    MustHex("#777777"),
		Secondary:  MustHex("#0b8494"),
		Tertiary:   MustHex("#888888"),
		Accent:     MustHex("#f05a7e"),
	}
}

// Light returns the palette for light backgrounds.
func Light() Palette {
	return Palette{
		Name:       "light",
		Background: MustHex("#f1e2d9"),
		Primary:    MustHex("#444444"),
		Secondary:  MustHex("#20464d"),
		Tertiary:   MustHex("#888888"),
		Accent:     MustHex("#f05a7e"),
	}
}

// PaletteFor picks the palette for a dark or light background.
func PaletteFor(dark bool) Palette {
	if dark {
		return Dark()
	}
	return Light()
}

// PaletteByName resolves "dark" or "light"; anything else falls back to
// the dark argument.
func PaletteByName(name string, dark bool) Palette {
	switch name {
	case "dark":
		return Dark()
	case "light":
		return Light()
	default:
		return PaletteFor(dark)
	}
}

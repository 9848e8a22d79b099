package colour

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// Colorful returns the colour as a go-colorful value for perceptual
// operations (Lab distance, blending) that this package does not provide.
func (c Color) Colorful() colorful.Color {
	rgb := c.RGB()
	return colorful.Color{
		R: float64(rgb.R) / 255,
		G: float64(rgb.G) / 255,
		B: float64(rgb.B) / 255,
	}
}

// FromColorful converts a go-colorful value, clamping it into gamut first.
func FromColorful(c colorful.Color) Color {
	r, g, b := c.Clamped().RGB255()
	return FromRGB(int(r), int(g), int(b))
}

// FromStdColor converts any image/color.Color. Alpha is discarded; the
// channels are taken as stored, without un-premultiplying.
func FromStdColor(c color.Color) Color {
	r, g, b, _ := c.RGBA()
	return FromRGB(int(r>>8), int(g>>8), int(b>>8))
}

// Distance returns the CIE76 Lab distance between two colours.
func Distance(a, b Color) float64 {
	return a.Colorful().DistanceLab(b.Colorful())
}

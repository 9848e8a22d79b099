// Package colour provides a canonical 24-bit RGB colour value with parsing,
// formatting and transform operations.
package colour

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// MaxValue is the largest packed value a Color can hold (0xFFFFFF).
const MaxValue = 0xFFFFFF

// Color is a 24-bit RGB colour packed as red (bits 16-23), green (bits 8-15)
// and blue (bits 0-7). The zero value is black.
//
// Color is a value type. Transforms return a new Color rather than modifying
// the receiver, so a Color can be shared freely between goroutines.
type Color struct {
	value uint32
}

// RGB represents a colour as three 8-bit channels.
type RGB struct {
	R uint8 `json:"r" yaml:"r"`
	G uint8 `json:"g" yaml:"g"`
	B uint8 `json:"b" yaml:"b"`
}

// String returns the RGB colour in the format "rgb(r, g, b)".
func (rgb RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", rgb.R, rgb.G, rgb.B)
}

// HSL represents a colour as hue (degrees, 0-360), saturation (0-1) and
// lightness (0-1).
type HSL struct {
	H float64 `json:"h" yaml:"h"`
	S float64 `json:"s" yaml:"s"`
	L float64 `json:"l" yaml:"l"`
}

// String returns the HSL colour in the format "hsl(h, s%, l%)".
func (hsl HSL) String() string {
	return fmt.Sprintf("hsl(%.1f, %.1f%%, %.1f%%)", hsl.H, hsl.S*100, hsl.L*100)
}

// New returns a Color for the given packed value, clamped to [0, MaxValue].
func New(value int) Color {
	return Color{value: uint32(max(min(value, MaxValue), 0))}
}

// FromRGB packs the three channels into a Color.
//
// Channels are expected in [0, 255] and are not clamped individually: an
// out-of-range channel carries into its neighbour, and only the packed sum
// is clamped. Stored values depend on this packing, so it must not change.
func FromRGB(r, g, b int) Color {
	return New(((r<<8)+g)<<8 + b)
}

// Hex returns the packed value as lowercase hexadecimal without padding or a
// leading '#'. Black is "0".
func (c Color) Hex() string {
	return strconv.FormatUint(uint64(c.value), 16)
}

// HTML returns the colour as a '#' followed by exactly six lowercase hex
// digits, e.g. "#1a2b3c".
func (c Color) HTML() string {
	hex := c.Hex()
	if len(hex) < 6 {
		hex = strings.Repeat("0", 6-len(hex)) + hex
	}
	return "#" + hex
}

// Decimal returns the packed integer value.
func (c Color) Decimal() int {
	return int(c.value)
}

// RGB returns the colour's red, green and blue channels.
func (c Color) RGB() RGB {
	return RGB{
		R: uint8((c.value >> 16) & 0xFF),
		G: uint8((c.value >> 8) & 0xFF),
		B: uint8(c.value & 0xFF),
	}
}

// HSL converts the colour to hue, saturation and lightness.
//
// When two channels share the maximum, the hue branch is chosen with green
// taking precedence over blue, and blue over red.
func (c Color) HSL() HSL {
	rgb := c.RGB()
	r := float64(rgb.R) / 255
	g := float64(rgb.G) / 255
	b := float64(rgb.B) / 255

	maxVal := math.Max(r, math.Max(g, b))
	minVal := math.Min(r, math.Min(g, b))
	l := (maxVal + minVal) / 2
	d := maxVal - minVal

	if d == 0 {
		return HSL{H: 0, S: 0, L: l}
	}

	s := d / (1 - math.Abs(2*l-1))

	var h float64
	switch maxVal {
	case g:
		h = 60 * ((b-r)/d + 2)
	case b:
		h = 60 * ((r-g)/d + 4)
	default:
		h = 60 * math.Mod((g-b)/d, 6)
		if b > g {
			h += 360
		}
	}

	return HSL{H: h, S: s, L: l}
}

// String returns the HTML representation of the colour.
func (c Color) String() string {
	return c.HTML()
}

// Negate returns the colour with every channel inverted (255 - c).
func (c Color) Negate() Color {
	rgb := c.RGB()
	return FromRGB(255-int(rgb.R), 255-int(rgb.G), 255-int(rgb.B))
}

// Monochrome returns a two-tone version of the colour. Colours whose average
// inverted channel is above 128 become 0x010101, everything else becomes
// white. The dark tone is deliberately one step above black.
func (c Color) Monochrome() Color {
	rgb := c.RGB()
	avg := float64((255-int(rgb.R))+(255-int(rgb.G))+(255-int(rgb.B))) / 3

	tone := 255
	if avg > 128 {
		tone = 1
	}
	return FromRGB(tone, tone, tone)
}

// RGBA implements image/color.Color. The colour is always fully opaque.
func (c Color) RGBA() (r, g, b, a uint32) {
	rgb := c.RGB()
	r = uint32(rgb.R)
	r |= r << 8
	g = uint32(rgb.G)
	g |= g << 8
	b = uint32(rgb.B)
	b |= b << 8
	return r, g, b, 0xFFFF
}

package colour

import "math"

// Luminance returns the relative luminance of the colour according to
// WCAG 2.0, between 0 (black) and 1 (white).
// https://www.w3.org/TR/WCAG20/#relativeluminancedef.
func (c Color) Luminance() float64 {
	rgb := c.RGB()
	return 0.2126*linear(rgb.R) + 0.7152*linear(rgb.G) + 0.0722*linear(rgb.B)
}

func linear(channel uint8) float64 {
	v := float64(channel) / 255
	if v <= 0.03928 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

// ContrastRatio returns the WCAG 2.0 contrast ratio between two colours,
// from 1 (identical) to 21 (black against white). Normal text needs 4.5:1
// to meet level AA.
func ContrastRatio(a, b Color) float64 {
	la, lb := a.Luminance(), b.Luminance()
	if la < lb {
		la, lb = lb, la
	}
	return (la + 0.05) / (lb + 0.05)
}

package colour

import (
	"fmt"
	"strings"
)

// ANSI escape codes for terminal colours.
const (
	ansiReset    = "\033[0m"
	ansiFgPrefix = "\033[38;2;"
	ansiBgPrefix = "\033[48;2;"
	ansiSuffix   = "m"
	defaultWidth = 8
)

// Swatch returns a solid block of the colour, width cells wide, using a
// 24-bit ANSI background.
func Swatch(c Color, width int) string {
	if width <= 0 {
		width = defaultWidth
	}
	return background(c) + strings.Repeat(" ", width) + ansiReset
}

// SwatchWithText returns a swatch with text centred over it. The text is
// drawn in the negated monochrome of c, which is always legible against it.
func SwatchWithText(c Color, text string, width int) string {
	if width <= 0 {
		width = defaultWidth
	}

	display := text
	if len(text) > width {
		display = text[:width]
	} else if len(text) < width {
		padding := (width - len(text)) / 2
		display = strings.Repeat(" ", padding) + text + strings.Repeat(" ", width-len(text)-padding)
	}

	return background(c) + foreground(c.Monochrome().Negate()) + display + ansiReset
}

// FormatWithSwatch formats a colour as a swatch followed by its HTML code.
func FormatWithSwatch(c Color, width int) string {
	return fmt.Sprintf("%s %s", Swatch(c, width), c.HTML())
}

func background(c Color) string {
	rgb := c.RGB()
	return fmt.Sprintf("%s%d;%d;%d%s", ansiBgPrefix, rgb.R, rgb.G, rgb.B, ansiSuffix)
}

func foreground(c Color) string {
	rgb := c.RGB()
	return fmt.Sprintf("%s%d;%d;%d%s", ansiFgPrefix, rgb.R, rgb.G, rgb.B, ansiSuffix)
}

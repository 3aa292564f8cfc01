// Package color parses CSS colors and derives preview palettes.
package color

import (
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mazznoer/csscolorparser"
)

// Parse parses any CSS color string, including named colors.
func Parse(colorString string) (colorful.Color, error) {
	c, err := csscolorparser.Parse(colorString)
	if err != nil {
		return colorful.Color{}, err
	}
	return colorful.Color{R: c.R, G: c.G, B: c.B}, nil
}

// Darken lowers the lightness of c by 10%.
func Darken(c colorful.Color) colorful.Color {
	h, s, l := c.Hsl()
	return colorful.Hsl(h, s, l-.1).Clamped()
}

// Palette returns n fills with hues evenly spread around the wheel.
func Palette(n int) []colorful.Color {
	out := make([]colorful.Color, n)
	for i := range out {
		out[i] = colorful.Hsv(float64(i)*360/float64(n), 0.35, 0.95)
	}
	return out
}

func Luminance(c colorful.Color) float64 {
	return 0.299*c.R + 0.587*c.G + 0.114*c.B
}

func LuminanceCategory(c colorful.Color) string {
	l := Luminance(c)
	switch {
	case l >= .88:
		return "bright"
	case l >= .55:
		return "normal"
	case l >= .30:
		return "dark"
	default:
		return "darker"
	}
}

// TextColor picks black or white for legible text on fill.
func TextColor(fill colorful.Color) colorful.Color {
	switch LuminanceCategory(fill) {
	case "bright", "normal":
		return colorful.Color{}
	default:
		return colorful.Color{R: 1, G: 1, B: 1}
	}
}

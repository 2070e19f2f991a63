package imaging

import (
	"math"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// RGBColor represents an RGB color with 8-bit components.
type RGBColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
}

// HSLColor represents a color in HSL (Hue, Saturation, Lightness) color space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees (0=red, 120=green, 240=blue)
	S int `json:"s"` // Saturation: 0-100 percent (0=gray, 100=vivid)
	L int `json:"l"` // Lightness: 0-100 percent (0=black, 50=normal, 100=white)
}

// ColorResult contains a color value in multiple representations.
type ColorResult struct {
	Hex string   `json:"hex"` // Hex format "#RRGGBB"
	RGB RGBColor `json:"rgb"` // RGB components
	HSL HSLColor `json:"hsl"` // HSL representation
}

// ColorFromPixel describes a raster pixel value. One-channel values are
// treated as gray; three-channel values as RGB.
func ColorFromPixel(v []uint8) ColorResult {
	var rgb RGBColor
	switch len(v) {
	case 1:
		rgb = RGBColor{R: v[0], G: v[0], B: v[0]}
	case 3:
		rgb = RGBColor{R: v[0], G: v[1], B: v[2]}
	}

	c := colorful.Color{
		R: float64(rgb.R) / 255,
		G: float64(rgb.G) / 255,
		B: float64(rgb.B) / 255,
	}
	h, s, l := c.Hsl()
	if math.IsNaN(h) {
		h = 0
	}

	return ColorResult{
		Hex: strings.ToUpper(c.Hex()),
		RGB: rgb,
		HSL: HSLColor{
			H: int(math.Round(h)) % 360,
			S: int(math.Round(s * 100)),
			L: int(math.Round(l * 100)),
		},
	}
}

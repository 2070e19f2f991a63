package imaging

import (
	"image"
	"image/color"
	"testing"
)

// createInMemoryImage creates a uniform in-memory test image.
func createInMemoryImage(width, height int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// createPatternImage creates an image with different colors in each quadrant.
func createPatternImage(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var c color.Color
			if x < width/2 && y < height/2 {
				c = color.RGBA{255, 0, 0, 255} // Red top-left
			} else if x >= width/2 && y < height/2 {
				c = color.RGBA{0, 255, 0, 255} // Green top-right
			} else if x < width/2 && y >= height/2 {
				c = color.RGBA{0, 0, 255, 255} // Blue bottom-left
			} else {
				c = color.RGBA{255, 255, 255, 255} // White bottom-right
			}
			img.Set(x, y, c)
		}
	}
	return img
}

func TestColorFromPixel(t *testing.T) {
	tests := []struct {
		name    string
		pix     []uint8
		wantHex string
		wantRGB RGBColor
		wantHSL HSLColor
	}{
		{"red", []uint8{255, 0, 0}, "#FF0000", RGBColor{255, 0, 0}, HSLColor{0, 100, 50}},
		{"green", []uint8{0, 255, 0}, "#00FF00", RGBColor{0, 255, 0}, HSLColor{120, 100, 50}},
		{"blue", []uint8{0, 0, 255}, "#0000FF", RGBColor{0, 0, 255}, HSLColor{240, 100, 50}},
		{"white", []uint8{255, 255, 255}, "#FFFFFF", RGBColor{255, 255, 255}, HSLColor{0, 0, 100}},
		{"black", []uint8{0, 0, 0}, "#000000", RGBColor{0, 0, 0}, HSLColor{0, 0, 0}},
		{"orange", []uint8{255, 128, 64}, "#FF8040", RGBColor{255, 128, 64}, HSLColor{20, 100, 63}},
		{"gray channel", []uint8{128}, "#808080", RGBColor{128, 128, 128}, HSLColor{0, 0, 50}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ColorFromPixel(tt.pix)
			if got.Hex != tt.wantHex {
				t.Errorf("Hex: got %s, want %s", got.Hex, tt.wantHex)
			}
			if got.RGB != tt.wantRGB {
				t.Errorf("RGB: got %+v, want %+v", got.RGB, tt.wantRGB)
			}
			if abs(got.HSL.H-tt.wantHSL.H) > 1 || abs(got.HSL.S-tt.wantHSL.S) > 1 || abs(got.HSL.L-tt.wantHSL.L) > 1 {
				t.Errorf("HSL: got %+v, want %+v", got.HSL, tt.wantHSL)
			}
		})
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

package imaging

import (
	"image"

	"github.com/anthonynsimon/bild/clone"
	"github.com/anthonynsimon/bild/effect"

	"github.com/ironsheep/meanshift-mcp/internal/meanshift"
)

// Channels reports how many channels the segmenter uses for img: 1 for
// grayscale models, 3 otherwise.
func Channels(img image.Image) int {
	switch img.(type) {
	case *image.Gray, *image.Gray16:
		return 1
	}
	return 3
}

// ToRaster converts img into the interleaved 8-bit raster the segmenter
// consumes. Transparent pixels are composited onto black. When grayscale
// is set, colour images are reduced to a single luminance channel first.
//
// The returned raster always starts at (0,0), whatever the bounds of img.
func ToRaster(img image.Image, grayscale bool) *meanshift.Image {
	channels := Channels(img)
	if grayscale && channels == 3 {
		img = effect.Grayscale(img)
		channels = 1
	}
	src := clone.AsRGBA(img)

	b := src.Bounds()
	out := meanshift.NewImage(b.Dx(), b.Dy(), channels)
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			i := src.PixOffset(b.Min.X+x, b.Min.Y+y)
			o := (y*out.Width + x) * channels
			copy(out.Pix[o:o+channels], src.Pix[i:i+channels])
		}
	}
	return out
}

// FromRaster wraps a segmenter raster as an image.Image: *image.Gray for one
// channel, opaque *image.NRGBA for three.
func FromRaster(r *meanshift.Image) image.Image {
	rect := image.Rect(0, 0, r.Width, r.Height)
	if r.Channels == 1 {
		img := image.NewGray(rect)
		for y := 0; y < r.Height; y++ {
			copy(img.Pix[y*img.Stride:y*img.Stride+r.Width], r.Pix[y*r.Width:(y+1)*r.Width])
		}
		return img
	}

	img := image.NewNRGBA(rect)
	for i := 0; i < r.Len(); i++ {
		x, y := i%r.Width, i/r.Width
		o := img.PixOffset(x, y)
		copy(img.Pix[o:o+3], r.Pix[i*3:i*3+3])
		img.Pix[o+3] = 0xff
	}
	return img
}

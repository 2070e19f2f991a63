package imaging

import (
	"image"

	"github.com/ironsheep/meanshift-mcp/internal/meanshift"
)

// Boundaries renders the region borders of a label map as a grayscale image:
// white (255) where a pixel's right or lower neighbor belongs to another
// region, black (0) elsewhere.
func Boundaries(labels *meanshift.LabelMap) *image.Gray {
	w, h := labels.Width, labels.Height
	out := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			id := labels.At(x, y)
			if (x+1 < w && labels.At(x+1, y) != id) || (y+1 < h && labels.At(x, y+1) != id) {
				out.Pix[y*out.Stride+x] = 255
			}
		}
	}
	return out
}

package imaging

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// Region represents a rectangular region within an image.
//
// (X1, Y1) is the top-left corner (inclusive) and (X2, Y2) the bottom-right
// corner (exclusive).
type Region struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// Rect returns the region as an image.Rectangle.
func (r Region) Rect() image.Rectangle {
	return image.Rect(r.X1, r.Y1, r.X2, r.Y2)
}

// Prepare crops img to region (if non-nil) and rescales it by scale before
// segmentation. A scale of 0 or 1 leaves the size unchanged.
//
// Parameters:
//   - img: The source image.
//   - region: Optional sub-rectangle in image coordinates.
//   - scale: Resize factor applied after cropping, using Lanczos resampling.
//
// Returns:
//   - image.Image: The prepared image, with bounds starting at (0,0).
//   - error: Non-nil if the region is empty or outside the image, or the
//     scale is negative or shrinks the image to nothing.
func Prepare(img image.Image, region *Region, scale float64) (image.Image, error) {
	bounds := img.Bounds()
	out := img

	if region != nil {
		if region.X1 >= region.X2 || region.Y1 >= region.Y2 {
			return nil, fmt.Errorf("invalid region: x1 must be < x2, y1 must be < y2")
		}
		if region.X1 < bounds.Min.X || region.Y1 < bounds.Min.Y || region.X2 > bounds.Max.X || region.Y2 > bounds.Max.Y {
			return nil, fmt.Errorf("region (%d,%d)-(%d,%d) outside image bounds (%d,%d)-(%d,%d)",
				region.X1, region.Y1, region.X2, region.Y2, bounds.Min.X, bounds.Min.Y, bounds.Max.X, bounds.Max.Y)
		}
		out = imaging.Crop(img, region.Rect())
	}

	if scale < 0 {
		return nil, fmt.Errorf("invalid scale %g: must not be negative", scale)
	}
	if scale != 0 && scale != 1 {
		w := int(float64(out.Bounds().Dx()) * scale)
		h := int(float64(out.Bounds().Dy()) * scale)
		if w < 1 || h < 1 {
			return nil, fmt.Errorf("scale %g reduces the image to %dx%d", scale, w, h)
		}
		out = imaging.Resize(out, w, h, imaging.Lanczos)
	}

	return out, nil
}

package meanshift

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// luvScale maps go-colorful's L*u*v* (L in [0,1]) onto the conventional
// 0-100 range so range radii keep their usual magnitudes.
const luvScale = 100.0

// fusionFactor is the fraction of the range radius within which two modes
// are treated as the same region.
const fusionFactor = 0.5

// FeatureVector is a point in joint spatial-range space: column, row,
// then RangeDim range values.
type FeatureVector []float64

// Range returns the range components. The slice aliases v.
func (v FeatureVector) Range() []float64 {
	return v[2:]
}

// FeatureSpace maps pixels to feature vectors and defines the window and
// distance the filter and the region stages share.
type FeatureSpace struct {
	SpatialRadius int
	RangeRadius   float64
	RangeDim      int
}

// NewFeatureSpace returns the feature space for images with the given
// channel count.
func NewFeatureSpace(p Params, channels int) FeatureSpace {
	return FeatureSpace{
		SpatialRadius: p.SpatialRadius,
		RangeRadius:   p.RangeRadius,
		RangeDim:      channels,
	}
}

// Dim is the length of a full feature vector.
func (fs FeatureSpace) Dim() int {
	return 2 + fs.RangeDim
}

// FusionTolerance is the range distance under which two modes fuse.
func (fs FeatureSpace) FusionTolerance() float64 {
	return fusionFactor * fs.RangeRadius
}

// Lattice converts every pixel to its range values, RangeDim floats per
// pixel in row-major order. Color pixels are converted to scaled L*u*v*.
func (fs FeatureSpace) Lattice(img *Image) []float64 {
	n := img.Len()
	out := make([]float64, n*fs.RangeDim)
	for i := 0; i < n; i++ {
		fs.toRange(img.Pix[i*img.Channels:(i+1)*img.Channels], out[i*fs.RangeDim:(i+1)*fs.RangeDim])
	}
	return out
}

func (fs FeatureSpace) toRange(px []uint8, dst []float64) {
	if fs.RangeDim == 1 {
		dst[0] = float64(px[0])
		return
	}
	c := colorful.Color{R: float64(px[0]) / 255, G: float64(px[1]) / 255, B: float64(px[2]) / 255}
	l, u, v := c.Luv()
	dst[0] = l * luvScale
	dst[1] = u * luvScale
	dst[2] = v * luvScale
}

// ToNative converts range values back to the image's channel layout.
func (fs FeatureSpace) ToNative(rangeVals []float64, dst []uint8) {
	if fs.RangeDim == 1 {
		dst[0] = clampByte(rangeVals[0])
		return
	}
	c := colorful.Luv(rangeVals[0]/luvScale, rangeVals[1]/luvScale, rangeVals[2]/luvScale).Clamped()
	dst[0], dst[1], dst[2] = c.RGB255()
}

// RangeDist2 is the squared Euclidean distance between two range vectors.
func (fs FeatureSpace) RangeDist2(a, b []float64) float64 {
	var d float64
	for k := 0; k < fs.RangeDim; k++ {
		t := a[k] - b[k]
		d += t * t
	}
	return d
}

// InWindow reports whether a point at squared spatial distance s2 and
// squared range distance r2 from the window center lies inside the flat
// kernel window. Both bounds are inclusive.
func (fs FeatureSpace) InWindow(s2, r2 float64) bool {
	hs := float64(fs.SpatialRadius)
	return s2 <= hs*hs && r2 <= fs.RangeRadius*fs.RangeRadius
}

// Distance is the joint metric behind InWindow: the spatial offset scaled by
// the spatial radius combined with the range offset scaled by the range
// radius. A point inside the window has each scaled term at most 1, so its
// Distance from the center is at most sqrt(2); the filter tests the two
// terms separately through InWindow instead of taking the root. A zero
// radius makes any nonzero offset in that subspace infinitely far. Distance
// is zero only for identical vectors.
func (fs FeatureSpace) Distance(a, b FeatureVector) float64 {
	dx := a[0] - b[0]
	dy := a[1] - b[1]
	s := scaledTerm(dx*dx+dy*dy, float64(fs.SpatialRadius))
	r := scaledTerm(fs.RangeDist2(a.Range(), b.Range()), fs.RangeRadius)
	return math.Sqrt(s + r)
}

func scaledTerm(d2, h float64) float64 {
	if d2 == 0 {
		return 0
	}
	if h == 0 {
		return math.Inf(1)
	}
	return d2 / (h * h)
}

func clampByte(v float64) uint8 {
	v = math.Round(v)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

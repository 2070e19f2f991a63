package meanshift

import "fmt"

// Image is a raw, row-major pixel buffer with interleaved channels.
//
// Channels is 1 for grayscale and 3 for RGB. Pix holds
// Width*Height*Channels bytes; the value of channel c of the pixel at
// column x, row y is Pix[(y*Width+x)*Channels+c].
type Image struct {
	Width    int
	Height   int
	Channels int
	Pix      []uint8
}

// NewImage allocates a zeroed image.
func NewImage(width, height, channels int) *Image {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Image{
		Width:    width,
		Height:   height,
		Channels: channels,
		Pix:      make([]uint8, width*height*channels),
	}
}

// Len returns the number of pixels.
func (m *Image) Len() int {
	return m.Width * m.Height
}

// Validate checks the channel count and that Pix matches the dimensions.
func (m *Image) Validate() error {
	if m.Channels != 1 && m.Channels != 3 {
		return fmt.Errorf("%w: got %d", ErrUnsupportedChannels, m.Channels)
	}
	if m.Width < 0 || m.Height < 0 {
		return fmt.Errorf("%w: negative size %dx%d", ErrDimensionMismatch, m.Width, m.Height)
	}
	if want := m.Width * m.Height * m.Channels; len(m.Pix) != want {
		return fmt.Errorf("%w: %dx%dx%d needs %d bytes, got %d",
			ErrDimensionMismatch, m.Width, m.Height, m.Channels, want, len(m.Pix))
	}
	return nil
}

// PixelAt returns the channel values of the pixel at (x, y). The slice
// aliases Pix.
func (m *Image) PixelAt(x, y int) []uint8 {
	i := (y*m.Width + x) * m.Channels
	return m.Pix[i : i+m.Channels : i+m.Channels]
}

// LabelMap assigns a region id to every pixel, row-major.
type LabelMap struct {
	Width  int
	Height int
	Labels []uint32
}

// NewLabelMap allocates a label map with every pixel in region 0.
func NewLabelMap(width, height int) *LabelMap {
	return &LabelMap{
		Width:  width,
		Height: height,
		Labels: make([]uint32, width*height),
	}
}

// At returns the label of the pixel at (x, y).
func (l *LabelMap) At(x, y int) uint32 {
	return l.Labels[y*l.Width+x]
}

// Distinct returns the number of different labels present.
func (l *LabelMap) Distinct() int {
	seen := make(map[uint32]struct{})
	for _, id := range l.Labels {
		seen[id] = struct{}{}
	}
	return len(seen)
}

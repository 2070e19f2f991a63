package imaging

import (
	"image"
	"image/color"
	"testing"
)

func TestToRaster_Color(t *testing.T) {
	img := createPatternImage(10, 8)
	r := ToRaster(img, false)

	if r.Width != 10 || r.Height != 8 || r.Channels != 3 {
		t.Fatalf("raster %dx%dx%d, want 10x8x3", r.Width, r.Height, r.Channels)
	}

	tests := []struct {
		x, y int
		want [3]uint8
	}{
		{0, 0, [3]uint8{255, 0, 0}},
		{9, 0, [3]uint8{0, 255, 0}},
		{0, 7, [3]uint8{0, 0, 255}},
		{9, 7, [3]uint8{255, 255, 255}},
	}
	for _, tt := range tests {
		got := r.PixelAt(tt.x, tt.y)
		if got[0] != tt.want[0] || got[1] != tt.want[1] || got[2] != tt.want[2] {
			t.Errorf("pixel (%d,%d): got %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestToRaster_GrayModel(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 4, 3))
	for i := range img.Pix {
		img.Pix[i] = uint8(i * 20)
	}

	r := ToRaster(img, false)
	if r.Channels != 1 {
		t.Fatalf("Channels: got %d, want 1", r.Channels)
	}
	for i, v := range img.Pix {
		if r.Pix[i] != v {
			t.Errorf("pixel %d: got %d, want %d", i, r.Pix[i], v)
		}
	}
}

func TestToRaster_ForcedGrayscale(t *testing.T) {
	img := createInMemoryImage(5, 5, color.RGBA{90, 90, 90, 255})
	r := ToRaster(img, true)

	if r.Channels != 1 {
		t.Fatalf("Channels: got %d, want 1", r.Channels)
	}
	for i, v := range r.Pix {
		if abs(int(v)-90) > 1 {
			t.Fatalf("pixel %d: got %d, want about 90", i, v)
		}
	}
}

func TestToRaster_OffsetBounds(t *testing.T) {
	src := createPatternImage(20, 20)
	sub := src.SubImage(image.Rect(10, 0, 20, 10))

	r := ToRaster(sub, false)
	if r.Width != 10 || r.Height != 10 {
		t.Fatalf("raster %dx%d, want 10x10", r.Width, r.Height)
	}
	if got := r.PixelAt(0, 0); got[0] != 0 || got[1] != 255 || got[2] != 0 {
		t.Errorf("first pixel: got %v, want green", got)
	}
}

func TestFromRaster_RoundTrip(t *testing.T) {
	for _, grayscale := range []bool{false, true} {
		r := ToRaster(createPatternImage(6, 4), grayscale)
		back := ToRaster(FromRaster(r), false)

		if back.Channels != r.Channels {
			t.Fatalf("grayscale=%v: Channels %d, want %d", grayscale, back.Channels, r.Channels)
		}
		for i := range r.Pix {
			if back.Pix[i] != r.Pix[i] {
				t.Fatalf("grayscale=%v: byte %d got %d, want %d", grayscale, i, back.Pix[i], r.Pix[i])
			}
		}
	}
}

package imaging

import (
	"image/color"
	"testing"
)

func TestPrepare(t *testing.T) {
	img := createPatternImage(100, 100)

	tests := []struct {
		name    string
		region  *Region
		scale   float64
		wantW   int
		wantH   int
		wantErr bool
	}{
		{"no-op", nil, 0, 100, 100, false},
		{"unit scale", nil, 1, 100, 100, false},
		{"crop", &Region{0, 0, 50, 40}, 0, 50, 40, false},
		{"crop and upscale", &Region{0, 0, 50, 50}, 2, 100, 100, false},
		{"downscale", nil, 0.25, 25, 25, false},
		{"out of bounds", &Region{50, 50, 150, 150}, 1, 0, 0, true},
		{"negative origin", &Region{-1, 0, 10, 10}, 1, 0, 0, true},
		{"inverted", &Region{50, 50, 10, 10}, 1, 0, 0, true},
		{"empty", &Region{10, 10, 10, 20}, 1, 0, 0, true},
		{"negative scale", nil, -1, 0, 0, true},
		{"vanishing scale", nil, 0.001, 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Prepare(img, tt.region, tt.scale)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Prepare failed: %v", err)
			}
			b := out.Bounds()
			if b.Dx() != tt.wantW || b.Dy() != tt.wantH {
				t.Errorf("dimensions: got %dx%d, want %dx%d", b.Dx(), b.Dy(), tt.wantW, tt.wantH)
			}
		})
	}
}

func TestPrepare_VerifyContent(t *testing.T) {
	img := createPatternImage(100, 100)

	tests := []struct {
		name   string
		region Region
		want   color.RGBA
	}{
		{"top-left", Region{0, 0, 50, 50}, color.RGBA{255, 0, 0, 255}},
		{"top-right", Region{50, 0, 100, 50}, color.RGBA{0, 255, 0, 255}},
		{"bottom-left", Region{0, 50, 50, 100}, color.RGBA{0, 0, 255, 255}},
		{"bottom-right", Region{50, 50, 100, 100}, color.RGBA{255, 255, 255, 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			region := tt.region
			out, err := Prepare(img, &region, 1)
			if err != nil {
				t.Fatalf("Prepare failed: %v", err)
			}
			r := ToRaster(out, false)
			got := r.PixelAt(25, 25)
			if got[0] != tt.want.R || got[1] != tt.want.G || got[2] != tt.want.B {
				t.Errorf("center: got %v, want %v", got, tt.want)
			}
		})
	}
}

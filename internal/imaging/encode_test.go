package imaging

import (
	"bytes"
	"encoding/base64"
	"image/color"
	"image/png"
	"testing"

	"golang.org/x/image/webp"
)

func TestEncode(t *testing.T) {
	img := createInMemoryImage(12, 8, color.RGBA{10, 200, 30, 255})

	tests := []struct {
		format   string
		wantMime string
	}{
		{"", "image/png"},
		{"png", "image/png"},
		{"PNG", "image/png"},
		{"webp", "image/webp"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			enc, err := Encode(img, tt.format)
			if err != nil {
				t.Fatalf("Encode failed: %v", err)
			}
			if enc.MimeType != tt.wantMime {
				t.Errorf("MimeType: got %s, want %s", enc.MimeType, tt.wantMime)
			}
			if enc.Width != 12 || enc.Height != 8 {
				t.Errorf("dimensions: got %dx%d, want 12x8", enc.Width, enc.Height)
			}

			data, err := base64.StdEncoding.DecodeString(enc.ImageBase64)
			if err != nil {
				t.Fatalf("failed to decode base64: %v", err)
			}

			decode := png.Decode
			if tt.wantMime == "image/webp" {
				decode = webp.Decode
			}
			back, err := decode(bytes.NewReader(data))
			if err != nil {
				t.Fatalf("failed to decode output: %v", err)
			}
			r, g, b, _ := back.At(3, 3).RGBA()
			if r>>8 != 10 || g>>8 != 200 || b>>8 != 30 {
				t.Errorf("pixel: got (%d,%d,%d), want (10,200,30)", r>>8, g>>8, b>>8)
			}
		})
	}
}

func TestEncode_UnsupportedFormat(t *testing.T) {
	img := createInMemoryImage(4, 4, color.RGBA{0, 0, 0, 255})
	if _, err := Encode(img, "jpeg2000"); err == nil {
		t.Error("expected error for unsupported format")
	}
}

package imaging

import (
	"testing"

	"github.com/ironsheep/meanshift-mcp/internal/meanshift"
)

func TestBoundaries(t *testing.T) {
	labels := meanshift.NewLabelMap(4, 3)
	// Left two columns region 0, right two region 1.
	for y := 0; y < 3; y++ {
		for x := 2; x < 4; x++ {
			labels.Labels[y*4+x] = 1
		}
	}

	img := Boundaries(labels)
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			want := uint8(0)
			if x == 1 {
				want = 255
			}
			if got := img.GrayAt(x, y).Y; got != want {
				t.Errorf("pixel (%d,%d): got %d, want %d", x, y, got, want)
			}
		}
	}
}

func TestBoundaries_SingleRegion(t *testing.T) {
	img := Boundaries(meanshift.NewLabelMap(5, 5))
	for i, v := range img.Pix {
		if v != 0 {
			t.Fatalf("pixel %d marked as boundary", i)
		}
	}
}

package imaging

import (
	"testing"

	"github.com/ironsheep/meanshift-mcp/internal/meanshift"
)

// threeBandRaster is a 10x4 gray raster with vertical bands of widths 5, 3
// and 2 valued 20, 120 and 240.
func threeBandRaster() *meanshift.Image {
	r := meanshift.NewImage(10, 4, 1)
	for y := 0; y < 4; y++ {
		for x := 0; x < 10; x++ {
			v := uint8(20)
			switch {
			case x >= 8:
				v = 240
			case x >= 5:
				v = 120
			}
			r.Pix[y*10+x] = v
		}
	}
	return r
}

func TestSummarizeRegions(t *testing.T) {
	res, err := meanshift.Segment(threeBandRaster(), 1, 4, 0, meanshift.SpeedUpHigh)
	if err != nil {
		t.Fatalf("Segment failed: %v", err)
	}

	sum := SummarizeRegions(res, 0)
	if sum.RegionCount != 3 || len(sum.Regions) != 3 {
		t.Fatalf("got %d regions (%d listed), want 3", sum.RegionCount, len(sum.Regions))
	}

	want := []struct {
		pixels int
		hex    string
		bounds Region
		cx     float64
	}{
		{20, "#141414", Region{0, 0, 5, 4}, 2},
		{12, "#787878", Region{5, 0, 8, 4}, 6},
		{8, "#F0F0F0", Region{8, 0, 10, 4}, 8.5},
	}
	for i, w := range want {
		got := sum.Regions[i]
		if got.PixelCount != w.pixels {
			t.Errorf("region %d: PixelCount %d, want %d", i, got.PixelCount, w.pixels)
		}
		if got.Color.Hex != w.hex {
			t.Errorf("region %d: Hex %s, want %s", i, got.Color.Hex, w.hex)
		}
		if got.Bounds != w.bounds {
			t.Errorf("region %d: Bounds %+v, want %+v", i, got.Bounds, w.bounds)
		}
		if got.Centroid.X != w.cx || got.Centroid.Y != 1.5 {
			t.Errorf("region %d: Centroid %+v, want (%v, 1.5)", i, got.Centroid, w.cx)
		}
	}
	if sum.Regions[0].Percentage != 50 {
		t.Errorf("Percentage: got %v, want 50", sum.Regions[0].Percentage)
	}
}

func TestSummarizeRegions_Limit(t *testing.T) {
	res, err := meanshift.Segment(threeBandRaster(), 1, 4, 0, meanshift.SpeedUpNone)
	if err != nil {
		t.Fatalf("Segment failed: %v", err)
	}

	sum := SummarizeRegions(res, 2)
	if sum.RegionCount != 3 {
		t.Errorf("RegionCount: got %d, want 3", sum.RegionCount)
	}
	if len(sum.Regions) != 2 {
		t.Fatalf("listed %d regions, want 2", len(sum.Regions))
	}
	if sum.Regions[0].PixelCount < sum.Regions[1].PixelCount {
		t.Error("regions not sorted by pixel count")
	}
}

func TestSummarizeRegions_EmptyImage(t *testing.T) {
	res, err := meanshift.Segment(meanshift.NewImage(0, 0, 3), 7, 6.5, 20, meanshift.SpeedUpHigh)
	if err != nil {
		t.Fatalf("Segment failed: %v", err)
	}
	sum := SummarizeRegions(res, 10)
	if sum.RegionCount != 1 || len(sum.Regions) != 1 {
		t.Fatalf("got %d regions (%d listed), want 1", sum.RegionCount, len(sum.Regions))
	}
	if sum.Regions[0].PixelCount != 0 || sum.Regions[0].Percentage != 0 {
		t.Errorf("empty region: %+v", sum.Regions[0])
	}
}

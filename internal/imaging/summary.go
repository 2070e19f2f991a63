package imaging

import (
	"sort"

	"github.com/ironsheep/meanshift-mcp/internal/meanshift"
)

// Centroid is the mean pixel position of a region.
type Centroid struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// RegionSummary describes one segmented region.
type RegionSummary struct {
	ID         int         `json:"id"`
	PixelCount int         `json:"pixel_count"`
	Percentage float64     `json:"percentage"` // Share of image pixels (0-100)
	Color      ColorResult `json:"color"`
	Bounds     Region      `json:"bounds"`
	Centroid   Centroid    `json:"centroid"`
}

// SegmentSummary lists the regions of a segmentation, largest first.
type SegmentSummary struct {
	RegionCount int             `json:"region_count"`
	Regions     []RegionSummary `json:"regions"`
}

// SummarizeRegions orders the regions of res by pixel count (descending,
// ties by id) and keeps at most limit of them. A limit of 0 keeps all.
// RegionCount always reports the full count.
func SummarizeRegions(res *meanshift.Result, limit int) *SegmentSummary {
	total := res.Labels.Width * res.Labels.Height
	regions := make([]RegionSummary, 0, len(res.Regions))
	for _, r := range res.Regions {
		var pct float64
		if total > 0 {
			pct = float64(r.PixelCount) / float64(total) * 100
		}
		regions = append(regions, RegionSummary{
			ID:         r.ID,
			PixelCount: r.PixelCount,
			Percentage: pct,
			Color:      ColorFromPixel(r.Color),
			Bounds: Region{
				X1: r.Bounds.Min.X,
				Y1: r.Bounds.Min.Y,
				X2: r.Bounds.Max.X,
				Y2: r.Bounds.Max.Y,
			},
			Centroid: Centroid{X: r.CentroidX, Y: r.CentroidY},
		})
	}

	sort.Slice(regions, func(i, j int) bool {
		if regions[i].PixelCount != regions[j].PixelCount {
			return regions[i].PixelCount > regions[j].PixelCount
		}
		return regions[i].ID < regions[j].ID
	})

	if limit > 0 && len(regions) > limit {
		regions = regions[:limit]
	}

	return &SegmentSummary{RegionCount: res.RegionCount, Regions: regions}
}

package meanshift

import "testing"

func stripImage(values ...uint8) *Image {
	return grayImage(len(values), 1, func(x, y int) uint8 { return values[x] })
}

func TestPrune_Block(t *testing.T) {
	tests := []struct {
		minDensity int
		wantLive   int
		wantMerges int
	}{
		{0, 2, 0},
		{1, 2, 0},
		{4, 2, 0},
		{5, 1, 1},
		{16, 1, 1},
		{100, 1, 1},
	}

	for _, tt := range tests {
		g := buildGray(blockImage(), 5, 8)
		merges := Prune(g, tt.minDensity)
		if merges != tt.wantMerges || g.Live() != tt.wantLive {
			t.Errorf("min %d: merges=%d live=%d, want %d, %d",
				tt.minDensity, merges, g.Live(), tt.wantMerges, tt.wantLive)
		}
		assertSymmetric(t, g)
	}
}

func TestPrune_BlockMergesIntoLargerRegion(t *testing.T) {
	g := buildGray(blockImage(), 5, 8)
	Prune(g, 16)
	if g.Regions[0].Live || !g.Regions[1].Live {
		t.Fatal("the 2x2 block should be absorbed by the background")
	}
	if g.Regions[1].Count != 16 {
		t.Errorf("survivor count = %d, want 16", g.Regions[1].Count)
	}
}

func TestPrune_WeakestNeighbor(t *testing.T) {
	tests := []struct {
		name   string
		middle uint8
		want   int // index of the pixel whose label the middle pixel takes
	}{
		{"closer to left", 40, 0},
		{"closer to right", 60, 6},
		{"tie goes to lower id", 50, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := buildGray(stripImage(0, 0, 0, tt.middle, 100, 100, 100), 0, 8)
			if g.Live() != 3 {
				t.Fatalf("live = %d, want 3", g.Live())
			}
			if merges := Prune(g, 2); merges != 1 {
				t.Fatalf("merges = %d, want 1", merges)
			}
			labels, _ := g.Finalize()
			if labels.Labels[3] != labels.Labels[tt.want] {
				t.Errorf("middle pixel label %d, want label of pixel %d (%d)",
					labels.Labels[3], tt.want, labels.Labels[tt.want])
			}
		})
	}
}

func TestPrune_SmallestFirst(t *testing.T) {
	// 1-pixel region (id 1) and 2-pixel region (id 3) between large ones.
	// With min 3 the single pixel goes first; merging it into region 0
	// must not disturb the later merge of the pair.
	g := buildGray(stripImage(0, 0, 0, 0, 30, 0, 0, 0, 0, 120, 120, 200, 200, 200, 200), 0, 8)
	if g.Live() != 5 {
		t.Fatalf("live = %d, want 5", g.Live())
	}
	Prune(g, 3)
	for _, r := range g.Regions {
		if r.Live && r.Count < 3 {
			t.Errorf("region %d left with %d pixels", r.ID, r.Count)
		}
	}
	assertSymmetric(t, g)
}

func TestPrune_SoleRegionKept(t *testing.T) {
	g := buildGray(uniformGray(2, 2, 9), 1, 8)
	if merges := Prune(g, 10); merges != 0 {
		t.Errorf("merges = %d, want 0", merges)
	}
	if g.Live() != 1 || g.Regions[0].Count != 4 {
		t.Errorf("live=%d count=%d, want the single 4-pixel region", g.Live(), g.Regions[0].Count)
	}
}

func TestPrune_SquaresMonotone(t *testing.T) {
	tests := []struct {
		minDensity int
		want       int
	}{
		{0, 5},
		{1, 5},
		{2, 4},
		{5, 3},
		{10, 2},
		{16, 2},
		{17, 1},
	}
	for _, tt := range tests {
		g := buildGray(squaresImage(), 4, 8)
		Prune(g, tt.minDensity)
		if g.Live() != tt.want {
			t.Errorf("min %d: live = %d, want %d", tt.minDensity, g.Live(), tt.want)
		}
	}
}

package meanshift

import (
	"sort"

	"gonum.org/v1/gonum/floats"
)

// maxFusePasses bounds the transitive closure over adjacent regions.
const maxFusePasses = 5

// Forward neighbor offsets; together with the pixel itself they visit every
// unordered pair of adjacent pixels exactly once in a row-major scan.
var (
	forward4 = [][2]int{{1, 0}, {0, 1}}
	forward8 = [][2]int{{1, 0}, {0, 1}, {1, 1}, {-1, 1}}
)

// Edge is an undirected adjacency between two regions. Both endpoints hold
// the same *Edge.
type Edge struct {
	// Strength is the range distance between the two regions' means. It is
	// recomputed when a merge moves the edge onto the surviving region and
	// blended by pixel count when a merge coalesces two edges.
	Strength float64
	// Pixels counts adjacent pixel pairs straddling the boundary.
	Pixels int
}

// Region is one record of the graph arena. Ids are stable; a merged region
// stays in the arena with Live unset and MergedInto naming its absorber.
type Region struct {
	ID         int
	Count      int
	Mean       []float64
	Live       bool
	MergedInto int
	Neighbors  map[int]*Edge
}

// NeighborIDs returns the ids of adjacent regions in ascending order.
func (r *Region) NeighborIDs() []int {
	ids := make([]int, 0, len(r.Neighbors))
	for id := range r.Neighbors {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Graph is the region adjacency graph of a labeled image.
type Graph struct {
	Width   int
	Height  int
	Regions []*Region

	fs     FeatureSpace
	labels []uint32
	live   int
}

func newRegion(id, dim int) *Region {
	return &Region{
		ID:         id,
		Mean:       make([]float64, dim),
		Live:       true,
		MergedInto: -1,
		Neighbors:  make(map[int]*Edge),
	}
}

// BuildGraph labels the connected components of pixels whose modes lie
// within the fusion tolerance of each other and links touching components.
//
// Region ids are assigned in order of first appearance in a row-major scan.
// Each region's Mean is the average range mode of its pixels. Edge strength
// is the range distance between the two regions' means. An empty image
// yields one region with zero pixels.
func BuildGraph(modes *Modes, fs FeatureSpace, connectivity int) *Graph {
	g := &Graph{
		Width:  modes.Width,
		Height: modes.Height,
		fs:     fs,
	}
	n := modes.Len()
	if n == 0 {
		g.Regions = []*Region{newRegion(0, fs.RangeDim)}
		g.live = 1
		return g
	}

	offsets := forward8
	if connectivity == 4 {
		offsets = forward4
	}

	tol := fs.FusionTolerance()
	tol2 := tol * tol
	ds := newDisjointSet(n)
	g.scanPairs(offsets, func(i, q int) {
		if fs.RangeDist2(modes.At(i).Range(), modes.At(q).Range()) <= tol2 {
			ds.union(i, q)
		}
	})

	rootID := make([]int32, n)
	for i := range rootID {
		rootID[i] = -1
	}
	g.labels = make([]uint32, n)
	for i := 0; i < n; i++ {
		root := ds.find(i)
		if rootID[root] < 0 {
			rootID[root] = int32(len(g.Regions))
			g.Regions = append(g.Regions, newRegion(len(g.Regions), fs.RangeDim))
		}
		id := rootID[root]
		g.labels[i] = uint32(id)
		r := g.Regions[id]
		r.Count++
		floats.Add(r.Mean, modes.At(i).Range())
	}
	for _, r := range g.Regions {
		for k := range r.Mean {
			r.Mean[k] /= float64(r.Count)
		}
	}
	g.live = len(g.Regions)

	g.scanPairs(offsets, func(i, q int) {
		if a, b := int(g.labels[i]), int(g.labels[q]); a != b {
			g.touch(a, b)
		}
	})
	for _, r := range g.Regions {
		for nid, e := range r.Neighbors {
			if nid > r.ID {
				e.Strength = floats.Distance(r.Mean, g.Regions[nid].Mean, 2)
			}
		}
	}
	return g
}

func (g *Graph) scanPairs(offsets [][2]int, fn func(i, q int)) {
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			i := y*g.Width + x
			for _, off := range offsets {
				qx, qy := x+off[0], y+off[1]
				if qx < 0 || qx >= g.Width || qy >= g.Height {
					continue
				}
				fn(i, qy*g.Width+qx)
			}
		}
	}
}

func (g *Graph) touch(a, b int) {
	e, ok := g.Regions[a].Neighbors[b]
	if !ok {
		e = &Edge{}
		g.Regions[a].Neighbors[b] = e
		g.Regions[b].Neighbors[a] = e
	}
	e.Pixels++
}

// Live returns the number of live regions.
func (g *Graph) Live() int {
	return g.live
}

// Merge folds region from into region into: pixel counts add up, the mean
// becomes the count-weighted average, and every edge of from is rewired
// onto into. An edge that duplicates one into already has is coalesced by
// blending the two strengths weighted by the regions' pixel counts; any
// other moved edge takes the distance from the new mean.
func (g *Graph) Merge(from, into int) {
	a, b := g.Regions[from], g.Regions[into]
	total := a.Count + b.Count

	if total > 0 {
		mean := make([]float64, len(b.Mean))
		floats.ScaleTo(mean, float64(b.Count)/float64(total), b.Mean)
		floats.AddScaled(mean, float64(a.Count)/float64(total), a.Mean)
		b.Mean = mean
	}

	delete(b.Neighbors, from)
	for nid, e := range a.Neighbors {
		if nid == into {
			continue
		}
		n := g.Regions[nid]
		delete(n.Neighbors, from)
		if existing, ok := b.Neighbors[nid]; ok {
			if total > 0 {
				existing.Strength = (existing.Strength*float64(b.Count) + e.Strength*float64(a.Count)) / float64(total)
			}
			existing.Pixels += e.Pixels
			continue
		}
		e.Strength = floats.Distance(b.Mean, n.Mean, 2)
		b.Neighbors[nid] = e
		n.Neighbors[into] = e
	}

	b.Count = total
	a.Live = false
	a.MergedInto = into
	a.Neighbors = nil
	g.live--
}

// Fuse merges adjacent regions whose means are within tol of each other,
// repeating until a pass makes no merge or maxFusePasses is reached. The
// higher id is folded into the lower. It returns the number of merges.
func (g *Graph) Fuse(tol float64) int {
	tol2 := tol * tol
	merged := 0
	for pass := 0; pass < maxFusePasses; pass++ {
		n := 0
		for id := range g.Regions {
			for _, nid := range g.Regions[id].NeighborIDs() {
				r, nb := g.Regions[id], g.Regions[nid]
				if !r.Live {
					break
				}
				if !nb.Live || g.fs.RangeDist2(r.Mean, nb.Mean) > tol2 {
					continue
				}
				g.Merge(max(id, nid), min(id, nid))
				n++
			}
		}
		merged += n
		if n == 0 {
			break
		}
	}
	return merged
}

// root follows merge links to the live region that absorbed id.
func (g *Graph) root(id int) int {
	r := id
	for g.Regions[r].MergedInto >= 0 {
		r = g.Regions[r].MergedInto
	}
	for g.Regions[id].MergedInto >= 0 {
		next := g.Regions[id].MergedInto
		g.Regions[id].MergedInto = r
		id = next
	}
	return r
}

// Finalize relabels every pixel with its live region and compacts the ids
// to 0..Live()-1 in order of first appearance. order[k] is the arena id of
// output region k.
func (g *Graph) Finalize() (labels *LabelMap, order []int) {
	labels = NewLabelMap(g.Width, g.Height)
	if len(g.labels) == 0 {
		return labels, []int{g.root(0)}
	}
	compact := make(map[int]uint32, g.live)
	for i, l := range g.labels {
		r := g.root(int(l))
		id, ok := compact[r]
		if !ok {
			id = uint32(len(order))
			compact[r] = id
			order = append(order, r)
		}
		labels.Labels[i] = id
	}
	return labels, order
}

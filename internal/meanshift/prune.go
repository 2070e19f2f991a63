package meanshift

import "container/heap"

// sizeEntry is a candidate for pruning. Entries go stale when their region
// is merged away or grows; stale entries are skipped when popped.
type sizeEntry struct {
	count int
	id    int
}

// sizeHeap orders candidates by pixel count, then by region id.
type sizeHeap []sizeEntry

func (h sizeHeap) Len() int { return len(h) }
func (h sizeHeap) Less(i, j int) bool {
	if h[i].count != h[j].count {
		return h[i].count < h[j].count
	}
	return h[i].id < h[j].id
}
func (h sizeHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *sizeHeap) Push(x interface{}) {
	*h = append(*h, x.(sizeEntry))
}

func (h *sizeHeap) Pop() interface{} {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[0 : n-1]
	return x
}

// Prune merges every region with fewer than minDensity pixels into a
// neighbor until no such region has a neighbor left.
//
// The smallest undersized region goes first (lowest id on ties) and is
// folded into the neighbor with the weakest boundary (lowest id on ties).
// A region without neighbors is the only region of the image and is kept.
// Every merge removes one live region, so the loop terminates. It returns
// the number of merges.
func Prune(g *Graph, minDensity int) int {
	h := &sizeHeap{}
	for _, r := range g.Regions {
		if r.Live && r.Count < minDensity {
			*h = append(*h, sizeEntry{count: r.Count, id: r.ID})
		}
	}
	heap.Init(h)

	merges := 0
	for h.Len() > 0 {
		e := heap.Pop(h).(sizeEntry)
		r := g.Regions[e.id]
		if !r.Live || r.Count != e.count {
			continue
		}
		target := weakestNeighbor(r)
		if target < 0 {
			continue
		}
		g.Merge(e.id, target)
		merges++
		if t := g.Regions[target]; t.Count < minDensity {
			heap.Push(h, sizeEntry{count: t.Count, id: target})
		}
	}
	return merges
}

// weakestNeighbor returns the neighbor of r with the lowest boundary
// strength, or -1 if r has none.
func weakestNeighbor(r *Region) int {
	best := -1
	var bestStrength float64
	for nid, e := range r.Neighbors {
		if best < 0 || e.Strength < bestStrength || (e.Strength == bestStrength && nid < best) {
			best, bestStrength = nid, e.Strength
		}
	}
	return best
}

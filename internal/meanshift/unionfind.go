package meanshift

// disjointSet is a union-find forest over pixel indices with union by
// rank and path halving.
type disjointSet struct {
	parent []int32
	rank   []uint8
}

func newDisjointSet(n int) *disjointSet {
	ds := &disjointSet{
		parent: make([]int32, n),
		rank:   make([]uint8, n),
	}
	for i := range ds.parent {
		ds.parent[i] = int32(i)
	}
	return ds
}

func (ds *disjointSet) find(i int) int {
	p := ds.parent
	for int(p[i]) != i {
		p[i] = p[p[i]]
		i = int(p[i])
	}
	return i
}

func (ds *disjointSet) union(a, b int) {
	ra, rb := ds.find(a), ds.find(b)
	if ra == rb {
		return
	}
	switch {
	case ds.rank[ra] < ds.rank[rb]:
		ds.parent[ra] = int32(rb)
	case ds.rank[ra] > ds.rank[rb]:
		ds.parent[rb] = int32(ra)
	default:
		ds.parent[rb] = int32(ra)
		ds.rank[ra]++
	}
}

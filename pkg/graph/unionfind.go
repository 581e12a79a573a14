package graph

// UnionFind is a disjoint-set forest over the integers 0..n-1 with path
// compression and union by size. Reset makes it reusable, so one instance can
// serve every edge subset of a computation.
type UnionFind struct {
	parent []int
	size   []int
	sets   int
}

// NewUnionFind returns n singleton sets.
func NewUnionFind(n int) *UnionFind {
	uf := &UnionFind{parent: make([]int, n), size: make([]int, n)}
	uf.Reset()
	return uf
}

// Reset puts every element back into its own set.
func (uf *UnionFind) Reset() {
	for i := range uf.parent {
		uf.parent[i] = i
		uf.size[i] = 1
	}
	uf.sets = len(uf.parent)
}

// Find returns the representative of the set containing x.
func (uf *UnionFind) Find(x int) int {
	root := x
	for uf.parent[root] != root {
		root = uf.parent[root]
	}
	for uf.parent[x] != root {
		uf.parent[x], x = root, uf.parent[x]
	}
	return root
}

// Union merges the sets containing x and y and reports whether they were
// distinct.
func (uf *UnionFind) Union(x, y int) bool {
	rx, ry := uf.Find(x), uf.Find(y)
	if rx == ry {
		return false
	}
	if uf.size[rx] < uf.size[ry] {
		rx, ry = ry, rx
	}
	uf.parent[ry] = rx
	uf.size[rx] += uf.size[ry]
	uf.sets--
	return true
}

// Connected reports whether x and y are in the same set.
func (uf *UnionFind) Connected(x, y int) bool { return uf.Find(x) == uf.Find(y) }

// Sets returns the number of disjoint sets.
func (uf *UnionFind) Sets() int { return uf.sets }

// AppendSizes appends the size of every set to buf, in order of each set's
// representative, and returns the extended slice.
func (uf *UnionFind) AppendSizes(buf []int) []int {
	for i, p := range uf.parent {
		if p == i {
			buf = append(buf, uf.size[i])
		}
	}
	return buf
}

package graph

import (
	"cmp"
	"context"
	"slices"
)

// checkEvery is the number of search nodes between context checks.
const checkEvery = 256

// Canonical returns a string that is equal for two graphs exactly when they
// are isomorphic: the graph6 encoding of g under a canonical vertex order.
//
// Each connected component is labelled on its own and the components are laid
// out by order and then by their own canonical encoding. Within a component
// the labelling comes from an individualization-refinement search that prunes
// with the automorphisms it discovers along the way, so graphs with large
// symmetry groups such as matchings, stars and spiders stay cheap.
//
// The search checks ctx periodically and returns ctx.Err() once it is done.
func Canonical(ctx context.Context, g *Graph) (string, error) {
	labels, err := canonicalLabels(ctx, g)
	if err != nil {
		return "", err
	}
	return g.relabel(labels).Graph6(), nil
}

// CanonicalKey is [Canonical] without cancellation.
func CanonicalKey(g *Graph) string {
	key, _ := Canonical(context.Background(), g)
	return key
}

// canonicalLabels returns the canonical position of every vertex of g.
func canonicalLabels(ctx context.Context, g *Graph) ([]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	comps := g.Components()
	if len(comps) <= 1 {
		return searchLabels(ctx, g)
	}

	type block struct {
		verts  []int
		labels []int
		key    string
	}
	blocks := make([]block, len(comps))
	for i, comp := range comps {
		sub := g.induced(comp)
		labels, err := searchLabels(ctx, sub)
		if err != nil {
			return nil, err
		}
		blocks[i] = block{verts: comp, labels: labels, key: sub.relabel(labels).Graph6()}
	}
	slices.SortStableFunc(blocks, func(a, b block) int {
		return cmp.Or(cmp.Compare(len(a.verts), len(b.verts)), cmp.Compare(a.key, b.key))
	})

	out := make([]int, g.n)
	offset := 0
	for _, b := range blocks {
		for i, v := range b.verts {
			out[v] = offset + b.labels[i]
		}
		offset += len(b.verts)
	}
	return out, nil
}

// induced returns the subgraph on the sorted vertex set vs, with vs[i]
// renamed to i.
func (g *Graph) induced(vs []int) *Graph {
	pos := make(map[int]int, len(vs))
	for i, v := range vs {
		pos[v] = i
	}
	var edges []Edge
	for _, e := range g.edges {
		u, okU := pos[e.U]
		v, okV := pos[e.V]
		if okU && okV {
			edges = append(edges, Edge{U: u, V: v})
		}
	}
	return MustNew(len(vs), edges...)
}

// leaf is a discrete colouring reached by the search.
type leaf struct {
	path   []int // individualized vertices, outermost first
	labels []int
	key    string
}

// canonSearch is the state of one individualization-refinement search.
type canonSearch struct {
	ctx   context.Context
	g     *Graph
	nodes int
	err   error

	first *leaf
	best  *leaf
	autos [][]int
}

// searchLabels labels g by the discrete colouring with the smallest graph6
// encoding among the leaves of the search tree that are not pruned.
func searchLabels(ctx context.Context, g *Graph) ([]int, error) {
	if g.n <= 1 {
		return make([]int, g.n), nil
	}
	s := &canonSearch{ctx: ctx, g: g}
	s.search(make([]int, g.n), nil)
	if s.err != nil {
		return nil, s.err
	}
	return s.best.labels, nil
}

// search explores the node reached by individualizing path. It returns -1
// when the node was explored in full, or the depth of the ancestor whose
// current child turned out to be equivalent to one explored earlier.
func (s *canonSearch) search(colors, path []int) int {
	if s.err != nil {
		return 0
	}
	s.nodes++
	if (s.nodes-1)%checkEvery == 0 {
		if err := s.ctx.Err(); err != nil {
			s.err = err
			return 0
		}
	}

	colors = refine(s.g, colors)
	cell := firstNonSingleton(colors)
	if cell < 0 {
		return s.leaf(colors, path)
	}

	depth := len(path)
	var tried []int
	for v, c := range colors {
		if c != cell || slices.ContainsFunc(tried, func(w int) bool { return s.g.twins(v, w) }) {
			continue
		}
		if len(tried) > 0 && s.sameOrbit(path, tried, v) {
			continue
		}
		tried = append(tried, v)
		child := append(slices.Clip(path), v)
		if back := s.search(individualize(colors, v), child); back >= 0 && back < depth {
			return back
		}
		if s.err != nil {
			return 0
		}
	}
	return -1
}

// leaf records a discrete colouring. When it encodes the same graph as the
// first or best leaf so far, the two labellings differ by an automorphism,
// which is kept for orbit pruning. If that automorphism also carries the
// earlier leaf's path onto this one up to the point where they split, the
// rest of this branch mirrors a branch already explored and the search
// returns to the split.
func (s *canonSearch) leaf(colors, path []int) int {
	l := &leaf{path: slices.Clone(path), labels: colors, key: s.g.relabel(colors).Graph6()}
	if s.first == nil {
		s.first, s.best = l, l
		return -1
	}

	back := -1
	for i, other := range []*leaf{s.first, s.best} {
		if i == 1 && s.best == s.first {
			break
		}
		if other.key != l.key {
			continue
		}
		gamma := automorphism(other.labels, l.labels)
		s.autos = append(s.autos, gamma)
		if split := commonPrefix(other.path, l.path); mapsPath(gamma, other.path, l.path, split) {
			back = split
			break
		}
	}
	if l.key < s.best.key {
		s.best = l
	}
	return back
}

// sameOrbit reports whether v lies in the orbit of a tried vertex under the
// automorphisms found so far that fix every vertex of path.
func (s *canonSearch) sameOrbit(path, tried []int, v int) bool {
	uf := NewUnionFind(s.g.n)
	for _, gamma := range s.autos {
		if slices.ContainsFunc(path, func(w int) bool { return gamma[w] != w }) {
			continue
		}
		for w, x := range gamma {
			uf.Union(w, x)
		}
	}
	return slices.ContainsFunc(tried, func(w int) bool { return uf.Connected(v, w) })
}

// automorphism returns the permutation taking the vertex labelled i by a to
// the vertex labelled i by b. When both labellings give the same graph it is
// an automorphism.
func automorphism(a, b []int) []int {
	inv := make([]int, len(b))
	for v, i := range b {
		inv[i] = v
	}
	gamma := make([]int, len(a))
	for v, i := range a {
		gamma[v] = inv[i]
	}
	return gamma
}

// commonPrefix returns the length of the longest common prefix of a and b.
func commonPrefix(a, b []int) int {
	i := 0
	for i < len(a) && i < len(b) && a[i] == b[i] {
		i++
	}
	return i
}

// mapsPath reports whether gamma takes a[i] to b[i] for every i <= split.
func mapsPath(gamma, a, b []int, split int) bool {
	if split >= len(a) || split >= len(b) {
		return false
	}
	for i := 0; i <= split; i++ {
		if gamma[a[i]] != b[i] {
			return false
		}
	}
	return true
}

// Isomorphic reports whether g and h are isomorphic.
func Isomorphic(g, h *Graph) bool {
	if g.n != h.n || len(g.edges) != len(h.edges) {
		return false
	}
	if !slices.Equal(g.DegreeSequence(), h.DegreeSequence()) {
		return false
	}
	return CanonicalKey(g) == CanonicalKey(h)
}

// Unique drops every graph isomorphic to an earlier one.
func Unique(gs []*Graph) []*Graph {
	out, _ := UniqueContext(context.Background(), gs)
	return out
}

// UniqueContext is [Unique] with cancellation.
func UniqueContext(ctx context.Context, gs []*Graph) ([]*Graph, error) {
	seen := make(map[string]bool, len(gs))
	out := make([]*Graph, 0, len(gs))
	for _, g := range gs {
		key, err := Canonical(ctx, g)
		if err != nil {
			return nil, err
		}
		if !seen[key] {
			seen[key] = true
			out = append(out, g)
		}
	}
	return out, nil
}

// refine repeats colour refinement until the number of colours is stable.
// New colours are ranks of (old colour, sorted neighbour colours), so the
// result only depends on the isomorphism class of the coloured graph.
// Colours are compacted to 0..k-1.
func refine(g *Graph, colors []int) []int {
	cur := slices.Clone(colors)
	count := -1
	for {
		sigs := make([][]int, g.n)
		for v := range sigs {
			sig := make([]int, 0, len(g.adj[v])+1)
			sig = append(sig, cur[v])
			for _, w := range g.adj[v] {
				sig = append(sig, cur[w])
			}
			slices.Sort(sig[1:])
			sigs[v] = sig
		}
		distinct := slices.Clone(sigs)
		slices.SortFunc(distinct, slices.Compare)
		distinct = slices.CompactFunc(distinct, slices.Equal)

		next := make([]int, g.n)
		for v, sig := range sigs {
			next[v], _ = slices.BinarySearchFunc(distinct, sig, slices.Compare)
		}
		cur = next
		if len(distinct) == count {
			return cur
		}
		count = len(distinct)
	}
}

// individualize gives v a colour of its own, ordered just before the rest of
// its former cell.
func individualize(colors []int, v int) []int {
	out := make([]int, len(colors))
	for w, c := range colors {
		out[w] = 2*c + 1
	}
	out[v] = 2 * colors[v]
	return out
}

// twins reports whether u and v have the same neighbours apart from each
// other. Swapping twins is an automorphism.
func (g *Graph) twins(u, v int) bool {
	a := slices.DeleteFunc(slices.Clone(g.adj[u]), func(w int) bool { return w == v })
	b := slices.DeleteFunc(slices.Clone(g.adj[v]), func(w int) bool { return w == u })
	return slices.Equal(a, b)
}

// firstNonSingleton returns the smallest colour shared by two or more
// vertices, or -1 when the colouring is discrete.
func firstNonSingleton(colors []int) int {
	size := make([]int, len(colors))
	for _, c := range colors {
		size[c]++
	}
	for c, s := range size {
		if s > 1 {
			return c
		}
	}
	return -1
}

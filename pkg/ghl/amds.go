package ghl

import (
	"fmt"
	"math"

	"hub_labeling/pkg/graph"
	"hub_labeling/pkg/heap"
	"hub_labeling/pkg/sp"
)

// amdsKey orders the peeling queue by degree/weight ratio with the
// element id as tie-break for determinism.
type amdsKey struct {
	ratio float64
	id    graph.Vertex
}

func amdsKeyLess(a, b amdsKey) bool {
	if a.ratio != b.ratio {
		return a.ratio < b.ratio
	}
	return a.id < b.id
}

// amds computes an Approximate Maximum Density Subgraph of a vertex's
// center graph by greedy peeling: repeatedly remove the side-vertex with
// the smallest degree-to-weight ratio and track the best density seen.
// One instance per worker; Run leaves the membership of the best-density
// prefix queryable through contains only in the early-exit case, which is
// the only case the caller commits.
type amds struct {
	n     graph.Vertex
	sp    *sp.Table
	proxy *proxy
	// queue elements are side-encoded vertex ids: u for the reverse side,
	// u+n for the forward side.
	queue   *heap.KHeap[graph.Vertex, amdsKey]
	degree  [2][]int
	inads   [2][]bool
	scratch *sp.Scratch
	desc    []graph.Vertex
}

func newAMDS(t *sp.Table, p *proxy) *amds {
	n := t.N()
	a := &amds{
		n:       n,
		sp:      t,
		proxy:   p,
		queue:   heap.New[graph.Vertex, amdsKey](2*int(n), amdsKeyLess),
		scratch: t.NewScratch(),
	}
	for side := 0; side < 2; side++ {
		a.degree[side] = make([]int, n)
		a.inads[side] = make([]bool, n)
	}
	return a
}

// contains reports whether (u, side) is in the current subgraph. Valid
// only after a Run whose density reached the limit.
func (a *amds) contains(u graph.Vertex, side graph.Dir) bool {
	return a.inads[side][u]
}

func (a *amds) encode(u graph.Vertex, side graph.Dir) graph.Vertex {
	if side == graph.Forward {
		return u + a.n
	}
	return u
}

// weight is the marginal p-norm cost of adding the candidate hub to u's
// side label: (|L|+1)^p − |L|^p.
func (a *amds) weight(u graph.Vertex, side graph.Dir, p float64) float64 {
	base := float64(a.proxy.size(u, side))
	return math.Pow(base+1, p) - math.Pow(base, p)
}

// ratio is edges/weight with the conventions that an empty subgraph has
// density 0 and positive edges over zero weight is unboundedly dense.
func ratio(edges int, verticesWeight float64) float64 {
	if edges == 0 {
		return 0
	}
	if verticesWeight == 0 {
		return math.MaxFloat64
	}
	return float64(edges) / verticesWeight
}

// run peels v's center graph and returns the best density seen, stopping
// early once the density reaches limit. Side-vertices that already carry
// v in their label stay in the subgraph but contribute no weight.
func (a *amds) run(v graph.Vertex, p float64, limit float64) float64 {
	a.queue.Clear()
	edges := 0
	verticesWeight := 0.0

	// Initial center graph: (u, side) participates with one edge per
	// uncovered pair routed through v.
	for u := graph.Vertex(0); u < a.n; u++ {
		for side := graph.Dir(0); side < 2; side++ {
			a.desc = a.sp.Descendants(a.scratch, a.desc, u, v, side, false)
			d := 0
			for _, w := range a.desc {
				if !a.sp.Covered(u, w, side) {
					d++
				}
			}
			a.degree[side][u] = d
			a.inads[side][u] = d > 0
			if side == graph.Forward {
				edges += d
			}
			if d > 0 && !a.proxy.inLabel(u, side, v) {
				uw := a.weight(u, side, p)
				a.queue.Update(a.encode(u, side), amdsKey{float64(d) / uw, a.encode(u, side)})
				verticesWeight += uw
			}
		}
	}

	r := ratio(edges, verticesWeight)
	best := r
	for !a.queue.Empty() && r < limit {
		id := a.queue.Pop()
		side := graph.Reverse
		u := id
		if id >= a.n {
			side = graph.Forward
			u = id - a.n
		}
		a.inads[side][u] = false
		edges -= a.degree[side][u]
		verticesWeight -= a.weight(u, side, p)

		a.desc = a.sp.Descendants(a.scratch, a.desc, u, v, side, false)
		for _, w := range a.desc {
			flip := side.Flip()
			if !a.inads[flip][w] || a.sp.Covered(u, w, side) {
				continue
			}
			if a.degree[flip][w] == 0 {
				panic(fmt.Sprintf("ghl: amds degree underflow at vertex %d", w))
			}
			a.degree[flip][w]--
			ww := a.weight(w, flip, p)
			if a.degree[flip][w] == 0 {
				a.inads[flip][w] = false
			}
			if !a.proxy.inLabel(w, flip, v) {
				if a.degree[flip][w] == 0 {
					a.queue.Extract(a.encode(w, flip))
					verticesWeight -= ww
				} else {
					a.queue.Update(a.encode(w, flip), amdsKey{float64(a.degree[flip][w]) / ww, a.encode(w, flip)})
				}
			}
		}

		r = ratio(edges, verticesWeight)
		if r > best {
			best = r
		}
	}
	return best
}

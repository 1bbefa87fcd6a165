// Package hhl implements greedy hierarchical hub labeling: repeatedly
// select the vertex covering the most still-uncovered shortest-path
// pairs, emit it as the next hub, and update the coverage bookkeeping.
// HHL works on the shortest-path DAG of a general graph; UHHL is the
// specialization for unique shortest paths that replaces the DAG
// traversals with tree walks and subtree counting.
package hhl

import (
	"fmt"
	"math"

	log "github.com/sirupsen/logrus"

	"hub_labeling/pkg/graph"
	"hub_labeling/pkg/heap"
	"hub_labeling/pkg/labeling"
	"hub_labeling/pkg/order"
	"hub_labeling/pkg/par"
	"hub_labeling/pkg/sp"
)

// Greedy selects the vertex weighting for the selection queue.
type Greedy int

const (
	// PathGreedy weights a vertex by 1/cover_size: the vertex covering
	// the most uncovered paths wins.
	PathGreedy Greedy = iota
	// LabelGreedy weights by sp_size/cover_size, normalizing by the
	// number of uncovered pairs incident to the vertex.
	LabelGreedy
)

// key is a selection queue key: the greedy weight with the vertex id as
// tie-break, making selection deterministic.
type key struct {
	weight float64
	v      graph.Vertex
}

func keyLess(a, b key) bool {
	if a.weight != b.weight {
		return a.weight < b.weight
	}
	return a.v < b.v
}

// weight computes the queue weight. Exhausted vertices (cover_size 0)
// weigh +Inf so they sort last; they reach the queue head only once every
// pair is covered, at which point their selection is a no-op.
func weight(mode Greedy, coverSize, spSize int64) float64 {
	if coverSize == 0 {
		return math.Inf(1)
	}
	if mode == LabelGreedy {
		return float64(spSize) / float64(coverSize)
	}
	return 1 / float64(coverSize)
}

var phases = [2]graph.Dir{graph.Reverse, graph.Forward}

// hhlWorker is the per-worker scratch of one fork-join worker: traversal
// state, enumeration buffers, and the cover delta folded into the global
// counters after each barrier.
type hhlWorker struct {
	scratch   *sp.Scratch
	desc      []graph.Vertex
	asc       []graph.Vertex
	coverDiff []int64
}

// HHL is the greedy builder over the shortest-path DAG oracle.
type HHL struct {
	g       *graph.Graph
	n       graph.Vertex
	workers int
	sp      *sp.Table
	queue   *heap.KHeap[graph.Vertex, key]

	selected  []bool
	coverSize []int64
	spSize    []int64
	pool      []*hhlWorker
}

// New builds the shortest-paths oracle for g and returns a greedy HHL
// builder using the given number of workers (< 1 means GOMAXPROCS).
func New(g *graph.Graph, workers int) *HHL {
	workers = par.Workers(workers)
	n := g.N()
	h := &HHL{
		g:         g,
		n:         n,
		workers:   workers,
		sp:        sp.NewTable(g, workers),
		queue:     heap.New[graph.Vertex, key](int(n), keyLess),
		selected:  make([]bool, n),
		coverSize: make([]int64, n),
		spSize:    make([]int64, n),
	}
	for i := 0; i < workers; i++ {
		h.pool = append(h.pool, &hhlWorker{
			scratch:   h.sp.NewScratch(),
			coverDiff: make([]int64, n),
		})
	}
	return h
}

// Run builds a hierarchical hub labeling into l and returns the selected
// vertex order, most important first. Hub ids are order positions, so
// labels come out naturally sorted.
func (h *HHL) Run(mode Greedy, l *labeling.Labeling) order.Order {
	n := int(h.n)
	ord := make(order.Order, n)
	l.Clear()
	h.queue.Clear()
	h.sp.ClearCover()
	for v := 0; v < n; v++ {
		h.selected[v] = false
		h.coverSize[v] = 0
		h.spSize[v] = 0
	}

	// Initial cover_size[v]: pairs whose shortest-path DAG contains v, v
	// itself included as either endpoint; sp_size[v]: uncovered pairs with
	// v as an endpoint.
	log.Debugf("hhl: computing initial cover sizes")
	par.For(h.workers, n, func(worker, i int) {
		v := graph.Vertex(i)
		st := h.pool[worker]
		for u := graph.Vertex(0); u < h.n; u++ {
			st.desc = h.sp.Descendants(st.scratch, st.desc, u, v, graph.Forward, true)
			h.coverSize[v] += int64(len(st.desc))
			if u == v {
				h.spSize[v] += int64(len(st.desc))
			}
		}
		st.desc = h.sp.Descendants(st.scratch, st.desc, v, v, graph.Reverse, true)
		h.spSize[v] += int64(len(st.desc))
	})

	for v := graph.Vertex(0); v < h.n; v++ {
		h.queue.Update(v, key{weight(mode, h.coverSize[v], h.spSize[v]), v})
	}

	for wi := 0; !h.queue.Empty(); wi++ {
		w := h.queue.Pop()
		h.selected[w] = true
		ord[wi] = w

		// w becomes hub wi for every vertex in its own DAGs.
		st0 := h.pool[0]
		for _, dir := range phases {
			st0.desc = h.sp.Descendants(st0.scratch, st0.desc, w, w, dir, true)
			for _, x := range st0.desc {
				l.Add(x, dir.Flip(), graph.Vertex(wi), h.sp.Distance(x, w, dir.Flip()))
			}
		}

		// Newly covered pairs: the reverse sub-phase only adjusts sp_size;
		// the forward sub-phase accounts the cover decrement for both
		// orientations (the reverse pair is the forward pair of the
		// symmetric endpoint). The join between the sub-phases keeps the
		// reverse traversals on a consistent cover snapshot.
		for _, dir := range phases {
			dir := dir
			par.For(h.workers, n, func(worker, i int) {
				v := graph.Vertex(i)
				st := h.pool[worker]
				st.desc = h.sp.Descendants(st.scratch, st.desc, v, w, dir, true)
				h.spSize[v] -= int64(len(st.desc))
				if dir != graph.Forward {
					return
				}
				for _, q := range st.desc {
					st.asc = h.sp.Ascendants(st.scratch, st.asc, v, q, graph.Forward, true)
					for _, x := range st.asc {
						st.coverDiff[x]++
					}
					h.sp.SetCover(v, q)
				}
			})
		}

		for _, st := range h.pool {
			for v := 0; v < n; v++ {
				h.coverSize[v] -= st.coverDiff[v]
				st.coverDiff[v] = 0
			}
		}
		if h.coverSize[w] != 0 || h.spSize[w] != 0 {
			panic(fmt.Sprintf("hhl: hub %d left cover_size=%d sp_size=%d", w, h.coverSize[w], h.spSize[w]))
		}

		for v := graph.Vertex(0); v < h.n; v++ {
			if !h.selected[v] {
				h.queue.Update(v, key{weight(mode, h.coverSize[v], h.spSize[v]), v})
			}
		}

		if (wi+1)%1000 == 0 {
			log.Debugf("hhl: selected %d/%d hubs", wi+1, n)
		}
	}
	return ord
}

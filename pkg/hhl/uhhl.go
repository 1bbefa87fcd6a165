package hhl

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"hub_labeling/pkg/graph"
	"hub_labeling/pkg/heap"
	"hub_labeling/pkg/labeling"
	"hub_labeling/pkg/order"
	"hub_labeling/pkg/par"
	"hub_labeling/pkg/sp"
)

// uhhlWorker is the per-worker scratch for UHHL: traversal state, the
// enumeration buffer, the cover delta, and the transient subtree counters
// used by the post-order accumulation.
type uhhlWorker struct {
	scratch   *sp.Scratch
	desc      []graph.Vertex
	coverDiff []int64
	subtree   []int64
}

// UHHL is the greedy builder over the unique-shortest-path oracle. It has
// the same contract as HHL but exploits that every (source, target) pair
// has exactly one tree path: the per-iteration cover update becomes a
// single descendants walk plus a post-order subtree-size accumulation,
// instead of one ascendants walk per covered pair.
type UHHL struct {
	g       *graph.Graph
	n       graph.Vertex
	workers int
	sp      *sp.USPTable
	queue   *heap.KHeap[graph.Vertex, key]

	selected  []bool
	coverSize []int64
	spSize    []int64
	pool      []*uhhlWorker
}

// NewUHHL builds the USP oracle for g and returns a greedy UHHL builder
// using the given number of workers (< 1 means GOMAXPROCS).
func NewUHHL(g *graph.Graph, workers int) *UHHL {
	workers = par.Workers(workers)
	n := g.N()
	h := &UHHL{
		g:         g,
		n:         n,
		workers:   workers,
		sp:        sp.NewUSPTable(g, workers),
		queue:     heap.New[graph.Vertex, key](int(n), keyLess),
		selected:  make([]bool, n),
		coverSize: make([]int64, n),
		spSize:    make([]int64, n),
	}
	for i := 0; i < workers; i++ {
		h.pool = append(h.pool, &uhhlWorker{
			scratch:   h.sp.NewScratch(),
			coverDiff: make([]int64, n),
			subtree:   make([]int64, n),
		})
	}
	return h
}

// applyCoverDiff folds every worker's cover delta into the global counts.
func (h *UHHL) applyCoverDiff() {
	for _, st := range h.pool {
		for v := range st.coverDiff {
			h.coverSize[v] += st.coverDiff[v]
			st.coverDiff[v] = 0
		}
	}
}

// Run builds a hierarchical hub labeling into l and returns the selected
// vertex order, most important first.
func (h *UHHL) Run(mode Greedy, l *labeling.Labeling) order.Order {
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

	// Initial cover_size by subtree counting on each source's whole SPT:
	// walking the BFS order backwards visits children before parents, so
	// each vertex accumulates its full subtree size before folding it
	// into its parent.
	log.Debugf("uhhl: computing initial cover sizes")
	par.For(h.workers, n, func(worker, i int) {
		v := graph.Vertex(i)
		st := h.pool[worker]
		st.desc = h.sp.Descendants(st.scratch, st.desc, v, v, graph.Forward)
		h.spSize[v] += int64(len(st.desc))
		for j := len(st.desc); j > 0; j-- {
			q := st.desc[j-1]
			st.subtree[q]++
			st.coverDiff[q] += st.subtree[q]
			if j-1 > 0 {
				st.subtree[h.sp.Parent(v, q, graph.Forward)] += st.subtree[q]
			}
			st.subtree[q] = 0
		}
		st.desc = h.sp.Descendants(st.scratch, st.desc, v, v, graph.Reverse)
		h.spSize[v] += int64(len(st.desc))
	})
	h.applyCoverDiff()

	for v := graph.Vertex(0); v < h.n; v++ {
		h.queue.Update(v, key{weight(mode, h.coverSize[v], h.spSize[v]), v})
	}

	for wi := 0; !h.queue.Empty(); wi++ {
		w := h.queue.Pop()
		h.selected[w] = true
		ord[wi] = w

		st0 := h.pool[0]
		for _, dir := range phases {
			st0.desc = h.sp.Descendants(st0.scratch, st0.desc, w, w, dir)
			for _, x := range st0.desc {
				l.Add(x, dir.Flip(), graph.Vertex(wi), h.sp.Distance(x, w, dir.Flip()))
			}
		}

		// Each v→w→q path is unique. In the forward sub-phase w's subtree in
		// v's SPT lists the targets q of the newly covered pairs (v,q), and
		// each vertex of that subtree loses as many paths as its own subtree
		// holds. The part of each path before w is accounted in the reverse
		// sub-phase, where v is the target: every non-root vertex of w's
		// subtree in v's reverse SPT loses its subtree size, and the root w
		// is skipped there because the forward sub-phase already counts it.
		// Pairs are marked covered only in the forward sub-phase.
		for _, dir := range phases {
			dir := dir
			par.For(h.workers, n, func(worker, i int) {
				v := graph.Vertex(i)
				st := h.pool[worker]
				st.desc = h.sp.Descendants(st.scratch, st.desc, v, w, dir)
				h.spSize[v] -= int64(len(st.desc))
				for j := len(st.desc); j > 0; j-- {
					q := st.desc[j-1]
					st.subtree[q]++
					if j-1 > 0 || dir == graph.Forward {
						st.coverDiff[q] -= st.subtree[q]
					}
					if j-1 > 0 {
						st.subtree[h.sp.Parent(v, q, dir)] += st.subtree[q]
					}
					st.subtree[q] = 0
					if dir == graph.Forward {
						h.sp.SetCover(v, q)
					}
				}
			})
		}

		h.applyCoverDiff()
		if h.coverSize[w] != 0 || h.spSize[w] != 0 {
			panic(fmt.Sprintf("uhhl: hub %d left cover_size=%d sp_size=%d", w, h.coverSize[w], h.spSize[w]))
		}

		for v := graph.Vertex(0); v < h.n; v++ {
			if !h.selected[v] {
				h.queue.Update(v, key{weight(mode, h.coverSize[v], h.spSize[v]), v})
			}
		}

		if (wi+1)%1000 == 0 {
			log.Debugf("uhhl: selected %d/%d hubs", wi+1, n)
		}
	}
	return ord
}

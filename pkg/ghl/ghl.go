// Package ghl implements GHLp: a non-hierarchical greedy hub labeling
// that locally minimizes a p-norm label-size surrogate. Each candidate
// hub's value is the density of an approximate maximum density subgraph
// of its center graph; a global lazy queue re-evaluates candidates with
// an α-stale short-circuit and commits only sufficiently fresh results.
package ghl

import (
	"math"
	"sort"
	"sync"

	log "github.com/sirupsen/logrus"

	"hub_labeling/pkg/graph"
	"hub_labeling/pkg/heap"
	"hub_labeling/pkg/labeling"
	"hub_labeling/pkg/par"
	"hub_labeling/pkg/sp"
)

// epsilon is the machine epsilon for float64: densities at or below it
// mean the candidate's center graph is exhausted.
var epsilon = math.Nextafter(1, 2) - 1

// queueKey orders the candidate queue by inverse density, vertex id as
// tie-break, so the minimum is the densest candidate.
type queueKey struct {
	invDensity float64
	v          graph.Vertex
}

func queueKeyLess(a, b queueKey) bool {
	if a.invDensity != b.invDensity {
		return a.invDensity < b.invDensity
	}
	return a.v < b.v
}

// GHL is the outer greedy driver.
type GHL struct {
	g       *graph.Graph
	n       graph.Vertex
	workers int
	sp      *sp.Table
	queue   *heap.KHeap[graph.Vertex, queueKey]
	proxy   *proxy
	density []float64
	pool    []*amds
	scratch *sp.Scratch
	desc    []graph.Vertex
}

// New builds the shortest-paths oracle for g and returns a GHLp builder
// using the given number of workers (< 1 means GOMAXPROCS).
func New(g *graph.Graph, workers int) *GHL {
	workers = par.Workers(workers)
	n := g.N()
	x := &GHL{
		g:       g,
		n:       n,
		workers: workers,
		sp:      sp.NewTable(g, workers),
		queue:   heap.New[graph.Vertex, queueKey](int(n), queueKeyLess),
		proxy:   newProxy(n),
		density: make([]float64, n),
	}
	x.scratch = x.sp.NewScratch()
	for i := 0; i < workers; i++ {
		x.pool = append(x.pool, newAMDS(x.sp, x.proxy))
	}
	return x
}

// increaseCover commits the AMDS of v's center graph: v becomes a hub of
// every member's label, and every uncovered pair the subgraph spans is
// marked covered.
func (x *GHL) increaseCover(v graph.Vertex, a *amds) {
	for side := graph.Dir(0); side < 2; side++ {
		for u := graph.Vertex(0); u < x.n; u++ {
			if !a.contains(u, side) {
				continue
			}
			x.proxy.add(u, side, v, x.sp.Distance(u, v, side))
			if side != graph.Forward {
				continue
			}
			x.desc = x.sp.Descendants(x.scratch, x.desc, u, v, graph.Forward, false)
			for _, w := range x.desc {
				if a.contains(w, graph.Reverse) {
					x.sp.SetCover(u, w)
				}
			}
		}
	}
}

// amdsResult is one round's evaluation of a popped candidate.
type amdsResult struct {
	density float64
	v       graph.Vertex
	worker  int
}

// Run builds a general (non-hierarchical) hub labeling into l. alpha ≥ 1
// trades construction speed against label size: a re-evaluated density
// within a factor alpha of the stale estimate commits immediately. p is
// the label-size norm; p = 1 minimizes the total label size.
func (x *GHL) Run(l *labeling.Labeling, alpha, p float64) {
	x.queue.Clear()
	x.sp.ClearCover()
	x.proxy.setLabeling(l)

	// Initial densities: one full AMDS per vertex.
	log.Debugf("ghl: computing initial densities")
	var mu sync.Mutex
	par.For(x.workers, int(x.n), func(worker, i int) {
		v := graph.Vertex(i)
		r := x.pool[worker].run(v, p, math.MaxFloat64)
		x.density[v] = r
		mu.Lock()
		x.queue.Update(v, queueKey{1 / r, v})
		mu.Unlock()
	})

	// Lazy selection: pop up to one candidate per worker, re-evaluate
	// them in parallel with the α-stale limit, re-queue fresh densities,
	// and commit only the single best result per round.
	rounds := 0
	for !x.queue.Empty() {
		top := make([]amdsResult, 0, x.workers)
		for i := 0; i < x.workers && !x.queue.Empty(); i++ {
			top = append(top, amdsResult{v: x.queue.Pop(), worker: i})
		}
		par.For(len(top), len(top), func(_, i int) {
			v := top[i].v
			top[i].density = x.pool[top[i].worker].run(v, p, x.density[v]/alpha)
		})
		sort.Slice(top, func(i, j int) bool {
			if top[i].density != top[j].density {
				return top[i].density > top[j].density
			}
			return top[i].v > top[j].v
		})
		best := top[0]
		stale := x.density[best.v]
		for _, r := range top {
			if r.density > epsilon {
				x.density[r.v] = r.density
				x.queue.Update(r.v, queueKey{1 / r.density, r.v})
			}
		}
		if best.density > epsilon && best.density >= stale/alpha {
			x.increaseCover(best.v, x.pool[best.worker])
		}
		rounds++
		if rounds%1000 == 0 {
			log.Debugf("ghl: %d selection rounds, queue size %d", rounds, x.queue.Size())
		}
	}

	l.Sort()
}

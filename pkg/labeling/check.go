package labeling

import (
	"sync/atomic"

	"hub_labeling/pkg/dijkstra"
	"hub_labeling/pkg/graph"
	"hub_labeling/pkg/par"
)

// Check verifies the labeling against ground truth: a fresh Dijkstra from
// every vertex in both directions, asserting that every query matches the
// computed distance. Sources are distributed over workers; a mismatch
// atomically clears the shared result and the check continues so all
// workers observe the failure. workers < 1 means GOMAXPROCS.
func Check(g *graph.Graph, l *Labeling, workers int) bool {
	workers = par.Workers(workers)
	n := g.N()

	dij := make([]*dijkstra.Dijkstra, workers)
	for i := range dij {
		dij[i] = dijkstra.New(g)
	}

	var ok atomic.Bool
	ok.Store(true)
	par.For(workers, int(n), func(worker, i int) {
		v := graph.Vertex(i)
		d := dij[worker]
		for _, side := range [2]graph.Dir{graph.Reverse, graph.Forward} {
			d.Run(v, side)
			for u := graph.Vertex(0); u < n; u++ {
				if d.Distance(u) != l.Query(v, u, side) {
					ok.Store(false)
				}
			}
		}
	})
	return ok.Load()
}

package sp

import (
	log "github.com/sirupsen/logrus"

	"hub_labeling/pkg/dijkstra"
	"hub_labeling/pkg/graph"
	"hub_labeling/pkg/par"
)

// USPTable is the oracle variant for unique shortest paths: alongside the
// distance table it stores, per direction, an n×n parent table encoding
// the canonical shortest path tree of every source. Traversal predicates
// become parent-pointer checks, so the shortest-path DAG walks of Table
// turn into tree walks.
type USPTable struct {
	core
	// parent[dir][u][v] is v's parent in u's dir-side SPT.
	parent [2][][]graph.Vertex
}

// NewUSPTable builds the distance and forward parent tables with the
// USP-emulating Dijkstra, then derives the reverse parent table from the
// forward trees: for every tree arc u→a, all of a's subtree reaches u
// through a, so their reverse-side parent toward u is a. The derivation
// keeps the tables consistent even when the underlying graph has ties.
func NewUSPTable(g *graph.Graph, workers int) *USPTable {
	t := &USPTable{core: newCore(g)}
	workers = par.Workers(workers)
	n := t.n
	log.Debugf("sp: building USP tables for %d vertices with %d workers", n, workers)

	for d := 0; d < 2; d++ {
		t.parent[d] = make([][]graph.Vertex, n)
		for u := range t.parent[d] {
			row := make([]graph.Vertex, n)
			for v := range row {
				row[v] = graph.None
			}
			t.parent[d][u] = row
		}
	}

	dij := make([]*dijkstra.USP, workers)
	for i := range dij {
		dij[i] = dijkstra.NewUSP(g)
	}
	par.For(workers, int(n), func(worker, i int) {
		u := graph.Vertex(i)
		d := dij[worker]
		d.Run(u, graph.Forward)
		for v := graph.Vertex(0); v < n; v++ {
			t.dist[u][v] = d.Distance(v)
			t.parent[graph.Forward][u][v] = d.Parent(v)
		}
	})

	scratch := make([]*Scratch, workers)
	for i := range scratch {
		scratch[i] = newScratch(n)
	}
	par.For(workers, int(n), func(worker, i int) {
		u := graph.Vertex(i)
		var buf []graph.Vertex
		for _, a := range t.g.Arcs(u, graph.Forward) {
			if t.parent[graph.Forward][u][a.Head] != u {
				continue
			}
			buf = t.Descendants(scratch[worker], buf, u, a.Head, graph.Forward)
			for _, w := range buf {
				t.parent[graph.Reverse][w][u] = a.Head
			}
		}
	})
	return t
}

// NewScratch allocates traversal scratch for one worker.
func (t *USPTable) NewScratch() *Scratch { return newScratch(t.n) }

// Parent returns v's parent in u's dir-side shortest path tree.
func (t *USPTable) Parent(u, v graph.Vertex, dir graph.Dir) graph.Vertex {
	return t.parent[dir][u][v]
}

// Descendants appends v's subtree in u's dir-side SPT to buf, in BFS
// order. Covered targets and subtrees rooted at covered pairs are pruned.
func (t *USPTable) Descendants(s *Scratch, buf []graph.Vertex, u, v graph.Vertex, dir graph.Dir) []graph.Vertex {
	d := buf[:0]
	if t.Covered(u, v, dir) || (u != v && t.parent[dir][u][v] == graph.None) {
		return d
	}
	d = append(d, v)
	s.visited[v] = true
	for i := 0; i < len(d); i++ {
		for _, a := range t.g.Arcs(d[i], dir) {
			if s.visited[a.Head] || t.Covered(u, a.Head, dir) {
				continue
			}
			if t.parent[dir][u][a.Head] == d[i] {
				d = append(d, a.Head)
				s.visited[a.Head] = true
			}
		}
	}
	for _, w := range d {
		s.visited[w] = false
	}
	return d
}

// Ascendants appends to buf the tree path ancestry of v in u's dir-side
// SPT, walking parent pointers through reverse arcs.
func (t *USPTable) Ascendants(s *Scratch, buf []graph.Vertex, u, v graph.Vertex, dir graph.Dir) []graph.Vertex {
	d := buf[:0]
	if t.Covered(u, v, dir) || (u != v && t.parent[dir][u][v] == graph.None) {
		return d
	}
	d = append(d, v)
	s.visited[v] = true
	for i := 0; i < len(d); i++ {
		for _, a := range t.g.Arcs(d[i], dir.Flip()) {
			if !s.visited[a.Head] && t.parent[dir][u][d[i]] == a.Head {
				d = append(d, a.Head)
				s.visited[a.Head] = true
			}
		}
	}
	for _, w := range d {
		s.visited[w] = false
	}
	return d
}

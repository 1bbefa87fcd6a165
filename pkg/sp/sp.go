// Package sp implements the shortest-paths oracle behind the greedy
// labeling algorithms: a full n×n distance table, a pair-coverage table,
// and per-source DAG descendant/ascendant enumeration. Table works on the
// shortest-path DAG of a general graph; USPTable exploits unique shortest
// paths and walks parent-pointer trees instead.
//
// The tables take Θ(n²) memory, which caps the graph sizes these
// algorithms apply to.
package sp

import (
	log "github.com/sirupsen/logrus"

	"hub_labeling/pkg/dijkstra"
	"hub_labeling/pkg/graph"
	"hub_labeling/pkg/par"
)

// core holds the state shared by both oracle variants: distances and the
// coverage table. cover entries are full int32 words, not bits, so
// concurrent writes to neighboring pairs cannot shear each other; each
// entry is written by at most one worker per phase and readers are
// separated from writers by the phase barrier.
type core struct {
	g     *graph.Graph
	n     graph.Vertex
	dist  [][]graph.Distance
	cover [][]int32
}

func newCore(g *graph.Graph) core {
	n := g.N()
	dist := make([][]graph.Distance, n)
	cover := make([][]int32, n)
	for u := range dist {
		dist[u] = make([]graph.Distance, n)
		cover[u] = make([]int32, n)
	}
	return core{g: g, n: n, dist: dist, cover: cover}
}

// Graph returns the graph the oracle was built for.
func (c *core) Graph() *graph.Graph { return c.g }

// N returns the number of vertices.
func (c *core) N() graph.Vertex { return c.n }

// Distance returns dist(u→v) when dir is Forward, dist(v→u) otherwise.
func (c *core) Distance(u, v graph.Vertex, dir graph.Dir) graph.Distance {
	if dir == graph.Forward {
		return c.dist[u][v]
	}
	return c.dist[v][u]
}

// SetCover marks the ordered pair (u,v) as covered.
func (c *core) SetCover(u, v graph.Vertex) { c.cover[u][v] = 1 }

// Covered reports whether the pair (u,v) along dir is covered.
func (c *core) Covered(u, v graph.Vertex, dir graph.Dir) bool {
	if dir == graph.Forward {
		return c.cover[u][v] != 0
	}
	return c.cover[v][u] != 0
}

// ClearCover marks every pair uncovered.
func (c *core) ClearCover() {
	for u := range c.cover {
		row := c.cover[u]
		for v := range row {
			row[v] = 0
		}
	}
}

// Scratch is a per-worker visited map recycled across traversals: marked
// during a walk, unmarked from the collected vertex list afterwards, so
// both the walk and the reset cost O(output). Each worker owns exactly
// one Scratch. Enumeration output goes into caller-owned buffers, letting
// a caller hold several results at once.
type Scratch struct {
	visited []bool
}

func newScratch(n graph.Vertex) *Scratch {
	return &Scratch{visited: make([]bool, n)}
}

// Table is the DAG-based oracle used by HHL and GHL.
type Table struct {
	core
}

// NewTable builds the distance table by running Dijkstra from every
// source, parallel over sources.
func NewTable(g *graph.Graph, workers int) *Table {
	t := &Table{core: newCore(g)}
	workers = par.Workers(workers)
	log.Debugf("sp: building %dx%d distance table with %d workers", t.n, t.n, workers)

	dij := make([]*dijkstra.Dijkstra, workers)
	for i := range dij {
		dij[i] = dijkstra.New(g)
	}
	par.For(workers, int(t.n), func(worker, i int) {
		u := graph.Vertex(i)
		d := dij[worker]
		d.Run(u, graph.Forward)
		for v := graph.Vertex(0); v < t.n; v++ {
			t.dist[u][v] = d.Distance(v)
		}
	})
	return t
}

// NewScratch allocates traversal scratch for one worker.
func (t *Table) NewScratch() *Scratch { return newScratch(t.n) }

// isPath reports whether x lies on a shortest u→y path, given an arc of
// the stated length from x to y along dir.
func (t *Table) isPath(u, x, y graph.Vertex, length graph.Distance, dir graph.Dir) bool {
	dy := t.Distance(u, y, dir)
	dx := t.Distance(u, x, dir)
	return dy != graph.Infty && dx != graph.Infty && dy == dx+length
}

// Descendants appends to buf all w such that v lies on a shortest path
// from u to w along dir, in BFS order from v over the shortest-path DAG.
// With skipCovered set (the HHL discipline) the walk returns nothing when
// (u,v) is covered and never visits covered targets; without it (the GHL
// discipline) coverage is ignored and only reachability prunes.
func (t *Table) Descendants(s *Scratch, buf []graph.Vertex, u, v graph.Vertex, dir graph.Dir, skipCovered bool) []graph.Vertex {
	d := buf[:0]
	if skipCovered && t.Covered(u, v, dir) {
		return d
	}
	if t.Distance(u, v, dir) == graph.Infty {
		return d
	}
	d = append(d, v)
	s.visited[v] = true
	for i := 0; i < len(d); i++ {
		for _, a := range t.g.Arcs(d[i], dir) {
			if s.visited[a.Head] {
				continue
			}
			if skipCovered && t.Covered(u, a.Head, dir) {
				continue
			}
			if t.isPath(u, d[i], a.Head, a.Length, dir) {
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

// Ascendants appends to buf all w on some shortest u→v path along dir
// (v's ancestors in u's shortest-path DAG), in BFS order from v.
func (t *Table) Ascendants(s *Scratch, buf []graph.Vertex, u, v graph.Vertex, dir graph.Dir, skipCovered bool) []graph.Vertex {
	d := buf[:0]
	if skipCovered && t.Covered(u, v, dir) {
		return d
	}
	if t.Distance(u, v, dir) == graph.Infty {
		return d
	}
	d = append(d, v)
	s.visited[v] = true
	for i := 0; i < len(d); i++ {
		for _, a := range t.g.Arcs(d[i], dir.Flip()) {
			if !s.visited[a.Head] && t.isPath(u, a.Head, d[i], a.Length, dir) {
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

// Package dijkstra implements single-source shortest paths on top of the
// indexed k-ary heap. The state is reusable: a dirty list records which
// entries a run touched so the reset cost is proportional to the visited
// part of the graph, not to n.
package dijkstra

import (
	"fmt"

	"hub_labeling/pkg/graph"
	"hub_labeling/pkg/heap"
)

// Basic owns the state shared by Dijkstra-like explorations: the distance
// and parent arrays, the priority queue, and the dirty list. Algorithms
// that drive their own relaxation loop (pruned labeling) embed it.
type Basic struct {
	g        *graph.Graph
	queue    *heap.KHeap[graph.Vertex, graph.Distance]
	parent   []graph.Vertex
	distance []graph.Distance
	isDirty  []bool
	dirty    []graph.Vertex
}

// NewBasic returns reusable Dijkstra state for g.
func NewBasic(g *graph.Graph) *Basic {
	n := g.N()
	parent := make([]graph.Vertex, n)
	distance := make([]graph.Distance, n)
	for i := range parent {
		parent[i] = graph.None
		distance[i] = graph.Infty
	}
	return &Basic{
		g:        g,
		queue:    heap.New[graph.Vertex, graph.Distance](int(n), func(a, b graph.Distance) bool { return a < b }),
		parent:   parent,
		distance: distance,
		isDirty:  make([]bool, n),
		dirty:    make([]graph.Vertex, 0, n),
	}
}

// Graph returns the graph this state was built for.
func (b *Basic) Graph() *graph.Graph { return b.g }

// Distance returns the tentative or final distance of v in the current run.
func (b *Basic) Distance(v graph.Vertex) graph.Distance { return b.distance[v] }

// Parent returns v's parent in the shortest path tree of the current run.
func (b *Basic) Parent(v graph.Vertex) graph.Vertex { return b.parent[v] }

// Empty reports whether the queue has no pending vertices.
func (b *Basic) Empty() bool { return b.queue.Empty() }

// Pop extracts the pending vertex with the smallest tentative distance.
func (b *Basic) Pop() graph.Vertex { return b.queue.Pop() }

// Dirty returns the vertices touched since the last Reset.
func (b *Basic) Dirty() []graph.Vertex { return b.dirty }

// Update sets v's tentative distance to d with parent p and (re)queues v.
func (b *Basic) Update(v graph.Vertex, d graph.Distance, p graph.Vertex) {
	b.distance[v] = d
	b.parent[v] = p
	b.queue.Update(v, d)
	if !b.isDirty[v] {
		b.dirty = append(b.dirty, v)
		b.isDirty[v] = true
	}
}

// Reset restores the touched entries to their unvisited state.
func (b *Basic) Reset() {
	b.queue.Clear()
	for _, v := range b.dirty {
		b.parent[v] = graph.None
		b.distance[v] = graph.Infty
		b.isDirty[v] = false
	}
	b.dirty = b.dirty[:0]
}

// relaxed returns d extended by the arc length, panicking on overflow:
// distances that wrap are a bug in the input validation, not a user error.
func relaxed(d graph.Distance, length graph.Distance) graph.Distance {
	dd := d + length
	if dd <= d || dd >= graph.Infty {
		panic(fmt.Sprintf("dijkstra: distance overflow: %d + %d", d, length))
	}
	return dd
}

// Dijkstra is the classic single-source shortest path algorithm.
type Dijkstra struct {
	*Basic
}

// New returns a reusable Dijkstra for g.
func New(g *graph.Graph) *Dijkstra {
	return &Dijkstra{Basic: NewBasic(g)}
}

// Run computes distances from s to every vertex along direction dir and
// builds the shortest path tree. Results stay valid until the next Run.
func (d *Dijkstra) Run(s graph.Vertex, dir graph.Dir) {
	d.Reset()
	d.Update(s, 0, graph.None)
	for !d.Empty() {
		u := d.Pop()
		du := d.distance[u]
		for _, a := range d.g.Arcs(u, dir) {
			dd := relaxed(du, a.Length)
			if dd < d.distance[a.Head] {
				d.Update(a.Head, dd, u)
			}
		}
	}
}

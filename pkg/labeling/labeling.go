// Package labeling stores hub labels: two sorted (hub, distance) lists
// per vertex that answer exact shortest-distance queries by a sorted
// merge. It also provides text and binary serialization and a parallel
// verifier against ground-truth Dijkstra.
package labeling

import (
	"fmt"
	"sort"

	"hub_labeling/pkg/graph"
)

// Labeling maps each vertex to a forward and a reverse hub list. Lists
// are append-only during construction; Sort canonicalizes them (hubs
// strictly increasing) before queries.
type Labeling struct {
	n    graph.Vertex
	hubs [][2][]graph.Vertex
	dist [][2][]graph.Distance
}

// New returns an empty labeling for n vertices.
func New(n graph.Vertex) *Labeling {
	return &Labeling{
		n:    n,
		hubs: make([][2][]graph.Vertex, n),
		dist: make([][2][]graph.Distance, n),
	}
}

// N returns the number of vertices the labeling covers.
func (l *Labeling) N() graph.Vertex { return l.n }

// Add appends hub with distance d to u's label on the given side.
func (l *Labeling) Add(u graph.Vertex, side graph.Dir, hub graph.Vertex, d graph.Distance) {
	l.hubs[u][side] = append(l.hubs[u][side], hub)
	l.dist[u][side] = append(l.dist[u][side], d)
}

// Label returns u's hub and distance lists on the given side. The slices
// are owned by the labeling.
func (l *Labeling) Label(u graph.Vertex, side graph.Dir) ([]graph.Vertex, []graph.Distance) {
	return l.hubs[u][side], l.dist[u][side]
}

// Query returns the u-v distance along dir by merging u's dir-side label
// with v's opposite-side label. Both lists must be sorted by hub id.
// Returns Infty when the labels share no hub.
func (l *Labeling) Query(u, v graph.Vertex, dir graph.Dir) graph.Distance {
	hu, du := l.hubs[u][dir], l.dist[u][dir]
	hv, dv := l.hubs[v][dir.Flip()], l.dist[v][dir.Flip()]
	r := graph.Infty
	for i, j := 0, 0; i < len(hu) && j < len(hv); {
		switch {
		case hu[i] == hv[j]:
			if du[i] >= graph.Infty-dv[j] {
				panic(fmt.Sprintf("labeling: hub distance overflow: %d + %d", du[i], dv[j]))
			}
			if s := du[i] + dv[j]; s < r {
				r = s
			}
			i++
			j++
		case hu[i] < hv[j]:
			i++
		default:
			j++
		}
	}
	return r
}

// Sort orders every label ascending by hub id; distances move with their
// hubs. Idempotent.
func (l *Labeling) Sort() {
	for v := graph.Vertex(0); v < l.n; v++ {
		for side := 0; side < 2; side++ {
			hubs, dist := l.hubs[v][side], l.dist[v][side]
			sort.Sort(&labelSorter{hubs: hubs, dist: dist})
		}
	}
}

type labelSorter struct {
	hubs []graph.Vertex
	dist []graph.Distance
}

func (s *labelSorter) Len() int           { return len(s.hubs) }
func (s *labelSorter) Less(i, j int) bool { return s.hubs[i] < s.hubs[j] }
func (s *labelSorter) Swap(i, j int) {
	s.hubs[i], s.hubs[j] = s.hubs[j], s.hubs[i]
	s.dist[i], s.dist[j] = s.dist[j], s.dist[i]
}

// Max returns the largest label size over all vertices and sides.
func (l *Labeling) Max() int {
	max := 0
	for v := graph.Vertex(0); v < l.n; v++ {
		for side := 0; side < 2; side++ {
			if len(l.hubs[v][side]) > max {
				max = len(l.hubs[v][side])
			}
		}
	}
	return max
}

// Avg returns the label size averaged over all vertices and both sides.
func (l *Labeling) Avg() float64 {
	total := 0
	for v := graph.Vertex(0); v < l.n; v++ {
		total += len(l.hubs[v][Forward]) + len(l.hubs[v][Reverse])
	}
	return float64(total) / float64(l.n) / 2
}

// Clear empties every label, keeping capacity.
func (l *Labeling) Clear() {
	for v := graph.Vertex(0); v < l.n; v++ {
		for side := 0; side < 2; side++ {
			l.hubs[v][side] = l.hubs[v][side][:0]
			l.dist[v][side] = l.dist[v][side][:0]
		}
	}
}

// Side aliases so callers can spell label sides without importing graph.
const (
	Reverse = graph.Reverse
	Forward = graph.Forward
)

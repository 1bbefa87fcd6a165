package dijkstra

import "hub_labeling/pkg/graph"

// USP is a Dijkstra variant that synthesizes unique shortest paths on
// graphs that may have ties. A relaxation is accepted when the tentative
// distance is strictly smaller, or equal with strictly fewer hops, or
// equal hops with a smaller parent id. The resulting parent pointers form
// one canonical shortest path tree per source, so every (source, target)
// pair has exactly one tree path.
type USP struct {
	*Basic
	hops []uint32
}

// NewUSP returns a reusable USP-emulating Dijkstra for g.
func NewUSP(g *graph.Graph) *USP {
	return &USP{Basic: NewBasic(g), hops: make([]uint32, g.N())}
}

func (d *USP) update(v graph.Vertex, dd graph.Distance, h uint32, p graph.Vertex) {
	d.hops[v] = h
	d.Update(v, dd, p)
}

func (d *USP) reset() {
	for _, v := range d.Dirty() {
		d.hops[v] = 0
	}
	d.Reset()
}

// Run computes distances from s along dir and builds the canonical
// shortest path tree.
func (d *USP) Run(s graph.Vertex, dir graph.Dir) {
	d.reset()
	d.update(s, 0, 0, graph.None)
	for !d.Empty() {
		u := d.Pop()
		du := d.distance[u]
		hu := d.hops[u]
		for _, a := range d.g.Arcs(u, dir) {
			dd := relaxed(du, a.Length)
			h := d.hops[a.Head]
			switch {
			case dd < d.distance[a.Head]:
				d.update(a.Head, dd, hu+1, u)
			case dd == d.distance[a.Head] && hu+1 < h:
				d.update(a.Head, dd, hu+1, u)
			case dd == d.distance[a.Head] && hu+1 == h && u < d.parent[a.Head]:
				d.update(a.Head, dd, hu+1, u)
			}
		}
	}
}

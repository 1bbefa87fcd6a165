// Package akiba implements pruned labeling: given a vertex importance
// order, it builds a hierarchical hub labeling by running one pruned
// single-source exploration per vertex and direction.
package akiba

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"hub_labeling/pkg/dijkstra"
	"hub_labeling/pkg/graph"
	"hub_labeling/pkg/labeling"
	"hub_labeling/pkg/order"
)

// Akiba drives the pruned explorations over shared Dijkstra state.
type Akiba struct {
	*dijkstra.Basic
	g *graph.Graph
}

// New returns a pruned-labeling builder for g.
func New(g *graph.Graph) *Akiba {
	return &Akiba{Basic: dijkstra.NewBasic(g), g: g}
}

// iteration explores from order position i along dir and appends hub i to
// the opposite-side label of every vertex it settles. A relaxation is
// pruned when the labeling built so far already certifies a distance at
// least as short: the descendant would be dominated by an earlier hub.
func (a *Akiba) iteration(i int, dir graph.Dir, o order.Order, l *labeling.Labeling) {
	a.Reset()
	v := o[i]
	a.Update(v, 0, graph.None)
	for !a.Empty() {
		u := a.Pop()
		d := a.Distance(u)
		l.Add(u, dir.Flip(), graph.Vertex(i), d)
		for _, arc := range a.g.Arcs(u, dir) {
			dd := d + arc.Length
			if dd <= d || dd >= graph.Infty {
				panic(fmt.Sprintf("akiba: distance overflow: %d + %d", d, arc.Length))
			}
			if dd < a.Distance(arc.Head) && dd < l.Query(v, arc.Head, dir) {
				a.Update(arc.Head, dd, graph.None)
			}
		}
	}
}

// Run builds a hierarchical hub labeling for the given order. Hub ids are
// order positions, so labels come out sorted by hub importance and id at
// once. The order must be a permutation of the graph's vertices.
func (a *Akiba) Run(o order.Order, l *labeling.Labeling) error {
	if err := o.Validate(a.g.N()); err != nil {
		return err
	}
	l.Clear()
	for i := range o {
		a.iteration(i, graph.Reverse, o, l)
		a.iteration(i, graph.Forward, o, l)
		if (i+1)%10000 == 0 {
			log.Debugf("akiba: processed %d/%d vertices", i+1, len(o))
		}
	}
	return nil
}

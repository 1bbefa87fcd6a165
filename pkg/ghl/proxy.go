package ghl

import (
	"hub_labeling/pkg/graph"
	"hub_labeling/pkg/labeling"
)

// proxy wraps the labeling being filled with an in-label bitmap, so AMDS
// and Add can both ask "is hub v already in u's side label" in O(1) and
// duplicate hubs are never appended.
type proxy struct {
	l *labeling.Labeling
	// inlabel[side][v][u] is true when v is already in u's side label.
	inlabel [2][][]bool
}

func newProxy(n graph.Vertex) *proxy {
	p := &proxy{}
	for side := 0; side < 2; side++ {
		p.inlabel[side] = make([][]bool, n)
		for v := range p.inlabel[side] {
			p.inlabel[side][v] = make([]bool, n)
		}
	}
	return p
}

// setLabeling clears both the bitmap and the labeling and starts filling l.
func (p *proxy) setLabeling(l *labeling.Labeling) {
	p.clear()
	l.Clear()
	p.l = l
}

// add appends hub (v, d) to u's side label unless it is already there.
func (p *proxy) add(u graph.Vertex, side graph.Dir, v graph.Vertex, d graph.Distance) {
	if !p.inlabel[side][v][u] {
		p.l.Add(u, side, v, d)
		p.inlabel[side][v][u] = true
	}
}

// size returns u's current label size on the given side.
func (p *proxy) size(u graph.Vertex, side graph.Dir) int {
	hubs, _ := p.l.Label(u, side)
	return len(hubs)
}

// inLabel reports whether v is already in u's side label.
func (p *proxy) inLabel(u graph.Vertex, side graph.Dir, v graph.Vertex) bool {
	return p.inlabel[side][v][u]
}

func (p *proxy) clear() {
	for side := 0; side < 2; side++ {
		for v := range p.inlabel[side] {
			row := p.inlabel[side][v]
			for u := range row {
				row[u] = false
			}
		}
	}
}

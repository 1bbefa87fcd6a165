// Package graph provides the weighted directed graph used by the hub
// labeling algorithms: compact arc storage with contiguous per-vertex,
// per-direction arc ranges, plus readers for DIMACS and METIS files.
package graph

import (
	"errors"
	"math"
	"sort"
)

// Vertex is a 0-based vertex id.
type Vertex uint32

// Distance is a non-negative arc length or path distance.
type Distance uint32

const (
	// None marks the absence of a vertex (e.g. no parent in a tree).
	None Vertex = math.MaxUint32
	// Infty marks an unreachable vertex. Finite distances never reach it.
	Infty Distance = math.MaxUint32
)

// Dir selects a traversal direction or a label side. Reverse means
// incoming arcs (the reverse label side), Forward means outgoing arcs
// (the forward label side).
type Dir uint8

const (
	Reverse Dir = iota
	Forward
)

// Flip returns the opposite direction.
func (d Dir) Flip() Dir { return d ^ 1 }

func (d Dir) String() string {
	if d == Forward {
		return "forward"
	}
	return "reverse"
}

// Arc is one adjacency entry: the vertex at the far end and the arc length.
// The same directed arc u→v is stored twice, once in u's forward range and
// once in v's reverse range.
type Arc struct {
	Head   Vertex
	Length Distance
}

// tmpArc is an arc record before Finalize lays out the adjacency ranges.
// forward/reverse flags let one record stand for an undirected edge.
type tmpArc struct {
	tail    Vertex
	head    Vertex
	length  Distance
	forward bool
	reverse bool
}

var (
	// ErrVertexRange is returned when an arc endpoint is outside [0, n).
	ErrVertexRange = errors.New("graph: vertex id out of range")
	// ErrArcLength is returned when an arc length is not positive.
	ErrArcLength = errors.New("graph: arc length must be positive")
)

// Graph is a directed graph with bidirectional adjacency iteration.
// Construction: New, AddArc repeatedly, then Finalize. After Finalize the
// graph is immutable and Arcs returns contiguous ranges in O(1).
type Graph struct {
	n    Vertex
	m    int
	arcs []Arc
	// begin[d][v]..end[d][v] is v's arc range in direction d.
	begin [2][]uint32
	end   [2][]uint32
	tmp   []tmpArc
}

// New returns an empty graph on n vertices.
func New(n Vertex) *Graph {
	return &Graph{n: n}
}

// N returns the number of vertices.
func (g *Graph) N() Vertex { return g.n }

// M returns the number of directed arcs (an undirected edge counts twice).
func (g *Graph) M() int { return g.m }

// Arcs returns v's contiguous arc range in direction d. Valid after Finalize.
func (g *Graph) Arcs(v Vertex, d Dir) []Arc {
	return g.arcs[g.begin[d][v]:g.end[d][v]]
}

// Degree returns the number of arcs incident to v in direction d.
func (g *Graph) Degree(v Vertex, d Dir) int {
	return int(g.end[d][v] - g.begin[d][v])
}

// DegreeTotal returns v's degree over both directions.
func (g *Graph) DegreeTotal(v Vertex) int {
	return g.Degree(v, Forward) + g.Degree(v, Reverse)
}

// AddArc records the arc (u,v) with length w. With undirected set the arc
// becomes traversable in both directions. Takes effect after Finalize.
func (g *Graph) AddArc(u, v Vertex, w Distance, undirected bool) error {
	if u >= g.n || v >= g.n {
		return ErrVertexRange
	}
	if w == 0 || w >= Infty {
		return ErrArcLength
	}
	g.tmp = append(g.tmp, tmpArc{tail: u, head: v, length: w, forward: true, reverse: undirected})
	g.tmp = append(g.tmp, tmpArc{tail: v, head: u, length: w, forward: undirected, reverse: true})
	return nil
}

// arcClass orders arcs within a vertex block: reverse-only arcs first,
// then bidirectional, then forward-only, so that the reverse range is a
// prefix and the forward range is a suffix sharing the middle.
func arcClass(a tmpArc) int {
	switch {
	case a.reverse && !a.forward:
		return 0
	case a.reverse && a.forward:
		return 1
	default:
		return 2
	}
}

// Finalize deduplicates the recorded arcs, merges forward and reverse
// records of the same (tail, head, length) into bidirectional ones, and
// lays out the adjacency ranges. Must be called exactly once.
func (g *Graph) Finalize() {
	a := g.tmp
	g.tmp = nil

	sort.Slice(a, func(i, j int) bool {
		x, y := a[i], a[j]
		if x.tail != y.tail {
			return x.tail < y.tail
		}
		if x.head != y.head {
			return x.head < y.head
		}
		if x.length != y.length {
			return x.length < y.length
		}
		return arcClass(x) < arcClass(y)
	})

	// Merge records with equal (tail, head, length); exact duplicates and
	// opposite-direction twins collapse into one record with OR'ed flags.
	k := 0
	for i := 0; i < len(a); {
		merged := a[i]
		j := i + 1
		for ; j < len(a); j++ {
			if a[j].tail != merged.tail || a[j].head != merged.head || a[j].length != merged.length {
				break
			}
			merged.forward = merged.forward || a[j].forward
			merged.reverse = merged.reverse || a[j].reverse
		}
		a[k] = merged
		k++
		i = j
	}
	a = a[:k]

	sort.Slice(a, func(i, j int) bool {
		x, y := a[i], a[j]
		if x.tail != y.tail {
			return x.tail < y.tail
		}
		if c, d := arcClass(x), arcClass(y); c != d {
			return c < d
		}
		if x.head != y.head {
			return x.head < y.head
		}
		return x.length < y.length
	})

	g.arcs = make([]Arc, len(a))
	for d := 0; d < 2; d++ {
		g.begin[d] = make([]uint32, g.n)
		g.end[d] = make([]uint32, g.n)
	}
	g.m = 0

	for i := 0; i < len(a); {
		v := a[i].tail
		blockStart := i
		nRev, nBoth := 0, 0
		for ; i < len(a) && a[i].tail == v; i++ {
			g.arcs[i] = Arc{Head: a[i].head, Length: a[i].length}
			switch arcClass(a[i]) {
			case 0:
				nRev++
			case 1:
				nBoth++
			}
			if a[i].forward {
				g.m++
			}
		}
		g.begin[Reverse][v] = uint32(blockStart)
		g.end[Reverse][v] = uint32(blockStart + nRev + nBoth)
		g.begin[Forward][v] = uint32(blockStart + nRev)
		g.end[Forward][v] = uint32(i)
	}
}

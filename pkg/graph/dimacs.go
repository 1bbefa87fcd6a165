package graph

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ReadDIMACS parses a graph in DIMACS shortest-paths format:
//
//	c comment
//	p sp <n> <m>
//	a <u> <v> <w>
//
// Vertex ids are 1-based, arc lengths are positive integers. With
// undirected set, every arc line yields a bidirectional arc. The header
// arc count must match the number of arc lines.
func ReadDIMACS(r io.Reader, undirected bool) (*Graph, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)

	var g *Graph
	var declared int64
	arcs := 0

	for line := 1; sc.Scan(); line++ {
		text := sc.Text()
		if text == "" {
			return nil, fmt.Errorf("dimacs: line %d: empty line", line)
		}
		switch text[0] {
		case 'c':
			continue
		case 'p':
			if g != nil {
				return nil, fmt.Errorf("dimacs: line %d: duplicate problem line", line)
			}
			f := strings.Fields(text)
			if len(f) != 4 || f[1] != "sp" {
				return nil, fmt.Errorf("dimacs: line %d: malformed problem line %q", line, text)
			}
			n, err := strconv.ParseInt(f[2], 10, 64)
			if err != nil || n < 0 || n >= int64(None) {
				return nil, fmt.Errorf("dimacs: line %d: bad vertex count %q", line, f[2])
			}
			m, err := strconv.ParseInt(f[3], 10, 64)
			if err != nil || m < 0 {
				return nil, fmt.Errorf("dimacs: line %d: bad arc count %q", line, f[3])
			}
			declared = m
			g = New(Vertex(n))
		case 'a':
			if g == nil {
				return nil, fmt.Errorf("dimacs: line %d: arc before problem line", line)
			}
			f := strings.Fields(text)
			if len(f) != 4 {
				return nil, fmt.Errorf("dimacs: line %d: malformed arc line %q", line, text)
			}
			u, err1 := strconv.ParseInt(f[1], 10, 64)
			v, err2 := strconv.ParseInt(f[2], 10, 64)
			w, err3 := strconv.ParseInt(f[3], 10, 64)
			if err1 != nil || err2 != nil || err3 != nil {
				return nil, fmt.Errorf("dimacs: line %d: malformed arc line %q", line, text)
			}
			if u < 1 || v < 1 || u > int64(g.N()) || v > int64(g.N()) {
				return nil, fmt.Errorf("dimacs: line %d: %w", line, ErrVertexRange)
			}
			if w < 1 || w >= int64(Infty) {
				return nil, fmt.Errorf("dimacs: line %d: %w", line, ErrArcLength)
			}
			if err := g.AddArc(Vertex(u-1), Vertex(v-1), Distance(w), undirected); err != nil {
				return nil, fmt.Errorf("dimacs: line %d: %w", line, err)
			}
			arcs++
		default:
			return nil, fmt.Errorf("dimacs: line %d: unknown line type %q", line, text[0])
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("dimacs: %w", err)
	}
	if g == nil {
		return nil, fmt.Errorf("dimacs: missing problem line")
	}
	if int64(arcs) != declared {
		return nil, fmt.Errorf("dimacs: header declares %d arcs, file has %d", declared, arcs)
	}
	g.Finalize()
	return g, nil
}

// WriteDIMACS writes the graph in DIMACS shortest-paths format. Every
// directed arc becomes one `a` line; bidirectional arcs become two.
func (g *Graph) WriteDIMACS(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "p sp %d %d\n", g.n, g.m)
	for v := Vertex(0); v < g.n; v++ {
		for _, a := range g.Arcs(v, Forward) {
			fmt.Fprintf(bw, "a %d %d %d\n", v+1, a.Head+1, a.Length)
		}
	}
	return bw.Flush()
}

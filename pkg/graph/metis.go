package graph

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ReadMETIS parses a graph in METIS adjacency format:
//
//	% comment
//	<n> <m> [fmt] [ncon]
//	<s> <w_1> .. <w_ncon> <v_1> <l_1> ...
//
// fmt is a three-digit flag field ijk: i marks vertex sizes present, j
// vertex weights present, k edge lengths present. ncon is the number of
// vertex weights (requires j). Vertex sizes and weights are parsed and
// discarded. Neighbor ids are 1-based; without edge lengths every arc has
// length 1. A blank line denotes an isolated vertex.
func ReadMETIS(r io.Reader, undirected bool) (*Graph, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)

	var g *Graph
	hasLengths := false
	skip := 0
	v := Vertex(0)

	for line := 1; sc.Scan(); line++ {
		text := sc.Text()
		if strings.HasPrefix(strings.TrimLeft(text, " \t"), "%") {
			continue
		}
		fields := strings.Fields(text)

		if g == nil {
			// Header line.
			if len(fields) < 2 || len(fields) > 4 {
				return nil, fmt.Errorf("metis: line %d: malformed header %q", line, text)
			}
			vals := make([]int64, len(fields))
			for i, f := range fields {
				x, err := strconv.ParseInt(f, 10, 64)
				if err != nil || x < 0 {
					return nil, fmt.Errorf("metis: line %d: bad header field %q", line, f)
				}
				vals[i] = x
			}
			n := vals[0]
			if n >= int64(None) {
				return nil, fmt.Errorf("metis: line %d: bad vertex count %d", line, n)
			}
			format := int64(0)
			if len(vals) >= 3 {
				format = vals[2]
				if format%10 > 1 || (format/10)%10 > 1 || format > 111 {
					return nil, fmt.Errorf("metis: line %d: bad fmt field %d", line, format)
				}
				skip = 0
				if format >= 100 {
					skip++
				}
				if format%100 >= 10 {
					skip++
				}
			}
			if len(vals) == 4 {
				if format%100 < 10 {
					return nil, fmt.Errorf("metis: line %d: ncon given without vertex weights flag", line)
				}
				skip = int(vals[3])
				if format >= 100 {
					skip++
				}
			}
			hasLengths = format%10 == 1
			g = New(Vertex(n))
			continue
		}

		// Vertex line (possibly empty: isolated vertex).
		if len(fields) < skip {
			return nil, fmt.Errorf("metis: line %d: vertex %d: expected %d size/weight fields", line, v, skip)
		}
		adj := fields[skip:]
		if hasLengths {
			if len(adj)%2 != 0 {
				return nil, fmt.Errorf("metis: line %d: vertex %d: dangling neighbor without length", line, v)
			}
			for i := 0; i < len(adj); i += 2 {
				head, err1 := strconv.ParseInt(adj[i], 10, 64)
				w, err2 := strconv.ParseInt(adj[i+1], 10, 64)
				if err1 != nil || err2 != nil {
					return nil, fmt.Errorf("metis: line %d: vertex %d: malformed neighbor pair", line, v)
				}
				if head < 1 || head > int64(g.N()) || v >= g.N() {
					return nil, fmt.Errorf("metis: line %d: %w", line, ErrVertexRange)
				}
				if w < 1 || w >= int64(Infty) {
					return nil, fmt.Errorf("metis: line %d: %w", line, ErrArcLength)
				}
				if err := g.AddArc(v, Vertex(head-1), Distance(w), undirected); err != nil {
					return nil, fmt.Errorf("metis: line %d: %w", line, err)
				}
			}
		} else {
			for _, f := range adj {
				head, err := strconv.ParseInt(f, 10, 64)
				if err != nil {
					return nil, fmt.Errorf("metis: line %d: vertex %d: malformed neighbor %q", line, v, f)
				}
				if head < 1 || head > int64(g.N()) || v >= g.N() {
					return nil, fmt.Errorf("metis: line %d: %w", line, ErrVertexRange)
				}
				if err := g.AddArc(v, Vertex(head-1), 1, undirected); err != nil {
					return nil, fmt.Errorf("metis: line %d: %w", line, err)
				}
			}
		}
		v++
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("metis: %w", err)
	}
	if g == nil {
		return nil, fmt.Errorf("metis: missing header line")
	}
	if v > g.N() {
		return nil, fmt.Errorf("metis: %d vertex lines for %d vertices", v, g.N())
	}
	g.Finalize()
	return g, nil
}

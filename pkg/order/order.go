// Package order handles vertex orders: permutations of [0, n) listing
// vertices from most to least important.
package order

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	"hub_labeling/pkg/graph"
)

// Order is a vertex permutation, most-important first.
type Order []graph.Vertex

// Validate checks that the order is a permutation of [0, n).
func (o Order) Validate(n graph.Vertex) error {
	if graph.Vertex(len(o)) != n {
		return fmt.Errorf("order: has %d vertices, graph has %d", len(o), n)
	}
	seen := make([]bool, n)
	for _, v := range o {
		if v >= n {
			return fmt.Errorf("order: vertex %d out of range", v)
		}
		if seen[v] {
			return fmt.Errorf("order: vertex %d listed twice", v)
		}
		seen[v] = true
	}
	return nil
}

// Write serializes the order: the length, then one vertex id per line.
func (o Order) Write(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d\n", len(o))
	for _, v := range o {
		fmt.Fprintf(bw, "%d\n", v)
	}
	return bw.Flush()
}

// Read parses an order written by Write.
func Read(r io.Reader) (Order, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	sc.Split(bufio.ScanWords)

	next := func() (uint64, error) {
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return 0, err
			}
			return 0, io.ErrUnexpectedEOF
		}
		return strconv.ParseUint(sc.Text(), 10, 32)
	}

	size, err := next()
	if err != nil {
		return nil, fmt.Errorf("order: read size: %w", err)
	}
	o := make(Order, size)
	for i := range o {
		v, err := next()
		if err != nil {
			return nil, fmt.Errorf("order: read entry %d: %w", i, err)
		}
		o[i] = graph.Vertex(v)
	}
	if sc.Scan() {
		return nil, fmt.Errorf("order: trailing data after %d entries", size)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("order: %w", err)
	}
	return o, nil
}

// WriteFile writes the order to path.
func (o Order) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write order: %w", err)
	}
	if err := o.Write(f); err != nil {
		f.Close()
		return fmt.Errorf("write order %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("write order %s: %w", path, err)
	}
	return nil
}

// ReadFile loads an order from path.
func ReadFile(path string) (Order, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read order: %w", err)
	}
	defer f.Close()
	o, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("read order %s: %w", path, err)
	}
	return o, nil
}

// ByDegree returns vertices sorted by total degree, highest first. Ties
// break toward the larger vertex id, matching a stable descending sort
// on (degree, id).
func ByDegree(g *graph.Graph) Order {
	n := g.N()
	o := make(Order, n)
	for v := graph.Vertex(0); v < n; v++ {
		o[v] = v
	}
	sort.Slice(o, func(i, j int) bool {
		di, dj := g.DegreeTotal(o[i]), g.DegreeTotal(o[j])
		if di != dj {
			return di > dj
		}
		return o[i] > o[j]
	})
	return o
}

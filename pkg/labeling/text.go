package labeling

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"

	"hub_labeling/pkg/graph"
)

// sideOrder is the on-disk side order: forward line first, then reverse.
var sideOrder = [2]graph.Dir{graph.Forward, graph.Reverse}

// Write serializes the labeling as text: the vertex count, then two lines
// per vertex (forward side, then reverse), each holding the label size
// followed by interleaved hub/distance pairs.
func (l *Labeling) Write(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d\n", l.n)
	for v := graph.Vertex(0); v < l.n; v++ {
		for _, side := range sideOrder {
			hubs, dist := l.hubs[v][side], l.dist[v][side]
			fmt.Fprintf(bw, "%d", len(hubs))
			for i := range hubs {
				fmt.Fprintf(bw, " %d %d", hubs[i], dist[i])
			}
			fmt.Fprintln(bw)
		}
	}
	return bw.Flush()
}

// Read parses a labeling written by Write. When checkN is non-zero the
// vertex count in the file must match it.
func Read(r io.Reader, checkN graph.Vertex) (*Labeling, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 64*1024*1024)
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

	n64, err := next()
	if err != nil {
		return nil, fmt.Errorf("labeling: read vertex count: %w", err)
	}
	n := graph.Vertex(n64)
	if checkN != 0 && n != checkN {
		return nil, fmt.Errorf("labeling: file has %d vertices, graph has %d", n, checkN)
	}

	l := New(n)
	for v := graph.Vertex(0); v < n; v++ {
		for _, side := range sideOrder {
			k, err := next()
			if err != nil {
				return nil, fmt.Errorf("labeling: vertex %d %s label size: %w", v, side, err)
			}
			for i := uint64(0); i < k; i++ {
				hub, err := next()
				if err != nil {
					return nil, fmt.Errorf("labeling: vertex %d %s hub %d: %w", v, side, i, err)
				}
				d, err := next()
				if err != nil {
					return nil, fmt.Errorf("labeling: vertex %d %s distance %d: %w", v, side, i, err)
				}
				l.Add(v, side, graph.Vertex(hub), graph.Distance(d))
			}
		}
	}
	if sc.Scan() {
		return nil, fmt.Errorf("labeling: trailing data after %d vertices", n)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("labeling: %w", err)
	}
	return l, nil
}

// WriteFile writes the labeling to path: binary when the path has the
// .bin extension, text otherwise.
func (l *Labeling) WriteFile(path string) error {
	if isBinaryPath(path) {
		return l.WriteBinaryFile(path)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write labeling: %w", err)
	}
	if err := l.Write(f); err != nil {
		f.Close()
		return fmt.Errorf("write labeling %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("write labeling %s: %w", path, err)
	}
	return nil
}

// ReadFile loads a labeling from path, autodetecting the binary format
// by its magic bytes.
func ReadFile(path string, checkN graph.Vertex) (*Labeling, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read labeling: %w", err)
	}
	defer f.Close()

	br := bufio.NewReader(f)
	peek, err := br.Peek(len(magicBytes))
	if err == nil && string(peek) == magicBytes {
		return readBinary(br, checkN)
	}
	l, err := Read(br, checkN)
	if err != nil {
		return nil, fmt.Errorf("read labeling %s: %w", path, err)
	}
	return l, nil
}

func isBinaryPath(path string) bool {
	const ext = ".bin"
	return len(path) > len(ext) && path[len(path)-len(ext):] == ext
}

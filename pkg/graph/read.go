package graph

import (
	"fmt"
	"io"
	"os"
)

// ReadFile loads a graph from path, attempting DIMACS first and falling
// back to METIS. With undirected set every arc becomes bidirectional.
func ReadFile(path string, undirected bool) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read graph: %w", err)
	}
	defer f.Close()

	g, dimacsErr := ReadDIMACS(f, undirected)
	if dimacsErr == nil {
		return g, nil
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("read graph %s: %w", path, err)
	}
	g, metisErr := ReadMETIS(f, undirected)
	if metisErr == nil {
		return g, nil
	}
	return nil, fmt.Errorf("read graph %s: not DIMACS (%v); not METIS (%v)", path, dimacsErr, metisErr)
}

// WriteFile writes the graph to path in DIMACS format.
func (g *Graph) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write graph: %w", err)
	}
	if err := g.WriteDIMACS(f); err != nil {
		f.Close()
		return fmt.Errorf("write graph %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("write graph %s: %w", path, err)
	}
	return nil
}

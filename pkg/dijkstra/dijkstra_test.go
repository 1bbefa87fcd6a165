package dijkstra

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hub_labeling/pkg/graph"
)

// buildPath returns the unit-weight undirected path 0–1–2–3.
func buildPath(t *testing.T) *graph.Graph {
	t.Helper()
	g := graph.New(4)
	for v := graph.Vertex(0); v < 3; v++ {
		require.NoError(t, g.AddArc(v, v+1, 1, true))
	}
	g.Finalize()
	return g
}

func TestRunForward(t *testing.T) {
	g := buildPath(t)
	d := New(g)
	d.Run(0, graph.Forward)

	for v := graph.Vertex(0); v < 4; v++ {
		assert.Equal(t, graph.Distance(v), d.Distance(v))
	}
	assert.Equal(t, graph.Vertex(1), d.Parent(2))
	assert.Equal(t, graph.None, d.Parent(0))
}

func TestRunDirected(t *testing.T) {
	g := graph.New(3)
	require.NoError(t, g.AddArc(0, 1, 4, false))
	require.NoError(t, g.AddArc(1, 2, 6, false))
	g.Finalize()

	d := New(g)
	d.Run(0, graph.Forward)
	assert.Equal(t, graph.Distance(10), d.Distance(2))

	// No reverse path from 0.
	d.Run(0, graph.Reverse)
	assert.Equal(t, graph.Distance(0), d.Distance(0))
	assert.Equal(t, graph.Infty, d.Distance(1))
	assert.Equal(t, graph.Infty, d.Distance(2))

	// Reverse from the sink walks the arcs backwards.
	d.Run(2, graph.Reverse)
	assert.Equal(t, graph.Distance(10), d.Distance(0))
}

func TestRepeatedRunsReset(t *testing.T) {
	g := buildPath(t)
	d := New(g)
	d.Run(3, graph.Forward)
	assert.Equal(t, graph.Distance(3), d.Distance(0))

	d.Run(1, graph.Forward)
	assert.Equal(t, graph.Distance(1), d.Distance(0))
	assert.Equal(t, graph.Distance(2), d.Distance(3))
}

func TestUnreachable(t *testing.T) {
	g := graph.New(3)
	require.NoError(t, g.AddArc(0, 1, 1, true))
	g.Finalize()

	d := New(g)
	d.Run(0, graph.Forward)
	assert.Equal(t, graph.Infty, d.Distance(2))
	assert.Equal(t, graph.None, d.Parent(2))
}

// buildDiamond returns the directed graph 0→1 (2), 0→2 (2), 1→3 (1),
// 2→3 (1): two equal shortest 0→3 paths of length 3.
func buildDiamond(t *testing.T) *graph.Graph {
	t.Helper()
	g := graph.New(4)
	require.NoError(t, g.AddArc(0, 1, 2, false))
	require.NoError(t, g.AddArc(0, 2, 2, false))
	require.NoError(t, g.AddArc(1, 3, 1, false))
	require.NoError(t, g.AddArc(2, 3, 1, false))
	g.Finalize()
	return g
}

func TestUSPTieBreak(t *testing.T) {
	g := buildDiamond(t)
	d := NewUSP(g)
	d.Run(0, graph.Forward)

	assert.Equal(t, graph.Distance(3), d.Distance(3))
	// Both parents give distance 3 and 2 hops; the smaller id wins.
	assert.Equal(t, graph.Vertex(1), d.Parent(3))
}

func TestUSPPreferFewerHops(t *testing.T) {
	// 0→1 (1), 1→2 (1) and a direct 0→2 (2): both routes have length 2,
	// the direct arc has fewer hops.
	g := graph.New(3)
	require.NoError(t, g.AddArc(0, 1, 1, false))
	require.NoError(t, g.AddArc(1, 2, 1, false))
	require.NoError(t, g.AddArc(0, 2, 2, false))
	g.Finalize()

	d := NewUSP(g)
	d.Run(0, graph.Forward)
	assert.Equal(t, graph.Distance(2), d.Distance(2))
	assert.Equal(t, graph.Vertex(0), d.Parent(2))
}

func TestUSPMatchesDijkstraDistances(t *testing.T) {
	g := buildDiamond(t)
	plain := New(g)
	usp := NewUSP(g)
	for s := graph.Vertex(0); s < 4; s++ {
		for _, dir := range []graph.Dir{graph.Forward, graph.Reverse} {
			plain.Run(s, dir)
			usp.Run(s, dir)
			for v := graph.Vertex(0); v < 4; v++ {
				assert.Equal(t, plain.Distance(v), usp.Distance(v), "s=%d v=%d dir=%s", s, v, dir)
			}
		}
	}
}

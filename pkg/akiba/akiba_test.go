package akiba

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hub_labeling/pkg/dijkstra"
	"hub_labeling/pkg/graph"
	"hub_labeling/pkg/labeling"
	"hub_labeling/pkg/order"
)

func buildPath(t *testing.T, n graph.Vertex) *graph.Graph {
	t.Helper()
	g := graph.New(n)
	for v := graph.Vertex(0); v+1 < n; v++ {
		require.NoError(t, g.AddArc(v, v+1, 1, true))
	}
	g.Finalize()
	return g
}

// buildRandomConnected returns a connected undirected graph: a random
// spanning tree plus extra random edges, weights in [1, 10].
func buildRandomConnected(t *testing.T, n graph.Vertex, extra int, seed int64) *graph.Graph {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	g := graph.New(n)
	for v := graph.Vertex(1); v < n; v++ {
		u := graph.Vertex(rng.Intn(int(v)))
		require.NoError(t, g.AddArc(u, v, graph.Distance(1+rng.Intn(10)), true))
	}
	for i := 0; i < extra; i++ {
		u := graph.Vertex(rng.Intn(int(n)))
		v := graph.Vertex(rng.Intn(int(n)))
		if u == v {
			continue
		}
		require.NoError(t, g.AddArc(u, v, graph.Distance(1+rng.Intn(10)), true))
	}
	g.Finalize()
	return g
}

func identityOrder(n graph.Vertex) order.Order {
	o := make(order.Order, n)
	for i := range o {
		o[i] = graph.Vertex(i)
	}
	return o
}

func TestPathGraph(t *testing.T) {
	g := buildPath(t, 4)
	l := labeling.New(4)
	require.NoError(t, New(g).Run(identityOrder(4), l))
	l.Sort()

	assert.Equal(t, graph.Distance(3), l.Query(0, 3, graph.Forward))
	assert.Equal(t, graph.Distance(1), l.Query(1, 2, graph.Forward))
	for u := graph.Vertex(0); u < 4; u++ {
		for v := graph.Vertex(0); v < 4; v++ {
			want := graph.Distance(max(int(u), int(v)) - min(int(u), int(v)))
			assert.Equal(t, want, l.Query(u, v, graph.Forward), "query(%d,%d)", u, v)
		}
	}
	assert.True(t, labeling.Check(g, l, 2))
}

// Hub ids are order positions, so a vertex's hubs never rank below the
// vertex itself.
func TestHierarchy(t *testing.T) {
	g := buildRandomConnected(t, 12, 8, 7)
	o := order.ByDegree(g)
	l := labeling.New(g.N())
	require.NoError(t, New(g).Run(o, l))

	pos := make([]int, g.N())
	for i, v := range o {
		pos[v] = i
	}
	for v := graph.Vertex(0); v < g.N(); v++ {
		for _, side := range []graph.Dir{graph.Forward, graph.Reverse} {
			hubs, _ := l.Label(v, side)
			for _, h := range hubs {
				assert.LessOrEqual(t, int(h), pos[v], "vertex %d %s hub %d", v, side, h)
			}
		}
	}
}

func TestSortedWithoutExplicitSort(t *testing.T) {
	// Hubs are appended in increasing order-position, so labels come out
	// of the build already sorted.
	g := buildRandomConnected(t, 10, 5, 3)
	l := labeling.New(g.N())
	require.NoError(t, New(g).Run(identityOrder(g.N()), l))

	for v := graph.Vertex(0); v < g.N(); v++ {
		for _, side := range []graph.Dir{graph.Forward, graph.Reverse} {
			hubs, _ := l.Label(v, side)
			for i := 1; i < len(hubs); i++ {
				assert.Less(t, hubs[i-1], hubs[i])
			}
		}
	}
}

func TestRandomGraphAgainstDijkstra(t *testing.T) {
	g := buildRandomConnected(t, 20, 15, 42)
	l := labeling.New(g.N())
	require.NoError(t, New(g).Run(order.ByDegree(g), l))
	l.Sort()
	assert.True(t, labeling.Check(g, l, 4))
}

func TestDirectedGraph(t *testing.T) {
	g := graph.New(4)
	require.NoError(t, g.AddArc(0, 1, 2, false))
	require.NoError(t, g.AddArc(0, 2, 2, false))
	require.NoError(t, g.AddArc(1, 3, 1, false))
	require.NoError(t, g.AddArc(2, 3, 1, false))
	g.Finalize()

	l := labeling.New(4)
	require.NoError(t, New(g).Run(identityOrder(4), l))
	l.Sort()

	assert.Equal(t, graph.Distance(3), l.Query(0, 3, graph.Forward))
	assert.Equal(t, graph.Infty, l.Query(3, 0, graph.Forward))
	assert.True(t, labeling.Check(g, l, 2))
}

func TestDisconnected(t *testing.T) {
	g := graph.New(4)
	require.NoError(t, g.AddArc(0, 1, 1, true))
	require.NoError(t, g.AddArc(2, 3, 1, true))
	g.Finalize()

	l := labeling.New(4)
	require.NoError(t, New(g).Run(identityOrder(4), l))
	l.Sort()

	assert.Equal(t, graph.Distance(1), l.Query(0, 1, graph.Forward))
	assert.Equal(t, graph.Infty, l.Query(0, 2, graph.Forward))
	assert.Equal(t, graph.Infty, l.Query(1, 3, graph.Forward))
	assert.True(t, labeling.Check(g, l, 2))
}

func TestSingleVertex(t *testing.T) {
	g := graph.New(1)
	g.Finalize()

	l := labeling.New(1)
	require.NoError(t, New(g).Run(order.Order{0}, l))
	assert.Equal(t, graph.Distance(0), l.Query(0, 0, graph.Forward))
	assert.True(t, labeling.Check(g, l, 1))
}

func TestBadOrder(t *testing.T) {
	g := buildPath(t, 3)
	l := labeling.New(3)
	assert.Error(t, New(g).Run(order.Order{0, 1}, l))
	assert.Error(t, New(g).Run(order.Order{0, 1, 1}, l))
}

// Rebuilding after Clear reproduces the same labeling.
func TestRebuildIdempotent(t *testing.T) {
	g := buildRandomConnected(t, 10, 6, 9)
	o := order.ByDegree(g)

	a := New(g)
	l1 := labeling.New(g.N())
	require.NoError(t, a.Run(o, l1))
	l2 := labeling.New(g.N())
	require.NoError(t, a.Run(o, l2))

	for v := graph.Vertex(0); v < g.N(); v++ {
		for _, side := range []graph.Dir{graph.Forward, graph.Reverse} {
			h1, d1 := l1.Label(v, side)
			h2, d2 := l2.Label(v, side)
			assert.Equal(t, h1, h2)
			assert.Equal(t, d1, d2)
		}
	}
}

// The pruned exploration must agree with plain Dijkstra on every pair.
func TestAgainstFreshDijkstra(t *testing.T) {
	g := buildRandomConnected(t, 15, 10, 11)
	l := labeling.New(g.N())
	require.NoError(t, New(g).Run(identityOrder(g.N()), l))
	l.Sort()

	dij := dijkstra.New(g)
	for u := graph.Vertex(0); u < g.N(); u++ {
		dij.Run(u, graph.Forward)
		for v := graph.Vertex(0); v < g.N(); v++ {
			assert.Equal(t, dij.Distance(v), l.Query(u, v, graph.Forward), "dist(%d,%d)", u, v)
		}
	}
}

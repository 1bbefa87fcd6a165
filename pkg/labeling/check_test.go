package labeling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hub_labeling/pkg/graph"
)

func buildPathGraph(t *testing.T) *graph.Graph {
	t.Helper()
	g := graph.New(4)
	for v := graph.Vertex(0); v < 3; v++ {
		require.NoError(t, g.AddArc(v, v+1, 1, true))
	}
	g.Finalize()
	return g
}

func TestCheckAccepts(t *testing.T) {
	g := buildPathGraph(t)
	l := pathLabeling()
	assert.True(t, Check(g, l, 2))
}

func TestCheckRejectsWrongDistance(t *testing.T) {
	g := buildPathGraph(t)
	l := pathLabeling()
	l.dist[3][Forward][0]++ // corrupt one stored distance
	assert.False(t, Check(g, l, 2))
}

func TestCheckRejectsMissingEntry(t *testing.T) {
	g := buildPathGraph(t)
	l := pathLabeling()
	// Drop hub 3 (vertex 3 itself) from both of vertex 3's labels:
	// query(3,3) can then only meet at hub 2 and returns 2 instead of 0.
	l.hubs[3][Forward] = l.hubs[3][Forward][:2]
	l.dist[3][Forward] = l.dist[3][Forward][:2]
	l.hubs[3][Reverse] = l.hubs[3][Reverse][:2]
	l.dist[3][Reverse] = l.dist[3][Reverse][:2]
	assert.False(t, Check(g, l, 1))
}

func TestCheckSingleVertex(t *testing.T) {
	g := graph.New(1)
	g.Finalize()
	l := New(1)
	l.Add(0, Forward, 0, 0)
	l.Add(0, Reverse, 0, 0)
	assert.True(t, Check(g, l, 0))
}

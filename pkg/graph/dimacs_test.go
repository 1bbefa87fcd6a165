package graph

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDIMACS = `c a small test graph
p sp 4 5
a 1 2 2
a 1 3 2
a 2 4 1
a 3 4 1
c trailing comment
a 4 1 10
`

func TestReadDIMACS(t *testing.T) {
	g, err := ReadDIMACS(strings.NewReader(sampleDIMACS), false)
	require.NoError(t, err)

	assert.Equal(t, Vertex(4), g.N())
	assert.Equal(t, 5, g.M())
	assert.Equal(t, 2, g.Degree(0, Forward))
	assert.Equal(t, 1, g.Degree(0, Reverse))
	assert.Equal(t, 2, g.Degree(3, Reverse))
}

func TestReadDIMACSUndirected(t *testing.T) {
	g, err := ReadDIMACS(strings.NewReader("p sp 2 1\na 1 2 4\n"), true)
	require.NoError(t, err)
	assert.Equal(t, 2, g.M())
	assert.Len(t, g.Arcs(1, Forward), 1)
	assert.Equal(t, Arc{Head: 0, Length: 4}, g.Arcs(1, Forward)[0])
}

func TestReadDIMACSErrors(t *testing.T) {
	cases := []struct {
		name  string
		input string
	}{
		{"missing header", "a 1 2 3\n"},
		{"no header at all", "c only comments\n"},
		{"duplicate header", "p sp 2 0\np sp 2 0\n"},
		{"bad header", "p xx 2 1\na 1 2 3\n"},
		{"vertex out of range", "p sp 2 1\na 1 3 5\n"},
		{"zero length", "p sp 2 1\na 1 2 0\n"},
		{"arc count mismatch", "p sp 2 2\na 1 2 3\n"},
		{"garbage line", "p sp 2 1\nx 1 2 3\n"},
		{"malformed arc", "p sp 2 1\na 1 2\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ReadDIMACS(strings.NewReader(tc.input), false)
			assert.Error(t, err)
		})
	}
}

func TestWriteDIMACSRoundTrip(t *testing.T) {
	g, err := ReadDIMACS(strings.NewReader(sampleDIMACS), false)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, g.WriteDIMACS(&buf))

	g2, err := ReadDIMACS(&buf, false)
	require.NoError(t, err)
	require.Equal(t, g.N(), g2.N())
	require.Equal(t, g.M(), g2.M())
	for v := Vertex(0); v < g.N(); v++ {
		for _, d := range []Dir{Forward, Reverse} {
			assert.Equal(t, g.Arcs(v, d), g2.Arcs(v, d), "vertex %d %s", v, d)
		}
	}
}

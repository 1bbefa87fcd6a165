package order

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hub_labeling/pkg/graph"
)

func TestRoundTrip(t *testing.T) {
	o := Order{3, 1, 0, 2}
	var buf bytes.Buffer
	require.NoError(t, o.Write(&buf))
	assert.Equal(t, "4\n3\n1\n0\n2\n", buf.String())

	got, err := Read(&buf)
	require.NoError(t, err)
	assert.Equal(t, o, got)
}

func TestReadErrors(t *testing.T) {
	cases := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"truncated", "3\n0\n1\n"},
		{"trailing", "2\n0\n1\n2\n"},
		{"not a number", "2\n0\nx\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tc.input))
			assert.Error(t, err)
		})
	}
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Order{2, 0, 1}.Validate(3))
	assert.Error(t, Order{0, 1}.Validate(3), "wrong length")
	assert.Error(t, Order{0, 1, 3}.Validate(3), "out of range")
	assert.Error(t, Order{0, 1, 1}.Validate(3), "duplicate")
}

func TestByDegree(t *testing.T) {
	// Star with center 1 plus the extra edge 2–3: degrees (undirected
	// adjacency counted per direction) are 1: 6, 2: 4, 3: 4, 0: 2.
	g := graph.New(4)
	require.NoError(t, g.AddArc(1, 0, 1, true))
	require.NoError(t, g.AddArc(1, 2, 1, true))
	require.NoError(t, g.AddArc(1, 3, 1, true))
	require.NoError(t, g.AddArc(2, 3, 1, true))
	g.Finalize()

	o := ByDegree(g)
	require.NoError(t, o.Validate(4))
	assert.Equal(t, Order{1, 3, 2, 0}, o)
}

package labeling

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hub_labeling/pkg/graph"
)

func assertSameLabeling(t *testing.T, want, got *Labeling) {
	t.Helper()
	require.Equal(t, want.N(), got.N())
	for v := graph.Vertex(0); v < want.N(); v++ {
		for _, side := range sideOrder {
			wh, wd := want.Label(v, side)
			gh, gd := got.Label(v, side)
			assert.Equal(t, wh, gh, "vertex %d %s hubs", v, side)
			assert.Equal(t, wd, gd, "vertex %d %s distances", v, side)
		}
	}
}

func TestTextRoundTrip(t *testing.T) {
	l := pathLabeling()
	var buf bytes.Buffer
	require.NoError(t, l.Write(&buf))

	got, err := Read(&buf, 4)
	require.NoError(t, err)
	assertSameLabeling(t, l, got)
}

func TestTextFormat(t *testing.T) {
	l := New(1)
	l.Add(0, Forward, 0, 0)
	l.Add(0, Forward, 3, 7)
	l.Add(0, Reverse, 0, 0)

	var buf bytes.Buffer
	require.NoError(t, l.Write(&buf))
	assert.Equal(t, "1\n2 0 0 3 7\n1 0 0\n", buf.String())
}

func TestReadChecksVertexCount(t *testing.T) {
	l := pathLabeling()
	var buf bytes.Buffer
	require.NoError(t, l.Write(&buf))

	_, err := Read(&buf, 5)
	assert.Error(t, err)
}

func TestReadErrors(t *testing.T) {
	cases := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"truncated label", "1\n2 0 0\n"},
		{"missing side", "1\n1 0 0\n"},
		{"trailing data", "1\n0\n0\n99\n"},
		{"not a number", "1\nx\n0\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tc.input), 0)
			assert.Error(t, err)
		})
	}
}

func TestBinaryRoundTrip(t *testing.T) {
	l := pathLabeling()
	path := filepath.Join(t.TempDir(), "labels.bin")
	require.NoError(t, l.WriteBinaryFile(path))

	got, err := ReadBinaryFile(path, 4)
	require.NoError(t, err)
	assertSameLabeling(t, l, got)
}

func TestBinaryChecksVertexCount(t *testing.T) {
	l := pathLabeling()
	path := filepath.Join(t.TempDir(), "labels.bin")
	require.NoError(t, l.WriteBinaryFile(path))

	_, err := ReadBinaryFile(path, 3)
	assert.Error(t, err)
}

func TestReadFileAutodetect(t *testing.T) {
	l := pathLabeling()
	dir := t.TempDir()

	textPath := filepath.Join(dir, "labels.txt")
	require.NoError(t, l.WriteFile(textPath))
	got, err := ReadFile(textPath, 4)
	require.NoError(t, err)
	assertSameLabeling(t, l, got)

	binPath := filepath.Join(dir, "labels.bin")
	require.NoError(t, l.WriteFile(binPath))
	got, err = ReadFile(binPath, 4)
	require.NoError(t, err)
	assertSameLabeling(t, l, got)
}

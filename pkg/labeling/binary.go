package labeling

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"io"
	"os"
	"unsafe"

	"hub_labeling/pkg/graph"
)

const (
	magicBytes  = "HUBLABEL"
	version     = uint32(1)
	maxVertices = 100_000_000
)

// fileHeader is the binary header.
type fileHeader struct {
	Magic       [8]byte
	Version     uint32
	NumVertices uint32
}

// WriteBinaryFile serializes the labeling to a binary file: header, then
// per vertex and side a length-prefixed hub array and distance array,
// then a CRC32 trailer. Uses unsafe.Slice for zero-copy array I/O.
func (l *Labeling) WriteBinaryFile(path string) error {
	tmpPath := path + ".tmp"
	f, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		f.Close()
		os.Remove(tmpPath) // clean up on error
	}()

	crcWriter := crc32Writer{w: f, hash: crc32.NewIEEE()}
	w := &crcWriter

	hdr := fileHeader{Version: version, NumVertices: uint32(l.n)}
	copy(hdr.Magic[:], magicBytes)
	if err := binary.Write(w, binary.LittleEndian, &hdr); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for v := graph.Vertex(0); v < l.n; v++ {
		for _, side := range sideOrder {
			hubs, dist := l.hubs[v][side], l.dist[v][side]
			if err := binary.Write(w, binary.LittleEndian, uint32(len(hubs))); err != nil {
				return fmt.Errorf("write label size: %w", err)
			}
			if err := writeVertexSlice(w, hubs); err != nil {
				return fmt.Errorf("write hubs: %w", err)
			}
			if err := writeDistanceSlice(w, dist); err != nil {
				return fmt.Errorf("write distances: %w", err)
			}
		}
	}

	checksum := crcWriter.hash.Sum32()
	if err := binary.Write(f, binary.LittleEndian, checksum); err != nil {
		return fmt.Errorf("write CRC32: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}

// ReadBinaryFile deserializes a labeling written by WriteBinaryFile.
func ReadBinaryFile(path string, checkN graph.Vertex) (*Labeling, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	defer f.Close()
	return readBinary(f, checkN)
}

func readBinary(r io.Reader, checkN graph.Vertex) (*Labeling, error) {
	crcReader := crc32Reader{r: r, hash: crc32.NewIEEE()}
	cr := &crcReader

	var hdr fileHeader
	if err := binary.Read(cr, binary.LittleEndian, &hdr); err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if string(hdr.Magic[:]) != magicBytes {
		return nil, fmt.Errorf("invalid magic bytes: %q", hdr.Magic)
	}
	if hdr.Version != version {
		return nil, fmt.Errorf("unsupported version: %d", hdr.Version)
	}
	if hdr.NumVertices > maxVertices {
		return nil, fmt.Errorf("NumVertices %d exceeds limit %d", hdr.NumVertices, maxVertices)
	}
	n := graph.Vertex(hdr.NumVertices)
	if checkN != 0 && n != checkN {
		return nil, fmt.Errorf("file has %d vertices, graph has %d", n, checkN)
	}

	l := New(n)
	for v := graph.Vertex(0); v < n; v++ {
		for _, side := range sideOrder {
			var k uint32
			if err := binary.Read(cr, binary.LittleEndian, &k); err != nil {
				return nil, fmt.Errorf("read label size: %w", err)
			}
			if k > hdr.NumVertices {
				return nil, fmt.Errorf("vertex %d %s label size %d exceeds vertex count", v, side, k)
			}
			hubs, err := readVertexSlice(cr, int(k))
			if err != nil {
				return nil, fmt.Errorf("read hubs: %w", err)
			}
			dist, err := readDistanceSlice(cr, int(k))
			if err != nil {
				return nil, fmt.Errorf("read distances: %w", err)
			}
			l.hubs[v][side] = hubs
			l.dist[v][side] = dist
		}
	}

	expectedCRC := crcReader.hash.Sum32()
	var storedCRC uint32
	if err := binary.Read(r, binary.LittleEndian, &storedCRC); err != nil {
		return nil, fmt.Errorf("read CRC32: %w", err)
	}
	if storedCRC != expectedCRC {
		return nil, fmt.Errorf("CRC32 mismatch: stored=%08x computed=%08x", storedCRC, expectedCRC)
	}
	return l, nil
}

// Zero-copy I/O helpers using unsafe.Slice.

func writeVertexSlice(w io.Writer, s []graph.Vertex) error {
	if len(s) == 0 {
		return nil
	}
	b := unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*4)
	_, err := w.Write(b)
	return err
}

func writeDistanceSlice(w io.Writer, s []graph.Distance) error {
	if len(s) == 0 {
		return nil
	}
	b := unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*4)
	_, err := w.Write(b)
	return err
}

func readVertexSlice(r io.Reader, n int) ([]graph.Vertex, error) {
	if n == 0 {
		return nil, nil
	}
	s := make([]graph.Vertex, n)
	b := unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), n*4)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, err
	}
	return s, nil
}

func readDistanceSlice(r io.Reader, n int) ([]graph.Distance, error) {
	if n == 0 {
		return nil, nil
	}
	s := make([]graph.Distance, n)
	b := unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), n*4)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, err
	}
	return s, nil
}

// CRC32 wrapping writers/readers.

type crc32Writer struct {
	w    io.Writer
	hash crc32Hash
}

type crc32Hash interface {
	Write([]byte) (int, error)
	Sum32() uint32
}

func (cw *crc32Writer) Write(p []byte) (int, error) {
	cw.hash.Write(p)
	return cw.w.Write(p)
}

type crc32Reader struct {
	r    io.Reader
	hash crc32Hash
}

func (cr *crc32Reader) Read(p []byte) (int, error) {
	n, err := cr.r.Read(p)
	if n > 0 {
		cr.hash.Write(p[:n])
	}
	return n, err
}

package render

import (
	"io"

	"github.com/romly/pmesh"
	"gonum.org/v1/gonum/spatial/r3"
)

// ReadAll reads the full contents of a TriangleReader. It does not
// return io.EOF, like io.ReadAll.
func ReadAll(r TriangleReader) ([]r3.Triangle, error) {
	var err error
	var nt int
	result := make([]r3.Triangle, 0, 1<<12)
	buf := make([]r3.Triangle, 1024)
	for {
		nt, err = r.ReadTriangles(buf)
		result = append(result, buf[:nt]...)
		if err != nil {
			break
		}
	}
	if err == io.EOF {
		return result, nil
	}
	return result, err
}

// triangleBuffer is a TriangleReader over a fixed set of triangles.
type triangleBuffer struct {
	buf []r3.Triangle
}

// NewMeshReader returns a TriangleReader over the triangulated faces of m.
func NewMeshReader(m pmesh.Mesh) TriangleReader {
	return &triangleBuffer{buf: m.Triangles()}
}

func (b *triangleBuffer) ReadTriangles(t []r3.Triangle) (int, error) {
	if len(b.buf) == 0 {
		return 0, io.EOF
	}
	n := copy(t, b.buf)
	b.buf = b.buf[n:]
	return n, nil
}

func (b *triangleBuffer) Len() int { return len(b.buf) }

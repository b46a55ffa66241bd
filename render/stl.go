package render

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/chewxy/math32"
	"github.com/romly/pmesh"
	"gonum.org/v1/gonum/spatial/r3"
)

const headerText = "pmesh"

const (
	stlHeaderSize   = 84
	stlTriangleSize = 50
)

// CreateSTL streams the triangles of r to a binary STL file at path.
func CreateSTL(path string, r TriangleReader) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	// The triangle count is unknown until r is drained.
	_, err = file.Seek(stlHeaderSize, io.SeekStart)
	if err != nil {
		return err
	}
	rd := &stlReader{r: r}
	n, err := io.CopyBuffer(file, rd, make([]byte, stlTriangleSize*trianglesInBuffer))
	if err != nil {
		return err
	}
	_, err = file.Seek(0, io.SeekStart)
	if err != nil {
		return err
	}
	header := stlHeader{Count: uint32(n / stlTriangleSize)}
	copy(header.Header[:], headerText)
	if err = binary.Write(file, binary.LittleEndian, &header); err != nil {
		return err
	}
	return file.Close()
}

// WriteSTL writes the triangulated faces of m to w in binary STL format.
func WriteSTL(w io.Writer, m pmesh.Mesh) error {
	if len(m.Faces) == 0 {
		return errors.New("empty mesh")
	}
	tris := m.Triangles()
	header := stlHeader{Count: uint32(len(tris))}
	copy(header.Header[:], headerText)
	if err := binary.Write(w, binary.LittleEndian, &header); err != nil {
		return err
	}
	rd := &stlReader{r: &triangleBuffer{buf: tris}}
	_, err := io.CopyBuffer(w, rd, make([]byte, stlTriangleSize*trianglesInBuffer))
	return err
}

// WriteSTLASCII writes the triangulated faces of m to w as an ASCII STL
// solid called name.
func WriteSTLASCII(w io.Writer, name string, m pmesh.Mesh) error {
	if len(m.Faces) == 0 {
		return errors.New("empty mesh")
	}
	bw := bufio.NewWriter(w)
	name = strings.Join(strings.Fields(name), "_")
	fmt.Fprintf(bw, "solid %s\n", name)
	for _, t := range m.Triangles() {
		n := r3.Unit(t.Normal())
		fmt.Fprintf(bw, "facet normal %e %e %e\n outer loop\n", n.X, n.Y, n.Z)
		for _, v := range t {
			fmt.Fprintf(bw, "  vertex %e %e %e\n", v.X, v.Y, v.Z)
		}
		bw.WriteString(" endloop\nendfacet\n")
	}
	fmt.Fprintf(bw, "endsolid %s\n", name)
	return bw.Flush()
}

// ReadSTL reads a binary or ASCII STL file. Coincident corners are welded
// so the result is an indexed mesh of triangles. Stored normals that
// disagree with the winding are reported together with the mesh.
func ReadSTL(r io.Reader) (pmesh.Mesh, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return pmesh.Mesh{}, err
	}
	var tris []r3.Triangle
	if isBinarySTL(b) {
		tris, err = readBinarySTL(bytes.NewReader(b))
	} else {
		tris, err = readASCIISTL(bytes.NewReader(b))
	}
	if err != nil && !errors.Is(err, errCalculatedNormalMismatch) {
		return pmesh.Mesh{}, err
	}
	var m pmesh.Mesh
	for _, t := range tris {
		m.AddPolygon(t[0], t[1], t[2])
	}
	m.Weld(pmesh.WeldTolerance)
	return m, err
}

func isBinarySTL(b []byte) bool {
	if len(b) < stlHeaderSize {
		return false
	}
	count := binary.LittleEndian.Uint32(b[80:])
	return len(b) == stlHeaderSize+stlTriangleSize*int(count)
}

// stlHeader defines the STL file header.
type stlHeader struct {
	Header [80]uint8
	Count  uint32 // Number of triangles
}

const trianglesInBuffer = 1 << 10

// stlReader encodes the triangles of a TriangleReader as binary STL
// records without the header.
type stlReader struct {
	r   TriangleReader
	buf [trianglesInBuffer]r3.Triangle
}

func (w *stlReader) Read(b []byte) (int, error) {
	ntMax := min(len(b)/stlTriangleSize, len(w.buf))
	if ntMax == 0 {
		return 0, errors.New("stlReader requires at least 50 bytes to write a single triangle")
	}
	var (
		err error
		it  int // Number of triangles written to byte buffer
		nt  int // number of triangles read during ReadTriangles
	)
	for it < ntMax && err == nil {
		nt, err = w.r.ReadTriangles(w.buf[:ntMax-it])
		for _, triangle := range w.buf[:nt] {
			stlTriangleFrom(triangle).put(b[it*stlTriangleSize:])
			it++
		}
	}
	return it * stlTriangleSize, err
}

func readBinarySTL(r io.Reader) (output []r3.Triangle, readErr error) {
	var header stlHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, errors.New("encountered EOF while reading STL header")
		}
		return nil, errors.New("STL header read failed: " + err.Error())
	}
	if header.Count == 0 {
		return nil, errors.New("STL header indicates 0 triangles present")
	}
	var (
		buf            [stlTriangleSize]byte
		d              stlTriangle
		i              int
		normMismatches int
	)
	defer func() {
		if readErr != nil && !errors.Is(readErr, errCalculatedNormalMismatch) {
			readErr = fmt.Errorf("%d/%d STL triangles read: %w", i+1, header.Count, readErr)
		}
	}()
	for i = 0; i < int(header.Count); i++ {
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return nil, err
		}
		d.get(buf[:])
		if err := d.validate(); err != nil {
			if !errors.Is(err, errCalculatedNormalMismatch) {
				return nil, err
			}
			normMismatches++
			if normMismatches > 10_000 {
				return output, fmt.Errorf("got too many normal vector mismatches (%d)", normMismatches)
			}
			readErr = err
		}
		output = append(output, d.toTriangle())
	}
	return output, readErr
}

func readASCIISTL(r io.Reader) ([]r3.Triangle, error) {
	var (
		out    []r3.Triangle
		d      stlTriangle
		corner int
		line   int
	)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line++
		f := strings.Fields(sc.Text())
		if len(f) == 0 {
			continue
		}
		switch f[0] {
		case "facet":
			if len(f) != 5 || f[1] != "normal" {
				return nil, fmt.Errorf("line %d: malformed facet", line)
			}
			n, err := parse3F32(f[2:])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			d.Normal, corner = n, 0
		case "vertex":
			if len(f) != 4 || corner > 2 {
				return nil, fmt.Errorf("line %d: malformed vertex", line)
			}
			v, err := parse3F32(f[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			switch corner {
			case 0:
				d.Vertex1 = v
			case 1:
				d.Vertex2 = v
			case 2:
				d.Vertex3 = v
			}
			corner++
		case "endfacet":
			if corner != 3 {
				return nil, fmt.Errorf("line %d: facet has %d vertices", line, corner)
			}
			if err := d.validate(); err != nil && !errors.Is(err, errCalculatedNormalMismatch) {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			out = append(out, d.toTriangle())
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, errors.New("no facets in STL")
	}
	return out, nil
}

func parse3F32(s []string) (f [3]float32, err error) {
	for i := range f {
		v, err := strconv.ParseFloat(s[i], 32)
		if err != nil {
			return f, err
		}
		f[i] = float32(v)
	}
	return f, nil
}

// stlTriangle defines the triangle data within an STL file.
type stlTriangle struct {
	Normal  [3]float32
	Vertex1 [3]float32
	Vertex2 [3]float32
	Vertex3 [3]float32
	_       uint16 // Attribute byte count
}

func stlTriangleFrom(t r3.Triangle) stlTriangle {
	return stlTriangle{
		Normal:  to3F32(r3.Unit(t.Normal())),
		Vertex1: to3F32(t[0]),
		Vertex2: to3F32(t[1]),
		Vertex3: to3F32(t[2]),
	}
}

func (t stlTriangle) put(b []byte) {
	if len(b) < stlTriangleSize {
		panic("need length 50 to marshal stlTriangle")
	}
	put3F32(b, t.Normal)
	put3F32(b[12:], t.Vertex1)
	put3F32(b[24:], t.Vertex2)
	put3F32(b[36:], t.Vertex3)
	binary.LittleEndian.PutUint16(b[48:], 0)
}

func (t *stlTriangle) get(b []byte) {
	if len(b) < stlTriangleSize {
		panic("need length 50 to unmarshal stlTriangle")
	}
	get3F32(b, &t.Normal)
	get3F32(b[12:], &t.Vertex1)
	get3F32(b[24:], &t.Vertex2)
	get3F32(b[36:], &t.Vertex3)
}

func put3F32(b []byte, f [3]float32) {
	_ = b[11] // early bounds check
	binary.LittleEndian.PutUint32(b, math.Float32bits(f[0]))
	binary.LittleEndian.PutUint32(b[4:], math.Float32bits(f[1]))
	binary.LittleEndian.PutUint32(b[8:], math.Float32bits(f[2]))
}

func get3F32(b []byte, f *[3]float32) {
	_ = b[11] // early bounds check
	f[0] = math.Float32frombits(binary.LittleEndian.Uint32(b))
	f[1] = math.Float32frombits(binary.LittleEndian.Uint32(b[4:]))
	f[2] = math.Float32frombits(binary.LittleEndian.Uint32(b[8:]))
}

func bad3F32(f [3]float32) bool {
	return math32.IsNaN(f[0]) || math32.IsInf(f[0], 0) ||
		math32.IsNaN(f[1]) || math32.IsInf(f[1], 0) ||
		math32.IsNaN(f[2]) || math32.IsInf(f[2], 0)
}

var errCalculatedNormalMismatch = errors.New("triangle normal not approximately equal to calculated normal from vertices")

func (t stlTriangle) validate() error {
	const epsilon = 1e-12
	const normTol = 5e-2
	if bad3F32(t.Normal) {
		return errors.New("inf/NaN STL triangle normal")
	}
	if bad3F32(t.Vertex1) || bad3F32(t.Vertex2) || bad3F32(t.Vertex3) {
		return errors.New("inf/NaN STL triangle vertex")
	}
	if t.degenerate(epsilon) {
		return errors.New("triangle is degenerate")
	}
	// Some exporters write zero normals.
	if t.Normal == [3]float32{} {
		return nil
	}
	calc := t.normalFromVertices()
	if !equalWithin3F32(calc, t.Normal, normTol) {
		return errCalculatedNormalMismatch
	}
	return nil
}

func to3F32(v r3.Vec) [3]float32 {
	return [3]float32{float32(v.X), float32(v.Y), float32(v.Z)}
}

func r3From3F32(f [3]float32) r3.Vec {
	return r3.Vec{X: float64(f[0]), Y: float64(f[1]), Z: float64(f[2])}
}

func (t stlTriangle) normalFromVertices() [3]float32 {
	v1 := r3From3F32(t.Vertex1)
	e1 := r3.Sub(r3From3F32(t.Vertex2), v1)
	e2 := r3.Sub(r3From3F32(t.Vertex3), v1)
	return to3F32(r3.Unit(r3.Cross(e1, e2)))
}

// degenerate reports whether two corners coincide.
func (t stlTriangle) degenerate(tol float32) bool {
	return equalWithin3F32(t.Vertex1, t.Vertex2, tol) ||
		equalWithin3F32(t.Vertex2, t.Vertex3, tol) ||
		equalWithin3F32(t.Vertex3, t.Vertex1, tol)
}

func equalWithin3F32(a, b [3]float32, tol float32) bool {
	return math32.Abs(a[0]-b[0]) <= tol &&
		math32.Abs(a[1]-b[1]) <= tol &&
		math32.Abs(a[2]-b[2]) <= tol
}

func (t stlTriangle) toTriangle() r3.Triangle {
	return r3.Triangle{
		r3From3F32(t.Vertex1),
		r3From3F32(t.Vertex2),
		r3From3F32(t.Vertex3),
	}
}

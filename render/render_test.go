package render

import (
	"bytes"
	"errors"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/romly/pmesh"
	"github.com/romly/pmesh/internal/d2"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/plot/cmpimg"
)

func box() pmesh.Mesh {
	return pmesh.BoxMesh(r3.Vec{X: 2, Y: 2, Z: 2}, r3.Vec{Z: 1})
}

func TestExportPath(t *testing.T) {
	for _, test := range []struct {
		stem, name string
		want       string
		err        error
	}{
		{stem: "bracket", name: "Pan Head Screw M3x10mm", want: "bracket - Pan Head Screw M3x10mm.stl"},
		{stem: "bracket.yaml", name: "Nut M3", want: "bracket - Nut M3.stl"},
		{stem: "a", name: "", want: "a - Mesh.stl"},
		{stem: "", name: "Nut M3", err: ErrNoStem},
		{stem: "  ", name: "Nut M3", err: ErrNoStem},
	} {
		got, err := ExportPath(test.stem, test.name)
		if !errors.Is(err, test.err) {
			t.Errorf("ExportPath(%q, %q) error %v, want %v", test.stem, test.name, err, test.err)
			continue
		}
		if got != test.want {
			t.Errorf("ExportPath(%q, %q) = %q, want %q", test.stem, test.name, got, test.want)
		}
	}
}

func TestSTLBinary(t *testing.T) {
	m := box()
	var b bytes.Buffer
	if err := WriteSTL(&b, m); err != nil {
		t.Fatal(err)
	}
	if b.Len() != stlHeaderSize+12*stlTriangleSize {
		t.Fatalf("binary STL size %d", b.Len())
	}
	got, err := ReadSTL(&b)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Vertices) != 8 || len(got.Faces) != 12 {
		t.Errorf("read back %d vertices %d faces", len(got.Vertices), len(got.Faces))
	}
	if v := math.Abs(got.Volume()); math.Abs(v-8) > 1e-4 {
		t.Errorf("volume %g, want 8", v)
	}
}

func TestSTLASCII(t *testing.T) {
	m := box()
	var b bytes.Buffer
	if err := WriteSTLASCII(&b, "Test Box", m); err != nil {
		t.Fatal(err)
	}
	text := b.String()
	if !strings.HasPrefix(text, "solid Test_Box\n") || !strings.HasSuffix(text, "endsolid Test_Box\n") {
		t.Errorf("unexpected solid name lines:\n%.40s", text)
	}
	if n := strings.Count(text, "endfacet"); n != 12 {
		t.Errorf("got %d facets", n)
	}
	got, err := ReadSTL(&b)
	if err != nil {
		t.Fatal(err)
	}
	if v := math.Abs(got.Volume()); math.Abs(v-8) > 1e-4 {
		t.Errorf("volume %g, want 8", v)
	}
}

func TestSTLReadErrors(t *testing.T) {
	for _, in := range []string{
		"",
		"solid x\nendsolid x\n",
		"solid x\nfacet normal 0 0 1\n outer loop\n  vertex 0 0 0\n endloop\nendfacet\n",
		"solid x\nfacet normal 0 0 1\n outer loop\n  vertex 0 0 zero\n",
	} {
		if _, err := ReadSTL(strings.NewReader(in)); err == nil {
			t.Errorf("ReadSTL(%q) succeeded", in)
		}
	}
}

func TestCreateSTL(t *testing.T) {
	m := box()
	path := filepath.Join(t.TempDir(), "box.stl")
	if err := CreateSTL(path, NewMeshReader(m)); err != nil {
		t.Fatal(err)
	}
	file, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var b bytes.Buffer
	if err := WriteSTL(&b, m); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(file, b.Bytes()) {
		t.Fatal("WriteSTL and CreateSTL output mismatch")
	}
}

func TestReadAll(t *testing.T) {
	var m pmesh.Mesh
	for i := 0; i < 1500; i++ {
		m.Append(pmesh.BoxMesh(r3.Vec{X: 1, Y: 1, Z: 1}, r3.Vec{X: float64(2 * i)}))
	}
	tris, err := ReadAll(NewMeshReader(m))
	if err != nil {
		t.Fatal(err)
	}
	if len(tris) != 1500*12 {
		t.Errorf("got %d triangles", len(tris))
	}
}

func TestExporter(t *testing.T) {
	dir := t.TempDir()
	for _, format := range []Format{Binary, ASCII} {
		e := Exporter{Dir: filepath.Join(dir, "out"), Stem: "proj", Format: format}
		path, err := e.Export("Cube", box())
		if err != nil {
			t.Fatal(err)
		}
		if filepath.Base(path) != "proj - Cube.stl" {
			t.Errorf("path %s", path)
		}
		fp, err := os.Open(path)
		if err != nil {
			t.Fatal(err)
		}
		m, err := ReadSTL(fp)
		fp.Close()
		if err != nil {
			t.Fatal(err)
		}
		if len(m.Faces) != 12 {
			t.Errorf("format %d: %d faces", format, len(m.Faces))
		}
	}
	_, err := (&Exporter{Dir: dir}).Export("Cube", box())
	if !errors.Is(err, ErrNoStem) {
		t.Errorf("want ErrNoStem, got %v", err)
	}
}

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat("ASCII"); err != nil || f != ASCII {
		t.Errorf("ParseFormat(ASCII) = %v, %v", f, err)
	}
	if _, err := ParseFormat("obj"); err == nil {
		t.Error("want error for obj")
	}
}

func encoded(t *testing.T, m pmesh.Mesh, format string) []byte {
	t.Helper()
	view := DefaultView()
	view.Width, view.Height = 160, 120
	img, err := Preview(m, view)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 160 || b.Dy() != 120 {
		t.Fatalf("image size %v", b)
	}
	var buf bytes.Buffer
	if err := EncodeImage(&buf, img, format); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestPreview(t *testing.T) {
	a := encoded(t, box(), "png")
	b := encoded(t, box(), "png")
	equal, err := cmpimg.EqualApprox("png", a, b, 0.01)
	if err != nil {
		t.Fatal(err)
	}
	if !equal {
		t.Error("preview is not deterministic")
	}
	sphere, _ := pmesh.SphereSolid{Radius: 1}.Mesh(24)
	c := encoded(t, sphere, "png")
	equal, err = cmpimg.EqualApprox("png", a, c, 0)
	if err != nil {
		t.Fatal(err)
	}
	if equal {
		t.Error("box and sphere previews match")
	}
	if w := encoded(t, box(), "webp"); !bytes.HasPrefix(w, []byte("RIFF")) {
		t.Error("webp output lacks RIFF header")
	}
	if _, err := Preview(pmesh.Mesh{}, DefaultView()); err == nil {
		t.Error("want error for empty mesh")
	}
}

func square() d2.Set {
	return d2.Set{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 5}, {X: 0, Y: 5}}
}

func TestWriteSVG(t *testing.T) {
	var b bytes.Buffer
	if err := WriteSVG(&b, []d2.Set{square()}, true); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(b.String(), "<polygon") {
		t.Error("closed profile should be a polygon")
	}
	b.Reset()
	curve := d2.Set{{}, {X: 1, Y: 0.1}, {X: 2, Y: 0.5}}
	if err := WriteSVG(&b, []d2.Set{curve}, false); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(b.String(), "<polyline") {
		t.Error("open profile should be a polyline")
	}
	if err := WriteSVG(&b, nil, true); err == nil {
		t.Error("want error for empty profile")
	}
}

func TestWriteDXF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "square.dxf")
	if err := WriteDXF(path, []d2.Set{square()}, true); err != nil {
		t.Fatal(err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := regexp.MustCompile(`(?m)^LINE\r?$`).FindAllIndex(b, -1)
	if len(lines) < 4 {
		t.Errorf("got %d LINE entities, want 4", len(lines))
	}
}

func TestSegments(t *testing.T) {
	var n int
	count := func(a, b r2.Vec) error { n++; return nil }
	segments(square(), true, count)
	if n != 4 {
		t.Errorf("closed square: %d segments", n)
	}
	n = 0
	segments(square(), false, count)
	if n != 3 {
		t.Errorf("open square: %d segments", n)
	}
}

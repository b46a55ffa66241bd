package render

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/fogleman/fauxgl"
	"github.com/nfnt/resize"
	"github.com/romly/pmesh"
	"github.com/romly/pmesh/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// View configures the preview camera. The mesh is scaled into a bi-unit
// cube centered on the origin before it is drawn.
type View struct {
	// what position (point) to look at
	LookAt r3.Vec
	// which way is up (direction)
	Up r3.Vec
	// where the camera/eye located at (point)
	Eye       r3.Vec
	Near, Far float64
	// Width and Height of the output in pixels.
	Width, Height int
	// Supersampling factor. The image is drawn Scale times larger and
	// downsampled for antialiasing.
	Scale int
	Color string
}

// DefaultView looks at the part from the +X+Y+Z octant with Z up.
func DefaultView() View {
	return View{
		Up:     r3.Vec{Z: 1},
		Eye:    d3.Elem(2.4),
		Near:   1,
		Far:    10,
		Width:  800,
		Height: 600,
		Scale:  2,
		Color:  "#468966",
	}
}

// Preview draws m with a Phong shader.
func Preview(m pmesh.Mesh, view View) (image.Image, error) {
	if len(m.Faces) == 0 {
		return nil, fmt.Errorf("preview: empty mesh")
	}
	if view.Width <= 0 || view.Height <= 0 {
		return nil, fmt.Errorf("preview: bad size %dx%d", view.Width, view.Height)
	}
	scale := max(view.Scale, 1)
	tris := m.Triangles()
	ft := make([]*fauxgl.Triangle, 0, len(tris))
	for _, t := range tris {
		if t.IsDegenerate(1e-12) {
			continue
		}
		ft = append(ft, fauxgl.NewTriangleForPoints(fauxV(t[0]), fauxV(t[1]), fauxV(t[2])))
	}
	mesh := fauxgl.NewTriangleMesh(ft)
	// fit mesh in a bi-unit cube centered at the origin
	mesh.BiUnitCube()

	var (
		eye    = fauxV(view.Eye)
		center = fauxV(view.LookAt)
		up     = fauxV(view.Up)
		light  = fauxgl.V(-0.75, 1, 0.25).Normalize()
		color  = fauxgl.HexColor(view.Color)
	)
	const fovy = 30 // vertical field of view in degrees
	context := fauxgl.NewContext(view.Width*scale, view.Height*scale)
	context.ClearColorBufferWith(fauxgl.HexColor("#FFF8E3"))
	aspect := float64(view.Width) / float64(view.Height)
	matrix := fauxgl.LookAt(eye, center, up).Perspective(fovy, aspect, view.Near, view.Far)
	shader := fauxgl.NewPhongShader(matrix, light, eye)
	shader.ObjectColor = color
	context.Shader = shader
	context.DrawMesh(mesh)
	img := context.Image()
	if scale > 1 {
		img = resize.Resize(uint(view.Width), uint(view.Height), img, resize.Bilinear)
	}
	return img, nil
}

// EncodeImage writes img as "png" or "webp".
func EncodeImage(w io.Writer, img image.Image, format string) error {
	switch strings.ToLower(strings.TrimPrefix(format, ".")) {
	case "png":
		return png.Encode(w, img)
	case "webp":
		return nativewebp.Encode(w, img, nil)
	}
	return fmt.Errorf("unknown image format %q", format)
}

// SavePreview writes img to path. The extension picks the format.
func SavePreview(path string, img image.Image) error {
	fp, err := os.Create(path)
	if err != nil {
		return err
	}
	err = EncodeImage(fp, img, filepath.Ext(path))
	if cerr := fp.Close(); err == nil {
		err = cerr
	}
	return err
}

func fauxV(v r3.Vec) fauxgl.Vector { return fauxgl.V(v.X, v.Y, v.Z) }

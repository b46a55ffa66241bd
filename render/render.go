// Package render writes finished meshes to STL files, draws preview images
// of them and exports planar profiles as DXF and SVG.
package render

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/romly/pmesh"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r3"
)

// TriangleReader streams the triangles of a model. ReadTriangles returns
// io.EOF once every triangle has been read.
type TriangleReader interface {
	ReadTriangles(t []r3.Triangle) (int, error)
}

// ErrNoStem is returned when an export is requested before the output
// file stem is known.
var ErrNoStem = errors.New("no file stem: save the project before exporting")

// ExportPath returns the STL file name "<stem> - <name>.stl".
func ExportPath(stem, name string) (string, error) {
	stem = strings.TrimSuffix(stem, filepath.Ext(stem))
	if strings.TrimSpace(stem) == "" {
		return "", ErrNoStem
	}
	name = strings.ReplaceAll(name, string(filepath.Separator), "_")
	if name == "" {
		name = "Mesh"
	}
	return stem + " - " + name + ".stl", nil
}

// Format selects the STL encoding.
type Format int

const (
	Binary Format = iota
	ASCII
)

// ParseFormat accepts "binary" and "ascii".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "binary", "bin", "":
		return Binary, nil
	case "ascii", "text":
		return ASCII, nil
	}
	return Binary, fmt.Errorf("unknown STL format %q", s)
}

// Exporter writes meshes next to a project file.
type Exporter struct {
	// Dir is the output directory. Empty means the working directory.
	Dir    string
	Stem   string
	Format Format
	Log    *zap.Logger
}

// Export writes m to Dir/ExportPath(Stem, name) and returns the path.
func (e *Exporter) Export(name string, m pmesh.Mesh) (string, error) {
	file, err := ExportPath(e.Stem, name)
	if err != nil {
		return "", err
	}
	if e.Dir != "" {
		if err := os.MkdirAll(e.Dir, 0o755); err != nil {
			return "", err
		}
		file = filepath.Join(e.Dir, file)
	}
	fp, err := os.Create(file)
	if err != nil {
		return "", err
	}
	switch e.Format {
	case ASCII:
		err = WriteSTLASCII(fp, name, m)
	default:
		err = WriteSTL(fp, m)
	}
	if cerr := fp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return "", fmt.Errorf("writing %s: %w", file, err)
	}
	if e.Log != nil {
		e.Log.Info("exported", zap.String("part", name), zap.String("path", file), zap.Int("faces", len(m.Faces)))
	}
	return file, nil
}

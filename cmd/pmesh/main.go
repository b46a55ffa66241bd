// pmesh builds parametric parts and writes them as STL files.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/romly/pmesh"
	"github.com/romly/pmesh/csg"
	"github.com/romly/pmesh/form3/obj3"
	"github.com/romly/pmesh/helpers/matter"
	"github.com/romly/pmesh/internal/config"
	"github.com/romly/pmesh/internal/logger"
	"github.com/romly/pmesh/render"
	"github.com/romly/pmesh/script"
	"go.uber.org/zap"
)

func main() {
	if len(os.Args) < 2 {
		printUsage(os.Stderr)
		os.Exit(1)
	}
	command, args := os.Args[1], os.Args[2:]

	var err error
	switch command {
	case "list", "ls":
		cmdList(os.Stdout)
	case "build", "b":
		err = cmdBuild(args)
	case "run", "r":
		err = cmdRun(args)
	case "profile", "p":
		err = cmdProfile(args)
	case "help", "-h", "--help":
		printUsage(os.Stdout)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage(os.Stderr)
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `pmesh - parametric mesh parts

Usage:
  pmesh <command> [options]

Commands:
  list                          List part and profile names
  build [options] <part>...     Build catalog parts and export them
  run [options] <recipe.zy>     Run a recipe and export the parts it emits
  profile [options] <name> <out.dxf|out.svg>
                                Write the outline of a part

Options are read from ./pmesh.yaml or -config and may be overridden:
  -o dir  -stem name  -format binary|ascii  -cells n  -preview  -debug  -log file

Examples:
  pmesh build -stem bracket screw nut
  pmesh run -preview plate.zy
  pmesh profile reuleaux_polygon outline.svg`)
}

func cmdList(w io.Writer) {
	fmt.Fprintln(w, "Parts:")
	for _, name := range obj3.Parts() {
		fmt.Fprintf(w, "  %s\n", name)
	}
	fmt.Fprintln(w, "Profiles:")
	for _, name := range obj3.Profiles() {
		fmt.Fprintf(w, "  %s\n", name)
	}
}

// app is the state shared by the commands that export parts.
type app struct {
	cfg *config.Config
	log *zap.Logger
}

func setup(name string, args []string) (*app, *flag.FlagSet, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	f := config.RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	cfg, err := config.Load(f)
	if err != nil {
		return nil, nil, err
	}
	log, err := logger.Console(cfg.Logging.Level, cfg.Logging.File)
	if err != nil {
		return nil, nil, err
	}
	return &app{cfg: cfg, log: log}, fs, nil
}

func cmdBuild(args []string) error {
	a, fs, err := setup("build", args)
	if err != nil {
		return err
	}
	defer a.log.Sync()
	if fs.NArg() == 0 {
		return errors.New("usage: pmesh build [options] <part>...")
	}
	parts := make([]*pmesh.Part, 0, fs.NArg())
	for _, name := range fs.Args() {
		p, err := obj3.Build(name, a.cfg.Part(name))
		if err != nil {
			return err
		}
		parts = append(parts, p)
	}
	if a.cfg.Output.Stem == "" {
		a.cfg.Output.Stem = fs.Arg(0)
	}
	return a.export(parts)
}

func cmdRun(args []string) error {
	a, fs, err := setup("run", args)
	if err != nil {
		return err
	}
	defer a.log.Sync()
	if fs.NArg() != 1 {
		return errors.New("usage: pmesh run [options] <recipe.zy>")
	}
	src, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	parts, err := script.New(a.log).Run(ctx, string(src))
	if err != nil {
		return fmt.Errorf("%s: %w", fs.Arg(0), err)
	}
	if len(parts) == 0 {
		return fmt.Errorf("%s: recipe emitted no parts", fs.Arg(0))
	}
	if a.cfg.Output.Stem == "" {
		a.cfg.Output.Stem = filepath.Base(fs.Arg(0))
	}
	return a.export(parts)
}

// export finishes and writes every part. Names are made unique so parts
// sharing a name do not overwrite each other.
func (a *app) export(parts []*pmesh.Part) error {
	format, err := render.ParseFormat(a.cfg.Output.Format)
	if err != nil {
		return err
	}
	ex := &render.Exporter{Dir: a.cfg.Output.Dir, Stem: a.cfg.Output.Stem, Format: format, Log: a.log}
	r := csg.New(a.cfg.CSG.Cells, a.log)
	names := uniqueNames(parts)
	for i, p := range parts {
		start := time.Now()
		m, err := r.Apply(p)
		if err != nil {
			return fmt.Errorf("%s: %w", p.Name, err)
		}
		a.log.Info("built",
			zap.String("part", names[i]),
			zap.Int("vertices", len(m.Vertices)),
			zap.Int("faces", len(m.Faces)),
			zap.Duration("elapsed", time.Since(start)),
		)
		if mat, ok := matter.Lookup(a.cfg.Output.Material); ok {
			mat.Scale(&m)
		}
		path, err := ex.Export(names[i], m)
		if err != nil {
			return err
		}
		if a.cfg.Preview.Enabled {
			if err := a.preview(path, m); err != nil {
				return fmt.Errorf("%s preview: %w", names[i], err)
			}
		}
	}
	return nil
}

func (a *app) preview(stlPath string, m pmesh.Mesh) error {
	view := render.DefaultView()
	view.Width, view.Height = a.cfg.Preview.Width, a.cfg.Preview.Height
	img, err := render.Preview(m, view)
	if err != nil {
		return err
	}
	path := strings.TrimSuffix(stlPath, filepath.Ext(stlPath)) + "." + strings.ToLower(a.cfg.Preview.Format)
	if err := render.SavePreview(path, img); err != nil {
		return err
	}
	a.log.Debug("preview written", zap.String("path", path))
	return nil
}

func uniqueNames(parts []*pmesh.Part) []string {
	seen := make(map[string]int)
	names := make([]string, len(parts))
	for i, p := range parts {
		names[i] = p.Name
		if n := seen[p.Name]; n > 0 {
			names[i] = fmt.Sprintf("%s %d", p.Name, n+1)
		}
		seen[p.Name]++
	}
	return names
}

func cmdProfile(args []string) error {
	a, fs, err := setup("profile", args)
	if err != nil {
		return err
	}
	defer a.log.Sync()
	if fs.NArg() != 2 {
		return errors.New("usage: pmesh profile [options] <name> <out.dxf|out.svg>")
	}
	name, out := fs.Arg(0), fs.Arg(1)
	sets, err := obj3.Profile(name, a.cfg.Part(name))
	if err != nil {
		return err
	}
	closed := obj3.ClosedProfile(name)
	if a.cfg.Output.Dir != "" && !filepath.IsAbs(out) {
		out = filepath.Join(a.cfg.Output.Dir, out)
	}
	switch strings.ToLower(filepath.Ext(out)) {
	case ".dxf":
		err = render.WriteDXF(out, sets, closed)
	case ".svg":
		var fp *os.File
		if fp, err = os.Create(out); err != nil {
			return err
		}
		err = render.WriteSVG(fp, sets, closed)
		if cerr := fp.Close(); err == nil {
			err = cerr
		}
	default:
		return fmt.Errorf("%s: want a .dxf or .svg file", out)
	}
	if err != nil {
		return err
	}
	a.log.Info("profile written", zap.String("profile", name), zap.String("path", out), zap.Int("outlines", len(sets)))
	return nil
}

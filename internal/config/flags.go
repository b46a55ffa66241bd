package config

import "flag"

// Flags are command line overrides. Zero values leave the
// configuration unchanged.
type Flags struct {
	Config  string
	Dir     string
	Stem    string
	Format  string
	Cells   int
	Preview bool
	Debug   bool
	LogFile string
}

// RegisterFlags defines the configuration flags on fs.
func RegisterFlags(fs *flag.FlagSet) *Flags {
	f := &Flags{}
	fs.StringVar(&f.Config, "config", "", "Path to config file")
	fs.StringVar(&f.Dir, "o", "", "Output directory")
	fs.StringVar(&f.Stem, "stem", "", "Project name prefixed to exported files")
	fs.StringVar(&f.Format, "format", "", "STL format: binary or ascii")
	fs.IntVar(&f.Cells, "cells", 0, "Marching cubes cells along the longest side for boolean parts")
	fs.BoolVar(&f.Preview, "preview", false, "Also write a preview image")
	fs.BoolVar(&f.Debug, "debug", false, "Enable debug logging")
	fs.StringVar(&f.LogFile, "log", "", "Also log to this file")
	return f
}

// apply applies flag overrides to the config.
func (f *Flags) apply(cfg *Config) {
	if f == nil {
		return
	}
	if f.Dir != "" {
		cfg.Output.Dir = f.Dir
	}
	if f.Stem != "" {
		cfg.Output.Stem = f.Stem
	}
	if f.Format != "" {
		cfg.Output.Format = f.Format
	}
	if f.Cells > 0 {
		cfg.CSG.Cells = f.Cells
	}
	if f.Preview {
		cfg.Preview.Enabled = true
	}
	if f.Debug {
		cfg.Logging.Level = "debug"
	}
	if f.LogFile != "" {
		cfg.Logging.File.Path = f.LogFile
	}
}

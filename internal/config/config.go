// Package config loads the settings of the pmesh command.
package config

import (
	"github.com/romly/pmesh/internal/logger"
	"gopkg.in/yaml.v3"
)

// Config holds all settings.
type Config struct {
	Output  OutputConfig  `yaml:"output"`
	CSG     CSGConfig     `yaml:"csg"`
	Preview PreviewConfig `yaml:"preview"`
	Logging LoggingConfig `yaml:"logging"`
	// Parts maps a part name, such as "screw", to parameter overrides
	// decoded by that part's builder.
	Parts map[string]yaml.Node `yaml:"parts"`
}

// OutputConfig controls where and how meshes are written.
type OutputConfig struct {
	Dir string `yaml:"dir"`
	// Stem is the project name written files are prefixed with.
	Stem   string `yaml:"stem"`
	Format string `yaml:"format"` // binary or ascii
	// Material, when set, scales meshes up to compensate for the
	// shrinkage of that printing material, such as "PLA".
	Material string `yaml:"material"`
}

// CSGConfig controls the boolean backend.
type CSGConfig struct {
	Cells int `yaml:"cells"`
}

// PreviewConfig controls preview images.
type PreviewConfig struct {
	Enabled bool   `yaml:"enabled"`
	Width   int    `yaml:"width"`
	Height  int    `yaml:"height"`
	Format  string `yaml:"format"` // png or webp
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string            `yaml:"level"`
	File  logger.FileConfig `yaml:"file"`
}

// Default returns the configuration used when no file or flag says otherwise.
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			Dir:    ".",
			Format: "binary",
		},
		CSG: CSGConfig{Cells: 200},
		Preview: PreviewConfig{
			Width:  800,
			Height: 600,
			Format: "png",
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  logger.DefaultFileConfig(""),
		},
	}
}

// Part returns the parameter overrides for the named part, or nil.
func (c *Config) Part(name string) *yaml.Node {
	n, ok := c.Parts[name]
	if !ok {
		return nil
	}
	return &n
}

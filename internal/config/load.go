package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/romly/pmesh/helpers/matter"
	"gopkg.in/yaml.v3"
)

// Load loads configuration with priority: defaults < file < flags. The
// file is f.Config, or ./pmesh.yaml when that exists. When the file
// names no stem, the file's own name is used.
func Load(f *Flags) (*Config, error) {
	cfg := Default()
	path := ""
	if f != nil {
		path = f.Config
	}
	if path == "" {
		if _, err := os.Stat("pmesh.yaml"); err == nil {
			path = "pmesh.yaml"
		}
	}
	if path != "" {
		if err := loadFromFile(cfg, path); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", path, err)
		}
		if cfg.Output.Stem == "" {
			base := filepath.Base(path)
			cfg.Output.Stem = strings.TrimSuffix(base, filepath.Ext(base))
		}
	}
	f.apply(cfg)
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadFromFile loads config from a YAML file, merging with existing values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

func (c *Config) validate() error {
	switch strings.ToLower(c.Output.Format) {
	case "binary", "ascii":
	default:
		return fmt.Errorf("output format %q: want binary or ascii", c.Output.Format)
	}
	switch strings.ToLower(c.Preview.Format) {
	case "png", "webp":
	default:
		return fmt.Errorf("preview format %q: want png or webp", c.Preview.Format)
	}
	if c.Output.Material != "" {
		if _, ok := matter.Lookup(c.Output.Material); !ok {
			return fmt.Errorf("unknown material %q", c.Output.Material)
		}
	}
	if c.CSG.Cells < 8 {
		return errors.New("csg cells must be at least 8")
	}
	if c.Preview.Width <= 0 || c.Preview.Height <= 0 {
		return errors.New("preview size must be positive")
	}
	return nil
}

// Package config loads the engine settings shared by the weft commands
// from TOML or YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"weft/pkg/geom"
	"weft/pkg/layout"
	"weft/pkg/text"
)

// Layout backends.
const (
	BackendNative = "native"
	BackendFlex   = "flex"
)

// Output formats.
const (
	OutputPNG  = "png"
	OutputSVG  = "svg"
	OutputTerm = "term"
)

// Config is the weft configuration file.
type Config struct {
	// Backend is "native" for the built-in flow algorithm or "flex" to
	// hand flow containers to the flexbox solver.
	Backend  string   `toml:"backend" yaml:"backend"`
	Output   string   `toml:"output" yaml:"output"`
	Viewport Viewport `toml:"viewport" yaml:"viewport"`
	Capacity Capacity `toml:"capacity" yaml:"capacity"`
	Fonts    Fonts    `toml:"fonts" yaml:"fonts"`

	Sheet  string `toml:"sheet" yaml:"sheet"`   // style sheet file
	Script string `toml:"script" yaml:"script"` // style script file

	Debug bool `toml:"debug" yaml:"debug"`
}

type Viewport struct {
	Width  float64 `toml:"width" yaml:"width"`
	Height float64 `toml:"height" yaml:"height"`
}

// Capacity mirrors layout.Capacity. Zero fields take the engine default.
type Capacity struct {
	Items          int `toml:"items" yaml:"items"`
	Containers     int `toml:"containers" yaml:"containers"`
	Cells          int `toml:"cells" yaml:"cells"`
	Tape           int `toml:"tape" yaml:"tape"`
	Styles         int `toml:"styles" yaml:"styles"`
	SolverNodes    int `toml:"solver_nodes" yaml:"solver_nodes"`
	QueueBlockSize int `toml:"queue_block_size" yaml:"queue_block_size"`
	QueueMaxBlocks int `toml:"queue_max_blocks" yaml:"queue_max_blocks"`
}

// Fonts names font files. Dir fills in any file left empty with the
// conventional names inside it.
type Fonts struct {
	Dir      string `toml:"dir" yaml:"dir"`
	Regular  string `toml:"regular" yaml:"regular"`
	Bold     string `toml:"bold" yaml:"bold"`
	Mono     string `toml:"mono" yaml:"mono"`
	MonoBold string `toml:"mono_bold" yaml:"mono_bold"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Backend:  BackendNative,
		Output:   OutputPNG,
		Viewport: Viewport{Width: 800, Height: 600},
	}
}

// Load reads path, picking the decoder from its extension (.toml, .yaml
// or .yml), and validates the result. Fields missing from the file keep
// their defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read %s: %w", path, err)
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = toml.Unmarshal(data, &cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		return cfg, fmt.Errorf("config %s: unknown format %q", path, ext)
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path in the format named by its extension.
func Save(cfg Config, path string) error {
	var (
		data []byte
		err  error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		data, err = toml.Marshal(cfg)
	case ".yaml", ".yml":
		data, err = yaml.Marshal(cfg)
	default:
		return fmt.Errorf("config %s: unknown format %q", path, ext)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// Validate reports every invalid field.
func (c Config) Validate() error {
	var errs []error
	switch c.Backend {
	case BackendNative, BackendFlex:
	default:
		errs = append(errs, fmt.Errorf("backend %q is not %q or %q", c.Backend, BackendNative, BackendFlex))
	}
	switch c.Output {
	case OutputPNG, OutputSVG, OutputTerm:
	default:
		errs = append(errs, fmt.Errorf("output %q is not png, svg or term", c.Output))
	}
	if c.Viewport.Width <= 0 || c.Viewport.Height <= 0 {
		errs = append(errs, fmt.Errorf("viewport %gx%g must be positive", c.Viewport.Width, c.Viewport.Height))
	}
	cp := c.Capacity
	for _, f := range []struct {
		name string
		v    int
	}{
		{"items", cp.Items},
		{"containers", cp.Containers},
		{"cells", cp.Cells},
		{"tape", cp.Tape},
		{"styles", cp.Styles},
		{"solver_nodes", cp.SolverNodes},
		{"queue_block_size", cp.QueueBlockSize},
		{"queue_max_blocks", cp.QueueMaxBlocks},
	} {
		if f.v < 0 {
			errs = append(errs, fmt.Errorf("capacity %s is negative", f.name))
		}
	}
	return errors.Join(errs...)
}

// ViewportRect returns the root rectangle.
func (c Config) ViewportRect() geom.Rect {
	return geom.R(0, 0, c.Viewport.Width, c.Viewport.Height)
}

// LayoutCapacity converts the capacity section for layout.Options.
func (c Config) LayoutCapacity() layout.Capacity {
	return layout.Capacity(c.Capacity)
}

// FontConfig resolves the font section.
func (c Config) FontConfig() text.FontConfig {
	fc := text.FontConfig{
		Regular:  c.Fonts.Regular,
		Bold:     c.Fonts.Bold,
		Mono:     c.Fonts.Mono,
		MonoBold: c.Fonts.MonoBold,
	}
	if c.Fonts.Dir == "" {
		return fc
	}
	def := text.FontConfigIn(c.Fonts.Dir)
	for _, p := range []struct {
		dst *string
		def string
	}{
		{&fc.Regular, def.Regular},
		{&fc.Bold, def.Bold},
		{&fc.Mono, def.Mono},
		{&fc.MonoBold, def.MonoBold},
	} {
		if *p.dst == "" {
			*p.dst = p.def
		}
	}
	return fc
}

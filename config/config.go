// Package config loads the viewer settings from a TOML file.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// DefaultPath is used when no --config flag is given.
const DefaultPath = "shoeview.toml"

type Window struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
}

type Model struct {
	// Path to a .gltf/.glb file or a directory of .ply part files. Empty
	// selects the built-in demo shoe.
	Path  string `toml:"path"`
	Watch bool   `toml:"watch"`
}

type Camera struct {
	Distance    float64 `toml:"distance"`
	MinDistance float64 `toml:"min_distance"`
	MaxDistance float64 `toml:"max_distance"`
	Yaw         float64 `toml:"yaw"`
	Pitch       float64 `toml:"pitch"`
	Damping     float64 `toml:"damping"`
	AutoRotate  bool    `toml:"auto_rotate"`
}

type Scene struct {
	Background string `toml:"background"`
	Highlight  string `toml:"highlight"`
}

type Swatch struct {
	Name  string `toml:"name"`
	Color string `toml:"color"`
}

// Fabric is a selectable texture. Path wins over Pattern when both are set.
type Fabric struct {
	Name    string  `toml:"name"`
	Path    string  `toml:"path"`
	Pattern string  `toml:"pattern"`
	Tint    string  `toml:"tint"`
	Scale   float64 `toml:"scale"`
}

type Config struct {
	LogLevel string            `toml:"log_level"`
	Window   Window            `toml:"window"`
	Model    Model             `toml:"model"`
	Camera   Camera            `toml:"camera"`
	Scene    Scene             `toml:"scene"`
	Swatches []Swatch          `toml:"swatch"`
	Fabrics  []Fabric          `toml:"fabric"`
	Parts    map[string]string `toml:"parts"`
}

func Default() Config {
	return Config{
		LogLevel: "info",
		Window: Window{
			Width:  960,
			Height: 640,
			Title:  "Shoe configurator",
		},
		Model: Model{Watch: true},
		Camera: Camera{
			Distance:    420,
			MinDistance: 220,
			MaxDistance: 1000,
			Yaw:         0.6,
			Pitch:       0.35,
			Damping:     0.15,
		},
		Scene: Scene{
			Background: "#f1f1f1",
			Highlight:  "#444444",
		},
		Swatches: []Swatch{
			{Name: "white", Color: "#ffffff"},
			{Name: "black", Color: "#1d1d1d"},
			{Name: "red", Color: "#c0392b"},
			{Name: "orange", Color: "#e67e22"},
			{Name: "yellow", Color: "#f1c40f"},
			{Name: "green", Color: "#27ae60"},
			{Name: "blue", Color: "#2980b9"},
			{Name: "purple", Color: "#8e44ad"},
		},
		Fabrics: []Fabric{
			{Name: "canvas", Pattern: "weave", Tint: "#ece6d8", Scale: 8},
			{Name: "denim", Pattern: "twill", Tint: "#3b5b8c", Scale: 10},
			{Name: "knit", Pattern: "knit", Tint: "#d9d9d9", Scale: 12},
		},
	}
}

// Load reads path over the defaults. A missing file yields the defaults and
// no error; a malformed one is an error.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	// Lists in the file replace the default lists instead of extending them.
	cfg.Swatches, cfg.Fabrics = nil, nil
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parse config %s: %w", path, err)
	}
	def := Default()
	if cfg.Swatches == nil {
		cfg.Swatches = def.Swatches
	}
	if cfg.Fabrics == nil {
		cfg.Fabrics = def.Fabrics
	}
	if err := cfg.Validate(); err != nil {
		return Default(), fmt.Errorf("config %s: %w", path, err)
	}
	if cfg.Model.Path != "" && !filepath.IsAbs(cfg.Model.Path) {
		cfg.Model.Path = filepath.Join(filepath.Dir(path), cfg.Model.Path)
	}
	for i, f := range cfg.Fabrics {
		if f.Path != "" && !filepath.IsAbs(f.Path) {
			cfg.Fabrics[i].Path = filepath.Join(filepath.Dir(path), f.Path)
		}
	}
	return cfg, nil
}

// Save writes cfg as TOML, creating the parent directory.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func (c Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	}
	if c.Camera.MinDistance <= 0 || c.Camera.MaxDistance < c.Camera.MinDistance {
		return fmt.Errorf("camera distance range [%g, %g] is invalid", c.Camera.MinDistance, c.Camera.MaxDistance)
	}
	if c.Camera.Damping < 0 || c.Camera.Damping >= 1 {
		return fmt.Errorf("camera damping %g must be in [0, 1)", c.Camera.Damping)
	}
	for _, hex := range []string{c.Scene.Background, c.Scene.Highlight} {
		if _, err := ParseColor(hex); err != nil {
			return err
		}
	}
	for _, s := range c.Swatches {
		if _, err := ParseColor(s.Color); err != nil {
			return fmt.Errorf("swatch %q: %w", s.Name, err)
		}
	}
	seen := make(map[string]bool, len(c.Fabrics))
	for _, f := range c.Fabrics {
		if f.Name == "" {
			return errors.New("fabric without a name")
		}
		if seen[f.Name] {
			return fmt.Errorf("fabric %q defined twice", f.Name)
		}
		seen[f.Name] = true
		if f.Path == "" && f.Pattern == "" {
			return fmt.Errorf("fabric %q needs a path or a pattern", f.Name)
		}
		if f.Tint != "" {
			if _, err := ParseColor(f.Tint); err != nil {
				return fmt.Errorf("fabric %q: %w", f.Name, err)
			}
		}
	}
	for name, hex := range c.Parts {
		if _, err := ParseColor(hex); err != nil {
			return fmt.Errorf("part %q: %w", name, err)
		}
	}
	return nil
}

// PartColors returns the [parts] overrides of the default colour table.
func (c Config) PartColors() map[string]color.RGBA {
	out := make(map[string]color.RGBA, len(c.Parts))
	for name, hex := range c.Parts {
		if col, err := ParseColor(hex); err == nil {
			out[name] = col
		}
	}
	return out
}

// ParseColor accepts #rgb, #rrggbb and 0xrrggbb forms.
func ParseColor(s string) (color.RGBA, error) {
	hex := strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(hex, "#"):
		hex = hex[1:]
	case strings.HasPrefix(hex, "0x"), strings.HasPrefix(hex, "0X"):
		hex = hex[2:]
	}
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid colour %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid colour %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

// MustColor is ParseColor for values already checked by Validate.
func MustColor(s string) color.RGBA {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

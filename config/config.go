// Package config loads the backdrop YAML configuration and turns it into a
// scene configuration.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"
	"strings"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"

	"github.com/plus3/backdrop/cursor"
	"github.com/plus3/backdrop/particle"
	"github.com/plus3/backdrop/scene"
)

// File mirrors the YAML document. Pointer fields distinguish "unset" from a
// zero value so that defaults survive partial files.
type File struct {
	Theme     string    `yaml:"theme"`
	FPS       int       `yaml:"fps"`
	Particles Particles `yaml:"particles"`
	Cursor    Cursor    `yaml:"cursor"`
}

type Particles struct {
	Count       *int     `yaml:"count"`
	Palette     []string `yaml:"palette"`
	Connect     *bool    `yaml:"connect"`
	MaxDistance *float64 `yaml:"max_distance"`
	Responsive  *bool    `yaml:"responsive"`
	EdgeColor   string   `yaml:"edge_color"`
	EdgeWidth   *float64 `yaml:"edge_width"`
	Seed        *uint64  `yaml:"seed"`
}

type Cursor struct {
	Enabled    *bool         `yaml:"enabled"`
	Color      string        `yaml:"color"`
	RingRadius *float64      `yaml:"ring_radius"`
	DotRadius  *float64      `yaml:"dot_radius"`
	RingEase   time.Duration `yaml:"ring_ease"`
	DotEase    time.Duration `yaml:"dot_ease"`
	Targets    []Target      `yaml:"targets"`
}

// Target is a hover region in viewport pixels.
type Target struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

// Load reads and parses the file at path.
func Load(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	f, err := Parse(data)
	if err != nil {
		return File{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return f, nil
}

// Parse decodes a YAML document. Unknown keys are rejected so typos do not go
// unnoticed. An empty document yields the zero File.
func Parse(data []byte) (File, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return File{}, fmt.Errorf("parse yaml: %w", err)
	}
	return f, nil
}

// ParseColor accepts "#rgb" and "#rrggbb" hex colors.
func ParseColor(s string) (color.NRGBA, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}, nil
}

// ParsePalette parses every entry of hexes.
func ParsePalette(hexes []string) ([]color.NRGBA, error) {
	out := make([]color.NRGBA, 0, len(hexes))
	for i, h := range hexes {
		c, err := ParseColor(h)
		if err != nil {
			return nil, fmt.Errorf("palette[%d]: %w", i, err)
		}
		out = append(out, c)
	}
	return out, nil
}

// ParseTheme maps a theme name to a particle theme. Empty means dark.
func ParseTheme(name string) (particle.Theme, error) {
	switch particle.Theme(strings.ToLower(strings.TrimSpace(name))) {
	case "", particle.ThemeDark:
		return particle.ThemeDark, nil
	case particle.ThemeLight:
		return particle.ThemeLight, nil
	}
	return "", fmt.Errorf("unknown theme %q", name)
}

// Seed returns the configured random seed, if any.
func (f File) Seed() (uint64, bool) {
	if f.Particles.Seed == nil {
		return 0, false
	}
	return *f.Particles.Seed, true
}

// ParticleConfig applies the file's particle settings on top of the defaults.
// Without an explicit palette the theme's palette is used.
func (f File) ParticleConfig() (particle.Config, error) {
	theme, err := ParseTheme(f.Theme)
	if err != nil {
		return particle.Config{}, err
	}

	cfg := particle.DefaultConfig()
	cfg.Palette = theme.Palette()

	p := f.Particles
	if p.Count != nil {
		cfg.Count = *p.Count
	}
	if len(p.Palette) > 0 {
		if cfg.Palette, err = ParsePalette(p.Palette); err != nil {
			return particle.Config{}, err
		}
	}
	if p.Connect != nil {
		cfg.Connect = *p.Connect
	}
	if p.MaxDistance != nil {
		cfg.MaxDistance = *p.MaxDistance
	}
	if p.Responsive != nil {
		cfg.Responsive = *p.Responsive
	}
	if p.EdgeColor != "" {
		if cfg.EdgeColor, err = ParseColor(p.EdgeColor); err != nil {
			return particle.Config{}, fmt.Errorf("edge_color: %w", err)
		}
	}
	if p.EdgeWidth != nil {
		cfg.EdgeWidth = *p.EdgeWidth
	}

	cfg = cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return particle.Config{}, err
	}
	return cfg, nil
}

// ReloadParticleConfig is ParticleConfig for a scene that is already running.
// Without an explicit palette the result has a nil palette, so the scene keeps
// the palette of whatever theme it currently shows.
func (f File) ReloadParticleConfig() (particle.Config, error) {
	cfg, err := f.ParticleConfig()
	if err != nil {
		return particle.Config{}, err
	}
	if len(f.Particles.Palette) == 0 {
		cfg.Palette = nil
	}
	return cfg, nil
}

// SceneConfig builds the full scene configuration. The viewport is left for
// the host to fill in.
func (f File) SceneConfig() (scene.Config, error) {
	cfg := scene.DefaultConfig()

	theme, err := ParseTheme(f.Theme)
	if err != nil {
		return scene.Config{}, err
	}
	cfg.Theme = theme

	if cfg.Particles, err = f.ParticleConfig(); err != nil {
		return scene.Config{}, err
	}

	c := f.Cursor
	if c.Enabled != nil {
		cfg.ShowCursor = *c.Enabled
	}
	if c.Color != "" {
		if cfg.Cursor.Color, err = ParseColor(c.Color); err != nil {
			return scene.Config{}, fmt.Errorf("cursor.color: %w", err)
		}
	}
	if c.RingRadius != nil && *c.RingRadius > 0 {
		cfg.Cursor.RingRadius = *c.RingRadius
	}
	if c.DotRadius != nil && *c.DotRadius > 0 {
		cfg.Cursor.DotRadius = *c.DotRadius
	}
	if c.RingEase > 0 {
		cfg.Cursor.RingEase = c.RingEase
	}
	if c.DotEase > 0 {
		cfg.Cursor.DotEase = c.DotEase
	}
	for i, t := range c.Targets {
		if t.W <= 0 || t.H <= 0 {
			return scene.Config{}, fmt.Errorf("cursor.targets[%d]: empty rectangle", i)
		}
		cfg.Targets = append(cfg.Targets, cursor.Rect{X: t.X, Y: t.Y, W: t.W, H: t.H})
	}
	return cfg, nil
}

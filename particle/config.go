package particle

import (
	"fmt"
	"image/color"
	"math"
)

const (
	// DefaultCount is the number of particles seeded when not configured.
	DefaultCount = 80
	// DefaultMaxDistance is the longest pair distance that still gets a line.
	DefaultMaxDistance = 120.0
	// DefaultEdgeWidth is the stroke width of a connecting line.
	DefaultEdgeWidth = 0.2

	// RepulsionRadius is the distance under which the pointer pushes particles.
	RepulsionRadius = 80.0
	// RepulsionStep is how far a repelled particle moves per frame.
	RepulsionStep = 1.0
)

var (
	// DarkPalette colors particles on the dark theme.
	DarkPalette = []color.NRGBA{
		{0xff, 0x5e, 0x00, 0xff},
		{0xfb, 0xae, 0x3c, 0xff},
		{0x04, 0xe7, 0x62, 0xff},
		{0x89, 0xfc, 0x00, 0xff},
		{0x15, 0x61, 0x6d, 0xff},
	}
	// LightPalette colors particles on the light theme.
	LightPalette = []color.NRGBA{
		{0xff, 0x5e, 0x00, 0xff},
		{0xdd, 0x72, 0x30, 0xff},
		{0xf7, 0xb5, 0x38, 0xff},
		{0xa8, 0x8c, 0x0d, 0xff},
		{0x59, 0x43, 0x02, 0xff},
	}

	// White is the default line color.
	White = color.NRGBA{0xff, 0xff, 0xff, 0xff}
)

// Theme selects one of the built-in palettes.
type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// Palette returns a copy of the theme's palette. Unknown themes use the dark
// palette.
func (t Theme) Palette() []color.NRGBA {
	src := DarkPalette
	if t == ThemeLight {
		src = LightPalette
	}
	return append([]color.NRGBA(nil), src...)
}

// Config is fixed for the lifetime of a particle set; changing it requires a
// reseed.
type Config struct {
	Count   int
	Palette []color.NRGBA
	// Connect enables the proximity lines drawn by Field.Connect.
	Connect     bool
	MaxDistance float64
	// Responsive reseeds the field whenever the viewport is resized.
	Responsive bool
	EdgeColor  color.NRGBA
	EdgeWidth  float64
}

// DefaultConfig returns the dark-theme configuration with lines enabled.
func DefaultConfig() Config {
	return Config{
		Count:       DefaultCount,
		Palette:     ThemeDark.Palette(),
		Connect:     true,
		MaxDistance: DefaultMaxDistance,
		Responsive:  true,
		EdgeColor:   White,
		EdgeWidth:   DefaultEdgeWidth,
	}
}

// ConfigurationError reports a configuration the field cannot be seeded from.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("particle: invalid %s: %s", e.Field, e.Reason)
}

// Normalize clamps out-of-range values instead of rejecting them: negative
// counts become zero, and a negative or NaN distance disables connections.
func (c Config) Normalize() Config {
	if c.Count < 0 {
		c.Count = 0
	}
	if c.MaxDistance < 0 || math.IsNaN(c.MaxDistance) {
		c.MaxDistance = 0
	}
	if c.EdgeWidth <= 0 || math.IsNaN(c.EdgeWidth) {
		c.EdgeWidth = DefaultEdgeWidth
	}
	return c
}

// Validate returns a *ConfigurationError when particles are requested but
// there is no color to give them.
func (c Config) Validate() error {
	if c.Count > 0 && len(c.Palette) == 0 {
		return &ConfigurationError{Field: "palette", Reason: fmt.Sprintf("empty with count %d", c.Count)}
	}
	return nil
}

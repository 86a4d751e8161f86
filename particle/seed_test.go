package particle_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/backdrop/particle"
)

func TestSeed(t *testing.T) {
	viewport := particle.Viewport{Width: 640, Height: 480}

	t.Run("deterministic for a fixed seed", func(t *testing.T) {
		cfg := particle.DefaultConfig()

		a, err := particle.Seed(particle.NewRand(42), viewport, cfg)
		require.NoError(t, err)
		b, err := particle.Seed(particle.NewRand(42), viewport, cfg)
		require.NoError(t, err)

		assert.Equal(t, a, b)
		assert.Len(t, a, particle.DefaultCount)

		c, err := particle.Seed(particle.NewRand(43), viewport, cfg)
		require.NoError(t, err)
		assert.NotEqual(t, a, c)
	})

	t.Run("ranges", func(t *testing.T) {
		cfg := particle.DefaultConfig()
		cfg.Count = 2000

		ps, err := particle.Seed(particle.NewRand(7), viewport, cfg)
		require.NoError(t, err)
		require.Len(t, ps, 2000)

		for i, p := range ps {
			assert.GreaterOrEqual(t, p.X, 0.0, "particle %d x", i)
			assert.Less(t, p.X, viewport.Width, "particle %d x", i)
			assert.GreaterOrEqual(t, p.Y, 0.0, "particle %d y", i)
			assert.Less(t, p.Y, viewport.Height, "particle %d y", i)
			assert.GreaterOrEqual(t, p.Radius, 1.0)
			assert.Less(t, p.Radius, 4.0)
			assert.GreaterOrEqual(t, p.VX, -0.5)
			assert.Less(t, p.VX, 0.5)
			assert.GreaterOrEqual(t, p.VY, -0.5)
			assert.Less(t, p.VY, 0.5)
			assert.Contains(t, cfg.Palette, p.Color)
		}
	})

	t.Run("every palette entry is used", func(t *testing.T) {
		cfg := particle.DefaultConfig()
		cfg.Count = 500

		ps, err := particle.Seed(particle.NewRand(1), viewport, cfg)
		require.NoError(t, err)

		seen := make(map[[4]uint8]bool)
		for _, p := range ps {
			seen[[4]uint8{p.Color.R, p.Color.G, p.Color.B, p.Color.A}] = true
		}
		assert.Len(t, seen, len(cfg.Palette))
	})

	t.Run("empty palette", func(t *testing.T) {
		cfg := particle.DefaultConfig()
		cfg.Palette = nil

		_, err := particle.Seed(particle.NewRand(1), viewport, cfg)
		var cfgErr *particle.ConfigurationError
		require.True(t, errors.As(err, &cfgErr))
		assert.Equal(t, "palette", cfgErr.Field)

		cfg.Count = 0
		ps, err := particle.Seed(particle.NewRand(1), viewport, cfg)
		require.NoError(t, err)
		assert.Empty(t, ps)
	})

	t.Run("negative count is clamped", func(t *testing.T) {
		cfg := particle.DefaultConfig()
		cfg.Count = -5

		ps, err := particle.Seed(particle.NewRand(1), viewport, cfg)
		require.NoError(t, err)
		assert.Empty(t, ps)
	})
}

func TestConfigNormalize(t *testing.T) {
	cfg := particle.Config{Count: -1, MaxDistance: -10, EdgeWidth: -1}.Normalize()

	assert.Equal(t, 0, cfg.Count)
	assert.Equal(t, 0.0, cfg.MaxDistance)
	assert.Equal(t, particle.DefaultEdgeWidth, cfg.EdgeWidth)
	assert.NoError(t, cfg.Validate())
}

func TestThemePalette(t *testing.T) {
	assert.Equal(t, particle.LightPalette, particle.ThemeLight.Palette())
	assert.Equal(t, particle.DarkPalette, particle.ThemeDark.Palette())
	assert.Equal(t, particle.DarkPalette, particle.Theme("sepia").Palette())

	p := particle.ThemeDark.Palette()
	p[0].R = 0
	assert.Equal(t, uint8(0xff), particle.DarkPalette[0].R, "Palette must return a copy")
}

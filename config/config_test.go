package config_test

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/backdrop/config"
	"github.com/plus3/backdrop/cursor"
	"github.com/plus3/backdrop/particle"
)

const sample = `
theme: light
fps: 30
particles:
  count: 40
  palette: ["#ff5e00", "#0f0", "15616d"]
  connect: false
  max_distance: 90
  seed: 7
cursor:
  color: "#123456"
  ring_ease: 50ms
`

func TestParse(t *testing.T) {
	t.Run("full document", func(t *testing.T) {
		f, err := config.Parse([]byte(sample))
		require.NoError(t, err)

		assert.Equal(t, 30, f.FPS)
		seed, ok := f.Seed()
		assert.True(t, ok)
		assert.Equal(t, uint64(7), seed)

		cfg, err := f.SceneConfig()
		require.NoError(t, err)

		assert.Equal(t, particle.ThemeLight, cfg.Theme)
		assert.Equal(t, 40, cfg.Particles.Count)
		assert.False(t, cfg.Particles.Connect)
		assert.Equal(t, 90.0, cfg.Particles.MaxDistance)
		assert.True(t, cfg.Particles.Responsive)
		assert.Equal(t, []color.NRGBA{
			{0xff, 0x5e, 0x00, 0xff},
			{0x00, 0xff, 0x00, 0xff},
			{0x15, 0x61, 0x6d, 0xff},
		}, cfg.Particles.Palette)
		assert.Equal(t, color.NRGBA{0x12, 0x34, 0x56, 0xff}, cfg.Cursor.Color)
		assert.Equal(t, 50*time.Millisecond, cfg.Cursor.RingEase)
		assert.Equal(t, 75*time.Millisecond, cfg.Cursor.DotEase)
		assert.True(t, cfg.ShowCursor)
	})

	t.Run("empty document gives defaults", func(t *testing.T) {
		f, err := config.Parse(nil)
		require.NoError(t, err)

		cfg, err := f.ParticleConfig()
		require.NoError(t, err)
		assert.Equal(t, particle.DefaultConfig(), cfg)

		_, ok := f.Seed()
		assert.False(t, ok)
	})

	t.Run("theme palette without explicit colors", func(t *testing.T) {
		f, err := config.Parse([]byte("theme: light\n"))
		require.NoError(t, err)

		cfg, err := f.ParticleConfig()
		require.NoError(t, err)
		assert.Equal(t, particle.LightPalette, cfg.Palette)
	})

	t.Run("reload leaves the palette to the running theme", func(t *testing.T) {
		f, err := config.Parse([]byte("particles:\n  count: 12\n"))
		require.NoError(t, err)

		cfg, err := f.ReloadParticleConfig()
		require.NoError(t, err)
		assert.Nil(t, cfg.Palette)
		assert.Equal(t, 12, cfg.Count)

		f, err = config.Parse([]byte(sample))
		require.NoError(t, err)
		cfg, err = f.ReloadParticleConfig()
		require.NoError(t, err)
		assert.Len(t, cfg.Palette, 3, "an explicit palette is kept")
	})

	t.Run("cursor targets", func(t *testing.T) {
		doc := "cursor:\n  targets:\n    - {x: 10, y: 20, w: 100, h: 30}\n    - {x: 0, y: 0, w: 5, h: 5}\n"
		f, err := config.Parse([]byte(doc))
		require.NoError(t, err)

		cfg, err := f.SceneConfig()
		require.NoError(t, err)
		assert.Equal(t, []cursor.Rect{{X: 10, Y: 20, W: 100, H: 30}, {W: 5, H: 5}}, cfg.Targets)

		f, err = config.Parse([]byte("cursor:\n  targets:\n    - {x: 1, y: 1, w: 0, h: 4}\n"))
		require.NoError(t, err)
		_, err = f.SceneConfig()
		assert.ErrorContains(t, err, "cursor.targets[0]")
	})

	t.Run("out of range values are clamped", func(t *testing.T) {
		f, err := config.Parse([]byte("particles:\n  count: -3\n  max_distance: -1\n"))
		require.NoError(t, err)

		cfg, err := f.ParticleConfig()
		require.NoError(t, err)
		assert.Equal(t, 0, cfg.Count)
		assert.Equal(t, 0.0, cfg.MaxDistance)
	})

	t.Run("errors", func(t *testing.T) {
		_, err := config.Parse([]byte("particles:\n  cuont: 3\n"))
		assert.Error(t, err, "unknown keys are rejected")

		f, err := config.Parse([]byte("theme: sepia\n"))
		require.NoError(t, err)
		_, err = f.SceneConfig()
		assert.ErrorContains(t, err, "sepia")

		f, err = config.Parse([]byte("particles:\n  palette: [\"#zzz\"]\n"))
		require.NoError(t, err)
		_, err = f.ParticleConfig()
		assert.ErrorContains(t, err, "palette[0]")
	})
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backdrop.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))

	f, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "light", f.Theme)

	_, err = config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

package particle_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/plus3/backdrop/particle"
)

func TestReflect(t *testing.T) {
	viewport := particle.Viewport{Width: 100, Height: 100}

	t.Run("velocity always points back inside", func(t *testing.T) {
		rng := particle.NewRand(99)
		for i := 0; i < 5000; i++ {
			p := particle.Particle{
				X:  rng.Float64()*140 - 20,
				Y:  rng.Float64()*140 - 20,
				VX: rng.Float64() - 0.5,
				VY: rng.Float64() - 0.5,
			}
			particle.Reflect(&p, viewport)

			if p.X < 0 {
				assert.GreaterOrEqual(t, p.VX, 0.0)
			}
			if p.X > viewport.Width {
				assert.LessOrEqual(t, p.VX, 0.0)
			}
			if p.Y < 0 {
				assert.GreaterOrEqual(t, p.VY, 0.0)
			}
			if p.Y > viewport.Height {
				assert.LessOrEqual(t, p.VY, 0.0)
			}
		}
	})

	t.Run("inside is untouched", func(t *testing.T) {
		p := particle.Particle{X: 0, Y: 100, VX: -0.3, VY: 0.3}
		particle.Reflect(&p, viewport)
		assert.Equal(t, -0.3, p.VX)
		assert.Equal(t, 0.3, p.VY)
	})

	t.Run("position is not clamped", func(t *testing.T) {
		p := particle.Particle{X: -0.4, Y: 100.2, VX: -0.4, VY: 0.2}
		particle.Reflect(&p, viewport)
		assert.Equal(t, -0.4, p.X)
		assert.Equal(t, 100.2, p.Y)
		assert.Equal(t, 0.4, p.VX)
		assert.Equal(t, -0.2, p.VY)
	})
}

func TestRepel(t *testing.T) {
	t.Run("outside the radius nothing moves", func(t *testing.T) {
		for _, d := range []float64{particle.RepulsionRadius, 81, 500} {
			p := particle.Particle{X: 100, Y: 100}
			moved := particle.Repel(&p, particle.Pointer{X: 100 + d, Y: 100, Present: true})
			assert.False(t, moved)
			assert.Equal(t, 100.0, p.X)
			assert.Equal(t, 100.0, p.Y)
		}
	})

	t.Run("inside the radius moves exactly one unit away", func(t *testing.T) {
		rng := particle.NewRand(5)
		for i := 0; i < 1000; i++ {
			ptr := particle.Pointer{X: 200, Y: 200, Present: true}
			angle := rng.Float64() * 2 * math.Pi
			r := rng.Float64() * (particle.RepulsionRadius - 1e-6)
			p := particle.Particle{X: ptr.X + r*math.Cos(angle), Y: ptr.Y + r*math.Sin(angle)}
			before := p

			assert.True(t, particle.Repel(&p, ptr))

			step := math.Hypot(p.X-before.X, p.Y-before.Y)
			assert.InDelta(t, particle.RepulsionStep, step, 1e-9)

			distBefore := math.Hypot(ptr.X-before.X, ptr.Y-before.Y)
			distAfter := math.Hypot(ptr.X-p.X, ptr.Y-p.Y)
			if distBefore > 1e-9 {
				assert.InDelta(t, distBefore+particle.RepulsionStep, distAfter, 1e-9)
			}
		}
	})

	t.Run("pointer on top of the particle", func(t *testing.T) {
		p := particle.Particle{X: 10, Y: 10}
		assert.True(t, particle.Repel(&p, particle.Pointer{X: 10, Y: 10, Present: true}))
		assert.InDelta(t, 9.0, p.X, 1e-12)
		assert.InDelta(t, 10.0, p.Y, 1e-12)
	})

	t.Run("absent pointer", func(t *testing.T) {
		p := particle.Particle{X: 1, Y: 1}
		assert.False(t, particle.Repel(&p, particle.Pointer{}))
		assert.Equal(t, 1.0, p.X)
	})
}

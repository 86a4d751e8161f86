package particle

import "math/rand/v2"

// Seed creates cfg.Count particles spread uniformly over the viewport. With the
// same rng state the result is identical, which keeps tests reproducible.
func Seed(rng *rand.Rand, viewport Viewport, cfg Config) ([]Particle, error) {
	cfg = cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	particles := make([]Particle, cfg.Count)
	for i := range particles {
		particles[i] = Particle{
			X:      rng.Float64() * viewport.Width,
			Y:      rng.Float64() * viewport.Height,
			Radius: rng.Float64()*3 + 1,
			VX:     rng.Float64() - 0.5,
			VY:     rng.Float64() - 0.5,
			Color:  cfg.Palette[rng.IntN(len(cfg.Palette))],
		}
	}
	return particles, nil
}

// NewRand returns a PCG-backed source for the given seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

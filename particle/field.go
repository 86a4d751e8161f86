package particle

import (
	"math"
	"math/rand/v2"

	"go.uber.org/zap"

	"github.com/plus3/backdrop/frame"
	"github.com/plus3/backdrop/render"
)

// Edge is a connection between particles I and J (I < J).
type Edge struct {
	I, J     int
	Distance float64
	Alpha    float64
}

// Stats describes the field's most recent frame.
type Stats struct {
	Particles int
	Edges     int
	Frames    uint64
	Reseeds   int
}

// Option configures a Field.
type Option func(*Field)

// WithRand sets the random source used for seeding.
func WithRand(rng *rand.Rand) Option {
	return func(f *Field) {
		if rng != nil {
			f.rng = rng
		}
	}
}

func WithLogger(log *zap.Logger) Option {
	return func(f *Field) {
		if log != nil {
			f.log = log
		}
	}
}

// Field owns a particle set together with the viewport and pointer it moves
// in. A Field is not safe for concurrent use: every method is expected to run
// on the frame goroutine.
type Field struct {
	cfg       Config
	rng       *rand.Rand
	viewport  Viewport
	pointer   Pointer
	particles []Particle
	edges     []Edge
	stats     Stats
	log       *zap.Logger
}

// NewField validates cfg and seeds the first particle set.
func NewField(cfg Config, viewport Viewport, opts ...Option) (*Field, error) {
	f := &Field{
		cfg:      cfg.Normalize(),
		viewport: clampViewport(viewport),
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.rng == nil {
		f.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if err := f.Reseed(); err != nil {
		return nil, err
	}
	return f, nil
}

// Reseed replaces the whole particle set.
func (f *Field) Reseed() error {
	particles, err := Seed(f.rng, f.viewport, f.cfg)
	if err != nil {
		return err
	}
	f.particles = particles
	f.edges = f.edges[:0]
	f.stats.Reseeds++
	f.stats.Particles = len(particles)
	f.log.Debug("particle field seeded",
		zap.Int("count", len(particles)),
		zap.Float64("width", f.viewport.Width),
		zap.Float64("height", f.viewport.Height))
	return nil
}

// Reconfigure swaps in a new configuration and reseeds. An invalid cfg leaves
// the field untouched.
func (f *Field) Reconfigure(cfg Config) error {
	cfg = cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return err
	}
	prev := f.cfg
	f.cfg = cfg
	if err := f.Reseed(); err != nil {
		f.cfg = prev
		return err
	}
	return nil
}

// Resize records the new viewport and, for a responsive field, reseeds.
func (f *Field) Resize(v Viewport) {
	v = clampViewport(v)
	if v == f.viewport {
		return
	}
	f.viewport = v
	if f.cfg.Responsive {
		// The config was validated when it was installed.
		_ = f.Reseed()
	}
}

// SetPointer records the pointer position read by the next Step.
func (f *Field) SetPointer(x, y float64) {
	f.pointer = Pointer{X: x, Y: y, Present: true}
}

// ClearPointer forgets the pointer, e.g. when it leaves the window.
func (f *Field) ClearPointer() {
	f.pointer = Pointer{}
}

// SetParticles replaces the particle set with ps as given.
func (f *Field) SetParticles(ps []Particle) {
	f.particles = ps
	f.stats.Particles = len(ps)
}

// Particles returns the live particle slice. It is replaced on reseed.
func (f *Field) Particles() []Particle { return f.particles }

func (f *Field) Pointer() Pointer { return f.pointer }

func (f *Field) Viewport() Viewport { return f.viewport }

func (f *Field) Config() Config { return f.cfg }

func (f *Field) Stats() Stats { return f.stats }

// Step advances every particle by one frame and draws it. s may be nil to
// advance without rendering.
func (f *Field) Step(s render.Surface) {
	for i := range f.particles {
		p := &f.particles[i]
		advance(p, f.viewport, f.pointer)
		if s != nil {
			s.FillCircle(p.X, p.Y, p.Radius, p.Color)
		}
	}
	f.stats.Frames++
}

// Edges appends to dst[:0] every pair of particles closer than the configured
// maximum distance, with alpha falling linearly from 1 to 0 over that distance.
func (f *Field) Edges(dst []Edge) []Edge {
	dst = dst[:0]
	maxDist := f.cfg.MaxDistance
	if maxDist <= 0 {
		return dst
	}
	ps := f.particles
	for i := 0; i < len(ps); i++ {
		for j := i + 1; j < len(ps); j++ {
			d := distance(ps[i].X, ps[i].Y, ps[j].X, ps[j].Y)
			if d < maxDist {
				dst = append(dst, Edge{I: i, J: j, Distance: d, Alpha: 1 - d/maxDist})
			}
		}
	}
	return dst
}

// Connect draws a line for every edge returned by Edges.
func (f *Field) Connect(s render.Surface) {
	f.edges = f.Edges(f.edges)
	f.stats.Edges = len(f.edges)
	if s == nil {
		return
	}
	for _, e := range f.edges {
		a, b := f.particles[e.I], f.particles[e.J]
		s.StrokeLine(a.X, a.Y, b.X, b.Y, f.cfg.EdgeWidth, render.WithAlpha(f.cfg.EdgeColor, e.Alpha))
	}
}

// Execute renders one frame of the field: clear, step, then connect when
// enabled.
func (f *Field) Execute(fr *frame.Frame) {
	s := fr.Surface
	if s != nil {
		s.Clear()
	}
	f.Step(s)
	if f.cfg.Connect {
		f.Connect(s)
	} else {
		f.stats.Edges = 0
	}
}

func clampViewport(v Viewport) Viewport {
	if v.Width < 0 || math.IsNaN(v.Width) {
		v.Width = 0
	}
	if v.Height < 0 || math.IsNaN(v.Height) {
		v.Height = 0
	}
	return v
}

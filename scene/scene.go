// Package scene assembles the page background: the particle field, the cursor
// follower and any extra overlay systems, driven by one frame scheduler.
//
// Host events (pointer, resize, theme) may arrive on any goroutine. They are
// posted to the scheduler and applied at the start of the next frame, so the
// particle set is only ever touched on the frame goroutine.
package scene

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	"go.uber.org/zap"

	"github.com/plus3/backdrop/cursor"
	"github.com/plus3/backdrop/frame"
	"github.com/plus3/backdrop/particle"
	"github.com/plus3/backdrop/render"
)

// ErrNoSurface is returned by New when no render target is available.
var ErrNoSurface = errors.New("scene: no render surface")

// Config is everything needed to build a scene.
type Config struct {
	Particles particle.Config
	Cursor    cursor.Config
	// ShowCursor registers the cursor follower layer.
	ShowCursor bool
	Theme      particle.Theme
	Viewport   particle.Viewport
	// Targets are hover regions that enlarge the cursor ring.
	Targets []cursor.Rect
}

func DefaultConfig() Config {
	return Config{
		Particles:  particle.DefaultConfig(),
		Cursor:     cursor.DefaultConfig(),
		ShowCursor: true,
		Theme:      particle.ThemeDark,
	}
}

type options struct {
	log      *zap.Logger
	rng      *rand.Rand
	overlays []frame.System
}

type Option func(*options)

func WithLogger(log *zap.Logger) Option {
	return func(o *options) { o.log = log }
}

// WithRand fixes the particle random source, for reproducible runs.
func WithRand(rng *rand.Rand) Option {
	return func(o *options) { o.rng = rng }
}

// WithOverlay registers an extra system after the field and cursor.
func WithOverlay(system frame.System) Option {
	return func(o *options) { o.overlays = append(o.overlays, system) }
}

// Scene is the running background.
type Scene struct {
	cfg       Config
	field     *particle.Field
	cursor    *cursor.Follower
	scheduler *frame.Scheduler
	log       *zap.Logger
}

// New validates the configuration and wires the layers. Nothing runs until
// Start, or until the host calls Once.
func New(cfg Config, surface render.Surface, opts ...Option) (*Scene, error) {
	if surface == nil {
		return nil, ErrNoSurface
	}
	o := options{log: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = zap.NewNop()
	}

	fieldOpts := []particle.Option{particle.WithLogger(o.log.Named("field"))}
	if o.rng != nil {
		fieldOpts = append(fieldOpts, particle.WithRand(o.rng))
	}
	field, err := particle.NewField(cfg.Particles, cfg.Viewport, fieldOpts...)
	if err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}

	s := &Scene{
		cfg:       cfg,
		field:     field,
		cursor:    cursor.New(cfg.Cursor),
		scheduler: frame.NewScheduler(surface, frame.WithLogger(o.log.Named("frame"))),
		log:       o.log,
	}

	for _, r := range cfg.Targets {
		s.cursor.Targets().Add(r)
	}

	s.scheduler.Register(field)
	if cfg.ShowCursor {
		s.scheduler.Register(s.cursor)
	}
	for _, overlay := range o.overlays {
		s.scheduler.Register(overlay)
	}
	return s, nil
}

// Start runs the frame loop on its own goroutine until Stop or ctx ends.
func (s *Scene) Start(ctx context.Context, ticker frame.Ticker) error {
	if err := s.scheduler.Start(ctx, ticker); err != nil {
		return err
	}
	s.log.Info("scene started",
		zap.Int("particles", len(s.field.Particles())),
		zap.Bool("connect", s.field.Config().Connect))
	return nil
}

// Run is Start without the goroutine.
func (s *Scene) Run(ctx context.Context, ticker frame.Ticker) error {
	return s.scheduler.Run(ctx, ticker)
}

// Once runs a single frame; hosts with their own display loop call it from
// their draw callback.
func (s *Scene) Once(dt float64) bool {
	return s.scheduler.Once(dt)
}

// Stop halts the scene. No frame runs and no particle moves after it returns.
func (s *Scene) Stop() {
	if s.scheduler.Stopped() {
		return
	}
	s.scheduler.Stop()
	s.log.Info("scene stopped", zap.Uint64("frames", s.scheduler.Frames()))
}

// PointerMoved records a pointer position for the field and the cursor.
func (s *Scene) PointerMoved(x, y float64) {
	s.scheduler.Post(func() {
		s.field.SetPointer(x, y)
		s.cursor.Move(x, y)
	})
}

// PointerLeft is called when the pointer exits the window.
func (s *Scene) PointerLeft() {
	s.scheduler.Post(func() {
		s.field.ClearPointer()
		s.cursor.Leave()
	})
}

// PointerEntered shows the cursor again at its last position after the
// pointer returns to the window.
func (s *Scene) PointerEntered() {
	s.scheduler.Post(func() {
		s.cursor.Enter()
	})
}

// PointerButton records the primary button state.
func (s *Scene) PointerButton(pressed bool) {
	s.scheduler.Post(func() {
		if pressed {
			s.cursor.Press()
		} else {
			s.cursor.Release()
		}
	})
}

// Resized records a new viewport size.
func (s *Scene) Resized(width, height int) {
	s.scheduler.Post(func() {
		s.field.Resize(particle.Viewport{Width: float64(width), Height: float64(height)})
	})
}

// SetTheme swaps the particle palette for the theme's and reseeds.
func (s *Scene) SetTheme(theme particle.Theme) {
	s.scheduler.Post(func() {
		cfg := s.field.Config()
		cfg.Palette = theme.Palette()
		if err := s.field.Reconfigure(cfg); err != nil {
			s.log.Warn("theme switch failed", zap.String("theme", string(theme)), zap.Error(err))
			return
		}
		s.cfg.Theme = theme
		s.log.Debug("theme switched", zap.String("theme", string(theme)))
	})
}

// Reconfigure installs a new particle configuration, e.g. after the config
// file changed. A nil palette keeps the current theme's palette. Invalid
// configurations are logged and ignored.
func (s *Scene) Reconfigure(cfg particle.Config) {
	s.scheduler.Post(func() {
		if cfg.Palette == nil {
			cfg.Palette = s.cfg.Theme.Palette()
		}
		if err := s.field.Reconfigure(cfg); err != nil {
			s.log.Warn("particle config rejected", zap.Error(err))
			return
		}
		s.log.Info("particle config reloaded", zap.Int("count", cfg.Count))
	})
}

// Field exposes the particle field. Only touch it from a frame system or
// after Stop.
func (s *Scene) Field() *particle.Field { return s.field }

func (s *Scene) Cursor() *cursor.Follower { return s.cursor }

func (s *Scene) Scheduler() *frame.Scheduler { return s.scheduler }

// Theme returns the last theme applied on the frame goroutine.
func (s *Scene) Theme() particle.Theme { return s.cfg.Theme }

// Package cursor draws the custom pointer: a ring that eases after the pointer
// and a small dot that tracks it more tightly. The ring shrinks while a button
// is held and grows into a filled disc over hover targets.
package cursor

import (
	"image/color"
	"math"
	"time"

	"github.com/plus3/backdrop/frame"
	"github.com/plus3/backdrop/render"
)

const (
	PressedScale = 0.5
	HoverScale   = 2.0

	// hoverFillAlpha is the ring fill opacity over a hover target.
	hoverFillAlpha = 0x33 / 255.0
)

type Config struct {
	Color      color.NRGBA
	RingRadius float64
	RingWidth  float64
	DotRadius  float64
	// RingEase and DotEase are the time constants with which the drawn ring and
	// dot catch up with the pointer. Zero snaps immediately.
	RingEase time.Duration
	DotEase  time.Duration
}

func DefaultConfig() Config {
	return Config{
		Color:      color.NRGBA{0xff, 0x5e, 0x00, 0xff},
		RingRadius: 14,
		RingWidth:  2,
		DotRadius:  2,
		RingEase:   100 * time.Millisecond,
		DotEase:    75 * time.Millisecond,
	}
}

// State is a snapshot of the follower.
type State struct {
	X, Y    float64
	Visible bool
	Pressed bool
	Hovered bool
	Scale   float64
}

// Follower tracks pointer input and renders the cursor as a frame system.
// Like the particle field it belongs to the frame goroutine.
type Follower struct {
	cfg     Config
	targets *Targets

	x, y    float64
	seen    bool
	hidden  bool
	pressed bool
	hovered bool

	ringX, ringY, ringScale float64
	dotX, dotY              float64
	snap                    bool
}

func New(cfg Config) *Follower {
	return &Follower{
		cfg:       cfg,
		targets:   NewTargets(),
		hidden:    true,
		ringScale: 1,
	}
}

func (f *Follower) Targets() *Targets { return f.targets }

// Move records a pointer position. The first move makes the cursor visible.
func (f *Follower) Move(x, y float64) {
	if !f.seen || f.hidden {
		f.snap = true
	}
	f.x, f.y = x, y
	f.seen = true
	f.hidden = false
}

// Leave hides the cursor when the pointer exits the window.
func (f *Follower) Leave() {
	f.hidden = true
}

// Enter shows the cursor again if a position is known.
func (f *Follower) Enter() {
	if f.seen {
		f.hidden = false
	}
}

func (f *Follower) Press()   { f.pressed = true }
func (f *Follower) Release() { f.pressed = false }

func (f *Follower) targetScale() float64 {
	switch {
	case f.pressed:
		return PressedScale
	case f.hovered:
		return HoverScale
	}
	return 1
}

func (f *Follower) State() State {
	return State{
		X:       f.x,
		Y:       f.y,
		Visible: !f.hidden,
		Pressed: f.pressed,
		Hovered: f.hovered,
		Scale:   f.targetScale(),
	}
}

func ease(dt float64, tau time.Duration) float64 {
	if tau <= 0 || dt <= 0 {
		return 1
	}
	return 1 - math.Exp(-dt/tau.Seconds())
}

// Execute eases the drawn ring and dot toward the pointer and draws them.
func (f *Follower) Execute(fr *frame.Frame) {
	if f.hidden {
		return
	}
	_, f.hovered = f.targets.HitTest(f.x, f.y)

	if f.snap {
		f.ringX, f.ringY = f.x, f.y
		f.dotX, f.dotY = f.x, f.y
		f.ringScale = f.targetScale()
		f.snap = false
	} else {
		k := ease(fr.DeltaTime, f.cfg.RingEase)
		f.ringX += (f.x - f.ringX) * k
		f.ringY += (f.y - f.ringY) * k
		f.ringScale += (f.targetScale() - f.ringScale) * k

		k = ease(fr.DeltaTime, f.cfg.DotEase)
		f.dotX += (f.x - f.dotX) * k
		f.dotY += (f.y - f.dotY) * k
	}

	s := fr.Surface
	if s == nil {
		return
	}
	r := f.cfg.RingRadius * f.ringScale
	if f.hovered {
		s.FillCircle(f.ringX, f.ringY, r, render.WithAlpha(f.cfg.Color, hoverFillAlpha))
	} else {
		s.StrokeCircle(f.ringX, f.ringY, r, f.cfg.RingWidth, f.cfg.Color)
	}
	s.FillCircle(f.dotX, f.dotY, f.cfg.DotRadius, f.cfg.Color)
}

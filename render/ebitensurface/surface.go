// Package ebitensurface renders a scene into an Ebitengine window.
package ebitensurface

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Surface draws onto whatever *ebiten.Image the host installed for the
// current frame. Draw calls without a target are dropped.
type Surface struct {
	target *ebiten.Image

	// Background fills the target on Clear. A nil Background clears to
	// transparent.
	Background color.Color
	AntiAlias  bool
}

func New(background color.Color) *Surface {
	return &Surface{Background: background, AntiAlias: true}
}

// SetTarget installs the image for the next frame.
func (s *Surface) SetTarget(img *ebiten.Image) {
	s.target = img
}

func (s *Surface) Clear() {
	if s.target == nil {
		return
	}
	if s.Background == nil {
		s.target.Clear()
		return
	}
	s.target.Fill(s.Background)
}

func (s *Surface) FillCircle(cx, cy, r float64, c color.NRGBA) {
	if s.target == nil || c.A == 0 {
		return
	}
	vector.DrawFilledCircle(s.target, float32(cx), float32(cy), float32(r), c, s.AntiAlias)
}

func (s *Surface) StrokeCircle(cx, cy, r, width float64, c color.NRGBA) {
	if s.target == nil || c.A == 0 {
		return
	}
	vector.StrokeCircle(s.target, float32(cx), float32(cy), float32(r), float32(width), c, s.AntiAlias)
}

func (s *Surface) StrokeLine(x0, y0, x1, y1, width float64, c color.NRGBA) {
	if s.target == nil || c.A == 0 {
		return
	}
	vector.StrokeLine(s.target, float32(x0), float32(y0), float32(x1), float32(y1), float32(width), c, s.AntiAlias)
}

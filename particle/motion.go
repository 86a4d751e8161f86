package particle

import "math"

// Reflect points a particle's velocity back toward the interior on every axis
// where its position lies outside the viewport. Positions are left as they are.
func Reflect(p *Particle, v Viewport) {
	if p.X < 0 {
		p.VX = math.Abs(p.VX)
	} else if p.X > v.Width {
		p.VX = -math.Abs(p.VX)
	}
	if p.Y < 0 {
		p.VY = math.Abs(p.VY)
	} else if p.Y > v.Height {
		p.VY = -math.Abs(p.VY)
	}
}

// Repel moves p one RepulsionStep directly away from the pointer when it is
// closer than RepulsionRadius. It reports whether the particle moved.
func Repel(p *Particle, ptr Pointer) bool {
	if !ptr.Present {
		return false
	}
	dx := ptr.X - p.X
	dy := ptr.Y - p.Y
	if math.Hypot(dx, dy) >= RepulsionRadius {
		return false
	}
	angle := math.Atan2(dy, dx)
	p.X -= math.Cos(angle) * RepulsionStep
	p.Y -= math.Sin(angle) * RepulsionStep
	return true
}

// advance integrates one frame, then reflects, then applies the pointer.
func advance(p *Particle, v Viewport, ptr Pointer) {
	p.X += p.VX
	p.Y += p.VY
	Reflect(p, v)
	Repel(p, ptr)
}

package particle

import (
	"image/color"
	"math"
)

// Particle is one simulated point. Fields are exported so hosts and tests can
// inspect or place particles directly.
type Particle struct {
	X, Y   float64
	Radius float64
	VX, VY float64
	Color  color.NRGBA
}

// Viewport is the pixel size of the render surface.
type Viewport struct {
	Width, Height float64
}

// Contains reports whether (x, y) lies in the closed rectangle [0,W]×[0,H].
func (v Viewport) Contains(x, y float64) bool {
	return x >= 0 && x <= v.Width && y >= 0 && y <= v.Height
}

// Pointer is the last known pointer position. A pointer that is not Present
// repels nothing.
type Pointer struct {
	X, Y    float64
	Present bool
}

func distance(x0, y0, x1, y1 float64) float64 {
	return math.Hypot(x1-x0, y1-y0)
}

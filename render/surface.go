// Package render defines the raster target that particle and cursor layers draw to.
package render

import "image/color"

// Surface is a 2D raster target sized to the viewport. Coordinates are in pixels
// with the origin at the top-left corner.
type Surface interface {
	Clear()
	FillCircle(cx, cy, r float64, c color.NRGBA)
	StrokeCircle(cx, cy, r, width float64, c color.NRGBA)
	StrokeLine(x0, y0, x1, y1, width float64, c color.NRGBA)
}

// WithAlpha returns c with its alpha channel scaled by a in [0,1].
func WithAlpha(c color.NRGBA, a float64) color.NRGBA {
	if a <= 0 {
		c.A = 0
		return c
	}
	if a >= 1 {
		return c
	}
	c.A = uint8(float64(c.A)*a + 0.5)
	return c
}

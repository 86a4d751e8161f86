// Package termsurface renders a scene into a terminal with tcell. Each
// character cell stands for a block of CellWidth×CellHeight viewport pixels.
package termsurface

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"
)

const (
	DefaultCellWidth  = 8.0
	DefaultCellHeight = 16.0
)

// Draw priority per cell; higher layers are never overwritten by lower ones
// within a frame.
const (
	layerEmpty uint8 = iota
	layerLine
	layerRing
	layerDisc
)

type Surface struct {
	screen     tcell.Screen
	cols, rows int
	layer      []uint8

	CellWidth, CellHeight float64
	Background            color.NRGBA
}

// New sizes the surface to the screen's current size.
func New(screen tcell.Screen, background color.NRGBA) *Surface {
	s := &Surface{
		screen:     screen,
		CellWidth:  DefaultCellWidth,
		CellHeight: DefaultCellHeight,
		Background: background,
	}
	s.Resize(screen.Size())
	return s
}

// Resize adapts the cell grid after a terminal resize.
func (s *Surface) Resize(cols, rows int) {
	s.cols, s.rows = cols, rows
	s.layer = make([]uint8, cols*rows)
}

// PixelSize is the viewport size in pixels covered by the grid.
func (s *Surface) PixelSize() (int, int) {
	return int(float64(s.cols) * s.CellWidth), int(float64(s.rows) * s.CellHeight)
}

// CellCenter converts a cell position to the pixel at its center.
func (s *Surface) CellCenter(col, row int) (float64, float64) {
	return (float64(col) + 0.5) * s.CellWidth, (float64(row) + 0.5) * s.CellHeight
}

func (s *Surface) cell(x, y float64) (int, int, bool) {
	col := int(math.Floor(x / s.CellWidth))
	row := int(math.Floor(y / s.CellHeight))
	if col < 0 || row < 0 || col >= s.cols || row >= s.rows {
		return 0, 0, false
	}
	return col, row, true
}

func (s *Surface) rgb(c color.NRGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// blend composites c over the background, as the terminal has no alpha.
func (s *Surface) blend(c color.NRGBA) tcell.Color {
	a := float64(c.A) / 255
	mix := func(fg, bg uint8) int32 {
		return int32(math.Round(float64(bg) + (float64(fg)-float64(bg))*a))
	}
	bg := s.Background
	return tcell.NewRGBColor(mix(c.R, bg.R), mix(c.G, bg.G), mix(c.B, bg.B))
}

func (s *Surface) plot(col, row int, layer uint8, r rune, fg tcell.Color) {
	i := row*s.cols + col
	if s.layer[i] > layer {
		return
	}
	s.layer[i] = layer
	style := tcell.StyleDefault.Background(s.rgb(s.Background)).Foreground(fg)
	s.screen.SetContent(col, row, r, nil, style)
}

func (s *Surface) Clear() {
	for i := range s.layer {
		s.layer[i] = layerEmpty
	}
	s.screen.Fill(' ', tcell.StyleDefault.Background(s.rgb(s.Background)))
}

func (s *Surface) FillCircle(cx, cy, r float64, c color.NRGBA) {
	col, row, ok := s.cell(cx, cy)
	if !ok || c.A == 0 {
		return
	}
	glyph := '•'
	if r >= 3 {
		glyph = '●'
	}
	s.plot(col, row, layerDisc, glyph, s.blend(c))
}

func (s *Surface) StrokeCircle(cx, cy, r, width float64, c color.NRGBA) {
	if c.A == 0 {
		return
	}
	fg := s.blend(c)
	steps := int(math.Max(8, 2*math.Pi*r/math.Min(s.CellWidth, s.CellHeight)*2))
	for i := 0; i < steps; i++ {
		a := 2 * math.Pi * float64(i) / float64(steps)
		if col, row, ok := s.cell(cx+r*math.Cos(a), cy+r*math.Sin(a)); ok {
			s.plot(col, row, layerRing, '○', fg)
		}
	}
}

// StrokeLine walks the cells between the endpoints with Bresenham's
// algorithm. Endpoint cells are skipped; they hold the discs.
func (s *Surface) StrokeLine(x0, y0, x1, y1, width float64, c color.NRGBA) {
	if c.A == 0 {
		return
	}
	fg := s.blend(c)
	c0, r0 := int(math.Floor(x0/s.CellWidth)), int(math.Floor(y0/s.CellHeight))
	c1, r1 := int(math.Floor(x1/s.CellWidth)), int(math.Floor(y1/s.CellHeight))

	dc := absInt(c1 - c0)
	dr := -absInt(r1 - r0)
	sc, sr := 1, 1
	if c0 > c1 {
		sc = -1
	}
	if r0 > r1 {
		sr = -1
	}
	errAcc := dc + dr
	col, row := c0, r0
	for {
		endpoint := (col == c0 && row == r0) || (col == c1 && row == r1)
		if !endpoint && col >= 0 && row >= 0 && col < s.cols && row < s.rows {
			s.plot(col, row, layerLine, '·', fg)
		}
		if col == c1 && row == r1 {
			return
		}
		e2 := 2 * errAcc
		if e2 >= dr {
			errAcc += dr
			col += sc
		}
		if e2 <= dc {
			errAcc += dc
			row += sr
		}
	}
}

// Show flushes the frame to the terminal.
func (s *Surface) Show() {
	s.screen.Show()
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

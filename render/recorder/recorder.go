// Package recorder provides a render.Surface that records draw calls instead of
// rasterizing them. It backs the headless bench command and tests.
package recorder

import "image/color"

type Kind int

const (
	KindClear Kind = iota
	KindFillCircle
	KindStrokeCircle
	KindStrokeLine
)

// Call is one recorded draw operation. Unused coordinates are zero.
type Call struct {
	Kind   Kind
	X0, Y0 float64
	X1, Y1 float64
	R      float64
	Width  float64
	Color  color.NRGBA
}

// Recorder accumulates calls until Reset. When Discard is set only the counters
// are updated, which keeps long benchmark runs from growing the call log.
type Recorder struct {
	Calls   []Call
	Discard bool

	clears, circles, rings, lines int
}

func New() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Clear() {
	r.clears++
	r.record(Call{Kind: KindClear})
}

func (r *Recorder) FillCircle(cx, cy, radius float64, c color.NRGBA) {
	r.circles++
	r.record(Call{Kind: KindFillCircle, X0: cx, Y0: cy, R: radius, Color: c})
}

func (r *Recorder) StrokeCircle(cx, cy, radius, width float64, c color.NRGBA) {
	r.rings++
	r.record(Call{Kind: KindStrokeCircle, X0: cx, Y0: cy, R: radius, Width: width, Color: c})
}

func (r *Recorder) StrokeLine(x0, y0, x1, y1, width float64, c color.NRGBA) {
	r.lines++
	r.record(Call{Kind: KindStrokeLine, X0: x0, Y0: y0, X1: x1, Y1: y1, Width: width, Color: c})
}

func (r *Recorder) record(c Call) {
	if r.Discard {
		return
	}
	r.Calls = append(r.Calls, c)
}

// Count returns the number of calls of the given kind since the last Reset.
func (r *Recorder) Count(kind Kind) int {
	switch kind {
	case KindClear:
		return r.clears
	case KindFillCircle:
		return r.circles
	case KindStrokeCircle:
		return r.rings
	case KindStrokeLine:
		return r.lines
	}
	return 0
}

// Total returns the number of draw calls of any kind since the last Reset.
func (r *Recorder) Total() int {
	return r.clears + r.circles + r.rings + r.lines
}

// Filter returns the recorded calls of the given kind.
func (r *Recorder) Filter(kind Kind) []Call {
	var out []Call
	for _, c := range r.Calls {
		if c.Kind == kind {
			out = append(out, c)
		}
	}
	return out
}

func (r *Recorder) Reset() {
	r.Calls = r.Calls[:0]
	r.clears, r.circles, r.rings, r.lines = 0, 0, 0, 0
}

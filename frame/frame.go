package frame

import "github.com/plus3/backdrop/render"

// Frame is passed to every system during one scheduler tick.
type Frame struct {
	// Index counts executed frames starting at 1.
	Index uint64
	// DeltaTime is the wall time since the previous frame in seconds. The
	// particle field ignores it and advances one unit step per frame.
	DeltaTime float64
	Surface   render.Surface
	Commands  *Commands
}

func newFrame(index uint64, dt float64, surface render.Surface, commands *Commands) *Frame {
	return &Frame{
		Index:     index,
		DeltaTime: dt,
		Surface:   surface,
		Commands:  commands,
	}
}

package frame

// System is one layer of per-frame behavior. Systems run in registration order
// and may keep state between frames in their own fields.
type System interface {
	Execute(frame *Frame)
}

// SystemFunc adapts a plain function to the System interface.
type SystemFunc func(frame *Frame)

func (f SystemFunc) Execute(frame *Frame) {
	f(frame)
}

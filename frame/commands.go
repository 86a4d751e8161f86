package frame

// Commands buffers work that must run after every system of the current frame
// has executed, such as overlay rendering that reads the frame's final state.
type Commands struct {
	defers []func()
}

func newCommands() *Commands {
	return &Commands{}
}

// Defer queues fn to run when the frame is flushed.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Len reports the number of queued commands.
func (c *Commands) Len() int {
	return len(c.defers)
}

// Flush runs all queued functions in order and resets the buffer.
func (c *Commands) Flush() {
	for i, fn := range c.defers {
		fn()
		c.defers[i] = nil
	}
	c.defers = c.defers[:0]
}

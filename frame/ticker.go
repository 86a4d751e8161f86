package frame

import (
	"sync"
	"time"
)

// Ticker is the frame clock a Scheduler runs against.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// TimeTicker drives frames from the wall clock.
type TimeTicker struct {
	t *time.Ticker
}

func NewTimeTicker(interval time.Duration) *TimeTicker {
	return &TimeTicker{t: time.NewTicker(interval)}
}

// NewFPSTicker returns a wall clock ticker firing fps times per second.
// Non-positive values fall back to 60.
func NewFPSTicker(fps int) *TimeTicker {
	if fps <= 0 {
		fps = 60
	}
	return NewTimeTicker(time.Second / time.Duration(fps))
}

func (t *TimeTicker) C() <-chan time.Time { return t.t.C }

func (t *TimeTicker) Stop() { t.t.Stop() }

// ManualTicker delivers ticks only when Tick is called, so tests can step a
// running scheduler one frame at a time.
type ManualTicker struct {
	c    chan time.Time
	done chan struct{}
	once sync.Once
	now  time.Time
	step time.Duration
}

// NewManualTicker returns a ticker whose clock starts at start and advances by
// step on every Tick.
func NewManualTicker(start time.Time, step time.Duration) *ManualTicker {
	return &ManualTicker{
		c:    make(chan time.Time),
		done: make(chan struct{}),
		now:  start,
		step: step,
	}
}

func (m *ManualTicker) C() <-chan time.Time { return m.c }

// Tick blocks until the receiving loop takes the tick. It returns false once
// the ticker has been stopped.
func (m *ManualTicker) Tick() bool {
	m.now = m.now.Add(m.step)
	select {
	case <-m.done:
		return false
	default:
	}
	select {
	case m.c <- m.now:
		return true
	case <-m.done:
		return false
	}
}

func (m *ManualTicker) Stop() {
	m.once.Do(func() { close(m.done) })
}

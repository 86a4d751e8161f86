package debugui

import "time"

// FrameHistory is a ring buffer of frame times in milliseconds, laid out for
// imgui's line plot.
type FrameHistory struct {
	samples []float32
	index   int
	filled  int
}

func NewFrameHistory(frames int) *FrameHistory {
	if frames <= 0 {
		frames = 1
	}
	return &FrameHistory{samples: make([]float32, frames)}
}

// Add records one frame time in seconds.
func (h *FrameHistory) Add(seconds float64) {
	h.samples[h.index] = float32(seconds * 1000.0)
	h.index = (h.index + 1) % len(h.samples)
	if h.filled < len(h.samples) {
		h.filled++
	}
}

// Average returns the mean frame time over the recorded samples.
func (h *FrameHistory) Average() time.Duration {
	if h.filled == 0 {
		return 0
	}
	var total float32
	for i := 0; i < h.filled; i++ {
		total += h.samples[i]
	}
	return time.Duration(float64(total/float32(h.filled)) * float64(time.Millisecond))
}

// FPS derives frames per second from Average.
func (h *FrameHistory) FPS() float64 {
	avg := h.Average()
	if avg <= 0 {
		return 0
	}
	return float64(time.Second) / float64(avg)
}

// Samples exposes the backing array.
func (h *FrameHistory) Samples() []float32 {
	return h.samples
}

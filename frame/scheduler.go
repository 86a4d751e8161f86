package frame

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/plus3/backdrop/render"
)

var (
	// ErrRunning is returned when Run or Start is called on a scheduler whose
	// loop is already active.
	ErrRunning = errors.New("frame: scheduler already running")
	// ErrStopped is returned when Run or Start is called after Stop.
	ErrStopped = errors.New("frame: scheduler stopped")
)

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	SystemCount     int
	Frames          uint64
	TotalExecutions int64
	Systems         []SystemStats
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type systemStatsInternal struct {
	name           string
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithLogger sets the logger used for loop lifecycle messages.
func WithLogger(log *zap.Logger) Option {
	return func(s *Scheduler) {
		if log != nil {
			s.log = log
		}
	}
}

// Scheduler executes systems once per frame against a single render surface.
//
// All systems run on the goroutine that calls Once (directly, or through Run).
// Host notifications enter through Post and are applied at the start of the
// next frame, so systems never observe a half-applied update.
type Scheduler struct {
	surface     render.Surface
	systems     []System
	systemStats []*systemStatsInternal
	commands    *Commands
	frames      uint64
	log         *zap.Logger

	// frameMu is held for the whole of Once.
	frameMu sync.Mutex
	stopped atomic.Bool

	mu         sync.Mutex
	posted     []func()
	running    bool
	stopCh     chan struct{}
	doneCh     chan struct{}
	stopClosed bool
}

// NewScheduler creates a new scheduler drawing to the given surface.
func NewScheduler(surface render.Surface, opts ...Option) *Scheduler {
	s := &Scheduler{
		surface:  surface,
		systems:  make([]System, 0),
		commands: newCommands(),
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register appends a system. Systems execute in registration order.
func (s *Scheduler) Register(system System) {
	s.systems = append(s.systems, system)

	systemType := reflect.TypeOf(system)
	if systemType.Kind() == reflect.Ptr {
		systemType = systemType.Elem()
	}
	systemName := systemType.Name()
	if systemName == "" {
		systemName = systemType.String()
	}

	s.systemStats = append(s.systemStats, &systemStatsInternal{
		name:        systemName,
		minDuration: time.Duration(1<<63 - 1),
	})
}

// Post queues fn to run on the frame goroutine before the systems of the next
// frame. It reports false, dropping fn, once the scheduler has been stopped.
func (s *Scheduler) Post(fn func()) bool {
	if s.stopped.Load() {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.posted = append(s.posted, fn)
	return true
}

func (s *Scheduler) drainPosted() []func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.posted) == 0 {
		return nil
	}
	posted := s.posted
	s.posted = nil
	return posted
}

// Once executes one frame: pending notifications, every system, then the
// frame's deferred commands. It reports false without doing anything when the
// scheduler has been stopped.
func (s *Scheduler) Once(dt float64) bool {
	s.frameMu.Lock()
	defer s.frameMu.Unlock()

	if s.stopped.Load() {
		return false
	}

	for _, fn := range s.drainPosted() {
		fn()
	}

	index := atomic.AddUint64(&s.frames, 1)
	frame := newFrame(index, dt, s.surface, s.commands)

	for i, system := range s.systems {
		start := time.Now()
		system.Execute(frame)
		duration := time.Since(start)

		stats := s.systemStats[i]
		stats.executionCount++
		stats.lastDuration = duration
		stats.totalDuration += duration

		if duration < stats.minDuration {
			stats.minDuration = duration
		}
		if duration > stats.maxDuration {
			stats.maxDuration = duration
		}
	}

	frame.Commands.Flush()
	return true
}

func (s *Scheduler) begin() (stopCh, doneCh chan struct{}, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped.Load() {
		return nil, nil, ErrStopped
	}
	if s.running {
		return nil, nil, ErrRunning
	}
	s.running = true
	s.stopClosed = false
	s.stopCh = make(chan struct{})
	s.doneCh = make(chan struct{})
	return s.stopCh, s.doneCh, nil
}

// Run executes one frame per tick until the context is cancelled or Stop is
// called. The ticker is stopped when Run returns.
func (s *Scheduler) Run(ctx context.Context, ticker Ticker) error {
	stopCh, doneCh, err := s.begin()
	if err != nil {
		return err
	}
	s.loop(ctx, ticker, stopCh, doneCh)
	return nil
}

// Start is Run on a new goroutine. Errors from starting are returned
// synchronously.
func (s *Scheduler) Start(ctx context.Context, ticker Ticker) error {
	stopCh, doneCh, err := s.begin()
	if err != nil {
		return err
	}
	go s.loop(ctx, ticker, stopCh, doneCh)
	return nil
}

func (s *Scheduler) loop(ctx context.Context, ticker Ticker, stopCh, doneCh chan struct{}) {
	defer close(doneCh)
	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()
	defer ticker.Stop()

	s.log.Debug("frame loop started", zap.Int("systems", len(s.systems)))

	var lastTime time.Time
	for {
		select {
		case <-ctx.Done():
			s.log.Debug("frame loop cancelled", zap.Uint64("frames", s.Frames()))
			return
		case <-stopCh:
			s.log.Debug("frame loop stopped", zap.Uint64("frames", s.Frames()))
			return
		case now := <-ticker.C():
			dt := 0.0
			if !lastTime.IsZero() {
				dt = now.Sub(lastTime).Seconds()
			}
			lastTime = now
			if !s.Once(dt) {
				return
			}
		}
	}
}

// Stop ends the frame loop for good. When Stop returns no frame is executing
// and none will execute again; posted notifications are discarded. Stop must
// not be called from inside a System.
func (s *Scheduler) Stop() {
	s.stopped.Store(true)

	s.mu.Lock()
	running := s.running
	doneCh := s.doneCh
	if running && !s.stopClosed {
		close(s.stopCh)
		s.stopClosed = true
	}
	s.posted = nil
	s.mu.Unlock()

	if running {
		<-doneCh
	}

	// Wait out a frame started by a host calling Once directly.
	s.frameMu.Lock()
	s.frameMu.Unlock()
}

// Stopped reports whether Stop has been called.
func (s *Scheduler) Stopped() bool {
	return s.stopped.Load()
}

// Frames returns the number of frames executed so far.
func (s *Scheduler) Frames() uint64 {
	return atomic.LoadUint64(&s.frames)
}

// GetStats returns statistics about system execution.
func (s *Scheduler) GetStats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount: len(s.systems),
		Frames:      s.Frames(),
		Systems:     make([]SystemStats, len(s.systemStats)),
	}

	var totalExecs int64
	for i, internal := range s.systemStats {
		avgDuration := time.Duration(0)
		if internal.executionCount > 0 {
			avgDuration = internal.totalDuration / time.Duration(internal.executionCount)
		}

		stats.Systems[i] = SystemStats{
			Name:           internal.name,
			ExecutionCount: internal.executionCount,
			MinDuration:    internal.minDuration,
			MaxDuration:    internal.maxDuration,
			AvgDuration:    avgDuration,
			LastDuration:   internal.lastDuration,
			TotalDuration:  internal.totalDuration,
		}
		totalExecs += internal.executionCount
	}

	stats.TotalExecutions = totalExecs
	return stats
}

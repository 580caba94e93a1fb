package loop

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrTickPending is returned when arming while a tick is already pending.
	ErrTickPending = errors.New("loop: tick already pending")
	// ErrNoTick is returned when waiting without an armed tick.
	ErrNoTick = errors.New("loop: no tick pending")
)

// Timer is a single pending wake-up.
type Timer interface {
	C() <-chan time.Time
	Stop() bool
}

// Clock creates timers. Tests substitute a fake clock to observe delays.
type Clock interface {
	NewTimer(d time.Duration) Timer
}

// SystemClock is the wall clock.
type SystemClock struct{}

// NewTimer implements Clock.
func (SystemClock) NewTimer(d time.Duration) Timer {
	return systemTimer{time.NewTimer(d)}
}

type systemTimer struct {
	t *time.Timer
}

func (s systemTimer) C() <-chan time.Time { return s.t.C }
func (s systemTimer) Stop() bool          { return s.t.Stop() }

// FrameScheduler holds at most one pending tick.
type FrameScheduler struct {
	clock   Clock
	pending Timer
	delay   time.Duration
}

// NewFrameScheduler creates a scheduler on the given clock (nil means the wall clock).
func NewFrameScheduler(clock Clock) *FrameScheduler {
	if clock == nil {
		clock = SystemClock{}
	}
	return &FrameScheduler{clock: clock}
}

// Arm schedules the next tick after d. It refuses to overlap ticks.
func (s *FrameScheduler) Arm(d time.Duration) error {
	if s.pending != nil {
		return ErrTickPending
	}
	s.pending = s.clock.NewTimer(d)
	s.delay = d
	return nil
}

// Wait blocks until the pending tick fires or ctx is done.
// Either way the scheduler is left with nothing pending.
func (s *FrameScheduler) Wait(ctx context.Context) error {
	if s.pending == nil {
		return ErrNoTick
	}
	t := s.pending
	defer func() { s.pending = nil }()

	select {
	case <-t.C():
		return nil
	case <-ctx.Done():
		t.Stop()
		return ctx.Err()
	}
}

// Pending reports whether a tick is armed.
func (s *FrameScheduler) Pending() bool {
	return s.pending != nil
}

// Delay returns the delay of the most recently armed tick.
func (s *FrameScheduler) Delay() time.Duration {
	return s.delay
}

// Phase is the lifecycle of a controller.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseScheduled
	PhaseRunning
	PhaseHalted
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseScheduled:
		return "scheduled"
	case PhaseRunning:
		return "running"
	case PhaseHalted:
		return "halted"
	default:
		return "unknown"
	}
}

package loop

import (
	"sync"
	"time"

	"github.com/vovakirdan/tui-snake/internal/world"
)

// fakeSim replays a scripted list of statuses and records commands.
type fakeSim struct {
	mu         sync.Mutex
	initial    world.Status
	script     []world.Status
	advances   int
	directions []world.Direction
	toggles    int
}

func newFakeSim(initial world.Status, script ...world.Status) *fakeSim {
	return &fakeSim{initial: initial, script: script}
}

func (f *fakeSim) Advance() world.Status {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.advances++
	if len(f.script) == 0 {
		return f.initial
	}
	next := f.script[0]
	f.script = f.script[1:]
	f.initial = next
	return next
}

func (f *fakeSim) Status() world.Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.initial
}

func (f *fakeSim) Dimensions() world.Dimensions {
	return world.Dimensions{Width: 21, Height: 12}
}

func (f *fakeSim) ApplyDirection(d world.Direction) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.directions = append(f.directions, d)
}

func (f *fakeSim) TogglePause() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.toggles++
}

func (f *fakeSim) commandCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.directions) + f.toggles
}

// recorder is a Renderer that keeps every status it was given.
type recorder struct {
	mu    sync.Mutex
	calls []world.Status
	dims  []world.Dimensions
}

func (r *recorder) Render(dims world.Dimensions, status world.Status) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, status)
	r.dims = append(r.dims, dims)
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

// fakeClock fires every timer immediately and records the requested delays.
type fakeClock struct {
	mu     sync.Mutex
	delays []time.Duration
}

func (c *fakeClock) NewTimer(d time.Duration) Timer {
	c.mu.Lock()
	c.delays = append(c.delays, d)
	c.mu.Unlock()

	ch := make(chan time.Time, 1)
	ch <- time.Time{}
	return fakeTimer{ch: ch}
}

func (c *fakeClock) recorded() []time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]time.Duration(nil), c.delays...)
}

type fakeTimer struct {
	ch chan time.Time
}

func (t fakeTimer) C() <-chan time.Time { return t.ch }
func (t fakeTimer) Stop() bool          { return true }

func status(state world.State, level int) world.Status {
	return world.Status{State: state, Level: level}
}

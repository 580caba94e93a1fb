package loop

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/vovakirdan/tui-snake/internal/world"
)

func TestStartPaintsBeforeAnyTick(t *testing.T) {
	sim := newFakeSim(status(world.StatePlay, 0))
	r := &recorder{}
	c := New(sim, r)

	delay, active := c.Start()

	if !active {
		t.Fatal("Start() should report an active loop")
	}
	if r.count() != 1 {
		t.Fatalf("expected one initial render, got %d", r.count())
	}
	if sim.advances != 0 {
		t.Errorf("Start() must not advance the world, advanced %d times", sim.advances)
	}
	if delay.Milliseconds() != 1333 {
		t.Errorf("first delay = %v, expected ~1333ms", delay)
	}
	if r.dims[0] != sim.Dimensions() {
		t.Errorf("rendered with dims %+v, expected %+v", r.dims[0], sim.Dimensions())
	}
	if c.Phase() != PhaseScheduled {
		t.Errorf("phase = %v, expected scheduled", c.Phase())
	}

	// Start is idempotent
	c.Start()
	if r.count() != 1 {
		t.Errorf("second Start() repainted, renders = %d", r.count())
	}
}

func TestTickOrder(t *testing.T) {
	sim := newFakeSim(status(world.StatePlay, 0), status(world.StatePlay, 4))
	var seen []string
	var rateAtRender float64

	var c *Controller
	c = New(sim, RendererFunc(func(_ world.Dimensions, s world.Status) {
		seen = append(seen, s.State.String())
		rateAtRender = c.rate
	}))

	c.Start()
	delay, active := c.Tick()

	if !active {
		t.Fatal("Tick() on a playing world should continue")
	}
	if sim.advances != 1 {
		t.Errorf("Tick() advanced %d times, expected 1", sim.advances)
	}
	if rateAtRender != 6.75 {
		t.Errorf("rate at render = %v, expected the new rate 6.75", rateAtRender)
	}
	if delay != Interval(6.75) {
		t.Errorf("delay = %v, expected %v", delay, Interval(6.75))
	}
	if len(seen) != 2 {
		t.Errorf("expected initial render plus one tick render, got %v", seen)
	}
}

func TestRunRearmsOncePerActiveTick(t *testing.T) {
	sim := newFakeSim(
		status(world.StatePlay, 0),
		status(world.StatePlay, 1),
		status(world.StatePause, 1),
		status(world.StatePlay, 4),
		status(world.StateOver, 3),
		status(world.StatePlay, 9), // never reached
	)
	r := &recorder{}
	clock := &fakeClock{}
	c := New(sim, r)

	if err := c.Run(context.Background(), NewFrameScheduler(clock)); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	p := ReferencePolicy()
	want := []time.Duration{
		Interval(p.Rate(0)), // initial
		Interval(p.Rate(1)),
		Interval(p.Rate(1)),
		Interval(p.Rate(4)),
	}
	got := clock.recorded()
	if len(got) != len(want) {
		t.Fatalf("armed %d ticks, expected %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("arm %d delay = %v, expected %v", i, got[i], want[i])
		}
	}

	if sim.advances != 4 {
		t.Errorf("world advanced %d times, expected 4", sim.advances)
	}
	if r.count() != 5 {
		t.Errorf("rendered %d times, expected 5", r.count())
	}
	if c.Phase() != PhaseHalted {
		t.Errorf("phase = %v, expected halted", c.Phase())
	}
	if c.Ticks() != 4 {
		t.Errorf("Ticks() = %d, expected 4", c.Ticks())
	}
}

func TestOverStatusHaltsForever(t *testing.T) {
	sim := newFakeSim(status(world.StatePlay, 0), status(world.StateOver, 3), status(world.StatePlay, 3))
	r := &recorder{}
	c := New(sim, r)

	c.Start()
	if _, active := c.Tick(); active {
		t.Fatal("Tick() returning Over should halt")
	}

	if r.count() != 2 {
		t.Fatalf("rendered %d times, expected initial + over", r.count())
	}
	last := r.calls[len(r.calls)-1]
	if last.State != world.StateOver || last.Level != 3 {
		t.Errorf("last render = %+v, expected over at level 3", last)
	}

	for i := 0; i < 3; i++ {
		if delay, active := c.Tick(); active || delay != 0 {
			t.Fatalf("Tick() after halt = (%v, %v), expected (0, false)", delay, active)
		}
	}
	if sim.advances != 1 {
		t.Errorf("world advanced %d times after halt, expected 1 total", sim.advances)
	}
	if r.count() != 2 {
		t.Errorf("renders after halt: %d", r.count())
	}
	if c.Rate() != ReferencePolicy().Rate(3) {
		t.Errorf("rate = %v, expected recomputed from level 3", c.Rate())
	}
}

func TestRunNeverSchedulesAfterOver(t *testing.T) {
	sim := newFakeSim(status(world.StatePlay, 2), status(world.StateOver, 3))
	clock := &fakeClock{}
	c := New(sim, &recorder{})

	if err := c.Run(context.Background(), NewFrameScheduler(clock)); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if n := len(clock.recorded()); n != 1 {
		t.Errorf("armed %d timers, expected only the initial one", n)
	}

	// Running again must not schedule anything new
	if err := c.Run(context.Background(), NewFrameScheduler(clock)); err != nil {
		t.Fatalf("second Run() failed: %v", err)
	}
	if n := len(clock.recorded()); n != 1 {
		t.Errorf("halted controller armed a timer, total = %d", n)
	}
}

func TestStartWhenAlreadyOver(t *testing.T) {
	sim := newFakeSim(status(world.StateOver, 5))
	r := &recorder{}
	c := New(sim, r)

	if _, active := c.Start(); active {
		t.Error("Start() on a finished world should not be active")
	}
	if r.count() != 1 {
		t.Errorf("finished world should still be painted once, got %d", r.count())
	}
	if c.Phase() != PhaseHalted {
		t.Errorf("phase = %v, expected halted", c.Phase())
	}
}

func TestHaltHookRunsOnce(t *testing.T) {
	sim := newFakeSim(status(world.StatePlay, 0), world.Status{State: world.StateOver, Level: 2, Score: 7})
	var finals []world.Status
	c := New(sim, &recorder{}, WithHaltHook(func(final world.Status) {
		finals = append(finals, final)
	}))

	c.Start()
	c.Tick()
	c.Tick()

	if len(finals) != 1 {
		t.Fatalf("halt hook ran %d times, expected 1", len(finals))
	}
	if finals[0].Score != 7 {
		t.Errorf("hook got score %d, expected 7", finals[0].Score)
	}
}

func TestHaltHookMayUseController(t *testing.T) {
	sim := newFakeSim(status(world.StatePlay, 0), status(world.StateOver, 1))
	done := make(chan Phase, 1)

	var c *Controller
	c = New(sim, &recorder{}, WithHaltHook(func(world.Status) {
		done <- c.Phase()
	}))
	c.Start()
	c.Tick()

	select {
	case p := <-done:
		if p != PhaseHalted {
			t.Errorf("phase seen by hook = %v, expected halted", p)
		}
	case <-time.After(time.Second):
		t.Fatal("halt hook deadlocked")
	}
}

func TestCustomPolicy(t *testing.T) {
	sim := newFakeSim(status(world.StatePlay, 0))
	c := New(sim, &recorder{}, WithPolicy(FixedPolicy{FPS: 4}))

	delay, _ := c.Start()
	if delay != 250*time.Millisecond {
		t.Errorf("delay = %v, expected 250ms", delay)
	}
}

func TestRunCancelled(t *testing.T) {
	sim := newFakeSim(status(world.StatePlay, 0))
	c := New(sim, &recorder{}, WithPolicy(FixedPolicy{FPS: 0.001}))

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		errCh <- c.Run(ctx, nil)
	}()

	cancel()
	select {
	case err := <-errCh:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Run() = %v, expected context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run() did not stop after cancel")
	}
	if sim.advances != 0 {
		t.Errorf("cancelled run advanced the world %d times", sim.advances)
	}
}

func TestSchedulerRefusesOverlap(t *testing.T) {
	clock := &fakeClock{}
	s := NewFrameScheduler(clock)

	if err := s.Wait(context.Background()); !errors.Is(err, ErrNoTick) {
		t.Errorf("Wait() without Arm = %v, expected ErrNoTick", err)
	}

	if err := s.Arm(time.Second); err != nil {
		t.Fatalf("Arm() failed: %v", err)
	}
	if err := s.Arm(time.Second); !errors.Is(err, ErrTickPending) {
		t.Errorf("second Arm() = %v, expected ErrTickPending", err)
	}
	if !s.Pending() || s.Delay() != time.Second {
		t.Error("scheduler should report the pending tick")
	}

	if err := s.Wait(context.Background()); err != nil {
		t.Fatalf("Wait() failed: %v", err)
	}
	if s.Pending() {
		t.Error("Wait() should clear the pending tick")
	}
	if err := s.Arm(time.Second); err != nil {
		t.Errorf("Arm() after Wait() failed: %v", err)
	}
}

func TestConcurrentInputDuringRun(t *testing.T) {
	cfg := world.DefaultConfig()
	cfg.Seed = 1
	w := world.New(cfg)
	c := New(w, &recorder{})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		// No left turns and no pause: the snake must eventually leave the board.
		codes := []string{"ArrowUp", "ArrowRight", "ArrowDown", "ArrowRight"}
		for i := 0; i < 200; i++ {
			c.Input(codes[i%len(codes)])
		}
	}()

	errCh := make(chan error, 1)
	go func() {
		errCh <- c.Run(context.Background(), NewFrameScheduler(&fakeClock{}))
	}()

	select {
	case err := <-errCh:
		if err != nil {
			t.Fatalf("Run() failed: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run() did not finish")
	}
	wg.Wait()

	if c.Last().State != world.StateOver {
		t.Errorf("final state = %v, expected over", c.Last().State)
	}
}

package loop

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/world"
)

// Simulation is everything the controller needs from the world.
type Simulation interface {
	Commander
	Advance() world.Status
	Status() world.Status
	Dimensions() world.Dimensions
}

// Renderer draws a status. It must accept every state, including StateOver.
type Renderer interface {
	Render(dims world.Dimensions, status world.Status)
}

// RendererFunc adapts a function to the Renderer interface.
type RendererFunc func(dims world.Dimensions, status world.Status)

// Render implements Renderer.
func (f RendererFunc) Render(dims world.Dimensions, status world.Status) {
	f(dims, status)
}

// Option configures a Controller.
type Option func(*Controller)

// WithPolicy replaces the reference difficulty policy.
func WithPolicy(p Policy) Option {
	return func(c *Controller) {
		if p != nil {
			c.policy = p
		}
	}
}

// WithKeyMap replaces the default key bindings.
func WithKeyMap(k KeyMap) Option {
	return func(c *Controller) {
		c.keys = k
	}
}

// WithLogger sets the logger used for lifecycle events.
func WithLogger(l *log.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithHaltHook registers fn to run once when the world reports StateOver.
// It is called without the controller lock held.
func WithHaltHook(fn func(final world.Status)) Option {
	return func(c *Controller) {
		c.onHalt = fn
	}
}

// Controller runs one game. The mutex serializes ticks and input so the
// world and the rate have a single writer at any moment.
type Controller struct {
	mu       sync.Mutex
	sim      Simulation
	renderer Renderer
	policy   Policy
	keys     KeyMap
	dims     world.Dimensions
	rate     float64
	phase    Phase
	ticks    uint64
	last     world.Status
	logger   *log.Logger
	onHalt   func(world.Status)
}

// New creates a controller for sim that paints through r.
func New(sim Simulation, r Renderer, opts ...Option) *Controller {
	c := &Controller{
		sim:      sim,
		renderer: r,
		policy:   ReferencePolicy(),
		keys:     BrowserKeyMap(),
		dims:     sim.Dimensions(),
		logger:   log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start paints the initial status before any time elapses and returns the
// delay before the first tick. The second result is false when the world is
// already over, in which case nothing should be scheduled.
// Calling Start again does not repaint.
func (c *Controller) Start() (time.Duration, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phase != PhaseIdle {
		return Interval(c.rate), c.phase != PhaseHalted
	}

	status := c.sim.Status()
	c.rate = c.policy.Rate(status.Level)
	c.renderer.Render(c.dims, status)
	c.last = status

	if !status.State.Active() {
		c.phase = PhaseHalted
		c.logger.Info("world over before start", "outcome", status.Outcome)
		return 0, false
	}

	c.phase = PhaseScheduled
	c.logger.Debug("loop started", "level", status.Level, "fps", c.rate)
	return Interval(c.rate), true
}

// Tick advances the world one step, retunes the rate, renders, and reports
// the delay before the next tick. It returns false once the world is over;
// after that every call is a no-op.
func (c *Controller) Tick() (time.Duration, bool) {
	c.mu.Lock()

	if c.phase == PhaseHalted {
		c.mu.Unlock()
		return 0, false
	}
	c.phase = PhaseRunning

	status := c.sim.Advance()
	c.rate = c.policy.Rate(status.Level)
	c.renderer.Render(c.dims, status)
	c.ticks++
	c.last = status

	if status.State.Active() {
		c.phase = PhaseScheduled
		delay := Interval(c.rate)
		c.mu.Unlock()
		return delay, true
	}

	c.phase = PhaseHalted
	hook := c.onHalt
	ticks := c.ticks
	c.mu.Unlock()

	c.logger.Info("loop halted",
		"outcome", status.Outcome,
		"level", status.Level,
		"score", status.Score,
		"ticks", ticks,
	)
	if hook != nil {
		hook(status)
	}
	return 0, false
}

// Input applies the command bound to code immediately. It reports whether
// the code was recognized; unknown codes are ignored.
func (c *Controller) Input(code string) bool {
	cmd, ok := c.keys.Lookup(code)
	if !ok {
		return false
	}

	c.mu.Lock()
	Dispatch(c.sim, cmd)
	c.mu.Unlock()

	c.logger.Debug("input", "code", code, "command", cmd)
	return true
}

// Run drives the controller until the world is over or ctx is cancelled.
// A nil scheduler uses the wall clock.
func (c *Controller) Run(ctx context.Context, sched *FrameScheduler) error {
	if sched == nil {
		sched = NewFrameScheduler(nil)
	}

	delay, active := c.Start()
	for active {
		if err := sched.Arm(delay); err != nil {
			return err
		}
		if err := sched.Wait(ctx); err != nil {
			return err
		}
		delay, active = c.Tick()
	}
	return nil
}

// Rate returns the current tick rate in frames per second.
func (c *Controller) Rate() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rate
}

// Phase returns the lifecycle phase.
func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// Ticks returns how many ticks have run.
func (c *Controller) Ticks() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ticks
}

// Last returns the most recently rendered status.
func (c *Controller) Last() world.Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last
}

// Dimensions returns the board size captured at construction.
func (c *Controller) Dimensions() world.Dimensions {
	return c.dims
}

// KeyMap returns the bindings used by Input.
func (c *Controller) KeyMap() KeyMap {
	return c.keys
}

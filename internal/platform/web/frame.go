// Package web serves the snake game to browsers over a websocket.
// Every connection gets its own world and loop controller; the server
// streams JSON frames and the page draws them on a canvas.
package web

import (
	"sync"

	"github.com/vovakirdan/tui-snake/internal/loop"
	"github.com/vovakirdan/tui-snake/internal/world"
)

// Frame is one rendered status as sent to the browser.
type Frame struct {
	Type    string           `json:"type"`
	Seq     uint64           `json:"seq"`
	Game    int              `json:"game"`
	Width   int              `json:"width"`
	Height  int              `json:"height"`
	State   world.State      `json:"state"`
	Outcome world.Outcome    `json:"outcome"`
	Level   int              `json:"level"`
	Score   int              `json:"score"`
	FPS     float64          `json:"fps"`
	Snake   []world.Position `json:"snake"`
	Reward  world.Position   `json:"reward"`
	Message string           `json:"message,omitempty"`
}

// frameRenderer implements loop.Renderer by keeping only the newest frame.
// Render never blocks, so a slow browser cannot stall the controller.
type frameRenderer struct {
	policy loop.Policy
	game   int

	mu     sync.Mutex
	seq    uint64
	latest *Frame
	ready  chan struct{}
}

func newFrameRenderer(policy loop.Policy) *frameRenderer {
	if policy == nil {
		policy = loop.ReferencePolicy()
	}
	return &frameRenderer{
		policy: policy,
		ready:  make(chan struct{}, 1),
	}
}

// Render implements loop.Renderer.
func (r *frameRenderer) Render(dims world.Dimensions, st world.Status) {
	r.mu.Lock()
	r.seq++
	r.latest = &Frame{
		Type:    "frame",
		Seq:     r.seq,
		Game:    r.game,
		Width:   dims.Width,
		Height:  dims.Height,
		State:   st.State,
		Outcome: st.Outcome,
		Level:   st.Level,
		Score:   st.Score,
		FPS:     r.policy.Rate(st.Level),
		Snake:   st.Snake,
		Reward:  st.Reward,
		Message: st.Banner(),
	}
	r.mu.Unlock()

	select {
	case r.ready <- struct{}{}:
	default:
	}
}

// setGame tags subsequent frames with a new game number.
func (r *frameRenderer) setGame(n int) {
	r.mu.Lock()
	r.game = n
	r.mu.Unlock()
}

// take returns the pending frame, or nil if it was already sent.
func (r *frameRenderer) take() *Frame {
	r.mu.Lock()
	defer r.mu.Unlock()
	f := r.latest
	r.latest = nil
	return f
}

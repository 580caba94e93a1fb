package world

import (
	"fmt"
	"math/rand"
)

// Config controls board size and progression.
type Config struct {
	Width    int
	Height   int
	MaxLevel int   // Reaching this level with a reward wins the game
	Seed     int64 // RNG seed for reward placement
}

// DefaultConfig returns the classic 21×12 board with ten levels.
func DefaultConfig() Config {
	return Config{
		Width:    21,
		Height:   12,
		MaxLevel: 10,
	}
}

// World is the snake simulation. It is not safe for concurrent use;
// the loop controller serializes every call.
type World struct {
	dims     Dimensions
	maxLevel int
	rng      *rand.Rand

	snake     []Position // head at index 0
	direction Direction
	reward    Position
	level     int
	score     int
	state     State
	outcome   Outcome
	steps     uint64
}

// New creates a world ready to play.
func New(cfg Config) *World {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		def := DefaultConfig()
		cfg.Width, cfg.Height = def.Width, def.Height
	}
	if cfg.MaxLevel <= 0 {
		cfg.MaxLevel = DefaultConfig().MaxLevel
	}

	w := &World{
		dims:     Dimensions{Width: cfg.Width, Height: cfg.Height},
		maxLevel: cfg.MaxLevel,
		rng:      rand.New(rand.NewSource(cfg.Seed)),
	}
	w.reset()
	return w
}

func (w *World) reset() {
	start := Position{Row: 1, Col: 1}
	w.snake = []Position{w.clamp(start)}
	w.direction = DirRight
	w.reward = w.clamp(Position{Row: 3, Col: 3})
	if w.reward == w.snake[0] {
		w.reward = w.freeCell()
	}
	w.level = 1
	w.score = 0
	w.state = StatePlay
	w.outcome = OutcomeNone
	w.steps = 0
}

// clamp keeps fixed start positions on very small boards.
func (w *World) clamp(p Position) Position {
	return Position{
		Row: min(p.Row, w.dims.Height-1),
		Col: min(p.Col, w.dims.Width-1),
	}
}

// Dimensions returns the board size.
func (w *World) Dimensions() Dimensions {
	return w.dims
}

// Status returns the current snapshot without advancing.
func (w *World) Status() Status {
	body := make([]Position, len(w.snake))
	copy(body, w.snake)
	return Status{
		State:   w.state,
		Outcome: w.outcome,
		Level:   w.level,
		Score:   w.score,
		Snake:   body,
		Reward:  w.reward,
	}
}

// Advance moves the snake one cell and resolves collisions.
// Outside of StatePlay it only reports the current status.
func (w *World) Advance() Status {
	if w.state != StatePlay {
		return w.Status()
	}
	w.steps++

	head := w.snake[0].Step(w.direction)
	w.snake = append([]Position{head}, w.snake[:len(w.snake)-1]...)

	switch {
	case !w.dims.Contains(head) || w.hitItself():
		w.finish(OutcomeLost)
	case head == w.reward:
		w.grow(w.level)
		w.score++
		if w.level >= w.maxLevel {
			w.finish(OutcomeWon)
			break
		}
		w.level++
		w.reward = w.freeCell()
		if w.reward == head {
			// No free cell left: the board is full.
			w.finish(OutcomeWon)
		}
	}

	return w.Status()
}

func (w *World) finish(o Outcome) {
	w.state = StateOver
	w.outcome = o
}

// grow appends count segments stacked on the tail; they unfold as the snake moves.
func (w *World) grow(count int) {
	tail := w.snake[len(w.snake)-1]
	for range count {
		w.snake = append(w.snake, tail)
	}
}

func (w *World) hitItself() bool {
	head := w.snake[0]
	for _, seg := range w.snake[1:] {
		if seg == head {
			return true
		}
	}
	return false
}

func (w *World) occupied(p Position) bool {
	for _, seg := range w.snake {
		if seg == p {
			return true
		}
	}
	return false
}

// freeCell picks a random cell not covered by the snake.
// It returns the head position when the board is full.
func (w *World) freeCell() Position {
	free := make([]Position, 0, w.dims.Cells())
	for row := range w.dims.Height {
		for col := range w.dims.Width {
			p := Position{Row: row, Col: col}
			if !w.occupied(p) {
				free = append(free, p)
			}
		}
	}
	if len(free) == 0 {
		return w.snake[0]
	}
	return free[w.rng.Intn(len(free))]
}

// ApplyDirection turns the snake. Reversing onto itself is ignored,
// as is any command once the game is over.
func (w *World) ApplyDirection(d Direction) {
	if w.state == StateOver {
		return
	}
	if d == w.direction.Opposite() {
		return
	}
	w.direction = d
}

// TogglePause switches between play and pause. It has no effect once over.
func (w *World) TogglePause() {
	switch w.state {
	case StatePlay:
		w.state = StatePause
	case StatePause:
		w.state = StatePlay
	}
}

// Direction returns the current heading.
func (w *World) Direction() Direction {
	return w.direction
}

// DebugState returns a one-line description of the world for debug output.
func (w *World) DebugState() string {
	head := w.snake[0]
	return fmt.Sprintf("step %d  len %d  heading %s  head (%d,%d)  reward (%d,%d)  %s",
		w.steps, len(w.snake), w.direction, head.Row, head.Col, w.reward.Row, w.reward.Col, w.state)
}

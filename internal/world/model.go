// Package world implements the snake simulation driven by the game loop.
// It knows nothing about time, input devices or drawing: the loop advances it
// one step at a time and reads back immutable Status snapshots.
package world

import "fmt"

// State is the lifecycle state reported by the simulation.
type State int

const (
	StatePlay State = iota
	StatePause
	StateOver
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StatePlay:
		return "play"
	case StatePause:
		return "pause"
	case StateOver:
		return "over"
	default:
		return "unknown"
	}
}

// Active reports whether the loop should keep scheduling ticks.
func (s State) Active() bool {
	return s == StatePlay || s == StatePause
}

// MarshalText encodes the state by name.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a state name.
func (s *State) UnmarshalText(b []byte) error {
	switch string(b) {
	case "play":
		*s = StatePlay
	case "pause":
		*s = StatePause
	case "over":
		*s = StateOver
	default:
		return fmt.Errorf("world: unknown state %q", b)
	}
	return nil
}

// Outcome tells how a finished game ended. It is OutcomeNone while active.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeWon
	OutcomeLost
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeWon:
		return "won"
	case OutcomeLost:
		return "lost"
	default:
		return "none"
	}
}

// MarshalText encodes the outcome by name.
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText decodes an outcome name.
func (o *Outcome) UnmarshalText(b []byte) error {
	switch string(b) {
	case "none":
		*o = OutcomeNone
	case "won":
		*o = OutcomeWon
	case "lost":
		*o = OutcomeLost
	default:
		return fmt.Errorf("world: unknown outcome %q", b)
	}
	return nil
}

// Direction is the heading of the snake.
type Direction int

const (
	DirRight Direction = iota
	DirDown
	DirLeft
	DirUp
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// Opposite returns the reverse heading.
func (d Direction) Opposite() Direction {
	switch d {
	case DirUp:
		return DirDown
	case DirDown:
		return DirUp
	case DirLeft:
		return DirRight
	default:
		return DirLeft
	}
}

// Position is a board cell. Row grows downward, Col grows rightward.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Step returns the neighbouring cell in direction d.
func (p Position) Step(d Direction) Position {
	switch d {
	case DirUp:
		return Position{Row: p.Row - 1, Col: p.Col}
	case DirDown:
		return Position{Row: p.Row + 1, Col: p.Col}
	case DirLeft:
		return Position{Row: p.Row, Col: p.Col - 1}
	default:
		return Position{Row: p.Row, Col: p.Col + 1}
	}
}

// Dimensions is the board size in cells. It never changes during a game.
type Dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Contains reports whether p lies on the board.
func (d Dimensions) Contains(p Position) bool {
	return p.Col >= 0 && p.Col < d.Width && p.Row >= 0 && p.Row < d.Height
}

// Cells returns the number of cells on the board.
func (d Dimensions) Cells() int {
	return d.Width * d.Height
}

// Status is a read-only snapshot of the world after a step.
type Status struct {
	State   State      `json:"state"`
	Outcome Outcome    `json:"outcome"`
	Level   int        `json:"level"`
	Score   int        `json:"score"`
	Snake   []Position `json:"snake"` // head first
	Reward  Position   `json:"reward"`
}

// Head returns the snake's head, or the zero position for an empty snake.
func (s Status) Head() Position {
	if len(s.Snake) == 0 {
		return Position{}
	}
	return s.Snake[0]
}

// Banner returns the message shown over the board: empty while playing.
func (s Status) Banner() string {
	switch {
	case s.State == StatePause:
		return "Pause"
	case s.State == StateOver && s.Outcome == OutcomeWon:
		return "Congratulations"
	case s.State == StateOver:
		return "You Lost!"
	default:
		return ""
	}
}

// Package loop drives a snake world in real time.
//
// A Controller owns one running game: it converts wall-clock time into
// simulation ticks whose rate follows the level reported by the world,
// forwards input codes to the world as immediate commands, hands every new
// status to a Renderer and stops scheduling once the world reports StateOver.
//
// Hosts either call Start and Tick themselves from a single-threaded event
// loop (the Bubble Tea platform does this) or let Controller.Run drive a
// FrameScheduler on its own goroutine.
package loop

import "github.com/vovakirdan/tui-snake/internal/world"

// Command is a simulation command produced from an input event.
type Command int

const (
	CmdNone Command = iota
	CmdRight
	CmdLeft
	CmdUp
	CmdDown
	CmdTogglePause
)

// String returns a human-readable name for the command.
func (c Command) String() string {
	switch c {
	case CmdRight:
		return "Right"
	case CmdLeft:
		return "Left"
	case CmdUp:
		return "Up"
	case CmdDown:
		return "Down"
	case CmdTogglePause:
		return "TogglePause"
	default:
		return "None"
	}
}

// Direction returns the heading carried by a directional command.
func (c Command) Direction() (world.Direction, bool) {
	switch c {
	case CmdRight:
		return world.DirRight, true
	case CmdLeft:
		return world.DirLeft, true
	case CmdUp:
		return world.DirUp, true
	case CmdDown:
		return world.DirDown, true
	default:
		return 0, false
	}
}

// Commander is the mutating half of the simulation boundary.
type Commander interface {
	ApplyDirection(d world.Direction)
	TogglePause()
}

// Dispatch applies cmd to sim as a single point-in-time mutation.
// CmdNone does nothing.
func Dispatch(sim Commander, cmd Command) {
	if d, ok := cmd.Direction(); ok {
		sim.ApplyDirection(d)
		return
	}
	if cmd == CmdTogglePause {
		sim.TogglePause()
	}
}

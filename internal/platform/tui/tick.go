// Package tui provides the Bubble Tea host for the snake game.
// It paints the board into a core.Screen, forwards keys to the loop
// controller and re-arms ticks with the delay the controller asks for.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game loop tick.
// Gen identifies the game that armed it so ticks from a finished game
// are dropped after a restart.
type TickMsg struct {
	Gen  int
	Time time.Time
}

// tickCmd returns a command that fires a single tick after delay.
func tickCmd(gen int, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return TickMsg{Gen: gen, Time: t}
	})
}

package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/vovakirdan/tui-snake/internal/loop"
)

// HostKeyMap holds the keys the terminal host handles itself.
// Everything else is forwarded to the loop controller.
type HostKeyMap struct {
	Restart key.Binding
	Help    key.Binding
	Quit    key.Binding
}

// DefaultHostKeyMap returns default host key bindings.
func DefaultHostKeyMap() HostKeyMap {
	return HostKeyMap{
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// footerKeys merges game and host bindings for the help footer.
type footerKeys struct {
	game loop.KeyMap
	host HostKeyMap
}

// ShortHelp returns key bindings for the short help view.
func (k footerKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.game.Pause, k.host.Restart, k.host.Help, k.host.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k footerKeys) FullHelp() [][]key.Binding {
	groups := k.game.FullHelp()
	return append(groups, []key.Binding{k.host.Restart, k.host.Help, k.host.Quit})
}

package loop

import "github.com/charmbracelet/bubbles/key"

// Code is a raw input code: a browser KeyboardEvent.code such as "ArrowUp"
// or a Bubble Tea key name such as "up".
type Code string

// String implements fmt.Stringer so codes can be matched against key bindings.
func (c Code) String() string {
	return string(c)
}

// KeyMap binds input codes to the five simulation commands.
// It is stateless: looking up a code never changes the map.
type KeyMap struct {
	Right key.Binding
	Left  key.Binding
	Up    key.Binding
	Down  key.Binding
	Pause key.Binding
}

// BrowserKeyMap accepts exactly the five KeyboardEvent codes
// ArrowRight, ArrowLeft, ArrowUp, ArrowDown and KeyP. Controllers use it
// unless another map is supplied.
func BrowserKeyMap() KeyMap {
	return KeyMap{
		Right: key.NewBinding(key.WithKeys("ArrowRight"), key.WithHelp("→", "right")),
		Left:  key.NewBinding(key.WithKeys("ArrowLeft"), key.WithHelp("←", "left")),
		Up:    key.NewBinding(key.WithKeys("ArrowUp"), key.WithHelp("↑", "up")),
		Down:  key.NewBinding(key.WithKeys("ArrowDown"), key.WithHelp("↓", "down")),
		Pause: key.NewBinding(key.WithKeys("KeyP"), key.WithHelp("p", "pause")),
	}
}

// TerminalKeyMap accepts Bubble Tea key names: arrows, vim keys and WASD.
func TerminalKeyMap() KeyMap {
	return KeyMap{
		Right: key.NewBinding(
			key.WithKeys("right", "l", "d"),
			key.WithHelp("→/l", "right"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h", "a"),
			key.WithHelp("←/h", "left"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k", "w"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j", "s"),
			key.WithHelp("↓/j", "down"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pause"),
		),
	}
}

// Lookup returns the command bound to code. Unknown codes report false.
func (k KeyMap) Lookup(code string) (Command, bool) {
	c := Code(code)
	switch {
	case key.Matches(c, k.Right):
		return CmdRight, true
	case key.Matches(c, k.Left):
		return CmdLeft, true
	case key.Matches(c, k.Up):
		return CmdUp, true
	case key.Matches(c, k.Down):
		return CmdDown, true
	case key.Matches(c, k.Pause):
		return CmdTogglePause, true
	}
	return CmdNone, false
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Left, k.Right, k.Pause}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Pause},
	}
}

package core

// Color is the foreground color of a screen cell.
// The platform layer maps each value to an ANSI 256-color code.
type Color uint8

const (
	ColorDefault Color = iota
	ColorOlive         // snake body and playing border
	ColorYellow        // paused
	ColorGreen         // won
	ColorRed           // lost
	ColorPink          // reward
	ColorGray          // HUD and help text
	ColorWhite
)

// String returns the color name, mostly for test output.
func (c Color) String() string {
	switch c {
	case ColorDefault:
		return "default"
	case ColorOlive:
		return "olive"
	case ColorYellow:
		return "yellow"
	case ColorGreen:
		return "green"
	case ColorRed:
		return "red"
	case ColorPink:
		return "pink"
	case ColorGray:
		return "gray"
	case ColorWhite:
		return "white"
	default:
		return "unknown"
	}
}

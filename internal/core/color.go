package core

// Color represents a foreground color for a screen cell.
// The platform maps each value to an ANSI 256-color code.
type Color uint8

// Palette entries used by the board.
const (
	ColorDefault Color = iota
	ColorGrid          // background dots
	ColorWall          // solid frame in walls mode
	ColorPortal        // dashed frame in passthrough mode
	ColorSnakeHead
	ColorSnakeBody
	ColorSnakeDead
	ColorFood
	ColorText
	ColorMuted
	ColorAccent
)

// ANSI returns the 256-color code for c, or "" for the terminal default.
func (c Color) ANSI() string {
	switch c {
	case ColorGrid:
		return "236"
	case ColorWall:
		return "201" // neon magenta
	case ColorPortal:
		return "51" // neon cyan
	case ColorSnakeHead:
		return "118"
	case ColorSnakeBody:
		return "46"
	case ColorSnakeDead:
		return "196"
	case ColorFood:
		return "213"
	case ColorText:
		return "255"
	case ColorMuted:
		return "244"
	case ColorAccent:
		return "226"
	default:
		return ""
	}
}

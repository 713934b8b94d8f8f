package core

import "strings"

// Color represents a foreground or background color for a screen cell.
// Backends map it to ANSI 16/256-color codes.
type Color uint8

// Predefined colors.
const (
	ColorDefault Color = iota
	ColorBlack
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)

var colorNames = map[string]Color{
	"default":        ColorDefault,
	"black":          ColorBlack,
	"red":            ColorRed,
	"green":          ColorGreen,
	"yellow":         ColorYellow,
	"blue":           ColorBlue,
	"magenta":        ColorMagenta,
	"cyan":           ColorCyan,
	"white":          ColorWhite,
	"bright_red":     ColorBrightRed,
	"bright_green":   ColorBrightGreen,
	"bright_yellow":  ColorBrightYellow,
	"bright_blue":    ColorBrightBlue,
	"bright_magenta": ColorBrightMagenta,
	"bright_cyan":    ColorBrightCyan,
	"bright_white":   ColorBrightWhite,
	"orange":         ColorOrange,
	"gray":           ColorGray,
}

// ParseColor resolves a color name such as "yellow" or "bright_cyan".
// Unknown names resolve to ColorDefault and false.
func ParseColor(name string) (Color, bool) {
	c, ok := colorNames[strings.ToLower(strings.TrimSpace(name))]
	return c, ok
}

// ANSI256 returns the xterm 256-color index for c, or -1 for ColorDefault.
func (c Color) ANSI256() int {
	switch c {
	case ColorDefault:
		return -1
	case ColorOrange:
		return 208
	case ColorGray:
		return 245
	case ColorBlack:
		return 0
	}
	if c >= ColorRed && c <= ColorWhite {
		return int(c - ColorBlack)
	}
	// bright variants occupy 9..15
	return int(c-ColorBrightRed) + 9
}

// Style describes how a cell is drawn.
type Style struct {
	Fg       Color
	Bg       Color
	Bold     bool
	Inverted bool
}

// DefaultStyle is the terminal's default rendition.
var DefaultStyle = Style{}

// Cell is one character position on the terminal: a rune plus its style.
// A zero Rune means "transparent" inside a surface; on screen it is drawn
// as a space.
type Cell struct {
	Rune  rune
	Style Style
}

// BlankCell is what an empty terminal cell shows.
var BlankCell = Cell{Rune: ' '}

// Transparent reports whether the cell lets lower layers show through.
func (c Cell) Transparent() bool {
	return c.Rune == 0
}

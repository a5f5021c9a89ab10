package core

// Color represents a screen cell colour. Named colours map to ANSI codes;
// values from ColorTileBase upward encode a tile exponent and are rendered
// on a gradient by the platform.
type Color uint8

// Predefined colors for game elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightWhite
	ColorOrange
	ColorGray
	ColorDark
)

// ColorTileBase is the first tile colour; ColorTileBase+e is the tile with exponent e.
const ColorTileBase Color = 64

// TileColor returns the colour for a tile exponent.
func TileColor(exp int) Color {
	return ColorTileBase + Color(Clamp(exp, 0, 63))
}

// TileExponent returns the exponent encoded in c and whether c is a tile colour.
func (c Color) TileExponent() (int, bool) {
	if c < ColorTileBase {
		return 0, false
	}
	return int(c - ColorTileBase), true
}

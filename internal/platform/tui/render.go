package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-2048/internal/core"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:     lipgloss.NewStyle(),
	core.ColorRed:         lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorGreen:       lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorYellow:      lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorBlue:        lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	core.ColorMagenta:     lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	core.ColorCyan:        lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	core.ColorWhite:       lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	core.ColorBrightWhite: lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	core.ColorOrange:      lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorGray:        lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	core.ColorDark:        lipgloss.NewStyle().Foreground(lipgloss.Color("#3c3a32")),
}

// Tile gradient endpoints: pale cream for 2, deep orange from 2048 up.
var (
	tileLow  = [3]int{255, 255, 235}
	tileHigh = [3]int{235, 60, 10}
)

const tileGradientSteps = 10

// TileHex returns the background colour for a tile exponent as #rrggbb.
// Exponent 1 maps to the low end, exponent 11 and above to the high end.
func TileHex(exp int) string {
	step := core.Clamp(exp-1, 0, tileGradientSteps)
	var c [3]int
	for i := range c {
		c[i] = tileLow[i] + (tileHigh[i]-tileLow[i])*step/tileGradientSteps
	}
	return fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2])
}

// tileTextColor keeps labels readable on the darker half of the gradient.
func tileTextColor(exp int) lipgloss.Color {
	if exp <= 3 {
		return lipgloss.Color("#3c3a32")
	}
	return lipgloss.Color("#f9f6f2")
}

// cellStyle resolves the style for a cell's foreground and background.
func cellStyle(c core.Cell) lipgloss.Style {
	if exp, ok := c.Bg.TileExponent(); ok {
		return lipgloss.NewStyle().
			Background(lipgloss.Color(TileHex(exp))).
			Foreground(tileTextColor(exp)).
			Bold(true)
	}

	style, ok := colorStyles[c.Color]
	if !ok {
		style = colorStyles[core.ColorDefault]
	}
	if c.Bg != core.ColorDefault {
		if bg, ok := colorStyles[c.Bg]; ok {
			style = style.Background(bg.GetForeground())
		}
	}
	return style
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same colours to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			start := s.GetCell(x, y)

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != start.Color || cell.Bg != start.Bg {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			sb.WriteString(cellStyle(start).Render(run.String()))
		}
	}
	return sb.String()
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

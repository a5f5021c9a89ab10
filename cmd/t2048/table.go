package main

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/platform/tui"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellPad     = lipgloss.NewStyle().Padding(0, 1)
)

// newTable returns a bordered table with padded cells.
func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("241"))).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellPad
		})
}

// boardTable draws a final board with one table cell per grid cell.
func boardTable(board t2048.BoardSnapshot, colors bool) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderRow(true).
		StyleFunc(func(_, _ int) lipgloss.Style {
			return lipgloss.NewStyle().Width(6).Align(lipgloss.Center)
		})

	for row := range t2048.BoardSize {
		cells := make([]string, t2048.BoardSize)
		for col := range t2048.BoardSize {
			exp := board.At(row, col)
			if exp == 0 {
				cells[col] = "."
				continue
			}
			label := strconv.Itoa(1 << exp)
			if colors {
				label = tileStyle(exp).Render(label)
			}
			cells[col] = label
		}
		t.Row(cells...)
	}
	return t.String()
}

// tileStyle colours a tile label with the in-game gradient.
func tileStyle(exp int) lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(tui.TileHex(exp)))
}

package t2048

import (
	"fmt"
	"strconv"

	"github.com/vovakirdan/tui-2048/internal/core"
)

const (
	cellWidth  = 7 // Width of each cell (including left border)
	cellHeight = 2 // Height of each cell (including top border)
	hudHeight  = 3

	boardW = BoardSize*cellWidth + 1
	boardH = BoardSize*cellHeight + 1

	minScreenW = boardW + 4
	minScreenH = hudHeight + 1 + boardH + 2
)

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.engine == nil {
		return
	}
	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	boardX := (g.screenW - boardW) / 2
	boardY := hudHeight + 1

	g.renderHUD(dst, boardX)
	g.renderBoard(dst, boardX, boardY)
	dst.DrawTextCentered(boardY+boardH+1, g.Controls())
	g.renderOverlays(dst, core.NewRect(boardX, boardY, boardW, boardH))
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need %dx%d", minScreenW, minScreenH))
}

// renderHUD draws the title, move counter and best tile.
func (g *Game) renderHUD(dst *core.Screen, boardX int) {
	dst.DrawTextCentered(0, g.Title())

	dst.DrawText(boardX, 1, fmt.Sprintf("Moves: %d", g.moves))

	maxStr := fmt.Sprintf("Best: %d", tileValue(g.engine.Snapshot().MaxExponent()))
	dst.DrawText(boardX+boardW-len(maxStr), 1, maxStr)

	goal := "Goal: 2048"
	if g.mode == ModeEndless {
		goal = "No limit"
	}
	dst.DrawTextCentered(2, goal)
}

// gridRune returns the box-drawing rune at grid intersection (x, y).
func gridRune(x, y int) rune {
	switch {
	case y == 0 && x == 0:
		return '┌'
	case y == 0 && x == BoardSize:
		return '┐'
	case y == BoardSize && x == 0:
		return '└'
	case y == BoardSize && x == BoardSize:
		return '┘'
	case y == 0:
		return '┬'
	case y == BoardSize:
		return '┴'
	case x == 0:
		return '├'
	case x == BoardSize:
		return '┤'
	default:
		return '┼'
	}
}

// renderBoard draws the 4x4 grid with tiles.
func (g *Game) renderBoard(dst *core.Screen, boardX, boardY int) {
	for y := range BoardSize + 1 {
		for x := range BoardSize + 1 {
			px := boardX + x*cellWidth
			py := boardY + y*cellHeight
			dst.Set(px, py, gridRune(x, y))

			if x < BoardSize {
				for i := 1; i < cellWidth; i++ {
					dst.Set(px+i, py, '─')
				}
			}
			if y < BoardSize {
				for i := 1; i < cellHeight; i++ {
					dst.Set(px, py+i, '│')
				}
			}
		}
	}

	board := core.NewRect(boardX, boardY, boardW, boardH)
	snap := g.engine.Snapshot()
	for y := range BoardSize {
		for x := range BoardSize {
			exp := snap.At(y, x)
			if exp == 0 {
				continue
			}
			g.renderTile(dst, board.GridCell(x, y, cellWidth, cellHeight), exp)
		}
	}
}

// renderTile draws one tile value centered in its cell.
func (g *Game) renderTile(dst *core.Screen, inner core.Rect, exp int) {
	label := strconv.Itoa(tileValue(exp))
	if len(label) > inner.W {
		label = "2^" + strconv.Itoa(exp)
	}
	padLeft := core.Clamp((inner.W-len(label))/2, 0, inner.W)
	_, cy := inner.Center()

	if !g.colors {
		dst.DrawText(inner.X+padLeft, cy, label)
		return
	}

	bg := core.TileColor(exp)
	dst.FillRect(inner, bg)
	for i, r := range label {
		dst.SetCell(inner.X+padLeft+i, cy, core.Cell{Rune: r, Color: core.ColorDark, Bg: bg})
	}
}

// renderOverlays draws game state overlays.
func (g *Game) renderOverlays(dst *core.Screen, board core.Rect) {
	switch {
	case g.paused:
		drawOverlay(dst, board, "PAUSED", "Press P to resume")
	case g.won:
		drawOverlay(dst, board, "YOU WIN!", fmt.Sprintf("2048 in %d moves", g.moves), "Press R to restart")
	case g.gameOver:
		maxStr := fmt.Sprintf("Best tile: %d", tileValue(g.engine.Snapshot().MaxExponent()))
		drawOverlay(dst, board, "GAME OVER", maxStr, "Press R to restart")
	}
}

// drawOverlay draws a boxed text overlay centered on the board.
func drawOverlay(dst *core.Screen, board core.Rect, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, len(line))
	}

	box := board.CenteredIn(maxLen+4, len(lines)+2)
	dst.FillRect(box, core.ColorDefault)
	dst.DrawBox(box)

	centerX, _ := box.Center()
	for i, line := range lines {
		dst.DrawText(centerX-len(line)/2, box.Y+1+i, line)
	}
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrows/WASD/HJKL: Move  P: Pause  R: Restart  Q: Quit"
}

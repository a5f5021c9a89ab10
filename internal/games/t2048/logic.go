// Package t2048 implements the 2048 sliding-tile rules: a fixed 4x4 grid engine
// with injectable spawn randomness, plus a game adapter for the platform loop.
package t2048

// Direction represents a move direction.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// Directions lists every move direction in dispatch order.
var Directions = [...]Direction{DirUp, DirDown, DirLeft, DirRight}

// String returns the lowercase name of the direction.
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

const (
	// BoardSize is the board dimension. The engine is fixed at 4x4.
	BoardSize = 4
	// CellCount is the number of cells on the board.
	CellCount = BoardSize * BoardSize
	// WinExponent is the exponent of the 2048 tile.
	WinExponent = 11
	// SpawnExponent is the exponent of every spawned tile.
	SpawnExponent = 1
)

// Tile is one occupied cell. Its displayed value is 2^Exponent.
type Tile struct {
	Exponent int
	Index    int // row*BoardSize + col
}

// Value returns the displayed tile value.
func (t Tile) Value() int {
	return 1 << t.Exponent
}

// RowCol returns the tile position derived from its index.
func (t Tile) RowCol() (row, col int) {
	return t.Index / BoardSize, t.Index % BoardSize
}

// Cell is either empty or holds exactly one tile.
type Cell struct {
	tile Tile
	ok   bool
}

// Empty returns an empty cell.
func Empty() Cell {
	return Cell{}
}

// Occupied returns a cell holding t.
func Occupied(t Tile) Cell {
	return Cell{tile: t, ok: true}
}

// Tile returns the tile in the cell and whether the cell is occupied.
func (c Cell) Tile() (Tile, bool) {
	return c.tile, c.ok
}

// IsEmpty reports whether the cell holds no tile.
func (c Cell) IsEmpty() bool {
	return !c.ok
}

// Exponent returns the tile exponent, or 0 for an empty cell.
func (c Cell) Exponent() int {
	if !c.ok {
		return 0
	}
	return c.tile.Exponent
}

// sameAs compares presence and exponent, ignoring tile indices.
func (c Cell) sameAs(other Cell) bool {
	return c.ok == other.ok && c.Exponent() == other.Exponent()
}

// Row is one line of cells.
type Row [BoardSize]Cell

// Grid is the 4x4 board. It is a value type: assigning a Grid copies every cell.
type Grid [BoardSize]Row

// GridFromExponents builds a grid from exponents, where 0 means empty.
// Tile indices are set to their actual positions.
func GridFromExponents(exps [BoardSize][BoardSize]int) Grid {
	var g Grid
	for y := range BoardSize {
		for x := range BoardSize {
			if exps[y][x] > 0 {
				g[y][x] = Occupied(Tile{Exponent: exps[y][x], Index: y*BoardSize + x})
			}
		}
	}
	return g
}

// Exponents returns the grid as a matrix of exponents, 0 for empty cells.
func (g Grid) Exponents() [BoardSize][BoardSize]int {
	var out [BoardSize][BoardSize]int
	for y := range BoardSize {
		for x := range BoardSize {
			out[y][x] = g[y][x].Exponent()
		}
	}
	return out
}

// Equal reports whether two grids hold the same exponents at every position.
func (g Grid) Equal(other Grid) bool {
	for y := range BoardSize {
		for x := range BoardSize {
			if !g[y][x].sameAs(other[y][x]) {
				return false
			}
		}
	}
	return true
}

// compactRow slides and merges a single row toward its start.
// Each output slot absorbs at most one merge per pass, so [1,1,1] becomes [2,1].
// Output cells are fresh values; the input row is never modified.
func compactRow(row Row) (result Row, changed bool) {
	writePos := 0
	lastMerged := false

	for i := range BoardSize {
		t, ok := row[i].Tile()
		if !ok {
			continue
		}

		if writePos > 0 && !lastMerged && result[writePos-1].Exponent() == t.Exponent {
			// Merge with previous tile
			prev, _ := result[writePos-1].Tile()
			result[writePos-1] = Occupied(Tile{Exponent: prev.Exponent + 1, Index: prev.Index})
			lastMerged = true
			continue
		}

		// Move tile
		result[writePos] = Occupied(Tile{Exponent: t.Exponent, Index: t.Index})
		writePos++
		lastMerged = false
	}

	for i := range BoardSize {
		if !row[i].sameAs(result[i]) {
			changed = true
			break
		}
	}

	return result, changed
}

// reverseRow reverses a row.
func reverseRow(row Row) Row {
	var result Row
	for i := range BoardSize {
		result[i] = row[BoardSize-1-i]
	}
	return result
}

// reverseRows reverses every row of the grid.
func reverseRows(g Grid) Grid {
	var result Grid
	for y := range BoardSize {
		result[y] = reverseRow(g[y])
	}
	return result
}

// transpose returns the matrix transpose.
func transpose(g Grid) Grid {
	var result Grid
	for y := range BoardSize {
		for x := range BoardSize {
			result[y][x] = g[x][y]
		}
	}
	return result
}

// compactRows compacts every row toward its start.
func compactRows(g Grid) (Grid, bool) {
	var result Grid
	changed := false
	for y := range BoardSize {
		row, rowChanged := compactRow(g[y])
		result[y] = row
		changed = changed || rowChanged
	}
	return result, changed
}

// Slide performs a move in the given direction without spawning.
// Returns the new grid and whether any row changed. Tile indices in the
// returned grid are stale until the engine commits it.
func Slide(g Grid, dir Direction) (Grid, bool) {
	switch dir {
	case DirLeft:
		return compactRows(g)
	case DirRight:
		slid, changed := compactRows(reverseRows(g))
		return reverseRows(slid), changed
	case DirUp:
		slid, changed := compactRows(transpose(g))
		return transpose(slid), changed
	case DirDown:
		slid, changed := compactRows(reverseRows(transpose(g)))
		return transpose(reverseRows(slid)), changed
	default:
		return g, false
	}
}

// CanMove reports whether a move in any direction would change the grid.
func CanMove(g Grid) bool {
	for _, dir := range Directions {
		if _, changed := Slide(g, dir); changed {
			return true
		}
	}
	return false
}

// MaxExponent returns the highest tile exponent on the grid, 0 if empty.
func MaxExponent(g Grid) int {
	maxExp := 0
	for y := range BoardSize {
		for x := range BoardSize {
			if e := g[y][x].Exponent(); e > maxExp {
				maxExp = e
			}
		}
	}
	return maxExp
}

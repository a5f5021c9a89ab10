package t2048

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

// ErrNoSpace is returned when a tile is spawned onto a full board.
var ErrNoSpace = errors.New("t2048: no available cell to spawn into")

// IndexPicker selects a uniformly random index in [0, n).
// *rand.Rand from math/rand/v2 satisfies it.
type IndexPicker interface {
	IntN(n int) int
}

// NewSeededPicker returns a deterministic picker for the given seed.
func NewSeededPicker(seed int64) IndexPicker {
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15))
}

// Engine owns the grid and the set of empty cells.
// It is not safe for concurrent use; callers drive it from a single loop.
type Engine struct {
	grid      Grid
	available CellSet
	picker    IndexPicker
}

// NewEngine creates an engine seeded with two starting tiles.
func NewEngine(picker IndexPicker) *Engine {
	e := &Engine{picker: picker}
	e.Reset()
	return e
}

// Reset clears the board and spawns the two starting tiles.
func (e *Engine) Reset() {
	e.grid = Grid{}
	e.available = AllCells()
	e.mustSpawn()
	e.mustSpawn()
}

// SpawnTile places a new exponent-1 tile in a random empty cell.
func (e *Engine) SpawnTile() (Tile, error) {
	n := e.available.Len()
	if n == 0 {
		return Tile{}, ErrNoSpace
	}

	index := e.available.Nth(e.picker.IntN(n))
	e.available.Remove(index)

	t := Tile{Exponent: SpawnExponent, Index: index}
	row, col := t.RowCol()
	e.grid[row][col] = Occupied(t)
	return t, nil
}

// mustSpawn spawns a tile where the commit protocol guarantees room.
func (e *Engine) mustSpawn() Tile {
	t, err := e.SpawnTile()
	if err != nil {
		panic(fmt.Sprintf("t2048: spawn after commit: %v", err))
	}
	return t
}

// Update applies a move. It returns false and leaves the engine untouched
// when the move changes nothing.
func (e *Engine) Update(dir Direction) bool {
	newGrid, changed := Slide(e.grid, dir)
	if !changed {
		return false
	}

	e.commit(newGrid)
	e.mustSpawn()
	return true
}

// commit installs g, reassigns tile indices and rebuilds the empty set.
func (e *Engine) commit(g Grid) {
	for y := range BoardSize {
		for x := range BoardSize {
			if t, ok := g[y][x].Tile(); ok {
				t.Index = y*BoardSize + x
				g[y][x] = Occupied(t)
			}
		}
	}
	e.grid = g
	e.available = emptyCells(g)
}

// IsLost reports whether no empty cell remains and no direction changes the grid.
func (e *Engine) IsLost() bool {
	if e.available.Len() > 0 {
		return false
	}
	return !CanMove(e.grid)
}

// Grid returns a copy of the current grid.
func (e *Engine) Grid() Grid {
	return e.grid
}

// Available returns a copy of the set of empty cells.
func (e *Engine) Available() CellSet {
	return e.available
}

// Snapshot returns the read-only exponent view of the board.
func (e *Engine) Snapshot() BoardSnapshot {
	var s BoardSnapshot
	for y := range BoardSize {
		for x := range BoardSize {
			s[y*BoardSize+x] = e.grid[y][x].Exponent()
		}
	}
	return s
}

package t2048

// BoardSnapshot is the read-only view a renderer needs: one exponent per
// cell in row-major order, 0 for an empty cell.
type BoardSnapshot [CellCount]int

// At returns the exponent at (row, col).
func (s BoardSnapshot) At(row, col int) int {
	return s[row*BoardSize+col]
}

// Value returns the displayed value at linear index i, 0 for an empty cell.
func (s BoardSnapshot) Value(i int) int {
	if s[i] == 0 {
		return 0
	}
	return 1 << s[i]
}

// MaxExponent returns the highest exponent on the board.
func (s BoardSnapshot) MaxExponent() int {
	maxExp := 0
	for _, e := range s {
		if e > maxExp {
			maxExp = e
		}
	}
	return maxExp
}

// Occupied returns the number of occupied cells.
func (s BoardSnapshot) Occupied() int {
	n := 0
	for _, e := range s {
		if e > 0 {
			n++
		}
	}
	return n
}

// Status is the derived state of a board.
type Status int

const (
	StatusPlaying Status = iota
	StatusWon
	StatusLost
)

// String returns the lowercase status name.
func (s Status) String() string {
	switch s {
	case StatusWon:
		return "won"
	case StatusLost:
		return "lost"
	default:
		return "playing"
	}
}

// StatusOf derives the board status. Lost takes precedence over Won so a
// finished endless run reports the loss.
func StatusOf(e *Engine) Status {
	switch {
	case e.IsLost():
		return StatusLost
	case MaxExponent(e.grid) >= WinExponent:
		return StatusWon
	default:
		return StatusPlaying
	}
}

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StateGameOver    GameStateType = "game_over"
	StateWin         GameStateType = "win"
	StatePaused      GameStateType = "paused"
	StatePausedSmall GameStateType = "paused_small_window"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick    uint64
	Mode    string // "classic" or "endless"
	Moves   int
	Board   BoardSnapshot
	MaxTile int // Highest tile value on board
	State   GameStateType
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.won:
		state = StateWin
	case g.gameOver:
		state = StateGameOver
	case g.paused:
		state = StatePaused
	}

	board := g.engine.Snapshot()
	return Snapshot{
		Tick:    g.tick,
		Mode:    string(g.mode),
		Moves:   g.moves,
		Board:   board,
		MaxTile: tileValue(board.MaxExponent()),
		State:   state,
	}
}

// tileValue converts an exponent to its displayed value, 0 for empty.
func tileValue(exp int) int {
	if exp <= 0 {
		return 0
	}
	return 1 << exp
}

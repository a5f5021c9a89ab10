package t2048

import (
	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/registry"
)

// Mode represents the game mode.
type Mode string

const (
	ModeClassic Mode = "classic"
	ModeEndless Mode = "endless"
)

// Registry IDs for the two modes.
const (
	IDClassic = "2048"
	IDEndless = "2048_endless"
)

// ParseMode maps a mode name to a Mode, reporting whether it is known.
func ParseMode(s string) (Mode, bool) {
	switch Mode(s) {
	case ModeClassic, ModeEndless:
		return Mode(s), true
	default:
		return "", false
	}
}

// ID returns the registry ID for the mode.
func (m Mode) ID() string {
	if m == ModeEndless {
		return IDEndless
	}
	return IDClassic
}

// ModeForID maps a registry ID back to its mode.
func ModeForID(id string) (Mode, bool) {
	switch id {
	case IDClassic:
		return ModeClassic, true
	case IDEndless:
		return ModeEndless, true
	default:
		return "", false
	}
}

// Game drives an Engine from platform input.
type Game struct {
	mode   Mode
	engine *Engine
	tick   uint64
	moves  int

	// Screen dimensions
	screenW int
	screenH int
	colors  bool

	// Game state flags
	gameOver bool
	won      bool
	paused   bool
	tooSmall bool
}

// New creates a classic-mode game that ends at the 2048 tile.
func New() *Game {
	return &Game{mode: ModeClassic}
}

// NewEndless creates a game that continues past 2048 until no move is left.
func NewEndless() *Game {
	return &Game{mode: ModeEndless}
}

// NewMode creates a game for the given mode.
func NewMode(m Mode) *Game {
	if m == ModeEndless {
		return NewEndless()
	}
	return New()
}

func init() {
	registry.Register(IDClassic, func() registry.Game {
		return New()
	})
	registry.Register(IDEndless, func() registry.Game {
		return NewEndless()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return g.mode.ID()
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeEndless {
		return "2048 (Endless)"
	}
	return "2048"
}

// Mode returns the game mode.
func (g *Game) Mode() Mode {
	return g.mode
}

// Reset initializes/restarts the game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.engine = NewEngine(NewSeededPicker(cfg.Seed))
	g.tick = 0
	g.moves = 0
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.colors = cfg.Colors
	g.gameOver = false
	g.won = false
	g.paused = false

	g.checkScreenSize()
}

// Resize adapts to new screen dimensions without touching the board.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.checkScreenSize()
}

// checkScreenSize checks if the screen is large enough.
func (g *Game) checkScreenSize() {
	g.tooSmall = g.screenW < minScreenW || g.screenH < minScreenH
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) && !g.gameOver {
		g.paused = !g.paused
	}

	if g.paused || g.gameOver {
		return core.StepResult{State: g.State()}
	}

	dir, ok := directionFor(in)
	if !ok {
		return core.StepResult{State: g.State()}
	}

	moved := g.Move(dir)
	return core.StepResult{State: g.State(), Moved: moved}
}

// directionFor picks the first move direction present in the frame.
func directionFor(in core.InputFrame) (Direction, bool) {
	switch {
	case in.Has(core.ActionUp):
		return DirUp, true
	case in.Has(core.ActionDown):
		return DirDown, true
	case in.Has(core.ActionLeft):
		return DirLeft, true
	case in.Has(core.ActionRight):
		return DirRight, true
	default:
		return 0, false
	}
}

// Move applies a move and updates the derived end-of-run flags.
// Returns whether the board changed.
func (g *Game) Move(dir Direction) bool {
	if g.gameOver {
		return false
	}
	if !g.engine.Update(dir) {
		return false
	}
	g.moves++

	// A classic run that reaches 2048 on its final move counts as a win.
	if g.mode == ModeClassic && MaxExponent(g.engine.Grid()) >= WinExponent {
		g.won = true
	}
	if g.won || StatusOf(g.engine) == StatusLost {
		g.gameOver = true
	}
	return true
}

// Engine exposes the underlying engine for read-only callers.
func (g *Game) Engine() *Engine {
	return g.engine
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.engine == nil {
		return core.GameState{}
	}
	return core.GameState{
		MaxTile:  tileValue(g.engine.Snapshot().MaxExponent()),
		Moves:    g.moves,
		GameOver: g.gameOver,
		Won:      g.won,
		Paused:   g.paused || g.tooSmall,
	}
}

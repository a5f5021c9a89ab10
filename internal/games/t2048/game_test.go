package t2048

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/registry"
)

func newTestGame(m Mode, seed int64) *Game {
	g := NewMode(m)
	cfg := core.DefaultConfig()
	cfg.Seed = seed
	g.Reset(cfg)
	return g
}

func frame(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func TestGameDeterminism(t *testing.T) {
	seed := int64(12345)
	inputs := []core.Action{
		core.ActionLeft, core.ActionUp, core.ActionRight, core.ActionDown,
		core.ActionLeft, core.ActionLeft, core.ActionUp, core.ActionRight,
	}

	run := func() []Snapshot {
		g := newTestGame(ModeClassic, seed)
		var snaps []Snapshot
		for range 10 {
			for _, a := range inputs {
				g.Step(frame(a))
				snaps = append(snaps, g.Snapshot())
			}
		}
		return snaps
	}

	if diff := cmp.Diff(run(), run()); diff != "" {
		t.Errorf("same seed produced different runs (-first +second):\n%s", diff)
	}
}

func TestGameReset(t *testing.T) {
	g := newTestGame(ModeClassic, 99)
	g.Step(frame(core.ActionLeft))
	g.Step(frame(core.ActionUp))

	g.Reset(core.DefaultConfig())

	snap := g.Snapshot()
	if snap.Moves != 0 || snap.Tick != 0 {
		t.Errorf("after reset: moves=%d tick=%d, want 0/0", snap.Moves, snap.Tick)
	}
	if snap.State != StatePlaying {
		t.Errorf("after reset: state=%s, want %s", snap.State, StatePlaying)
	}
	if got := snap.Board.Occupied(); got != 2 {
		t.Errorf("after reset: %d tiles, want 2", got)
	}
}

func TestClassicWinEndsRun(t *testing.T) {
	g := newTestGame(ModeClassic, 1)
	g.engine = loadEngine([BoardSize][BoardSize]int{
		{WinExponent - 1, WinExponent - 1},
	}, NewSeededPicker(1))

	res := g.Step(frame(core.ActionLeft))

	if !res.Moved {
		t.Fatal("merge should report a move")
	}
	if !res.State.Won || !res.State.GameOver {
		t.Errorf("state = %+v, want won and game over", res.State)
	}
	if res.State.MaxTile != 2048 {
		t.Errorf("MaxTile = %d, want 2048", res.State.MaxTile)
	}
	if got := g.Snapshot().State; got != StateWin {
		t.Errorf("snapshot state = %s, want %s", got, StateWin)
	}

	// Further input is ignored once the run is over.
	if res := g.Step(frame(core.ActionRight)); res.Moved {
		t.Error("move accepted after the run ended")
	}
}

func TestEndlessContinuesPastWin(t *testing.T) {
	g := newTestGame(ModeEndless, 1)
	g.engine = loadEngine([BoardSize][BoardSize]int{
		{WinExponent - 1, WinExponent - 1},
	}, NewSeededPicker(1))

	res := g.Step(frame(core.ActionLeft))

	if res.State.GameOver || res.State.Won {
		t.Errorf("endless run ended at 2048: %+v", res.State)
	}
	if res := g.Step(frame(core.ActionRight)); !res.Moved {
		t.Error("endless run should keep accepting moves")
	}
}

func TestGameOverWhenNoMovesLeft(t *testing.T) {
	g := newTestGame(ModeEndless, 1)
	// Sliding left frees exactly one cell; the spawn fills it and nothing can merge.
	g.engine = loadEngine([BoardSize][BoardSize]int{
		{1, 1, 3, 4},
		{5, 6, 7, 8},
		{9, 10, 12, 13},
		{14, 15, 16, 17},
	}, NewSeededPicker(1))

	res := g.Step(frame(core.ActionLeft))

	if !res.Moved {
		t.Fatal("left should merge the leading pair")
	}
	if !res.State.GameOver || res.State.Won {
		t.Errorf("state = %+v, want lost", res.State)
	}
	if got := g.Snapshot().State; got != StateGameOver {
		t.Errorf("snapshot state = %s, want %s", got, StateGameOver)
	}
	if got := StatusOf(g.Engine()); got != StatusLost {
		t.Errorf("StatusOf = %s, want lost", got)
	}
}

func TestPauseBlocksMoves(t *testing.T) {
	g := newTestGame(ModeClassic, 7)
	before := g.Snapshot().Board

	g.Step(frame(core.ActionPause))
	if !g.State().Paused {
		t.Fatal("pause action should pause the game")
	}

	for _, a := range []core.Action{core.ActionLeft, core.ActionRight, core.ActionUp, core.ActionDown} {
		if res := g.Step(frame(a)); res.Moved {
			t.Errorf("%s moved while paused", a)
		}
	}
	if g.Snapshot().Board != before {
		t.Error("board changed while paused")
	}

	g.Step(frame(core.ActionPause))
	if g.State().Paused {
		t.Error("second pause action should resume")
	}
}

func TestScreenTooSmall(t *testing.T) {
	g := NewMode(ModeClassic)
	cfg := core.DefaultConfig()
	cfg.ScreenW = 20
	cfg.ScreenH = 10
	g.Reset(cfg)

	if got := g.Snapshot().State; got != StatePausedSmall {
		t.Errorf("state = %s, want %s", got, StatePausedSmall)
	}

	before := g.Snapshot().Board
	for _, a := range []core.Action{core.ActionLeft, core.ActionRight, core.ActionUp, core.ActionDown} {
		g.Step(frame(a))
	}
	if g.Snapshot().Board != before {
		t.Error("board changed while the window was too small")
	}

	g.Resize(80, 24)
	if got := g.Snapshot().State; got != StatePlaying {
		t.Errorf("after resize: state = %s, want %s", got, StatePlaying)
	}
}

func TestRender(t *testing.T) {
	g := NewMode(ModeClassic)
	cfg := core.DefaultConfig()
	cfg.Colors = false
	g.Reset(cfg)
	g.engine = loadEngine([BoardSize][BoardSize]int{
		{1, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 14, 0},
	}, NewSeededPicker(1))

	screen := core.NewScreen(cfg.ScreenW, cfg.ScreenH)
	g.Render(screen)
	out := screen.String()

	for _, want := range []string{"Moves: 0", "Goal: 2048", "Best: 16384", "┌", "┘"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q", want)
		}
	}
	if !strings.Contains(out, " 2 ") {
		t.Error("render missing the 2 tile")
	}
}

func TestRenderColoredTiles(t *testing.T) {
	g := newTestGame(ModeClassic, 5)
	g.engine = loadEngine([BoardSize][BoardSize]int{
		{3},
	}, NewSeededPicker(1))

	screen := core.NewScreen(80, 24)
	g.Render(screen)

	boardX := (80 - boardW) / 2
	cell := screen.GetCell(boardX+1, hudHeight+2)
	if exp, ok := cell.Bg.TileExponent(); !ok || exp != 3 {
		t.Errorf("tile background = %v (exp %d, ok %v), want gradient step 3", cell.Bg, exp, ok)
	}
}

func TestRegistered(t *testing.T) {
	for _, id := range []string{IDClassic, IDEndless} {
		if !registry.Exists(id) {
			t.Errorf("%q not registered", id)
			continue
		}
		game, err := registry.Create(id)
		if err != nil {
			t.Fatalf("Create(%q): %v", id, err)
		}
		if game.ID() != id {
			t.Errorf("Create(%q).ID() = %q", id, game.ID())
		}
	}
}

func TestParseMode(t *testing.T) {
	for _, name := range []string{"classic", "endless"} {
		m, ok := ParseMode(name)
		if !ok || string(m) != name {
			t.Errorf("ParseMode(%q) = %q, %v", name, m, ok)
		}
	}
	if _, ok := ParseMode("tetris"); ok {
		t.Error("ParseMode accepted an unknown mode")
	}
}

func TestModeForID(t *testing.T) {
	for _, m := range []Mode{ModeClassic, ModeEndless} {
		got, ok := ModeForID(m.ID())
		if !ok || got != m {
			t.Errorf("ModeForID(%q) = %q, %v; want %q", m.ID(), got, ok, m)
		}
	}
	if _, ok := ModeForID("snake"); ok {
		t.Error("ModeForID accepted an unknown id")
	}
}

func TestResizeKeepsBoard(t *testing.T) {
	g := newTestGame(ModeClassic, 3)
	g.Step(frame(core.ActionLeft))
	before := g.Snapshot()

	var _ registry.Resizer = g
	g.Resize(100, 40)

	after := g.Snapshot()
	if after.Board != before.Board || after.Moves != before.Moves {
		t.Error("resize changed the board")
	}
}

package tui

import (
	"math/bits"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/registry"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

// helpHeight is the number of rows reserved below the board for the help bar.
const helpHeight = 1

// GameModel runs one registered game: ticks, input and result recording.
type GameModel struct {
	game        registry.Game
	screen      *core.Screen
	store       *storage.Store
	logger      *log.Logger
	config      core.RuntimeConfig
	inputFrame  core.InputFrame
	gameState   core.GameState
	keys        KeyMap
	help        help.Model
	quitting    bool
	backToMenu  bool
	resultSaved bool // Whether the current run has been written to the ledger
}

// NewGameModel creates a model for game. store may be nil.
func NewGameModel(game registry.Game, store *storage.Store, logger *log.Logger, cfg core.RuntimeConfig) GameModel {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	cfg.ScreenH = max(cfg.ScreenH-helpHeight, 0)
	if logger == nil {
		logger = log.Default()
	}

	h := help.New()
	h.Width = cfg.ScreenW

	return GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		logger:     logger,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keys:       DefaultKeyMap(),
		help:       h,
	}
}

// Init starts the game and the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	m.logger.Debug("run started", "game", m.game.ID(), "seed", m.config.Seed)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch action := m.keys.Action(msg); action {
	case core.ActionQuit:
		m.recordResult(storage.OutcomeQuit)
		m.quitting = true
		return m, tea.Quit

	case core.ActionBack:
		// Leaving mid-run needs the game paused or finished first.
		if m.gameState.GameOver || m.gameState.Paused {
			m.recordResult(storage.OutcomeQuit)
			m.backToMenu = true
		}

	case core.ActionNone, core.ActionConfirm:

	default:
		m.inputFrame.Set(action)
	}

	return m, nil
}

// handleResize processes window resize events.
func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = max(msg.Height-helpHeight, 0)
	m.screen.Resize(m.config.ScreenW, m.config.ScreenH)
	m.help.Width = msg.Width

	if r, ok := m.game.(registry.Resizer); ok {
		r.Resize(m.config.ScreenW, m.config.ScreenH)
	} else if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if m.inputFrame.Has(core.ActionRestart) {
		m.recordResult(storage.OutcomeQuit)
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.resultSaved = false
		m.inputFrame.Clear()
		m.logger.Debug("run restarted", "game", m.game.ID(), "seed", m.config.Seed)
		return m, tickCmd(m.config.TickRate)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	if m.gameState.GameOver {
		outcome := storage.OutcomeLost
		if m.gameState.Won {
			outcome = storage.OutcomeWon
		}
		m.recordResult(outcome)
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// recordResult writes the current run to the ledger once.
// Runs abandoned before the first move are not recorded.
func (m *GameModel) recordResult(outcome storage.Outcome) {
	if m.resultSaved {
		return
	}
	state := m.game.State()
	if outcome == storage.OutcomeQuit && (state.Moves == 0 || state.GameOver) {
		return
	}
	m.resultSaved = true

	if m.store == nil {
		return
	}
	mode, ok := t2048.ModeForID(m.game.ID())
	if !ok {
		return
	}

	r := storage.Result{
		Mode:        string(mode),
		MaxExponent: exponentOf(state.MaxTile),
		Moves:       state.Moves,
		Outcome:     outcome,
		Seed:        m.config.Seed,
	}
	if _, err := m.store.SaveResult(r); err != nil {
		m.logger.Warn("could not save result", "game", m.game.ID(), "error", err)
		return
	}
	m.logger.Debug("result saved", "mode", r.Mode, "outcome", r.Outcome, "max_tile", state.MaxTile, "moves", r.Moves)
}

// exponentOf returns log2 of a tile value, 0 for no tile.
func exponentOf(value int) int {
	if value <= 0 {
		return 0
	}
	return bits.Len(uint(value)) - 1
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + centerText(m.help.View(m.keys), m.config.ScreenW)
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// State returns the last observed game state.
func (m GameModel) State() core.GameState {
	return m.gameState
}

package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/platform/tui"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play 2048",
	Long: `Start a game. Without a mode the menu opens; "default" uses the
mode from the config file.

Controls:
  Arrows/WASD/HJKL - Slide tiles
  P                - Pause
  R                - Restart
  Esc/B            - Back to menu (when paused or finished)
  Q/Ctrl+C         - Quit

Examples:
  t2048 play
  t2048 play classic
  t2048 play endless --seed 7
  t2048 play default --config ./my-t2048.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func runPlay(cmd *cobra.Command, args []string) error {
	startID := ""
	if len(args) == 1 {
		name := args[0]
		if name == "default" {
			name = appConfig.Game.Mode
		}
		mode, ok := t2048.ParseMode(name)
		if !ok {
			return fmt.Errorf("unknown mode %q (run 't2048 modes' to list them)", args[0])
		}
		startID = mode.ID()
	}

	// The terminal belongs to the UI, so logs go to a file.
	var logOut io.Writer = io.Discard
	if f, err := openLogFile(config.UserPath("t2048.log")); err == nil {
		defer f.Close()
		logOut = f
	}
	logger := newLogger(logOut, "t2048")

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: appConfig.Game.TickRate,
		Seed:     appConfig.Game.Seed,
		Colors:   appConfig.Display.Colors,
	}

	// Results are optional; the game still works without them.
	store, err := storage.Open(appConfig.Storage.DBPath)
	if err != nil {
		logger.Warn("could not open results database", "error", err)
		fmt.Fprintf(os.Stderr, "Warning: could not open results database: %v\n", err)
		store = nil
	}

	var opts []tea.ProgramOption
	if appConfig.Display.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}

	runErr := tui.Run(store, logger, cfg, startID, opts...)

	if store != nil {
		store.Close()
	}
	if runErr != nil {
		return fmt.Errorf("running game: %w", runErr)
	}
	return nil
}

// openLogFile opens path for appending, creating its directory.
func openLogFile(path string) (*os.File, error) {
	if path == "" {
		return nil, fmt.Errorf("no log path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}

package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

var (
	flagSimRuns     int
	flagSimPolicy   string
	flagSimMaxMoves int
	flagSimMode     string
	flagSimSave     bool
	flagSimBoard    bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Play headless runs with a fixed policy",
	Long: `Run games without a terminal. Each run uses seed+i, so the same
flags always produce the same boards.

Policies:
  cycle   - Try up, down, left, right in turn
  random  - Pick a direction from the run's seed

Examples:
  t2048 sim
  t2048 sim --runs 20 --policy random --seed 1
  t2048 sim --mode endless --max-moves 500 --save`,
	RunE: runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagSimRuns, "runs", 1, "Number of runs")
	simCmd.Flags().StringVar(&flagSimPolicy, "policy", string(t2048.PolicyCycle), "Move policy: cycle or random")
	simCmd.Flags().IntVar(&flagSimMaxMoves, "max-moves", 0, "Stop a run after this many moves (0 = no cap)")
	simCmd.Flags().StringVar(&flagSimMode, "mode", "", "Mode to simulate (defaults to config)")
	simCmd.Flags().BoolVar(&flagSimSave, "save", false, "Record runs in the results database")
	simCmd.Flags().BoolVar(&flagSimBoard, "board", true, "Print the final board of the last run")
}

func runSim(cmd *cobra.Command, _ []string) error {
	if flagSimRuns < 1 {
		return fmt.Errorf("--runs must be at least 1")
	}

	name := appConfig.Game.Mode
	if flagSimMode != "" {
		name = flagSimMode
	}
	mode, ok := t2048.ParseMode(name)
	if !ok {
		return fmt.Errorf("unknown mode %q (run 't2048 modes' to list them)", name)
	}

	seed := appConfig.Game.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	logger := newLogger(cmd.ErrOrStderr(), "sim")

	var store *storage.Store
	if flagSimSave {
		s, err := storage.Open(appConfig.Storage.DBPath)
		if err != nil {
			return fmt.Errorf("opening results database: %w", err)
		}
		defer s.Close()
		store = s
	}

	t := newTable("Run", "Seed", "Moves", "Best tile", "Status")
	var last t2048.SimResult
	wins := 0
	for i := range flagSimRuns {
		res, err := t2048.Simulate(mode, seed+int64(i), t2048.SimPolicy(flagSimPolicy), flagSimMaxMoves)
		if err != nil {
			return err
		}
		logger.Debug("run finished", "run", i+1, "seed", res.Seed, "moves", res.Moves, "status", res.Status)

		status := res.Status.String()
		if res.Capped {
			status += " (capped)"
		}
		if res.Status == t2048.StatusWon {
			wins++
		}

		best := res.Board.MaxExponent()
		bestLabel := strconv.Itoa(1 << best)
		if appConfig.Display.Colors {
			bestLabel = tileStyle(best).Render(bestLabel)
		}
		t.Row(
			strconv.Itoa(i+1),
			strconv.FormatInt(res.Seed, 10),
			strconv.Itoa(res.Moves),
			bestLabel,
			status,
		)

		if store != nil {
			if err := saveSim(store, res); err != nil {
				return err
			}
		}
		last = res
	}

	fmt.Printf("Simulated %d %s runs with the %s policy\n", flagSimRuns, mode, flagSimPolicy)
	fmt.Println(t)
	if mode == t2048.ModeClassic {
		fmt.Printf("Wins: %d/%d\n", wins, flagSimRuns)
	}

	if flagSimBoard {
		fmt.Println()
		fmt.Printf("Final board of run %d:\n", flagSimRuns)
		fmt.Println(boardTable(last.Board, appConfig.Display.Colors))
	}
	return nil
}

// saveSim records a finished simulation. Capped and still-playing runs count as quit.
func saveSim(store *storage.Store, res t2048.SimResult) error {
	outcome := storage.OutcomeQuit
	switch res.Status {
	case t2048.StatusWon:
		outcome = storage.OutcomeWon
	case t2048.StatusLost:
		outcome = storage.OutcomeLost
	}

	_, err := store.SaveResult(storage.Result{
		Mode:        string(res.Mode),
		MaxExponent: res.Board.MaxExponent(),
		Moves:       res.Moves,
		Outcome:     outcome,
		Seed:        res.Seed,
	})
	return err
}

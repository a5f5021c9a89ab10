package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

var (
	flagResultsLimit  int
	flagResultsRecent bool
	flagResultsClear  bool
)

var resultsCmd = &cobra.Command{
	Use:   "results [mode]",
	Short: "Show recorded runs for a mode",
	Long: `Display the best runs for a mode: highest tile first, fewest moves
breaking ties. Defaults to the mode from the config file.

Examples:
  t2048 results
  t2048 results endless --limit 20
  t2048 results classic --recent
  t2048 results classic --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runResults,
}

func init() {
	resultsCmd.Flags().IntVar(&flagResultsLimit, "limit", 10, "Number of runs to show")
	resultsCmd.Flags().BoolVar(&flagResultsRecent, "recent", false, "Show the latest runs instead of the best")
	resultsCmd.Flags().BoolVar(&flagResultsClear, "clear", false, "Delete all runs recorded for the mode")
}

func runResults(cmd *cobra.Command, args []string) error {
	name := appConfig.Game.Mode
	if len(args) == 1 {
		name = args[0]
	}
	mode, ok := t2048.ParseMode(name)
	if !ok {
		return fmt.Errorf("unknown mode %q (run 't2048 modes' to list them)", name)
	}

	store, err := storage.Open(appConfig.Storage.DBPath)
	if err != nil {
		return fmt.Errorf("opening results database: %w", err)
	}
	defer store.Close()

	if flagResultsClear {
		n, err := store.ClearResults(string(mode))
		if err != nil {
			return err
		}
		fmt.Printf("Removed %d %s runs.\n", n, mode)
		return nil
	}

	var results []storage.Result
	heading := "Best runs"
	if flagResultsRecent {
		heading = "Recent runs"
		results, err = store.RecentResults(string(mode), flagResultsLimit)
	} else {
		results, err = store.BestResults(string(mode), flagResultsLimit)
	}
	if err != nil {
		return err
	}

	fmt.Printf("%s - %s\n", heading, mode)
	fmt.Println()

	if len(results) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 't2048 play %s' to record the first one!\n", mode)
		return nil
	}

	t := newTable("#", "Best tile", "Moves", "Outcome", "Seed", "Date")
	for i, r := range results {
		best := strconv.Itoa(r.MaxTile())
		if appConfig.Display.Colors && r.MaxExponent > 0 {
			best = tileStyle(r.MaxExponent).Render(best)
		}
		t.Row(
			strconv.Itoa(i+1),
			best,
			strconv.Itoa(r.Moves),
			string(r.Outcome),
			strconv.FormatInt(r.Seed, 10),
			r.CreatedAt.Format("2006-01-02 15:04"),
		)
	}
	fmt.Println(t)

	stats, err := store.ModeStats(string(mode))
	if err == nil {
		fmt.Println()
		fmt.Printf("Runs: %d  Wins: %d  Best: %d  Avg moves: %.1f\n",
			stats.Runs, stats.Wins, 1<<stats.BestExponent, stats.AvgMoves)
	}
	return nil
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/registry"
)

var modesCmd = &cobra.Command{
	Use:   "modes",
	Short: "List all available modes",
	Long:  `Shows every registered game mode with the name accepted by 'play'.`,
	Run:   runModes,
}

func runModes(cmd *cobra.Command, args []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No modes available.")
		return
	}

	fmt.Println("Available modes:")
	fmt.Println()

	fmt.Printf("  %-8s  %-14s  %s\n", "Mode", "ID", "Title")
	fmt.Printf("  %-8s  %-14s  %s\n", "----", "--", "-----")

	for _, g := range games {
		mode, _ := t2048.ModeForID(g.ID)
		fmt.Printf("  %-8s  %-14s  %s\n", mode, g.ID, g.Title)
	}

	fmt.Println()
	fmt.Println("Run 't2048 play <mode>' to play.")
}

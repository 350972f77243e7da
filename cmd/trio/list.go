package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/trio/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available variants",
	Long:  `Shows a list of all game variants registered in trio.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No variants available.")
		return
	}

	printTitle(os.Stdout, "Available variants:")

	rows := make([][]string, 0, len(games))
	for _, g := range games {
		id := g.ID
		if id == appCfg.Game.Variant {
			id += " (default)"
		}
		rows = append(rows, []string{id, g.Title})
	}
	printTable(os.Stdout, []string{"ID", "Title"}, rows)

	fmt.Println()
	fmt.Println("Run 'trio play <id>' to play a variant.")
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/trio/internal/games/trio"
)

var (
	flagMatches int
	flagWorkers int
)

var simulateCmd = &cobra.Command{
	Use:   "simulate [variant]",
	Short: "Run many matches and summarize the results",
	Long: `Run a batch of independent matches in parallel with random play and
report how often each seat wins. Match i uses seed+i, so a batch with a
fixed --seed is reproducible.

Examples:
  trio simulate
  trio simulate cards --matches 1000 --seed 1
  trio simulate --matches 200 --workers 4 --no-save`,
	Args: cobra.MaximumNArgs(1),
	Run:  runSimulate,
}

func init() {
	addGameFlags(simulateCmd)
	simulateCmd.Flags().IntVar(&flagMatches, "matches", 100, "Number of matches to play")
	simulateCmd.Flags().IntVar(&flagWorkers, "workers", 0, "Parallel matches (0 = number of CPUs)")
}

func runSimulate(cmd *cobra.Command, args []string) {
	variant, cfg, err := gameSettings(cmd, args)
	if err != nil {
		exitWithError(err)
	}
	if flagMatches <= 0 {
		exitWithError(fmt.Errorf("--matches must be positive, got %d", flagMatches))
	}

	rc := cfg.RuntimeConfig()
	rc.Seed = resolveSeed(rc.Seed)

	runner, closeStore, err := runnerFor(cfg)
	if err != nil {
		exitWithError(err)
	}
	defer closeStore()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Info("simulating", "variant", variant, "matches", flagMatches, "seed", rc.Seed)
	sum, err := runner.Simulate(ctx, variant, rc, flagMatches, flagWorkers, nil)
	if err != nil {
		closeStore()
		exitWithError(err)
	}

	printTitle(os.Stdout, fmt.Sprintf("%d matches of %s (seed %d)", sum.Matches, variant, rc.Seed))

	rows := make([][]string, 0, len(rc.Names)+1)
	for i, name := range rc.Names {
		id := trio.SeatID(i)
		rows = append(rows, []string{
			string(id),
			name,
			strconv.Itoa(sum.Wins[id]),
			fmt.Sprintf("%.1f%%", 100*sum.WinRate(id)),
		})
	}
	rows = append(rows, []string{"", "no winner", strconv.Itoa(sum.Draws), fmt.Sprintf("%.1f%%", 100*float64(sum.Draws)/float64(sum.Matches))})
	printTable(os.Stdout, []string{"Seat", "Name", "Wins", "Rate"}, rows)

	fmt.Println()
	fmt.Printf("Average length: %.2f turns\n", sum.AverageTurns())
}

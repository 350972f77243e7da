package main

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/trio/internal/storage"
)

var (
	flagLimit   int
	flagVariant string
)

var historyCmd = &cobra.Command{
	Use:   "history [match-id]",
	Short: "Show stored matches",
	Long: `Without arguments, list the most recent matches. With a match ID, show
that match in detail.

Examples:
  trio history
  trio history --variant cards --limit 5
  trio history 3f0c2a9e-6d1b-4c55-9a8e-0d2b6f1e7c44`,
	Args: cobra.MaximumNArgs(1),
	Run:  runHistory,
}

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Rank players by wins",
	Long: `Rank player names by wins across stored matches, then by best score.

Examples:
  trio leaderboard
  trio leaderboard --variant classic --limit 3`,
	Args: cobra.NoArgs,
	Run:  runLeaderboard,
}

func init() {
	for _, cmd := range []*cobra.Command{historyCmd, leaderboardCmd} {
		cmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of rows to show")
		cmd.Flags().StringVar(&flagVariant, "variant", "", "Only include this variant")
	}
}

func runHistory(cmd *cobra.Command, args []string) {
	store, err := openStore()
	if err != nil {
		exitWithError(err)
	}
	defer store.Close()

	if len(args) == 1 {
		rec, err := store.MatchByID(args[0])
		if err != nil {
			store.Close()
			exitWithError(err)
		}
		printMatch(rec)
		return
	}

	records, err := store.RecentMatches(flagVariant, flagLimit)
	if err != nil {
		store.Close()
		exitWithError(err)
	}

	printTitle(os.Stdout, "Recent matches")
	if len(records) == 0 {
		fmt.Println("No matches recorded yet.")
		fmt.Println()
		fmt.Println("Play 'trio play' to record the first one!")
		return
	}

	rows := make([][]string, 0, len(records))
	for _, r := range records {
		scores := make([]string, len(r.Players))
		for i, p := range r.Players {
			scores[i] = fmt.Sprintf("%s %d", p.Name, p.Score)
		}
		winner := r.WinnerName
		if winner == "" {
			winner = "-"
		}
		rows = append(rows, []string{
			r.CreatedAt.Local().Format("2006-01-02 15:04"),
			shortID(r.MatchID),
			r.Variant,
			strconv.Itoa(r.Turns),
			winner,
			strings.Join(scores, ", "),
		})
	}
	printTable(os.Stdout, []string{"Date", "Match", "Variant", "Turns", "Winner", "Scores"}, rows)
}

func printMatch(r *storage.MatchRecord) {
	printTitle(os.Stdout, "Match "+r.MatchID)

	fmt.Printf("Variant:  %s\n", r.Variant)
	fmt.Printf("Played:   %s\n", r.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	fmt.Printf("Seed:     %d\n", r.Seed)
	fmt.Printf("Turns:    %d\n", r.Turns)
	fmt.Printf("Duration: %s\n", r.Duration)
	fmt.Printf("Result:   %s\n", r.EndReason)
	fmt.Println()

	rows := make([][]string, 0, len(r.Players))
	for _, p := range r.Players {
		mark := ""
		if p.PlayerID == r.WinnerID {
			mark = "winner"
		}
		rows = append(rows, []string{p.PlayerID, p.Name, strconv.Itoa(p.Score), mark})
	}
	printTable(os.Stdout, []string{"Seat", "Name", "Score", ""}, rows)
}

func runLeaderboard(cmd *cobra.Command, args []string) {
	store, err := openStore()
	if err != nil {
		exitWithError(err)
	}
	defer store.Close()

	entries, err := store.Leaderboard(flagVariant, flagLimit)
	if err != nil {
		store.Close()
		exitWithError(err)
	}

	title := "Leaderboard"
	if flagVariant != "" {
		title += " - " + flagVariant
	}
	printTitle(os.Stdout, title)

	if len(entries) == 0 {
		fmt.Println("No matches recorded yet.")
		return
	}

	rows := make([][]string, 0, len(entries))
	for i, e := range entries {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			e.Name,
			strconv.Itoa(e.Wins),
			strconv.Itoa(e.Matches),
			strconv.Itoa(e.BestScore),
		})
	}
	printTable(os.Stdout, []string{"Rank", "Name", "Wins", "Matches", "Best"}, rows)

	stats, err := store.Stats()
	if err == nil && len(stats) > 0 {
		variants := make([]string, 0, len(stats))
		for variant := range stats {
			if flagVariant == "" || variant == flagVariant {
				variants = append(variants, variant)
			}
		}
		sort.Strings(variants)

		fmt.Println()
		for _, variant := range variants {
			s := stats[variant]
			fmt.Println(render(dimStyle, fmt.Sprintf("%s: %d matches, %d without a winner, %.1f turns on average",
				variant, s.Matches, s.Draws, s.AvgTurns)))
		}
	}
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/trio/internal/config"
	"github.com/vovakirdan/trio/internal/core"
	"github.com/vovakirdan/trio/internal/eventlog"
	"github.com/vovakirdan/trio/internal/games/trio"
	"github.com/vovakirdan/trio/internal/match"
	"github.com/vovakirdan/trio/internal/registry"
)

var (
	flagNames        string
	flagMaxTurns     int
	flagWinningScore int
	flagPreset       string
	flagStrict       bool
	flagMoves        string
	flagNoSave       bool
	flagQuiet        bool
)

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play one match",
	Long: `Play a single match and narrate every action.

Without --moves every player acts at random. A moves file scripts the
actions in acting order (p1, p2, p3, p1, ...); once it runs out the
players act at random again:

  - {action: attack, target: p2, value: 12}
  - {action: defend, target: any, value: 0}
  - {action: special, target: any, value: 0}

Presets:
  quick     - 50 points or 5 turns
  standard  - 100 points or 10 turns
  marathon  - 200 points or 30 turns

Examples:
  trio play
  trio play cards --seed 7
  trio play --names Ann,Bob,Cid --preset quick
  trio play --moves ./opening.yaml --strict`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	addGameFlags(playCmd)
	playCmd.Flags().StringVar(&flagMoves, "moves", "", "YAML file of scripted moves")
	playCmd.Flags().BoolVar(&flagQuiet, "quiet", false, "Only print the final standings")
}

// addGameFlags registers the flags shared by play and simulate.
func addGameFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagNames, "names", "", "Comma-separated player names (exactly 3)")
	cmd.Flags().IntVar(&flagMaxTurns, "max-turns", 0, "Turn limit (overrides config)")
	cmd.Flags().IntVar(&flagWinningScore, "winning-score", 0, "Winning score (overrides config)")
	cmd.Flags().StringVar(&flagPreset, "preset", "", "Match length preset: quick, standard, marathon")
	cmd.Flags().BoolVar(&flagStrict, "strict", false, "Fail on unknown actions instead of skipping them")
	cmd.Flags().BoolVar(&flagNoSave, "no-save", false, "Do not record the result")
}

// gameSettings applies play/simulate flags to the loaded config and
// returns the variant to run.
func gameSettings(cmd *cobra.Command, args []string) (string, config.Config, error) {
	cfg := appCfg
	cfg.Game.Names = append([]string(nil), appCfg.Game.Names...)

	if len(args) > 0 {
		cfg.Game.Variant = args[0]
	}
	if !registry.Exists(cfg.Game.Variant) {
		return "", cfg, fmt.Errorf("unknown variant %q, run 'trio list' to see available variants", cfg.Game.Variant)
	}

	flags := cmd.Flags()
	if flagPreset != "" {
		p, err := config.ParsePreset(flagPreset)
		if err != nil {
			return "", cfg, err
		}
		cfg.ApplyPreset(p)
	}
	if flags.Changed("names") {
		cfg.Game.Names = strings.Split(flagNames, ",")
	}
	if flags.Changed("max-turns") {
		cfg.Game.MaxTurns = flagMaxTurns
	}
	if flags.Changed("winning-score") {
		cfg.Game.WinningScore = flagWinningScore
	}
	if flags.Changed("strict") {
		cfg.Game.Strict = flagStrict
	}
	if flags.Changed("no-save") {
		cfg.Storage.Disabled = flagNoSave
	}
	if err := cfg.Validate(); err != nil {
		return "", cfg, err
	}
	return cfg.Game.Variant, cfg, nil
}

// runnerFor builds a match runner that saves to the database unless storage
// is disabled. The returned close func is always safe to call.
func runnerFor(cfg config.Config) (*match.Runner, func(), error) {
	opts := []match.Option{match.WithLogger(logger)}
	closeFn := func() {}

	if !cfg.Storage.Disabled {
		store, err := openStore()
		if err != nil {
			return nil, closeFn, err
		}
		opts = append(opts, match.WithSaver(store))
		closeFn = func() { store.Close() }
	}
	return match.NewRunner(opts...), closeFn, nil
}

func runPlay(cmd *cobra.Command, args []string) {
	variant, cfg, err := gameSettings(cmd, args)
	if err != nil {
		exitWithError(err)
	}

	rc := cfg.RuntimeConfig()
	rc.Seed = resolveSeed(rc.Seed)

	if flagMoves != "" {
		data, err := os.ReadFile(flagMoves)
		if err != nil {
			exitWithError(fmt.Errorf("reading moves: %w", err))
		}
		moves, err := trio.ParseMoves(data)
		if err != nil {
			exitWithError(fmt.Errorf("%s: %w", flagMoves, err))
		}
		rc.Policy = trio.NewScriptedPolicy(moves, nil)
	}

	seats := make([]core.PlayerState, len(rc.Names))
	for i, name := range rc.Names {
		seats[i] = core.PlayerState{ID: trio.SeatID(i), Name: name}
	}
	if !flagQuiet {
		rc.Observers = append(rc.Observers, eventlog.NewNarrator(os.Stdout, seats))
	}
	rc.Observers = append(rc.Observers, eventlog.NewLogObserver(logger))

	runner, closeStore, err := runnerFor(cfg)
	if err != nil {
		exitWithError(err)
	}
	defer closeStore()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	res, err := runner.Play(ctx, variant, rc)
	if err != nil {
		closeStore()
		exitWithError(err)
	}

	fmt.Println()
	printResult(res)
}

func printResult(res match.Result) {
	printTitle(os.Stdout, fmt.Sprintf("Final standings (%d turns, seed %d)", res.Turns, res.Seed))

	rows := make([][]string, 0, len(res.Players))
	for _, p := range res.Players {
		mark := ""
		if res.HasWinner() && p.ID == res.Winner {
			mark = "winner"
		}
		rows = append(rows, []string{string(p.ID), p.Name, strconv.Itoa(p.Score), mark})
	}
	printTable(os.Stdout, []string{"Seat", "Name", "Score", ""}, rows)

	fmt.Println()
	if res.HasWinner() {
		fmt.Println(render(winStyle, res.WinnerName()+" wins!"))
	} else if lead, ok := trio.Leader(res.Scores()); ok {
		for _, p := range res.Players {
			if p.ID == lead.ID {
				fmt.Printf("No winner. %s leads with %d points.\n", p.Name, lead.Score)
			}
		}
	}
	fmt.Println(render(dimStyle, "Match "+string(res.MatchID)))
}

func exitWithError(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

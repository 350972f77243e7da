package match

import (
	"context"
	"errors"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/trio/internal/core"
)

// ErrSharedPolicy is returned by Simulate when cfg.Policy is set. Policies
// such as scripted or input-driven ones keep state and cannot be shared by
// concurrent matches; pass a PolicyFactory instead.
var ErrSharedPolicy = errors.New("match: cfg.Policy cannot be shared across simulated matches")

// PolicyFactory builds the policy for match i of a batch.
type PolicyFactory func(i int) core.Policy

// Summary aggregates a batch of simulated matches.
type Summary struct {
	Matches    int
	Wins       map[core.PlayerID]int
	Draws      int
	TotalTurns int
	Results    []Result // In match order
}

// AverageTurns returns the mean match length in rotations.
func (s Summary) AverageTurns() float64 {
	if s.Matches == 0 {
		return 0
	}
	return float64(s.TotalTurns) / float64(s.Matches)
}

// WinRate returns the fraction of matches the seat won.
func (s Summary) WinRate(id core.PlayerID) float64 {
	if s.Matches == 0 {
		return 0
	}
	return float64(s.Wins[id]) / float64(s.Matches)
}

// Simulate plays n independent matches of variant using up to workers
// goroutines (0 or less uses GOMAXPROCS). Match i is seeded with
// cfg.Seed+i, so a batch is reproducible. Each match builds its own game,
// random source and, when newPolicy is non-nil, policy; a nil factory plays
// at random. cfg.Policy must be nil. cfg.Observers are shared and must be
// safe for concurrent use. The first failing match cancels the rest.
func (r *Runner) Simulate(ctx context.Context, variant string, cfg core.RuntimeConfig, n, workers int, newPolicy PolicyFactory) (Summary, error) {
	sum := Summary{Wins: make(map[core.PlayerID]int)}
	if cfg.Policy != nil {
		return sum, ErrSharedPolicy
	}
	if n <= 0 {
		return sum, nil
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	results := make([]Result, n)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range n {
		g.Go(func() error {
			mc := cfg
			mc.Seed = cfg.Seed + int64(i)
			if newPolicy != nil {
				mc.Policy = newPolicy(i)
			}
			res, err := r.Play(ctx, variant, mc)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return sum, err
	}

	sum.Matches = n
	sum.Results = results
	for _, res := range results {
		sum.TotalTurns += res.Turns
		if res.HasWinner() {
			sum.Wins[res.Winner]++
		} else {
			sum.Draws++
		}
	}
	return sum, nil
}
